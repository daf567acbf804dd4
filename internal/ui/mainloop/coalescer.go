// Package mainloop merges and delays work destined for the UI main loop.
package mainloop

import "sync"

// Coalescer batches keyed main-loop work. Every key posted before the loop
// gets to run shares a single idle callback, and keys run in the order they
// were first posted. Posting a key that is already queued only replaces its
// callback, so a burst of renders costs one render.
type Coalescer struct {
	mu      sync.Mutex
	post    func(func())
	order   []string
	pending map[string]func()
	closed  bool
}

// NewCoalescer creates a Coalescer that schedules batches through post.
// A nil post runs each batch inline, which is only useful without a loop.
func NewCoalescer(post func(func())) *Coalescer {
	if post == nil {
		post = func(fn func()) { fn() }
	}
	return &Coalescer{
		post:    post,
		pending: make(map[string]func()),
	}
}

// Post queues fn under key.
func (c *Coalescer) Post(key string, fn func()) {
	if fn == nil || key == "" {
		return
	}

	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return
	}
	if _, queued := c.pending[key]; queued {
		c.pending[key] = fn
		c.mu.Unlock()
		return
	}
	c.pending[key] = fn
	c.order = append(c.order, key)
	first := len(c.order) == 1
	post := c.post
	c.mu.Unlock()

	if first {
		post(c.run)
	}
}

// Pending reports how many keys wait for the next batch.
func (c *Coalescer) Pending() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.order)
}

// run drains the current batch. Work posted by a callback lands in a new
// batch rather than the one being drained.
func (c *Coalescer) run() {
	c.mu.Lock()
	order, pending := c.order, c.pending
	c.order = nil
	c.pending = make(map[string]func())
	closed := c.closed
	c.mu.Unlock()

	if closed {
		return
	}
	for _, key := range order {
		pending[key]()
	}
}

// Close drops queued work and ignores later posts.
func (c *Coalescer) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.closed = true
	c.order = nil
	c.pending = make(map[string]func())
}
