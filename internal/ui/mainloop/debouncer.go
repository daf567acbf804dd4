package mainloop

import (
	"sync"
	"time"
)

// Debouncer runs the latest callback for a key once the key has been quiet
// for the configured delay. Callbacks are handed to post, so they run on the
// same loop as the Coalescer's.
type Debouncer struct {
	mu      sync.Mutex
	delay   time.Duration
	post    func(func())
	pending map[string]*debounced
	closed  bool
}

type debounced struct {
	timer *time.Timer
	fn    func()
	gen   uint64
}

func NewDebouncer(delay time.Duration, post func(func())) *Debouncer {
	if post == nil {
		post = func(fn func()) { fn() }
	}
	return &Debouncer{
		delay:   delay,
		post:    post,
		pending: make(map[string]*debounced),
	}
}

// Trigger (re)arms the timer for key with fn as the callback to run.
func (d *Debouncer) Trigger(key string, fn func()) {
	if fn == nil {
		return
	}

	d.mu.Lock()
	defer d.mu.Unlock()
	if d.closed {
		return
	}

	entry, ok := d.pending[key]
	if !ok {
		entry = &debounced{}
		d.pending[key] = entry
	} else {
		entry.timer.Stop()
	}
	entry.gen++
	entry.fn = fn
	gen := entry.gen
	entry.timer = time.AfterFunc(d.delay, func() { d.fire(key, gen) })
}

func (d *Debouncer) fire(key string, gen uint64) {
	d.mu.Lock()
	entry, ok := d.pending[key]
	if !ok || entry.gen != gen || d.closed {
		d.mu.Unlock()
		return
	}
	delete(d.pending, key)
	fn := entry.fn
	post := d.post
	d.mu.Unlock()

	post(fn)
}

// Stop cancels every pending callback. Later triggers are ignored.
func (d *Debouncer) Stop() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.closed = true
	for key, entry := range d.pending {
		entry.timer.Stop()
		delete(d.pending, key)
	}
}
