package usecase

import (
	"context"
	"sync"

	"github.com/bnema/feedwall/internal/application/port"
	"github.com/bnema/feedwall/internal/logging"
)

// SettingsWriter serializes writes to the settings store on one worker
// goroutine. Writes for a key that is still pending coalesce to the newest
// value and keep their original queue position.
type SettingsWriter struct {
	store port.SettingsStore
	ctx   context.Context

	mu      sync.Mutex
	order   []string
	pending map[string]any
	writing bool
	closed  bool
	waiters []chan struct{}

	wake chan struct{}
	stop chan struct{}
	done chan struct{}

	closeOnce sync.Once
}

// NewSettingsWriter starts the worker. ctx carries the logger and is passed
// to every store call; cancelling it does not stop the worker, Close does.
func NewSettingsWriter(ctx context.Context, store port.SettingsStore) *SettingsWriter {
	w := &SettingsWriter{
		store:   store,
		ctx:     context.WithoutCancel(ctx),
		pending: make(map[string]any),
		wake:    make(chan struct{}, 1),
		stop:    make(chan struct{}),
		done:    make(chan struct{}),
	}
	go w.run()
	return w
}

// Enqueue schedules value to be written under key. The caller must pass a
// value it will not mutate afterwards.
func (w *SettingsWriter) Enqueue(key string, value any) {
	w.mu.Lock()
	if w.closed {
		w.mu.Unlock()
		logging.FromContext(w.ctx).Warn().Str("key", key).Msg("settings writer closed, dropping write")
		return
	}
	if _, queued := w.pending[key]; !queued {
		w.order = append(w.order, key)
	}
	w.pending[key] = value
	w.mu.Unlock()

	select {
	case w.wake <- struct{}{}:
	default:
	}
}

// Flush blocks until every write enqueued before the call has been attempted.
func (w *SettingsWriter) Flush(ctx context.Context) error {
	w.mu.Lock()
	if len(w.order) == 0 && !w.writing {
		w.mu.Unlock()
		return nil
	}
	ch := make(chan struct{})
	w.waiters = append(w.waiters, ch)
	w.mu.Unlock()

	select {
	case <-ch:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Close drains the queue and stops the worker. Later Enqueue calls are dropped.
func (w *SettingsWriter) Close() {
	w.closeOnce.Do(func() {
		w.mu.Lock()
		w.closed = true
		w.mu.Unlock()
		close(w.stop)
	})
	<-w.done
}

func (w *SettingsWriter) run() {
	defer close(w.done)
	for {
		select {
		case <-w.wake:
			w.drain()
		case <-w.stop:
			w.drain()
			return
		}
	}
}

func (w *SettingsWriter) drain() {
	log := logging.FromContext(w.ctx)
	for {
		key, value, ok := w.next()
		if !ok {
			return
		}
		if err := w.store.Set(w.ctx, key, value); err != nil {
			log.Error().Err(err).Str("key", key).Msg("failed to persist setting")
			continue
		}
		log.Debug().Str("key", key).Msg("setting persisted")
	}
}

// next pops the oldest pending key. When the queue is empty it marks the
// writer idle and releases Flush waiters.
func (w *SettingsWriter) next() (string, any, bool) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if len(w.order) == 0 {
		w.writing = false
		for _, ch := range w.waiters {
			close(ch)
		}
		w.waiters = nil
		return "", nil, false
	}

	key := w.order[0]
	w.order = w.order[1:]
	value := w.pending[key]
	delete(w.pending, key)
	w.writing = true
	return key, value, true
}
