package bootstrap

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/bnema/feedwall/internal/logging"
)

// StartupTimer records how long each startup phase took. Safe for use from
// the restore goroutines.
type StartupTimer struct {
	mu     sync.Mutex
	start  time.Time
	last   time.Time
	phases []phase
	now    func() time.Time
}

type phase struct {
	name string
	dur  time.Duration
}

// NewStartupTimer starts timing now.
func NewStartupTimer() *StartupTimer {
	return newStartupTimer(time.Now)
}

func newStartupTimer(now func() time.Time) *StartupTimer {
	t := now()
	return &StartupTimer{start: t, last: t, now: now}
}

// Mark closes the phase that began at the previous mark.
func (t *StartupTimer) Mark(name string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	now := t.now()
	t.phases = append(t.phases, phase{name: name, dur: now.Sub(t.last)})
	t.last = now
}

// Total returns the time elapsed since the timer started.
func (t *StartupTimer) Total() time.Duration {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.now().Sub(t.start)
}

// Phase returns the recorded duration of a phase.
func (t *StartupTimer) Phase(name string) (time.Duration, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	for _, p := range t.phases {
		if p.name == name {
			return p.dur, true
		}
	}
	return 0, false
}

// Log writes every phase on a single event at the given level.
func (t *StartupTimer) Log(ctx context.Context, level zerolog.Level) {
	t.mu.Lock()
	defer t.mu.Unlock()

	event := logging.FromContext(ctx).WithLevel(level).Dur("total", t.now().Sub(t.start))
	for _, p := range t.phases {
		event = event.Dur(p.name, p.dur)
	}
	event.Msg("startup timing")
}
