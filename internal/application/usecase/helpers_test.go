package usecase_test

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/bnema/feedwall/internal/application/usecase"
	"github.com/bnema/feedwall/internal/domain/entity"
	"github.com/bnema/feedwall/internal/logging"
)

func testContext() context.Context {
	logger := logging.NewFromConfigValues("debug", "console")
	return logging.WithContext(context.Background(), logger)
}

func newTestSession(t *testing.T) *usecase.Session {
	t.Helper()
	board, err := entity.NewBoard(entity.DefaultSites())
	require.NoError(t, err)
	return usecase.NewSession(board)
}

func arr(ids ...string) entity.Arrangement {
	return entity.ArrangementFromStrings(ids)
}

// recordingWriter captures enqueued values in order.
type recordingWriter struct {
	mu     sync.Mutex
	keys   []string
	values []any
}

func (w *recordingWriter) Enqueue(key string, value any) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.keys = append(w.keys, key)
	w.values = append(w.values, value)
}

func (w *recordingWriter) last(key string) (any, bool) {
	w.mu.Lock()
	defer w.mu.Unlock()
	for i := len(w.keys) - 1; i >= 0; i-- {
		if w.keys[i] == key {
			return w.values[i], true
		}
	}
	return nil, false
}

func (w *recordingWriter) count() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return len(w.keys)
}

// recordingObserver captures arrangement and controls notifications.
type recordingObserver struct {
	swaps    [][]entity.SiteID
	applied  int
	controls int
}

func (o *recordingObserver) OnSwap(_ context.Context, changed ...entity.SiteID) {
	o.swaps = append(o.swaps, append([]entity.SiteID(nil), changed...))
}

func (o *recordingObserver) OnArrangementApplied(context.Context) {
	o.applied++
}

func (o *recordingObserver) OnControlsChanged(context.Context) {
	o.controls++
}
