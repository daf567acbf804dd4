package usecase

import (
	"sync"

	"github.com/bnema/feedwall/internal/domain/entity"
)

// Session is the explicit state shared by the arrangement engine, the
// controls use case and the viewport coordinator: the board's slot
// assignment plus the global controls.
type Session struct {
	mu       sync.RWMutex
	board    *entity.Board
	controls entity.GlobalControls
}

// NewSession wraps a board with default controls.
func NewSession(board *entity.Board) *Session {
	return &Session{board: board, controls: entity.DefaultGlobalControls()}
}

// Arrangement returns the current arrangement snapshot.
func (s *Session) Arrangement() entity.Arrangement {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.board.Arrangement()
}

// Panels returns the derived panel list.
func (s *Session) Panels() []entity.Panel {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.board.Panels()
}

// SlotOf returns a site's current slot.
func (s *Session) SlotOf(id entity.SiteID) (entity.Slot, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.board.SlotOf(id)
}

// Site looks up a configured site.
func (s *Session) Site(id entity.SiteID) (entity.Site, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.board.Site(id)
}

// Sites returns the configured sites.
func (s *Session) Sites() []entity.Site {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.board.Sites()
}

// Controls returns a copy of the global controls.
func (s *Session) Controls() entity.GlobalControls {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.controls.Clone()
}

func (s *Session) update(fn func(b *entity.Board, c *entity.GlobalControls)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	fn(s.board, &s.controls)
}
