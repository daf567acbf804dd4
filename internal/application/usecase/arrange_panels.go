// Package usecase contains application use cases that orchestrate domain logic.
package usecase

import (
	"context"

	"github.com/bnema/feedwall/internal/application/port"
	"github.com/bnema/feedwall/internal/domain/entity"
	"github.com/bnema/feedwall/internal/logging"
)

// SettingsEnqueuer accepts values to persist. Implementations must store the
// value passed at call time, never re-read live state later.
type SettingsEnqueuer interface {
	Enqueue(key string, value any)
}

// ArrangementObserver is notified after the board changes.
type ArrangementObserver interface {
	// OnSwap receives exactly the panels whose slot changed.
	OnSwap(ctx context.Context, changed ...entity.SiteID)
	// OnArrangementApplied is called after a bulk re-assignment.
	OnArrangementApplied(ctx context.Context)
}

// PanelArranger is the panel arrangement engine: it owns slot assignment
// changes, derives snapshots and hands them to persistence.
type PanelArranger struct {
	session  *Session
	writer   SettingsEnqueuer
	host     port.PanelHost
	observer ArrangementObserver
}

// NewPanelArranger creates the engine. writer, host and observer may be nil.
func NewPanelArranger(session *Session, writer SettingsEnqueuer, host port.PanelHost) *PanelArranger {
	return &PanelArranger{session: session, writer: writer, host: host}
}

// SetObserver attaches the viewport coordinator once it exists.
func (a *PanelArranger) SetObserver(observer ArrangementObserver) {
	a.observer = observer
}

// SetHost attaches the presentation layer once the window exists.
func (a *PanelArranger) SetHost(host port.PanelHost) {
	a.host = host
}

// CurrentArrangement derives [main, secondary, sub0, ...] from the board.
func (a *PanelArranger) CurrentArrangement() entity.Arrangement {
	return a.session.Arrangement()
}

// Panels returns the derived panel list.
func (a *PanelArranger) Panels() []entity.Panel {
	return a.session.Panels()
}

// SwapMainWithSub promotes the named sub panel to main. It is a silent no-op
// when pinned, when the site is not a sub panel, or when there is no main.
func (a *PanelArranger) SwapMainWithSub(ctx context.Context, subID entity.SiteID) (entity.Arrangement, bool) {
	log := logging.FromContext(ctx).With().Str("component", "arranger").Str("site", string(subID)).Logger()

	var (
		prevMain entity.SiteID
		snapshot entity.Arrangement
		swapped  bool
	)
	a.session.update(func(b *entity.Board, c *entity.GlobalControls) {
		if c.Pinned {
			log.Debug().Msg("swap ignored: board is pinned")
			return
		}
		prevMain = b.Main()
		if !b.SwapMainWithSub(subID) {
			log.Debug().Msg("swap ignored: site is not a sub panel")
			return
		}
		swapped = true
		snapshot = b.Arrangement()
	})
	if !swapped {
		return a.session.Arrangement(), false
	}

	log.Info().Str("previous_main", string(prevMain)).Msg("swapped main with sub")
	a.commit(ctx, snapshot, subID, prevMain)
	return snapshot, true
}

// SwapMainWithSecondary exchanges main and secondary under the same no-op
// conditions as SwapMainWithSub.
func (a *PanelArranger) SwapMainWithSecondary(ctx context.Context) (entity.Arrangement, bool) {
	log := logging.FromContext(ctx).With().Str("component", "arranger").Logger()

	var (
		changed  [2]entity.SiteID
		snapshot entity.Arrangement
		swapped  bool
	)
	a.session.update(func(b *entity.Board, c *entity.GlobalControls) {
		if c.Pinned {
			log.Debug().Msg("swap ignored: board is pinned")
			return
		}
		changed = [2]entity.SiteID{b.Main(), b.Secondary()}
		if !b.SwapMainWithSecondary() {
			log.Debug().Msg("swap ignored: no secondary panel")
			return
		}
		swapped = true
		snapshot = b.Arrangement()
	})
	if !swapped {
		return a.session.Arrangement(), false
	}

	log.Info().
		Str("main", string(changed[1])).
		Str("secondary", string(changed[0])).
		Msg("swapped main with secondary")
	a.commit(ctx, snapshot, changed[0], changed[1])
	return snapshot, true
}

// SwapByPanel dispatches a panel header click to the matching swap.
// Clicking the main panel does nothing.
func (a *PanelArranger) SwapByPanel(ctx context.Context, id entity.SiteID) (entity.Arrangement, bool) {
	slot, ok := a.session.SlotOf(id)
	if !ok {
		logging.FromContext(ctx).Debug().Str("site", string(id)).Msg("click on unknown panel ignored")
		return a.session.Arrangement(), false
	}
	switch slot.Kind {
	case entity.SlotSecondary:
		return a.SwapMainWithSecondary(ctx)
	case entity.SlotSub:
		return a.SwapMainWithSub(ctx, id)
	default:
		return a.session.Arrangement(), false
	}
}

// ApplyArrangement replays a validated arrangement by full reset and
// reassignment. Modes follow the new slots. Returns false and keeps the
// current board when no known site would occupy main.
func (a *PanelArranger) ApplyArrangement(ctx context.Context, arr entity.Arrangement) bool {
	log := logging.FromContext(ctx).With().Str("component", "arranger").Logger()

	var applied bool
	a.session.update(func(b *entity.Board, _ *entity.GlobalControls) {
		applied = b.Apply(arr)
	})
	if !applied {
		log.Warn().Strs("slots", arr.Strings()).Msg("arrangement has no known main site, keeping current board")
		return false
	}

	log.Debug().Strs("slots", a.session.Arrangement().Strings()).Msg("arrangement applied")
	a.render(ctx)
	if a.observer != nil {
		a.observer.OnArrangementApplied(ctx)
	}
	return true
}

// ResetArrangement applies arr and persists the result.
func (a *PanelArranger) ResetArrangement(ctx context.Context, arr entity.Arrangement) bool {
	if !a.ApplyArrangement(ctx, arr) {
		return false
	}
	a.persist(a.session.Arrangement())
	return true
}

func (a *PanelArranger) commit(ctx context.Context, snapshot entity.Arrangement, changed ...entity.SiteID) {
	a.persist(snapshot)
	a.render(ctx)
	if a.observer != nil {
		a.observer.OnSwap(ctx, changed...)
	}
}

func (a *PanelArranger) persist(snapshot entity.Arrangement) {
	if a.writer == nil {
		return
	}
	// ToStoredLayout copies the slice, so later swaps cannot alter this write.
	a.writer.Enqueue(port.SettingLayout, snapshot.ToStoredLayout())
}

func (a *PanelArranger) render(ctx context.Context) {
	if a.host == nil {
		return
	}
	if err := a.host.Render(ctx, a.session.Panels()); err != nil {
		logging.FromContext(ctx).Warn().Err(err).Msg("failed to render panels")
	}
}
