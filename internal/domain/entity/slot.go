package entity

import "fmt"

// SlotKind is the role a panel plays on the board.
type SlotKind int

const (
	SlotNone      SlotKind = iota // Not placed (transient during ApplyArrangement)
	SlotMain                      // The large desktop-mode panel
	SlotSecondary                 // Optional mobile-mode panel next to main
	SlotSub                       // One of the ordered small panels
)

// String returns a human-readable slot kind.
func (k SlotKind) String() string {
	switch k {
	case SlotMain:
		return "main"
	case SlotSecondary:
		return "secondary"
	case SlotSub:
		return "sub"
	default:
		return "none"
	}
}

// Slot is a board position. Index is only meaningful for SlotSub and is the
// left-to-right display order among sub panels.
type Slot struct {
	Kind  SlotKind
	Index int
}

// MainSlot returns the main slot.
func MainSlot() Slot { return Slot{Kind: SlotMain} }

// SecondarySlot returns the secondary slot.
func SecondarySlot() Slot { return Slot{Kind: SlotSecondary} }

// SubSlot returns the sub slot at index i.
func SubSlot(i int) Slot { return Slot{Kind: SlotSub, Index: i} }

// String renders the slot as "main", "secondary" or "sub[2]".
func (s Slot) String() string {
	if s.Kind == SlotSub {
		return fmt.Sprintf("sub[%d]", s.Index)
	}
	return s.Kind.String()
}

// PresentationMode selects the reference viewport and user agent of a panel.
type PresentationMode int

const (
	ModeDesktop PresentationMode = iota
	ModeMobile
)

// String returns "desktop" or "mobile".
func (m PresentationMode) String() string {
	if m == ModeMobile {
		return "mobile"
	}
	return "desktop"
}

// ModeForSlot derives the presentation mode from a slot. Main is always
// desktop, every other placement is mobile; the mode is never set on its own.
func ModeForSlot(s Slot) PresentationMode {
	if s.Kind == SlotMain {
		return ModeDesktop
	}
	return ModeMobile
}

// Panel is the derived view of one site on the board.
type Panel struct {
	Site Site
	Slot Slot
	Mode PresentationMode
}
