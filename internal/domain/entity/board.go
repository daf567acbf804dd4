package entity

import "fmt"

// Board holds the slot assignment of every configured site. It is the
// in-memory session state the arrangement engine mutates; the presentation
// layer is derived from it.
type Board struct {
	sites     []Site
	index     map[SiteID]Site
	main      SiteID
	secondary SiteID
	subs      []SiteID
}

// NewBoard creates a board for the configured sites, arranged in
// configuration order (first site main, second secondary, rest subs).
func NewBoard(sites []Site) (*Board, error) {
	if len(sites) == 0 {
		return nil, fmt.Errorf("board needs at least one site")
	}
	b := &Board{
		sites: append([]Site(nil), sites...),
		index: make(map[SiteID]Site, len(sites)),
	}
	for _, s := range sites {
		if s.ID == NoSite {
			return nil, fmt.Errorf("%w: empty site id", ErrUnknownSite)
		}
		if _, dup := b.index[s.ID]; dup {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateSite, s.ID)
		}
		b.index[s.ID] = s
	}
	b.Apply(Arrangement(SiteIDs(sites)))
	return b, nil
}

// Sites returns the configured sites in configuration order.
func (b *Board) Sites() []Site {
	return append([]Site(nil), b.sites...)
}

// Site looks up a configured site.
func (b *Board) Site(id SiteID) (Site, bool) {
	s, ok := b.index[id]
	return s, ok
}

// Main returns the main site, or NoSite.
func (b *Board) Main() SiteID { return b.main }

// Secondary returns the secondary site, or NoSite.
func (b *Board) Secondary() SiteID { return b.secondary }

// Subs returns the sub sites in display order.
func (b *Board) Subs() []SiteID { return append([]SiteID(nil), b.subs...) }

// SlotOf returns the slot a site currently occupies.
func (b *Board) SlotOf(id SiteID) (Slot, bool) {
	if id == NoSite {
		return Slot{}, false
	}
	switch id {
	case b.main:
		return MainSlot(), true
	case b.secondary:
		return SecondarySlot(), true
	}
	for i, s := range b.subs {
		if s == id {
			return SubSlot(i), true
		}
	}
	return Slot{}, false
}

// Arrangement derives the persistable snapshot.
func (b *Board) Arrangement() Arrangement {
	arr := make(Arrangement, 0, 2+len(b.subs))
	arr = append(arr, b.main, b.secondary)
	return append(arr, b.subs...)
}

// Apply resets every site to no slot and reassigns them from arr: index 0 is
// main, 1 secondary, the rest subs in order. Unknown and repeated identifiers
// are skipped. Configured sites the arrangement does not name are appended
// as subs in configuration order. If no known site lands in main the board is
// left untouched and Apply returns false.
func (b *Board) Apply(arr Arrangement) bool {
	mainID := arr.Main()
	if _, ok := b.index[mainID]; !ok {
		return false
	}

	placed := map[SiteID]bool{mainID: true}
	secondary := NoSite
	if id := arr.Secondary(); id != NoSite && !placed[id] {
		if _, ok := b.index[id]; ok {
			secondary = id
			placed[id] = true
		}
	}

	var subs []SiteID
	for _, id := range arr.Subs() {
		if _, ok := b.index[id]; !ok || placed[id] {
			continue
		}
		subs = append(subs, id)
		placed[id] = true
	}
	for _, s := range b.sites {
		if !placed[s.ID] {
			subs = append(subs, s.ID)
			placed[s.ID] = true
		}
	}

	b.main, b.secondary, b.subs = mainID, secondary, subs
	return true
}

// SwapMainWithSub exchanges main with the named sub panel. The displaced main
// takes the sub's index, or is appended when that index no longer exists.
func (b *Board) SwapMainWithSub(id SiteID) bool {
	if b.main == NoSite {
		return false
	}
	slot, ok := b.SlotOf(id)
	if !ok || slot.Kind != SlotSub {
		return false
	}
	prevMain := b.main
	subs := removeAt(b.subs, slot.Index)
	b.subs = insertAt(subs, slot.Index, prevMain)
	b.main = id
	return true
}

// SwapMainWithSecondary exchanges main and secondary.
func (b *Board) SwapMainWithSecondary() bool {
	if b.main == NoSite || b.secondary == NoSite {
		return false
	}
	b.main, b.secondary = b.secondary, b.main
	return true
}

// Panels derives the presentation view: main first, then secondary, then subs.
func (b *Board) Panels() []Panel {
	panels := make([]Panel, 0, len(b.sites))
	add := func(id SiteID, slot Slot) {
		if id == NoSite {
			return
		}
		panels = append(panels, Panel{Site: b.index[id], Slot: slot, Mode: ModeForSlot(slot)})
	}
	add(b.main, MainSlot())
	add(b.secondary, SecondarySlot())
	for i, id := range b.subs {
		add(id, SubSlot(i))
	}
	return panels
}

// Clone returns an independent copy of the board.
func (b *Board) Clone() *Board {
	out := &Board{
		sites:     append([]Site(nil), b.sites...),
		index:     make(map[SiteID]Site, len(b.index)),
		main:      b.main,
		secondary: b.secondary,
		subs:      append([]SiteID(nil), b.subs...),
	}
	for k, v := range b.index {
		out.index[k] = v
	}
	return out
}

func removeAt(ids []SiteID, i int) []SiteID {
	out := make([]SiteID, 0, len(ids))
	out = append(out, ids[:i]...)
	return append(out, ids[i+1:]...)
}

func insertAt(ids []SiteID, i int, id SiteID) []SiteID {
	if i < 0 || i > len(ids) {
		return append(ids, id)
	}
	out := make([]SiteID, 0, len(ids)+1)
	out = append(out, ids[:i]...)
	out = append(out, id)
	return append(out, ids[i:]...)
}
