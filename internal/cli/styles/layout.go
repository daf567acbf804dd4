package styles

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/bnema/feedwall/internal/domain/entity"
)

// LayoutRenderer renders the panel arrangement.
type LayoutRenderer struct {
	theme *Theme
}

// NewLayoutRenderer creates a new layout renderer with the given theme.
func NewLayoutRenderer(theme *Theme) *LayoutRenderer {
	return &LayoutRenderer{theme: theme}
}

// Render lists every panel in arrangement order with its slot and mode.
func (r *LayoutRenderer) Render(panels []entity.Panel, pinned bool) string {
	var sb strings.Builder
	sb.WriteString("\n  ")
	sb.WriteString(r.theme.Title.Render("Layout"))
	if pinned {
		sb.WriteString(" ")
		sb.WriteString(r.theme.Badge.Render(IconPin + " pinned"))
	}
	sb.WriteString("\n\n")

	if !hasSecondary(panels) {
		panels = withEmptySecondary(panels)
	}
	for _, p := range panels {
		sb.WriteString(r.RenderPanel(p))
		sb.WriteString("\n")
	}
	return sb.String()
}

// RenderPanel renders one row: slot, mode icon, name and id.
func (r *LayoutRenderer) RenderPanel(p entity.Panel) string {
	slotStyle := r.theme.Subtle.Width(12)
	if p.Site.ID == entity.NoSite {
		return fmt.Sprintf("    %s   %s", slotStyle.Render(p.Slot.String()), r.theme.Subtle.Render("(empty)"))
	}

	icon := IconMobile
	if p.Mode == entity.ModeDesktop {
		icon = IconDesk
	}
	nameStyle := r.theme.Normal
	if p.Slot.Kind == entity.SlotMain {
		nameStyle = r.theme.Highlight
	}
	return fmt.Sprintf("    %s %s %s %s",
		slotStyle.Render(p.Slot.String()),
		lipgloss.NewStyle().Foreground(r.theme.Accent).Render(icon),
		nameStyle.Render(p.Site.Name),
		r.theme.Subtle.Render("("+string(p.Site.ID)+")"),
	)
}

// RenderSwap reports the outcome of a swap or reset.
func (r *LayoutRenderer) RenderSwap(changed bool, arr entity.Arrangement, reason string) string {
	if !changed {
		iconStyle := lipgloss.NewStyle().Foreground(r.theme.Warning)
		return fmt.Sprintf("\n  %s Layout unchanged: %s\n", iconStyle.Render(IconWarning), reason)
	}
	iconStyle := lipgloss.NewStyle().Foreground(r.theme.Success)
	return fmt.Sprintf("\n  %s Layout saved %s\n",
		iconStyle.Render(IconCheck),
		r.theme.Subtle.Render("["+strings.Join(arr.Strings(), ", ")+"]"),
	)
}

func hasSecondary(panels []entity.Panel) bool {
	for _, p := range panels {
		if p.Slot.Kind == entity.SlotSecondary {
			return true
		}
	}
	return false
}

// withEmptySecondary inserts a placeholder row after main.
func withEmptySecondary(panels []entity.Panel) []entity.Panel {
	out := make([]entity.Panel, 0, len(panels)+1)
	for _, p := range panels {
		out = append(out, p)
		if p.Slot.Kind == entity.SlotMain {
			out = append(out, entity.Panel{Slot: entity.SecondarySlot(), Mode: entity.ModeMobile})
		}
	}
	return out
}
