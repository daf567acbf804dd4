package styles

import (
	"fmt"
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/bnema/feedwall/internal/domain/entity"
)

// SettingsRenderer renders the global controls and per-site overrides.
type SettingsRenderer struct {
	theme *Theme
}

// NewSettingsRenderer creates a new settings renderer with the given theme.
func NewSettingsRenderer(theme *Theme) *SettingsRenderer {
	return &SettingsRenderer{theme: theme}
}

// Render shows pinned, zoom, volume and any overrides.
func (r *SettingsRenderer) Render(c entity.GlobalControls) string {
	keyStyle := r.theme.Subtle.Width(10)
	valStyle := r.theme.Highlight

	pinned := "no"
	if c.Pinned {
		pinned = "yes"
	}

	var sb strings.Builder
	sb.WriteString("\n  " + r.theme.Title.Render("Controls") + "\n\n")
	fmt.Fprintf(&sb, "    %s %s\n", keyStyle.Render("pinned"), valStyle.Render(pinned))
	fmt.Fprintf(&sb, "    %s %s\n", keyStyle.Render("zoom"), valStyle.Render(entity.FormatPercent(c.Zoom)))
	fmt.Fprintf(&sb, "    %s %s %s\n",
		keyStyle.Render("volume"),
		valStyle.Render(entity.FormatPercent(c.Volume)),
		entity.VolumeIconFor(c.Volume).Glyph(),
	)

	r.renderOverrides(&sb, "Zoom overrides", c.SiteZoom)
	r.renderOverrides(&sb, "Volume overrides", c.SiteVolume)
	return sb.String()
}

func (r *SettingsRenderer) renderOverrides(sb *strings.Builder, title string, values map[entity.SiteID]float64) {
	if len(values) == 0 {
		return
	}
	ids := make([]string, 0, len(values))
	for id := range values {
		ids = append(ids, string(id))
	}
	sort.Strings(ids)

	sb.WriteString("\n  " + r.theme.Subtitle.Render(title) + "\n")
	for _, id := range ids {
		fmt.Fprintf(sb, "    %s %s\n",
			r.theme.Normal.Width(10).Render(id),
			r.theme.Highlight.Render(entity.FormatPercent(values[entity.SiteID(id)])),
		)
	}
}

// RenderUpdated confirms a changed setting.
func (r *SettingsRenderer) RenderUpdated(key, value string) string {
	iconStyle := lipgloss.NewStyle().Foreground(r.theme.Success)
	return fmt.Sprintf("\n  %s %s set to %s\n", iconStyle.Render(IconCheck), key, r.theme.Highlight.Render(value))
}

// RenderPermissions lists the permissions embedded sites are granted.
func (r *SettingsRenderer) RenderPermissions(allowed []entity.PermissionType) string {
	iconStyle := lipgloss.NewStyle().Foreground(r.theme.Success)
	var sb strings.Builder
	sb.WriteString("\n  " + r.theme.Title.Render("Granted permissions") + "\n\n")
	for _, p := range allowed {
		fmt.Fprintf(&sb, "    %s %s\n", iconStyle.Render(IconShield), r.theme.Normal.Render(string(p)))
	}
	sb.WriteString("\n  " + r.theme.Subtle.Render("Every other request is denied without a prompt.") + "\n")
	return sb.String()
}
