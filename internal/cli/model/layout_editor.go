// Package model contains the bubbletea models behind the interactive CLI
// commands.
package model

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/bnema/feedwall/internal/cli/styles"
	"github.com/bnema/feedwall/internal/domain/entity"
)

// LayoutEditorModel reorders the arrangement rows. Row 0 is main, row 1 is
// secondary and may be empty, the rest are subs.
type LayoutEditorModel struct {
	rows     []entity.SiteID
	sites    map[entity.SiteID]entity.Site
	defaults entity.Arrangement

	cursor  int
	grabbed bool
	notice  string

	// Saved is set when the user confirmed the layout.
	Saved bool
	// Canceled is set when the user quit without saving.
	Canceled bool

	keys  styles.LayoutKeyMap
	help  help.Model
	theme *styles.Theme
}

// NewLayoutEditor starts the editor at current. Both arrangements must
// already be normalized against sites.
func NewLayoutEditor(theme *styles.Theme, sites []entity.Site, current, defaults entity.Arrangement) LayoutEditorModel {
	index := make(map[entity.SiteID]entity.Site, len(sites))
	for _, s := range sites {
		index[s.ID] = s
	}
	return LayoutEditorModel{
		rows:     normalizeRows(current),
		sites:    index,
		defaults: defaults.Clone(),
		keys:     styles.DefaultLayoutKeyMap(),
		help:     styles.NewStyledHelp(theme),
		theme:    theme,
	}
}

// normalizeRows keeps NoSite only at index 1.
func normalizeRows(arr entity.Arrangement) []entity.SiteID {
	rows := make([]entity.SiteID, 0, len(arr))
	for i, id := range arr {
		if id == entity.NoSite && i != 1 {
			continue
		}
		rows = append(rows, id)
	}
	return rows
}

// Init implements tea.Model.
func (m LayoutEditorModel) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m LayoutEditorModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.help.Width = msg.Width
		return m, nil
	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m LayoutEditorModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	m.notice = ""
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.Canceled = true
		return m, tea.Quit
	case key.Matches(msg, m.keys.Save):
		m.Saved = true
		return m, tea.Quit
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
	case key.Matches(msg, m.keys.Grab):
		m = m.toggleGrab()
	case key.Matches(msg, m.keys.MoveUp):
		m = m.move(-1)
	case key.Matches(msg, m.keys.MoveDown):
		m = m.move(1)
	case key.Matches(msg, m.keys.Up):
		if m.grabbed {
			m = m.move(-1)
		} else if m.cursor > 0 {
			m.cursor--
		}
	case key.Matches(msg, m.keys.Down):
		if m.grabbed {
			m = m.move(1)
		} else if m.cursor < len(m.rows)-1 {
			m.cursor++
		}
	case key.Matches(msg, m.keys.Secondary):
		m = m.toggleSecondary()
	case key.Matches(msg, m.keys.Reset):
		m.rows = normalizeRows(m.defaults)
		m.cursor = 0
		m.grabbed = false
		m.notice = "default layout loaded"
	}
	return m, nil
}

func (m LayoutEditorModel) toggleGrab() LayoutEditorModel {
	if m.grabbed {
		m.grabbed = false
		return m
	}
	if m.rows[m.cursor] == entity.NoSite {
		m.notice = "the empty secondary slot cannot be moved"
		return m
	}
	m.grabbed = true
	return m
}

// move swaps the row under the cursor with its neighbour. The empty
// secondary row never moves, so main always holds a site.
func (m LayoutEditorModel) move(dir int) LayoutEditorModel {
	target := m.cursor + dir
	if target < 0 || target >= len(m.rows) {
		return m
	}
	if m.rows[m.cursor] == entity.NoSite || m.rows[target] == entity.NoSite {
		m.notice = "the empty secondary slot cannot be moved"
		return m
	}
	rows := append([]entity.SiteID(nil), m.rows...)
	rows[m.cursor], rows[target] = rows[target], rows[m.cursor]
	m.rows = rows
	m.cursor = target
	return m
}

// toggleSecondary empties the secondary slot, pushing its site to the front
// of the subs, or fills it again from the first sub.
func (m LayoutEditorModel) toggleSecondary() LayoutEditorModel {
	m.grabbed = false
	rows := make([]entity.SiteID, 0, len(m.rows)+1)
	if len(m.rows) > 1 && m.rows[1] == entity.NoSite {
		rows = append(rows, m.rows[0])
		rows = append(rows, m.rows[2:]...)
	} else {
		rows = append(rows, m.rows[0], entity.NoSite)
		rows = append(rows, m.rows[1:]...)
	}
	m.rows = rows
	if m.cursor >= len(m.rows) {
		m.cursor = len(m.rows) - 1
	}
	return m
}

// Arrangement returns the edited arrangement.
func (m LayoutEditorModel) Arrangement() entity.Arrangement {
	return append(entity.Arrangement(nil), m.rows...)
}

// Cursor returns the selected row.
func (m LayoutEditorModel) Cursor() int { return m.cursor }

// Grabbed reports whether the selected row follows the cursor.
func (m LayoutEditorModel) Grabbed() bool { return m.grabbed }

// View implements tea.Model.
func (m LayoutEditorModel) View() string {
	var sb strings.Builder
	sb.WriteString("\n  ")
	sb.WriteString(m.theme.Title.Render("Edit layout"))
	sb.WriteString("\n\n")

	for i, id := range m.rows {
		sb.WriteString(m.renderRow(i, id))
		sb.WriteString("\n")
	}

	if m.notice != "" {
		sb.WriteString("\n  ")
		sb.WriteString(m.theme.WarningStyle.Render(m.notice))
		sb.WriteString("\n")
	}
	sb.WriteString("\n  ")
	sb.WriteString(m.help.View(m.keys))
	sb.WriteString("\n")
	return sb.String()
}

func (m LayoutEditorModel) renderRow(i int, id entity.SiteID) string {
	label := rowLabel(i)
	name := "(none)"
	if id != entity.NoSite {
		name = string(id)
		if s, ok := m.sites[id]; ok && s.Name != "" {
			name = fmt.Sprintf("%s (%s)", s.Name, id)
		}
	}

	prefix := "  "
	style := m.theme.ListItem
	if i == m.cursor {
		prefix = styles.IconCursor + " "
		style = m.theme.ListItemSelected
		if m.grabbed {
			style = m.theme.ListItemGrabbed
		}
	}
	if id == entity.NoSite && i != m.cursor {
		style = m.theme.Subtle
	}
	return fmt.Sprintf("  %s%s %s",
		prefix,
		lipgloss.NewStyle().Width(11).Foreground(m.theme.Muted).Render(label),
		style.Render(name),
	)
}

func rowLabel(i int) string {
	switch i {
	case 0:
		return "main"
	case 1:
		return "secondary"
	default:
		return fmt.Sprintf("sub %d", i-1)
	}
}
