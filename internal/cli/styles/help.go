package styles

import (
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/lipgloss"
)

// KeyMap defines keybindings that can be rendered as help.
type KeyMap interface {
	ShortHelp() []key.Binding
	FullHelp() [][]key.Binding
}

// LayoutKeyMap defines keybindings for the layout editor.
type LayoutKeyMap struct {
	Up        key.Binding
	Down      key.Binding
	Grab      key.Binding
	MoveUp    key.Binding
	MoveDown  key.Binding
	Secondary key.Binding
	Reset     key.Binding
	Save      key.Binding
	Help      key.Binding
	Quit      key.Binding
}

// ShortHelp returns keybindings to show in compact help.
func (k LayoutKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Grab, k.Save, k.Help, k.Quit}
}

// FullHelp returns keybindings for expanded help.
func (k LayoutKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down},
		{k.Grab, k.MoveUp, k.MoveDown},
		{k.Secondary, k.Reset},
		{k.Save, k.Help, k.Quit},
	}
}

// DefaultLayoutKeyMap returns the default layout editor keybindings.
func DefaultLayoutKeyMap() LayoutKeyMap {
	return LayoutKeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "down"),
		),
		Grab: key.NewBinding(
			key.WithKeys(" "),
			key.WithHelp("space", "grab/drop"),
		),
		MoveUp: key.NewBinding(
			key.WithKeys("K", "shift+up"),
			key.WithHelp("K", "move up"),
		),
		MoveDown: key.NewBinding(
			key.WithKeys("J", "shift+down"),
			key.WithHelp("J", "move down"),
		),
		Secondary: key.NewBinding(
			key.WithKeys("s"),
			key.WithHelp("s", "toggle secondary"),
		),
		Reset: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "default layout"),
		),
		Save: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "save"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "esc", "ctrl+c"),
			key.WithHelp("q", "cancel"),
		),
	}
}

// NewStyledHelp creates a themed help model.
func NewStyledHelp(theme *Theme) help.Model {
	h := help.New()
	h.Styles.ShortKey = lipgloss.NewStyle().Foreground(theme.Accent)
	h.Styles.ShortDesc = lipgloss.NewStyle().Foreground(theme.Muted)
	h.Styles.ShortSeparator = lipgloss.NewStyle().Foreground(theme.Border)
	h.Styles.FullKey = lipgloss.NewStyle().Foreground(theme.Accent)
	h.Styles.FullDesc = lipgloss.NewStyle().Foreground(theme.Text)
	h.Styles.FullSeparator = lipgloss.NewStyle().Foreground(theme.Border)
	return h
}
