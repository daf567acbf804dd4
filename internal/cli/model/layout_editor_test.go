package model

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bnema/feedwall/internal/cli/styles"
	"github.com/bnema/feedwall/internal/domain/entity"
	"github.com/bnema/feedwall/internal/infrastructure/config"
)

func newTestEditor(current entity.Arrangement) LayoutEditorModel {
	theme := styles.NewTheme(config.DefaultConfig())
	defaults := entity.Arrangement{"x", "", "youtube", "tiktok", "instagram", "threads"}
	return NewLayoutEditor(theme, entity.DefaultSites(), current, defaults)
}

func runeKey(r rune) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}
}

func press(t *testing.T, m LayoutEditorModel, keys ...tea.KeyMsg) LayoutEditorModel {
	t.Helper()
	for _, k := range keys {
		next, _ := m.Update(k)
		var ok bool
		m, ok = next.(LayoutEditorModel)
		require.True(t, ok)
	}
	return m
}

func TestLayoutEditor_GrabAndMove(t *testing.T) {
	m := newTestEditor(entity.Arrangement{"x", "youtube", "tiktok", "instagram", "threads"})

	m = press(t, m,
		tea.KeyMsg{Type: tea.KeyDown},
		tea.KeyMsg{Type: tea.KeyDown},
		tea.KeyMsg{Type: tea.KeySpace},
		tea.KeyMsg{Type: tea.KeyUp},
		tea.KeyMsg{Type: tea.KeyUp},
		tea.KeyMsg{Type: tea.KeySpace},
	)

	assert.False(t, m.Grabbed())
	assert.Equal(t, 0, m.Cursor())
	assert.Equal(t, entity.Arrangement{"tiktok", "x", "youtube", "instagram", "threads"}, m.Arrangement())
}

func TestLayoutEditor_ShiftMove(t *testing.T) {
	m := newTestEditor(entity.Arrangement{"x", "youtube", "tiktok"})

	m = press(t, m, runeKey('J'), runeKey('J'))
	assert.Equal(t, entity.Arrangement{"youtube", "tiktok", "x"}, m.Arrangement())
	assert.Equal(t, 2, m.Cursor())

	m = press(t, m, runeKey('J'))
	assert.Equal(t, entity.Arrangement{"youtube", "tiktok", "x"}, m.Arrangement(), "moving past the end is ignored")
}

func TestLayoutEditor_ToggleSecondary(t *testing.T) {
	m := newTestEditor(entity.Arrangement{"x", "youtube", "tiktok"})

	m = press(t, m, runeKey('s'))
	assert.Equal(t, entity.Arrangement{"x", "", "youtube", "tiktok"}, m.Arrangement())

	m = press(t, m, runeKey('s'))
	assert.Equal(t, entity.Arrangement{"x", "youtube", "tiktok"}, m.Arrangement())
}

func TestLayoutEditor_EmptySecondaryNeverReachesMain(t *testing.T) {
	m := newTestEditor(entity.Arrangement{"x", "", "youtube"})

	m = press(t, m, runeKey('J'))
	assert.Equal(t, entity.Arrangement{"x", "", "youtube"}, m.Arrangement())
	assert.Contains(t, m.View(), "cannot be moved")

	m = press(t, m, tea.KeyMsg{Type: tea.KeyDown}, tea.KeyMsg{Type: tea.KeySpace})
	assert.False(t, m.Grabbed())

	m = press(t, m, runeKey('K'))
	assert.Equal(t, entity.Arrangement{"x", "", "youtube"}, m.Arrangement())
}

func TestLayoutEditor_NormalizesEmptyRows(t *testing.T) {
	m := newTestEditor(entity.Arrangement{"x", "", "youtube", "", "tiktok"})
	assert.Equal(t, entity.Arrangement{"x", "", "youtube", "tiktok"}, m.Arrangement())
}

func TestLayoutEditor_ResetLoadsDefaults(t *testing.T) {
	m := newTestEditor(entity.Arrangement{"threads", "x"})
	m = press(t, m, tea.KeyMsg{Type: tea.KeyDown}, runeKey('r'))

	assert.Equal(t, 0, m.Cursor())
	assert.Equal(t, entity.Arrangement{"x", "", "youtube", "tiktok", "instagram", "threads"}, m.Arrangement())
	assert.Contains(t, m.View(), "default layout loaded")
}

func TestLayoutEditor_SaveAndCancel(t *testing.T) {
	m := newTestEditor(entity.Arrangement{"x", "youtube"})

	next, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	saved := next.(LayoutEditorModel)
	assert.True(t, saved.Saved)
	assert.False(t, saved.Canceled)
	require.NotNil(t, cmd)

	next, cmd = m.Update(runeKey('q'))
	canceled := next.(LayoutEditorModel)
	assert.True(t, canceled.Canceled)
	assert.False(t, canceled.Saved)
	require.NotNil(t, cmd)
}

func TestLayoutEditor_View(t *testing.T) {
	m := newTestEditor(entity.Arrangement{"x", "", "youtube"})
	view := m.View()

	assert.Contains(t, view, "Edit layout")
	assert.Contains(t, view, "X (x)")
	assert.Contains(t, view, "(none)")
	assert.Contains(t, view, "sub 1")
}
