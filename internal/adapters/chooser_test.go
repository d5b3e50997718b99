package adapters

import (
	"testing"

	errbuilder "github.com/ZanzyTHEbar/errbuilder-go"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ---------------------------------------------------------------------------
// FirstChoiceChooser
// ---------------------------------------------------------------------------

func TestFirstChoiceChooser(t *testing.T) {
	chooser := NewFirstChoiceChooser()
	index, err := chooser.Choose(t.Context(), "numpy", []string{"^1.26", "^2.0"})
	require.NoError(t, err)
	assert.Equal(t, 0, index)
}

func TestFirstChoiceChooserNoOptions(t *testing.T) {
	chooser := NewFirstChoiceChooser()
	_, err := chooser.Choose(t.Context(), "numpy", nil)
	require.Error(t, err)
	assert.Equal(t, errbuilder.CodeInvalidArgument, errbuilder.CodeOf(err))
}

// ---------------------------------------------------------------------------
// choiceListModel
// ---------------------------------------------------------------------------

func updateChoiceModel(t *testing.T, m choiceListModel, msg tea.Msg) choiceListModel {
	t.Helper()
	updated, _ := m.Update(msg)
	next, ok := updated.(choiceListModel)
	require.True(t, ok)
	return next
}

func TestChoiceListModelNavigation(t *testing.T) {
	m := newChoiceListModel("numpy", []string{"^1.26", "^2.0", "^3.0"})
	assert.Equal(t, 0, m.cursor)
	assert.Equal(t, -1, m.selected)

	m = updateChoiceModel(t, m, tea.KeyMsg{Type: tea.KeyDown})
	assert.Equal(t, 1, m.cursor)
	m = updateChoiceModel(t, m, tea.KeyMsg{Type: tea.KeyDown})
	m = updateChoiceModel(t, m, tea.KeyMsg{Type: tea.KeyDown})
	// Cursor stops at the last option.
	assert.Equal(t, 2, m.cursor)

	m = updateChoiceModel(t, m, tea.KeyMsg{Type: tea.KeyUp})
	assert.Equal(t, 1, m.cursor)
}

func TestChoiceListModelSelect(t *testing.T) {
	m := newChoiceListModel("numpy", []string{"^1.26", "^2.0"})
	m = updateChoiceModel(t, m, tea.KeyMsg{Type: tea.KeyDown})
	m = updateChoiceModel(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	assert.Equal(t, 1, m.selected)
}

func TestChoiceListModelQuitWithoutSelection(t *testing.T) {
	m := newChoiceListModel("numpy", []string{"^1.26", "^2.0"})
	m = updateChoiceModel(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}})
	assert.Equal(t, -1, m.selected)
}

func TestChoiceListModelView(t *testing.T) {
	m := newChoiceListModel("numpy", []string{"^1.26", "^2.0"})
	view := m.View()
	assert.Contains(t, view, "numpy")
	assert.Contains(t, view, "^1.26")
	assert.Contains(t, view, "^2.0")
}

func TestPromptChooserNoOptions(t *testing.T) {
	chooser := NewPromptChooser()
	_, err := chooser.Choose(t.Context(), "numpy", nil)
	require.Error(t, err)
	assert.Equal(t, errbuilder.CodeInvalidArgument, errbuilder.CodeOf(err))
}
