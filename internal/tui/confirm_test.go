package tui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
)

func press(m ConfirmModel, keys ...tea.KeyMsg) (ConfirmModel, tea.Cmd) {
	var cmd tea.Cmd
	for _, k := range keys {
		var next tea.Model
		next, cmd = m.Update(k)
		m = next.(ConfirmModel)
	}
	return m, cmd
}

func TestConfirmDefaultsToNo(t *testing.T) {
	m, cmd := press(NewUninstallConfirmModel("BrainDriveChat", "u1"), tea.KeyMsg{Type: tea.KeyEnter})
	assert.NotNil(t, cmd)
	assert.True(t, m.Confirmed())
	assert.False(t, m.Selected())
}

func TestConfirmMoveUpThenEnter(t *testing.T) {
	m, _ := press(NewUninstallConfirmModel("BrainDriveChat", "u1"),
		tea.KeyMsg{Type: tea.KeyUp},
		tea.KeyMsg{Type: tea.KeyEnter},
	)
	assert.True(t, m.Confirmed())
	assert.True(t, m.Selected())
}

func TestConfirmShortcuts(t *testing.T) {
	yes, _ := press(NewUninstallConfirmModel("BrainDriveChat", "u1"), tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("y")})
	assert.True(t, yes.Selected())

	no, _ := press(NewUninstallConfirmModel("BrainDriveChat", "u1"),
		tea.KeyMsg{Type: tea.KeyUp},
		tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("n")},
	)
	assert.True(t, no.Confirmed())
	assert.False(t, no.Selected())
}

func TestConfirmQuitIsNotConfirmed(t *testing.T) {
	m, _ := press(NewUninstallConfirmModel("BrainDriveChat", "u1"), tea.KeyMsg{Type: tea.KeyCtrlC})
	assert.False(t, m.Confirmed())
	assert.False(t, m.Selected())
	assert.Empty(t, m.View())
}

func TestConfirmView(t *testing.T) {
	view := NewUninstallConfirmModel("BrainDriveChat", "u1").View()
	assert.Contains(t, view, "BrainDriveChat / u1")
}
