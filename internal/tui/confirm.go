package tui

import (
	"fmt"
	"strings"

	"github.com/braindrive/chat-plugin/internal/i18n"
	tea "github.com/charmbracelet/bubbletea"
)

// ConfirmOption represents one answer of a yes/no prompt
type ConfirmOption struct {
	Value       bool
	Label       string
	Description string
}

// ConfirmModel is the bubbletea model for a yes/no confirmation.
// The cursor starts on "no".
type ConfirmModel struct {
	prompt    string
	detail    string
	options   []ConfirmOption
	cursor    int
	selected  bool
	quitting  bool
	confirmed bool
}

// NewUninstallConfirmModel creates the prompt shown before removing a user's records
func NewUninstallConfirmModel(slug, userID string) ConfirmModel {
	return ConfirmModel{
		prompt: i18n.T("uninstall.confirm.prompt", map[string]any{"Plugin": slug, "User": userID}),
		detail: fmt.Sprintf("%s / %s", slug, userID),
		options: []ConfirmOption{
			{
				Value:       true,
				Label:       i18n.T("confirm.option.yes", nil),
				Description: i18n.T("uninstall.confirm.yes.desc", nil),
			},
			{
				Value:       false,
				Label:       i18n.T("confirm.option.no", nil),
				Description: i18n.T("uninstall.confirm.no.desc", nil),
			},
		},
		cursor: 1,
	}
}

func (m ConfirmModel) Init() tea.Cmd {
	return nil
}

func (m ConfirmModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q":
			m.quitting = true
			m.selected = false
			return m, tea.Quit

		case "up", "k":
			if m.cursor > 0 {
				m.cursor--
			}

		case "down", "j":
			if m.cursor < len(m.options)-1 {
				m.cursor++
			}

		case "y":
			m.selected = true
			m.confirmed = true
			m.quitting = true
			return m, tea.Quit

		case "n", "esc":
			m.selected = false
			m.confirmed = true
			m.quitting = true
			return m, tea.Quit

		case "enter", " ":
			m.selected = m.options[m.cursor].Value
			m.confirmed = true
			m.quitting = true
			return m, tea.Quit
		}
	}

	return m, nil
}

func (m ConfirmModel) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder

	b.WriteString(titleStyle.Render(m.prompt))
	b.WriteString("\n\n")
	b.WriteString("  " + codeStyle.Render(m.detail))
	b.WriteString("\n\n")

	for i, opt := range m.options {
		cursor := "  "
		if i == m.cursor {
			cursor = "▸ "
		}

		if i == m.cursor {
			b.WriteString(selectedStyle.Render(cursor + opt.Label))
			b.WriteString("\n")
			b.WriteString(descSelectedStyle.Render(opt.Description))
		} else {
			b.WriteString(optionStyle.Render(cursor + opt.Label))
			b.WriteString("\n")
			b.WriteString(descStyle.Render(opt.Description))
		}
		b.WriteString("\n\n")
	}

	help := helpStyle.Render("↑/↓: " + i18n.T("help.move", nil) + " | Enter: " + i18n.T("help.select", nil) + " | y/n")
	b.WriteString(help)

	return boxStyle.Render(b.String())
}

// Selected returns whether the user answered yes
func (m ConfirmModel) Selected() bool {
	return m.selected
}

// Confirmed returns whether the user answered at all
func (m ConfirmModel) Confirmed() bool {
	return m.confirmed
}

// RunUninstallConfirm asks whether userID's records for slug should be removed
func RunUninstallConfirm(slug, userID string) (bool, error) {
	p := tea.NewProgram(NewUninstallConfirmModel(slug, userID))

	finalModel, err := p.Run()
	if err != nil {
		return false, err
	}

	m := finalModel.(ConfirmModel)
	return m.Confirmed() && m.Selected(), nil
}
