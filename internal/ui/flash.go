package ui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

type flashLevel int

const (
	flashInfo flashLevel = iota
	flashSuccess
	flashWarning
	flashDanger
)

// flash is a one-line transient message shown under the content area.
// id increases with every message so an expiry only clears its own text.
type flash struct {
	id    int
	text  string
	level flashLevel
}

type flashExpiredMsg struct{ id int }

func (m Model) setFlash(text string, level flashLevel) (tea.Model, tea.Cmd) {
	id := m.flash.id + 1
	m.flash = flash{id: id, text: text, level: level}
	return m, tea.Tick(flashDuration, func(time.Time) tea.Msg {
		return flashExpiredMsg{id: id}
	})
}

func (m Model) renderFlash() string {
	if m.flash.text == "" {
		return ""
	}
	styles := m.theme.Styles()
	var style lipgloss.Style
	switch m.flash.level {
	case flashSuccess:
		style = styles.SuccessText
	case flashWarning:
		style = styles.WarningText
	case flashDanger:
		style = styles.DangerText
	default:
		style = styles.InfoText
	}
	return style.Padding(0, 1).Render(truncate(m.flash.text, max(m.width-2, 1)))
}
