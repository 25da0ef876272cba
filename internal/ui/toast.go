package ui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

type toastLevel int

const (
	toastInfo toastLevel = iota
	toastSuccess
	toastWarning
	toastDanger
)

// toast is a transient footer notification. id distinguishes it from the
// toasts it replaced so an older expiry does not clear it.
type toast struct {
	id    int
	level toastLevel
	text  string
}

func (t toast) visible() bool {
	return t.text != ""
}

// showToast replaces the current toast and schedules its expiry.
func (m *Model) showToast(level toastLevel, msg string) tea.Cmd {
	id := m.toast.id + 1
	m.toast = toast{id: id, level: level, text: msg}
	return tea.Tick(ToastDuration, func(time.Time) tea.Msg {
		return toastExpiredMsg{id: id}
	})
}

func (m Model) toastStyle(level toastLevel) lipgloss.Style {
	styles := m.theme.Styles()
	switch level {
	case toastSuccess:
		return styles.SuccessText
	case toastWarning:
		return styles.WarningText.Bold(true)
	case toastDanger:
		return styles.DangerText
	default:
		return styles.InfoText
	}
}
