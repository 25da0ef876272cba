package ui

import (
	"errors"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/five82/asana/internal/api"
	"github.com/five82/asana/internal/catalog"
	"github.com/five82/asana/internal/pose"
)

// Auth form fields, in tab order.
const (
	fieldUsername = iota
	fieldPassword
	fieldConfirm
)

// authForm is the login / signup form state.
type authForm struct {
	signup     bool
	focus      int
	inputs     [3]textinput.Model
	err        string
	submitting bool
}

func newAuthForm(lang pose.Language) authForm {
	var f authForm
	for i := range f.inputs {
		in := textinput.New()
		in.Prompt = "› "
		in.CharLimit = 64
		if i != fieldUsername {
			in.EchoMode = textinput.EchoPassword
			in.EchoCharacter = '•'
		}
		f.inputs[i] = in
	}
	f.relabel(lang)
	return f
}

// relabel sets placeholders for lang.
func (f *authForm) relabel(lang pose.Language) {
	f.inputs[fieldUsername].Placeholder = text(txtUsername, lang)
	f.inputs[fieldPassword].Placeholder = text(txtPassword, lang)
	f.inputs[fieldConfirm].Placeholder = text(txtConfirm, lang)
}

func (f *authForm) style(styles Styles) {
	for i := range f.inputs {
		f.inputs[i].PromptStyle = styles.AccentText
		f.inputs[i].TextStyle = styles.Text
		f.inputs[i].PlaceholderStyle = styles.FaintText
	}
}

// fieldCount is the number of fields the current mode shows.
func (f authForm) fieldCount() int {
	if f.signup {
		return 3
	}
	return 2
}

// focusField moves the cursor to field i.
func (f *authForm) focusField(i int) tea.Cmd {
	f.focus = i
	for j := range f.inputs {
		f.inputs[j].Blur()
	}
	return f.inputs[i].Focus()
}

// reset clears every field and error.
func (f *authForm) reset() {
	for i := range f.inputs {
		f.inputs[i].Reset()
		f.inputs[i].Blur()
	}
	f.focus = fieldUsername
	f.err = ""
	f.submitting = false
}

func (f authForm) value(i int) string {
	return f.inputs[i].Value()
}

// displayUser returns the logged in user, empty for guests.
func (m Model) displayUser() string {
	if !m.loggedIn() {
		return ""
	}
	if m.user != "" {
		return m.user
	}
	return m.service.Session().UserID()
}

// openAuth switches to the account view.
func (m *Model) openAuth() tea.Cmd {
	m.currentView = ViewAuth
	m.auth.err = ""
	if m.loggedIn() {
		return nil
	}
	return m.auth.focusField(fieldUsername)
}

// handleAuthKey edits the login / signup form.
func (m Model) handleAuthKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case keyMatches(msg, m.keys.Escape):
		m.auth.reset()
		m.currentView = ViewList
		return m, nil

	case keyMatches(msg, m.keys.SwitchMode):
		m.auth.signup = !m.auth.signup
		m.auth.err = ""
		focus := m.auth.focus
		if focus >= m.auth.fieldCount() {
			focus = fieldUsername
		}
		cmd := m.auth.focusField(focus)
		return m, cmd

	case keyMatches(msg, m.keys.NextField):
		cmd := m.auth.focusField((m.auth.focus + 1) % m.auth.fieldCount())
		return m, cmd

	case keyMatches(msg, m.keys.PrevField):
		n := m.auth.fieldCount()
		cmd := m.auth.focusField((m.auth.focus + n - 1) % n)
		return m, cmd

	case keyMatches(msg, m.keys.Submit):
		cmd := m.submitAuth()
		return m, cmd
	}

	var cmd tea.Cmd
	m.auth.inputs[m.auth.focus], cmd = m.auth.inputs[m.auth.focus].Update(msg)
	return m, cmd
}

// submitAuth sends the form. Validation happens in the catalog so the
// messages match the server rules.
func (m *Model) submitAuth() tea.Cmd {
	if m.service == nil || m.auth.submitting {
		return nil
	}
	m.auth.err = ""
	m.auth.submitting = true

	username := strings.TrimSpace(m.auth.value(fieldUsername))
	password := m.auth.value(fieldPassword)
	if m.auth.signup {
		return signupCmd(m.ctx, m.service, catalog.Registration{
			Username: username,
			Password: password,
			Confirm:  m.auth.value(fieldConfirm),
		})
	}
	return loginCmd(m.ctx, m.service, catalog.Credentials{Username: username, Password: password})
}

// handleAuthDone applies a login or signup result.
func (m Model) handleAuthDone(msg authDoneMsg) (tea.Model, tea.Cmd) {
	m.auth.submitting = false
	if msg.err != nil {
		m.auth.err = authErrorText(msg.err, m.lang)
		return m, nil
	}

	m.user = msg.result.UserID
	m.auth.reset()
	m.currentView = ViewList
	key := ternaryKey(msg.signup, txtSignupSuccess, txtLoginSuccess)
	cmd := m.showToast(toastSuccess, text(key, m.lang))
	return m, cmd
}

// authErrorText picks the message shown under the form.
func authErrorText(err error, lang pose.Language) string {
	var verr *catalog.ValidationError
	if errors.As(err, &verr) {
		return verr.First(lang)
	}
	var aerr *api.Error
	if errors.As(err, &aerr) && aerr.Message != "" {
		return aerr.Message
	}
	return err.Error()
}

// handleAccountKey handles the account view of a logged in user.
func (m Model) handleAccountKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if !keyMatches(msg, m.keys.Logout) {
		return m, nil
	}
	if err := m.service.Auth.Logout(); err != nil {
		cmd := m.showToast(toastDanger, err.Error())
		return m, cmd
	}
	m.user = ""
	m.detail.bookmarkKnown = false
	toastCmd := m.showToast(toastInfo, text(txtLoggedOut, m.lang))
	focusCmd := m.auth.focusField(fieldUsername)
	return m, tea.Batch(toastCmd, focusCmd)
}

// renderAuth renders the account box centered in the content area.
func (m Model) renderAuth() string {
	styles := m.theme.Styles()
	var b strings.Builder

	if user := m.displayUser(); user != "" {
		b.WriteString(styles.MutedText.Render(text(txtLoggedInAs, m.lang)))
		b.WriteString("\n")
		b.WriteString(styles.AccentText.Bold(true).Render(user))
		b.WriteString("\n\n")
		b.WriteString(styles.WarningText.Render("o") + " " + styles.Text.Render(m.keys.Logout.Help().Desc))
		b.WriteString("\n")
		b.WriteString(styles.WarningText.Render("esc") + " " + styles.Text.Render(m.keys.Escape.Help().Desc))
	} else {
		title := text(ternaryKey(m.auth.signup, txtSignup, txtLogin), m.lang)
		b.WriteString(styles.Text.Bold(true).Render(title))
		b.WriteString("\n")
		b.WriteString(styles.FaintText.Render(strings.Repeat("─", 30)))
		b.WriteString("\n\n")

		for i := 0; i < m.auth.fieldCount(); i++ {
			b.WriteString(m.auth.inputs[i].View())
			b.WriteString("\n")
		}
		b.WriteString("\n")

		switch {
		case m.auth.submitting:
			b.WriteString(m.spinner.View() + " " + styles.MutedText.Render(text(txtSubmitting, m.lang)))
			b.WriteString("\n")
		case m.auth.err != "":
			b.WriteString(styles.DangerText.Render(m.auth.err))
			b.WriteString("\n")
		}
		b.WriteString(styles.FaintText.Render(text(ternaryKey(m.auth.signup, txtSwitchToLogin, txtSwitchToSignup), m.lang)))
	}

	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(m.theme.Accent)).
		Padding(1, 2).
		Width(44).
		Render(b.String())

	return lipgloss.Place(m.width, m.contentHeight(), lipgloss.Center, lipgloss.Center, box)
}
