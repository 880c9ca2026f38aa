package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"eduproject/internal/app"
)

const (
	resetStepEmail = iota
	resetStepOTP
	resetStepPassword
	resetStepDone
)

// Reset walks the forgot-password flow: request an OTP, verify it, set the
// new password. Esc abandons the wizard at any point.
type Reset struct {
	app   *app.Application
	theme Theme

	step  int
	email string
	input textinput.Model

	busy      bool
	statusMsg string
	errMsg    string
}

func NewReset(application *app.Application, theme Theme, email string) *Reset {
	in := textinput.New()
	in.CharLimit = 120
	in.Placeholder = "email"
	if email != "" {
		in.SetValue(email)
	}
	in.Focus()

	return &Reset{
		app:   application,
		theme: theme,
		step:  resetStepEmail,
		input: in,
	}
}

func (m *Reset) Init() tea.Cmd {
	return textinput.Blink
}

func (m *Reset) runStep(step int, value string) tea.Cmd {
	return func() tea.Msg {
		switch step {
		case resetStepEmail:
			status, err := m.app.Client.ForgotPassword(background(), value)
			return resetDoneMsg{step: step, status: status, err: err}
		case resetStepOTP:
			status, err := m.app.Client.VerifyOTP(background(), m.email, value)
			return resetDoneMsg{step: step, status: status, err: err}
		default:
			status, err := m.app.Client.ChangePassword(background(), m.email, value)
			return resetDoneMsg{step: step, status: status, err: err}
		}
	}
}

// Update returns done=true when the wizard should close.
func (m *Reset) Update(msg tea.Msg) (bool, tea.Cmd) {
	switch msg := msg.(type) {
	case resetDoneMsg:
		m.busy = false
		if msg.err != nil {
			m.errMsg = msg.err.Error()
			return false, nil
		}
		m.errMsg = ""
		if msg.status != nil {
			m.statusMsg = msg.status.Message
		}
		switch msg.step {
		case resetStepEmail:
			m.step = resetStepOTP
			m.input.Reset()
			m.input.Placeholder = "otp code"
			m.input.EchoMode = textinput.EchoNormal
		case resetStepOTP:
			m.step = resetStepPassword
			m.input.Reset()
			m.input.Placeholder = "new password"
			m.input.EchoMode = textinput.EchoPassword
			m.input.EchoCharacter = '•'
		default:
			m.step = resetStepDone
		}
		return false, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "esc":
			return true, nil
		case "enter":
			if m.busy {
				return false, nil
			}
			if m.step == resetStepDone {
				return true, nil
			}
			value := strings.TrimSpace(m.input.Value())
			if value == "" {
				m.errMsg = "a value is required"
				return false, nil
			}
			if m.step == resetStepEmail {
				m.email = value
			}
			m.busy = true
			m.errMsg = ""
			return false, m.runStep(m.step, value)
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return false, cmd
}

func (m *Reset) View() string {
	var b strings.Builder
	b.WriteString("\n  " + m.theme.Title.Render("reset password") + "\n\n")

	switch m.step {
	case resetStepEmail:
		b.WriteString("  " + m.theme.Label.Render("account email") + "\n")
	case resetStepOTP:
		b.WriteString("  " + m.theme.Label.Render("otp sent to "+m.email) + "\n")
	case resetStepPassword:
		b.WriteString("  " + m.theme.Label.Render("new password") + "\n")
	case resetStepDone:
		b.WriteString("  " + m.theme.OkText.Render("password updated, sign in with the new one") + "\n")
		b.WriteString("\n  " + m.theme.Footer.Render("enter back to sign in") + "\n")
		return b.String()
	}

	b.WriteString("  " + m.input.View() + "\n\n")
	if m.busy {
		b.WriteString("  " + m.theme.Muted.Render("working...") + "\n")
	}
	if m.statusMsg != "" {
		b.WriteString("  " + m.theme.Muted.Render(m.statusMsg) + "\n")
	}
	if m.errMsg != "" {
		b.WriteString("  " + m.theme.ErrText.Render(m.errMsg) + "\n")
	}
	b.WriteString("\n  " + m.theme.Footer.Render("enter continue | esc back") + "\n")
	return b.String()
}
