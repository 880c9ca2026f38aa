package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"eduproject/internal/app"
)

// Login is the unauthenticated flow: email/password form, with the
// password-reset wizard reachable from it.
type Login struct {
	app   *app.Application
	theme Theme
	keys  keyMap

	email    textinput.Model
	password textinput.Model
	focus    int

	busy   bool
	errMsg string

	reset *Reset

	width int
}

func NewLogin(application *app.Application, theme Theme) *Login {
	email := textinput.New()
	email.Placeholder = "email"
	email.CharLimit = 120
	email.Focus()

	password := textinput.New()
	password.Placeholder = "password"
	password.CharLimit = 120
	password.EchoMode = textinput.EchoPassword
	password.EchoCharacter = '•'

	return &Login{
		app:      application,
		theme:    theme,
		keys:     defaultKeyMap(),
		email:    email,
		password: password,
		width:    80,
	}
}

func (m *Login) Init() tea.Cmd {
	return textinput.Blink
}

func (m *Login) submit() tea.Cmd {
	email := strings.TrimSpace(m.email.Value())
	password := m.password.Value()
	return func() tea.Msg {
		result, err := m.app.Client.Login(background(), email, password)
		if err != nil {
			return loginDoneMsg{err: err}
		}
		// The store publish moves the gate to the authenticated flow.
		return loginDoneMsg{err: m.app.Store.Login(*result)}
	}
}

func (m *Login) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if m.reset != nil {
		done, cmd := m.reset.Update(msg)
		if done {
			m.reset = nil
			return m, textinput.Blink
		}
		return m, cmd
	}

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		return m, nil

	case loginDoneMsg:
		m.busy = false
		if msg.err != nil {
			m.errMsg = msg.err.Error()
		}
		return m, nil

	case tea.KeyMsg:
		if m.busy {
			return m, nil
		}
		if key.Matches(msg, m.keys.Forgot) {
			m.reset = NewReset(m.app, m.theme, strings.TrimSpace(m.email.Value()))
			return m, m.reset.Init()
		}
		switch msg.String() {
		case "tab", "shift+tab", "up", "down":
			m.focus = (m.focus + 1) % 2
			if m.focus == 0 {
				m.password.Blur()
				return m, m.email.Focus()
			}
			m.email.Blur()
			return m, m.password.Focus()
		case "enter":
			if m.focus == 0 {
				m.focus = 1
				m.email.Blur()
				return m, m.password.Focus()
			}
			if strings.TrimSpace(m.email.Value()) == "" || m.password.Value() == "" {
				m.errMsg = "email and password are required"
				return m, nil
			}
			m.busy = true
			m.errMsg = ""
			return m, m.submit()
		}
	}

	var cmd tea.Cmd
	if m.focus == 0 {
		m.email, cmd = m.email.Update(msg)
	} else {
		m.password, cmd = m.password.Update(msg)
	}
	return m, cmd
}

func (m *Login) View() string {
	if m.reset != nil {
		return m.reset.View()
	}

	var b strings.Builder
	b.WriteString("\n  " + m.theme.Title.Render("EduProject") + "\n\n")
	b.WriteString("  " + m.theme.Label.Render("email") + "\n")
	b.WriteString("  " + m.email.View() + "\n\n")
	b.WriteString("  " + m.theme.Label.Render("password") + "\n")
	b.WriteString("  " + m.password.View() + "\n\n")

	if m.busy {
		b.WriteString("  " + m.theme.Muted.Render("signing in...") + "\n")
	}
	if m.errMsg != "" {
		b.WriteString("  " + m.theme.ErrText.Render(m.errMsg) + "\n")
	}

	b.WriteString("\n  " + m.theme.Footer.Render("enter sign in | ctrl+f forgot password | ctrl+c quit") + "\n")
	return b.String()
}
