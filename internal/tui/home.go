package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"eduproject/internal/api"
	"eduproject/internal/app"
	"eduproject/internal/session"
)

const (
	tabDashboard = iota
	tabTeams
	tabMeetings
	tabProfile
	tabLookup
	tabCount
)

var tabNames = [tabCount]string{"dashboard", "teams", "meetings", "profile", "lookup"}

// Home is the authenticated flow for both roles. The role never changes for
// the lifetime of one Home: the gate remounts it whenever the published
// session changes role.
type Home struct {
	app   *app.Application
	theme Theme
	keys  keyMap

	snap  session.Snapshot
	guide bool
	tab   int

	dashGen     int
	dashLoading bool
	dash        *api.Dashboard
	dashErr     string

	profGen     int
	profLoading bool
	profile     *api.UserProfile
	profErr     string

	teams    *TeamsTab
	meetings *MeetingsTab
	lookup   *LookupTab

	width  int
	height int
}

func NewHome(application *app.Application, theme Theme, snap session.Snapshot) *Home {
	guide := snap.Profile != nil && snap.Profile.Role == api.RoleGuide
	return &Home{
		app:      application,
		theme:    theme,
		keys:     defaultKeyMap(),
		snap:     snap,
		guide:    guide,
		profile:  snap.Profile,
		teams:    NewTeamsTab(application, theme, snap.Token, guide),
		meetings: NewMeetingsTab(application, theme, snap.Token, guide),
		lookup:   NewLookupTab(application, theme),
		width:    80,
		height:   24,
	}
}

func (m *Home) Init() tea.Cmd {
	return m.fetchDashboard()
}

func (m *Home) fetchDashboard() tea.Cmd {
	m.dashGen++
	gen := m.dashGen
	m.dashLoading = true
	m.dashErr = ""
	return func() tea.Msg {
		var (
			dash *api.Dashboard
			err  error
		)
		if m.guide {
			dash, err = m.app.Client.GuideDashboard(background(), m.snap.Token)
		} else {
			dash, err = m.app.Client.StudentDashboard(background(), m.snap.Token)
		}
		return dashboardMsg{gen: gen, dash: dash, err: err}
	}
}

func (m *Home) fetchProfile() tea.Cmd {
	m.profGen++
	gen := m.profGen
	m.profLoading = true
	m.profErr = ""
	return func() tea.Msg {
		profile, err := m.app.Client.MyProfile(background(), m.snap.Token)
		return profileMsg{gen: gen, profile: profile, err: err}
	}
}

// authFailure applies the session-invalidation rule: a 401 on any
// authenticated endpoint means the token is dead, so force re-login.
func (m *Home) authFailure(err error) tea.Cmd {
	if api.IsUnauthorized(err) {
		return logoutCmd(m.app.Store)
	}
	return nil
}

func (m *Home) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.teams.SetSize(msg.Width, msg.Height)
		m.meetings.SetSize(msg.Width, msg.Height)
		m.lookup.SetSize(msg.Width, msg.Height)
		return m, nil

	case dashboardMsg:
		if msg.gen != m.dashGen {
			return m, nil
		}
		m.dashLoading = false
		if msg.err != nil {
			if cmd := m.authFailure(msg.err); cmd != nil {
				return m, cmd
			}
			m.dashErr = msg.err.Error()
			return m, nil
		}
		m.dash = msg.dash
		return m, nil

	case profileMsg:
		if msg.gen != m.profGen {
			return m, nil
		}
		m.profLoading = false
		if msg.err != nil {
			if cmd := m.authFailure(msg.err); cmd != nil {
				return m, cmd
			}
			m.profErr = msg.err.Error()
			return m, nil
		}
		m.profile = msg.profile
		return m, nil

	case logoutMsg:
		if msg.err != nil {
			m.dashErr = msg.err.Error()
		}
		return m, nil

	case teamsMsg, teamDetailMsg:
		cmd, unauthorized := m.teams.Handle(msg)
		if unauthorized {
			return m, logoutCmd(m.app.Store)
		}
		return m, cmd

	case meetingsMsg, meetingDetailMsg, momDataMsg, actionDoneMsg:
		cmd, unauthorized := m.meetings.Handle(msg)
		if unauthorized {
			return m, logoutCmd(m.app.Store)
		}
		return m, cmd

	case lookupMsg:
		return m, m.lookup.Handle(msg)

	case tea.KeyMsg:
		// Input-capturing tabs consume keys first.
		if m.tab == tabMeetings && m.meetings.CapturesInput() {
			cmd, _ := m.meetings.Handle(msg)
			return m, cmd
		}
		if m.tab == tabLookup && m.lookup.CapturesInput() {
			return m, m.lookup.Handle(msg)
		}
		switch {
		case key.Matches(msg, m.keys.Tab):
			m.tab = (m.tab + 1) % tabCount
			return m, m.enterTab()
		case key.Matches(msg, m.keys.ShiftTab):
			m.tab = (m.tab + tabCount - 1) % tabCount
			return m, m.enterTab()
		case key.Matches(msg, m.keys.Logout):
			return m, logoutCmd(m.app.Store)
		}
		switch msg.String() {
		case "1", "2", "3", "4", "5":
			m.tab = int(msg.String()[0] - '1')
			return m, m.enterTab()
		}
		switch m.tab {
		case tabDashboard:
			if msg.String() == "r" {
				return m, m.fetchDashboard()
			}
		case tabTeams:
			cmd, _ := m.teams.Handle(msg)
			return m, cmd
		case tabMeetings:
			cmd, _ := m.meetings.Handle(msg)
			return m, cmd
		case tabProfile:
			if msg.String() == "r" {
				return m, m.fetchProfile()
			}
		case tabLookup:
			return m, m.lookup.Handle(msg)
		}
		return m, nil
	}

	// Text inputs inside the capturing tabs need non-key messages too.
	if m.tab == tabMeetings && m.meetings.CapturesInput() {
		cmd, _ := m.meetings.Handle(msg)
		return m, cmd
	}
	if m.tab == tabLookup && m.lookup.CapturesInput() {
		return m, m.lookup.Handle(msg)
	}
	return m, nil
}

func (m *Home) enterTab() tea.Cmd {
	switch m.tab {
	case tabTeams:
		return m.teams.EnsureLoaded()
	case tabMeetings:
		return m.meetings.EnsureLoaded()
	case tabProfile:
		if m.profile == nil && !m.profLoading {
			return m.fetchProfile()
		}
	case tabLookup:
		if m.lookup.CapturesInput() {
			return textinput.Blink
		}
	}
	return nil
}

func (m *Home) header() string {
	role := "student"
	if m.guide {
		role = "guide"
	}
	name := ""
	if m.snap.Profile != nil {
		name = m.snap.Profile.Name
	}

	var tabs []string
	for i, label := range tabNames {
		if i == m.tab {
			tabs = append(tabs, m.theme.TabActive.Render(label))
		} else {
			tabs = append(tabs, m.theme.TabIdle.Render(label))
		}
	}

	return fmt.Sprintf("  %s %s  %s\n  %s\n",
		m.theme.Badge.Render(role),
		m.theme.Value.Render(name),
		m.theme.Muted.Render("eduproject"),
		strings.Join(tabs, m.theme.Muted.Render(" | ")))
}

func (m *Home) dashboardView() string {
	var b strings.Builder
	if m.dashLoading {
		b.WriteString("  " + m.theme.Muted.Render("loading dashboard...") + "\n")
		return b.String()
	}
	if m.dashErr != "" {
		b.WriteString("  " + m.theme.ErrText.Render(m.dashErr) + "\n")
		b.WriteString("  " + m.theme.Footer.Render("r retry") + "\n")
		return b.String()
	}
	if m.dash == nil {
		return "  " + m.theme.Muted.Render("no dashboard data") + "\n"
	}

	b.WriteString(fmt.Sprintf("  %s %s    %s %s\n",
		m.theme.Label.Render("teams"), m.theme.Value.Render(fmt.Sprintf("%d", m.dash.TeamCount)),
		m.theme.Label.Render("meetings"), m.theme.Value.Render(fmt.Sprintf("%d", m.dash.MeetingCount))))
	if m.guide && m.dash.PendingMomCount > 0 {
		b.WriteString(fmt.Sprintf("  %s %s\n",
			m.theme.Label.Render("pending MOMs"), m.theme.ErrText.Render(fmt.Sprintf("%d", m.dash.PendingMomCount))))
	}
	if !m.guide && m.dash.AttendanceRate > 0 {
		b.WriteString(fmt.Sprintf("  %s %s\n",
			m.theme.Label.Render("attendance"), m.theme.Value.Render(fmt.Sprintf("%.0f%%", m.dash.AttendanceRate*100))))
	}
	if len(m.dash.UpcomingMeetings) > 0 {
		b.WriteString("\n  " + m.theme.Label.Render("upcoming") + "\n")
		for _, mt := range m.dash.UpcomingMeetings {
			b.WriteString(fmt.Sprintf("   %s %s %s\n",
				m.theme.Muted.Render(mt.ScheduledAt), m.theme.Value.Render(mt.Title), m.theme.Muted.Render(mt.TeamName)))
		}
	}
	return b.String()
}

func (m *Home) profileView() string {
	var b strings.Builder
	if m.profLoading {
		return "  " + m.theme.Muted.Render("loading profile...") + "\n"
	}
	if m.profErr != "" {
		return "  " + m.theme.ErrText.Render(m.profErr) + "\n"
	}
	p := m.profile
	if p == nil {
		return "  " + m.theme.Muted.Render("no profile") + "\n"
	}
	row := func(label, value string) {
		if value != "" {
			b.WriteString(fmt.Sprintf("  %s %s\n", m.theme.Label.Render(label), m.theme.Value.Render(value)))
		}
	}
	row("name    ", p.Name)
	row("email   ", p.Email)
	row("role    ", string(p.Role))
	row("roll no ", p.RollNumber)
	row("branch  ", p.Branch)
	row("section ", p.Section)
	row("semester", p.Semester)
	return b.String()
}

func (m *Home) View() string {
	var b strings.Builder
	b.WriteString("\n" + m.header() + "\n")

	switch m.tab {
	case tabDashboard:
		b.WriteString(m.dashboardView())
	case tabTeams:
		b.WriteString(m.teams.View())
	case tabMeetings:
		b.WriteString(m.meetings.View())
	case tabProfile:
		b.WriteString(m.profileView())
	case tabLookup:
		b.WriteString(m.lookup.View())
	}

	b.WriteString("\n  " + m.theme.Footer.Render("tab switch | r refresh | ctrl+l logout | ctrl+c quit") + "\n")
	return b.String()
}
