package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"eduproject/internal/api"
	"eduproject/internal/app"
)

// TeamsTab lists the caller's teams and drills into one. Guides and students
// hit different endpoints but share the payload shape.
type TeamsTab struct {
	app   *app.Application
	theme Theme
	token string
	guide bool

	gen     int
	loading bool
	errMsg  string

	teams  []api.Team
	cursor int

	detail *api.TeamDetail

	width  int
	height int
}

func NewTeamsTab(application *app.Application, theme Theme, token string, guide bool) *TeamsTab {
	return &TeamsTab{app: application, theme: theme, token: token, guide: guide, width: 80, height: 24}
}

func (t *TeamsTab) SetSize(w, h int) { t.width, t.height = w, h }

// EnsureLoaded fetches the list the first time the tab is entered.
func (t *TeamsTab) EnsureLoaded() tea.Cmd {
	if t.teams != nil || t.loading {
		return nil
	}
	return t.fetchList()
}

func (t *TeamsTab) fetchList() tea.Cmd {
	t.gen++
	gen := t.gen
	t.loading = true
	t.errMsg = ""
	t.detail = nil
	return func() tea.Msg {
		var (
			teams []api.Team
			err   error
		)
		if t.guide {
			teams, err = t.app.Client.GuideTeams(background(), t.token)
		} else {
			teams, err = t.app.Client.StudentTeams(background(), t.token)
		}
		return teamsMsg{gen: gen, teams: teams, err: err}
	}
}

func (t *TeamsTab) fetchDetail(teamID string) tea.Cmd {
	t.gen++
	gen := t.gen
	t.loading = true
	t.errMsg = ""
	return func() tea.Msg {
		var (
			detail *api.TeamDetail
			err    error
		)
		if t.guide {
			detail, err = t.app.Client.TeamDetails(background(), t.token, teamID)
		} else {
			detail, err = t.app.Client.StudentTeamDetails(background(), t.token, teamID)
		}
		return teamDetailMsg{gen: gen, detail: detail, err: err}
	}
}

// Handle processes the tab's messages. unauthorized is true when the failure
// was a 401 and the owner should log the session out.
func (t *TeamsTab) Handle(msg tea.Msg) (cmd tea.Cmd, unauthorized bool) {
	switch msg := msg.(type) {
	case teamsMsg:
		if msg.gen != t.gen {
			return nil, false
		}
		t.loading = false
		if msg.err != nil {
			if api.IsUnauthorized(msg.err) {
				return nil, true
			}
			t.errMsg = msg.err.Error()
			return nil, false
		}
		t.teams = msg.teams
		if t.cursor >= len(t.teams) {
			t.cursor = 0
		}
		return nil, false

	case teamDetailMsg:
		if msg.gen != t.gen {
			return nil, false
		}
		t.loading = false
		if msg.err != nil {
			if api.IsUnauthorized(msg.err) {
				return nil, true
			}
			t.errMsg = msg.err.Error()
			return nil, false
		}
		t.detail = msg.detail
		return nil, false

	case tea.KeyMsg:
		switch msg.String() {
		case "up", "k":
			if t.detail == nil && t.cursor > 0 {
				t.cursor--
			}
		case "down", "j":
			if t.detail == nil && t.cursor < len(t.teams)-1 {
				t.cursor++
			}
		case "enter":
			if t.detail == nil && t.cursor < len(t.teams) {
				return t.fetchDetail(t.teams[t.cursor].ID), false
			}
		case "esc":
			t.detail = nil
		case "r":
			return t.fetchList(), false
		}
	}
	return nil, false
}

func (t *TeamsTab) View() string {
	var b strings.Builder
	if t.loading {
		return "  " + t.theme.Muted.Render("loading teams...") + "\n"
	}
	if t.errMsg != "" {
		b.WriteString("  " + t.theme.ErrText.Render(t.errMsg) + "\n")
		b.WriteString("  " + t.theme.Footer.Render("r retry") + "\n")
		return b.String()
	}

	if t.detail != nil {
		d := t.detail
		b.WriteString(fmt.Sprintf("  %s %s\n", t.theme.Title.Render(d.Name), t.theme.Muted.Render(d.ProjectTitle)))
		if d.GuideName != "" {
			b.WriteString(fmt.Sprintf("  %s %s\n", t.theme.Label.Render("guide"), t.theme.Value.Render(d.GuideName)))
		}
		if d.Description != "" {
			b.WriteString("  " + t.theme.Value.Render(d.Description) + "\n")
		}
		b.WriteString("\n  " + t.theme.Label.Render("members") + "\n")
		for _, member := range d.Members {
			line := member.Name
			if member.RollNumber != "" {
				line += "  " + member.RollNumber
			}
			b.WriteString("   " + t.theme.Value.Render(line) + "  " + t.theme.Muted.Render(member.Email) + "\n")
		}
		b.WriteString("\n  " + t.theme.Footer.Render("esc back") + "\n")
		return b.String()
	}

	if len(t.teams) == 0 {
		return "  " + t.theme.Muted.Render("no teams yet") + "\n"
	}
	for i, team := range t.teams {
		line := fmt.Sprintf("%s  %s (%d members)", team.Name, team.ProjectTitle, team.MemberCount)
		if i == t.cursor {
			b.WriteString("  " + t.theme.Selected.Render("> "+line) + "\n")
		} else {
			b.WriteString("    " + t.theme.Value.Render(line) + "\n")
		}
	}
	b.WriteString("\n  " + t.theme.Footer.Render("enter details | r refresh") + "\n")
	return b.String()
}
