package tui

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	"eduproject/internal/api"
	"eduproject/internal/session"
)

// sessionMsg carries a fresh session snapshot published by the store.
type sessionMsg session.Snapshot

type loginDoneMsg struct{ err error }

type logoutMsg struct{ err error }

// resetDoneMsg reports the outcome of one password-reset wizard step.
type resetDoneMsg struct {
	step   int
	status *api.StatusMessage
	err    error
}

// Fetch results carry the generation that requested them. A result whose
// generation no longer matches the screen's counter is stale and dropped,
// so an abandoned request can never overwrite newer state.
type dashboardMsg struct {
	gen  int
	dash *api.Dashboard
	err  error
}

type teamsMsg struct {
	gen   int
	teams []api.Team
	err   error
}

type teamDetailMsg struct {
	gen    int
	detail *api.TeamDetail
	err    error
}

type meetingsMsg struct {
	gen      int
	meetings []api.Meeting
	err      error
}

type meetingDetailMsg struct {
	gen    int
	detail *api.MeetingDetail
	err    error
}

type momDataMsg struct {
	gen  int
	data *api.MomData
	err  error
}

type lookupMsg struct {
	gen    int
	result *api.PublicProfile
	err    error
}

type profileMsg struct {
	gen     int
	profile *api.UserProfile
	err     error
}

// actionDoneMsg reports a write operation (create meeting, save MOM).
type actionDoneMsg struct {
	gen    int
	status *api.StatusMessage
	err    error
}

func logoutCmd(store *session.Store) tea.Cmd {
	return func() tea.Msg {
		return logoutMsg{err: store.Logout()}
	}
}

func background() context.Context { return context.Background() }
