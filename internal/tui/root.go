package tui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"eduproject/internal/app"
	"eduproject/internal/session"
)

// Root is the session gate: it owns no domain state of its own, it only
// mirrors the store's published snapshot onto one of the top-level flows.
type Root struct {
	app   *app.Application
	theme Theme
	keys  keyMap

	flow  session.Flow
	child tea.Model

	sessions chan session.Snapshot
	spin     spinner.Model

	width  int
	height int
}

func NewRoot(application *app.Application) *Root {
	sp := spinner.New()
	sp.Spinner = spinner.Dot

	r := &Root{
		app:      application,
		theme:    NewTheme(),
		keys:     defaultKeyMap(),
		flow:     session.FlowLoading,
		sessions: make(chan session.Snapshot, 8),
		spin:     sp,
		width:    80,
		height:   24,
	}
	// Registered before Initialize runs so the first publish is seen.
	application.Store.Subscribe(func(snap session.Snapshot) {
		r.sessions <- snap
	})
	return r
}

func (r *Root) Init() tea.Cmd {
	return tea.Batch(
		r.spin.Tick,
		r.waitForSession(),
		func() tea.Msg {
			r.app.Store.Initialize()
			return nil
		},
	)
}

// waitForSession bridges store publishes into the bubbletea loop. It is
// re-armed after every received snapshot.
func (r *Root) waitForSession() tea.Cmd {
	return func() tea.Msg {
		return sessionMsg(<-r.sessions)
	}
}

func (r *Root) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		r.width = msg.Width
		r.height = msg.Height
		if r.child != nil {
			child, cmd := r.child.Update(msg)
			r.child = child
			return r, cmd
		}
		return r, nil

	case tea.KeyMsg:
		if key.Matches(msg, r.keys.Quit) {
			return r, tea.Quit
		}

	case sessionMsg:
		snap := session.Snapshot(msg)
		cmds := []tea.Cmd{r.waitForSession()}
		// Role is read fresh from the snapshot on every publish, so a
		// changed role swaps the flow without a logout.
		flow := session.SelectFlow(snap)
		if flow != r.flow || r.child == nil {
			r.flow = flow
			cmds = append(cmds, r.mountFlow(snap))
		}
		return r, tea.Batch(cmds...)

	case spinner.TickMsg:
		if r.flow == session.FlowLoading {
			var cmd tea.Cmd
			r.spin, cmd = r.spin.Update(msg)
			return r, cmd
		}
	}

	if r.child != nil {
		child, cmd := r.child.Update(msg)
		r.child = child
		return r, cmd
	}
	return r, nil
}

func (r *Root) mountFlow(snap session.Snapshot) tea.Cmd {
	switch r.flow {
	case session.FlowUnauthenticated:
		r.child = NewLogin(r.app, r.theme)
	case session.FlowGuide, session.FlowStudent:
		r.child = NewHome(r.app, r.theme, snap)
	default:
		r.child = nil
		return nil
	}
	cmds := []tea.Cmd{r.child.Init()}
	if r.width > 0 {
		child, cmd := r.child.Update(tea.WindowSizeMsg{Width: r.width, Height: r.height})
		r.child = child
		cmds = append(cmds, cmd)
	}
	return tea.Batch(cmds...)
}

func (r *Root) View() string {
	if r.flow == session.FlowLoading || r.child == nil {
		return fmt.Sprintf("\n  %s restoring session...\n", r.spin.View())
	}
	return r.child.View()
}
