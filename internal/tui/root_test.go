package tui

import (
	"path/filepath"
	"testing"
	"time"

	"eduproject/internal/api"
	"eduproject/internal/app"
	"eduproject/internal/session"
)

func newTestApp(t *testing.T) *app.Application {
	t.Helper()
	dir := t.TempDir()
	application, err := app.NewApplication(app.Config{
		BaseURL: "http://localhost:0",
		Timeout: time.Second,
		DataDir: dir,
		LogFile: filepath.Join(dir, "client.log"),
	})
	if err != nil {
		t.Fatalf("NewApplication: %v", err)
	}
	return application
}

func TestRoot_MountsFlowForEachSessionState(t *testing.T) {
	r := NewRoot(newTestApp(t))

	if r.flow != session.FlowLoading {
		t.Fatalf("initial flow = %v, want loading", r.flow)
	}

	r.Update(sessionMsg(session.Snapshot{Status: session.StatusAnonymous}))
	if r.flow != session.FlowUnauthenticated {
		t.Fatalf("flow = %v, want unauthenticated", r.flow)
	}
	if _, ok := r.child.(*Login); !ok {
		t.Fatalf("child = %T, want *Login", r.child)
	}

	guide := &api.UserProfile{UserID: 1, Name: "Dr. Nair", Role: api.RoleGuide}
	r.Update(sessionMsg(session.Snapshot{Status: session.StatusAuthenticated, Token: "t", Profile: guide}))
	if r.flow != session.FlowGuide {
		t.Fatalf("flow = %v, want guide", r.flow)
	}
	home, ok := r.child.(*Home)
	if !ok {
		t.Fatalf("child = %T, want *Home", r.child)
	}
	if !home.guide {
		t.Fatal("home mounted without the guide role")
	}
}

// A published role change must remount the authenticated flow with the new
// role; nothing may hold onto the role captured at mount time.
func TestRoot_RoleChangeRemountsHome(t *testing.T) {
	r := NewRoot(newTestApp(t))

	guide := &api.UserProfile{UserID: 1, Role: api.RoleGuide}
	r.Update(sessionMsg(session.Snapshot{Status: session.StatusAuthenticated, Token: "t", Profile: guide}))
	first := r.child.(*Home)

	student := &api.UserProfile{UserID: 1, Role: api.RoleStudent}
	r.Update(sessionMsg(session.Snapshot{Status: session.StatusAuthenticated, Token: "t", Profile: student}))

	home, ok := r.child.(*Home)
	if !ok {
		t.Fatalf("child = %T, want *Home", r.child)
	}
	if home == first {
		t.Fatal("home was not remounted after the role changed")
	}
	if home.guide {
		t.Fatal("home still shows the guide flow after the role changed to student")
	}
}

func TestRoot_LogoutReturnsToLogin(t *testing.T) {
	r := NewRoot(newTestApp(t))

	student := &api.UserProfile{UserID: 2, Role: api.RoleStudent}
	r.Update(sessionMsg(session.Snapshot{Status: session.StatusAuthenticated, Token: "t", Profile: student}))
	r.Update(sessionMsg(session.Snapshot{Status: session.StatusAnonymous}))

	if r.flow != session.FlowUnauthenticated {
		t.Fatalf("flow = %v, want unauthenticated", r.flow)
	}
	if _, ok := r.child.(*Login); !ok {
		t.Fatalf("child = %T, want *Login", r.child)
	}
}

func TestMeetingsTab_StaleFetchResultIsDiscarded(t *testing.T) {
	application := newTestApp(t)
	tab := NewMeetingsTab(application, NewTheme(), "tok", true)

	tab.gen = 2
	tab.meetings = []api.Meeting{{ID: "m1", Title: "kept"}}

	// A result from an older request generation must not overwrite state.
	tab.Handle(meetingsMsg{gen: 1, meetings: []api.Meeting{{ID: "m9", Title: "stale"}}})

	if len(tab.meetings) != 1 || tab.meetings[0].ID != "m1" {
		t.Fatalf("stale meetings result was applied: %+v", tab.meetings)
	}
}
