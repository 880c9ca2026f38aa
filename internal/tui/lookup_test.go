package tui

import (
	"encoding/json"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"eduproject/internal/api"
	"eduproject/internal/session"
)

func TestLookupTab_AppliesResultAndDiscardsStale(t *testing.T) {
	tab := NewLookupTab(newTestApp(t), NewTheme())
	tab.gen = 2

	tab.Handle(lookupMsg{gen: 1, result: &api.PublicProfile{
		Profile: api.UserProfile{UserID: 9, Name: "stale"},
	}})
	if tab.result != nil {
		t.Fatalf("stale lookup result was applied: %+v", tab.result)
	}

	tab.Handle(lookupMsg{gen: 2, result: &api.PublicProfile{
		Profile:   api.UserProfile{UserID: 3, Name: "Asha", Email: "asha@edu.test"},
		Analytics: json.RawMessage(`{"meetingsAttended":4,"meetingsRecorded":5}`),
	}})
	if tab.result == nil || tab.result.Profile.UserID != 3 {
		t.Fatalf("current lookup result was not applied: %+v", tab.result)
	}

	view := tab.View()
	for _, want := range []string{"Asha", "meetingsAttended: 4", "meetingsRecorded: 5"} {
		if !strings.Contains(view, want) {
			t.Fatalf("view missing %q:\n%s", want, view)
		}
	}
}

func TestAnalyticsLines_UnreadableShapeShownRaw(t *testing.T) {
	if got := analyticsLines(nil); got != nil {
		t.Fatalf("empty analytics produced lines: %v", got)
	}
	got := analyticsLines(json.RawMessage(`[1,2]`))
	if len(got) != 1 || got[0] != "[1,2]" {
		t.Fatalf("non-object analytics not shown raw: %v", got)
	}
}

func TestHome_TabKeysReachLookup(t *testing.T) {
	student := &api.UserProfile{UserID: 2, Role: api.RoleStudent}
	home := NewHome(newTestApp(t), NewTheme(), session.Snapshot{
		Status: session.StatusAuthenticated, Token: "t", Profile: student,
	})

	// shift+tab from the first tab wraps around to the lookup tab.
	home.Update(tea.KeyMsg{Type: tea.KeyShiftTab})
	if home.tab != tabLookup {
		t.Fatalf("tab = %d after shift+tab, want %d", home.tab, tabLookup)
	}

	// The lookup prompt starts focused, so a further tab key is typed into
	// it rather than switching tabs.
	home.Update(tea.KeyMsg{Type: tea.KeyTab})
	if home.tab != tabLookup {
		t.Fatalf("tab = %d, focused lookup prompt must keep the tab key", home.tab)
	}

	// Once the prompt is blurred, tab switches again.
	home.Update(tea.KeyMsg{Type: tea.KeyEsc})
	if home.lookup.CapturesInput() {
		t.Fatal("esc did not blur the lookup prompt")
	}
	home.Update(tea.KeyMsg{Type: tea.KeyTab})
	if home.tab != tabDashboard {
		t.Fatalf("tab = %d after tab, want %d", home.tab, tabDashboard)
	}

	// Digit shortcuts address every tab, lookup included.
	home.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'5'}})
	if home.tab != tabLookup {
		t.Fatalf("tab = %d after '5', want %d", home.tab, tabLookup)
	}
}

func TestHome_LogoutKeyClearsSession(t *testing.T) {
	application := newTestApp(t)
	application.Store.Initialize()
	if err := application.Store.Login(api.LoginResult{
		Token: "t",
		User:  api.UserProfile{UserID: 2, Role: api.RoleStudent},
	}); err != nil {
		t.Fatalf("Login: %v", err)
	}

	home := NewHome(application, NewTheme(), application.Store.Snapshot())
	_, cmd := home.Update(tea.KeyMsg{Type: tea.KeyCtrlL})
	if cmd == nil {
		t.Fatal("ctrl+l produced no command")
	}
	cmd()

	if got := application.Store.Snapshot().Status; got != session.StatusAnonymous {
		t.Fatalf("status = %v after logout key, want anonymous", got)
	}
}

func TestLogin_ForgotKeyOpensResetWizard(t *testing.T) {
	login := NewLogin(newTestApp(t), NewTheme())

	login.Update(tea.KeyMsg{Type: tea.KeyCtrlF})
	if login.reset == nil {
		t.Fatal("ctrl+f did not open the password-reset wizard")
	}
}
