package tui

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"eduproject/internal/api"
	"eduproject/internal/app"
)

// LookupTab is the public student lookup: an email prompt over the
// unauthenticated /public/student endpoint, showing profile, teams and
// whatever analytics the backend reports.
type LookupTab struct {
	app   *app.Application
	theme Theme

	input   textinput.Model
	editing bool

	gen     int
	loading bool
	errMsg  string

	result *api.PublicProfile

	width  int
	height int
}

func NewLookupTab(application *app.Application, theme Theme) *LookupTab {
	in := textinput.New()
	in.Placeholder = "student email"
	in.CharLimit = 120
	in.Focus()

	return &LookupTab{
		app:     application,
		theme:   theme,
		input:   in,
		editing: true,
		width:   80, height: 24,
	}
}

func (t *LookupTab) SetSize(w, h int) { t.width, t.height = w, h }

// CapturesInput reports whether the email prompt owns the keyboard.
func (t *LookupTab) CapturesInput() bool { return t.editing }

func (t *LookupTab) fetch(email string) tea.Cmd {
	t.gen++
	gen := t.gen
	t.loading = true
	t.errMsg = ""
	return func() tea.Msg {
		result, err := t.app.Client.PublicStudentProfile(background(), email)
		return lookupMsg{gen: gen, result: result, err: err}
	}
}

func (t *LookupTab) Handle(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case lookupMsg:
		if msg.gen != t.gen {
			return nil
		}
		t.loading = false
		if msg.err != nil {
			t.errMsg = msg.err.Error()
			return nil
		}
		t.result = msg.result
		return nil

	case tea.KeyMsg:
		if t.editing {
			switch msg.String() {
			case "enter":
				email := strings.TrimSpace(t.input.Value())
				if email == "" {
					t.errMsg = "an email is required"
					return nil
				}
				t.editing = false
				t.input.Blur()
				return t.fetch(email)
			case "esc":
				t.editing = false
				t.input.Blur()
				return nil
			}
			var cmd tea.Cmd
			t.input, cmd = t.input.Update(msg)
			return cmd
		}
		switch msg.String() {
		case "e", "enter", "/":
			t.editing = true
			return t.input.Focus()
		case "esc":
			t.result = nil
			t.errMsg = ""
		}
		return nil
	}

	if t.editing {
		var cmd tea.Cmd
		t.input, cmd = t.input.Update(msg)
		return cmd
	}
	return nil
}

// analyticsLines flattens the opaque analytics object into sorted key/value
// rows; a shape we cannot read is shown raw rather than dropped.
func analyticsLines(raw json.RawMessage) []string {
	if len(raw) == 0 {
		return nil
	}
	var fields map[string]any
	if err := json.Unmarshal(raw, &fields); err != nil {
		return []string{string(raw)}
	}
	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	lines := make([]string, 0, len(keys))
	for _, k := range keys {
		lines = append(lines, fmt.Sprintf("%s: %v", k, fields[k]))
	}
	return lines
}

func (t *LookupTab) View() string {
	var b strings.Builder
	b.WriteString("  " + t.theme.Label.Render("student email") + "\n")
	b.WriteString("  " + t.input.View() + "\n\n")

	if t.loading {
		b.WriteString("  " + t.theme.Muted.Render("looking up...") + "\n")
		return b.String()
	}
	if t.errMsg != "" {
		b.WriteString("  " + t.theme.ErrText.Render(t.errMsg) + "\n")
	}

	if t.result != nil {
		p := t.result.Profile
		var card strings.Builder
		card.WriteString(t.theme.Value.Render(p.Name) + "  " + t.theme.Muted.Render(p.Email))
		if p.RollNumber != "" {
			card.WriteString(fmt.Sprintf("\n%s %s  %s %s",
				t.theme.Label.Render("roll"), t.theme.Value.Render(p.RollNumber),
				t.theme.Label.Render("branch"), t.theme.Value.Render(p.Branch)))
		}
		for _, team := range t.result.Teams {
			card.WriteString(fmt.Sprintf("\n%s %s (%s)",
				t.theme.Label.Render("team"), t.theme.Value.Render(team.Name), team.ProjectTitle))
		}
		if lines := analyticsLines(t.result.Analytics); len(lines) > 0 {
			card.WriteString("\n" + t.theme.Label.Render("analytics"))
			for _, line := range lines {
				card.WriteString("\n" + t.theme.Value.Render(line))
			}
		}
		b.WriteString(t.theme.Pane.Render(card.String()) + "\n")
	}

	footer := "enter search | esc stop typing"
	if !t.editing {
		footer = "e edit email | esc clear | tab switch"
	}
	b.WriteString("\n  " + t.theme.Footer.Render(footer) + "\n")
	return b.String()
}
