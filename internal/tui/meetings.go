package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"eduproject/internal/api"
	"eduproject/internal/app"
)

const (
	meetingsModeList = iota
	meetingsModeDetail
	meetingsModeCreate
	meetingsModeMom
)

// MeetingsTab covers the meeting list and detail for both roles, plus the
// guide-only create-meeting and record-MOM forms.
type MeetingsTab struct {
	app   *app.Application
	theme Theme
	token string
	guide bool

	mode    int
	gen     int
	loading bool
	errMsg  string
	infoMsg string

	meetings []api.Meeting
	cursor   int
	detail   *api.MeetingDetail

	createInputs [5]textinput.Model // team id, title, agenda, date, venue
	createFocus  int

	momData    *api.MomData
	momSummary textarea.Model
	momNext    textinput.Model
	momRemarks textinput.Model
	momFocus   int
	attendance []bool

	width  int
	height int
}

func NewMeetingsTab(application *app.Application, theme Theme, token string, guide bool) *MeetingsTab {
	t := &MeetingsTab{
		app:   application,
		theme: theme,
		token: token,
		guide: guide,
		width: 80, height: 24,
	}

	placeholders := [5]string{"team id", "title", "agenda", "date (YYYY-MM-DD HH:MM)", "venue"}
	for i := range t.createInputs {
		in := textinput.New()
		in.Placeholder = placeholders[i]
		in.CharLimit = 200
		t.createInputs[i] = in
	}

	t.momSummary = textarea.New()
	t.momSummary.Placeholder = "summary of the discussion"
	t.momSummary.SetHeight(4)
	t.momNext = textinput.New()
	t.momNext.Placeholder = "next steps"
	t.momNext.CharLimit = 300
	t.momRemarks = textinput.New()
	t.momRemarks.Placeholder = "remarks"
	t.momRemarks.CharLimit = 300

	return t
}

func (t *MeetingsTab) SetSize(w, h int) {
	t.width, t.height = w, h
	t.momSummary.SetWidth(w - 8)
}

// CapturesInput reports whether a form currently owns the keyboard.
func (t *MeetingsTab) CapturesInput() bool {
	return t.mode == meetingsModeCreate || t.mode == meetingsModeMom
}

func (t *MeetingsTab) EnsureLoaded() tea.Cmd {
	if t.meetings != nil || t.loading {
		return nil
	}
	return t.fetchList()
}

func (t *MeetingsTab) fetchList() tea.Cmd {
	t.gen++
	gen := t.gen
	t.loading = true
	t.errMsg = ""
	t.mode = meetingsModeList
	return func() tea.Msg {
		var (
			meetings []api.Meeting
			err      error
		)
		if t.guide {
			meetings, err = t.app.Client.GuideMeetings(background(), t.token)
		} else {
			meetings, err = t.app.Client.StudentMeetings(background(), t.token)
		}
		return meetingsMsg{gen: gen, meetings: meetings, err: err}
	}
}

func (t *MeetingsTab) fetchDetail(meetingID string) tea.Cmd {
	t.gen++
	gen := t.gen
	t.loading = true
	t.errMsg = ""
	return func() tea.Msg {
		var (
			detail *api.MeetingDetail
			err    error
		)
		if t.guide {
			detail, err = t.app.Client.MeetingDetails(background(), t.token, meetingID)
		} else {
			detail, err = t.app.Client.StudentMeetingDetails(background(), t.token, meetingID)
		}
		return meetingDetailMsg{gen: gen, detail: detail, err: err}
	}
}

func (t *MeetingsTab) fetchMomData(meetingID string) tea.Cmd {
	t.gen++
	gen := t.gen
	t.loading = true
	t.errMsg = ""
	return func() tea.Msg {
		data, err := t.app.Client.MomData(background(), t.token, meetingID)
		return momDataMsg{gen: gen, data: data, err: err}
	}
}

func (t *MeetingsTab) submitCreate() tea.Cmd {
	t.gen++
	gen := t.gen
	in := api.CreateMeetingInput{
		TeamID:      strings.TrimSpace(t.createInputs[0].Value()),
		Title:       strings.TrimSpace(t.createInputs[1].Value()),
		Agenda:      strings.TrimSpace(t.createInputs[2].Value()),
		ScheduledAt: strings.TrimSpace(t.createInputs[3].Value()),
		Venue:       strings.TrimSpace(t.createInputs[4].Value()),
	}
	if in.TeamID == "" || in.Title == "" || in.ScheduledAt == "" {
		t.errMsg = "team id, title and date are required"
		return nil
	}
	t.loading = true
	t.errMsg = ""
	return func() tea.Msg {
		status, err := t.app.Client.CreateMeeting(background(), t.token, in)
		return actionDoneMsg{gen: gen, status: status, err: err}
	}
}

func (t *MeetingsTab) submitMom() tea.Cmd {
	if t.momData == nil {
		return nil
	}
	t.gen++
	gen := t.gen
	mom := api.Mom{
		Summary:   strings.TrimSpace(t.momSummary.Value()),
		NextSteps: strings.TrimSpace(t.momNext.Value()),
		Remarks:   strings.TrimSpace(t.momRemarks.Value()),
	}
	if mom.Summary == "" {
		t.errMsg = "a summary is required"
		return nil
	}
	for i, member := range t.momData.Members {
		mom.Attendance = append(mom.Attendance, api.AttendanceRecord{
			UserID:  member.UserID,
			Present: t.attendance[i],
		})
	}
	meetingID := t.momData.Meeting.ID
	t.loading = true
	t.errMsg = ""
	return func() tea.Msg {
		status, err := t.app.Client.CreateMom(background(), t.token, meetingID, mom)
		return actionDoneMsg{gen: gen, status: status, err: err}
	}
}

func (t *MeetingsTab) Handle(msg tea.Msg) (cmd tea.Cmd, unauthorized bool) {
	switch msg := msg.(type) {
	case meetingsMsg:
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
		t.meetings = msg.meetings
		if t.cursor >= len(t.meetings) {
			t.cursor = 0
		}
		return nil, false

	case meetingDetailMsg:
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
		t.mode = meetingsModeDetail
		return nil, false

	case momDataMsg:
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
		t.momData = msg.data
		t.attendance = make([]bool, len(msg.data.Members))
		for i := range t.attendance {
			t.attendance[i] = true
		}
		t.momSummary.Reset()
		t.momNext.Reset()
		t.momRemarks.Reset()
		t.momFocus = 0
		t.mode = meetingsModeMom
		return t.momSummary.Focus(), false

	case actionDoneMsg:
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
		if msg.status != nil && msg.status.Message != "" {
			t.infoMsg = msg.status.Message
		} else {
			t.infoMsg = "saved"
		}
		// Reload the list so the new entry shows up.
		t.meetings = nil
		return t.fetchList(), false

	case tea.KeyMsg:
		return t.handleKey(msg), false
	}

	if t.CapturesInput() {
		return t.updateFormInputs(msg), false
	}
	return nil, false
}

func (t *MeetingsTab) handleKey(msg tea.KeyMsg) tea.Cmd {
	switch t.mode {
	case meetingsModeCreate:
		switch msg.String() {
		case "esc":
			t.mode = meetingsModeList
			t.errMsg = ""
			return nil
		case "tab", "down":
			return t.focusCreate((t.createFocus + 1) % len(t.createInputs))
		case "shift+tab", "up":
			return t.focusCreate((t.createFocus + len(t.createInputs) - 1) % len(t.createInputs))
		case "ctrl+s", "enter":
			if msg.String() == "enter" && t.createFocus < len(t.createInputs)-1 {
				return t.focusCreate(t.createFocus + 1)
			}
			return t.submitCreate()
		}
		return t.updateFormInputs(msg)

	case meetingsModeMom:
		lastField := 2 + len(t.attendance)
		switch msg.String() {
		case "esc":
			t.mode = meetingsModeDetail
			t.errMsg = ""
			return nil
		case "tab", "shift+tab":
			next := t.momFocus + 1
			if msg.String() == "shift+tab" {
				next = t.momFocus + lastField
			}
			return t.focusMom(next % (lastField + 1))
		case " ", "space":
			if t.momFocus >= 3 {
				idx := t.momFocus - 3
				if idx < len(t.attendance) {
					t.attendance[idx] = !t.attendance[idx]
				}
				return nil
			}
		case "ctrl+s":
			return t.submitMom()
		}
		return t.updateFormInputs(msg)
	}

	switch msg.String() {
	case "up", "k":
		if t.mode == meetingsModeList && t.cursor > 0 {
			t.cursor--
		}
	case "down", "j":
		if t.mode == meetingsModeList && t.cursor < len(t.meetings)-1 {
			t.cursor++
		}
	case "enter":
		if t.mode == meetingsModeList && t.cursor < len(t.meetings) {
			return t.fetchDetail(t.meetings[t.cursor].ID)
		}
	case "esc":
		if t.mode == meetingsModeDetail {
			t.mode = meetingsModeList
			t.detail = nil
		}
	case "r":
		return t.fetchList()
	case "c":
		if t.guide && t.mode == meetingsModeList {
			t.mode = meetingsModeCreate
			t.errMsg = ""
			for i := range t.createInputs {
				t.createInputs[i].Reset()
			}
			return t.focusCreate(0)
		}
	case "m":
		if t.guide && t.mode == meetingsModeDetail && t.detail != nil {
			return t.fetchMomData(t.detail.ID)
		}
	}
	return nil
}

func (t *MeetingsTab) focusCreate(idx int) tea.Cmd {
	t.createFocus = idx
	var cmd tea.Cmd
	for i := range t.createInputs {
		if i == idx {
			cmd = t.createInputs[i].Focus()
		} else {
			t.createInputs[i].Blur()
		}
	}
	return cmd
}

func (t *MeetingsTab) focusMom(idx int) tea.Cmd {
	t.momFocus = idx
	t.momSummary.Blur()
	t.momNext.Blur()
	t.momRemarks.Blur()
	switch idx {
	case 0:
		return t.momSummary.Focus()
	case 1:
		return t.momNext.Focus()
	case 2:
		return t.momRemarks.Focus()
	}
	return nil
}

func (t *MeetingsTab) updateFormInputs(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	switch t.mode {
	case meetingsModeCreate:
		t.createInputs[t.createFocus], cmd = t.createInputs[t.createFocus].Update(msg)
	case meetingsModeMom:
		switch t.momFocus {
		case 0:
			t.momSummary, cmd = t.momSummary.Update(msg)
		case 1:
			t.momNext, cmd = t.momNext.Update(msg)
		case 2:
			t.momRemarks, cmd = t.momRemarks.Update(msg)
		}
	}
	return cmd
}

func (t *MeetingsTab) View() string {
	if t.loading {
		return "  " + t.theme.Muted.Render("working...") + "\n"
	}

	var b strings.Builder
	if t.errMsg != "" {
		b.WriteString("  " + t.theme.ErrText.Render(t.errMsg) + "\n\n")
	}
	if t.infoMsg != "" {
		b.WriteString("  " + t.theme.OkText.Render(t.infoMsg) + "\n\n")
		t.infoMsg = ""
	}

	switch t.mode {
	case meetingsModeDetail:
		t.viewDetail(&b)
	case meetingsModeCreate:
		t.viewCreate(&b)
	case meetingsModeMom:
		t.viewMom(&b)
	default:
		t.viewList(&b)
	}
	return b.String()
}

func (t *MeetingsTab) viewList(b *strings.Builder) {
	if len(t.meetings) == 0 {
		b.WriteString("  " + t.theme.Muted.Render("no meetings yet") + "\n")
	}
	for i, mt := range t.meetings {
		line := fmt.Sprintf("%s  %s  %s", mt.ScheduledAt, mt.Title, mt.TeamName)
		if i == t.cursor {
			b.WriteString("  " + t.theme.Selected.Render("> "+line) + "\n")
		} else {
			b.WriteString("    " + t.theme.Value.Render(line) + "\n")
		}
	}
	footer := "enter details | r refresh"
	if t.guide {
		footer += " | c new meeting"
	}
	b.WriteString("\n  " + t.theme.Footer.Render(footer) + "\n")
}

func (t *MeetingsTab) viewDetail(b *strings.Builder) {
	d := t.detail
	if d == nil {
		b.WriteString("  " + t.theme.Muted.Render("no meeting selected") + "\n")
		return
	}
	b.WriteString(fmt.Sprintf("  %s\n", t.theme.Title.Render(d.Title)))
	b.WriteString(fmt.Sprintf("  %s %s   %s %s\n",
		t.theme.Label.Render("when"), t.theme.Value.Render(d.ScheduledAt),
		t.theme.Label.Render("where"), t.theme.Value.Render(d.Venue)))
	if d.TeamName != "" {
		b.WriteString(fmt.Sprintf("  %s %s\n", t.theme.Label.Render("team"), t.theme.Value.Render(d.TeamName)))
	}
	if d.Agenda != "" {
		b.WriteString("\n  " + t.theme.Label.Render("agenda") + "\n")
		b.WriteString("  " + t.theme.Value.Render(d.Agenda) + "\n")
	}
	if d.Mom != nil {
		b.WriteString("\n  " + t.theme.Label.Render("minutes") + "\n")
		b.WriteString("  " + t.theme.Value.Render(d.Mom.Summary) + "\n")
		if d.Mom.NextSteps != "" {
			b.WriteString("  " + t.theme.Muted.Render("next: "+d.Mom.NextSteps) + "\n")
		}
		present := 0
		for _, a := range d.Mom.Attendance {
			if a.Present {
				present++
			}
		}
		b.WriteString(fmt.Sprintf("  %s %d/%d present\n", t.theme.Label.Render("attendance"), present, len(d.Mom.Attendance)))
	}
	footer := "esc back"
	if t.guide && d.Mom == nil {
		footer += " | m record minutes"
	}
	b.WriteString("\n  " + t.theme.Footer.Render(footer) + "\n")
}

func (t *MeetingsTab) viewCreate(b *strings.Builder) {
	b.WriteString("  " + t.theme.Title.Render("new meeting") + "\n\n")
	labels := [5]string{"team", "title", "agenda", "date", "venue"}
	for i := range t.createInputs {
		b.WriteString(fmt.Sprintf("  %s\n  %s\n", t.theme.Label.Render(labels[i]), t.createInputs[i].View()))
	}
	b.WriteString("\n  " + t.theme.Footer.Render("tab next field | ctrl+s create | esc cancel") + "\n")
}

func (t *MeetingsTab) viewMom(b *strings.Builder) {
	if t.momData == nil {
		return
	}
	b.WriteString("  " + t.theme.Title.Render("minutes: "+t.momData.Meeting.Title) + "\n\n")
	b.WriteString("  " + t.theme.Label.Render("summary") + "\n")
	b.WriteString(t.momSummary.View() + "\n")
	b.WriteString("  " + t.theme.Label.Render("next steps") + "\n  " + t.momNext.View() + "\n")
	b.WriteString("  " + t.theme.Label.Render("remarks") + "\n  " + t.momRemarks.View() + "\n")

	b.WriteString("\n  " + t.theme.Label.Render("attendance") + "\n")
	for i, member := range t.momData.Members {
		mark := "[x]"
		if !t.attendance[i] {
			mark = "[ ]"
		}
		line := fmt.Sprintf("%s %s", mark, member.Name)
		if t.momFocus == 3+i {
			b.WriteString("  " + t.theme.Selected.Render("> "+line) + "\n")
		} else {
			b.WriteString("    " + t.theme.Value.Render(line) + "\n")
		}
	}
	b.WriteString("\n  " + t.theme.Footer.Render("tab next field | space toggle | ctrl+s save | esc cancel") + "\n")
}
