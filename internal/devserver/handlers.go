package devserver

import (
	"encoding/json"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"golang.org/x/crypto/bcrypt"

	"eduproject/internal/api"
)

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if !decodeBody(w, r, &req) {
		return
	}

	s.mu.Lock()
	acct := s.users[req.Email]
	s.mu.Unlock()
	if acct == nil || bcrypt.CompareHashAndPassword(acct.PasswordHash, []byte(req.Password)) != nil {
		writeError(w, http.StatusUnauthorized, "invalid email or password")
		return
	}

	token, err := s.mintToken(acct.Profile)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "could not issue token")
		return
	}
	writeJSON(w, http.StatusOK, api.LoginResult{Token: token, User: acct.Profile})
}

func (s *Server) handleForgotPassword(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email string `json:"email"`
	}
	if !decodeBody(w, r, &req) {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.users[req.Email] == nil {
		writeError(w, http.StatusNotFound, "no account for that email")
		return
	}
	// A fixed OTP keeps the dev loop simple.
	s.otps[req.Email] = "424242"
	writeJSON(w, http.StatusOK, api.StatusMessage{Success: true, Message: "OTP sent (dev server uses 424242)"})
}

func (s *Server) handleVerifyOTP(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email string `json:"email"`
		OTP   string `json:"otp"`
	}
	if !decodeBody(w, r, &req) {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.otps[req.Email] == "" || s.otps[req.Email] != req.OTP {
		writeError(w, http.StatusBadRequest, "invalid OTP")
		return
	}
	writeJSON(w, http.StatusOK, api.StatusMessage{Success: true, Message: "OTP verified"})
}

func (s *Server) handleChangePassword(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email       string `json:"email"`
		NewPassword string `json:"newPassword"`
	}
	if !decodeBody(w, r, &req) {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	acct := s.users[req.Email]
	if acct == nil || s.otps[req.Email] == "" {
		writeError(w, http.StatusBadRequest, "no verified reset in progress")
		return
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "could not update password")
		return
	}
	acct.PasswordHash = hash
	delete(s.otps, req.Email)
	writeJSON(w, http.StatusOK, api.StatusMessage{Success: true, Message: "password updated"})
}

func (s *Server) teamsFor(acct *account) []api.Team {
	var out []api.Team
	for _, team := range s.teams {
		if acct.Profile.Role == api.RoleGuide {
			out = append(out, team.Team)
			continue
		}
		for _, member := range team.Members {
			if member.UserID == acct.Profile.UserID {
				out = append(out, team.Team)
				break
			}
		}
	}
	return out
}

func (s *Server) handleGuideTeams(w http.ResponseWriter, r *http.Request) {
	acct := s.authenticate(w, r)
	if acct == nil {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	writeJSON(w, http.StatusOK, map[string]any{"teams": s.teamsFor(acct)})
}

func (s *Server) handleStudentTeams(w http.ResponseWriter, r *http.Request) {
	s.handleGuideTeams(w, r)
}

func (s *Server) handleTeamDetails(w http.ResponseWriter, r *http.Request) {
	acct := s.authenticate(w, r)
	if acct == nil {
		return
	}
	teamID := mux.Vars(r)["teamId"]
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.teams {
		if s.teams[i].ID == teamID {
			writeJSON(w, http.StatusOK, s.teams[i])
			return
		}
	}
	writeError(w, http.StatusNotFound, "team not found")
}

func (s *Server) handleMeetings(w http.ResponseWriter, r *http.Request) {
	acct := s.authenticate(w, r)
	if acct == nil {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []api.Meeting
	for i := range s.meetings {
		out = append(out, s.meetings[i].Meeting)
	}
	writeJSON(w, http.StatusOK, map[string]any{"meetings": out})
}

func (s *Server) findMeeting(meetingID string) *api.MeetingDetail {
	for i := range s.meetings {
		if s.meetings[i].ID == meetingID {
			return &s.meetings[i]
		}
	}
	return nil
}

func (s *Server) handleMeetingDetails(w http.ResponseWriter, r *http.Request) {
	acct := s.authenticate(w, r)
	if acct == nil {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	meeting := s.findMeeting(mux.Vars(r)["meetingId"])
	if meeting == nil {
		writeError(w, http.StatusNotFound, "meeting not found")
		return
	}
	writeJSON(w, http.StatusOK, meeting)
}

func (s *Server) handleMomData(w http.ResponseWriter, r *http.Request) {
	acct := s.authenticate(w, r)
	if acct == nil {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	meeting := s.findMeeting(mux.Vars(r)["meetingId"])
	if meeting == nil {
		writeError(w, http.StatusNotFound, "meeting not found")
		return
	}
	var members []api.TeamMember
	for _, team := range s.teams {
		if team.ID == meeting.TeamID {
			members = team.Members
		}
	}
	writeJSON(w, http.StatusOK, api.MomData{Meeting: meeting.Meeting, Members: members})
}

func (s *Server) handleCreateMom(w http.ResponseWriter, r *http.Request) {
	acct := s.authenticate(w, r)
	if acct == nil {
		return
	}
	if acct.Profile.Role != api.RoleGuide {
		writeError(w, http.StatusForbidden, "only guides can record minutes")
		return
	}
	var mom api.Mom
	if !decodeBody(w, r, &mom) {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	meeting := s.findMeeting(mux.Vars(r)["meetingId"])
	if meeting == nil {
		writeError(w, http.StatusNotFound, "meeting not found")
		return
	}
	meeting.Mom = &mom
	meeting.Status = "completed"
	writeJSON(w, http.StatusOK, api.StatusMessage{Success: true, Message: "minutes recorded"})
}

func (s *Server) handleCreateMeeting(w http.ResponseWriter, r *http.Request) {
	acct := s.authenticate(w, r)
	if acct == nil {
		return
	}
	if acct.Profile.Role != api.RoleGuide {
		writeError(w, http.StatusForbidden, "only guides can schedule meetings")
		return
	}
	var in api.CreateMeetingInput
	if !decodeBody(w, r, &in) {
		return
	}
	if in.TeamID == "" || in.Title == "" || in.ScheduledAt == "" {
		writeError(w, http.StatusBadRequest, "teamId, title and scheduledAt are required")
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	teamName := ""
	for _, team := range s.teams {
		if team.ID == in.TeamID {
			teamName = team.Name
		}
	}
	if teamName == "" {
		writeError(w, http.StatusNotFound, "team not found")
		return
	}
	s.meetings = append(s.meetings, api.MeetingDetail{
		Meeting: api.Meeting{
			ID:          uuid.NewString(),
			Title:       in.Title,
			TeamID:      in.TeamID,
			TeamName:    teamName,
			ScheduledAt: in.ScheduledAt,
			Venue:       in.Venue,
			Status:      "scheduled",
		},
		Agenda: in.Agenda,
	})
	writeJSON(w, http.StatusOK, api.StatusMessage{Success: true, Message: "meeting scheduled"})
}

func (s *Server) handleMyProfile(w http.ResponseWriter, r *http.Request) {
	acct := s.authenticate(w, r)
	if acct == nil {
		return
	}
	writeJSON(w, http.StatusOK, acct.Profile)
}

func (s *Server) handlePublicStudent(w http.ResponseWriter, r *http.Request) {
	email := r.URL.Query().Get("email")
	s.mu.Lock()
	defer s.mu.Unlock()
	acct := s.users[email]
	if acct == nil || acct.Profile.Role != api.RoleStudent {
		writeError(w, http.StatusNotFound, "student not found")
		return
	}
	attended, recorded := 0, 0
	for i := range s.meetings {
		m := &s.meetings[i]
		if m.Mom == nil {
			continue
		}
		for _, a := range m.Mom.Attendance {
			if a.UserID == acct.Profile.UserID {
				recorded++
				if a.Present {
					attended++
				}
			}
		}
	}
	analytics, _ := json.Marshal(map[string]any{
		"meetingsRecorded": recorded,
		"meetingsAttended": attended,
	})
	writeJSON(w, http.StatusOK, api.PublicProfile{
		Profile:   acct.Profile,
		Teams:     s.teamsFor(acct),
		Analytics: analytics,
	})
}

func (s *Server) handleDashboard(w http.ResponseWriter, r *http.Request) {
	acct := s.authenticate(w, r)
	if acct == nil {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	dash := api.Dashboard{TeamCount: len(s.teamsFor(acct))}
	pendingMoms := 0
	attended, recorded := 0, 0
	for i := range s.meetings {
		m := &s.meetings[i]
		dash.MeetingCount++
		if m.Status == "scheduled" {
			dash.UpcomingMeetings = append(dash.UpcomingMeetings, m.Meeting)
		}
		if m.Mom == nil {
			pendingMoms++
			continue
		}
		for _, a := range m.Mom.Attendance {
			if a.UserID == acct.Profile.UserID {
				recorded++
				if a.Present {
					attended++
				}
			}
		}
	}
	if acct.Profile.Role == api.RoleGuide {
		dash.PendingMomCount = pendingMoms
	} else if recorded > 0 {
		dash.AttendanceRate = float64(attended) / float64(recorded)
	}
	writeJSON(w, http.StatusOK, dash)
}
