// Package devserver is a self-contained stand-in for the EduProject backend,
// used for local development and manual testing of the client. It serves the
// same HTTP surface over seeded in-memory fixtures.
package devserver

import (
	"encoding/json"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/gorilla/mux"

	"eduproject/internal/api"
)

type Server struct {
	mu       sync.Mutex
	secret   []byte
	users    map[string]*account // keyed by email
	teams    []api.TeamDetail
	meetings []api.MeetingDetail
	otps     map[string]string // email -> pending otp
	tokenTTL time.Duration
}

type account struct {
	Profile      api.UserProfile
	PasswordHash []byte
}

func New(secret string) *Server {
	s := &Server{
		secret:   []byte(secret),
		users:    map[string]*account{},
		otps:     map[string]string{},
		tokenTTL: 12 * time.Hour,
	}
	s.seed()
	return s
}

type claims struct {
	Role  string `json:"role"`
	Email string `json:"email"`
	jwt.RegisteredClaims
}

func (s *Server) mintToken(profile api.UserProfile) (string, error) {
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims{
		Role:  string(profile.Role),
		Email: profile.Email,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   profile.Email,
			Issuer:    "eduproject-dev",
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.tokenTTL)),
		},
	})
	return token.SignedString(s.secret)
}

func (s *Server) parseToken(raw string) (*claims, error) {
	var c claims
	_, err := jwt.ParseWithClaims(raw, &c, func(t *jwt.Token) (interface{}, error) {
		return s.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// authenticate resolves the bearer token to an account, writing the 401 the
// client's session-invalidation contract expects when it cannot.
func (s *Server) authenticate(w http.ResponseWriter, r *http.Request) *account {
	header := r.Header.Get("Authorization")
	if !strings.HasPrefix(header, "Bearer ") {
		writeError(w, http.StatusUnauthorized, "missing bearer token")
		return nil
	}
	c, err := s.parseToken(strings.TrimPrefix(header, "Bearer "))
	if err != nil {
		writeError(w, http.StatusUnauthorized, "jwt expired")
		return nil
	}
	s.mu.Lock()
	acct := s.users[c.Email]
	s.mu.Unlock()
	if acct == nil {
		writeError(w, http.StatusUnauthorized, "unknown account")
		return nil
	}
	return acct
}

func (s *Server) Router() *mux.Router {
	r := mux.NewRouter()

	r.HandleFunc("/auth/login", s.handleLogin).Methods("POST")
	r.HandleFunc("/auth/forgot-password", s.handleForgotPassword).Methods("POST")
	r.HandleFunc("/auth/verify-otp", s.handleVerifyOTP).Methods("POST")
	r.HandleFunc("/auth/change-password", s.handleChangePassword).Methods("POST")

	r.HandleFunc("/teams/guide-teams", s.handleGuideTeams).Methods("GET")
	r.HandleFunc("/teams/details/{teamId}", s.handleTeamDetails).Methods("GET")
	r.HandleFunc("/teams/student-teams", s.handleStudentTeams).Methods("GET")
	r.HandleFunc("/teams/student/team/{teamId}", s.handleTeamDetails).Methods("GET")

	r.HandleFunc("/meetings/guide-meeting", s.handleMeetings).Methods("GET")
	r.HandleFunc("/meetings/create", s.handleCreateMeeting).Methods("POST")
	r.HandleFunc("/meetings/student/meetings", s.handleMeetings).Methods("GET")
	r.HandleFunc("/meetings/student/meeting/{meetingId}", s.handleMeetingDetails).Methods("GET")
	r.HandleFunc("/meetings/details/{meetingId}", s.handleMeetingDetails).Methods("GET")
	r.HandleFunc("/meetings/{meetingId}/mom-data", s.handleMomData).Methods("GET")
	r.HandleFunc("/meetings/{meetingId}/mom", s.handleCreateMom).Methods("POST")

	r.HandleFunc("/profile/me", s.handleMyProfile).Methods("GET")
	r.HandleFunc("/public/student", s.handlePublicStudent).Methods("GET")
	r.HandleFunc("/guide/dashboard", s.handleDashboard).Methods("GET")
	r.HandleFunc("/student/dashboard", s.handleDashboard).Methods("GET")

	return r
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]any{"success": false, "message": message})
}

func decodeBody(w http.ResponseWriter, r *http.Request, out any) bool {
	if err := json.NewDecoder(r.Body).Decode(out); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return false
	}
	return true
}
