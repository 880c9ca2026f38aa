package api

import "encoding/json"

// Role of an authenticated user. The backend sends it lowercase.
type Role string

const (
	RoleGuide   Role = "guide"
	RoleStudent Role = "student"
)

// UserProfile is the identity snapshot returned by the login and profile
// endpoints. Role-specific fields are passed through untouched; the client
// never interprets them.
type UserProfile struct {
	UserID int    `json:"userId"`
	Name   string `json:"name"`
	Email  string `json:"email"`
	Role   Role   `json:"role"`

	RollNumber string `json:"rollNumber,omitempty"`
	Branch     string `json:"branch,omitempty"`
	Section    string `json:"section,omitempty"`
	Semester   string `json:"semester,omitempty"`
}

// LoginResult is the success payload of POST /auth/login.
type LoginResult struct {
	Token string      `json:"token"`
	User  UserProfile `json:"user"`
}

// StatusMessage is the shared success payload of write-style endpoints.
type StatusMessage struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

type Team struct {
	ID           string `json:"teamId"`
	Name         string `json:"name"`
	ProjectTitle string `json:"projectTitle"`
	GuideName    string `json:"guideName,omitempty"`
	MemberCount  int    `json:"memberCount"`
}

type TeamMember struct {
	UserID     int    `json:"userId"`
	Name       string `json:"name"`
	Email      string `json:"email"`
	RollNumber string `json:"rollNumber,omitempty"`
}

type TeamDetail struct {
	Team
	Description string       `json:"description,omitempty"`
	Members     []TeamMember `json:"members"`
}

type Meeting struct {
	ID          string `json:"meetingId"`
	Title       string `json:"title"`
	TeamID      string `json:"teamId"`
	TeamName    string `json:"teamName,omitempty"`
	ScheduledAt string `json:"scheduledAt"`
	Venue       string `json:"venue,omitempty"`
	Status      string `json:"status,omitempty"`
}

type MeetingDetail struct {
	Meeting
	Agenda string `json:"agenda,omitempty"`
	Mom    *Mom   `json:"mom,omitempty"`
}

// Mom is a recorded minutes-of-meeting entry.
type Mom struct {
	Summary    string             `json:"summary"`
	NextSteps  string             `json:"next_steps"`
	Remarks    string             `json:"remarks"`
	Attendance []AttendanceRecord `json:"attendance_list"`
}

type AttendanceRecord struct {
	UserID  int  `json:"userId"`
	Present bool `json:"present"`
}

// MomData is the meeting-plus-roster payload used to prefill the MOM form.
type MomData struct {
	Meeting Meeting      `json:"meeting"`
	Members []TeamMember `json:"members"`
}

// CreateMeetingInput carries the fields of POST /meetings/create.
type CreateMeetingInput struct {
	TeamID      string `json:"teamId"`
	Title       string `json:"title"`
	Agenda      string `json:"agenda,omitempty"`
	ScheduledAt string `json:"scheduledAt"`
	Venue       string `json:"venue,omitempty"`
}

// Dashboard is the aggregate served to both roles; counts not relevant to a
// role are simply zero.
type Dashboard struct {
	TeamCount        int       `json:"teamCount"`
	MeetingCount     int       `json:"meetingCount"`
	UpcomingMeetings []Meeting `json:"upcomingMeetings"`
	PendingMomCount  int       `json:"pendingMomCount,omitempty"`
	AttendanceRate   float64   `json:"attendanceRate,omitempty"`
}

// PublicProfile is the unauthenticated student lookup payload. Analytics is
// kept raw; its shape is owned by the backend.
type PublicProfile struct {
	Profile   UserProfile     `json:"profile"`
	Teams     []Team          `json:"teams,omitempty"`
	Analytics json.RawMessage `json:"analytics,omitempty"`
}

type teamListEnvelope struct {
	Teams []Team `json:"teams"`
}

type meetingListEnvelope struct {
	Meetings []Meeting `json:"meetings"`
}
