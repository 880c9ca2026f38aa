package devserver

import (
	"fmt"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"eduproject/internal/api"
)

// Fixture credentials, printed by cmd/edudev on startup:
//
//	guide@edu.test / guide123
//	asha@edu.test  / student123
//	ravi@edu.test  / student123
func (s *Server) seed() {
	guide := api.UserProfile{UserID: 1, Name: "Dr. Meera Nair", Email: "guide@edu.test", Role: api.RoleGuide}
	asha := api.UserProfile{
		UserID: 2, Name: "Asha Verma", Email: "asha@edu.test", Role: api.RoleStudent,
		RollNumber: "21CS042", Branch: "CSE", Section: "A", Semester: "6",
	}
	ravi := api.UserProfile{
		UserID: 3, Name: "Ravi Iyer", Email: "ravi@edu.test", Role: api.RoleStudent,
		RollNumber: "21CS051", Branch: "CSE", Section: "A", Semester: "6",
	}

	s.addAccount(guide, "guide123")
	s.addAccount(asha, "student123")
	s.addAccount(ravi, "student123")

	team := api.TeamDetail{
		Team: api.Team{
			ID:           uuid.NewString(),
			Name:         "Team Helios",
			ProjectTitle: "Solar telemetry dashboard",
			GuideName:    guide.Name,
			MemberCount:  2,
		},
		Description: "Final-year project tracking rooftop panel output.",
		Members: []api.TeamMember{
			{UserID: asha.UserID, Name: asha.Name, Email: asha.Email, RollNumber: asha.RollNumber},
			{UserID: ravi.UserID, Name: ravi.Name, Email: ravi.Email, RollNumber: ravi.RollNumber},
		},
	}
	s.teams = append(s.teams, team)

	s.meetings = append(s.meetings, api.MeetingDetail{
		Meeting: api.Meeting{
			ID:          uuid.NewString(),
			Title:       "Sprint review",
			TeamID:      team.ID,
			TeamName:    team.Name,
			ScheduledAt: "2026-09-04 10:00",
			Venue:       "Lab 3",
			Status:      "scheduled",
		},
		Agenda: "Demo the ingestion pipeline; agree on report outline.",
	})
}

func (s *Server) addAccount(profile api.UserProfile, password string) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		panic(fmt.Sprintf("devserver: hash seed password: %v", err))
	}
	s.users[profile.Email] = &account{Profile: profile, PasswordHash: hash}
}
