package devserver_test

import (
	"context"
	"encoding/json"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"eduproject/internal/api"
	"eduproject/internal/devserver"
	"eduproject/internal/session"
)

type nopLogger struct{}

func (nopLogger) Info(string, map[string]interface{})  {}
func (nopLogger) Error(string, map[string]interface{}) {}

func newTestBackend(t *testing.T) (*httptest.Server, *api.Client) {
	t.Helper()
	srv := httptest.NewServer(devserver.New("test-secret").Router())
	t.Cleanup(srv.Close)
	return srv, api.NewClient(srv.URL, 2*time.Second)
}

func TestLogin_HappyPathFeedsSessionStore(t *testing.T) {
	_, client := newTestBackend(t)
	ctx := context.Background()

	result, err := client.Login(ctx, "asha@edu.test", "student123")
	require.NoError(t, err)
	assert.NotEmpty(t, result.Token)
	assert.Equal(t, api.RoleStudent, result.User.Role)

	storage := session.NewFileStorage(t.TempDir())
	store := session.NewStore(storage, nopLogger{})
	store.Initialize()
	require.NoError(t, store.Login(*result))

	assert.Equal(t, session.StatusAuthenticated, store.Snapshot().Status)
	persisted, ok, err := storage.Get("token")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, result.Token, persisted)
}

func TestLogin_BadPasswordIsRejected(t *testing.T) {
	_, client := newTestBackend(t)

	_, err := client.Login(context.Background(), "asha@edu.test", "wrong")
	require.Error(t, err)

	var apiErr *api.Error
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, api.KindServerRejected, apiErr.Kind)
	assert.Equal(t, 401, apiErr.Status)
	assert.Equal(t, "invalid email or password", apiErr.Message)
}

// An expired token on an authed endpoint must read as unauthorized so the
// caller can force re-login; after logout the gate shows the auth flow.
func TestExpiredToken_TriggersLogoutAndUnauthenticatedFlow(t *testing.T) {
	_, client := newTestBackend(t)
	ctx := context.Background()

	result, err := client.Login(ctx, "asha@edu.test", "student123")
	require.NoError(t, err)

	store := session.NewStore(session.NewFileStorage(t.TempDir()), nopLogger{})
	store.Initialize()
	require.NoError(t, store.Login(*result))

	_, err = client.StudentDashboard(ctx, "not-a-real-token")
	require.Error(t, err)
	require.True(t, api.IsUnauthorized(err), "got: %v", err)

	require.NoError(t, store.Logout())
	assert.Equal(t, session.FlowUnauthenticated, session.SelectFlow(store.Snapshot()))
}

func TestGuideFlow_TeamsMeetingsAndMom(t *testing.T) {
	_, client := newTestBackend(t)
	ctx := context.Background()

	result, err := client.Login(ctx, "guide@edu.test", "guide123")
	require.NoError(t, err)
	token := result.Token

	teams, err := client.GuideTeams(ctx, token)
	require.NoError(t, err)
	require.Len(t, teams, 1)

	detail, err := client.TeamDetails(ctx, token, teams[0].ID)
	require.NoError(t, err)
	assert.Len(t, detail.Members, 2)

	meetings, err := client.GuideMeetings(ctx, token)
	require.NoError(t, err)
	require.NotEmpty(t, meetings)

	momData, err := client.MomData(ctx, token, meetings[0].ID)
	require.NoError(t, err)
	require.Len(t, momData.Members, 2)

	mom := api.Mom{
		Summary:   "Reviewed sprint output.",
		NextSteps: "Finish the report draft.",
		Attendance: []api.AttendanceRecord{
			{UserID: momData.Members[0].UserID, Present: true},
			{UserID: momData.Members[1].UserID, Present: false},
		},
	}
	status, err := client.CreateMom(ctx, token, meetings[0].ID, mom)
	require.NoError(t, err)
	assert.True(t, status.Success)

	after, err := client.MeetingDetails(ctx, token, meetings[0].ID)
	require.NoError(t, err)
	require.NotNil(t, after.Mom)
	assert.Equal(t, "Reviewed sprint output.", after.Mom.Summary)
}

func TestStudentCannotScheduleMeetings(t *testing.T) {
	_, client := newTestBackend(t)
	ctx := context.Background()

	result, err := client.Login(ctx, "asha@edu.test", "student123")
	require.NoError(t, err)

	_, err = client.CreateMeeting(ctx, result.Token, api.CreateMeetingInput{
		TeamID: "whatever", Title: "x", ScheduledAt: "2026-09-05 10:00",
	})
	require.Error(t, err)

	var apiErr *api.Error
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, 403, apiErr.Status)
}

func TestPasswordResetFlow(t *testing.T) {
	_, client := newTestBackend(t)
	ctx := context.Background()

	_, err := client.ForgotPassword(ctx, "ravi@edu.test")
	require.NoError(t, err)

	_, err = client.VerifyOTP(ctx, "ravi@edu.test", "424242")
	require.NoError(t, err)

	_, err = client.ChangePassword(ctx, "ravi@edu.test", "fresh-password")
	require.NoError(t, err)

	_, err = client.Login(ctx, "ravi@edu.test", "student123")
	require.Error(t, err)
	result, err := client.Login(ctx, "ravi@edu.test", "fresh-password")
	require.NoError(t, err)
	assert.Equal(t, "ravi@edu.test", result.User.Email)
}

func TestPublicStudentLookup_NeedsNoToken(t *testing.T) {
	_, client := newTestBackend(t)

	profile, err := client.PublicStudentProfile(context.Background(), "asha@edu.test")
	require.NoError(t, err)
	assert.Equal(t, "Asha Verma", profile.Profile.Name)
	assert.Len(t, profile.Teams, 1)

	var analytics map[string]int
	require.NoError(t, json.Unmarshal(profile.Analytics, &analytics))
	assert.Contains(t, analytics, "meetingsRecorded")
	assert.Contains(t, analytics, "meetingsAttended")

	_, err = client.PublicStudentProfile(context.Background(), "guide@edu.test")
	require.Error(t, err)
}
