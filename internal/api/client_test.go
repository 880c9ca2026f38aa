package api

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLogin_ParsesTokenAndUser(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/auth/login", r.URL.Path)
		require.Equal(t, "application/json", r.Header.Get("Content-Type"))
		require.Empty(t, r.Header.Get("Authorization"))
		require.NotEmpty(t, r.Header.Get("X-Request-ID"))

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"token":"t1","user":{"userId":7,"name":"Asha","email":"a@x.com","role":"student"}}`))
	}))
	defer srv.Close()

	client := NewClient(srv.URL, time.Second)
	result, err := client.Login(context.Background(), "a@x.com", "secret1")
	require.NoError(t, err)
	assert.Equal(t, "t1", result.Token)
	assert.Equal(t, 7, result.User.UserID)
	assert.Equal(t, RoleStudent, result.User.Role)
}

func TestAuthorizedCall_SendsBearerToken(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "Bearer tok-123", r.Header.Get("Authorization"))
		w.Write([]byte(`{"teams":[]}`))
	}))
	defer srv.Close()

	client := NewClient(srv.URL, time.Second)
	_, err := client.GuideTeams(context.Background(), "tok-123")
	require.NoError(t, err)
}

func TestMalformedBody_FailsWithInvalidResponseBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("<html>not json</html>"))
	}))
	defer srv.Close()

	client := NewClient(srv.URL, time.Second)

	_, err := client.Login(context.Background(), "a@x.com", "pw")
	require.Error(t, err)
	assert.True(t, IsKind(err, KindInvalidResponseBody), "got: %v", err)

	_, err = client.GuideDashboard(context.Background(), "tok")
	require.Error(t, err)
	assert.True(t, IsKind(err, KindInvalidResponseBody), "got: %v", err)
}

func TestUnencodableRequestBody_IsNotAnAPIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("request must not reach the server")
	}))
	defer srv.Close()

	client := NewClient(srv.URL, time.Second)
	err := client.do(context.Background(), http.MethodPost, "/x", "", func() {}, nil)
	require.Error(t, err)

	var apiErr *Error
	assert.False(t, errors.As(err, &apiErr), "encode failure must not carry an *Error kind: %v", err)
	assert.Contains(t, err.Error(), "encode request body")
}

func TestServerRejected_UsesBodyMessage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"message":"token expired"}`))
	}))
	defer srv.Close()

	client := NewClient(srv.URL, time.Second)
	_, err := client.GuideDashboard(context.Background(), "stale")
	require.Error(t, err)

	var apiErr *Error
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, KindServerRejected, apiErr.Kind)
	assert.Equal(t, http.StatusUnauthorized, apiErr.Status)
	assert.Equal(t, "token expired", apiErr.Message)
	assert.True(t, IsUnauthorized(err))
}

func TestServerRejected_EmptyBodyFallsBackToGenericMessage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	client := NewClient(srv.URL, time.Second)
	_, err := client.StudentTeams(context.Background(), "tok")
	require.Error(t, err)

	var apiErr *Error
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, KindServerRejected, apiErr.Kind)
	assert.Equal(t, http.StatusInternalServerError, apiErr.Status)
	assert.Equal(t, genericRejection, apiErr.Message)
	assert.False(t, IsUnauthorized(err))
}

func TestTransportFailure_FailsWithNetworkFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // nothing is listening anymore

	client := NewClient(srv.URL, time.Second)
	_, err := client.MyProfile(context.Background(), "tok")
	require.Error(t, err)
	assert.True(t, IsKind(err, KindNetworkFailure), "got: %v", err)
}

func TestCancelledContext_FailsWithNetworkFailure(t *testing.T) {
	block := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-block
	}))
	defer func() {
		close(block)
		srv.Close()
	}()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	client := NewClient(srv.URL, time.Second)
	_, err := client.StudentMeetings(ctx, "tok")
	require.Error(t, err)
	assert.True(t, IsKind(err, KindNetworkFailure), "got: %v", err)
}

func TestPublicStudentProfile_EscapesEmailQuery(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/public/student", r.URL.Path)
		require.Equal(t, "a+b@x.com", r.URL.Query().Get("email"))
		require.Empty(t, r.Header.Get("Authorization"))
		w.Write([]byte(`{"profile":{"userId":2,"role":"student"}}`))
	}))
	defer srv.Close()

	client := NewClient(srv.URL, time.Second)
	profile, err := client.PublicStudentProfile(context.Background(), "a+b@x.com")
	require.NoError(t, err)
	assert.Equal(t, 2, profile.Profile.UserID)
}
