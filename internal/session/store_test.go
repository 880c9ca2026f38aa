package session

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"eduproject/internal/api"
)

type nopLogger struct{}

func (nopLogger) Info(string, map[string]interface{})  {}
func (nopLogger) Error(string, map[string]interface{}) {}

func testProfile() api.UserProfile {
	return api.UserProfile{
		UserID: 7, Name: "Asha Verma", Email: "a@x.com", Role: api.RoleStudent,
		RollNumber: "21CS042", Branch: "CSE", Section: "A", Semester: "6",
	}
}

func TestLoginThenRestart_RestoresSession(t *testing.T) {
	root := t.TempDir()
	store := NewStore(NewFileStorage(root), nopLogger{})
	store.Initialize()

	err := store.Login(api.LoginResult{Token: "t1", User: testProfile()})
	require.NoError(t, err)
	require.Equal(t, StatusAuthenticated, store.Snapshot().Status)

	// A fresh store over the same files is a process restart.
	restarted := NewStore(NewFileStorage(root), nopLogger{})
	snap := restarted.Initialize()
	assert.Equal(t, StatusAuthenticated, snap.Status)
	assert.Equal(t, "t1", snap.Token)
	require.NotNil(t, snap.Profile)
	assert.Equal(t, testProfile(), *snap.Profile)
}

func TestLogout_ClearsPersistedState(t *testing.T) {
	root := t.TempDir()
	store := NewStore(NewFileStorage(root), nopLogger{})
	store.Initialize()
	require.NoError(t, store.Login(api.LoginResult{Token: "t1", User: testProfile()}))

	require.NoError(t, store.Logout())

	restarted := NewStore(NewFileStorage(root), nopLogger{})
	snap := restarted.Initialize()
	assert.Equal(t, StatusAnonymous, snap.Status)
	assert.Empty(t, snap.Token)
	assert.Nil(t, snap.Profile)
}

func TestLogout_IsIdempotent(t *testing.T) {
	store := NewStore(NewFileStorage(t.TempDir()), nopLogger{})
	store.Initialize()
	require.NoError(t, store.Login(api.LoginResult{Token: "t1", User: testProfile()}))

	require.NoError(t, store.Logout())
	require.NoError(t, store.Logout())
	assert.Equal(t, StatusAnonymous, store.Snapshot().Status)
}

func TestInitialize_UnreadableStorageDegradesToAnonymous(t *testing.T) {
	store := NewStore(failingStorage{}, nopLogger{})
	snap := store.Initialize()
	assert.Equal(t, StatusAnonymous, snap.Status)
}

func TestInitialize_CorruptProfileDegradesToAnonymous(t *testing.T) {
	root := t.TempDir()
	storage := NewFileStorage(root)
	require.NoError(t, storage.Set("token", "t1"))
	require.NoError(t, storage.Set("user", "{not json"))

	store := NewStore(storage, nopLogger{})
	snap := store.Initialize()
	assert.Equal(t, StatusAnonymous, snap.Status)
}

func TestLogin_PersistenceFailureLeavesStateUnchanged(t *testing.T) {
	store := NewStore(failingStorage{}, nopLogger{})
	store.Initialize()

	err := store.Login(api.LoginResult{Token: "t1", User: testProfile()})
	require.Error(t, err)
	snap := store.Snapshot()
	assert.Equal(t, StatusAnonymous, snap.Status)
	assert.Empty(t, snap.Token)
}

func TestSubscribers_SeeEveryTransition(t *testing.T) {
	store := NewStore(NewFileStorage(t.TempDir()), nopLogger{})

	var seen []Status
	store.Subscribe(func(snap Snapshot) {
		seen = append(seen, snap.Status)
	})

	store.Initialize()
	require.NoError(t, store.Login(api.LoginResult{Token: "t1", User: testProfile()}))
	require.NoError(t, store.Logout())
	// Second logout is a no-op and must not publish again.
	require.NoError(t, store.Logout())

	assert.Equal(t, []Status{StatusAnonymous, StatusAuthenticated, StatusAnonymous}, seen)
}

// failingStorage refuses everything, standing in for a broken device store.
type failingStorage struct{}

var errStorage = errors.New("storage unavailable")

func (failingStorage) Get(string) (string, bool, error) { return "", false, errStorage }
func (failingStorage) Set(string, string) error         { return errStorage }
func (failingStorage) Delete(string) error              { return errStorage }
