package session

import (
	"encoding/json"
	"fmt"
	"sync"

	"eduproject/internal/api"
)

// Status of the current session.
type Status int

const (
	// StatusInitializing holds only between process start and the first read
	// of durable storage. It is never re-entered.
	StatusInitializing Status = iota
	StatusAnonymous
	StatusAuthenticated
)

func (s Status) String() string {
	switch s {
	case StatusInitializing:
		return "initializing"
	case StatusAnonymous:
		return "anonymous"
	case StatusAuthenticated:
		return "authenticated"
	}
	return "unknown"
}

// Snapshot is an immutable view of the session handed to subscribers and
// screens. Token and Profile are set iff Status is StatusAuthenticated.
type Snapshot struct {
	Status  Status
	Token   string
	Profile *api.UserProfile
}

// Logger is the slice of the app logger the store needs.
type Logger interface {
	Info(message string, fields map[string]interface{})
	Error(message string, fields map[string]interface{})
}

// Store is the single source of truth for the current identity. One instance
// lives for the whole process and is injected into whatever consumes it;
// nothing reads the storage keys behind its back.
//
// Mutations are serialized by a mutex so two racing logins cannot interleave
// their storage writes.
type Store struct {
	mu      sync.Mutex
	storage Storage
	log     Logger

	state Snapshot
	subs  []func(Snapshot)
}

func NewStore(storage Storage, log Logger) *Store {
	return &Store{
		storage: storage,
		log:     log,
		state:   Snapshot{Status: StatusInitializing},
	}
}

// Subscribe registers fn to run synchronously on every state change.
// Subscribers must be registered before Initialize to see the first publish.
func (s *Store) Subscribe(fn func(Snapshot)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.subs = append(s.subs, fn)
}

// Snapshot returns the current session state.
func (s *Store) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Initialize performs the one-time cold-start read of durable storage and
// publishes the resulting state. It never fails: an unreadable store degrades
// to an anonymous session, logged but not surfaced.
func (s *Store) Initialize() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := Snapshot{Status: StatusAnonymous}

	token, haveToken, err := s.storage.Get(keyToken)
	if err != nil {
		s.log.Error("session: read token", map[string]interface{}{"error": err.Error()})
		haveToken = false
	}
	rawUser, haveUser, err := s.storage.Get(keyUser)
	if err != nil {
		s.log.Error("session: read profile", map[string]interface{}{"error": err.Error()})
		haveUser = false
	}

	if haveToken && haveUser {
		var profile api.UserProfile
		if err := json.Unmarshal([]byte(rawUser), &profile); err != nil {
			s.log.Error("session: stored profile is corrupt", map[string]interface{}{"error": err.Error()})
		} else {
			next = Snapshot{Status: StatusAuthenticated, Token: token, Profile: &profile}
		}
	}

	s.state = next
	s.publishLocked()
	return next
}

// Login persists the token and profile from a successful login call, then
// flips the in-memory state to authenticated. Both keys must be written
// before the state changes; a persistence failure leaves the session exactly
// as it was so a restart cannot silently drop an apparently-live session.
func (s *Store) Login(result api.LoginResult) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	profile := result.User
	rawUser, err := json.Marshal(profile)
	if err != nil {
		return fmt.Errorf("encode profile: %w", err)
	}
	if err := s.storage.Set(keyToken, result.Token); err != nil {
		return fmt.Errorf("persist token: %w", err)
	}
	if err := s.storage.Set(keyUser, string(rawUser)); err != nil {
		// Don't leave a token without a profile behind.
		_ = s.storage.Delete(keyToken)
		return fmt.Errorf("persist profile: %w", err)
	}

	s.state = Snapshot{Status: StatusAuthenticated, Token: result.Token, Profile: &profile}
	s.log.Info("session: logged in", map[string]interface{}{"userId": profile.UserID, "role": string(profile.Role)})
	s.publishLocked()
	return nil
}

// Logout clears both persisted keys and moves to anonymous. Calling it while
// already anonymous is a successful no-op.
func (s *Store) Logout() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.storage.Delete(keyToken); err != nil {
		return fmt.Errorf("clear token: %w", err)
	}
	if err := s.storage.Delete(keyUser); err != nil {
		return fmt.Errorf("clear profile: %w", err)
	}
	if s.state.Status == StatusAnonymous {
		return nil
	}
	s.state = Snapshot{Status: StatusAnonymous}
	s.log.Info("session: logged out", nil)
	s.publishLocked()
	return nil
}

func (s *Store) publishLocked() {
	snap := s.state
	for _, fn := range s.subs {
		fn(snap)
	}
}
