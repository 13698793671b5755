package auth

import (
	"context"
	"errors"
	"log"
	"sync"
)

var ErrNotLoggedIn = errors.New("no user in session")

// Persister is the best-effort durable layer for the session's user record.
// Failures are logged and ignored, the in-memory record stays authoritative.
type Persister interface {
	SaveUser(ctx context.Context, sessionID string, u User) error
	LoadUser(ctx context.Context, sessionID string) (User, bool, error)
	DeleteUser(ctx context.Context, sessionID string) error
}

// Store holds at most one user per session. Login creates the record,
// logout destroys it, UpdateProfile mutates fields in place.
type Store struct {
	mu        sync.Mutex
	users     map[string]User
	provider  IdentityProvider
	persister Persister // optional
}

func NewStore(provider IdentityProvider, p Persister) *Store {
	return &Store{users: map[string]User{}, provider: provider, persister: p}
}

func (s *Store) Current(ctx context.Context, sessionID string) (User, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.currentLocked(ctx, sessionID)
}

func (s *Store) currentLocked(ctx context.Context, sessionID string) (User, bool) {
	if u, ok := s.users[sessionID]; ok {
		return u, true
	}
	if s.persister != nil {
		if u, ok, err := s.persister.LoadUser(ctx, sessionID); err != nil {
			log.Printf("user load session=%s: %v", sessionID, err)
		} else if ok {
			s.users[sessionID] = u
			return u, true
		}
	}
	return User{}, false
}

func (s *Store) Login(ctx context.Context, sessionID, email, password string) (User, error) {
	u, err := s.provider.Login(ctx, email, password)
	if err != nil {
		return User{}, err
	}
	s.put(ctx, sessionID, u)
	return u, nil
}

func (s *Store) Signup(ctx context.Context, sessionID, email, password, name string) (User, error) {
	u, err := s.provider.Signup(ctx, email, password, name)
	if err != nil {
		return User{}, err
	}
	s.put(ctx, sessionID, u)
	return u, nil
}

func (s *Store) GoogleLogin(ctx context.Context, sessionID string) (User, error) {
	u, err := s.provider.GoogleLogin(ctx)
	if err != nil {
		return User{}, err
	}
	s.put(ctx, sessionID, u)
	return u, nil
}

func (s *Store) Logout(ctx context.Context, sessionID string) {
	s.mu.Lock()
	delete(s.users, sessionID)
	s.mu.Unlock()
	if s.persister != nil {
		if err := s.persister.DeleteUser(ctx, sessionID); err != nil {
			log.Printf("user delete session=%s: %v", sessionID, err)
		}
	}
}

func (s *Store) UpdateProfile(ctx context.Context, sessionID string, patch ProfilePatch) (User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.currentLocked(ctx, sessionID)
	if !ok {
		return User{}, ErrNotLoggedIn
	}
	u.apply(patch)
	s.users[sessionID] = u
	s.saveLocked(ctx, sessionID, u)
	return u, nil
}

func (s *Store) put(ctx context.Context, sessionID string, u User) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.users[sessionID] = u
	s.saveLocked(ctx, sessionID, u)
}

func (s *Store) saveLocked(ctx context.Context, sessionID string, u User) {
	if s.persister == nil {
		return
	}
	if err := s.persister.SaveUser(ctx, sessionID, u); err != nil {
		log.Printf("user save session=%s: %v", sessionID, err)
	}
}
