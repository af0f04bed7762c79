package service

import (
	"encoding/json"
	"errors"
	"strings"

	"github.com/google/uuid"

	"newsdesk/internal/model"
	"newsdesk/internal/store"
)

// SessionService issues the anonymous placeholder session. Login and
// signup always succeed; there is no credential verification here and
// a production deployment must put a real identity provider behind
// this interface.
type SessionService struct {
	kv store.KV
}

func NewSessionService(kv store.KV) *SessionService {
	return &SessionService{kv: kv}
}

// Login creates a session for the email, deriving the display name
// from the local part. The password is accepted unchecked.
func (s *SessionService) Login(email, password string) (*model.Session, error) {
	if email == "" {
		return nil, errors.New("email is required")
	}
	name := email
	if at := strings.Index(email, "@"); at > 0 {
		name = email[:at]
	}
	return s.create(name, email)
}

// Signup creates a session under the chosen name.
func (s *SessionService) Signup(name, email, password string) (*model.Session, error) {
	if email == "" {
		return nil, errors.New("email is required")
	}
	if name == "" {
		return s.Login(email, password)
	}
	return s.create(name, email)
}

func (s *SessionService) create(name, email string) (*model.Session, error) {
	session := &model.Session{
		ID:    uuid.NewString(),
		Name:  name,
		Email: email,
	}
	data, err := json.Marshal(session)
	if err != nil {
		return nil, err
	}
	if err := s.kv.Set(model.KeyUser, string(data)); err != nil {
		return nil, err
	}
	return session, nil
}

// Logout clears the session. Favorites and preferences are untouched.
func (s *SessionService) Logout() error {
	return s.kv.Delete(model.KeyUser)
}

// Current returns the active session, or nil when signed out.
func (s *SessionService) Current() (*model.Session, error) {
	data, err := s.kv.Get(model.KeyUser)
	if errors.Is(err, store.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var session model.Session
	if err := json.Unmarshal([]byte(data), &session); err != nil {
		// A corrupt stored session is treated as signed out.
		s.kv.Delete(model.KeyUser)
		return nil, nil
	}
	return &session, nil
}

// IsAuthenticated reports whether a session is present.
func (s *SessionService) IsAuthenticated() bool {
	session, err := s.Current()
	return err == nil && session != nil
}
