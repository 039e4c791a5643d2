package services

import (
	"sync"
	"time"

	"github.com/go-faster/errors"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

var ErrBadPassword = errors.New("invalid password")

// AuthService is the admin session gate: one shared password checked with
// bcrypt, fixed-TTL sessions held in memory, no identity and no refresh.
type AuthService struct {
	hash []byte
	ttl  time.Duration

	mu       sync.Mutex
	sessions map[string]time.Time // sid -> expiry
}

func NewAuthService(password string, ttl time.Duration) (*AuthService, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, errors.Wrap(err, "hash admin password")
	}
	return &AuthService{
		hash:     hash,
		ttl:      ttl,
		sessions: make(map[string]time.Time),
	}, nil
}

// Login checks the shared password and mints a session id.
func (s *AuthService) Login(password string) (string, error) {
	if bcrypt.CompareHashAndPassword(s.hash, []byte(password)) != nil {
		return "", ErrBadPassword
	}
	sid := uuid.NewString()
	s.mu.Lock()
	s.sessions[sid] = time.Now().Add(s.ttl)
	s.mu.Unlock()
	return sid, nil
}

func (s *AuthService) Logout(sid string) {
	s.mu.Lock()
	delete(s.sessions, sid)
	s.mu.Unlock()
}

// Admitted reports whether the session exists and has not passed its TTL.
// Expired entries are pruned on sight.
func (s *AuthService) Admitted(sid string) bool {
	if sid == "" {
		return false
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	exp, ok := s.sessions[sid]
	if !ok {
		return false
	}
	if time.Now().After(exp) {
		delete(s.sessions, sid)
		return false
	}
	return true
}
