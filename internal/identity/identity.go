// Package identity simulates the account layer of the demo: one seeded
// account, register-always-succeeds, and a session token minted on
// login. Nothing here talks to a real backend; the artificial delay
// stands in for the network round trip.
package identity

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"golang.org/x/crypto/bcrypt"

	"bookchat/internal/kv"
	"bookchat/internal/util"
	"bookchat/pkg/domain"
)

var (
	// ErrInvalidCredentials reports a failed login attempt.
	ErrInvalidCredentials = errors.New("identity: invalid credentials")
	// ErrNotFound reports an operation against a user that is not the
	// current one.
	ErrNotFound = errors.New("identity: user not found")
	// ErrNotAuthenticated reports an operation that needs a current user.
	ErrNotAuthenticated = errors.New("identity: not authenticated")
)

// DemoEmail and DemoPassword are the seeded account's credentials.
const (
	DemoEmail    = "xiaoming@example.com"
	DemoPassword = "password"
)

// Changes carries optional profile updates; nil fields are untouched.
type Changes struct {
	Username *string
	Email    *string
	Avatar   *string
}

// Config tunes the simulated account service.
type Config struct {
	// Delay is the artificial network latency per login/register call.
	Delay time.Duration
	// TokenSecret signs session tokens; TokenTTL bounds their life.
	TokenSecret string
	TokenTTL    time.Duration
}

// Service owns the current-user record. The record is restored from the
// durable store at construction and written through on every change.
type Service struct {
	kv     kv.Store
	tokens *TokenIssuer
	delay  time.Duration

	mu       sync.RWMutex
	current  *domain.User
	demoHash string
}

// NewService restores any saved user and prepares the demo account.
func NewService(ctx context.Context, store kv.Store, cfg Config) (*Service, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(DemoPassword), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash demo password: %w", err)
	}
	s := &Service{
		kv:       store,
		tokens:   NewTokenIssuer(cfg.TokenSecret, cfg.TokenTTL),
		delay:    cfg.Delay,
		demoHash: string(hash),
	}

	raw, ok, err := store.Get(ctx, domain.StorageKeyUser)
	if err != nil {
		return nil, fmt.Errorf("restore user: %w", err)
	}
	if ok {
		var user domain.User
		if err := json.Unmarshal([]byte(raw), &user); err != nil {
			return nil, fmt.Errorf("decode saved user: %w", err)
		}
		s.current = &user
	}
	return s, nil
}

// Current returns the signed-in user, if any.
func (s *Service) Current() (domain.User, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.current == nil {
		return domain.User{}, false
	}
	return *s.current, true
}

// Login checks credentials against the demo account after the simulated
// delay, persists the user record and returns it with a session token.
func (s *Service) Login(ctx context.Context, email, password string) (domain.User, string, error) {
	if err := s.wait(ctx); err != nil {
		return domain.User{}, "", err
	}
	if !strings.EqualFold(strings.TrimSpace(email), DemoEmail) {
		return domain.User{}, "", ErrInvalidCredentials
	}
	if bcrypt.CompareHashAndPassword([]byte(s.demoHash), []byte(password)) != nil {
		return domain.User{}, "", ErrInvalidCredentials
	}

	user := demoUser()
	if err := s.setCurrent(ctx, user); err != nil {
		return domain.User{}, "", err
	}
	token, err := s.tokens.Issue(user.ID)
	if err != nil {
		return domain.User{}, "", fmt.Errorf("issue token: %w", err)
	}
	return user, token, nil
}

// Register creates a fresh account after the simulated delay. The demo
// has no uniqueness backend, so registration always succeeds.
func (s *Service) Register(ctx context.Context, email, username, password string) (domain.User, string, error) {
	if err := s.wait(ctx); err != nil {
		return domain.User{}, "", err
	}
	if strings.TrimSpace(email) == "" || strings.TrimSpace(username) == "" {
		return domain.User{}, "", fmt.Errorf("identity: email and username required")
	}

	user := domain.User{
		ID:            "user_" + util.NewID(),
		Username:      username,
		Email:         email,
		Avatar:        defaultAvatar,
		FavoriteBooks: []string{},
		JoinDate:      time.Now().UTC(),
	}
	if err := s.setCurrent(ctx, user); err != nil {
		return domain.User{}, "", err
	}
	token, err := s.tokens.Issue(user.ID)
	if err != nil {
		return domain.User{}, "", fmt.Errorf("issue token: %w", err)
	}
	return user, token, nil
}

// Update applies partial profile changes to the current user.
func (s *Service) Update(ctx context.Context, userID string, changes Changes) (domain.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.current == nil {
		return domain.User{}, ErrNotAuthenticated
	}
	if s.current.ID != userID {
		return domain.User{}, ErrNotFound
	}

	updated := *s.current
	if changes.Username != nil {
		updated.Username = *changes.Username
	}
	if changes.Email != nil {
		updated.Email = *changes.Email
	}
	if changes.Avatar != nil {
		updated.Avatar = *changes.Avatar
	}

	if err := s.persistLocked(ctx, updated); err != nil {
		return domain.User{}, err
	}
	s.current = &updated
	return updated, nil
}

// Refresh re-reads the stored record so favorite toggles made through
// the favorites store are visible here.
func (s *Service) Refresh(ctx context.Context) (domain.User, error) {
	raw, ok, err := s.kv.Get(ctx, domain.StorageKeyUser)
	if err != nil {
		return domain.User{}, fmt.Errorf("refresh user: %w", err)
	}
	if !ok {
		return domain.User{}, ErrNotAuthenticated
	}
	var user domain.User
	if err := json.Unmarshal([]byte(raw), &user); err != nil {
		return domain.User{}, fmt.Errorf("decode saved user: %w", err)
	}
	s.mu.Lock()
	s.current = &user
	s.mu.Unlock()
	return user, nil
}

// Logout removes the stored record and clears the current user. Memory
// is only cleared once the removal has gone through.
func (s *Service) Logout(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.kv.Remove(ctx, domain.StorageKeyUser); err != nil {
		return fmt.Errorf("clear user: %w", err)
	}
	s.current = nil
	return nil
}

// VerifyToken resolves a session token to its user id.
func (s *Service) VerifyToken(token string) (string, error) {
	return s.tokens.Verify(token)
}

func (s *Service) setCurrent(ctx context.Context, user domain.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.persistLocked(ctx, user); err != nil {
		return err
	}
	s.current = &user
	return nil
}

func (s *Service) persistLocked(ctx context.Context, user domain.User) error {
	data, err := json.Marshal(user)
	if err != nil {
		return fmt.Errorf("encode user: %w", err)
	}
	if err := s.kv.Set(ctx, domain.StorageKeyUser, string(data)); err != nil {
		return fmt.Errorf("persist user: %w", err)
	}
	return nil
}

func (s *Service) wait(ctx context.Context) error {
	if s.delay <= 0 {
		return nil
	}
	timer := time.NewTimer(s.delay)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

const defaultAvatar = "https://images.pexels.com/photos/2379004/pexels-photo-2379004.jpeg?auto=compress&cs=tinysrgb&w=100"

func demoUser() domain.User {
	return domain.User{
		ID:            "user1",
		Username:      "书虫小明",
		Email:         DemoEmail,
		Avatar:        defaultAvatar,
		FavoriteBooks: []string{"1", "3", "5"},
		JoinDate:      time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC),
	}
}
