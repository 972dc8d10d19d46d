package services

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/geocoder89/todohub/internal/domain/user"
	"github.com/geocoder89/todohub/internal/observability"
)

const decoyPassword = "todohub-decoy-password"

type AuthService struct {
	users   UserStore
	hasher  PasswordHasher
	tokens  TokenIssuer
	metrics *observability.Prom

	decoyOnce sync.Once
	decoyHash string
}

func NewAuthService(users UserStore, hasher PasswordHasher, tokens TokenIssuer, metrics *observability.Prom) *AuthService {
	return &AuthService{
		users:   users,
		hasher:  hasher,
		tokens:  tokens,
		metrics: metrics,
	}
}

// Signup stores a new user under a fresh password digest. The returned user
// never carries the digest.
func (s *AuthService) Signup(ctx context.Context, email, password string) (user.User, error) {
	hash, err := s.hasher.Hash(password)
	if err != nil {
		s.metrics.IncAuth("signup", "error")
		return user.User{}, fmt.Errorf("hash password: %w", err)
	}

	u, err := s.users.Create(ctx, email, hash)
	if err != nil {
		if errors.Is(err, user.ErrEmailTaken) {
			s.metrics.IncAuth("signup", "taken")
			return user.User{}, user.ErrEmailTaken
		}
		s.metrics.IncAuth("signup", "error")
		return user.User{}, fmt.Errorf("create user: %w", err)
	}

	s.metrics.IncAuth("signup", "ok")
	u.Hash = ""
	return u, nil
}

// Login returns user.ErrInvalidCredentials for both an unknown email and a
// wrong password.
func (s *AuthService) Login(ctx context.Context, email, password string) (user.AccessToken, error) {
	u, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, user.ErrNotFound) {
			// burn the same bcrypt time as a real comparison
			s.hasher.Verify(s.decoy(), password)
			s.metrics.IncAuth("login", "invalid_credentials")
			return user.AccessToken{}, user.ErrInvalidCredentials
		}
		s.metrics.IncAuth("login", "error")
		return user.AccessToken{}, fmt.Errorf("lookup user: %w", err)
	}

	if !s.hasher.Verify(u.Hash, password) {
		s.metrics.IncAuth("login", "invalid_credentials")
		return user.AccessToken{}, user.ErrInvalidCredentials
	}

	token, err := s.tokens.GenerateAccessToken(u.ID, u.Email)
	if err != nil {
		s.metrics.IncAuth("login", "error")
		return user.AccessToken{}, fmt.Errorf("sign token: %w", err)
	}

	s.metrics.IncAuth("login", "ok")
	return user.AccessToken{AccessToken: token}, nil
}

// EnsureUser signs the user up unless the email already exists.
func (s *AuthService) EnsureUser(ctx context.Context, email, password string) (created bool, err error) {
	_, err = s.Signup(ctx, email, password)
	if errors.Is(err, user.ErrEmailTaken) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

func (s *AuthService) decoy() string {
	s.decoyOnce.Do(func() {
		// on failure the decoy stays empty and Verify returns false quickly
		h, err := s.hasher.Hash(decoyPassword)
		if err == nil {
			s.decoyHash = h
		}
	})
	return s.decoyHash
}
