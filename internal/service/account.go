package service

import (
	"context"
	"errors"
	"fmt"
	"net/mail"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/clickventure/backend/internal/domain"
	"github.com/clickventure/backend/internal/repo"
)

// Password length limits SignUp enforces, after trimming. The maximum is in
// bytes, the most bcrypt will hash.
const (
	MinPasswordLength = 6
	MaxPasswordLength = 72
)

// Credentials hashes passwords and issues session tokens.
// *auth.Gateway satisfies it.
type Credentials interface {
	Hash(password string) (string, error)
	Verify(hash, password string) bool
	IssueToken(userID uuid.UUID, email string) (string, error)
}

// AccountService implements registration, login, and profile operations.
type AccountService struct {
	users   repo.UserRepo
	creds   Credentials
	timeout time.Duration
}

// NewAccountService constructs an AccountService.
func NewAccountService(users repo.UserRepo, creds Credentials, timeout time.Duration) *AccountService {
	return &AccountService{users: users, creds: creds, timeout: timeout}
}

// SignUp registers a new user.
// Returns domain.ErrValidation for missing fields, a malformed email, or a
// short password, and domain.ErrConflict when the email is taken.
func (s *AccountService) SignUp(ctx context.Context, in domain.SignUpInput) (domain.User, error) {
	name := strings.TrimSpace(in.Name)
	email := normalizeEmail(in.Email)
	password := strings.TrimSpace(in.Password)
	userName := strings.TrimSpace(in.UserName)
	if userName == "" {
		userName = name
	}

	if name == "" || email == "" || password == "" {
		return domain.User{}, fmt.Errorf("%w: name, email and password are required", domain.ErrValidation)
	}
	if _, err := mail.ParseAddress(email); err != nil {
		return domain.User{}, fmt.Errorf("%w: invalid email", domain.ErrValidation)
	}
	if len(password) < MinPasswordLength {
		return domain.User{}, fmt.Errorf("%w: password must be at least %d characters", domain.ErrValidation, MinPasswordLength)
	}
	if len(password) > MaxPasswordLength {
		return domain.User{}, fmt.Errorf("%w: password must be at most %d bytes", domain.ErrValidation, MaxPasswordLength)
	}

	hash, err := s.creds.Hash(password)
	if err != nil {
		return domain.User{}, fmt.Errorf("service.AccountService.SignUp: %w", err)
	}

	ctx, cancel := withTimeout(ctx, s.timeout)
	defer cancel()

	user, err := s.users.Create(ctx, domain.User{
		Name:         name,
		UserName:     userName,
		Email:        email,
		PasswordHash: hash,
		Rank:         domain.DefaultRank,
	})
	if err != nil {
		return domain.User{}, fmt.Errorf("service.AccountService.SignUp: %w", err)
	}
	return user, nil
}

// Login checks the credentials and returns a session token.
// An unknown email and a wrong password are both domain.ErrUnauthorized.
func (s *AccountService) Login(ctx context.Context, email, password string) (string, error) {
	ctx, cancel := withTimeout(ctx, s.timeout)
	defer cancel()

	user, err := s.users.GetByEmail(ctx, normalizeEmail(email))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return "", fmt.Errorf("service.AccountService.Login: %w", domain.ErrUnauthorized)
		}
		return "", fmt.Errorf("service.AccountService.Login: %w", err)
	}
	if !s.creds.Verify(user.PasswordHash, strings.TrimSpace(password)) {
		return "", fmt.Errorf("service.AccountService.Login: %w", domain.ErrUnauthorized)
	}

	token, err := s.creds.IssueToken(user.ID, user.Email)
	if err != nil {
		return "", fmt.Errorf("service.AccountService.Login: %w", err)
	}
	return token, nil
}

// Profile returns the user with their counters and reference sets.
func (s *AccountService) Profile(ctx context.Context, userID uuid.UUID) (domain.User, error) {
	ctx, cancel := withTimeout(ctx, s.timeout)
	defer cancel()

	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return domain.User{}, fmt.Errorf("service.AccountService.Profile: %w", err)
	}
	return user, nil
}

// SetRunningTrip marks one of the user's trips as active, or clears the
// active trip when tripID is nil.
func (s *AccountService) SetRunningTrip(ctx context.Context, userID uuid.UUID, tripID *uuid.UUID) error {
	ctx, cancel := withTimeout(ctx, s.timeout)
	defer cancel()

	if err := s.users.SetRunningTrip(ctx, userID, tripID); err != nil {
		return fmt.Errorf("service.AccountService.SetRunningTrip: %w", err)
	}
	return nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
