// Package auth hashes passwords and issues and verifies session tokens.
package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/clickventure/backend/internal/domain"
)

const issuer = "clickventure"

// Claims is the payload of a session token. The subject is the user id.
type Claims struct {
	Email string `json:"email"`
	jwt.RegisteredClaims
}

// Gateway signs HS256 tokens with a shared secret and hashes passwords with bcrypt.
type Gateway struct {
	secret []byte
	ttl    time.Duration
	cost   int
	now    func() time.Time
}

// Option configures a Gateway.
type Option func(*Gateway)

// WithBcryptCost overrides bcrypt.DefaultCost. Tests use bcrypt.MinCost.
func WithBcryptCost(cost int) Option {
	return func(g *Gateway) { g.cost = cost }
}

// WithClock replaces time.Now for token issue and expiry checks.
func WithClock(now func() time.Time) Option {
	return func(g *Gateway) { g.now = now }
}

// NewGateway returns a Gateway whose tokens expire after ttl.
func NewGateway(secret string, ttl time.Duration, opts ...Option) *Gateway {
	g := &Gateway{secret: []byte(secret), ttl: ttl, cost: bcrypt.DefaultCost, now: time.Now}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Hash returns the bcrypt hash of password.
// A password over 72 bytes is domain.ErrValidation.
func (g *Gateway) Hash(password string) (string, error) {
	b, err := bcrypt.GenerateFromPassword([]byte(password), g.cost)
	if errors.Is(err, bcrypt.ErrPasswordTooLong) {
		return "", fmt.Errorf("auth.Gateway.Hash: %w: %w", domain.ErrValidation, err)
	}
	if err != nil {
		return "", fmt.Errorf("auth.Gateway.Hash: %w", err)
	}
	return string(b), nil
}

// Verify reports whether password matches hash.
func (g *Gateway) Verify(hash, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}

// IssueToken returns a signed token for userID.
func (g *Gateway) IssueToken(userID uuid.UUID, email string) (string, error) {
	now := g.now()
	claims := Claims{
		Email: email,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issuer,
			Subject:   userID.String(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(g.ttl)),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(g.secret)
	if err != nil {
		return "", fmt.Errorf("auth.Gateway.IssueToken: %w", err)
	}
	return signed, nil
}

// VerifyToken checks the signature and expiry of token and returns the user id
// it was issued for. Every failure is reported as domain.ErrUnauthorized.
func (g *Gateway) VerifyToken(token string) (uuid.UUID, error) {
	var claims Claims
	_, err := jwt.ParseWithClaims(token, &claims,
		func(*jwt.Token) (any, error) { return g.secret, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(issuer),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(g.now),
	)
	if err != nil {
		return uuid.Nil, fmt.Errorf("%w: %w", domain.ErrUnauthorized, err)
	}

	id, err := uuid.Parse(claims.Subject)
	if err != nil {
		return uuid.Nil, fmt.Errorf("%w: %w", domain.ErrUnauthorized, errors.New("malformed subject"))
	}
	return id, nil
}
