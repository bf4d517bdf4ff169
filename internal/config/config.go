// Package config loads and validates application configuration from environment variables.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"github.com/clickventure/backend/internal/domain"
)

// Config holds all configuration values for the API server.
// Values are populated by Load from environment variables.
type Config struct {
	// Port is the TCP port the HTTP server listens on. Defaults to "8080".
	Port string

	// DatabaseURL is the Postgres connection string. Required.
	DatabaseURL string

	// JWTSecret signs and verifies session tokens. Required.
	JWTSecret string

	// LogLevel controls the minimum log level. Defaults to "info".
	// Valid values: debug, info, warn, error.
	LogLevel string

	// CORSOrigins is the list of allowed cross-origin request origins.
	// Defaults to ["http://localhost:5173"] (Vite dev server).
	// Set CORS_ORIGINS to a comma-separated list to override.
	CORSOrigins []string

	// TokenTTL is how long an issued session token stays valid. Defaults to 24h.
	TokenTTL time.Duration

	// BcryptCost is the work factor for password hashes. Defaults to 10.
	BcryptCost int

	// StoreTimeout bounds every store operation a request performs. Defaults to 5s.
	StoreTimeout time.Duration

	// MaxBodyBytes caps request bodies. Defaults to 1 MiB.
	MaxBodyBytes int64

	// RateLimitRPM and RateLimitBurst configure the per-client request limiter.
	// A zero RPM disables limiting.
	RateLimitRPM   int
	RateLimitBurst int

	// Rewards is the number of points awarded per contribution.
	Rewards domain.RewardTable

	// MigrateOnStart applies pending migrations before serving. Defaults to true.
	MigrateOnStart bool
}

// Load reads configuration from environment variables and returns a Config.
// A .env file in the working directory is loaded first when present; variables
// already set in the environment take precedence over it.
// Returns an error listing any required variables that are not set or any
// values that cannot be parsed.
func Load() (Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("load .env: %w", err)
	}

	p := parser{}
	cfg := Config{
		Port:           getEnv("PORT", "8080"),
		LogLevel:       getEnv("LOG_LEVEL", "info"),
		CORSOrigins:    splitCSV(getEnv("CORS_ORIGINS", "http://localhost:5173")),
		TokenTTL:       p.duration("TOKEN_TTL", 24*time.Hour),
		BcryptCost:     p.int("BCRYPT_COST", 10),
		StoreTimeout:   p.duration("STORE_TIMEOUT", 5*time.Second),
		MaxBodyBytes:   int64(p.int("MAX_BODY_BYTES", 1<<20)),
		RateLimitRPM:   p.int("RATE_LIMIT_RPM", 120),
		RateLimitBurst: p.int("RATE_LIMIT_BURST", 20),
		Rewards: domain.RewardTable{
			domain.RewardComment: p.int("POINTS_COMMENT", domain.DefaultRewards.Points(domain.RewardComment)),
			domain.RewardPhoto:   p.int("POINTS_PHOTO", domain.DefaultRewards.Points(domain.RewardPhoto)),
		},
		MigrateOnStart: p.bool("MIGRATE_ON_START", true),
	}

	var missing []string

	cfg.DatabaseURL = os.Getenv("DATABASE_URL")
	if cfg.DatabaseURL == "" {
		missing = append(missing, "DATABASE_URL")
	}
	cfg.JWTSecret = os.Getenv("JWT_SECRET")
	if cfg.JWTSecret == "" {
		missing = append(missing, "JWT_SECRET")
	}

	if len(missing) > 0 {
		return Config{}, fmt.Errorf("required environment variables not set: %s", strings.Join(missing, ", "))
	}
	if len(p.invalid) > 0 {
		return Config{}, fmt.Errorf("invalid environment variables: %s", strings.Join(p.invalid, ", "))
	}

	return cfg, nil
}

// getEnv returns the value of the environment variable named by key,
// or fallback if the variable is not set or is empty.
func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// parser reads typed variables and collects the names of unparsable ones.
type parser struct {
	invalid []string
}

func (p *parser) duration(key string, fallback time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil || d <= 0 {
		p.invalid = append(p.invalid, key)
		return fallback
	}
	return d
}

func (p *parser) int(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil || n < 0 {
		p.invalid = append(p.invalid, key)
		return fallback
	}
	return n
}

func (p *parser) bool(key string, fallback bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		p.invalid = append(p.invalid, key)
		return fallback
	}
	return b
}

// splitCSV splits a comma-separated string into a trimmed slice, ignoring empty entries.
func splitCSV(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if t := strings.TrimSpace(part); t != "" {
			out = append(out, t)
		}
	}
	return out
}
