// Package middleware provides the HTTP middleware of the travel-review API:
// request logging, CORS, authentication, rate limiting, body size limits and
// request metrics.
package middleware

import (
	"net/http"

	"github.com/rs/cors"
)

// corsMaxAge is how long, in seconds, browsers may cache a preflight response.
const corsMaxAge = 300

// NewCORSHandler returns a middleware that applies CORS headers based on allowedOrigins.
// Each entry in allowedOrigins must be a full origin (scheme + host, no trailing slash).
// Bearer tokens travel in the Authorization header, so cookies are never allowed.
func NewCORSHandler(allowedOrigins []string) func(http.Handler) http.Handler {
	c := cors.New(cors.Options{
		AllowedOrigins: allowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowedHeaders: []string{"Content-Type", "Authorization"},
		ExposedHeaders: []string{"X-Request-Id", "Retry-After", "Content-Disposition"},
		MaxAge:         corsMaxAge,
	})
	return c.Handler
}
