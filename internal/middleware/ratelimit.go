package middleware

import (
	"math"
	"net"
	"net/http"
	"strconv"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// RateLimiter hands out one token bucket per client key.
type RateLimiter struct {
	mu       sync.Mutex
	limiters map[string]*clientLimiter
	rate     rate.Limit
	burst    int
	idle     time.Duration
}

type clientLimiter struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// NewRateLimiter allows requestsPerMinute per client with bursts of up to burst.
// A non-positive requestsPerMinute allows everything. Buckets unused for idle
// are dropped by Sweep.
func NewRateLimiter(requestsPerMinute, burst int, idle time.Duration) *RateLimiter {
	if burst < 1 {
		burst = 1
	}
	limit := rate.Inf
	if requestsPerMinute > 0 {
		limit = rate.Every(time.Minute / time.Duration(requestsPerMinute))
	}
	return &RateLimiter{
		limiters: make(map[string]*clientLimiter),
		rate:     limit,
		burst:    burst,
		idle:     idle,
	}
}

// Allow reports whether a request from key may proceed now.
func (rl *RateLimiter) Allow(key string) bool {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := time.Now()
	cl, ok := rl.limiters[key]
	if !ok {
		cl = &clientLimiter{limiter: rate.NewLimiter(rl.rate, rl.burst)}
		rl.limiters[key] = cl
	}
	cl.lastSeen = now
	return cl.limiter.AllowN(now, 1)
}

// Sweep drops the buckets of clients idle for longer than the idle period.
func (rl *RateLimiter) Sweep() {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	cutoff := time.Now().Add(-rl.idle)
	for key, cl := range rl.limiters {
		if cl.lastSeen.Before(cutoff) {
			delete(rl.limiters, key)
		}
	}
}

// Len returns the number of tracked clients.
func (rl *RateLimiter) Len() int {
	rl.mu.Lock()
	defer rl.mu.Unlock()
	return len(rl.limiters)
}

// Handler returns a middleware that rejects clients over their limit with 429.
// Clients are keyed by the host part of r.RemoteAddr, so wire it after
// chimiddleware.RealIP when running behind a proxy.
func (rl *RateLimiter) Handler(next http.Handler) http.Handler {
	retryAfter := strconv.Itoa(max(1, int(math.Ceil(1/float64(rl.rate)))))
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !rl.Allow(clientKey(r)) {
			w.Header().Set("Retry-After", retryAfter)
			writeError(w, http.StatusTooManyRequests, "rate_limited", "too many requests")
			return
		}
		next.ServeHTTP(w, r)
	})
}

// Run sweeps idle buckets every interval until done is closed.
func (rl *RateLimiter) Run(interval time.Duration, done <-chan struct{}) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			rl.Sweep()
		case <-done:
			return
		}
	}
}

func clientKey(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
