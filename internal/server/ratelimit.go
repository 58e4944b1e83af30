// ratelimit.go - Per-IP request limiter, disabled unless configured.
//
// A sliding-window limiter in front of the whole surface. It complements,
// not replaces, proxy-side limits; the spool itself needs no protection
// beyond the body-size cap, but a misbehaving submitter can still burn
// identifiers and disk.
package server

import (
	"net/http"
	"sync"
	"time"
)

// rateLimiter allows rate requests per window for each client IP.
type rateLimiter struct {
	mu       sync.Mutex
	visitors map[string][]time.Time
	rate     int
	window   time.Duration
}

func newRateLimiter(rate int, window time.Duration) *rateLimiter {
	rl := &rateLimiter{
		visitors: make(map[string][]time.Time),
		rate:     rate,
		window:   window,
	}
	go rl.evictIdle()
	return rl
}

func (rl *rateLimiter) middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !rl.allow(getClientIP(r)) {
			http.Error(w, "rate limit exceeded", http.StatusTooManyRequests)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// allow records the request and reports whether it fits in the window.
func (rl *rateLimiter) allow(ip string) bool {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := time.Now()
	cutoff := now.Add(-rl.window)

	recent := rl.visitors[ip][:0]
	for _, t := range rl.visitors[ip] {
		if t.After(cutoff) {
			recent = append(recent, t)
		}
	}

	if len(recent) >= rl.rate {
		rl.visitors[ip] = recent
		return false
	}
	rl.visitors[ip] = append(recent, now)
	return true
}

// evictIdle drops IPs with no requests inside two windows.
func (rl *rateLimiter) evictIdle() {
	ticker := time.NewTicker(time.Minute)
	defer ticker.Stop()

	for range ticker.C {
		cutoff := time.Now().Add(-2 * rl.window)
		rl.mu.Lock()
		for ip, times := range rl.visitors {
			if len(times) == 0 || times[len(times)-1].Before(cutoff) {
				delete(rl.visitors, ip)
			}
		}
		rl.mu.Unlock()
	}
}
