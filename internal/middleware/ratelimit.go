package middleware

import (
	"net"
	"net/http"
	"sync"
	"time"
)

// bucket is a token bucket for a single client key.
type bucket struct {
	tokens     float64
	lastRefill time.Time
}

// RateLimiter tracks a token bucket per client key. Idle buckets are
// dropped after the expiration window.
type RateLimiter struct {
	mu       sync.Mutex
	buckets  map[string]*bucket
	lastSeen map[string]time.Time
	rate     float64 // tokens per second
	capacity float64
	expiry   time.Duration
}

func NewRateLimiter(rate, capacity float64, expiry time.Duration) *RateLimiter {
	return &RateLimiter{
		buckets:  make(map[string]*bucket),
		lastSeen: make(map[string]time.Time),
		rate:     rate,
		capacity: capacity,
		expiry:   expiry,
	}
}

// Allow consumes one token for key, refilling at the configured rate.
func (rl *RateLimiter) Allow(key string) bool {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := time.Now()
	rl.evictIdle(now)

	b, ok := rl.buckets[key]
	if !ok {
		b = &bucket{tokens: rl.capacity, lastRefill: now}
		rl.buckets[key] = b
	}
	rl.lastSeen[key] = now

	b.tokens = min(rl.capacity, b.tokens+now.Sub(b.lastRefill).Seconds()*rl.rate)
	b.lastRefill = now

	if b.tokens < 1 {
		return false
	}
	b.tokens--
	return true
}

func (rl *RateLimiter) evictIdle(now time.Time) {
	for key, seen := range rl.lastSeen {
		if now.Sub(seen) > rl.expiry {
			delete(rl.buckets, key)
			delete(rl.lastSeen, key)
		}
	}
}

// RateLimitByIP rejects requests above the limiter's budget, keyed by
// the connection's remote address. Spoofable forwarding headers are
// deliberately not consulted.
func RateLimitByIP(rl *RateLimiter) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ip, _, err := net.SplitHostPort(r.RemoteAddr)
			if err != nil {
				ip = r.RemoteAddr
			}
			if !rl.Allow(ip) {
				http.Error(w, "Rate limit exceeded, try again later", http.StatusTooManyRequests)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
