package httpx

import (
	"math"
	"net"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/aussiebroadwan/gatekeeper/pkg/slogx"
	"golang.org/x/time/rate"
)

// RateLimit is one limiter profile: RequestsPerWindow tokens refill evenly
// over Window and up to Burst of them can be spent at once.
type RateLimit struct {
	RequestsPerWindow int
	Window            time.Duration
	Burst             int
}

func (l RateLimit) perSecond() rate.Limit {
	return rate.Limit(float64(l.RequestsPerWindow) / l.Window.Seconds())
}

// refill is how long an untouched bucket takes to fill up again.
func (l RateLimit) refill() time.Duration {
	return time.Duration(float64(l.Burst) / float64(l.perSecond()) * float64(time.Second))
}

// Valid reports whether every field is positive.
func (l RateLimit) Valid() bool {
	return l.RequestsPerWindow > 0 && l.Window > 0 && l.Burst > 0
}

// RateLimits are the profiles the gate applies per route group.
type RateLimits struct {
	// Public guards unauthenticated endpoints, keyed by client IP.
	Public RateLimit
	// Session guards the session introspection endpoint, keyed by subject.
	Session RateLimit
	// Proxy guards proxied resource calls, keyed by subject.
	Proxy RateLimit
}

// DefaultRateLimits returns the production profiles.
func DefaultRateLimits() RateLimits {
	return RateLimits{
		Public:  RateLimit{RequestsPerWindow: 1000, Window: time.Minute, Burst: 1000},
		Session: RateLimit{RequestsPerWindow: 20, Window: time.Minute, Burst: 20},
		Proxy:   RateLimit{RequestsPerWindow: 100, Window: time.Minute, Burst: 100},
	}
}

// KeyFunc picks the bucket a request is charged to. An empty key skips
// limiting for that request.
type KeyFunc func(*http.Request) string

// RemoteIP keys on the connection's peer address.
func RemoteIP(r *http.Request) string {
	ip, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return ip
}

// ForwardedIP keys on the first X-Forwarded-For hop, then X-Real-IP, then
// the peer address. Only use it behind a proxy that overwrites those
// headers; otherwise clients choose their own bucket.
func ForwardedIP(r *http.Request) string {
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		first, _, _ := strings.Cut(xff, ",")
		if first = strings.TrimSpace(first); first != "" {
			return first
		}
	}
	if xri := strings.TrimSpace(r.Header.Get("X-Real-IP")); xri != "" {
		return xri
	}
	return RemoteIP(r)
}

// SubjectOrIP keys on the verified subject, or on clientIP for requests
// that have not been through the gate.
func SubjectOrIP(clientIP KeyFunc) KeyFunc {
	return func(r *http.Request) string {
		if sub := SubjectFromContext(r.Context()); sub != "" {
			return "sub:" + sub
		}
		return "ip:" + clientIP(r)
	}
}

// Limiter keeps a token bucket per key. Buckets idle long enough to have
// refilled completely are dropped, since a new bucket behaves the same.
type Limiter struct {
	limit RateLimit
	idle  time.Duration
	now   func() time.Time

	mu        sync.Mutex
	buckets   map[string]*bucket
	lastSweep time.Time
}

type bucket struct {
	lim  *rate.Limiter
	seen time.Time
}

// NewLimiter creates a limiter for one profile.
func NewLimiter(limit RateLimit) *Limiter {
	return newLimiter(limit, time.Now)
}

func newLimiter(limit RateLimit, now func() time.Time) *Limiter {
	return &Limiter{
		limit:     limit,
		idle:      max(limit.refill(), time.Minute),
		now:       now,
		buckets:   make(map[string]*bucket),
		lastSweep: now(),
	}
}

// Allow spends one token from key's bucket. When the bucket is empty it
// returns false and how long until a token is available.
func (l *Limiter) Allow(key string) (bool, time.Duration) {
	now := l.now()

	l.mu.Lock()
	defer l.mu.Unlock()

	l.sweep(now)

	b, ok := l.buckets[key]
	if !ok {
		b = &bucket{lim: rate.NewLimiter(l.limit.perSecond(), l.limit.Burst)}
		l.buckets[key] = b
	}
	b.seen = now

	res := b.lim.ReserveN(now, 1)
	if !res.OK() {
		return false, l.limit.Window
	}
	if wait := res.DelayFrom(now); wait > 0 {
		res.CancelAt(now)
		return false, wait
	}
	return true, 0
}

// Len is the number of buckets currently held.
func (l *Limiter) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.buckets)
}

func (l *Limiter) sweep(now time.Time) {
	if now.Sub(l.lastSweep) < l.idle {
		return
	}
	l.lastSweep = now
	for key, b := range l.buckets {
		if now.Sub(b.seen) >= l.idle {
			delete(l.buckets, key)
		}
	}
}

// RateLimitMiddleware answers 429 rate_limit_exceeded once the request's
// bucket is empty.
func RateLimitMiddleware(limit RateLimit, key KeyFunc) Middleware {
	l := NewLimiter(limit)
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			log := slogx.FromContext(r.Context())

			k := key(r)
			if k == "" {
				log.Warn("rate limit: no key for request, allowing")
				next.ServeHTTP(w, r)
				return
			}

			ok, wait := l.Allow(k)
			if !ok {
				retryAfter := max(int(math.Ceil(wait.Seconds())), 1)

				w.Header().Set("Retry-After", strconv.Itoa(retryAfter))
				w.Header().Set("X-RateLimit-Limit", strconv.Itoa(limit.RequestsPerWindow))
				w.Header().Set("X-RateLimit-Window", limit.Window.String())

				log.Warn("rate limit exceeded",
					"key", k,
					"endpoint", r.URL.Path,
					"retry_after", retryAfter,
				)

				WriteError(w, http.StatusTooManyRequests, "rate_limit_exceeded")
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// RateLimitByIP limits by client address.
func RateLimitByIP(limit RateLimit, clientIP KeyFunc) Middleware {
	return RateLimitMiddleware(limit, clientIP)
}

// RateLimitBySubject limits by verified subject. Place it behind
// RequirePermission or Authenticate so the subject is known.
func RateLimitBySubject(limit RateLimit, clientIP KeyFunc) Middleware {
	return RateLimitMiddleware(limit, SubjectOrIP(clientIP))
}
