package middleware

import (
	"math"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/codatende/webhookhub/pkg/hub_server/auth"
	"golang.org/x/time/rate"
)

type RateTier string

const (
	TierGeneral = RateTier("general")
	TierSend    = RateTier("send")
)

// RateLimitConfig holds the allowed requests per minute of every tier.
type RateLimitConfig struct {
	General int `yaml:"general"`
	Send    int `yaml:"send"`
}

const bucketIdleTTL = 10 * time.Minute

type bucket struct {
	limiter  *rate.Limiter
	limit    int
	lastSeen time.Time
}

// RateLimiter keeps one token bucket per API token and tier.
type RateLimiter struct {
	mu      sync.Mutex
	buckets map[string]*bucket
	limits  RateLimitConfig
	now     func() time.Time
}

func NewRateLimiter(limits RateLimitConfig) *RateLimiter {
	if limits.General <= 0 {
		limits.General = 100
	}
	if limits.Send <= 0 {
		limits.Send = 30
	}
	return &RateLimiter{
		buckets: make(map[string]*bucket),
		limits:  limits,
		now:     time.Now,
	}
}

type rateDecision struct {
	allowed    bool
	limit      int
	remaining  int
	reset      time.Time
	retryAfter time.Duration
}

func (rl *RateLimiter) allow(tokenID string, tier RateTier) rateDecision {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := rl.now()
	key := tokenID + "|" + string(tier)
	b, ok := rl.buckets[key]
	if !ok {
		limit := rl.limits.General
		if tier == TierSend {
			limit = rl.limits.Send
		}
		b = &bucket{
			limiter: rate.NewLimiter(rate.Limit(float64(limit)/60.0), limit),
			limit:   limit,
		}
		rl.buckets[key] = b
	}
	b.lastSeen = now

	d := rateDecision{limit: b.limit}
	d.allowed = b.limiter.AllowN(now, 1)

	tokens := b.limiter.TokensAt(now)
	perSecond := float64(b.limiter.Limit())
	d.remaining = int(math.Max(0, math.Floor(tokens)))
	d.reset = now.Add(time.Duration((float64(b.limit) - tokens) / perSecond * float64(time.Second)))
	if !d.allowed {
		d.retryAfter = time.Duration((1 - tokens) / perSecond * float64(time.Second))
	}
	return d
}

// Sweep drops buckets that have not been used for a while and returns how many were removed.
func (rl *RateLimiter) Sweep(now time.Time) int {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	removed := 0
	for key, b := range rl.buckets {
		if now.Sub(b.lastSeen) > bucketIdleTTL {
			delete(rl.buckets, key)
			removed++
		}
	}
	return removed
}

// Limit applies the tier's budget to the API token found in the request context.
// It must run after APITokenAuth.Authenticate.
func (rl *RateLimiter) Limit(tier RateTier) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token, ok := r.Context().Value(API_TOKEN).(auth.APIToken)
			if !ok {
				next.ServeHTTP(w, r)
				return
			}

			d := rl.allow(token.ID, tier)
			w.Header().Set("X-RateLimit-Limit", strconv.Itoa(d.limit))
			w.Header().Set("X-RateLimit-Remaining", strconv.Itoa(d.remaining))
			w.Header().Set("X-RateLimit-Reset", strconv.FormatInt(d.reset.Unix(), 10))
			if !d.allowed {
				w.Header().Set("Retry-After", strconv.Itoa(int(math.Ceil(d.retryAfter.Seconds()))))
				WriteError(w, http.StatusTooManyRequests, CodeRateLimited, "rate limit exceeded")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
