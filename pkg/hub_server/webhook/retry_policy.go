package webhook

import (
	"math/rand"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/codatende/webhookhub/pkg/hub_server/model"
)

const (
	DefaultMaxAttempts = 6
	DefaultBaseDelay   = 5 * time.Second
	DefaultMaxDelay    = time.Hour
)

// RetryPolicy computes exponential backoff with jitter for failed deliveries.
type RetryPolicy struct {
	MaxAttempts int
	BaseDelay   time.Duration
	MaxDelay    time.Duration

	jitter func(max time.Duration) time.Duration
}

func NewRetryPolicy(maxAttempts int, baseDelay, maxDelay time.Duration) RetryPolicy {
	if maxAttempts <= 0 {
		maxAttempts = DefaultMaxAttempts
	}
	if baseDelay <= 0 {
		baseDelay = DefaultBaseDelay
	}
	if maxDelay < baseDelay {
		maxDelay = DefaultMaxDelay
		if maxDelay < baseDelay {
			maxDelay = baseDelay
		}
	}
	return RetryPolicy{
		MaxAttempts: maxAttempts,
		BaseDelay:   baseDelay,
		MaxDelay:    maxDelay,
		jitter: func(max time.Duration) time.Duration {
			return time.Duration(rand.Int63n(int64(max)))
		},
	}
}

// WithJitter replaces the random jitter source.
func (p RetryPolicy) WithJitter(jitter func(max time.Duration) time.Duration) RetryPolicy {
	p.jitter = jitter
	return p
}

// Delay returns min(MaxDelay, BaseDelay*2^n + jitter) with jitter in [0, BaseDelay),
// where n is the number of attempts made before the failed one.
func (p RetryPolicy) Delay(n int) time.Duration {
	if n < 0 {
		n = 0
	}
	var jitter time.Duration
	if p.jitter != nil && p.BaseDelay > 0 {
		jitter = p.jitter(p.BaseDelay)
	}
	if n >= 62 || p.BaseDelay > (p.MaxDelay>>uint(n)) {
		return p.MaxDelay
	}
	delay := p.BaseDelay<<uint(n) + jitter
	if delay > p.MaxDelay {
		return p.MaxDelay
	}
	return delay
}

// Exhausted reports whether the attempt with the 1-based number is the last one allowed.
func (p RetryPolicy) Exhausted(attempt int) bool {
	return attempt >= p.MaxAttempts
}

// Classify maps the result of one HTTP attempt onto a delivery outcome.
func Classify(status int, err error) model.DeliveryState {
	if err != nil {
		return model.DeliveryFailedRetryable
	}
	switch {
	case status >= 200 && status < 300:
		return model.DeliverySucceeded
	case status == http.StatusTooManyRequests, status >= 500:
		return model.DeliveryFailedRetryable
	default:
		return model.DeliveryFailedTerminal
	}
}

// ParseRetryAfter reads a Retry-After header given as delta-seconds or an HTTP-date.
func ParseRetryAfter(value string, now time.Time) (time.Duration, bool) {
	value = strings.TrimSpace(value)
	if value == "" {
		return 0, false
	}
	if seconds, err := strconv.ParseInt(value, 10, 64); err == nil {
		if seconds < 0 {
			return 0, false
		}
		return time.Duration(seconds) * time.Second, true
	}
	at, err := http.ParseTime(value)
	if err != nil {
		return 0, false
	}
	if d := at.Sub(now); d > 0 {
		return d, true
	}
	return 0, true
}
