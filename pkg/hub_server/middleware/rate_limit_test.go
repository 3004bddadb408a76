package middleware_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"

	"github.com/codatende/webhookhub/pkg/hub_server/auth"
	"github.com/codatende/webhookhub/pkg/hub_server/middleware"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func requestAs(tokenID string) *http.Request {
	request := httptest.NewRequest(http.MethodPost, "/messages/send", nil)
	return request.WithContext(context.WithValue(request.Context(), middleware.API_TOKEN, auth.APIToken{ID: tokenID}))
}

func TestRateLimiter(t *testing.T) {
	limiter := middleware.NewRateLimiter(middleware.RateLimitConfig{General: 5, Send: 2})
	send := limiter.Limit(middleware.TierSend)(OkHandler)
	general := limiter.Limit(middleware.TierGeneral)(OkHandler)

	for i := 0; i < 2; i++ {
		response := httptest.NewRecorder()
		send.ServeHTTP(response, requestAs("tok_1"))
		require.Equal(t, http.StatusOK, response.Code)
		assert.Equal(t, "2", response.Header().Get("X-RateLimit-Limit"))
		assert.Equal(t, strconv.Itoa(1-i), response.Header().Get("X-RateLimit-Remaining"))
		reset, err := strconv.ParseInt(response.Header().Get("X-RateLimit-Reset"), 10, 64)
		require.NoError(t, err)
		assert.GreaterOrEqual(t, reset, time.Now().Unix())
	}

	response := httptest.NewRecorder()
	send.ServeHTTP(response, requestAs("tok_1"))
	assert.Equal(t, http.StatusTooManyRequests, response.Code)
	assert.Contains(t, response.Body.String(), `"code":"RATE_LIMITED"`)
	assert.NotEmpty(t, response.Header().Get("Retry-After"))

	// Other tiers and other tokens keep their own budget.
	response = httptest.NewRecorder()
	general.ServeHTTP(response, requestAs("tok_1"))
	assert.Equal(t, http.StatusOK, response.Code)
	assert.Equal(t, "5", response.Header().Get("X-RateLimit-Limit"))

	response = httptest.NewRecorder()
	send.ServeHTTP(response, requestAs("tok_2"))
	assert.Equal(t, http.StatusOK, response.Code)
}

func TestRateLimiterSweep(t *testing.T) {
	limiter := middleware.NewRateLimiter(middleware.RateLimitConfig{})
	handler := limiter.Limit(middleware.TierGeneral)(OkHandler)

	response := httptest.NewRecorder()
	handler.ServeHTTP(response, requestAs("tok_1"))
	assert.Equal(t, "100", response.Header().Get("X-RateLimit-Limit"))

	assert.Equal(t, 0, limiter.Sweep(time.Now()))
	assert.Equal(t, 1, limiter.Sweep(time.Now().Add(time.Hour)))
	assert.Equal(t, 0, limiter.Sweep(time.Now().Add(time.Hour)))
}

func TestRateLimiterWithoutToken(t *testing.T) {
	limiter := middleware.NewRateLimiter(middleware.RateLimitConfig{General: 1})
	response := httptest.NewRecorder()
	limiter.Limit(middleware.TierGeneral)(OkHandler).ServeHTTP(response, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusOK, response.Code)
	assert.Empty(t, response.Header().Get("X-RateLimit-Limit"))
}
