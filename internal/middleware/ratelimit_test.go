package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRateLimiter_PerClientBudget(t *testing.T) {
	rl := NewRateLimiter(2, 1)

	assert.True(t, rl.Allow("10.0.0.1"))
	assert.True(t, rl.Allow("10.0.0.1"))
	assert.False(t, rl.Allow("10.0.0.1"))

	// other clients keep their own budget
	assert.True(t, rl.Allow("10.0.0.2"))
}

func TestRateLimiter_PrunesIdleBuckets(t *testing.T) {
	rl := NewRateLimiter(1, 1)
	require.True(t, rl.Allow("10.0.0.1"))

	// age the bucket and the sweep clock past their thresholds
	rl.mu.Lock()
	rl.buckets["10.0.0.1"].lastRefill = time.Now().Add(-2 * bucketTTL)
	rl.lastSweep = time.Now().Add(-2 * sweepEvery)
	rl.mu.Unlock()

	rl.Allow("10.0.0.2")

	rl.mu.RLock()
	_, exists := rl.buckets["10.0.0.1"]
	rl.mu.RUnlock()
	assert.False(t, exists, "idle bucket should be swept on the next lookup")
}

func TestRateLimitMiddleware_RejectsWhenExhausted(t *testing.T) {
	handler := RateLimitMiddleware(1, 1)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodPost, "/v1/chat", nil)
	req.RemoteAddr = "10.0.0.9:51234"

	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)
	require.Equal(t, http.StatusOK, rr.Code)

	rr = httptest.NewRecorder()
	handler.ServeHTTP(rr, req)
	assert.Equal(t, http.StatusTooManyRequests, rr.Code)
	assert.Equal(t, "60", rr.Header().Get("Retry-After"))
}
