package httpx_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/promptside/hooklistener/pkg/httpx"
	"github.com/stretchr/testify/require"
)

func postHook(remoteAddr string) *http.Request {
	req := httptest.NewRequest(http.MethodPost, "/hook", nil)
	req.RemoteAddr = remoteAddr
	return req
}

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
}

func TestIPKeyExtractor(t *testing.T) {
	t.Run("extracts from RemoteAddr", func(t *testing.T) {
		req := postHook("192.168.1.1:12345")
		require.Equal(t, "192.168.1.1", httpx.IPKeyExtractor(req))
	})

	t.Run("prefers X-Forwarded-For", func(t *testing.T) {
		req := postHook("192.168.1.1:12345")
		req.Header.Set("X-Forwarded-For", "203.0.113.1, 192.168.1.1")
		require.Equal(t, "203.0.113.1", httpx.IPKeyExtractor(req))
	})

	t.Run("uses X-Real-IP if X-Forwarded-For absent", func(t *testing.T) {
		req := postHook("192.168.1.1:12345")
		req.Header.Set("X-Real-IP", "203.0.113.2")
		require.Equal(t, "203.0.113.2", httpx.IPKeyExtractor(req))
	})
}

func TestRateLimitByIP(t *testing.T) {
	limited := httpx.RateLimitByIP(httpx.RateLimitConfig{
		RequestsPerWindow: 2,
		Window:            time.Minute,
		Burst:             2,
	})(okHandler())

	// Deliveries within the budget pass through
	for range 2 {
		rec := httptest.NewRecorder()
		limited.ServeHTTP(rec, postHook("192.168.1.1:12345"))
		require.Equal(t, http.StatusOK, rec.Code)
	}

	// The next one from the same sender is rejected with retry metadata
	rec := httptest.NewRecorder()
	limited.ServeHTTP(rec, postHook("192.168.1.1:12345"))
	require.Equal(t, http.StatusTooManyRequests, rec.Code)
	require.NotEmpty(t, rec.Header().Get("Retry-After"))
	require.Equal(t, "2", rec.Header().Get("X-RateLimit-Limit"))
	require.Equal(t, "1m0s", rec.Header().Get("X-RateLimit-Window"))
	require.Contains(t, rec.Body.String(), "rate_limit_exceeded")

	// A different sender is unaffected
	rec = httptest.NewRecorder()
	limited.ServeHTTP(rec, postHook("192.168.1.2:12345"))
	require.Equal(t, http.StatusOK, rec.Code)
}

func TestRateLimitAllowsUnkeyedRequests(t *testing.T) {
	limited := httpx.RateLimitMiddleware(httpx.RateLimitConfig{
		RequestsPerWindow: 1,
		Window:            time.Minute,
		Burst:             1,
	}, func(*http.Request) string { return "" })(okHandler())

	for range 3 {
		rec := httptest.NewRecorder()
		limited.ServeHTTP(rec, postHook("192.168.1.1:12345"))
		require.Equal(t, http.StatusOK, rec.Code)
	}
}

func TestModerateLimitProfile(t *testing.T) {
	require.Equal(t, 60, httpx.ModerateLimit.RequestsPerWindow)
	require.Equal(t, time.Minute, httpx.ModerateLimit.Window)
	require.Equal(t, 60, httpx.ModerateLimit.Burst)
}

func TestParseRateLimitFromEnv(t *testing.T) {
	base := httpx.RateLimitConfig{
		RequestsPerWindow: 10,
		Window:            time.Minute,
		Burst:             10,
	}

	t.Run("unset vars keep defaults", func(t *testing.T) {
		require.Equal(t, base, httpx.ParseRateLimitFromEnv("HOOK", base))
	})

	t.Run("overrides all parameters", func(t *testing.T) {
		t.Setenv("RATELIMIT_HOOK_REQUESTS", "200")
		t.Setenv("RATELIMIT_HOOK_WINDOW_SEC", "30")
		t.Setenv("RATELIMIT_HOOK_BURST", "250")

		config := httpx.ParseRateLimitFromEnv("HOOK", base)
		require.Equal(t, 200, config.RequestsPerWindow)
		require.Equal(t, 30*time.Second, config.Window)
		require.Equal(t, 250, config.Burst)
	})

	t.Run("invalid or non-positive values keep defaults", func(t *testing.T) {
		t.Setenv("RATELIMIT_HOOK_REQUESTS", "invalid")
		t.Setenv("RATELIMIT_HOOK_WINDOW_SEC", "-10")
		t.Setenv("RATELIMIT_HOOK_BURST", "0")

		require.Equal(t, base, httpx.ParseRateLimitFromEnv("HOOK", base))
	})
}
