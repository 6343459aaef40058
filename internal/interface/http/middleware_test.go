package http

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/yanqian/outfit-advisor/internal/infra/config"
)

func TestIPRateLimiterRefills(t *testing.T) {
	limiter := newIPRateLimiter(config.RateLimitConfig{Enabled: true, RequestsPerMinute: 60, Burst: 2})
	now := time.Date(2024, 5, 1, 8, 0, 0, 0, time.UTC)

	_, ok := limiter.allow("1.1.1.1", now)
	require.True(t, ok)
	_, ok = limiter.allow("1.1.1.1", now)
	require.True(t, ok)

	wait, ok := limiter.allow("1.1.1.1", now)
	require.False(t, ok)
	require.Equal(t, time.Second, wait)

	_, ok = limiter.allow("2.2.2.2", now)
	require.True(t, ok)

	_, ok = limiter.allow("1.1.1.1", now.Add(time.Second))
	require.True(t, ok)
}

func TestIPRateLimiterSweepsIdleVisitors(t *testing.T) {
	limiter := newIPRateLimiter(config.RateLimitConfig{Enabled: true, RequestsPerMinute: 60, Burst: 1})
	now := time.Date(2024, 5, 1, 8, 0, 0, 0, time.UTC)
	limiter.allow("1.1.1.1", now)
	limiter.allow("2.2.2.2", now.Add(10*time.Minute))
	require.NotContains(t, limiter.visitors, "1.1.1.1")
	require.Contains(t, limiter.visitors, "2.2.2.2")
}

func TestResolveOrigin(t *testing.T) {
	origin, ok := resolveOrigin("https://a.example", nil)
	require.True(t, ok)
	require.Equal(t, "*", origin)

	origin, ok = resolveOrigin("https://A.example", []string{"https://a.example"})
	require.True(t, ok)
	require.Equal(t, "https://A.example", origin)

	_, ok = resolveOrigin("https://evil.example", []string{"https://a.example"})
	require.False(t, ok)
}
