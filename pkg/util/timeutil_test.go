package util

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestParseLocalMinute(t *testing.T) {
	loc := time.FixedZone("UTC+2", 2*60*60)

	ts, ok := ParseLocalMinute("2024-07-01 13:00", loc)
	require.True(t, ok)
	require.Equal(t, time.Date(2024, 7, 1, 11, 0, 0, 0, time.UTC), ts.UTC())

	_, ok = ParseLocalMinute("2024-07-01T13:00", loc)
	require.False(t, ok)

	_, ok = ParseLocalMinute("  ", nil)
	require.False(t, ok)
}
