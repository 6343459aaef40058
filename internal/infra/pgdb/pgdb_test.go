package pgdb

import (
	"context"
	"os"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/yanqian/outfit-advisor/internal/infra/config"
)

func TestOpenRejectsBadDSN(t *testing.T) {
	_, err := Open(context.Background(), config.PostgresConfig{DSN: "postgres://%zz"})
	require.Error(t, err)
}

func TestOpenAppliesSchemaIdempotently(t *testing.T) {
	dsn := os.Getenv("TEST_POSTGRES_DSN")
	if dsn == "" {
		t.Skip("TEST_POSTGRES_DSN not set")
	}
	ctx := context.Background()
	for i := 0; i < 2; i++ {
		pool, err := Open(ctx, config.PostgresConfig{DSN: dsn, MaxConns: 2})
		require.NoError(t, err)

		var tables int
		err = pool.QueryRow(ctx, `
			SELECT COUNT(*) FROM information_schema.tables
			WHERE table_name IN ('outfits', 'user_preferences')
		`).Scan(&tables)
		pool.Close()
		require.NoError(t, err)
		require.Equal(t, 2, tables)
	}
}
