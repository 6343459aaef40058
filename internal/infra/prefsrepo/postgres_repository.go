package prefsrepo

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/yanqian/outfit-advisor/internal/domain/preferences"
)

// PostgresRepository implements preferences.Repository using pgx.
type PostgresRepository struct {
	pool *pgxpool.Pool
}

var _ preferences.Repository = (*PostgresRepository)(nil)

// NewPostgresRepository constructs the repository.
func NewPostgresRepository(pool *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{pool: pool}
}

func (r *PostgresRepository) Get(ctx context.Context) (preferences.Preferences, bool, error) {
	var p preferences.Preferences
	err := r.pool.QueryRow(ctx, `
		SELECT weather_sensitivity, prefers_casual
		FROM user_preferences
		WHERE id = $1
	`, preferences.RecordID).Scan(&p.WeatherSensitivity, &p.PrefersCasual)
	if errors.Is(err, pgx.ErrNoRows) {
		return preferences.Preferences{}, false, nil
	}
	if err != nil {
		return preferences.Preferences{}, false, err
	}
	return p, true, nil
}

func (r *PostgresRepository) Upsert(ctx context.Context, p preferences.Preferences) error {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO user_preferences (id, weather_sensitivity, prefers_casual)
		VALUES ($1, $2, $3)
		ON CONFLICT (id) DO UPDATE SET
			weather_sensitivity = EXCLUDED.weather_sensitivity,
			prefers_casual = EXCLUDED.prefers_casual
	`, preferences.RecordID, p.WeatherSensitivity, p.PrefersCasual)
	return err
}

func (r *PostgresRepository) Count(ctx context.Context) (int, error) {
	var n int
	err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM user_preferences`).Scan(&n)
	return n, err
}
