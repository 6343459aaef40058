package prefsrepo

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/yanqian/outfit-advisor/internal/domain/preferences"
)

// SQLiteRepository stores preferences in the user_preferences table.
type SQLiteRepository struct {
	db *sql.DB
}

var _ preferences.Repository = (*SQLiteRepository)(nil)

// NewSQLiteRepository constructs the repository.
func NewSQLiteRepository(db *sql.DB) *SQLiteRepository {
	return &SQLiteRepository{db: db}
}

func (r *SQLiteRepository) Get(ctx context.Context) (preferences.Preferences, bool, error) {
	var (
		p      preferences.Preferences
		casual int
	)
	err := r.db.QueryRowContext(ctx, `
		SELECT weather_sensitivity, prefers_casual
		FROM user_preferences
		WHERE id = ?
	`, preferences.RecordID).Scan(&p.WeatherSensitivity, &casual)
	if errors.Is(err, sql.ErrNoRows) {
		return preferences.Preferences{}, false, nil
	}
	if err != nil {
		return preferences.Preferences{}, false, fmt.Errorf("get preferences: %w", err)
	}
	p.PrefersCasual = casual != 0
	return p, true, nil
}

func (r *SQLiteRepository) Upsert(ctx context.Context, p preferences.Preferences) error {
	casual := 0
	if p.PrefersCasual {
		casual = 1
	}
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO user_preferences (id, weather_sensitivity, prefers_casual)
		VALUES (?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			weather_sensitivity = excluded.weather_sensitivity,
			prefers_casual = excluded.prefers_casual
	`, preferences.RecordID, p.WeatherSensitivity, casual)
	if err != nil {
		return fmt.Errorf("upsert preferences: %w", err)
	}
	return nil
}

func (r *SQLiteRepository) Count(ctx context.Context) (int, error) {
	var n int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM user_preferences`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count preferences: %w", err)
	}
	return n, nil
}
