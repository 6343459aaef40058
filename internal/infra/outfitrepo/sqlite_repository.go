package outfitrepo

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/yanqian/outfit-advisor/internal/domain/outfit"
)

// SQLiteRepository implements outfit.Repository on a local SQLite file.
type SQLiteRepository struct {
	db *sql.DB
}

var _ outfit.Repository = (*SQLiteRepository)(nil)

// NewSQLiteRepository constructs the repository. The schema is expected to be
// applied by sqlitedb.Open.
func NewSQLiteRepository(db *sql.DB) *SQLiteRepository {
	return &SQLiteRepository{db: db}
}

// Insert implements outfit.Repository.
func (r *SQLiteRepository) Insert(ctx context.Context, o outfit.Outfit) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO outfits (id, name, description, image_name, location, created_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`, o.ID, o.Name, o.Description, o.ImageName, o.Location, o.CreatedAt.UTC().Format(time.RFC3339Nano))
	if err != nil {
		return fmt.Errorf("insert outfit: %w", err)
	}
	return nil
}

// List implements outfit.Repository.
func (r *SQLiteRepository) List(ctx context.Context) ([]outfit.Outfit, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, name, description, image_name, location, created_at
		FROM outfits
		ORDER BY seq ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("list outfits: %w", err)
	}
	defer rows.Close()

	var out []outfit.Outfit
	for rows.Next() {
		o, err := scanOutfit(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, o)
	}
	return out, rows.Err()
}

// Delete implements outfit.Repository.
func (r *SQLiteRepository) Delete(ctx context.Context, id string) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM outfits WHERE id = ?`, id); err != nil {
		return fmt.Errorf("delete outfit: %w", err)
	}
	return nil
}

// Get implements outfit.Repository.
func (r *SQLiteRepository) Get(ctx context.Context, id string) (outfit.Outfit, bool, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT id, name, description, image_name, location, created_at
		FROM outfits
		WHERE id = ?
	`, id)
	o, err := scanOutfit(row)
	if errors.Is(err, sql.ErrNoRows) {
		return outfit.Outfit{}, false, nil
	}
	if err != nil {
		return outfit.Outfit{}, false, err
	}
	return o, true, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanOutfit(s scanner) (outfit.Outfit, error) {
	var (
		o       outfit.Outfit
		created string
	)
	if err := s.Scan(&o.ID, &o.Name, &o.Description, &o.ImageName, &o.Location, &created); err != nil {
		return outfit.Outfit{}, err
	}
	ts, err := time.Parse(time.RFC3339Nano, created)
	if err != nil {
		return outfit.Outfit{}, fmt.Errorf("parse outfit created_at: %w", err)
	}
	o.CreatedAt = ts
	return o, nil
}
