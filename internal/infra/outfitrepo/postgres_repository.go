package outfitrepo

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/yanqian/outfit-advisor/internal/domain/outfit"
)

// PostgresRepository implements outfit.Repository using pgx.
type PostgresRepository struct {
	pool *pgxpool.Pool
}

var _ outfit.Repository = (*PostgresRepository)(nil)

// NewPostgresRepository constructs the repository.
func NewPostgresRepository(pool *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{pool: pool}
}

// Insert implements outfit.Repository.
func (r *PostgresRepository) Insert(ctx context.Context, o outfit.Outfit) error {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO outfits (id, name, description, image_name, location, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`, o.ID, o.Name, o.Description, o.ImageName, o.Location, o.CreatedAt)
	return err
}

// List implements outfit.Repository.
func (r *PostgresRepository) List(ctx context.Context) ([]outfit.Outfit, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, name, description, image_name, location, created_at
		FROM outfits
		ORDER BY seq ASC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []outfit.Outfit
	for rows.Next() {
		var o outfit.Outfit
		if err := rows.Scan(&o.ID, &o.Name, &o.Description, &o.ImageName, &o.Location, &o.CreatedAt); err != nil {
			return nil, err
		}
		o.CreatedAt = o.CreatedAt.UTC()
		out = append(out, o)
	}
	return out, rows.Err()
}

// Delete implements outfit.Repository.
func (r *PostgresRepository) Delete(ctx context.Context, id string) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM outfits WHERE id = $1`, id)
	return err
}

// Get implements outfit.Repository.
func (r *PostgresRepository) Get(ctx context.Context, id string) (outfit.Outfit, bool, error) {
	var o outfit.Outfit
	err := r.pool.QueryRow(ctx, `
		SELECT id, name, description, image_name, location, created_at
		FROM outfits
		WHERE id = $1
	`, id).Scan(&o.ID, &o.Name, &o.Description, &o.ImageName, &o.Location, &o.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return outfit.Outfit{}, false, nil
	}
	if err != nil {
		return outfit.Outfit{}, false, err
	}
	o.CreatedAt = o.CreatedAt.UTC()
	return o, true, nil
}
