package categories

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/MoisesFigueroaV/panorama-sub000/internal/models"
)

// Repository handles categorias persistence.
type Repository struct {
	pool *pgxpool.Pool
}

// NewRepository creates a categories repository.
func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

// List returns all categories ordered by name.
func (r *Repository) List(ctx context.Context) ([]models.Category, error) {
	rows, err := r.pool.Query(ctx, `SELECT id, nombre FROM categorias ORDER BY nombre`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var list []models.Category
	for rows.Next() {
		var cat models.Category
		if err := rows.Scan(&cat.ID, &cat.Nombre); err != nil {
			return nil, err
		}
		list = append(list, cat)
	}
	return list, rows.Err()
}

// Exists returns true when the category id is present.
func (r *Repository) Exists(ctx context.Context, id int) (bool, error) {
	var one int
	err := r.pool.QueryRow(ctx, `SELECT 1 FROM categorias WHERE id = $1`, id).Scan(&one)
	if err != nil {
		return false, err
	}
	return true, nil
}
