package roles

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/MoisesFigueroaV/panorama-sub000/internal/models"
)

// ErrNameTaken is returned when a role with the same name exists.
var ErrNameTaken = errors.New("role name already exists")

// Repository handles roles_usuario persistence.
type Repository struct {
	pool *pgxpool.Pool
}

// NewRepository creates a roles repository.
func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

// List returns all roles ordered by id.
func (r *Repository) List(ctx context.Context) ([]models.Role, error) {
	rows, err := r.pool.Query(ctx, `SELECT id, nombre FROM roles_usuario ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var list []models.Role
	for rows.Next() {
		var role models.Role
		if err := rows.Scan(&role.ID, &role.Nombre); err != nil {
			return nil, err
		}
		list = append(list, role)
	}
	return list, rows.Err()
}

// GetByID returns a role by ID.
func (r *Repository) GetByID(ctx context.Context, id int) (*models.Role, error) {
	var role models.Role
	err := r.pool.QueryRow(ctx, `SELECT id, nombre FROM roles_usuario WHERE id = $1`, id).
		Scan(&role.ID, &role.Nombre)
	if err != nil {
		return nil, err
	}
	return &role, nil
}

// Create inserts a role. Returns ErrNameTaken on duplicate name.
func (r *Repository) Create(ctx context.Context, nombre string) (*models.Role, error) {
	var role models.Role
	err := r.pool.QueryRow(ctx, `INSERT INTO roles_usuario (nombre) VALUES ($1) RETURNING id, nombre`, nombre).
		Scan(&role.ID, &role.Nombre)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return nil, ErrNameTaken
		}
		return nil, err
	}
	return &role, nil
}

// Update renames a role. Returns ErrNameTaken on duplicate name.
func (r *Repository) Update(ctx context.Context, id int, nombre string) (*models.Role, error) {
	var role models.Role
	err := r.pool.QueryRow(ctx, `UPDATE roles_usuario SET nombre = $1 WHERE id = $2 RETURNING id, nombre`, nombre, id).
		Scan(&role.ID, &role.Nombre)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return nil, ErrNameTaken
		}
		return nil, err
	}
	return &role, nil
}

// Delete removes a role. Returns the number of rows deleted.
func (r *Repository) Delete(ctx context.Context, id int) (int64, error) {
	tag, err := r.pool.Exec(ctx, `DELETE FROM roles_usuario WHERE id = $1`, id)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}
