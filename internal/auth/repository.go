package auth

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/MoisesFigueroaV/panorama-sub000/internal/models"
)

// ErrEmailTaken is returned when the email is already registered.
var ErrEmailTaken = errors.New("email already registered")

const userColumns = `id, id_rol, correo, nombre, contrasena, fecha_registro,
	sexo, fecha_nacimiento, biografia, intereses, foto, telefono, ubicacion`

// Repository handles user persistence for authentication.
type Repository struct {
	pool *pgxpool.Pool
}

// NewRepository creates an auth repository.
func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

func scanUser(row pgx.Row) (*models.User, error) {
	var u models.User
	err := row.Scan(&u.ID, &u.RoleID, &u.Email, &u.Nombre, &u.Password, &u.FechaRegistro,
		&u.Sexo, &u.FechaNacimiento, &u.Biografia, &u.Intereses, &u.Foto, &u.Telefono, &u.Ubicacion)
	if err != nil {
		return nil, err
	}
	return &u, nil
}

// GetByID returns a user by ID.
func (r *Repository) GetByID(ctx context.Context, id int64) (*models.User, error) {
	const q = `SELECT ` + userColumns + ` FROM usuarios WHERE id = $1`
	return scanUser(r.pool.QueryRow(ctx, q, id))
}

// GetByEmail returns a user by email.
func (r *Repository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	const q = `SELECT ` + userColumns + ` FROM usuarios WHERE correo = $1`
	return scanUser(r.pool.QueryRow(ctx, q, email))
}

// Create inserts a new user. Returns ErrEmailTaken when the email is in use.
func (r *Repository) Create(ctx context.Context, email, passwordHash, nombre string, roleID *int) (*models.User, error) {
	const q = `INSERT INTO usuarios (correo, contrasena, nombre, id_rol)
		VALUES ($1, $2, $3, $4)
		RETURNING ` + userColumns
	u, err := scanUser(r.pool.QueryRow(ctx, q, email, passwordHash, nombre, roleID))
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return nil, ErrEmailTaken
		}
		return nil, err
	}
	return u, nil
}
