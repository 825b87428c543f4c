package events

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/MoisesFigueroaV/panorama-sub000/internal/models"
)

// ErrBadReference is returned when a foreign key (category, state) does not exist.
var ErrBadReference = errors.New("referenced row does not exist")

// Repository handles eventos persistence.
type Repository struct {
	pool *pgxpool.Pool
}

// NewRepository creates an events repository.
func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

const eventColumns = `id, id_organizador, id_categoria, titulo, descripcion, fecha_inicio, fecha_fin,
	ubicacion, latitud, longitud, capacidad, imagen, id_estado, fecha_registro`

func scanEvent(row pgx.Row) (*models.Event, error) {
	var e models.Event
	err := row.Scan(&e.ID, &e.OrganizerID, &e.CategoryID, &e.Titulo, &e.Descripcion,
		&e.FechaInicio, &e.FechaFin, &e.Ubicacion, &e.Latitud, &e.Longitud,
		&e.Capacidad, &e.Imagen, &e.EstadoID, &e.FechaRegistro)
	if err != nil {
		return nil, err
	}
	return &e, nil
}

// Create inserts a new event with default active state.
func (r *Repository) Create(ctx context.Context, e *models.Event) error {
	const q = `INSERT INTO eventos
		(id_organizador, id_categoria, titulo, descripcion, fecha_inicio, fecha_fin, ubicacion, latitud, longitud, capacidad, imagen)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING id, id_estado, fecha_registro`
	err := r.pool.QueryRow(ctx, q, e.OrganizerID, e.CategoryID, e.Titulo, e.Descripcion,
		e.FechaInicio, e.FechaFin, e.Ubicacion, e.Latitud, e.Longitud, e.Capacidad, e.Imagen).
		Scan(&e.ID, &e.EstadoID, &e.FechaRegistro)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23503" {
			return ErrBadReference
		}
		return err
	}
	return nil
}

// GetByID returns an event by ID.
func (r *Repository) GetByID(ctx context.Context, id int64) (*models.Event, error) {
	const q = `SELECT ` + eventColumns + ` FROM eventos WHERE id = $1`
	return scanEvent(r.pool.QueryRow(ctx, q, id))
}

// List returns events, optionally filtered by category and/or organizer,
// newest start date first.
func (r *Repository) List(ctx context.Context, categoryID *int, organizerID *int64) ([]models.Event, error) {
	q := `SELECT ` + eventColumns + ` FROM eventos`
	var args []interface{}
	var cond string
	if categoryID != nil {
		cond = ` WHERE id_categoria = $1`
		args = append(args, *categoryID)
	}
	if organizerID != nil {
		if cond == "" {
			cond = ` WHERE id_organizador = $1`
		} else {
			cond += ` AND id_organizador = $2`
		}
		args = append(args, *organizerID)
	}
	rows, err := r.pool.Query(ctx, q+cond+` ORDER BY fecha_inicio DESC`, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var list []models.Event
	for rows.Next() {
		e, err := scanEvent(rows)
		if err != nil {
			return nil, err
		}
		list = append(list, *e)
	}
	return list, rows.Err()
}

// ApplyUpdate persists a merged event record. The handler merges partial
// request fields into the current row before calling this.
func (r *Repository) ApplyUpdate(ctx context.Context, e *models.Event) error {
	const q = `UPDATE eventos SET
		id_categoria = $1, titulo = $2, descripcion = $3, fecha_inicio = $4, fecha_fin = $5,
		ubicacion = $6, latitud = $7, longitud = $8, capacidad = $9, imagen = $10
		WHERE id = $11`
	_, err := r.pool.Exec(ctx, q, e.CategoryID, e.Titulo, e.Descripcion, e.FechaInicio, e.FechaFin,
		e.Ubicacion, e.Latitud, e.Longitud, e.Capacidad, e.Imagen, e.ID)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23503" {
			return ErrBadReference
		}
		return err
	}
	return nil
}

// SetImage stores the event image URL.
func (r *Repository) SetImage(ctx context.Context, id int64, url string) error {
	tag, err := r.pool.Exec(ctx, `UPDATE eventos SET imagen = $1 WHERE id = $2`, url, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

// SetStatus changes the event's status id (admin moderation).
func (r *Repository) SetStatus(ctx context.Context, id int64, stateID int) error {
	tag, err := r.pool.Exec(ctx, `UPDATE eventos SET id_estado = $1 WHERE id = $2`, stateID, id)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23503" {
			return ErrBadReference
		}
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

// Delete removes an event by ID. Returns the number of rows deleted.
func (r *Repository) Delete(ctx context.Context, id int64) (int64, error) {
	tag, err := r.pool.Exec(ctx, `DELETE FROM eventos WHERE id = $1`, id)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}
