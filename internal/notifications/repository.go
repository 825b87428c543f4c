package notifications

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/MoisesFigueroaV/panorama-sub000/internal/models"
)

// ErrBadReference is returned when the target user or event does not exist.
var ErrBadReference = errors.New("referenced row does not exist")

// Repository handles notificaciones persistence.
type Repository struct {
	pool *pgxpool.Pool
}

// NewRepository creates a notifications repository.
func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

// Create inserts a notification record.
func (r *Repository) Create(ctx context.Context, n *models.Notification) error {
	const q = `INSERT INTO notificaciones (id_usuario, id_evento, mensaje)
		VALUES ($1, $2, $3)
		RETURNING id, fecha_envio, enviada`
	err := r.pool.QueryRow(ctx, q, n.UserID, n.EventID, n.Mensaje).
		Scan(&n.ID, &n.FechaEnvio, &n.Enviada)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23503" {
			return ErrBadReference
		}
		return err
	}
	return nil
}

// GetByID returns a notification by ID.
func (r *Repository) GetByID(ctx context.Context, id int64) (*models.Notification, error) {
	const q = `SELECT id, id_usuario, id_evento, mensaje, fecha_envio, enviada FROM notificaciones WHERE id = $1`
	var n models.Notification
	err := r.pool.QueryRow(ctx, q, id).Scan(&n.ID, &n.UserID, &n.EventID, &n.Mensaje, &n.FechaEnvio, &n.Enviada)
	if err != nil {
		return nil, err
	}
	return &n, nil
}

// ListByUser returns a user's notifications, newest first.
func (r *Repository) ListByUser(ctx context.Context, userID int64) ([]models.Notification, error) {
	const q = `SELECT id, id_usuario, id_evento, mensaje, fecha_envio, enviada
		FROM notificaciones WHERE id_usuario = $1 ORDER BY fecha_envio DESC`
	rows, err := r.pool.Query(ctx, q, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var list []models.Notification
	for rows.Next() {
		var n models.Notification
		if err := rows.Scan(&n.ID, &n.UserID, &n.EventID, &n.Mensaje, &n.FechaEnvio, &n.Enviada); err != nil {
			return nil, err
		}
		list = append(list, n)
	}
	return list, rows.Err()
}

// MarkSent sets enviada for a notification.
func (r *Repository) MarkSent(ctx context.Context, id int64) error {
	tag, err := r.pool.Exec(ctx, `UPDATE notificaciones SET enviada = TRUE WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

// Delete removes a notification by ID. Returns the number of rows deleted.
func (r *Repository) Delete(ctx context.Context, id int64) (int64, error) {
	tag, err := r.pool.Exec(ctx, `DELETE FROM notificaciones WHERE id = $1`, id)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}
