package users

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/MoisesFigueroaV/panorama-sub000/internal/models"
	"github.com/MoisesFigueroaV/panorama-sub000/pkg/utils"
)

// Repository handles user profile persistence.
type Repository struct {
	pool *pgxpool.Pool
}

// NewRepository creates a users repository.
func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

const publicColumns = `id, id_rol, correo, nombre, fecha_registro,
	sexo, fecha_nacimiento, biografia, intereses, foto, telefono, ubicacion`

// GetPublicByID returns a user's public profile by ID.
func (r *Repository) GetPublicByID(ctx context.Context, id int64) (*models.UserPublic, error) {
	const q = `SELECT ` + publicColumns + ` FROM usuarios WHERE id = $1`
	var u models.UserPublic
	err := r.pool.QueryRow(ctx, q, id).Scan(&u.ID, &u.RoleID, &u.Email, &u.Nombre, &u.FechaRegistro,
		&u.Sexo, &u.FechaNacimiento, &u.Biografia, &u.Intereses, &u.Foto, &u.Telefono, &u.Ubicacion)
	if err != nil {
		return nil, err
	}
	return &u, nil
}

// ProfileUpdate holds profile fields for a partial update. A field left unset
// keeps its current value; a field set to an explicit null clears the column.
type ProfileUpdate struct {
	Nombre          utils.Optional[string]
	Sexo            utils.Optional[string]
	FechaNacimiento utils.Optional[time.Time]
	Biografia       utils.Optional[string]
	Intereses       utils.Optional[string]
	Foto            utils.Optional[string]
	Telefono        utils.Optional[string]
	Ubicacion       utils.Optional[string]
}

func (p ProfileUpdate) setClauses() ([]string, []interface{}) {
	var sets []string
	var args []interface{}
	add := func(col string, set bool, v interface{}) {
		if !set {
			return
		}
		args = append(args, v)
		sets = append(sets, fmt.Sprintf("%s = $%d", col, len(args)))
	}
	add("nombre", p.Nombre.Set, p.Nombre.Ptr())
	add("sexo", p.Sexo.Set, p.Sexo.Ptr())
	add("fecha_nacimiento", p.FechaNacimiento.Set, p.FechaNacimiento.Ptr())
	add("biografia", p.Biografia.Set, p.Biografia.Ptr())
	add("intereses", p.Intereses.Set, p.Intereses.Ptr())
	add("foto", p.Foto.Set, p.Foto.Ptr())
	add("telefono", p.Telefono.Set, p.Telefono.Ptr())
	add("ubicacion", p.Ubicacion.Set, p.Ubicacion.Ptr())
	return sets, args
}

// UpdateProfile applies a partial profile update and returns the new public profile.
func (r *Repository) UpdateProfile(ctx context.Context, id int64, p ProfileUpdate) (*models.UserPublic, error) {
	sets, args := p.setClauses()
	if len(sets) == 0 {
		return r.GetPublicByID(ctx, id)
	}
	args = append(args, id)
	q := fmt.Sprintf(`UPDATE usuarios SET %s WHERE id = $%d RETURNING %s`,
		strings.Join(sets, ", "), len(args), publicColumns)
	var u models.UserPublic
	err := r.pool.QueryRow(ctx, q, args...).
		Scan(&u.ID, &u.RoleID, &u.Email, &u.Nombre, &u.FechaRegistro,
			&u.Sexo, &u.FechaNacimiento, &u.Biografia, &u.Intereses, &u.Foto, &u.Telefono, &u.Ubicacion)
	if err != nil {
		return nil, err
	}
	return &u, nil
}

// List returns all users (admin moderation view), newest first.
func (r *Repository) List(ctx context.Context) ([]models.UserPublic, error) {
	rows, err := r.pool.Query(ctx, `SELECT `+publicColumns+` FROM usuarios ORDER BY fecha_registro DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var list []models.UserPublic
	for rows.Next() {
		var u models.UserPublic
		if err := rows.Scan(&u.ID, &u.RoleID, &u.Email, &u.Nombre, &u.FechaRegistro,
			&u.Sexo, &u.FechaNacimiento, &u.Biografia, &u.Intereses, &u.Foto, &u.Telefono, &u.Ubicacion); err != nil {
			return nil, err
		}
		list = append(list, u)
	}
	return list, rows.Err()
}
