package organizers

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/MoisesFigueroaV/panorama-sub000/internal/models"
	"github.com/MoisesFigueroaV/panorama-sub000/pkg/utils"
)

var (
	// ErrUserNotFound is returned when the owning user does not exist.
	ErrUserNotFound = errors.New("user not found")
	// ErrAlreadyOrganizer is returned when the user already has an organizer profile.
	ErrAlreadyOrganizer = errors.New("user already has an organizer profile")
	// ErrUnknownState is returned for an accreditation state id outside the lookup table.
	ErrUnknownState = errors.New("unknown accreditation state")
)

// Repository handles organizadores and historial_acreditacion persistence.
type Repository struct {
	pool *pgxpool.Pool
}

// NewRepository creates an organizers repository.
func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

const organizerColumns = `o.id, o.id_usuario, o.nombre_organizacion, o.descripcion,
	o.documento_acreditacion, o.id_estado_acreditacion, o.ubicacion, o.anio_fundacion,
	o.sitio_web, o.redes_sociales, o.imagen`

const joinedColumns = organizerColumns + `,
	u.id, u.id_rol, u.correo, u.nombre, u.fecha_registro,
	u.sexo, u.fecha_nacimiento, u.biografia, u.intereses, u.foto, u.telefono, u.ubicacion`

func scanJoined(row pgx.Row) (*models.Organizer, error) {
	var o models.Organizer
	var u models.UserPublic
	err := row.Scan(&o.ID, &o.UserID, &o.NombreOrganizacion, &o.Descripcion,
		&o.Documento, &o.EstadoAcreditacion, &o.Ubicacion, &o.AnioFundacion,
		&o.SitioWeb, &o.RedesSociales, &o.Imagen,
		&u.ID, &u.RoleID, &u.Email, &u.Nombre, &u.FechaRegistro,
		&u.Sexo, &u.FechaNacimiento, &u.Biografia, &u.Intereses, &u.Foto, &u.Telefono, &u.Ubicacion)
	if err != nil {
		return nil, err
	}
	o.Usuario = &u
	return &o, nil
}

// promotableRole reports whether creating an organizer profile should move the
// user to the organizer role. Users without a role or with the common role are
// promoted; elevated roles (administrators) are kept as-is.
func promotableRole(roleID *int) bool {
	return roleID == nil || *roleID == models.RoleCommon
}

// Create inserts an organizer profile for the user inside one transaction:
// the user must exist and must not already own a profile. Common users are
// promoted to the organizer role; admins keep theirs. Accreditation starts
// as pending.
func (r *Repository) Create(ctx context.Context, org *models.Organizer) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	var roleID *int
	if err := tx.QueryRow(ctx, `SELECT id_rol FROM usuarios WHERE id = $1`, org.UserID).Scan(&roleID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return ErrUserNotFound
		}
		return err
	}
	var one int
	err = tx.QueryRow(ctx, `SELECT 1 FROM organizadores WHERE id_usuario = $1`, org.UserID).Scan(&one)
	if err == nil {
		return ErrAlreadyOrganizer
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return err
	}

	const q = `INSERT INTO organizadores
		(id_usuario, nombre_organizacion, descripcion, documento_acreditacion, ubicacion, anio_fundacion, sitio_web, redes_sociales, imagen)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id, id_estado_acreditacion`
	if err := tx.QueryRow(ctx, q, org.UserID, org.NombreOrganizacion, org.Descripcion, org.Documento,
		org.Ubicacion, org.AnioFundacion, org.SitioWeb, org.RedesSociales, org.Imagen).
		Scan(&org.ID, &org.EstadoAcreditacion); err != nil {
		return err
	}
	if promotableRole(roleID) {
		if _, err := tx.Exec(ctx, `UPDATE usuarios SET id_rol = $1 WHERE id = $2`, models.RoleOrganizer, org.UserID); err != nil {
			return err
		}
	}
	return tx.Commit(ctx)
}

// GetByID returns an organizer joined with the owning user's public fields.
func (r *Repository) GetByID(ctx context.Context, id int64) (*models.Organizer, error) {
	const q = `SELECT ` + joinedColumns + `
		FROM organizadores o INNER JOIN usuarios u ON u.id = o.id_usuario
		WHERE o.id = $1`
	return scanJoined(r.pool.QueryRow(ctx, q, id))
}

// GetByUserID returns the organizer profile owned by the user.
func (r *Repository) GetByUserID(ctx context.Context, userID int64) (*models.Organizer, error) {
	const q = `SELECT ` + joinedColumns + `
		FROM organizadores o INNER JOIN usuarios u ON u.id = o.id_usuario
		WHERE o.id_usuario = $1`
	return scanJoined(r.pool.QueryRow(ctx, q, userID))
}

// List returns all organizer profiles joined with user public fields.
func (r *Repository) List(ctx context.Context) ([]*models.Organizer, error) {
	const q = `SELECT ` + joinedColumns + `
		FROM organizadores o INNER JOIN usuarios u ON u.id = o.id_usuario
		ORDER BY o.nombre_organizacion`
	rows, err := r.pool.Query(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var list []*models.Organizer
	for rows.Next() {
		o, err := scanJoined(rows)
		if err != nil {
			return nil, err
		}
		list = append(list, o)
	}
	return list, rows.Err()
}

// ProfileUpdate holds organizer fields for a partial update. A field left
// unset keeps its current value; an explicit null clears the column.
type ProfileUpdate struct {
	NombreOrganizacion utils.Optional[string]
	Descripcion        utils.Optional[string]
	Ubicacion          utils.Optional[string]
	AnioFundacion      utils.Optional[int]
	SitioWeb           utils.Optional[string]
	RedesSociales      utils.Optional[string]
	Imagen             utils.Optional[string]
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
	add("nombre_organizacion", p.NombreOrganizacion.Set, p.NombreOrganizacion.Ptr())
	add("descripcion", p.Descripcion.Set, p.Descripcion.Ptr())
	add("ubicacion", p.Ubicacion.Set, p.Ubicacion.Ptr())
	add("anio_fundacion", p.AnioFundacion.Set, p.AnioFundacion.Ptr())
	add("sitio_web", p.SitioWeb.Set, p.SitioWeb.Ptr())
	add("redes_sociales", p.RedesSociales.Set, p.RedesSociales.Ptr())
	add("imagen", p.Imagen.Set, p.Imagen.Ptr())
	return sets, args
}

// UpdateProfile applies a partial update to self-service fields.
func (r *Repository) UpdateProfile(ctx context.Context, id int64, p ProfileUpdate) error {
	sets, args := p.setClauses()
	if len(sets) == 0 {
		return nil
	}
	args = append(args, id)
	q := fmt.Sprintf(`UPDATE organizadores SET %s WHERE id = $%d`,
		strings.Join(sets, ", "), len(args))
	tag, err := r.pool.Exec(ctx, q, args...)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

// SetDocument stores the accreditation document key for the organizer.
func (r *Repository) SetDocument(ctx context.Context, id int64, key string) error {
	tag, err := r.pool.Exec(ctx, `UPDATE organizadores SET documento_acreditacion = $1 WHERE id = $2`, key, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

// SetAccreditation updates the organizer's accreditation state and appends a
// history row, both in one transaction.
func (r *Repository) SetAccreditation(ctx context.Context, organizerID int64, stateID int, adminID int64, notas *string) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	var one int
	if err := tx.QueryRow(ctx, `SELECT 1 FROM estados_acreditacion WHERE id = $1`, stateID).Scan(&one); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return ErrUnknownState
		}
		return err
	}
	tag, err := tx.Exec(ctx, `UPDATE organizadores SET id_estado_acreditacion = $1 WHERE id = $2`, stateID, organizerID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	const q = `INSERT INTO historial_acreditacion (id_organizador, id_estado, id_admin, notas)
		VALUES ($1, $2, $3, $4)`
	if _, err := tx.Exec(ctx, q, organizerID, stateID, adminID, notas); err != nil {
		return err
	}
	return tx.Commit(ctx)
}

// History returns the accreditation audit trail for an organizer, newest first.
func (r *Repository) History(ctx context.Context, organizerID int64) ([]models.AccreditationRecord, error) {
	const q = `SELECT id, id_organizador, id_estado, id_admin, notas, fecha_cambio
		FROM historial_acreditacion WHERE id_organizador = $1 ORDER BY fecha_cambio DESC`
	rows, err := r.pool.Query(ctx, q, organizerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var list []models.AccreditationRecord
	for rows.Next() {
		var rec models.AccreditationRecord
		if err := rows.Scan(&rec.ID, &rec.OrganizerID, &rec.EstadoID, &rec.AdminID, &rec.Notas, &rec.FechaCambio); err != nil {
			return nil, err
		}
		list = append(list, rec)
	}
	return list, rows.Err()
}
