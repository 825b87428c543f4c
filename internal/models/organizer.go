package models

import "time"

// Accreditation state IDs as seeded in estados_acreditacion.
const (
	AccreditationPending  = 1
	AccreditationApproved = 2
	AccreditationRejected = 3
)

// AccreditationState is a row of the estados_acreditacion lookup table.
type AccreditationState struct {
	ID     int    `json:"id"`
	Nombre string `json:"nombre"`
}

// Organizer represents an organizer profile linked one-to-one to a user.
type Organizer struct {
	ID                 int64   `json:"id"`
	UserID             int64   `json:"id_usuario"`
	NombreOrganizacion string  `json:"nombre_organizacion"`
	Descripcion        *string `json:"descripcion,omitempty"`
	Documento          *string `json:"documento_acreditacion,omitempty"`
	EstadoAcreditacion int     `json:"id_estado_acreditacion"`
	Ubicacion          *string `json:"ubicacion,omitempty"`
	AnioFundacion      *int    `json:"anio_fundacion,omitempty"`
	SitioWeb           *string `json:"sitio_web,omitempty"`
	RedesSociales      *string `json:"redes_sociales,omitempty"`
	Imagen             *string `json:"imagen,omitempty"`

	// Usuario carries the owning user's public fields on joined reads.
	Usuario *UserPublic `json:"usuario,omitempty"`
}

// AccreditationRecord is one append-only entry of historial_acreditacion.
type AccreditationRecord struct {
	ID          int64     `json:"id"`
	OrganizerID int64     `json:"id_organizador"`
	EstadoID    int       `json:"id_estado"`
	AdminID     int64     `json:"id_admin"`
	Notas       *string   `json:"notas,omitempty"`
	FechaCambio time.Time `json:"fecha_cambio"`
}
