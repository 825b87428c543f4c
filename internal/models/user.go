package models

import "time"

// Platform role IDs as seeded in roles_usuario.
const (
	RoleAdmin     = 1
	RoleOrganizer = 2
	RoleCommon    = 3
)

// Role is a row of the roles_usuario reference table.
type Role struct {
	ID     int    `json:"id"`
	Nombre string `json:"nombre"`
}

// User represents a platform user.
type User struct {
	ID              int64      `json:"id"`
	RoleID          *int       `json:"id_rol,omitempty"`
	Email           string     `json:"correo"`
	Nombre          string     `json:"nombre"`
	Password        string     `json:"-"`
	FechaRegistro   time.Time  `json:"fecha_registro"`
	Sexo            *string    `json:"sexo,omitempty"`
	FechaNacimiento *time.Time `json:"fecha_nacimiento,omitempty"`
	Biografia       *string    `json:"biografia,omitempty"`
	Intereses       *string    `json:"intereses,omitempty"`
	Foto            *string    `json:"foto,omitempty"`
	Telefono        *string    `json:"telefono,omitempty"`
	Ubicacion       *string    `json:"ubicacion,omitempty"`
}

// UserPublic is User without sensitive fields for API responses.
type UserPublic struct {
	ID              int64      `json:"id"`
	RoleID          *int       `json:"id_rol,omitempty"`
	Email           string     `json:"correo"`
	Nombre          string     `json:"nombre"`
	FechaRegistro   time.Time  `json:"fecha_registro"`
	Sexo            *string    `json:"sexo,omitempty"`
	FechaNacimiento *time.Time `json:"fecha_nacimiento,omitempty"`
	Biografia       *string    `json:"biografia,omitempty"`
	Intereses       *string    `json:"intereses,omitempty"`
	Foto            *string    `json:"foto,omitempty"`
	Telefono        *string    `json:"telefono,omitempty"`
	Ubicacion       *string    `json:"ubicacion,omitempty"`
}

// ToPublic converts User to UserPublic.
func (u *User) ToPublic() UserPublic {
	return UserPublic{
		ID:              u.ID,
		RoleID:          u.RoleID,
		Email:           u.Email,
		Nombre:          u.Nombre,
		FechaRegistro:   u.FechaRegistro,
		Sexo:            u.Sexo,
		FechaNacimiento: u.FechaNacimiento,
		Biografia:       u.Biografia,
		Intereses:       u.Intereses,
		Foto:            u.Foto,
		Telefono:        u.Telefono,
		Ubicacion:       u.Ubicacion,
	}
}
