package models

import "time"

// Event state IDs as seeded in estados_evento.
const (
	EventActive    = 1
	EventCancelled = 2
	EventSuspended = 3
)

// EventState is a row of the estados_evento lookup table.
type EventState struct {
	ID     int    `json:"id"`
	Nombre string `json:"nombre"`
}

// Category is a row of the categorias reference table.
type Category struct {
	ID     int    `json:"id"`
	Nombre string `json:"nombre"`
}

// Event represents an event created by an organizer.
type Event struct {
	ID            int64     `json:"id"`
	OrganizerID   int64     `json:"id_organizador"`
	CategoryID    int       `json:"id_categoria"`
	Titulo        string    `json:"titulo"`
	Descripcion   *string   `json:"descripcion,omitempty"`
	FechaInicio   time.Time `json:"fecha_inicio"`
	FechaFin      time.Time `json:"fecha_fin"`
	Ubicacion     *string   `json:"ubicacion,omitempty"`
	Latitud       *float64  `json:"latitud,omitempty"`
	Longitud      *float64  `json:"longitud,omitempty"`
	Capacidad     int       `json:"capacidad"`
	Imagen        *string   `json:"imagen,omitempty"`
	EstadoID      int       `json:"id_estado"`
	FechaRegistro time.Time `json:"fecha_registro"`
}
