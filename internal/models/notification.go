package models

import "time"

// Notification is a message recorded for a user, optionally tied to an event.
// Delivery happens asynchronously via the notification worker.
type Notification struct {
	ID         int64     `json:"id"`
	UserID     int64     `json:"id_usuario"`
	EventID    *int64    `json:"id_evento,omitempty"`
	Mensaje    string    `json:"mensaje"`
	FechaEnvio time.Time `json:"fecha_envio"`
	Enviada    bool      `json:"enviada"`
}
