package domain

import "time"

// Edificio is reference data for the room form's building selector.
type Edificio struct {
	IDEdificio     int    `json:"id_edificio"`
	NombreEdificio string `json:"nombre_edificio"`
}

// TipoRecurso is reference data for room resource rows (projector,
// whiteboard, lab equipment, ...).
type TipoRecurso struct {
	IDTipoRecurso int    `json:"id_tipo_recurso"`
	NombreTipo    string `json:"nombre_tipo"`
}

// RecursoSalon is one resource attached to a room.
type RecursoSalon struct {
	IDTipoRecurso int    `json:"id_tipo_recurso"`
	Cantidad      int    `json:"cantidad"`
	Notas         string `json:"notas,omitempty"`
}

// Salon is a room available for class assignment.
type Salon struct {
	IDSalon              int            `json:"id_salon"`
	CodigoSalon          string         `json:"codigo_salon"`
	NombreSalon          *string        `json:"nombre_salon"`
	IDEdificio           int            `json:"id_edificio"`
	Edificio             *Edificio      `json:"edificio,omitempty"`
	NumeroPiso           *int           `json:"numero_piso"`
	Capacidad            int            `json:"capacidad"`
	DescripcionUbicacion *string        `json:"descripcion_ubicacion"`
	Recursos             []RecursoSalon `json:"recursos"`
	EstaActivo           bool           `json:"esta_activo"`
	FechaCreacion        time.Time      `json:"fecha_creacion,omitzero"`
	FechaActualizacion   time.Time      `json:"fecha_actualizacion,omitzero"`
}

// Etiqueta returns the room's display label: the code, plus the name when set.
func (s *Salon) Etiqueta() string {
	if s.NombreSalon != nil && *s.NombreSalon != "" {
		return s.CodigoSalon + " - " + *s.NombreSalon
	}
	return s.CodigoSalon
}

// SalonRequest is the JSON payload for POST /coordinador-infra/salones.
// Optional fields serialize as null when absent.
type SalonRequest struct {
	CodigoSalon          string         `json:"codigo_salon"`
	NombreSalon          *string        `json:"nombre_salon"`
	IDEdificio           int            `json:"id_edificio"`
	NumeroPiso           *int           `json:"numero_piso"`
	Capacidad            int            `json:"capacidad"`
	DescripcionUbicacion *string        `json:"descripcion_ubicacion"`
	Recursos             []RecursoSalon `json:"recursos"`
}
