package domain

import "time"

// Profesor is a teacher record. Create and update travel as multipart form
// data because of the attached CV (hoja de vida) PDF.
type Profesor struct {
	IDProfesor           int       `json:"id_profesor"`
	NumeroIdentificacion string    `json:"numero_identificacion"`
	Nombre               string    `json:"nombre"`
	Apellido             string    `json:"apellido"`
	Correo               string    `json:"correo"`
	Biografia            *string   `json:"biografia"`
	Cualificaciones      *string   `json:"cualificaciones"`
	Especialidades       []string  `json:"especialidades"`
	HojaVidaURL          string    `json:"hoja_vida_url"`
	Usuario              *Usuario  `json:"usuario,omitempty"`
	FechaCreacion        time.Time `json:"fecha_creacion,omitzero"`
	FechaActualizacion   time.Time `json:"fecha_actualizacion,omitzero"`
}

// NombreCompleto returns "Nombre Apellido" for display.
func (p *Profesor) NombreCompleto() string {
	return p.Nombre + " " + p.Apellido
}

// Activo reports whether the teacher's linked account is active. Teachers
// without an embedded usuario are treated as inactive: edits are refused.
func (p *Profesor) Activo() bool {
	return p.Usuario != nil && p.Usuario.EstaActivo
}

// ProfesorForm carries the multipart fields for teacher create/update.
// HojaVida holds the raw PDF bytes; it is required on create and optional
// on update (an empty slice means "keep the stored CV").
type ProfesorForm struct {
	NumeroIdentificacion string
	Nombre               string
	Apellido             string
	Correo               string
	Biografia            string
	Cualificaciones      string
	Especialidades       []string
	HojaVida             []byte
	HojaVidaNombre       string
}
