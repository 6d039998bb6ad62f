package domain

import "time"

// NivelAcademico is reference data for the group form's level selector.
type NivelAcademico struct {
	IDNivel     int    `json:"id_nivel"`
	NombreNivel string `json:"nombre_nivel"`
}

// Grupo is a student group. Deactivation is irreversible from the client's
// perspective: the API exposes no reactivation endpoint for groups.
type Grupo struct {
	IDGrupo              int             `json:"id_grupo"`
	NombreGrupo          string          `json:"nombre_grupo"`
	IDNivelAcademico     int             `json:"id_nivel_academico"`
	NivelAcademico       *NivelAcademico `json:"nivel_academico,omitempty"`
	CantidadEstudiantes  int             `json:"cantidad_estudiantes"`
	RequisitosEspeciales *string         `json:"requisitos_especiales"`
	EstaActivo           bool            `json:"esta_activo"`
	FechaCreacion        time.Time       `json:"fecha_creacion,omitzero"`
	FechaActualizacion   time.Time       `json:"fecha_actualizacion,omitzero"`
}

// GrupoRequest is the JSON payload for creating or updating a group.
// RequisitosEspeciales serializes as null when absent, matching what the
// API expects for omitted optional fields.
type GrupoRequest struct {
	NombreGrupo          string  `json:"nombre_grupo"`
	IDNivelAcademico     int     `json:"id_nivel_academico"`
	CantidadEstudiantes  int     `json:"cantidad_estudiantes"`
	RequisitosEspeciales *string `json:"requisitos_especiales"`
}
