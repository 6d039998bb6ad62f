package domain

// PeriodoAcademico is reference data for availability-block forms; the
// active period is preselected.
type PeriodoAcademico struct {
	IDPeriodo     int    `json:"id_periodo"`
	NombrePeriodo string `json:"nombre_periodo"`
	EstaActivo    bool   `json:"esta_activo"`
}

// DiasSemana maps dia_semana values (0=domingo .. 6=sábado) to labels,
// indexed by day number.
var DiasSemana = []string{
	"Domingo", "Lunes", "Martes", "Miércoles", "Jueves", "Viernes", "Sábado",
}

// NombreDia returns the label for a dia_semana value.
func NombreDia(dia int) string {
	if dia < 0 || dia >= len(DiasSemana) {
		return "Desconocido"
	}
	return DiasSemana[dia]
}

// Ocupacion is a recurring weekly time window during which a room is
// blocked from scheduling, scoped to an academic period.
type Ocupacion struct {
	IDOcupacion        int               `json:"id_ocupacion"`
	IDSalon            int               `json:"id_salon"`
	IDPeriodoAcademico int               `json:"id_periodo_academico"`
	PeriodoAcademico   *PeriodoAcademico `json:"periodo_academico,omitempty"`
	DiaSemana          int               `json:"dia_semana"`
	HoraInicio         string            `json:"hora_inicio"`
	HoraFin            string            `json:"hora_fin"`
	Motivo             string            `json:"motivo"`
}

// OcupacionRequest is the JSON payload for blocking a room's time window.
type OcupacionRequest struct {
	IDPeriodoAcademico int    `json:"id_periodo_academico"`
	DiaSemana          int    `json:"dia_semana"`
	HoraInicio         string `json:"hora_inicio"`
	HoraFin            string `json:"hora_fin"`
	Motivo             string `json:"motivo"`
}

// OcupacionFiltro narrows GET /salones/{id}/ocupacion. Nil fields are
// omitted from the query string.
type OcupacionFiltro struct {
	IDPeriodoAcademico *int
	DiaSemana          *int
}
