package controller

import (
	"fmt"
	"strings"

	"sasce-admin/internal/domain"
)

// Field length limits enforced before any network call.
const (
	MaxNombreGrupo          = 100
	MaxRequisitosEspeciales = 500
	MaxCodigoSalon          = 50
	MaxNombreSalon          = 100
	MaxDescripcionUbicacion = 500
	MaxNotasRecurso         = 200
	MaxMotivo               = 500
)

// Bookable hours: availability blocks live inside this daily window.
const (
	MinHora = "06:00"
	MaxHora = "22:00"
)

// Validator accumulates field errors and reports them as one
// domain.ValidationError. Checks chain; a failed check does not stop the
// rest, so the user sees every problem at once.
type Validator struct {
	problems []string
}

// Require checks that a string field is non-blank.
func (v *Validator) Require(field, value string) *Validator {
	if strings.TrimSpace(value) == "" {
		v.problems = append(v.problems, fmt.Sprintf("%s es obligatorio", field))
	}
	return v
}

// PositiveInt checks that a numeric field is strictly positive.
func (v *Validator) PositiveInt(field string, value int) *Validator {
	if value <= 0 {
		v.problems = append(v.problems, fmt.Sprintf("%s debe ser un número positivo", field))
	}
	return v
}

// MaxLen checks a string field's maximum length in runes.
func (v *Validator) MaxLen(field, value string, limit int) *Validator {
	if len([]rune(value)) > limit {
		v.problems = append(v.problems, fmt.Sprintf("%s no puede superar %d caracteres", field, limit))
	}
	return v
}

// TimeWindow checks an HH:MM range: both ends well-formed, inside the
// bookable hours, and end strictly after start.
func (v *Validator) TimeWindow(inicio, fin string) *Validator {
	startOK := validHora(inicio)
	endOK := validHora(fin)
	if !startOK {
		v.problems = append(v.problems, "hora_inicio debe tener formato HH:MM")
	}
	if !endOK {
		v.problems = append(v.problems, "hora_fin debe tener formato HH:MM")
	}
	if !startOK || !endOK {
		return v
	}
	if inicio < MinHora || fin > MaxHora {
		v.problems = append(v.problems,
			fmt.Sprintf("el horario debe estar entre %s y %s", MinHora, MaxHora))
	}
	if fin <= inicio {
		v.problems = append(v.problems, "hora_fin debe ser posterior a hora_inicio")
	}
	return v
}

// Check appends a custom problem when ok is false.
func (v *Validator) Check(ok bool, problem string) *Validator {
	if !ok {
		v.problems = append(v.problems, problem)
	}
	return v
}

// Err returns the accumulated problems as a single ValidationError, or nil.
func (v *Validator) Err() error {
	if len(v.problems) == 0 {
		return nil
	}
	return domain.ErrValidation("%s", strings.Join(v.problems, "; "))
}

// validHora accepts zero-padded 24h HH:MM. The format sorts
// lexicographically, which the window checks rely on.
func validHora(s string) bool {
	if len(s) != 5 || s[2] != ':' {
		return false
	}
	for _, i := range []int{0, 1, 3, 4} {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	hh := int(s[0]-'0')*10 + int(s[1]-'0')
	mm := int(s[3]-'0')*10 + int(s[4]-'0')
	return hh < 24 && mm < 60
}
