package domain

// Role is the small-integer role id assigned by the API. Every protected
// module declares the exact set of roles permitted to open it.
type Role int

const (
	RoleUnknown          Role = 0
	RoleAdministrador    Role = 1
	RoleCoordinador      Role = 2
	RoleCoordinadorInfra Role = 3
	RoleProfesor         Role = 4
	RoleEstudiante       Role = 5
)

var roleNames = map[Role]string{
	RoleAdministrador:    "Administrador",
	RoleCoordinador:      "Coordinador",
	RoleCoordinadorInfra: "Coordinador de Infraestructura",
	RoleProfesor:         "Profesor",
	RoleEstudiante:       "Estudiante",
}

func (r Role) String() string {
	if name, ok := roleNames[r]; ok {
		return name
	}
	return "Desconocido"
}

// Valid reports whether r is one of the roles the API can assign.
func (r Role) Valid() bool {
	_, ok := roleNames[r]
	return ok
}
