// Package authz declares the application's modules and which roles may open
// them. The registry is static: module order here is the navigation order.
package authz

import "sasce-admin/internal/domain"

// Module is a navigable section of the application.
type Module struct {
	// ID is the stable identifier used in routes and screen caches.
	ID string
	// Label is the navigation display name.
	Label string
	// Path is the module's route on the web surface.
	Path string
	// AllowedRoles is the exact set of roles permitted to open the module.
	// Empty means any authenticated user.
	AllowedRoles []domain.Role
}

// Allows reports whether the role may open the module.
func (m Module) Allows(role domain.Role) bool {
	if len(m.AllowedRoles) == 0 {
		return role.Valid()
	}
	for _, allowed := range m.AllowedRoles {
		if allowed == role {
			return true
		}
	}
	return false
}

// Module identifiers.
const (
	ModuleInicio         = "inicio"
	ModuleUsuarios       = "usuarios"
	ModuleGrupos         = "grupos"
	ModuleProfesores     = "profesores"
	ModuleSalones        = "salones"
	ModuleDisponibilidad = "disponibilidad"
)

var registry = []Module{
	{ID: ModuleInicio, Label: "Inicio", Path: "/inicio"},
	{ID: ModuleUsuarios, Label: "Gestión de Usuarios", Path: "/usuarios",
		AllowedRoles: []domain.Role{domain.RoleAdministrador}},
	{ID: ModuleGrupos, Label: "Gestión de Grupos", Path: "/grupos",
		AllowedRoles: []domain.Role{domain.RoleCoordinador}},
	{ID: ModuleProfesores, Label: "Gestión de Profesores", Path: "/profesores",
		AllowedRoles: []domain.Role{domain.RoleCoordinador}},
	{ID: ModuleSalones, Label: "Gestión de Salones", Path: "/salones",
		AllowedRoles: []domain.Role{domain.RoleCoordinadorInfra}},
	{ID: ModuleDisponibilidad, Label: "Disponibilidad de Salones", Path: "/disponibilidad",
		AllowedRoles: []domain.Role{domain.RoleCoordinadorInfra}},
}

// Modules returns the full registry in navigation order.
func Modules() []Module {
	out := make([]Module, len(registry))
	copy(out, registry)
	return out
}

// Lookup finds a module by id.
func Lookup(id string) (Module, bool) {
	for _, m := range registry {
		if m.ID == id {
			return m, true
		}
	}
	return Module{}, false
}

// VisibleModules returns the modules the role may open, preserving
// registration order.
func VisibleModules(role domain.Role) []Module {
	var out []Module
	for _, m := range registry {
		if m.Allows(role) {
			out = append(out, m)
		}
	}
	return out
}

// InitialModule returns the module the role lands on after login: the first
// role-specific module it may open, or inicio when it has none.
func InitialModule(role domain.Role) Module {
	for _, m := range registry {
		if m.ID == ModuleInicio {
			continue
		}
		if m.Allows(role) {
			return m
		}
	}
	return registry[0]
}

// CanAccess reports whether the role may open the module with the given id.
// Unknown ids are denied.
func CanAccess(role domain.Role, id string) bool {
	m, ok := Lookup(id)
	if !ok {
		return false
	}
	return m.Allows(role)
}
