package authz

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sasce-admin/internal/domain"
)

func moduleIDs(modules []Module) []string {
	ids := make([]string, 0, len(modules))
	for _, m := range modules {
		ids = append(ids, m.ID)
	}
	return ids
}

func TestVisibleModules_PerRole(t *testing.T) {
	tests := []struct {
		role domain.Role
		want []string
	}{
		{domain.RoleAdministrador, []string{ModuleInicio, ModuleUsuarios}},
		{domain.RoleCoordinador, []string{ModuleInicio, ModuleGrupos, ModuleProfesores}},
		{domain.RoleCoordinadorInfra, []string{ModuleInicio, ModuleSalones, ModuleDisponibilidad}},
		{domain.RoleProfesor, []string{ModuleInicio}},
		{domain.RoleEstudiante, []string{ModuleInicio}},
	}
	for _, tt := range tests {
		got := VisibleModules(tt.role)
		assert.Equal(t, tt.want, moduleIDs(got), "role %s", tt.role)
	}
}

func TestVisibleModules_UnknownRoleSeesNothing(t *testing.T) {
	assert.Empty(t, VisibleModules(domain.RoleUnknown))
	assert.Empty(t, VisibleModules(domain.Role(99)))
}

func TestInitialModule(t *testing.T) {
	assert.Equal(t, ModuleUsuarios, InitialModule(domain.RoleAdministrador).ID)
	assert.Equal(t, ModuleGrupos, InitialModule(domain.RoleCoordinador).ID)
	assert.Equal(t, ModuleSalones, InitialModule(domain.RoleCoordinadorInfra).ID)
	// Roles with no management module land on inicio.
	assert.Equal(t, ModuleInicio, InitialModule(domain.RoleProfesor).ID)
}

func TestCanAccess(t *testing.T) {
	assert.True(t, CanAccess(domain.RoleAdministrador, ModuleUsuarios))
	assert.False(t, CanAccess(domain.RoleAdministrador, ModuleGrupos))
	assert.True(t, CanAccess(domain.RoleCoordinador, ModuleProfesores))
	assert.False(t, CanAccess(domain.RoleCoordinador, ModuleSalones))
	assert.True(t, CanAccess(domain.RoleCoordinadorInfra, ModuleDisponibilidad))
	assert.False(t, CanAccess(domain.RoleEstudiante, ModuleUsuarios))
	assert.False(t, CanAccess(domain.RoleAdministrador, "no-such-module"))
}

func TestLookupAndOrder(t *testing.T) {
	m, ok := Lookup(ModuleGrupos)
	require.True(t, ok)
	assert.Equal(t, "/grupos", m.Path)

	all := Modules()
	assert.Equal(t, []string{
		ModuleInicio, ModuleUsuarios, ModuleGrupos,
		ModuleProfesores, ModuleSalones, ModuleDisponibilidad,
	}, moduleIDs(all))
}
