// Package services holds the typed entity service clients: thin wrappers
// over the gateway client, one per entity, mirroring the API's resource
// groups (admin, coordinador, coordinador-infra).
package services

import "sasce-admin/internal/apiclient"

// Bundle groups every service over one shared gateway client so callers
// wire the API once.
type Bundle struct {
	Auth           *AuthService
	Usuarios       *UsuarioService
	Grupos         *GrupoService
	Profesores     *ProfesorService
	Salones        *SalonService
	Disponibilidad *DisponibilidadService
}

// NewBundle builds all services over the given client.
func NewBundle(client *apiclient.Client) *Bundle {
	return &Bundle{
		Auth:           NewAuthService(client),
		Usuarios:       &UsuarioService{client: client},
		Grupos:         &GrupoService{client: client},
		Profesores:     &ProfesorService{client: client},
		Salones:        &SalonService{client: client},
		Disponibilidad: &DisponibilidadService{client: client},
	}
}
