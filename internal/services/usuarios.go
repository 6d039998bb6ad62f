package services

import (
	"context"
	"fmt"

	"sasce-admin/internal/apiclient"
	"sasce-admin/internal/domain"
)

// UsuarioService manages system accounts under /admin/users. Unlike groups,
// user deactivation is reversible: the API exposes both activar and
// desactivar toggles.
type UsuarioService struct {
	client *apiclient.Client
}

// List returns all user accounts.
func (s *UsuarioService) List(ctx context.Context) ([]domain.Usuario, error) {
	var usuarios []domain.Usuario
	if err := s.client.Get(ctx, "/admin/users", nil, &usuarios); err != nil {
		return nil, err
	}
	return usuarios, nil
}

// Create registers a new account. The server assigns identity, hashes the
// password, and resolves nombre_rol to a role id.
func (s *UsuarioService) Create(ctx context.Context, req domain.CreateUsuarioRequest) (*domain.Usuario, error) {
	var usuario domain.Usuario
	if err := s.client.Post(ctx, "/admin/users", req, &usuario); err != nil {
		return nil, err
	}
	return &usuario, nil
}

// Desactivar soft-deletes the account with the given id.
func (s *UsuarioService) Desactivar(ctx context.Context, id int) error {
	return s.client.Patch(ctx, fmt.Sprintf("/admin/users/%d/desactivar", id), nil, nil)
}

// Activar re-enables a previously deactivated account.
func (s *UsuarioService) Activar(ctx context.Context, id int) error {
	return s.client.Patch(ctx, fmt.Sprintf("/admin/users/%d/activar", id), nil, nil)
}
