package services

import (
	"context"
	"fmt"

	"sasce-admin/internal/apiclient"
	"sasce-admin/internal/domain"
)

// GrupoService manages student groups under /coordinador/grupos.
type GrupoService struct {
	client *apiclient.Client
}

// List returns all student groups.
func (s *GrupoService) List(ctx context.Context) ([]domain.Grupo, error) {
	var grupos []domain.Grupo
	if err := s.client.Get(ctx, "/coordinador/grupos", nil, &grupos); err != nil {
		return nil, err
	}
	return grupos, nil
}

// GetByID fetches a single group.
func (s *GrupoService) GetByID(ctx context.Context, id int) (*domain.Grupo, error) {
	var grupo domain.Grupo
	if err := s.client.Get(ctx, fmt.Sprintf("/coordinador/grupos/%d", id), nil, &grupo); err != nil {
		return nil, err
	}
	return &grupo, nil
}

// Create registers a new group.
func (s *GrupoService) Create(ctx context.Context, req domain.GrupoRequest) (*domain.Grupo, error) {
	var grupo domain.Grupo
	if err := s.client.Post(ctx, "/coordinador/grupos", req, &grupo); err != nil {
		return nil, err
	}
	return &grupo, nil
}

// Update replaces the mutable attributes of an existing group.
func (s *GrupoService) Update(ctx context.Context, id int, req domain.GrupoRequest) (*domain.Grupo, error) {
	var grupo domain.Grupo
	if err := s.client.Put(ctx, fmt.Sprintf("/coordinador/grupos/%d", id), req, &grupo); err != nil {
		return nil, err
	}
	return &grupo, nil
}

// Desactivar soft-deletes a group. There is no reactivation endpoint for
// groups; from the client's perspective this is irreversible.
func (s *GrupoService) Desactivar(ctx context.Context, id int) error {
	return s.client.Patch(ctx, fmt.Sprintf("/coordinador/grupos/%d/desactivar", id), nil, nil)
}

// NivelesAcademicos returns the academic levels for the group form.
func (s *GrupoService) NivelesAcademicos(ctx context.Context) ([]domain.NivelAcademico, error) {
	var niveles []domain.NivelAcademico
	if err := s.client.Get(ctx, "/coordinador/grupos/niveles-academicos", nil, &niveles); err != nil {
		return nil, err
	}
	return niveles, nil
}
