package services

import (
	"context"

	"sasce-admin/internal/apiclient"
	"sasce-admin/internal/domain"
)

// SalonService manages rooms and their reference data under
// /coordinador-infra/salones.
type SalonService struct {
	client *apiclient.Client
}

// List returns all rooms.
func (s *SalonService) List(ctx context.Context) ([]domain.Salon, error) {
	var salones []domain.Salon
	if err := s.client.Get(ctx, "/coordinador-infra/salones", nil, &salones); err != nil {
		return nil, err
	}
	return salones, nil
}

// Create registers a new room with its resource rows.
func (s *SalonService) Create(ctx context.Context, req domain.SalonRequest) (*domain.Salon, error) {
	var salon domain.Salon
	if err := s.client.Post(ctx, "/coordinador-infra/salones", req, &salon); err != nil {
		return nil, err
	}
	return &salon, nil
}

// Edificios returns the buildings for the room form.
func (s *SalonService) Edificios(ctx context.Context) ([]domain.Edificio, error) {
	var edificios []domain.Edificio
	if err := s.client.Get(ctx, "/coordinador-infra/salones/edificios", nil, &edificios); err != nil {
		return nil, err
	}
	return edificios, nil
}

// TiposRecurso returns the resource types for the room form.
func (s *SalonService) TiposRecurso(ctx context.Context) ([]domain.TipoRecurso, error) {
	var tipos []domain.TipoRecurso
	if err := s.client.Get(ctx, "/coordinador-infra/salones/tipos-recurso", nil, &tipos); err != nil {
		return nil, err
	}
	return tipos, nil
}

// PeriodosAcademicos returns the academic periods for availability forms.
func (s *SalonService) PeriodosAcademicos(ctx context.Context) ([]domain.PeriodoAcademico, error) {
	var periodos []domain.PeriodoAcademico
	if err := s.client.Get(ctx, "/coordinador-infra/salones/periodos-academicos", nil, &periodos); err != nil {
		return nil, err
	}
	return periodos, nil
}
