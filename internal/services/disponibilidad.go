package services

import (
	"context"
	"fmt"
	"net/url"
	"strconv"

	"sasce-admin/internal/apiclient"
	"sasce-admin/internal/domain"
)

// DisponibilidadService manages room availability blocks (ocupaciones).
type DisponibilidadService struct {
	client *apiclient.Client
}

// List returns the blocks for a room, optionally filtered by academic
// period and day of the week.
func (s *DisponibilidadService) List(ctx context.Context, idSalon int, filtro domain.OcupacionFiltro) ([]domain.Ocupacion, error) {
	query := url.Values{}
	if filtro.IDPeriodoAcademico != nil {
		query.Set("id_periodo_academico", strconv.Itoa(*filtro.IDPeriodoAcademico))
	}
	if filtro.DiaSemana != nil {
		query.Set("dia_semana", strconv.Itoa(*filtro.DiaSemana))
	}

	var ocupaciones []domain.Ocupacion
	path := fmt.Sprintf("/coordinador-infra/salones/%d/ocupacion", idSalon)
	if err := s.client.Get(ctx, path, query, &ocupaciones); err != nil {
		return nil, err
	}
	return ocupaciones, nil
}

// Create blocks a weekly time window for the room.
func (s *DisponibilidadService) Create(ctx context.Context, idSalon int, req domain.OcupacionRequest) (*domain.Ocupacion, error) {
	var ocupacion domain.Ocupacion
	path := fmt.Sprintf("/coordinador-infra/salones/%d/ocupacion", idSalon)
	if err := s.client.Post(ctx, path, req, &ocupacion); err != nil {
		return nil, err
	}
	return &ocupacion, nil
}

// Delete removes an availability block.
func (s *DisponibilidadService) Delete(ctx context.Context, idOcupacion int) error {
	return s.client.Delete(ctx, fmt.Sprintf("/coordinador-infra/salones/ocupacion/%d", idOcupacion), nil)
}
