package services

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"sasce-admin/internal/apiclient"
	"sasce-admin/internal/domain"
)

// ProfesorService manages teacher records under /coordinador/profesores.
// Create and update are multipart because of the attached hoja de vida PDF;
// everything else is plain JSON.
type ProfesorService struct {
	client *apiclient.Client
}

// List returns all teacher records.
func (s *ProfesorService) List(ctx context.Context) ([]domain.Profesor, error) {
	var profesores []domain.Profesor
	if err := s.client.Get(ctx, "/coordinador/profesores", nil, &profesores); err != nil {
		return nil, err
	}
	return profesores, nil
}

// GetByID fetches a single teacher record.
func (s *ProfesorService) GetByID(ctx context.Context, id int) (*domain.Profesor, error) {
	var profesor domain.Profesor
	if err := s.client.Get(ctx, fmt.Sprintf("/coordinador/profesores/%d", id), nil, &profesor); err != nil {
		return nil, err
	}
	return &profesor, nil
}

// Create registers a new teacher. The hoja de vida PDF is required and is
// forwarded untouched inside the multipart body.
func (s *ProfesorService) Create(ctx context.Context, form domain.ProfesorForm) (*domain.Profesor, error) {
	body, err := encodeProfesorForm(form)
	if err != nil {
		return nil, err
	}
	var profesor domain.Profesor
	if err := s.client.JSON(ctx, http.MethodPost, "/coordinador/profesores", nil, body, &profesor); err != nil {
		return nil, err
	}
	return &profesor, nil
}

// Update replaces a teacher's mutable attributes. The PDF part is optional:
// when absent the server keeps the stored CV.
func (s *ProfesorService) Update(ctx context.Context, id int, form domain.ProfesorForm) (*domain.Profesor, error) {
	body, err := encodeProfesorForm(form)
	if err != nil {
		return nil, err
	}
	var profesor domain.Profesor
	path := fmt.Sprintf("/coordinador/profesores/%d", id)
	if err := s.client.JSON(ctx, http.MethodPut, path, nil, body, &profesor); err != nil {
		return nil, err
	}
	return &profesor, nil
}

// Delete performs the teacher's soft delete (baja lógica).
func (s *ProfesorService) Delete(ctx context.Context, id int) error {
	return s.client.Delete(ctx, fmt.Sprintf("/coordinador/profesores/%d", id), nil)
}

// encodeProfesorForm builds the multipart payload. Especialidades travel as
// a JSON-encoded array in a single field, matching the API contract.
func encodeProfesorForm(form domain.ProfesorForm) (*apiclient.MultipartForm, error) {
	body := &apiclient.MultipartForm{}
	body.SetField("numero_identificacion", form.NumeroIdentificacion)
	body.SetField("nombre", form.Nombre)
	body.SetField("apellido", form.Apellido)
	body.SetField("correo", form.Correo)
	if form.Biografia != "" {
		body.SetField("biografia", form.Biografia)
	}
	if form.Cualificaciones != "" {
		body.SetField("cualificaciones", form.Cualificaciones)
	}
	if len(form.Especialidades) > 0 {
		encoded, err := json.Marshal(form.Especialidades)
		if err != nil {
			return nil, fmt.Errorf("encode especialidades: %w", err)
		}
		body.SetField("especialidades", string(encoded))
	}
	if len(form.HojaVida) > 0 {
		filename := form.HojaVidaNombre
		if filename == "" {
			filename = "hoja_vida.pdf"
		}
		body.SetFile("hoja_vida", filename, form.HojaVida)
	}
	return body, nil
}
