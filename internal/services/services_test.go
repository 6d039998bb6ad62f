package services

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sasce-admin/internal/apiclient"
	"sasce-admin/internal/domain"
)

type recordedRequest struct {
	Method string
	Path   string
	Query  string
	Body   []byte
}

func newFakeAPI(t *testing.T, status int, responseBody string) (*Bundle, *[]recordedRequest) {
	t.Helper()
	var requests []recordedRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		requests = append(requests, recordedRequest{
			Method: r.Method,
			Path:   r.URL.Path,
			Query:  r.URL.RawQuery,
			Body:   body,
		})
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(responseBody))
	}))
	t.Cleanup(srv.Close)
	return NewBundle(apiclient.NewClient(srv.URL, nil)), &requests
}

func TestGrupoService_CreateSendsExactFields(t *testing.T) {
	svc, requests := newFakeAPI(t, http.StatusCreated, `{"id_grupo": 12, "nombre_grupo": "Grupo 10A"}`)

	grupo, err := svc.Grupos.Create(context.Background(), domain.GrupoRequest{
		NombreGrupo:         "Grupo 10A",
		IDNivelAcademico:    3,
		CantidadEstudiantes: 25,
	})
	require.NoError(t, err)
	assert.Equal(t, 12, grupo.IDGrupo)

	require.Len(t, *requests, 1)
	req := (*requests)[0]
	assert.Equal(t, http.MethodPost, req.Method)
	assert.Equal(t, "/coordinador/grupos", req.Path)

	var payload map[string]any
	require.NoError(t, json.Unmarshal(req.Body, &payload))
	assert.Equal(t, "Grupo 10A", payload["nombre_grupo"])
	assert.Equal(t, float64(3), payload["id_nivel_academico"])
	assert.Equal(t, float64(25), payload["cantidad_estudiantes"])

	// Omitted optional fields must travel as explicit nulls.
	v, present := payload["requisitos_especiales"]
	assert.True(t, present)
	assert.Nil(t, v)
	assert.Len(t, payload, 4)
}

func TestGrupoService_DesactivarPath(t *testing.T) {
	svc, requests := newFakeAPI(t, http.StatusOK, `{}`)

	require.NoError(t, svc.Grupos.Desactivar(context.Background(), 7))
	require.Len(t, *requests, 1)
	assert.Equal(t, http.MethodPatch, (*requests)[0].Method)
	assert.Equal(t, "/coordinador/grupos/7/desactivar", (*requests)[0].Path)
}

func TestUsuarioService_ActivarDesactivarPaths(t *testing.T) {
	svc, requests := newFakeAPI(t, http.StatusOK, `{}`)

	require.NoError(t, svc.Usuarios.Desactivar(context.Background(), 4))
	require.NoError(t, svc.Usuarios.Activar(context.Background(), 4))

	require.Len(t, *requests, 2)
	assert.Equal(t, "/admin/users/4/desactivar", (*requests)[0].Path)
	assert.Equal(t, "/admin/users/4/activar", (*requests)[1].Path)
}

func TestDisponibilidadService_ListFilters(t *testing.T) {
	svc, requests := newFakeAPI(t, http.StatusOK, `[]`)

	periodo, dia := 7, 0
	_, err := svc.Disponibilidad.List(context.Background(), 3, domain.OcupacionFiltro{
		IDPeriodoAcademico: &periodo,
		DiaSemana:          &dia,
	})
	require.NoError(t, err)

	require.Len(t, *requests, 1)
	req := (*requests)[0]
	assert.Equal(t, "/coordinador-infra/salones/3/ocupacion", req.Path)
	assert.Contains(t, req.Query, "id_periodo_academico=7")
	// dia_semana=0 is a valid filter and must not be dropped.
	assert.Contains(t, req.Query, "dia_semana=0")
}

func TestDisponibilidadService_ListNoFilters(t *testing.T) {
	svc, requests := newFakeAPI(t, http.StatusOK, `[]`)

	_, err := svc.Disponibilidad.List(context.Background(), 3, domain.OcupacionFiltro{})
	require.NoError(t, err)
	assert.Empty(t, (*requests)[0].Query)
}

func TestProfesorService_CreateIsMultipart(t *testing.T) {
	var gotContentType string
	var gotForm map[string][]string
	var gotFiles []string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotContentType = r.Header.Get("Content-Type")
		require.NoError(t, r.ParseMultipartForm(1<<20))
		gotForm = r.MultipartForm.Value
		for name := range r.MultipartForm.File {
			gotFiles = append(gotFiles, name)
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"id_profesor": 9}`))
	}))
	t.Cleanup(srv.Close)

	bundle := NewBundle(apiclient.NewClient(srv.URL, nil))
	profesor, err := bundle.Profesores.Create(context.Background(), domain.ProfesorForm{
		NumeroIdentificacion: "1032456789",
		Nombre:               "Ana",
		Apellido:             "Pérez",
		Correo:               "ana.perez@example.edu",
		Especialidades:       []string{"Matemáticas", "Física"},
		HojaVida:             []byte("%PDF-1.4 fake"),
		HojaVidaNombre:       "cv.pdf",
	})
	require.NoError(t, err)
	assert.Equal(t, 9, profesor.IDProfesor)

	assert.Contains(t, gotContentType, "multipart/form-data")
	assert.Equal(t, []string{"1032456789"}, gotForm["numero_identificacion"])
	assert.Equal(t, []string{`["Matemáticas","Física"]`}, gotForm["especialidades"])
	assert.Equal(t, []string{"hoja_vida"}, gotFiles)
}

func TestAuthService_LoginRoundTrip(t *testing.T) {
	svc, requests := newFakeAPI(t, http.StatusOK,
		`{"accessToken":"tok-123","usuario":{"id_usuario":1,"correo":"admin@example.edu","id_rol":1}}`)

	token, usuario, err := svc.Auth.Login(context.Background(), "admin@example.edu", "secreto")
	require.NoError(t, err)
	assert.Equal(t, "tok-123", token)
	assert.Equal(t, domain.RoleAdministrador, usuario.IDRol)

	var payload map[string]string
	require.NoError(t, json.Unmarshal((*requests)[0].Body, &payload))
	assert.Equal(t, "admin@example.edu", payload["correo"])
	assert.Equal(t, "secreto", payload["password"])
}

func TestAuthService_LoginFailurePassesMessage(t *testing.T) {
	svc, _ := newFakeAPI(t, http.StatusUnauthorized, `{"message":"Credenciales inválidas"}`)

	_, _, err := svc.Auth.Login(context.Background(), "admin@example.edu", "mala")
	require.Error(t, err)
	assert.Equal(t, "Credenciales inválidas", err.Error())
	assert.NotErrorIs(t, err, apiclient.ErrSessionExpired,
		"a rejected login is a credential failure, not an expired session")
}

type staleAuthorizer struct {
	expired bool
}

func (s *staleAuthorizer) Token() string   { return "token-vigente" }
func (s *staleAuthorizer) SessionExpired() { s.expired = true }

func TestAuthService_LoginSendsNoBearer(t *testing.T) {
	var gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"message":"Credenciales inválidas"}`))
	}))
	t.Cleanup(srv.Close)

	auth := &staleAuthorizer{}
	svc := NewBundle(apiclient.NewClient(srv.URL, auth))

	_, _, err := svc.Auth.Login(context.Background(), "admin@example.edu", "mala")
	require.Error(t, err)
	assert.Empty(t, gotAuth, "login must not carry the currently held token")
	assert.False(t, auth.expired, "failed login must not tear down the held session")
}
