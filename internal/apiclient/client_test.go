package apiclient

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"mime"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sasce-admin/internal/domain"
)

type fakeAuth struct {
	token   string
	expired bool
}

func (f *fakeAuth) Token() string   { return f.token }
func (f *fakeAuth) SessionExpired() { f.expired = true }

// === NewClient ===

func TestNewClient_TrailingSlash(t *testing.T) {
	c := NewClient("http://localhost:3000/api/", nil)
	assert.Equal(t, "http://localhost:3000/api", c.BaseURL)
}

func TestNewClient_SetsTimeout(t *testing.T) {
	c := NewClient("http://localhost:3000/api", nil)
	require.NotNil(t, c.HTTPClient)
	assert.Equal(t, 30*time.Second, c.HTTPClient.Timeout)
}

// === Client.Do ===

func TestDo_URLConstruction(t *testing.T) {
	var gotPath string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		w.WriteHeader(http.StatusOK)
	}))
	t.Cleanup(srv.Close)

	c := NewClient(srv.URL+"/api", nil)
	resp, err := c.Do(context.Background(), http.MethodGet, "/coordinador/grupos", nil, nil)
	require.NoError(t, err)
	resp.Body.Close()

	assert.Equal(t, "/api/coordinador/grupos", gotPath)
}

func TestDo_QueryParams(t *testing.T) {
	var gotRawQuery string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotRawQuery = r.URL.RawQuery
		w.WriteHeader(http.StatusOK)
	}))
	t.Cleanup(srv.Close)

	c := NewClient(srv.URL, nil)
	q := url.Values{}
	q.Set("id_periodo_academico", "7")
	q.Set("dia_semana", "1")

	resp, err := c.Do(context.Background(), http.MethodGet, "/coordinador-infra/salones/3/ocupacion", q, nil)
	require.NoError(t, err)
	resp.Body.Close()

	parsed, err := url.ParseQuery(gotRawQuery)
	require.NoError(t, err)
	assert.Equal(t, "7", parsed.Get("id_periodo_academico"))
	assert.Equal(t, "1", parsed.Get("dia_semana"))
}

func TestDo_JSONBody(t *testing.T) {
	var (
		gotContentType string
		gotBody        []byte
	)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotContentType = r.Header.Get("Content-Type")
		gotBody, _ = io.ReadAll(r.Body)
		w.WriteHeader(http.StatusOK)
	}))
	t.Cleanup(srv.Close)

	c := NewClient(srv.URL, nil)
	body := map[string]string{"nombre_grupo": "Grupo 10A"}
	resp, err := c.Do(context.Background(), http.MethodPost, "/coordinador/grupos", nil, body)
	require.NoError(t, err)
	resp.Body.Close()

	assert.Equal(t, "application/json", gotContentType)

	var parsed map[string]string
	require.NoError(t, json.Unmarshal(gotBody, &parsed))
	assert.Equal(t, "Grupo 10A", parsed["nombre_grupo"])
}

func TestDo_MultipartBodyPassthrough(t *testing.T) {
	var (
		gotContentType string
		gotBody        []byte
	)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotContentType = r.Header.Get("Content-Type")
		gotBody, _ = io.ReadAll(r.Body)
		w.WriteHeader(http.StatusOK)
	}))
	t.Cleanup(srv.Close)

	form := &MultipartForm{}
	form.SetField("nombre", "Ana")
	form.SetFile("hoja_vida", "cv.pdf", []byte("%PDF-1.4 fake"))

	c := NewClient(srv.URL, nil)
	resp, err := c.Do(context.Background(), http.MethodPost, "/coordinador/profesores", nil, form)
	require.NoError(t, err)
	resp.Body.Close()

	mediaType, params, err := mime.ParseMediaType(gotContentType)
	require.NoError(t, err)
	assert.Equal(t, "multipart/form-data", mediaType)

	reader := multipart.NewReader(strings.NewReader(string(gotBody)), params["boundary"])
	mf, err := reader.ReadForm(1 << 20)
	require.NoError(t, err)
	assert.Equal(t, []string{"Ana"}, mf.Value["nombre"])
	require.Len(t, mf.File["hoja_vida"], 1)
	assert.Equal(t, "cv.pdf", mf.File["hoja_vida"][0].Filename)
}

func TestDo_BearerToken(t *testing.T) {
	var gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		w.WriteHeader(http.StatusOK)
	}))
	t.Cleanup(srv.Close)

	c := NewClient(srv.URL, &fakeAuth{token: "my-jwt-token"})
	resp, err := c.Do(context.Background(), http.MethodGet, "/admin/users", nil, nil)
	require.NoError(t, err)
	resp.Body.Close()

	assert.Equal(t, "Bearer my-jwt-token", gotAuth)
}

func TestDo_NoAuth(t *testing.T) {
	var gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		w.WriteHeader(http.StatusOK)
	}))
	t.Cleanup(srv.Close)

	c := NewClient(srv.URL, &fakeAuth{})
	resp, err := c.Do(context.Background(), http.MethodGet, "/auth/login", nil, nil)
	require.NoError(t, err)
	resp.Body.Close()

	assert.Empty(t, gotAuth)
}

func TestDo_ConnectionRefused(t *testing.T) {
	c := NewClient("http://127.0.0.1:1", nil)
	_, err := c.Do(context.Background(), http.MethodGet, "/admin/users", nil, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "execute request")
}

// === error handling ===

func TestJSON_DecodesBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[{"id_grupo": 1, "nombre_grupo": "Grupo 10A"}]`))
	}))
	t.Cleanup(srv.Close)

	c := NewClient(srv.URL, nil)
	var out []map[string]any
	require.NoError(t, c.Get(context.Background(), "/coordinador/grupos", nil, &out))
	require.Len(t, out, 1)
	assert.Equal(t, "Grupo 10A", out[0]["nombre_grupo"])
}

func TestJSON_NonJSONBodyIgnored(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain")
		_, _ = w.Write([]byte("ok"))
	}))
	t.Cleanup(srv.Close)

	c := NewClient(srv.URL, nil)
	var out map[string]any
	require.NoError(t, c.Get(context.Background(), "/health", nil, &out))
	assert.Nil(t, out)
}

func TestJSON_ServerMessagePassthrough(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusConflict)
		_, _ = w.Write([]byte(`{"message":"No se puede desactivar un grupo con estudiantes activos"}`))
	}))
	t.Cleanup(srv.Close)

	c := NewClient(srv.URL, nil)
	err := c.Patch(context.Background(), "/coordinador/grupos/5/desactivar", nil, nil)
	require.Error(t, err)

	var conflict *domain.ConflictError
	require.ErrorAs(t, err, &conflict)
	assert.Equal(t, "No se puede desactivar un grupo con estudiantes activos", conflict.Message)
}

func TestJSON_NotFoundIsTyped(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"message":"Grupo no encontrado"}`))
	}))
	t.Cleanup(srv.Close)

	c := NewClient(srv.URL, nil)
	err := c.Get(context.Background(), "/coordinador/grupos/99", nil, nil)

	var notFound *domain.NotFoundError
	require.ErrorAs(t, err, &notFound)
	assert.Equal(t, "Grupo no encontrado", notFound.Message)
}

func TestJSON_ErrorFieldFallback(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"error":"correo inválido"}`))
	}))
	t.Cleanup(srv.Close)

	c := NewClient(srv.URL, nil)
	err := c.Post(context.Background(), "/admin/users", map[string]string{}, nil)
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, "correo inválido", apiErr.Message)
}

func TestJSON_GenericStatusFallback(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	t.Cleanup(srv.Close)

	c := NewClient(srv.URL, nil)
	err := c.Get(context.Background(), "/admin/users", nil, nil)
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, "Error 500", apiErr.Message)
}

func TestJSON_UnauthorizedTearsDownSession(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	t.Cleanup(srv.Close)

	auth := &fakeAuth{token: "stale"}
	c := NewClient(srv.URL, auth)
	err := c.Get(context.Background(), "/admin/users", nil, nil)
	require.ErrorIs(t, err, ErrSessionExpired)
	assert.True(t, auth.expired, "401 must notify the authorizer")
}

func TestJSON_ForbiddenKeepsSession(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		_, _ = w.Write([]byte(`{"message":"Rol no autorizado"}`))
	}))
	t.Cleanup(srv.Close)

	auth := &fakeAuth{token: "valid"}
	c := NewClient(srv.URL, auth)
	err := c.Get(context.Background(), "/coordinador/grupos", nil, nil)

	var denied *domain.AccessDeniedError
	require.ErrorAs(t, err, &denied)
	assert.Equal(t, "Rol no autorizado", denied.Message)
	assert.False(t, auth.expired, "403 must not clear the session")
	assert.False(t, errors.Is(err, ErrSessionExpired))
}

func TestJSON_UnauthenticatedRejectionIsNotExpiry(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"message":"Credenciales inválidas"}`))
	}))
	t.Cleanup(srv.Close)

	// No token held: the 401 rejects the credentials, not a session.
	auth := &fakeAuth{}
	c := NewClient(srv.URL, auth)
	err := c.Post(context.Background(), "/auth/login", map[string]string{"correo": "x"}, nil)

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusUnauthorized, apiErr.Status)
	assert.Equal(t, "Credenciales inválidas", apiErr.Message)
	assert.False(t, auth.expired, "a 401 without a bearer token must not tear the session down")
	assert.False(t, errors.Is(err, ErrSessionExpired))
}

func TestWithoutAuth_SendsNoBearerAndKeepsSession(t *testing.T) {
	var gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"message":"Credenciales inválidas"}`))
	}))
	t.Cleanup(srv.Close)

	auth := &fakeAuth{token: "token-vigente"}
	c := NewClient(srv.URL, auth)
	err := c.WithoutAuth().Post(context.Background(), "/auth/login", map[string]string{"correo": "x"}, nil)

	require.Error(t, err)
	assert.Empty(t, gotAuth, "login exchange must not carry the held token")
	assert.False(t, auth.expired, "failed login must not expire the held session")
	assert.False(t, errors.Is(err, ErrSessionExpired))
}
