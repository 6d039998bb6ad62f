package ui

import (
	"encoding/base64"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"net/url"
	"sync"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sasce-admin/internal/domain"
)

// fakeAPI is a minimal stand-in for the REST gateway, recording the paths
// it was asked for.
type fakeAPI struct {
	mu    sync.Mutex
	paths []string

	loginStatus int
	usuario     domain.Usuario
	handlers    map[string]http.HandlerFunc
}

func newFakeAPI() *fakeAPI {
	return &fakeAPI{
		loginStatus: http.StatusOK,
		usuario: domain.Usuario{
			IDUsuario:  7,
			Nombre:     "Ana",
			Apellido:   "García",
			Correo:     "ana@colegio.edu",
			IDRol:      domain.RoleAdministrador,
			EstaActivo: true,
		},
		handlers: map[string]http.HandlerFunc{},
	}
}

func (f *fakeAPI) requests(path string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	n := 0
	for _, p := range f.paths {
		if p == path {
			n++
		}
	}
	return n
}

func (f *fakeAPI) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	f.paths = append(f.paths, r.URL.Path)
	f.mu.Unlock()

	if h, ok := f.handlers[r.URL.Path]; ok {
		h(w, r)
		return
	}
	if r.URL.Path == "/auth/login" {
		if f.loginStatus != http.StatusOK {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(f.loginStatus)
			_, _ = w.Write([]byte(`{"message":"Credenciales inválidas"}`))
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{
			"accessToken": "tok-abc",
			"usuario":     f.usuario,
		})
		return
	}
	// Default: empty list for any entity endpoint.
	w.Header().Set("Content-Type", "application/json")
	_, _ = w.Write([]byte("[]"))
}

type testApp struct {
	api    *fakeAPI
	client *http.Client
	url    string
}

func newTestApp(t *testing.T) *testApp {
	t.Helper()

	api := newFakeAPI()
	apiSrv := httptest.NewServer(api)
	t.Cleanup(apiSrv.Close)

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	h := NewHandler(apiSrv.URL, logger, false)
	r := chi.NewRouter()
	MountRoutes(r, h)

	webSrv := httptest.NewServer(r)
	t.Cleanup(webSrv.Close)

	jar, err := cookiejar.New(nil)
	require.NoError(t, err)
	client := &http.Client{
		Jar: jar,
		CheckRedirect: func(*http.Request, []*http.Request) error {
			return http.ErrUseLastResponse
		},
	}

	return &testApp{api: api, client: client, url: webSrv.URL}
}

func (a *testApp) get(t *testing.T, path string) *http.Response {
	t.Helper()
	resp, err := a.client.Get(a.url + path)
	require.NoError(t, err)
	return resp
}

func (a *testApp) postForm(t *testing.T, path string, form url.Values) *http.Response {
	t.Helper()
	form.Set("csrf_token", a.csrfToken(t))
	resp, err := a.client.PostForm(a.url+path, form)
	require.NoError(t, err)
	return resp
}

// csrfToken returns the double-submit cookie value, visiting the login page
// first when the browser has none yet.
func (a *testApp) csrfToken(t *testing.T) string {
	t.Helper()
	u, err := url.Parse(a.url)
	require.NoError(t, err)
	for _, c := range a.client.Jar.Cookies(u) {
		if c.Name == csrfCookieName {
			return c.Value
		}
	}
	resp := a.get(t, "/login")
	_ = resp.Body.Close()
	for _, c := range a.client.Jar.Cookies(u) {
		if c.Name == csrfCookieName {
			return c.Value
		}
	}
	t.Fatal("no CSRF cookie issued")
	return ""
}

func (a *testApp) login(t *testing.T) {
	t.Helper()
	resp := a.postForm(t, "/login", url.Values{
		"correo":   {"ana@colegio.edu"},
		"password": {"secreta"},
	})
	defer resp.Body.Close() //nolint:errcheck
	require.Equal(t, http.StatusSeeOther, resp.StatusCode)
}

func body(t *testing.T, resp *http.Response) string {
	t.Helper()
	defer resp.Body.Close() //nolint:errcheck
	data, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return string(data)
}

func TestLoginFlow(t *testing.T) {
	app := newTestApp(t)

	resp := app.postForm(t, "/login", url.Values{
		"correo":   {"ana@colegio.edu"},
		"password": {"secreta"},
	})
	defer resp.Body.Close() //nolint:errcheck

	require.Equal(t, http.StatusSeeOther, resp.StatusCode)
	// Administrators land on the user module.
	assert.Equal(t, "/usuarios", resp.Header.Get("Location"))

	u, _ := url.Parse(app.url)
	names := map[string]bool{}
	for _, c := range app.client.Jar.Cookies(u) {
		names[c.Name] = true
	}
	assert.True(t, names[tokenCookieName])
	assert.True(t, names[usuarioCookieName])
}

func TestLoginFailureKeepsEmail(t *testing.T) {
	app := newTestApp(t)
	app.api.loginStatus = http.StatusUnauthorized

	resp := app.postForm(t, "/login", url.Values{
		"correo":   {"ana@colegio.edu"},
		"password": {"mala"},
	})

	require.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	html := body(t, resp)
	assert.Contains(t, html, "Credenciales inválidas")
	assert.Contains(t, html, "ana@colegio.edu")
}

func TestAnonymousIsRedirectedToLogin(t *testing.T) {
	app := newTestApp(t)

	resp := app.get(t, "/grupos")
	defer resp.Body.Close() //nolint:errcheck

	require.Equal(t, http.StatusSeeOther, resp.StatusCode)
	assert.Equal(t, "/login", resp.Header.Get("Location"))
}

func TestModuleGuardDeniesWithoutNetworkCall(t *testing.T) {
	app := newTestApp(t)
	app.login(t) // administrator: no access to /grupos

	resp := app.get(t, "/grupos")

	require.Equal(t, http.StatusForbidden, resp.StatusCode)
	assert.Contains(t, body(t, resp), "No tienes permiso")
	assert.Zero(t, app.api.requests("/coordinador/grupos"), "guard must not touch the API")
}

func TestExpiredTokenTearsDownSession(t *testing.T) {
	app := newTestApp(t)
	app.login(t)
	app.api.handlers["/admin/users"] = func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}

	resp := app.get(t, "/usuarios")
	defer resp.Body.Close() //nolint:errcheck

	require.Equal(t, http.StatusSeeOther, resp.StatusCode)
	assert.Equal(t, "/login?expirada=1", resp.Header.Get("Location"))

	// The session is gone: the next guarded request goes back to login.
	next := app.get(t, "/usuarios")
	defer next.Body.Close() //nolint:errcheck
	assert.Equal(t, http.StatusSeeOther, next.StatusCode)
	assert.Equal(t, "/login", next.Header.Get("Location"))
}

func TestSessionRestoredFromCookiesAfterRestart(t *testing.T) {
	app := newTestApp(t)

	// Simulate a browser that logged in before the server restarted: valid
	// cookies, empty session registry.
	usuario := domain.Usuario{
		IDUsuario:  7,
		Nombre:     "Ana",
		Apellido:   "García",
		Correo:     "ana@colegio.edu",
		IDRol:      domain.RoleAdministrador,
		EstaActivo: true,
	}
	data, err := json.Marshal(usuario)
	require.NoError(t, err)
	u, _ := url.Parse(app.url)
	app.client.Jar.SetCookies(u, []*http.Cookie{
		{Name: tokenCookieName, Value: "tok-resurrect"},
		{Name: usuarioCookieName, Value: base64.RawURLEncoding.EncodeToString(data)},
	})

	resp := app.get(t, "/usuarios")

	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, body(t, resp), "Gestión de Usuarios")
	assert.Equal(t, 1, app.api.requests("/admin/users"))
}

func TestLogoutClearsSession(t *testing.T) {
	app := newTestApp(t)
	app.login(t)

	resp := app.postForm(t, "/logout", url.Values{})
	defer resp.Body.Close() //nolint:errcheck
	require.Equal(t, http.StatusSeeOther, resp.StatusCode)
	assert.Equal(t, "/login", resp.Header.Get("Location"))

	next := app.get(t, "/usuarios")
	defer next.Body.Close() //nolint:errcheck
	assert.Equal(t, http.StatusSeeOther, next.StatusCode)
}

func TestReadUsuarioCookieRejectsGarbage(t *testing.T) {
	r := httptest.NewRequest(http.MethodGet, "/", nil)
	r.AddCookie(&http.Cookie{Name: usuarioCookieName, Value: "no-es-base64!!"})
	assert.Nil(t, readUsuarioCookie(r))

	r = httptest.NewRequest(http.MethodGet, "/", nil)
	r.AddCookie(&http.Cookie{
		Name:  usuarioCookieName,
		Value: base64.RawURLEncoding.EncodeToString([]byte(`{"id_usuario":0}`)),
	})
	assert.Nil(t, readUsuarioCookie(r))
}
