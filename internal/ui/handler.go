// Package ui is the server-rendered browser surface. Pages are gomponents
// trees served over chi; per-login screen state lives server-side so the
// browser only ever sees plain HTML forms.
package ui

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"sync"
	"time"

	gomponents "maragu.dev/gomponents"

	"sasce-admin/internal/apiclient"
	"sasce-admin/internal/authz"
	"sasce-admin/internal/controller"
	"sasce-admin/internal/domain"
	"sasce-admin/internal/services"
	"sasce-admin/internal/session"
)

const (
	tokenCookieName   = "sasce_token"
	usuarioCookieName = "sasce_usuario"
	sessionTTL        = 24 * time.Hour
)

// Handler serves the web front end. It owns the registry of live login
// sessions; each session carries its own API client and screen state.
type Handler struct {
	APIBaseURL    string
	Logger        *slog.Logger
	SecureCookies bool

	mu       sync.Mutex
	sessions map[string]*webSession
}

// NewHandler creates the web handler.
func NewHandler(apiBaseURL string, logger *slog.Logger, secureCookies bool) *Handler {
	return &Handler{
		APIBaseURL:    apiBaseURL,
		Logger:        logger,
		SecureCookies: secureCookies,
		sessions:      make(map[string]*webSession),
	}
}

// webSession is the server-side state for one logged-in browser: the session
// store (which doubles as the API authorizer), the entity services, and one
// screen per module, mirroring the per-screen state a SPA would hold.
type webSession struct {
	store    *session.Store
	services *services.Bundle

	usuarios       *controller.Screen[domain.Usuario, domain.CreateUsuarioRequest]
	grupos         *controller.Screen[domain.Grupo, domain.GrupoRequest]
	profesores     *controller.Screen[domain.Profesor, domain.ProfesorForm]
	salones        *controller.Screen[domain.Salon, domain.SalonRequest]
	disponibilidad *controller.Screen[domain.Ocupacion, domain.OcupacionRequest]
	scope          *controller.OcupacionScope
}

// newWebSession wires the per-session object graph: store -> client ->
// services -> screens. The store is the client's Authorizer, so a 401 from
// any call flips the store to Anonymous and the next guard check logs the
// browser out.
func (h *Handler) newWebSession() *webSession {
	client := apiclient.NewClient(h.APIBaseURL, nil)
	bundle := services.NewBundle(client)
	store := session.NewStore(bundle.Auth, nil)
	// The store authorizes the client's requests; wired after construction
	// because each needs the other.
	client.Auth = store

	ws := &webSession{store: store, services: bundle}
	ws.usuarios = controller.UsuarioScreen(bundle.Usuarios)
	ws.grupos = controller.GrupoScreen(bundle.Grupos)
	ws.profesores = controller.ProfesorScreen(bundle.Profesores)
	ws.salones = controller.SalonScreen(bundle.Salones)
	ws.disponibilidad, ws.scope = controller.DisponibilidadScreen(bundle.Disponibilidad)
	return ws
}

func (h *Handler) putSession(token string, ws *webSession) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.sessions[token] = ws
}

func (h *Handler) getSession(token string) *webSession {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.sessions[token]
}

func (h *Handler) dropSession(token string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	delete(h.sessions, token)
}

type sessionContextKey struct{}

// currentSession resolves the browser's session from its cookies. A valid
// token with no registry entry (server restart) is restored from the user
// cookie. Returns nil when the browser is not logged in.
func (h *Handler) currentSession(r *http.Request) *webSession {
	token := readCookie(r, tokenCookieName)
	if token == "" {
		return nil
	}
	if ws := h.getSession(token); ws != nil {
		if !ws.store.IsAuthenticated() {
			h.dropSession(token)
			return nil
		}
		return ws
	}

	usuario := readUsuarioCookie(r)
	if usuario == nil {
		return nil
	}
	ws := h.newWebSession()
	ws.store.Restore(token, usuario)
	h.putSession(token, ws)
	return ws
}

// RequireSession guards the module routes: anonymous browsers are sent to
// the login page, and the resolved session is stashed in the context.
func (h *Handler) RequireSession(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ws := h.currentSession(r)
		if ws == nil {
			h.clearSessionCookies(w)
			http.Redirect(w, r, "/login", http.StatusSeeOther)
			return
		}
		ctx := context.WithValue(r.Context(), sessionContextKey{}, ws)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func sessionFromContext(ctx context.Context) *webSession {
	ws, _ := ctx.Value(sessionContextKey{}).(*webSession)
	return ws
}

// setSessionCookies persists the login across requests: the bearer token and
// the serialized user record, set and cleared together.
func (h *Handler) setSessionCookies(w http.ResponseWriter, token string, usuario *domain.Usuario) {
	expires := time.Now().Add(sessionTTL)
	http.SetCookie(w, &http.Cookie{
		Name:     tokenCookieName,
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		Secure:   h.SecureCookies,
		SameSite: http.SameSiteLaxMode,
		Expires:  expires,
	})
	http.SetCookie(w, &http.Cookie{
		Name:     usuarioCookieName,
		Value:    encodeUsuarioCookie(usuario),
		Path:     "/",
		HttpOnly: true,
		Secure:   h.SecureCookies,
		SameSite: http.SameSiteLaxMode,
		Expires:  expires,
	})
}

func (h *Handler) clearSessionCookies(w http.ResponseWriter) {
	for _, name := range []string{tokenCookieName, usuarioCookieName} {
		http.SetCookie(w, &http.Cookie{
			Name:     name,
			Path:     "/",
			HttpOnly: true,
			Secure:   h.SecureCookies,
			SameSite: http.SameSiteLaxMode,
			MaxAge:   -1,
		})
	}
}

// expireSession tears down a login whose token the server rejected: registry
// entry, cookies, then back to the login page.
func (h *Handler) expireSession(w http.ResponseWriter, r *http.Request) {
	if token := readCookie(r, tokenCookieName); token != "" {
		h.dropSession(token)
	}
	h.clearSessionCookies(w)
	http.Redirect(w, r, "/login?expirada=1", http.StatusSeeOther)
}

// sessionExpired reports whether err means the API rejected our token.
func sessionExpired(err error) bool {
	return errors.Is(err, apiclient.ErrSessionExpired)
}

func readCookie(r *http.Request, name string) string {
	cookie, err := r.Cookie(name)
	if err != nil {
		return ""
	}
	return cookie.Value
}

func encodeUsuarioCookie(usuario *domain.Usuario) string {
	data, err := json.Marshal(usuario)
	if err != nil {
		return ""
	}
	return base64.RawURLEncoding.EncodeToString(data)
}

func readUsuarioCookie(r *http.Request) *domain.Usuario {
	raw := readCookie(r, usuarioCookieName)
	if raw == "" {
		return nil
	}
	data, err := base64.RawURLEncoding.DecodeString(raw)
	if err != nil {
		return nil
	}
	var usuario domain.Usuario
	if err := json.Unmarshal(data, &usuario); err != nil || usuario.IDUsuario == 0 {
		return nil
	}
	return &usuario
}

// guardModule enforces the role registry before any handler work: a browser
// opening a module outside its role gets the fixed access-denied page and
// the network is never touched.
func (h *Handler) guardModule(moduleID string, handler http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ws := sessionFromContext(r.Context())
		if ws == nil {
			http.Redirect(w, r, "/login", http.StatusSeeOther)
			return
		}
		if !authz.CanAccess(ws.store.Role(), moduleID) {
			renderHTML(w, http.StatusForbidden, accessDeniedPage(ws.store.CurrentUser()))
			return
		}
		handler(w, r)
	}
}

func renderHTML(w http.ResponseWriter, status int, node gomponents.Node) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_ = node.Render(w)
}
