package ui

import (
	"net/http"

	. "maragu.dev/gomponents"
	. "maragu.dev/gomponents/html"

	"sasce-admin/internal/authz"
)

// LoginPage renders the login form. An already-authenticated browser is
// sent straight to its initial module.
func (h *Handler) LoginPage(w http.ResponseWriter, r *http.Request) {
	if ws := h.currentSession(r); ws != nil {
		http.Redirect(w, r, authz.InitialModule(ws.store.Role()).Path, http.StatusSeeOther)
		return
	}
	msg := ""
	if r.URL.Query().Get("expirada") != "" {
		msg = "La sesión ha expirado. Inicia sesión de nuevo."
	}
	renderHTML(w, http.StatusOK, loginPage(msg, "", csrfField(r)))
}

// LoginSubmit exchanges the form credentials for a session. Failure re-renders
// the form with the server's message and the typed email kept.
func (h *Handler) LoginSubmit(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		renderHTML(w, http.StatusBadRequest, loginPage("Formulario inválido.", "", csrfField(r)))
		return
	}
	correo := formString(r.Form, "correo")
	password := r.Form.Get("password")
	if correo == "" || password == "" {
		renderHTML(w, http.StatusBadRequest, loginPage("Correo y contraseña son obligatorios.", correo, csrfField(r)))
		return
	}

	ws := h.newWebSession()
	usuario, err := ws.store.Login(r.Context(), correo, password)
	if err != nil {
		h.Logger.Info("login failed", "correo", correo, "error", err)
		renderHTML(w, http.StatusUnauthorized, loginPage(loginErrorMessage(err), correo, csrfField(r)))
		return
	}

	token := ws.store.Token()
	h.putSession(token, ws)
	h.setSessionCookies(w, token, usuario)
	h.Logger.Info("login ok", "usuario", usuario.Correo, "rol", usuario.IDRol.String())
	http.Redirect(w, r, authz.InitialModule(usuario.IDRol).Path, http.StatusSeeOther)
}

// Logout discards the session. Local only: the token is simply forgotten.
func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	if token := readCookie(r, tokenCookieName); token != "" {
		if ws := h.getSession(token); ws != nil {
			ws.store.Logout()
		}
		h.dropSession(token)
	}
	h.clearSessionCookies(w)
	http.Redirect(w, r, "/login", http.StatusSeeOther)
}

// loginErrorMessage reduces a login failure to one user-facing message.
// The API's own message (wrong credentials, inactive account) passes
// through; transport errors get a generic line.
func loginErrorMessage(err error) string {
	if sessionExpired(err) {
		return "Credenciales inválidas."
	}
	msg := err.Error()
	if len(msg) > 200 {
		return "No se pudo iniciar sesión. Intenta de nuevo."
	}
	return msg
}

func loginPage(errMsg, correo string, csrf Node) Node {
	content := []Node{
		H1(Text("GHP-SASCE")),
		P(Class("muted"), Text("Sistema de asignación de salones y control de espacios")),
		Form(
			Method("post"),
			Action("/login"),
			Class("login-form"),
			csrf,
			Label(For("correo"), Text("Correo electrónico")),
			Input(
				Type("email"),
				ID("correo"),
				Name("correo"),
				Value(correo),
				Placeholder("usuario@institucion.edu"),
				Required(),
				AutoFocus(),
			),
			Label(For("password"), Text("Contraseña")),
			Input(
				Type("password"),
				ID("password"),
				Name("password"),
				Required(),
			),
			Button(
				Type("submit"),
				Class("btn btn-primary"),
				Text("Iniciar sesión"),
			),
		),
	}
	if errMsg != "" {
		content = append([]Node{P(Class("flash flash-error"), Text(errMsg))}, content...)
	}

	return HTML(
		Lang("es"),
		Head(
			Meta(Charset("utf-8")),
			Meta(Name("viewport"), Content("width=device-width, initial-scale=1")),
			TitleEl(Text("Iniciar sesión | GHP-SASCE")),
			Link(Rel("icon"), Href("data:,")),
			Link(Rel("stylesheet"), Href("/static/app.css")),
		),
		Body(
			Class("login-body"),
			Main(Class("login-wrap"), Group(content)),
		),
	)
}
