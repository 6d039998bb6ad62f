package ui

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"sasce-admin/internal/authz"
	"sasce-admin/internal/controller"
	"sasce-admin/internal/domain"
)

// UsuariosPage renders the user module: the account table, or the creation
// form when the screen is in Creating mode.
func (h *Handler) UsuariosPage(w http.ResponseWriter, r *http.Request) {
	ws := sessionFromContext(r.Context())
	scr := ws.usuarios
	usuario := ws.store.CurrentUser()

	if scr.Mode() == controller.Creating {
		renderHTML(w, http.StatusOK, usuarioFormPage(usuario, scr, csrfField(r)))
		return
	}
	if err := scr.Refresh(r.Context()); sessionExpired(err) {
		h.expireSession(w, r)
		return
	}
	renderHTML(w, http.StatusOK, usuarioListPage(usuario, scr, csrfField(r)))
}

// UsuariosNew opens the blank account form.
func (h *Handler) UsuariosNew(w http.ResponseWriter, r *http.Request) {
	sessionFromContext(r.Context()).usuarios.BeginCreate()
	redirectModule(w, r, authz.ModuleUsuarios)
}

// UsuariosCreate submits the account creation form.
func (h *Handler) UsuariosCreate(w http.ResponseWriter, r *http.Request) {
	ws := sessionFromContext(r.Context())
	if err := r.ParseForm(); err != nil {
		redirectModule(w, r, authz.ModuleUsuarios)
		return
	}
	ws.usuarios.SetDraft(domain.CreateUsuarioRequest{
		NombreUsuario: formString(r.Form, "nombre_usuario"),
		Correo:        formString(r.Form, "correo"),
		Password:      r.Form.Get("password"),
		NombreRol:     formString(r.Form, "nombre_rol"),
		Nombre:        formString(r.Form, "nombre"),
		Apellido:      formString(r.Form, "apellido"),
	})
	_, _ = h.actionOutcome(w, r, authz.ModuleUsuarios, ws.usuarios.SubmitCreate(r.Context()))
}

// UsuariosCancel abandons the account form.
func (h *Handler) UsuariosCancel(w http.ResponseWriter, r *http.Request) {
	ws := sessionFromContext(r.Context())
	_ = r.ParseForm()
	err := ws.usuarios.Cancel(formBool(r.Form, "confirmado"))
	if _, handled := h.actionOutcome(w, r, authz.ModuleUsuarios, err); !handled {
		renderHTML(w, http.StatusOK, confirmPage(ws.store.CurrentUser(), authz.ModuleUsuarios,
			"Cancelar registro",
			"Hay cambios sin guardar. ¿Deseas descartarlos?",
			"/usuarios/cancelar", "/usuarios", csrfField(r)))
	}
}

// UsuariosDeactivate disables an account after confirmation. The screen
// rejects self-deactivation locally.
func (h *Handler) UsuariosDeactivate(w http.ResponseWriter, r *http.Request) {
	ws := sessionFromContext(r.Context())
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		redirectModule(w, r, authz.ModuleUsuarios)
		return
	}
	_ = r.ParseForm()
	label := formString(r.Form, "etiqueta")
	currentID := 0
	if u := ws.store.CurrentUser(); u != nil {
		currentID = u.IDUsuario
	}

	actionErr := ws.usuarios.Deactivate(r.Context(), id, label, formBool(r.Form, "confirmado"), currentID)
	if confirm, handled := h.actionOutcome(w, r, authz.ModuleUsuarios, actionErr); !handled {
		renderHTML(w, http.StatusOK, confirmPage(ws.store.CurrentUser(), authz.ModuleUsuarios,
			"Desactivar usuario",
			"¿Desactivar la cuenta de \""+confirm.Label+"\"?",
			"/usuarios/"+strconv.Itoa(id)+"/desactivar", "/usuarios", csrfField(r),
			hiddenField("etiqueta", label)))
	}
}

// UsuariosActivate re-enables a previously deactivated account.
func (h *Handler) UsuariosActivate(w http.ResponseWriter, r *http.Request) {
	ws := sessionFromContext(r.Context())
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		redirectModule(w, r, authz.ModuleUsuarios)
		return
	}
	_, _ = h.actionOutcome(w, r, authz.ModuleUsuarios, ws.usuarios.Activate(r.Context(), id))
}
