package ui

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"sasce-admin/internal/authz"
	"sasce-admin/internal/controller"
	"sasce-admin/internal/domain"
)

// GruposPage renders the group module according to the screen's mode.
func (h *Handler) GruposPage(w http.ResponseWriter, r *http.Request) {
	ws := sessionFromContext(r.Context())
	scr := ws.grupos
	usuario := ws.store.CurrentUser()

	switch scr.Mode() {
	case controller.Creating, controller.Editing:
		niveles, err := ws.services.Grupos.NivelesAcademicos(r.Context())
		if sessionExpired(err) {
			h.expireSession(w, r)
			return
		}
		renderHTML(w, http.StatusOK, grupoFormPage(usuario, scr, niveles, csrfField(r)))
	case controller.Viewing:
		renderHTML(w, http.StatusOK, grupoDetailPage(usuario, scr, csrfField(r)))
	default:
		if err := scr.Refresh(r.Context()); sessionExpired(err) {
			h.expireSession(w, r)
			return
		}
		renderHTML(w, http.StatusOK, grupoListPage(usuario, scr, csrfField(r)))
	}
}

// GruposNew opens the blank group form.
func (h *Handler) GruposNew(w http.ResponseWriter, r *http.Request) {
	sessionFromContext(r.Context()).grupos.BeginCreate()
	redirectModule(w, r, authz.ModuleGrupos)
}

// GruposCreate submits the creation form.
func (h *Handler) GruposCreate(w http.ResponseWriter, r *http.Request) {
	ws := sessionFromContext(r.Context())
	if err := r.ParseForm(); err != nil {
		redirectModule(w, r, authz.ModuleGrupos)
		return
	}
	ws.grupos.SetDraft(grupoDraftFromForm(r.Form))
	_, _ = h.actionOutcome(w, r, authz.ModuleGrupos, ws.grupos.SubmitCreate(r.Context()))
}

// GruposView fetches one group and shows its detail.
func (h *Handler) GruposView(w http.ResponseWriter, r *http.Request) {
	ws := sessionFromContext(r.Context())
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		redirectModule(w, r, authz.ModuleGrupos)
		return
	}
	if err := ws.grupos.View(r.Context(), id); err != nil {
		if sessionExpired(err) {
			h.expireSession(w, r)
			return
		}
		// Fetch failure already put the screen back in Listing with the
		// message set.
		redirectModule(w, r, authz.ModuleGrupos)
		return
	}
	renderHTML(w, http.StatusOK, grupoDetailPage(ws.store.CurrentUser(), ws.grupos, csrfField(r)))
}

// GruposEdit switches the detail view to the edit form.
func (h *Handler) GruposEdit(w http.ResponseWriter, r *http.Request) {
	_ = sessionFromContext(r.Context()).grupos.BeginEdit()
	redirectModule(w, r, authz.ModuleGrupos)
}

// GruposUpdate submits the edit form.
func (h *Handler) GruposUpdate(w http.ResponseWriter, r *http.Request) {
	ws := sessionFromContext(r.Context())
	if err := r.ParseForm(); err != nil {
		redirectModule(w, r, authz.ModuleGrupos)
		return
	}
	ws.grupos.SetDraft(grupoDraftFromForm(r.Form))
	_, _ = h.actionOutcome(w, r, authz.ModuleGrupos, ws.grupos.SubmitUpdate(r.Context()))
}

// GruposCancel abandons the current form, asking for confirmation when a
// draft would be lost.
func (h *Handler) GruposCancel(w http.ResponseWriter, r *http.Request) {
	ws := sessionFromContext(r.Context())
	_ = r.ParseForm()
	err := ws.grupos.Cancel(formBool(r.Form, "confirmado"))
	if _, handled := h.actionOutcome(w, r, authz.ModuleGrupos, err); !handled {
		renderHTML(w, http.StatusOK, confirmPage(ws.store.CurrentUser(), authz.ModuleGrupos,
			"Cancelar registro",
			"Hay cambios sin guardar. ¿Deseas descartarlos?",
			"/grupos/cancelar", "/grupos", csrfField(r)))
	}
}

// GruposDeactivate soft-deletes a group after confirmation. Irreversible:
// groups have no reactivation.
func (h *Handler) GruposDeactivate(w http.ResponseWriter, r *http.Request) {
	ws := sessionFromContext(r.Context())
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		redirectModule(w, r, authz.ModuleGrupos)
		return
	}
	_ = r.ParseForm()
	label := formString(r.Form, "etiqueta")

	actionErr := ws.grupos.Deactivate(r.Context(), id, label, formBool(r.Form, "confirmado"), 0)
	if confirm, handled := h.actionOutcome(w, r, authz.ModuleGrupos, actionErr); !handled {
		renderHTML(w, http.StatusOK, confirmPage(ws.store.CurrentUser(), authz.ModuleGrupos,
			"Desactivar grupo",
			"¿Desactivar el grupo \""+confirm.Label+"\"? Esta acción no se puede deshacer.",
			"/grupos/"+strconv.Itoa(id)+"/desactivar", "/grupos", csrfField(r),
			hiddenField("etiqueta", label)))
	}
}

// grupoDraftFromForm maps the posted form onto the API payload. The empty
// optional field travels as null, not "".
func grupoDraftFromForm(form map[string][]string) domain.GrupoRequest {
	return domain.GrupoRequest{
		NombreGrupo:          formString(form, "nombre_grupo"),
		IDNivelAcademico:     formInt(form, "id_nivel_academico"),
		CantidadEstudiantes:  formInt(form, "cantidad_estudiantes"),
		RequisitosEspeciales: formOptionalString(form, "requisitos_especiales"),
	}
}
