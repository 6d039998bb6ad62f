package ui

import (
	"io"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"sasce-admin/internal/authz"
	"sasce-admin/internal/controller"
	"sasce-admin/internal/domain"
)

// ProfesoresPage renders the teacher module according to the screen's mode.
func (h *Handler) ProfesoresPage(w http.ResponseWriter, r *http.Request) {
	ws := sessionFromContext(r.Context())
	scr := ws.profesores
	usuario := ws.store.CurrentUser()

	switch scr.Mode() {
	case controller.Creating, controller.Editing:
		renderHTML(w, http.StatusOK, profesorFormPage(usuario, scr, csrfField(r)))
	case controller.Viewing:
		renderHTML(w, http.StatusOK, profesorDetailPage(usuario, scr, csrfField(r)))
	default:
		if err := scr.Refresh(r.Context()); sessionExpired(err) {
			h.expireSession(w, r)
			return
		}
		renderHTML(w, http.StatusOK, profesorListPage(usuario, scr, csrfField(r)))
	}
}

// ProfesoresNew opens the blank teacher form.
func (h *Handler) ProfesoresNew(w http.ResponseWriter, r *http.Request) {
	sessionFromContext(r.Context()).profesores.BeginCreate()
	redirectModule(w, r, authz.ModuleProfesores)
}

// ProfesoresCreate submits the creation form, CV included.
func (h *Handler) ProfesoresCreate(w http.ResponseWriter, r *http.Request) {
	ws := sessionFromContext(r.Context())
	form, err := profesorFormFromRequest(r)
	if err != nil {
		redirectModule(w, r, authz.ModuleProfesores)
		return
	}
	ws.profesores.SetDraft(form)
	_, _ = h.actionOutcome(w, r, authz.ModuleProfesores, ws.profesores.SubmitCreate(r.Context()))
}

// ProfesoresView fetches one teacher and shows the detail.
func (h *Handler) ProfesoresView(w http.ResponseWriter, r *http.Request) {
	ws := sessionFromContext(r.Context())
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		redirectModule(w, r, authz.ModuleProfesores)
		return
	}
	if err := ws.profesores.View(r.Context(), id); err != nil {
		if sessionExpired(err) {
			h.expireSession(w, r)
			return
		}
		redirectModule(w, r, authz.ModuleProfesores)
		return
	}
	renderHTML(w, http.StatusOK, profesorDetailPage(ws.store.CurrentUser(), ws.profesores, csrfField(r)))
}

// ProfesoresEdit switches to the edit form. Refused when the linked account
// is inactive.
func (h *Handler) ProfesoresEdit(w http.ResponseWriter, r *http.Request) {
	_ = sessionFromContext(r.Context()).profesores.BeginEdit()
	redirectModule(w, r, authz.ModuleProfesores)
}

// ProfesoresUpdate submits the edit form. An empty file input keeps the
// stored CV.
func (h *Handler) ProfesoresUpdate(w http.ResponseWriter, r *http.Request) {
	ws := sessionFromContext(r.Context())
	form, err := profesorFormFromRequest(r)
	if err != nil {
		redirectModule(w, r, authz.ModuleProfesores)
		return
	}
	ws.profesores.SetDraft(form)
	_, _ = h.actionOutcome(w, r, authz.ModuleProfesores, ws.profesores.SubmitUpdate(r.Context()))
}

// ProfesoresCancel abandons the current form.
func (h *Handler) ProfesoresCancel(w http.ResponseWriter, r *http.Request) {
	ws := sessionFromContext(r.Context())
	_ = r.ParseForm()
	err := ws.profesores.Cancel(formBool(r.Form, "confirmado"))
	if _, handled := h.actionOutcome(w, r, authz.ModuleProfesores, err); !handled {
		renderHTML(w, http.StatusOK, confirmPage(ws.store.CurrentUser(), authz.ModuleProfesores,
			"Cancelar registro",
			"Hay cambios sin guardar. ¿Deseas descartarlos?",
			"/profesores/cancelar", "/profesores", csrfField(r)))
	}
}

// ProfesoresDeactivate soft-deletes a teacher record after confirmation.
func (h *Handler) ProfesoresDeactivate(w http.ResponseWriter, r *http.Request) {
	ws := sessionFromContext(r.Context())
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		redirectModule(w, r, authz.ModuleProfesores)
		return
	}
	_ = r.ParseForm()
	label := formString(r.Form, "etiqueta")

	actionErr := ws.profesores.Deactivate(r.Context(), id, label, formBool(r.Form, "confirmado"), 0)
	if confirm, handled := h.actionOutcome(w, r, authz.ModuleProfesores, actionErr); !handled {
		renderHTML(w, http.StatusOK, confirmPage(ws.store.CurrentUser(), authz.ModuleProfesores,
			"Desactivar profesor",
			"¿Desactivar el registro de \""+confirm.Label+"\"?",
			"/profesores/"+strconv.Itoa(id)+"/desactivar", "/profesores", csrfField(r),
			hiddenField("etiqueta", label)))
	}
}

// profesorFormFromRequest parses the multipart teacher form, reading the
// hoja de vida bytes when a file was attached.
func profesorFormFromRequest(r *http.Request) (domain.ProfesorForm, error) {
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		return domain.ProfesorForm{}, err
	}
	form := domain.ProfesorForm{
		NumeroIdentificacion: formString(r.Form, "numero_identificacion"),
		Nombre:               formString(r.Form, "nombre"),
		Apellido:             formString(r.Form, "apellido"),
		Correo:               formString(r.Form, "correo"),
		Biografia:            formString(r.Form, "biografia"),
		Cualificaciones:      formString(r.Form, "cualificaciones"),
		Especialidades:       formCSV(r.Form, "especialidades"),
	}

	file, header, err := r.FormFile("hoja_vida")
	if err == http.ErrMissingFile {
		return form, nil
	}
	if err != nil {
		return form, nil
	}
	defer file.Close() //nolint:errcheck
	data, err := io.ReadAll(io.LimitReader(file, maxUploadBytes))
	if err != nil {
		return domain.ProfesorForm{}, err
	}
	form.HojaVida = data
	form.HojaVidaNombre = header.Filename
	return form, nil
}
