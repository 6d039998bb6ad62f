package ui

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"golang.org/x/sync/errgroup"

	"sasce-admin/internal/authz"
	"sasce-admin/internal/controller"
	"sasce-admin/internal/domain"
)

// Number of resource rows rendered on the room form.
const salonRecursoRows = 5

// SalonesPage renders the room module according to the screen's mode. The
// form needs two reference lists, fetched concurrently.
func (h *Handler) SalonesPage(w http.ResponseWriter, r *http.Request) {
	ws := sessionFromContext(r.Context())
	scr := ws.salones
	usuario := ws.store.CurrentUser()

	switch scr.Mode() {
	case controller.Creating:
		var (
			edificios []domain.Edificio
			tipos     []domain.TipoRecurso
		)
		g, ctx := errgroup.WithContext(r.Context())
		g.Go(func() error {
			var err error
			edificios, err = ws.services.Salones.Edificios(ctx)
			return err
		})
		g.Go(func() error {
			var err error
			tipos, err = ws.services.Salones.TiposRecurso(ctx)
			return err
		})
		if err := g.Wait(); sessionExpired(err) {
			h.expireSession(w, r)
			return
		}
		renderHTML(w, http.StatusOK, salonFormPage(usuario, scr, edificios, tipos, csrfField(r)))
	case controller.Viewing:
		tipos, err := ws.services.Salones.TiposRecurso(r.Context())
		if sessionExpired(err) {
			h.expireSession(w, r)
			return
		}
		renderHTML(w, http.StatusOK, salonDetailPage(usuario, scr, tipos, csrfField(r)))
	default:
		if err := scr.Refresh(r.Context()); sessionExpired(err) {
			h.expireSession(w, r)
			return
		}
		renderHTML(w, http.StatusOK, salonListPage(usuario, scr, csrfField(r)))
	}
}

// SalonesNew opens the blank room form.
func (h *Handler) SalonesNew(w http.ResponseWriter, r *http.Request) {
	sessionFromContext(r.Context()).salones.BeginCreate()
	redirectModule(w, r, authz.ModuleSalones)
}

// SalonesCreate submits the room form, dropping resource rows that were
// left empty.
func (h *Handler) SalonesCreate(w http.ResponseWriter, r *http.Request) {
	ws := sessionFromContext(r.Context())
	if err := r.ParseForm(); err != nil {
		redirectModule(w, r, authz.ModuleSalones)
		return
	}
	ws.salones.SetDraft(salonDraftFromForm(r.Form))
	_, _ = h.actionOutcome(w, r, authz.ModuleSalones, ws.salones.SubmitCreate(r.Context()))
}

// SalonesView shows one room's detail, resources included.
func (h *Handler) SalonesView(w http.ResponseWriter, r *http.Request) {
	ws := sessionFromContext(r.Context())
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		redirectModule(w, r, authz.ModuleSalones)
		return
	}
	if err := ws.salones.View(r.Context(), id); err != nil {
		if sessionExpired(err) {
			h.expireSession(w, r)
			return
		}
		redirectModule(w, r, authz.ModuleSalones)
		return
	}
	redirectModule(w, r, authz.ModuleSalones)
}

// SalonesCancel abandons the room form.
func (h *Handler) SalonesCancel(w http.ResponseWriter, r *http.Request) {
	ws := sessionFromContext(r.Context())
	_ = r.ParseForm()
	err := ws.salones.Cancel(formBool(r.Form, "confirmado"))
	if _, handled := h.actionOutcome(w, r, authz.ModuleSalones, err); !handled {
		renderHTML(w, http.StatusOK, confirmPage(ws.store.CurrentUser(), authz.ModuleSalones,
			"Cancelar registro",
			"Hay cambios sin guardar. ¿Deseas descartarlos?",
			"/salones/cancelar", "/salones", csrfField(r)))
	}
}

// salonDraftFromForm maps the posted room form onto the API payload.
// Resource rows are numbered; a row without a resource type is skipped.
func salonDraftFromForm(form map[string][]string) domain.SalonRequest {
	recursos := make([]domain.RecursoSalon, 0, salonRecursoRows)
	for i := 1; i <= salonRecursoRows; i++ {
		n := strconv.Itoa(i)
		tipo := formInt(form, "recurso_tipo_"+n)
		if tipo <= 0 {
			continue
		}
		recursos = append(recursos, domain.RecursoSalon{
			IDTipoRecurso: tipo,
			Cantidad:      formInt(form, "recurso_cantidad_"+n),
			Notas:         formString(form, "recurso_notas_"+n),
		})
	}

	return domain.SalonRequest{
		CodigoSalon:          formString(form, "codigo_salon"),
		NombreSalon:          formOptionalString(form, "nombre_salon"),
		IDEdificio:           formInt(form, "id_edificio"),
		NumeroPiso:           formOptionalInt(form, "numero_piso"),
		Capacidad:            formInt(form, "capacidad"),
		DescripcionUbicacion: formOptionalString(form, "descripcion_ubicacion"),
		Recursos:             recursos,
	}
}
