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

// DisponibilidadPage renders the availability module. The room and the
// list filters come from the query string and stick on the session scope,
// so redirects after actions land on the same view.
func (h *Handler) DisponibilidadPage(w http.ResponseWriter, r *http.Request) {
	ws := sessionFromContext(r.Context())
	scr := ws.disponibilidad
	usuario := ws.store.CurrentUser()

	query := r.URL.Query()
	if query.Has("salon") || query.Has("periodo") || query.Has("dia") {
		ws.scope.SetSalon(formInt(query, "salon"))
		ws.scope.SetFiltro(domain.OcupacionFiltro{
			IDPeriodoAcademico: controller.ParseHoraFilter(query.Get("periodo")),
			DiaSemana:          controller.ParseHoraFilter(query.Get("dia")),
		})
		// Re-selecting the view discards any pending form draft.
		_ = scr.Cancel(true)
	}

	var (
		salones  []domain.Salon
		periodos []domain.PeriodoAcademico
	)
	g, ctx := errgroup.WithContext(r.Context())
	g.Go(func() error {
		var err error
		salones, err = ws.services.Salones.List(ctx)
		return err
	})
	g.Go(func() error {
		var err error
		periodos, err = ws.services.Salones.PeriodosAcademicos(ctx)
		return err
	})
	if scr.Mode() != controller.Creating {
		// A failed create keeps the form's draft and error; refreshing
		// here would clear them.
		g.Go(func() error {
			return scr.Refresh(ctx)
		})
	}
	if err := g.Wait(); sessionExpired(err) {
		h.expireSession(w, r)
		return
	}

	renderHTML(w, http.StatusOK, disponibilidadPage(usuario, scr, ws.scope, salones, periodos, csrfField(r)))
}

// DisponibilidadCreate blocks a weekly time window for the selected room.
func (h *Handler) DisponibilidadCreate(w http.ResponseWriter, r *http.Request) {
	ws := sessionFromContext(r.Context())
	if err := r.ParseForm(); err != nil {
		redirectModule(w, r, authz.ModuleDisponibilidad)
		return
	}
	if salon := formInt(r.Form, "id_salon"); salon > 0 {
		ws.scope.SetSalon(salon)
	}
	ws.disponibilidad.BeginCreate()
	ws.disponibilidad.SetDraft(domain.OcupacionRequest{
		IDPeriodoAcademico: formInt(r.Form, "id_periodo_academico"),
		DiaSemana:          formInt(r.Form, "dia_semana"),
		HoraInicio:         formString(r.Form, "hora_inicio"),
		HoraFin:            formString(r.Form, "hora_fin"),
		Motivo:             formString(r.Form, "motivo"),
	})
	_, _ = h.actionOutcome(w, r, authz.ModuleDisponibilidad, ws.disponibilidad.SubmitCreate(r.Context()))
}

// DisponibilidadDelete removes an availability block after confirmation.
func (h *Handler) DisponibilidadDelete(w http.ResponseWriter, r *http.Request) {
	ws := sessionFromContext(r.Context())
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		redirectModule(w, r, authz.ModuleDisponibilidad)
		return
	}
	_ = r.ParseForm()
	label := formString(r.Form, "etiqueta")

	actionErr := ws.disponibilidad.Deactivate(r.Context(), id, label, formBool(r.Form, "confirmado"), 0)
	if confirm, handled := h.actionOutcome(w, r, authz.ModuleDisponibilidad, actionErr); !handled {
		renderHTML(w, http.StatusOK, confirmPage(ws.store.CurrentUser(), authz.ModuleDisponibilidad,
			"Eliminar ocupación",
			"¿Eliminar el bloque \""+confirm.Label+"\"?",
			"/disponibilidad/"+strconv.Itoa(id)+"/eliminar", "/disponibilidad", csrfField(r),
			hiddenField("etiqueta", label)))
	}
}
