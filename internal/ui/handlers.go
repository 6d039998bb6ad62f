package ui

import (
	"net/http"

	. "maragu.dev/gomponents"
	. "maragu.dev/gomponents/html"

	"sasce-admin/internal/authz"
	"sasce-admin/internal/controller"
)

// Home renders one card per module the role can open.
func (h *Handler) Home(w http.ResponseWriter, r *http.Request) {
	ws := sessionFromContext(r.Context())
	usuario := ws.store.CurrentUser()

	var cards []Node
	for _, m := range authz.VisibleModules(ws.store.Role()) {
		if m.ID == authz.ModuleInicio {
			continue
		}
		cards = append(cards, Div(
			Class(cardClass("module-card")),
			H2(Text(m.Label)),
			P(Class(mutedClass()), Text(moduleDescription(m.ID))),
			A(Href(m.Path), Class(primaryButtonClass()), Text("Abrir")),
		))
	}
	if len(cards) == 0 {
		cards = append(cards, emptyStateCard("Tu rol no tiene módulos de gestión asignados."))
	}

	renderHTML(w, http.StatusOK, appPage("Inicio", authz.ModuleInicio, usuario,
		Div(Class("module-grid"), Group(cards)),
	))
}

func moduleDescription(id string) string {
	switch id {
	case authz.ModuleUsuarios:
		return "Cuentas del sistema: registro, activación y desactivación."
	case authz.ModuleGrupos:
		return "Grupos de estudiantes por nivel académico."
	case authz.ModuleProfesores:
		return "Registro de profesores con hoja de vida y especialidades."
	case authz.ModuleSalones:
		return "Salones, edificios y recursos disponibles."
	case authz.ModuleDisponibilidad:
		return "Bloqueos semanales de disponibilidad por salón."
	}
	return ""
}

// redirectModule sends the browser back to the module's GET route, which
// renders whatever mode the screen is now in.
func redirectModule(w http.ResponseWriter, r *http.Request, moduleID string) {
	m, _ := authz.Lookup(moduleID)
	http.Redirect(w, r, m.Path, http.StatusSeeOther)
}

// actionOutcome applies the common post-action policy: an expired session
// tears the login down; a confirmation request is reported to the caller to
// render its prompt; anything else (success or error) redirects back to the
// module page, where the screen's own messages render. Returns the pending
// confirmation, if any.
func (h *Handler) actionOutcome(w http.ResponseWriter, r *http.Request, moduleID string, err error) (*controller.ConfirmRequiredError, bool) {
	if err == nil {
		redirectModule(w, r, moduleID)
		return nil, true
	}
	if sessionExpired(err) {
		h.expireSession(w, r)
		return nil, true
	}
	if confirm, ok := err.(*controller.ConfirmRequiredError); ok {
		return confirm, false
	}
	redirectModule(w, r, moduleID)
	return nil, true
}
