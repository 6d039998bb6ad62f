package ui

import (
	"io/fs"
	"net/http"

	"github.com/go-chi/chi/v5"

	"sasce-admin/internal/authz"
	"sasce-admin/internal/ui/assets"
)

// MountRoutes wires the full web surface onto the router: public login
// routes, static assets, and the guarded module routes.
func MountRoutes(r chi.Router, h *Handler) {
	r.Use(h.EnsureCSRFToken)
	r.Use(h.RequireCSRF)

	r.Get("/login", h.LoginPage)
	r.Post("/login", h.LoginSubmit)
	r.Post("/logout", h.Logout)

	staticFS, err := fs.Sub(assets.StaticFS(), "static")
	if err == nil {
		r.Handle("/static/*", http.StripPrefix("/static/", http.FileServer(http.FS(staticFS))))
	}

	r.Group(func(r chi.Router) {
		r.Use(h.RequireSession)

		r.Get("/", func(w http.ResponseWriter, r *http.Request) {
			http.Redirect(w, r, "/inicio", http.StatusSeeOther)
		})
		r.Get("/inicio", h.guardModule(authz.ModuleInicio, h.Home))

		r.Route("/usuarios", func(r chi.Router) {
			guard := func(fn http.HandlerFunc) http.HandlerFunc {
				return h.guardModule(authz.ModuleUsuarios, fn)
			}
			r.Get("/", guard(h.UsuariosPage))
			r.Post("/nuevo", guard(h.UsuariosNew))
			r.Post("/crear", guard(h.UsuariosCreate))
			r.Post("/cancelar", guard(h.UsuariosCancel))
			r.Post("/{id}/desactivar", guard(h.UsuariosDeactivate))
			r.Post("/{id}/activar", guard(h.UsuariosActivate))
		})

		r.Route("/grupos", func(r chi.Router) {
			guard := func(fn http.HandlerFunc) http.HandlerFunc {
				return h.guardModule(authz.ModuleGrupos, fn)
			}
			r.Get("/", guard(h.GruposPage))
			r.Post("/nuevo", guard(h.GruposNew))
			r.Post("/crear", guard(h.GruposCreate))
			r.Get("/{id}", guard(h.GruposView))
			r.Post("/{id}/editar", guard(h.GruposEdit))
			r.Post("/actualizar", guard(h.GruposUpdate))
			r.Post("/cancelar", guard(h.GruposCancel))
			r.Post("/{id}/desactivar", guard(h.GruposDeactivate))
		})

		r.Route("/profesores", func(r chi.Router) {
			guard := func(fn http.HandlerFunc) http.HandlerFunc {
				return h.guardModule(authz.ModuleProfesores, fn)
			}
			r.Get("/", guard(h.ProfesoresPage))
			r.Post("/nuevo", guard(h.ProfesoresNew))
			r.Post("/crear", guard(h.ProfesoresCreate))
			r.Get("/{id}", guard(h.ProfesoresView))
			r.Post("/{id}/editar", guard(h.ProfesoresEdit))
			r.Post("/actualizar", guard(h.ProfesoresUpdate))
			r.Post("/cancelar", guard(h.ProfesoresCancel))
			r.Post("/{id}/desactivar", guard(h.ProfesoresDeactivate))
		})

		r.Route("/salones", func(r chi.Router) {
			guard := func(fn http.HandlerFunc) http.HandlerFunc {
				return h.guardModule(authz.ModuleSalones, fn)
			}
			r.Get("/", guard(h.SalonesPage))
			r.Post("/nuevo", guard(h.SalonesNew))
			r.Post("/crear", guard(h.SalonesCreate))
			r.Get("/{id}", guard(h.SalonesView))
			r.Post("/cancelar", guard(h.SalonesCancel))
		})

		r.Route("/disponibilidad", func(r chi.Router) {
			guard := func(fn http.HandlerFunc) http.HandlerFunc {
				return h.guardModule(authz.ModuleDisponibilidad, fn)
			}
			r.Get("/", guard(h.DisponibilidadPage))
			r.Post("/crear", guard(h.DisponibilidadCreate))
			r.Post("/{id}/eliminar", guard(h.DisponibilidadDelete))
		})
	})
}
