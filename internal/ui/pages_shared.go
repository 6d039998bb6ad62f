package ui

import (
	"strconv"
	"strings"
	"time"

	. "maragu.dev/gomponents"
	data "maragu.dev/gomponents-datastar"
	. "maragu.dev/gomponents/html"

	"sasce-admin/internal/authz"
	"sasce-admin/internal/domain"
)

// appPage is the shared chrome: sidebar navigation built from the role's
// visible modules, topbar with the signed-in user, and the page body.
func appPage(title, active string, usuario *domain.Usuario, body ...Node) Node {
	var role domain.Role
	userLabel := "desconocido"
	roleLabel := ""
	if usuario != nil {
		role = usuario.IDRol
		userLabel = usuario.NombreCompleto()
		roleLabel = usuario.NombreRol()
	}

	modules := authz.VisibleModules(role)
	nav := make([]Node, 0, len(modules))
	for _, m := range modules {
		className := "app-nav-link"
		if m.ID == active {
			className += " active"
		}
		nav = append(nav, A(
			Href(m.Path),
			Class(className),
			Span(Text(m.Label)),
		))
	}

	return HTML(
		Lang("es"),
		Head(
			Meta(Charset("utf-8")),
			Meta(Name("viewport"), Content("width=device-width, initial-scale=1")),
			TitleEl(Text(title+" | GHP-SASCE")),
			Link(Rel("icon"), Href("data:,")),
			Link(Rel("stylesheet"), Href("/static/app.css")),
			Script(
				Type("module"),
				Src("https://cdn.jsdelivr.net/gh/starfederation/datastar@1.0.0-RC.7/bundles/datastar.js"),
			),
		),
		Body(
			Main(Class("app-shell"),
				Aside(
					Class("app-sidebar"),
					Div(
						Class("brand"),
						Strong(Text("GHP-SASCE")),
						P(Class("muted mb-0"), Text("Administración académica")),
					),
					Nav(Class("app-nav"), Group(nav)),
				),
				Section(
					Class("app-main"),
					Div(
						Class("topbar"),
						H1(Class("page-title"), Text(title)),
						Div(
							P(Class("muted mb-2"), Text(userLabel+" · "+roleLabel)),
							Form(
								Method("post"),
								Action("/logout"),
								Button(Type("submit"), Class("btn btn-sm"), Text("Cerrar sesión")),
							),
						),
					),
					Div(Class("content"), Group(body)),
				),
			),
		),
	)
}

// flashes renders the screen's success and error messages above the page
// body. Either may be empty.
func flashes(success, errMsg string) Node {
	var nodes []Node
	if success != "" {
		nodes = append(nodes, Div(Class("flash flash-success"), Text(success)))
	}
	if errMsg != "" {
		nodes = append(nodes, Div(Class("flash flash-error"), Text(errMsg)))
	}
	if len(nodes) == 0 {
		return nil
	}
	return Group(nodes)
}

// errorPage is a bare page used outside the logged-in chrome (CSRF
// failures, unexpected errors).
func errorPage(title, message string) Node {
	return HTML(
		Lang("es"),
		Head(
			Meta(Charset("utf-8")),
			Meta(Name("viewport"), Content("width=device-width, initial-scale=1")),
			TitleEl(Text(title+" | GHP-SASCE")),
			Link(Rel("icon"), Href("data:,")),
			Link(Rel("stylesheet"), Href("/static/app.css")),
		),
		Body(
			Main(
				Class("layout"),
				H1(Class("page-title"), Text(title)),
				P(Text(message)),
				P(A(Href("/inicio"), Text("Volver al inicio"))),
			),
		),
	)
}

// accessDeniedPage is the fixed page shown when a role opens a module it is
// not permitted to. Always the same content, never a network call.
func accessDeniedPage(usuario *domain.Usuario) Node {
	return appPage("Acceso denegado", "", usuario,
		Div(
			Class(cardClass()),
			H2(Text("No tienes permiso para acceder a este módulo")),
			P(Class(mutedClass()), Text("Tu rol no incluye este módulo. Si crees que es un error, contacta al administrador del sistema.")),
			P(A(Href("/inicio"), Class(secondaryButtonClass()), Text("Volver al inicio"))),
		),
	)
}

func formatTime(ts time.Time) string {
	if ts.IsZero() {
		return "-"
	}
	return ts.Format("2006-01-02 15:04")
}

func strOrDash(v *string) string {
	if v == nil || strings.TrimSpace(*v) == "" {
		return "-"
	}
	return *v
}

func optionalStringValue(v *string) string {
	if v == nil {
		return ""
	}
	return *v
}

func optionalIntValue(v *int) string {
	if v == nil {
		return ""
	}
	return strconv.Itoa(*v)
}

func cardClass(extra ...string) string {
	parts := []string{"card"}
	parts = append(parts, extra...)
	return strings.Join(parts, " ")
}

func mutedClass() string {
	return "muted"
}

func primaryButtonClass() string {
	return "btn btn-primary"
}

func secondaryButtonClass() string {
	return "btn"
}

func dangerButtonClass() string {
	return "btn btn-danger"
}

// activoLabel renders the esta_activo flag as a status chip.
func activoLabel(activo bool) Node {
	if activo {
		return Span(Class("label label-success"), Text("Activo"))
	}
	return Span(Class("label label-muted"), Text("Inactivo"))
}

// quickFilterCard gives list pages a client-side substring filter over the
// rendered rows; each row carries its lowercase haystack.
func quickFilterCard(placeholder string, extraControls ...Node) Node {
	controls := []Node{
		Div(
			Class("toolbar-search"),
			Label(Class("sr-only"), Text("Filtro rápido")),
			Input(Type("search"), Class("form-control"), Placeholder(placeholder), data.Bind("q"), AutoComplete("off")),
		),
	}
	controls = append(controls, extraControls...)
	return Div(
		Class(cardClass("toolbar")),
		data.Signals(map[string]any{"q": ""}),
		Div(Class("toolbar-row"), Group(controls)),
	)
}

func containsExpr(value string) string {
	lower := strings.ToLower(value)
	return "$q === '' || " + strconv.Quote(lower) + ".includes($q.toLowerCase())"
}

func emptyStateCard(message string) Node {
	return Div(
		Class(cardClass("blankslate")),
		P(Class("muted mb-0"), Text(message)),
	)
}

func hiddenField(name, value string) Node {
	return Input(Type("hidden"), Name(name), Value(value))
}

// confirmPage asks the user to confirm a destructive or draft-discarding
// action. The form re-posts the original action with confirmado=1.
func confirmPage(usuario *domain.Usuario, moduleID, title, question, action, cancelHref string, csrf Node, extraFields ...Node) Node {
	fields := []Node{
		csrf,
		Input(Type("hidden"), Name("confirmado"), Value("1")),
	}
	fields = append(fields, extraFields...)
	return appPage(title, moduleID, usuario,
		Div(
			Class(cardClass()),
			P(Text(question)),
			Div(
				Class("form-actions"),
				Form(
					Method("post"),
					Action(action),
					Group(fields),
					Button(Type("submit"), Class(dangerButtonClass()), Text("Confirmar")),
				),
				A(Href(cancelHref), Class(secondaryButtonClass()), Text("Volver")),
			),
		),
	)
}
