package ui

import (
	"strconv"
	"strings"

	. "maragu.dev/gomponents"
	data "maragu.dev/gomponents-datastar"
	. "maragu.dev/gomponents/html"

	"sasce-admin/internal/authz"
	"sasce-admin/internal/controller"
	"sasce-admin/internal/domain"
)

// Role names accepted by the create-user endpoint.
var nombresRol = []string{
	"Administrador",
	"Coordinador",
	"CoordinadorInfraestructura",
	"Profesor",
	"Estudiante",
}

func usuarioListPage(current *domain.Usuario, scr *controller.Screen[domain.Usuario, domain.CreateUsuarioRequest], csrf Node) Node {
	usuarios := scr.Items()
	currentID := 0
	if current != nil {
		currentID = current.IDUsuario
	}

	rows := make([]Node, 0, len(usuarios))
	for i := range usuarios {
		u := usuarios[i]
		haystack := strings.ToLower(u.NombreCompleto() + " " + u.Correo + " " + u.NombreRol())

		var toggle Node
		switch {
		case u.IDUsuario == currentID:
			toggle = Span(Class(mutedClass()), Text("Cuenta actual"))
		case u.EstaActivo:
			toggle = Form(
				Method("post"),
				Action("/usuarios/"+strconv.Itoa(u.IDUsuario)+"/desactivar"),
				csrf,
				hiddenField("etiqueta", u.NombreCompleto()),
				Button(Type("submit"), Class("btn btn-sm btn-danger"), Text("Desactivar")),
			)
		default:
			toggle = Form(
				Method("post"),
				Action("/usuarios/"+strconv.Itoa(u.IDUsuario)+"/activar"),
				csrf,
				Button(Type("submit"), Class("btn btn-sm"), Text("Activar")),
			)
		}

		rows = append(rows, Tr(
			data.Show(containsExpr(haystack)),
			Td(Text(u.NombreCompleto())),
			Td(Text(u.Correo)),
			Td(Text(u.NombreRol())),
			Td(activoLabel(u.EstaActivo)),
			Td(toggle),
		))
	}

	var table Node
	if len(rows) == 0 {
		table = emptyStateCard("No hay usuarios registrados todavía.")
	} else {
		table = Div(Class(cardClass()), Table(
			Class("data-table"),
			THead(Tr(
				Th(Text("Nombre")),
				Th(Text("Correo")),
				Th(Text("Rol")),
				Th(Text("Estado")),
				Th(Text("Acciones")),
			)),
			TBody(Group(rows)),
		))
	}

	return appPage("Gestión de Usuarios", authz.ModuleUsuarios, current,
		flashes(scr.SuccessMessage(), scr.ErrorMessage()),
		Div(
			Class(cardClass("toolbar")),
			Form(
				Method("post"),
				Action("/usuarios/nuevo"),
				csrf,
				Button(Type("submit"), Class(primaryButtonClass()), Text("Registrar usuario")),
			),
		),
		quickFilterCard("Filtrar por nombre, correo o rol..."),
		table,
	)
}

func usuarioFormPage(current *domain.Usuario, scr *controller.Screen[domain.Usuario, domain.CreateUsuarioRequest], csrf Node) Node {
	draft := scr.Draft()

	options := make([]Node, 0, len(nombresRol)+1)
	options = append(options, Option(Value(""), Text("Selecciona un rol...")))
	for _, rol := range nombresRol {
		opt := Option(Value(rol), Text(rol))
		if rol == draft.NombreRol {
			opt = Option(Value(rol), Selected(), Text(rol))
		}
		options = append(options, opt)
	}

	return appPage("Registrar usuario", authz.ModuleUsuarios, current,
		flashes("", scr.ErrorMessage()),
		Div(
			Class(cardClass()),
			Form(
				Class("stack-form"),
				Method("post"),
				Action("/usuarios/crear"),
				csrf,
				Label(For("nombre"), Text("Nombre")),
				Input(Type("text"), ID("nombre"), Name("nombre"), Value(draft.Nombre), Required()),
				Label(For("apellido"), Text("Apellido")),
				Input(Type("text"), ID("apellido"), Name("apellido"), Value(draft.Apellido), Required()),
				Label(For("nombre_usuario"), Text("Nombre de usuario")),
				Input(Type("text"), ID("nombre_usuario"), Name("nombre_usuario"), Value(draft.NombreUsuario), Required()),
				Label(For("correo"), Text("Correo electrónico")),
				Input(Type("email"), ID("correo"), Name("correo"), Value(draft.Correo), Required()),
				Label(For("password"), Text("Contraseña")),
				Input(Type("password"), ID("password"), Name("password"), Required()),
				Label(For("nombre_rol"), Text("Rol")),
				Select(ID("nombre_rol"), Name("nombre_rol"), Required(), Group(options)),
				Div(
					Class("form-actions"),
					Button(Type("submit"), Class(primaryButtonClass()), Text("Guardar")),
				),
			),
			Form(
				Method("post"),
				Action("/usuarios/cancelar"),
				csrf,
				Button(Type("submit"), Class(secondaryButtonClass()), Text("Cancelar")),
			),
		),
	)
}
