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

func profesorListPage(usuario *domain.Usuario, scr *controller.Screen[domain.Profesor, domain.ProfesorForm], csrf Node) Node {
	profesores := scr.Items()

	rows := make([]Node, 0, len(profesores))
	for i := range profesores {
		p := profesores[i]
		especialidades := strings.Join(p.Especialidades, ", ")
		haystack := strings.ToLower(p.NombreCompleto() + " " + p.Correo + " " + especialidades)
		rows = append(rows, Tr(
			data.Show(containsExpr(haystack)),
			Td(A(Href("/profesores/"+strconv.Itoa(p.IDProfesor)), Text(p.NombreCompleto()))),
			Td(Text(p.NumeroIdentificacion)),
			Td(Text(p.Correo)),
			Td(Text(especialidades)),
			Td(activoLabel(p.Activo())),
		))
	}

	var table Node
	if len(rows) == 0 {
		table = emptyStateCard("No hay profesores registrados todavía.")
	} else {
		table = Div(Class(cardClass()), Table(
			Class("data-table"),
			THead(Tr(
				Th(Text("Nombre")),
				Th(Text("Identificación")),
				Th(Text("Correo")),
				Th(Text("Especialidades")),
				Th(Text("Estado")),
			)),
			TBody(Group(rows)),
		))
	}

	return appPage("Gestión de Profesores", authz.ModuleProfesores, usuario,
		flashes(scr.SuccessMessage(), scr.ErrorMessage()),
		Div(
			Class(cardClass("toolbar")),
			Form(
				Method("post"),
				Action("/profesores/nuevo"),
				csrf,
				Button(Type("submit"), Class(primaryButtonClass()), Text("Registrar profesor")),
			),
		),
		quickFilterCard("Filtrar por nombre, correo o especialidad..."),
		table,
	)
}

func profesorDetailPage(usuario *domain.Usuario, scr *controller.Screen[domain.Profesor, domain.ProfesorForm], csrf Node) Node {
	p := scr.Selected()
	if p == nil {
		return errorPage("Profesor", "No hay profesor seleccionado.")
	}

	var hojaVida Node = Text("-")
	if p.HojaVidaURL != "" {
		hojaVida = A(Href(p.HojaVidaURL), Target("_blank"), Rel("noopener"), Text("Ver hoja de vida (PDF)"))
	}

	return appPage("Profesor: "+p.NombreCompleto(), authz.ModuleProfesores, usuario,
		flashes(scr.SuccessMessage(), scr.ErrorMessage()),
		Div(
			Class(cardClass()),
			Dl(Class("detail-list"),
				Dt(Text("Número de identificación")), Dd(Text(p.NumeroIdentificacion)),
				Dt(Text("Nombre")), Dd(Text(p.NombreCompleto())),
				Dt(Text("Correo")), Dd(Text(p.Correo)),
				Dt(Text("Biografía")), Dd(Text(strOrDash(p.Biografia))),
				Dt(Text("Cualificaciones")), Dd(Text(strOrDash(p.Cualificaciones))),
				Dt(Text("Especialidades")), Dd(Text(joinOrDash(p.Especialidades))),
				Dt(Text("Hoja de vida")), Dd(hojaVida),
				Dt(Text("Estado")), Dd(activoLabel(p.Activo())),
			),
		),
		Div(
			Class("form-actions"),
			Form(
				Method("post"),
				Action("/profesores/"+strconv.Itoa(p.IDProfesor)+"/editar"),
				csrf,
				Button(Type("submit"), Class(primaryButtonClass()), Text("Editar")),
			),
			Form(
				Method("post"),
				Action("/profesores/"+strconv.Itoa(p.IDProfesor)+"/desactivar"),
				csrf,
				hiddenField("etiqueta", p.NombreCompleto()),
				Button(Type("submit"), Class(dangerButtonClass()), Text("Desactivar")),
			),
			Form(
				Method("post"),
				Action("/profesores/cancelar"),
				csrf,
				Button(Type("submit"), Class(secondaryButtonClass()), Text("Volver")),
			),
		),
	)
}

func profesorFormPage(usuario *domain.Usuario, scr *controller.Screen[domain.Profesor, domain.ProfesorForm], csrf Node) Node {
	draft := scr.Draft()

	title := "Registrar profesor"
	action := "/profesores/crear"
	cvLabel := "Hoja de vida (PDF)"
	editing := scr.Mode() == controller.Editing
	if editing {
		title = "Editar profesor"
		action = "/profesores/actualizar"
		cvLabel = "Hoja de vida (PDF, opcional: deja vacío para conservar la actual)"
	}

	fileInput := Input(Type("file"), ID("hoja_vida"), Name("hoja_vida"), Accept("application/pdf"), Required())
	if editing {
		fileInput = Input(Type("file"), ID("hoja_vida"), Name("hoja_vida"), Accept("application/pdf"))
	}

	return appPage(title, authz.ModuleProfesores, usuario,
		flashes("", scr.ErrorMessage()),
		Div(
			Class(cardClass()),
			Form(
				Class("stack-form"),
				Method("post"),
				Action(action),
				EncType("multipart/form-data"),
				csrf,
				Label(For("numero_identificacion"), Text("Número de identificación")),
				Input(Type("text"), ID("numero_identificacion"), Name("numero_identificacion"),
					Value(draft.NumeroIdentificacion), Required()),
				Label(For("nombre"), Text("Nombre")),
				Input(Type("text"), ID("nombre"), Name("nombre"), Value(draft.Nombre), Required()),
				Label(For("apellido"), Text("Apellido")),
				Input(Type("text"), ID("apellido"), Name("apellido"), Value(draft.Apellido), Required()),
				Label(For("correo"), Text("Correo electrónico")),
				Input(Type("email"), ID("correo"), Name("correo"), Value(draft.Correo), Required()),
				Label(For("biografia"), Text("Biografía (opcional)")),
				Textarea(ID("biografia"), Name("biografia"), Text(draft.Biografia)),
				Label(For("cualificaciones"), Text("Cualificaciones (opcional)")),
				Textarea(ID("cualificaciones"), Name("cualificaciones"), Text(draft.Cualificaciones)),
				Label(For("especialidades"), Text("Especialidades (separadas por coma)")),
				Input(Type("text"), ID("especialidades"), Name("especialidades"),
					Value(strings.Join(draft.Especialidades, ", "))),
				Label(For("hoja_vida"), Text(cvLabel)),
				fileInput,
				Div(
					Class("form-actions"),
					Button(Type("submit"), Class(primaryButtonClass()), Text("Guardar")),
				),
			),
			Form(
				Method("post"),
				Action("/profesores/cancelar"),
				csrf,
				Button(Type("submit"), Class(secondaryButtonClass()), Text("Cancelar")),
			),
		),
	)
}

func joinOrDash(values []string) string {
	if len(values) == 0 {
		return "-"
	}
	return strings.Join(values, ", ")
}
