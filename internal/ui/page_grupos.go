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

func grupoListPage(usuario *domain.Usuario, scr *controller.Screen[domain.Grupo, domain.GrupoRequest], csrf Node) Node {
	grupos := scr.Items()

	rows := make([]Node, 0, len(grupos))
	for i := range grupos {
		g := grupos[i]
		nivel := "-"
		if g.NivelAcademico != nil {
			nivel = g.NivelAcademico.NombreNivel
		}
		haystack := strings.ToLower(g.NombreGrupo + " " + nivel)
		rows = append(rows, Tr(
			data.Show(containsExpr(haystack)),
			Td(A(Href("/grupos/"+strconv.Itoa(g.IDGrupo)), Text(g.NombreGrupo))),
			Td(Text(nivel)),
			Td(Text(strconv.Itoa(g.CantidadEstudiantes))),
			Td(activoLabel(g.EstaActivo)),
			Td(Text(strOrDash(g.RequisitosEspeciales))),
		))
	}

	var table Node
	if len(rows) == 0 {
		table = emptyStateCard("No hay grupos registrados todavía.")
	} else {
		table = Div(Class(cardClass()), Table(
			Class("data-table"),
			THead(Tr(
				Th(Text("Nombre")),
				Th(Text("Nivel académico")),
				Th(Text("Estudiantes")),
				Th(Text("Estado")),
				Th(Text("Requisitos especiales")),
			)),
			TBody(Group(rows)),
		))
	}

	return appPage("Gestión de Grupos", authz.ModuleGrupos, usuario,
		flashes(scr.SuccessMessage(), scr.ErrorMessage()),
		Div(
			Class(cardClass("toolbar")),
			Form(
				Method("post"),
				Action("/grupos/nuevo"),
				csrf,
				Button(Type("submit"), Class(primaryButtonClass()), Text("Registrar grupo")),
			),
		),
		quickFilterCard("Filtrar por nombre o nivel..."),
		table,
	)
}

func grupoDetailPage(usuario *domain.Usuario, scr *controller.Screen[domain.Grupo, domain.GrupoRequest], csrf Node) Node {
	g := scr.Selected()
	if g == nil {
		return errorPage("Grupo", "No hay grupo seleccionado.")
	}
	nivel := "-"
	if g.NivelAcademico != nil {
		nivel = g.NivelAcademico.NombreNivel
	}

	return appPage("Grupo: "+g.NombreGrupo, authz.ModuleGrupos, usuario,
		flashes(scr.SuccessMessage(), scr.ErrorMessage()),
		Div(
			Class(cardClass()),
			Dl(Class("detail-list"),
				Dt(Text("Nombre")), Dd(Text(g.NombreGrupo)),
				Dt(Text("Nivel académico")), Dd(Text(nivel)),
				Dt(Text("Cantidad de estudiantes")), Dd(Text(strconv.Itoa(g.CantidadEstudiantes))),
				Dt(Text("Requisitos especiales")), Dd(Text(strOrDash(g.RequisitosEspeciales))),
				Dt(Text("Estado")), Dd(activoLabel(g.EstaActivo)),
				Dt(Text("Creado")), Dd(Text(formatTime(g.FechaCreacion))),
				Dt(Text("Actualizado")), Dd(Text(formatTime(g.FechaActualizacion))),
			),
		),
		Div(
			Class("form-actions"),
			Form(
				Method("post"),
				Action("/grupos/"+strconv.Itoa(g.IDGrupo)+"/editar"),
				csrf,
				Button(Type("submit"), Class(primaryButtonClass()), Text("Editar")),
			),
			Form(
				Method("post"),
				Action("/grupos/"+strconv.Itoa(g.IDGrupo)+"/desactivar"),
				csrf,
				hiddenField("etiqueta", g.NombreGrupo),
				Button(Type("submit"), Class(dangerButtonClass()), Text("Desactivar")),
			),
			Form(
				Method("post"),
				Action("/grupos/cancelar"),
				csrf,
				Button(Type("submit"), Class(secondaryButtonClass()), Text("Volver")),
			),
		),
	)
}

func grupoFormPage(usuario *domain.Usuario, scr *controller.Screen[domain.Grupo, domain.GrupoRequest], niveles []domain.NivelAcademico, csrf Node) Node {
	draft := scr.Draft()

	title := "Registrar grupo"
	action := "/grupos/crear"
	if scr.Mode() == controller.Editing {
		title = "Editar grupo"
		action = "/grupos/actualizar"
	}

	options := make([]Node, 0, len(niveles)+1)
	options = append(options, Option(Value(""), Text("Selecciona un nivel...")))
	for _, n := range niveles {
		opt := Option(Value(strconv.Itoa(n.IDNivel)), Text(n.NombreNivel))
		if n.IDNivel == draft.IDNivelAcademico {
			opt = Option(Value(strconv.Itoa(n.IDNivel)), Selected(), Text(n.NombreNivel))
		}
		options = append(options, opt)
	}

	cantidad := ""
	if draft.CantidadEstudiantes > 0 {
		cantidad = strconv.Itoa(draft.CantidadEstudiantes)
	}

	return appPage(title, authz.ModuleGrupos, usuario,
		flashes("", scr.ErrorMessage()),
		Div(
			Class(cardClass()),
			Form(
				Class("stack-form"),
				Method("post"),
				Action(action),
				csrf,
				Label(For("nombre_grupo"), Text("Nombre del grupo")),
				Input(Type("text"), ID("nombre_grupo"), Name("nombre_grupo"),
					Value(draft.NombreGrupo), MaxLength(strconv.Itoa(controller.MaxNombreGrupo)), Required()),
				Label(For("id_nivel_academico"), Text("Nivel académico")),
				Select(ID("id_nivel_academico"), Name("id_nivel_academico"), Required(), Group(options)),
				Label(For("cantidad_estudiantes"), Text("Cantidad de estudiantes")),
				Input(Type("number"), ID("cantidad_estudiantes"), Name("cantidad_estudiantes"),
					Value(cantidad), Min("1"), Required()),
				Label(For("requisitos_especiales"), Text("Requisitos especiales (opcional)")),
				Textarea(ID("requisitos_especiales"), Name("requisitos_especiales"),
					MaxLength(strconv.Itoa(controller.MaxRequisitosEspeciales)),
					Text(optionalStringValue(draft.RequisitosEspeciales))),
				Div(
					Class("form-actions"),
					Button(Type("submit"), Class(primaryButtonClass()), Text("Guardar")),
				),
			),
			Form(
				Method("post"),
				Action("/grupos/cancelar"),
				csrf,
				Button(Type("submit"), Class(secondaryButtonClass()), Text("Cancelar")),
			),
		),
	)
}
