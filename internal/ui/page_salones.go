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

func salonListPage(usuario *domain.Usuario, scr *controller.Screen[domain.Salon, domain.SalonRequest], csrf Node) Node {
	salones := scr.Items()

	rows := make([]Node, 0, len(salones))
	for i := range salones {
		s := salones[i]
		edificio := "-"
		if s.Edificio != nil {
			edificio = s.Edificio.NombreEdificio
		}
		haystack := strings.ToLower(s.Etiqueta() + " " + edificio)
		rows = append(rows, Tr(
			data.Show(containsExpr(haystack)),
			Td(A(Href("/salones/"+strconv.Itoa(s.IDSalon)), Text(s.Etiqueta()))),
			Td(Text(edificio)),
			Td(Text(intOrDash(s.NumeroPiso))),
			Td(Text(strconv.Itoa(s.Capacidad))),
			Td(Text(strconv.Itoa(len(s.Recursos)))),
			Td(activoLabel(s.EstaActivo)),
		))
	}

	var table Node
	if len(rows) == 0 {
		table = emptyStateCard("No hay salones registrados todavía.")
	} else {
		table = Div(Class(cardClass()), Table(
			Class("data-table"),
			THead(Tr(
				Th(Text("Salón")),
				Th(Text("Edificio")),
				Th(Text("Piso")),
				Th(Text("Capacidad")),
				Th(Text("Recursos")),
				Th(Text("Estado")),
			)),
			TBody(Group(rows)),
		))
	}

	return appPage("Gestión de Salones", authz.ModuleSalones, usuario,
		flashes(scr.SuccessMessage(), scr.ErrorMessage()),
		Div(
			Class(cardClass("toolbar")),
			Form(
				Method("post"),
				Action("/salones/nuevo"),
				csrf,
				Button(Type("submit"), Class(primaryButtonClass()), Text("Registrar salón")),
			),
			A(Href("/disponibilidad"), Class(secondaryButtonClass()), Text("Ver disponibilidad")),
		),
		quickFilterCard("Filtrar por código, nombre o edificio..."),
		table,
	)
}

func salonDetailPage(usuario *domain.Usuario, scr *controller.Screen[domain.Salon, domain.SalonRequest], tipos []domain.TipoRecurso, csrf Node) Node {
	s := scr.Selected()
	if s == nil {
		return errorPage("Salón", "No hay salón seleccionado.")
	}
	edificio := "-"
	if s.Edificio != nil {
		edificio = s.Edificio.NombreEdificio
	}

	nombreTipo := make(map[int]string, len(tipos))
	for _, t := range tipos {
		nombreTipo[t.IDTipoRecurso] = t.NombreTipo
	}

	var recursos Node = Text("-")
	if len(s.Recursos) > 0 {
		items := make([]Node, 0, len(s.Recursos))
		for _, rec := range s.Recursos {
			tipo := nombreTipo[rec.IDTipoRecurso]
			if tipo == "" {
				tipo = "Tipo " + strconv.Itoa(rec.IDTipoRecurso)
			}
			label := tipo + " × " + strconv.Itoa(rec.Cantidad)
			if rec.Notas != "" {
				label += " (" + rec.Notas + ")"
			}
			items = append(items, Li(Text(label)))
		}
		recursos = Ul(Class("resource-list"), Group(items))
	}

	return appPage("Salón: "+s.Etiqueta(), authz.ModuleSalones, usuario,
		flashes(scr.SuccessMessage(), scr.ErrorMessage()),
		Div(
			Class(cardClass()),
			Dl(Class("detail-list"),
				Dt(Text("Código")), Dd(Text(s.CodigoSalon)),
				Dt(Text("Nombre")), Dd(Text(strOrDash(s.NombreSalon))),
				Dt(Text("Edificio")), Dd(Text(edificio)),
				Dt(Text("Piso")), Dd(Text(intOrDash(s.NumeroPiso))),
				Dt(Text("Capacidad")), Dd(Text(strconv.Itoa(s.Capacidad))),
				Dt(Text("Ubicación")), Dd(Text(strOrDash(s.DescripcionUbicacion))),
				Dt(Text("Recursos")), Dd(recursos),
				Dt(Text("Estado")), Dd(activoLabel(s.EstaActivo)),
			),
		),
		Div(
			Class("form-actions"),
			A(Href("/disponibilidad?salon="+strconv.Itoa(s.IDSalon)), Class(primaryButtonClass()),
				Text("Gestionar disponibilidad")),
			Form(
				Method("post"),
				Action("/salones/cancelar"),
				csrf,
				Button(Type("submit"), Class(secondaryButtonClass()), Text("Volver")),
			),
		),
	)
}

func salonFormPage(usuario *domain.Usuario, scr *controller.Screen[domain.Salon, domain.SalonRequest], edificios []domain.Edificio, tipos []domain.TipoRecurso, csrf Node) Node {
	draft := scr.Draft()

	edificioOptions := make([]Node, 0, len(edificios)+1)
	edificioOptions = append(edificioOptions, Option(Value(""), Text("Selecciona un edificio...")))
	for _, e := range edificios {
		opt := Option(Value(strconv.Itoa(e.IDEdificio)), Text(e.NombreEdificio))
		if e.IDEdificio == draft.IDEdificio {
			opt = Option(Value(strconv.Itoa(e.IDEdificio)), Selected(), Text(e.NombreEdificio))
		}
		edificioOptions = append(edificioOptions, opt)
	}

	recursoRows := make([]Node, 0, salonRecursoRows)
	for i := 1; i <= salonRecursoRows; i++ {
		n := strconv.Itoa(i)
		var row domain.RecursoSalon
		if i <= len(draft.Recursos) {
			row = draft.Recursos[i-1]
		}

		tipoOptions := make([]Node, 0, len(tipos)+1)
		tipoOptions = append(tipoOptions, Option(Value(""), Text("(sin recurso)")))
		for _, t := range tipos {
			opt := Option(Value(strconv.Itoa(t.IDTipoRecurso)), Text(t.NombreTipo))
			if t.IDTipoRecurso == row.IDTipoRecurso {
				opt = Option(Value(strconv.Itoa(t.IDTipoRecurso)), Selected(), Text(t.NombreTipo))
			}
			tipoOptions = append(tipoOptions, opt)
		}

		cantidad := ""
		if row.Cantidad > 0 {
			cantidad = strconv.Itoa(row.Cantidad)
		}
		recursoRows = append(recursoRows, Tr(
			Td(Select(Name("recurso_tipo_"+n), Group(tipoOptions))),
			Td(Input(Type("number"), Name("recurso_cantidad_"+n), Value(cantidad), Min("1"))),
			Td(Input(Type("text"), Name("recurso_notas_"+n), Value(row.Notas),
				MaxLength(strconv.Itoa(controller.MaxNotasRecurso)))),
		))
	}

	capacidad := ""
	if draft.Capacidad > 0 {
		capacidad = strconv.Itoa(draft.Capacidad)
	}

	return appPage("Registrar salón", authz.ModuleSalones, usuario,
		flashes("", scr.ErrorMessage()),
		Div(
			Class(cardClass()),
			Form(
				Class("stack-form"),
				Method("post"),
				Action("/salones/crear"),
				csrf,
				Label(For("codigo_salon"), Text("Código del salón")),
				Input(Type("text"), ID("codigo_salon"), Name("codigo_salon"),
					Value(draft.CodigoSalon), MaxLength(strconv.Itoa(controller.MaxCodigoSalon)), Required()),
				Label(For("nombre_salon"), Text("Nombre (opcional)")),
				Input(Type("text"), ID("nombre_salon"), Name("nombre_salon"),
					Value(optionalStringValue(draft.NombreSalon)), MaxLength(strconv.Itoa(controller.MaxNombreSalon))),
				Label(For("id_edificio"), Text("Edificio")),
				Select(ID("id_edificio"), Name("id_edificio"), Required(), Group(edificioOptions)),
				Label(For("numero_piso"), Text("Piso (opcional)")),
				Input(Type("number"), ID("numero_piso"), Name("numero_piso"),
					Value(optionalIntValue(draft.NumeroPiso))),
				Label(For("capacidad"), Text("Capacidad")),
				Input(Type("number"), ID("capacidad"), Name("capacidad"),
					Value(capacidad), Min("1"), Required()),
				Label(For("descripcion_ubicacion"), Text("Descripción de la ubicación (opcional)")),
				Textarea(ID("descripcion_ubicacion"), Name("descripcion_ubicacion"),
					MaxLength(strconv.Itoa(controller.MaxDescripcionUbicacion)),
					Text(optionalStringValue(draft.DescripcionUbicacion))),
				H3(Text("Recursos del salón")),
				P(Class(mutedClass()), Text("Las filas sin tipo de recurso se ignoran.")),
				Table(
					Class("data-table"),
					THead(Tr(
						Th(Text("Tipo de recurso")),
						Th(Text("Cantidad")),
						Th(Text("Notas")),
					)),
					TBody(Group(recursoRows)),
				),
				Div(
					Class("form-actions"),
					Button(Type("submit"), Class(primaryButtonClass()), Text("Guardar")),
				),
			),
			Form(
				Method("post"),
				Action("/salones/cancelar"),
				csrf,
				Button(Type("submit"), Class(secondaryButtonClass()), Text("Cancelar")),
			),
		),
	)
}

func intOrDash(v *int) string {
	if v == nil {
		return "-"
	}
	return strconv.Itoa(*v)
}
