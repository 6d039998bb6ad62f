package ui

import (
	"strconv"

	. "maragu.dev/gomponents"
	. "maragu.dev/gomponents/html"

	"sasce-admin/internal/authz"
	"sasce-admin/internal/controller"
	"sasce-admin/internal/domain"
)

func disponibilidadPage(usuario *domain.Usuario, scr *controller.Screen[domain.Ocupacion, domain.OcupacionRequest], scope *controller.OcupacionScope, salones []domain.Salon, periodos []domain.PeriodoAcademico, csrf Node) Node {
	salon := scope.Salon()
	filtro := scope.Filtro()

	body := []Node{
		flashes(scr.SuccessMessage(), scr.ErrorMessage()),
		disponibilidadFilterCard(salon, filtro, salones, periodos),
	}
	if salon > 0 {
		body = append(body,
			disponibilidadTable(scr.Items(), csrf),
			disponibilidadCreateCard(scr, salon, periodos, csrf),
		)
	} else {
		body = append(body, emptyStateCard("Selecciona un salón para consultar su disponibilidad."))
	}

	return appPage("Disponibilidad de Salones", authz.ModuleDisponibilidad, usuario, body...)
}

// disponibilidadFilterCard is the GET form that picks the room and narrows
// the block list. Submitting it reloads the page with the query string set.
func disponibilidadFilterCard(salon int, filtro domain.OcupacionFiltro, salones []domain.Salon, periodos []domain.PeriodoAcademico) Node {
	salonOptions := make([]Node, 0, len(salones)+1)
	salonOptions = append(salonOptions, Option(Value(""), Text("Selecciona un salón...")))
	for i := range salones {
		s := &salones[i]
		opt := Option(Value(strconv.Itoa(s.IDSalon)), Text(s.Etiqueta()))
		if s.IDSalon == salon {
			opt = Option(Value(strconv.Itoa(s.IDSalon)), Selected(), Text(s.Etiqueta()))
		}
		salonOptions = append(salonOptions, opt)
	}

	periodoValue := 0
	if filtro.IDPeriodoAcademico != nil {
		periodoValue = *filtro.IDPeriodoAcademico
	}
	periodoOptions := make([]Node, 0, len(periodos)+1)
	periodoOptions = append(periodoOptions, Option(Value(""), Text("Todos los periodos")))
	for _, p := range periodos {
		opt := Option(Value(strconv.Itoa(p.IDPeriodo)), Text(p.NombrePeriodo))
		if p.IDPeriodo == periodoValue {
			opt = Option(Value(strconv.Itoa(p.IDPeriodo)), Selected(), Text(p.NombrePeriodo))
		}
		periodoOptions = append(periodoOptions, opt)
	}

	diaOptions := make([]Node, 0, len(domain.DiasSemana)+1)
	diaOptions = append(diaOptions, Option(Value(""), Text("Todos los días")))
	for dia, nombre := range domain.DiasSemana {
		opt := Option(Value(strconv.Itoa(dia)), Text(nombre))
		if filtro.DiaSemana != nil && *filtro.DiaSemana == dia {
			opt = Option(Value(strconv.Itoa(dia)), Selected(), Text(nombre))
		}
		diaOptions = append(diaOptions, opt)
	}

	return Div(
		Class(cardClass()),
		Form(
			Class("filter-form"),
			Method("get"),
			Action("/disponibilidad"),
			Label(For("salon"), Text("Salón")),
			Select(ID("salon"), Name("salon"), Group(salonOptions)),
			Label(For("periodo"), Text("Periodo académico")),
			Select(ID("periodo"), Name("periodo"), Group(periodoOptions)),
			Label(For("dia"), Text("Día")),
			Select(ID("dia"), Name("dia"), Group(diaOptions)),
			Button(Type("submit"), Class(primaryButtonClass()), Text("Consultar")),
		),
	)
}

func disponibilidadTable(ocupaciones []domain.Ocupacion, csrf Node) Node {
	if len(ocupaciones) == 0 {
		return emptyStateCard("El salón no tiene ocupaciones registradas para los filtros elegidos.")
	}

	rows := make([]Node, 0, len(ocupaciones))
	for i := range ocupaciones {
		o := ocupaciones[i]
		periodo := "-"
		if o.PeriodoAcademico != nil {
			periodo = o.PeriodoAcademico.NombrePeriodo
		}
		etiqueta := domain.NombreDia(o.DiaSemana) + " " + o.HoraInicio + "-" + o.HoraFin
		rows = append(rows, Tr(
			Td(Text(periodo)),
			Td(Text(domain.NombreDia(o.DiaSemana))),
			Td(Text(o.HoraInicio+" - "+o.HoraFin)),
			Td(Text(strOrDashValue(o.Motivo))),
			Td(Form(
				Method("post"),
				Action("/disponibilidad/"+strconv.Itoa(o.IDOcupacion)+"/eliminar"),
				csrf,
				hiddenField("etiqueta", etiqueta),
				Button(Type("submit"), Class("btn btn-sm btn-danger"), Text("Eliminar")),
			)),
		))
	}

	return Div(Class(cardClass()), Table(
		Class("data-table"),
		THead(Tr(
			Th(Text("Periodo")),
			Th(Text("Día")),
			Th(Text("Horario")),
			Th(Text("Motivo")),
			Th(Text("Acciones")),
		)),
		TBody(Group(rows)),
	))
}

// disponibilidadCreateCard is the inline form that blocks a new weekly
// window for the selected room. The active period comes preselected on a
// fresh form.
func disponibilidadCreateCard(scr *controller.Screen[domain.Ocupacion, domain.OcupacionRequest], salon int, periodos []domain.PeriodoAcademico, csrf Node) Node {
	draft := scr.Draft()
	periodoValue := draft.IDPeriodoAcademico
	if periodoValue == 0 {
		for _, p := range periodos {
			if p.EstaActivo {
				periodoValue = p.IDPeriodo
				break
			}
		}
	}

	periodoOptions := make([]Node, 0, len(periodos)+1)
	periodoOptions = append(periodoOptions, Option(Value(""), Text("Selecciona un periodo...")))
	for _, p := range periodos {
		opt := Option(Value(strconv.Itoa(p.IDPeriodo)), Text(p.NombrePeriodo))
		if p.IDPeriodo == periodoValue {
			opt = Option(Value(strconv.Itoa(p.IDPeriodo)), Selected(), Text(p.NombrePeriodo))
		}
		periodoOptions = append(periodoOptions, opt)
	}

	diaOptions := make([]Node, 0, len(domain.DiasSemana))
	for dia, nombre := range domain.DiasSemana {
		opt := Option(Value(strconv.Itoa(dia)), Text(nombre))
		if dia == draft.DiaSemana {
			opt = Option(Value(strconv.Itoa(dia)), Selected(), Text(nombre))
		}
		diaOptions = append(diaOptions, opt)
	}

	return Div(
		Class(cardClass()),
		H3(Text("Registrar ocupación")),
		P(Class(mutedClass()), Text("El horario permitido va de "+controller.MinHora+" a "+controller.MaxHora+".")),
		Form(
			Class("stack-form"),
			Method("post"),
			Action("/disponibilidad/crear"),
			csrf,
			hiddenField("id_salon", strconv.Itoa(salon)),
			Label(For("id_periodo_academico"), Text("Periodo académico")),
			Select(ID("id_periodo_academico"), Name("id_periodo_academico"), Required(), Group(periodoOptions)),
			Label(For("dia_semana"), Text("Día de la semana")),
			Select(ID("dia_semana"), Name("dia_semana"), Required(), Group(diaOptions)),
			Label(For("hora_inicio"), Text("Hora de inicio")),
			Input(Type("time"), ID("hora_inicio"), Name("hora_inicio"),
				Value(draft.HoraInicio), Min(controller.MinHora), Max(controller.MaxHora), Required()),
			Label(For("hora_fin"), Text("Hora de fin")),
			Input(Type("time"), ID("hora_fin"), Name("hora_fin"),
				Value(draft.HoraFin), Min(controller.MinHora), Max(controller.MaxHora), Required()),
			Label(For("motivo"), Text("Motivo (opcional)")),
			Input(Type("text"), ID("motivo"), Name("motivo"),
				Value(draft.Motivo), MaxLength(strconv.Itoa(controller.MaxMotivo))),
			Div(
				Class("form-actions"),
				Button(Type("submit"), Class(primaryButtonClass()), Text("Registrar")),
			),
		),
	)
}

func strOrDashValue(v string) string {
	if v == "" {
		return "-"
	}
	return v
}
