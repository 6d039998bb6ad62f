package controller

import (
	"context"
	"strconv"
	"sync"

	"sasce-admin/internal/domain"
	"sasce-admin/internal/services"
)

// UsuarioScreen builds the user-management screen. The API exposes no
// per-user GET, so detail lookups scan the list.
func UsuarioScreen(svc *services.UsuarioService) *Screen[domain.Usuario, domain.CreateUsuarioRequest] {
	return NewScreen[domain.Usuario, domain.CreateUsuarioRequest](
		&usuarioOps{svc: svc},
		Descriptor[domain.Usuario, domain.CreateUsuarioRequest]{
			EntityName:         "Usuario",
			Validate:           ValidateUsuario,
			IDOf:               func(u *domain.Usuario) int { return u.IDUsuario },
			LabelOf:            func(u *domain.Usuario) string { return u.NombreCompleto() },
			IsActive:           func(u *domain.Usuario) bool { return u.EstaActivo },
			CreatedMessage:     "Usuario registrado exitosamente",
			DeactivatedMessage: "Usuario desactivado exitosamente",
			ActivatedMessage:   "Usuario activado exitosamente",
			GuardSelf:          true,
		},
	)
}

type usuarioOps struct {
	svc *services.UsuarioService
}

func (o *usuarioOps) List(ctx context.Context) ([]domain.Usuario, error) {
	return o.svc.List(ctx)
}

func (o *usuarioOps) GetByID(ctx context.Context, id int) (*domain.Usuario, error) {
	usuarios, err := o.svc.List(ctx)
	if err != nil {
		return nil, err
	}
	for i := range usuarios {
		if usuarios[i].IDUsuario == id {
			return &usuarios[i], nil
		}
	}
	return nil, domain.ErrNotFound("usuario %d no encontrado", id)
}

func (o *usuarioOps) Create(ctx context.Context, draft domain.CreateUsuarioRequest) (*domain.Usuario, error) {
	return o.svc.Create(ctx, draft)
}

func (o *usuarioOps) Update(_ context.Context, _ int, _ domain.CreateUsuarioRequest) (*domain.Usuario, error) {
	return nil, domain.ErrValidation("los usuarios no se pueden editar desde esta pantalla")
}

func (o *usuarioOps) Deactivate(ctx context.Context, id int) error {
	return o.svc.Desactivar(ctx, id)
}

func (o *usuarioOps) Activate(ctx context.Context, id int) error {
	return o.svc.Activar(ctx, id)
}

// ValidateUsuario checks the user creation form.
func ValidateUsuario(req domain.CreateUsuarioRequest) error {
	v := &Validator{}
	v.Require("nombre_usuario", req.NombreUsuario).
		Require("correo", req.Correo).
		Require("password", req.Password).
		Require("nombre_rol", req.NombreRol).
		Require("nombre", req.Nombre).
		Require("apellido", req.Apellido)
	return v.Err()
}

// GrupoScreen builds the group-management screen.
func GrupoScreen(svc *services.GrupoService) *Screen[domain.Grupo, domain.GrupoRequest] {
	return NewScreen[domain.Grupo, domain.GrupoRequest](
		&grupoOps{svc: svc},
		Descriptor[domain.Grupo, domain.GrupoRequest]{
			EntityName: "Grupo",
			Validate:   ValidateGrupo,
			IDOf:       func(g *domain.Grupo) int { return g.IDGrupo },
			LabelOf:    func(g *domain.Grupo) string { return g.NombreGrupo },
			IsActive:   func(g *domain.Grupo) bool { return g.EstaActivo },
			DraftOf: func(g *domain.Grupo) domain.GrupoRequest {
				return domain.GrupoRequest{
					NombreGrupo:          g.NombreGrupo,
					IDNivelAcademico:     g.IDNivelAcademico,
					CantidadEstudiantes:  g.CantidadEstudiantes,
					RequisitosEspeciales: g.RequisitosEspeciales,
				}
			},
			CreatedMessage:     "Grupo registrado exitosamente",
			UpdatedMessage:     "Grupo actualizado exitosamente",
			DeactivatedMessage: "Grupo desactivado exitosamente",
		},
	)
}

type grupoOps struct {
	svc *services.GrupoService
}

func (o *grupoOps) List(ctx context.Context) ([]domain.Grupo, error) {
	return o.svc.List(ctx)
}

func (o *grupoOps) GetByID(ctx context.Context, id int) (*domain.Grupo, error) {
	return o.svc.GetByID(ctx, id)
}

func (o *grupoOps) Create(ctx context.Context, draft domain.GrupoRequest) (*domain.Grupo, error) {
	return o.svc.Create(ctx, draft)
}

func (o *grupoOps) Update(ctx context.Context, id int, draft domain.GrupoRequest) (*domain.Grupo, error) {
	return o.svc.Update(ctx, id, draft)
}

func (o *grupoOps) Deactivate(ctx context.Context, id int) error {
	return o.svc.Desactivar(ctx, id)
}

// ValidateGrupo checks the group form.
func ValidateGrupo(req domain.GrupoRequest) error {
	v := &Validator{}
	v.Require("nombre_grupo", req.NombreGrupo).
		MaxLen("nombre_grupo", req.NombreGrupo, MaxNombreGrupo).
		PositiveInt("id_nivel_academico", req.IDNivelAcademico).
		PositiveInt("cantidad_estudiantes", req.CantidadEstudiantes)
	if req.RequisitosEspeciales != nil {
		v.MaxLen("requisitos_especiales", *req.RequisitosEspeciales, MaxRequisitosEspeciales)
	}
	return v.Err()
}

// ProfesorScreen builds the teacher-management screen. Deactivation maps to
// the API's DELETE, which performs the soft delete.
func ProfesorScreen(svc *services.ProfesorService) *Screen[domain.Profesor, domain.ProfesorForm] {
	return NewScreen[domain.Profesor, domain.ProfesorForm](
		&profesorOps{svc: svc},
		Descriptor[domain.Profesor, domain.ProfesorForm]{
			EntityName: "Profesor",
			Validate:   ValidateProfesor,
			IDOf:       func(p *domain.Profesor) int { return p.IDProfesor },
			LabelOf:    func(p *domain.Profesor) string { return p.NombreCompleto() },
			IsActive:   func(p *domain.Profesor) bool { return p.Activo() },
			DraftOf: func(p *domain.Profesor) domain.ProfesorForm {
				form := domain.ProfesorForm{
					NumeroIdentificacion: p.NumeroIdentificacion,
					Nombre:               p.Nombre,
					Apellido:             p.Apellido,
					Correo:               p.Correo,
					Especialidades:       p.Especialidades,
				}
				if p.Biografia != nil {
					form.Biografia = *p.Biografia
				}
				if p.Cualificaciones != nil {
					form.Cualificaciones = *p.Cualificaciones
				}
				return form
			},
			CreatedMessage:     "Profesor registrado exitosamente",
			UpdatedMessage:     "Profesor actualizado exitosamente",
			DeactivatedMessage: "Profesor desactivado exitosamente",
		},
	)
}

type profesorOps struct {
	svc *services.ProfesorService
}

func (o *profesorOps) List(ctx context.Context) ([]domain.Profesor, error) {
	return o.svc.List(ctx)
}

func (o *profesorOps) GetByID(ctx context.Context, id int) (*domain.Profesor, error) {
	return o.svc.GetByID(ctx, id)
}

func (o *profesorOps) Create(ctx context.Context, draft domain.ProfesorForm) (*domain.Profesor, error) {
	if len(draft.HojaVida) == 0 {
		return nil, domain.ErrValidation("la hoja de vida (PDF) es obligatoria")
	}
	return o.svc.Create(ctx, draft)
}

func (o *profesorOps) Update(ctx context.Context, id int, draft domain.ProfesorForm) (*domain.Profesor, error) {
	return o.svc.Update(ctx, id, draft)
}

func (o *profesorOps) Deactivate(ctx context.Context, id int) error {
	return o.svc.Delete(ctx, id)
}

// ValidateProfesor checks the teacher form. The CV requirement is enforced
// on create only, by the operations adapter, since updates may keep the
// stored file.
func ValidateProfesor(form domain.ProfesorForm) error {
	v := &Validator{}
	v.Require("numero_identificacion", form.NumeroIdentificacion).
		Require("nombre", form.Nombre).
		Require("apellido", form.Apellido).
		Require("correo", form.Correo)
	return v.Err()
}

// SalonScreen builds the room-management screen. The API only lists and
// creates rooms; detail lookups scan the list and edits are refused.
func SalonScreen(svc *services.SalonService) *Screen[domain.Salon, domain.SalonRequest] {
	return NewScreen[domain.Salon, domain.SalonRequest](
		&salonOps{svc: svc},
		Descriptor[domain.Salon, domain.SalonRequest]{
			EntityName:     "Salón",
			Validate:       ValidateSalon,
			IDOf:           func(s *domain.Salon) int { return s.IDSalon },
			LabelOf:        func(s *domain.Salon) string { return s.Etiqueta() },
			IsActive:       func(s *domain.Salon) bool { return s.EstaActivo },
			CreatedMessage: "Salón registrado exitosamente",
		},
	)
}

type salonOps struct {
	svc *services.SalonService
}

func (o *salonOps) List(ctx context.Context) ([]domain.Salon, error) {
	return o.svc.List(ctx)
}

func (o *salonOps) GetByID(ctx context.Context, id int) (*domain.Salon, error) {
	salones, err := o.svc.List(ctx)
	if err != nil {
		return nil, err
	}
	for i := range salones {
		if salones[i].IDSalon == id {
			return &salones[i], nil
		}
	}
	return nil, domain.ErrNotFound("salón %d no encontrado", id)
}

func (o *salonOps) Create(ctx context.Context, draft domain.SalonRequest) (*domain.Salon, error) {
	return o.svc.Create(ctx, draft)
}

func (o *salonOps) Update(_ context.Context, _ int, _ domain.SalonRequest) (*domain.Salon, error) {
	return nil, domain.ErrValidation("los salones no se pueden editar desde esta pantalla")
}

func (o *salonOps) Deactivate(_ context.Context, _ int) error {
	return domain.ErrValidation("los salones no se pueden desactivar desde esta pantalla")
}

// ValidateSalon checks the room form. Resource rows with an empty type or
// non-positive quantity are expected to be filtered out before submission.
func ValidateSalon(req domain.SalonRequest) error {
	v := &Validator{}
	v.Require("codigo_salon", req.CodigoSalon).
		MaxLen("codigo_salon", req.CodigoSalon, MaxCodigoSalon).
		PositiveInt("id_edificio", req.IDEdificio).
		PositiveInt("capacidad", req.Capacidad)
	if req.NombreSalon != nil {
		v.MaxLen("nombre_salon", *req.NombreSalon, MaxNombreSalon)
	}
	if req.DescripcionUbicacion != nil {
		v.MaxLen("descripcion_ubicacion", *req.DescripcionUbicacion, MaxDescripcionUbicacion)
	}
	for _, recurso := range req.Recursos {
		v.PositiveInt("id_tipo_recurso", recurso.IDTipoRecurso).
			PositiveInt("cantidad", recurso.Cantidad).
			MaxLen("notas", recurso.Notas, MaxNotasRecurso)
	}
	return v.Err()
}

// DisponibilidadScreen builds the availability screen for one room at a
// time. The room and the list filters are screen-local state; changing them
// affects the next Refresh.
func DisponibilidadScreen(svc *services.DisponibilidadService) (*Screen[domain.Ocupacion, domain.OcupacionRequest], *OcupacionScope) {
	scope := &OcupacionScope{}
	screen := NewScreen[domain.Ocupacion, domain.OcupacionRequest](
		&ocupacionOps{svc: svc, scope: scope},
		Descriptor[domain.Ocupacion, domain.OcupacionRequest]{
			EntityName: "Ocupación",
			Validate:   ValidateOcupacion,
			IDOf:       func(o *domain.Ocupacion) int { return o.IDOcupacion },
			LabelOf: func(o *domain.Ocupacion) string {
				return domain.NombreDia(o.DiaSemana) + " " + o.HoraInicio + "-" + o.HoraFin
			},
			CreatedMessage:     "Ocupación registrada exitosamente",
			DeactivatedMessage: "Ocupación eliminada exitosamente",
		},
	)
	return screen, scope
}

// OcupacionScope pins the availability screen to a room and list filters.
type OcupacionScope struct {
	mu     sync.Mutex
	salon  int
	filtro domain.OcupacionFiltro
}

// SetSalon selects the room whose blocks are listed and created.
func (s *OcupacionScope) SetSalon(idSalon int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.salon = idSalon
}

// SetFiltro replaces the list filters.
func (s *OcupacionScope) SetFiltro(filtro domain.OcupacionFiltro) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.filtro = filtro
}

// Salon returns the selected room id, 0 when none.
func (s *OcupacionScope) Salon() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.salon
}

// Filtro returns the current list filters.
func (s *OcupacionScope) Filtro() domain.OcupacionFiltro {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.filtro
}

type ocupacionOps struct {
	svc   *services.DisponibilidadService
	scope *OcupacionScope
}

func (o *ocupacionOps) List(ctx context.Context) ([]domain.Ocupacion, error) {
	salon := o.scope.Salon()
	if salon == 0 {
		return nil, nil
	}
	return o.svc.List(ctx, salon, o.scope.Filtro())
}

func (o *ocupacionOps) GetByID(ctx context.Context, id int) (*domain.Ocupacion, error) {
	ocupaciones, err := o.List(ctx)
	if err != nil {
		return nil, err
	}
	for i := range ocupaciones {
		if ocupaciones[i].IDOcupacion == id {
			return &ocupaciones[i], nil
		}
	}
	return nil, domain.ErrNotFound("ocupación %d no encontrada", id)
}

func (o *ocupacionOps) Create(ctx context.Context, draft domain.OcupacionRequest) (*domain.Ocupacion, error) {
	salon := o.scope.Salon()
	if salon == 0 {
		return nil, domain.ErrValidation("selecciona un salón primero")
	}
	return o.svc.Create(ctx, salon, draft)
}

func (o *ocupacionOps) Update(_ context.Context, _ int, _ domain.OcupacionRequest) (*domain.Ocupacion, error) {
	return nil, domain.ErrValidation("las ocupaciones no se pueden editar; elimina y crea una nueva")
}

func (o *ocupacionOps) Deactivate(ctx context.Context, id int) error {
	return o.svc.Delete(ctx, id)
}

// ValidateOcupacion checks the availability-block form.
func ValidateOcupacion(req domain.OcupacionRequest) error {
	v := &Validator{}
	v.PositiveInt("id_periodo_academico", req.IDPeriodoAcademico).
		Check(req.DiaSemana >= 0 && req.DiaSemana <= 6, "dia_semana debe estar entre 0 y 6").
		TimeWindow(req.HoraInicio, req.HoraFin).
		MaxLen("motivo", req.Motivo, MaxMotivo)
	return v.Err()
}

// ParseHoraFilter converts a form value to an optional int filter. Empty
// means no filter; "0" is a valid day (domingo).
func ParseHoraFilter(value string) *int {
	if value == "" {
		return nil
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return nil
	}
	return &n
}
