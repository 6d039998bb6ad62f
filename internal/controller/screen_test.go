package controller

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sasce-admin/internal/domain"
)

type fakeEntity struct {
	ID     int
	Name   string
	Active bool
}

type fakeDraft struct {
	Name string
}

// fakeOps counts every network call so tests can assert which operations
// ran (and, for local guards, that none did).
type fakeOps struct {
	items []fakeEntity

	listErr   error
	getErr    error
	createErr error
	updateErr error
	deactErr  error

	listCalls   int
	getCalls    int
	createCalls int
	updateCalls int
	deactCalls  int
}

func (f *fakeOps) List(context.Context) ([]fakeEntity, error) {
	f.listCalls++
	return f.items, f.listErr
}

func (f *fakeOps) GetByID(_ context.Context, id int) (*fakeEntity, error) {
	f.getCalls++
	if f.getErr != nil {
		return nil, f.getErr
	}
	for i := range f.items {
		if f.items[i].ID == id {
			return &f.items[i], nil
		}
	}
	return nil, domain.ErrNotFound("entidad %d no encontrada", id)
}

func (f *fakeOps) Create(_ context.Context, draft fakeDraft) (*fakeEntity, error) {
	f.createCalls++
	if f.createErr != nil {
		return nil, f.createErr
	}
	return &fakeEntity{ID: 99, Name: draft.Name, Active: true}, nil
}

func (f *fakeOps) Update(_ context.Context, id int, draft fakeDraft) (*fakeEntity, error) {
	f.updateCalls++
	if f.updateErr != nil {
		return nil, f.updateErr
	}
	return &fakeEntity{ID: id, Name: draft.Name, Active: true}, nil
}

func (f *fakeOps) Deactivate(context.Context, int) error {
	f.deactCalls++
	return f.deactErr
}

func testDescriptor(guardSelf bool) Descriptor[fakeEntity, fakeDraft] {
	return Descriptor[fakeEntity, fakeDraft]{
		EntityName: "Entidad",
		Validate: func(d fakeDraft) error {
			v := &Validator{}
			v.Require("name", d.Name)
			return v.Err()
		},
		IDOf:               func(e *fakeEntity) int { return e.ID },
		LabelOf:            func(e *fakeEntity) string { return e.Name },
		IsActive:           func(e *fakeEntity) bool { return e.Active },
		DraftOf:            func(e *fakeEntity) fakeDraft { return fakeDraft{Name: e.Name} },
		CreatedMessage:     "Entidad registrada exitosamente",
		UpdatedMessage:     "Entidad actualizada exitosamente",
		DeactivatedMessage: "Entidad desactivada exitosamente",
		GuardSelf:          guardSelf,
	}
}

func newTestScreen(ops *fakeOps, guardSelf bool) *Screen[fakeEntity, fakeDraft] {
	return NewScreen[fakeEntity, fakeDraft](ops, testDescriptor(guardSelf))
}

func TestScreen_StartsListing(t *testing.T) {
	s := newTestScreen(&fakeOps{}, false)
	assert.Equal(t, Listing, s.Mode())
	assert.Zero(t, s.RefreshTrigger())
}

func TestScreen_RefreshLoadsItems(t *testing.T) {
	ops := &fakeOps{items: []fakeEntity{{ID: 1, Name: "A", Active: true}}}
	s := newTestScreen(ops, false)

	require.NoError(t, s.Refresh(context.Background()))
	assert.Len(t, s.Items(), 1)
	assert.Empty(t, s.ErrorMessage())
}

func TestScreen_RefreshFailureKeepsItems(t *testing.T) {
	ops := &fakeOps{items: []fakeEntity{{ID: 1, Name: "A", Active: true}}}
	s := newTestScreen(ops, false)
	require.NoError(t, s.Refresh(context.Background()))

	ops.listErr = errors.New("servidor no disponible")
	require.Error(t, s.Refresh(context.Background()))
	assert.Len(t, s.Items(), 1)
	assert.Equal(t, "servidor no disponible", s.ErrorMessage())
}

func TestScreen_CreateSuccessReturnsToListing(t *testing.T) {
	ops := &fakeOps{}
	s := newTestScreen(ops, false)

	s.BeginCreate()
	assert.Equal(t, Creating, s.Mode())
	s.SetDraft(fakeDraft{Name: "Nuevo"})

	require.NoError(t, s.SubmitCreate(context.Background()))
	assert.Equal(t, Listing, s.Mode())
	assert.Equal(t, 1, s.RefreshTrigger())
	assert.Equal(t, "Entidad registrada exitosamente", s.SuccessMessage())
	assert.Equal(t, 1, ops.createCalls)
}

func TestScreen_CreateValidationFailureSkipsNetwork(t *testing.T) {
	ops := &fakeOps{}
	s := newTestScreen(ops, false)
	s.BeginCreate()
	s.SetDraft(fakeDraft{Name: "   "})

	err := s.SubmitCreate(context.Background())
	require.Error(t, err)
	var verr *domain.ValidationError
	assert.ErrorAs(t, err, &verr)
	assert.Equal(t, Creating, s.Mode())
	assert.Zero(t, ops.createCalls)
	assert.Zero(t, s.RefreshTrigger())
}

func TestScreen_CreateServerFailureStaysCreating(t *testing.T) {
	ops := &fakeOps{createErr: errors.New("El código ya existe")}
	s := newTestScreen(ops, false)
	s.BeginCreate()
	s.SetDraft(fakeDraft{Name: "Dup"})

	require.Error(t, s.SubmitCreate(context.Background()))
	assert.Equal(t, Creating, s.Mode())
	assert.Equal(t, "El código ya existe", s.ErrorMessage())
	assert.Zero(t, s.RefreshTrigger())

	// The busy flag must have been released: a retry reaches the server.
	ops.createErr = nil
	require.NoError(t, s.SubmitCreate(context.Background()))
	assert.Equal(t, 2, ops.createCalls)
}

func TestScreen_DirtyCancelNeedsConfirmation(t *testing.T) {
	s := newTestScreen(&fakeOps{}, false)
	s.BeginCreate()
	s.SetDraft(fakeDraft{Name: "Borrador"})

	err := s.Cancel(false)
	var confirm *ConfirmRequiredError
	require.ErrorAs(t, err, &confirm)
	assert.Equal(t, "cancelar", confirm.Action)
	assert.Equal(t, Creating, s.Mode())

	require.NoError(t, s.Cancel(true))
	assert.Equal(t, Listing, s.Mode())
	assert.Empty(t, s.Draft().Name)
}

func TestScreen_CleanCancelIsSilent(t *testing.T) {
	s := newTestScreen(&fakeOps{}, false)
	s.BeginCreate()
	require.NoError(t, s.Cancel(false))
	assert.Equal(t, Listing, s.Mode())
}

func TestScreen_ViewThenEdit(t *testing.T) {
	ops := &fakeOps{items: []fakeEntity{{ID: 5, Name: "Activa", Active: true}}}
	s := newTestScreen(ops, false)

	require.NoError(t, s.View(context.Background(), 5))
	assert.Equal(t, Viewing, s.Mode())
	require.NotNil(t, s.Selected())

	require.NoError(t, s.BeginEdit())
	assert.Equal(t, Editing, s.Mode())
	assert.Equal(t, "Activa", s.Draft().Name)

	s.SetDraft(fakeDraft{Name: "Renombrada"})
	require.NoError(t, s.SubmitUpdate(context.Background()))
	assert.Equal(t, Listing, s.Mode())
	assert.Equal(t, 1, s.RefreshTrigger())
	assert.Equal(t, "Entidad actualizada exitosamente", s.SuccessMessage())
	assert.Equal(t, 1, ops.updateCalls)
}

func TestScreen_EditRefusedWhenInactive(t *testing.T) {
	ops := &fakeOps{items: []fakeEntity{{ID: 5, Name: "Inactiva", Active: false}}}
	s := newTestScreen(ops, false)
	require.NoError(t, s.View(context.Background(), 5))

	require.Error(t, s.BeginEdit())
	assert.Equal(t, Viewing, s.Mode())
	assert.Contains(t, s.ErrorMessage(), "inactivo")
}

func TestScreen_FailedDetailFetchFallsBackToListing(t *testing.T) {
	ops := &fakeOps{getErr: errors.New("no encontrado")}
	s := newTestScreen(ops, false)

	require.Error(t, s.View(context.Background(), 42))
	assert.Equal(t, Listing, s.Mode())
	assert.Nil(t, s.Selected())
	assert.Equal(t, "no encontrado", s.ErrorMessage())
}

func TestScreen_DeactivateNeedsConfirmationWithLabel(t *testing.T) {
	ops := &fakeOps{}
	s := newTestScreen(ops, false)

	err := s.Deactivate(context.Background(), 3, "Grupo 10A", false, 0)
	var confirm *ConfirmRequiredError
	require.ErrorAs(t, err, &confirm)
	assert.Equal(t, "desactivar", confirm.Action)
	assert.Equal(t, "Grupo 10A", confirm.Label)
	assert.Zero(t, ops.deactCalls)

	require.NoError(t, s.Deactivate(context.Background(), 3, "Grupo 10A", true, 0))
	assert.Equal(t, 1, ops.deactCalls)
	assert.Equal(t, 1, s.RefreshTrigger())
	assert.Equal(t, "Entidad desactivada exitosamente", s.SuccessMessage())
}

func TestScreen_DeactivateServerMessagePassesThrough(t *testing.T) {
	ops := &fakeOps{deactErr: errors.New("El grupo tiene estudiantes activos")}
	s := newTestScreen(ops, false)

	err := s.Deactivate(context.Background(), 3, "Grupo 10A", true, 0)
	require.Error(t, err)
	assert.Equal(t, "El grupo tiene estudiantes activos", s.ErrorMessage())
	assert.Zero(t, s.RefreshTrigger())
}

func TestScreen_SelfDeactivationRejectedLocally(t *testing.T) {
	ops := &fakeOps{}
	s := newTestScreen(ops, true)

	err := s.Deactivate(context.Background(), 7, "Yo Mismo", true, 7)
	require.Error(t, err)
	assert.Zero(t, ops.deactCalls)
	assert.Contains(t, s.ErrorMessage(), "propia cuenta")

	// Deactivating someone else still works.
	require.NoError(t, s.Deactivate(context.Background(), 8, "Otra Persona", true, 7))
	assert.Equal(t, 1, ops.deactCalls)
}

func TestScreen_BusyRejectsConcurrentMutation(t *testing.T) {
	s := newTestScreen(&fakeOps{}, false)
	require.NoError(t, s.acquire())

	s.BeginCreate()
	s.SetDraft(fakeDraft{Name: "X"})
	assert.ErrorIs(t, s.SubmitCreate(context.Background()), ErrBusy)
	assert.ErrorIs(t, s.Refresh(context.Background()), ErrBusy)
	assert.ErrorIs(t, s.Deactivate(context.Background(), 1, "x", true, 0), ErrBusy)
}

func TestScreen_RefreshTriggerCountsMutationsOnly(t *testing.T) {
	ops := &fakeOps{items: []fakeEntity{{ID: 1, Name: "A", Active: true}}}
	s := newTestScreen(ops, false)

	require.NoError(t, s.Refresh(context.Background()))
	require.NoError(t, s.Refresh(context.Background()))
	assert.Zero(t, s.RefreshTrigger())

	s.BeginCreate()
	s.SetDraft(fakeDraft{Name: "B"})
	require.NoError(t, s.SubmitCreate(context.Background()))
	require.NoError(t, s.Deactivate(context.Background(), 1, "A", true, 0))
	assert.Equal(t, 2, s.RefreshTrigger())
}

func TestScreen_SuccessMessageExpires(t *testing.T) {
	ops := &fakeOps{}
	s := newTestScreen(ops, false)
	current := time.Now()
	s.now = func() time.Time { return current }

	s.BeginCreate()
	s.SetDraft(fakeDraft{Name: "Nuevo"})
	require.NoError(t, s.SubmitCreate(context.Background()))
	assert.NotEmpty(t, s.SuccessMessage())

	current = current.Add(successTTL + time.Second)
	assert.Empty(t, s.SuccessMessage())
}

func TestScreen_ActivateRequiresSupport(t *testing.T) {
	s := newTestScreen(&fakeOps{}, false)
	require.Error(t, s.Activate(context.Background(), 1))
}

type fakeOpsWithActivate struct {
	fakeOps
	activateCalls int
}

func (f *fakeOpsWithActivate) Activate(context.Context, int) error {
	f.activateCalls++
	return nil
}

func TestScreen_ActivateBumpsTrigger(t *testing.T) {
	ops := &fakeOpsWithActivate{}
	desc := testDescriptor(false)
	desc.ActivatedMessage = "Entidad activada exitosamente"
	s := NewScreen[fakeEntity, fakeDraft](ops, desc)

	require.NoError(t, s.Activate(context.Background(), 2))
	assert.Equal(t, 1, ops.activateCalls)
	assert.Equal(t, 1, s.RefreshTrigger())
	assert.Equal(t, "Entidad activada exitosamente", s.SuccessMessage())
}
