// Package controller implements the state machine behind every management
// screen. One Screen instance exists per login session and module; the
// surfaces (web pages, CLI) read its state and drive it through actions.
package controller

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"
)

// Mode is the screen's current interaction phase.
type Mode int

const (
	// Listing shows the entity table.
	Listing Mode = iota
	// Creating shows the blank entity form.
	Creating
	// Viewing shows a single entity read-only.
	Viewing
	// Editing shows the entity form seeded from the selected entity.
	Editing
)

func (m Mode) String() string {
	switch m {
	case Listing:
		return "listing"
	case Creating:
		return "creating"
	case Viewing:
		return "viewing"
	case Editing:
		return "editing"
	}
	return "unknown"
}

// ErrBusy is returned when an action arrives while a previous operation is
// still in flight. At most one mutating call runs at a time.
var ErrBusy = errors.New("hay una operación en curso")

// ConfirmRequiredError signals that the action needs explicit confirmation
// before it runs: abandoning a dirty form, or deactivating an entity.
type ConfirmRequiredError struct {
	// Action is what will happen on confirmation ("cancelar", "desactivar").
	Action string
	// Label names the affected entity for the confirmation prompt.
	Label string
}

func (e *ConfirmRequiredError) Error() string {
	if e.Label == "" {
		return fmt.Sprintf("confirmación requerida para %s", e.Action)
	}
	return fmt.Sprintf("confirmación requerida para %s %q", e.Action, e.Label)
}

// Ops is the network surface a screen drives. The entity services adapt to
// it per module.
type Ops[E, D any] interface {
	List(ctx context.Context) ([]E, error)
	GetByID(ctx context.Context, id int) (*E, error)
	Create(ctx context.Context, draft D) (*E, error)
	Update(ctx context.Context, id int, draft D) (*E, error)
	Deactivate(ctx context.Context, id int) error
}

// ActivateOps is implemented by modules that can also reactivate entities
// (users). Modules without it only deactivate.
type ActivateOps interface {
	Activate(ctx context.Context, id int) error
}

// Descriptor supplies the per-entity pieces the generic machine cannot know.
type Descriptor[E, D any] struct {
	// EntityName is the display name used in messages ("Grupo").
	EntityName string
	// Validate checks a draft before it is sent. nil means no client-side
	// validation.
	Validate func(D) error
	// IDOf extracts the server-assigned id.
	IDOf func(*E) int
	// LabelOf names the entity in confirmation prompts.
	LabelOf func(*E) string
	// IsActive reports the entity's soft-delete flag. nil means entities
	// are never considered inactive.
	IsActive func(*E) bool
	// DraftOf seeds the edit form from an existing entity.
	DraftOf func(*E) D
	// CreatedMessage, UpdatedMessage, DeactivatedMessage, ActivatedMessage
	// are the success flashes shown after each mutation.
	CreatedMessage     string
	UpdatedMessage     string
	DeactivatedMessage string
	ActivatedMessage   string
	// GuardSelf rejects deactivating the entity whose id matches the
	// current user, without a network call. Only the user module sets it.
	GuardSelf bool
}

const successTTL = 5 * time.Second

// Screen is the state machine for one management screen. Safe for
// concurrent use; mutating actions are single-flight.
type Screen[E, D any] struct {
	ops  Ops[E, D]
	desc Descriptor[E, D]

	mu       sync.Mutex
	mode     Mode
	busy     bool
	items    []E
	selected *E
	draft    D
	dirty    bool

	errMsg     string
	successMsg string
	successAt  time.Time
	refresh    int

	now func() time.Time
}

// NewScreen creates a screen in Listing mode with no data loaded.
func NewScreen[E, D any](ops Ops[E, D], desc Descriptor[E, D]) *Screen[E, D] {
	return &Screen[E, D]{ops: ops, desc: desc, now: time.Now}
}

// Mode returns the current interaction phase.
func (s *Screen[E, D]) Mode() Mode {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.mode
}

// Items returns the last loaded entity list.
func (s *Screen[E, D]) Items() []E {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.items
}

// Selected returns the entity shown in Viewing/Editing mode, or nil.
func (s *Screen[E, D]) Selected() *E {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.selected
}

// Draft returns the form contents being edited.
func (s *Screen[E, D]) Draft() D {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.draft
}

// SetDraft replaces the form contents and marks the form dirty.
func (s *Screen[E, D]) SetDraft(draft D) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.draft = draft
	s.dirty = true
}

// ErrorMessage returns the current error flash, if any.
func (s *Screen[E, D]) ErrorMessage() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.errMsg
}

// SuccessMessage returns the current success flash. It expires on its own
// after a short interval.
func (s *Screen[E, D]) SuccessMessage() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.successMsg != "" && s.now().Sub(s.successAt) > successTTL {
		s.successMsg = ""
	}
	return s.successMsg
}

// RefreshTrigger increments exactly once per successful mutation. Surfaces
// refetch the list when it changes.
func (s *Screen[E, D]) RefreshTrigger() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.refresh
}

// Refresh loads the entity list. A failure keeps the previous items and
// records the error message.
func (s *Screen[E, D]) Refresh(ctx context.Context) error {
	if err := s.acquire(); err != nil {
		return err
	}
	items, err := s.ops.List(ctx)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.busy = false
	if err != nil {
		s.errMsg = err.Error()
		return err
	}
	s.items = items
	s.errMsg = ""
	return nil
}

// BeginCreate opens the blank form.
func (s *Screen[E, D]) BeginCreate() {
	s.mu.Lock()
	defer s.mu.Unlock()
	var zero D
	s.mode = Creating
	s.draft = zero
	s.dirty = false
	s.errMsg = ""
	s.successMsg = ""
}

// SubmitCreate validates the draft and sends it. Success returns the screen
// to Listing with a flash; failure stays in Creating with the error shown.
func (s *Screen[E, D]) SubmitCreate(ctx context.Context) error {
	if err := s.validateDraft(Creating); err != nil {
		return err
	}
	if err := s.acquire(); err != nil {
		return err
	}
	draft := s.Draft()
	_, err := s.ops.Create(ctx, draft)
	return s.finishMutation(err, s.desc.CreatedMessage)
}

// View fetches one entity and shows it. A failed fetch falls back to
// Listing with the error message set.
func (s *Screen[E, D]) View(ctx context.Context, id int) error {
	if err := s.acquire(); err != nil {
		return err
	}
	entity, err := s.ops.GetByID(ctx, id)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.busy = false
	if err != nil {
		s.mode = Listing
		s.selected = nil
		s.errMsg = err.Error()
		return err
	}
	s.mode = Viewing
	s.selected = entity
	s.errMsg = ""
	return nil
}

// BeginEdit moves from Viewing to Editing, seeding the form from the
// selected entity. Inactive entities cannot be edited.
func (s *Screen[E, D]) BeginEdit() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.mode != Viewing || s.selected == nil {
		return fmt.Errorf("no hay %s seleccionado", s.desc.EntityName)
	}
	if s.desc.IsActive != nil && !s.desc.IsActive(s.selected) {
		s.errMsg = fmt.Sprintf("No se puede editar un %s inactivo", s.desc.EntityName)
		return errors.New(s.errMsg)
	}
	s.mode = Editing
	if s.desc.DraftOf != nil {
		s.draft = s.desc.DraftOf(s.selected)
	}
	s.dirty = false
	s.errMsg = ""
	return nil
}

// SubmitUpdate validates the draft and sends it for the selected entity.
func (s *Screen[E, D]) SubmitUpdate(ctx context.Context) error {
	if err := s.validateDraft(Editing); err != nil {
		return err
	}

	s.mu.Lock()
	if s.mode != Editing || s.selected == nil {
		s.mu.Unlock()
		return fmt.Errorf("no hay %s seleccionado", s.desc.EntityName)
	}
	id := s.desc.IDOf(s.selected)
	s.mu.Unlock()

	if err := s.acquire(); err != nil {
		return err
	}
	draft := s.Draft()
	_, err := s.ops.Update(ctx, id, draft)
	return s.finishMutation(err, s.desc.UpdatedMessage)
}

// Cancel abandons the current form or detail view and returns to Listing.
// Leaving a dirty form requires confirmation; a clean cancel is silent.
func (s *Screen[E, D]) Cancel(confirmed bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.dirty && !confirmed {
		return &ConfirmRequiredError{Action: "cancelar"}
	}
	var zero D
	s.mode = Listing
	s.selected = nil
	s.draft = zero
	s.dirty = false
	s.errMsg = ""
	return nil
}

// Deactivate soft-deletes an entity after explicit confirmation. The
// confirmation error carries the entity label for the prompt. currentUserID
// feeds the self-deactivation guard on screens that carry it.
func (s *Screen[E, D]) Deactivate(ctx context.Context, id int, label string, confirmed bool, currentUserID int) error {
	if s.desc.GuardSelf && id == currentUserID {
		s.mu.Lock()
		s.errMsg = "No puedes desactivar tu propia cuenta"
		s.mu.Unlock()
		return errors.New("no puedes desactivar tu propia cuenta")
	}
	if !confirmed {
		return &ConfirmRequiredError{Action: "desactivar", Label: label}
	}
	if err := s.acquire(); err != nil {
		return err
	}
	err := s.ops.Deactivate(ctx, id)
	return s.finishMutation(err, s.desc.DeactivatedMessage)
}

// Activate reactivates an entity on screens whose operations support it.
func (s *Screen[E, D]) Activate(ctx context.Context, id int) error {
	activator, ok := s.ops.(ActivateOps)
	if !ok {
		return fmt.Errorf("%s no admite reactivación", s.desc.EntityName)
	}
	if err := s.acquire(); err != nil {
		return err
	}
	err := activator.Activate(ctx, id)
	return s.finishMutation(err, s.desc.ActivatedMessage)
}

// acquire marks the screen busy, failing with ErrBusy when an operation is
// already in flight.
func (s *Screen[E, D]) acquire() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.busy {
		return ErrBusy
	}
	s.busy = true
	return nil
}

// validateDraft runs client-side validation without touching the network.
// The screen must currently be in the given form mode.
func (s *Screen[E, D]) validateDraft(want Mode) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.mode != want {
		return fmt.Errorf("la pantalla no está en modo %s", want)
	}
	if s.desc.Validate == nil {
		return nil
	}
	if err := s.desc.Validate(s.draft); err != nil {
		s.errMsg = err.Error()
		return err
	}
	return nil
}

// finishMutation releases the busy flag and applies the outcome: success
// returns to Listing, bumps the refresh trigger and sets the flash; failure
// keeps the current mode with the server's message shown verbatim.
func (s *Screen[E, D]) finishMutation(err error, successMsg string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.busy = false
	if err != nil {
		s.errMsg = err.Error()
		return err
	}
	var zero D
	s.mode = Listing
	s.selected = nil
	s.draft = zero
	s.dirty = false
	s.errMsg = ""
	s.successMsg = successMsg
	s.successAt = s.now()
	s.refresh++
	return nil
}
