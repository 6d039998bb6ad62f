// Package session owns the authentication state shared by every surface of
// the application. A Store starts out Loading, resolves to Anonymous or
// Authenticated after Initialize, and transitions between the two through
// Login, Logout and server-side 401 rejections.
package session

import (
	"context"
	"sync"

	"sasce-admin/internal/domain"
)

// State is the lifecycle phase of a session.
type State int

const (
	// Loading means persisted credentials have not been restored yet.
	// Callers should not treat it as logged-out; routing decisions wait
	// until Initialize has run.
	Loading State = iota
	// Anonymous means no valid session exists.
	Anonymous
	// Authenticated means a token and user record are held.
	Authenticated
)

func (s State) String() string {
	switch s {
	case Loading:
		return "loading"
	case Anonymous:
		return "anonymous"
	case Authenticated:
		return "authenticated"
	}
	return "unknown"
}

// Authenticator exchanges credentials for a token and user record.
// services.AuthService satisfies it.
type Authenticator interface {
	Login(ctx context.Context, correo, password string) (string, *domain.Usuario, error)
}

// Snapshot is the persisted form of a session.
type Snapshot struct {
	Token   string          `yaml:"token"`
	Usuario *domain.Usuario `yaml:"usuario"`
}

// Storage persists a session across restarts. Load returns (nil, nil) when
// nothing is stored.
type Storage interface {
	Load() (*Snapshot, error)
	Save(*Snapshot) error
	Clear() error
}

// Store holds the current session. It is safe for concurrent use and
// implements apiclient.Authorizer, so a 401 from any API call tears the
// session down through SessionExpired.
type Store struct {
	mu      sync.RWMutex
	state   State
	token   string
	usuario *domain.Usuario

	auth    Authenticator
	storage Storage
}

// NewStore creates a Store in the Loading state. storage may be nil for
// purely in-memory sessions.
func NewStore(auth Authenticator, storage Storage) *Store {
	return &Store{state: Loading, auth: auth, storage: storage}
}

// Initialize restores a persisted session, resolving the Loading state.
// A storage read failure degrades to Anonymous rather than blocking entry.
func (s *Store) Initialize() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.storage == nil {
		s.state = Anonymous
		return nil
	}
	snap, err := s.storage.Load()
	if err != nil || snap == nil || snap.Token == "" || snap.Usuario == nil {
		s.state = Anonymous
		s.token = ""
		s.usuario = nil
		return err
	}
	s.state = Authenticated
	s.token = snap.Token
	s.usuario = snap.Usuario
	return nil
}

// Login authenticates against the server and, on success, stores the
// session in memory and in storage. On failure the previous state is kept.
func (s *Store) Login(ctx context.Context, correo, password string) (*domain.Usuario, error) {
	token, usuario, err := s.auth.Login(ctx, correo, password)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	s.state = Authenticated
	s.token = token
	s.usuario = usuario
	storage := s.storage
	s.mu.Unlock()

	if storage != nil {
		if err := storage.Save(&Snapshot{Token: token, Usuario: usuario}); err != nil {
			return usuario, err
		}
	}
	return usuario, nil
}

// Restore installs an already-issued session, skipping the login exchange.
// Used when credentials arrive from a trusted source such as the web
// surface's own cookies.
func (s *Store) Restore(token string, usuario *domain.Usuario) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = Authenticated
	s.token = token
	s.usuario = usuario
}

// Logout discards the session. It is idempotent and purely local: the API
// has no logout endpoint, the token is simply forgotten.
func (s *Store) Logout() {
	s.clear()
}

// SessionExpired implements apiclient.Authorizer. The gateway calls it when
// the server rejects the token.
func (s *Store) SessionExpired() {
	s.clear()
}

func (s *Store) clear() {
	s.mu.Lock()
	s.state = Anonymous
	s.token = ""
	s.usuario = nil
	storage := s.storage
	s.mu.Unlock()

	if storage != nil {
		_ = storage.Clear()
	}
}

// Token implements apiclient.Authorizer.
func (s *Store) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token
}

// State returns the current lifecycle phase.
func (s *Store) State() State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state
}

// CurrentUser returns the authenticated user, or nil.
func (s *Store) CurrentUser() *domain.Usuario {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.usuario
}

// IsAuthenticated reports whether a session is held.
func (s *Store) IsAuthenticated() bool {
	return s.State() == Authenticated
}

// Role returns the current user's role, or 0 when anonymous.
func (s *Store) Role() domain.Role {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.usuario == nil {
		return 0
	}
	return s.usuario.IDRol
}

// IsAdministrador reports whether the current user is an administrator.
func (s *Store) IsAdministrador() bool { return s.Role() == domain.RoleAdministrador }

// IsCoordinador reports whether the current user is an academic coordinator.
func (s *Store) IsCoordinador() bool { return s.Role() == domain.RoleCoordinador }

// IsCoordinadorInfra reports whether the current user manages rooms and
// availability.
func (s *Store) IsCoordinadorInfra() bool {
	return s.Role() == domain.RoleCoordinadorInfra
}
