package apiclient

import "errors"

// ErrSessionExpired marks a 401 on a request that carried a bearer token.
// By the time a caller sees it the session has already been cleared; the
// only sensible reaction is to send the user to the login entry point.
var ErrSessionExpired = errors.New("la sesión ha expirado")

// APIError is a non-success response that does not map onto one of the
// typed domain errors (or the session-expiry sentinel). Message is
// server-supplied and user-displayable.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string { return e.Message }
