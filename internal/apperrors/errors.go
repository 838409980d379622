package apperrors

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

var (
	// Refresh attempted with nothing to refresh. Local precondition, no
	// network call is made when this is returned.
	ErrNoRefreshToken = errors.New("no refresh token stored")

	ErrUserNotCached = errors.New("no user profile cached")
)

// ValidationError reports local, pre-network field constraint violations.
// The request never reaches the server when this error is returned.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	if len(e.Fields) == 0 {
		return "validation failed"
	}

	// Sort field names so the message is stable
	names := make([]string, 0, len(e.Fields))
	for name := range e.Fields {
		names = append(names, name)
	}
	sort.Strings(names)

	parts := make([]string, 0, len(names))
	for _, name := range names {
		parts = append(parts, name+": "+e.Fields[name])
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// FieldError is a single field complaint extracted from a server response
type FieldError struct {
	Field   string
	Message string
}

// AuthError is a server-side rejection of credentials or registration data.
// Message is human readable; Fields carries the structured per-field
// feedback when the server provided one.
type AuthError struct {
	Status  int
	Message string
	Fields  []FieldError
}

func (e *AuthError) Error() string {
	return fmt.Sprintf("auth rejected (status %d): %s", e.Status, e.Message)
}

// NetworkError means the request never reached the server or no response
// came back. The wrapped transport error is kept for logging only.
type NetworkError struct {
	Err error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("no se pudo conectar con el servidor: %v", e.Err)
}

func (e *NetworkError) Unwrap() error { return e.Err }

// ServerError is a 5xx-class response. The message is intentionally generic,
// server internals are not exposed to the user.
type ServerError struct {
	Status int
}

func (e *ServerError) Error() string {
	return fmt.Sprintf("error en el servidor (status %d), intenta nuevamente más tarde", e.Status)
}

// IsValidation reports whether err is a local validation failure
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

// IsAuth reports whether err is a server-side auth rejection
func IsAuth(err error) bool {
	var ae *AuthError
	return errors.As(err, &ae)
}

// IsNetwork reports whether err is a connectivity failure
func IsNetwork(err error) bool {
	var ne *NetworkError
	return errors.As(err, &ne)
}
