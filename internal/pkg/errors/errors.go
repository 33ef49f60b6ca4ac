// Package errors classifies collaborator failures into the user-facing
// taxonomy the CLI reports: session expiry, permission, not-found,
// validation, server and network failures. Every class maps to one
// notification style; none is retried.
package errors

import (
	"errors"
	"fmt"

	"github.com/gymstack/gymctl/pkg/client"
)

// Kind is the failure class of a collaborator error.
type Kind int

const (
	KindNetwork    Kind = iota // request never produced an API response
	KindAuth                   // 401: session expired or missing
	KindForbidden              // 403
	KindNotFound               // 404
	KindValidation             // 422, with field messages
	KindConflict               // 409, e.g. delete blocked by references
	KindServer                 // 5xx
)

// AppError is a classified collaborator error carrying the message shown
// to the user.
type AppError struct {
	Kind     Kind
	Message  string
	Fields   []string // field-level messages for KindValidation
	Internal error
}

// Error implements the error interface.
func (e *AppError) Error() string {
	if e.Internal != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Internal)
	}
	return e.Message
}

// Unwrap returns the internal error for errors.Is and errors.As.
func (e *AppError) Unwrap() error {
	return e.Internal
}

// Classify maps any collaborator error onto the taxonomy. The action verb
// ("load members", "update trainer") is woven into the message.
func Classify(action string, err error) *AppError {
	var apiErr *client.APIError
	if !errors.As(err, &apiErr) {
		return &AppError{
			Kind:     KindNetwork,
			Message:  fmt.Sprintf("could not %s: network or connection failure", action),
			Internal: err,
		}
	}

	switch {
	case apiErr.IsUnauthorized():
		return &AppError{
			Kind:     KindAuth,
			Message:  "your session has expired, please log in again",
			Internal: err,
		}
	case apiErr.IsForbidden():
		return &AppError{
			Kind:     KindForbidden,
			Message:  fmt.Sprintf("you do not have permission to %s", action),
			Internal: err,
		}
	case apiErr.IsNotFound():
		return &AppError{
			Kind:     KindNotFound,
			Message:  fmt.Sprintf("could not %s: not found", action),
			Internal: err,
		}
	case apiErr.IsValidation():
		return &AppError{
			Kind:     KindValidation,
			Message:  fmt.Sprintf("could not %s: validation failed", action),
			Fields:   apiErr.FieldMessages(),
			Internal: err,
		}
	case apiErr.IsConflict():
		return &AppError{
			Kind:     KindConflict,
			Message:  fmt.Sprintf("could not %s: %s", action, apiErr.Message),
			Internal: err,
		}
	default:
		return &AppError{
			Kind:     KindServer,
			Message:  fmt.Sprintf("could not %s: the server reported an error", action),
			Internal: err,
		}
	}
}

// IsAuth reports whether err is a session-expiry failure, which callers
// treat globally (clear credentials, prompt re-login).
func IsAuth(err error) bool {
	var appErr *AppError
	return errors.As(err, &appErr) && appErr.Kind == KindAuth
}
