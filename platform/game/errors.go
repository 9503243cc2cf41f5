package game

import (
	"errors"
	"fmt"
)

// Rejection categories. Every rejected action returns an *ActionError whose
// Kind is one of these, so callers can use errors.Is.
var (
	ErrAuthentication = errors.New("authentication failed")
	ErrTurnOrder      = errors.New("action not allowed now")
	ErrValidation     = errors.New("invalid action")
	ErrVerification   = errors.New("settlement not verified")
	ErrGameOver       = errors.New("game is over")
	ErrSessionClosed  = errors.New("session closed")
	ErrGameExists     = errors.New("game already exists")
	ErrGameNotFound   = errors.New("game not found")
)

// ActionError is a rejected action. The session state is unchanged.
type ActionError struct {
	Kind   error
	Reason string
	Err    error
}

func (e *ActionError) Error() string {
	return e.Reason
}

func (e *ActionError) Unwrap() []error {
	if e.Err == nil {
		return []error{e.Kind}
	}
	return []error{e.Kind, e.Err}
}

func reject(kind error, format string, args ...interface{}) error {
	return &ActionError{Kind: kind, Reason: fmt.Sprintf(format, args...)}
}

func wrap(kind error, err error) error {
	return &ActionError{Kind: kind, Reason: err.Error(), Err: err}
}
