package core

import (
	"errors"
	"fmt"
)

// Sentinel errors returned (wrapped) by engine operations. Match with errors.Is.
var (
	// ErrInvalidState is returned when an operation is called in the wrong
	// phase or would break a board invariant.
	ErrInvalidState = errors.New("invalid state")

	// ErrCapacityExceeded is returned when a projectile has nowhere to land.
	ErrCapacityExceeded = errors.New("capacity exceeded")

	// ErrConfigNotFound is returned when a level id is unknown.
	ErrConfigNotFound = errors.New("config not found")
)

// Error codes carried by GameError.
const (
	CodeInvalidState     = "INVALID_STATE"
	CodeCapacityExceeded = "CAPACITY_EXCEEDED"
	CodeConfigNotFound   = "CONFIG_NOT_FOUND"
)

// GameError adds a machine-readable code and context to a sentinel error.
type GameError struct {
	Code    string
	Message string
	Err     error
}

func (e *GameError) Error() string {
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

func (e *GameError) Unwrap() error {
	return e.Err
}

func invalidState(format string, args ...any) error {
	return &GameError{Code: CodeInvalidState, Message: fmt.Sprintf(format, args...), Err: ErrInvalidState}
}

func capacityExceeded(format string, args ...any) error {
	return &GameError{Code: CodeCapacityExceeded, Message: fmt.Sprintf(format, args...), Err: ErrCapacityExceeded}
}

// ConfigNotFound builds the error returned for an unknown level id.
func ConfigNotFound(id string) error {
	return &GameError{Code: CodeConfigNotFound, Message: fmt.Sprintf("level %q not found", id), Err: ErrConfigNotFound}
}

// ErrorCode extracts the code from err, or "" if err carries none.
func ErrorCode(err error) string {
	var ge *GameError
	if errors.As(err, &ge) {
		return ge.Code
	}
	return ""
}
