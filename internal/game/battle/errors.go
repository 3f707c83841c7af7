package battle

import (
	"errors"
	"fmt"
)

// ErrInvalidSelection is matched by every rejected actor, action, spell, item
// or target choice. A rejected choice changes nothing and does not consume a turn.
var ErrInvalidSelection = errors.New("invalid selection")

// ErrInvalidPhase is returned when an operation is called in a phase that does not allow it.
var ErrInvalidPhase = errors.New("invalid phase")

// SelectionError describes which part of a choice was rejected.
type SelectionError struct {
	// Field is one of "actor", "action", "spell", "item", "target".
	Field  string
	Index  int
	Reason string
}

// Error implements error.
func (e *SelectionError) Error() string {
	return fmt.Sprintf("invalid selection: %s %d: %s", e.Field, e.Index, e.Reason)
}

// Unwrap makes errors.Is(err, ErrInvalidSelection) hold.
func (e *SelectionError) Unwrap() error { return ErrInvalidSelection }

func invalid(field string, index int, format string, args ...any) error {
	return &SelectionError{Field: field, Index: index, Reason: fmt.Sprintf(format, args...)}
}

func phaseError(op string, p Phase) error {
	return fmt.Errorf("%w: %s not allowed during %s", ErrInvalidPhase, op, p)
}
