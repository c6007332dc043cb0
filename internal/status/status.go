// Package status holds the order and table lifecycles. Both are explicit
// transition tables; anything not listed is rejected with a *TransitionError.
package status

import (
	"errors"
	"fmt"
)

var (
	ErrIllegalTransition = errors.New("illegal status transition")
	ErrUnknownStatus     = errors.New("unknown status")
)

// TransitionError describes a rejected transition. It matches
// ErrIllegalTransition or ErrUnknownStatus with errors.Is.
type TransitionError struct {
	Entity string
	From   string
	To     string
	Err    error
}

func (e *TransitionError) Error() string {
	return fmt.Sprintf("%s: %s -> %s: %v", e.Entity, e.From, e.To, e.Err)
}

func (e *TransitionError) Unwrap() error { return e.Err }
