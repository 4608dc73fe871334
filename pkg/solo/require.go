package solo

import (
	"errors"
	"fmt"
)

// Flag require flag
type Flag int

const (
	// FlagNoisy log the failure at a higher level
	FlagNoisy Flag = iota + 1
)

// Error a named check failure. Msg identifies which check failed and
// its relevant operands so callers can distinguish transient failures
// from permanent ones.
type Error struct {
	Msg   string
	Flags []Flag
}

func (e *Error) Error() string {
	return e.Msg
}

// HasFlag has flag
func (e *Error) HasFlag(flag Flag) bool {
	for _, f := range e.Flags {
		if f == flag {
			return true
		}
	}

	return false
}

// Require returns a tagged error unless the condition holds
func Require(condition bool, msg string, flags ...Flag) error {
	if condition {
		return nil
	}

	return &Error{Msg: msg, Flags: flags}
}

// RequireCode like Require but wraps a taxonomy code so callers can
// match with errors.Is while still seeing which named check failed
func RequireCode(condition bool, code error, msg string) error {
	if condition {
		return nil
	}

	return fmt.Errorf("%s: %w", msg, code)
}

// IsRequireError is the error a require failure
func IsRequireError(err error) bool {
	var e *Error
	return errors.As(err, &e)
}
