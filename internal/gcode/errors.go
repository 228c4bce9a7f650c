package gcode

import "errors"

var (
	ErrUnknownCommand     = errors.New("gcode: unknown command")
	ErrInvalidJointFormat = errors.New("gcode: invalid joint format")
)

// ParseError carries the user-facing reason for a rejected line. Err
// classifies the failure for programmatic callers; Reason is rendered
// verbatim after the "error: " prefix.
type ParseError struct {
	Reason string
	Err    error
}

func (e *ParseError) Error() string { return e.Err.Error() + ": " + e.Reason }

func (e *ParseError) Unwrap() error { return e.Err }

func newParseError(err error, reason string) *ParseError {
	return &ParseError{Reason: reason, Err: err}
}
