package convert

import (
	"errors"
	"fmt"
)

// Causes wrapped by *ConversionError.
var (
	ErrInvalidBase   = errors.New("int base must be >= 2 and <= 36, or 0")
	ErrNotInteger    = errors.New("invalid integer literal")
	ErrNotFloat      = errors.New("invalid float literal")
	ErrNotBoolean    = errors.New("value not true or false")
	ErrNotYesNo      = errors.New("value not yes or no")
	ErrUnknownChoice = errors.New("value not a valid choice")
	ErrNotDate       = errors.New("value not a valid date")
	ErrNotPhone      = errors.New("value not a valid phone number")
	ErrNotInTable    = errors.New("value not found in table")
	ErrSniff         = errors.New("could not determine delimiter")
)

// ConversionError is returned by every convertor when the input cannot
// be converted. The error callback has already been called by the time
// the caller sees it.
type ConversionError struct {
	// Value is the input that failed.
	Value string

	// Description names the expected value (the convertor's
	// Description, or the element convertor's for a List).
	Description string

	// Suggestion is the closest accepted token, when the convertor
	// matches against a fixed token set and one is near enough.
	Suggestion string

	// Err is the underlying cause.
	Err error
}

func (e *ConversionError) Error() string {
	msg := fmt.Sprintf("cannot convert %q to %s", e.Value, e.Description)
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *ConversionError) Unwrap() error { return e.Err }
