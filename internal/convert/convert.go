// Package convert parses cleaned console input into typed values.
//
// Each convertor implements Convertor[T]. On failure a convertor first
// calls the injected ErrorFunc (user-facing feedback) and then returns a
// *ConversionError (control flow for the calling prompt loop). Convertors
// are immutable after construction and safe for concurrent use.
package convert

import "time"

// ErrorFunc receives a failed conversion for display. format is the
// message template supplied by the caller, value is the input that
// failed, and description is the convertor's Description().
type ErrorFunc func(format, value, description string)

// Convertor converts one cleaned string into one typed value.
type Convertor[T any] interface {
	// Convert returns the typed value for value. On failure it calls
	// report (when non-nil) exactly once and returns a *ConversionError.
	Convert(value string, report ErrorFunc, format string) (T, error)

	// Description is the human-readable name of the expected value,
	// e.g. "an integer number".
	Description() string
}

// settings collects the functional options shared by all constructors.
// Each convertor reads only the fields that apply to it.
type settings struct {
	description string
	delimiter   rune
	sniff       bool
	now         func() time.Time
	location    *time.Location
}

// Option configures a convertor at construction time.
type Option func(*settings)

// WithDescription overrides the default description used in failure
// messages.
func WithDescription(desc string) Option {
	return func(s *settings) { s.description = desc }
}

// WithDelimiter sets the single-character delimiter of a List.
func WithDelimiter(r rune) Option {
	return func(s *settings) {
		s.delimiter = r
		s.sniff = false
	}
}

// WithSniffedDelimiter makes a List detect its delimiter from the input.
func WithSniffedDelimiter() Option {
	return func(s *settings) { s.sniff = true }
}

// WithClock sets the reference clock for relative dates.
func WithClock(now func() time.Time) Option {
	return func(s *settings) { s.now = now }
}

// WithLocation sets the location absolute dates are interpreted in.
func WithLocation(loc *time.Location) Option {
	return func(s *settings) { s.location = loc }
}

func newSettings(description string, opts []Option) settings {
	s := settings{
		description: description,
		delimiter:   ',',
		now:         time.Now,
		location:    time.Local,
	}
	for _, opt := range opts {
		opt(&s)
	}
	return s
}

// fail runs the two-step failure protocol: report, then return the error.
func fail(report ErrorFunc, format, value, description string, cause error) *ConversionError {
	if report != nil {
		report(format, value, description)
	}
	return &ConversionError{Value: value, Description: description, Err: cause}
}

// Erase adapts a typed convertor to Convertor[any] so convertors of
// different result types can share one slice or map.
func Erase[T any](c Convertor[T]) Convertor[any] {
	return erased[T]{c}
}

type erased[T any] struct {
	inner Convertor[T]
}

func (e erased[T]) Convert(value string, report ErrorFunc, format string) (any, error) {
	v, err := e.inner.Convert(value, report, format)
	if err != nil {
		return nil, err
	}
	return v, nil
}

func (e erased[T]) Description() string { return e.inner.Description() }
