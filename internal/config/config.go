// Package config loads form files and environment settings for cooked.
//
// A form file is YAML listing the questions to ask. Settings come from
// COOKED_* environment variables and apply to every question unless the
// form overrides them.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"os"

	"github.com/joeshaw/envdecode"
	"gopkg.in/yaml.v3"
)

// Settings holds environment-level defaults.
type Settings struct {
	// MaxRetries bounds failed attempts per question. 0 means unlimited.
	MaxRetries int `env:"COOKED_MAX_RETRIES,default=0,strict"`

	// ErrorFormat overrides the conversion error template.
	ErrorFormat string `env:"COOKED_ERROR_FORMAT"`

	// NoColor disables styling.
	NoColor bool `env:"COOKED_NO_COLOR,default=false,strict"`
}

// DefaultSettings returns the settings used when no environment
// variable is set.
func DefaultSettings() Settings {
	return Settings{}
}

// LoadSettings reads Settings from the environment.
func LoadSettings() (Settings, error) {
	s := DefaultSettings()
	if err := envdecode.Decode(&s); err != nil && !errors.Is(err, envdecode.ErrNoTargetFieldsAreSet) {
		return Settings{}, fmt.Errorf("reading COOKED_* environment: %w", err)
	}
	if s.MaxRetries < 0 {
		return Settings{}, fmt.Errorf("COOKED_MAX_RETRIES must be >= 0, got %d", s.MaxRetries)
	}
	return s, nil
}

// TableRow is one row of a table question.
type TableRow struct {
	ID    int    `yaml:"id" json:"id"`
	Value string `yaml:"value" json:"value"`
}

// Question describes one prompt of a form.
type Question struct {
	Name   string `yaml:"name" json:"name" jsonschema:"required,description=Key of the answer in the output"`
	Kind   string `yaml:"kind" json:"kind" jsonschema:"required,enum=int,enum=float,enum=bool,enum=list,enum=date,enum=yesno,enum=choice,enum=table,enum=phone,enum=string"`
	Prompt string `yaml:"prompt,omitempty" json:"prompt,omitempty"`

	// Description replaces the default error_content of the convertor.
	Description string `yaml:"description,omitempty" json:"description,omitempty"`

	Default string `yaml:"default,omitempty" json:"default,omitempty"`
	BlankOK bool   `yaml:"blank_ok,omitempty" json:"blank_ok,omitempty"`

	// Base applies to int questions and list elements of kind int.
	// Omitted means 10; 0 infers the radix from a 0b/0o/0x prefix.
	Base *int `yaml:"base,omitempty" json:"base,omitempty" jsonschema:"minimum=0,maximum=36,default=10,description=Integer radix: 0 infers from a 0b/0o/0x prefix; omitted means 10"`

	// Delimiter, Sniff and Elem apply to list questions.
	Delimiter string `yaml:"delimiter,omitempty" json:"delimiter,omitempty" jsonschema:"maxLength=1"`
	Sniff     bool   `yaml:"sniff,omitempty" json:"sniff,omitempty"`
	Elem      string `yaml:"elem,omitempty" json:"elem,omitempty" jsonschema:"enum=int,enum=float,enum=bool,enum=date,enum=yesno,enum=phone,enum=string"`

	// Choices maps accepted input to the answer value.
	Choices map[string]string `yaml:"choices,omitempty" json:"choices,omitempty"`

	// Table and Mode apply to table questions.
	Table []TableRow `yaml:"table,omitempty" json:"table,omitempty"`
	Mode  string     `yaml:"mode,omitempty" json:"mode,omitempty" jsonschema:"enum=value,enum=id,enum=id_or_value"`

	// Region is the default phone region, e.g. "US".
	Region string `yaml:"region,omitempty" json:"region,omitempty"`

	// Cleaners run in order before conversion.
	Cleaners []string `yaml:"cleaners,omitempty" json:"cleaners,omitempty" jsonschema:"uniqueItems=true"`
}

// DefaultBase is the radix of int questions that omit base.
const DefaultBase = 10

// IntBase returns the configured radix, or DefaultBase when unset.
func (q Question) IntBase() int {
	if q.Base == nil {
		return DefaultBase
	}
	return *q.Base
}

// Form is the top-level form file.
type Form struct {
	Title       string     `yaml:"title,omitempty" json:"title,omitempty"`
	ErrorFormat string     `yaml:"error_format,omitempty" json:"error_format,omitempty"`
	MaxRetries  int        `yaml:"max_retries,omitempty" json:"max_retries,omitempty" jsonschema:"minimum=0"`
	Questions   []Question `yaml:"questions" json:"questions" jsonschema:"required,minItems=1"`
}

// LoadForm reads and validates a form file.
func LoadForm(path string) (*Form, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading form: %w", err)
	}
	f, err := ParseForm(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return f, nil
}

// ParseForm decodes YAML form data. Unknown keys are rejected.
func ParseForm(data []byte) (*Form, error) {
	var f Form
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&f); err != nil {
		return nil, fmt.Errorf("parsing form: %w", err)
	}
	if err := f.Validate(); err != nil {
		return nil, err
	}
	return &f, nil
}

// Validate checks structural constraints that YAML decoding cannot.
// Kind-specific checks happen when the form's convertors are built.
func (f *Form) Validate() error {
	if len(f.Questions) == 0 {
		return errors.New("form has no questions")
	}
	if f.MaxRetries < 0 {
		return fmt.Errorf("max_retries must be >= 0, got %d", f.MaxRetries)
	}
	seen := make(map[string]bool, len(f.Questions))
	for i, q := range f.Questions {
		if q.Name == "" {
			return fmt.Errorf("question %d: name is required", i+1)
		}
		if seen[q.Name] {
			return fmt.Errorf("question %q: duplicate name", q.Name)
		}
		seen[q.Name] = true
		if q.Kind == "" {
			return fmt.Errorf("question %q: kind is required", q.Name)
		}
	}
	return nil
}

// Merge returns the form-level settings with env settings as fallback.
func (f *Form) Merge(s Settings) Settings {
	out := s
	if f.ErrorFormat != "" {
		out.ErrorFormat = f.ErrorFormat
	}
	if f.MaxRetries > 0 {
		out.MaxRetries = f.MaxRetries
	}
	return out
}
