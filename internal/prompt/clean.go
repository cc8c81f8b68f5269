package prompt

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Cleaner normalizes raw input before it reaches a convertor.
type Cleaner interface {
	Clean(s string) string
}

// CleanerFunc adapts a function to Cleaner.
type CleanerFunc func(string) string

func (f CleanerFunc) Clean(s string) string { return f(s) }

// Strip trims whitespace from the selected ends.
type Strip struct {
	Left  bool
	Right bool
}

func (c Strip) Clean(s string) string {
	if c.Left {
		s = strings.TrimLeftFunc(s, unicode.IsSpace)
	}
	if c.Right {
		s = strings.TrimRightFunc(s, unicode.IsSpace)
	}
	return s
}

// Lower lowercases input.
type Lower struct{}

func (Lower) Clean(s string) string { return cases.Lower(language.Und).String(s) }

// Upper uppercases input.
type Upper struct{}

func (Upper) Clean(s string) string { return cases.Upper(language.Und).String(s) }

// Capitalize uppercases the first letter and lowercases the rest, of
// the first word only or of every word.
type Capitalize struct {
	AllWords bool
}

func (c Capitalize) Clean(s string) string {
	if c.AllWords {
		return cases.Title(language.Und).String(s)
	}
	lower := cases.Lower(language.Und).String(s)
	_, size := utf8.DecodeRuneInString(lower)
	return cases.Upper(language.Und).String(lower[:size]) + lower[size:]
}

// Replace substitutes New for Old, at most Count times (all when
// Count <= 0).
type Replace struct {
	Old   string
	New   string
	Count int
}

func (c Replace) Clean(s string) string {
	n := c.Count
	if n <= 0 {
		n = -1
	}
	return strings.Replace(s, c.Old, c.New, n)
}

// Apply runs cleaners in order.
func Apply(s string, cleaners []Cleaner) string {
	for _, c := range cleaners {
		s = c.Clean(s)
	}
	return s
}

// ParseCleaner returns the cleaner named by a form file or CLI flag:
// strip, lstrip, rstrip, lower, upper, capitalize or title.
func ParseCleaner(name string) (Cleaner, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "strip":
		return Strip{Left: true, Right: true}, nil
	case "lstrip":
		return Strip{Left: true}, nil
	case "rstrip":
		return Strip{Right: true}, nil
	case "lower":
		return Lower{}, nil
	case "upper":
		return Upper{}, nil
	case "capitalize":
		return Capitalize{}, nil
	case "title":
		return Capitalize{AllWords: true}, nil
	}
	return nil, fmt.Errorf("unknown cleaner %q: must be one of strip, lstrip, rstrip, lower, upper, capitalize, title", name)
}

// ParseCleaners parses a list of cleaner names.
func ParseCleaners(names []string) ([]Cleaner, error) {
	out := make([]Cleaner, 0, len(names))
	for _, n := range names {
		c, err := ParseCleaner(n)
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, nil
}
