package convert

import "strings"

var (
	trueTokens  = newTokenSet("t", "true", "y", "yes", "1")
	falseTokens = newTokenSet("f", "false", "n", "no", "0")
)

// Boolean converts input to a bool.
//
// true:  t, true, y, yes, 1
// false: f, false, n, no, 0
//
// Matching is case-insensitive and exact; nothing else is accepted.
type Boolean struct {
	description string
}

// NewBoolean returns a Boolean convertor.
func NewBoolean(opts ...Option) *Boolean {
	s := newSettings("true or false", opts)
	return &Boolean{description: s.description}
}

func (c *Boolean) Description() string { return c.description }

func (c *Boolean) Convert(value string, report ErrorFunc, format string) (bool, error) {
	v := strings.ToLower(value)
	switch {
	case trueTokens.has(v):
		return true, nil
	case falseTokens.has(v):
		return false, nil
	}
	err := fail(report, format, value, c.description, ErrNotBoolean)
	err.Suggestion = suggest(v, append(trueTokens.tokens(), falseTokens.tokens()...))
	return false, err
}
