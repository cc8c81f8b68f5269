package convert

// Choice maps input keys to caller-defined values, e.g. the row numbers
// of a printed table to the options they stand for. Lookup is exact:
// no case folding and no prefix matching.
type Choice[T any] struct {
	choices     map[string]T
	description string
}

// NewChoice returns a Choice over a copy of choices.
func NewChoice[T any](choices map[string]T, opts ...Option) *Choice[T] {
	s := newSettings("a valid row number", opts)
	m := make(map[string]T, len(choices))
	for k, v := range choices {
		m[k] = v
	}
	return &Choice[T]{choices: m, description: s.description}
}

func (c *Choice[T]) Description() string { return c.description }

// Keys returns the accepted input keys in no particular order.
func (c *Choice[T]) Keys() []string {
	keys := make([]string, 0, len(c.choices))
	for k := range c.choices {
		keys = append(keys, k)
	}
	return keys
}

func (c *Choice[T]) Convert(value string, report ErrorFunc, format string) (T, error) {
	if v, ok := c.choices[value]; ok {
		return v, nil
	}
	var zero T
	err := fail(report, format, value, c.description, ErrUnknownChoice)
	err.Suggestion = suggest(value, c.Keys())
	return zero, err
}
