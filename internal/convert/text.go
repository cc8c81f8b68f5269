package convert

// Text returns its input unchanged. It never fails.
type Text struct {
	description string
}

// NewText returns a Text convertor.
func NewText(opts ...Option) *Text {
	s := newSettings("a string", opts)
	return &Text{description: s.description}
}

func (c *Text) Description() string { return c.description }

func (c *Text) Convert(value string, _ ErrorFunc, _ string) (string, error) {
	return value, nil
}
