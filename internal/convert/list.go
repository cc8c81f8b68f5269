package convert

// List converts one line of delimited text to a slice.
//
// The line is read as a single row: the delimiter is either fixed
// (WithDelimiter, default ',') or sniffed from the input
// (WithSniffedDelimiter), quoting is minimal and spaces after a
// delimiter are skipped. With an element convertor each field is
// converted in order and the first failure fails the whole list.
//
// Build a List with NewList or NewListOf; the zero value is not usable.
type List[T any] struct {
	elem        Convertor[T]
	delimiter   rune
	sniff       bool
	description string
}

// NewList returns a List whose elements stay strings.
func NewList(opts ...Option) *List[string] {
	return newList[string](nil, opts)
}

// NewListOf returns a List that converts every element with elem. It
// panics if elem is nil; use NewList for a list of strings.
func NewListOf[T any](elem Convertor[T], opts ...Option) *List[T] {
	if elem == nil {
		panic("convert: NewListOf called with a nil element convertor")
	}
	return newList(elem, opts)
}

func newList[T any](elem Convertor[T], opts []Option) *List[T] {
	s := newSettings("list of values", opts)
	return &List[T]{
		elem:        elem,
		delimiter:   s.delimiter,
		sniff:       s.sniff,
		description: s.description,
	}
}

func (c *List[T]) Description() string { return c.description }

// Dialect returns the fixed dialect, or ok=false when it is sniffed.
func (c *List[T]) Dialect() (d Dialect, ok bool) {
	if c.sniff {
		return Dialect{}, false
	}
	return Dialect{Delimiter: c.delimiter, SkipInitialSpace: true}, true
}

func (c *List[T]) Convert(value string, report ErrorFunc, format string) ([]T, error) {
	d, ok := c.Dialect()
	if !ok {
		sniffed, err := Sniff(value)
		if err != nil {
			return nil, fail(report, format, value, c.description, err)
		}
		d = Dialect{Delimiter: sniffed.Delimiter, SkipInitialSpace: true}
	}

	fields, err := readRow(value, d)
	if err != nil {
		return nil, fail(report, format, value, c.description, err)
	}

	if c.elem == nil {
		out, _ := any(fields).([]T)
		return out, nil
	}

	out := make([]T, 0, len(fields))
	for _, f := range fields {
		v, err := c.elem.Convert(f, report, format)
		if err != nil {
			// The element convertor has already reported.
			return nil, &ConversionError{
				Value:       value,
				Description: c.elem.Description(),
				Err:         err,
			}
		}
		out = append(out, v)
	}
	return out, nil
}
