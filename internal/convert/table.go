package convert

import (
	"strconv"
	"strings"
)

// TableMode selects what a user may type to pick a table row.
type TableMode int

const (
	// TableValue accepts a row's value.
	TableValue TableMode = iota

	// TableID accepts a row's numeric id.
	TableID

	// TableIDOrValue accepts either; values are tried first.
	TableIDOrValue
)

// String returns the mode name used in form files.
func (m TableMode) String() string {
	switch m {
	case TableID:
		return "id"
	case TableIDOrValue:
		return "id_or_value"
	default:
		return "value"
	}
}

// ParseTableMode is the inverse of TableMode.String.
func ParseTableMode(s string) (TableMode, bool) {
	switch strings.ToLower(s) {
	case "", "value":
		return TableValue, true
	case "id":
		return TableID, true
	case "id_or_value":
		return TableIDOrValue, true
	}
	return TableValue, false
}

// TableRow is one (id, value) pair of a Table.
type TableRow struct {
	ID    int    `json:"id" yaml:"id" msgpack:"id"`
	Value string `json:"value" yaml:"value" msgpack:"value"`
}

// Table converts input to the row of a table it names, either by id,
// by value, or both. An optional inner convertor rewrites the input
// before the lookup.
type Table struct {
	rows        []TableRow
	mode        TableMode
	inner       Convertor[string]
	description string
}

// NewTable returns a Table over a copy of rows. inner may be nil.
func NewTable(rows []TableRow, mode TableMode, inner Convertor[string], opts ...Option) *Table {
	def := "a value from the table"
	switch mode {
	case TableID:
		def = "an id from the table"
	case TableIDOrValue:
		def = "an id or value from the table"
	}
	s := newSettings(def, opts)
	return &Table{
		rows:        append([]TableRow(nil), rows...),
		mode:        mode,
		inner:       inner,
		description: s.description,
	}
}

func (c *Table) Description() string { return c.description }

// Rows returns a copy of the table rows.
func (c *Table) Rows() []TableRow { return append([]TableRow(nil), c.rows...) }

func (c *Table) Convert(value string, report ErrorFunc, format string) (TableRow, error) {
	v := value
	if c.inner != nil {
		converted, err := c.inner.Convert(value, report, format)
		if err != nil {
			return TableRow{}, &ConversionError{Value: value, Description: c.description, Err: err}
		}
		v = converted
	}

	if c.mode != TableID {
		if row, ok := c.byValue(v); ok {
			return row, nil
		}
	}
	if c.mode != TableValue {
		if id, err := strconv.Atoi(strings.TrimSpace(v)); err == nil {
			if row, ok := c.byID(id); ok {
				return row, nil
			}
		}
	}

	err := fail(report, format, value, c.description, ErrNotInTable)
	if c.mode != TableID {
		values := make([]string, len(c.rows))
		for i, r := range c.rows {
			values[i] = r.Value
		}
		err.Suggestion = suggest(v, values)
	}
	return TableRow{}, err
}

func (c *Table) byValue(v string) (TableRow, bool) {
	for _, r := range c.rows {
		if r.Value == v {
			return r, true
		}
	}
	return TableRow{}, false
}

func (c *Table) byID(id int) (TableRow, bool) {
	for _, r := range c.rows {
		if r.ID == id {
			return r, true
		}
	}
	return TableRow{}, false
}
