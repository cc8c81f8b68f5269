package convert

import (
	"errors"
	"math"
	"regexp"
	"strconv"
	"strings"
)

var floatLiteral = regexp.MustCompile(
	`^[+-]?(?:\d(?:_?\d)*\.?(?:\d(?:_?\d)*)?|\.\d(?:_?\d)*)(?:[eE][+-]?\d(?:_?\d)*)?$`)

// Float converts input to a float64.
//
// Accepted: decimal and exponent notation with an optional sign,
// underscores between digits, and the words inf, infinity and nan in
// any case. Hexadecimal floats are rejected. Literals too large for a
// float64 become ±Inf rather than failing.
type Float struct {
	description string
}

// NewFloat returns a Float convertor.
func NewFloat(opts ...Option) *Float {
	s := newSettings("a float number", opts)
	return &Float{description: s.description}
}

func (c *Float) Description() string { return c.description }

func (c *Float) Convert(value string, report ErrorFunc, format string) (float64, error) {
	f, err := parseFloat(value)
	if err != nil {
		return 0, fail(report, format, value, c.description, err)
	}
	return f, nil
}

func parseFloat(s string) (float64, error) {
	t := strings.TrimSpace(s)

	body := strings.TrimLeft(t, "+-")
	if len(t)-len(body) > 1 {
		return 0, ErrNotFloat
	}
	switch strings.ToLower(body) {
	case "inf", "infinity":
		if strings.HasPrefix(t, "-") {
			return math.Inf(-1), nil
		}
		return math.Inf(1), nil
	case "nan":
		return math.NaN(), nil
	}

	if !floatLiteral.MatchString(t) {
		return 0, ErrNotFloat
	}
	f, err := strconv.ParseFloat(strings.ReplaceAll(t, "_", ""), 64)
	if err != nil && !errors.Is(err, strconv.ErrRange) {
		return 0, ErrNotFloat
	}
	return f, nil
}
