package convert

import (
	"errors"
	"strconv"
	"strings"
)

// Int converts input to an int64 in a fixed radix.
//
// The accepted grammar is that of integer literals: surrounding
// whitespace, an optional sign, single underscores between digits and,
// for bases 0, 2, 8 and 16, a 0b/0o/0x prefix. Base 0 infers the radix
// from the prefix and otherwise reads a decimal without leading zeros.
type Int struct {
	base        int
	description string
}

// NewInt returns an Int for the given base. Legal bases are 0 and
// 2 through 36; any other base fails every conversion.
func NewInt(base int, opts ...Option) *Int {
	s := newSettings("an integer number", opts)
	return &Int{base: base, description: s.description}
}

// Base returns the configured radix.
func (c *Int) Base() int { return c.base }

func (c *Int) Description() string { return c.description }

func (c *Int) Convert(value string, report ErrorFunc, format string) (int64, error) {
	n, err := parseInt(value, c.base)
	if err != nil {
		return 0, fail(report, format, value, c.description, err)
	}
	return n, nil
}

var prefixBase = map[byte]int{'b': 2, 'o': 8, 'x': 16}

func parseInt(s string, base int) (int64, error) {
	if base != 0 && (base < 2 || base > 36) {
		return 0, ErrInvalidBase
	}

	t := strings.TrimSpace(s)
	sign := ""
	if t != "" && (t[0] == '+' || t[0] == '-') {
		sign, t = t[:1], t[1:]
	}

	prefixed := false
	if len(t) >= 2 && t[0] == '0' {
		if b, ok := prefixBase[t[1]|0x20]; ok && (base == 0 || base == b) {
			base, t, prefixed = b, t[2:], true
		}
	}

	digits, ok := stripUnderscores(t, prefixed)
	if !ok {
		return 0, ErrNotInteger
	}

	if base == 0 {
		base = 10
		// "0", "00" and "0_0" are fine; "010" is not.
		if digits[0] == '0' && strings.TrimLeft(digits, "0") != "" {
			return 0, ErrNotInteger
		}
	}

	n, err := strconv.ParseInt(sign+digits, base, 64)
	if err != nil {
		if errors.Is(err, strconv.ErrRange) {
			return 0, err
		}
		return 0, ErrNotInteger
	}
	return n, nil
}

// stripUnderscores validates digit-group underscores and removes them.
// An underscore may only sit between two digits, or directly after a
// base prefix when leadingOK is set.
func stripUnderscores(t string, leadingOK bool) (string, bool) {
	if leadingOK && strings.HasPrefix(t, "_") {
		t = t[1:]
	}
	if t == "" ||
		strings.HasPrefix(t, "_") ||
		strings.HasSuffix(t, "_") ||
		strings.Contains(t, "__") {
		return "", false
	}
	return strings.ReplaceAll(t, "_", ""), true
}
