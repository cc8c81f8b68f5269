package convert

import (
	"errors"
	"math"
	"strconv"
	"testing"
)

func TestInt_ValidLiterals(t *testing.T) {
	cases := []struct {
		base  int
		input string
		want  int64
	}{
		{10, "42", 42},
		{10, " -7 ", -7},
		{10, "+3", 3},
		{10, "1_000", 1000},
		{10, "007", 7},
		{16, "ff", 255},
		{16, "0xFF", 255},
		{16, "0x_ff", 255},
		{16, "0b1", 177},
		{8, "0o17", 15},
		{8, "17", 15},
		{2, "101", 5},
		{2, "0b101", 5},
		{36, "z", 35},
		{36, "Z", 35},
		{0, "0x1f", 31},
		{0, "0o17", 15},
		{0, "0B101", 5},
		{0, "42", 42},
		{0, "-42", -42},
		{0, "0", 0},
		{0, "00", 0},
		{0, "0_0", 0},
	}
	for _, tc := range cases {
		got, err := NewInt(tc.base).Convert(tc.input, nil, testFormat)
		if err != nil {
			t.Errorf("base %d, %q: unexpected error %v", tc.base, tc.input, err)
			continue
		}
		if got != tc.want {
			t.Errorf("base %d, %q = %d, want %d", tc.base, tc.input, got, tc.want)
		}
	}
}

func TestInt_InvalidLiterals(t *testing.T) {
	cases := []struct {
		base  int
		input string
	}{
		{10, "abc"},
		{10, ""},
		{10, "   "},
		{10, "1.5"},
		{10, "1__0"},
		{10, "_1"},
		{10, "1_"},
		{10, "0x10"},
		{10, "+-1"},
		{10, "1 2"},
		{2, "2"},
		{8, "0x7"},
		{0, "010"},
		{0, "0x"},
		{0, "1_"},
	}
	for _, tc := range cases {
		rec := &recorder{}
		_, err := NewInt(tc.base).Convert(tc.input, rec.report, testFormat)
		ce := assertReportedOnce(t, rec, err, tc.input, "an integer number")
		if !errors.Is(ce, ErrNotInteger) {
			t.Errorf("base %d, %q: expected ErrNotInteger, got %v", tc.base, tc.input, ce.Err)
		}
	}
}

func TestInt_InvalidBase(t *testing.T) {
	for _, base := range []int{-1, 1, 37} {
		rec := &recorder{}
		_, err := NewInt(base).Convert("1", rec.report, testFormat)
		assertReportedOnce(t, rec, err, "1", "an integer number")
		if !errors.Is(err, ErrInvalidBase) {
			t.Errorf("base %d: expected ErrInvalidBase, got %v", base, err)
		}
	}
}

func TestInt_Overflow(t *testing.T) {
	rec := &recorder{}
	_, err := NewInt(10).Convert("9223372036854775808", rec.report, testFormat)
	assertReportedOnce(t, rec, err, "9223372036854775808", "an integer number")
	if !errors.Is(err, strconv.ErrRange) {
		t.Errorf("expected strconv.ErrRange, got %v", err)
	}
}

// TestInt_MatchesStrconvForPlainDigits checks agreement with strconv
// for unprefixed, underscore-free input in every legal base.
func TestInt_MatchesStrconvForPlainDigits(t *testing.T) {
	inputs := []string{"1", "10", "777", "-101", "zz", "Az9"}
	for base := 2; base <= 36; base++ {
		c := NewInt(base)
		for _, in := range inputs {
			want, wantErr := strconv.ParseInt(in, base, 64)
			got, err := c.Convert(in, nil, testFormat)
			if (err != nil) != (wantErr != nil) {
				t.Errorf("base %d, %q: err = %v, strconv err = %v", base, in, err, wantErr)
				continue
			}
			if err == nil && got != want {
				t.Errorf("base %d, %q = %d, strconv = %d", base, in, got, want)
			}
		}
	}
}

func TestFloat_ValidLiterals(t *testing.T) {
	cases := []struct {
		input string
		want  float64
	}{
		{"3.14e2", 314.0},
		{" 2.5 ", 2.5},
		{"-1", -1},
		{"+.5", 0.5},
		{"5.", 5},
		{"1_000.5", 1000.5},
		{"1E-3", 0.001},
		{"1e400", math.Inf(1)},
		{"-Infinity", math.Inf(-1)},
		{"inf", math.Inf(1)},
	}
	for _, tc := range cases {
		got, err := NewFloat().Convert(tc.input, nil, testFormat)
		if err != nil {
			t.Errorf("%q: unexpected error %v", tc.input, err)
			continue
		}
		if got != tc.want {
			t.Errorf("%q = %v, want %v", tc.input, got, tc.want)
		}
	}
}

func TestFloat_NaN(t *testing.T) {
	for _, in := range []string{"nan", "NaN", "-nan"} {
		got, err := NewFloat().Convert(in, nil, testFormat)
		if err != nil {
			t.Fatalf("%q: unexpected error %v", in, err)
		}
		if !math.IsNaN(got) {
			t.Errorf("%q = %v, want NaN", in, got)
		}
	}
}

func TestFloat_InvalidLiterals(t *testing.T) {
	for _, in := range []string{"abc", "", ".", "1.2.3", "0x1p-2", "1e", "--1", "1__0", "_1", "infinite"} {
		rec := &recorder{}
		_, err := NewFloat().Convert(in, rec.report, testFormat)
		ce := assertReportedOnce(t, rec, err, in, "a float number")
		if !errors.Is(ce, ErrNotFloat) {
			t.Errorf("%q: expected ErrNotFloat, got %v", in, ce.Err)
		}
	}
}
