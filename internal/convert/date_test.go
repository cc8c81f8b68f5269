package convert

import (
	"errors"
	"testing"
	"time"
)

// fixedNow is Friday 2024-03-15 10:30 UTC.
var fixedNow = time.Date(2024, time.March, 15, 10, 30, 0, 0, time.UTC)

func newTestDate() *Date {
	return NewDate(
		WithClock(func() time.Time { return fixedNow }),
		WithLocation(time.UTC),
	)
}

func TestDate_RelativeExpressions(t *testing.T) {
	day := func(m time.Month, d int) time.Time { return time.Date(2024, m, d, 0, 0, 0, 0, time.UTC) }
	at := func(m time.Month, d, h, min int) time.Time { return time.Date(2024, m, d, h, min, 0, 0, time.UTC) }

	cases := []struct {
		input string
		want  time.Time
	}{
		{"now", fixedNow},
		{"today", day(time.March, 15)},
		{"Today", day(time.March, 15)},
		{"yesterday", day(time.March, 14)},
		{"tomorrow", day(time.March, 16)},
		{"in 3 days", at(time.March, 18, 10, 30)},
		{"in 1 day", at(time.March, 16, 10, 30)},
		{"2 weeks ago", at(time.March, 1, 10, 30)},
		{"in 2 hours", at(time.March, 15, 12, 30)},
		{"1 month ago", at(time.February, 15, 10, 30)},
		{"in  1  year", time.Date(2025, time.March, 15, 10, 30, 0, 0, time.UTC)},
		{"next Monday", day(time.March, 18)},
		{"next friday", day(time.March, 22)},
		{"last Friday", day(time.March, 8)},
		{"last wednesday", day(time.March, 13)},
		{"next week", at(time.March, 22, 10, 30)},
		{"last month", at(time.February, 15, 10, 30)},
	}
	c := newTestDate()
	for _, tc := range cases {
		got, err := c.Convert(tc.input, nil, testFormat)
		if err != nil {
			t.Errorf("%q: unexpected error %v", tc.input, err)
			continue
		}
		if !got.Equal(tc.want) {
			t.Errorf("%q = %s, want %s", tc.input, got, tc.want)
		}
	}
}

func TestDate_AbsoluteFormats(t *testing.T) {
	oct1 := time.Date(2015, time.October, 1, 0, 0, 0, 0, time.UTC)
	cases := []struct {
		input string
		want  time.Time
	}{
		{"October 1, 2015", oct1},
		{"2015-10-01", oct1},
		{"10/01/2015", oct1},
		{"2015-10-01T12:00:00Z", time.Date(2015, time.October, 1, 12, 0, 0, 0, time.UTC)},
	}
	c := newTestDate()
	for _, tc := range cases {
		got, err := c.Convert(tc.input, nil, testFormat)
		if err != nil {
			t.Errorf("%q: unexpected error %v", tc.input, err)
			continue
		}
		if !got.Equal(tc.want) {
			t.Errorf("%q = %s, want %s", tc.input, got, tc.want)
		}
	}
}

func TestDate_Invalid(t *testing.T) {
	for _, in := range []string{"", "   ", "not a date", "next someday"} {
		rec := &recorder{}
		_, err := newTestDate().Convert(in, rec.report, testFormat)
		assertReportedOnce(t, rec, err, in, "a date")
		if !errors.Is(err, ErrNotDate) {
			t.Errorf("%q: expected ErrNotDate, got %v", in, err)
		}
	}
}

func TestDate_LocationAppliesToRelativeDates(t *testing.T) {
	tokyo := time.FixedZone("JST", 9*60*60)
	c := NewDate(WithClock(func() time.Time { return fixedNow }), WithLocation(tokyo))

	got, err := c.Convert("today", nil, testFormat)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := time.Date(2024, time.March, 15, 0, 0, 0, 0, tokyo)
	if !got.Equal(want) {
		t.Errorf("today in JST = %s, want %s", got, want)
	}
}
