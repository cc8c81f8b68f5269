package convert

import (
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/araddon/dateparse"
)

// Date converts flexible, human-entered dates to a time.Time.
//
// Relative expressions are resolved against the clock first:
//
//	now, today, yesterday, tomorrow
//	in 3 days, 2 weeks ago, in 6 months, 1 year ago, in 4 hours
//	next tuesday, last friday, next week, last month, next year
//
// Anything else goes to dateparse, which knows most absolute layouts
// ("12/12/12", "October 1, 2015", "2015-10-01T12:00:00Z", ...). Dates
// without a zone are read in the configured location.
type Date struct {
	now         func() time.Time
	location    *time.Location
	description string
}

// NewDate returns a Date convertor. Use WithClock and WithLocation to
// pin the reference time and zone.
func NewDate(opts ...Option) *Date {
	s := newSettings("a date", opts)
	return &Date{now: s.now, location: s.location, description: s.description}
}

func (c *Date) Description() string { return c.description }

func (c *Date) Convert(value string, report ErrorFunc, format string) (time.Time, error) {
	s := strings.TrimSpace(value)
	if s != "" {
		ref := c.now().In(c.location)
		if t, ok := parseRelativeDate(s, ref); ok {
			return t, nil
		}
		if t, err := dateparse.ParseIn(s, c.location); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fail(report, format, value, c.description, ErrNotDate)
}

var (
	relativeIn  = regexp.MustCompile(`^in (\d+) (hour|day|week|month|year)s?$`)
	relativeAgo = regexp.MustCompile(`^(\d+) (hour|day|week|month|year)s? ago$`)
)

var weekdays = map[string]time.Weekday{
	"sunday":    time.Sunday,
	"monday":    time.Monday,
	"tuesday":   time.Tuesday,
	"wednesday": time.Wednesday,
	"thursday":  time.Thursday,
	"friday":    time.Friday,
	"saturday":  time.Saturday,
}

// parseRelativeDate resolves s against ref. It reports false when s is
// not a relative expression it knows.
func parseRelativeDate(s string, ref time.Time) (time.Time, bool) {
	lower := strings.Join(strings.Fields(strings.ToLower(s)), " ")

	switch lower {
	case "now":
		return ref, true
	case "today":
		return startOfDay(ref), true
	case "yesterday":
		return startOfDay(ref).AddDate(0, 0, -1), true
	case "tomorrow":
		return startOfDay(ref).AddDate(0, 0, 1), true
	case "next week":
		return ref.AddDate(0, 0, 7), true
	case "last week":
		return ref.AddDate(0, 0, -7), true
	case "next month":
		return ref.AddDate(0, 1, 0), true
	case "last month":
		return ref.AddDate(0, -1, 0), true
	case "next year":
		return ref.AddDate(1, 0, 0), true
	case "last year":
		return ref.AddDate(-1, 0, 0), true
	}

	if m := relativeIn.FindStringSubmatch(lower); m != nil {
		n, err := strconv.Atoi(m[1])
		if err != nil {
			return time.Time{}, false
		}
		return shift(ref, m[2], n), true
	}
	if m := relativeAgo.FindStringSubmatch(lower); m != nil {
		n, err := strconv.Atoi(m[1])
		if err != nil {
			return time.Time{}, false
		}
		return shift(ref, m[2], -n), true
	}

	if name, ok := strings.CutPrefix(lower, "next "); ok {
		if wd, ok := weekdays[name]; ok {
			return startOfDay(nextWeekday(ref, wd)), true
		}
	}
	if name, ok := strings.CutPrefix(lower, "last "); ok {
		if wd, ok := weekdays[name]; ok {
			return startOfDay(previousWeekday(ref, wd)), true
		}
	}

	return time.Time{}, false
}

func shift(ref time.Time, unit string, n int) time.Time {
	switch unit {
	case "hour":
		return ref.Add(time.Duration(n) * time.Hour)
	case "day":
		return ref.AddDate(0, 0, n)
	case "week":
		return ref.AddDate(0, 0, 7*n)
	case "month":
		return ref.AddDate(0, n, 0)
	default:
		return ref.AddDate(n, 0, 0)
	}
}

func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// nextWeekday returns the first wd strictly after ref.
func nextWeekday(ref time.Time, wd time.Weekday) time.Time {
	days := (int(wd) - int(ref.Weekday()) + 7) % 7
	if days == 0 {
		days = 7
	}
	return ref.AddDate(0, 0, days)
}

// previousWeekday returns the last wd strictly before ref.
func previousWeekday(ref time.Time, wd time.Weekday) time.Time {
	days := (int(ref.Weekday()) - int(wd) + 7) % 7
	if days == 0 {
		days = 7
	}
	return ref.AddDate(0, 0, -days)
}
