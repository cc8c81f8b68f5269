package convert

import (
	"strings"

	"github.com/nyaruka/phonenumbers"
)

// Phone converts a phone number to its E.164 form, e.g. "+14155552671".
// Numbers without a leading + are read in the default region.
type Phone struct {
	region      string
	description string
}

// NewPhone returns a Phone convertor for the given ISO 3166-1 alpha-2
// default region ("US", "GB", ...). An empty region only accepts
// numbers written with their country code.
func NewPhone(region string, opts ...Option) *Phone {
	s := newSettings("a phone number", opts)
	return &Phone{region: strings.ToUpper(region), description: s.description}
}

func (c *Phone) Description() string { return c.description }

// Region returns the default region.
func (c *Phone) Region() string { return c.region }

func (c *Phone) Convert(value string, report ErrorFunc, format string) (string, error) {
	n, err := phonenumbers.Parse(value, c.region)
	if err != nil || !phonenumbers.IsValidNumber(n) {
		return "", fail(report, format, value, c.description, ErrNotPhone)
	}
	return phonenumbers.Format(n, phonenumbers.E164), nil
}
