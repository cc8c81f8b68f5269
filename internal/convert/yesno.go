package convert

import "strings"

// Canonical YesNo results.
const (
	Yes = "yes"
	No  = "no"
)

var (
	yesTokens = newTokenSet("y", "yes", "yeah", "yup", "aye", "qui", "si", "ja",
		"ken", "hai", "gee", "da", "tak", "affirmative")
	noTokens = newTokenSet("n", "no", "nope", "na", "nae", "non", "negatory",
		"nein", "nie", "nyet", "lo")
)

// YesNo converts an affirmative or negative answer, in a handful of
// languages, to the string "yes" or "no". Unlike Boolean it returns
// strings, and it does not accept 1/0 or true/false.
type YesNo struct {
	description string
}

// NewYesNo returns a YesNo convertor.
func NewYesNo(opts ...Option) *YesNo {
	s := newSettings("yes or no", opts)
	return &YesNo{description: s.description}
}

func (c *YesNo) Description() string { return c.description }

func (c *YesNo) Convert(value string, report ErrorFunc, format string) (string, error) {
	v := strings.ToLower(value)
	switch {
	case yesTokens.has(v):
		return Yes, nil
	case noTokens.has(v):
		return No, nil
	}
	err := fail(report, format, value, c.description, ErrNotYesNo)
	err.Suggestion = suggest(v, append(yesTokens.tokens(), noTokens.tokens()...))
	return "", err
}
