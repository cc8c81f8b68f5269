// Package taxonomy defines the question kinds, answer records and run
// metadata shared by forms, the CLI and reports.
package taxonomy

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// Kind names the convertor a question uses.
type Kind string

// Scalar kinds.
const (
	KindInt    Kind = "int"
	KindFloat  Kind = "float"
	KindBool   Kind = "bool"
	KindYesNo  Kind = "yesno"
	KindDate   Kind = "date"
	KindPhone  Kind = "phone"
	KindString Kind = "string"
)

// Compound kinds.
const (
	KindList   Kind = "list"
	KindChoice Kind = "choice"
	KindTable  Kind = "table"
)

// Kinds lists every kind in display order.
var Kinds = []Kind{
	KindInt, KindFloat, KindBool, KindYesNo, KindDate, KindPhone, KindString,
	KindList, KindChoice, KindTable,
}

// ParseKind returns the Kind named s.
func ParseKind(s string) (Kind, bool) {
	k := Kind(s)
	_, ok := familyMap[k]
	return k, ok
}

// Family groups kinds for styling and summaries.
type Family string

// Family constants.
const (
	FamilyNumber    Family = "number"
	FamilyBoolean   Family = "boolean"
	FamilyText      Family = "text"
	FamilyTime      Family = "time"
	FamilySelection Family = "selection"
	FamilyList      Family = "list"
)

// FamilyOf returns the family of k.
func FamilyOf(k Kind) Family {
	f, ok := familyMap[k]
	if !ok {
		return FamilyText // unknown kinds render as text
	}
	return f
}

var familyMap = map[Kind]Family{
	KindInt:    FamilyNumber,
	KindFloat:  FamilyNumber,
	KindBool:   FamilyBoolean,
	KindYesNo:  FamilyBoolean,
	KindDate:   FamilyTime,
	KindPhone:  FamilyText,
	KindString: FamilyText,
	KindList:   FamilyList,
	KindChoice: FamilySelection,
	KindTable:  FamilySelection,
}

// Answer is one converted reply.
type Answer struct {
	// Name is the question name.
	Name string `json:"name" msgpack:"name"`

	// Kind is the question kind.
	Kind Kind `json:"kind" msgpack:"kind"`

	// Raw is the cleaned input that was converted, after default
	// substitution. Empty for blank answers.
	Raw string `json:"raw" msgpack:"raw"`

	// Value is the converted value, or nil for blank answers.
	Value any `json:"value" msgpack:"value"`
}

// Run is the complete output of one form or question session.
type Run struct {
	ID        string        `json:"id" msgpack:"id"`
	Version   string        `json:"version" msgpack:"version"`
	Title     string        `json:"title,omitempty" msgpack:"title,omitempty"`
	Timestamp time.Time     `json:"-" msgpack:"timestamp"`
	Duration  time.Duration `json:"-" msgpack:"duration"`
	Answers   []Answer      `json:"answers" msgpack:"answers"`
}

// NewRun starts a run with a fresh random ID.
func NewRun(version, title string, now time.Time) *Run {
	return &Run{
		ID:        uuid.NewString(),
		Version:   version,
		Title:     title,
		Timestamp: now,
		Answers:   []Answer{},
	}
}

// Lookup returns the answer named name.
func (r *Run) Lookup(name string) (Answer, bool) {
	for _, a := range r.Answers {
		if a.Name == name {
			return a, true
		}
	}
	return Answer{}, false
}

// MarshalJSON customizes JSON encoding to use duration_ms and
// ISO 8601 timestamp.
func (r Run) MarshalJSON() ([]byte, error) {
	type Alias Run
	ts := ""
	if !r.Timestamp.IsZero() {
		ts = r.Timestamp.UTC().Format(time.RFC3339)
	}
	return json.Marshal(&struct {
		Alias
		DurationMS int64  `json:"duration_ms"`
		Timestamp  string `json:"timestamp,omitempty"`
	}{
		Alias:      Alias(r),
		DurationMS: r.Duration.Milliseconds(),
		Timestamp:  ts,
	})
}
