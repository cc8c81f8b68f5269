package config

import (
	"encoding/json"
	"fmt"

	"github.com/invopop/jsonschema"
)

// FormSchema returns the JSON Schema of the form file format, reflected
// from Form.
func FormSchema() ([]byte, error) {
	r := &jsonschema.Reflector{
		DoNotReference: true,
		ExpandedStruct: true,
	}
	s := r.Reflect(new(Form))
	s.Title = "cooked form file"
	out, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshaling form schema: %w", err)
	}
	return out, nil
}
