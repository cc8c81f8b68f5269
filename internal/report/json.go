// Package report renders collected answers as styled text, JSON or
// MessagePack.
package report

import (
	"encoding/json"
	"io"
	"math"

	"github.com/unbound-force/cooked/internal/taxonomy"
)

// WriteJSON writes run as formatted JSON to the writer. Non-finite
// floats are written as the strings "inf", "-inf" and "nan".
func WriteJSON(w io.Writer, run *taxonomy.Run) error {
	out := *run
	out.Answers = make([]taxonomy.Answer, len(run.Answers))
	for i, a := range run.Answers {
		a.Value = jsonSafe(a.Value)
		out.Answers[i] = a
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}

func jsonSafe(v any) any {
	switch x := v.(type) {
	case float64:
		switch {
		case math.IsNaN(x):
			return "nan"
		case math.IsInf(x, 1):
			return "inf"
		case math.IsInf(x, -1):
			return "-inf"
		}
	case []any:
		out := make([]any, len(x))
		for i, e := range x {
			out[i] = jsonSafe(e)
		}
		return out
	}
	return v
}
