package report

import (
	"fmt"
	"io"

	"github.com/vmihailenco/msgpack/v5"

	"github.com/unbound-force/cooked/internal/taxonomy"
)

// WriteMsgpack writes run as a single MessagePack map.
func WriteMsgpack(w io.Writer, run *taxonomy.Run) error {
	enc := msgpack.NewEncoder(w)
	enc.UseCompactInts(true)
	if err := enc.Encode(run); err != nil {
		return fmt.Errorf("encoding msgpack: %w", err)
	}
	return nil
}

// ReadMsgpack decodes a run written by WriteMsgpack. Answer values come
// back as generic MessagePack types: integers, float64, bool, string,
// time.Time, []any and map[string]any.
func ReadMsgpack(r io.Reader) (*taxonomy.Run, error) {
	var run taxonomy.Run
	dec := msgpack.NewDecoder(r)
	if err := dec.Decode(&run); err != nil {
		return nil, fmt.Errorf("decoding msgpack: %w", err)
	}
	return &run, nil
}
