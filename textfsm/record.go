package textfsm

import (
	"bytes"
	"encoding/json"
)

// Record is one committed output row: an ordered mapping from value name to
// captured value. Field order follows the template's value definition order;
// Implicit values never appear. Scalar fields are strings, List fields are
// string slices. Records are snapshots taken at commit time, except that a
// later Fillup capture may back-fill a still-empty scalar field.
type Record struct {
	names  []string
	fields map[string]any
	keys   []string
}

// FieldNames returns the record's field names in emission order.
func (r Record) FieldNames() []string {
	out := make([]string, len(r.names))
	copy(out, r.names)
	return out
}

// Get returns the value of the named field. Scalars are strings, List fields
// are []string.
func (r Record) Get(name string) (any, bool) {
	v, ok := r.fields[name]
	return v, ok
}

// String returns the named scalar field, or "" when absent or non-scalar.
func (r Record) String(name string) string {
	s, _ := r.fields[name].(string)
	return s
}

// List returns the named List field, or nil when absent or scalar.
func (r Record) List(name string) []string {
	l, _ := r.fields[name].([]string)
	return l
}

// Keys returns the names of the record's Key-tagged fields. The tag is
// informational metadata; it has no effect on matching or committing.
func (r Record) Keys() []string {
	out := make([]string, len(r.keys))
	copy(out, r.keys)
	return out
}

// MarshalJSON emits the record as a JSON object whose members appear in
// field order. encoding/json maps cannot express ordered members, so the
// object is assembled by hand.
func (r Record) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, name := range r.names {
		if i > 0 {
			buf.WriteByte(',')
		}
		k, err := json.Marshal(name)
		if err != nil {
			return nil, err
		}
		buf.Write(k)
		buf.WriteByte(':')
		v, err := json.Marshal(r.fields[name])
		if err != nil {
			return nil, err
		}
		buf.Write(v)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}
