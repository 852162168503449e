// Package record defines the ordered field representation consumed by the
// CSV encoder. A Record pairs field names with field values positionally,
// so the same slice order drives both the header row and every data row.
package record

import "fmt"

// Record holds the named fields of one row. Field order is significant:
// it determines header order and the position of every value, so names
// and values are kept as parallel slices rather than a map.
type Record struct {
	names  []string
	values []any
}

// New builds a Record from parallel name and value slices.
// The slices are retained, not copied.
func New(names []string, values []any) (Record, error) {
	if len(names) != len(values) {
		return Record{}, fmt.Errorf("csvstream: record has %d names but %d values", len(names), len(values))
	}
	return Record{names: names, values: values}, nil
}

// MustNew is New but panics on a name/value length mismatch.
// Intended for literals whose shape is known at compile time.
func MustNew(names []string, values []any) Record {
	r, err := New(names, values)
	if err != nil {
		panic(err)
	}
	return r
}

// Len reports the number of fields.
func (r Record) Len() int {
	return len(r.names)
}

// Names returns the field names in declared order.
func (r Record) Names() []string {
	return r.names
}

// Values returns the field values in declared order.
func (r Record) Values() []any {
	return r.values
}

// Map returns the fields as a name-to-value map. Order is lost; use
// Names and Values when position matters.
func (r Record) Map() map[string]any {
	m := make(map[string]any, len(r.names))
	for i, name := range r.names {
		m[name] = r.values[i]
	}
	return m
}

// Marshaler is implemented by types that know how to present themselves
// as an ordered CSV record. Implementations must return the same field
// names in the same order on every call.
type Marshaler interface {
	MarshalRecord() Record
}

// Marshal converts a slice of Marshaler values into Records.
func Marshal[T Marshaler](vs []T) []Record {
	recs := make([]Record, len(vs))
	for i, v := range vs {
		recs[i] = v.MarshalRecord()
	}
	return recs
}
