package reconcile

import (
	"fmt"
	"strings"

	om "github.com/cevaris/ordered_map"
)

// Record is an ordered field → Value container: one row fetched from a source table,
// a merged row, or a row after column mapping.
// Records share their storage when copied by value; use Clone for an independent copy.
type Record struct {
	fields *om.OrderedMap
}

// NewRecord creates an empty Record.
func NewRecord() Record {
	return Record{fields: om.NewOrderedMap()}
}

// RecordFromRow builds a Record from a scanned row, keeping the column order given.
// Columns missing from values are absent from the record (not NULL).
func RecordFromRow(columns []string, values map[string]any) Record {
	rec := NewRecord()
	for _, col := range columns {
		if v, ok := values[col]; ok {
			rec.Set(col, ValueOf(v))
		}
	}
	return rec
}

// RecordOf builds a Record from alternating field/value arguments, mostly for tests and fixtures.
// It panics on an odd argument count or a non-string field name.
func RecordOf(pairs ...any) Record {
	if len(pairs)%2 != 0 {
		panic("reconcile.RecordOf: odd number of arguments")
	}
	rec := NewRecord()
	for i := 0; i < len(pairs); i += 2 {
		name, ok := pairs[i].(string)
		if !ok {
			panic(fmt.Sprintf("reconcile.RecordOf: field name %v is not a string", pairs[i]))
		}
		rec.Set(name, ValueOf(pairs[i+1]))
	}
	return rec
}

// IsNil reports whether the record was never initialised.
func (r Record) IsNil() bool {
	return r.fields == nil
}

// Set stores v under field, keeping the field's original position when it already exists.
func (r Record) Set(field string, v Value) {
	r.fields.Set(field, v)
}

// Get returns the value stored under field and whether the field is present.
func (r Record) Get(field string) (Value, bool) {
	if r.fields == nil {
		return Null, false
	}
	v, ok := r.fields.Get(field)
	if !ok {
		return Null, false
	}
	return v.(Value), true
}

// Has reports whether field is present (a NULL value is present).
func (r Record) Has(field string) bool {
	_, ok := r.Get(field)
	return ok
}

// Len returns the number of fields.
func (r Record) Len() int {
	if r.fields == nil {
		return 0
	}
	return r.fields.Len()
}

// Range calls fn for each field in order until fn returns false.
func (r Record) Range(fn func(field string, v Value) bool) {
	if r.fields == nil {
		return
	}
	iter := r.fields.IterFunc()
	for kv, ok := iter(); ok; kv, ok = iter() {
		if !fn(kv.Key.(string), kv.Value.(Value)) {
			return
		}
	}
}

// Fields returns the field names in order.
func (r Record) Fields() []string {
	out := make([]string, 0, r.Len())
	r.Range(func(field string, _ Value) bool {
		out = append(out, field)
		return true
	})
	return out
}

// Clone returns an independent copy of the record.
func (r Record) Clone() Record {
	out := NewRecord()
	r.Range(func(field string, v Value) bool {
		out.Set(field, v)
		return true
	})
	return out
}

// Map returns the record as a plain map of driver values, for logging and JSON output.
func (r Record) Map() map[string]any {
	out := make(map[string]any, r.Len())
	r.Range(func(field string, v Value) bool {
		out[field] = v.Interface()
		return true
	})
	return out
}

// String renders the record as {a: 1, b: x} in field order.
func (r Record) String() string {
	parts := make([]string, 0, r.Len())
	r.Range(func(field string, v Value) bool {
		if v.IsNull() {
			parts = append(parts, field+": null")
		} else {
			parts = append(parts, field+": "+v.String())
		}
		return true
	})
	return "{" + strings.Join(parts, ", ") + "}"
}

// KeyOf returns the logical key of the record for the given key fields.
// A field that is absent or NULL yields ErrMissingKey.
func (r Record) KeyOf(keyFields ...string) (Key, error) {
	if len(keyFields) == 0 {
		return "", fmt.Errorf("%w: no key fields configured", ErrMissingKey)
	}
	parts := make([]string, len(keyFields))
	for i, field := range keyFields {
		v, ok := r.Get(field)
		if !ok {
			return "", fmt.Errorf("%w: field %s absent", ErrMissingKey, field)
		}
		k, ok := v.Key()
		if !ok {
			return "", fmt.Errorf("%w: field %s is %s", ErrMissingKey, field, v.Kind())
		}
		parts[i] = k
	}
	return NewKey(parts...), nil
}
