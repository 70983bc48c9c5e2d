package reconcile

import (
	"fmt"

	om "github.com/cevaris/ordered_map"
)

// MappingPair maps one source field to one destination field.
type MappingPair struct {
	Source      string `yaml:"source" json:"source"`
	Destination string `yaml:"destination" json:"destination"`
}

// ColumnMapping is an ordered set of source → destination field pairs.
// Fields absent from the mapping are ignored on read and preserved on write.
type ColumnMapping struct {
	pairs *om.OrderedMap
}

// NewColumnMapping builds a mapping from pairs, rejecting empty names and any source or
// destination field named twice.
func NewColumnMapping(pairs ...MappingPair) (ColumnMapping, error) {
	m := ColumnMapping{pairs: om.NewOrderedMap()}
	destinations := make(map[string]string, len(pairs))
	for _, p := range pairs {
		if p.Source == "" || p.Destination == "" {
			return ColumnMapping{}, fmt.Errorf("%w: empty field name in %q → %q", ErrInvalidMapping, p.Source, p.Destination)
		}
		if _, dup := m.pairs.Get(p.Source); dup {
			return ColumnMapping{}, fmt.Errorf("%w: source field %s mapped twice", ErrInvalidMapping, p.Source)
		}
		if prev, dup := destinations[p.Destination]; dup {
			return ColumnMapping{}, fmt.Errorf("%w: destination field %s mapped from both %s and %s", ErrInvalidMapping, p.Destination, prev, p.Source)
		}
		destinations[p.Destination] = p.Source
		m.pairs.Set(p.Source, p.Destination)
	}
	return m, nil
}

// IdentityMapping maps every field to the destination field of the same name.
func IdentityMapping(fields ...string) (ColumnMapping, error) {
	pairs := make([]MappingPair, len(fields))
	for i, f := range fields {
		pairs[i] = MappingPair{Source: f, Destination: f}
	}
	return NewColumnMapping(pairs...)
}

// Len returns the number of pairs.
func (m ColumnMapping) Len() int {
	if m.pairs == nil {
		return 0
	}
	return m.pairs.Len()
}

// Pairs returns the pairs in order.
func (m ColumnMapping) Pairs() []MappingPair {
	out := make([]MappingPair, 0, m.Len())
	if m.pairs == nil {
		return out
	}
	iter := m.pairs.IterFunc()
	for kv, ok := iter(); ok; kv, ok = iter() {
		out = append(out, MappingPair{Source: kv.Key.(string), Destination: kv.Value.(string)})
	}
	return out
}

// Destination returns the destination field mapped from source.
func (m ColumnMapping) Destination(source string) (string, bool) {
	if m.pairs == nil {
		return "", false
	}
	v, ok := m.pairs.Get(source)
	if !ok {
		return "", false
	}
	return v.(string), true
}

// Destinations returns the destination fields in mapping order.
func (m ColumnMapping) Destinations() []string {
	pairs := m.Pairs()
	out := make([]string, len(pairs))
	for i, p := range pairs {
		out[i] = p.Destination
	}
	return out
}

// MapRecord copies each mapped source field present in rec under its destination name.
// Absent source fields are skipped, so they never overwrite a destination value with NULL.
func MapRecord(rec Record, m ColumnMapping) Record {
	out := NewRecord()
	for _, p := range m.Pairs() {
		if v, ok := rec.Get(p.Source); ok {
			out.Set(p.Destination, v)
		}
	}
	return out
}

// ValidateMapping checks that every destination field of m has an accessor on the adapter.
func ValidateMapping(adapter Adapter, m ColumnMapping) error {
	if m.Len() == 0 {
		return fmt.Errorf("%w: mapping for %s is empty", ErrInvalidMapping, adapter.Name())
	}
	fields := adapter.Fields()
	for _, p := range m.Pairs() {
		if _, ok := fields[p.Destination]; !ok {
			return fmt.Errorf("%w: %s has no field %s (mapped from %s)", ErrUnknownField, adapter.Name(), p.Destination, p.Source)
		}
	}
	return nil
}

// Build constructs a new entity from mapped fields. Unmapped fields keep their zero value,
// leaving defaults to the store.
func Build(adapter Adapter, fields Record) (any, error) {
	entity := adapter.New()
	accessors := adapter.Fields()
	var err error
	fields.Range(func(field string, v Value) bool {
		acc, ok := accessors[field]
		if !ok {
			err = fieldError(field, ErrUnknownField)
			return false
		}
		if setErr := acc.Set(entity, v); setErr != nil {
			err = fieldError(field, setErr)
			return false
		}
		return true
	})
	if err != nil {
		return nil, err
	}
	return entity, nil
}

// Diff compares mapped fields against the entity's current values and returns the fields that
// differ, in mapping order. Values are normalized before comparison (see Value.Equal).
func Diff(adapter Adapter, entity any, fields Record) ([]Change, error) {
	accessors := adapter.Fields()
	var (
		changes []Change
		err     error
	)
	fields.Range(func(field string, v Value) bool {
		acc, ok := accessors[field]
		if !ok {
			err = fieldError(field, ErrUnknownField)
			return false
		}
		current := acc.Get(entity)
		if !current.Equal(v) {
			changes = append(changes, Change{Field: field, From: current, To: v})
		}
		return true
	})
	return changes, err
}

// Apply writes changes onto the entity in order. It stops at the first coercion failure.
func Apply(adapter Adapter, entity any, changes []Change) error {
	accessors := adapter.Fields()
	for _, c := range changes {
		acc, ok := accessors[c.Field]
		if !ok {
			return fieldError(c.Field, ErrUnknownField)
		}
		if err := acc.Set(entity, c.To); err != nil {
			return fieldError(c.Field, err)
		}
	}
	return nil
}

// Candidates maps records through m and computes each one's logical key from the destination
// key fields. Key values are first coerced through the adapter's accessors, so a source "5.00"
// addresses the same entity as a destination integer 5. Records whose key cannot be computed or
// coerced are returned as RecordErrors. Records that land on one key after coercion collapse to
// the last of them, kept at the position of the first.
func Candidates(adapter Adapter, records []Record, m ColumnMapping, keyFields ...string) ([]Candidate, []*RecordError) {
	out := make([]Candidate, 0, len(records))
	index := make(map[Key]int, len(records))
	var errs []*RecordError
	for _, rec := range records {
		mapped := MapRecord(rec, m)
		if err := coerceKey(adapter, mapped, keyFields); err != nil {
			raw, _ := mapped.KeyOf(keyFields...)
			errs = append(errs, recordError(raw, err))
			continue
		}
		key, err := mapped.KeyOf(keyFields...)
		if err != nil {
			errs = append(errs, &RecordError{Err: err})
			continue
		}
		c := Candidate{Key: key, Fields: mapped}
		if i, seen := index[key]; seen {
			out[i] = c
			continue
		}
		index[key] = len(out)
		out = append(out, c)
	}
	return out, errs
}

// coerceKey rewrites the key values of mapped in the destination field types.
// Absent and NULL values are left for KeyOf to report.
func coerceKey(adapter Adapter, mapped Record, keyFields []string) error {
	accessors := adapter.Fields()
	scratch := adapter.New()
	for _, f := range keyFields {
		v, ok := mapped.Get(f)
		if !ok || v.IsNull() {
			continue
		}
		acc, ok := accessors[f]
		if !ok {
			return fieldError(f, ErrUnknownField)
		}
		if err := acc.Set(scratch, v); err != nil {
			return fieldError(f, err)
		}
		mapped.Set(f, acc.Get(scratch))
	}
	return nil
}

// fieldError tags err with the field it came from; RecordError picks it up.
type fieldErr struct {
	field string
	err   error
}

func (e *fieldErr) Error() string { return e.field + ": " + e.err.Error() }
func (e *fieldErr) Unwrap() error { return e.err }

func fieldError(field string, err error) error {
	return &fieldErr{field: field, err: err}
}
