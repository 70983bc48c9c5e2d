package reconcile

import (
	"errors"
	"fmt"
)

// Reconcile classifies each candidate against the existing destination entities.
// A candidate whose key is present in existing is diffed and becomes an Update when any mapped
// field differs (otherwise it counts as unchanged); a candidate with an absent key is built into
// an Insert. Records that fail coercion are reported in the batch's Errors and left out of both lists.
//
// Candidates are assumed to be deduplicated. The existing entities are mutated in place for
// updates; Reconcile never deletes.
func Reconcile(adapter Adapter, candidates []Candidate, existing map[Key]any) *WriteBatch {
	batch := &WriteBatch{Entity: adapter.Name()}

	for _, c := range candidates {
		entity, found := existing[c.Key]
		if !found {
			built, err := Build(adapter, c.Fields)
			if err != nil {
				batch.Errors = append(batch.Errors, recordError(c.Key, err))
				continue
			}
			batch.Inserts = append(batch.Inserts, Insert{Key: c.Key, Entity: built})
			continue
		}

		changes, err := Diff(adapter, entity, c.Fields)
		if err != nil {
			batch.Errors = append(batch.Errors, recordError(c.Key, err))
			continue
		}
		if len(changes) == 0 {
			batch.Unchanged++
			continue
		}

		// Coerce onto a scratch copy first so a failing field leaves the entity untouched.
		scratch := adapter.New()
		if err := copyFields(adapter, entity, scratch); err != nil {
			batch.Errors = append(batch.Errors, recordError(c.Key, err))
			continue
		}
		if err := Apply(adapter, scratch, changes); err != nil {
			batch.Errors = append(batch.Errors, recordError(c.Key, err))
			continue
		}
		if err := Apply(adapter, entity, changes); err != nil {
			batch.Errors = append(batch.Errors, recordError(c.Key, err))
			continue
		}

		fields := make([]string, len(changes))
		for i, ch := range changes {
			fields[i] = ch.Field
		}
		batch.Updates = append(batch.Updates, Update{Key: c.Key, Entity: entity, Fields: fields})
	}

	return batch
}

// IndexExisting keys destination entities by the logical key computed from keyFields.
// Entities whose key field is NULL cannot be matched and are skipped.
func IndexExisting(adapter Adapter, entities []any, keyFields ...string) (map[Key]any, error) {
	accessors := adapter.Fields()
	for _, f := range keyFields {
		if _, ok := accessors[f]; !ok {
			return nil, fmt.Errorf("%w: %s has no key field %s", ErrUnknownField, adapter.Name(), f)
		}
	}

	index := make(map[Key]any, len(entities))
	parts := make([]string, len(keyFields))
	for _, e := range entities {
		skip := false
		for i, f := range keyFields {
			k, ok := accessors[f].Get(e).Key()
			if !ok {
				skip = true
				break
			}
			parts[i] = k
		}
		if skip {
			continue
		}
		index[NewKey(parts...)] = e
	}
	return index, nil
}

// KeyValues returns the key values for lookup: one slice per key field, in candidate order.
func KeyValues(candidates []Candidate, keyFields ...string) [][]any {
	out := make([][]any, 0, len(candidates))
	for _, c := range candidates {
		row := make([]any, 0, len(keyFields))
		for _, f := range keyFields {
			v, _ := c.Fields.Get(f)
			row = append(row, v.Interface())
		}
		out = append(out, row)
	}
	return out
}

func copyFields(adapter Adapter, from, to any) error {
	for name, acc := range adapter.Fields() {
		if err := acc.Set(to, acc.Get(from)); err != nil {
			return fieldError(name, err)
		}
	}
	return nil
}

func recordError(key Key, err error) *RecordError {
	re := &RecordError{Key: key, Err: err}
	var fe *fieldErr
	if errors.As(err, &fe) {
		re.Field = fe.field
		re.Err = fe.err
	}
	return re
}
