package reconcile

import "strings"

// keySeparator joins the parts of a composite key. It cannot appear in canonical scalar text.
const keySeparator = "\x1f"

// Key is the canonical form of a logical key, possibly composite.
type Key string

// NewKey builds a Key from its canonical parts.
func NewKey(parts ...string) Key {
	return Key(strings.Join(parts, keySeparator))
}

// Parts splits a composite key into its canonical parts.
func (k Key) Parts() []string {
	return strings.Split(string(k), keySeparator)
}

// String renders the key for logs, composite parts joined by commas.
func (k Key) String() string {
	return strings.ReplaceAll(string(k), keySeparator, ",")
}

// Candidate is a source record after column mapping, addressed by its logical key.
// Fields is keyed by destination field name.
type Candidate struct {
	// Key is the logical key computed from the destination key field(s).
	Key Key

	// Fields holds the mapped destination field values, in mapping order.
	Fields Record
}

// Change describes one differing destination field.
type Change struct {
	// Field is the destination field name.
	Field string

	// From is the current destination value.
	From Value

	// To is the incoming source value.
	To Value
}

// Update is an existing entity mutated in place with the fields that changed.
type Update struct {
	// Key is the logical key of the entity.
	Key Key

	// Entity is the mutated destination entity (pointer to the model).
	Entity any

	// Fields lists the destination fields that changed, in mapping order.
	Fields []string
}

// Insert is a newly constructed entity.
type Insert struct {
	// Key is the logical key of the entity.
	Key Key

	// Entity is the constructed destination entity (pointer to the model).
	Entity any
}

// WriteBatch is the output of one reconciliation pass for one job.
// It is applied atomically by a BatchWriter.
type WriteBatch struct {
	// Entity is the name of the destination entity type.
	Entity string

	// Updates contains existing entities whose mapped fields changed.
	Updates []Update

	// Inserts contains entities for keys absent from the destination.
	Inserts []Insert

	// Unchanged counts records whose mapped fields already match the destination.
	Unchanged int

	// Errors contains per-record classification failures; those records are in neither list.
	Errors []*RecordError
}

// Empty reports whether the batch has nothing to write.
func (b *WriteBatch) Empty() bool {
	return len(b.Updates) == 0 && len(b.Inserts) == 0
}

// UpdateEntities returns the entities to update.
func (b *WriteBatch) UpdateEntities() []any {
	out := make([]any, len(b.Updates))
	for i, u := range b.Updates {
		out[i] = u.Entity
	}
	return out
}

// InsertEntities returns the entities to insert.
func (b *WriteBatch) InsertEntities() []any {
	out := make([]any, len(b.Inserts))
	for i, ins := range b.Inserts {
		out[i] = ins.Entity
	}
	return out
}

// Summary returns aggregate counts for the batch.
func (b *WriteBatch) Summary() BatchSummary {
	return BatchSummary{
		Updates:   len(b.Updates),
		Inserts:   len(b.Inserts),
		Unchanged: b.Unchanged,
		Errors:    len(b.Errors),
	}
}

// BatchSummary provides aggregate statistics for a write batch.
type BatchSummary struct {
	// Updates counts entities to update.
	Updates int `json:"updates"`

	// Inserts counts entities to insert.
	Inserts int `json:"inserts"`

	// Unchanged counts records that required no write.
	Unchanged int `json:"unchanged"`

	// Errors counts records excluded by classification failures.
	Errors int `json:"errors"`
}
