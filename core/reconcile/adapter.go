package reconcile

import (
	"fmt"
	"sort"
	"sync"
	"time"
)

// Adapter defines the interface for entity-specific reconciliation logic.
// Each adapter describes one destination entity type (e.g., tariff_config, tower_config):
// how to construct it, which table it lives in, and how to read and write its fields
// by name through an explicit accessor table instead of reflection.
type Adapter interface {
	// Name returns the unique name of this entity type (e.g., "tariff_config").
	Name() string

	// Table returns the destination table name.
	Table() string

	// New returns a new zero entity (a pointer to the model struct).
	New() any

	// Fields returns the accessor table keyed by destination field (column) name.
	Fields() Accessors

	// NewSlice returns a pointer to an empty typed slice of entities, suitable for gorm Find.
	NewSlice() any

	// Unwrap returns the entities held by a slice created by NewSlice.
	Unwrap(slice any) []any

	// Wrap converts entities into a typed slice, suitable for gorm Create.
	Wrap(entities []any) any
}

// FieldAccessor reads and writes one destination field on an entity.
type FieldAccessor struct {
	// Get returns the current value of the field.
	Get func(entity any) Value

	// Set coerces v to the field type and stores it.
	// It returns ErrNullValue or ErrTypeMismatch when v does not fit.
	Set func(entity any, v Value) error
}

// Accessors is a field accessor table keyed by destination field name.
type Accessors map[string]FieldAccessor

// Names returns the sorted field names of the table.
func (a Accessors) Names() []string {
	names := make([]string, 0, len(a))
	for name := range a {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Model is the generic Adapter implementation for a gorm model type E.
type Model[E any] struct {
	name      string
	table     string
	accessors Accessors
}

// NewModel creates an adapter for model E stored in table, named after the table.
func NewModel[E any](table string, accessors Accessors) *Model[E] {
	return &Model[E]{name: table, table: table, accessors: accessors}
}

// Name returns the entity name.
func (m *Model[E]) Name() string { return m.name }

// Table returns the destination table.
func (m *Model[E]) Table() string { return m.table }

// New returns a new *E.
func (m *Model[E]) New() any { return new(E) }

// Fields returns the accessor table.
func (m *Model[E]) Fields() Accessors { return m.accessors }

// NewSlice returns a *[]*E.
func (m *Model[E]) NewSlice() any { return &[]*E{} }

// Unwrap converts a *[]*E into []any.
func (m *Model[E]) Unwrap(slice any) []any {
	items := *slice.(*[]*E)
	out := make([]any, len(items))
	for i, item := range items {
		out[i] = item
	}
	return out
}

// Wrap converts []any holding *E into []*E.
func (m *Model[E]) Wrap(entities []any) any {
	out := make([]*E, len(entities))
	for i, e := range entities {
		out[i] = e.(*E)
	}
	return out
}

// StringField builds an accessor for a non-nullable string field.
func StringField[E any](field func(*E) *string) FieldAccessor {
	return FieldAccessor{
		Get: func(e any) Value { return StringValue(*field(e.(*E))) },
		Set: func(e any, v Value) error {
			s, err := v.AsString()
			if err != nil {
				return err
			}
			*field(e.(*E)) = s
			return nil
		},
	}
}

// OptionalStringField builds an accessor for a nullable string field.
func OptionalStringField[E any](field func(*E) **string) FieldAccessor {
	return FieldAccessor{
		Get: func(e any) Value {
			if p := *field(e.(*E)); p != nil {
				return StringValue(*p)
			}
			return Null
		},
		Set: func(e any, v Value) error {
			if v.IsNull() {
				*field(e.(*E)) = nil
				return nil
			}
			s, err := v.AsString()
			if err != nil {
				return err
			}
			*field(e.(*E)) = &s
			return nil
		},
	}
}

// IntField builds an accessor for a non-nullable integer field.
func IntField[E any](field func(*E) *int64) FieldAccessor {
	return FieldAccessor{
		Get: func(e any) Value { return IntValue(*field(e.(*E))) },
		Set: func(e any, v Value) error {
			i, err := v.AsInt()
			if err != nil {
				return err
			}
			*field(e.(*E)) = i
			return nil
		},
	}
}

// OptionalIntField builds an accessor for a nullable integer field.
func OptionalIntField[E any](field func(*E) **int64) FieldAccessor {
	return FieldAccessor{
		Get: func(e any) Value {
			if p := *field(e.(*E)); p != nil {
				return IntValue(*p)
			}
			return Null
		},
		Set: func(e any, v Value) error {
			if v.IsNull() {
				*field(e.(*E)) = nil
				return nil
			}
			i, err := v.AsInt()
			if err != nil {
				return err
			}
			*field(e.(*E)) = &i
			return nil
		},
	}
}

// FloatField builds an accessor for a non-nullable float field.
func FloatField[E any](field func(*E) *float64) FieldAccessor {
	return FieldAccessor{
		Get: func(e any) Value { return FloatValue(*field(e.(*E))) },
		Set: func(e any, v Value) error {
			f, err := v.AsFloat()
			if err != nil {
				return err
			}
			*field(e.(*E)) = f
			return nil
		},
	}
}

// OptionalFloatField builds an accessor for a nullable float field.
func OptionalFloatField[E any](field func(*E) **float64) FieldAccessor {
	return FieldAccessor{
		Get: func(e any) Value {
			if p := *field(e.(*E)); p != nil {
				return FloatValue(*p)
			}
			return Null
		},
		Set: func(e any, v Value) error {
			if v.IsNull() {
				*field(e.(*E)) = nil
				return nil
			}
			f, err := v.AsFloat()
			if err != nil {
				return err
			}
			*field(e.(*E)) = &f
			return nil
		},
	}
}

// TimeField builds an accessor for a non-nullable timestamp field.
func TimeField[E any](field func(*E) *time.Time) FieldAccessor {
	return FieldAccessor{
		Get: func(e any) Value { return TimeValue(*field(e.(*E))) },
		Set: func(e any, v Value) error {
			t, err := v.AsTime()
			if err != nil {
				return err
			}
			*field(e.(*E)) = t
			return nil
		},
	}
}

// OptionalTimeField builds an accessor for a nullable timestamp field.
func OptionalTimeField[E any](field func(*E) **time.Time) FieldAccessor {
	return FieldAccessor{
		Get: func(e any) Value {
			if p := *field(e.(*E)); p != nil {
				return TimeValue(*p)
			}
			return Null
		},
		Set: func(e any, v Value) error {
			if v.IsNull() {
				*field(e.(*E)) = nil
				return nil
			}
			t, err := v.AsTime()
			if err != nil {
				return err
			}
			*field(e.(*E)) = &t
			return nil
		},
	}
}

// Registry holds adapters by entity name.
type Registry struct {
	mu       sync.RWMutex
	adapters map[string]Adapter
}

// NewRegistry creates a registry holding the given adapters.
func NewRegistry(adapters ...Adapter) *Registry {
	r := &Registry{adapters: make(map[string]Adapter)}
	for _, a := range adapters {
		r.Register(a)
	}
	return r
}

// Register adds or replaces an adapter.
func (r *Registry) Register(a Adapter) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.adapters[a.Name()] = a
}

// Get returns the adapter registered under name.
func (r *Registry) Get(name string) (Adapter, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	a, ok := r.adapters[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownEntity, name)
	}
	return a, nil
}

// Names returns the registered entity names, sorted.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.adapters))
	for name := range r.adapters {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
