package tablesync

import (
	"fmt"
	"regexp"

	"table-sync/core/reconcile"
)

var identifierPattern = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// SourceTable describes one table read by a job.
type SourceTable struct {
	// Database qualifies the table (e.g. db_office). Empty reads from the connection's default schema.
	Database string `yaml:"database" json:"database,omitempty"`
	// Table is the source table name.
	Table string `yaml:"table" json:"table"`
	// Columns lists the columns to select. Empty selects every column.
	Columns []string `yaml:"columns" json:"columns,omitempty"`
	// Key is the field the table's rows are deduplicated on.
	Key string `yaml:"key" json:"key"`
	// JoinOn is the field joined on when the table takes part in a merge. Defaults to Key.
	JoinOn string `yaml:"join_on" json:"join_on,omitempty"`
}

// Name returns the qualified table name.
func (s SourceTable) Name() string {
	if s.Database == "" {
		return s.Table
	}
	return s.Database + "." + s.Table
}

// JoinField returns JoinOn, falling back to Key.
func (s SourceTable) JoinField() string {
	if s.JoinOn != "" {
		return s.JoinOn
	}
	return s.Key
}

// Job is one declarative sync unit: source table(s), a destination entity and a column mapping.
type Job struct {
	// Name identifies the job in logs and reports.
	Name string `yaml:"name" json:"name"`
	// Entity names the destination adapter.
	Entity string `yaml:"entity" json:"entity"`
	// Key lists the source field(s) forming the logical key. Each must be mapped.
	Key []string `yaml:"key" json:"key"`
	// Sources lists the tables read. The first is the primary; the rest are left-joined onto it in order.
	Sources []SourceTable `yaml:"sources" json:"sources"`
	// Mapping pairs source fields with destination fields. Empty maps every destination field to
	// the source field of the same name.
	Mapping []reconcile.MappingPair `yaml:"mapping" json:"mapping,omitempty"`
}

// Family is a named list of jobs triggered together.
type Family struct {
	Name string `yaml:"name" json:"name"`
	Jobs []Job  `yaml:"jobs" json:"jobs"`
}

// Plan is a job resolved against the adapter registry, ready to run.
type Plan struct {
	Job     Job
	Adapter reconcile.Adapter
	Mapping reconcile.ColumnMapping
	// DestinationKey holds the destination names of Job.Key.
	DestinationKey []string
}

// Resolve validates the job and binds it to its adapter.
func (j Job) Resolve(registry *reconcile.Registry) (*Plan, error) {
	if j.Name == "" {
		return nil, fmt.Errorf("job has no name")
	}
	if len(j.Sources) == 0 {
		return nil, fmt.Errorf("job %s has no sources", j.Name)
	}
	if len(j.Key) == 0 {
		return nil, fmt.Errorf("job %s has no key", j.Name)
	}
	for i, src := range j.Sources {
		if err := src.validate(); err != nil {
			return nil, fmt.Errorf("job %s source %d: %w", j.Name, i, err)
		}
	}

	adapter, err := registry.Get(j.Entity)
	if err != nil {
		return nil, fmt.Errorf("job %s: %w", j.Name, err)
	}

	var mapping reconcile.ColumnMapping
	if len(j.Mapping) == 0 {
		mapping, err = reconcile.IdentityMapping(adapter.Fields().Names()...)
	} else {
		mapping, err = reconcile.NewColumnMapping(j.Mapping...)
	}
	if err != nil {
		return nil, fmt.Errorf("job %s: %w", j.Name, err)
	}
	if err := reconcile.ValidateMapping(adapter, mapping); err != nil {
		return nil, fmt.Errorf("job %s: %w", j.Name, err)
	}

	destKey := make([]string, len(j.Key))
	for i, k := range j.Key {
		dst, ok := mapping.Destination(k)
		if !ok {
			return nil, fmt.Errorf("job %s: %w: key field %s is not mapped", j.Name, reconcile.ErrInvalidMapping, k)
		}
		destKey[i] = dst
	}

	return &Plan{Job: j, Adapter: adapter, Mapping: mapping, DestinationKey: destKey}, nil
}

// Validate reports whether the job can run against registry.
func (j Job) Validate(registry *reconcile.Registry) error {
	_, err := j.Resolve(registry)
	return err
}

func (s SourceTable) validate() error {
	if !identifierPattern.MatchString(s.Table) {
		return fmt.Errorf("invalid table name %q", s.Table)
	}
	if s.Database != "" && !identifierPattern.MatchString(s.Database) {
		return fmt.Errorf("invalid database name %q", s.Database)
	}
	for _, c := range s.Columns {
		if !identifierPattern.MatchString(c) {
			return fmt.Errorf("invalid column name %q", c)
		}
	}
	if s.Key == "" {
		return fmt.Errorf("table %s has no key", s.Table)
	}
	return nil
}

// Validate resolves every job of the family.
func (f Family) Validate(registry *reconcile.Registry) error {
	if f.Name == "" {
		return fmt.Errorf("family has no name")
	}
	seen := make(map[string]struct{}, len(f.Jobs))
	for _, j := range f.Jobs {
		if _, dup := seen[j.Name]; dup {
			return fmt.Errorf("family %s: duplicate job %s", f.Name, j.Name)
		}
		seen[j.Name] = struct{}{}
		if err := j.Validate(registry); err != nil {
			return fmt.Errorf("family %s: %w", f.Name, err)
		}
	}
	return nil
}
