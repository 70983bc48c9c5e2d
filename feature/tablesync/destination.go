package tablesync

import (
	"context"
	"fmt"
	"strings"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"table-sync/core/reconcile"
)

// DefaultLookupBatchSize is the number of keys per lookup query when none is configured.
const DefaultLookupBatchSize = 1000

// Destination loads and writes destination entities.
type Destination interface {
	// Lookup returns the entities whose key fields match one of keys.
	Lookup(ctx context.Context, adapter reconcile.Adapter, keyFields []string, keys [][]any) ([]any, error)
	// Write applies batch atomically.
	Write(ctx context.Context, adapter reconcile.Adapter, batch *reconcile.WriteBatch) (reconcile.WriteResult, error)
}

// GormDestination is a Destination backed by a gorm connection.
type GormDestination struct {
	db        *gorm.DB
	chunkSize int
	writer    *reconcile.BatchWriter
}

// NewGormDestination creates a destination on db.
// Non-positive sizes fall back to DefaultLookupBatchSize and reconcile.DefaultInsertBatchSize.
func NewGormDestination(db *gorm.DB, lookupBatchSize, insertBatchSize int) *GormDestination {
	if lookupBatchSize <= 0 {
		lookupBatchSize = DefaultLookupBatchSize
	}
	return &GormDestination{
		db:        db,
		chunkSize: lookupBatchSize,
		writer:    reconcile.NewBatchWriter(db, insertBatchSize),
	}
}

// Lookup implements Destination. Keys are queried in chunks to bound the IN list.
func (d *GormDestination) Lookup(ctx context.Context, adapter reconcile.Adapter, keyFields []string, keys [][]any) ([]any, error) {
	if len(keyFields) == 0 {
		return nil, fmt.Errorf("lookup on %s: no key fields", adapter.Name())
	}

	var out []any
	for start := 0; start < len(keys); start += d.chunkSize {
		end := min(start+d.chunkSize, len(keys))
		slice := adapter.NewSlice()
		q := d.db.WithContext(ctx).Table(adapter.Table())
		if err := whereKeys(q, keyFields, keys[start:end]).Find(slice).Error; err != nil {
			return nil, fmt.Errorf("lookup on %s: %w", adapter.Name(), err)
		}
		out = append(out, adapter.Unwrap(slice)...)
	}
	return out, nil
}

// Write implements Destination.
func (d *GormDestination) Write(ctx context.Context, adapter reconcile.Adapter, batch *reconcile.WriteBatch) (reconcile.WriteResult, error) {
	return d.writer.Write(ctx, adapter, batch)
}

func whereKeys(q *gorm.DB, keyFields []string, keys [][]any) *gorm.DB {
	if len(keyFields) == 1 {
		values := make([]any, len(keys))
		for i, k := range keys {
			values[i] = k[0]
		}
		return q.Where(clause.IN{Column: clause.Column{Name: keyFields[0]}, Values: values})
	}

	quoted := make([]string, len(keyFields))
	for i, f := range keyFields {
		quoted[i] = q.Statement.Quote(f)
	}
	return q.Where(fmt.Sprintf("(%s) IN ?", strings.Join(quoted, ", ")), keys)
}
