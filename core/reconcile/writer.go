package reconcile

import (
	"context"
	"fmt"

	"gorm.io/gorm"
)

// DefaultInsertBatchSize is the number of rows per INSERT statement when none is configured.
const DefaultInsertBatchSize = 500

// WriteResult reports what a BatchWriter persisted.
type WriteResult struct {
	Updated  int `json:"updated"`
	Inserted int `json:"inserted"`
}

// BatchWriter applies a WriteBatch to the destination in a single transaction:
// every update and insert commits together or none does.
type BatchWriter struct {
	db        *gorm.DB
	batchSize int
}

// NewBatchWriter creates a writer on db. A non-positive batchSize uses DefaultInsertBatchSize.
func NewBatchWriter(db *gorm.DB, batchSize int) *BatchWriter {
	if batchSize <= 0 {
		batchSize = DefaultInsertBatchSize
	}
	return &BatchWriter{db: db, batchSize: batchSize}
}

// Write persists batch. Updates touch only the fields that changed; inserts are chunked by the
// configured batch size. Any failure rolls back the whole batch and is returned.
// An empty batch commits trivially without opening a transaction.
func (w *BatchWriter) Write(ctx context.Context, adapter Adapter, batch *WriteBatch) (WriteResult, error) {
	if batch == nil || batch.Empty() {
		return WriteResult{}, nil
	}

	err := w.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, u := range batch.Updates {
			result := tx.Table(adapter.Table()).Model(u.Entity).Select(u.Fields).Updates(u.Entity)
			if result.Error != nil {
				return fmt.Errorf("update %s %s: %w", adapter.Name(), u.Key, result.Error)
			}
		}

		if len(batch.Inserts) > 0 {
			rows := adapter.Wrap(batch.InsertEntities())
			if err := tx.Table(adapter.Table()).CreateInBatches(rows, w.batchSize).Error; err != nil {
				return fmt.Errorf("insert %d %s rows: %w", len(batch.Inserts), adapter.Name(), err)
			}
		}
		return nil
	})
	if err != nil {
		return WriteResult{}, err
	}

	return WriteResult{Updated: len(batch.Updates), Inserted: len(batch.Inserts)}, nil
}
