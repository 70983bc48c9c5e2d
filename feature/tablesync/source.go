package tablesync

import (
	"context"
	"database/sql"
	"fmt"

	"gorm.io/gorm"

	"table-sync/core/reconcile"
)

// Source reads records from the legacy store.
type Source interface {
	// Fetch selects the configured columns of table and returns one record per row.
	Fetch(ctx context.Context, table SourceTable) ([]reconcile.Record, error)
	// Query runs an ad-hoc read query.
	Query(ctx context.Context, query string, args ...any) ([]reconcile.Record, error)
	// ExecMany runs query once per argument set in a single transaction and returns the rows affected.
	ExecMany(ctx context.Context, query string, argSets [][]any) (int64, error)
}

// GormSource is a Source backed by a gorm connection.
type GormSource struct {
	db *gorm.DB
}

// NewGormSource creates a source reading from db.
func NewGormSource(db *gorm.DB) *GormSource {
	return &GormSource{db: db}
}

// Fetch implements Source.
func (s *GormSource) Fetch(ctx context.Context, table SourceTable) ([]reconcile.Record, error) {
	q := s.db.WithContext(ctx).Table(table.Name())
	if len(table.Columns) > 0 {
		q = q.Select(table.Columns)
	}
	rows, err := q.Rows()
	if err != nil {
		return nil, fmt.Errorf("failed to query %s: %w", table.Name(), err)
	}
	defer rows.Close()

	records, err := scanRecords(rows)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", table.Name(), err)
	}
	return records, nil
}

// Query implements Source.
func (s *GormSource) Query(ctx context.Context, query string, args ...any) ([]reconcile.Record, error) {
	rows, err := s.db.WithContext(ctx).Raw(query, args...).Rows()
	if err != nil {
		return nil, fmt.Errorf("failed to run query: %w", err)
	}
	defer rows.Close()
	return scanRecords(rows)
}

// ExecMany implements Source.
func (s *GormSource) ExecMany(ctx context.Context, query string, argSets [][]any) (int64, error) {
	var affected int64
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for i, args := range argSets {
			res := tx.Exec(query, args...)
			if res.Error != nil {
				return fmt.Errorf("statement %d: %w", i, res.Error)
			}
			affected += res.RowsAffected
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return affected, nil
}

// scanRecords converts every remaining row into a record, keeping the column order.
func scanRecords(rows *sql.Rows) ([]reconcile.Record, error) {
	columns, err := rows.Columns()
	if err != nil {
		return nil, err
	}

	var records []reconcile.Record
	for rows.Next() {
		values := make([]any, len(columns))
		ptrs := make([]any, len(columns))
		for i := range values {
			ptrs[i] = &values[i]
		}
		if err := rows.Scan(ptrs...); err != nil {
			return nil, err
		}
		row := make(map[string]any, len(columns))
		for i, col := range columns {
			row[col] = values[i]
		}
		records = append(records, reconcile.RecordFromRow(columns, row))
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return records, nil
}
