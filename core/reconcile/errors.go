package reconcile

import (
	"errors"
	"fmt"
)

// Sentinel errors for classification and configuration failures.
var (
	// ErrMissingKey indicates a record has no value for its logical key field(s).
	ErrMissingKey = errors.New("missing logical key")

	// ErrUnknownField indicates a mapped destination field has no accessor on the entity.
	ErrUnknownField = errors.New("unknown destination field")

	// ErrTypeMismatch indicates a value could not be coerced to the destination field type.
	ErrTypeMismatch = errors.New("type mismatch")

	// ErrNullValue indicates a NULL was written to a non-nullable destination field.
	ErrNullValue = errors.New("null value for non-nullable field")

	// ErrUnknownEntity indicates a job names an entity type that is not registered.
	ErrUnknownEntity = errors.New("unknown entity")

	// ErrInvalidMapping indicates a column mapping is malformed.
	ErrInvalidMapping = errors.New("invalid column mapping")
)

// RecordError is a classification failure for a single record.
// The record is excluded from the write batch; the batch itself proceeds.
type RecordError struct {
	// Key is the logical key of the offending record.
	Key Key
	// Field is the destination field that failed, if known.
	Field string
	// Err is the underlying error.
	Err error
}

// Error implements the error interface.
func (e *RecordError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("record %s: field %s: %v", e.Key, e.Field, e.Err)
	}
	return fmt.Sprintf("record %s: %v", e.Key, e.Err)
}

// Unwrap returns the underlying error.
func (e *RecordError) Unwrap() error {
	return e.Err
}

// Stage names the pipeline step a job failed in.
type Stage string

const (
	// StageConfig is a job definition that cannot run (unknown entity, bad mapping).
	StageConfig Stage = "config"
	// StageFetch is a failed source query.
	StageFetch Stage = "fetch"
	// StageLookup is a failed destination lookup of existing entities.
	StageLookup Stage = "lookup"
	// StageClassify is a record-level classification failure.
	StageClassify Stage = "classify"
	// StageWrite is a failed (and rolled back) transactional write.
	StageWrite Stage = "write"
	// StageCanceled is a job that never started because the run was canceled.
	StageCanceled Stage = "canceled"
)

// JobError is a job-level failure recorded in a run's aggregate error list.
type JobError struct {
	// Job is the name of the failing job.
	Job string
	// Stage is the pipeline step that failed.
	Stage Stage
	// Err is the underlying error.
	Err error
}

// Error implements the error interface.
func (e *JobError) Error() string {
	return fmt.Sprintf("job %s: %s: %v", e.Job, e.Stage, e.Err)
}

// Unwrap returns the underlying error.
func (e *JobError) Unwrap() error {
	return e.Err
}
