// Package tablesync runs declarative sync jobs that upsert rows from the legacy MySQL
// tables into the destination store.
//
// A Job names its source table(s), the destination entity, the logical key and the
// column mapping. Jobs are grouped into families which are triggered together; the
// built-in families are tables, selective-column and combine, and a YAML jobs file
// can replace them.
//
// # Pipeline
//
// For every job the Runner fetches each source table, deduplicates it on its key,
// left-joins the secondary tables onto the primary, maps the merged records onto
// destination fields, looks up the existing entities in chunks, reconciles them into
// a write batch and applies the batch in one transaction. Jobs run on a bounded
// worker pool; a failing job is recorded in the run's error list and never stops
// the others.
//
// # Components
//
//   - Runner: the per-job pipeline and the run report.
//   - Source / Destination: gorm-backed store collaborators.
//   - Service: collapses concurrent triggers, bounds runs and archives reports.
//   - Handler: HTTP trigger surface.
//
// # HTTP Endpoints
//
//   - GET /sync-tables, /selective-column-sync-tables, /combine-table-and-sync : legacy triggers ("done" / "not done").
//   - GET /sync/:family?dry_run=true : run a family and return its report.
//   - GET /families : list families.
//   - GET /check/:family : verify destination columns.
//   - GET /reports, GET|DELETE /reports/* : archived run reports.
package tablesync
