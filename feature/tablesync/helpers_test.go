package tablesync

import (
	"context"
	"errors"
	"testing"

	"table-sync/core/database"
	"table-sync/core/reconcile"
	"table-sync/feature/tablesync/models"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// setupSourceDB creates an in-memory SQLite DB shaped like the legacy tables.
func setupSourceDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := database.Connect(database.Config{Driver: database.DriverSQLite, Name: ":memory:"})
	require.NoError(t, err)
	t.Cleanup(func() { _ = database.Close(db) })

	for _, stmt := range []string{
		`CREATE TABLE tbl_site_initialization (site_id TEXT, meter_ip TEXT, status TEXT, timestamp DATETIME)`,
		`CREATE TABLE tbl_backup_dcu_info (meter_address TEXT, dg_price REAL, eb_price REAL, dg_full_tariff TEXT, eb_full_tariff TEXT)`,
		`CREATE TABLE user_meter_detail (id INTEGER, user_id INTEGER, site_id TEXT, meter_ip TEXT, status TEXT)`,
	} {
		require.NoError(t, db.Exec(stmt).Error)
	}
	return db
}

// setupDestinationDB creates an in-memory SQLite DB migrated with every destination model.
func setupDestinationDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := database.Connect(database.Config{Driver: database.DriverSQLite, Name: ":memory:"})
	require.NoError(t, err)
	t.Cleanup(func() { _ = database.Close(db) })

	require.NoError(t, db.AutoMigrate(models.All()...))
	return db
}

func seedSites(t *testing.T, db *gorm.DB) {
	t.Helper()
	require.NoError(t, db.Exec(`INSERT INTO tbl_site_initialization VALUES
		('S1', '1.1.1.1', 'OK', '2024-01-02 10:00:00'),
		('S1', '5.0.134.6', 'OFF', '2024-01-02 10:00:00'),
		('S1', '5.0.134.6', 'OK', '2024-01-03 10:00:00'),
		('S2', NULL, 'OK', '2024-01-02 10:00:00')`).Error)
	require.NoError(t, db.Exec(`INSERT INTO tbl_backup_dcu_info VALUES
		('1.1.1.1', 7, 10, NULL, 'EB-A'),
		('5.0.134.6', NULL, 12, 'DG-B', 'EB-B')`).Error)
}

// combineJob mirrors the built-in combine job on unqualified SQLite tables.
func combineJob() Job {
	job := DefaultFamilies()[2].Jobs[0]
	job.Sources = append([]SourceTable(nil), job.Sources...)
	for i := range job.Sources {
		job.Sources[i].Database = ""
	}
	return job
}

func userMeterJob() Job {
	return Job{
		Name:    "user_meter_detail",
		Entity:  models.EntityUserMeterDetail,
		Key:     []string{"id"},
		Sources: []SourceTable{{Table: "user_meter_detail", Key: "id"}},
	}
}

func newTestRunner(src, dst *gorm.DB) *Runner {
	return NewRunner(NewGormSource(src), NewGormDestination(dst, 1, 1), models.Registry(), zap.NewNop(), 2)
}

func jobErrors(t *testing.T, report *RunReport) []*reconcile.JobError {
	t.Helper()
	var out []*reconcile.JobError
	for _, err := range report.JobErrors() {
		var je *reconcile.JobError
		require.True(t, errors.As(err, &je), "unexpected error type %T", err)
		out = append(out, je)
	}
	return out
}

func runFamily(r *Runner, jobs ...Job) *RunReport {
	return r.Run(context.Background(), Family{Name: "test", Jobs: jobs}, Options{})
}
