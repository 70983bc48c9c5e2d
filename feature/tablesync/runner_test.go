package tablesync

import (
	"context"
	"testing"

	"table-sync/core/reconcile"
	"table-sync/feature/tablesync/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func TestRunner_CombineUpsert(t *testing.T) {
	src, dst := setupSourceDB(t), setupDestinationDB(t)
	seedSites(t, src)
	runner := newTestRunner(src, dst)

	report := runFamily(runner, combineJob())
	require.True(t, report.OK, report.Errors)
	require.Len(t, report.Jobs, 1)

	job := report.Jobs[0]
	assert.Equal(t, 6, job.Fetched)
	assert.Equal(t, 1, job.MissingKey, "the row without meter_ip is dropped")
	assert.Equal(t, 1, job.Duplicates)
	assert.Equal(t, reconcile.WriteResult{Inserted: 2}, job.Written)
	assert.NotEmpty(t, job.Warnings)

	var rows []models.TariffConfig
	require.NoError(t, dst.Order("meter_ip").Find(&rows).Error)
	require.Len(t, rows, 2)

	assert.Equal(t, "1.1.1.1", rows[0].MeterIP)
	assert.Equal(t, "OK", rows[0].Status)
	require.NotNil(t, rows[0].DGPrice)
	assert.Equal(t, 7.0, *rows[0].DGPrice)
	assert.Nil(t, rows[0].DGFullTariff)
	assert.Equal(t, "EB-A", rows[0].EBFullTariff)

	assert.Equal(t, "5.0.134.6", rows[1].MeterIP)
	assert.Equal(t, "OK", rows[1].Status, "the last duplicate wins")
	assert.Equal(t, 3, rows[1].Timestamp.Day())
	assert.Nil(t, rows[1].DGPrice)
	require.NotNil(t, rows[1].EBPrice)
	assert.Equal(t, 12.0, *rows[1].EBPrice)

	t.Run("Update", func(t *testing.T) {
		require.NoError(t, src.Exec(`UPDATE tbl_backup_dcu_info SET eb_price = 15 WHERE meter_address = '1.1.1.1'`).Error)

		report := runFamily(runner, combineJob())
		require.True(t, report.OK, report.Errors)
		assert.Equal(t, reconcile.WriteResult{Updated: 1}, report.Jobs[0].Written)
		assert.Equal(t, 1, report.Jobs[0].Summary.Unchanged)

		var price float64
		require.NoError(t, dst.Model(&models.TariffConfig{}).Select("eb_price").Where("meter_ip = ?", "1.1.1.1").Scan(&price).Error)
		assert.Equal(t, 15.0, price)
	})

	t.Run("Rerun Is Idempotent", func(t *testing.T) {
		report := runFamily(runner, combineJob())
		require.True(t, report.OK, report.Errors)
		assert.Zero(t, report.Jobs[0].Written)
		assert.Equal(t, reconcile.BatchSummary{Unchanged: 2}, report.Jobs[0].Summary)
	})
}

func TestRunner_DryRun(t *testing.T) {
	src, dst := setupSourceDB(t), setupDestinationDB(t)
	seedSites(t, src)

	report := newTestRunner(src, dst).Run(context.Background(), Family{Name: "test", Jobs: []Job{combineJob()}}, Options{DryRun: true})
	require.True(t, report.OK, report.Errors)
	assert.True(t, report.DryRun)

	changes := report.Jobs[0].Changes
	require.Len(t, changes, 2)
	for _, ch := range changes {
		assert.Equal(t, "insert", ch.Action)
	}
	assert.Equal(t, "1.1.1.1", changes[0].Key)
	assert.Equal(t, 7.0, changes[0].Values["dg_price"])

	var count int64
	dst.Model(&models.TariffConfig{}).Count(&count)
	assert.Zero(t, count)
}

func TestRunner_FailedWriteRollsBackOnlyThatJob(t *testing.T) {
	src, dst := setupSourceDB(t), setupDestinationDB(t)
	seedSites(t, src)
	require.NoError(t, src.Exec(`INSERT INTO user_meter_detail VALUES (1, 10, 'S1', '1.1.1.1', 'OK')`).Error)
	require.NoError(t, dst.Exec(`CREATE TRIGGER reject_meter BEFORE INSERT ON tariff_config
		WHEN NEW.meter_ip = '5.0.134.6' BEGIN SELECT RAISE(ABORT, 'meter rejected'); END`).Error)

	report := runFamily(newTestRunner(src, dst), combineJob(), userMeterJob())
	assert.False(t, report.OK)

	errs := jobErrors(t, report)
	require.Len(t, errs, 1, "exactly one entry for the failed job")
	assert.Equal(t, "tariff_config", errs[0].Job)
	assert.Equal(t, reconcile.StageWrite, errs[0].Stage)
	assert.ErrorContains(t, report.Err(), "meter rejected")

	var tariffs int64
	dst.Model(&models.TariffConfig{}).Count(&tariffs)
	assert.Zero(t, tariffs, "the first insert of the failed batch is rolled back")

	var meters int64
	dst.Model(&models.UserMeterDetail{}).Count(&meters)
	assert.Equal(t, int64(1), meters, "the other job still commits")
	assert.Equal(t, reconcile.WriteResult{Inserted: 1}, report.Jobs[1].Written)
}

func TestRunner_JobFailures(t *testing.T) {
	t.Run("Unknown Entity", func(t *testing.T) {
		job := userMeterJob()
		job.Entity = "nope"

		report := runFamily(newTestRunner(setupSourceDB(t), setupDestinationDB(t)), job)
		errs := jobErrors(t, report)
		require.Len(t, errs, 1)
		assert.Equal(t, reconcile.StageConfig, errs[0].Stage)
		assert.ErrorIs(t, errs[0], reconcile.ErrUnknownEntity)
	})

	t.Run("Missing Source Table", func(t *testing.T) {
		job := userMeterJob()
		job.Sources[0].Table = "missing_table"

		report := runFamily(newTestRunner(setupSourceDB(t), setupDestinationDB(t)), job)
		errs := jobErrors(t, report)
		require.Len(t, errs, 1)
		assert.Equal(t, reconcile.StageFetch, errs[0].Stage)
		assert.NotEmpty(t, report.Jobs[0].Error)
	})

	t.Run("Empty Source Skips Job", func(t *testing.T) {
		report := runFamily(newTestRunner(setupSourceDB(t), setupDestinationDB(t)), userMeterJob())
		assert.True(t, report.OK)
		assert.True(t, report.Jobs[0].Skipped)
		assert.Len(t, report.Jobs[0].Warnings, 1)
	})

	t.Run("Classification Error Keeps Batch", func(t *testing.T) {
		src, dst := setupSourceDB(t), setupDestinationDB(t)
		require.NoError(t, src.Exec(`INSERT INTO user_meter_detail VALUES
			(1, 10, 'S1', '1.1.1.1', 'OK'),
			(2, 'abc', 'S1', '2.2.2.2', 'OK')`).Error)

		report := runFamily(newTestRunner(src, dst), userMeterJob())
		assert.False(t, report.OK)

		errs := jobErrors(t, report)
		require.Len(t, errs, 1)
		assert.Equal(t, reconcile.StageClassify, errs[0].Stage)

		var re *reconcile.RecordError
		require.ErrorAs(t, errs[0], &re)
		assert.Equal(t, "user_id", re.Field)
		assert.Equal(t, reconcile.Key("2"), re.Key)

		assert.Equal(t, reconcile.WriteResult{Inserted: 1}, report.Jobs[0].Written)
	})
}

// hookedDestination runs callbacks around a real destination.
type hookedDestination struct {
	*GormDestination
	afterLookup func()
	beforeWrite func(ctx context.Context)
	writes      int
}

func (d *hookedDestination) Lookup(ctx context.Context, adapter reconcile.Adapter, keyFields []string, keys [][]any) ([]any, error) {
	out, err := d.GormDestination.Lookup(ctx, adapter, keyFields, keys)
	if d.afterLookup != nil {
		d.afterLookup()
	}
	return out, err
}

func (d *hookedDestination) Write(ctx context.Context, adapter reconcile.Adapter, batch *reconcile.WriteBatch) (reconcile.WriteResult, error) {
	d.writes++
	if d.beforeWrite != nil {
		d.beforeWrite(ctx)
	}
	return d.GormDestination.Write(ctx, adapter, batch)
}

func TestRunner_CanceledMidJob(t *testing.T) {
	setup := func(t *testing.T) (*gorm.DB, *hookedDestination, func(ctx context.Context) *RunReport) {
		src, dst := setupSourceDB(t), setupDestinationDB(t)
		seedSites(t, src)
		dest := &hookedDestination{GormDestination: NewGormDestination(dst, 1, 1)}
		runner := NewRunner(NewGormSource(src), dest, models.Registry(), zap.NewNop(), 1)
		run := func(ctx context.Context) *RunReport {
			return runner.Run(ctx, Family{Name: "test", Jobs: []Job{combineJob()}}, Options{})
		}
		return dst, dest, run
	}

	t.Run("Before Write Nothing Is Written", func(t *testing.T) {
		dst, dest, run := setup(t)
		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()
		dest.afterLookup = cancel

		report := run(ctx)
		assert.False(t, report.OK)
		errs := jobErrors(t, report)
		require.Len(t, errs, 1)
		assert.Equal(t, reconcile.StageCanceled, errs[0].Stage)
		assert.ErrorIs(t, errs[0], context.Canceled)
		assert.Zero(t, dest.writes)

		var count int64
		dst.Model(&models.TariffConfig{}).Count(&count)
		assert.Zero(t, count)
	})

	t.Run("During Write The Batch Commits", func(t *testing.T) {
		dst, dest, run := setup(t)
		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()
		var writeErr error
		dest.beforeWrite = func(wctx context.Context) {
			cancel()
			writeErr = wctx.Err()
		}

		report := run(ctx)
		require.True(t, report.OK, report.Errors)
		assert.Equal(t, 1, dest.writes)
		assert.NoError(t, writeErr, "the write context outlives the run context")
		assert.Equal(t, 2, report.Jobs[0].Written.Inserted)

		var count int64
		dst.Model(&models.TariffConfig{}).Count(&count)
		assert.Equal(t, int64(2), count)
	})
}

func TestRunner_CanceledBeforeStart(t *testing.T) {
	src, dst := setupSourceDB(t), setupDestinationDB(t)
	seedSites(t, src)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	report := newTestRunner(src, dst).Run(ctx, Family{Name: "test", Jobs: []Job{combineJob(), userMeterJob()}}, Options{})
	assert.False(t, report.OK)

	errs := jobErrors(t, report)
	require.Len(t, errs, 2)
	for _, e := range errs {
		assert.Equal(t, reconcile.StageCanceled, e.Stage)
		assert.ErrorIs(t, e, context.Canceled)
	}

	var count int64
	dst.Model(&models.TariffConfig{}).Count(&count)
	assert.Zero(t, count)
}
