package tablesync

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/multierr"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"table-sync/core/logger"
	"table-sync/core/reconcile"
)

// DefaultWorkers is the number of jobs run concurrently when none is configured.
const DefaultWorkers = 4

// Options tune a single run.
type Options struct {
	// DryRun computes the write batches without applying them.
	DryRun bool
}

// PlannedChange is one insert or update computed by a run, listed in dry-run reports.
type PlannedChange struct {
	Action string         `json:"action"`
	Key    string         `json:"key"`
	Values map[string]any `json:"values"`
}

// JobResult reports the outcome of one job.
type JobResult struct {
	Job        string                 `json:"job"`
	Entity     string                 `json:"entity"`
	Fetched    int                    `json:"fetched"`
	MissingKey int                    `json:"missing_key"`
	Duplicates int                    `json:"duplicates"`
	Summary    reconcile.BatchSummary `json:"summary"`
	Written    reconcile.WriteResult  `json:"written"`
	Skipped    bool                   `json:"skipped,omitempty"`
	Warnings   []string               `json:"warnings,omitempty"`
	Changes    []PlannedChange        `json:"changes,omitempty"`
	Error      string                 `json:"error,omitempty"`
	Seconds    float64                `json:"seconds"`
}

// RunReport aggregates the results of one family run.
type RunReport struct {
	ID       string      `json:"id"`
	Family   string      `json:"family"`
	DryRun   bool        `json:"dry_run"`
	Started  time.Time   `json:"started"`
	Finished time.Time   `json:"finished"`
	Jobs     []JobResult `json:"jobs"`
	Errors   []string    `json:"errors"`
	OK       bool        `json:"ok"`
	// Archive is the object name the report was archived under, if any.
	Archive string `json:"archive,omitempty"`

	errs []error
}

// Err returns the aggregate error list combined into one error, or nil when the run succeeded.
func (r *RunReport) Err() error {
	return multierr.Combine(r.errs...)
}

// JobErrors returns the aggregate error list.
func (r *RunReport) JobErrors() []error {
	return r.errs
}

// Runner executes job families: fetch, dedupe, merge, map, reconcile and write, per job.
type Runner struct {
	source   Source
	dest     Destination
	registry *reconcile.Registry
	logger   *zap.Logger
	workers  int
}

// NewRunner creates a runner. A non-positive workers value uses DefaultWorkers.
func NewRunner(source Source, dest Destination, registry *reconcile.Registry, logger *zap.Logger, workers int) *Runner {
	if workers <= 0 {
		workers = DefaultWorkers
	}
	return &Runner{
		source:   source,
		dest:     dest,
		registry: registry,
		logger:   logger,
		workers:  workers,
	}
}

// Run executes every job of family on a bounded worker pool and always returns a report.
// A failing job never stops the others. Jobs not started when ctx is done are recorded as
// canceled; a write already in progress is allowed to commit or roll back.
func (r *Runner) Run(ctx context.Context, family Family, opts Options) *RunReport {
	report := &RunReport{
		ID:      uuid.NewString(),
		Family:  family.Name,
		DryRun:  opts.DryRun,
		Started: time.Now(),
	}

	results := make([]JobResult, len(family.Jobs))
	// Each worker owns its slot; slots are flattened in job order once all workers are done.
	jobErrs := make([][]error, len(family.Jobs))

	g := new(errgroup.Group)
	g.SetLimit(r.workers)
	for i, job := range family.Jobs {
		g.Go(func() error {
			start := time.Now()
			res, errs := r.runJob(ctx, report.ID, family.Name, job, opts)
			res.Seconds = time.Since(start).Seconds()
			results[i], jobErrs[i] = res, errs
			return nil
		})
	}
	_ = g.Wait()

	for _, errs := range jobErrs {
		report.errs = append(report.errs, errs...)
	}
	report.Errors = make([]string, len(report.errs))
	for i, err := range report.errs {
		report.Errors[i] = err.Error()
	}
	report.Jobs = results
	report.OK = len(report.errs) == 0
	report.Finished = time.Now()

	r.logger.Info("Sync run finished",
		zap.String("run_id", report.ID),
		zap.String("family", family.Name),
		zap.Bool("dry_run", opts.DryRun),
		zap.Bool("ok", report.OK),
		zap.Int("errors", len(report.errs)),
		zap.Duration("duration", report.Finished.Sub(report.Started)),
	)
	return report
}

// jobRun carries the state of one job through the pipeline.
type jobRun struct {
	job    Job
	log    *zap.Logger
	result JobResult
	errs   []error
}

func (j *jobRun) fail(stage reconcile.Stage, err error) {
	jobErr := &reconcile.JobError{Job: j.job.Name, Stage: stage, Err: err}
	j.errs = append(j.errs, jobErr)
	if j.result.Error == "" {
		j.result.Error = jobErr.Error()
	}
	j.log.Error("Sync job failed", zap.String("stage", string(stage)), zap.Error(err))
}

func (j *jobRun) warn(msg string, fields ...zap.Field) {
	j.result.Warnings = append(j.result.Warnings, msg)
	j.log.Warn(msg, fields...)
}

func (r *Runner) runJob(ctx context.Context, runID, family string, job Job, opts Options) (JobResult, []error) {
	run := &jobRun{
		job:    job,
		log:    logger.WithJob(r.logger, runID, family, job.Name),
		result: JobResult{Job: job.Name, Entity: job.Entity},
	}

	if err := ctx.Err(); err != nil {
		run.fail(reconcile.StageCanceled, err)
		return run.result, run.errs
	}

	plan, err := job.Resolve(r.registry)
	if err != nil {
		run.fail(reconcile.StageConfig, err)
		return run.result, run.errs
	}
	run.log.Info("Sync job started", zap.String("entity", plan.Adapter.Name()), zap.Int("sources", len(job.Sources)))

	records, ok := r.fetchAndMerge(ctx, run)
	if !ok {
		return run.result, run.errs
	}

	final := reconcile.Dedupe(records, job.Key...)
	run.result.MissingKey += final.MissingKey
	run.result.Duplicates += final.Duplicates
	if final.MissingKey > 0 {
		run.warn(fmt.Sprintf("dropped %d merged records without key %v", final.MissingKey, job.Key),
			zap.Int("dropped", final.MissingKey))
	}

	candidates, mapErrs := reconcile.Candidates(plan.Adapter, final.Records, plan.Mapping, plan.DestinationKey...)
	for _, re := range mapErrs {
		run.fail(reconcile.StageClassify, re)
	}
	if collapsed := len(final.Records) - len(candidates) - len(mapErrs); collapsed > 0 {
		run.result.Duplicates += collapsed
		run.warn(fmt.Sprintf("collapsed %d records whose keys match once converted to %s types", collapsed, plan.Adapter.Name()),
			zap.Int("collapsed", collapsed))
	}
	if len(candidates) == 0 {
		run.log.Info("Sync job has nothing to reconcile")
		return run.result, run.errs
	}

	entities, err := r.dest.Lookup(ctx, plan.Adapter, plan.DestinationKey, reconcile.KeyValues(candidates, plan.DestinationKey...))
	if err != nil {
		run.fail(reconcile.StageLookup, err)
		return run.result, run.errs
	}
	existing, err := reconcile.IndexExisting(plan.Adapter, entities, plan.DestinationKey...)
	if err != nil {
		run.fail(reconcile.StageLookup, err)
		return run.result, run.errs
	}

	batch := reconcile.Reconcile(plan.Adapter, candidates, existing)
	run.result.Summary = batch.Summary()
	for _, re := range batch.Errors {
		run.fail(reconcile.StageClassify, re)
	}

	if opts.DryRun {
		run.result.Changes = plannedChanges(batch, candidates)
		run.log.Info("Sync job planned",
			zap.Int("inserts", len(batch.Inserts)),
			zap.Int("updates", len(batch.Updates)),
			zap.Int("unchanged", batch.Unchanged),
		)
		return run.result, run.errs
	}

	if err := ctx.Err(); err != nil {
		run.fail(reconcile.StageCanceled, err)
		return run.result, run.errs
	}

	written, err := r.dest.Write(context.WithoutCancel(ctx), plan.Adapter, batch)
	if err != nil {
		run.fail(reconcile.StageWrite, err)
		return run.result, run.errs
	}
	run.result.Written = written
	run.log.Info("Sync job committed",
		zap.Int("inserted", written.Inserted),
		zap.Int("updated", written.Updated),
		zap.Int("unchanged", batch.Unchanged),
	)
	return run.result, run.errs
}

// fetchAndMerge reads every source, deduplicates each on its own key and left-joins the
// secondaries onto the primary. It reports false when the job must stop.
func (r *Runner) fetchAndMerge(ctx context.Context, run *jobRun) ([]reconcile.Record, bool) {
	primary := run.job.Sources[0]
	var (
		records []reconcile.Record
		joins   []reconcile.JoinInput
	)

	for i, src := range run.job.Sources {
		fetched, err := r.source.Fetch(ctx, src)
		if err != nil {
			run.fail(reconcile.StageFetch, err)
			return nil, false
		}
		run.result.Fetched += len(fetched)

		if len(fetched) == 0 {
			if i == 0 {
				run.result.Skipped = true
				run.warn(fmt.Sprintf("%s returned no rows, job skipped", src.Name()), zap.String("table", src.Name()))
				return nil, false
			}
			run.warn(fmt.Sprintf("%s returned no rows, join skipped", src.Name()), zap.String("table", src.Name()))
			continue
		}

		deduped := reconcile.Dedupe(fetched, src.Key)
		run.result.MissingKey += deduped.MissingKey
		run.result.Duplicates += deduped.Duplicates
		if deduped.MissingKey > 0 {
			run.warn(fmt.Sprintf("dropped %d %s rows without key %s", deduped.MissingKey, src.Name(), src.Key),
				zap.String("table", src.Name()), zap.Int("dropped", deduped.MissingKey))
		}

		if i == 0 {
			records = deduped.Records
			continue
		}
		joins = append(joins, reconcile.JoinInput{Name: src.Name(), Records: deduped.Records, Field: src.JoinField()})
	}

	if len(joins) == 0 {
		return records, true
	}

	merged, stats := reconcile.MergeAll(records, primary.JoinField(), joins...)
	for i, st := range stats {
		name := joins[i].Name
		if st.MissingPrimaryField {
			run.warn(fmt.Sprintf("%s has no join field %s, %s not joined", primary.Name(), primary.JoinField(), name))
		}
		if st.SkippedSecondary > 0 {
			run.warn(fmt.Sprintf("skipped %d %s rows without join field %s", st.SkippedSecondary, name, joins[i].Field),
				zap.Int("skipped", st.SkippedSecondary))
		}
		if len(st.Collisions) > 0 {
			run.warn(fmt.Sprintf("%s columns %v already on %s, primary values kept", name, st.Collisions, primary.Name()),
				zap.Strings("columns", st.Collisions))
		}
		run.log.Debug("Join applied", zap.String("table", name), zap.Int("matched", st.Matched))
	}
	return merged, true
}

func plannedChanges(batch *reconcile.WriteBatch, candidates []reconcile.Candidate) []PlannedChange {
	byKey := make(map[reconcile.Key]reconcile.Record, len(candidates))
	for _, c := range candidates {
		byKey[c.Key] = c.Fields
	}

	out := make([]PlannedChange, 0, len(batch.Inserts)+len(batch.Updates))
	for _, ins := range batch.Inserts {
		out = append(out, PlannedChange{Action: "insert", Key: ins.Key.String(), Values: byKey[ins.Key].Map()})
	}
	for _, u := range batch.Updates {
		fields := byKey[u.Key]
		values := make(map[string]any, len(u.Fields))
		for _, f := range u.Fields {
			v, _ := fields.Get(f)
			values[f] = v.Interface()
		}
		out = append(out, PlannedChange{Action: "update", Key: u.Key.String(), Values: values})
	}
	return out
}
