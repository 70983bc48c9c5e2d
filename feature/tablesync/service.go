package tablesync

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
	"gorm.io/gorm"

	"table-sync/core/database"
	"table-sync/core/reconcile"
)

var (
	// ErrUnknownFamily indicates a run or check named a family that is not configured.
	ErrUnknownFamily = errors.New("unknown job family")

	// ErrArchiveDisabled indicates a report operation while the archive is off.
	ErrArchiveDisabled = errors.New("report archive disabled")

	// ErrRunnerDisabled indicates a run on a service built without a source connection.
	ErrRunnerDisabled = errors.New("sync runner not configured")
)

// CheckResult reports whether one job's destination table carries every mapped column.
type CheckResult struct {
	Job     string   `json:"job"`
	Entity  string   `json:"entity"`
	Table   string   `json:"table,omitempty"`
	Missing []string `json:"missing,omitempty"`
	Error   string   `json:"error,omitempty"`
	OK      bool     `json:"ok"`
}

// Service runs job families and exposes their reports.
type Service struct {
	runner   *Runner
	catalog  Catalog
	registry *reconcile.Registry
	archive  *Archive
	dest     *gorm.DB
	logger   *zap.Logger
	timeout  time.Duration
	sf       singleflight.Group
}

// NewService creates a new sync service. archive may be nil; a zero timeout does not bound runs.
func NewService(runner *Runner, catalog Catalog, registry *reconcile.Registry, archive *Archive, dest *gorm.DB, logger *zap.Logger, timeout time.Duration) *Service {
	return &Service{
		runner:   runner,
		catalog:  catalog,
		registry: registry,
		archive:  archive,
		dest:     dest,
		logger:   logger,
		timeout:  timeout,
	}
}

// Families returns the configured families, sorted by name.
func (s *Service) Families() []Family {
	out := make([]Family, 0, len(s.catalog))
	for _, name := range s.catalog.Names() {
		out = append(out, s.catalog[name])
	}
	return out
}

// Run executes family. Concurrent calls for the same family and mode share one run.
func (s *Service) Run(ctx context.Context, family string, opts Options) (*RunReport, error) {
	fam, ok := s.catalog.Get(family)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownFamily, family)
	}
	if s.runner == nil {
		return nil, ErrRunnerDisabled
	}

	key := fmt.Sprintf("%s:%t", family, opts.DryRun)
	v, _, shared := s.sf.Do(key, func() (any, error) {
		runCtx, cancel := ctx, context.CancelFunc(func() {})
		if s.timeout > 0 {
			runCtx, cancel = context.WithTimeout(ctx, s.timeout)
		}
		defer cancel()

		report := s.runner.Run(runCtx, fam, opts)
		s.save(ctx, report)
		return report, nil
	})
	if shared {
		s.logger.Debug("Joined in-flight run", zap.String("family", family))
	}
	return v.(*RunReport), nil
}

func (s *Service) save(ctx context.Context, report *RunReport) {
	if s.archive == nil {
		return
	}
	name, err := s.archive.Save(context.WithoutCancel(ctx), report)
	if err != nil {
		s.logger.Warn("Failed to archive run report", zap.String("run_id", report.ID), zap.Error(err))
		return
	}
	report.Archive = name
}

// Check verifies that every job of family resolves and that its destination table has the mapped columns.
func (s *Service) Check(ctx context.Context, family string) ([]CheckResult, error) {
	fam, ok := s.catalog.Get(family)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownFamily, family)
	}

	db := s.dest.WithContext(ctx)
	out := make([]CheckResult, 0, len(fam.Jobs))
	for _, job := range fam.Jobs {
		res := CheckResult{Job: job.Name, Entity: job.Entity}
		plan, err := job.Resolve(s.registry)
		if err != nil {
			res.Error = err.Error()
			out = append(out, res)
			continue
		}
		res.Table = plan.Adapter.Table()

		missing, err := database.MissingColumns(db, res.Table, plan.Mapping.Destinations())
		if err != nil {
			res.Error = err.Error()
			out = append(out, res)
			continue
		}
		sort.Strings(missing)
		res.Missing = missing
		res.OK = len(missing) == 0
		out = append(out, res)
	}
	return out, nil
}

// Reports lists archived reports of family, newest first.
func (s *Service) Reports(ctx context.Context, family string) ([]ReportInfo, error) {
	if s.archive == nil {
		return nil, ErrArchiveDisabled
	}
	return s.archive.List(ctx, family)
}

// Report fetches one archived report.
func (s *Service) Report(ctx context.Context, name string) (*RunReport, error) {
	if s.archive == nil {
		return nil, ErrArchiveDisabled
	}
	return s.archive.Get(ctx, name)
}

// DeleteReport removes one archived report.
func (s *Service) DeleteReport(ctx context.Context, name string) error {
	if s.archive == nil {
		return ErrArchiveDisabled
	}
	return s.archive.Delete(ctx, name)
}
