package cmd

import (
	"context"
	"fmt"
	"time"

	"table-sync/core/config"
	"table-sync/core/database"
	"table-sync/core/storage"
	"table-sync/feature/tablesync"
	"table-sync/feature/tablesync/models"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// syncApp holds the connections and services shared by the commands.
type syncApp struct {
	source  *gorm.DB
	dest    *gorm.DB
	catalog tablesync.Catalog
	service *tablesync.Service
}

// newApp wires the sync service from cfg. The source connection is skipped when
// withSource is false (schema checks only need the destination).
func newApp(ctx context.Context, cfg *config.Config, l *zap.Logger, withSource bool) (*syncApp, error) {
	registry := models.Registry()

	catalog, err := tablesync.LoadCatalog(cfg.Sync.JobsFile, registry)
	if err != nil {
		return nil, err
	}

	a := &syncApp{catalog: catalog}

	a.dest, err = database.Connect(cfg.Destination)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to destination database: %w", err)
	}
	l.Info("Connected to destination database", zap.String("driver", cfg.Destination.Driver), zap.String("name", cfg.Destination.Name))

	var runner *tablesync.Runner
	if withSource {
		a.source, err = database.Connect(cfg.Source)
		if err != nil {
			a.close()
			return nil, fmt.Errorf("failed to connect to source database: %w", err)
		}
		l.Info("Connected to source database", zap.String("driver", cfg.Source.Driver), zap.String("host", cfg.Source.Host))

		runner = tablesync.NewRunner(
			tablesync.NewGormSource(a.source),
			tablesync.NewGormDestination(a.dest, cfg.Sync.LookupBatchSize, cfg.Sync.InsertBatchSize),
			registry,
			l,
			cfg.Sync.Workers,
		)
	}

	var archive *tablesync.Archive
	if cfg.Storage.Enabled {
		client, err := storage.NewClient(cfg.Storage)
		if err != nil {
			a.close()
			return nil, err
		}
		if err := storage.EnsureBucket(ctx, client, cfg.Storage.Bucket, cfg.Storage.Region); err != nil {
			// Reports are a side channel; runs go ahead without them
			l.Warn("Report archive unavailable", zap.Error(err))
		} else {
			archive = tablesync.NewArchive(client, cfg.Storage.Bucket, cfg.Sync.ReportPrefix)
		}
	}

	timeout := time.Duration(cfg.Sync.TimeoutSeconds) * time.Second
	a.service = tablesync.NewService(runner, catalog, registry, archive, a.dest, l, timeout)
	return a, nil
}

func (a *syncApp) close() {
	_ = database.Close(a.source)
	_ = database.Close(a.dest)
}
