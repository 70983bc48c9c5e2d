package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"table-sync/core/config"
	"table-sync/core/logger"
	"table-sync/feature/tablesync"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	// Flags for the sync command
	syncDryRun   bool
	syncJobsFile string
	syncWorkers  int
)

// syncCmd runs one job family once and prints its report.
var syncCmd = &cobra.Command{
	Use:   "sync <family>",
	Short: "Run a job family once",
	Long: `Runs every job of a family and prints the run report as JSON.
The command fails when any job reported an error.

Examples:
  # Upsert tariff_config from the two site tables
  sync combine

  # Show what the tower job would insert or update
  sync selective-column --dry-run

  # Run a family declared in a jobs file
  sync towers --jobs jobs.yaml`,
	Args: cobra.ExactArgs(1),
	RunE: runSync,
}

func init() {
	syncCmd.Flags().BoolVar(&syncDryRun, "dry-run", false, "Compute changes without writing")
	syncCmd.Flags().StringVar(&syncJobsFile, "jobs", "", "Jobs file (overrides SYNC_JOBS_FILE)")
	syncCmd.Flags().IntVar(&syncWorkers, "workers", 0, "Concurrent jobs (overrides SYNC_WORKERS)")

	RootCmd.AddCommand(syncCmd)
}

func runSync(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.LoadConfig(".")
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if syncJobsFile != "" {
		cfg.Sync.JobsFile = syncJobsFile
	}
	if syncWorkers > 0 {
		cfg.Sync.Workers = syncWorkers
	}

	l, err := logger.New(&cfg.Log)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	defer l.Sync()

	a, err := newApp(ctx, cfg, l, true)
	if err != nil {
		return err
	}
	defer a.close()

	report, err := a.service.Run(ctx, args[0], tablesync.Options{DryRun: syncDryRun})
	if err != nil {
		return err
	}

	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	if err := enc.Encode(report); err != nil {
		return fmt.Errorf("failed to print report: %w", err)
	}

	if !report.OK {
		l.Warn("Sync run reported errors", zap.Int("errors", len(report.Errors)))
		return report.Err()
	}
	return nil
}
