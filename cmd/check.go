package cmd

import (
	"context"
	"fmt"
	"strings"
	"text/tabwriter"

	"table-sync/core/config"
	"table-sync/core/logger"
	"table-sync/feature/tablesync"
	"table-sync/feature/tablesync/models"

	"github.com/spf13/cobra"
)

var checkJobsFile string

// checkCmd verifies the destination schema for a job family.
var checkCmd = &cobra.Command{
	Use:   "check <family>",
	Short: "Check that destination tables carry every mapped column",
	Args:  cobra.ExactArgs(1),
	RunE:  runCheck,
}

// familiesCmd prints the configured job families in the jobs file layout.
var familiesCmd = &cobra.Command{
	Use:   "families",
	Short: "Print the configured job families as YAML",
	Long: `Prints the configured job families in the jobs file layout.
Without a jobs file the built-in families are printed, a starting point for a custom file.`,
	Args: cobra.NoArgs,
	RunE: runFamilies,
}

func init() {
	checkCmd.Flags().StringVar(&checkJobsFile, "jobs", "", "Jobs file (overrides SYNC_JOBS_FILE)")
	familiesCmd.Flags().StringVar(&checkJobsFile, "jobs", "", "Jobs file (overrides SYNC_JOBS_FILE)")

	RootCmd.AddCommand(checkCmd)
	RootCmd.AddCommand(familiesCmd)
}

func runCheck(cmd *cobra.Command, args []string) error {
	cfg, err := config.LoadConfig(".")
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if checkJobsFile != "" {
		cfg.Sync.JobsFile = checkJobsFile
	}

	l, err := logger.New(&cfg.Log)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	defer l.Sync()

	ctx := context.Background()
	a, err := newApp(ctx, cfg, l, false)
	if err != nil {
		return err
	}
	defer a.close()

	results, err := a.service.Check(ctx, args[0])
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "JOB\tTABLE\tSTATUS")
	failed := 0
	for _, r := range results {
		status := "ok"
		switch {
		case r.Error != "":
			status = "error: " + r.Error
		case !r.OK:
			status = "missing: " + strings.Join(r.Missing, ", ")
		}
		if !r.OK {
			failed++
		}
		fmt.Fprintf(w, "%s\t%s\t%s\n", r.Job, r.Table, status)
	}
	if err := w.Flush(); err != nil {
		return err
	}

	if failed > 0 {
		return fmt.Errorf("%d of %d jobs failed the schema check", failed, len(results))
	}
	return nil
}

func runFamilies(cmd *cobra.Command, args []string) error {
	cfg, err := config.LoadConfig(".")
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if checkJobsFile != "" {
		cfg.Sync.JobsFile = checkJobsFile
	}

	catalog, err := tablesync.LoadCatalog(cfg.Sync.JobsFile, models.Registry())
	if err != nil {
		return err
	}
	families := make([]tablesync.Family, 0, len(catalog))
	for _, name := range catalog.Names() {
		families = append(families, catalog[name])
	}

	data, err := tablesync.MarshalFamilies(families)
	if err != nil {
		return err
	}
	_, err = cmd.OutOrStdout().Write(data)
	return err
}
