// Package config provides configuration management for the table sync service.
//
// It utilizes Viper for loading configuration from environment variables and an optional
// .env file. Defaults come from the `default` struct tags of each section.
//
// # Configuration Structure
//
//   - Server: HTTP trigger settings (port, API key, timeouts)
//   - Source: legacy MySQL connection the rows are read from
//   - Destination: Postgres connection the rows are upserted into
//   - Storage: S3/MinIO settings for the run report archive
//   - Sync: job file, worker count, batch sizes and run timeout
//   - Log: Logging level and format
//
// Environment keys are the upper-cased dotted path, e.g. SOURCE_HOST or SYNC_WORKERS.
//
// # Usage
//
//	cfg, err := config.LoadConfig(".")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(cfg.Destination.Driver)
package config
