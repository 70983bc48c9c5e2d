// Package database handles database connections and schema inspection.
//
// It provides a wrapper around GORM (Go Object Relational Mapping) that opens
// MySQL, PostgreSQL or SQLite connections from the application's configuration.
//
// # Connect
//
// Connect picks the dialector from Config.Driver, applies pool limits and pings the
// server before returning. The legacy source is MySQL; the destination is usually
// PostgreSQL. SQLite is used by tests, where the pool is pinned to one connection so an
// in-memory database survives across queries.
//
// # Schema Inspection
//
// The package includes tools to inspect the destination schema before a run. They
// retrieve table columns and report which mapped columns a table is missing.
//
// # Usage
//
//	db, err := database.Connect(cfg.Destination)
//	if err != nil {
//	    log.Fatal("Database connection failed", err)
//	}
//
//	missing, err := database.MissingColumns(db, "tariff_config", []string{"meter_ip", "site_id"})
package database
