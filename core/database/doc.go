// Package database handles database connections and schema inspection.
//
// It provides a wrapper around GORM to configure MySQL or SQLite connections
// based on the application's configuration. The sql item store backend
// (feature/items/store) is the main consumer.
//
// # Connect
//
// Connect opens the dialect selected by Config.Driver, applies pool settings
// and verifies the connection with a bounded ping.
//
// # Schema Inspection
//
// GetTableColumns and MissingColumns let the sql store verify that an existing
// items table carries the expected columns when auto-migration is disabled.
//
// # Usage
//
//	db, err := database.Connect(cfg.Database)
//	if err != nil {
//	    log.Fatal("Database connection failed", err)
//	}
//
//	missing, err := database.MissingColumns(db, "items", []string{"id", "name"})
package database
