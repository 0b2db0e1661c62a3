// Package config provides configuration management for the catalog service.
//
// It utilizes Viper for loading configuration from environment variables and
// an optional .env file. Defaults come from the `default` struct tags.
//
// # Configuration Structure
//
// The Config struct is the central repository for all application settings, divided into subsections:
//   - Server: HTTP server settings (port, API key, CORS origins, environment)
//   - Store: item store backend (file, object, sql) and its location
//   - Stats: cache TTL, change poll interval, forced refresh timeout, warm-up
//   - Database: MySQL or SQLite connection details for the sql backend
//   - Storage: S3/MinIO credentials and bucket for the object backend
//   - Log: Logging level and format
//
// Environment keys are the upper-cased section and field joined by an
// underscore, e.g. STATS_TTL_SECONDS or STORE_DRIVER.
//
// # Usage
//
//	cfg, err := config.LoadConfig(".")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(cfg.Stats.TTL())
package config
