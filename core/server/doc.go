// Package server holds the HTTP server configuration and constants.
//
// While the main application entry point handles the server startup, this package
// defines the configuration structures and valid values for server settings,
// such as the listen port, the API key and the runtime environment.
//
// # Configuration
//
// The Config struct defines the HTTP port (4001 by default, the port the browser
// client talks to), the optional API key, the CORS allow-list and the environment.
//
// # Usage
//
// This package is primarily used by the core/config package to embed server settings
// and by cmd/start.go to configure the Fiber application.
package server
