package server

import "strings"

// Config holds configuration for the HTTP server.
type Config struct {
	// Port is the port where the server will listen.
	Port string `mapstructure:"port" default:"4001"`
	// ApiKey is the secret key required to access the API. Empty disables auth.
	ApiKey string `mapstructure:"api_key" default:""`
	// AllowOrigins is the CORS allow-list used by the browser client.
	AllowOrigins string `mapstructure:"allow_origins" default:"http://localhost:3000"`
	// Environment selects runtime behaviour (development, production).
	Environment string `mapstructure:"environment" default:"development"`
}

const (
	EnvDevelopment = "development"
	EnvProduction  = "production"
)

// IsValidEnvironment checks if the configured environment is known.
func (c Config) IsValidEnvironment() bool {
	switch strings.ToLower(c.Environment) {
	case EnvDevelopment, EnvProduction:
		return true
	default:
		return false
	}
}

// IsProduction reports whether the server runs in production mode.
func (c Config) IsProduction() bool {
	return strings.ToLower(c.Environment) == EnvProduction
}
