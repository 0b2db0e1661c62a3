package stats

import "time"

// Config holds the tunables of the stats cache.
type Config struct {
	// TTLSeconds is how long a computed snapshot is served before recomputation.
	TTLSeconds int `mapstructure:"ttl_seconds" default:"300"`
	// PollIntervalSeconds is the period of the background change poll.
	PollIntervalSeconds int `mapstructure:"poll_interval_seconds" default:"30"`
	// RefreshTimeoutSeconds bounds a forced refresh; 0 disables the bound.
	RefreshTimeoutSeconds int `mapstructure:"refresh_timeout_seconds" default:"0"`
	// WarmUp computes the first snapshot in the background at startup.
	WarmUp bool `mapstructure:"warm_up" default:"true"`
}

// TTL returns the snapshot time-to-live, 300s when unset.
func (c Config) TTL() time.Duration {
	ttl := c.TTLSeconds
	if ttl <= 0 {
		ttl = 300
	}
	return time.Duration(ttl) * time.Second
}

// PollInterval returns the change poll period, 30s when unset.
func (c Config) PollInterval() time.Duration {
	interval := c.PollIntervalSeconds
	if interval <= 0 {
		interval = 30
	}
	return time.Duration(interval) * time.Second
}

// RefreshTimeout returns the forced refresh bound, 0 meaning none.
func (c Config) RefreshTimeout() time.Duration {
	if c.RefreshTimeoutSeconds <= 0 {
		return 0
	}
	return time.Duration(c.RefreshTimeoutSeconds) * time.Second
}
