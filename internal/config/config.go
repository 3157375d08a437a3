// Package config defines service configuration structures and loading hooks.
//
// Conventions:
// - Provide New() to build a Config with defaults.
// - External errors must be wrapped via this package's error helpers.
package config

// Config contains process configuration. Extend as needed.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// Addr configures the HTTP listen address, e.g. ":9080".
	Addr string `koanf:"addr"`

	// MongoURI and MongoDatabase locate the document store. An empty
	// URI runs the service on the in-memory store (dev/test mode).
	MongoURI      string `koanf:"mongo_uri"`
	MongoDatabase string `koanf:"mongo_database"`

	// RedisAddr enables the throttle fast-path guard when set.
	RedisAddr     string `koanf:"redis_addr"`
	RedisPassword string `koanf:"redis_password"`

	// CrowdWindowMinutes is the sliding window for crowd estimates.
	CrowdWindowMinutes int `koanf:"crowd_window_minutes"`

	// ThrottleWindowMinutes is the minimum gap between feedback
	// submissions from one user for one restaurant.
	ThrottleWindowMinutes int `koanf:"throttle_window_minutes"`

	// RestaurantFetchConcurrency bounds the fan-out of restaurant
	// lookups during a stats aggregation.
	RestaurantFetchConcurrency int `koanf:"restaurant_fetch_concurrency"`
}

// New creates a Config with defaults.
func New() *Config {
	return &Config{
		LogLevel:                   "info",
		Addr:                       ":9080",
		MongoDatabase:              "palate",
		CrowdWindowMinutes:         60,
		ThrottleWindowMinutes:      15,
		RestaurantFetchConcurrency: 8,
	}
}
