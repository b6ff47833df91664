// Package config defines service configuration structures and loading hooks.
//
// Conventions:
// - Provide New(...) initializer to build a Config with defaults.
// - External errors must be wrapped via this package's error helpers.
package config

// Store kinds.
const (
	StoreMongo  = "mongo"
	StoreMemory = "memory"
)

// Config contains process configuration. Extend as needed.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// Addr configures the HTTP listen address, e.g. ":8080".
	Addr string `koanf:"addr"`

	// Store selects the record store backend: mongo or memory.
	Store string `koanf:"store"`

	// MongoURI is the connection string for the mongo store.
	MongoURI string `koanf:"mongo_uri"`

	// MongoDatabase and MongoCollection locate the records collection.
	MongoDatabase   string `koanf:"mongo_database"`
	MongoCollection string `koanf:"mongo_collection"`

	// MongoConnectTimeoutMS bounds the initial connect and ping.
	MongoConnectTimeoutMS int `koanf:"mongo_connect_timeout_ms"`
}

// New creates a Config with defaults.
func New() *Config {
	return &Config{
		LogLevel:              "info",
		Addr:                  ":8080",
		Store:                 StoreMongo,
		MongoURI:              "mongodb://localhost:27017",
		MongoDatabase:         "recordboard",
		MongoCollection:       "userrecords",
		MongoConnectTimeoutMS: 5000,
	}
}
