// Package config handles configuration for the terminal client.
package config

import "time"

// Config holds runtime settings for the RecordKeeper client.
//
// Fields:
//   - ServerBaseURL: base URL of the server HTTP API.
//   - RequestTimeout: per-request timeout for API calls.
type Config struct {
	ServerBaseURL  string
	RequestTimeout time.Duration
}

// LoadDefaults populates Config with development defaults.
func (c *Config) LoadDefaults() {
	c.ServerBaseURL = "http://localhost:8080"
	c.RequestTimeout = 10 * time.Second
}

// LoadConfig builds a Config by applying defaults, then overlaying values
// from an optional JSON file and finally from command-line flags.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	parseFlags(cfg)
	return cfg
}
