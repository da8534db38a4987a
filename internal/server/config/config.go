// Package config handles configuration for the server component,
// including defaults, JSON overlay, environment variables, and
// command-line flags (applied in that order).
package config

import "time"

// Config holds runtime settings for the RecordKeeper server.
//
// Fields:
//   - EndpointAddr: bind address for the HTTP API.
//   - DatabaseDSN: PostgreSQL DSN (pgx); empty selects the in-memory backend.
//   - SecretKey: HMAC secret for signing JWTs (HS256). Do not use test defaults in prod.
//   - AccessTokenValidityDuration / RefreshTokenValidityDuration: token lifetimes.
type Config struct {
	EndpointAddr                 string
	DatabaseDSN                  string
	SecretKey                    string
	AccessTokenValidityDuration  time.Duration
	RefreshTokenValidityDuration time.Duration
}

// LoadDefaults populates Config with development defaults.
// NOTE: these values are insecure for production and should be overridden.
func (c *Config) LoadDefaults() {
	c.EndpointAddr = ":8080"
	c.DatabaseDSN = ""
	c.SecretKey = "secretKey"
	c.AccessTokenValidityDuration = 15 * time.Minute
	c.RefreshTokenValidityDuration = 24 * time.Hour
}

// LoadConfig builds a Config by applying defaults, then overlaying values
// from an optional JSON file, environment variables, and finally
// command-line flags.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	parseEnv(cfg)
	parseFlags(cfg)
	return cfg
}
