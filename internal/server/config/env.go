package config

import (
	"os"
	"time"
)

// parseEnv overlays values from environment variables:
//
//	ADDRESS                 HTTP bind address
//	DATABASE_DSN            PostgreSQL DSN
//	SECRET_KEY              JWT HMAC secret
//	ACCESS_TOKEN_VALIDITY   access token lifetime (time.ParseDuration)
//	REFRESH_TOKEN_VALIDITY  refresh token lifetime (time.ParseDuration)
//
// Malformed durations are ignored and the previous value is kept.
func parseEnv(config *Config) {
	if v, ok := os.LookupEnv("ADDRESS"); ok {
		config.EndpointAddr = v
	}
	if v, ok := os.LookupEnv("DATABASE_DSN"); ok {
		config.DatabaseDSN = v
	}
	if v, ok := os.LookupEnv("SECRET_KEY"); ok {
		config.SecretKey = v
	}
	if v, ok := os.LookupEnv("ACCESS_TOKEN_VALIDITY"); ok {
		if d, err := time.ParseDuration(v); err == nil {
			config.AccessTokenValidityDuration = d
		}
	}
	if v, ok := os.LookupEnv("REFRESH_TOKEN_VALIDITY"); ok {
		if d, err := time.ParseDuration(v); err == nil {
			config.RefreshTokenValidityDuration = d
		}
	}
}
