package config

import (
	"encoding/json"
	"os"

	"github.com/dmitrijs2005/recordkeeper/internal/flagx"
	"github.com/dmitrijs2005/recordkeeper/internal/timex"
)

// jsonConfig is the DTO used only for reading JSON configuration files.
// Durations accept both strings like "15m" and integer nanoseconds.
type jsonConfig struct {
	EndpointAddr                 *string         `json:"endpoint_addr"`
	DatabaseDSN                  *string         `json:"database_dsn"`
	SecretKey                    *string         `json:"secret_key"`
	AccessTokenValidityDuration  *timex.Duration `json:"access_token_validity_duration"`
	RefreshTokenValidityDuration *timex.Duration `json:"refresh_token_validity_duration"`
}

// parseJson overlays values from the JSON file given via -c/-config, if
// any. Absent fields keep their current values. A file that cannot be read
// or parsed is a startup error and panics.
func parseJson(config *Config) {
	jsonConfigFile := flagx.JsonConfigFlags()
	if jsonConfigFile == "" {
		return
	}

	file, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}

	c := &jsonConfig{}
	if err := json.Unmarshal(file, c); err != nil {
		panic(err)
	}

	if c.EndpointAddr != nil {
		config.EndpointAddr = *c.EndpointAddr
	}
	if c.DatabaseDSN != nil {
		config.DatabaseDSN = *c.DatabaseDSN
	}
	if c.SecretKey != nil {
		config.SecretKey = *c.SecretKey
	}
	if c.AccessTokenValidityDuration != nil {
		config.AccessTokenValidityDuration = c.AccessTokenValidityDuration.Duration
	}
	if c.RefreshTokenValidityDuration != nil {
		config.RefreshTokenValidityDuration = c.RefreshTokenValidityDuration.Duration
	}
}
