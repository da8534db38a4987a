package config

import (
	"encoding/json"
	"os"

	"github.com/dmitrijs2005/recordkeeper/internal/flagx"
	"github.com/dmitrijs2005/recordkeeper/internal/timex"
)

// jsonConfig is the DTO used only for reading JSON configuration files.
type jsonConfig struct {
	ServerBaseURL  *string         `json:"server_base_url"`
	RequestTimeout *timex.Duration `json:"request_timeout"`
}

// parseJson overlays values from the JSON file given via -c/-config, if
// any. Absent fields keep their current values.
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

	if c.ServerBaseURL != nil {
		config.ServerBaseURL = *c.ServerBaseURL
	}
	if c.RequestTimeout != nil {
		config.RequestTimeout = c.RequestTimeout.Duration
	}
}
