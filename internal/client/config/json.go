package config

import (
	"encoding/json"
	"os"
	"time"

	"github.com/furari-app/furari/internal/flagx"
	"github.com/furari-app/furari/internal/timex"
)

// JsonConfig is the JSON-file DTO for the CLI configuration. Interval
// fields use timex.Duration so both "15s" and nanosecond integers parse.
type JsonConfig struct {
	ServerBaseURL  string         `json:"server_base_url"`
	LocatorURL     string         `json:"locator_url"`
	SessionFile    string         `json:"session_file"`
	RequestTimeout timex.Duration `json:"request_timeout"`
}

// parseJson loads configuration values from the JSON file named by the
// -c or -config command-line flags. If neither is set, nothing is loaded.
// Unreadable or invalid files panic.
func parseJson(config *Config) {
	jsonConfigFile := flagx.JsonConfigFlags()

	if jsonConfigFile == "" {
		return
	}

	c := &JsonConfig{}

	file, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}

	err = json.Unmarshal(file, c)
	if err != nil {
		panic(err)
	}

	config.ServerBaseURL = c.ServerBaseURL
	config.LocatorURL = c.LocatorURL
	config.SessionFile = c.SessionFile
	config.RequestTimeout = time.Duration(c.RequestTimeout.Duration)
}
