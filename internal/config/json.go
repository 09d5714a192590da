package config

import (
	"encoding/json"
	"os"
	"time"

	"github.com/ebogdanov/userstore/internal/flagx"
	"github.com/ebogdanov/userstore/internal/timex"
)

// JsonConfig is the intermediate DTO for JSON configuration files. Interval
// fields use timex.Duration, which parses both string values such as "30s"
// and integer nanoseconds; after unmarshalling the values are copied into
// the runtime Config.
type JsonConfig struct {
	UsersFile       string         `json:"users_file"`
	SessionFile     string         `json:"session_file"`
	SecretKey       string         `json:"secret_key"`
	SessionValidity timex.Duration `json:"session_validity"`
}

// parseJson loads configuration values from a JSON file into the provided
// Config instance.
//
// The JSON file path is taken from the -c or -config command-line flags; if
// neither is set, no JSON file is loaded. If the file cannot be read or
// contains invalid JSON, the function panics. The caller merges these
// values with defaults and command-line flags as part of the full
// configuration process.
func parseJson(config *Config) {
	jsonConfigFile := flagx.JsonConfigFlags()

	// nothing to load
	if jsonConfigFile == "" {
		return
	}

	c := &JsonConfig{}

	file, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}

	if err := json.Unmarshal(file, c); err != nil {
		panic(err)
	}

	config.UsersFile = c.UsersFile
	config.SessionFile = c.SessionFile
	config.SecretKey = c.SecretKey
	config.SessionValidity = time.Duration(c.SessionValidity.Duration)
}
