// Package config handles configuration for the userstore binary, including
// defaults, JSON overlay, and command-line flags.
package config

import "time"

// Config holds runtime settings.
//
// Fields:
//   - UsersFile: path of the JSON record store holding users.
//   - SessionFile: path of the session token file.
//   - SecretKey: HMAC secret for signing session tokens (HS256). Do not use
//     the test default in prod.
//   - SessionValidity: lifetime of issued session tokens; 0 means no expiry.
type Config struct {
	UsersFile       string
	SessionFile     string
	SecretKey       string
	SessionValidity time.Duration
}

// LoadDefaults populates Config with sensible development defaults.
// NOTE: These values are insecure for production and should be overridden.
func (c *Config) LoadDefaults() {
	c.UsersFile = "users.json"
	c.SessionFile = "session.dat"
	c.SecretKey = "secretKey"
	c.SessionValidity = 720 * time.Hour
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
