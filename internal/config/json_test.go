package config

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJsonConfig_Unmarshal(t *testing.T) {
	payload := `{
		"users_file": "/var/lib/userstore/users.json",
		"session_file": "/var/lib/userstore/session.dat",
		"secret_key": "prod-secret",
		"session_validity": "48h"
	}`

	var c JsonConfig
	require.NoError(t, json.Unmarshal([]byte(payload), &c))

	assert.Equal(t, "/var/lib/userstore/users.json", c.UsersFile)
	assert.Equal(t, "/var/lib/userstore/session.dat", c.SessionFile)
	assert.Equal(t, "prod-secret", c.SecretKey)
	assert.Equal(t, 48*time.Hour, c.SessionValidity.Duration)
}

func TestJsonConfig_UnmarshalNanosecondValidity(t *testing.T) {
	var c JsonConfig
	require.NoError(t, json.Unmarshal([]byte(`{"session_validity": 3600000000000}`), &c))
	assert.Equal(t, time.Hour, c.SessionValidity.Duration)
}
