package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func Test_parseEnv_OverridesOnlySetVariables(t *testing.T) {
	t.Setenv("FURARI_DATABASE_DSN", "postgres://env/db")
	t.Setenv("FURARI_ACCESS_TOKEN_VALIDITY_DURATION", "5m")
	t.Setenv("FURARI_MAP_API_KEY", "env-key")

	cfg := &Config{}
	cfg.LoadDefaults()
	parseEnv(cfg)

	assert.Equal(t, "postgres://env/db", cfg.DatabaseDSN)
	assert.Equal(t, 5*time.Minute, cfg.AccessTokenValidityDuration)
	assert.Equal(t, "env-key", cfg.MapAPIKey)

	// untouched fields keep their defaults
	assert.Equal(t, ":8080", cfg.EndpointAddrHTTP)
	assert.Equal(t, "secretKey", cfg.SecretKey)
	assert.Equal(t, 720*time.Minute, cfg.RefreshTokenValidityDuration)
}
