package config

import (
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// envConfig is an intermediate DTO for environment overlay. All fields are
// optional; only variables that are actually set override the Config.
type envConfig struct {
	EndpointAddrHTTP             string         `envconfig:"ENDPOINT_ADDR_HTTP"`
	DatabaseDSN                  string         `envconfig:"DATABASE_DSN"`
	SecretKey                    string         `envconfig:"SECRET_KEY"`
	AccessTokenValidityDuration  *time.Duration `envconfig:"ACCESS_TOKEN_VALIDITY_DURATION"`
	RefreshTokenValidityDuration *time.Duration `envconfig:"REFRESH_TOKEN_VALIDITY_DURATION"`
	S3RootUser                   string         `envconfig:"S3_ROOT_USER"`
	S3RootPassword               string         `envconfig:"S3_ROOT_PASSWORD"`
	S3Bucket                     string         `envconfig:"S3_BUCKET"`
	S3Region                     string         `envconfig:"S3_REGION"`
	S3BaseEndpoint               string         `envconfig:"S3_BASE_ENDPOINT"`
	S3PublicBaseURL              string         `envconfig:"S3_PUBLIC_BASE_URL"`
	AMQPUrl                      string         `envconfig:"AMQP_URL"`
	AMQPExchange                 string         `envconfig:"AMQP_EXCHANGE"`
	GeocoderBaseURL              string         `envconfig:"GEOCODER_BASE_URL"`
	MapAPIKey                    string         `envconfig:"MAP_API_KEY"`
	MapID                        string         `envconfig:"MAP_ID"`
}

// parseEnv overlays Config with values from the process environment,
// optionally seeded from a .env file in the working directory. Variables
// are read under the FURARI prefix (e.g. FURARI_DATABASE_DSN).
func parseEnv(config *Config) {
	// A missing .env file is the normal case.
	_ = godotenv.Load()

	e := &envConfig{}
	if err := envconfig.Process("FURARI", e); err != nil {
		panic(err)
	}

	if e.EndpointAddrHTTP != "" {
		config.EndpointAddrHTTP = e.EndpointAddrHTTP
	}
	if e.DatabaseDSN != "" {
		config.DatabaseDSN = e.DatabaseDSN
	}
	if e.SecretKey != "" {
		config.SecretKey = e.SecretKey
	}
	if e.AccessTokenValidityDuration != nil {
		config.AccessTokenValidityDuration = *e.AccessTokenValidityDuration
	}
	if e.RefreshTokenValidityDuration != nil {
		config.RefreshTokenValidityDuration = *e.RefreshTokenValidityDuration
	}
	if e.S3RootUser != "" {
		config.S3RootUser = e.S3RootUser
	}
	if e.S3RootPassword != "" {
		config.S3RootPassword = e.S3RootPassword
	}
	if e.S3Bucket != "" {
		config.S3Bucket = e.S3Bucket
	}
	if e.S3Region != "" {
		config.S3Region = e.S3Region
	}
	if e.S3BaseEndpoint != "" {
		config.S3BaseEndpoint = e.S3BaseEndpoint
	}
	if e.S3PublicBaseURL != "" {
		config.S3PublicBaseURL = e.S3PublicBaseURL
	}
	if e.AMQPUrl != "" {
		config.AMQPUrl = e.AMQPUrl
	}
	if e.AMQPExchange != "" {
		config.AMQPExchange = e.AMQPExchange
	}
	if e.GeocoderBaseURL != "" {
		config.GeocoderBaseURL = e.GeocoderBaseURL
	}
	if e.MapAPIKey != "" {
		config.MapAPIKey = e.MapAPIKey
	}
	if e.MapID != "" {
		config.MapID = e.MapID
	}
}
