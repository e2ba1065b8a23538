package config

import (
	"time"

	"github.com/dmitrijs2005/happiestbaby/internal/common"
)

// Config holds the settings of a Happiest Baby client session.
//
// Durations are time.Duration values; in JSON they may be strings such as
// "30s" or integer nanoseconds, in the environment strings only.
type Config struct {
	BaseEndpoint string `env:"SNOO_BASE_ENDPOINT"`

	CognitoRegion      string `env:"SNOO_COGNITO_REGION"`
	CognitoClientID    string `env:"SNOO_COGNITO_CLIENT_ID"`
	CognitoEndpoint    string `env:"SNOO_COGNITO_ENDPOINT"`
	AWSAccessKeyID     string `env:"SNOO_AWS_ACCESS_KEY_ID"`
	AWSSecretAccessKey string `env:"SNOO_AWS_SECRET_ACCESS_KEY"`

	RequestTimeout       time.Duration `env:"SNOO_REQUEST_TIMEOUT"`
	MaxAttempts          int           `env:"SNOO_MAX_ATTEMPTS"`
	RefreshSkew          time.Duration `env:"SNOO_REFRESH_SKEW"`
	DeviceUpdateInterval time.Duration `env:"SNOO_DEVICE_UPDATE_INTERVAL"`

	Username string `env:"SNOO_USERNAME"`
	Password string `env:"SNOO_PASSWORD"`

	LogLevel string `env:"SNOO_LOG_LEVEL"`
}

// LoadDefaults populates c with the production endpoints and client
// defaults.
func (c *Config) LoadDefaults() {
	c.BaseEndpoint = common.BaseEndpoint
	c.CognitoRegion = common.CognitoRegion
	c.CognitoClientID = common.CognitoClientID
	c.RequestTimeout = 30 * time.Second
	c.MaxAttempts = 3
	c.RefreshSkew = 60 * time.Second
	c.DeviceUpdateInterval = 120 * time.Second
	c.LogLevel = "info"
}

// LoadConfig builds a Config from defaults, then the JSON file named by -c
// or -config, then SNOO_* environment variables, then flags. Later sources
// take precedence.
func LoadConfig(args []string) (*Config, error) {
	cfg := &Config{}
	cfg.LoadDefaults()
	if err := parseJSON(cfg, args); err != nil {
		return nil, err
	}
	if err := parseEnv(cfg, nil); err != nil {
		return nil, err
	}
	if err := parseFlags(cfg, args); err != nil {
		return nil, err
	}
	return cfg, nil
}
