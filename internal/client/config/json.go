package config

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/dmitrijs2005/happiestbaby/internal/flagx"
	"github.com/dmitrijs2005/happiestbaby/internal/timex"
)

// JsonConfig is the file representation of Config. Empty fields leave the
// current value alone.
type JsonConfig struct {
	BaseEndpoint         string         `json:"base_endpoint"`
	CognitoRegion        string         `json:"cognito_region"`
	CognitoClientID      string         `json:"cognito_client_id"`
	CognitoEndpoint      string         `json:"cognito_endpoint"`
	AWSAccessKeyID       string         `json:"aws_access_key_id"`
	AWSSecretAccessKey   string         `json:"aws_secret_access_key"`
	RequestTimeout       timex.Duration `json:"request_timeout"`
	MaxAttempts          int            `json:"max_attempts"`
	RefreshSkew          timex.Duration `json:"refresh_skew"`
	DeviceUpdateInterval timex.Duration `json:"device_update_interval"`
	Username             string         `json:"username"`
	Password             string         `json:"password"`
	LogLevel             string         `json:"log_level"`
}

func parseJSON(cfg *Config, args []string) error {
	path := flagx.JSONConfigPath(args)
	if path == "" {
		return nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config: %w", err)
	}
	var jc JsonConfig
	if err := json.Unmarshal(data, &jc); err != nil {
		return fmt.Errorf("parse config %s: %w", path, err)
	}

	setString(&cfg.BaseEndpoint, jc.BaseEndpoint)
	setString(&cfg.CognitoRegion, jc.CognitoRegion)
	setString(&cfg.CognitoClientID, jc.CognitoClientID)
	setString(&cfg.CognitoEndpoint, jc.CognitoEndpoint)
	setString(&cfg.AWSAccessKeyID, jc.AWSAccessKeyID)
	setString(&cfg.AWSSecretAccessKey, jc.AWSSecretAccessKey)
	setString(&cfg.Username, jc.Username)
	setString(&cfg.Password, jc.Password)
	setString(&cfg.LogLevel, jc.LogLevel)
	setDuration(&cfg.RequestTimeout, jc.RequestTimeout)
	setDuration(&cfg.RefreshSkew, jc.RefreshSkew)
	setDuration(&cfg.DeviceUpdateInterval, jc.DeviceUpdateInterval)
	if jc.MaxAttempts > 0 {
		cfg.MaxAttempts = jc.MaxAttempts
	}
	return nil
}

func setString(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}

func setDuration(dst *time.Duration, v timex.Duration) {
	if v.Duration != 0 {
		*dst = v.Duration
	}
}
