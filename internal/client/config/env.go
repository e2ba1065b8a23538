package config

import (
	"fmt"

	"github.com/caarlos0/env/v9"
)

// parseEnv overlays cfg with the SNOO_* variables that are set. A nil
// environ reads the process environment.
func parseEnv(cfg *Config, environ map[string]string) error {
	if err := env.ParseWithOptions(cfg, env.Options{Environment: environ}); err != nil {
		return fmt.Errorf("environment: %w", err)
	}
	return nil
}
