// Package config loads the settings of the Happiest Baby client.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional JSON file selected with -c or -config.
//  3. SNOO_* environment variables (see the env tags on Config).
//  4. Command-line flags, which override everything else.
//
// Supported flags
//
//	-u string   account username
//	-e string   API base endpoint
//	-r string   Cognito region
//	-l string   log level
//	-t int      per-request timeout (seconds)
//	-m int      attempts for transient failures
//
// # JSON schema
//
// Intervals use timex.Duration, so they can be strings like "30s" or integer
// nanoseconds:
//
//	{
//	  "base_endpoint": "https://api-us-east-1-prod.happiestbaby.com",
//	  "request_timeout": "30s",
//	  "refresh_skew": "1m",
//	  "device_update_interval": "2m",
//	  "max_attempts": 3,
//	  "username": "parent@example.com",
//	  "log_level": "debug"
//	}
package config
