package config

import (
	"flag"
	"fmt"
	"io"
	"time"

	"github.com/dmitrijs2005/happiestbaby/internal/flagx"
)

var knownFlags = []string{"-u", "-e", "-r", "-l", "-t", "-m"}

// parseFlags overlays cfg with command-line flags:
//
//	-u string   account username (email)
//	-e string   API base endpoint
//	-r string   Cognito region
//	-l string   log level (debug, info, warn, error)
//	-t int      per-request timeout in seconds
//	-m int      attempts for transient failures
//
// The password is never taken from flags.
func parseFlags(cfg *Config, args []string) error {
	fs := flag.NewFlagSet("happiestbaby", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	fs.StringVar(&cfg.Username, "u", cfg.Username, "account username")
	fs.StringVar(&cfg.BaseEndpoint, "e", cfg.BaseEndpoint, "API base endpoint")
	fs.StringVar(&cfg.CognitoRegion, "r", cfg.CognitoRegion, "Cognito region")
	fs.StringVar(&cfg.LogLevel, "l", cfg.LogLevel, "log level")
	timeout := fs.Int("t", int(cfg.RequestTimeout.Seconds()), "request timeout (in seconds)")
	fs.IntVar(&cfg.MaxAttempts, "m", cfg.MaxAttempts, "attempts for transient failures")

	if err := fs.Parse(flagx.FilterArgs(args, knownFlags)); err != nil {
		return fmt.Errorf("flags: %w", err)
	}

	cfg.RequestTimeout = time.Duration(*timeout) * time.Second
	return nil
}
