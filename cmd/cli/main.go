package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"

	"github.com/dmitrijs2005/happiestbaby"
	"github.com/dmitrijs2005/happiestbaby/internal/client/cli"
	"github.com/dmitrijs2005/happiestbaby/internal/logging"
)

// Set with -ldflags "-X main.buildVersion=...".
var (
	buildVersion = "N/A"
	buildDate    = "N/A"
)

func main() {
	fmt.Printf("Build version: %s\nBuild date: %s\n", buildVersion, buildDate)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	cfg, err := happiestbaby.LoadConfig(os.Args[1:])
	if err != nil {
		log.Fatalf("%v", err)
	}

	logger := logging.NewTextLogger(os.Stderr, cfg.LogLevel)
	c, err := happiestbaby.New(ctx, cfg, happiestbaby.WithLogger(logger))
	if err != nil {
		log.Fatalf("%v", err)
	}

	app := cli.NewApp(c, os.Stdin, os.Stdout, cfg.DeviceUpdateInterval, logger)
	app.Run(ctx, cfg.Username)
}
