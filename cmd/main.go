package main

import (
	"context"
	"os"

	"github.com/urfave/cli/v3"

	"github.com/desertthunder/scrob/internal/scrobble"
	"github.com/desertthunder/scrob/internal/shared"
)

func main() {
	logger := shared.NewLogger(nil)

	config := shared.DefaultConfig()
	if _, err := os.Stat("config.toml"); err == nil {
		if loadedConfig, err := shared.LoadConfig("config.toml"); err == nil {
			config = loadedConfig
		} else {
			logger.Warn("ignoring unreadable config.toml", "error", err)
		}
	}

	runner := NewRunner(RunnerOpts{
		Config:    config,
		Submitter: scrobble.NewClient(config.Service, nil),
		Logger:    logger,
	})

	if err := newApp(runner).Run(context.Background(), os.Args); err != nil {
		logger.Fatalf("application error: %v", err)
	}
}

// newApp builds the root command around a Runner.
func newApp(r *Runner) *cli.Command {
	return &cli.Command{
		Name:     "scrob",
		Usage:    "Queue, inspect and submit scrobbles",
		Version:  "0.3.0",
		Commands: r.register(),
	}
}
