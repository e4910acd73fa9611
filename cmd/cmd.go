// submodule cmd contains command definitions
package main

import "github.com/urfave/cli/v3"

// userFlag is shared by every command operating on a single user's queue.
func userFlag() *cli.StringFlag {
	return &cli.StringFlag{
		Name:     "user",
		Aliases:  []string{"u"},
		Usage:    "Username the cache belongs to",
		Required: true,
	}
}

// cacheCommand handles pending-queue operations
func cacheCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:    "cache",
		Aliases: []string{"queue"},
		Usage:   "Inspect and edit the pending scrobble queue",
		Commands: []*cli.Command{
			{
				Name:  "list",
				Usage: "List queued scrobbles",
				Flags: []cli.Flag{
					userFlag(),
					&cli.StringFlag{
						Name:    "format",
						Aliases: []string{"f"},
						Usage:   "Output format: text, csv, markdown or json",
						Value:   "text",
					},
				},
				Action: r.CacheList,
			},
			{
				Name:  "add",
				Usage: "Queue a play by hand",
				Flags: []cli.Flag{
					userFlag(),
					&cli.StringFlag{
						Name:     "artist",
						Usage:    "Artist name",
						Required: true,
					},
					&cli.StringFlag{
						Name:     "title",
						Usage:    "Track title",
						Required: true,
					},
					&cli.StringFlag{
						Name:  "album",
						Usage: "Album name",
					},
					&cli.IntFlag{
						Name:     "duration",
						Usage:    "Track length in seconds",
						Required: true,
					},
					&cli.IntFlag{
						Name:  "timestamp",
						Usage: "Play time as unix seconds (default: now)",
					},
					&cli.StringFlag{
						Name:  "mbid",
						Usage: "MusicBrainz recording ID",
					},
				},
				Action: r.CacheAdd,
			},
			{
				Name:  "remove",
				Usage: "Remove a queued scrobble by its list position",
				Flags: []cli.Flag{
					userFlag(),
					&cli.IntFlag{
						Name:     "index",
						Aliases:  []string{"i"},
						Usage:    "1-based position from 'cache list'",
						Required: true,
					},
				},
				Action: r.CacheRemove,
			},
			{
				Name:   "clear",
				Usage:  "Drop every queued scrobble",
				Flags:  []cli.Flag{userFlag()},
				Action: r.CacheClear,
			},
			{
				Name:   "path",
				Usage:  "Print the location of the cache file",
				Flags:  []cli.Flag{userFlag()},
				Action: r.CachePath,
			},
		},
	}
}

// submitCommand handles flushing the queue to the remote service
func submitCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "submit",
		Usage: "Submit queued scrobbles to the remote service",
		Flags: []cli.Flag{
			userFlag(),
			&cli.BoolFlag{
				Name:  "dry-run",
				Usage: "Show what would be submitted without submitting",
			},
			&cli.BoolFlag{
				Name:  "no-journal",
				Usage: "Skip recording submissions in the local history database",
			},
		},
		Action: r.SubmitRun,
	}
}

// historyCommand handles the local submission journal
func historyCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "history",
		Usage: "Inspect the submission journal",
		Commands: []*cli.Command{
			{
				Name:  "list",
				Usage: "List journaled submissions, newest first",
				Flags: []cli.Flag{
					userFlag(),
					&cli.IntFlag{
						Name:    "limit",
						Aliases: []string{"n"},
						Usage:   "Maximum entries to show (0 = all)",
						Value:   20,
					},
				},
				Action: r.HistoryList,
			},
			{
				Name:  "prune",
				Usage: "Drop journal entries older than a number of days",
				Flags: []cli.Flag{
					userFlag(),
					&cli.IntFlag{
						Name:  "keep-days",
						Usage: "Entries newer than this many days are kept",
						Value: 90,
					},
				},
				Action: r.HistoryPrune,
			},
		},
	}
}

// setupCommand handles setup operations for the database and configuration.
func setupCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "setup",
		Usage: "Setup and configuration commands",
		Commands: []*cli.Command{
			{
				Name:   "database",
				Usage:  "Initialize the history database and run migrations",
				Action: r.SetupDatabase,
			},
			{
				Name:  "config",
				Usage: "Write an example config.toml",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "output",
						Aliases: []string{"o"},
						Usage:   "Path for the config file",
						Value:   "config.toml",
					},
				},
				Action: r.SetupConfig,
			},
		},
	}
}

// tuiCommand returns the top-level TUI command for interactive queue management.
func tuiCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:    "tui",
		Aliases: []string{"interactive", "ui"},
		Usage:   "Browse and submit the queue interactively",
		Flags:   []cli.Flag{userFlag()},
		Action:  r.TUI,
	}
}
