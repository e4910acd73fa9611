package main

import (
	"context"
	"fmt"
	"time"

	"github.com/urfave/cli/v3"

	"github.com/desertthunder/scrob/internal/formatter"
	"github.com/desertthunder/scrob/internal/models"
	"github.com/desertthunder/scrob/internal/shared"
)

// CacheList prints a user's queued scrobbles in the requested format.
func (r *Runner) CacheList(ctx context.Context, cmd *cli.Command) error {
	c, err := r.openCache(cmd.String("user"))
	if err != nil {
		return err
	}

	tracks := c.Tracks()

	switch cmd.String("format") {
	case "json":
		return r.writeJSON(tracks, true)
	case "csv":
		data, err := formatter.ExportToCSV(tracks)
		if err != nil {
			return err
		}
		return r.writePlain("%s", data)
	case "markdown", "md":
		data, err := formatter.ExportToMarkdown(c.Username(), tracks)
		if err != nil {
			return err
		}
		return r.writePlain("%s", data)
	case "text":
		data, err := formatter.ExportToText(c.Username(), tracks)
		if err != nil {
			return err
		}
		return r.writePlain("%s", data)
	default:
		return fmt.Errorf("%w: --format %s", shared.ErrInvalidFlag, cmd.String("format"))
	}
}

// CacheAdd queues a single play described by flags. Validation happens in the
// cache itself; a rejected track surfaces as a diagnostic, not an error.
func (r *Runner) CacheAdd(ctx context.Context, cmd *cli.Command) error {
	c, err := r.openCache(cmd.String("user"))
	if err != nil {
		return err
	}

	timestamp := time.Now()
	if unix := cmd.Int("timestamp"); unix != 0 {
		timestamp = time.Unix(int64(unix), 0)
	}

	track := models.Track{
		Artist:    cmd.String("artist"),
		Album:     cmd.String("album"),
		Title:     cmd.String("title"),
		Duration:  cmd.Int("duration"),
		Timestamp: timestamp,
		MBID:      cmd.String("mbid"),
	}

	before := len(c.Tracks())
	c.Add([]models.Track{track})
	after := len(c.Tracks())

	if after == before {
		return r.writePlain("rejected; queue still holds %d\n", after)
	}
	return r.writePlain("queued %s (%d pending)\n", track.String(), after)
}

// CacheRemove drops the queued scrobble at a 1-based list position.
func (r *Runner) CacheRemove(ctx context.Context, cmd *cli.Command) error {
	c, err := r.openCache(cmd.String("user"))
	if err != nil {
		return err
	}

	tracks := c.Tracks()
	index := cmd.Int("index")
	if index < 1 || index > len(tracks) {
		return fmt.Errorf("%w: --index %d (queue holds %d)", shared.ErrInvalidFlag, index, len(tracks))
	}

	remaining := c.Discard([]models.Track{tracks[index-1]})
	return r.writePlain("removed; %d pending\n", remaining)
}

// CacheClear empties the queue, deleting the cache file.
func (r *Runner) CacheClear(ctx context.Context, cmd *cli.Command) error {
	c, err := r.openCache(cmd.String("user"))
	if err != nil {
		return err
	}

	count := len(c.Tracks())
	c.Remove(c.Tracks())
	return r.writePlain("cleared %d queued scrobbles\n", count)
}

// CachePath prints where the user's cache file lives.
func (r *Runner) CachePath(ctx context.Context, cmd *cli.Command) error {
	c, err := r.openCache(cmd.String("user"))
	if err != nil {
		return err
	}
	return r.writePlain("%s\n", c.Path())
}
