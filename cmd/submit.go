package main

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"

	"github.com/desertthunder/scrob/internal/history"
	"github.com/desertthunder/scrob/internal/scrobble"
	"github.com/desertthunder/scrob/internal/shared"
)

// SubmitRun flushes a user's queue to the remote service, journaling each
// accepted batch unless --no-journal is set.
func (r *Runner) SubmitRun(ctx context.Context, cmd *cli.Command) error {
	c, err := r.openCache(cmd.String("user"))
	if err != nil {
		return err
	}

	pending := c.Tracks()
	if len(pending) == 0 {
		return r.writePlain("nothing to submit\n")
	}

	if cmd.Bool("dry-run") {
		r.writePlain("would submit %d scrobbles for %s:\n", len(pending), c.Username())
		for i, track := range pending {
			r.writePlain("  %d. %s\n", i+1, track.String())
		}
		return nil
	}

	if r.submitter == nil {
		return fmt.Errorf("%w: submitter not initialized", shared.ErrServiceUnavailable)
	}

	var journal *history.Repository
	if !cmd.Bool("no-journal") {
		repo, db, err := r.openJournal()
		if err != nil {
			r.logger.Warn("journal unavailable, submitting without it", "error", err)
		} else {
			journal = repo
			defer db.Close()
		}
	}

	r.logger.Infof("submitting %d scrobbles for %s", len(pending), c.Username())

	result, err := scrobble.Flush(ctx, c, r.submitter, journal, scrobble.FlushOptions{
		BatchSize: r.config.Service.BatchSize,
	})
	if result != nil {
		r.writePlain("submitted %d, %d still queued\n", result.Submitted, result.Remaining)
	}
	if err != nil {
		return fmt.Errorf("submission stopped: %w", err)
	}

	return nil
}
