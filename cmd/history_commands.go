package main

import (
	"context"
	"fmt"
	"time"

	"github.com/urfave/cli/v3"

	"github.com/desertthunder/scrob/internal/shared"
)

// HistoryList prints a user's journaled submissions, newest first.
func (r *Runner) HistoryList(ctx context.Context, cmd *cli.Command) error {
	username := cmd.String("user")
	if username == "" {
		return fmt.Errorf("%w: --user", shared.ErrMissingArgument)
	}

	journal, db, err := r.openJournal()
	if err != nil {
		return fmt.Errorf("failed to open journal: %w", err)
	}
	defer db.Close()

	subs, err := journal.ListByUser(username, cmd.Int("limit"))
	if err != nil {
		return err
	}

	if len(subs) == 0 {
		return r.writePlain("no submissions on record for %s\n", username)
	}

	for _, sub := range subs {
		r.writePlain("%s  %s - %s [%s]\n",
			sub.SubmittedAt.Local().Format("2006-01-02 15:04"),
			sub.Track.Artist,
			sub.Track.Title,
			shared.FormatDuration(sub.Track.Duration),
		)
	}
	return nil
}

// HistoryPrune drops journal entries older than --keep-days.
func (r *Runner) HistoryPrune(ctx context.Context, cmd *cli.Command) error {
	username := cmd.String("user")
	if username == "" {
		return fmt.Errorf("%w: --user", shared.ErrMissingArgument)
	}

	keepDays := cmd.Int("keep-days")
	if keepDays < 0 {
		return fmt.Errorf("%w: --keep-days must not be negative", shared.ErrInvalidFlag)
	}

	journal, db, err := r.openJournal()
	if err != nil {
		return fmt.Errorf("failed to open journal: %w", err)
	}
	defer db.Close()

	cutoff := time.Now().AddDate(0, 0, -keepDays)
	pruned, err := journal.Prune(username, cutoff)
	if err != nil {
		return err
	}

	return r.writePlain("pruned %d journal entries\n", pruned)
}
