package main

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/urfave/cli/v3"

	"github.com/desertthunder/scrob/internal/history"
	"github.com/desertthunder/scrob/internal/ui"
)

// TUI launches the interactive queue browser for a user.
func (r *Runner) TUI(ctx context.Context, cmd *cli.Command) error {
	c, err := r.openCache(cmd.String("user"))
	if err != nil {
		return err
	}

	var journal *history.Repository
	if repo, db, err := r.openJournal(); err == nil {
		journal = repo
		defer db.Close()
	} else {
		r.logger.Warn("journal unavailable for this session", "error", err)
	}

	model := ui.NewModel(ctx, c, r.submitter, journal, r.config.Service.BatchSize)

	program := tea.NewProgram(model, tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("TUI error: %w", err)
	}

	return nil
}
