package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/desertthunder/scrob/internal/shared"
	tu "github.com/desertthunder/scrob/internal/testing"
)

// testRunner builds a Runner wired to a temp data dir, an in-memory-ish
// database file and a captured output buffer.
func testRunner(t *testing.T) (*Runner, *bytes.Buffer) {
	t.Helper()

	dir := t.TempDir()
	config := shared.DefaultConfig()
	config.App.DataDir = filepath.Join(dir, "data")
	config.Database.Path = filepath.Join(dir, "scrob.db")

	output := &bytes.Buffer{}
	runner := NewRunner(RunnerOpts{
		Config:    config,
		Submitter: &tu.MockSubmitter{},
		Logger:    shared.NewLogger(&bytes.Buffer{}),
		Output:    output,
	})
	return runner, output
}

// run executes the CLI with the given args against the runner's app.
func run(t *testing.T, r *Runner, args ...string) error {
	t.Helper()
	return newApp(r).Run(context.Background(), append([]string{"scrob"}, args...))
}

func TestRunner(t *testing.T) {
	t.Run("NewRunner", func(t *testing.T) {
		t.Run("with all dependencies provided", func(t *testing.T) {
			config := shared.DefaultConfig()
			logger := shared.NewLogger(nil)
			output := &bytes.Buffer{}
			submitter := &tu.MockSubmitter{}

			runner := NewRunner(RunnerOpts{
				Config:    config,
				Logger:    logger,
				Output:    output,
				Submitter: submitter,
			})

			if runner.config != config {
				t.Error("expected config to be set")
			}
			if runner.logger != logger {
				t.Error("expected logger to be set")
			}
			if runner.output != output {
				t.Error("expected output to be set")
			}
			if runner.submitter != submitter {
				t.Error("expected submitter to be set")
			}
		})

		t.Run("with nil config uses defaults", func(t *testing.T) {
			runner := NewRunner(RunnerOpts{})
			if runner.config == nil {
				t.Error("expected default config to be set")
			}
			if runner.output != os.Stdout {
				t.Error("expected output to default to os.Stdout")
			}
		})
	})
}

func TestCacheCommands(t *testing.T) {
	timestamp := time.Now().Add(-time.Hour).Unix()

	addTrack := func(t *testing.T, r *Runner, artist, title string) {
		t.Helper()
		err := run(t, r, "cache", "add",
			"--user", "alice",
			"--artist", artist,
			"--title", title,
			"--duration", "200",
			"--timestamp", strconvI64(timestamp),
		)
		if err != nil {
			t.Fatalf("cache add failed: %v", err)
		}
	}

	t.Run("AddAndList", func(t *testing.T) {
		r, output := testRunner(t)

		addTrack(t, r, "Massive Attack", "Teardrop")
		addTrack(t, r, "Burial", "Archangel")
		output.Reset()

		if err := run(t, r, "cache", "list", "--user", "alice"); err != nil {
			t.Fatalf("cache list failed: %v", err)
		}

		out := output.String()
		if !strings.Contains(out, "Pending: 2") {
			t.Errorf("expected 2 pending, got:\n%s", out)
		}
		if !strings.Contains(out, "1. Massive Attack - Teardrop") {
			t.Errorf("expected queue order preserved, got:\n%s", out)
		}
	})

	t.Run("ListFormats", func(t *testing.T) {
		r, output := testRunner(t)
		addTrack(t, r, "Massive Attack", "Teardrop")

		for _, format := range []string{"csv", "markdown", "json"} {
			output.Reset()
			if err := run(t, r, "cache", "list", "--user", "alice", "--format", format); err != nil {
				t.Fatalf("cache list --format %s failed: %v", format, err)
			}
			if !strings.Contains(output.String(), "Teardrop") {
				t.Errorf("format %s should include the track", format)
			}
		}

		if err := run(t, r, "cache", "list", "--user", "alice", "--format", "yaml"); err == nil {
			t.Error("expected error for unsupported format")
		}
	})

	t.Run("RejectedAddLeavesQueueAlone", func(t *testing.T) {
		r, output := testRunner(t)

		err := run(t, r, "cache", "add",
			"--user", "alice",
			"--artist", "Massive Attack",
			"--title", "Teardrop",
			"--duration", "10", // below the minimum scrobble length
		)
		if err != nil {
			t.Fatalf("cache add should not hard-fail on rejection: %v", err)
		}
		if !strings.Contains(output.String(), "rejected") {
			t.Errorf("expected rejection notice, got:\n%s", output.String())
		}
	})

	t.Run("RemoveByIndex", func(t *testing.T) {
		r, output := testRunner(t)
		addTrack(t, r, "Massive Attack", "Teardrop")
		addTrack(t, r, "Burial", "Archangel")
		output.Reset()

		if err := run(t, r, "cache", "remove", "--user", "alice", "--index", "1"); err != nil {
			t.Fatalf("cache remove failed: %v", err)
		}
		if !strings.Contains(output.String(), "removed; 1 pending") {
			t.Errorf("expected remaining count in output, got:\n%s", output.String())
		}

		if err := run(t, r, "cache", "remove", "--user", "alice", "--index", "5"); err == nil {
			t.Error("expected error for out-of-range index")
		}
	})

	t.Run("ClearDeletesFile", func(t *testing.T) {
		r, output := testRunner(t)
		addTrack(t, r, "Massive Attack", "Teardrop")
		output.Reset()

		if err := run(t, r, "cache", "path", "--user", "alice"); err != nil {
			t.Fatalf("cache path failed: %v", err)
		}
		path := strings.TrimSpace(output.String())
		tu.AssertFileExists(t, path)

		if err := run(t, r, "cache", "clear", "--user", "alice"); err != nil {
			t.Fatalf("cache clear failed: %v", err)
		}
		tu.AssertFileAbsent(t, path)
	})

	t.Run("OutputWriteFailure", func(t *testing.T) {
		r, _ := testRunner(t)
		r.output = &tu.FWriter{}

		if err := run(t, r, "cache", "path", "--user", "alice"); err == nil {
			t.Error("expected error when the output writer fails")
		}
	})

	t.Run("MissingUser", func(t *testing.T) {
		r, _ := testRunner(t)
		if err := run(t, r, "cache", "list"); err == nil {
			t.Error("expected error when --user is missing")
		}
	})
}

func TestSubmitCommand(t *testing.T) {
	t.Run("DryRun", func(t *testing.T) {
		r, output := testRunner(t)
		sub := r.submitter.(*tu.MockSubmitter)

		err := run(t, r, "cache", "add",
			"--user", "alice",
			"--artist", "Massive Attack",
			"--title", "Teardrop",
			"--duration", "200",
		)
		if err != nil {
			t.Fatalf("cache add failed: %v", err)
		}
		output.Reset()

		if err := run(t, r, "submit", "--user", "alice", "--dry-run"); err != nil {
			t.Fatalf("dry-run failed: %v", err)
		}
		if !strings.Contains(output.String(), "would submit 1 scrobbles") {
			t.Errorf("expected dry-run summary, got:\n%s", output.String())
		}
		if len(sub.Batches) != 0 {
			t.Error("dry-run should not submit")
		}
	})

	t.Run("SubmitsAndJournals", func(t *testing.T) {
		r, output := testRunner(t)
		sub := r.submitter.(*tu.MockSubmitter)

		err := run(t, r, "cache", "add",
			"--user", "alice",
			"--artist", "Massive Attack",
			"--title", "Teardrop",
			"--duration", "200",
		)
		if err != nil {
			t.Fatalf("cache add failed: %v", err)
		}
		output.Reset()

		if err := run(t, r, "submit", "--user", "alice"); err != nil {
			t.Fatalf("submit failed: %v", err)
		}
		if len(sub.Batches) != 1 {
			t.Fatalf("expected 1 submitted batch, got %d", len(sub.Batches))
		}
		if !strings.Contains(output.String(), "submitted 1, 0 still queued") {
			t.Errorf("expected submit summary, got:\n%s", output.String())
		}

		output.Reset()
		if err := run(t, r, "history", "list", "--user", "alice"); err != nil {
			t.Fatalf("history list failed: %v", err)
		}
		if !strings.Contains(output.String(), "Massive Attack - Teardrop") {
			t.Errorf("expected journaled submission, got:\n%s", output.String())
		}
	})

	t.Run("EmptyQueue", func(t *testing.T) {
		r, output := testRunner(t)
		if err := run(t, r, "submit", "--user", "alice"); err != nil {
			t.Fatalf("submit of empty queue should succeed: %v", err)
		}
		if !strings.Contains(output.String(), "nothing to submit") {
			t.Errorf("expected empty-queue notice, got:\n%s", output.String())
		}
	})
}

func TestSetupCommands(t *testing.T) {
	t.Run("Database", func(t *testing.T) {
		r, output := testRunner(t)
		if err := run(t, r, "setup", "database"); err != nil {
			t.Fatalf("setup database failed: %v", err)
		}
		if !strings.Contains(output.String(), "database ready") {
			t.Errorf("expected confirmation, got:\n%s", output.String())
		}
		tu.AssertFileExists(t, r.config.Database.Path)
	})

	t.Run("Config", func(t *testing.T) {
		r, _ := testRunner(t)
		path := filepath.Join(t.TempDir(), "config.toml")

		if err := run(t, r, "setup", "config", "--output", path); err != nil {
			t.Fatalf("setup config failed: %v", err)
		}
		if _, err := shared.LoadConfig(path); err != nil {
			t.Errorf("written config should be loadable: %v", err)
		}
	})
}

// strconvI64 formats a unix timestamp for a CLI flag value.
func strconvI64(v int64) string {
	return strconv.FormatInt(v, 10)
}
