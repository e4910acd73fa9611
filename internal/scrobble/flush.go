package scrobble

import (
	"context"
	"fmt"
	"time"

	"github.com/desertthunder/scrob/internal/cache"
	"github.com/desertthunder/scrob/internal/history"
	"github.com/desertthunder/scrob/internal/shared"
)

// defaultBatchSize caps tracks per submission request when none is configured.
const defaultBatchSize = 50

// FlushOptions configures a flush run.
type FlushOptions struct {
	// BatchSize is the maximum tracks per submission request. Defaults to 50.
	BatchSize int
}

// FlushResult summarizes a flush run.
type FlushResult struct {
	Submitted int      // Tracks accepted by the service and removed from the queue
	Remaining int      // Tracks still queued when the run ended
	BatchIDs  []string // Journal batch IDs, one per submitted request
}

// Flush submits a user's queued plays in batches. Each accepted batch is
// journaled (when a repository is provided) and discarded from the cache
// before the next batch goes out, so a mid-run failure leaves only
// unsubmitted tracks queued, repeat plays of a submitted track included.
// The error, if any, is from the first failed batch.
func Flush(ctx context.Context, c *cache.Cache, submitter Submitter, journal *history.Repository, opts FlushOptions) (*FlushResult, error) {
	if submitter == nil {
		return nil, fmt.Errorf("%w: submitter not initialized", shared.ErrServiceUnavailable)
	}

	size := opts.BatchSize
	if size <= 0 {
		size = defaultBatchSize
	}

	pending := c.Tracks()
	result := &FlushResult{Remaining: len(pending)}

	for start := 0; start < len(pending); start += size {
		end := min(start+size, len(pending))
		batch := pending[start:end]

		if err := submitter.Submit(ctx, c.Username(), batch); err != nil {
			return result, fmt.Errorf("failed to submit batch: %w", err)
		}

		batchID := shared.GenerateID()
		if journal != nil {
			if err := journal.Record(batchID, c.Username(), batch, time.Now()); err != nil {
				return result, fmt.Errorf("failed to journal batch: %w", err)
			}
		}

		result.Submitted += len(batch)
		result.Remaining = c.Discard(batch)
		result.BatchIDs = append(result.BatchIDs, batchID)
	}

	return result, nil
}
