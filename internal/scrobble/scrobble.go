// Package scrobble submits queued plays to the remote tracking service.
//
// The submission protocol is form-encoded batches against a single endpoint,
// authenticated by a session key. The Submitter interface keeps the transport
// swappable; Flush ties a submitter to a user's cache and the local journal.
package scrobble

import (
	"context"

	"github.com/desertthunder/scrob/internal/models"
)

// Submitter sends a batch of plays to the remote service on behalf of a user.
type Submitter interface {
	// Submit delivers the given tracks in one request. It either fully
	// succeeds or fails as a whole; partial acceptance is not modeled.
	Submit(ctx context.Context, username string, tracks []models.Track) error

	// Name returns the submitter's name for logs and output.
	Name() string
}
