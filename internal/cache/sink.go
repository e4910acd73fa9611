package cache

import (
	"github.com/charmbracelet/log"

	"github.com/desertthunder/scrob/internal/models"
)

// Sink receives diagnostics the cache would otherwise swallow. None of these
// events fail the operation that produced them; the sink only observes.
type Sink interface {
	// TrackRejected is called when an Add candidate fails validation.
	TrackRejected(track models.Track, reason Reason)

	// NullTrackSkipped is called when an Add candidate is the empty sentinel.
	NullTrackSkipped(track models.Track)

	// LoadFailed is called when the cache file exists but cannot be read or
	// parsed. The cache recovers to an empty state.
	LoadFailed(path string, err error)

	// SaveFailed is called when a rewrite of the cache file fails. The
	// in-memory state keeps the mutation regardless.
	SaveFailed(path string, err error)
}

// NopSink discards all diagnostics.
type NopSink struct{}

func (NopSink) TrackRejected(models.Track, Reason) {}
func (NopSink) NullTrackSkipped(models.Track)      {}
func (NopSink) LoadFailed(string, error)           {}
func (NopSink) SaveFailed(string, error)           {}

// LogSink forwards diagnostics to a [log.Logger].
type LogSink struct {
	Logger *log.Logger
}

// NewLogSink creates a Sink backed by the given logger.
func NewLogSink(logger *log.Logger) LogSink {
	return LogSink{Logger: logger}
}

func (s LogSink) TrackRejected(track models.Track, reason Reason) {
	s.Logger.Warn("rejected track", "track", track.String(), "reason", reason.String())
}

func (s LogSink) NullTrackSkipped(track models.Track) {
	s.Logger.Debug("will not cache an empty track")
}

func (s LogSink) LoadFailed(path string, err error) {
	s.Logger.Warn("failed to load cache, starting empty", "path", path, "error", err)
}

func (s LogSink) SaveFailed(path string, err error) {
	s.Logger.Error("failed to save cache", "path", path, "error", err)
}
