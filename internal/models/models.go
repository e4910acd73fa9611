package models

import (
	"fmt"
	"time"
)

// Track represents a single played track queued for submission.
//
// A zero-valued field means the attribute is absent: an empty Artist means no
// artist was reported, a zero Timestamp means the play time is unknown. The
// queue validates these before accepting a track, it never fills them in.
type Track struct {
	Artist      string
	Album       string
	Title       string
	TrackNumber int
	Duration    int // Duration in seconds
	Timestamp   time.Time
	Source      string // Playback source reported by the client (e.g. "P" for user-chosen)
	RatingFlags string // Protocol rating letters (e.g. "L" loved, "B" banned, "S" skipped)
	MBID        string // MusicBrainz recording ID, if known
}

// NewTrack creates a Track for a play that started at the given time.
func NewTrack(artist, album, title string, duration int, timestamp time.Time) Track {
	return Track{
		Artist:    artist,
		Album:     album,
		Title:     title,
		Duration:  duration,
		Timestamp: timestamp,
	}
}

// IsNull reports whether the track is the empty sentinel: no fields set at all.
func (t Track) IsNull() bool {
	return t.Artist == "" &&
		t.Album == "" &&
		t.Title == "" &&
		t.TrackNumber == 0 &&
		t.Duration == 0 &&
		t.Timestamp.IsZero() &&
		t.Source == "" &&
		t.RatingFlags == "" &&
		t.MBID == ""
}

// Equal reports whether two tracks describe the same play.
//
// Equality is value-based: every field must match, with timestamps compared
// by instant so that wall-clock representation and location do not matter.
func (t Track) Equal(o Track) bool {
	if t.Artist != o.Artist || t.Album != o.Album || t.Title != o.Title {
		return false
	}
	if t.TrackNumber != o.TrackNumber || t.Duration != o.Duration {
		return false
	}
	if t.Source != o.Source || t.RatingFlags != o.RatingFlags || t.MBID != o.MBID {
		return false
	}
	if t.Timestamp.IsZero() != o.Timestamp.IsZero() {
		return false
	}
	return t.Timestamp.IsZero() || t.Timestamp.Equal(o.Timestamp)
}

// String returns a short human-readable description for logs and diagnostics.
func (t Track) String() string {
	if t.IsNull() {
		return "(empty track)"
	}
	return fmt.Sprintf("%s - %s", t.Artist, t.Title)
}
