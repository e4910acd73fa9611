package cache

import (
	"strings"
	"time"

	"github.com/desertthunder/scrob/internal/models"
)

// MinScrobbleLength is the shortest play, in seconds, the service accepts.
const MinScrobbleLength = 31

// scrobbleFloor is the service inception date. Plays claimed before it are junk.
var scrobbleFloor = time.Date(2003, time.January, 1, 0, 0, 0, 0, time.UTC)

// invalidArtistNames are placeholder names some players report instead of a
// real artist, compared case-insensitively.
var invalidArtistNames = []string{
	"unknown artist",
	"unknown",
	"[unknown]",
	"[unknown artist]",
}

// Reason identifies why a candidate track was rejected.
type Reason int

const (
	TooShort Reason = iota + 1
	NoTimestamp
	FromTheFuture
	FromTheDistantPast
	ArtistNameMissing
	TrackNameMissing
	ArtistInvalid
)

// String returns the reason name for diagnostics.
func (r Reason) String() string {
	switch r {
	case TooShort:
		return "TooShort"
	case NoTimestamp:
		return "NoTimestamp"
	case FromTheFuture:
		return "FromTheFuture"
	case FromTheDistantPast:
		return "FromTheDistantPast"
	case ArtistNameMissing:
		return "ArtistNameMissing"
	case TrackNameMissing:
		return "TrackNameMissing"
	case ArtistInvalid:
		return "ArtistInvalid"
	}
	return "Unknown"
}

// Validate reports whether a track is acceptable for queueing. When it is not,
// the returned Reason names the first rule the track failed.
func Validate(track models.Track) (bool, Reason) {
	return validateAt(track, time.Now())
}

// validateAt checks the rules against a fixed clock. Rule order matters: the
// first failure is the one reported.
func validateAt(track models.Track, now time.Time) (bool, Reason) {
	if track.Duration < MinScrobbleLength {
		return false, TooShort
	}

	if track.Timestamp.IsZero() {
		return false, NoTimestamp
	}

	// The service enforces its own spam window; this only weeds out obviously
	// bad data, so the horizon is a deliberately lenient month.
	if track.Timestamp.After(now.AddDate(0, 1, 0)) {
		return false, FromTheFuture
	}

	if track.Timestamp.Before(scrobbleFloor) {
		return false, FromTheDistantPast
	}

	if track.Artist == "" {
		return false, ArtistNameMissing
	}

	if track.Title == "" {
		return false, TrackNameMissing
	}

	name := strings.ToLower(track.Artist)
	for _, bad := range invalidArtistNames {
		if name == bad {
			return false, ArtistInvalid
		}
	}

	return true, 0
}
