package cache

import (
	"fmt"
	"path/filepath"

	"github.com/desertthunder/scrob/internal/models"
	"github.com/desertthunder/scrob/internal/shared"
)

// cacheSuffix is appended to the username to form the cache filename.
const cacheSuffix = "_subs_cache.xml"

// defaultProduct is written as the document's product attribute when the
// caller does not inject an application identity.
const defaultProduct = "scrob"

// Options configures a Cache at construction.
type Options struct {
	// Dir is the runtime data directory holding per-user cache files.
	Dir string

	// Product identifies the writing application in the persisted document.
	// Defaults to "scrob".
	Product string

	// Sink observes diagnostics. Defaults to [NopSink].
	Sink Sink
}

// state is the private implementation behind a Cache handle. A handle owns
// its state exclusively; Copy duplicates it in full.
type state struct {
	username string
	path     string
	product  string
	sink     Sink
	tracks   []models.Track
}

// Cache is a per-user, disk-backed queue of plays awaiting submission.
type Cache struct {
	s *state
}

// New constructs the cache for a username, eagerly loading any persisted
// state. A missing or unreadable file yields an empty queue, reported only
// through the sink. An empty username is a contract violation and the one
// condition that returns an error.
func New(username string, opts Options) (*Cache, error) {
	if username == "" {
		return nil, fmt.Errorf("%w: username must not be empty", shared.ErrInvalidInput)
	}

	product := opts.Product
	if product == "" {
		product = defaultProduct
	}

	var sink Sink = NopSink{}
	if opts.Sink != nil {
		sink = opts.Sink
	}

	s := &state{
		username: username,
		path:     filepath.Join(opts.Dir, username+cacheSuffix),
		product:  product,
		sink:     sink,
	}
	s.load()

	return &Cache{s: s}, nil
}

// Add validates each candidate in order and appends the survivors to the
// queue, then rewrites the file once for the whole batch.
//
// Rejected and empty-sentinel candidates are reported to the sink and
// dropped; the operation itself never fails. A failed rewrite is likewise
// reported through the sink only, leaving the in-memory state mutated.
func (c *Cache) Add(tracks []models.Track) {
	for _, track := range tracks {
		if ok, reason := Validate(track); !ok {
			c.s.sink.TrackRejected(track, reason)
		} else if track.IsNull() {
			c.s.sink.NullTrackSkipped(track)
		} else {
			c.s.tracks = append(c.s.tracks, track)
		}
	}

	c.s.save()
}

// Remove drops every queued track that is value-equal to any of the targets,
// each stored track at most once, then rewrites the file.
//
// The return value is the number of tracks REMAINING after removal, not the
// number removed. Callers depend on this documented convention; do not
// change it to a removed count.
func (c *Cache) Remove(targets []models.Track) int {
	kept := c.s.tracks[:0]
	for _, track := range c.s.tracks {
		if !matchesAny(track, targets) {
			kept = append(kept, track)
		}
	}
	c.s.tracks = kept

	c.s.save()

	return len(c.s.tracks)
}

// Discard drops at most one queued track per target entry, then rewrites the
// file. Unlike Remove it respects multiplicity: a duplicate play stays queued
// unless a second target entry claims it, so discarding a submitted batch
// cannot take an unsubmitted repeat play with it.
//
// Returns the number of tracks remaining, matching the Remove convention.
func (c *Cache) Discard(targets []models.Track) int {
	used := make([]bool, len(targets))
	kept := c.s.tracks[:0]
	for _, track := range c.s.tracks {
		if i := matchUnused(track, targets, used); i >= 0 {
			used[i] = true
			continue
		}
		kept = append(kept, track)
	}
	c.s.tracks = kept

	c.s.save()

	return len(c.s.tracks)
}

// Tracks returns a snapshot of the queue in insertion order. The slice is a
// copy; mutating it does not touch the cache.
func (c *Cache) Tracks() []models.Track {
	out := make([]models.Track, len(c.s.tracks))
	copy(out, c.s.tracks)
	return out
}

// Path returns the location of the persisted cache file.
func (c *Cache) Path() string {
	return c.s.path
}

// Username returns the user this cache belongs to.
func (c *Cache) Username() string {
	return c.s.username
}

// Copy returns an independent duplicate of the cache: same username, path
// and queue contents, no shared state with the original.
func (c *Cache) Copy() *Cache {
	dup := *c.s
	dup.tracks = make([]models.Track, len(c.s.tracks))
	copy(dup.tracks, c.s.tracks)
	return &Cache{s: &dup}
}

// matchesAny reports whether the track is value-equal to any target.
func matchesAny(track models.Track, targets []models.Track) bool {
	for _, target := range targets {
		if track.Equal(target) {
			return true
		}
	}
	return false
}

// matchUnused returns the index of the first unclaimed target value-equal to
// the track, or -1.
func matchUnused(track models.Track, targets []models.Track, used []bool) int {
	for i, target := range targets {
		if !used[i] && track.Equal(target) {
			return i
		}
	}
	return -1
}
