package cache

import (
	"encoding/xml"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/desertthunder/scrob/internal/models"
)

// formatVersion marks the submissions document layout. Readers ignore it; it
// exists so a future layout change is detectable.
const formatVersion = 2

// xmlDeclaration matches the declaration the original client wrote, single
// quotes included, so existing files and new ones are byte-compatible.
const xmlDeclaration = "<?xml version='1.0' encoding='utf-8'?>\n"

// submissionsDoc is the on-disk document: a root element carrying the writing
// product and format version, with one child element per queued track.
type submissionsDoc struct {
	XMLName xml.Name       `xml:"submissions"`
	Product string         `xml:"product,attr"`
	Version int            `xml:"version,attr"`
	Tracks  []models.Track `xml:"track"`
}

// load replaces the in-memory queue with the persisted one. A missing file
// means an empty queue; an unreadable or unparseable file also means an empty
// queue, with the failure reported through the sink. Neither is an error to
// the caller.
func (s *state) load() {
	s.tracks = nil

	data, err := os.ReadFile(s.path)
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			s.sink.LoadFailed(s.path, err)
		}
		return
	}

	var doc submissionsDoc
	if err := xml.Unmarshal(data, &doc); err != nil {
		s.sink.LoadFailed(s.path, fmt.Errorf("failed to parse cache file: %w", err))
		return
	}

	s.tracks = doc.Tracks
}

// save rewrites the cache file wholesale. An empty queue deletes the file
// instead of writing an empty document. Failures go to the sink; the caller
// contract has no error channel for them.
func (s *state) save() {
	if len(s.tracks) == 0 {
		if err := os.Remove(s.path); err != nil && !errors.Is(err, fs.ErrNotExist) {
			s.sink.SaveFailed(s.path, err)
		}
		return
	}

	doc := submissionsDoc{
		Product: s.product,
		Version: formatVersion,
		Tracks:  s.tracks,
	}

	body, err := xml.MarshalIndent(doc, "", "  ")
	if err != nil {
		s.sink.SaveFailed(s.path, fmt.Errorf("failed to encode cache: %w", err))
		return
	}

	if err := os.MkdirAll(filepath.Dir(s.path), 0755); err != nil {
		s.sink.SaveFailed(s.path, err)
		return
	}

	out := append([]byte(xmlDeclaration), body...)
	out = append(out, '\n')
	if err := os.WriteFile(s.path, out, 0644); err != nil {
		s.sink.SaveFailed(s.path, err)
	}
}
