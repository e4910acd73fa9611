package models

import (
	"encoding/xml"
	"time"
)

// trackElement is the wire form of a Track inside the submissions document.
// Absent attributes are omitted rather than written empty, and the play time
// is stored as Unix seconds.
type trackElement struct {
	Artist      string `xml:"artist,omitempty"`
	Album       string `xml:"album,omitempty"`
	Title       string `xml:"title,omitempty"`
	TrackNumber int    `xml:"trackNumber,omitempty"`
	Duration    int    `xml:"duration,omitempty"`
	Timestamp   int64  `xml:"timestamp,omitempty"`
	Source      string `xml:"source,omitempty"`
	Rating      string `xml:"rating,omitempty"`
	MBID        string `xml:"mbid,omitempty"`
}

// MarshalXML encodes the track as a single element with one child per set field.
func (t Track) MarshalXML(e *xml.Encoder, start xml.StartElement) error {
	if start.Name.Local == "" {
		start.Name.Local = "track"
	}

	el := trackElement{
		Artist:      t.Artist,
		Album:       t.Album,
		Title:       t.Title,
		TrackNumber: t.TrackNumber,
		Duration:    t.Duration,
		Source:      t.Source,
		Rating:      t.RatingFlags,
		MBID:        t.MBID,
	}
	if !t.Timestamp.IsZero() {
		el.Timestamp = t.Timestamp.Unix()
	}

	return e.EncodeElement(el, start)
}

// UnmarshalXML decodes a track element produced by MarshalXML.
func (t *Track) UnmarshalXML(d *xml.Decoder, start xml.StartElement) error {
	var el trackElement
	if err := d.DecodeElement(&el, &start); err != nil {
		return err
	}

	*t = Track{
		Artist:      el.Artist,
		Album:       el.Album,
		Title:       el.Title,
		TrackNumber: el.TrackNumber,
		Duration:    el.Duration,
		Source:      el.Source,
		RatingFlags: el.Rating,
		MBID:        el.MBID,
	}
	if el.Timestamp != 0 {
		t.Timestamp = time.Unix(el.Timestamp, 0).UTC()
	}

	return nil
}
