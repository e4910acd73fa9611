// package formatter renders a user's pending scrobbles to various formats (CSV, Markdown, plain text)
package formatter

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"strconv"

	"github.com/desertthunder/scrob/internal/models"
	"github.com/desertthunder/scrob/internal/shared"
)

// ExportToCSV converts pending tracks to CSV with columns: Artist, Album, Title, Duration, PlayedAt, MBID
func ExportToCSV(tracks []models.Track) ([]byte, error) {
	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)

	headers := []string{"Artist", "Album", "Title", "Duration", "PlayedAt", "MBID"}
	if err := writer.Write(headers); err != nil {
		return nil, fmt.Errorf("failed to write CSV headers: %w", err)
	}

	for _, track := range tracks {
		playedAt := ""
		if !track.Timestamp.IsZero() {
			playedAt = strconv.FormatInt(track.Timestamp.Unix(), 10)
		}
		record := []string{
			track.Artist,
			track.Album,
			track.Title,
			strconv.Itoa(track.Duration),
			playedAt,
			track.MBID,
		}
		if err := writer.Write(record); err != nil {
			return nil, fmt.Errorf("failed to write CSV record: %w", err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, fmt.Errorf("CSV writer error: %w", err)
	}

	return buf.Bytes(), nil
}

// ExportToMarkdown converts pending tracks to a Markdown document headed by the username
func ExportToMarkdown(username string, tracks []models.Track) ([]byte, error) {
	var buf bytes.Buffer

	buf.WriteString(fmt.Sprintf("# Pending scrobbles for %s\n\n", username))
	buf.WriteString(fmt.Sprintf("**Queued**: %d\n\n", len(tracks)))

	for i, track := range tracks {
		duration := shared.FormatDuration(track.Duration)
		albumPart := ""
		if track.Album != "" {
			albumPart = fmt.Sprintf(" (%s)", track.Album)
		}
		buf.WriteString(fmt.Sprintf("%d. %s - %s%s [%s] @ %s\n",
			i+1, track.Artist, track.Title, albumPart, duration, shared.FormatTimestamp(track.Timestamp)))
	}

	return buf.Bytes(), nil
}

// ExportToText converts pending tracks to plain text
func ExportToText(username string, tracks []models.Track) ([]byte, error) {
	var buf bytes.Buffer

	buf.WriteString(fmt.Sprintf("User: %s\n", username))
	buf.WriteString(fmt.Sprintf("Pending: %d\n\n", len(tracks)))

	for i, track := range tracks {
		buf.WriteString(fmt.Sprintf("%d. %s - %s\n", i+1, track.Artist, track.Title))
	}

	return buf.Bytes(), nil
}
