// Package history records successfully submitted scrobbles in a local
// SQLite journal so users can audit what left the queue and when.
package history

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/desertthunder/scrob/internal/models"
	"github.com/desertthunder/scrob/internal/shared"
)

// Submission is one journaled scrobble: the track as submitted, the user it
// was submitted for, and the batch that carried it.
type Submission struct {
	ID          string
	BatchID     string
	Username    string
	Track       models.Track
	SubmittedAt time.Time
}

// Repository provides access to the submissions journal.
//
// Deletes are soft so a prune is reversible at the database level; reads
// exclude soft-deleted rows.
type Repository struct {
	db *sql.DB
}

// NewRepository creates a Repository over an open database connection
func NewRepository(db *sql.DB) *Repository {
	return &Repository{db: db}
}

// Record journals a batch of submitted tracks under a single batch ID.
// All rows are written in one transaction.
func (r *Repository) Record(batchID, username string, tracks []models.Track, submittedAt time.Time) error {
	if batchID == "" || username == "" {
		return fmt.Errorf("%w: batch ID and username are required", shared.ErrInvalidInput)
	}

	tx, err := r.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	query := `
		INSERT INTO submissions (id, batch_id, username, artist, album, title, track_number, duration, played_at, mbid, submitted_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	for _, track := range tracks {
		var playedAt any
		if !track.Timestamp.IsZero() {
			playedAt = track.Timestamp.UTC()
		}

		_, err := tx.Exec(query,
			shared.GenerateID(),
			batchID,
			username,
			track.Artist,
			track.Album,
			track.Title,
			track.TrackNumber,
			track.Duration,
			playedAt,
			track.MBID,
			submittedAt.UTC(),
		)
		if err != nil {
			return fmt.Errorf("failed to insert submission: %w", err)
		}
	}

	return tx.Commit()
}

// ListByUser retrieves a user's journaled submissions, newest first.
// A limit of 0 means no limit.
func (r *Repository) ListByUser(username string, limit int) ([]Submission, error) {
	query := `
		SELECT id, batch_id, username, artist, album, title, track_number, duration, played_at, mbid, submitted_at
		FROM submissions
		WHERE username = ? AND deleted_at IS NULL
		ORDER BY submitted_at DESC, id
	`
	args := []any{username}

	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query submissions: %w", err)
	}
	defer rows.Close()

	var subs []Submission
	for rows.Next() {
		sub, err := scanSubmission(rows)
		if err != nil {
			return nil, err
		}
		subs = append(subs, sub)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}

	return subs, nil
}

// CountByUser returns how many journaled submissions a user has.
func (r *Repository) CountByUser(username string) (int, error) {
	var count int
	err := r.db.QueryRow(
		"SELECT COUNT(*) FROM submissions WHERE username = ? AND deleted_at IS NULL",
		username,
	).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count submissions: %w", err)
	}
	return count, nil
}

// Prune soft-deletes a user's journal entries submitted before the cutoff
// and returns how many rows were affected.
func (r *Repository) Prune(username string, before time.Time) (int, error) {
	query := `
		UPDATE submissions
		SET deleted_at = ?
		WHERE username = ? AND submitted_at < ? AND deleted_at IS NULL
	`

	result, err := r.db.Exec(query, time.Now().UTC(), username, before.UTC())
	if err != nil {
		return 0, fmt.Errorf("failed to prune submissions: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to get affected rows: %w", err)
	}

	return int(rows), nil
}

// scanSubmission scans a row from [sql.Rows] into a Submission
func scanSubmission(rows *sql.Rows) (Submission, error) {
	var (
		sub         Submission
		album       sql.NullString
		mbid        sql.NullString
		playedAt    sql.NullTime
		trackNumber int
		duration    int
		artist      string
		title       string
	)

	err := rows.Scan(&sub.ID, &sub.BatchID, &sub.Username, &artist, &album, &title, &trackNumber, &duration, &playedAt, &mbid, &sub.SubmittedAt)
	if err != nil {
		return Submission{}, fmt.Errorf("failed to scan submission: %w", err)
	}

	sub.Track = models.Track{
		Artist:      artist,
		Album:       album.String,
		Title:       title,
		TrackNumber: trackNumber,
		Duration:    duration,
		MBID:        mbid.String,
	}
	if playedAt.Valid {
		sub.Track.Timestamp = playedAt.Time.UTC()
	}

	return sub, nil
}
