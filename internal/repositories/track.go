package repositories

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/rcavaliericopy-max/salomao/internal/models"
	"github.com/rcavaliericopy-max/salomao/internal/shared"
)

// TrackRepository implements [models.Repository] for [models.AudioTrack]
// persistence. The audio payload is stored in-row so metadata and content
// are written and deleted together.
type TrackRepository struct {
	store *Store
}

// Create inserts a new track. A missing ID is generated.
func (r *TrackRepository) Create(track *models.AudioTrack) error {
	db, err := r.store.ensureOpen()
	if err != nil {
		return err
	}

	if track.ID() == "" {
		track.SetID(shared.GenerateID())
	}

	if err := track.Validate(); err != nil {
		return fmt.Errorf("%w: %v", shared.ErrInvalidInput, err)
	}
	if err := folderExists(db, track.FolderID()); err != nil {
		return err
	}

	query := `
		INSERT INTO tracks (id, folder_id, name, blob, mime_type, added_at) VALUES (?, ?, ?, ?, ?, ?)
	`

	if _, err := db.Exec(query, track.ID(), track.FolderID(), track.Name(), track.Blob(), track.MimeType(), track.AddedAt()); err != nil {
		if isConstraintErr(err) {
			return fmt.Errorf("%w: track %s", shared.ErrConflict, track.ID())
		}
		return fmt.Errorf("failed to insert track: %w", err)
	}

	return nil
}

// Get retrieves a track by ID, including the audio payload.
func (r *TrackRepository) Get(id string) (*models.AudioTrack, error) {
	db, err := r.store.ensureOpen()
	if err != nil {
		return nil, err
	}

	query := `
		SELECT id, folder_id, name, blob, mime_type, added_at
		FROM tracks
		WHERE id = ?
	`

	return scanTrack(db.QueryRow(query, id), id)
}

// Put upserts a track record by primary key.
func (r *TrackRepository) Put(track *models.AudioTrack) error {
	db, err := r.store.ensureOpen()
	if err != nil {
		return err
	}

	if err := track.Validate(); err != nil {
		return fmt.Errorf("%w: %v", shared.ErrInvalidInput, err)
	}
	if err := folderExists(db, track.FolderID()); err != nil {
		return err
	}

	query := `
		INSERT INTO tracks (id, folder_id, name, blob, mime_type, added_at) VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET folder_id = excluded.folder_id, name = excluded.name,
			blob = excluded.blob, mime_type = excluded.mime_type
	`

	if _, err := db.Exec(query, track.ID(), track.FolderID(), track.Name(), track.Blob(), track.MimeType(), track.AddedAt()); err != nil {
		return fmt.Errorf("failed to upsert track: %w", err)
	}

	return nil
}

// Move re-files a track under another folder without rewriting the blob.
func (r *TrackRepository) Move(id, folderID string) error {
	db, err := r.store.ensureOpen()
	if err != nil {
		return err
	}

	if folderID == "" {
		folderID = models.RootFolderID
	}
	if err := folderExists(db, folderID); err != nil {
		return err
	}

	result, err := db.Exec("UPDATE tracks SET folder_id = ? WHERE id = ?", folderID, id)
	if err != nil {
		return fmt.Errorf("failed to move track: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get affected rows: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("%w: track %s", shared.ErrNotFound, id)
	}

	return nil
}

// Delete removes a track by ID.
func (r *TrackRepository) Delete(id string) error {
	db, err := r.store.ensureOpen()
	if err != nil {
		return err
	}

	result, err := db.Exec("DELETE FROM tracks WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("failed to delete track: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get affected rows: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("%w: track %s", shared.ErrNotFound, id)
	}

	return nil
}

// List retrieves all tracks, oldest first. The ordering is part of the
// contract the display layer depends on.
func (r *TrackRepository) List() ([]*models.AudioTrack, error) {
	query := `
		SELECT id, folder_id, name, blob, mime_type, added_at
		FROM tracks
		ORDER BY added_at ASC
	`

	return r.queryTracks(query)
}

// ListByFolder retrieves the tracks filed under one folder through the
// folder_id index, oldest first.
func (r *TrackRepository) ListByFolder(folderID string) ([]*models.AudioTrack, error) {
	query := `
		SELECT id, folder_id, name, blob, mime_type, added_at
		FROM tracks
		WHERE folder_id = ?
		ORDER BY added_at ASC
	`

	return r.queryTracks(query, folderID)
}

// Count reports the number of track records without loading audio
// blobs.
func (r *TrackRepository) Count() (int, error) {
	db, err := r.store.ensureOpen()
	if err != nil {
		return 0, err
	}

	var count int
	if err := db.QueryRow("SELECT COUNT(*) FROM tracks").Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count tracks: %w", err)
	}
	return count, nil
}

// ExistsInFolder reports whether a track with the given display name is
// already filed under the folder, matching case-insensitively. Used by
// the seeder for idempotence.
func (r *TrackRepository) ExistsInFolder(folderID, name string) (bool, error) {
	db, err := r.store.ensureOpen()
	if err != nil {
		return false, err
	}

	var exists bool
	query := "SELECT EXISTS(SELECT 1 FROM tracks WHERE folder_id = ? AND name = ? COLLATE NOCASE)"
	if err := db.QueryRow(query, folderID, name).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check track existence: %w", err)
	}
	return exists, nil
}

func (r *TrackRepository) queryTracks(query string, args ...any) ([]*models.AudioTrack, error) {
	db, err := r.store.ensureOpen()
	if err != nil {
		return nil, err
	}

	rows, err := db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query tracks: %w", err)
	}
	defer rows.Close()

	var tracks []*models.AudioTrack
	for rows.Next() {
		var (
			id       string
			folderID string
			name     string
			blob     []byte
			mimeType string
			addedAt  time.Time
		)
		if err := rows.Scan(&id, &folderID, &name, &blob, &mimeType, &addedAt); err != nil {
			return nil, fmt.Errorf("failed to scan track: %w", err)
		}
		tracks = append(tracks, hydrateTrack(id, folderID, name, blob, mimeType, addedAt))
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}

	return tracks, nil
}

// scanTrack scans a single row into a [models.AudioTrack].
func scanTrack(row *sql.Row, key string) (*models.AudioTrack, error) {
	var (
		id       string
		folderID string
		name     string
		blob     []byte
		mimeType string
		addedAt  time.Time
	)

	err := row.Scan(&id, &folderID, &name, &blob, &mimeType, &addedAt)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("%w: track %s", shared.ErrNotFound, key)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan track: %w", err)
	}

	return hydrateTrack(id, folderID, name, blob, mimeType, addedAt), nil
}

// folderExists verifies the referenced folder row is present, so no
// track ever points at a folder that does not exist. The root folder is
// virtual and always valid.
func folderExists(db *sql.DB, folderID string) error {
	if folderID == models.RootFolderID {
		return nil
	}

	var exists bool
	if err := db.QueryRow("SELECT EXISTS(SELECT 1 FROM folders WHERE id = ?)", folderID).Scan(&exists); err != nil {
		return fmt.Errorf("failed to check folder existence: %w", err)
	}
	if !exists {
		return fmt.Errorf("%w: folder %s", shared.ErrNotFound, folderID)
	}
	return nil
}

func hydrateTrack(id, folderID, name string, blob []byte, mimeType string, addedAt time.Time) *models.AudioTrack {
	track := models.NewAudioTrack(folderID, name, blob, mimeType)
	track.SetID(id)
	track.SetAddedAt(addedAt)
	return track
}
