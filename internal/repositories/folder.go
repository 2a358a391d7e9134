package repositories

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/rcavaliericopy-max/salomao/internal/models"
	"github.com/rcavaliericopy-max/salomao/internal/shared"
)

// FolderRepository implements [models.Repository] for [models.Folder] persistence.
type FolderRepository struct {
	store *Store
}

// Create inserts a new folder. A missing ID is generated.
func (r *FolderRepository) Create(folder *models.Folder) error {
	db, err := r.store.ensureOpen()
	if err != nil {
		return err
	}

	if folder.ID() == "" {
		folder.SetID(shared.GenerateID())
	}

	if err := folder.Validate(); err != nil {
		return fmt.Errorf("%w: %v", shared.ErrInvalidInput, err)
	}

	query := `
		INSERT INTO folders (id, name, cover, created_at) VALUES (?, ?, ?, ?)
	`

	if _, err := db.Exec(query, folder.ID(), folder.Name(), folder.Cover(), folder.CreatedAt()); err != nil {
		if isConstraintErr(err) {
			return fmt.Errorf("%w: folder %s", shared.ErrConflict, folder.ID())
		}
		return fmt.Errorf("failed to insert folder: %w", err)
	}

	return nil
}

// Get retrieves a folder by ID.
func (r *FolderRepository) Get(id string) (*models.Folder, error) {
	db, err := r.store.ensureOpen()
	if err != nil {
		return nil, err
	}

	query := `
		SELECT id, name, cover, created_at
		FROM folders
		WHERE id = ?
	`

	return scanFolder(db.QueryRow(query, id), id)
}

// GetByName retrieves a folder by display name, matching
// case-insensitively. Used by the seeder to dedupe manifest groups.
func (r *FolderRepository) GetByName(name string) (*models.Folder, error) {
	db, err := r.store.ensureOpen()
	if err != nil {
		return nil, err
	}

	query := `
		SELECT id, name, cover, created_at
		FROM folders
		WHERE name = ? COLLATE NOCASE
	`

	return scanFolder(db.QueryRow(query, name), name)
}

// Put upserts a folder record by primary key, replacing name and cover.
func (r *FolderRepository) Put(folder *models.Folder) error {
	db, err := r.store.ensureOpen()
	if err != nil {
		return err
	}

	if err := folder.Validate(); err != nil {
		return fmt.Errorf("%w: %v", shared.ErrInvalidInput, err)
	}

	query := `
		INSERT INTO folders (id, name, cover, created_at) VALUES (?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET name = excluded.name, cover = excluded.cover
	`

	if _, err := db.Exec(query, folder.ID(), folder.Name(), folder.Cover(), folder.CreatedAt()); err != nil {
		return fmt.Errorf("failed to upsert folder: %w", err)
	}

	return nil
}

// Delete removes a folder and every track filed under it in a single
// transaction. Either both disappear or neither does.
func (r *FolderRepository) Delete(id string) error {
	db, err := r.store.ensureOpen()
	if err != nil {
		return err
	}

	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	result, err := tx.Exec("DELETE FROM folders WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("failed to delete folder: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get affected rows: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("%w: folder %s", shared.ErrNotFound, id)
	}

	if _, err := tx.Exec("DELETE FROM tracks WHERE folder_id = ?", id); err != nil {
		return fmt.Errorf("failed to delete folder tracks: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit folder delete: %w", err)
	}

	return nil
}

// List retrieves all folders, newest first. The ordering is part of the
// contract the display layer depends on.
func (r *FolderRepository) List() ([]*models.Folder, error) {
	db, err := r.store.ensureOpen()
	if err != nil {
		return nil, err
	}

	query := `
		SELECT id, name, cover, created_at
		FROM folders
		ORDER BY created_at DESC
	`

	rows, err := db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to query folders: %w", err)
	}
	defer rows.Close()

	var folders []*models.Folder
	for rows.Next() {
		var (
			id        string
			name      string
			cover     []byte
			createdAt time.Time
		)
		if err := rows.Scan(&id, &name, &cover, &createdAt); err != nil {
			return nil, fmt.Errorf("failed to scan folder: %w", err)
		}
		folders = append(folders, hydrateFolder(id, name, cover, createdAt))
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}

	return folders, nil
}

// Count reports the number of folder records without loading cover
// blobs.
func (r *FolderRepository) Count() (int, error) {
	db, err := r.store.ensureOpen()
	if err != nil {
		return 0, err
	}

	var count int
	if err := db.QueryRow("SELECT COUNT(*) FROM folders").Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count folders: %w", err)
	}
	return count, nil
}

// scanFolder scans a single row into a [models.Folder].
func scanFolder(row *sql.Row, key string) (*models.Folder, error) {
	var (
		id        string
		name      string
		cover     []byte
		createdAt time.Time
	)

	err := row.Scan(&id, &name, &cover, &createdAt)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("%w: folder %s", shared.ErrNotFound, key)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan folder: %w", err)
	}

	return hydrateFolder(id, name, cover, createdAt), nil
}

func hydrateFolder(id, name string, cover []byte, createdAt time.Time) *models.Folder {
	folder := models.NewFolder(name, cover)
	folder.SetID(id)
	folder.SetCreatedAt(createdAt)
	return folder
}
