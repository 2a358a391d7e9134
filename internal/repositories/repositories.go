package repositories

import (
	"database/sql"
	"errors"
	"fmt"
	"sync"

	"github.com/mattn/go-sqlite3"
	"github.com/rcavaliericopy-max/salomao/internal/shared"
)

// Store is the handle to the library database. It owns the connection,
// runs migrations on first use and hands out typed repositories.
//
// The zero value is not usable; construct with [NewStore].
type Store struct {
	cfg shared.DatabaseConfig

	once    sync.Once
	db      *sql.DB
	openErr error

	users    *UserRepository
	folders  *FolderRepository
	tracks   *TrackRepository
	settings *SettingRepository
}

// NewStore creates a Store for the database described by cfg. The
// database is not touched until the first operation.
func NewStore(cfg shared.DatabaseConfig) *Store {
	s := &Store{cfg: cfg}
	s.users = &UserRepository{store: s}
	s.folders = &FolderRepository{store: s}
	s.tracks = &TrackRepository{store: s}
	s.settings = &SettingRepository{store: s}
	return s
}

// Open opens the database and applies pending migrations. Repeated calls
// return the result of the first attempt; there is no retry after a
// failed open.
func (s *Store) Open() error {
	s.once.Do(func() {
		db, err := shared.NewDatabase(s.cfg.Path)
		if err != nil {
			s.openErr = err
			return
		}

		if s.cfg.MaxOpenConns > 0 || s.cfg.MaxIdleConns > 0 {
			shared.ConfigureDatabase(db, s.cfg.MaxOpenConns, s.cfg.MaxIdleConns)
		}

		if err := shared.RunMigrations(db); err != nil {
			db.Close()
			s.openErr = fmt.Errorf("failed to run migrations: %w", err)
			return
		}

		s.db = db
	})
	return s.openErr
}

// ensureOpen lazily opens the database and returns the live connection.
func (s *Store) ensureOpen() (*sql.DB, error) {
	if err := s.Open(); err != nil {
		return nil, err
	}
	return s.db, nil
}

// DB exposes the underlying connection for callers that need it directly
// (session storage, health checks). Opens the store if needed.
func (s *Store) DB() (*sql.DB, error) {
	return s.ensureOpen()
}

// Close closes the underlying connection. The store cannot be reopened.
func (s *Store) Close() error {
	if s.db == nil {
		return nil
	}
	return s.db.Close()
}

func (s *Store) Users() *UserRepository       { return s.users }
func (s *Store) Folders() *FolderRepository   { return s.folders }
func (s *Store) Tracks() *TrackRepository     { return s.tracks }
func (s *Store) Settings() *SettingRepository { return s.settings }

// ClearLibrary deletes all tracks and folders in one transaction. Users
// and settings are untouched. Used by the repair flow before reseeding.
func (s *Store) ClearLibrary() error {
	db, err := s.ensureOpen()
	if err != nil {
		return err
	}

	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec("DELETE FROM tracks"); err != nil {
		return fmt.Errorf("failed to clear tracks: %w", err)
	}
	if _, err := tx.Exec("DELETE FROM folders"); err != nil {
		return fmt.Errorf("failed to clear folders: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit clear: %w", err)
	}
	return nil
}

// isConstraintErr reports whether err is a SQLite uniqueness/constraint
// violation, used to map raw driver errors onto [shared.ErrConflict].
func isConstraintErr(err error) bool {
	var sqliteErr sqlite3.Error
	if errors.As(err, &sqliteErr) {
		return sqliteErr.Code == sqlite3.ErrConstraint
	}
	return false
}
