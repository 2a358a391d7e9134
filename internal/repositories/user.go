package repositories

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/rcavaliericopy-max/salomao/internal/models"
	"github.com/rcavaliericopy-max/salomao/internal/shared"
)

// UserRepository implements [models.Repository] for [models.User] persistence.
type UserRepository struct {
	store *Store
}

// Create inserts a new user. A missing ID is generated. Fails with
// [shared.ErrEmailTaken] when the email is already registered and
// [shared.ErrConflict] when the primary key exists.
func (r *UserRepository) Create(user *models.User) error {
	db, err := r.store.ensureOpen()
	if err != nil {
		return err
	}

	if user.ID() == "" {
		user.SetID(shared.GenerateID())
	}

	if err := user.Validate(); err != nil {
		return fmt.Errorf("%w: %v", shared.ErrInvalidInput, err)
	}

	if _, err := r.GetByEmail(user.Email()); err == nil {
		return fmt.Errorf("%w: %s", shared.ErrEmailTaken, user.Email())
	}

	query := `
		INSERT INTO users (id, email, name, password, role, created_at) VALUES (?, ?, ?, ?, ?, ?)
	`

	_, err = db.Exec(query, user.ID(), user.Email(), user.Name(), user.Password(), string(user.Role()), user.CreatedAt())
	if err != nil {
		if isConstraintErr(err) {
			return fmt.Errorf("%w: user %s", shared.ErrConflict, user.ID())
		}
		return fmt.Errorf("failed to insert user: %w", err)
	}

	return nil
}

// Get retrieves a user by ID.
func (r *UserRepository) Get(id string) (*models.User, error) {
	db, err := r.store.ensureOpen()
	if err != nil {
		return nil, err
	}

	query := `
		SELECT id, email, name, password, role, created_at
		FROM users
		WHERE id = ?
	`

	return scanUser(db.QueryRow(query, id), id)
}

// GetByEmail retrieves a user through the unique email index.
func (r *UserRepository) GetByEmail(email string) (*models.User, error) {
	db, err := r.store.ensureOpen()
	if err != nil {
		return nil, err
	}

	query := `
		SELECT id, email, name, password, role, created_at
		FROM users
		WHERE email = ?
	`

	return scanUser(db.QueryRow(query, email), email)
}

// Put upserts a user record by primary key.
func (r *UserRepository) Put(user *models.User) error {
	db, err := r.store.ensureOpen()
	if err != nil {
		return err
	}

	if err := user.Validate(); err != nil {
		return fmt.Errorf("%w: %v", shared.ErrInvalidInput, err)
	}

	query := `
		INSERT INTO users (id, email, name, password, role, created_at) VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET email = excluded.email, name = excluded.name,
			password = excluded.password, role = excluded.role
	`

	if _, err := db.Exec(query, user.ID(), user.Email(), user.Name(), user.Password(), string(user.Role()), user.CreatedAt()); err != nil {
		if isConstraintErr(err) {
			return fmt.Errorf("%w: %s", shared.ErrEmailTaken, user.Email())
		}
		return fmt.Errorf("failed to upsert user: %w", err)
	}

	return nil
}

// Delete removes a user by ID.
func (r *UserRepository) Delete(id string) error {
	db, err := r.store.ensureOpen()
	if err != nil {
		return err
	}

	result, err := db.Exec("DELETE FROM users WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("failed to delete user: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get affected rows: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("%w: user %s", shared.ErrNotFound, id)
	}

	return nil
}

// List retrieves all users ordered by signup time.
func (r *UserRepository) List() ([]*models.User, error) {
	db, err := r.store.ensureOpen()
	if err != nil {
		return nil, err
	}

	query := `
		SELECT id, email, name, password, role, created_at
		FROM users
		ORDER BY created_at ASC
	`

	rows, err := db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to query users: %w", err)
	}
	defer rows.Close()

	var users []*models.User
	for rows.Next() {
		var (
			id        string
			email     string
			name      string
			password  string
			role      string
			createdAt time.Time
		)
		if err := rows.Scan(&id, &email, &name, &password, &role, &createdAt); err != nil {
			return nil, fmt.Errorf("failed to scan user: %w", err)
		}
		users = append(users, hydrateUser(id, email, name, password, role, createdAt))
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}

	return users, nil
}

// scanUser scans a single row into a [models.User].
func scanUser(row *sql.Row, key string) (*models.User, error) {
	var (
		id        string
		email     string
		name      string
		password  string
		role      string
		createdAt time.Time
	)

	err := row.Scan(&id, &email, &name, &password, &role, &createdAt)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("%w: user %s", shared.ErrUserNotFound, key)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan user: %w", err)
	}

	return hydrateUser(id, email, name, password, role, createdAt), nil
}

func hydrateUser(id, email, name, password, role string, createdAt time.Time) *models.User {
	user := models.NewUser(email, name, password, models.Role(role))
	user.SetID(id)
	user.SetCreatedAt(createdAt)
	return user
}
