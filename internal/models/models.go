package models

import (
	"time"
)

// RootFolderID is the sentinel folder id for unfiled tracks.
const RootFolderID = "root"

// Model defines the base interface for all persistent models in the audio library service.
// Implementations include User, Folder, AudioTrack.
type Model interface {
	ID() string           // ID returns the unique identifier for this model
	CreatedAt() time.Time // CreatedAt returns when this model was created
	Validate() error      // Validate checks if the model's data is valid and returns an error if not
}

// Repository defines the interface for data access operations.
// Implementations handle database interactions for specific model types.
type Repository[T Model] interface {
	Create(model T) error     // Create inserts a new model, failing if the primary key exists
	Get(id string) (T, error) // Get retrieves a model by its ID
	Put(model T) error        // Put upserts a model (insert or replace)
	Delete(id string) error   // Delete removes a model from the database by its ID
	List() ([]T, error)       // List retrieves all models in the store's display order
}
