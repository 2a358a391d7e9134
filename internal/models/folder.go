package models

import (
	"fmt"
	"strings"
	"time"
)

// Folder represents a playlist: a named grouping of tracks with an
// optional cover image stored alongside the record.
type Folder struct {
	id        string
	name      string
	cover     []byte
	createdAt time.Time
}

// NewFolder creates a Folder with the given display name and optional
// cover image. The ID is assigned by the repository on insert.
func NewFolder(name string, cover []byte) *Folder {
	return &Folder{
		name:      strings.TrimSpace(name),
		cover:     cover,
		createdAt: time.Now(),
	}
}

func (f *Folder) ID() string           { return f.id }
func (f *Folder) Name() string         { return f.name }
func (f *Folder) Cover() []byte        { return f.cover }
func (f *Folder) CreatedAt() time.Time { return f.createdAt }

func (f *Folder) SetID(id string)          { f.id = id }
func (f *Folder) SetName(name string)      { f.name = strings.TrimSpace(name) }
func (f *Folder) SetCover(cover []byte)    { f.cover = cover }
func (f *Folder) SetCreatedAt(t time.Time) { f.createdAt = t }

// HasCover reports whether a cover image is stored for this folder.
func (f *Folder) HasCover() bool { return len(f.cover) > 0 }

// Validate checks required fields.
func (f *Folder) Validate() error {
	if f.name == "" {
		return fmt.Errorf("folder name is required")
	}
	return nil
}

// FolderInfo is the DTO exposed to the CLI/HTTP layers. The cover blob is
// served separately so listings stay small.
type FolderInfo struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	HasCover  bool      `json:"hasCover"`
	CreatedAt time.Time `json:"createdAt"`
}

// Info converts the entity to its DTO form.
func (f *Folder) Info() FolderInfo {
	return FolderInfo{
		ID:        f.id,
		Name:      f.name,
		HasCover:  f.HasCover(),
		CreatedAt: f.createdAt,
	}
}
