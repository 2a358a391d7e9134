package models

import (
	"fmt"
	"strings"
	"time"
)

// AudioTrack represents a single audio asset. The binary content lives in
// the same record as the metadata so both are written and deleted
// together. A track belongs to a [Folder] or to the root (unfiled) group.
type AudioTrack struct {
	id       string
	folderID string
	name     string
	blob     []byte
	mimeType string
	addedAt  time.Time
}

// NewAudioTrack creates an AudioTrack filed under the given folder.
// Pass [RootFolderID] for unfiled tracks. The ID is assigned by the
// repository on insert.
func NewAudioTrack(folderID, name string, blob []byte, mimeType string) *AudioTrack {
	if folderID == "" {
		folderID = RootFolderID
	}
	return &AudioTrack{
		folderID: folderID,
		name:     strings.TrimSpace(name),
		blob:     blob,
		mimeType: mimeType,
		addedAt:  time.Now(),
	}
}

func (t *AudioTrack) ID() string           { return t.id }
func (t *AudioTrack) FolderID() string     { return t.folderID }
func (t *AudioTrack) Name() string         { return t.name }
func (t *AudioTrack) Blob() []byte         { return t.blob }
func (t *AudioTrack) MimeType() string     { return t.mimeType }
func (t *AudioTrack) AddedAt() time.Time   { return t.addedAt }
func (t *AudioTrack) CreatedAt() time.Time { return t.addedAt }

func (t *AudioTrack) SetID(id string)             { t.id = id }
func (t *AudioTrack) SetFolderID(folderID string) { t.folderID = folderID }
func (t *AudioTrack) SetAddedAt(ts time.Time)     { t.addedAt = ts }

// Validate checks required fields.
func (t *AudioTrack) Validate() error {
	if t.name == "" {
		return fmt.Errorf("track name is required")
	}
	if t.folderID == "" {
		return fmt.Errorf("track folder id is required")
	}
	if len(t.blob) == 0 {
		return fmt.Errorf("track content is empty")
	}
	return nil
}

// TrackInfo is the DTO exposed to the CLI/HTTP layers. The audio payload
// is streamed separately.
type TrackInfo struct {
	ID       string    `json:"id"`
	FolderID string    `json:"folderId"`
	Name     string    `json:"name"`
	Size     int       `json:"size"`
	MimeType string    `json:"mimeType"`
	AddedAt  time.Time `json:"addedAt"`
}

// Info converts the entity to its DTO form.
func (t *AudioTrack) Info() TrackInfo {
	return TrackInfo{
		ID:       t.id,
		FolderID: t.folderID,
		Name:     t.name,
		Size:     len(t.blob),
		MimeType: t.mimeType,
		AddedAt:  t.addedAt,
	}
}
