// Package models defines domain entities and persistence interfaces for the salomao audio library.
//
// The package contains two categories of types:
//
// 1. Data Transfer Objects (DTOs): Lightweight structs handed to the CLI/HTTP layers
//   - [FolderInfo] : Folder metadata without the cover payload
//   - [TrackInfo] : Track metadata without the audio payload
//
// 2. Persistent Entities: Database-backed records
//   - [User] : Accounts with a role (admin or user) gating mutations
//   - [Folder] : Named playlists, optionally carrying a cover image blob
//   - [AudioTrack] : Audio assets with a display name and in-row binary content
//
// Settings are stored as raw key to blob pairs and have no entity type here.
//
// All persistent entities implement the Model interface providing ID access, creation timestamps and validation.
// The Repository[T] interface defines the CRUD surface repositories implement for each entity type.
package models
