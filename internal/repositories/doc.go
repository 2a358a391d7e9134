// Package repositories provides the persistence layer for all model types.
//
// The entry point is [Store], an explicit handle over the SQLite database.
// Opening is lazy and idempotent: the first operation on any repository
// opens the database, applies pending migrations and configures the
// connection pool; later calls reuse the same handle. A failed open is
// fatal for the session and is returned unchanged on every subsequent
// call.
//
// Each repository implements the CRUD surface for one entity type:
//
//   - [UserRepository] : accounts, unique by email
//   - [FolderRepository] : playlists, deletion cascades to contained tracks
//   - [TrackRepository] : audio assets, indexed by folder for cascade and listing
//   - [SettingRepository] : opaque key to blob values
//
// Mutations run inside a single transaction per call so partial writes are
// never observed. Orderings are part of the contract: folders list
// newest-first, tracks oldest-first.
package repositories
