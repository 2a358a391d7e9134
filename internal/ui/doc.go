// Package ui implements an interactive terminal browser for the library using bubbletea's Elm architecture.
//
// The TUI provides a two-view workflow:
//  1. [FolderListView] : Browse playlists, newest first, with track counts
//  2. [TrackListView] : Inspect the tracks of one playlist (name, size, added date)
//
// The (view) [Model] implements bubbletea/Elm's standard Init/Update/View pattern.
// Listings are loaded from the repositories in background commands so the
// interface never blocks on the database.
//
// Keyboard navigation uses vim-style bindings (j/k, enter, esc, q) with contextual help displayed via charmbracelet/bubbles/help.
package ui
