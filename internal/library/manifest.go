// Package library implements seeding: bringing the store from an empty or
// partial state to match a statically configured manifest of folders and
// bundled audio tracks, without duplicating records and without letting a
// single broken asset abort the batch.
package library

import (
	_ "embed"
	"fmt"
	"os"
	"strings"

	"github.com/BurntSushi/toml"
)

//go:embed library.toml
var defaultManifest []byte

// Manifest is the ordered list of folder groups the seeder ensures exist.
// It is configuration, not code: deployments override it with a TOML file.
type Manifest struct {
	Groups []Group `toml:"group"`
}

// Group declares one folder and the bundled tracks filed under it.
type Group struct {
	FolderName string  `toml:"folder_name"`
	Tracks     []Entry `toml:"track"`
}

// Entry declares one bundled track: the asset filename under the audio
// directory and the display name shown in the player.
type Entry struct {
	Filename string `toml:"filename"`
	Name     string `toml:"name"`
}

// LoadManifest reads and parses a manifest TOML file from the specified path.
func LoadManifest(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read manifest file: %w", err)
	}

	var m Manifest
	if err := toml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("failed to parse manifest: %w", err)
	}

	if err := m.Validate(); err != nil {
		return nil, err
	}

	return &m, nil
}

// DefaultManifest returns the embedded bundled-library manifest.
func DefaultManifest() *Manifest {
	var m Manifest
	if err := toml.Unmarshal(defaultManifest, &m); err != nil {
		panic(fmt.Sprintf("failed to parse embedded default manifest: %v", err))
	}
	return &m
}

// Validate checks that every group and entry carries the required names.
func (m *Manifest) Validate() error {
	for i, group := range m.Groups {
		if strings.TrimSpace(group.FolderName) == "" {
			return fmt.Errorf("manifest group %d is missing folder_name", i)
		}
		for j, entry := range group.Tracks {
			if strings.TrimSpace(entry.Filename) == "" {
				return fmt.Errorf("manifest group %q track %d is missing filename", group.FolderName, j)
			}
			if strings.TrimSpace(entry.Name) == "" {
				return fmt.Errorf("manifest group %q track %d is missing name", group.FolderName, j)
			}
		}
	}
	return nil
}
