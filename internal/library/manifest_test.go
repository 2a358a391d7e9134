package library

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultManifest(t *testing.T) {
	m := DefaultManifest()

	if len(m.Groups) == 0 {
		t.Fatal("expected embedded manifest to declare groups")
	}
	if err := m.Validate(); err != nil {
		t.Errorf("embedded manifest should validate: %v", err)
	}

	for _, group := range m.Groups {
		if len(group.Tracks) == 0 {
			t.Errorf("group %q declares no tracks", group.FolderName)
		}
	}
}

func TestLoadManifest(t *testing.T) {
	t.Run("ValidFile", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "library.toml")
		content := `
[[group]]
folder_name = "Mantras"

[[group.track]]
filename = "mantra-1.mp3"
name = "Mantra 1"
`
		if err := os.WriteFile(path, []byte(content), 0644); err != nil {
			t.Fatalf("failed to write manifest: %v", err)
		}

		m, err := LoadManifest(path)
		if err != nil {
			t.Fatalf("failed to load manifest: %v", err)
		}
		if len(m.Groups) != 1 || m.Groups[0].FolderName != "Mantras" {
			t.Errorf("unexpected manifest %+v", m)
		}
		if len(m.Groups[0].Tracks) != 1 || m.Groups[0].Tracks[0].Name != "Mantra 1" {
			t.Errorf("unexpected tracks %+v", m.Groups[0].Tracks)
		}
	})

	t.Run("MissingFile", func(t *testing.T) {
		if _, err := LoadManifest(filepath.Join(t.TempDir(), "missing.toml")); err == nil {
			t.Error("expected error for missing file")
		}
	})

	t.Run("MissingTrackName", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "library.toml")
		content := `
[[group]]
folder_name = "Mantras"

[[group.track]]
filename = "mantra-1.mp3"
name = ""
`
		if err := os.WriteFile(path, []byte(content), 0644); err != nil {
			t.Fatalf("failed to write manifest: %v", err)
		}

		if _, err := LoadManifest(path); err == nil {
			t.Error("expected validation error for empty track name")
		}
	})

	t.Run("MissingFolderName", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "library.toml")
		if err := os.WriteFile(path, []byte("[[group]]\nfolder_name = \"\"\n"), 0644); err != nil {
			t.Fatalf("failed to write manifest: %v", err)
		}

		if _, err := LoadManifest(path); err == nil {
			t.Error("expected validation error for empty folder name")
		}
	})
}
