package formatter

import (
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/rcavaliericopy-max/salomao/internal/models"
	th "github.com/rcavaliericopy-max/salomao/internal/testing"
)

func testListing() (models.FolderInfo, []models.TrackInfo) {
	createdAt := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)
	folder := models.FolderInfo{
		ID:        "folder1",
		Name:      "Mantras",
		CreatedAt: createdAt,
	}
	tracks := []models.TrackInfo{
		{
			ID:       "track1",
			FolderID: "folder1",
			Name:     "Mantra 1",
			Size:     2048,
			MimeType: "audio/mpeg",
			AddedAt:  createdAt.Add(time.Minute),
		},
		{
			ID:       "track2",
			FolderID: "folder1",
			Name:     "Mantra 2",
			Size:     4096,
			MimeType: "audio/mpeg",
			AddedAt:  createdAt.Add(2 * time.Minute),
		},
	}
	return folder, tracks
}

func TestExporters(t *testing.T) {
	t.Run("ExportToCSV", func(t *testing.T) {
		folder, tracks := testListing()

		data, err := ExportToCSV(folder, tracks)
		if err != nil {
			t.Fatalf("ExportToCSV failed: %v", err)
		}

		output := string(data)
		if !strings.Contains(output, "ID,Name,Size,MimeType,AddedAt") {
			t.Errorf("CSV missing headers, got: %s", output)
		}
		if !strings.Contains(output, "track1") {
			t.Errorf("CSV missing track1 ID")
		}
		if !strings.Contains(output, "Mantra 1") {
			t.Errorf("CSV missing track1 name")
		}
		if !strings.Contains(output, "2048") {
			t.Errorf("CSV missing track1 size")
		}

		lines := strings.Split(strings.TrimSpace(output), "\n")
		if len(lines) != 3 {
			t.Errorf("expected header plus 2 records, got %d lines", len(lines))
		}
	})

	t.Run("ExportToMarkdown", func(t *testing.T) {
		folder, tracks := testListing()

		data, err := ExportToMarkdown(folder, tracks)
		if err != nil {
			t.Fatalf("ExportToMarkdown failed: %v", err)
		}

		output := string(data)
		if !strings.Contains(output, "# Mantras") {
			t.Errorf("markdown missing title, got: %s", output)
		}
		if !strings.Contains(output, "**Tracks**: 2") {
			t.Errorf("markdown missing track count")
		}
		if !strings.Contains(output, "1. Mantra 1 (2.0 KiB)") {
			t.Errorf("markdown missing first track line, got: %s", output)
		}
	})

	t.Run("ExportToText", func(t *testing.T) {
		folder, tracks := testListing()

		data, err := ExportToText(folder, tracks)
		if err != nil {
			t.Fatalf("ExportToText failed: %v", err)
		}

		output := string(data)
		if !strings.Contains(output, "Mantras (2 tracks)") {
			t.Errorf("text missing folder line, got: %s", output)
		}
		if !strings.Contains(output, "Mantra 2") {
			t.Errorf("text missing second track")
		}
	})

	t.Run("EmptyFolder", func(t *testing.T) {
		folder, _ := testListing()

		data, err := ExportToText(folder, nil)
		if err != nil {
			t.Fatalf("ExportToText failed: %v", err)
		}
		if !strings.Contains(string(data), "(0 tracks)") {
			t.Errorf("expected zero track count, got: %s", data)
		}
	})
}

func TestWriteExport(t *testing.T) {
	path := filepath.Join(t.TempDir(), "exports", "mantras.csv")

	if err := WriteExport(path, []byte("ID,Name\n")); err != nil {
		t.Fatalf("WriteExport failed: %v", err)
	}

	th.AssertFileExists(t, path)
	if content := th.MustReadFile(t, path); content != "ID,Name\n" {
		t.Errorf("unexpected file content: %q", content)
	}
}

func TestFormatBytes(t *testing.T) {
	cases := []struct {
		n    int
		want string
	}{
		{0, "0 B"},
		{512, "512 B"},
		{2048, "2.0 KiB"},
		{5 << 20, "5.0 MiB"},
	}

	for _, tc := range cases {
		if got := FormatBytes(tc.n); got != tc.want {
			t.Errorf("FormatBytes(%d) = %q, want %q", tc.n, got, tc.want)
		}
	}
}
