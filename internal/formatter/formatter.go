// package formatter provides functions to export folder listings to various formats (CSV, Markdown, plain text)
package formatter

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/rcavaliericopy-max/salomao/internal/models"
)

const timeLayout = "2006-01-02 15:04"

// ExportToCSV converts a folder listing to CSV format with columns: ID, Name, Size, MimeType, AddedAt
func ExportToCSV(folder models.FolderInfo, tracks []models.TrackInfo) ([]byte, error) {
	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)

	headers := []string{"ID", "Name", "Size", "MimeType", "AddedAt"}
	if err := writer.Write(headers); err != nil {
		return nil, fmt.Errorf("failed to write CSV headers: %w", err)
	}

	for _, track := range tracks {
		record := []string{
			track.ID,
			track.Name,
			strconv.Itoa(track.Size),
			track.MimeType,
			track.AddedAt.Format(time.RFC3339),
		}
		if err := writer.Write(record); err != nil {
			return nil, fmt.Errorf("failed to write CSV record: %w", err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, fmt.Errorf("CSV writer error: %w", err)
	}

	return buf.Bytes(), nil
}

// ExportToMarkdown converts a folder listing to Markdown format
func ExportToMarkdown(folder models.FolderInfo, tracks []models.TrackInfo) ([]byte, error) {
	var buf bytes.Buffer

	buf.WriteString(fmt.Sprintf("# %s\n\n", folder.Name))
	buf.WriteString(fmt.Sprintf("**Created**: %s\n", folder.CreatedAt.Format(timeLayout)))
	buf.WriteString(fmt.Sprintf("**Tracks**: %d\n\n", len(tracks)))

	buf.WriteString("## Tracks\n\n")
	for i, track := range tracks {
		buf.WriteString(fmt.Sprintf("%d. %s (%s) [%s]\n", i+1, track.Name, FormatBytes(track.Size), track.AddedAt.Format(timeLayout)))
	}

	return buf.Bytes(), nil
}

// ExportToText converts a folder listing to plain text format
func ExportToText(folder models.FolderInfo, tracks []models.TrackInfo) ([]byte, error) {
	var buf bytes.Buffer

	buf.WriteString(fmt.Sprintf("%s (%d tracks)\n", folder.Name, len(tracks)))
	for i, track := range tracks {
		buf.WriteString(fmt.Sprintf("%3d. %-40s %10s  %s\n", i+1, track.Name, FormatBytes(track.Size), track.AddedAt.Format(timeLayout)))
	}

	return buf.Bytes(), nil
}

// WriteExport writes exported data to the given path, creating parent directories as needed.
func WriteExport(path string, data []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create export directory: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write export file: %w", err)
	}
	return nil
}

// FormatBytes renders a byte count as a human-readable size.
func FormatBytes(n int) string {
	const unit = 1024
	if n < unit {
		return fmt.Sprintf("%d B", n)
	}
	div, exp := int64(unit), 0
	for m := int64(n) / unit; m >= unit; m /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %ciB", float64(n)/float64(div), "KMGTPE"[exp])
}
