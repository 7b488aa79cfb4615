package download

import (
	"archive/zip"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// zipValid reports whether a file exists and opens as a ZIP archive, so a
// truncated download from an earlier run is re-fetched rather than reused.
func zipValid(path string) bool {
	reader, err := zip.OpenReader(path)
	if err != nil {
		return false
	}
	reader.Close()
	return true
}

// ExtractZIP extracts a ZIP archive into the destination directory and
// returns the extracted paths. Entries escaping the destination are
// rejected.
func ExtractZIP(archivePath string, destination string) ([]string, error) {
	reader, err := zip.OpenReader(archivePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", archivePath, err)
	}
	defer reader.Close()

	var extracted []string
	for _, entry := range reader.File {
		entryPath := filepath.Join(destination, entry.Name)

		// Guard against path traversal via "../" entries.
		if !strings.HasPrefix(entryPath, filepath.Clean(destination)+string(os.PathSeparator)) {
			return nil, fmt.Errorf("illegal path in archive: %s", entry.Name)
		}

		if entry.FileInfo().IsDir() {
			if err := os.MkdirAll(entryPath, 0755); err != nil {
				return nil, fmt.Errorf("failed to create directory %s: %w", entryPath, err)
			}
			continue
		}

		if err := extractZIPEntry(entry, entryPath); err != nil {
			return nil, err
		}
		extracted = append(extracted, entryPath)
	}

	return extracted, nil
}

func extractZIPEntry(entry *zip.File, entryPath string) error {
	if err := os.MkdirAll(filepath.Dir(entryPath), 0755); err != nil {
		return fmt.Errorf("failed to create directory for %s: %w", entryPath, err)
	}

	source, err := entry.Open()
	if err != nil {
		return fmt.Errorf("failed to open archive entry %s: %w", entry.Name, err)
	}
	defer source.Close()

	output, err := os.Create(entryPath)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", entryPath, err)
	}
	defer output.Close()

	if _, err := io.Copy(output, source); err != nil {
		return fmt.Errorf("failed to extract %s: %w", entry.Name, err)
	}
	return nil
}
