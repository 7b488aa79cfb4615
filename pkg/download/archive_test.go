package download

import (
	"archive/zip"
	"bytes"
	"os"
	"path/filepath"
	"testing"
)

// buildZIP assembles an in-memory ZIP from name/content pairs.
func buildZIP(t *testing.T, entries map[string][]byte) []byte {
	t.Helper()

	var buffer bytes.Buffer
	writer := zip.NewWriter(&buffer)
	for name, content := range entries {
		entry, err := writer.Create(name)
		if err != nil {
			t.Fatal(err)
		}
		if _, err := entry.Write(content); err != nil {
			t.Fatal(err)
		}
	}
	if err := writer.Close(); err != nil {
		t.Fatal(err)
	}
	return buffer.Bytes()
}

func writeZIP(t *testing.T, path string, entries map[string][]byte) {
	t.Helper()
	if err := os.WriteFile(path, buildZIP(t, entries), 0644); err != nil {
		t.Fatal(err)
	}
}

func TestExtractZIP(t *testing.T) {
	dir := t.TempDir()
	archivePath := filepath.Join(dir, "issue.zip")
	writeZIP(t, archivePath, map[string][]byte{
		"L_2014209EN.01003401.doc.xml":    []byte("<PUBLICATION/>"),
		"nested/L_2014209EN.01003401.xml": []byte("<ACT/>"),
	})

	destination := filepath.Join(dir, "out")
	extracted, err := ExtractZIP(archivePath, destination)
	if err != nil {
		t.Fatalf("ExtractZIP() error = %v", err)
	}
	if len(extracted) != 2 {
		t.Fatalf("extracted %d files, want 2", len(extracted))
	}

	content, err := os.ReadFile(filepath.Join(destination, "L_2014209EN.01003401.doc.xml"))
	if err != nil {
		t.Fatal(err)
	}
	if string(content) != "<PUBLICATION/>" {
		t.Errorf("extracted content = %q", content)
	}
	if _, err := os.Stat(filepath.Join(destination, "nested", "L_2014209EN.01003401.xml")); err != nil {
		t.Errorf("nested entry not extracted: %v", err)
	}
}

func TestExtractZIPRejectsTraversal(t *testing.T) {
	dir := t.TempDir()
	archivePath := filepath.Join(dir, "evil.zip")
	writeZIP(t, archivePath, map[string][]byte{
		"../escape.txt": []byte("nope"),
	})

	if _, err := ExtractZIP(archivePath, filepath.Join(dir, "out")); err == nil {
		t.Error("ExtractZIP() error = nil, want traversal rejection")
	}
}

func TestZipValid(t *testing.T) {
	dir := t.TempDir()

	goodPath := filepath.Join(dir, "good.zip")
	writeZIP(t, goodPath, map[string][]byte{"a.txt": []byte("a")})
	if !zipValid(goodPath) {
		t.Error("zipValid(good archive) = false")
	}

	badPath := filepath.Join(dir, "bad.zip")
	if err := os.WriteFile(badPath, []byte("truncated"), 0644); err != nil {
		t.Fatal(err)
	}
	if zipValid(badPath) {
		t.Error("zipValid(truncated file) = true")
	}

	if zipValid(filepath.Join(dir, "absent.zip")) {
		t.Error("zipValid(missing file) = true")
	}
}
