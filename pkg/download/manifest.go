package download

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"time"
)

// Record describes one downloaded language/year edition.
type Record struct {
	Language     string    `json:"language"`
	Year         int       `json:"year"`
	URL          string    `json:"url"`
	LocalPath    string    `json:"local_path"`
	SizeBytes    int64     `json:"size_bytes"`
	DownloadedAt time.Time `json:"downloaded_at"`
}

// Key returns the manifest key for a record, e.g. "EN-2014".
func (record *Record) Key() string {
	return fmt.Sprintf("%s-%d", record.Language, record.Year)
}

// Manifest tracks which editions have been downloaded so interrupted runs
// can resume where they stopped.
type Manifest struct {
	Records map[string]*Record `json:"records"`
}

// NewManifest creates an empty manifest.
func NewManifest() *Manifest {
	return &Manifest{Records: make(map[string]*Record)}
}

// LoadManifest reads a manifest from disk. A missing file yields an empty
// manifest, not an error.
func LoadManifest(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return NewManifest(), nil
		}
		return nil, fmt.Errorf("failed to read manifest: %w", err)
	}

	var manifest Manifest
	if err := json.Unmarshal(data, &manifest); err != nil {
		return nil, fmt.Errorf("failed to parse manifest: %w", err)
	}
	if manifest.Records == nil {
		manifest.Records = make(map[string]*Record)
	}
	return &manifest, nil
}

// Save writes the manifest to disk as indented JSON.
func (manifest *Manifest) Save(path string) error {
	data, err := json.MarshalIndent(manifest, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal manifest: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write manifest: %w", err)
	}
	return nil
}

// Record adds or replaces the entry for the record's language and year.
func (manifest *Manifest) Record(record *Record) {
	manifest.Records[record.Key()] = record
}

// Has reports whether a language/year edition has been recorded.
func (manifest *Manifest) Has(language string, year int) bool {
	_, ok := manifest.Records[(&Record{Language: language, Year: year}).Key()]
	return ok
}

// Years returns the recorded years for a language, sorted ascending.
func (manifest *Manifest) Years(language string) []int {
	var years []int
	for _, record := range manifest.Records {
		if record.Language == language {
			years = append(years, record.Year)
		}
	}
	sort.Ints(years)
	return years
}
