// Package discover locates the metadata files of a journal corpus, either
// by walking a data directory or by reading an explicit manifest of paths.
package discover

import (
	"bufio"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/coolbeans/formex/pkg/corpus"
)

// MetaFileSuffix is the file-name suffix of journal metadata documents.
const MetaFileSuffix = ".doc.xml"

// ListMetaFiles returns the metadata files under a data root. When the root
// is a directory it is walked recursively for *.doc.xml files in sorted
// (deterministic) order; when it is a regular file it is read as a manifest
// with one path per line.
func ListMetaFiles(dataRoot string) ([]string, error) {
	info, err := os.Stat(dataRoot)
	if err != nil {
		return nil, fmt.Errorf("data root %s: %w", dataRoot, err)
	}

	if info.IsDir() {
		return walkMetaFiles(dataRoot)
	}
	return ReadManifest(dataRoot)
}

// ReadManifest reads a manifest file listing one metadata path per line.
// Blank lines and lines starting with '#' are skipped.
func ReadManifest(path string) ([]string, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open manifest: %w", err)
	}
	defer file.Close()

	var paths []string
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		paths = append(paths, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read manifest: %w", err)
	}
	return paths, nil
}

// walkMetaFiles collects *.doc.xml files below the root. Directory naming
// in the journal archive is chronological, so the sorted order doubles as
// chronological discovery order.
func walkMetaFiles(root string) ([]string, error) {
	var paths []string

	err := filepath.WalkDir(root, func(path string, entry fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !entry.IsDir() && strings.HasSuffix(entry.Name(), MetaFileSuffix) {
			paths = append(paths, path)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to walk %s: %w", root, err)
	}

	sort.Strings(paths)
	return paths, nil
}

// Pairs wraps metadata paths as build pairs. Body files are resolved later
// from each metadata file's main publication reference.
func Pairs(metaPaths []string) []corpus.Pair {
	pairs := make([]corpus.Pair, len(metaPaths))
	for index, path := range metaPaths {
		pairs[index] = corpus.Pair{MetaPath: path}
	}
	return pairs
}
