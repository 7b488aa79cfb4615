package corpus

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"sync"

	"github.com/coolbeans/formex/pkg/formex"
)

// BuildConfig configures a corpus build. The vocabulary, renderer
// configuration, and classifier are read-only for the duration of a build,
// so documents can be parsed in parallel.
type BuildConfig struct {
	// Workers is the number of parallel document builds. Zero or negative
	// means one worker per CPU.
	Workers int

	// Render configures the text renderer.
	Render formex.RenderConfig

	// Classifier supplies the act-type and CFSP tables; nil uses the
	// defaults.
	Classifier *formex.Classifier
}

// DefaultBuildConfig returns a build configuration with the default
// renderer and classifier.
func DefaultBuildConfig() BuildConfig {
	return BuildConfig{
		Render: formex.DefaultRenderConfig(),
	}
}

// BuildFailure records one skipped document pair.
type BuildFailure struct {
	Path string
	Err  error
}

// BuildReport summarizes a corpus build: per-pair outcomes, the skipped
// pairs, and any identifier collisions.
type BuildReport struct {
	Attempted  int
	Succeeded  int
	Failed     int
	Failures   []BuildFailure
	Duplicates []*DuplicateIdentifierError
}

// Build parses every pair, in parallel, and assembles the corpus in
// discovery order. A failing pair is recorded in the report and never
// aborts its siblings.
//
// Duplicate identifiers are detected at completion: the first-seen document
// is kept, each collision is recorded in the report, and a joined error is
// returned so the caller cannot miss it. The returned corpus is valid
// either way.
func Build(pairs []Pair, config BuildConfig) (*Corpus, *BuildReport, error) {
	workers := config.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	if workers > len(pairs) && len(pairs) > 0 {
		workers = len(pairs)
	}

	// Results are index-addressed so discovery order survives parallel
	// completion.
	documents := make([]*Document, len(pairs))
	failures := make([]error, len(pairs))

	jobs := make(chan int)
	var waitGroup sync.WaitGroup

	for worker := 0; worker < workers; worker++ {
		waitGroup.Add(1)
		go func() {
			defer waitGroup.Done()
			for index := range jobs {
				document, err := BuildDocument(pairs[index], config)
				documents[index] = document
				failures[index] = err
			}
		}()
	}

	for index := range pairs {
		jobs <- index
	}
	close(jobs)
	waitGroup.Wait()

	report := &BuildReport{Attempted: len(pairs)}
	seen := make(map[string]string, len(pairs))
	var kept []*Document
	var duplicateErrs []error

	for index, document := range documents {
		if failures[index] != nil {
			report.Failed++
			report.Failures = append(report.Failures, BuildFailure{
				Path: pairs[index].MetaPath,
				Err:  failures[index],
			})
			continue
		}

		identifier := document.Identifier()
		if firstPath, duplicate := seen[identifier]; duplicate {
			collision := &DuplicateIdentifierError{
				Identifier:    identifier,
				FirstPath:     firstPath,
				DuplicatePath: document.MetaPath,
			}
			report.Duplicates = append(report.Duplicates, collision)
			duplicateErrs = append(duplicateErrs, collision)
			continue
		}

		seen[identifier] = document.MetaPath
		kept = append(kept, document)
		report.Succeeded++
	}

	return New(kept...), report, errors.Join(duplicateErrs...)
}

// BuildDocument parses one metadata/body pair into a Document. It fails
// when the metadata's mandatory identifier is missing or when the body file
// cannot be read; structural anomalies in the body degrade to fallback
// rendering instead.
func BuildDocument(pair Pair, config BuildConfig) (*Document, error) {
	metaFile, err := os.Open(pair.MetaPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open metadata: %w", err)
	}
	meta, err := formex.ExtractMeta(pair.MetaPath, metaFile, config.Classifier)
	metaFile.Close()
	if err != nil {
		return nil, err
	}

	bodyPath := pair.BodyPath
	if bodyPath == "" {
		if meta.MainBody == "" {
			return nil, fmt.Errorf("metadata %s references no body file", pair.MetaPath)
		}
		bodyPath = filepath.Join(filepath.Dir(pair.MetaPath), meta.MainBody)
	}

	bodyFile, err := os.Open(bodyPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open body: %w", err)
	}
	tree, err := formex.ParseTree(bodyFile)
	bodyFile.Close()
	if err != nil {
		return nil, fmt.Errorf("failed to parse body %s: %w", bodyPath, err)
	}

	// Bodies carry their own dates; use the first as the document date
	// when the metadata had none.
	if !meta.DocDate.Valid {
		for _, raw := range formex.InstanceDates(tree) {
			if date := formex.ParseDate(raw); date.Valid {
				meta.DocDate = date
				break
			}
		}
	}

	return &Document{
		Meta:     meta,
		Body:     formex.RenderTree(tree, config.Render),
		MetaPath: pair.MetaPath,
		BodyPath: bodyPath,
	}, nil
}
