package corpus

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/coolbeans/formex/pkg/celex"
)

// FullTextSeparator separates document bodies in the full-text export: a
// fixed run of five newlines, matching the published corpus convention.
const FullTextSeparator = "\n\n\n\n\n"

// metadataHeader is the header row of the metadata table export.
var metadataHeader = []string{
	"identifier",
	"publication_date",
	"document_date",
	"legal_type",
	"title",
	"is_decision",
	"is_regulation",
	"is_cfsp",
	"eli",
}

// ExportFullText writes every document body in corpus order, separated by
// FullTextSeparator. Re-running the export over an unchanged corpus
// produces byte-identical output.
func (corpus *Corpus) ExportFullText(writer io.Writer) error {
	for index, document := range corpus.documents {
		if index > 0 {
			if _, err := io.WriteString(writer, FullTextSeparator); err != nil {
				return fmt.Errorf("failed to write separator: %w", err)
			}
		}
		if _, err := io.WriteString(writer, document.Body); err != nil {
			return fmt.Errorf("failed to write document %s: %w", document.Identifier(), err)
		}
	}
	return nil
}

// ExportMetadataTable writes one CSV row per document (plus a header row)
// with the identifying metadata and classifier flags.
func (corpus *Corpus) ExportMetadataTable(writer io.Writer) error {
	csvWriter := csv.NewWriter(writer)

	if err := csvWriter.Write(metadataHeader); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}

	for _, document := range corpus.documents {
		meta := document.Meta

		eli := ""
		if number, err := celex.Parse(meta.Identifier); err == nil {
			if eliURI, err := number.ELI(); err == nil {
				eli = eliURI.String()
			}
		}

		row := []string{
			meta.Identifier,
			meta.PubDate.String(),
			meta.DocDate.String(),
			string(meta.LegalType),
			meta.Title,
			strconv.FormatBool(meta.Flags.Decision),
			strconv.FormatBool(meta.Flags.Regulation),
			strconv.FormatBool(meta.Flags.CFSP),
			eli,
		}
		if err := csvWriter.Write(row); err != nil {
			return fmt.Errorf("failed to write row for %s: %w", meta.Identifier, err)
		}
	}

	csvWriter.Flush()
	return csvWriter.Error()
}

// MetadataTableString renders the metadata table to a string, mainly for
// diffing and tests.
func (corpus *Corpus) MetadataTableString() (string, error) {
	var builder strings.Builder
	if err := corpus.ExportMetadataTable(&builder); err != nil {
		return "", err
	}
	return builder.String(), nil
}
