// Package corpus builds and holds an ordered collection of parsed Official
// Journal documents and exports it as plain text or tabular metadata.
package corpus

import (
	"fmt"

	"github.com/coolbeans/formex/pkg/formex"
)

// Document is one parsed journal document: its metadata record, the
// rendered plain-text body, and the source paths for traceability.
// Documents are read-only once built.
type Document struct {
	Meta     *formex.Meta
	Body     string
	MetaPath string
	BodyPath string
}

// Identifier returns the document's unique identifier.
func (document *Document) Identifier() string {
	return document.Meta.Identifier
}

// Pair is one document's source files: the metadata file and, optionally,
// an explicit body file. When BodyPath is empty the body is resolved from
// the metadata's main publication reference.
type Pair struct {
	MetaPath string
	BodyPath string
}

// DuplicateIdentifierError reports two successfully built documents sharing
// an identifier. The build keeps the first-seen document and surfaces the
// collision, since it indicates duplicate sources or a parser defect.
type DuplicateIdentifierError struct {
	Identifier    string
	FirstPath     string
	DuplicatePath string
}

func (err *DuplicateIdentifierError) Error() string {
	return fmt.Sprintf("duplicate identifier %q: %s already provided by %s",
		err.Identifier, err.DuplicatePath, err.FirstPath)
}
