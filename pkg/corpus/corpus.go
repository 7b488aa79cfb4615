package corpus

import (
	"github.com/samber/lo"
)

// Corpus is an ordered sequence of documents, insertion order equal to
// discovery order. The corpus never mutates itself after a build; Filter is
// the only mutation and is driven by the caller.
type Corpus struct {
	documents []*Document
}

// New creates a corpus over the given documents, in order.
func New(documents ...*Document) *Corpus {
	return &Corpus{documents: documents}
}

// Len returns the number of documents.
func (corpus *Corpus) Len() int {
	return len(corpus.documents)
}

// At returns the document at position i.
func (corpus *Corpus) At(i int) *Document {
	return corpus.documents[i]
}

// Documents returns the documents in corpus order. The slice is a copy; the
// underlying storage is never aliased out.
func (corpus *Corpus) Documents() []*Document {
	documents := make([]*Document, len(corpus.documents))
	copy(documents, corpus.documents)
	return documents
}

// Identifiers returns the document identifiers in corpus order.
func (corpus *Corpus) Identifiers() []string {
	return lo.Map(corpus.documents, func(document *Document, _ int) string {
		return document.Identifier()
	})
}

// Filter replaces the corpus contents with the documents satisfying the
// predicate, preserving order. A predicate matching everything leaves the
// corpus unchanged.
func (corpus *Corpus) Filter(keep func(*Document) bool) {
	corpus.documents = lo.Filter(corpus.documents, func(document *Document, _ int) bool {
		return keep(document)
	})
}
