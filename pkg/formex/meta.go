package formex

import (
	"encoding/xml"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/coolbeans/formex/pkg/celex"
)

// Meta is the typed metadata record of one document. It is created once per
// source file pair and immutable afterwards. The identifier is the only
// mandatory field; everything else degrades to empty or sentinel values.
type Meta struct {
	// Identifier is the CELEX-like document identifier, unique within a
	// corpus.
	Identifier string

	// SourcePath is the metadata file the record was extracted from.
	SourcePath string

	// Title is the document title, possibly empty.
	Title string

	// Authors lists the authoring bodies.
	Authors []string

	// Collection is the journal collection code (e.g. "L").
	Collection string

	// Domain is the subject-matter domain code (e.g. "CFSP").
	Domain string

	// LegalValue is the raw legal-value marker (e.g. "DEC_IMPL").
	LegalValue string

	// LegalType is the derived legal-act type.
	LegalType LegalType

	// PubDate is the publication date, DocDate the document date. Either
	// may be the unknown sentinel.
	PubDate Date
	DocDate Date

	// MainBody is the body file referenced by the main publication,
	// relative to the metadata file. SubBodies lists additional body files.
	MainBody  string
	SubBodies []string

	// Flags holds the derived boolean classifiers.
	Flags Classifiers
}

// Classifiers are the derived boolean classifiers of a document.
type Classifiers struct {
	Decision   bool
	Regulation bool
	CFSP       bool
}

// MetadataError reports that the mandatory identifier of a metadata file is
// absent or unparsable. It is the only error the extractor returns.
type MetadataError struct {
	Path   string
	Reason string
}

func (err *MetadataError) Error() string {
	return fmt.Sprintf("metadata %s: %s", err.Path, err.Reason)
}

// metadata tags of interest. Like the tag vocabulary for structure, this is
// the single place metadata field spellings are reconciled.
var (
	identifierTags = map[string]bool{"NO.CELEX": true, "LINK.CELEX": true}
	docDateTags    = map[string]bool{"DATE.ADOPT": true, "DATE.SIGN": true, "DATE.DOC": true}
)

// ExtractMeta parses a Formex metadata document in a single streaming pass
// and returns the typed Meta record. The classifier supplies the act-type
// and CFSP tables; pass nil for the defaults.
//
// Extraction fails only when no identifier can be determined: neither an
// identifier element in the document nor a usable file-name stem. Every
// other missing or malformed field degrades silently.
func ExtractMeta(path string, reader io.Reader, classifier *Classifier) (*Meta, error) {
	if classifier == nil {
		classifier = DefaultClassifier()
	}

	meta := &Meta{SourcePath: path}

	decoder := xml.NewDecoder(reader)
	decoder.Strict = false
	decoder.CharsetReader = charsetReader

	var (
		stack      []string
		text       strings.Builder
		titleDepth int
		title      strings.Builder
	)

	parent := func() string {
		if len(stack) < 2 {
			return ""
		}
		return stack[len(stack)-2]
	}

	for {
		token, err := decoder.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			// A truncated or malformed tail loses the remaining fields
			// but not the document; only a missing identifier is fatal.
			break
		}

		switch t := token.(type) {
		case xml.StartElement:
			tag := strings.ToUpper(t.Name.Local)
			stack = append(stack, tag)
			text.Reset()

			if tag == "TITLE" && titleDepth == 0 && contains(stack, "PAPER") {
				titleDepth = len(stack)
			}
			if tag == "REF.PHYS" {
				for _, attr := range t.Attr {
					if strings.EqualFold(attr.Name.Local, "FILE") {
						switch parent() {
						case "DOC.MAIN.PUB":
							meta.MainBody = attr.Value
						case "DOC.SUB.PUB":
							meta.SubBodies = append(meta.SubBodies, attr.Value)
						}
					}
				}
			}

		case xml.CharData:
			text.Write(t)
			if titleDepth > 0 {
				title.Write(t)
			}

		case xml.EndElement:
			if len(stack) == 0 {
				continue
			}
			tag := stack[len(stack)-1]
			value := CleanText(text.String())

			switch {
			case tag == "AUTHOR" && value != "":
				meta.Authors = append(meta.Authors, value)
			case tag == "COLL":
				meta.Collection = value
			case tag == "COM":
				meta.Domain = value
			case tag == "LEGAL.VALUE" && parent() == "DOC.MAIN.PUB":
				meta.LegalValue = value
			case identifierTags[tag] && meta.Identifier == "":
				meta.Identifier = value
			case tag == "DATE" && parent() == "BIB.INSTANCE" && !meta.PubDate.Valid:
				meta.PubDate = ParseDate(value)
			case docDateTags[tag] && !meta.DocDate.Valid:
				meta.DocDate = ParseDate(value)
			}

			if titleDepth == len(stack) {
				meta.Title = CleanText(title.String())
				titleDepth = 0
			}
			stack = stack[:len(stack)-1]
			text.Reset()
		}
	}

	if meta.Identifier == "" {
		meta.Identifier = identifierFromPath(path)
	}
	if meta.Identifier == "" {
		return nil, &MetadataError{Path: path, Reason: "no identifier"}
	}

	meta.LegalType = classifier.ActType(meta.LegalValue)
	if meta.LegalType == LegalOther {
		// The identifier's CELEX type letter is the last resort.
		if number, err := celex.Parse(meta.Identifier); err == nil {
			meta.LegalType = legalTypeFromCELEX(number.TypeCode)
		}
	}

	meta.Flags = Classifiers{
		Decision:   meta.LegalType == LegalDecision,
		Regulation: meta.LegalType == LegalRegulation,
		CFSP:       classifier.IsCFSP(meta),
	}

	return meta, nil
}

// identifierFromPath derives the identifier from an Official Journal file
// name, e.g. "L_2009009EN.01005101.doc.xml" -> "L_2009009EN.01005101".
func identifierFromPath(path string) string {
	name := filepath.Base(path)
	name = strings.TrimSuffix(name, ".xml")
	name = strings.TrimSuffix(name, ".doc")
	if name == "." || name == string(filepath.Separator) {
		return ""
	}
	return name
}

// legalTypeFromCELEX maps a CELEX type letter to a legal-act type.
func legalTypeFromCELEX(code celex.TypeCode) LegalType {
	switch code {
	case celex.TypeRegulation:
		return LegalRegulation
	case celex.TypeDirective:
		return LegalDirective
	case celex.TypeDecision:
		return LegalDecision
	case celex.TypeRecommendation:
		return LegalRecommendation
	case celex.TypeOpinion:
		return LegalOpinion
	default:
		return LegalOther
	}
}

func contains(stack []string, tag string) bool {
	for _, element := range stack {
		if element == tag {
			return true
		}
	}
	return false
}
