// Package formex parses EU Official Journal documents in the Formex XML
// markup and turns them into typed metadata records plus a stable,
// human-readable plain-text body.
package formex

import "strings"

// Role is the semantic role of a Formex element. Every tag name maps to
// exactly one role; spellings that drifted across the 2004-2019 journal
// schemas are reconciled here so the walker stays version-agnostic.
type Role int

const (
	// RoleUnknown is the fallback for unrecognized tags. The walker
	// renders their text content inline instead of failing.
	RoleUnknown Role = iota

	// RoleTitle is a title container; nesting depth within these
	// determines heading level.
	RoleTitle

	// RoleHeading is heading text inside a title container.
	RoleHeading

	// RoleParagraph is a prose block rendered on its own line(s).
	RoleParagraph

	// RoleList is a list wrapper; it emits nothing itself.
	RoleList

	// RoleListItem is a single list entry.
	RoleListItem

	// RoleTable is a table wrapper.
	RoleTable

	// RoleTableRow is a table row collecting cell children.
	RoleTableRow

	// RoleTableCell is a cell within a table row.
	RoleTableCell

	// RoleNote is a footnote or margin note.
	RoleNote

	// RoleQuotation wraps quoted passages.
	RoleQuotation

	// RoleSignature wraps signature blocks at the end of an act.
	RoleSignature

	// RoleEnacting marks the enacting-terms section of an act.
	RoleEnacting

	// RoleContainer is a purely structural element: recurse, emit nothing.
	RoleContainer

	// RoleInline is inline markup (emphasis, dates, numbering) whose text
	// is preserved but whose formatting is ignored.
	RoleInline

	// RoleSkip is an element whose subtree carries no body prose
	// (bibliographic instance data, tables of contents).
	RoleSkip
)

// String returns a short name for the role.
func (role Role) String() string {
	switch role {
	case RoleTitle:
		return "title"
	case RoleHeading:
		return "heading"
	case RoleParagraph:
		return "paragraph"
	case RoleList:
		return "list"
	case RoleListItem:
		return "list-item"
	case RoleTable:
		return "table"
	case RoleTableRow:
		return "table-row"
	case RoleTableCell:
		return "table-cell"
	case RoleNote:
		return "note"
	case RoleQuotation:
		return "quotation"
	case RoleSignature:
		return "signature"
	case RoleEnacting:
		return "enacting-terms"
	case RoleContainer:
		return "container"
	case RoleInline:
		return "inline"
	case RoleSkip:
		return "skip"
	default:
		return "unknown"
	}
}

// tagRoles is the single place where Formex tag spellings are assigned
// semantic roles.
var tagRoles = map[string]Role{
	// Title containers.
	"TITLE": RoleTitle,

	// Heading text.
	"TI":      RoleHeading,
	"STI":     RoleHeading,
	"TI.ART":  RoleHeading,
	"STI.ART": RoleHeading,

	// Prose blocks. VISA lines carry the legal bases cited in a preamble.
	"P":      RoleParagraph,
	"ALINEA": RoleParagraph,
	"TXT":    RoleParagraph,
	"VISA":   RoleParagraph,

	// Lists.
	"LIST":       RoleList,
	"DLIST":      RoleList,
	"ITEM":       RoleListItem,
	"DLIST.ITEM": RoleListItem,
	"NP":         RoleListItem,

	// Tables.
	"TBL":    RoleTable,
	"GR.TBL": RoleTable,
	"CORPUS": RoleTable,
	"ROW":    RoleTableRow,
	"CELL":   RoleTableCell,
	"MARGIN": RoleTableCell,

	// Notes.
	"NOTE": RoleNote,

	// Quotations and signatures.
	"QUOT.S":    RoleQuotation,
	"SIGNATURE": RoleSignature,
	"SIGNATORY": RoleSignature,

	// Enacting terms.
	"ENACTING.TERMS": RoleEnacting,

	// Structural containers.
	"ACT":            RoleContainer,
	"GENERAL":        RoleContainer,
	"DOC":            RoleContainer,
	"CONS.DOC":       RoleContainer,
	"ANNEX":          RoleContainer,
	"ARTICLE":        RoleContainer,
	"PARAG":          RoleContainer,
	"SUBDIV":         RoleContainer,
	"DIVISION":       RoleContainer,
	"PREAMBLE":       RoleContainer,
	"PREAMBLE.INIT":  RoleContainer,
	"PREAMBLE.FINAL": RoleContainer,
	"GR.VISA":        RoleContainer,
	"GR.CONSID":      RoleContainer,
	"CONSID":         RoleContainer,
	"GR.SEQ":         RoleContainer,
	"FINAL":          RoleContainer,
	"CONTENTS":       RoleContainer,

	// Inline markup.
	"HT":         RoleInline,
	"FT":         RoleInline,
	"DATE":       RoleInline,
	"NO.P":       RoleInline,
	"NO.PARAG":   RoleInline,
	"QUOT.START": RoleInline,
	"QUOT.END":   RoleInline,
	"OMISSIS":    RoleInline,
	"SUP":        RoleInline,
	"SUB":        RoleInline,
	"EXPR":       RoleInline,
	"REF.DOC.OJ": RoleInline,

	// No body prose below these.
	"BIB.INSTANCE": RoleSkip,
	"TOC":          RoleSkip,
	"COPYRIGHT":    RoleSkip,
}

// Classify maps a Formex tag name to its semantic role. The function is
// total: tag names outside the vocabulary return RoleUnknown.
func Classify(tag string) Role {
	if role, ok := tagRoles[strings.ToUpper(tag)]; ok {
		return role
	}
	return RoleUnknown
}
