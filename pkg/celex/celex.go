// Package celex parses and formats CELEX numbers, the identifier scheme
// used across EU legal databases, and derives ELI URIs from them.
package celex

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// Sector represents the CELEX sector code.
// See: https://eur-lex.europa.eu/content/tools/TableOfSectors/types_of_documents_in_eurlex.html
type Sector string

const (
	SectorTreaties                 Sector = "1"
	SectorInternationalAgreements  Sector = "2"
	SectorLegislation              Sector = "3"
	SectorComplementaryLegislation Sector = "4"
	SectorPreparatoryActs          Sector = "5"
	SectorCaseLaw                  Sector = "6"
)

// TypeCode represents the CELEX document type indicator within a sector.
type TypeCode string

const (
	TypeRegulation     TypeCode = "R"
	TypeDirective      TypeCode = "L"
	TypeDecision       TypeCode = "D"
	TypeRecommendation TypeCode = "H"
	TypeOpinion        TypeCode = "A"
	TypeInformation    TypeCode = "C"
	TypeOther          TypeCode = "X"
)

// Number is a structured representation of a CELEX identifier.
// Format: {Sector}{Year}{TypeCode}{PaddedNumber}
// Example: "32016R0679" = Sector 3, Year 2016, Regulation, Number 0679
type Number struct {
	Sector   Sector   `json:"sector"`
	Year     string   `json:"year"`
	TypeCode TypeCode `json:"type_code"`
	Number   string   `json:"number"`
}

// String returns the canonical CELEX string representation.
func (number Number) String() string {
	return string(number.Sector) + number.Year + string(number.TypeCode) + number.Number
}

var celexPattern = regexp.MustCompile(`^([1-9])(\d{4})([A-Z])(\d{4,})`)

// Parse decomposes a CELEX string into its components. Trailing corrigendum
// suffixes like "(01)" are tolerated and dropped.
func Parse(raw string) (Number, error) {
	matches := celexPattern.FindStringSubmatch(strings.TrimSpace(raw))
	if matches == nil {
		return Number{}, fmt.Errorf("not a CELEX number: %q", raw)
	}
	return Number{
		Sector:   Sector(matches[1]),
		Year:     matches[2],
		TypeCode: TypeCode(matches[3]),
		Number:   matches[4],
	}, nil
}

// New builds a legislation-sector CELEX number from year, type, and document
// number, normalizing two-digit years and zero-padding the number.
func New(year string, typeCode TypeCode, documentNumber string) (Number, error) {
	if year == "" {
		return Number{}, fmt.Errorf("missing year component")
	}
	if documentNumber == "" {
		return Number{}, fmt.Errorf("missing number component")
	}
	return Number{
		Sector:   SectorLegislation,
		Year:     NormalizeYear(year),
		TypeCode: typeCode,
		Number:   PadNumber(documentNumber),
	}, nil
}

// NormalizeYear converts a 2-digit year to 4-digit.
// Uses 1958 as the cutoff (year the EU/EEC was founded):
// - Years >= 58 are interpreted as 19xx (e.g., "95" -> "1995")
// - Years < 58 are interpreted as 20xx (e.g., "16" -> "2016")
// 4-digit years pass through unchanged.
func NormalizeYear(yearString string) string {
	if len(yearString) == 2 {
		yearValue, err := strconv.Atoi(yearString)
		if err != nil {
			return yearString
		}
		if yearValue >= 58 {
			return "19" + yearString
		}
		return "20" + yearString
	}
	return yearString
}

// PadNumber pads a document number to 4 digits with leading zeros.
// Example: "679" -> "0679", "46" -> "0046", "1" -> "0001"
func PadNumber(numberString string) string {
	for len(numberString) < 4 {
		numberString = "0" + numberString
	}
	return numberString
}
