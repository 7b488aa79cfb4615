package celex

import (
	"fmt"
	"strings"
)

// ELIBaseURL is the base URL for ELI URIs.
const ELIBaseURL = "http://data.europa.eu/eli/"

// ELI type slugs used in the URI path.
const (
	eliSlugRegulation = "reg"
	eliSlugDirective  = "dir"
	eliSlugDecision   = "dec"
)

// ELIURI represents a European Legislation Identifier URI.
// Format: http://data.europa.eu/eli/{type}/{year}/{number}/oj
type ELIURI struct {
	TypeSlug string `json:"type_slug"`
	Year     string `json:"year"`
	Number   string `json:"number"`
}

// String returns the full ELI URI.
func (eliURI ELIURI) String() string {
	return ELIBaseURL + eliURI.TypeSlug + "/" + eliURI.Year + "/" + eliURI.Number + "/oj"
}

// ELI derives the ELI URI for a CELEX number. Only regulations, directives,
// and decisions have ELI type slugs; other types return an error.
func (number Number) ELI() (ELIURI, error) {
	var slug string
	switch number.TypeCode {
	case TypeRegulation:
		slug = eliSlugRegulation
	case TypeDirective:
		slug = eliSlugDirective
	case TypeDecision:
		slug = eliSlugDecision
	default:
		return ELIURI{}, fmt.Errorf("no ELI type slug for CELEX type %q", number.TypeCode)
	}

	return ELIURI{
		TypeSlug: slug,
		Year:     number.Year,
		Number:   strings.TrimLeft(number.Number, "0"), // ELI uses unpadded numbers.
	}, nil
}
