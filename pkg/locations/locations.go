// Package locations finds geographic references in rendered journal text
// using a gazetteer of place names and their aliases.
package locations

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"regexp"
	"sort"
	"strings"
)

// Gazetteer maps canonical place names to the surface forms that refer to
// them, including demonyms ("Swiss") and historical spellings.
type Gazetteer map[string][]string

// Matcher finds gazetteer entries in text. Aliases are matched whole-word
// and case-insensitively; where one alias is a suffix of another ("Sudan"
// inside "South Sudan") the longer alias wins, so a mention is never
// attributed to both.
type Matcher struct {
	pattern   *regexp.Regexp
	canonical map[string]string
}

// NewMatcher compiles a matcher over a gazetteer.
func NewMatcher(gazetteer Gazetteer) (*Matcher, error) {
	canonical := make(map[string]string)
	var aliases []string
	for name, forms := range gazetteer {
		for _, form := range forms {
			form = strings.TrimSpace(form)
			if form == "" {
				continue
			}
			lowered := strings.ToLower(form)
			if existing, clash := canonical[lowered]; clash && existing != name {
				return nil, fmt.Errorf("alias %q maps to both %q and %q", form, existing, name)
			}
			canonical[lowered] = name
			aliases = append(aliases, form)
		}
	}
	if len(aliases) == 0 {
		return nil, fmt.Errorf("empty gazetteer")
	}

	// Longest alias first, so the alternation prefers "South Sudan" over
	// "Sudan" at the same position.
	sort.Slice(aliases, func(i, j int) bool {
		if len(aliases[i]) != len(aliases[j]) {
			return len(aliases[i]) > len(aliases[j])
		}
		return aliases[i] < aliases[j]
	})

	quoted := make([]string, len(aliases))
	for index, alias := range aliases {
		quoted[index] = regexp.QuoteMeta(alias)
	}
	pattern, err := regexp.Compile(`(?i)\b(?:` + strings.Join(quoted, "|") + `)\b`)
	if err != nil {
		return nil, fmt.Errorf("failed to compile gazetteer pattern: %w", err)
	}

	return &Matcher{pattern: pattern, canonical: canonical}, nil
}

// DefaultMatcher compiles a matcher over the built-in gazetteer.
func DefaultMatcher() (*Matcher, error) {
	return NewMatcher(DefaultGazetteer())
}

// Count returns how many times each canonical place is mentioned in text.
// Places without a mention are absent from the map.
func (matcher *Matcher) Count(text string) map[string]int {
	counts := make(map[string]int)
	for _, match := range matcher.pattern.FindAllString(text, -1) {
		if name, ok := matcher.canonical[strings.ToLower(match)]; ok {
			counts[name]++
		}
	}
	return counts
}

// Names returns the canonical place names mentioned in text, sorted.
func (matcher *Matcher) Names(text string) []string {
	counts := matcher.Count(text)
	names := make([]string, 0, len(counts))
	for name := range counts {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// LoadGazetteer reads a gazetteer from a CSV file with two columns: the
// canonical name and a pipe-separated alias list. The canonical name is
// always matched itself; the alias column may be empty.
func LoadGazetteer(path string) (Gazetteer, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open gazetteer: %w", err)
	}
	defer file.Close()
	return ReadGazetteer(file)
}

// ReadGazetteer parses gazetteer CSV rows from a reader.
func ReadGazetteer(reader io.Reader) (Gazetteer, error) {
	csvReader := csv.NewReader(reader)
	csvReader.FieldsPerRecord = -1

	gazetteer := make(Gazetteer)
	for {
		row, err := csvReader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read gazetteer row: %w", err)
		}

		name := strings.TrimSpace(row[0])
		if name == "" || strings.HasPrefix(name, "#") {
			continue
		}

		forms := []string{name}
		if len(row) > 1 && strings.TrimSpace(row[1]) != "" {
			for _, alias := range strings.Split(row[1], "|") {
				if alias = strings.TrimSpace(alias); alias != "" {
					forms = append(forms, alias)
				}
			}
		}
		gazetteer[name] = forms
	}
	return gazetteer, nil
}
