package locations

import (
	"reflect"
	"strings"
	"testing"
)

func TestMatcherCount(t *testing.T) {
	matcher, err := DefaultMatcher()
	if err != nil {
		t.Fatalf("DefaultMatcher() error = %v", err)
	}

	tests := []struct {
		name string
		text string
		want map[string]int
	}{
		{
			"simple mention",
			"restrictive measures concerning Ukraine",
			map[string]int{"Ukraine": 1},
		},
		{
			"case insensitive",
			"the situation in UKRAINE and ukraine",
			map[string]int{"Ukraine": 2},
		},
		{
			"demonym maps to canonical name",
			"the Swiss Confederation and the Russian Federation",
			map[string]int{"Switzerland": 1, "Russia": 1},
		},
		{
			"compound name not double counted",
			"the conflict in South Sudan, unlike Sudan itself",
			map[string]int{"South Sudan": 1, "Sudan": 1},
		},
		{
			"whole words only",
			"Iranian nationals but not iranians-ish Tehranians",
			map[string]int{"Iran": 1},
		},
		{
			"no mentions",
			"laying down implementing rules",
			map[string]int{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := matcher.Count(tt.text); !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Count(%q) = %v, want %v", tt.text, got, tt.want)
			}
		})
	}
}

func TestMatcherNames(t *testing.T) {
	matcher, err := DefaultMatcher()
	if err != nil {
		t.Fatalf("DefaultMatcher() error = %v", err)
	}

	got := matcher.Names("sanctions against Syria, Libya and Syria")
	if want := []string{"Libya", "Syria"}; !reflect.DeepEqual(got, want) {
		t.Errorf("Names() = %v, want %v", got, want)
	}
}

func TestReadGazetteer(t *testing.T) {
	input := `# comment row
Ukraine,Ukrainian
Sudan,Sudanese|Republic of the Sudan
Kosovo,
`
	gazetteer, err := ReadGazetteer(strings.NewReader(input))
	if err != nil {
		t.Fatalf("ReadGazetteer() error = %v", err)
	}

	want := Gazetteer{
		"Ukraine": {"Ukraine", "Ukrainian"},
		"Sudan":   {"Sudan", "Sudanese", "Republic of the Sudan"},
		"Kosovo":  {"Kosovo"},
	}
	if !reflect.DeepEqual(gazetteer, want) {
		t.Errorf("ReadGazetteer() = %v, want %v", gazetteer, want)
	}
}

func TestNewMatcherRejectsAmbiguousAlias(t *testing.T) {
	_, err := NewMatcher(Gazetteer{
		"Georgia (country)": {"Georgia"},
		"Georgia (state)":   {"Georgia"},
	})
	if err == nil {
		t.Error("NewMatcher() error = nil, want ambiguous-alias error")
	}
}

func TestNewMatcherEmptyGazetteer(t *testing.T) {
	if _, err := NewMatcher(Gazetteer{}); err == nil {
		t.Error("NewMatcher() error = nil, want error")
	}
}
