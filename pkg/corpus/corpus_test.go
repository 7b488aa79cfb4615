package corpus

import (
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/coolbeans/formex/pkg/formex"
)

// writeFixture writes one metadata/body file pair into dir and returns the
// metadata path.
func writeFixture(t *testing.T, dir string, stem string, celexID string, legalValue string, bodyText string) string {
	t.Helper()

	metaXML := fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<PUBLICATION>
  <BIB.DOC><NO.CELEX>%s</NO.CELEX></BIB.DOC>
  <PAPER>
    <BIB.INSTANCE><DATE ISO="20140715">20140715</DATE></BIB.INSTANCE>
    <TITLE><TI>Fixture act %s</TI></TITLE>
    <AUTHOR>COUNCIL</AUTHOR>
    <COLL>L</COLL>
    <DOC.MAIN.PUB>
      <LEGAL.VALUE>%s</LEGAL.VALUE>
      <REF.PHYS FILE="%s.xml"/>
    </DOC.MAIN.PUB>
  </PAPER>
</PUBLICATION>`, celexID, celexID, legalValue, stem)

	bodyXML := fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<ACT>
  <BIB.INSTANCE><DATE ISO="20140710">20140710</DATE></BIB.INSTANCE>
  <TITLE><TI>Article 1</TI></TITLE>
  <P>%s</P>
</ACT>`, bodyText)

	metaPath := filepath.Join(dir, stem+".doc.xml")
	if err := os.WriteFile(metaPath, []byte(metaXML), 0644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, stem+".xml"), []byte(bodyXML), 0644); err != nil {
		t.Fatal(err)
	}
	return metaPath
}

func TestBuild(t *testing.T) {
	dir := t.TempDir()
	pairs := []Pair{
		{MetaPath: writeFixture(t, dir, "L_2014209EN.01000101", "32014D0449", "DEC", "First body.")},
		{MetaPath: writeFixture(t, dir, "L_2014209EN.01000201", "32014R0450", "REG", "Second body.")},
		{MetaPath: filepath.Join(dir, "missing.doc.xml")},
	}

	built, report, err := Build(pairs, DefaultBuildConfig())
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}

	if report.Attempted != 3 || report.Succeeded != 2 || report.Failed != 1 {
		t.Errorf("report = %+v", report)
	}
	if len(report.Failures) != 1 || report.Failures[0].Path != pairs[2].MetaPath {
		t.Errorf("failures = %+v", report.Failures)
	}

	// Discovery order survives the parallel build.
	want := []string{"32014D0449", "32014R0450"}
	if got := built.Identifiers(); !reflect.DeepEqual(got, want) {
		t.Errorf("Identifiers() = %v, want %v", got, want)
	}

	first := built.At(0)
	if !strings.Contains(first.Body, "ARTICLE 1") || !strings.Contains(first.Body, "First body.") {
		t.Errorf("rendered body = %q", first.Body)
	}
	if got := first.Meta.DocDate.String(); got != "2014/07/10" {
		t.Errorf("DocDate = %q, want body instance date", got)
	}
	if !first.Meta.Flags.Decision {
		t.Error("Flags.Decision = false, want true")
	}
	if !built.At(1).Meta.Flags.Regulation {
		t.Error("Flags.Regulation = false, want true")
	}
}

func TestBuildDuplicateIdentifiers(t *testing.T) {
	dir := t.TempDir()
	pairs := []Pair{
		{MetaPath: writeFixture(t, dir, "L_2014209EN.01000101", "32014D0449", "DEC", "First copy.")},
		{MetaPath: writeFixture(t, dir, "L_2014209EN.01000201", "32014D0449", "DEC", "Second copy.")},
	}

	built, report, err := Build(pairs, DefaultBuildConfig())
	if err == nil {
		t.Fatal("Build() error = nil, want duplicate-identifier error")
	}

	var duplicate *DuplicateIdentifierError
	if len(report.Duplicates) != 1 {
		t.Fatalf("Duplicates = %+v, want one entry", report.Duplicates)
	}
	duplicate = report.Duplicates[0]
	if duplicate.Identifier != "32014D0449" {
		t.Errorf("duplicate identifier = %q", duplicate.Identifier)
	}
	if duplicate.FirstPath != pairs[0].MetaPath || duplicate.DuplicatePath != pairs[1].MetaPath {
		t.Errorf("duplicate paths = %+v", duplicate)
	}

	// First-seen wins; the corpus is still usable.
	if built.Len() != 1 {
		t.Fatalf("Len() = %d, want 1", built.Len())
	}
	if !strings.Contains(built.At(0).Body, "First copy.") {
		t.Errorf("kept body = %q, want the first-seen document", built.At(0).Body)
	}
}

func TestBuildDocumentExplicitBodyPath(t *testing.T) {
	dir := t.TempDir()
	metaPath := writeFixture(t, dir, "L_2014209EN.01000101", "32014D0449", "DEC", "Referenced body.")

	otherBody := filepath.Join(dir, "override.xml")
	if err := os.WriteFile(otherBody, []byte(`<ACT><P>Override body.</P></ACT>`), 0644); err != nil {
		t.Fatal(err)
	}

	document, err := BuildDocument(Pair{MetaPath: metaPath, BodyPath: otherBody}, DefaultBuildConfig())
	if err != nil {
		t.Fatalf("BuildDocument() error = %v", err)
	}
	if !strings.Contains(document.Body, "Override body.") {
		t.Errorf("Body = %q, want override body", document.Body)
	}
	if document.BodyPath != otherBody {
		t.Errorf("BodyPath = %q, want %q", document.BodyPath, otherBody)
	}
}

func TestBuildDocumentMissingBodyReference(t *testing.T) {
	dir := t.TempDir()
	metaPath := filepath.Join(dir, "L_2014209EN.01000101.doc.xml")
	metaXML := `<PUBLICATION><BIB.DOC><NO.CELEX>32014D0449</NO.CELEX></BIB.DOC></PUBLICATION>`
	if err := os.WriteFile(metaPath, []byte(metaXML), 0644); err != nil {
		t.Fatal(err)
	}

	if _, err := BuildDocument(Pair{MetaPath: metaPath}, DefaultBuildConfig()); err == nil {
		t.Error("BuildDocument() error = nil, want missing-body error")
	}
}

func TestFilter(t *testing.T) {
	dir := t.TempDir()
	pairs := []Pair{
		{MetaPath: writeFixture(t, dir, "L_2014209EN.01000101", "32014D0449", "DEC", "decision")},
		{MetaPath: writeFixture(t, dir, "L_2014209EN.01000201", "32014R0450", "REG", "regulation")},
	}

	built, _, err := Build(pairs, DefaultBuildConfig())
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}

	built.Filter(func(document *Document) bool { return document.Meta.Flags.Decision })
	if got := built.Identifiers(); !reflect.DeepEqual(got, []string{"32014D0449"}) {
		t.Errorf("Identifiers() after filter = %v", got)
	}

	// A predicate matching everything leaves the corpus unchanged.
	built.Filter(func(*Document) bool { return true })
	if built.Len() != 1 {
		t.Errorf("Len() after identity filter = %d, want 1", built.Len())
	}
}

func TestExportFullText(t *testing.T) {
	built := New(
		&Document{Meta: metaWithIdentifier("A"), Body: "first"},
		&Document{Meta: metaWithIdentifier("B"), Body: "second"},
		&Document{Meta: metaWithIdentifier("C"), Body: "third"},
	)

	var output strings.Builder
	if err := built.ExportFullText(&output); err != nil {
		t.Fatalf("ExportFullText() error = %v", err)
	}

	want := "first" + FullTextSeparator + "second" + FullTextSeparator + "third"
	if output.String() != want {
		t.Errorf("ExportFullText() = %q, want %q", output.String(), want)
	}
}

func TestExportFullTextDeterministic(t *testing.T) {
	built := New(
		&Document{Meta: metaWithIdentifier("A"), Body: "alpha"},
		&Document{Meta: metaWithIdentifier("B"), Body: "beta"},
	)

	var first, second strings.Builder
	if err := built.ExportFullText(&first); err != nil {
		t.Fatal(err)
	}
	if err := built.ExportFullText(&second); err != nil {
		t.Fatal(err)
	}
	if first.String() != second.String() {
		t.Error("repeated exports differ")
	}
}

func TestExportMetadataTable(t *testing.T) {
	dir := t.TempDir()
	pairs := []Pair{
		{MetaPath: writeFixture(t, dir, "L_2014209EN.01000101", "32014D0449", "DEC", "body")},
	}

	built, _, err := Build(pairs, DefaultBuildConfig())
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}

	table, err := built.MetadataTableString()
	if err != nil {
		t.Fatalf("MetadataTableString() error = %v", err)
	}

	lines := strings.Split(strings.TrimRight(table, "\n"), "\n")
	if len(lines) != 2 {
		t.Fatalf("table has %d lines, want 2:\n%s", len(lines), table)
	}
	if lines[0] != "identifier,publication_date,document_date,legal_type,title,is_decision,is_regulation,is_cfsp,eli" {
		t.Errorf("header = %q", lines[0])
	}

	row := lines[1]
	for _, fragment := range []string{
		"32014D0449",
		"2014/07/15",
		"decision",
		"true",
		"http://data.europa.eu/eli/dec/2014/449/oj",
	} {
		if !strings.Contains(row, fragment) {
			t.Errorf("row %q missing %q", row, fragment)
		}
	}
}

func metaWithIdentifier(identifier string) *formex.Meta {
	return &formex.Meta{Identifier: identifier}
}
