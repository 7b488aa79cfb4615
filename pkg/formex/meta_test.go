package formex

import (
	"errors"
	"reflect"
	"strings"
	"testing"
)

const decisionMetaXML = `<?xml version="1.0" encoding="UTF-8"?>
<PUBLICATION>
  <BIB.DOC>
    <NO.CELEX>32014D0449</NO.CELEX>
  </BIB.DOC>
  <PAPER>
    <BIB.INSTANCE>
      <DATE ISO="20140715">20140715</DATE>
    </BIB.INSTANCE>
    <TITLE>
      <TI>Council Decision 2014/449/<HT TYPE="ITALIC">CFSP</HT></TI>
      <STI>concerning restrictive measures in view of the situation in South Sudan</STI>
    </TITLE>
    <AUTHOR>COUNCIL</AUTHOR>
    <COLL>L</COLL>
    <COM>CFSP</COM>
    <DOC.MAIN.PUB>
      <LEGAL.VALUE>DEC</LEGAL.VALUE>
      <DATE.ADOPT>20140710</DATE.ADOPT>
      <REF.PHYS FILE="L_2014209EN.01003401.xml"/>
    </DOC.MAIN.PUB>
    <DOC.SUB.PUB>
      <REF.PHYS FILE="L_2014209EN.01003402.xml"/>
    </DOC.SUB.PUB>
  </PAPER>
</PUBLICATION>`

func TestExtractMeta(t *testing.T) {
	meta, err := ExtractMeta("L_2014209EN.01003401.doc.xml", strings.NewReader(decisionMetaXML), nil)
	if err != nil {
		t.Fatalf("ExtractMeta() error = %v", err)
	}

	if meta.Identifier != "32014D0449" {
		t.Errorf("Identifier = %q, want 32014D0449", meta.Identifier)
	}
	wantTitle := "Council Decision 2014/449/ CFSP concerning restrictive measures in view of the situation in South Sudan"
	if meta.Title != wantTitle {
		t.Errorf("Title = %q, want %q", meta.Title, wantTitle)
	}
	if !reflect.DeepEqual(meta.Authors, []string{"COUNCIL"}) {
		t.Errorf("Authors = %v, want [COUNCIL]", meta.Authors)
	}
	if meta.Collection != "L" {
		t.Errorf("Collection = %q, want L", meta.Collection)
	}
	if meta.Domain != "CFSP" {
		t.Errorf("Domain = %q, want CFSP", meta.Domain)
	}
	if meta.LegalValue != "DEC" {
		t.Errorf("LegalValue = %q, want DEC", meta.LegalValue)
	}
	if meta.LegalType != LegalDecision {
		t.Errorf("LegalType = %v, want %v", meta.LegalType, LegalDecision)
	}
	if got := meta.PubDate.String(); got != "2014/07/15" {
		t.Errorf("PubDate = %q, want 2014/07/15", got)
	}
	if got := meta.DocDate.String(); got != "2014/07/10" {
		t.Errorf("DocDate = %q, want 2014/07/10", got)
	}
	if meta.MainBody != "L_2014209EN.01003401.xml" {
		t.Errorf("MainBody = %q", meta.MainBody)
	}
	if !reflect.DeepEqual(meta.SubBodies, []string{"L_2014209EN.01003402.xml"}) {
		t.Errorf("SubBodies = %v", meta.SubBodies)
	}

	want := Classifiers{Decision: true, Regulation: false, CFSP: true}
	if meta.Flags != want {
		t.Errorf("Flags = %+v, want %+v", meta.Flags, want)
	}
}

func TestExtractMetaIdentifierFallback(t *testing.T) {
	input := `<PUBLICATION><PAPER><TITLE><TI>untagged act</TI></TITLE></PAPER></PUBLICATION>`

	meta, err := ExtractMeta("data/EN/L_2009009EN.01005101.doc.xml", strings.NewReader(input), nil)
	if err != nil {
		t.Fatalf("ExtractMeta() error = %v", err)
	}
	if meta.Identifier != "L_2009009EN.01005101" {
		t.Errorf("Identifier = %q, want file-name stem", meta.Identifier)
	}
	// That file name is on the manually flagged list.
	if !meta.Flags.CFSP {
		t.Error("Flags.CFSP = false, want true for flagged file")
	}
}

func TestExtractMetaNoIdentifier(t *testing.T) {
	_, err := ExtractMeta("", strings.NewReader(`<PUBLICATION></PUBLICATION>`), nil)

	var metadataErr *MetadataError
	if !errors.As(err, &metadataErr) {
		t.Fatalf("ExtractMeta() error = %v, want *MetadataError", err)
	}
}

func TestExtractMetaDegradesOnMalformedFields(t *testing.T) {
	input := `<PUBLICATION>
  <BIB.DOC><NO.CELEX>32014R0001</NO.CELEX></BIB.DOC>
  <PAPER>
    <BIB.INSTANCE><DATE>not a date</DATE></BIB.INSTANCE>
    <DOC.MAIN.PUB><LEGAL.VALUE>UNHEARD_OF</LEGAL.VALUE></DOC.MAIN.PUB>
  </PAPER>
</PUBLICATION>`

	meta, err := ExtractMeta("x.doc.xml", strings.NewReader(input), nil)
	if err != nil {
		t.Fatalf("ExtractMeta() error = %v", err)
	}
	if meta.PubDate.Valid {
		t.Error("PubDate.Valid = true, want unknown sentinel")
	}
	if got := meta.PubDate.String(); got != "none" {
		t.Errorf("PubDate = %q, want none", got)
	}
	// Unknown marker falls back to the CELEX type letter.
	if meta.LegalType != LegalRegulation {
		t.Errorf("LegalType = %v, want %v from CELEX letter", meta.LegalType, LegalRegulation)
	}
	if !meta.Flags.Regulation || meta.Flags.Decision {
		t.Errorf("Flags = %+v", meta.Flags)
	}
}

func TestExtractMetaTruncatedDocument(t *testing.T) {
	// The identifier appears before the truncation point, so the document
	// survives with the fields parsed so far.
	input := `<PUBLICATION><BIB.DOC><NO.CELEX>32014D0449</NO.CELEX></BIB.DOC><PAPER><AUTHOR>COUN`

	meta, err := ExtractMeta("x.doc.xml", strings.NewReader(input), nil)
	if err != nil {
		t.Fatalf("ExtractMeta() error = %v", err)
	}
	if meta.Identifier != "32014D0449" {
		t.Errorf("Identifier = %q, want 32014D0449", meta.Identifier)
	}
}

func TestExtractMetaLegalValueScope(t *testing.T) {
	// A LEGAL.VALUE outside DOC.MAIN.PUB must not classify the document.
	input := `<PUBLICATION>
  <BIB.DOC><NO.CELEX>32014X0001</NO.CELEX></BIB.DOC>
  <PAPER>
    <DOC.SUB.PUB><LEGAL.VALUE>REG</LEGAL.VALUE></DOC.SUB.PUB>
  </PAPER>
</PUBLICATION>`

	meta, err := ExtractMeta("x.doc.xml", strings.NewReader(input), nil)
	if err != nil {
		t.Fatalf("ExtractMeta() error = %v", err)
	}
	if meta.LegalValue != "" {
		t.Errorf("LegalValue = %q, want empty", meta.LegalValue)
	}
	if meta.LegalType != LegalOther {
		t.Errorf("LegalType = %v, want %v", meta.LegalType, LegalOther)
	}
}
