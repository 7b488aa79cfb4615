package formex

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/samber/lo"
	"gopkg.in/yaml.v3"
)

// LegalType is the closed category of an EU legal instrument. Markers that
// match no known type map to LegalOther; classification never fails.
type LegalType string

const (
	LegalRegulation     LegalType = "regulation"
	LegalDirective      LegalType = "directive"
	LegalDecision       LegalType = "decision"
	LegalRecommendation LegalType = "recommendation"
	LegalOpinion        LegalType = "opinion"
	LegalAgreement      LegalType = "international-agreement"
	LegalNotice         LegalType = "notice"
	LegalOther          LegalType = "other"
)

// ClassifierConfig holds the classification tables. The marker spellings and
// CFSP code lists are convention, derived from the observed corpus rather
// than a formal schema, so they live in configuration instead of code.
type ClassifierConfig struct {
	// ActTypes maps a legal type name to the LEGAL.VALUE marker spellings
	// that denote it.
	ActTypes map[string][]string `yaml:"act_types"`

	// CFSP configures the Common Foreign and Security Policy classifier.
	CFSP CFSPConfig `yaml:"cfsp"`
}

// CFSPConfig lists the signals that mark a document as CFSP.
type CFSPConfig struct {
	// DomainCodes are subject-matter codes (COM field) denoting CFSP.
	DomainCodes []string `yaml:"domain_codes"`

	// Authors are authoring bodies whose documents are CFSP.
	Authors []string `yaml:"authors"`

	// TitleKeywords are lowercase substrings matched against the title.
	TitleKeywords []string `yaml:"title_keywords"`

	// Files are metadata file names flagged CFSP by manual review.
	Files []string `yaml:"files"`
}

// DefaultClassifierConfig returns the tables validated against the
// 2004-2019 journal corpus.
func DefaultClassifierConfig() ClassifierConfig {
	return ClassifierConfig{
		ActTypes: map[string][]string{
			string(LegalDecision):       {"DEC", "DEC.EEA", "DEC_IMPL", "DECIMP", "DECIMPL", "DEC_DEL", "DECDEL"},
			string(LegalRegulation):     {"REG", "REG.EEA", "REG_IMPL", "REGIMPL", "REG_DEL", "REGDEL"},
			string(LegalDirective):      {"DIR", "DIR_IMPL", "DIR_DEL"},
			string(LegalRecommendation): {"REC"},
			string(LegalOpinion):        {"OPIN", "AVIS"},
			string(LegalAgreement):      {"AGR", "AGREE"},
			string(LegalNotice):         {"NOTICE", "INFO"},
		},
		CFSP: CFSPConfig{
			DomainCodes:   []string{"CFSP", "PESC"},
			Authors:       []string{"PSC", "EEAS", "PESC"},
			TitleKeywords: []string{"cfsp", "common foreign and security policy"},
			Files: []string{
				"L_2009009EN.01005101.doc.xml",
				"L_2010201EN.01003001.doc.xml",
				"L_2014014EN.01000101.doc.xml",
				"L_2014205EN.01000201.doc.xml",
				"L_2016074EN.01000101.doc.xml",
				"L_2016300EN.01000101.doc.xml",
				"L_2017328EN.01003201.doc.xml",
			},
		},
	}
}

// LoadClassifierConfig reads a classifier configuration from a YAML file.
// Missing sections fall back to the defaults.
func LoadClassifierConfig(path string) (ClassifierConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return ClassifierConfig{}, fmt.Errorf("failed to read classifier config: %w", err)
	}

	config := DefaultClassifierConfig()
	if err := yaml.Unmarshal(data, &config); err != nil {
		return ClassifierConfig{}, fmt.Errorf("failed to parse classifier config: %w", err)
	}
	return config, nil
}

// Classifier derives the legal-act type and the boolean classifiers of a
// document from its metadata. It is read-only after construction and safe
// for concurrent use during a corpus build.
type Classifier struct {
	config  ClassifierConfig
	markers map[string]LegalType
}

// NewClassifier builds a Classifier from a configuration.
func NewClassifier(config ClassifierConfig) *Classifier {
	markers := make(map[string]LegalType)
	for typeName, typeMarkers := range config.ActTypes {
		for _, marker := range typeMarkers {
			markers[strings.ToUpper(marker)] = LegalType(typeName)
		}
	}
	return &Classifier{config: config, markers: markers}
}

// DefaultClassifier returns a Classifier with the default configuration.
func DefaultClassifier() *Classifier {
	return NewClassifier(DefaultClassifierConfig())
}

// ActType maps a LEGAL.VALUE marker to a legal-act type. Unknown markers
// map to LegalOther.
func (classifier *Classifier) ActType(marker string) LegalType {
	if legalType, ok := classifier.markers[strings.ToUpper(strings.TrimSpace(marker))]; ok {
		return legalType
	}
	return LegalOther
}

// IsCFSP reports whether a document belongs to the Common Foreign and
// Security Policy domain, using the domain code, the authoring bodies, the
// title keywords, and the manually flagged file names.
func (classifier *Classifier) IsCFSP(meta *Meta) bool {
	cfsp := classifier.config.CFSP

	if lo.Contains(cfsp.DomainCodes, strings.ToUpper(meta.Domain)) {
		return true
	}

	if lo.SomeBy(meta.Authors, func(author string) bool {
		return lo.Contains(cfsp.Authors, strings.ToUpper(author))
	}) {
		return true
	}

	title := strings.ToLower(meta.Title)
	if lo.SomeBy(cfsp.TitleKeywords, func(keyword string) bool {
		return keyword != "" && strings.Contains(title, keyword)
	}) {
		return true
	}

	return lo.Contains(cfsp.Files, filepath.Base(meta.SourcePath))
}
