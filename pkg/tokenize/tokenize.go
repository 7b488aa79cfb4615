// Package tokenize splits rendered journal text into word tokens for
// downstream counting and search.
package tokenize

import (
	"strings"

	"github.com/blevesearch/segment"
)

// Options configures tokenization.
type Options struct {
	// ToLower folds tokens to lower case.
	ToLower bool

	// AlphaOnly keeps only letter tokens, dropping numbers and ideographs.
	AlphaOnly bool

	// FilterStopwords drops common English function words.
	FilterStopwords bool
}

// DefaultOptions lower-cases and keeps letter tokens, without stopword
// filtering.
func DefaultOptions() Options {
	return Options{ToLower: true, AlphaOnly: true}
}

// Words segments text into word tokens using Unicode word boundaries.
// Punctuation and whitespace segments are always dropped.
func Words(text string, options Options) ([]string, error) {
	segmenter := segment.NewWordSegmenter(strings.NewReader(text))

	var words []string
	for segmenter.Segment() {
		if segmenter.Type() == segment.None {
			continue
		}
		if options.AlphaOnly && segmenter.Type() != segment.Letter {
			continue
		}

		word := segmenter.Text()
		if options.ToLower {
			word = strings.ToLower(word)
		}
		if options.FilterStopwords && stopwords[strings.ToLower(word)] {
			continue
		}
		words = append(words, word)
	}
	if err := segmenter.Err(); err != nil {
		return nil, err
	}
	return words, nil
}

// Frequencies counts token occurrences in text.
func Frequencies(text string, options Options) (map[string]int, error) {
	words, err := Words(text, options)
	if err != nil {
		return nil, err
	}

	frequencies := make(map[string]int, len(words))
	for _, word := range words {
		frequencies[word]++
	}
	return frequencies, nil
}
