package tokenize

// stopwords are English function words excluded when Options.FilterStopwords
// is set.
var stopwords = map[string]bool{
	"a": true, "an": true, "and": true, "are": true, "as": true, "at": true,
	"be": true, "been": true, "but": true, "by": true, "for": true,
	"from": true, "had": true, "has": true, "have": true, "in": true,
	"is": true, "it": true, "its": true, "not": true, "of": true,
	"on": true, "or": true, "shall": true, "should": true, "such": true,
	"that": true, "the": true, "their": true, "these": true, "this": true,
	"to": true, "was": true, "were": true, "which": true, "whereas": true,
	"will": true, "with": true,
}
