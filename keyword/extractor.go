// Package keyword provides deterministic keyword extraction from document text.
package keyword

import (
	"regexp"
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/hyperjump/musubi/config"
)

// tokenRegex extracts runs of letters and digits in any language.
var tokenRegex = regexp.MustCompile(`[\p{L}\p{N}]+`)

// Tokenize splits text into lowercase tokens.
func Tokenize(text string) []string {
	return tokenRegex.FindAllString(strings.ToLower(text), -1)
}

// Keyword is a normalized keyword term with its occurrence count in one document.
type Keyword struct {
	Term  string
	Count int
}

// Extractor extracts normalized keywords from text, ordered by frequency.
// Extraction is deterministic: the same text and settings always produce the
// same sequence.
type Extractor struct {
	maxKeywords int
	minTokenLen int
	stopwords   map[string]struct{}
}

// NewExtractor creates an extractor from cfg. A nil Stopwords list selects the
// default English stop words; an explicit empty list disables filtering.
func NewExtractor(cfg config.ExtractionConfig) *Extractor {
	words := cfg.Stopwords
	if words == nil {
		words = DefaultStopwords()
	}
	stopwords := make(map[string]struct{}, len(words))
	for _, w := range words {
		stopwords[strings.ToLower(w)] = struct{}{}
	}
	return &Extractor{
		maxKeywords: cfg.MaxKeywords,
		minTokenLen: cfg.MinTokenLen,
		stopwords:   stopwords,
	}
}

// ExtractCounts returns the document's keywords with occurrence counts,
// deduplicated, ordered by count descending with ties broken by first
// occurrence, capped at the configured maximum. Empty or entirely filtered
// text yields an empty slice.
func (e *Extractor) ExtractCounts(text string) []Keyword {
	counts := make(map[string]int)
	order := make([]string, 0)
	for _, token := range Tokenize(text) {
		if utf8.RuneCountInString(token) < e.minTokenLen {
			continue
		}
		if _, isStopword := e.stopwords[token]; isStopword {
			continue
		}
		if _, seen := counts[token]; !seen {
			order = append(order, token)
		}
		counts[token]++
	}

	keywords := make([]Keyword, len(order))
	for i, term := range order {
		keywords[i] = Keyword{Term: term, Count: counts[term]}
	}
	// Stable sort keeps first-occurrence order among equal counts.
	sort.SliceStable(keywords, func(i, j int) bool {
		return keywords[i].Count > keywords[j].Count
	})
	if e.maxKeywords > 0 && len(keywords) > e.maxKeywords {
		keywords = keywords[:e.maxKeywords]
	}
	return keywords
}

// Extract returns the document's keyword terms in the same order as
// ExtractCounts.
func (e *Extractor) Extract(text string) []string {
	keywords := e.ExtractCounts(text)
	terms := make([]string, len(keywords))
	for i, kw := range keywords {
		terms[i] = kw.Term
	}
	return terms
}
