// Package tokenize turns raw passage text into a normalized,
// stopword-filtered term sequence. The same tokenizer instance is used for
// document ingestion and for queries so both sides of a similarity
// comparison live in the same term space.
package tokenize

import (
	"regexp"
	"strings"

	"golang.org/x/text/unicode/norm"
)

// DefaultStopwords returns the built-in English stopword list.
func DefaultStopwords() []string {
	return []string{
		"a", "an", "and", "are", "as", "at", "be", "by", "for", "from",
		"has", "he", "in", "is", "it", "its", "of", "on", "that", "the",
		"to", "was", "were", "will", "with",
	}
}

// nonWord matches every run of characters that is neither a word character
// (letter, digit, underscore) nor whitespace.
var nonWord = regexp.MustCompile(`[^\p{L}\p{N}_\s]+`)

// Tokenizer is a pure, deterministic text normalizer. Safe for concurrent
// use; the stopword set is fixed at construction time.
type Tokenizer struct {
	stopwords map[string]struct{}
}

// New creates a Tokenizer with the given stopword set. A nil slice selects
// the default list; an explicit empty slice disables stopword filtering.
func New(stopwords []string) *Tokenizer {
	if stopwords == nil {
		stopwords = DefaultStopwords()
	}
	set := make(map[string]struct{}, len(stopwords))
	for _, w := range stopwords {
		set[strings.ToLower(w)] = struct{}{}
	}
	return &Tokenizer{stopwords: set}
}

// Tokenize normalizes text to NFC, lowercases it, strips non-word
// characters and returns the remaining terms in input order with stopwords
// removed. Empty or all-stopword input yields an empty slice. Malformed
// UTF-8 passes through the normalizer untouched rather than failing the
// whole passage.
func (t *Tokenizer) Tokenize(text string) []string {
	normalized := strings.ToLower(norm.NFC.String(text))
	cleaned := nonWord.ReplaceAllString(normalized, " ")

	fields := strings.Fields(cleaned)
	tokens := make([]string, 0, len(fields))
	for _, f := range fields {
		if _, stop := t.stopwords[f]; stop {
			continue
		}
		tokens = append(tokens, f)
	}
	return tokens
}
