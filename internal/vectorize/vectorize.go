// Package vectorize holds the TF-IDF weight and cosine similarity math.
// Vector axes follow the caller-supplied vocabulary slice, which the index
// keeps in canonical sorted order so dimensions stay comparable across
// calls.
package vectorize

import "math"

// TermCounts aggregates a token sequence into per-term counts and the total
// token count.
func TermCounts(tokens []string) (map[string]int, int) {
	counts := make(map[string]int, len(tokens))
	for _, tok := range tokens {
		counts[tok]++
	}
	return counts, len(tokens)
}

// Weights builds a TF-IDF vector of length len(vocab), one scalar per
// vocabulary term in order. tf(term) = count/total; terms missing from the
// IDF table weigh zero. A zero total yields the all-zero vector.
func Weights(counts map[string]int, total int, vocab []string, idf map[string]float64) []float64 {
	weights := make([]float64, len(vocab))
	if total == 0 {
		return weights
	}
	for i, term := range vocab {
		count, ok := counts[term]
		if !ok {
			continue
		}
		tf := float64(count) / float64(total)
		weights[i] = tf * idf[term]
	}
	return weights
}

// Cosine returns the cosine similarity dot(a,b)/(|a|*|b|), defined as 0
// when either vector has zero norm so callers never see NaN.
func Cosine(a, b []float64) float64 {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}
	var dot, normA, normB float64
	for i := 0; i < n; i++ {
		dot += a[i] * b[i]
	}
	for _, v := range a {
		normA += v * v
	}
	for _, v := range b {
		normB += v * v
	}
	if normA == 0 || normB == 0 {
		return 0
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}

// IDF computes the inverse document frequency
// ln(1 + docCount/(1+docFreq)) for a single term.
func IDF(docCount, docFreq int) float64 {
	return math.Log(1 + float64(docCount)/(1+float64(docFreq)))
}
