// Package tfidf builds sparse TF-IDF vectors over a small, per-call corpus.
//
// Vectors are plain maps keyed by token. Nothing here is persisted or shared:
// the IDF weights are derived from exactly the documents passed in, so callers
// recompute them for every comparison.
package tfidf

import (
	"math"
	"sort"
)

// Vector is a sparse term-weight vector keyed by token.
type Vector = map[string]float64

// TermScore pairs a term with a weight.
type TermScore struct {
	Term  string  `json:"term"`
	Score float64 `json:"score"`
}

// TermFrequency returns, for each distinct token, its share of all tokens in the
// sequence. An empty sequence yields an empty vector.
func TermFrequency(tokens []string) Vector {
	tf := make(Vector)
	if len(tokens) == 0 {
		return tf
	}

	for _, token := range tokens {
		tf[token]++
	}

	total := float64(len(tokens))
	for token, count := range tf {
		tf[token] = count / total
	}
	return tf
}

// InverseDocumentFrequency computes smoothed IDF weights over the given corpus:
//
//	idf(t) = ln(N / (df(t) + 1)) + 1
//
// where N is the number of documents and df(t) the number of documents that
// contain t at least once. Every token of every document receives a weight, and
// all weights are finite and strictly positive.
func InverseDocumentFrequency(documents [][]string) Vector {
	docFreq := make(map[string]int)
	for _, doc := range documents {
		seen := make(map[string]struct{}, len(doc))
		for _, token := range doc {
			if _, ok := seen[token]; ok {
				continue
			}
			seen[token] = struct{}{}
			docFreq[token]++
		}
	}

	n := float64(len(documents))
	idf := make(Vector, len(docFreq))
	for token, df := range docFreq {
		idf[token] = math.Log(n/float64(df+1)) + 1
	}
	return idf
}

// Weight multiplies each term frequency by its IDF weight. Terms missing from
// idf are left out of the result.
func Weight(tf, idf Vector) Vector {
	out := make(Vector, len(tf))
	for token, freq := range tf {
		w, ok := idf[token]
		if !ok {
			continue
		}
		out[token] = freq * w
	}
	return out
}

// Vectorize turns tokenized documents into TF-IDF vectors that share one IDF
// computed over all of them.
func Vectorize(documents ...[]string) []Vector {
	idf := InverseDocumentFrequency(documents)
	vectors := make([]Vector, len(documents))
	for i, doc := range documents {
		vectors[i] = Weight(TermFrequency(doc), idf)
	}
	return vectors
}

// TopTerms returns the k highest weighted terms of v, highest first. Ties are
// broken alphabetically so the output is stable. k <= 0 returns every term.
func TopTerms(v Vector, k int) []TermScore {
	if len(v) == 0 {
		return nil
	}

	scores := make([]TermScore, 0, len(v))
	for term, score := range v {
		scores = append(scores, TermScore{Term: term, Score: score})
	}
	sortScores(scores)

	if k > 0 && k < len(scores) {
		scores = scores[:k]
	}
	return scores
}

// SharedTerms lists the terms present in both vectors, scored by their
// contribution a[t]*b[t] to the dot product, highest first.
func SharedTerms(a, b Vector) []TermScore {
	if len(a) > len(b) {
		a, b = b, a
	}

	var shared []TermScore
	for term, wa := range a {
		if wb, ok := b[term]; ok {
			shared = append(shared, TermScore{Term: term, Score: wa * wb})
		}
	}
	sortScores(shared)
	return shared
}

func sortScores(scores []TermScore) {
	sort.Slice(scores, func(i, j int) bool {
		if scores[i].Score != scores[j].Score {
			return scores[i].Score > scores[j].Score
		}
		return scores[i].Term < scores[j].Term
	})
}
