package argmap

import (
	"github.com/botirk38/argmap/similarity"
	"github.com/botirk38/argmap/tfidf"
	"github.com/botirk38/argmap/tokenizer"
)

// CompareTexts scores how similar two texts are in [0, 1].
//
// Both texts are tokenized, weighted with TF-IDF over the two-document corpus
// they form, and compared with cosine similarity. Empty or stopword-only input
// scores 0. The function is pure and safe for concurrent use.
func CompareTexts(text1, text2 string) float64 {
	return CompareTextsWith(similarity.CosineSimilarity, text1, text2)
}

// CompareTextsWith is CompareTexts with a caller-chosen vector similarity.
// A nil fn means cosine. The result is clamped to [0, 1].
func CompareTextsWith(fn similarity.SimilarityFunc, text1, text2 string) float64 {
	if fn == nil {
		fn = similarity.CosineSimilarity
	}
	vectors := tfidf.Vectorize(tokenizer.Tokenize(text1), tokenizer.Tokenize(text2))
	return similarity.Clamp01(fn(vectors[0], vectors[1]))
}

// Comparison explains a CompareTexts score.
type Comparison struct {
	Score       float64           `json:"score"`
	Tokens1     int               `json:"tokens1"`
	Tokens2     int               `json:"tokens2"`
	SharedTerms []tfidf.TermScore `json:"sharedTerms"`
	TopTerms1   []tfidf.TermScore `json:"topTerms1"`
	TopTerms2   []tfidf.TermScore `json:"topTerms2"`
}

// Explain computes the same score as CompareTexts and reports the k terms that
// contributed most to it, along with each text's k heaviest terms.
// k <= 0 reports every term.
func Explain(text1, text2 string, k int) Comparison {
	tokens1 := tokenizer.Tokenize(text1)
	tokens2 := tokenizer.Tokenize(text2)
	vectors := tfidf.Vectorize(tokens1, tokens2)

	shared := tfidf.SharedTerms(vectors[0], vectors[1])
	if k > 0 && len(shared) > k {
		shared = shared[:k]
	}

	return Comparison{
		Score:       similarity.Clamp01(similarity.CosineSimilarity(vectors[0], vectors[1])),
		Tokens1:     len(tokens1),
		Tokens2:     len(tokens2),
		SharedTerms: shared,
		TopTerms1:   tfidf.TopTerms(vectors[0], k),
		TopTerms2:   tfidf.TopTerms(vectors[1], k),
	}
}
