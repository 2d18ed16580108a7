// Package similarity provides similarity measures for sparse term-weight vectors.
package similarity

import (
	"errors"
	"fmt"
)

// SimilarityFunc computes the similarity between two sparse vectors keyed by term.
// Higher values indicate greater similarity; missing keys count as zero weight.
type SimilarityFunc func(a, b map[string]float64) float64

// ErrUnknownMetric is returned by ByName for names it does not recognise.
var ErrUnknownMetric = errors.New("unknown similarity metric")

// ByName returns the metric registered as name: cosine, dot, euclidean or manhattan.
func ByName(name string) (SimilarityFunc, error) {
	switch name {
	case "cosine", "":
		return CosineSimilarity, nil
	case "dot":
		return DotProductSimilarity, nil
	case "euclidean":
		return EuclideanSimilarity, nil
	case "manhattan":
		return ManhattanSimilarity, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownMetric, name)
	}
}
