package similarity

import "math"

// EuclideanSimilarity computes similarity based on Euclidean distance over the
// union of both key sets. Returns 1 / (1 + distance), so identical vectors score 1.
// An empty vector on either side scores 0.
func EuclideanSimilarity(a, b map[string]float64) float64 {
	if len(a) == 0 || len(b) == 0 {
		return 0
	}

	var sum float64
	for term, wa := range a {
		diff := wa - b[term]
		sum += diff * diff
	}
	for term, wb := range b {
		if _, ok := a[term]; !ok {
			sum += wb * wb
		}
	}

	return 1 / (1 + math.Sqrt(sum))
}
