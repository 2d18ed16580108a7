package similarity

import "math"

// ManhattanSimilarity computes similarity based on Manhattan (L1) distance.
// Returns 1 / (1 + distance) to convert distance to similarity, or 0 when
// either vector is empty.
func ManhattanSimilarity(a, b map[string]float64) float64 {
	if len(a) == 0 || len(b) == 0 {
		return 0
	}

	var sum float64
	for term, wa := range a {
		sum += math.Abs(wa - b[term])
	}
	for term, wb := range b {
		if _, ok := a[term]; !ok {
			sum += math.Abs(wb)
		}
	}

	return 1 / (1 + sum)
}
