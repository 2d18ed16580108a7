package similarity

// DotProductSimilarity computes the dot product between two sparse vectors.
// No normalization is applied, so results depend on vector magnitudes.
func DotProductSimilarity(a, b map[string]float64) float64 {
	if len(a) > len(b) {
		a, b = b, a
	}

	var dot float64
	for term, wa := range a {
		dot += wa * b[term]
	}
	return dot
}
