package similarity

import "math"

// CosineSimilarity computes the cosine of the angle between two sparse vectors,
// clamped to [0, 1]. If either vector has zero norm the result is 0, which makes
// an empty document dissimilar to everything, itself included. NaN never escapes.
func CosineSimilarity(a, b map[string]float64) float64 {
	var dot, normA, normB float64
	for term, wa := range a {
		dot += wa * b[term]
		normA += wa * wa
	}
	for _, wb := range b {
		normB += wb * wb
	}

	normA = math.Sqrt(normA)
	normB = math.Sqrt(normB)
	if normA == 0 || normB == 0 {
		return 0
	}

	return Clamp01(dot / (normA * normB))
}

// Clamp01 limits v to [0, 1]. NaN and negative zero map to 0.
func Clamp01(v float64) float64 {
	switch {
	case math.IsNaN(v), v <= 0:
		return 0
	case v > 1:
		return 1
	default:
		return v
	}
}
