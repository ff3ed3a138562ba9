package vector

import (
	"errors"
	"fmt"
	"math"
)

// ErrDimensionMismatch reports that two vectors of different lengths were
// compared.
var ErrDimensionMismatch = errors.New("vector: dimension mismatch")

// CosineSimilarity computes the cosine similarity between two vectors of the
// same length. The result lies in [-1, 1]. A zero-magnitude input yields
// similarity 0 rather than an error, keeping scoring total over arbitrary
// embeddings.
func CosineSimilarity(a, b []float32) (float64, error) {
	if len(a) != len(b) {
		return 0, fmt.Errorf("%w: %d vs %d", ErrDimensionMismatch, len(a), len(b))
	}
	var dot, na2, nb2 float64
	for i := range a {
		va := float64(a[i])
		vb := float64(b[i])
		dot += va * vb
		na2 += va * va
		nb2 += vb * vb
	}
	if na2 == 0 || nb2 == 0 {
		return 0, nil
	}
	return dot / (math.Sqrt(na2) * math.Sqrt(nb2)), nil
}

// L2Distance computes the Euclidean (L2) distance between two vectors of the
// same length.
func L2Distance(a, b []float32) (float64, error) {
	if len(a) != len(b) {
		return 0, fmt.Errorf("%w: %d vs %d", ErrDimensionMismatch, len(a), len(b))
	}
	var sum float64
	for i := range a {
		d := float64(a[i]) - float64(b[i])
		sum += d * d
	}
	return math.Sqrt(sum), nil
}
