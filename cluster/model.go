package cluster

import (
	"errors"
	"fmt"

	"github.com/viant/vec/search"
)

// ErrInvalidClusterCount indicates a cluster count outside [1, len(vectors)].
var ErrInvalidClusterCount = errors.New("cluster: invalid cluster count")

// Model holds the fitted centroids of a k-means run. A model is immutable
// once returned by Fit or NewModel; assignment of new vectors never moves
// centroids.
type Model struct {
	centroids [][]float32
	dim       int
}

// NewModel wraps pre-computed centroids, typically restored from storage.
func NewModel(centroids [][]float32) (*Model, error) {
	if len(centroids) == 0 {
		return nil, fmt.Errorf("%w: no centroids", ErrInvalidClusterCount)
	}
	dim := len(centroids[0])
	for i, c := range centroids {
		if len(c) != dim {
			return nil, fmt.Errorf("cluster: centroid %d has %d dimensions, want %d", i, len(c), dim)
		}
	}
	return &Model{centroids: centroids, dim: dim}, nil
}

// K returns the number of clusters.
func (m *Model) K() int { return len(m.centroids) }

// Dim returns the centroid dimensionality.
func (m *Model) Dim() int { return m.dim }

// Centroids returns a copy of the centroid vectors.
func (m *Model) Centroids() [][]float32 {
	out := make([][]float32, len(m.centroids))
	for i, c := range m.centroids {
		out[i] = append([]float32(nil), c...)
	}
	return out
}

// Assign returns the index of the centroid nearest to vec by Euclidean
// distance.
func (m *Model) Assign(vec []float32) (int, error) {
	if len(vec) != m.dim {
		return 0, fmt.Errorf("cluster: vector has %d dimensions, want %d", len(vec), m.dim)
	}
	best, bestDist := 0, float32(0)
	point := search.Float32s(vec)
	for i, c := range m.centroids {
		d := point.EuclideanDistance(c)
		if i == 0 || d < bestDist {
			best, bestDist = i, d
		}
	}
	return best, nil
}

// AssignAll assigns every vector to its nearest centroid, preserving input
// order.
func (m *Model) AssignAll(vectors [][]float32) ([]int, error) {
	out := make([]int, len(vectors))
	for i, vec := range vectors {
		a, err := m.Assign(vec)
		if err != nil {
			return nil, fmt.Errorf("cluster: vector %d: %w", i, err)
		}
		out[i] = a
	}
	return out, nil
}

// Distances returns the Euclidean distance from vec to every centroid, in
// centroid order.
func (m *Model) Distances(vec []float32) ([]float32, error) {
	if len(vec) != m.dim {
		return nil, fmt.Errorf("cluster: vector has %d dimensions, want %d", len(vec), m.dim)
	}
	point := search.Float32s(vec)
	out := make([]float32, len(m.centroids))
	for i, c := range m.centroids {
		out[i] = point.EuclideanDistance(c)
	}
	return out, nil
}
