package cluster

import (
	"fmt"
	"math"
	"math/rand"

	"github.com/viant/vec/search"
)

const (
	defaultMaxIterations = 100
	defaultTolerance     = 1e-4
	defaultSeed          = 1
)

type fitConfig struct {
	maxIterations int
	tolerance     float64
	seed          int64
}

// FitOption customizes a k-means run.
type FitOption func(*fitConfig)

// WithMaxIterations caps the number of Lloyd iterations.
func WithMaxIterations(n int) FitOption {
	return func(c *fitConfig) { c.maxIterations = n }
}

// WithTolerance sets the centroid-movement threshold below which the run
// converges.
func WithTolerance(tol float64) FitOption {
	return func(c *fitConfig) { c.tolerance = tol }
}

// WithSeed sets the random seed for kmeans++ initialization. The default
// seed is fixed, so repeated fits over the same corpus produce the same
// clustering.
func WithSeed(seed int64) FitOption {
	return func(c *fitConfig) { c.seed = seed }
}

// Fit partitions vectors into k clusters and returns the fitted model along
// with each vector's cluster assignment, in input order. k must be in
// [1, len(vectors)]; all vectors must share the same dimensionality.
func Fit(vectors [][]float32, k int, opts ...FitOption) (*Model, []int, error) {
	if k < 1 || k > len(vectors) {
		return nil, nil, fmt.Errorf("%w: %d clusters for %d vectors", ErrInvalidClusterCount, k, len(vectors))
	}
	dim := len(vectors[0])
	for i, vec := range vectors {
		if len(vec) != dim {
			return nil, nil, fmt.Errorf("cluster: vector %d has %d dimensions, want %d", i, len(vec), dim)
		}
	}
	cfg := fitConfig{
		maxIterations: defaultMaxIterations,
		tolerance:     defaultTolerance,
		seed:          defaultSeed,
	}
	for _, opt := range opts {
		opt(&cfg)
	}
	rng := rand.New(rand.NewSource(cfg.seed))

	centroids := seedCentroids(vectors, k, rng)
	assignments := make([]int, len(vectors))
	for iter := 0; iter < cfg.maxIterations; iter++ {
		assign(vectors, centroids, assignments)
		next := recompute(vectors, assignments, k, dim)
		reseedEmpty(next, vectors, centroids, assignments)
		if shift(centroids, next) <= cfg.tolerance {
			centroids = next
			break
		}
		centroids = next
	}
	assign(vectors, centroids, assignments)

	model := &Model{centroids: centroids, dim: dim}
	return model, assignments, nil
}

// seedCentroids picks initial centroids with kmeans++: the first uniformly at
// random, each subsequent one weighted by squared distance to the nearest
// already-chosen centroid.
func seedCentroids(vectors [][]float32, k int, rng *rand.Rand) [][]float32 {
	centroids := make([][]float32, 0, k)
	first := append([]float32(nil), vectors[rng.Intn(len(vectors))]...)
	centroids = append(centroids, first)

	dists := make([]float64, len(vectors))
	for i := range dists {
		dists[i] = math.Inf(1)
	}
	for len(centroids) < k {
		last := centroids[len(centroids)-1]
		var total float64
		for i, vec := range vectors {
			d := float64(search.Float32s(vec).EuclideanDistance(last))
			d *= d
			if d < dists[i] {
				dists[i] = d
			}
			total += dists[i]
		}
		next := 0
		if total > 0 {
			target := rng.Float64() * total
			for i, d := range dists {
				target -= d
				if target <= 0 {
					next = i
					break
				}
			}
		} else {
			next = rng.Intn(len(vectors))
		}
		centroids = append(centroids, append([]float32(nil), vectors[next]...))
	}
	return centroids
}

func assign(vectors, centroids [][]float32, assignments []int) {
	for i, vec := range vectors {
		point := search.Float32s(vec)
		best, bestDist := 0, float32(0)
		for j, c := range centroids {
			d := point.EuclideanDistance(c)
			if j == 0 || d < bestDist {
				best, bestDist = j, d
			}
		}
		assignments[i] = best
	}
}

func recompute(vectors [][]float32, assignments []int, k, dim int) [][]float32 {
	sums := make([][]float64, k)
	counts := make([]int, k)
	for i := range sums {
		sums[i] = make([]float64, dim)
	}
	for i, vec := range vectors {
		c := assignments[i]
		counts[c]++
		for d, v := range vec {
			sums[c][d] += float64(v)
		}
	}
	centroids := make([][]float32, k)
	for i := range centroids {
		centroids[i] = make([]float32, dim)
		if counts[i] == 0 {
			continue
		}
		for d := range centroids[i] {
			centroids[i][d] = float32(sums[i][d] / float64(counts[i]))
		}
	}
	return centroids
}

// reseedEmpty replaces each empty cluster's centroid with the vector farthest
// from its current centroid, so no cluster stays empty across iterations.
func reseedEmpty(next, vectors, prev [][]float32, assignments []int) {
	counts := make([]int, len(next))
	for _, a := range assignments {
		counts[a]++
	}
	for c, n := range counts {
		if n > 0 {
			continue
		}
		farthest, farthestDist := 0, float32(-1)
		for i, vec := range vectors {
			d := search.Float32s(vec).EuclideanDistance(prev[assignments[i]])
			if d > farthestDist {
				farthest, farthestDist = i, d
			}
		}
		next[c] = append([]float32(nil), vectors[farthest]...)
	}
}

// shift returns the largest Euclidean movement of any centroid between two
// iterations.
func shift(prev, next [][]float32) float64 {
	var max float64
	for i := range prev {
		d := float64(search.Float32s(prev[i]).EuclideanDistance(next[i]))
		if d > max {
			max = d
		}
	}
	return max
}
