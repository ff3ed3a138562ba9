package index

import (
	"errors"
	"fmt"

	"github.com/viant/namematch/cluster"
)

// ErrNotBuilt indicates an operation that requires a built index.
var ErrNotBuilt = errors.New("index: index not built")

// Index is the in-memory search structure: the corpus names, their embedding
// vectors, and the fitted cluster model partitioning them. Entries keep their
// insertion order; positions are stable for the lifetime of the index.
//
// Index is not safe for concurrent mutation; concurrent Search calls are
// fine once building is done.
type Index struct {
	names       []string
	vectors     [][]float32
	model       *cluster.Model
	assignments []int
}

// New returns an empty, unbuilt index.
func New() *Index { return &Index{} }

// Built reports whether the index holds a fitted cluster model.
func (ix *Index) Built() bool { return ix != nil && ix.model != nil }

// Len returns the number of indexed entries.
func (ix *Index) Len() int { return len(ix.names) }

// Build replaces the index contents with the given corpus and fits nClusters
// k-means clusters over it. names and vectors correspond by position. On any
// error the previous contents are left untouched.
func (ix *Index) Build(names []string, vectors [][]float32, nClusters int, opts ...cluster.FitOption) error {
	if len(names) != len(vectors) {
		return fmt.Errorf("index: %d names for %d vectors", len(names), len(vectors))
	}
	if nClusters < 1 || nClusters > len(names) {
		return fmt.Errorf("%w: %d clusters for %d entries", cluster.ErrInvalidClusterCount, nClusters, len(names))
	}
	model, assignments, err := cluster.Fit(vectors, nClusters, opts...)
	if err != nil {
		return err
	}
	ix.names = append([]string(nil), names...)
	ix.vectors = copyVectors(vectors)
	ix.model = model
	ix.assignments = assignments
	return nil
}

// Expand appends new entries, assigning each to its nearest existing
// centroid. Centroids are never refit; heavy expansion can skew cluster
// sizes, which Stats makes visible. On any error the index is unchanged.
func (ix *Index) Expand(names []string, vectors [][]float32) error {
	if !ix.Built() {
		return ErrNotBuilt
	}
	if len(names) != len(vectors) {
		return fmt.Errorf("index: %d names for %d vectors", len(names), len(vectors))
	}
	assignments, err := ix.model.AssignAll(vectors)
	if err != nil {
		return err
	}
	ix.names = append(ix.names, names...)
	ix.vectors = append(ix.vectors, copyVectors(vectors)...)
	ix.assignments = append(ix.assignments, assignments...)
	return nil
}

// Restore reconstitutes an index from persisted state, validating that the
// pieces are mutually consistent.
func Restore(names []string, vectors [][]float32, model *cluster.Model, assignments []int) (*Index, error) {
	if model == nil {
		return nil, ErrNotBuilt
	}
	if len(names) != len(vectors) || len(names) != len(assignments) {
		return nil, fmt.Errorf("index: inconsistent sizes: %d names, %d vectors, %d assignments",
			len(names), len(vectors), len(assignments))
	}
	for i, vec := range vectors {
		if len(vec) != model.Dim() {
			return nil, fmt.Errorf("index: vector %d has %d dimensions, model expects %d", i, len(vec), model.Dim())
		}
	}
	for i, a := range assignments {
		if a < 0 || a >= model.K() {
			return nil, fmt.Errorf("index: entry %d assigned to cluster %d of %d", i, a, model.K())
		}
	}
	return &Index{
		names:       names,
		vectors:     vectors,
		model:       model,
		assignments: assignments,
	}, nil
}

// Names returns the indexed names in corpus order.
func (ix *Index) Names() []string {
	return append([]string(nil), ix.names...)
}

// Vectors returns the indexed vectors in corpus order.
func (ix *Index) Vectors() [][]float32 {
	return copyVectors(ix.vectors)
}

// Assignments returns each entry's cluster, in corpus order.
func (ix *Index) Assignments() []int {
	return append([]int(nil), ix.assignments...)
}

// Model returns the fitted cluster model, or nil for an unbuilt index.
func (ix *Index) Model() *cluster.Model { return ix.model }

func copyVectors(vectors [][]float32) [][]float32 {
	out := make([][]float32, len(vectors))
	for i, vec := range vectors {
		out[i] = append([]float32(nil), vec...)
	}
	return out
}
