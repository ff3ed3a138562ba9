package index

import (
	"sort"

	"github.com/viant/namematch/vector"
)

// SearchOptions controls a single search.
type SearchOptions struct {
	// Threshold is the minimum cosine similarity for a match.
	Threshold float64
	// K caps the number of matches returned; zero means no cap.
	K int
	// Approx restricts the scan to the clusters nearest the query instead
	// of the full corpus.
	Approx bool
	// Probes is the number of nearest clusters scanned when Approx is set.
	// Zero means one.
	Probes int
}

// Match is a scored search hit.
type Match struct {
	Name  string
	Score float64
}

// Search ranks the corpus against the query vector and returns matches with
// similarity at or above the threshold, best first. Ties keep corpus order.
func (ix *Index) Search(query []float32, opts SearchOptions) ([]Match, error) {
	if !ix.Built() {
		return nil, ErrNotBuilt
	}
	positions := ix.candidates(query, opts)
	vectors := make([][]float32, len(positions))
	for i, pos := range positions {
		vectors[i] = ix.vectors[pos]
	}
	ranked, err := vector.Rank(query, vectors, opts.Threshold, opts.K)
	if err != nil {
		return nil, err
	}
	matches := make([]Match, len(ranked))
	for i, r := range ranked {
		matches[i] = Match{Name: ix.names[positions[r.Pos]], Score: r.Score}
	}
	return matches, nil
}

// candidates returns the corpus positions to score, in corpus order.
func (ix *Index) candidates(query []float32, opts SearchOptions) []int {
	if !opts.Approx {
		all := make([]int, len(ix.names))
		for i := range all {
			all[i] = i
		}
		return all
	}
	probes := opts.Probes
	if probes < 1 {
		probes = 1
	}
	if probes > ix.model.K() {
		probes = ix.model.K()
	}
	dists, err := ix.model.Distances(query)
	if err != nil {
		// Let Rank surface the dimension mismatch against the full corpus.
		all := make([]int, len(ix.names))
		for i := range all {
			all[i] = i
		}
		return all
	}
	order := make([]int, len(dists))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool { return dists[order[a]] < dists[order[b]] })

	probed := make(map[int]bool, probes)
	for _, c := range order[:probes] {
		probed[c] = true
	}
	var out []int
	for pos, c := range ix.assignments {
		if probed[c] {
			out = append(out, pos)
		}
	}
	return out
}
