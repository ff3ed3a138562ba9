package vector

import (
	"errors"
	"fmt"
	"sort"
)

// ErrInvalidLimit reports a negative result limit.
var ErrInvalidLimit = errors.New("vector: negative result limit")

// Match is a scored candidate. Pos is the candidate's position in the slice
// passed to Rank.
type Match struct {
	Pos   int
	Score float64
}

// Rank scores every candidate against query with cosine similarity, keeps
// those with score >= threshold, and returns them ordered by descending
// score. Equal scores keep the candidates' original order. k > 0 truncates
// the result to the first k matches; k == 0 applies no limit.
//
// The scan is O(len(candidates)); passing the entire reference corpus gives
// the exact retrieval path.
func Rank(query []float32, candidates [][]float32, threshold float64, k int) ([]Match, error) {
	if k < 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidLimit, k)
	}
	matches := make([]Match, 0, len(candidates))
	for pos, candidate := range candidates {
		score, err := CosineSimilarity(query, candidate)
		if err != nil {
			return nil, fmt.Errorf("candidate %d: %w", pos, err)
		}
		if score >= threshold {
			matches = append(matches, Match{Pos: pos, Score: score})
		}
	}
	sort.SliceStable(matches, func(i, j int) bool { return matches[i].Score > matches[j].Score })
	if k > 0 && k < len(matches) {
		matches = matches[:k]
	}
	return matches, nil
}
