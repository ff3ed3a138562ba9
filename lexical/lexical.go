package lexical

import (
	"errors"
	"sort"
	"strings"

	"github.com/antzucaro/matchr"
)

// ErrInvalidLimit indicates a negative result cap.
var ErrInvalidLimit = errors.New("lexical: limit must not be negative")

// Similarity returns the case-insensitive Jaro-Winkler similarity of two
// names, in [0, 1].
func Similarity(a, b string) float64 {
	return matchr.JaroWinkler(strings.ToLower(a), strings.ToLower(b), false)
}

// EditDistance returns the Levenshtein distance between two names,
// case-insensitive.
func EditDistance(a, b string) int {
	return matchr.Levenshtein(strings.ToLower(a), strings.ToLower(b))
}

// Match is a scored candidate.
type Match struct {
	Name  string
	Score float64
}

// Rank scores every candidate against the query and returns those at or
// above the threshold, best first. k caps the result count; zero means no
// cap. Ties keep candidate order.
func Rank(query string, candidates []string, threshold float64, k int) ([]Match, error) {
	if k < 0 {
		return nil, ErrInvalidLimit
	}
	var matches []Match
	for _, candidate := range candidates {
		score := Similarity(query, candidate)
		if score >= threshold {
			matches = append(matches, Match{Name: candidate, Score: score})
		}
	}
	sort.SliceStable(matches, func(i, j int) bool { return matches[i].Score > matches[j].Score })
	if k > 0 && len(matches) > k {
		matches = matches[:k]
	}
	return matches, nil
}
