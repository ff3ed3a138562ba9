package matcher

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/viant/namematch/index"
)

// FindMatchesBatch searches the built index for every query and returns one
// result slice per query, in query order. All queries are embedded in a
// single provider call; searches then run on up to parallelism goroutines,
// or sequentially when parallelism is 1 or less.
func (m *Matcher) FindMatchesBatch(ctx context.Context, queries []string, opts index.SearchOptions, parallelism int) ([][]index.Match, error) {
	if !m.index.Built() {
		return nil, index.ErrNotBuilt
	}
	vecs, err := m.embedder.EmbedAll(ctx, queries)
	if err != nil {
		return nil, err
	}
	results := make([][]index.Match, len(queries))
	if parallelism <= 1 {
		for i, vec := range vecs {
			matches, err := m.index.Search(vec, opts)
			if err != nil {
				return nil, err
			}
			results[i] = matches
		}
		return results, nil
	}

	g, _ := errgroup.WithContext(ctx)
	g.SetLimit(parallelism)
	for i, vec := range vecs {
		g.Go(func() error {
			matches, err := m.index.Search(vec, opts)
			if err != nil {
				return err
			}
			results[i] = matches
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}
