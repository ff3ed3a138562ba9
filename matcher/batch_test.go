package matcher_test

import (
	"context"
	"errors"
	"testing"

	"github.com/viant/namematch/index"
)

func TestFindMatchesBatch(t *testing.T) {
	m, p := newMatcher()
	ctx := context.Background()
	corpus := []string{"Apple Inc", "Apple Store", "Microsoft Corporation", "Zenith Electronics"}
	if err := m.BuildIndex(ctx, corpus, 2, ""); err != nil {
		t.Fatalf("BuildIndex failed: %v", err)
	}
	calls := p.EncodeCalls()

	queries := []string{"Apple Incorporated", "Microsoft", "Zenith"}
	for _, parallelism := range []int{1, 4} {
		results, err := m.FindMatchesBatch(ctx, queries, index.SearchOptions{Threshold: 0.4}, parallelism)
		if err != nil {
			t.Fatalf("FindMatchesBatch(parallelism=%d) failed: %v", parallelism, err)
		}
		if len(results) != len(queries) {
			t.Fatalf("got %d result sets, want %d", len(results), len(queries))
		}
		if len(results[0]) == 0 || results[0][0].Name != "Apple Inc" {
			t.Fatalf("query %q matched %v, want Apple Inc first", queries[0], results[0])
		}
		if len(results[1]) == 0 || results[1][0].Name != "Microsoft Corporation" {
			t.Fatalf("query %q matched %v, want Microsoft Corporation first", queries[1], results[1])
		}
		if len(results[2]) == 0 || results[2][0].Name != "Zenith Electronics" {
			t.Fatalf("query %q matched %v, want Zenith Electronics first", queries[2], results[2])
		}
	}
	// All queries go through the cache-backed embedder: one batch call for
	// the first run, none for the second.
	if got := p.EncodeCalls() - calls; got != 1 {
		t.Fatalf("EncodeCalls for two batch runs = %d, want 1", got)
	}
}

func TestFindMatchesBatchNotBuilt(t *testing.T) {
	m, _ := newMatcher()
	_, err := m.FindMatchesBatch(context.Background(), []string{"Apple"}, index.SearchOptions{}, 2)
	if !errors.Is(err, index.ErrNotBuilt) {
		t.Fatalf("expected ErrNotBuilt, got %v", err)
	}
}

func TestFindMatchesBatchEmpty(t *testing.T) {
	m, _ := newMatcher()
	ctx := context.Background()
	if err := m.BuildIndex(ctx, []string{"Apple Inc", "Microsoft Corporation"}, 1, ""); err != nil {
		t.Fatalf("BuildIndex failed: %v", err)
	}
	results, err := m.FindMatchesBatch(ctx, nil, index.SearchOptions{}, 4)
	if err != nil {
		t.Fatalf("FindMatchesBatch failed: %v", err)
	}
	if len(results) != 0 {
		t.Fatalf("got %d result sets for no queries", len(results))
	}
}
