package matcher_test

import (
	"context"
	"errors"
	"testing"

	"github.com/viant/namematch/cluster"
	"github.com/viant/namematch/embedding"
	"github.com/viant/namematch/embedding/mock"
	"github.com/viant/namematch/index"
	"github.com/viant/namematch/matcher"
	"github.com/viant/namematch/store"
)

const mockDim = 512

func newMatcher(opts ...matcher.Option) (*matcher.Matcher, *mock.Provider) {
	p := mock.New(mockDim)
	return matcher.New(p, opts...), p
}

func TestCompareRelatedNames(t *testing.T) {
	m, _ := newMatcher()
	ctx := context.Background()

	related, err := m.Compare(ctx, "Apple Inc", "Apple Incorporated")
	if err != nil {
		t.Fatalf("Compare failed: %v", err)
	}
	unrelated, err := m.Compare(ctx, "Apple Inc", "Microsoft")
	if err != nil {
		t.Fatalf("Compare failed: %v", err)
	}
	if related < 0.5 {
		t.Fatalf("Compare(Apple Inc, Apple Incorporated) = %v, want >= 0.5", related)
	}
	if unrelated >= related {
		t.Fatalf("unrelated pair scored %v, related pair %v", unrelated, related)
	}
}

func TestCompareStopwordOnlyName(t *testing.T) {
	m, _ := newMatcher()
	// "Inc" normalizes to the empty string and embeds to a zero vector.
	sim, err := m.Compare(context.Background(), "Inc", "Apple")
	if err != nil {
		t.Fatalf("Compare failed: %v", err)
	}
	if sim != 0 {
		t.Fatalf("Compare(Inc, Apple) = %v, want 0", sim)
	}
}

func TestCompareReusesCache(t *testing.T) {
	m, p := newMatcher()
	ctx := context.Background()

	if _, err := m.Compare(ctx, "Apple Inc", "Apple Incorporated"); err != nil {
		t.Fatalf("Compare failed: %v", err)
	}
	if _, err := m.Compare(ctx, "Apple Inc", "Apple Incorporated"); err != nil {
		t.Fatalf("Compare failed: %v", err)
	}
	if p.EncodeCalls() != 1 {
		t.Fatalf("EncodeCalls = %d, want 1 (repeat comparison must hit the cache)", p.EncodeCalls())
	}
}

func TestBuildIndexAndFindMatches(t *testing.T) {
	m, p := newMatcher()
	ctx := context.Background()
	corpus := []string{
		"Apple Inc", "Apple Store", "Applied Materials",
		"Microsoft Corporation", "Micro Focus", "Zenith Electronics",
	}
	if err := m.BuildIndex(ctx, corpus, 2, ""); err != nil {
		t.Fatalf("BuildIndex failed: %v", err)
	}
	if p.EncodeCalls() != 1 {
		t.Fatalf("EncodeCalls = %d, want 1 (corpus embedded in a single batch)", p.EncodeCalls())
	}

	matches, err := m.FindMatches(ctx, "Apple Incorporated", index.SearchOptions{Threshold: 0.4})
	if err != nil {
		t.Fatalf("FindMatches failed: %v", err)
	}
	if len(matches) == 0 || matches[0].Name != "Apple Inc" {
		t.Fatalf("matches = %v, want Apple Inc first", matches)
	}
	for i := 1; i < len(matches); i++ {
		if matches[i].Score > matches[i-1].Score {
			t.Fatalf("matches out of order: %v", matches)
		}
	}
}

func TestFindMatchesNotBuilt(t *testing.T) {
	m, _ := newMatcher()
	if _, err := m.FindMatches(context.Background(), "Apple", index.SearchOptions{}); !errors.Is(err, index.ErrNotBuilt) {
		t.Fatalf("expected ErrNotBuilt, got %v", err)
	}
}

func TestBuildIndexInvalidClusterCount(t *testing.T) {
	m, _ := newMatcher()
	err := m.BuildIndex(context.Background(), []string{"a", "b"}, 0, "")
	if !errors.Is(err, cluster.ErrInvalidClusterCount) {
		t.Fatalf("expected ErrInvalidClusterCount, got %v", err)
	}
	if m.Index().Built() {
		t.Fatalf("failed BuildIndex left an installed index")
	}
}

func TestBuildIndexModelError(t *testing.T) {
	m, p := newMatcher()
	p.Fail(errors.New("quota exceeded"))
	err := m.BuildIndex(context.Background(), []string{"a", "b"}, 1, "")
	if !errors.Is(err, embedding.ErrModel) {
		t.Fatalf("expected ErrModel, got %v", err)
	}
}

func TestFindMatchesAmong(t *testing.T) {
	m, p := newMatcher()
	ctx := context.Background()
	candidates := []string{"Apple Store", "Microsoft Corporation", "Apple Incorporated"}

	matches, err := m.FindMatchesAmong(ctx, "Apple Inc", candidates, index.SearchOptions{Threshold: 0.4})
	if err != nil {
		t.Fatalf("FindMatchesAmong failed: %v", err)
	}
	if p.EncodeCalls() != 1 {
		t.Fatalf("EncodeCalls = %d, want 1 (query and candidates in one batch)", p.EncodeCalls())
	}
	if len(matches) == 0 {
		t.Fatalf("no matches above threshold")
	}
	for _, match := range matches {
		if match.Name == "Microsoft Corporation" {
			t.Fatalf("unrelated candidate matched: %v", matches)
		}
	}
}

func TestExpandIndex(t *testing.T) {
	m, _ := newMatcher()
	ctx := context.Background()
	if err := m.BuildIndex(ctx, []string{"Apple Inc", "Microsoft Corporation"}, 2, ""); err != nil {
		t.Fatalf("BuildIndex failed: %v", err)
	}
	if err := m.ExpandIndex(ctx, []string{"Apple Store"}, ""); err != nil {
		t.Fatalf("ExpandIndex failed: %v", err)
	}
	if m.Index().Len() != 3 {
		t.Fatalf("index Len = %d after expand, want 3", m.Index().Len())
	}
	matches, err := m.FindMatches(ctx, "Apple Store", index.SearchOptions{Threshold: 0.9})
	if err != nil {
		t.Fatalf("FindMatches failed: %v", err)
	}
	if len(matches) == 0 || matches[0].Name != "Apple Store" {
		t.Fatalf("expanded entry not findable: %v", matches)
	}
}

func TestExpandIndexNotBuilt(t *testing.T) {
	m, _ := newMatcher()
	if err := m.ExpandIndex(context.Background(), []string{"Apple"}, ""); !errors.Is(err, index.ErrNotBuilt) {
		t.Fatalf("expected ErrNotBuilt, got %v", err)
	}
}

func TestBuildSaveAndLoadIndex(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	corpus := []string{"Apple Inc", "Apple Store", "Microsoft Corporation", "Zenith Electronics"}

	m, _ := newMatcher()
	if err := m.BuildIndex(ctx, corpus, 2, dir); err != nil {
		t.Fatalf("BuildIndex failed: %v", err)
	}
	want, err := m.FindMatches(ctx, "Apple Incorporated", index.SearchOptions{Threshold: 0.3})
	if err != nil {
		t.Fatalf("FindMatches failed: %v", err)
	}

	// A fresh matcher restores the index without re-embedding the corpus.
	fresh, p := newMatcher()
	if err := fresh.LoadIndex(ctx, dir); err != nil {
		t.Fatalf("LoadIndex failed: %v", err)
	}
	got, err := fresh.FindMatches(ctx, "Apple Incorporated", index.SearchOptions{Threshold: 0.3})
	if err != nil {
		t.Fatalf("FindMatches after load failed: %v", err)
	}
	if p.EncodeCalls() != 1 {
		t.Fatalf("EncodeCalls = %d, want 1 (only the query is embedded)", p.EncodeCalls())
	}
	if len(got) != len(want) {
		t.Fatalf("loaded matches = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("match %d differs after reload: %+v vs %+v", i, got[i], want[i])
		}
	}
}

func TestLoadIndexCorrupt(t *testing.T) {
	m, _ := newMatcher()
	err := m.LoadIndex(context.Background(), t.TempDir())
	if !errors.Is(err, store.ErrCorrupt) {
		t.Fatalf("expected ErrCorrupt, got %v", err)
	}
	if m.Index().Built() {
		t.Fatalf("failed LoadIndex installed an index")
	}
}

func TestStatsAfterBuild(t *testing.T) {
	m, _ := newMatcher()
	ctx := context.Background()
	corpus := []string{"Apple Inc", "Apple Store", "Microsoft Corporation", "Zenith Electronics"}
	if err := m.BuildIndex(ctx, corpus, 2, ""); err != nil {
		t.Fatalf("BuildIndex failed: %v", err)
	}
	s := m.Stats()
	if s.Entries != 4 || s.Clusters != 2 {
		t.Fatalf("Stats = %+v, want 4 entries in 2 clusters", s)
	}
}
