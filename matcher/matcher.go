package matcher

import (
	"context"
	"log/slog"

	"github.com/viant/namematch/cluster"
	"github.com/viant/namematch/embedding"
	"github.com/viant/namematch/index"
	"github.com/viant/namematch/store"
	"github.com/viant/namematch/vector"
)

// Option configures a Matcher.
type Option func(*options)

type options struct {
	preprocess    embedding.PreprocessFunc
	preprocessSet bool
	cache         *embedding.Cache
	fitOpts       []cluster.FitOption
}

// WithPreprocess replaces the default name normalization. Pass nil to embed
// raw names.
func WithPreprocess(fn embedding.PreprocessFunc) Option {
	return func(o *options) {
		o.preprocess = fn
		o.preprocessSet = true
	}
}

// WithStopwords keeps the default normalization but with a custom stopword
// list.
func WithStopwords(stopwords []string) Option {
	return func(o *options) {
		o.preprocess = DefaultPreprocess(stopwords)
		o.preprocessSet = true
	}
}

// WithCache shares an embedding cache with the matcher, e.g. one warmed by a
// previous run against the same model.
func WithCache(c *embedding.Cache) Option {
	return func(o *options) { o.cache = c }
}

// WithFitOptions forwards k-means tuning to every BuildIndex call.
func WithFitOptions(opts ...cluster.FitOption) Option {
	return func(o *options) { o.fitOpts = opts }
}

// Matcher scores company and organization names by embedding similarity.
// Construct with New; the zero value is not usable.
//
// The embedding cache is internally synchronized, but index mutation
// (BuildIndex, ExpandIndex, LoadIndex) must not race with searches.
type Matcher struct {
	embedder *embedding.Embedder
	index    *index.Index
	fitOpts  []cluster.FitOption
}

// New returns a Matcher backed by the given embedding provider. Unless
// overridden, names are normalized with DefaultPreprocess(DefaultStopwords).
func New(p embedding.Provider, opts ...Option) *Matcher {
	o := options{}
	for _, opt := range opts {
		opt(&o)
	}
	if !o.preprocessSet {
		o.preprocess = DefaultPreprocess(DefaultStopwords)
	}
	embedOpts := []embedding.Option{embedding.WithPreprocess(o.preprocess)}
	if o.cache != nil {
		embedOpts = append(embedOpts, embedding.WithCache(o.cache))
	}
	return &Matcher{
		embedder: embedding.NewEmbedder(p, embedOpts...),
		index:    index.New(),
		fitOpts:  o.fitOpts,
	}
}

// Embedder returns the underlying embedding layer.
func (m *Matcher) Embedder() *embedding.Embedder { return m.embedder }

// Index returns the current search index; unbuilt until BuildIndex or
// LoadIndex succeeds.
func (m *Matcher) Index() *index.Index { return m.index }

// Stats reports the cluster distribution of the current index.
func (m *Matcher) Stats() index.Stats { return m.index.Stats() }

// Compare returns the cosine similarity of two names' embeddings, in [-1, 1].
// If either name embeds to a zero vector the similarity is 0.
func (m *Matcher) Compare(ctx context.Context, a, b string) (float64, error) {
	vecs, err := m.embedder.EmbedAll(ctx, []string{a, b})
	if err != nil {
		return 0, err
	}
	return vector.CosineSimilarity(vecs[0], vecs[1])
}

// Embed returns the embedding of a single normalized name.
func (m *Matcher) Embed(ctx context.Context, name string) ([]float32, error) {
	return m.embedder.Embed(ctx, name)
}

// EmbedMany returns one embedding per name, in input order.
func (m *Matcher) EmbedMany(ctx context.Context, names []string) ([][]float32, error) {
	return m.embedder.EmbedAll(ctx, names)
}

// BuildIndex embeds the corpus, fits nClusters k-means clusters over it, and
// installs the result as the matcher's index. If saveDir is non-empty the
// index is also persisted there. The previous index stays in place unless
// every step, persistence included, succeeds.
func (m *Matcher) BuildIndex(ctx context.Context, names []string, nClusters int, saveDir string) error {
	vectors, err := m.embedder.EmbedAll(ctx, names)
	if err != nil {
		return err
	}
	fresh := index.New()
	if err := fresh.Build(names, vectors, nClusters, m.fitOpts...); err != nil {
		return err
	}
	if saveDir != "" {
		if err := store.Save(ctx, saveDir, fresh); err != nil {
			return err
		}
	}
	m.index = fresh
	slog.Debug("index built", "entries", fresh.Len(), "clusters", nClusters, "saved", saveDir != "")
	return nil
}

// LoadIndex replaces the matcher's index with one restored from dir. The
// current index is untouched on failure.
func (m *Matcher) LoadIndex(ctx context.Context, dir string) error {
	loaded, err := store.Load(ctx, dir)
	if err != nil {
		return err
	}
	m.index = loaded
	slog.Debug("index loaded", "dir", dir, "entries", loaded.Len())
	return nil
}

// ExpandIndex embeds the new names and appends them to the built index,
// assigning each to its nearest existing centroid. If saveDir is non-empty
// the expanded index is persisted there; a persistence failure is returned
// after the in-memory expansion already took effect.
func (m *Matcher) ExpandIndex(ctx context.Context, names []string, saveDir string) error {
	if !m.index.Built() {
		return index.ErrNotBuilt
	}
	vectors, err := m.embedder.EmbedAll(ctx, names)
	if err != nil {
		return err
	}
	if err := m.index.Expand(names, vectors); err != nil {
		return err
	}
	slog.Debug("index expanded", "added", len(names), "entries", m.index.Len())
	if saveDir != "" {
		return store.Save(ctx, saveDir, m.index)
	}
	return nil
}

// FindMatches embeds the query and searches the built index.
func (m *Matcher) FindMatches(ctx context.Context, query string, opts index.SearchOptions) ([]index.Match, error) {
	if !m.index.Built() {
		return nil, index.ErrNotBuilt
	}
	vec, err := m.embedder.Embed(ctx, query)
	if err != nil {
		return nil, err
	}
	return m.index.Search(vec, opts)
}

// FindMatchesAmong scores the query against an ad-hoc candidate list, with
// no index involved. The query and all candidates are embedded in a single
// batch; the scan is always exhaustive, so SearchOptions.Approx and Probes
// are ignored.
func (m *Matcher) FindMatchesAmong(ctx context.Context, query string, candidates []string, opts index.SearchOptions) ([]index.Match, error) {
	batch := append([]string{query}, candidates...)
	vecs, err := m.embedder.EmbedAll(ctx, batch)
	if err != nil {
		return nil, err
	}
	ranked, err := vector.Rank(vecs[0], vecs[1:], opts.Threshold, opts.K)
	if err != nil {
		return nil, err
	}
	matches := make([]index.Match, len(ranked))
	for i, r := range ranked {
		matches[i] = index.Match{Name: candidates[r.Pos], Score: r.Score}
	}
	return matches, nil
}
