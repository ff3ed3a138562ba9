package embedding

import (
	"context"
	"errors"
	"fmt"
)

// ErrModel indicates that the external embedding model call failed. The
// provider's error is wrapped underneath it. Failures are never retried
// here; they surface unchanged to the caller.
var ErrModel = errors.New("embedding: model call failed")

// PreprocessFunc normalizes a name before cache lookup and model invocation.
type PreprocessFunc func(string) string

// Option configures an Embedder.
type Option func(*Embedder)

// WithPreprocess sets the normalization applied to every name. A nil fn
// leaves names untouched.
func WithPreprocess(fn PreprocessFunc) Option {
	return func(e *Embedder) { e.preprocess = fn }
}

// WithCache supplies an externally owned cache, e.g. to share one across
// embedders bound to the same model.
func WithCache(c *Cache) Option {
	return func(e *Embedder) { e.cache = c }
}

// Embedder turns names into embedding vectors via a Provider, memoizing
// results by preprocessed name. Each Embedder owns its cache unless one is
// injected with WithCache; caches are never shared implicitly, so embedders
// bound to different models cannot contaminate each other.
type Embedder struct {
	provider   Provider
	cache      *Cache
	preprocess PreprocessFunc
}

// NewEmbedder returns an Embedder backed by the given provider.
func NewEmbedder(p Provider, opts ...Option) *Embedder {
	e := &Embedder{provider: p}
	for _, opt := range opts {
		opt(e)
	}
	if e.cache == nil {
		e.cache = NewCache()
	}
	return e
}

// Provider returns the underlying model boundary.
func (e *Embedder) Provider() Provider { return e.provider }

// Cache returns the embedder's memoization cache.
func (e *Embedder) Cache() *Cache { return e.cache }

// Embed returns the embedding for a single name.
func (e *Embedder) Embed(ctx context.Context, name string) ([]float32, error) {
	vecs, err := e.EmbedAll(ctx, []string{name})
	if err != nil {
		return nil, err
	}
	return vecs[0], nil
}

// EmbedAll returns one embedding per name, in input order. Cached entries
// are served from memory; all misses are encoded in a single provider call
// to amortize the model's fixed per-call overhead. Repeated names within one
// batch are encoded once.
func (e *Embedder) EmbedAll(ctx context.Context, names []string) ([][]float32, error) {
	keys := make([]string, len(names))
	for i, name := range names {
		if e.preprocess != nil {
			keys[i] = e.preprocess(name)
		} else {
			keys[i] = name
		}
	}

	out := make([][]float32, len(names))
	var missing []string
	seen := make(map[string]bool)
	for i, key := range keys {
		if vec, ok := e.cache.Get(key); ok {
			out[i] = vec
			continue
		}
		if !seen[key] {
			seen[key] = true
			missing = append(missing, key)
		}
	}
	if len(missing) == 0 {
		return out, nil
	}

	vecs, err := e.provider.Encode(ctx, missing)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrModel, err)
	}
	if len(vecs) != len(missing) {
		return nil, fmt.Errorf("%w: got %d vectors for %d inputs", ErrModel, len(vecs), len(missing))
	}
	for i, key := range missing {
		e.cache.Put(key, vecs[i])
	}
	for i, key := range keys {
		if out[i] == nil {
			vec, _ := e.cache.Get(key)
			out[i] = vec
		}
	}
	return out, nil
}
