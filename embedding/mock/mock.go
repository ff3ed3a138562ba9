// Package mock provides a deterministic, in-process test double for the
// embedding.Provider interface. Vectors are built from hashed character
// n-grams, so lexically overlapping names receive high cosine similarity and
// disjoint names score near zero. That is close enough to a real model to
// exercise ranking, clustering, and persistence without network access.
package mock

import (
	"context"
	"hash/fnv"
	"strings"
	"sync"

	"github.com/viant/namematch/embedding"
)

var _ embedding.Provider = (*Provider)(nil)

// Provider is a deterministic embedding.Provider: identical input text
// always yields the identical vector. It also records every Encode batch so
// tests can assert on caching behavior. Construct with New.
type Provider struct {
	dim int

	mu    sync.Mutex
	calls [][]string
	err   error
}

// New returns a mock provider producing dim-dimensional vectors.
func New(dim int) *Provider { return &Provider{dim: dim} }

// Fail makes every subsequent Encode call return err; nil restores normal
// operation.
func (p *Provider) Fail(err error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.err = err
}

// Encode implements embedding.Provider.
func (p *Provider) Encode(ctx context.Context, texts []string) ([][]float32, error) {
	p.mu.Lock()
	batch := make([]string, len(texts))
	copy(batch, texts)
	p.calls = append(p.calls, batch)
	err := p.err
	p.mu.Unlock()
	if err != nil {
		return nil, err
	}
	out := make([][]float32, len(texts))
	for i, text := range texts {
		out[i] = p.embed(text)
	}
	return out, nil
}

// Dimensions implements embedding.Provider.
func (p *Provider) Dimensions() int { return p.dim }

// ModelID implements embedding.Provider.
func (p *Provider) ModelID() string { return "mock-ngram" }

// EncodeCalls returns the number of Encode invocations so far.
func (p *Provider) EncodeCalls() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.calls)
}

// Calls returns a copy of every batch passed to Encode, in order.
func (p *Provider) Calls() [][]string {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([][]string, len(p.calls))
	for i, c := range p.calls {
		out[i] = append([]string(nil), c...)
	}
	return out
}

// embed accumulates hashed per-word bigrams and trigrams plus a
// double-weighted whole-word feature, so names sharing words or word
// fragments land close together in the vector space.
func (p *Provider) embed(text string) []float32 {
	vec := make([]float32, p.dim)
	for _, word := range strings.Fields(strings.ToLower(text)) {
		p.bump(vec, word, 2)
		runes := []rune(word)
		for n := 2; n <= 3; n++ {
			for i := 0; i+n <= len(runes); i++ {
				p.bump(vec, string(runes[i:i+n]), 1)
			}
		}
	}
	return vec
}

func (p *Provider) bump(vec []float32, feature string, weight float32) {
	h := fnv.New32a()
	h.Write([]byte(feature))
	vec[int(h.Sum32())%p.dim] += weight
}
