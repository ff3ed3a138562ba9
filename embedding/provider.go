package embedding

import "context"

// Provider is the abstraction over any text-embedding backend. A single call
// encodes a batch of texts into fixed-length float32 vectors, one per input,
// in input order. All vectors produced by one Provider instance share the
// same dimensionality; vectors from different providers must not be mixed in
// one similarity computation or one index.
//
// Implementations must be safe for concurrent use.
type Provider interface {
	// Encode maps texts to embedding vectors, preserving length and order.
	// Partial results are never returned: on error the whole batch failed.
	Encode(ctx context.Context, texts []string) ([][]float32, error)

	// Dimensions returns the fixed vector length produced by this provider,
	// or 0 when the model does not declare it up front.
	Dimensions() int

	// ModelID identifies the underlying model, for logging and for callers
	// that must rebuild indexes when the model changes.
	ModelID() string
}
