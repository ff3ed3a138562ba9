// Package embedding defines the boundary with the external embedding model
// and a caching Embedder built on top of it. The model is opaque: anything
// that encodes a batch of strings into fixed-length float32 vectors can back
// an Embedder. Construction and loading of the model itself belongs to the
// Provider implementation, not to this package.
package embedding
