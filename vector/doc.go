// Package vector implements the exact similarity engine: cosine similarity
// and Euclidean distance over float32 embeddings, brute-force threshold/top-k
// ranking, and the BLOB encoding used by the persistence layer.
package vector
