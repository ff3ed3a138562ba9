// Package index maintains the searchable corpus of names and their embedding
// vectors. Build fits a k-means model over the corpus so approximate search
// can probe only the clusters nearest a query; exact search scans every
// entry. Expand appends new entries against the fixed centroids without
// refitting, trading cluster balance for speed.
package index
