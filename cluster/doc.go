// Package cluster implements k-means clustering over float32 embedding
// vectors. Fit partitions a corpus into k clusters using kmeans++ seeding and
// Lloyd iterations; the resulting Model assigns new vectors to their nearest
// centroid without refitting, which is what the approximate search index uses
// to narrow a query to a handful of candidate clusters.
package cluster
