// Package store persists a built index to a directory as two SQLite
// artifacts: corpus.db holds the names and their embedding BLOBs, clusters.db
// holds the fitted centroids, per-entry cluster assignments, and model
// metadata. Save writes each artifact to a temporary file and renames it into
// place, so a crash mid-save never leaves a half-written artifact behind.
// Load validates both artifacts against each other and fails with ErrCorrupt
// rather than restoring an inconsistent index.
package store
