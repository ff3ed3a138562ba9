// Package engine provides helpers for working with the modernc.org/sqlite
// driver in this module: opening connections and registering the vector
// similarity SQL functions. The persistence layer shares this driver setup,
// and the registered functions let callers score stored embeddings directly
// in SQL.
package engine
