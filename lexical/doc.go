// Package lexical scores name pairs with string-distance metrics. It serves
// as a cheap baseline next to embedding similarity: no model call, no index,
// just Jaro-Winkler over the raw characters. Useful for catching typos and
// near-duplicates that an embedding model may smooth over.
package lexical
