// Package matcher is the top-level API for company and organization name
// matching. A Matcher ties together the embedding layer, the clustered
// search index, and directory persistence: Compare scores two names,
// BuildIndex embeds a corpus and fits clusters over it, FindMatches queries
// the built index exactly or approximately, and LoadIndex restores a
// previously saved index without re-embedding the corpus.
package matcher
