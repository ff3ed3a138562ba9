package matcher

import (
	"strings"
	"unicode"

	"github.com/viant/namematch/embedding"
)

// DefaultStopwords are the legal-form suffixes stripped from names before
// embedding, so "Apple Inc" and "Apple Incorporated" normalize toward the
// same text.
var DefaultStopwords = []string{"inc", "corp", "corporation", "llc", "ltd", "limited", "company"}

// DefaultPreprocess returns the standard name normalization: lowercase, strip
// everything but letters, digits, and spaces, drop the given stopwords, and
// collapse runs of whitespace.
func DefaultPreprocess(stopwords []string) embedding.PreprocessFunc {
	drop := make(map[string]bool, len(stopwords))
	for _, w := range stopwords {
		drop[strings.ToLower(w)] = true
	}
	return func(name string) string {
		var b strings.Builder
		for _, r := range strings.ToLower(name) {
			switch {
			case unicode.IsLetter(r) || unicode.IsDigit(r):
				b.WriteRune(r)
			case unicode.IsSpace(r):
				b.WriteRune(' ')
			}
		}
		var kept []string
		for _, word := range strings.Fields(b.String()) {
			if !drop[word] {
				kept = append(kept, word)
			}
		}
		return strings.Join(kept, " ")
	}
}
