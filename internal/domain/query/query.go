// Package query parses free-text search input into the normalized forms the
// executor and ranker consume.
package query

import (
	"github.com/relief-cloud/persondex/internal/text"
)

// Query is a parsed search request (immutable value object).
type Query struct {
	raw        string
	normalized string
	words      []string
	queryWords []string
}

// New parses raw search text. Words preserve query order; QueryWords is the
// token set used for filter construction, where each pure-ideograph word is
// replaced by its individual characters. CJK names are indexed per character,
// so character granularity is what makes the superset pass satisfiable and
// makes retrieval independent of the order the characters were typed in.
func New(raw string) Query {
	normalized := text.Normalize(raw)
	words := text.QueryWords(raw)

	var qw []string
	seen := make(map[string]struct{}, len(words))
	add := func(w string) {
		if _, ok := seen[w]; !ok {
			seen[w] = struct{}{}
			qw = append(qw, w)
		}
	}
	for _, w := range words {
		if text.IsCJKWord(w) {
			for _, r := range w {
				add(string(r))
			}
		} else {
			add(w)
		}
	}

	return Query{raw: raw, normalized: normalized, words: words, queryWords: qw}
}

// Raw returns the original input text.
func (q Query) Raw() string { return q.raw }

// Normalized returns the canonicalized query string.
func (q Query) Normalized() string { return q.normalized }

// Words returns the normalized words in the order typed.
func (q Query) Words() []string { return q.words }

// QueryWords returns the deduplicated token set used for storage filters and
// the in-memory superset pass.
func (q Query) QueryWords() []string { return q.queryWords }

// Empty reports whether the query has no searchable words.
func (q Query) Empty() bool { return len(q.words) == 0 }
