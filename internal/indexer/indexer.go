// Package indexer computes the denormalized search token set for person
// records. Tokens are normalized words and word prefixes; looking a token up
// in the per-token storage sets is the only retrieval primitive, so every
// form a searcher might type has to be emitted here.
package indexer

import (
	"sort"

	"go.uber.org/zap"

	"github.com/relief-cloud/persondex/internal/domain/person"
	"github.com/relief-cloud/persondex/internal/metrics"
	"github.com/relief-cloud/persondex/internal/text"
	"github.com/relief-cloud/persondex/internal/text/japanese"
)

// Indexer computes tokens for person records.
type Indexer struct {
	log *zap.Logger
}

// New creates an Indexer.
func New(log *zap.Logger) *Indexer {
	return &Indexer{log: log}
}

// UpdateIndexProperties recomputes the record's token set from its name
// fields and writes it onto the record in place. It does not persist the
// record. The result is a pure function of the name fields: calling this
// twice on an unchanged record yields an identical token set.
//
// Given and family names are prefix-indexed (every prefix of every word is a
// token); alternate names are whole-word indexed; Japanese expansions
// (romaji, kana name concatenations) are unioned in. The set is capped at
// person.MaxTokens with deterministic lexicographic selection.
func (ix *Indexer) UpdateIndexProperties(p *person.Person) {
	set := make(map[string]struct{})

	givenWords := indexWords(p.GivenName())
	familyWords := indexWords(p.FamilyName())
	for _, w := range givenWords {
		addPrefixes(set, w)
	}
	for _, w := range familyWords {
		addPrefixes(set, w)
	}

	altWords := indexWords(p.AlternateNames())
	for _, w := range altWords {
		set[w] = struct{}{}
	}

	nameTokens := append(text.QueryWords(p.GivenName()), text.QueryWords(p.FamilyName())...)
	for _, t := range japanese.AdditionalTokens(nameTokens) {
		set[t] = struct{}{}
	}
	for _, t := range japanese.AdditionalTokens(text.QueryWords(p.AlternateNames())) {
		set[t] = struct{}{}
	}

	tokens := make([]string, 0, len(set))
	for t := range set {
		tokens = append(tokens, t)
	}
	sort.Strings(tokens)

	if len(tokens) > person.MaxTokens {
		ix.log.Warn("token set truncated",
			zap.String("person_id", p.ID()),
			zap.Int("computed", len(tokens)),
			zap.Int("cap", person.MaxTokens),
		)
		metrics.TokensTruncated.Inc()
		tokens = tokens[:person.MaxTokens]
	}

	p.SetTokens(tokens)
}

// indexWords normalizes a field into words; a pure-ideograph word also
// contributes each of its characters, matching the character granularity of
// query tokenization.
func indexWords(field string) []string {
	words := text.QueryWords(field)
	out := make([]string, 0, len(words))
	for _, w := range words {
		out = append(out, w)
		if text.IsCJKWord(w) {
			for _, r := range w {
				out = append(out, string(r))
			}
		}
	}
	return out
}

// addPrefixes adds every non-empty rune prefix of word (length 1..len).
func addPrefixes(set map[string]struct{}, word string) {
	runes := []rune(word)
	for i := 1; i <= len(runes); i++ {
		set[string(runes[:i])] = struct{}{}
	}
}
