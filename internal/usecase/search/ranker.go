package search

import (
	"sort"
	"strings"

	domper "github.com/relief-cloud/persondex/internal/domain/person"
	"github.com/relief-cloud/persondex/internal/domain/query"
	"github.com/relief-cloud/persondex/internal/text"
)

// Tiered rank scores, higher is better. A record receives the first matching
// rule. Exact matches on multi-ideograph surnames score slightly below the
// single-ideograph case: multi-character surnames are rarer, and the
// heuristic treats an exact token match on one as slightly less certain.
const (
	scoreExact           = 10.0
	scoreExactMultiCJK   = 9.5
	scoreSwapped         = 9.0
	scoreSwappedMultiCJK = 8.5
	scoreWordSet         = 8.0
	scoreFieldMatch      = 7.0
	scoreSuperset        = 6.0
	scorePartialCap      = 5.0
)

// RankAndOrder scores candidates against the query and returns them sorted
// descending by score, ascending by normalized full name on ties, with
// records describing the same person deduplicated (first kept). Pure
// function: no I/O. The caller truncates to its result limit.
func RankAndOrder(persons []domper.Person, q query.Query) []domper.Person {
	type scored struct {
		p     domper.Person
		score float64
		key   string
	}
	items := make([]scored, len(persons))
	for i := range persons {
		items[i] = scored{
			p:     persons[i],
			score: rankScore(&persons[i], q),
			key:   text.Normalize(persons[i].FullName()),
		}
	}

	sort.SliceStable(items, func(i, j int) bool {
		if items[i].score != items[j].score {
			return items[i].score > items[j].score
		}
		return items[i].key < items[j].key
	})

	out := make([]domper.Person, 0, len(items))
	for i := range items {
		dup := false
		for j := range out {
			if domper.SamePerson(&items[i].p, &out[j]) {
				dup = true
				break
			}
		}
		if !dup {
			out = append(out, items[i].p)
		}
	}
	return out
}

// rankScore applies the tiered rules in order and returns the first match.
func rankScore(p *domper.Person, q query.Query) float64 {
	qWords := q.Words()
	given := text.Normalize(p.GivenName())
	family := text.Normalize(p.FamilyName())
	givenWords := text.QueryWords(p.GivenName())
	familyWords := text.QueryWords(p.FamilyName())
	nameWords := concatWords(givenWords, familyWords)

	givenScript := text.ClassifyScript(given)
	familyScript := text.ClassifyScript(family)
	cjkName := isCJKScript(givenScript) && isCJKScript(familyScript)

	if cjkName {
		// CJK surname/given-name order is ambiguous; the query may arrive
		// as one unbroken run or as two words, in either order.
		run := strings.ReplaceAll(q.Normalized(), " ", "")
		familyFirst := run == family+given || wordsEqual(qWords, []string{family, given})
		givenFirst := run == given+family || wordsEqual(qWords, []string{given, family})
		switch {
		case familyFirst && familyScript == text.ScriptSingleCJK:
			return scoreExact
		case familyFirst:
			return scoreExactMultiCJK
		case givenFirst && givenScript == text.ScriptSingleCJK:
			return scoreSwapped
		case givenFirst:
			return scoreSwappedMultiCJK
		}
	} else {
		if wordsEqual(qWords, nameWords) {
			return scoreExact
		}
		if wordsEqual(qWords, concatWords(familyWords, givenWords)) {
			return scoreSwapped
		}
	}

	if wordSetsEqual(qWords, nameWords) {
		return scoreWordSet
	}
	if q.Normalized() != "" && (q.Normalized() == given || q.Normalized() == family) {
		return scoreFieldMatch
	}
	if len(qWords) > 0 && isWordSuperset(nameWords, qWords) {
		return scoreSuperset
	}

	overlap := wordOverlap(qWords, concatWords(nameWords, p.AlternateWords()))
	score := 1.0 + float64(overlap)
	if score > scorePartialCap {
		score = scorePartialCap
	}
	return score
}

func isCJKScript(s text.Script) bool {
	return s == text.ScriptSingleCJK || s == text.ScriptMultiCJK
}

func concatWords(a, b []string) []string {
	out := make([]string, 0, len(a)+len(b))
	out = append(out, a...)
	return append(out, b...)
}

func wordsEqual(a, b []string) bool {
	if len(a) != len(b) || len(a) == 0 {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func wordSetsEqual(a, b []string) bool {
	if len(a) == 0 || len(b) == 0 {
		return false
	}
	return isWordSuperset(a, b) && isWordSuperset(b, a)
}

// isWordSuperset reports whether every word of sub appears in super.
func isWordSuperset(super, sub []string) bool {
	set := make(map[string]struct{}, len(super))
	for _, w := range super {
		set[w] = struct{}{}
	}
	for _, w := range sub {
		if _, ok := set[w]; !ok {
			return false
		}
	}
	return true
}

// wordOverlap counts distinct query words present in the name words.
func wordOverlap(qWords, nameWords []string) int {
	set := make(map[string]struct{}, len(nameWords))
	for _, w := range nameWords {
		set[w] = struct{}{}
	}
	seen := make(map[string]struct{}, len(qWords))
	n := 0
	for _, w := range qWords {
		if _, dup := seen[w]; dup {
			continue
		}
		seen[w] = struct{}{}
		if _, ok := set[w]; ok {
			n++
		}
	}
	return n
}
