// Package search executes person-name queries: it turns a parsed query into
// token equality filters, relaxes the filter set when storage rejects it as
// too wide, verifies candidates in memory, and ranks the survivors.
package search

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"
	"unicode/utf8"

	"go.uber.org/zap"

	"github.com/relief-cloud/persondex/internal/db"
	"github.com/relief-cloud/persondex/internal/domain"
	domper "github.com/relief-cloud/persondex/internal/domain/person"
	"github.com/relief-cloud/persondex/internal/domain/query"
	"github.com/relief-cloud/persondex/internal/metrics"
	"github.com/relief-cloud/persondex/internal/text/japanese"
)

// DefaultBatchCap bounds one candidate fetch from storage.
const DefaultBatchCap = 400

// Service handles person search.
type Service struct {
	repo     Repository
	repos    RepoReader
	log      *zap.Logger
	batchCap int
}

// New creates a search service.
func New(repo Repository, repos RepoReader, log *zap.Logger) *Service {
	return &Service{repo: repo, repos: repos, log: log, batchCap: DefaultBatchCap}
}

// WithBatchCap overrides the candidate fetch cap.
func (s *Service) WithBatchCap(n int) *Service {
	if n > 0 {
		s.batchCap = n
	}
	return s
}

// Search finds up to maxResults persons ranked by relevance to q.
// An empty query returns an empty result without touching storage. Searches
// degrade to fewer or zero results rather than failing: only genuine storage
// errors (anything but a too-wide filter set) propagate.
func (s *Service) Search(
	ctx context.Context, repoName string, q query.Query, maxResults int,
) ([]domper.Person, error) {
	if q.Empty() {
		return nil, nil
	}
	if maxResults <= 0 {
		maxResults = 1
	}

	rep, err := s.repos.Get(ctx, repoName)
	if err != nil {
		return nil, fmt.Errorf("get repository: %w", err)
	}
	if !rep.Activated() {
		return nil, domain.ErrRepoDeactivated
	}

	filters := SortQueryWords(q.QueryWords())

	var candidates []domper.Person
	for len(filters) > 0 {
		fetched, err := s.repo.FetchByTokens(ctx, repoName, filters, s.batchCap)
		if err != nil {
			if errors.Is(err, db.ErrTooManyFilters) {
				dropped := filters[len(filters)-1]
				filters = filters[:len(filters)-1]
				metrics.SearchFiltersDropped.Inc()
				s.log.Debug("dropped search filter",
					zap.String("repo", repoName),
					zap.String("token", dropped),
					zap.Int("remaining", len(filters)),
				)
				continue
			}
			return nil, fmt.Errorf("fetch candidates: %w", err)
		}
		candidates = fetched
		break
	}

	// The storage query may have used fewer filters than the query carries,
	// so the full query_words superset check here is mandatory, not an
	// optimization.
	now := time.Now()
	survivors := make([]domper.Person, 0, len(candidates))
	for i := range candidates {
		p := &candidates[i]
		if p.Expired(now) {
			continue
		}
		if hasAllTokens(p.Tokens(), q.QueryWords()) {
			survivors = append(survivors, candidates[i])
		}
	}

	if len(candidates) == s.batchCap && len(survivors) < maxResults {
		metrics.SearchIncomplete.Inc()
		s.log.Warn("search results may be incomplete",
			zap.String("repo", repoName),
			zap.String("query", q.Normalized()),
			zap.Int("fetched", len(candidates)),
			zap.Int("matched", len(survivors)),
		)
	}

	ranked := RankAndOrder(survivors, q)
	if len(ranked) > maxResults {
		ranked = ranked[:maxResults]
	}
	return ranked, nil
}

// SortQueryWords orders query tokens for filtering effectiveness: first a
// lexicographic sort so permutations of the same word set filter identically,
// then a stable re-sort ascending by CJK character popularity (rarer
// characters disambiguate better), then a stable re-sort descending by
// length (longer words are more selective). Filters are dropped from the
// tail, so the head holds the most useful ones.
func SortQueryWords(words []string) []string {
	out := make([]string, len(words))
	copy(out, words)
	sort.Strings(out)
	out = japanese.SortedByPopularity(out)
	sort.SliceStable(out, func(i, j int) bool {
		return utf8.RuneCountInString(out[i]) > utf8.RuneCountInString(out[j])
	})
	return out
}

// hasAllTokens reports whether tokens contains every required token.
func hasAllTokens(tokens, required []string) bool {
	set := make(map[string]struct{}, len(tokens))
	for _, t := range tokens {
		set[t] = struct{}{}
	}
	for _, r := range required {
		if _, ok := set[r]; !ok {
			return false
		}
	}
	return true
}
