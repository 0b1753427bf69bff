package persondex

import (
	"context"
	"fmt"

	"github.com/relief-cloud/persondex/internal/domain/query"
	searchuc "github.com/relief-cloud/persondex/internal/usecase/search"
)

const defaultMaxResults = 100

// SearchService executes name searches against a single repository.
type SearchService struct {
	repo string
	svc  *searchuc.Service
}

// Query finds up to maxResults persons ranked by relevance to q.
// maxResults <= 0 means the default of 100. An empty or
// punctuation-only query returns no results.
func (s *SearchService) Query(ctx context.Context, q string, maxResults int) ([]Person, error) {
	if maxResults <= 0 {
		maxResults = defaultMaxResults
	}
	ps, err := s.svc.Search(ctx, s.repo, query.New(q), maxResults)
	if err != nil {
		return nil, fmt.Errorf("search: %w", err)
	}
	return fromPersons(ps), nil
}
