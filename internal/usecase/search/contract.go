package search

import (
	"context"

	domper "github.com/relief-cloud/persondex/internal/domain/person"
	domrepo "github.com/relief-cloud/persondex/internal/domain/repo"
)

// Repository defines the storage contract for candidate retrieval.
type Repository interface {
	// FetchByTokens returns up to limit persons whose token sets contain
	// every given token. Implementations signal db.ErrTooManyFilters (via
	// errors.Is) when the filter set is wider than they support.
	FetchByTokens(ctx context.Context, repoName string, tokens []string, limit int) ([]domper.Person, error)
}

// RepoReader reads repository metadata for existence and activation checks.
type RepoReader interface {
	Get(ctx context.Context, name string) (domrepo.Repo, error)
}
