package repo

import (
	"context"

	domrepo "github.com/relief-cloud/persondex/internal/domain/repo"
)

// Repository defines the storage contract for repository metadata.
type Repository interface {
	Create(ctx context.Context, rep domrepo.Repo) error
	Get(ctx context.Context, name string) (domrepo.Repo, error)
	List(ctx context.Context) ([]domrepo.Repo, error)
	Update(ctx context.Context, rep domrepo.Repo) error
	Delete(ctx context.Context, name string) error
}
