package subscribe

import (
	"context"

	domper "github.com/relief-cloud/persondex/internal/domain/person"
	domrepo "github.com/relief-cloud/persondex/internal/domain/repo"
)

// Repository defines the storage contract for subscriptions.
type Repository interface {
	Add(ctx context.Context, repoName, personID, email string) error
	Remove(ctx context.Context, repoName, personID, email string) error
	List(ctx context.Context, repoName, personID string) ([]string, error)
}

// RepoReader reads repository metadata for existence and activation checks.
type RepoReader interface {
	Get(ctx context.Context, name string) (domrepo.Repo, error)
}

// PersonReader verifies a person record exists before subscribing to it.
type PersonReader interface {
	Get(ctx context.Context, repoName, id string) (domper.Person, error)
}

// Mailer sends one notification email.
type Mailer interface {
	Send(to, subject, body string) error
}
