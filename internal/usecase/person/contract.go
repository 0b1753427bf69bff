package person

import (
	"context"

	domper "github.com/relief-cloud/persondex/internal/domain/person"
	domrepo "github.com/relief-cloud/persondex/internal/domain/repo"
)

// Repository defines the storage contract for person records.
type Repository interface {
	Upsert(ctx context.Context, repoName string, p *domper.Person) (bool, error)
	Get(ctx context.Context, repoName, id string) (domper.Person, error)
	Delete(ctx context.Context, repoName, id string) error
	Count(ctx context.Context, repoName string) (int, error)
	AddNote(ctx context.Context, repoName, personID string, n *domper.Note) error
	ListNotes(ctx context.Context, repoName, personID string) ([]domper.Note, error)
}

// RepoReader reads repository metadata for existence and activation checks.
type RepoReader interface {
	Get(ctx context.Context, name string) (domrepo.Repo, error)
}

// SubscriptionCleaner removes subscriptions when a record is deleted.
type SubscriptionCleaner interface {
	DeleteAll(ctx context.Context, repoName, personID string) error
}

// NoteNotifier fans a new note out to a person's subscribers.
type NoteNotifier interface {
	NotifyNote(ctx context.Context, repoName string, p *domper.Person, n *domper.Note)
}
