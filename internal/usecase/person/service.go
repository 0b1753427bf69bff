// Package person implements person record lifecycle: create, update, delete,
// and status notes. Every write path recomputes the record's search tokens
// before persisting, so the index never drifts from the name fields.
package person

import (
	"context"
	"fmt"

	"github.com/relief-cloud/persondex/internal/domain"
	domper "github.com/relief-cloud/persondex/internal/domain/person"
	"github.com/relief-cloud/persondex/internal/indexer"
)

// Service handles person record operations.
type Service struct {
	repo     Repository
	repos    RepoReader
	index    *indexer.Indexer
	subs     SubscriptionCleaner
	notifier NoteNotifier
}

// New creates a person service. notifier may be nil (notifications disabled).
func New(
	repo Repository, repos RepoReader, index *indexer.Indexer,
	subs SubscriptionCleaner, notifier NoteNotifier,
) *Service {
	return &Service{repo: repo, repos: repos, index: index, subs: subs, notifier: notifier}
}

// CreateInput holds the writable fields of a person record.
type CreateInput struct {
	GivenName      string
	FamilyName     string
	FullName       string
	AlternateNames string
	HomeCity       string
	HomeState      string
	HomeCountry    string
	Expiry         int64
}

// Create validates, indexes and stores a new person record.
func (s *Service) Create(ctx context.Context, repoName string, in CreateInput) (domper.Person, error) {
	if err := s.checkRepo(ctx, repoName); err != nil {
		return domper.Person{}, err
	}

	p, err := domper.New("", in.GivenName, in.FamilyName, in.FullName, in.AlternateNames)
	if err != nil {
		return domper.Person{}, fmt.Errorf("%w: %w", domain.ErrInvalidInput, err)
	}
	p.SetHome(in.HomeCity, in.HomeState, in.HomeCountry)
	p.SetExpiry(in.Expiry)

	s.index.UpdateIndexProperties(&p)

	if _, err := s.repo.Upsert(ctx, repoName, &p); err != nil {
		return domper.Person{}, fmt.Errorf("store person: %w", err)
	}
	return p, nil
}

// Update replaces a person's writable fields, reindexes and stores it.
func (s *Service) Update(ctx context.Context, repoName, id string, in CreateInput) (domper.Person, error) {
	if err := s.checkRepo(ctx, repoName); err != nil {
		return domper.Person{}, err
	}

	p, err := s.repo.Get(ctx, repoName, id)
	if err != nil {
		return domper.Person{}, fmt.Errorf("get person: %w", err)
	}

	p.SetNames(in.GivenName, in.FamilyName, in.FullName, in.AlternateNames)
	if p.GivenName() == "" && p.FamilyName() == "" {
		return domper.Person{}, fmt.Errorf("%w: at least one of given_name or family_name is required", domain.ErrInvalidInput)
	}
	p.SetHome(in.HomeCity, in.HomeState, in.HomeCountry)
	p.SetExpiry(in.Expiry)

	s.index.UpdateIndexProperties(&p)

	if _, err := s.repo.Upsert(ctx, repoName, &p); err != nil {
		return domper.Person{}, fmt.Errorf("store person: %w", err)
	}
	return p, nil
}

// Get returns a person by id.
func (s *Service) Get(ctx context.Context, repoName, id string) (domper.Person, error) {
	if err := s.checkRepo(ctx, repoName); err != nil {
		return domper.Person{}, err
	}
	p, err := s.repo.Get(ctx, repoName, id)
	if err != nil {
		return domper.Person{}, fmt.Errorf("get person: %w", err)
	}
	return p, nil
}

// Delete removes a person record, its index entries and subscriptions.
func (s *Service) Delete(ctx context.Context, repoName, id string) error {
	if err := s.checkRepo(ctx, repoName); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, repoName, id); err != nil {
		return fmt.Errorf("delete person: %w", err)
	}
	if err := s.subs.DeleteAll(ctx, repoName, id); err != nil {
		return fmt.Errorf("delete subscriptions: %w", err)
	}
	return nil
}

// Count returns the number of records in a repository.
func (s *Service) Count(ctx context.Context, repoName string) (int, error) {
	n, err := s.repo.Count(ctx, repoName)
	if err != nil {
		return 0, fmt.Errorf("count persons: %w", err)
	}
	return n, nil
}

// AddNote appends a status note to a person and notifies subscribers.
func (s *Service) AddNote(
	ctx context.Context, repoName, personID, authorName, content string, status domper.Status,
) (domper.Note, error) {
	if err := s.checkRepo(ctx, repoName); err != nil {
		return domper.Note{}, err
	}

	n, err := domper.NewNote(authorName, content, status)
	if err != nil {
		return domper.Note{}, fmt.Errorf("%w: %w", domain.ErrInvalidInput, err)
	}

	p, err := s.repo.Get(ctx, repoName, personID)
	if err != nil {
		return domper.Note{}, fmt.Errorf("get person: %w", err)
	}

	if err := s.repo.AddNote(ctx, repoName, personID, &n); err != nil {
		return domper.Note{}, fmt.Errorf("store note: %w", err)
	}

	if s.notifier != nil {
		s.notifier.NotifyNote(ctx, repoName, &p, &n)
	}
	return n, nil
}

// ListNotes returns a person's notes in creation order.
func (s *Service) ListNotes(ctx context.Context, repoName, personID string) ([]domper.Note, error) {
	if err := s.checkRepo(ctx, repoName); err != nil {
		return nil, err
	}
	if _, err := s.repo.Get(ctx, repoName, personID); err != nil {
		return nil, fmt.Errorf("get person: %w", err)
	}
	notes, err := s.repo.ListNotes(ctx, repoName, personID)
	if err != nil {
		return nil, fmt.Errorf("list notes: %w", err)
	}
	return notes, nil
}

func (s *Service) checkRepo(ctx context.Context, repoName string) error {
	rep, err := s.repos.Get(ctx, repoName)
	if err != nil {
		return fmt.Errorf("get repository: %w", err)
	}
	if !rep.Activated() {
		return domain.ErrRepoDeactivated
	}
	return nil
}
