package persondex

import (
	"context"
	"fmt"

	domper "github.com/relief-cloud/persondex/internal/domain/person"
	personuc "github.com/relief-cloud/persondex/internal/usecase/person"
	subscribeuc "github.com/relief-cloud/persondex/internal/usecase/subscribe"
)

// PersonService manages person records within a single repository.
type PersonService struct {
	repo      string
	personSvc *personuc.Service
	subSvc    *subscribeuc.Service
}

// Create validates, indexes and stores a new person record.
func (s *PersonService) Create(ctx context.Context, in PersonInput) (Person, error) {
	p, err := s.personSvc.Create(ctx, s.repo, toCreateInput(in))
	if err != nil {
		return Person{}, fmt.Errorf("create person: %w", err)
	}
	return fromPerson(p), nil
}

// Get fetches a person record by ID.
func (s *PersonService) Get(ctx context.Context, id string) (Person, error) {
	p, err := s.personSvc.Get(ctx, s.repo, id)
	if err != nil {
		return Person{}, fmt.Errorf("get person: %w", err)
	}
	return fromPerson(p), nil
}

// Update replaces a person's writable fields and reindexes the record.
func (s *PersonService) Update(ctx context.Context, id string, in PersonInput) (Person, error) {
	p, err := s.personSvc.Update(ctx, s.repo, id, toCreateInput(in))
	if err != nil {
		return Person{}, fmt.Errorf("update person: %w", err)
	}
	return fromPerson(p), nil
}

// Delete removes a person record, its index entries, notes and subscriptions.
func (s *PersonService) Delete(ctx context.Context, id string) error {
	if err := s.personSvc.Delete(ctx, s.repo, id); err != nil {
		return fmt.Errorf("delete person: %w", err)
	}
	return nil
}

// Count returns the number of person records in the repository.
func (s *PersonService) Count(ctx context.Context) (int, error) {
	n, err := s.personSvc.Count(ctx, s.repo)
	if err != nil {
		return 0, fmt.Errorf("count persons: %w", err)
	}
	return n, nil
}

// AddNote appends a status note to a person record.
func (s *PersonService) AddNote(
	ctx context.Context, id, authorName, content string, status Status,
) (Note, error) {
	n, err := s.personSvc.AddNote(ctx, s.repo, id, authorName, content, domper.Status(status))
	if err != nil {
		return Note{}, fmt.Errorf("add note: %w", err)
	}
	return fromNote(n), nil
}

// Notes returns a person's notes in creation order.
func (s *PersonService) Notes(ctx context.Context, id string) ([]Note, error) {
	ns, err := s.personSvc.ListNotes(ctx, s.repo, id)
	if err != nil {
		return nil, fmt.Errorf("list notes: %w", err)
	}
	out := make([]Note, len(ns))
	for i := range ns {
		out[i] = fromNote(ns[i])
	}
	return out, nil
}

// Subscribe registers an email address for updates on a person record.
func (s *PersonService) Subscribe(ctx context.Context, id, email string) error {
	if err := s.subSvc.Subscribe(ctx, s.repo, id, email); err != nil {
		return fmt.Errorf("subscribe: %w", err)
	}
	return nil
}

// Unsubscribe removes an email address from a person's subscriber list.
func (s *PersonService) Unsubscribe(ctx context.Context, id, email string) error {
	if err := s.subSvc.Unsubscribe(ctx, s.repo, id, email); err != nil {
		return fmt.Errorf("unsubscribe: %w", err)
	}
	return nil
}

func toCreateInput(in PersonInput) personuc.CreateInput {
	return personuc.CreateInput{
		GivenName:      in.GivenName,
		FamilyName:     in.FamilyName,
		FullName:       in.FullName,
		AlternateNames: in.AlternateNames,
		HomeCity:       in.HomeCity,
		HomeState:      in.HomeState,
		HomeCountry:    in.HomeCountry,
		Expiry:         in.Expiry,
	}
}
