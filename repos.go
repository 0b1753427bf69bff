package persondex

import (
	"context"
	"fmt"

	repouc "github.com/relief-cloud/persondex/internal/usecase/repo"
)

// RepoService manages missing-person repositories.
type RepoService struct {
	svc *repouc.Service
}

// Create registers a new repository. New repositories start activated.
func (s *RepoService) Create(ctx context.Context, name, title string) (Repo, error) {
	r, err := s.svc.Create(ctx, name, title)
	if err != nil {
		return Repo{}, fmt.Errorf("create repo: %w", err)
	}
	return fromRepo(r), nil
}

// Get fetches a repository by name.
func (s *RepoService) Get(ctx context.Context, name string) (Repo, error) {
	r, err := s.svc.Get(ctx, name)
	if err != nil {
		return Repo{}, fmt.Errorf("get repo: %w", err)
	}
	return fromRepo(r), nil
}

// List returns all repositories.
func (s *RepoService) List(ctx context.Context) ([]Repo, error) {
	rs, err := s.svc.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list repos: %w", err)
	}
	out := make([]Repo, len(rs))
	for i := range rs {
		out[i] = fromRepo(rs[i])
	}
	return out, nil
}

// SetActivation activates or deactivates a repository. Deactivated
// repositories reject every operation except reactivation.
func (s *RepoService) SetActivation(ctx context.Context, name string, activated bool) (Repo, error) {
	r, err := s.svc.SetActivation(ctx, name, activated)
	if err != nil {
		return Repo{}, fmt.Errorf("set activation: %w", err)
	}
	return fromRepo(r), nil
}

// Delete removes a repository record. Person records under it are not
// swept; reuse of the name sees them again.
func (s *RepoService) Delete(ctx context.Context, name string) error {
	if err := s.svc.Delete(ctx, name); err != nil {
		return fmt.Errorf("delete repo: %w", err)
	}
	return nil
}
