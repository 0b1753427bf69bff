// Package repo implements per-disaster repository administration.
package repo

import (
	"context"
	"fmt"

	"github.com/relief-cloud/persondex/internal/domain"
	domrepo "github.com/relief-cloud/persondex/internal/domain/repo"
)

// Service handles repository CRUD and activation.
type Service struct {
	repo Repository
}

// New creates a repository admin service.
func New(repo Repository) *Service {
	return &Service{repo: repo}
}

// Create validates and stores a new repository.
func (s *Service) Create(ctx context.Context, name, title string) (domrepo.Repo, error) {
	rep, err := domrepo.New(name, title)
	if err != nil {
		return domrepo.Repo{}, fmt.Errorf("%w: %w", domain.ErrInvalidInput, err)
	}
	if err := s.repo.Create(ctx, rep); err != nil {
		return domrepo.Repo{}, fmt.Errorf("create repository: %w", err)
	}
	return rep, nil
}

// Get retrieves a repository by name.
func (s *Service) Get(ctx context.Context, name string) (domrepo.Repo, error) {
	rep, err := s.repo.Get(ctx, name)
	if err != nil {
		return domrepo.Repo{}, fmt.Errorf("get repository: %w", err)
	}
	return rep, nil
}

// List returns all repositories.
func (s *Service) List(ctx context.Context) ([]domrepo.Repo, error) {
	repos, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list repositories: %w", err)
	}
	return repos, nil
}

// SetActivation flips a repository's activation flag.
func (s *Service) SetActivation(ctx context.Context, name string, activated bool) (domrepo.Repo, error) {
	rep, err := s.repo.Get(ctx, name)
	if err != nil {
		return domrepo.Repo{}, fmt.Errorf("get repository: %w", err)
	}
	rep = rep.WithActivation(activated)
	if err := s.repo.Update(ctx, rep); err != nil {
		return domrepo.Repo{}, fmt.Errorf("update repository: %w", err)
	}
	return rep, nil
}

// Delete removes a repository's metadata.
func (s *Service) Delete(ctx context.Context, name string) error {
	if err := s.repo.Delete(ctx, name); err != nil {
		return fmt.Errorf("delete repository: %w", err)
	}
	return nil
}
