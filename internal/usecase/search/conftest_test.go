package search

import (
	"context"

	domper "github.com/relief-cloud/persondex/internal/domain/person"
	domrepo "github.com/relief-cloud/persondex/internal/domain/repo"
)

// --- Mocks ---

type mockRepo struct {
	fetchFn func(ctx context.Context, repoName string, tokens []string, limit int) ([]domper.Person, error)
	calls   [][]string // tokens of each FetchByTokens call
}

func (m *mockRepo) FetchByTokens(
	ctx context.Context, repoName string, tokens []string, limit int,
) ([]domper.Person, error) {
	m.calls = append(m.calls, append([]string(nil), tokens...))
	if m.fetchFn != nil {
		return m.fetchFn(ctx, repoName, tokens, limit)
	}
	return nil, nil
}

type mockRepos struct {
	rep domrepo.Repo
	err error
}

func (m *mockRepos) Get(_ context.Context, _ string) (domrepo.Repo, error) {
	return m.rep, m.err
}

func activeRepos() *mockRepos {
	return &mockRepos{rep: domrepo.Reconstruct("test-repo", "Test", true, 0)}
}

func deactivatedRepos() *mockRepos {
	return &mockRepos{rep: domrepo.Reconstruct("test-repo", "Test", false, 0)}
}
