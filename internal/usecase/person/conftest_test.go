package person

import (
	"context"
	"testing"

	"go.uber.org/zap"

	domper "github.com/relief-cloud/persondex/internal/domain/person"
	domrepo "github.com/relief-cloud/persondex/internal/domain/repo"
	"github.com/relief-cloud/persondex/internal/indexer"
)

// --- Mocks ---

type mockRepo struct {
	upsertFn    func(ctx context.Context, repoName string, p *domper.Person) (bool, error)
	getFn       func(ctx context.Context, repoName, id string) (domper.Person, error)
	deleteFn    func(ctx context.Context, repoName, id string) error
	countFn     func(ctx context.Context, repoName string) (int, error)
	addNoteFn   func(ctx context.Context, repoName, personID string, n *domper.Note) error
	listNotesFn func(ctx context.Context, repoName, personID string) ([]domper.Note, error)

	upserted *domper.Person
}

func (m *mockRepo) Upsert(ctx context.Context, repoName string, p *domper.Person) (bool, error) {
	m.upserted = p
	if m.upsertFn != nil {
		return m.upsertFn(ctx, repoName, p)
	}
	return true, nil
}

func (m *mockRepo) Get(ctx context.Context, repoName, id string) (domper.Person, error) {
	if m.getFn != nil {
		return m.getFn(ctx, repoName, id)
	}
	return domper.Person{}, nil
}

func (m *mockRepo) Delete(ctx context.Context, repoName, id string) error {
	if m.deleteFn != nil {
		return m.deleteFn(ctx, repoName, id)
	}
	return nil
}

func (m *mockRepo) Count(ctx context.Context, repoName string) (int, error) {
	if m.countFn != nil {
		return m.countFn(ctx, repoName)
	}
	return 0, nil
}

func (m *mockRepo) AddNote(ctx context.Context, repoName, personID string, n *domper.Note) error {
	if m.addNoteFn != nil {
		return m.addNoteFn(ctx, repoName, personID, n)
	}
	return nil
}

func (m *mockRepo) ListNotes(ctx context.Context, repoName, personID string) ([]domper.Note, error) {
	if m.listNotesFn != nil {
		return m.listNotesFn(ctx, repoName, personID)
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

type mockSubs struct {
	deleted []string
}

func (m *mockSubs) DeleteAll(_ context.Context, _, personID string) error {
	m.deleted = append(m.deleted, personID)
	return nil
}

type mockNotifier struct {
	notified int
	lastNote *domper.Note
}

func (m *mockNotifier) NotifyNote(_ context.Context, _ string, _ *domper.Person, n *domper.Note) {
	m.notified++
	m.lastNote = n
}

func newTestService(t *testing.T) (*Service, *mockRepo, *mockSubs, *mockNotifier) {
	t.Helper()
	repo := &mockRepo{}
	subs := &mockSubs{}
	notifier := &mockNotifier{}
	repos := &mockRepos{rep: domrepo.Reconstruct("quake", "Quake", true, 0)}
	svc := New(repo, repos, indexer.New(zap.NewNop()), subs, notifier)
	return svc, repo, subs, notifier
}
