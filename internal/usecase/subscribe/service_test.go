package subscribe

import (
	"context"
	"errors"
	"testing"

	"go.uber.org/zap"

	"github.com/relief-cloud/persondex/internal/domain"
	domper "github.com/relief-cloud/persondex/internal/domain/person"
	domrepo "github.com/relief-cloud/persondex/internal/domain/repo"
)

// --- Mocks ---

type mockSubs struct {
	addFn    func(ctx context.Context, repoName, personID, email string) error
	removeFn func(ctx context.Context, repoName, personID, email string) error
	listFn   func(ctx context.Context, repoName, personID string) ([]string, error)

	added   []string
	removed []string
}

func (m *mockSubs) Add(ctx context.Context, repoName, personID, email string) error {
	m.added = append(m.added, email)
	if m.addFn != nil {
		return m.addFn(ctx, repoName, personID, email)
	}
	return nil
}

func (m *mockSubs) Remove(ctx context.Context, repoName, personID, email string) error {
	m.removed = append(m.removed, email)
	if m.removeFn != nil {
		return m.removeFn(ctx, repoName, personID, email)
	}
	return nil
}

func (m *mockSubs) List(ctx context.Context, repoName, personID string) ([]string, error) {
	if m.listFn != nil {
		return m.listFn(ctx, repoName, personID)
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

type mockPersons struct {
	p   domper.Person
	err error
}

func (m *mockPersons) Get(_ context.Context, _, _ string) (domper.Person, error) {
	return m.p, m.err
}

type mockMailer struct {
	sent []string // recipients
	err  error
}

func (m *mockMailer) Send(to, _, _ string) error {
	m.sent = append(m.sent, to)
	return m.err
}

func activeService(subs *mockSubs, mailer Mailer) *Service {
	repos := &mockRepos{rep: domrepo.Reconstruct("quake", "Quake", true, 0)}
	p, _ := domper.New("id1", "Bryan", "abc", "", "")
	return New(subs, repos, &mockPersons{p: p}, mailer, zap.NewNop())
}

// --- Tests ---

func TestSubscribe(t *testing.T) {
	subs := &mockSubs{}
	svc := activeService(subs, nil)

	if err := svc.Subscribe(context.Background(), "quake", "id1", "kin@example.org"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(subs.added) != 1 || subs.added[0] != "kin@example.org" {
		t.Errorf("added %v", subs.added)
	}
}

func TestSubscribe_InvalidEmail(t *testing.T) {
	svc := activeService(&mockSubs{}, nil)

	for _, email := range []string{"", "no-at-sign", "@start", "end@", "two words@x"} {
		err := svc.Subscribe(context.Background(), "quake", "id1", email)
		if !errors.Is(err, domain.ErrInvalidInput) {
			t.Errorf("Subscribe(%q): got %v, want ErrInvalidInput", email, err)
		}
	}
}

func TestSubscribe_PersonMissing(t *testing.T) {
	repos := &mockRepos{rep: domrepo.Reconstruct("quake", "Quake", true, 0)}
	persons := &mockPersons{err: domain.ErrPersonNotFound}
	svc := New(&mockSubs{}, repos, persons, nil, zap.NewNop())

	err := svc.Subscribe(context.Background(), "quake", "missing", "a@b.org")
	if !errors.Is(err, domain.ErrPersonNotFound) {
		t.Errorf("got %v", err)
	}
}

func TestUnsubscribe_NotSubscribed(t *testing.T) {
	subs := &mockSubs{listFn: func(_ context.Context, _, _ string) ([]string, error) {
		return []string{"other@example.org"}, nil
	}}
	svc := activeService(subs, nil)

	err := svc.Unsubscribe(context.Background(), "quake", "id1", "kin@example.org")
	if !errors.Is(err, domain.ErrNotSubscribed) {
		t.Errorf("got %v", err)
	}
	if len(subs.removed) != 0 {
		t.Error("remove must not be called")
	}
}

func TestUnsubscribe(t *testing.T) {
	subs := &mockSubs{listFn: func(_ context.Context, _, _ string) ([]string, error) {
		return []string{"kin@example.org"}, nil
	}}
	svc := activeService(subs, nil)

	if err := svc.Unsubscribe(context.Background(), "quake", "id1", "kin@example.org"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(subs.removed) != 1 {
		t.Errorf("removed %v", subs.removed)
	}
}

func TestNotifyNote_FansOutToAllSubscribers(t *testing.T) {
	subs := &mockSubs{listFn: func(_ context.Context, _, _ string) ([]string, error) {
		return []string{"a@example.org", "b@example.org"}, nil
	}}
	mailer := &mockMailer{}
	svc := activeService(subs, mailer)

	p, _ := domper.New("id1", "Bryan", "abc", "", "")
	n, _ := domper.NewNote("reporter", "seen at shelter", domper.StatusBelievedAlive)
	svc.NotifyNote(context.Background(), "quake", &p, &n)

	if len(mailer.sent) != 2 {
		t.Errorf("sent to %v", mailer.sent)
	}
}

func TestNotifyNote_MailFailureIsBestEffort(t *testing.T) {
	subs := &mockSubs{listFn: func(_ context.Context, _, _ string) ([]string, error) {
		return []string{"a@example.org", "b@example.org"}, nil
	}}
	mailer := &mockMailer{err: errors.New("smtp down")}
	svc := activeService(subs, mailer)

	p, _ := domper.New("id1", "Bryan", "abc", "", "")
	n, _ := domper.NewNote("reporter", "x", domper.StatusUnspecified)
	// Must not panic or abort: every subscriber is still attempted.
	svc.NotifyNote(context.Background(), "quake", &p, &n)

	if len(mailer.sent) != 2 {
		t.Errorf("sent attempts %v", mailer.sent)
	}
}

func TestNotifyNote_NoMailerConfigured(t *testing.T) {
	subs := &mockSubs{listFn: func(_ context.Context, _, _ string) ([]string, error) {
		t.Error("subscriber list must not be read when no mailer is configured")
		return nil, nil
	}}
	svc := activeService(subs, nil)

	p, _ := domper.New("id1", "Bryan", "abc", "", "")
	n, _ := domper.NewNote("reporter", "x", domper.StatusUnspecified)
	svc.NotifyNote(context.Background(), "quake", &p, &n)
}
