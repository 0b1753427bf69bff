// Package subscribe implements person-update subscriptions and the email
// fan-out that fires when a status note is added.
package subscribe

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/relief-cloud/persondex/internal/domain"
	domper "github.com/relief-cloud/persondex/internal/domain/person"
)

// Service handles subscriptions and note notifications.
type Service struct {
	subs    Repository
	repos   RepoReader
	persons PersonReader
	mailer  Mailer
	log     *zap.Logger
}

// New creates a subscription service. mailer may be nil (fan-out disabled).
func New(subs Repository, repos RepoReader, persons PersonReader, mailer Mailer, log *zap.Logger) *Service {
	return &Service{subs: subs, repos: repos, persons: persons, mailer: mailer, log: log}
}

// Subscribe registers an email address for a person's updates.
func (s *Service) Subscribe(ctx context.Context, repoName, personID, email string) error {
	if err := validateEmail(email); err != nil {
		return fmt.Errorf("%w: %w", domain.ErrInvalidInput, err)
	}
	if err := s.checkRepo(ctx, repoName); err != nil {
		return err
	}
	if _, err := s.persons.Get(ctx, repoName, personID); err != nil {
		return fmt.Errorf("get person: %w", err)
	}
	if err := s.subs.Add(ctx, repoName, personID, email); err != nil {
		return fmt.Errorf("add subscription: %w", err)
	}
	return nil
}

// Unsubscribe removes an email address from a person's subscribers.
func (s *Service) Unsubscribe(ctx context.Context, repoName, personID, email string) error {
	if err := s.checkRepo(ctx, repoName); err != nil {
		return err
	}
	subscribers, err := s.subs.List(ctx, repoName, personID)
	if err != nil {
		return fmt.Errorf("list subscriptions: %w", err)
	}
	found := false
	for _, sub := range subscribers {
		if sub == email {
			found = true
			break
		}
	}
	if !found {
		return domain.ErrNotSubscribed
	}
	if err := s.subs.Remove(ctx, repoName, personID, email); err != nil {
		return fmt.Errorf("remove subscription: %w", err)
	}
	return nil
}

// NotifyNote emails every subscriber of p about a new note. Delivery is
// best-effort: failures are logged, never returned, so a mail outage cannot
// block the note write path.
func (s *Service) NotifyNote(ctx context.Context, repoName string, p *domper.Person, n *domper.Note) {
	if s.mailer == nil {
		return
	}

	subscribers, err := s.subs.List(ctx, repoName, p.ID())
	if err != nil {
		s.log.Error("list subscribers for notification", zap.Error(err),
			zap.String("repo", repoName), zap.String("person_id", p.ID()))
		return
	}

	subject := fmt.Sprintf("[%s] Update on %s", repoName, p.FullName())
	body := noteBody(p, n)
	for _, email := range subscribers {
		if err := s.mailer.Send(email, subject, body); err != nil {
			s.log.Error("send notification", zap.Error(err),
				zap.String("person_id", p.ID()), zap.String("to", email))
		}
	}
}

func noteBody(p *domper.Person, n *domper.Note) string {
	var b strings.Builder
	fmt.Fprintf(&b, "A new note was posted for %s.\n\n", p.FullName())
	if n.Status() != domper.StatusUnspecified {
		fmt.Fprintf(&b, "Status: %s\n", n.Status())
	}
	if n.Content() != "" {
		fmt.Fprintf(&b, "Note: %s\n", n.Content())
	}
	fmt.Fprintf(&b, "Posted by: %s\n", n.AuthorName())
	return b.String()
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

func validateEmail(email string) error {
	at := strings.Index(email, "@")
	if at < 1 || at == len(email)-1 || strings.ContainsAny(email, " \t") {
		return fmt.Errorf("invalid email address %q", email)
	}
	return nil
}
