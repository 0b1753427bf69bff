// Package subscription persists per-person subscriber email sets.
package subscription

import (
	"context"
	"fmt"
	"sort"

	"github.com/relief-cloud/persondex/internal/domain"
)

// store is the consumer interface for subscriptions (ISP).
type store interface {
	SAdd(ctx context.Context, key string, members ...string) error
	SRem(ctx context.Context, key string, members ...string) error
	SMembers(ctx context.Context, key string) ([]string, error)
	Del(ctx context.Context, key string) error
}

// Repo implements usecase/subscribe.Repository.
type Repo struct {
	store store
}

// New creates a subscription repository.
func New(s store) *Repo {
	return &Repo{store: s}
}

// Add subscribes an email address to a person's updates.
func (r *Repo) Add(ctx context.Context, repoName, personID, email string) error {
	if err := r.store.SAdd(ctx, subKey(repoName, personID), email); err != nil {
		return fmt.Errorf("sadd subscription: %w", err)
	}
	return nil
}

// Remove unsubscribes an email address.
func (r *Repo) Remove(ctx context.Context, repoName, personID, email string) error {
	if err := r.store.SRem(ctx, subKey(repoName, personID), email); err != nil {
		return fmt.Errorf("srem subscription: %w", err)
	}
	return nil
}

// List returns a person's subscriber emails in deterministic order.
func (r *Repo) List(ctx context.Context, repoName, personID string) ([]string, error) {
	emails, err := r.store.SMembers(ctx, subKey(repoName, personID))
	if err != nil {
		return nil, fmt.Errorf("smembers subscriptions: %w", err)
	}
	sort.Strings(emails)
	return emails, nil
}

// DeleteAll removes every subscription for a person (record deletion).
func (r *Repo) DeleteAll(ctx context.Context, repoName, personID string) error {
	if err := r.store.Del(ctx, subKey(repoName, personID)); err != nil {
		return fmt.Errorf("del subscriptions: %w", err)
	}
	return nil
}

// Redis key pattern: pd:{repo}:subs:{personID}
func subKey(repoName, personID string) string {
	return fmt.Sprintf("%s%s:subs:%s", domain.KeyPrefix, repoName, personID)
}
