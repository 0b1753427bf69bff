// Package person persists person records and their token index memberships.
package person

import (
	"context"
	"fmt"
	"sort"

	"github.com/relief-cloud/persondex/internal/domain"
	domper "github.com/relief-cloud/persondex/internal/domain/person"
)

// store is the consumer interface for person records (ISP).
type store interface {
	HSet(ctx context.Context, key string, fields map[string]string) error
	HGetAll(ctx context.Context, key string) (map[string]string, error)
	HGetAllMulti(ctx context.Context, keys []string) ([]map[string]string, error)
	Del(ctx context.Context, key string) error
	Exists(ctx context.Context, key string) (bool, error)
	SAdd(ctx context.Context, key string, members ...string) error
	SRem(ctx context.Context, key string, members ...string) error
	SMembers(ctx context.Context, key string) ([]string, error)
	SInter(ctx context.Context, keys []string) ([]string, error)
}

// Repo implements usecase person/search storage contracts.
type Repo struct {
	store store
}

// New creates a person repository.
func New(s store) *Repo {
	return &Repo{store: s}
}

// Upsert creates or updates a person record and reconciles per-token set
// membership: tokens the record no longer carries are removed, new ones
// added. Returns true if the record was created.
func (r *Repo) Upsert(ctx context.Context, repoName string, p *domper.Person) (bool, error) {
	key := personKey(repoName, p.ID())

	old, err := r.store.HGetAll(ctx, key)
	if err != nil {
		return false, fmt.Errorf("hgetall person %s: %w", key, err)
	}
	exists := len(old) > 0

	var oldTokens []string
	if exists {
		prev := personFromHash(p.ID(), old)
		oldTokens = prev.Tokens()
	}

	if err := r.store.HSet(ctx, key, personToHash(p)); err != nil {
		return false, fmt.Errorf("hset person %s: %w", key, err)
	}
	if err := r.store.SAdd(ctx, personsKey(repoName), p.ID()); err != nil {
		return false, fmt.Errorf("sadd persons %s: %w", repoName, err)
	}

	added, removed := diffTokens(oldTokens, p.Tokens())
	for _, tok := range added {
		if err := r.store.SAdd(ctx, tokenKey(repoName, tok), p.ID()); err != nil {
			return false, fmt.Errorf("sadd token %q: %w", tok, err)
		}
	}
	for _, tok := range removed {
		if err := r.store.SRem(ctx, tokenKey(repoName, tok), p.ID()); err != nil {
			return false, fmt.Errorf("srem token %q: %w", tok, err)
		}
	}

	return !exists, nil
}

// Get returns a person by id.
func (r *Repo) Get(ctx context.Context, repoName, id string) (domper.Person, error) {
	m, err := r.store.HGetAll(ctx, personKey(repoName, id))
	if err != nil {
		return domper.Person{}, fmt.Errorf("hgetall person %s: %w", id, err)
	}
	if len(m) == 0 {
		return domper.Person{}, domain.ErrPersonNotFound
	}
	return personFromHash(id, m), nil
}

// Delete removes a person record, its token memberships and its notes.
func (r *Repo) Delete(ctx context.Context, repoName, id string) error {
	key := personKey(repoName, id)

	m, err := r.store.HGetAll(ctx, key)
	if err != nil {
		return fmt.Errorf("hgetall person %s: %w", id, err)
	}
	if len(m) == 0 {
		return domain.ErrPersonNotFound
	}

	stale := personFromHash(id, m)
	for _, tok := range stale.Tokens() {
		if err := r.store.SRem(ctx, tokenKey(repoName, tok), id); err != nil {
			return fmt.Errorf("srem token %q: %w", tok, err)
		}
	}
	if err := r.store.SRem(ctx, personsKey(repoName), id); err != nil {
		return fmt.Errorf("srem persons: %w", err)
	}
	if err := r.store.Del(ctx, notesKey(repoName, id)); err != nil {
		return fmt.Errorf("del notes: %w", err)
	}
	if err := r.store.Del(ctx, key); err != nil {
		return fmt.Errorf("del person %s: %w", id, err)
	}
	return nil
}

// Count returns the number of person records in a repository.
func (r *Repo) Count(ctx context.Context, repoName string) (int, error) {
	ids, err := r.store.SMembers(ctx, personsKey(repoName))
	if err != nil {
		return 0, fmt.Errorf("smembers persons: %w", err)
	}
	return len(ids), nil
}

// FetchByTokens returns up to limit persons whose token sets contain every
// given token, in deterministic (id-sorted) order. A db.ErrTooManyFilters
// from the store passes through unwrapped inside the error chain so the
// executor can detect and relax it.
func (r *Repo) FetchByTokens(
	ctx context.Context, repoName string, tokens []string, limit int,
) ([]domper.Person, error) {
	if len(tokens) == 0 {
		return nil, nil
	}

	keys := make([]string, len(tokens))
	for i, tok := range tokens {
		keys[i] = tokenKey(repoName, tok)
	}

	ids, err := r.store.SInter(ctx, keys)
	if err != nil {
		return nil, fmt.Errorf("sinter %d tokens: %w", len(tokens), err)
	}
	if len(ids) == 0 {
		return nil, nil
	}

	sort.Strings(ids)
	if limit > 0 && len(ids) > limit {
		ids = ids[:limit]
	}

	personKeys := make([]string, len(ids))
	for i, id := range ids {
		personKeys[i] = personKey(repoName, id)
	}
	hashes, err := r.store.HGetAllMulti(ctx, personKeys)
	if err != nil {
		return nil, fmt.Errorf("hgetall multi persons: %w", err)
	}

	persons := make([]domper.Person, 0, len(hashes))
	for i, m := range hashes {
		if len(m) == 0 {
			continue // token set referenced a concurrently deleted record
		}
		persons = append(persons, personFromHash(ids[i], m))
	}
	return persons, nil
}

// AddNote appends a note to a person record.
func (r *Repo) AddNote(ctx context.Context, repoName, personID string, n *domper.Note) error {
	exists, err := r.store.Exists(ctx, personKey(repoName, personID))
	if err != nil {
		return fmt.Errorf("check person exists: %w", err)
	}
	if !exists {
		return domain.ErrPersonNotFound
	}

	raw, err := noteToJSON(n)
	if err != nil {
		return err
	}
	if err := r.store.HSet(ctx, notesKey(repoName, personID), map[string]string{n.ID(): raw}); err != nil {
		return fmt.Errorf("hset note: %w", err)
	}
	return nil
}

// ListNotes returns a person's notes ordered by creation time.
func (r *Repo) ListNotes(ctx context.Context, repoName, personID string) ([]domper.Note, error) {
	m, err := r.store.HGetAll(ctx, notesKey(repoName, personID))
	if err != nil {
		return nil, fmt.Errorf("hgetall notes: %w", err)
	}

	notes := make([]domper.Note, 0, len(m))
	for _, raw := range m {
		n, err := noteFromJSON(raw)
		if err != nil {
			return nil, err
		}
		notes = append(notes, n)
	}
	sort.Slice(notes, func(i, j int) bool {
		if notes[i].CreatedAt() != notes[j].CreatedAt() {
			return notes[i].CreatedAt() < notes[j].CreatedAt()
		}
		return notes[i].ID() < notes[j].ID()
	})
	return notes, nil
}

// diffTokens returns tokens present only in next (added) and only in prev (removed).
func diffTokens(prev, next []string) (added, removed []string) {
	prevSet := make(map[string]struct{}, len(prev))
	for _, t := range prev {
		prevSet[t] = struct{}{}
	}
	nextSet := make(map[string]struct{}, len(next))
	for _, t := range next {
		nextSet[t] = struct{}{}
		if _, ok := prevSet[t]; !ok {
			added = append(added, t)
		}
	}
	for _, t := range prev {
		if _, ok := nextSet[t]; !ok {
			removed = append(removed, t)
		}
	}
	return added, removed
}

// Redis key patterns: pd:{repo}:person:{id}, pd:{repo}:tok:{token},
// pd:{repo}:persons, pd:{repo}:notes:{id}

func personKey(repoName, id string) string {
	return fmt.Sprintf("%s%s:person:%s", domain.KeyPrefix, repoName, id)
}

func tokenKey(repoName, token string) string {
	return fmt.Sprintf("%s%s:tok:%s", domain.KeyPrefix, repoName, token)
}

func personsKey(repoName string) string {
	return fmt.Sprintf("%s%s:persons", domain.KeyPrefix, repoName)
}

func notesKey(repoName, personID string) string {
	return fmt.Sprintf("%s%s:notes:%s", domain.KeyPrefix, repoName, personID)
}
