// Package repo persists per-disaster repository metadata.
package repo

import (
	"context"
	"fmt"
	"sort"
	"strconv"

	"github.com/relief-cloud/persondex/internal/domain"
	domrepo "github.com/relief-cloud/persondex/internal/domain/repo"
)

// store is the consumer interface for repository metadata (ISP).
type store interface {
	HSet(ctx context.Context, key string, fields map[string]string) error
	HGetAll(ctx context.Context, key string) (map[string]string, error)
	HGetAllMulti(ctx context.Context, keys []string) ([]map[string]string, error)
	Del(ctx context.Context, key string) error
	Exists(ctx context.Context, key string) (bool, error)
	Scan(ctx context.Context, pattern string) ([]string, error)
}

// Repo implements usecase/repo.Repository.
type Repo struct {
	store store
}

// New creates a repository-metadata store.
func New(s store) *Repo {
	return &Repo{store: s}
}

// Create stores new repository metadata.
func (r *Repo) Create(ctx context.Context, rep domrepo.Repo) error {
	key := metaKey(rep.Name())
	exists, err := r.store.Exists(ctx, key)
	if err != nil {
		return fmt.Errorf("check exists: %w", err)
	}
	if exists {
		return domain.ErrAlreadyExists
	}
	if err := r.store.HSet(ctx, key, repoToHash(rep)); err != nil {
		return fmt.Errorf("hset repo %s: %w", rep.Name(), err)
	}
	return nil
}

// Get retrieves repository metadata by name.
func (r *Repo) Get(ctx context.Context, name string) (domrepo.Repo, error) {
	m, err := r.store.HGetAll(ctx, metaKey(name))
	if err != nil {
		return domrepo.Repo{}, fmt.Errorf("hgetall repo %s: %w", name, err)
	}
	if len(m) == 0 {
		return domrepo.Repo{}, domain.ErrRepoNotFound
	}
	return repoFromHash(m), nil
}

// List returns all repositories sorted by creation time.
func (r *Repo) List(ctx context.Context) ([]domrepo.Repo, error) {
	keys, err := r.store.Scan(ctx, metaKey("*"))
	if err != nil {
		return nil, fmt.Errorf("scan repos: %w", err)
	}
	if len(keys) == 0 {
		return []domrepo.Repo{}, nil
	}

	hashes, err := r.store.HGetAllMulti(ctx, keys)
	if err != nil {
		return nil, fmt.Errorf("hgetall multi repos: %w", err)
	}

	repos := make([]domrepo.Repo, 0, len(hashes))
	for _, m := range hashes {
		if len(m) == 0 {
			continue
		}
		repos = append(repos, repoFromHash(m))
	}
	sort.Slice(repos, func(i, j int) bool {
		return repos[i].CreatedAt() < repos[j].CreatedAt()
	})
	return repos, nil
}

// Update overwrites repository metadata.
func (r *Repo) Update(ctx context.Context, rep domrepo.Repo) error {
	key := metaKey(rep.Name())
	exists, err := r.store.Exists(ctx, key)
	if err != nil {
		return fmt.Errorf("check exists: %w", err)
	}
	if !exists {
		return domain.ErrRepoNotFound
	}
	if err := r.store.HSet(ctx, key, repoToHash(rep)); err != nil {
		return fmt.Errorf("hset repo %s: %w", rep.Name(), err)
	}
	return nil
}

// Delete removes repository metadata. Record data under the repository is
// not swept here; deactivation is the operational path for retiring a repo.
func (r *Repo) Delete(ctx context.Context, name string) error {
	key := metaKey(name)
	exists, err := r.store.Exists(ctx, key)
	if err != nil {
		return fmt.Errorf("check exists: %w", err)
	}
	if !exists {
		return domain.ErrRepoNotFound
	}
	if err := r.store.Del(ctx, key); err != nil {
		return fmt.Errorf("del repo %s: %w", name, err)
	}
	return nil
}

func repoToHash(rep domrepo.Repo) map[string]string {
	return map[string]string{
		"name":       rep.Name(),
		"title":      rep.Title(),
		"activated":  strconv.FormatBool(rep.Activated()),
		"created_at": strconv.FormatInt(rep.CreatedAt(), 10),
	}
}

func repoFromHash(m map[string]string) domrepo.Repo {
	activated, _ := strconv.ParseBool(m["activated"])
	createdAt, _ := strconv.ParseInt(m["created_at"], 10, 64)
	return domrepo.Reconstruct(m["name"], m["title"], activated, createdAt)
}

// Redis key pattern: pd:meta:repo:{name}.
//
// The meta segment keeps metadata out of every tenant key pattern:
// record data lives under pd:{repo}:..., and a repository may validly be
// named "repo" or "persons", so a bare pd:repo:{name} key would sit inside
// such a tenant's keyspace and corrupt the List scan.
func metaKey(name string) string {
	return fmt.Sprintf("%smeta:repo:%s", domain.KeyPrefix, name)
}
