package persondex

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/relief-cloud/persondex/internal/db"
	dbRedis "github.com/relief-cloud/persondex/internal/db/redis"
	"github.com/relief-cloud/persondex/internal/indexer"
	personrepo "github.com/relief-cloud/persondex/internal/repository/person"
	reporepo "github.com/relief-cloud/persondex/internal/repository/repo"
	subrepo "github.com/relief-cloud/persondex/internal/repository/subscription"
	personuc "github.com/relief-cloud/persondex/internal/usecase/person"
	repouc "github.com/relief-cloud/persondex/internal/usecase/repo"
	searchuc "github.com/relief-cloud/persondex/internal/usecase/search"
	subscribeuc "github.com/relief-cloud/persondex/internal/usecase/subscribe"
)

const defaultReadinessTimeout = 10 * time.Second

// Option configures the Client.
type Option func(*clientConfig)

type clientConfig struct {
	addrs    []string
	username string
	password string
	db       int

	maxFilters int
	batchCap   int

	logger *zap.Logger
}

// WithRedis configures the client to connect to a Redis instance.
func WithRedis(addr, password string) Option {
	return func(c *clientConfig) {
		c.addrs = []string{addr}
		c.password = password
	}
}

// WithCluster configures the client to connect to a Redis cluster.
func WithCluster(addrs ...string) Option {
	return func(c *clientConfig) {
		c.addrs = addrs
	}
}

// WithUsername sets the database ACL username.
func WithUsername(username string) Option {
	return func(c *clientConfig) {
		c.username = username
	}
}

// WithDB selects a logical database index.
func WithDB(n int) Option {
	return func(c *clientConfig) {
		c.db = n
	}
}

// WithMaxFilters caps how many token filters a single storage
// intersection may carry before the query executor starts relaxing.
func WithMaxFilters(n int) Option {
	return func(c *clientConfig) {
		c.maxFilters = n
	}
}

// WithBatchCap caps how many candidate records a search loads per batch.
func WithBatchCap(n int) Option {
	return func(c *clientConfig) {
		c.batchCap = n
	}
}

// WithLogger sets the logger. Defaults to a no-op logger.
func WithLogger(log *zap.Logger) Option {
	return func(c *clientConfig) {
		c.logger = log
	}
}

// Client is the persondex SDK entry point.
type Client struct {
	store     db.Store
	repoSvc   *repouc.Service
	personSvc *personuc.Service
	searchSvc *searchuc.Service
	subSvc    *subscribeuc.Service
}

// New creates a persondex Client and connects to the database.
func New(opts ...Option) (*Client, error) {
	cfg := &clientConfig{}
	for _, o := range opts {
		o(cfg)
	}

	if len(cfg.addrs) == 0 {
		return nil, errors.New("persondex: database address required (use WithRedis or WithCluster)")
	}
	if cfg.logger == nil {
		cfg.logger = zap.NewNop()
	}

	store, err := dbRedis.NewStore(dbRedis.Config{
		Addrs:      cfg.addrs,
		Username:   cfg.username,
		Password:   cfg.password,
		DB:         cfg.db,
		MaxFilters: cfg.maxFilters,
	})
	if err != nil {
		return nil, fmt.Errorf("persondex: create store: %w", err)
	}

	ctx := context.Background()
	if err := store.WaitForReady(ctx, defaultReadinessTimeout); err != nil {
		store.Close()
		return nil, fmt.Errorf("persondex: database not ready: %w", err)
	}

	return wireClient(store, cfg), nil
}

func wireClient(store db.Store, cfg *clientConfig) *Client {
	repoRepo := reporepo.New(store)
	personRepo := personrepo.New(store)
	subRepo := subrepo.New(store)
	idx := indexer.New(cfg.logger)

	repoSvc := repouc.New(repoRepo)
	// No mailer in the embedded client: subscriptions are stored, mail
	// delivery stays a server deployment concern.
	subSvc := subscribeuc.New(subRepo, repoRepo, personRepo, nil, cfg.logger)
	personSvc := personuc.New(personRepo, repoRepo, idx, subRepo, subSvc)
	searchSvc := searchuc.New(personRepo, repoRepo, cfg.logger)
	if cfg.batchCap > 0 {
		searchSvc = searchSvc.WithBatchCap(cfg.batchCap)
	}

	return &Client{
		store:     store,
		repoSvc:   repoSvc,
		personSvc: personSvc,
		searchSvc: searchSvc,
		subSvc:    subSvc,
	}
}

// Close releases all resources.
func (c *Client) Close() {
	if c.store != nil {
		c.store.Close()
	}
}

// Ping checks database connectivity.
func (c *Client) Ping(ctx context.Context) error {
	if err := c.store.Ping(ctx); err != nil {
		return fmt.Errorf("ping: %w", err)
	}
	return nil
}

// Repos returns the repository management service.
func (c *Client) Repos() *RepoService {
	return &RepoService{svc: c.repoSvc}
}

// Persons returns the person record service for a given repository.
func (c *Client) Persons(repo string) *PersonService {
	return &PersonService{repo: repo, personSvc: c.personSvc, subSvc: c.subSvc}
}

// Search returns the search service for a given repository.
func (c *Client) Search(repo string) *SearchService {
	return &SearchService{repo: repo, svc: c.searchSvc}
}
