package client

import (
	"context"
	"net/http"
	"sync"
	"time"

	sessionRepo "doclink/database/repository/session"
	"doclink/services/api"
	"doclink/services/booking"
	"doclink/services/guard"
	"doclink/services/session"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

// Options configure how a Registry builds clients.
type Options struct {
	APIBaseURL      string
	HTTPClient      *http.Client
	Redis           *redis.Client // nil keeps the long-lived tier in memory
	SessionTTL      time.Duration
	EncryptionKey   string // non-empty encrypts the long-lived tier
	StrictRoleMatch bool
	Logger          *zap.Logger
	Now             func() time.Time
}

// Registry owns the client of every browser the shell has seen, keyed by the
// client id cookie.
type Registry struct {
	opts Options

	mu      sync.Mutex
	clients map[string]*Client
}

func NewRegistry(opts Options) *Registry {
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	if opts.HTTPClient == nil {
		opts.HTTPClient = http.DefaultClient
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	return &Registry{opts: opts, clients: make(map[string]*Client)}
}

// Get returns the client for id, building and initializing it on first use.
func (r *Registry) Get(ctx context.Context, id string) (*Client, error) {
	r.mu.Lock()
	c, ok := r.clients[id]
	if !ok {
		var err error
		if c, err = r.build(id); err != nil {
			r.mu.Unlock()
			return nil, err
		}
		r.clients[id] = c
	}
	r.mu.Unlock()

	c.touch(r.opts.Now())
	if !ok {
		if _, err := c.Store.Init(ctx); err != nil {
			r.opts.Logger.Warn("Failed to restore session", zap.String("clientId", id), zap.Error(err))
		}
	}
	return c, nil
}

func (r *Registry) build(id string) (*Client, error) {
	logger := r.opts.Logger.With(zap.String("clientId", id))

	var durable sessionRepo.Tier
	if r.opts.Redis != nil {
		durable = sessionRepo.NewRedisTier(r.opts.Redis, id, r.opts.SessionTTL)
	} else {
		durable = sessionRepo.NewMemoryTier()
	}
	if r.opts.EncryptionKey != "" {
		enc, err := sessionRepo.NewEncryptedTier(durable, r.opts.EncryptionKey)
		if err != nil {
			return nil, err
		}
		durable = enc
	}
	store := session.NewStore(sessionRepo.NewMemoryTier(), durable, logger)
	store.SetClock(r.opts.Now)

	apiClient := api.NewClient(r.opts.APIBaseURL,
		func(ctx context.Context) (string, error) {
			sess, err := store.Current(ctx)
			return sess.Token, err
		},
		api.WithHTTPClient(r.opts.HTTPClient),
		api.WithLogger(logger),
		api.WithUnauthorizedHook(func(ctx context.Context) {
			if err := store.Teardown(ctx); err != nil {
				logger.Error("Failed to tear down session", zap.Error(err))
			}
		}),
	)

	workflow := booking.NewWorkflow(apiClient, store, logger)
	workflow.SetClock(r.opts.Now)

	c := &Client{
		ID:        id,
		Store:     store,
		Guard:     guard.New(store, guard.WithStrictRoleMatch(r.opts.StrictRoleMatch), guard.WithLogger(logger)),
		API:       apiClient,
		Workflow:  workflow,
		Ledger:    booking.NewLedger(apiClient, store, logger),
		Directory: booking.NewDirectory(apiClient, logger),
		Resumer:   session.NewResumer(logger),
		logger:    logger,
	}
	c.cancels = append(c.cancels,
		store.OnReset(c.Workflow.Reset),
		store.OnReset(c.Ledger.Reset),
		store.OnReset(c.Directory.Reset),
		c.Resumer.Subscribe(c.refreshProfile),
		c.Resumer.Subscribe(c.refreshDoctors),
	)
	return c, nil
}

// Each calls fn for every known client.
func (r *Registry) Each(fn func(*Client)) {
	r.mu.Lock()
	clients := make([]*Client, 0, len(r.clients))
	for _, c := range r.clients {
		clients = append(clients, c)
	}
	r.mu.Unlock()
	for _, c := range clients {
		fn(c)
	}
}

// ResumeAll runs every client's refresh-on-resume subscriptions.
func (r *Registry) ResumeAll(ctx context.Context) {
	r.Each(func(c *Client) {
		if err := c.Resumer.Resume(ctx); err != nil {
			c.logger.Debug("Scheduled refresh failed", zap.Error(err))
		}
	})
}

// Evict drops clients idle for longer than idle. Their session-scoped tier goes
// with them; the long-lived tier survives in Redis.
func (r *Registry) Evict(idle time.Duration) int {
	cutoff := r.opts.Now().Add(-idle)
	r.mu.Lock()
	var evicted []*Client
	for id, c := range r.clients {
		if c.idleSince().Before(cutoff) {
			evicted = append(evicted, c)
			delete(r.clients, id)
		}
	}
	r.mu.Unlock()
	for _, c := range evicted {
		c.Close()
	}
	return len(evicted)
}

// Len reports how many clients are registered.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.clients)
}
