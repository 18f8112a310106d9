// Package memory provides an in-memory TicketStore. It is suitable for
// development, tests, and single-instance deployments; pending
// authorizations do not survive a restart and are not shared between
// instances. Use storage/valkey for multi-instance deployments.
package memory

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	authlane "github.com/authlane/authlane-go"
	"github.com/authlane/authlane-go/instrumentation"
	"github.com/authlane/authlane-go/storage"
)

const (
	// DefaultCleanupInterval is how often expired entries are swept.
	DefaultCleanupInterval = time.Minute

	backendName = "memory"
)

// entry is one stored pending authorization.
type entry struct {
	resp      *authlane.AuthorizationResponse
	expiresAt time.Time
}

// Store is an in-memory TicketStore with TTL-based expiry and a background
// sweeper.
type Store struct {
	mu      sync.RWMutex
	entries map[string]entry

	logger  *slog.Logger
	metrics *instrumentation.Metrics

	stopOnce sync.Once
	stopCh   chan struct{}
}

// Option configures a Store.
type Option func(*Store)

// WithLogger sets the structured logger. Default: slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(s *Store) { s.logger = logger }
}

// WithInstrumentation enables storage metrics.
func WithInstrumentation(inst *instrumentation.Instrumentation) Option {
	return func(s *Store) { s.metrics = inst.Metrics() }
}

// New creates a Store and starts its cleanup loop. Call Stop when done.
func New(opts ...Option) *Store {
	return NewWithCleanupInterval(DefaultCleanupInterval, opts...)
}

// NewWithCleanupInterval creates a Store sweeping at the given interval.
// A non-positive interval disables the sweeper; expired entries are then
// only dropped lazily on Get.
func NewWithCleanupInterval(interval time.Duration, opts ...Option) *Store {
	s := &Store{
		entries: make(map[string]entry),
		logger:  slog.Default(),
		metrics: instrumentation.Disabled().Metrics(),
		stopCh:  make(chan struct{}),
	}
	for _, opt := range opts {
		opt(s)
	}

	if interval > 0 {
		go s.cleanupLoop(interval)
	}
	return s
}

// Save implements storage.TicketStore.
func (s *Store) Save(ctx context.Context, ticket string, resp *authlane.AuthorizationResponse, ttl time.Duration) error {
	start := time.Now()
	if err := ctx.Err(); err != nil {
		return err
	}
	if ticket == "" {
		return fmt.Errorf("memory: ticket is required")
	}
	if resp == nil {
		return fmt.Errorf("memory: authorization response is required")
	}
	if ttl <= 0 {
		ttl = storage.DefaultTTL
	}

	s.mu.Lock()
	s.entries[ticket] = entry{resp: resp, expiresAt: time.Now().Add(ttl)}
	s.mu.Unlock()

	s.metrics.RecordStorageOperation(ctx, backendName, "save", "ok", time.Since(start))
	return nil
}

// Get implements storage.TicketStore. Expired entries are dropped on
// access.
func (s *Store) Get(ctx context.Context, ticket string) (*authlane.AuthorizationResponse, error) {
	start := time.Now()
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.RLock()
	e, ok := s.entries[ticket]
	s.mu.RUnlock()

	if !ok {
		s.metrics.RecordStorageOperation(ctx, backendName, "get", "miss", time.Since(start))
		return nil, storage.ErrTicketNotFound
	}
	if time.Now().After(e.expiresAt) {
		s.mu.Lock()
		// Re-check under the write lock; the sweeper may have raced us.
		if cur, ok := s.entries[ticket]; ok && cur.expiresAt.Equal(e.expiresAt) {
			delete(s.entries, ticket)
		}
		s.mu.Unlock()

		s.metrics.RecordStorageOperation(ctx, backendName, "get", "miss", time.Since(start))
		return nil, storage.ErrTicketExpired
	}

	s.metrics.RecordStorageOperation(ctx, backendName, "get", "ok", time.Since(start))
	return e.resp, nil
}

// Delete implements storage.TicketStore.
func (s *Store) Delete(ctx context.Context, ticket string) error {
	start := time.Now()
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	delete(s.entries, ticket)
	s.mu.Unlock()

	s.metrics.RecordStorageOperation(ctx, backendName, "delete", "ok", time.Since(start))
	return nil
}

// Len returns the number of stored entries, expired ones included.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entries)
}

// Stop terminates the cleanup loop. The store stays usable afterwards.
func (s *Store) Stop() {
	s.stopOnce.Do(func() { close(s.stopCh) })
}

func (s *Store) cleanupLoop(interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			s.cleanup()
		case <-s.stopCh:
			return
		}
	}
}

func (s *Store) cleanup() {
	now := time.Now()
	var removed int

	s.mu.Lock()
	for ticket, e := range s.entries {
		if now.After(e.expiresAt) {
			delete(s.entries, ticket)
			removed++
		}
	}
	s.mu.Unlock()

	if removed > 0 {
		s.logger.Debug("swept expired pending authorizations", "removed", removed)
	}
}
