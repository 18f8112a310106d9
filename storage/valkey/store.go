// Package valkey provides a Valkey-backed TicketStore for multi-instance
// deployments: the end-user's grant/deny postback may land on a different
// instance than the one that called the authorization endpoint. Payloads
// are stored as JSON with a key prefix and expire via the server-side TTL;
// an optional Encryptor keeps end-user identifiers out of the store in the
// clear.
package valkey

import (
	"context"
	"crypto/tls"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	valkeygo "github.com/valkey-io/valkey-go"

	authlane "github.com/authlane/authlane-go"
	"github.com/authlane/authlane-go/instrumentation"
	"github.com/authlane/authlane-go/security"
	"github.com/authlane/authlane-go/storage"
)

const (
	// DefaultKeyPrefix prefixes every key this store writes.
	DefaultKeyPrefix = "authlane:"

	// connectionVerifyTimeout bounds the PING issued by New.
	connectionVerifyTimeout = 5 * time.Second

	// maxPayloadSize caps the serialized decision document (64KB). Guards
	// the store against a misbehaving backend response.
	maxPayloadSize = 64 * 1024

	backendName = "valkey"
)

// Config holds configuration for the Valkey ticket store.
type Config struct {
	// Address is the Valkey server address (required), e.g. "localhost:6379".
	Address string

	// Password is the optional password for authentication.
	Password string

	// DB is the optional database number.
	DB int

	// KeyPrefix prefixes all keys (default "authlane:").
	KeyPrefix string

	// TLS is the optional TLS configuration.
	TLS *tls.Config

	// Encryptor encrypts payloads at rest. Nil stores them in the clear.
	Encryptor *security.Encryptor

	// Logger is the optional structured logger (default slog.Default()).
	Logger *slog.Logger

	// Instrumentation enables storage metrics.
	Instrumentation *instrumentation.Instrumentation
}

// Store is a Valkey-backed implementation of storage.TicketStore.
type Store struct {
	client    valkeygo.Client
	prefix    string
	encryptor *security.Encryptor
	logger    *slog.Logger
	metrics   *instrumentation.Metrics
}

// New connects to Valkey and verifies the connection with a PING. Call
// Close when done.
func New(cfg Config) (*Store, error) {
	if cfg.Address == "" {
		return nil, fmt.Errorf("valkey: address is required")
	}
	if cfg.KeyPrefix == "" {
		cfg.KeyPrefix = DefaultKeyPrefix
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}
	if cfg.Encryptor == nil {
		// Disabled encryptor; NewEncryptor(nil) cannot fail.
		cfg.Encryptor, _ = security.NewEncryptor(nil)
	}
	inst := cfg.Instrumentation
	if inst == nil {
		inst = instrumentation.Disabled()
	}

	client, err := valkeygo.NewClient(valkeygo.ClientOption{
		InitAddress: []string{cfg.Address},
		Password:    cfg.Password,
		SelectDB:    cfg.DB,
		TLSConfig:   cfg.TLS,
	})
	if err != nil {
		return nil, fmt.Errorf("valkey: failed to create client: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), connectionVerifyTimeout)
	defer cancel()
	if err := client.Do(ctx, client.B().Ping().Build()).Error(); err != nil {
		client.Close()
		return nil, fmt.Errorf("valkey: failed to verify connection: %w", err)
	}

	return &Store{
		client:    client,
		prefix:    cfg.KeyPrefix,
		encryptor: cfg.Encryptor,
		logger:    cfg.Logger,
		metrics:   inst.Metrics(),
	}, nil
}

// Save implements storage.TicketStore.
func (s *Store) Save(ctx context.Context, ticket string, resp *authlane.AuthorizationResponse, ttl time.Duration) error {
	start := time.Now()
	if ticket == "" {
		return fmt.Errorf("valkey: ticket is required")
	}
	if resp == nil {
		return fmt.Errorf("valkey: authorization response is required")
	}
	if ttl <= 0 {
		ttl = storage.DefaultTTL
	}

	payload, err := s.encodePayload(resp)
	if err != nil {
		return err
	}

	key := s.ticketKey(ticket)
	err = s.client.Do(ctx, s.client.B().Set().Key(key).Value(payload).Ex(ttl).Build()).Error()
	if err != nil {
		s.metrics.RecordStorageOperation(ctx, backendName, "save", "error", time.Since(start))
		return fmt.Errorf("valkey: failed to save pending authorization: %w", err)
	}

	s.metrics.RecordStorageOperation(ctx, backendName, "save", "ok", time.Since(start))
	return nil
}

// Get implements storage.TicketStore. Expired keys are gone server-side,
// so expiry shows up as ErrTicketNotFound.
func (s *Store) Get(ctx context.Context, ticket string) (*authlane.AuthorizationResponse, error) {
	start := time.Now()

	key := s.ticketKey(ticket)
	payload, err := s.client.Do(ctx, s.client.B().Get().Key(key).Build()).ToString()
	if err != nil {
		if valkeygo.IsValkeyNil(err) {
			s.metrics.RecordStorageOperation(ctx, backendName, "get", "miss", time.Since(start))
			return nil, storage.ErrTicketNotFound
		}
		s.metrics.RecordStorageOperation(ctx, backendName, "get", "error", time.Since(start))
		return nil, fmt.Errorf("valkey: failed to get pending authorization: %w", err)
	}

	resp, err := s.decodePayload(payload)
	if err != nil {
		s.metrics.RecordStorageOperation(ctx, backendName, "get", "error", time.Since(start))
		return nil, err
	}

	s.metrics.RecordStorageOperation(ctx, backendName, "get", "ok", time.Since(start))
	return resp, nil
}

// Delete implements storage.TicketStore.
func (s *Store) Delete(ctx context.Context, ticket string) error {
	start := time.Now()

	key := s.ticketKey(ticket)
	if err := s.client.Do(ctx, s.client.B().Del().Key(key).Build()).Error(); err != nil {
		s.metrics.RecordStorageOperation(ctx, backendName, "delete", "error", time.Since(start))
		return fmt.Errorf("valkey: failed to delete pending authorization: %w", err)
	}

	s.metrics.RecordStorageOperation(ctx, backendName, "delete", "ok", time.Since(start))
	return nil
}

// Close releases the underlying client.
func (s *Store) Close() {
	s.client.Close()
}

func (s *Store) ticketKey(ticket string) string {
	return s.prefix + "ticket:" + ticket
}

// encodePayload serializes and, when configured, encrypts a decision
// document for storage.
func (s *Store) encodePayload(resp *authlane.AuthorizationResponse) (string, error) {
	data, err := json.Marshal(resp)
	if err != nil {
		return "", fmt.Errorf("valkey: failed to marshal pending authorization: %w", err)
	}
	if len(data) > maxPayloadSize {
		return "", fmt.Errorf("valkey: pending authorization exceeds %d bytes", maxPayloadSize)
	}
	return s.encryptor.Encrypt(string(data))
}

func (s *Store) decodePayload(payload string) (*authlane.AuthorizationResponse, error) {
	plaintext, err := s.encryptor.Decrypt(payload)
	if err != nil {
		return nil, fmt.Errorf("valkey: failed to decrypt pending authorization: %w", err)
	}

	var resp authlane.AuthorizationResponse
	if err := json.Unmarshal([]byte(plaintext), &resp); err != nil {
		return nil, fmt.Errorf("valkey: failed to unmarshal pending authorization: %w", err)
	}
	return &resp, nil
}
