// Package storage defines the interface for stashing pending authorization
// decision documents between the HTTP exchanges of an interactive flow.
// The initial authorization call and the end-user's grant/deny postback
// arrive in different requests; the decision document is kept keyed by its
// correlation ticket in between. In-memory and Valkey implementations live
// in the subpackages.
package storage

import (
	"context"
	"errors"
	"time"

	authlane "github.com/authlane/authlane-go"
)

// Sentinel errors returned by TicketStore implementations.
var (
	// ErrTicketNotFound means no pending authorization exists for the
	// ticket. Also returned after Delete, and by implementations that
	// cannot distinguish expiry from absence.
	ErrTicketNotFound = errors.New("pending authorization not found")

	// ErrTicketExpired means the pending authorization existed but its TTL
	// has passed. Treated like a miss by callers; the backend will reject
	// the stale ticket anyway.
	ErrTicketExpired = errors.New("pending authorization expired")
)

// DefaultTTL bounds how long a pending authorization is kept when the
// caller passes a zero TTL. Tickets are short-lived on the backend side
// too, so there is no point keeping documents around for longer.
const DefaultTTL = 10 * time.Minute

// TicketStore stores pending authorization decision documents keyed by
// their correlation ticket. Implementations must be safe for concurrent
// use and honor context cancellation on every method.
type TicketStore interface {
	// Save stores a pending authorization under its ticket. A zero ttl
	// means DefaultTTL. Saving an existing ticket overwrites it.
	Save(ctx context.Context, ticket string, resp *authlane.AuthorizationResponse, ttl time.Duration) error

	// Get returns the pending authorization for a ticket, or
	// ErrTicketNotFound / ErrTicketExpired.
	Get(ctx context.Context, ticket string) (*authlane.AuthorizationResponse, error)

	// Delete removes a pending authorization. Deleting an absent ticket is
	// not an error.
	Delete(ctx context.Context, ticket string) error
}
