// Package common defines the narrow interfaces to the collaborators this
// core consumes but does not implement: outbound messaging, realtime push,
// access checks, company settings, and the send-dedup cache.
package common

import (
	"context"
	"time"
)

// MessageGateway sends an outbound message on a channel. Implementations
// are fire-and-forget: bounded timeout, failure logged, never propagated
// into the state transition that triggered the send.
type MessageGateway interface {
	SendMessage(ctx context.Context, channelID uint, contactAddress, body string) error
}

// RealtimePublisher fans a payload out to connected clients of a company.
// At-least-once, best-effort; not required for correctness.
type RealtimePublisher interface {
	Publish(ctx context.Context, topic string, payload interface{}) error
}

// AccessChecker answers the permission questions the ticket state machine
// asks. Admins bypass queue-membership checks.
type AccessChecker interface {
	UserHasQueueAccess(ctx context.Context, userID, queueID uint) (bool, error)
	IsAdmin(ctx context.Context, userID uint) (bool, error)
}

// SettingsProvider looks up per-company feature flags and mappings.
// A missing key returns ("", nil).
type SettingsProvider interface {
	GetSetting(ctx context.Context, companyID uint, key string) (string, error)
}

// DedupCache remembers when a keyed message was last sent so repeated
// transitions within the TTL do not spam the contact. Bounded by TTL
// eviction; replaces the unbounded in-process list the behavior came from.
type DedupCache interface {
	// MarkSent records a send and reports whether the key was already
	// marked within the TTL (true means: suppress this send).
	MarkSent(ctx context.Context, key string, ttl time.Duration) (alreadySent bool, err error)

	// Clear removes a key, re-arming the next send.
	Clear(ctx context.Context, key string) error
}
