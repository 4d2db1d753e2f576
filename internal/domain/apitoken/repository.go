package apitoken

import (
	"context"
	"time"
)

// Repository defines the interface for API token data access
type Repository interface {
	// Create persists a new token
	Create(ctx context.Context, token *Token) error

	// Get retrieves a token by ID regardless of owner or state
	Get(ctx context.Context, id string) (*Token, error)

	// GetBySecret retrieves an active token by exact secret match.
	// Returns nil, nil when no active token matches.
	GetBySecret(ctx context.Context, secret string) (*Token, error)

	// ListByOwner retrieves all tokens for an owner, newest first
	ListByOwner(ctx context.Context, ownerID string) ([]*Token, error)

	// Deactivate sets active=false on a single token
	Deactivate(ctx context.Context, id string) error

	// DeactivateAllForOwner sets active=false on every token the owner has
	DeactivateAllForOwner(ctx context.Context, ownerID string) error

	// DeactivateExpired sets active=false on every active token whose
	// expiry has passed, returning how many were flipped
	DeactivateExpired(ctx context.Context, now time.Time) (int, error)

	// UpdateLastUsed records when the token last authenticated a request
	UpdateLastUsed(ctx context.Context, id string, usedAt time.Time) error
}
