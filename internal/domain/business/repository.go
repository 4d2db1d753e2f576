package business

import "context"

// Repository defines the interface for business profile data access
type Repository interface {
	// GetByOwner retrieves the owner's business profile, nil when the
	// owner has not configured one
	GetByOwner(ctx context.Context, ownerID string) (*Profile, error)
}
