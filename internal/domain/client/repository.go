package client

import "context"

// Repository defines the interface for client record access
type Repository interface {
	// Get retrieves a client owned by ownerID
	Get(ctx context.Context, id string, ownerID string) (*Client, error)
}
