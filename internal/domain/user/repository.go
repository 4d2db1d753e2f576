package user

import "context"

// Repository defines the interface for user data access
type Repository interface {
	// GetByID retrieves a user by its auth id
	GetByID(ctx context.Context, id string) (*User, error)
}
