package testutil

import (
	"context"

	"github.com/gestorly/gestorly/internal/domain/business"
	"github.com/gestorly/gestorly/internal/domain/client"
	"github.com/gestorly/gestorly/internal/domain/user"
	ierr "github.com/gestorly/gestorly/internal/errors"
)

// InMemoryUserStore implements user.Repository
type InMemoryUserStore struct {
	*InMemoryStore[*user.User]
}

// NewInMemoryUserStore creates a new in-memory user store
func NewInMemoryUserStore() *InMemoryUserStore {
	return &InMemoryUserStore{
		InMemoryStore: NewInMemoryStore[*user.User](),
	}
}

// Add seeds a user into the store
func (s *InMemoryUserStore) Add(usr *user.User) {
	_ = s.InMemoryStore.Create(context.Background(), usr.ID, usr)
}

func (s *InMemoryUserStore) GetByID(ctx context.Context, id string) (*user.User, error) {
	usr, err := s.InMemoryStore.Get(ctx, id)
	if err != nil {
		return nil, ierr.NewError("user not found").
			WithHint("User not found").
			Mark(ierr.ErrNotFound)
	}
	return usr, nil
}

// InMemoryBusinessStore implements business.Repository
type InMemoryBusinessStore struct {
	*InMemoryStore[*business.Profile]
}

// NewInMemoryBusinessStore creates a new in-memory business profile store
func NewInMemoryBusinessStore() *InMemoryBusinessStore {
	return &InMemoryBusinessStore{
		InMemoryStore: NewInMemoryStore[*business.Profile](),
	}
}

// Add seeds a business profile keyed by owner
func (s *InMemoryBusinessStore) Add(profile *business.Profile) {
	_ = s.InMemoryStore.Create(context.Background(), profile.OwnerID, profile)
}

func (s *InMemoryBusinessStore) GetByOwner(ctx context.Context, ownerID string) (*business.Profile, error) {
	profile, err := s.InMemoryStore.Get(ctx, ownerID)
	if err != nil {
		// an unconfigured profile is not an error
		return nil, nil
	}
	return profile, nil
}

// InMemoryClientStore implements client.Repository
type InMemoryClientStore struct {
	*InMemoryStore[*client.Client]
}

// NewInMemoryClientStore creates a new in-memory client store
func NewInMemoryClientStore() *InMemoryClientStore {
	return &InMemoryClientStore{
		InMemoryStore: NewInMemoryStore[*client.Client](),
	}
}

// Add seeds a client record into the store
func (s *InMemoryClientStore) Add(cli *client.Client) {
	_ = s.InMemoryStore.Create(context.Background(), cli.ID, cli)
}

func (s *InMemoryClientStore) Get(ctx context.Context, id string, ownerID string) (*client.Client, error) {
	cli, err := s.InMemoryStore.Get(ctx, id)
	if err != nil || cli.OwnerID != ownerID {
		return nil, ierr.NewError("client not found").
			WithHint("Client not found").
			Mark(ierr.ErrNotFound)
	}
	return cli, nil
}
