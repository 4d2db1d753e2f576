package testutil

import (
	"context"
	"time"

	"github.com/gestorly/gestorly/internal/domain/apitoken"
	ierr "github.com/gestorly/gestorly/internal/errors"
	"github.com/gestorly/gestorly/internal/types"
)

// InMemoryAPITokenStore implements apitoken.Repository
type InMemoryAPITokenStore struct {
	*InMemoryStore[*apitoken.Token]
}

// NewInMemoryAPITokenStore creates a new in-memory api token store
func NewInMemoryAPITokenStore() *InMemoryAPITokenStore {
	return &InMemoryAPITokenStore{
		InMemoryStore: NewInMemoryStore[*apitoken.Token](),
	}
}

func copyToken(t *apitoken.Token) *apitoken.Token {
	if t == nil {
		return nil
	}
	c := *t
	c.Permissions = append([]types.TokenPermission(nil), t.Permissions...)
	return &c
}

func (s *InMemoryAPITokenStore) Create(ctx context.Context, token *apitoken.Token) error {
	if token == nil {
		return ierr.NewError("token cannot be nil").Mark(ierr.ErrValidation)
	}
	return s.InMemoryStore.Create(ctx, token.ID, copyToken(token))
}

func (s *InMemoryAPITokenStore) Get(ctx context.Context, id string) (*apitoken.Token, error) {
	token, err := s.InMemoryStore.Get(ctx, id)
	if err != nil {
		return nil, ierr.NewError("token not found").
			WithHint("Token not found").
			Mark(ierr.ErrNotFound)
	}
	return copyToken(token), nil
}

func (s *InMemoryAPITokenStore) GetBySecret(ctx context.Context, secret string) (*apitoken.Token, error) {
	tokens, _ := s.InMemoryStore.List(ctx, nil, nil, nil)
	for _, token := range tokens {
		if token.Secret == secret && token.Active {
			return copyToken(token), nil
		}
	}
	return nil, nil
}

func (s *InMemoryAPITokenStore) ListByOwner(ctx context.Context, ownerID string) ([]*apitoken.Token, error) {
	tokens, _ := s.InMemoryStore.List(ctx, nil,
		func(ctx context.Context, t *apitoken.Token, _ interface{}) bool {
			return t.OwnerID == ownerID
		},
		func(i, j *apitoken.Token) bool {
			return i.CreatedAt.After(j.CreatedAt)
		})
	result := make([]*apitoken.Token, len(tokens))
	for i, t := range tokens {
		result[i] = copyToken(t)
	}
	return result, nil
}

func (s *InMemoryAPITokenStore) Deactivate(ctx context.Context, id string) error {
	token, err := s.InMemoryStore.Get(ctx, id)
	if err != nil {
		return ierr.NewError("token not found").
			WithHint("Token not found").
			Mark(ierr.ErrNotFound)
	}
	updated := copyToken(token)
	updated.Active = false
	return s.InMemoryStore.Update(ctx, id, updated)
}

func (s *InMemoryAPITokenStore) DeactivateAllForOwner(ctx context.Context, ownerID string) error {
	tokens, _ := s.InMemoryStore.List(ctx, nil, nil, nil)
	for _, token := range tokens {
		if token.OwnerID == ownerID && token.Active {
			updated := copyToken(token)
			updated.Active = false
			if err := s.InMemoryStore.Update(ctx, token.ID, updated); err != nil {
				return err
			}
		}
	}
	return nil
}

func (s *InMemoryAPITokenStore) DeactivateExpired(ctx context.Context, now time.Time) (int, error) {
	tokens, _ := s.InMemoryStore.List(ctx, nil, nil, nil)
	count := 0
	for _, token := range tokens {
		if token.Active && token.IsExpired(now) {
			updated := copyToken(token)
			updated.Active = false
			if err := s.InMemoryStore.Update(ctx, token.ID, updated); err != nil {
				return count, err
			}
			count++
		}
	}
	return count, nil
}

func (s *InMemoryAPITokenStore) UpdateLastUsed(ctx context.Context, id string, usedAt time.Time) error {
	token, err := s.InMemoryStore.Get(ctx, id)
	if err != nil {
		return ierr.NewError("token not found").
			WithHint("Token not found").
			Mark(ierr.ErrNotFound)
	}
	updated := copyToken(token)
	updated.LastUsedAt = &usedAt
	return s.InMemoryStore.Update(ctx, id, updated)
}
