package repository

import (
	"context"
	"sort"
	"strconv"
	"time"

	"github.com/gestorly/gestorly/internal/domain/apitoken"
	ierr "github.com/gestorly/gestorly/internal/errors"
	"github.com/gestorly/gestorly/internal/logger"
	"github.com/gestorly/gestorly/internal/supabase"
)

type apiTokenRepository struct {
	client *supabase.Client
	logger *logger.Logger
}

// NewAPITokenRepository creates a supabase-backed token repository.
// Token reads and writes always go through the privileged client:
// tokens authenticate requests, so there is no session to scope them to.
func NewAPITokenRepository(client *supabase.Client, logger *logger.Logger) apitoken.Repository {
	return &apiTokenRepository{
		client: client,
		logger: logger,
	}
}

func (r *apiTokenRepository) Create(ctx context.Context, token *apitoken.Token) error {
	var inserted []apitoken.Token
	err := r.client.DB.From(tableAPITokens).
		Insert(token).
		ExecuteWithContext(ctx, &inserted)
	if err != nil {
		return ierr.WithError(err).
			WithHint("Failed to create API token").
			Mark(ierr.ErrDatabase)
	}
	return nil
}

func (r *apiTokenRepository) Get(ctx context.Context, id string) (*apitoken.Token, error) {
	var rows []apitoken.Token
	err := r.client.DB.From(tableAPITokens).
		Select("*").
		Eq("id", id).
		ExecuteWithContext(ctx, &rows)
	if err != nil {
		return nil, ierr.WithError(err).
			WithHint("Failed to fetch API token").
			Mark(ierr.ErrDatabase)
	}
	if len(rows) == 0 {
		return nil, ierr.NewError("api token not found").
			WithHint("API token not found").
			WithReportableDetails(map[string]any{"id": id}).
			Mark(ierr.ErrNotFound)
	}
	return &rows[0], nil
}

func (r *apiTokenRepository) GetBySecret(ctx context.Context, secret string) (*apitoken.Token, error) {
	var rows []apitoken.Token
	err := r.client.DB.From(tableAPITokens).
		Select("*").
		Eq("token", secret).
		Eq("is_active", "true").
		ExecuteWithContext(ctx, &rows)
	if err != nil {
		return nil, ierr.WithError(err).
			WithHint("Failed to look up API token").
			Mark(ierr.ErrDatabase)
	}
	if len(rows) == 0 {
		return nil, nil
	}
	return &rows[0], nil
}

func (r *apiTokenRepository) ListByOwner(ctx context.Context, ownerID string) ([]*apitoken.Token, error) {
	var rows []apitoken.Token
	err := r.client.DB.From(tableAPITokens).
		Select("*").
		Eq("user_id", ownerID).
		ExecuteWithContext(ctx, &rows)
	if err != nil {
		return nil, ierr.WithError(err).
			WithHint("Failed to list API tokens").
			Mark(ierr.ErrDatabase)
	}

	tokens := make([]*apitoken.Token, len(rows))
	for i := range rows {
		tokens[i] = &rows[i]
	}
	sort.Slice(tokens, func(i, j int) bool {
		return tokens[i].CreatedAt.After(tokens[j].CreatedAt)
	})
	return tokens, nil
}

func (r *apiTokenRepository) Deactivate(ctx context.Context, id string) error {
	err := r.client.DB.From(tableAPITokens).
		Update(map[string]interface{}{"is_active": false}).
		Eq("id", id).
		ExecuteWithContext(ctx, nil)
	if err != nil {
		return ierr.WithError(err).
			WithHint("Failed to deactivate API token").
			Mark(ierr.ErrDatabase)
	}
	return nil
}

func (r *apiTokenRepository) DeactivateAllForOwner(ctx context.Context, ownerID string) error {
	err := r.client.DB.From(tableAPITokens).
		Update(map[string]interface{}{"is_active": false}).
		Eq("user_id", ownerID).
		Eq("is_active", "true").
		ExecuteWithContext(ctx, nil)
	if err != nil {
		return ierr.WithError(err).
			WithHint("Failed to revoke API tokens").
			Mark(ierr.ErrDatabase)
	}
	return nil
}

func (r *apiTokenRepository) DeactivateExpired(ctx context.Context, now time.Time) (int, error) {
	var updated []apitoken.Token
	err := r.client.DB.From(tableAPITokens).
		Update(map[string]interface{}{"is_active": false}).
		Eq("is_active", "true").
		Lt("expires_at", now.UTC().Format(time.RFC3339)).
		ExecuteWithContext(ctx, &updated)
	if err != nil {
		return 0, ierr.WithError(err).
			WithHint("Failed to sweep expired API tokens").
			Mark(ierr.ErrDatabase)
	}

	r.logger.Debugw("deactivated expired api tokens", "count", strconv.Itoa(len(updated)))
	return len(updated), nil
}

func (r *apiTokenRepository) UpdateLastUsed(ctx context.Context, id string, usedAt time.Time) error {
	err := r.client.DB.From(tableAPITokens).
		Update(map[string]interface{}{"last_used_at": usedAt.UTC().Format(time.RFC3339)}).
		Eq("id", id).
		ExecuteWithContext(ctx, nil)
	if err != nil {
		return ierr.WithError(err).
			WithHint("Failed to update token last used timestamp").
			Mark(ierr.ErrDatabase)
	}
	return nil
}
