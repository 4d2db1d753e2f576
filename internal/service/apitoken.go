package service

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"time"

	"github.com/gestorly/gestorly/internal/api/dto"
	"github.com/gestorly/gestorly/internal/domain/apitoken"
	ierr "github.com/gestorly/gestorly/internal/errors"
	"github.com/gestorly/gestorly/internal/types"
)

// TokenService defines the API token lifecycle operations.
type TokenService interface {
	Create(ctx context.Context, req *dto.CreateTokenRequest) (*dto.CreateTokenResponse, error)
	List(ctx context.Context) (*dto.ListTokensResponse, error)
	Revoke(ctx context.Context, id string) (*dto.TokenResponse, error)
	RevokeAll(ctx context.Context) error
	SweepExpired(ctx context.Context) (int, error)

	// FindBySecret resolves an active, unexpired token by its secret.
	// Returns nil, nil on any miss: not found, inactive and expired are
	// deliberately indistinguishable to the caller.
	FindBySecret(ctx context.Context, secret string) (*apitoken.Token, error)

	// TouchLastUsed records token usage; failures are logged, never
	// propagated, so they cannot break the request they support.
	TouchLastUsed(ctx context.Context, id string)
}

type tokenService struct {
	ServiceParams
}

func NewTokenService(params ServiceParams) TokenService {
	return &tokenService{ServiceParams: params}
}

// generateSecret returns 32 cryptographically random bytes hex-encoded
// to 64 lowercase characters.
func generateSecret() (string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", ierr.WithError(err).
			WithHint("Failed to generate token secret").
			Mark(ierr.ErrSystem)
	}
	return hex.EncodeToString(buf), nil
}

func (s *tokenService) Create(ctx context.Context, req *dto.CreateTokenRequest) (*dto.CreateTokenResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	secret, err := generateSecret()
	if err != nil {
		return nil, err
	}

	permissions := req.Permissions
	if len(permissions) == 0 {
		permissions = []types.TokenPermission{types.TokenPermissionRead, types.TokenPermissionWrite}
	}

	now := time.Now().UTC()
	token := &apitoken.Token{
		ID:          types.GenerateUUIDWithPrefix(types.UUID_PREFIX_API_TOKEN),
		OwnerID:     types.GetUserID(ctx),
		Name:        req.Name,
		Secret:      secret,
		Description: req.Description,
		Permissions: permissions,
		Active:      true,
		CreatedAt:   now,
		ExpiresAt:   now.AddDate(0, 0, req.DurationDays),
	}

	if err := s.TokenRepo.Create(ctx, token); err != nil {
		return nil, err
	}

	s.Logger.Infow("api token created",
		"token_id", token.ID,
		"owner_id", token.OwnerID,
		"expires_at", token.ExpiresAt,
	)

	// the only time the secret leaves the service
	return &dto.CreateTokenResponse{
		TokenResponse: *dto.ToTokenResponse(token),
		Secret:        secret,
	}, nil
}

func (s *tokenService) List(ctx context.Context) (*dto.ListTokensResponse, error) {
	tokens, err := s.TokenRepo.ListByOwner(ctx, types.GetUserID(ctx))
	if err != nil {
		return nil, err
	}

	items := make([]*dto.TokenResponse, len(tokens))
	for i, t := range tokens {
		items[i] = dto.ToTokenResponse(t)
	}
	return &dto.ListTokensResponse{Items: items, Total: len(items)}, nil
}

func (s *tokenService) FindBySecret(ctx context.Context, secret string) (*apitoken.Token, error) {
	token, err := s.TokenRepo.GetBySecret(ctx, secret)
	if err != nil {
		return nil, err
	}
	if token == nil {
		return nil, nil
	}

	if token.IsExpired(time.Now().UTC()) {
		// lazy expiry: flip active on first lookup past the expiry
		if err := s.TokenRepo.Deactivate(ctx, token.ID); err != nil {
			s.Logger.Errorw("failed to deactivate expired token", "token_id", token.ID, "error", err)
		}
		return nil, nil
	}

	return token, nil
}

func (s *tokenService) TouchLastUsed(ctx context.Context, id string) {
	if err := s.TokenRepo.UpdateLastUsed(ctx, id, time.Now().UTC()); err != nil {
		s.Logger.Warnw("failed to update token last_used_at", "token_id", id, "error", err)
	}
}

func (s *tokenService) Revoke(ctx context.Context, id string) (*dto.TokenResponse, error) {
	ownerID := types.GetUserID(ctx)

	token, err := s.TokenRepo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if token.OwnerID != ownerID {
		// same signal as a missing token, ownership is not leaked
		return nil, ierr.NewError("api token not found").
			WithHint("API token not found").
			Mark(ierr.ErrNotFound)
	}

	if err := s.TokenRepo.Deactivate(ctx, token.ID); err != nil {
		return nil, err
	}

	token.Active = false
	return dto.ToTokenResponse(token), nil
}

func (s *tokenService) RevokeAll(ctx context.Context) error {
	return s.TokenRepo.DeactivateAllForOwner(ctx, types.GetUserID(ctx))
}

func (s *tokenService) SweepExpired(ctx context.Context) (int, error) {
	count, err := s.TokenRepo.DeactivateExpired(ctx, time.Now().UTC())
	if err != nil {
		return 0, err
	}
	if count > 0 {
		s.Logger.Infow("swept expired api tokens", "count", count)
	}
	return count, nil
}
