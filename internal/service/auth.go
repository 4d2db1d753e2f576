package service

import (
	"context"

	"github.com/gestorly/gestorly/internal/api/dto"
	authn "github.com/gestorly/gestorly/internal/auth"
	domainAuth "github.com/gestorly/gestorly/internal/domain/auth"
	ierr "github.com/gestorly/gestorly/internal/errors"
	"github.com/gestorly/gestorly/internal/supabase"
	"github.com/gestorly/gestorly/internal/types"
	"github.com/samber/lo"
)

// AuthResult is the outcome of principal resolution.
type AuthResult struct {
	Principal *domainAuth.Principal

	// ActiveToken is set only for API token credentials.
	ActiveToken *types.ActiveToken

	// ScopedDB is set only for session credentials: a data-access
	// handle carrying the caller's own session so the backend enforces
	// row-level security. API token requests use the privileged client
	// with explicit owner filtering instead.
	ScopedDB *supabase.Client
}

// AuthService resolves bearer credentials to principals.
type AuthService interface {
	ResolveBearer(ctx context.Context, credential string) (*AuthResult, error)
	Login(ctx context.Context, req *dto.LoginRequest) (*dto.LoginResponse, error)
}

type authService struct {
	ServiceParams
	tokens TokenService
}

func NewAuthService(params ServiceParams, tokens TokenService) AuthService {
	return &authService{
		ServiceParams: params,
		tokens:        tokens,
	}
}

func (s *authService) ResolveBearer(ctx context.Context, credential string) (*AuthResult, error) {
	switch authn.ClassifyCredential(credential) {
	case authn.CredentialKindAPIToken:
		return s.resolveToken(ctx, credential)
	default:
		return s.resolveSession(ctx, credential)
	}
}

func (s *authService) resolveSession(ctx context.Context, credential string) (*AuthResult, error) {
	claims, err := s.AuthProvider.ValidateSession(ctx, credential)
	if err != nil {
		return nil, err
	}

	usr, err := s.UserRepo.GetByID(ctx, claims.UserID)
	if err != nil {
		if ierr.IsNotFound(err) {
			return nil, ierr.WithError(err).
				WithHint("User not found").
				Mark(ierr.ErrUnauthorized)
		}
		return nil, err
	}

	return &AuthResult{
		Principal: &domainAuth.Principal{
			ID:          usr.ID,
			Email:       usr.Email,
			DisplayName: usr.FullName,
			BusinessID:  lo.FromPtr(usr.BusinessID),
		},
		ScopedDB: supabase.NewUserClient(s.Config, credential),
	}, nil
}

func (s *authService) resolveToken(ctx context.Context, credential string) (*AuthResult, error) {
	token, err := s.tokens.FindBySecret(ctx, credential)
	if err != nil {
		return nil, err
	}
	if token == nil {
		return nil, ierr.NewError("token lookup failed").
			WithHint("Invalid or expired token").
			Mark(ierr.ErrUnauthorized)
	}

	// bookkeeping only; the request proceeds even if this fails
	s.tokens.TouchLastUsed(ctx, token.ID)

	usr, err := s.UserRepo.GetByID(ctx, token.OwnerID)
	if err != nil {
		if ierr.IsNotFound(err) {
			return nil, ierr.WithError(err).
				WithHint("User not found").
				Mark(ierr.ErrUnauthorized)
		}
		return nil, err
	}

	// API tokens are not business-scoped, so BusinessID stays empty
	return &AuthResult{
		Principal: &domainAuth.Principal{
			ID:          usr.ID,
			Email:       usr.Email,
			DisplayName: usr.FullName,
		},
		ActiveToken: &types.ActiveToken{
			ID:          token.ID,
			Name:        token.Name,
			Permissions: token.Permissions,
			ExpiresAt:   token.ExpiresAt,
		},
	}, nil
}

func (s *authService) Login(ctx context.Context, req *dto.LoginRequest) (*dto.LoginResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	result, err := s.AuthProvider.Login(ctx, req.Email, req.Password)
	if err != nil {
		return nil, err
	}

	return &dto.LoginResponse{
		AccessToken:  result.AccessToken,
		RefreshToken: result.RefreshToken,
		UserID:       result.UserID,
	}, nil
}
