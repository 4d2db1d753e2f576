package auth

import (
	"context"

	"github.com/gestorly/gestorly/internal/config"
	"github.com/gestorly/gestorly/internal/domain/auth"
)

// LoginResult is the session issued by the external auth service.
type LoginResult struct {
	AccessToken  string
	RefreshToken string
	UserID       string
}

// Provider validates session credentials against the external auth
// service and signs callers in.
type Provider interface {
	ValidateSession(ctx context.Context, credential string) (*auth.Claims, error)
	Login(ctx context.Context, email string, password string) (*LoginResult, error)
}

func NewProvider(cfg *config.Configuration) Provider {
	return NewSupabaseAuth(cfg)
}
