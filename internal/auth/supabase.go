package auth

import (
	"context"

	"github.com/gestorly/gestorly/internal/config"
	"github.com/gestorly/gestorly/internal/domain/auth"
	ierr "github.com/gestorly/gestorly/internal/errors"
	supa "github.com/nedpals/supabase-go"
)

type supabaseAuth struct {
	client *supa.Client
}

func NewSupabaseAuth(cfg *config.Configuration) Provider {
	return &supabaseAuth{
		client: supa.CreateClient(cfg.Supabase.BaseURL, cfg.Supabase.AnonKey),
	}
}

// ValidateSession forwards the credential to the auth service's
// "get current user" operation. Any failure or empty result is an
// invalid session.
func (s *supabaseAuth) ValidateSession(ctx context.Context, credential string) (*auth.Claims, error) {
	user, err := s.client.Auth.User(ctx, credential)
	if err != nil {
		return nil, ierr.WithError(err).
			WithHint("Invalid session").
			Mark(ierr.ErrUnauthorized)
	}
	if user == nil || user.ID == "" {
		return nil, ierr.NewError("auth service returned no user for session").
			WithHint("Invalid session").
			Mark(ierr.ErrUnauthorized)
	}

	return &auth.Claims{
		UserID: user.ID,
		Email:  user.Email,
	}, nil
}

func (s *supabaseAuth) Login(ctx context.Context, email string, password string) (*LoginResult, error) {
	details, err := s.client.Auth.SignIn(ctx, supa.UserCredentials{
		Email:    email,
		Password: password,
	})
	if err != nil {
		return nil, ierr.WithError(err).
			WithHint("Invalid email or password").
			Mark(ierr.ErrUnauthorized)
	}

	return &LoginResult{
		AccessToken:  details.AccessToken,
		RefreshToken: details.RefreshToken,
		UserID:       details.User.ID,
	}, nil
}
