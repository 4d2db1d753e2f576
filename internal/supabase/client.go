package supabase

import (
	"context"

	"github.com/gestorly/gestorly/internal/config"
	"github.com/gestorly/gestorly/internal/types"
	supa "github.com/nedpals/supabase-go"
)

// Client wraps a supabase client so that the privileged service client
// and the per-request user-scoped client are distinct, explicitly
// constructed dependencies rather than ambient singletons.
type Client struct {
	*supa.Client

	// scoped is true for clients carrying an end-user session, where
	// the backend enforces row-level security with the caller's JWT.
	scoped bool
}

// NewServiceClient builds the privileged client backed by the service
// key. It bypasses row-level security; every repository call made with
// it must filter by owner id explicitly.
func NewServiceClient(cfg *config.Configuration) *Client {
	return &Client{
		Client: supa.CreateClient(cfg.Supabase.BaseURL, cfg.Supabase.ServiceKey),
	}
}

// NewUserClient builds a request-scoped client that forwards the
// caller's session credential, so the backend applies the caller's own
// row-level security policies.
func NewUserClient(cfg *config.Configuration, accessToken string) *Client {
	c := supa.CreateClient(cfg.Supabase.BaseURL, cfg.Supabase.AnonKey)
	c.DB.AddHeader(types.HeaderAuthorization, "Bearer "+accessToken)
	return &Client{Client: c, scoped: true}
}

func (c *Client) IsScoped() bool {
	return c != nil && c.scoped
}

type contextKey struct{}

// WithClient attaches a request-scoped client to the context.
func WithClient(ctx context.Context, c *Client) context.Context {
	return context.WithValue(ctx, contextKey{}, c)
}

// FromContext returns the request-scoped client, or nil when the
// request is not session-scoped (API token requests use the service
// client instead).
func FromContext(ctx context.Context) *Client {
	if c, ok := ctx.Value(contextKey{}).(*Client); ok {
		return c
	}
	return nil
}
