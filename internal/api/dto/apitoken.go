package dto

import (
	"fmt"
	"strings"
	"time"

	"github.com/gestorly/gestorly/internal/domain/apitoken"
	ierr "github.com/gestorly/gestorly/internal/errors"
	"github.com/gestorly/gestorly/internal/types"
)

// CreateTokenRequest represents the request to create a new API token
type CreateTokenRequest struct {
	Name         string                  `json:"name"`
	Description  *string                 `json:"description,omitempty"`
	DurationDays int                     `json:"duration_days"`
	Permissions  []types.TokenPermission `json:"permissions,omitempty"`
}

// Validate aggregates every violated rule instead of failing on the
// first one.
func (r *CreateTokenRequest) Validate() error {
	var violations []string
	details := make(map[string]any)

	if strings.TrimSpace(r.Name) == "" {
		violations = append(violations, "name is required")
		details["name"] = "required"
	} else if len(r.Name) > types.TokenMaxNameLength {
		violations = append(violations, fmt.Sprintf("name must be at most %d characters", types.TokenMaxNameLength))
		details["name"] = "too long"
	}

	if r.DurationDays < types.TokenMinDurationDays || r.DurationDays > types.TokenMaxDurationDays {
		violations = append(violations, fmt.Sprintf("duration_days must be between %d and %d",
			types.TokenMinDurationDays, types.TokenMaxDurationDays))
		details["duration_days"] = "out of range"
	}

	for _, p := range r.Permissions {
		if err := p.Validate(); err != nil {
			violations = append(violations, fmt.Sprintf("invalid permission %q", p))
			details["permissions"] = "invalid"
		}
	}

	if len(violations) > 0 {
		return ierr.NewError("invalid token request").
			WithHint(strings.Join(violations, "; ")).
			WithReportableDetails(details).
			Mark(ierr.ErrValidation)
	}
	return nil
}

// TokenResponse represents a token in responses. The secret is never
// included.
type TokenResponse struct {
	ID          string                  `json:"id"`
	Name        string                  `json:"name"`
	Description *string                 `json:"description,omitempty"`
	Permissions []types.TokenPermission `json:"permissions"`
	Active      bool                    `json:"active"`
	CreatedAt   time.Time               `json:"created_at"`
	ExpiresAt   time.Time               `json:"expires_at"`
	LastUsedAt  *time.Time              `json:"last_used_at,omitempty"`
}

// CreateTokenResponse carries the secret exactly once, at creation.
type CreateTokenResponse struct {
	TokenResponse
	Secret string `json:"token"`
}

// ListTokensResponse represents the response for listing tokens
type ListTokensResponse struct {
	Items []*TokenResponse `json:"items"`
	Total int              `json:"total"`
}

// ToTokenResponse converts a domain token to its response shape,
// omitting the secret.
func ToTokenResponse(t *apitoken.Token) *TokenResponse {
	if t == nil {
		return nil
	}
	return &TokenResponse{
		ID:          t.ID,
		Name:        t.Name,
		Description: t.Description,
		Permissions: t.Permissions,
		Active:      t.Active,
		CreatedAt:   t.CreatedAt,
		ExpiresAt:   t.ExpiresAt,
		LastUsedAt:  t.LastUsedAt,
	}
}
