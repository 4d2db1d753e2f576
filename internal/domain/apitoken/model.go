package apitoken

import (
	"time"

	"github.com/gestorly/gestorly/internal/types"
	"github.com/samber/lo"
)

// Token is a long-lived opaque credential owned by a user. The secret
// is generated once at creation and never re-derivable; it is returned
// to the caller exactly once and omitted from every subsequent read.
// Tokens are soft-deactivated, never physically deleted.
type Token struct {
	ID          string                  `json:"id"`
	OwnerID     string                  `json:"user_id"`
	Name        string                  `json:"name"`
	Secret      string                  `json:"token"`
	Description *string                 `json:"description"`
	Permissions []types.TokenPermission `json:"permissions"`
	Active      bool                    `json:"is_active"`
	CreatedAt   time.Time               `json:"created_at"`
	ExpiresAt   time.Time               `json:"expires_at"`
	LastUsedAt  *time.Time              `json:"last_used_at"`
}

// IsExpired reports whether the token's expiry has passed.
func (t *Token) IsExpired(now time.Time) bool {
	return now.After(t.ExpiresAt) || now.Equal(t.ExpiresAt)
}

// IsUsable reports whether the token can authenticate a request:
// active and not yet expired.
func (t *Token) IsUsable(now time.Time) bool {
	return t.Active && !t.IsExpired(now)
}

// HasPermission checks if the token carries the given permission.
func (t *Token) HasPermission(permission types.TokenPermission) bool {
	return HasPermission(t.Permissions, permission)
}

// HasPermission reports whether a permission set carries the given
// permission. Permissions are exact grants; none implies another.
func HasPermission(permissions []types.TokenPermission, permission types.TokenPermission) bool {
	return lo.Contains(permissions, permission)
}
