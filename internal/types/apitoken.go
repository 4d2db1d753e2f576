package types

import (
	ierr "github.com/gestorly/gestorly/internal/errors"
	"github.com/samber/lo"
)

// TokenPermission is a scope attached to an API token.
type TokenPermission string

const (
	TokenPermissionRead   TokenPermission = "read"
	TokenPermissionWrite  TokenPermission = "write"
	TokenPermissionDelete TokenPermission = "delete"
	TokenPermissionAdmin  TokenPermission = "admin"
)

// TokenSecretLength is the length of the hex-encoded token secret.
// Secrets are 32 random bytes, hex-encoded to 64 characters.
const TokenSecretLength = 64

const (
	TokenMaxNameLength   = 100
	TokenMinDurationDays = 1
	TokenMaxDurationDays = 365
)

func TokenPermissions() []TokenPermission {
	return []TokenPermission{
		TokenPermissionRead,
		TokenPermissionWrite,
		TokenPermissionDelete,
		TokenPermissionAdmin,
	}
}

func (p TokenPermission) Validate() error {
	if !lo.Contains(TokenPermissions(), p) {
		return ierr.NewError("invalid token permission").
			WithHintf("permission must be one of %v", TokenPermissions()).
			Mark(ierr.ErrValidation)
	}
	return nil
}
