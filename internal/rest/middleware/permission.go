package middleware

import (
	"github.com/gestorly/gestorly/internal/domain/apitoken"
	ierr "github.com/gestorly/gestorly/internal/errors"
	"github.com/gestorly/gestorly/internal/logger"
	"github.com/gestorly/gestorly/internal/types"
	"github.com/gin-gonic/gin"
)

// RequirePermission gates an operation behind an API token permission.
// Session-authenticated requests pass unconditionally: permissions only
// constrain what a token can do, not what its owner can do.
func RequirePermission(permission types.TokenPermission, logger *logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := types.GetActiveToken(c.Request.Context())
		if token == nil {
			c.Next()
			return
		}

		if !apitoken.HasPermission(token.Permissions, permission) {
			logger.Infow("permission denied",
				"token_id", token.ID,
				"permission", permission,
				"path", c.Request.URL.Path,
			)
			c.Error(ierr.NewError("permission denied").
				WithHintf("Token does not have the %s permission", permission).
				Mark(ierr.ErrPermissionDenied))
			c.Abort()
			return
		}

		c.Next()
	}
}
