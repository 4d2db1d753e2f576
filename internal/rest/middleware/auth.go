package middleware

import (
	"context"
	"strings"

	ierr "github.com/gestorly/gestorly/internal/errors"
	"github.com/gestorly/gestorly/internal/logger"
	"github.com/gestorly/gestorly/internal/service"
	"github.com/gestorly/gestorly/internal/supabase"
	"github.com/gestorly/gestorly/internal/types"
	"github.com/gin-gonic/gin"
)

// AuthenticateMiddleware authenticates requests from a single bearer
// credential that is either:
// 1. An API token secret (64 hex characters)
// 2. A session access token issued by the auth backend
// The credential's shape decides the resolution path; callers never
// declare which kind they are presenting. It sets the principal in the
// request context for downstream handlers, plus the token context or
// the session-scoped data-access handle depending on the path taken.
func AuthenticateMiddleware(authService service.AuthService, logger *logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader(types.HeaderAuthorization)
		if authHeader == "" {
			abortUnauthorized(c, "Authorization header is required")
			return
		}

		if !strings.HasPrefix(authHeader, "Bearer ") {
			abortUnauthorized(c, "Invalid authorization header format")
			return
		}

		credential := strings.TrimPrefix(authHeader, "Bearer ")
		result, err := authService.ResolveBearer(c.Request.Context(), credential)
		if err != nil {
			logger.Debugw("failed to resolve bearer credential", "error", err)
			c.Error(err)
			c.Abort()
			return
		}

		ctx := c.Request.Context()
		ctx = context.WithValue(ctx, types.CtxUserID, result.Principal.ID)
		ctx = context.WithValue(ctx, types.CtxUserEmail, result.Principal.Email)
		ctx = context.WithValue(ctx, types.CtxUserName, result.Principal.DisplayName)
		if result.Principal.BusinessID != "" {
			ctx = context.WithValue(ctx, types.CtxBusinessID, result.Principal.BusinessID)
		}
		if result.ActiveToken != nil {
			ctx = types.SetActiveToken(ctx, result.ActiveToken)
		}
		if result.ScopedDB != nil {
			ctx = supabase.WithClient(ctx, result.ScopedDB)
		}
		c.Request = c.Request.WithContext(ctx)
		c.Next()
	}
}

func abortUnauthorized(c *gin.Context, hint string) {
	c.Error(ierr.NewError("unauthorized").
		WithHint(hint).
		Mark(ierr.ErrUnauthorized))
	c.Abort()
}
