package types

import (
	"context"
	"time"
)

// ContextKey is a type for the keys of values stored in the context
type ContextKey string

const (
	CtxRequestID   ContextKey = "ctx_request_id"
	CtxUserID      ContextKey = "ctx_user_id"
	CtxUserEmail   ContextKey = "ctx_user_email"
	CtxUserName    ContextKey = "ctx_user_name"
	CtxBusinessID  ContextKey = "ctx_business_id"
	CtxActiveToken ContextKey = "ctx_active_token"
)

// ActiveToken is the side-channel context attached to requests that
// authenticated with an API token instead of a session credential.
type ActiveToken struct {
	ID          string
	Name        string
	Permissions []TokenPermission
	ExpiresAt   time.Time
}

func GetUserID(ctx context.Context) string {
	if userID, ok := ctx.Value(CtxUserID).(string); ok {
		return userID
	}
	return ""
}

func GetUserEmail(ctx context.Context) string {
	if email, ok := ctx.Value(CtxUserEmail).(string); ok {
		return email
	}
	return ""
}

func GetUserName(ctx context.Context) string {
	if name, ok := ctx.Value(CtxUserName).(string); ok {
		return name
	}
	return ""
}

func GetBusinessID(ctx context.Context) string {
	if businessID, ok := ctx.Value(CtxBusinessID).(string); ok {
		return businessID
	}
	return ""
}

func GetRequestID(ctx context.Context) string {
	if requestID, ok := ctx.Value(CtxRequestID).(string); ok {
		return requestID
	}
	return ""
}

// GetActiveToken returns the API token context for the request, or nil
// when the request authenticated with a session credential.
func GetActiveToken(ctx context.Context) *ActiveToken {
	if token, ok := ctx.Value(CtxActiveToken).(*ActiveToken); ok {
		return token
	}
	return nil
}

func SetUserID(ctx context.Context, userID string) context.Context {
	return context.WithValue(ctx, CtxUserID, userID)
}

func SetActiveToken(ctx context.Context, token *ActiveToken) context.Context {
	return context.WithValue(ctx, CtxActiveToken, token)
}
