package testutil

import (
	"context"

	"github.com/gestorly/gestorly/internal/types"
)

const (
	// DefaultUserID is the principal used by test contexts
	DefaultUserID = "usr_test_owner"

	// OtherUserID is a second principal for cross-owner scenarios
	OtherUserID = "usr_test_other"
)

func SetupContext() context.Context {
	return SetupContextFor(DefaultUserID)
}

func SetupContextFor(userID string) context.Context {
	ctx := context.Background()
	ctx = context.WithValue(ctx, types.CtxUserID, userID)
	ctx = context.WithValue(ctx, types.CtxRequestID, types.GenerateUUID())
	return ctx
}
