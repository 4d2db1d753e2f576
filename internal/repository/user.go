package repository

import (
	"context"

	"github.com/gestorly/gestorly/internal/domain/user"
	ierr "github.com/gestorly/gestorly/internal/errors"
	"github.com/gestorly/gestorly/internal/logger"
	"github.com/gestorly/gestorly/internal/supabase"
)

type userRepository struct {
	client *supabase.Client
	logger *logger.Logger
}

// NewUserRepository creates a supabase-backed user repository. User
// lookups happen during principal resolution, before any session
// scoping exists, so they always use the privileged client.
func NewUserRepository(client *supabase.Client, logger *logger.Logger) user.Repository {
	return &userRepository{
		client: client,
		logger: logger,
	}
}

func (r *userRepository) GetByID(ctx context.Context, id string) (*user.User, error) {
	var rows []user.User
	err := r.client.DB.From(tableUsers).
		Select("*").
		Eq("id", id).
		ExecuteWithContext(ctx, &rows)
	if err != nil {
		return nil, ierr.WithError(err).
			WithHint("Failed to fetch user").
			Mark(ierr.ErrDatabase)
	}
	if len(rows) == 0 {
		return nil, ierr.NewError("user not found").
			WithHint("User not found").
			WithReportableDetails(map[string]any{"id": id}).
			Mark(ierr.ErrNotFound)
	}
	return &rows[0], nil
}
