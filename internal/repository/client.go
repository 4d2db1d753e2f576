package repository

import (
	"context"

	"github.com/gestorly/gestorly/internal/domain/client"
	ierr "github.com/gestorly/gestorly/internal/errors"
	"github.com/gestorly/gestorly/internal/logger"
	"github.com/gestorly/gestorly/internal/supabase"
)

type clientRepository struct {
	client *supabase.Client
	logger *logger.Logger
}

// NewClientRepository creates a supabase-backed client-record repository.
func NewClientRepository(client *supabase.Client, logger *logger.Logger) client.Repository {
	return &clientRepository{
		client: client,
		logger: logger,
	}
}

func (r *clientRepository) Get(ctx context.Context, id string, ownerID string) (*client.Client, error) {
	db := resolveClient(ctx, r.client)

	var rows []client.Client
	err := db.DB.From(tableClients).
		Select("*").
		Eq("id", id).
		Eq("user_id", ownerID).
		ExecuteWithContext(ctx, &rows)
	if err != nil {
		return nil, ierr.WithError(err).
			WithHint("Failed to fetch client").
			Mark(ierr.ErrDatabase)
	}
	if len(rows) == 0 {
		return nil, ierr.NewError("client not found").
			WithHint("Client not found").
			WithReportableDetails(map[string]any{"id": id}).
			Mark(ierr.ErrNotFound)
	}
	return &rows[0], nil
}
