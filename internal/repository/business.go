package repository

import (
	"context"
	"time"

	"github.com/gestorly/gestorly/internal/domain/business"
	ierr "github.com/gestorly/gestorly/internal/errors"
	"github.com/gestorly/gestorly/internal/logger"
	"github.com/gestorly/gestorly/internal/supabase"
	"github.com/patrickmn/go-cache"
)

const (
	businessCacheTTL     = 5 * time.Minute
	businessCacheCleanup = 10 * time.Minute
)

type businessRepository struct {
	client *supabase.Client
	logger *logger.Logger
	cache  *cache.Cache
}

// NewBusinessRepository creates a supabase-backed business profile
// repository. Profiles are merged into every invoice create/update, so
// reads are cached with a short TTL.
func NewBusinessRepository(client *supabase.Client, logger *logger.Logger) business.Repository {
	return &businessRepository{
		client: client,
		logger: logger,
		cache:  cache.New(businessCacheTTL, businessCacheCleanup),
	}
}

func (r *businessRepository) GetByOwner(ctx context.Context, ownerID string) (*business.Profile, error) {
	if cached, found := r.cache.Get(ownerID); found {
		return cached.(*business.Profile), nil
	}

	db := resolveClient(ctx, r.client)

	var rows []business.Profile
	err := db.DB.From(tableBusinessConfig).
		Select("*").
		Eq("user_id", ownerID).
		ExecuteWithContext(ctx, &rows)
	if err != nil {
		return nil, ierr.WithError(err).
			WithHint("Failed to fetch business profile").
			Mark(ierr.ErrDatabase)
	}
	if len(rows) == 0 {
		// not configuring a business profile is fine, defaults stay empty
		return nil, nil
	}

	profile := &rows[0]
	r.cache.Set(ownerID, profile, cache.DefaultExpiration)
	return profile, nil
}
