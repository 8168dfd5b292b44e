package repository

import (
	"context"
	"time"

	"github.com/horsh321/teem-server/internal/cache"
	"github.com/horsh321/teem-server/internal/model"

	"github.com/rs/zerolog"
)

// cachedMerchantRepository fronts merchant lookups with a cache. Cache
// failures degrade to a direct read.
type cachedMerchantRepository struct {
	base   MerchantRepository
	cache  cache.Store
	ttl    time.Duration
	logger zerolog.Logger
}

// NewCachedMerchantRepository decorates base with a read-through cache.
func NewCachedMerchantRepository(base MerchantRepository, store cache.Store, ttl time.Duration, logger zerolog.Logger) MerchantRepository {
	return &cachedMerchantRepository{
		base:   base,
		cache:  store,
		ttl:    ttl,
		logger: logger.With().Str("repository", "merchant-cache").Logger(),
	}
}

func merchantKey(code string) string {
	return "merchant:" + code
}

func (r *cachedMerchantRepository) GetByCode(ctx context.Context, code string) (*model.Merchant, error) {
	key := merchantKey(code)

	var cached model.Merchant
	found, err := r.cache.GetJSON(ctx, key, &cached)
	if err != nil {
		r.logger.Warn().Err(err).Str("key", key).Msg("cache read failed")
	}
	if found {
		return &cached, nil
	}

	merchant, err := r.base.GetByCode(ctx, code)
	if err != nil || merchant == nil {
		return merchant, err
	}

	if err := r.cache.SetJSON(ctx, key, merchant, r.ttl); err != nil {
		r.logger.Warn().Err(err).Str("key", key).Msg("cache write failed")
	}
	return merchant, nil
}

func (r *cachedMerchantRepository) Create(ctx context.Context, merchant *model.Merchant) error {
	if err := r.base.Create(ctx, merchant); err != nil {
		return err
	}
	if err := r.cache.Delete(ctx, merchantKey(merchant.MerchantCode)); err != nil {
		r.logger.Warn().Err(err).Str("merchant_code", merchant.MerchantCode).Msg("cache invalidation failed")
	}
	return nil
}
