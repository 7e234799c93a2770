// Package cache decorates a domain.Store with a Redis read cache for the
// campaign endpoints, which take nearly all of the read traffic. Mutations
// drop the affected keys so readers never see a stale total for longer than
// one invalidation round-trip.
package cache

import (
	"context"
	"encoding/json"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/yajna-funds/server/internal/domain"
)

const (
	keyCampaignList = "campaigns:all"
	keyCampaign     = "campaigns:id:"
)

// Store wraps an inner domain.Store. Cache failures degrade to the inner
// store; they are logged, never surfaced to callers.
type Store struct {
	domain.Store

	rdb    *redis.Client
	ttl    time.Duration
	logger zerolog.Logger
}

func Wrap(inner domain.Store, rdb *redis.Client, ttl time.Duration, logger zerolog.Logger) *Store {
	return &Store{Store: inner, rdb: rdb, ttl: ttl, logger: logger}
}

var _ domain.Store = (*Store)(nil)

func campaignKey(id int64) string {
	return keyCampaign + strconv.FormatInt(id, 10)
}

func (s *Store) getCached(ctx context.Context, key string, dest any) bool {
	val, err := s.rdb.Get(ctx, key).Result()
	if err == redis.Nil {
		return false
	}
	if err != nil {
		s.logger.Warn().Err(err).Str("key", key).Msg("cache read failed")
		return false
	}
	if err := json.Unmarshal([]byte(val), dest); err != nil {
		s.logger.Warn().Err(err).Str("key", key).Msg("cache entry corrupt")
		return false
	}
	return true
}

func (s *Store) setCached(ctx context.Context, key string, value any) {
	b, err := json.Marshal(value)
	if err != nil {
		return
	}
	if err := s.rdb.Set(ctx, key, b, s.ttl).Err(); err != nil {
		s.logger.Warn().Err(err).Str("key", key).Msg("cache write failed")
	}
}

func (s *Store) invalidate(ctx context.Context, keys ...string) {
	if err := s.rdb.Del(ctx, keys...).Err(); err != nil {
		s.logger.Warn().Err(err).Strs("keys", keys).Msg("cache invalidation failed")
	}
}

func (s *Store) GetCampaign(ctx context.Context, id int64) (*domain.Campaign, error) {
	var cached domain.Campaign
	if s.getCached(ctx, campaignKey(id), &cached) {
		return &cached, nil
	}
	c, err := s.Store.GetCampaign(ctx, id)
	if err != nil {
		return nil, err
	}
	s.setCached(ctx, campaignKey(id), c)
	return c, nil
}

func (s *Store) GetCampaigns(ctx context.Context) ([]domain.Campaign, error) {
	var cached []domain.Campaign
	if s.getCached(ctx, keyCampaignList, &cached) {
		return cached, nil
	}
	items, err := s.Store.GetCampaigns(ctx)
	if err != nil {
		return nil, err
	}
	s.setCached(ctx, keyCampaignList, items)
	return items, nil
}

func (s *Store) CreateCampaign(ctx context.Context, in domain.NewCampaign) (*domain.Campaign, error) {
	c, err := s.Store.CreateCampaign(ctx, in)
	if err != nil {
		return nil, err
	}
	s.invalidate(ctx, keyCampaignList)
	return c, nil
}

func (s *Store) UpdateCampaign(ctx context.Context, id int64, upd domain.CampaignUpdate) (*domain.Campaign, error) {
	c, err := s.Store.UpdateCampaign(ctx, id, upd)
	if err != nil {
		return nil, err
	}
	s.invalidate(ctx, keyCampaignList, campaignKey(id))
	return c, nil
}

// CreateContribution invalidates the contributed campaign, whose running
// total just changed.
func (s *Store) CreateContribution(ctx context.Context, in domain.NewContribution) (*domain.Contribution, error) {
	c, err := s.Store.CreateContribution(ctx, in)
	if err != nil {
		return nil, err
	}
	s.invalidate(ctx, keyCampaignList, campaignKey(in.CampaignID))
	return c, nil
}
