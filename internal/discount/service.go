package discount

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"storefront-be/internal/apperror"
	"storefront-be/internal/cache"
	"storefront-be/internal/logger"
	"storefront-be/internal/pricing"
	"storefront-be/internal/validation"

	"go.uber.org/zap"
)

type Service interface {
	Get(ctx context.Context) (*MaxDiscount, error)
	CurrentPolicy(ctx context.Context) (pricing.Policy, error)
	Update(ctx context.Context, input UpdateInput) (*MaxDiscount, error)
}

type service struct {
	repo  Repository
	cache cache.Cache
	ttl   time.Duration
}

func NewService(repo Repository, c cache.Cache, ttl time.Duration) Service {
	return &service{repo: repo, cache: c, ttl: ttl}
}

func (s *service) cacheKey() string {
	return s.cache.GenerateKey("max_discount", "active")
}

// Get returns the active ceiling, or an inactive zero value when none is set.
func (s *service) Get(ctx context.Context) (*MaxDiscount, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "GetMaxDiscount"),
	)

	key := s.cacheKey()
	if raw, err := s.cache.Get(ctx, key); err != nil {
		log.Warn("policy cache read failed", zap.Error(err))
	} else if raw != "" {
		var m MaxDiscount
		if err := json.Unmarshal([]byte(raw), &m); err == nil {
			return &m, nil
		}
		log.Warn("discarding malformed cached policy", zap.String("key", key))
	}

	m, err := s.repo.GetActive(ctx)
	if errors.Is(err, ErrNoActivePolicy) {
		m = Inactive()
	} else if err != nil {
		log.Error("failed to load max discount", zap.Error(err))
		return nil, apperror.Internal(err, "Failed to load max discount")
	}

	if b, err := json.Marshal(m); err == nil {
		if err := s.cache.Set(ctx, key, string(b), s.ttl); err != nil {
			log.Warn("policy cache write failed", zap.Error(err))
		}
	}

	return m, nil
}

func (s *service) CurrentPolicy(ctx context.Context) (pricing.Policy, error) {
	m, err := s.Get(ctx)
	if err != nil {
		return pricing.NoPolicy, err
	}
	return m.Policy(), nil
}

// Update validates and upserts the ceiling. Description and active flag fall
// back to their defaults when omitted.
func (s *service) Update(ctx context.Context, input UpdateInput) (*MaxDiscount, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "UpdateMaxDiscount"),
	)

	if err := validation.Struct(input); err != nil {
		log.Warn("invalid max discount", zap.Error(err))
		return nil, err
	}

	m := &MaxDiscount{
		Value:       *input.Value,
		Description: DefaultDescription,
		IsActive:    true,
	}
	if input.Description != nil {
		m.Description = *input.Description
	}
	if input.IsActive != nil {
		m.IsActive = *input.IsActive
	}

	saved, err := s.repo.Upsert(ctx, m)
	if err != nil {
		log.Error("failed to save max discount", zap.Error(err))
		return nil, apperror.Internal(err, "Failed to update max discount")
	}

	if err := s.cache.Delete(ctx, s.cacheKey()); err != nil {
		log.Warn("policy cache invalidation failed", zap.Error(err))
	}

	log.Info("max discount updated",
		zap.String("value", saved.Value.String()),
		zap.Bool("is_active", saved.IsActive),
	)
	return saved, nil
}
