package usecase

import (
	"context"

	"github.com/mohitk58/apnadera-frontend/internal/contextkeys"
	"github.com/mohitk58/apnadera-frontend/internal/core/domain"
	"github.com/mohitk58/apnadera-frontend/internal/core/port"
)

// Ключи запросов пользователя содержат его ID: разные сессии не видят чужих данных.

type UserPropertiesUseCase struct {
	api   port.UserAPIPort
	cache port.QueryCachePort
}

func NewUserPropertiesUseCase(api port.UserAPIPort, cache port.QueryCachePort) *UserPropertiesUseCase {
	return &UserPropertiesUseCase{api: api, cache: cache}
}

func (uc *UserPropertiesUseCase) Execute(ctx context.Context, sess *domain.Session) ([]domain.Property, error) {
	if !sess.IsAuthenticated() {
		return nil, domain.ErrLoginRequired
	}
	snap := sess.Snapshot()
	props, err := cachedQuery(ctx, uc.cache, domain.UserPropertiesKey(sess.UserID()), func(ctx context.Context) ([]domain.Property, error) {
		return uc.api.UserProperties(ctx, snap)
	})
	if err != nil {
		contextkeys.LoggerFromContext(ctx).Error("Failed to load user properties", err, port.Fields{
			"use_case": "UserProperties",
			"user_id":  sess.UserID().String(),
		})
		return nil, err
	}
	return props, nil
}

type UserFavoritesUseCase struct {
	api   port.UserAPIPort
	cache port.QueryCachePort
}

func NewUserFavoritesUseCase(api port.UserAPIPort, cache port.QueryCachePort) *UserFavoritesUseCase {
	return &UserFavoritesUseCase{api: api, cache: cache}
}

func (uc *UserFavoritesUseCase) Execute(ctx context.Context, sess *domain.Session) ([]domain.Property, error) {
	if !sess.IsAuthenticated() {
		return nil, domain.ErrLoginRequired
	}
	snap := sess.Snapshot()
	props, err := cachedQuery(ctx, uc.cache, domain.UserFavoritesKey(sess.UserID()), func(ctx context.Context) ([]domain.Property, error) {
		return uc.api.UserFavorites(ctx, snap)
	})
	if err != nil {
		contextkeys.LoggerFromContext(ctx).Error("Failed to load user favorites", err, port.Fields{
			"use_case": "UserFavorites",
			"user_id":  sess.UserID().String(),
		})
		return nil, err
	}
	return props, nil
}

type UserStatsUseCase struct {
	api   port.UserAPIPort
	cache port.QueryCachePort
}

func NewUserStatsUseCase(api port.UserAPIPort, cache port.QueryCachePort) *UserStatsUseCase {
	return &UserStatsUseCase{api: api, cache: cache}
}

func (uc *UserStatsUseCase) Execute(ctx context.Context, sess *domain.Session) (*domain.UserStats, error) {
	if !sess.IsAuthenticated() {
		return nil, domain.ErrLoginRequired
	}
	snap := sess.Snapshot()
	stats, err := cachedQuery(ctx, uc.cache, domain.UserStatsKey(sess.UserID()), func(ctx context.Context) (*domain.UserStats, error) {
		return uc.api.UserStats(ctx, snap)
	})
	if err != nil {
		contextkeys.LoggerFromContext(ctx).Error("Failed to load user stats", err, port.Fields{
			"use_case": "UserStats",
			"user_id":  sess.UserID().String(),
		})
		return nil, err
	}
	if stats == nil {
		stats = &domain.UserStats{}
	}
	return stats, nil
}
