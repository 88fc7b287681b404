package usecase

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mohitk58/apnadera-frontend/internal/core/domain"
	"github.com/mohitk58/apnadera-frontend/internal/core/port"
)

// cachedQuery читает значение через кэш запросов и декодирует его в T.
// fetch может выполниться в фоне после завершения запроса, поэтому сессию
// в него нужно передавать снимком.
func cachedQuery[T any](ctx context.Context, cache port.QueryCachePort, key domain.QueryKey, fetch func(ctx context.Context) (T, error)) (T, error) {
	var zero T
	data, err := cache.Fetch(ctx, key, func(ctx context.Context) (any, error) {
		return fetch(ctx)
	})
	if err != nil {
		return zero, err
	}

	var out T
	if err := json.Unmarshal(data, &out); err != nil {
		return zero, fmt.Errorf("failed to decode cached %s: %w", key.Family, err)
	}
	return out, nil
}

// invalidate сбрасывает зависимые запросы. Ошибка хранилища не отменяет уже
// выполненную мутацию, она только логируется.
func invalidate(ctx context.Context, cache port.QueryCachePort, m domain.Mutation, entityID domain.ID, logger port.LoggerPort) {
	if err := cache.Invalidate(ctx, m, entityID); err != nil {
		logger.Warn("Failed to invalidate cached queries", port.Fields{
			"mutation": string(m),
			"error":    err.Error(),
		})
	}
}
