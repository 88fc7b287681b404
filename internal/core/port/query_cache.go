package port

import (
	"context"

	"github.com/mohitk58/apnadera-frontend/internal/core/domain"
)

// FetchFunc загружает значение для ключа кэша.
type FetchFunc func(ctx context.Context) (any, error)

// QueryCachePort - кэш запросов с окнами свежести по семействам.
type QueryCachePort interface {
	// Fetch возвращает JSON-представление значения: из кэша, если оно свежее;
	// устаревшее значение возвращается сразу, а обновление идет в фоне.
	Fetch(ctx context.Context, key domain.QueryKey, fetch FetchFunc) ([]byte, error)
	// Invalidate сбрасывает запросы, зависящие от мутации. entityID нужен для
	// целей-сущностей; пустой ID сбрасывает семейство целиком.
	Invalidate(ctx context.Context, m domain.Mutation, entityID domain.ID) error
	// Forget удаляет конкретные ключи (например, при выходе пользователя).
	Forget(ctx context.Context, keys ...domain.QueryKey) error
}
