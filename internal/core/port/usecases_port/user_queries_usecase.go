package usecases_port

import (
	"context"

	"github.com/mohitk58/apnadera-frontend/internal/core/domain"
)

// Все запросы пользователя требуют входа: иначе domain.ErrLoginRequired.

type UserPropertiesUseCasePort interface {
	Execute(ctx context.Context, sess *domain.Session) ([]domain.Property, error)
}

type UserFavoritesUseCasePort interface {
	Execute(ctx context.Context, sess *domain.Session) ([]domain.Property, error)
}

type UserStatsUseCasePort interface {
	Execute(ctx context.Context, sess *domain.Session) (*domain.UserStats, error)
}
