package usecases_port

import (
	"context"

	"github.com/mohitk58/apnadera-frontend/internal/core/domain"
)

type ListPropertiesUseCasePort interface {
	Execute(ctx context.Context, sess *domain.Session, filters domain.Filters) (*domain.PropertyPage, error)
}

type FeaturedPropertiesUseCasePort interface {
	Execute(ctx context.Context, sess *domain.Session) ([]domain.Property, error)
}

type GetPropertyUseCasePort interface {
	Execute(ctx context.Context, sess *domain.Session, id domain.ID) (*domain.Property, error)
}

type SearchPropertiesUseCasePort interface {
	// Пустой запрос возвращает пустой результат без обращения к API
	Execute(ctx context.Context, sess *domain.Session, q string) ([]domain.Property, error)
}
