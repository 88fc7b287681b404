package usecases_port

import (
	"context"

	"github.com/mohitk58/apnadera-frontend/internal/core/domain"
)

type CreatePropertyUseCasePort interface {
	Execute(ctx context.Context, sess *domain.Session, in domain.PropertyInput) (*domain.Property, error)
}

type UpdatePropertyUseCasePort interface {
	Execute(ctx context.Context, sess *domain.Session, id domain.ID, in domain.PropertyInput) (*domain.Property, error)
}

type DeletePropertyUseCasePort interface {
	Execute(ctx context.Context, sess *domain.Session, id domain.ID) error
}

type ToggleFavoriteUseCasePort interface {
	Execute(ctx context.Context, sess *domain.Session, id domain.ID) (*domain.Property, error)
}
