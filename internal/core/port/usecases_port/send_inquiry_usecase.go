package usecases_port

import (
	"context"

	"github.com/mohitk58/apnadera-frontend/internal/core/domain"
)

type SendInquiryUseCasePort interface {
	// property == nil - общий запрос со страницы контактов. При успехе форма очищается.
	Execute(ctx context.Context, sess *domain.Session, property *domain.Property, form *domain.InquiryForm) error
}
