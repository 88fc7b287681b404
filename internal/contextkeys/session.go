package contextkeys

import (
	"context"

	"github.com/mohitk58/apnadera-frontend/internal/core/domain"
)

type sessionKeyType struct{}

var sessionKey = sessionKeyType{}

// ContextWithSession кладет сессию запроса в контекст. Используется только
// веб-слоем для передачи сессии от middleware к обработчикам; use case
// получают сессию явным аргументом.
func ContextWithSession(ctx context.Context, sess *domain.Session) context.Context {
	return context.WithValue(ctx, sessionKey, sess)
}

// SessionFromContext возвращает сессию или пустую анонимную сессию.
func SessionFromContext(ctx context.Context) *domain.Session {
	if sess, ok := ctx.Value(sessionKey).(*domain.Session); ok && sess != nil {
		return sess
	}
	return &domain.Session{}
}
