package port

import "context"

// TokenStorePort - постоянное хранилище токена сессии (cookie в вебе, файл в CLI).
// Отсутствие токена - не ошибка: LoadToken возвращает пустую строку.
type TokenStorePort interface {
	LoadToken(ctx context.Context) (string, error)
	SaveToken(ctx context.Context, token string) error
	ClearToken(ctx context.Context) error
}
