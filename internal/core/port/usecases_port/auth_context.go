package usecases_port

import (
	"context"

	"github.com/mohitk58/apnadera-frontend/internal/core/domain"
	"github.com/mohitk58/apnadera-frontend/internal/core/port"
)

// AuthContextPort - жизненный цикл сессии поверх хранилища токена.
type AuthContextPort interface {
	Bootstrap(ctx context.Context, store port.TokenStorePort) (*domain.Session, error)
	Login(ctx context.Context, sess *domain.Session, store port.TokenStorePort, creds domain.Credentials) error
	Register(ctx context.Context, sess *domain.Session, store port.TokenStorePort, reg domain.Registration) error
	Logout(ctx context.Context, sess *domain.Session, store port.TokenStorePort) error
	// Expire - реакция на 401 от API: сессия сбрасывается, пользователь должен войти заново.
	Expire(ctx context.Context, sess *domain.Session, store port.TokenStorePort) error
	UpdateProfile(ctx context.Context, sess *domain.Session, upd domain.ProfileUpdate) error
}
