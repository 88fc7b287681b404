package port

import (
	"context"
	"net/url"

	"github.com/mohitk58/apnadera-frontend/internal/core/domain"
)

// Все методы получают сессию явно: токен из нее уходит в заголовок Authorization.
// Ошибка 401 возвращается как domain.ErrUnauthorized, реакция на нее - забота вызывающего.

// PropertyAPIPort - объявления удаленного API.
type PropertyAPIPort interface {
	ListProperties(ctx context.Context, sess *domain.Session, query url.Values) (*domain.PropertyPage, error)
	GetProperty(ctx context.Context, sess *domain.Session, id domain.ID) (*domain.Property, error)
	SearchProperties(ctx context.Context, sess *domain.Session, q string) ([]domain.Property, error)
	CreateProperty(ctx context.Context, sess *domain.Session, in domain.PropertyInput) (*domain.Property, error)
	UpdateProperty(ctx context.Context, sess *domain.Session, id domain.ID, in domain.PropertyInput) (*domain.Property, error)
	DeleteProperty(ctx context.Context, sess *domain.Session, id domain.ID) error
	// ToggleFavorite возвращает объявление после переключения.
	ToggleFavorite(ctx context.Context, sess *domain.Session, id domain.ID) (*domain.Property, error)
}

// UserAPIPort - коллекции и агрегаты текущего пользователя.
type UserAPIPort interface {
	UserProperties(ctx context.Context, sess *domain.Session) ([]domain.Property, error)
	UserFavorites(ctx context.Context, sess *domain.Session) ([]domain.Property, error)
	UserStats(ctx context.Context, sess *domain.Session) (*domain.UserStats, error)
}

type AuthAPIPort interface {
	Login(ctx context.Context, creds domain.Credentials) (*domain.AuthResult, error)
	Register(ctx context.Context, reg domain.Registration) (*domain.AuthResult, error)
	CurrentUser(ctx context.Context, sess *domain.Session) (*domain.User, error)
	UpdateProfile(ctx context.Context, sess *domain.Session, upd domain.ProfileUpdate) (*domain.User, error)
}

type ContactAPIPort interface {
	SendInquiry(ctx context.Context, sess *domain.Session, inq domain.Inquiry) error
}
