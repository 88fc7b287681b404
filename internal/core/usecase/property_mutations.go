package usecase

import (
	"context"
	"errors"
	"fmt"

	"github.com/mohitk58/apnadera-frontend/internal/contextkeys"
	"github.com/mohitk58/apnadera-frontend/internal/core/domain"
	"github.com/mohitk58/apnadera-frontend/internal/core/port"
)

const (
	msgPropertyCreated      = "Property added successfully!"
	msgPropertyCreateFailed = "Failed to add property"
	msgPropertyUpdated      = "Property updated successfully!"
	msgPropertyUpdateFailed = "Failed to update property"
	msgPropertyDeleted      = "Property deleted successfully"
	msgPropertyDeleteFailed = "Failed to delete property"
	msgLoginForFavorites    = "Please login to add favorites"
	msgFavoriteUpdated      = "Favorite updated successfully"
	msgFavoriteFailed       = "Failed to update favorite"
	msgMaxImages            = "Maximum 10 images allowed"
)

// notifyFailure - ошибки валидации остаются в полях формы, остальное уходит в уведомление.
// Ответ 401 обрабатывает наблюдатель верхнего уровня, уведомление не нужно.
func notifyFailure(sess *domain.Session, err error, fallback string) {
	switch {
	case errors.Is(err, domain.ErrUnauthorized):
	case errors.Is(err, domain.ErrValidation) && len(domain.FieldErrors(err)) > 0:
		var apiErr *domain.APIError
		if errors.As(err, &apiErr) {
			// сервер прислал ошибки полей: форма показывает их списком
			for _, f := range apiErr.Fields {
				sess.Notify(domain.NoticeError, fmt.Sprintf("%s: %s", f.Field, f.Message))
			}
		}
	default:
		sess.Notify(domain.NoticeError, domain.UserMessage(err, fallback))
	}
}

type CreatePropertyUseCase struct {
	api       port.PropertyAPIPort
	cache     port.QueryCachePort
	validator port.PropertyValidatorPort
}

func NewCreatePropertyUseCase(api port.PropertyAPIPort, cache port.QueryCachePort, validator port.PropertyValidatorPort) *CreatePropertyUseCase {
	return &CreatePropertyUseCase{api: api, cache: cache, validator: validator}
}

func (uc *CreatePropertyUseCase) Execute(ctx context.Context, sess *domain.Session, in domain.PropertyInput) (*domain.Property, error) {
	if !sess.IsAuthenticated() {
		return nil, domain.ErrLoginRequired
	}
	ucLogger := contextkeys.LoggerFromContext(ctx).WithFields(port.Fields{
		"use_case": "CreateProperty",
		"user_id":  sess.UserID().String(),
	})
	ucLogger.Info("Use case started", port.Fields{"images": len(in.Images)})

	if len(in.Images) > domain.MaxImages {
		sess.Notify(domain.NoticeError, msgMaxImages)
	}
	if err := uc.validator.ValidatePropertyInput(in); err != nil {
		ucLogger.Info("Property form rejected by validation", port.Fields{"error": err.Error()})
		return nil, err
	}

	created, err := uc.api.CreateProperty(ctx, sess, in)
	if err != nil {
		ucLogger.Error("Failed to create property", err, nil)
		notifyFailure(sess, err, msgPropertyCreateFailed)
		return nil, err
	}

	invalidate(ctx, uc.cache, domain.MutationCreateProperty, created.ID, ucLogger)
	sess.Notify(domain.NoticeSuccess, msgPropertyCreated)
	ucLogger.Info("Use case finished successfully", port.Fields{"property_id": created.ID.String()})
	return created, nil
}

type UpdatePropertyUseCase struct {
	api       port.PropertyAPIPort
	cache     port.QueryCachePort
	validator port.PropertyValidatorPort
}

func NewUpdatePropertyUseCase(api port.PropertyAPIPort, cache port.QueryCachePort, validator port.PropertyValidatorPort) *UpdatePropertyUseCase {
	return &UpdatePropertyUseCase{api: api, cache: cache, validator: validator}
}

func (uc *UpdatePropertyUseCase) Execute(ctx context.Context, sess *domain.Session, id domain.ID, in domain.PropertyInput) (*domain.Property, error) {
	if !sess.IsAuthenticated() {
		return nil, domain.ErrLoginRequired
	}
	ucLogger := contextkeys.LoggerFromContext(ctx).WithFields(port.Fields{
		"use_case":    "UpdateProperty",
		"property_id": id.String(),
		"user_id":     sess.UserID().String(),
	})
	ucLogger.Info("Use case started", nil)

	if len(in.Images) > domain.MaxImages {
		sess.Notify(domain.NoticeError, msgMaxImages)
	}
	if err := uc.validator.ValidatePropertyInput(in); err != nil {
		ucLogger.Info("Property form rejected by validation", port.Fields{"error": err.Error()})
		return nil, err
	}

	updated, err := uc.api.UpdateProperty(ctx, sess, id, in)
	if err != nil {
		ucLogger.Error("Failed to update property", err, nil)
		notifyFailure(sess, err, msgPropertyUpdateFailed)
		return nil, err
	}

	invalidate(ctx, uc.cache, domain.MutationUpdateProperty, id, ucLogger)
	sess.Notify(domain.NoticeSuccess, msgPropertyUpdated)
	ucLogger.Info("Use case finished successfully", nil)
	return updated, nil
}

type DeletePropertyUseCase struct {
	api   port.PropertyAPIPort
	cache port.QueryCachePort
}

func NewDeletePropertyUseCase(api port.PropertyAPIPort, cache port.QueryCachePort) *DeletePropertyUseCase {
	return &DeletePropertyUseCase{api: api, cache: cache}
}

func (uc *DeletePropertyUseCase) Execute(ctx context.Context, sess *domain.Session, id domain.ID) error {
	if !sess.IsAuthenticated() {
		return domain.ErrLoginRequired
	}
	ucLogger := contextkeys.LoggerFromContext(ctx).WithFields(port.Fields{
		"use_case":    "DeleteProperty",
		"property_id": id.String(),
		"user_id":     sess.UserID().String(),
	})
	ucLogger.Info("Use case started", nil)

	if err := uc.api.DeleteProperty(ctx, sess, id); err != nil {
		ucLogger.Error("Failed to delete property", err, nil)
		notifyFailure(sess, err, msgPropertyDeleteFailed)
		return err
	}

	invalidate(ctx, uc.cache, domain.MutationDeleteProperty, id, ucLogger)
	sess.Notify(domain.NoticeSuccess, msgPropertyDeleted)
	ucLogger.Info("Use case finished successfully", nil)
	return nil
}

// ToggleFavoriteUseCase - добавление в избранное или удаление из него.
// Без входа запрос к API не отправляется.
type ToggleFavoriteUseCase struct {
	api   port.PropertyAPIPort
	cache port.QueryCachePort
}

func NewToggleFavoriteUseCase(api port.PropertyAPIPort, cache port.QueryCachePort) *ToggleFavoriteUseCase {
	return &ToggleFavoriteUseCase{api: api, cache: cache}
}

func (uc *ToggleFavoriteUseCase) Execute(ctx context.Context, sess *domain.Session, id domain.ID) (*domain.Property, error) {
	if !sess.IsAuthenticated() {
		sess.Notify(domain.NoticeError, msgLoginForFavorites)
		return nil, domain.ErrLoginRequired
	}
	ucLogger := contextkeys.LoggerFromContext(ctx).WithFields(port.Fields{
		"use_case":    "ToggleFavorite",
		"property_id": id.String(),
		"user_id":     sess.UserID().String(),
	})
	ucLogger.Info("Use case started", nil)

	p, err := uc.api.ToggleFavorite(ctx, sess, id)
	if err != nil {
		ucLogger.Error("Failed to toggle favorite", err, nil)
		if !errors.Is(err, domain.ErrUnauthorized) {
			sess.Notify(domain.NoticeError, msgFavoriteFailed)
		}
		return nil, err
	}

	// сбрасывается объявление с тем ID, который вернул сервер
	target := id
	if p != nil && !p.ID.IsZero() {
		target = p.ID
	}
	invalidate(ctx, uc.cache, domain.MutationToggleFavorite, target, ucLogger)
	sess.Notify(domain.NoticeSuccess, msgFavoriteUpdated)

	ucLogger.Info("Use case finished successfully", port.Fields{
		"favorited": p != nil && p.IsFavoritedBy(sess.UserID()),
	})
	return p, nil
}
