package usecase

import (
	"context"
	"strings"

	"github.com/mohitk58/apnadera-frontend/internal/contextkeys"
	"github.com/mohitk58/apnadera-frontend/internal/core/domain"
	"github.com/mohitk58/apnadera-frontend/internal/core/port"
)

// FeaturedLimit - сколько избранных объявлений показывает главная страница.
const FeaturedLimit = 6

type ListPropertiesUseCase struct {
	api      port.PropertyAPIPort
	cache    port.QueryCachePort
	pageSize int
}

func NewListPropertiesUseCase(api port.PropertyAPIPort, cache port.QueryCachePort, pageSize int) *ListPropertiesUseCase {
	if pageSize <= 0 {
		pageSize = domain.DefaultPageSize
	}
	return &ListPropertiesUseCase{api: api, cache: cache, pageSize: pageSize}
}

func (uc *ListPropertiesUseCase) Execute(ctx context.Context, sess *domain.Session, filters domain.Filters) (*domain.PropertyPage, error) {
	query := filters.APIQuery(uc.pageSize)
	ucLogger := contextkeys.LoggerFromContext(ctx).WithFields(port.Fields{
		"use_case": "ListProperties",
		"query":    query.Encode(),
	})
	ucLogger.Debug("Use case started", nil)

	snap := sess.Snapshot()
	page, err := cachedQuery(ctx, uc.cache, domain.PropertiesKey(query), func(ctx context.Context) (*domain.PropertyPage, error) {
		return uc.api.ListProperties(ctx, snap, query)
	})
	if err != nil {
		ucLogger.Error("Failed to list properties", err, nil)
		return nil, err
	}
	if page == nil {
		page = &domain.PropertyPage{}
	}

	ucLogger.Debug("Use case finished successfully", port.Fields{"count": len(page.Properties)})
	return page, nil
}

// FeaturedPropertiesUseCase - объявления с флагом isFeatured для главной страницы.
type FeaturedPropertiesUseCase struct {
	api   port.PropertyAPIPort
	cache port.QueryCachePort
}

func NewFeaturedPropertiesUseCase(api port.PropertyAPIPort, cache port.QueryCachePort) *FeaturedPropertiesUseCase {
	return &FeaturedPropertiesUseCase{api: api, cache: cache}
}

func (uc *FeaturedPropertiesUseCase) Execute(ctx context.Context, sess *domain.Session) ([]domain.Property, error) {
	query := domain.Filters{domain.FilterFeatured: "true"}.APIQuery(FeaturedLimit)

	snap := sess.Snapshot()
	page, err := cachedQuery(ctx, uc.cache, domain.PropertiesKey(query), func(ctx context.Context) (*domain.PropertyPage, error) {
		return uc.api.ListProperties(ctx, snap, query)
	})
	if err != nil {
		contextkeys.LoggerFromContext(ctx).Error("Failed to load featured properties", err, port.Fields{"use_case": "FeaturedProperties"})
		return nil, err
	}
	if page == nil {
		return nil, nil
	}
	return page.Properties, nil
}

type GetPropertyUseCase struct {
	api   port.PropertyAPIPort
	cache port.QueryCachePort
}

func NewGetPropertyUseCase(api port.PropertyAPIPort, cache port.QueryCachePort) *GetPropertyUseCase {
	return &GetPropertyUseCase{api: api, cache: cache}
}

func (uc *GetPropertyUseCase) Execute(ctx context.Context, sess *domain.Session, id domain.ID) (*domain.Property, error) {
	if id.IsZero() {
		return nil, domain.ErrNotFound
	}
	ucLogger := contextkeys.LoggerFromContext(ctx).WithFields(port.Fields{
		"use_case":    "GetProperty",
		"property_id": id.String(),
	})

	snap := sess.Snapshot()
	p, err := cachedQuery(ctx, uc.cache, domain.PropertyKey(id), func(ctx context.Context) (*domain.Property, error) {
		return uc.api.GetProperty(ctx, snap, id)
	})
	if err != nil {
		ucLogger.Warn("Failed to get property", port.Fields{"error": err.Error()})
		return nil, err
	}
	if p == nil {
		return nil, domain.ErrNotFound
	}
	return p, nil
}

type SearchPropertiesUseCase struct {
	api   port.PropertyAPIPort
	cache port.QueryCachePort
}

func NewSearchPropertiesUseCase(api port.PropertyAPIPort, cache port.QueryCachePort) *SearchPropertiesUseCase {
	return &SearchPropertiesUseCase{api: api, cache: cache}
}

func (uc *SearchPropertiesUseCase) Execute(ctx context.Context, sess *domain.Session, q string) ([]domain.Property, error) {
	q = strings.TrimSpace(q)
	if q == "" {
		return nil, nil
	}

	snap := sess.Snapshot()
	results, err := cachedQuery(ctx, uc.cache, domain.PropertySearchKey(q), func(ctx context.Context) ([]domain.Property, error) {
		return uc.api.SearchProperties(ctx, snap, q)
	})
	if err != nil {
		contextkeys.LoggerFromContext(ctx).Error("Search failed", err, port.Fields{"use_case": "SearchProperties", "q": q})
		return nil, err
	}
	return results, nil
}
