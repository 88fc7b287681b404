package api_client

import (
	"context"

	"github.com/mohitk58/apnadera-frontend/internal/core/domain"
)

// UserProperties - GET /users/properties, ответ {"properties": [...]}.
func (c *Client) UserProperties(ctx context.Context, sess *domain.Session) ([]domain.Property, error) {
	var resp propertyCollection
	if err := c.Get(ctx, sess, "/users/properties", nil, &resp); err != nil {
		return nil, err
	}
	return propertiesToDomain(resp), nil
}

// UserFavorites - GET /users/favorites, ответ - массив объявлений.
func (c *Client) UserFavorites(ctx context.Context, sess *domain.Session) ([]domain.Property, error) {
	var resp propertyCollection
	if err := c.Get(ctx, sess, "/users/favorites", nil, &resp); err != nil {
		return nil, err
	}
	return propertiesToDomain(resp), nil
}

func (c *Client) UserStats(ctx context.Context, sess *domain.Session) (*domain.UserStats, error) {
	var dto userStatsDTO
	if err := c.Get(ctx, sess, "/users/stats", nil, &dto); err != nil {
		return nil, err
	}
	stats := dto.toDomain()
	return &stats, nil
}
