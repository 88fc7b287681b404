package api_client

import (
	"context"
	"net/url"

	"github.com/mohitk58/apnadera-frontend/internal/core/domain"
)

// ListProperties - GET /properties с фильтрами, страницей и limit.
func (c *Client) ListProperties(ctx context.Context, sess *domain.Session, query url.Values) (*domain.PropertyPage, error) {
	var resp propertyListResponse
	if err := c.Get(ctx, sess, "/properties", query, &resp); err != nil {
		return nil, err
	}

	page := &domain.PropertyPage{Properties: propertiesToDomain(resp.Properties)}
	if resp.Pagination != nil {
		page.Pagination = domain.Pagination{
			CurrentPage:     resp.Pagination.CurrentPage.Int(),
			TotalPages:      resp.Pagination.TotalPages.Int(),
			HasNextPage:     resp.Pagination.HasNextPage,
			HasPrevPage:     resp.Pagination.HasPrevPage,
			TotalProperties: resp.Pagination.TotalProperties.Int(),
		}
	}
	return page, nil
}

func (c *Client) GetProperty(ctx context.Context, sess *domain.Session, id domain.ID) (*domain.Property, error) {
	var dto propertyDTO
	if err := c.Get(ctx, sess, "/properties/"+url.PathEscape(id.String()), nil, &dto); err != nil {
		return nil, err
	}
	p := dto.toDomain()
	return &p, nil
}

// SearchProperties - GET /properties/search?q=
func (c *Client) SearchProperties(ctx context.Context, sess *domain.Session, q string) ([]domain.Property, error) {
	var resp propertyCollection
	if err := c.Get(ctx, sess, "/properties/search", url.Values{"q": {q}}, &resp); err != nil {
		return nil, err
	}
	return propertiesToDomain(resp), nil
}

// CreateProperty отправляет multipart, если приложены изображения, иначе JSON.
func (c *Client) CreateProperty(ctx context.Context, sess *domain.Session, in domain.PropertyInput) (*domain.Property, error) {
	var dto propertyDTO
	if err := c.Post(ctx, sess, "/properties", propertyBody(in), &dto); err != nil {
		return nil, err
	}
	p := dto.toDomain()
	return &p, nil
}

func (c *Client) UpdateProperty(ctx context.Context, sess *domain.Session, id domain.ID, in domain.PropertyInput) (*domain.Property, error) {
	var dto propertyDTO
	if err := c.Put(ctx, sess, "/properties/"+url.PathEscape(id.String()), propertyBody(in), &dto); err != nil {
		return nil, err
	}
	p := dto.toDomain()
	if p.ID.IsZero() {
		p.ID = id
	}
	return &p, nil
}

func (c *Client) DeleteProperty(ctx context.Context, sess *domain.Session, id domain.ID) error {
	return c.Delete(ctx, sess, "/properties/"+url.PathEscape(id.String()), nil)
}

// ToggleFavorite - POST /properties/:id/favorite, в ответе объявление после переключения.
func (c *Client) ToggleFavorite(ctx context.Context, sess *domain.Session, id domain.ID) (*domain.Property, error) {
	var dto propertyDTO
	if err := c.Post(ctx, sess, "/properties/"+url.PathEscape(id.String())+"/favorite", nil, &dto); err != nil {
		return nil, err
	}
	p := dto.toDomain()
	return &p, nil
}

func propertyBody(in domain.PropertyInput) any {
	if in.HasImages() {
		return propertyMultipart(in)
	}
	return newPropertyRequest(in)
}
