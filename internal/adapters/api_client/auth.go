package api_client

import (
	"context"
	"fmt"

	"github.com/mohitk58/apnadera-frontend/internal/core/domain"
)

func (c *Client) Login(ctx context.Context, creds domain.Credentials) (*domain.AuthResult, error) {
	var resp authResponse
	if err := c.Post(ctx, nil, "/auth/login", credentialsRequest{Email: creds.Email, Password: creds.Password}, &resp); err != nil {
		return nil, err
	}
	return resp.toDomain()
}

func (c *Client) Register(ctx context.Context, reg domain.Registration) (*domain.AuthResult, error) {
	req := registrationRequest{
		Name:     reg.Name,
		Email:    reg.Email,
		Password: reg.Password,
		Phone:    reg.Phone,
		Role:     string(reg.Role),
	}
	var resp authResponse
	if err := c.Post(ctx, nil, "/auth/register", req, &resp); err != nil {
		return nil, err
	}
	return resp.toDomain()
}

// CurrentUser - GET /auth/me; проверяет токен сессии на сервере.
func (c *Client) CurrentUser(ctx context.Context, sess *domain.Session) (*domain.User, error) {
	var resp userEnvelope
	if err := c.Get(ctx, sess, "/auth/me", nil, &resp); err != nil {
		return nil, err
	}
	u := resp.toDomain()
	return &u, nil
}

// UpdateProfile - PUT /auth/profile, в ответе обновленный пользователь.
func (c *Client) UpdateProfile(ctx context.Context, sess *domain.Session, upd domain.ProfileUpdate) (*domain.User, error) {
	req := profileUpdateRequest{
		Name:     upd.Name,
		Email:    upd.Email,
		Phone:    upd.Phone,
		Location: upd.Location,
		Bio:      upd.Bio,
		Avatar:   upd.Avatar,
	}
	var resp userEnvelope
	if err := c.Put(ctx, sess, "/auth/profile", req, &resp); err != nil {
		return nil, err
	}
	u := resp.toDomain()
	return &u, nil
}

func (r *authResponse) toDomain() (*domain.AuthResult, error) {
	if r.Token == "" || r.User == nil {
		return nil, fmt.Errorf("%w: auth response without token or user", domain.ErrTransport)
	}
	return &domain.AuthResult{Token: r.Token, User: r.User.toDomain()}, nil
}
