package api_client

import (
	"context"

	"github.com/mohitk58/apnadera-frontend/internal/core/domain"
)

// SendInquiry - POST /contact/send. Одна попытка, без повторов.
func (c *Client) SendInquiry(ctx context.Context, sess *domain.Session, inq domain.Inquiry) error {
	return c.Post(ctx, sess, "/contact/send", newInquiryRequest(inq), nil)
}
