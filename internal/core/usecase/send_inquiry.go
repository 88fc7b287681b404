package usecase

import (
	"context"
	"errors"

	"github.com/mohitk58/apnadera-frontend/internal/contextkeys"
	"github.com/mohitk58/apnadera-frontend/internal/core/domain"
	"github.com/mohitk58/apnadera-frontend/internal/core/port"
)

const (
	msgRequiredFields       = "Please fill in all required fields"
	msgInquirySent          = "Inquiry sent successfully! You will receive a confirmation email."
	msgInquiryFailed        = "Failed to send inquiry. Please try again."
	msgGeneralInquirySent   = "Message sent successfully! We will get back to you soon."
	msgGeneralInquiryFailed = "Failed to send message. Please try again."
)

// SendInquiryUseCase - одна попытка отправки, без повторов и очереди.
type SendInquiryUseCase struct {
	api     port.ContactAPIPort
	support domain.Recipient
}

func NewSendInquiryUseCase(api port.ContactAPIPort, support domain.Recipient) *SendInquiryUseCase {
	return &SendInquiryUseCase{api: api, support: support}
}

func (uc *SendInquiryUseCase) Execute(ctx context.Context, sess *domain.Session, property *domain.Property, form *domain.InquiryForm) error {
	ucLogger := contextkeys.LoggerFromContext(ctx).WithFields(port.Fields{"use_case": "SendInquiry"})

	form.Normalize()
	if err := validateForm(form); err != nil {
		sess.Notify(domain.NoticeError, msgRequiredFields)
		return err
	}

	inq := domain.NewInquiry(property, *form, uc.support)
	ucLogger = ucLogger.WithFields(port.Fields{
		"property_id":    inq.PropertyID.String(),
		"recipient_type": string(inq.Recipient.Type),
	})
	ucLogger.Info("Use case started", nil)

	sent, failed := msgInquirySent, msgInquiryFailed
	if property == nil {
		sent, failed = msgGeneralInquirySent, msgGeneralInquiryFailed
	}

	if err := uc.api.SendInquiry(ctx, sess, inq); err != nil {
		ucLogger.Error("Failed to send inquiry", err, nil)
		if !errors.Is(err, domain.ErrUnauthorized) {
			sess.Notify(domain.NoticeError, domain.UserMessage(err, failed))
		}
		return err
	}

	form.Reset()
	sess.Notify(domain.NoticeSuccess, sent)
	ucLogger.Info("Use case finished successfully", nil)
	return nil
}
