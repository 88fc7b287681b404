package usecase

import (
	"context"
	"testing"

	"github.com/mohitk58/apnadera-frontend/internal/core/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testSupport = domain.Recipient{Email: "support@apnadera.com", Name: "ApnaDera Support"}

func TestSendInquiry_MissingFieldsMakesNoCall(t *testing.T) {
	api := &fakeContactAPI{}
	sess := &domain.Session{}
	form := &domain.InquiryForm{Name: "  ", Email: "a@b.c", Message: "Hello"}

	err := NewSendInquiryUseCase(api, testSupport).Execute(context.Background(), sess, nil, form)

	assert.ErrorIs(t, err, domain.ErrValidation)
	assert.Empty(t, api.sent)
	assert.Equal(t, []string{"Please fill in all required fields"}, noticeMessages(sess))
	assert.Equal(t, "Hello", form.Message, "form is kept on failure")
}

func TestSendInquiry_PropertyAgentRecipient(t *testing.T) {
	api := &fakeContactAPI{}
	sess := &domain.Session{}
	property := &domain.Property{
		ID:    "p1",
		Title: "Lake house",
		Owner: domain.Contact{ID: "o1", Name: "Owner", Email: "owner@example.com"},
		Agent: &domain.Contact{ID: "a1", Name: "Agent", Email: "agent@example.com"},
	}
	form := &domain.InquiryForm{Name: " Ravi ", Email: "ravi@example.com", Message: " Is it available? "}

	require.NoError(t, NewSendInquiryUseCase(api, testSupport).Execute(context.Background(), sess, property, form))

	require.Len(t, api.sent, 1)
	inq := api.sent[0]
	assert.Equal(t, domain.ID("p1"), inq.PropertyID)
	assert.Equal(t, "Lake house", inq.PropertyTitle)
	assert.Equal(t, "Ravi", inq.ContactName)
	assert.Equal(t, "Is it available?", inq.Message)
	assert.Equal(t, domain.Recipient{Email: "agent@example.com", Name: "Agent", Type: domain.RecipientAgent}, inq.Recipient)

	assert.Equal(t, domain.InquiryForm{}, *form)
	assert.Equal(t, []string{"Inquiry sent successfully! You will receive a confirmation email."}, noticeMessages(sess))
}

func TestSendInquiry_GeneralInquiryGoesToSupport(t *testing.T) {
	api := &fakeContactAPI{}
	sess := &domain.Session{}
	form := &domain.InquiryForm{Name: "Ravi", Email: "ravi@example.com", Message: "Hi"}

	require.NoError(t, NewSendInquiryUseCase(api, testSupport).Execute(context.Background(), sess, nil, form))

	inq := api.sent[0]
	assert.Equal(t, domain.GeneralInquiryID, inq.PropertyID)
	assert.Equal(t, domain.GeneralInquiryTitle, inq.PropertyTitle)
	assert.Equal(t, domain.RecipientSupport, inq.Recipient.Type)
	assert.Equal(t, "support@apnadera.com", inq.Recipient.Email)
	assert.Equal(t, []string{"Message sent successfully! We will get back to you soon."}, noticeMessages(sess))
}

func TestSendInquiry_FailureShowsServerMessage(t *testing.T) {
	api := &fakeContactAPI{err: &domain.APIError{StatusCode: 500, Message: "Mail server unavailable"}}
	sess := &domain.Session{}
	form := &domain.InquiryForm{Name: "Ravi", Email: "ravi@example.com", Message: "Hi"}

	err := NewSendInquiryUseCase(api, testSupport).Execute(context.Background(), sess, &domain.Property{ID: "p1"}, form)

	require.Error(t, err)
	assert.Len(t, api.sent, 1)
	assert.Equal(t, []string{"Mail server unavailable"}, noticeMessages(sess))
	assert.Equal(t, "Ravi", form.Name)
}
