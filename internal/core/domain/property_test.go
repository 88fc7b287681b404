package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsFavoritedBy(t *testing.T) {
	p := &Property{Favorites: []ID{"64f1a2b3c4d5e6f7a8b9c0d1", "42"}}

	assert.True(t, p.IsFavoritedBy("42"))
	assert.True(t, p.IsFavoritedBy("64f1a2b3c4d5e6f7a8b9c0d1"))
	assert.False(t, p.IsFavoritedBy("7"))
	assert.False(t, p.IsFavoritedBy(""))

	var missing *Property
	assert.False(t, missing.IsFavoritedBy("42"))
}

func TestCanBeEditedBy(t *testing.T) {
	p := &Property{Owner: Contact{ID: "owner-1"}}

	assert.True(t, p.CanBeEditedBy(&User{ID: "owner-1", Role: RoleSeller}))
	assert.True(t, p.CanBeEditedBy(&User{ID: "someone", Role: RoleAdmin}))
	assert.False(t, p.CanBeEditedBy(&User{ID: "someone", Role: RoleAgent}))
	assert.False(t, p.CanBeEditedBy(nil))
}

func TestPrimaryImage(t *testing.T) {
	p := &Property{Images: []Image{{URL: "a.jpg"}, {URL: "b.jpg", IsPrimary: true}}}
	assert.Equal(t, "b.jpg", p.PrimaryImage().URL)

	p.Images[1].IsPrimary = false
	assert.Equal(t, "a.jpg", p.PrimaryImage().URL)

	assert.Nil(t, (&Property{}).PrimaryImage())
}

func TestResolveRecipient(t *testing.T) {
	support := Recipient{Email: "support@apnadera.com", Name: "ApnaDera Support"}

	withAgent := &Property{
		Owner: Contact{ID: "o1", Name: "Olga", Email: "olga@example.com"},
		Agent: &Contact{ID: "a1", Name: "Arun", Email: "arun@example.com"},
	}
	assert.Equal(t, Recipient{Email: "arun@example.com", Name: "Arun", Type: RecipientAgent}, ResolveRecipient(withAgent, support))

	ownerOnly := &Property{Owner: Contact{ID: "o1", Name: "Olga", Email: "olga@example.com"}}
	assert.Equal(t, Recipient{Email: "olga@example.com", Name: "Olga", Type: RecipientOwner}, ResolveRecipient(ownerOnly, support))

	bareAgent := &Property{
		Owner: Contact{ID: "o1", Name: "Olga", Email: "olga@example.com"},
		Agent: &Contact{ID: "a1"},
	}
	assert.Equal(t, Recipient{Email: "olga@example.com", Name: "Olga", Type: RecipientAgent}, ResolveRecipient(bareAgent, support))

	agentWithoutEmail := &Property{
		Owner: Contact{ID: "o1", Email: "olga@example.com"},
		Agent: &Contact{ID: "a1", Name: "Arun"},
	}
	assert.Equal(t, Recipient{Email: "olga@example.com", Name: "Arun", Type: RecipientAgent}, ResolveRecipient(agentWithoutEmail, support))

	ownerRefOnly := &Property{Owner: Contact{ID: "o1"}}
	assert.Equal(t, Recipient{Email: "support@apnadera.com", Name: "ApnaDera Support", Type: RecipientOwner}, ResolveRecipient(ownerRefOnly, support))

	orphan := &Property{}
	assert.Equal(t, RecipientSupport, ResolveRecipient(orphan, support).Type)
	assert.Equal(t, "support@apnadera.com", ResolveRecipient(nil, support).Email)
}

func TestNewInquiry_GeneralSentinel(t *testing.T) {
	form := InquiryForm{Name: "Mia", Email: "mia@example.com", Message: "Hello"}

	inq := NewInquiry(nil, form, Recipient{Email: "support@apnadera.com"})

	assert.Equal(t, GeneralInquiryID, inq.PropertyID)
	assert.Equal(t, GeneralInquiryTitle, inq.PropertyTitle)
	assert.Equal(t, RecipientSupport, inq.Recipient.Type)
}

func TestSessionLifecycle(t *testing.T) {
	s := &Session{Token: "t", Loading: true}
	assert.False(t, s.IsAuthenticated(), "loading session is not authenticated yet")

	s.SignIn("t", User{ID: "u1"})
	assert.True(t, s.IsAuthenticated())
	assert.Equal(t, ID("u1"), s.UserID())

	s.Notify(NoticeInfo, "hi")
	s.Clear()
	assert.False(t, s.IsAuthenticated())
	assert.Len(t, s.DrainNotices(), 1)
	assert.Empty(t, s.Notices())
}

func TestAPIErrorUnwrap(t *testing.T) {
	assert.ErrorIs(t, &APIError{StatusCode: 401}, ErrUnauthorized)
	assert.ErrorIs(t, &APIError{StatusCode: 404}, ErrNotFound)
	assert.ErrorIs(t, &APIError{StatusCode: 400, Fields: []FieldError{{Field: "title", Message: "short"}}}, ErrValidation)
	assert.NotErrorIs(t, &APIError{StatusCode: 500}, ErrValidation)

	assert.Equal(t, "Nope", UserMessage(&APIError{StatusCode: 400, Message: "Nope"}, "fallback"))
	assert.Equal(t, "fallback", UserMessage(ErrTransport, "fallback"))
}
