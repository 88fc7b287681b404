package domain

import "strings"

const (
	GeneralInquiryID    ID     = "general-inquiry"
	GeneralInquiryTitle string = "General Inquiry"
)

type RecipientType string

const (
	RecipientAgent   RecipientType = "agent"
	RecipientOwner   RecipientType = "owner"
	RecipientSupport RecipientType = "support"
)

type Recipient struct {
	Email string
	Name  string
	Type  RecipientType
}

// InquiryForm - поля формы обратной связи. Телефон необязателен.
type InquiryForm struct {
	Name    string `validate:"required"`
	Email   string `validate:"required"`
	Phone   string
	Message string `validate:"required"`
}

// Normalize обрезает пробелы по краям всех полей.
func (f *InquiryForm) Normalize() {
	f.Name = strings.TrimSpace(f.Name)
	f.Email = strings.TrimSpace(f.Email)
	f.Phone = strings.TrimSpace(f.Phone)
	f.Message = strings.TrimSpace(f.Message)
}

// Reset очищает форму после успешной отправки.
func (f *InquiryForm) Reset() {
	*f = InquiryForm{}
}

// Inquiry - разовое сообщение, локально не хранится.
type Inquiry struct {
	PropertyID    ID
	PropertyTitle string
	ContactName   string
	ContactEmail  string
	ContactPhone  string
	Message       string
	Recipient     Recipient
}

// ResolveRecipient выбирает получателя: агент, иначе владелец, иначе служба поддержки.
// Имя и email берутся по отдельности в том же порядке, поэтому агент, пришедший
// одной ссылкой без контактов, получает email владельца.
func ResolveRecipient(p *Property, support Recipient) Recipient {
	support.Type = RecipientSupport
	if p == nil {
		return support
	}

	var agent Contact
	hasAgent := p.Agent != nil && (p.Agent.Email != "" || p.Agent.Name != "" || !p.Agent.ID.IsZero())
	if hasAgent {
		agent = *p.Agent
	}
	hasOwner := p.Owner.Email != "" || p.Owner.Name != "" || !p.Owner.ID.IsZero()

	r := Recipient{
		Email: firstNonEmpty(agent.Email, p.Owner.Email, support.Email),
		Name:  firstNonEmpty(agent.Name, p.Owner.Name, support.Name),
	}
	switch {
	case hasAgent:
		r.Type = RecipientAgent
	case hasOwner:
		r.Type = RecipientOwner
	default:
		return support
	}
	return r
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

// NewInquiry собирает запрос по объявлению (или общий запрос, если объявления нет).
func NewInquiry(p *Property, form InquiryForm, support Recipient) Inquiry {
	inq := Inquiry{
		PropertyID:    GeneralInquiryID,
		PropertyTitle: GeneralInquiryTitle,
		ContactName:   form.Name,
		ContactEmail:  form.Email,
		ContactPhone:  form.Phone,
		Message:       form.Message,
		Recipient:     ResolveRecipient(p, support),
	}
	if p != nil {
		inq.PropertyID = p.ID
		inq.PropertyTitle = p.Title
	}
	return inq
}
