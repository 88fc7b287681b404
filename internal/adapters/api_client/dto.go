package api_client

import (
	"bytes"
	"encoding/json"
	"math"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/mohitk58/apnadera-frontend/internal/core/domain"
)

// flexID принимает идентификатор в любом виде, который встречается в ответах API:
// строка, число, {"$oid": "..."} или заполненный объект с _id/id.
type flexID domain.ID

func (f *flexID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || string(data) == "null" {
		*f = ""
		return nil
	}

	switch data[0] {
	case '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*f = flexID(strings.TrimSpace(s))
		return nil
	case '{':
		var obj struct {
			OID string `json:"$oid"`
			ID  flexID `json:"_id"`
			Alt flexID `json:"id"`
		}
		if err := json.Unmarshal(data, &obj); err != nil {
			return err
		}
		switch {
		case obj.OID != "":
			*f = flexID(obj.OID)
		case obj.ID != "":
			*f = obj.ID
		default:
			*f = obj.Alt
		}
		return nil
	default:
		var n json.Number
		if err := json.Unmarshal(data, &n); err != nil {
			return err
		}
		*f = flexID(n.String())
		return nil
	}
}

// flexString - строка, которую сервер иногда присылает числом ("+2" или 2).
type flexString string

func (f *flexString) UnmarshalJSON(data []byte) error {
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*f = flexString(s)
		return nil
	}
	if string(data) == "null" {
		*f = ""
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	*f = flexString(n.String())
	return nil
}

// flexNumber - число, которое может прийти строкой ("450000").
type flexNumber float64

func (f *flexNumber) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*f = 0
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		if s == "" {
			*f = 0
			return nil
		}
		v, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return err
		}
		*f = flexNumber(v)
		return nil
	}
	var v float64
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	*f = flexNumber(v)
	return nil
}

func (f flexNumber) Int() int     { return int(math.Round(float64(f))) }
func (f flexNumber) Int64() int64 { return int64(math.Round(float64(f))) }

// flexTime - дата в RFC3339 или просто YYYY-MM-DD. Неразборчивое значение дает нулевое время.
type flexTime time.Time

func (f *flexTime) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil || s == "" {
		*f = flexTime{}
		return nil
	}
	for _, layout := range []string{time.RFC3339Nano, "2006-01-02T15:04:05", "2006-01-02"} {
		if t, err := time.Parse(layout, s); err == nil {
			*f = flexTime(t)
			return nil
		}
	}
	*f = flexTime{}
	return nil
}

func (f flexTime) Time() time.Time { return time.Time(f) }

// contactRef - владелец или агент: либо только идентификатор, либо заполненный объект.
type contactRef struct {
	ID    flexID
	Name  string
	Email string
	Phone string
}

func (c *contactRef) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '{' {
		var obj struct {
			ID    flexID `json:"_id"`
			Alt   flexID `json:"id"`
			OID   string `json:"$oid"`
			Name  string `json:"name"`
			Email string `json:"email"`
			Phone string `json:"phone"`
		}
		if err := json.Unmarshal(data, &obj); err != nil {
			return err
		}
		c.ID = obj.ID
		if c.ID == "" {
			c.ID = obj.Alt
		}
		if c.ID == "" {
			c.ID = flexID(obj.OID)
		}
		c.Name, c.Email, c.Phone = obj.Name, obj.Email, obj.Phone
		return nil
	}
	return c.ID.UnmarshalJSON(data)
}

func (c *contactRef) toDomain() *domain.Contact {
	if c == nil || (c.ID == "" && c.Name == "" && c.Email == "") {
		return nil
	}
	return &domain.Contact{ID: domain.ID(c.ID), Name: c.Name, Email: c.Email, Phone: c.Phone}
}

type imageDTO struct {
	URL       string `json:"url"`
	Caption   string `json:"caption"`
	IsPrimary bool   `json:"isPrimary"`
}

// UnmarshalJSON поддерживает и объект, и просто строку-URL.
func (i *imageDTO) UnmarshalJSON(data []byte) error {
	if len(data) > 0 && data[0] == '"' {
		return json.Unmarshal(data, &i.URL)
	}
	type plain imageDTO
	return json.Unmarshal(data, (*plain)(i))
}

type pricePointDTO struct {
	Date  flexTime   `json:"date"`
	Price flexNumber `json:"price"`
}

type propertyDTO struct {
	ID          flexID     `json:"_id"`
	AltID       flexID     `json:"id"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Price       flexNumber `json:"price"`
	Location    struct {
		Address string `json:"address"`
		City    string `json:"city"`
		State   string `json:"state"`
		ZipCode string `json:"zipCode"`
		Country string `json:"country"`
	} `json:"location"`
	Details struct {
		Bedrooms  flexNumber `json:"bedrooms"`
		Bathrooms flexNumber `json:"bathrooms"`
		Sqft      flexNumber `json:"sqft"`
		YearBuilt flexNumber `json:"yearBuilt"`
	} `json:"details"`
	Type         string          `json:"type"`
	Status       string          `json:"status"`
	Amenities    []string        `json:"amenities"`
	Images       []imageDTO      `json:"images"`
	Owner        *contactRef     `json:"owner"`
	Agent        *contactRef     `json:"agent"`
	Views        flexNumber      `json:"views"`
	Favorites    []flexID        `json:"favorites"`
	IsFeatured   bool            `json:"isFeatured"`
	CreatedAt    flexTime        `json:"createdAt"`
	PriceHistory []pricePointDTO `json:"priceHistory"`
}

func (d *propertyDTO) toDomain() domain.Property {
	p := domain.Property{
		ID:          domain.ID(d.ID),
		Title:       d.Title,
		Description: d.Description,
		Price:       d.Price.Int64(),
		Location: domain.Location{
			Address: d.Location.Address,
			City:    d.Location.City,
			State:   d.Location.State,
			ZipCode: d.Location.ZipCode,
			Country: d.Location.Country,
		},
		Details: domain.Details{
			Bedrooms:  d.Details.Bedrooms.Int(),
			Bathrooms: d.Details.Bathrooms.Int(),
			Sqft:      d.Details.Sqft.Int(),
			YearBuilt: d.Details.YearBuilt.Int(),
		},
		Type:       domain.PropertyType(d.Type),
		Status:     domain.PropertyStatus(d.Status),
		Amenities:  d.Amenities,
		Views:      d.Views.Int(),
		IsFeatured: d.IsFeatured,
		CreatedAt:  d.CreatedAt.Time(),
	}
	if p.ID.IsZero() {
		p.ID = domain.ID(d.AltID)
	}
	for _, img := range d.Images {
		p.Images = append(p.Images, domain.Image{URL: img.URL, Caption: img.Caption, IsPrimary: img.IsPrimary})
	}
	if owner := d.Owner.toDomain(); owner != nil {
		p.Owner = *owner
	}
	p.Agent = d.Agent.toDomain()

	// множество: повторы убираются
	seen := make(map[domain.ID]struct{}, len(d.Favorites))
	for _, fav := range d.Favorites {
		id := domain.ID(fav)
		if id.IsZero() {
			continue
		}
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		p.Favorites = append(p.Favorites, id)
	}
	for _, pp := range d.PriceHistory {
		p.PriceHistory = append(p.PriceHistory, domain.PricePoint{Date: pp.Date.Time(), Price: pp.Price.Int64()})
	}
	return p
}

func propertiesToDomain(dtos []propertyDTO) []domain.Property {
	out := make([]domain.Property, 0, len(dtos))
	for i := range dtos {
		out = append(out, dtos[i].toDomain())
	}
	return out
}

type paginationDTO struct {
	CurrentPage     flexNumber `json:"currentPage"`
	TotalPages      flexNumber `json:"totalPages"`
	HasNextPage     bool       `json:"hasNextPage"`
	HasPrevPage     bool       `json:"hasPrevPage"`
	TotalProperties flexNumber `json:"totalProperties"`
}

type propertyListResponse struct {
	Properties []propertyDTO  `json:"properties"`
	Pagination *paginationDTO `json:"pagination"`
}

// propertyCollection - коллекция объявлений: голый массив или объект-обертка
// ({"properties": [...]}, {"favorites": [...]}, {"results": [...]}).
type propertyCollection []propertyDTO

func (c *propertyCollection) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '[' {
		var list []propertyDTO
		if err := json.Unmarshal(data, &list); err != nil {
			return err
		}
		*c = list
		return nil
	}
	var wrapper struct {
		Properties []propertyDTO `json:"properties"`
		Favorites  []propertyDTO `json:"favorites"`
		Results    []propertyDTO `json:"results"`
	}
	if err := json.Unmarshal(data, &wrapper); err != nil {
		return err
	}
	switch {
	case wrapper.Properties != nil:
		*c = wrapper.Properties
	case wrapper.Favorites != nil:
		*c = wrapper.Favorites
	default:
		*c = wrapper.Results
	}
	return nil
}

type userDTO struct {
	ID        flexID   `json:"_id"`
	AltID     flexID   `json:"id"`
	Name      string   `json:"name"`
	Email     string   `json:"email"`
	Role      string   `json:"role"`
	Phone     string   `json:"phone"`
	Location  string   `json:"location"`
	Bio       string   `json:"bio"`
	Avatar    string   `json:"avatar"`
	CreatedAt flexTime `json:"createdAt"`
}

func (d *userDTO) toDomain() domain.User {
	u := domain.User{
		ID:          domain.ID(d.ID),
		Name:        d.Name,
		Email:       d.Email,
		Role:        domain.Role(d.Role),
		Phone:       d.Phone,
		Location:    d.Location,
		Bio:         d.Bio,
		Avatar:      d.Avatar,
		MemberSince: d.CreatedAt.Time(),
	}
	if u.ID.IsZero() {
		u.ID = domain.ID(d.AltID)
	}
	return u
}

// userEnvelope - пользователь как есть или внутри {"user": {...}}.
type userEnvelope struct {
	userDTO
}

func (e *userEnvelope) UnmarshalJSON(data []byte) error {
	var wrapper struct {
		User *userDTO `json:"user"`
	}
	if err := json.Unmarshal(data, &wrapper); err == nil && wrapper.User != nil {
		e.userDTO = *wrapper.User
		return nil
	}
	return json.Unmarshal(data, &e.userDTO)
}

type authResponse struct {
	Token string   `json:"token"`
	User  *userDTO `json:"user"`
}

type credentialsRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type registrationRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Phone    string `json:"phone,omitempty"`
	Role     string `json:"role,omitempty"`
}

type profileUpdateRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	Location string `json:"location"`
	Bio      string `json:"bio"`
	Avatar   string `json:"avatar,omitempty"`
}

type userStatsDTO struct {
	TotalProperties  flexNumber `json:"totalProperties"`
	TotalFavorites   flexNumber `json:"totalFavorites"`
	TotalViews       flexNumber `json:"totalViews"`
	TotalValue       flexNumber `json:"totalValue"`
	PropertiesChange flexString `json:"propertiesChange"`
	FavoritesChange  flexString `json:"favoritesChange"`
	ViewsChange      flexString `json:"viewsChange"`
	ValueChange      flexString `json:"valueChange"`
}

// toDomain подставляет значения по умолчанию для отсутствующих изменений.
func (d *userStatsDTO) toDomain() domain.UserStats {
	orDefault := func(v flexString, def string) string {
		if v == "" {
			return def
		}
		return string(v)
	}
	return domain.UserStats{
		TotalProperties:  d.TotalProperties.Int(),
		TotalFavorites:   d.TotalFavorites.Int(),
		TotalViews:       d.TotalViews.Int(),
		TotalValue:       d.TotalValue.Int64(),
		PropertiesChange: orDefault(d.PropertiesChange, "+0"),
		FavoritesChange:  orDefault(d.FavoritesChange, "+0"),
		ViewsChange:      orDefault(d.ViewsChange, "+0%"),
		ValueChange:      orDefault(d.ValueChange, "+0%"),
	}
}

type propertyRequest struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Type        string   `json:"type"`
	Price       int64    `json:"price"`
	Status      string   `json:"status"`
	Location    any      `json:"location"`
	Details     any      `json:"details"`
	Amenities   []string `json:"amenities"`
}

func newPropertyRequest(in domain.PropertyInput) propertyRequest {
	amenities := in.Amenities
	if amenities == nil {
		amenities = []string{}
	}
	return propertyRequest{
		Title:       in.Title,
		Description: in.Description,
		Type:        string(in.Type),
		Price:       in.Price,
		Status:      string(in.Status),
		Location: map[string]string{
			"address": in.Location.Address,
			"city":    in.Location.City,
			"state":   in.Location.State,
			"zipCode": in.Location.ZipCode,
			"country": in.Location.Country,
		},
		Details: map[string]int{
			"bedrooms":  in.Details.Bedrooms,
			"bathrooms": in.Details.Bathrooms,
			"sqft":      in.Details.Sqft,
			"yearBuilt": in.Details.YearBuilt,
		},
		Amenities: amenities,
	}
}

type inquiryRequest struct {
	PropertyID     string `json:"propertyId"`
	PropertyTitle  string `json:"propertyTitle"`
	ContactName    string `json:"contactName"`
	ContactEmail   string `json:"contactEmail"`
	ContactPhone   string `json:"contactPhone"`
	Message        string `json:"message"`
	RecipientEmail string `json:"recipientEmail"`
	RecipientName  string `json:"recipientName"`
	RecipientType  string `json:"recipientType"`
}

func newInquiryRequest(inq domain.Inquiry) inquiryRequest {
	return inquiryRequest{
		PropertyID:     inq.PropertyID.String(),
		PropertyTitle:  inq.PropertyTitle,
		ContactName:    inq.ContactName,
		ContactEmail:   inq.ContactEmail,
		ContactPhone:   inq.ContactPhone,
		Message:        inq.Message,
		RecipientEmail: inq.Recipient.Email,
		RecipientName:  inq.Recipient.Name,
		RecipientType:  string(inq.Recipient.Type),
	}
}

func sortFieldErrors(fields []domain.FieldError) {
	sort.Slice(fields, func(i, j int) bool { return fields[i].Field < fields[j].Field })
}
