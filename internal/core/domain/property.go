package domain

import "time"

// ID - канонический идентификатор сущности удаленного API.
// Все представления (строка, число, {"$oid": ...}) приводятся к нему на границе API.
type ID string

func (id ID) String() string { return string(id) }

// IsZero сообщает, что идентификатор не задан.
func (id ID) IsZero() bool { return id == "" }

type PropertyType string

const (
	PropertyTypeHouse      PropertyType = "house"
	PropertyTypeApartment  PropertyType = "apartment"
	PropertyTypeCondo      PropertyType = "condo"
	PropertyTypeTownhouse  PropertyType = "townhouse"
	PropertyTypeLand       PropertyType = "land"
	PropertyTypeCommercial PropertyType = "commercial"
)

// PropertyTypes - порядок совпадает с порядком в формах.
var PropertyTypes = []PropertyType{
	PropertyTypeHouse,
	PropertyTypeApartment,
	PropertyTypeCondo,
	PropertyTypeTownhouse,
	PropertyTypeLand,
	PropertyTypeCommercial,
}

type PropertyStatus string

const (
	PropertyStatusAvailable PropertyStatus = "available"
	PropertyStatusPending   PropertyStatus = "pending"
	PropertyStatusSold      PropertyStatus = "sold"
	PropertyStatusRented    PropertyStatus = "rented"
)

var PropertyStatuses = []PropertyStatus{
	PropertyStatusAvailable,
	PropertyStatusPending,
	PropertyStatusSold,
	PropertyStatusRented,
}

// Amenities - теги удобств, которые предлагает форма объявления.
var Amenities = []string{
	"air-conditioning", "heating", "dishwasher", "washer", "dryer", "parking",
	"garden", "pool", "gym", "security", "fireplace", "balcony",
	"elevator", "pet-friendly", "furnished",
}

type Location struct {
	Address string
	City    string
	State   string
	ZipCode string
	Country string
}

type Details struct {
	Bedrooms  int
	Bathrooms int
	Sqft      int
	YearBuilt int
}

type Image struct {
	URL       string
	Caption   string
	IsPrimary bool
}

type PricePoint struct {
	Date  time.Time
	Price int64
}

// Contact - ссылка на владельца или агента. Сервер может вернуть только ID
// (тогда остальные поля пустые) или заполненный объект.
type Contact struct {
	ID    ID
	Name  string
	Email string
	Phone string
}

// Property - объявление о недвижимости в том виде, в котором его отдает API.
// Клиент никогда не вычисляет производное персистентное состояние.
type Property struct {
	ID           ID
	Title        string
	Description  string
	Price        int64
	Location     Location
	Details      Details
	Type         PropertyType
	Status       PropertyStatus
	Amenities    []string
	Images       []Image
	Owner        Contact
	Agent        *Contact
	Views        int
	Favorites    []ID
	IsFeatured   bool
	CreatedAt    time.Time
	PriceHistory []PricePoint
}

// IsFavoritedBy проверяет, есть ли пользователь во множестве избранного.
func (p *Property) IsFavoritedBy(userID ID) bool {
	if p == nil || userID.IsZero() {
		return false
	}
	for _, id := range p.Favorites {
		if id == userID {
			return true
		}
	}
	return false
}

// PrimaryImage возвращает главное изображение, либо первое, либо nil.
func (p *Property) PrimaryImage() *Image {
	if p == nil || len(p.Images) == 0 {
		return nil
	}
	for i := range p.Images {
		if p.Images[i].IsPrimary {
			return &p.Images[i]
		}
	}
	return &p.Images[0]
}

// CanBeEditedBy - редактировать и удалять объявление может владелец или администратор.
func (p *Property) CanBeEditedBy(u *User) bool {
	if p == nil || u == nil {
		return false
	}
	return u.Role == RoleAdmin || (!u.ID.IsZero() && p.Owner.ID == u.ID)
}

// PropertyPage - ответ списка объявлений вместе с конвертом пагинации.
type PropertyPage struct {
	Properties []Property
	Pagination Pagination
}

// ImageUpload - файл изображения, прикладываемый к созданию/обновлению объявления.
type ImageUpload struct {
	Filename    string
	ContentType string
	Data        []byte
}

// MaxImages - ограничение формы на количество изображений.
const MaxImages = 10

// PropertyInput - данные формы создания/редактирования объявления.
type PropertyInput struct {
	Title       string
	Description string
	Type        PropertyType
	Price       int64
	Status      PropertyStatus
	Location    Location
	Details     Details
	Amenities   []string
	Images      []ImageUpload
}

// HasImages - при наличии файлов payload уходит как multipart.
func (in PropertyInput) HasImages() bool {
	return len(in.Images) > 0
}
