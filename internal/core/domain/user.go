package domain

import "time"

type Role string

const (
	RoleBuyer  Role = "buyer"
	RoleSeller Role = "seller"
	RoleAgent  Role = "agent"
	RoleAdmin  Role = "admin"
)

type User struct {
	ID          ID
	Name        string
	Email       string
	Role        Role
	Phone       string
	Location    string
	Bio         string
	Avatar      string
	MemberSince time.Time
}

// ListsProperties - статистика дашборда показывается только тем, кто размещает объявления.
func (u *User) ListsProperties() bool {
	return u != nil && u.Role != "" && u.Role != RoleBuyer
}

// UserStats - агрегаты дашборда, посчитанные сервером.
type UserStats struct {
	TotalProperties  int
	TotalFavorites   int
	TotalViews       int
	TotalValue       int64
	PropertiesChange string
	FavoritesChange  string
	ViewsChange      string
	ValueChange      string
}

type Credentials struct {
	Email    string `validate:"required,email"`
	Password string `validate:"required"`
}

type Registration struct {
	Name     string `validate:"required,min=2"`
	Email    string `validate:"required,email"`
	Password string `validate:"required,min=6"`
	Phone    string
	Role     Role `validate:"omitempty,oneof=buyer seller agent"`
}

type ProfileUpdate struct {
	Name     string `validate:"required,min=2"`
	Email    string `validate:"required,email"`
	Phone    string
	Location string
	Bio      string `validate:"max=500"`
	Avatar   string
}

// AuthResult - ответ на вход и регистрацию.
type AuthResult struct {
	Token string
	User  User
}

// Merge накладывает ответ сервера на текущего пользователя.
// Пустые поля ответа не затирают уже известные значения.
func (u *User) Merge(updated User) {
	if !updated.ID.IsZero() {
		u.ID = updated.ID
	}
	if updated.Name != "" {
		u.Name = updated.Name
	}
	if updated.Email != "" {
		u.Email = updated.Email
	}
	if updated.Role != "" {
		u.Role = updated.Role
	}
	if !updated.MemberSince.IsZero() {
		u.MemberSince = updated.MemberSince
	}
	u.Phone = updated.Phone
	u.Location = updated.Location
	u.Bio = updated.Bio
	u.Avatar = updated.Avatar
}
