package domain

import (
	"crypto/sha256"
	"encoding/hex"
	"net/url"
	"strings"
	"time"
)

// QueryFamily - семейство кэшируемых запросов. Инвалидация работает по семействам.
type QueryFamily string

const (
	FamilyProperties     QueryFamily = "properties"
	FamilyPropertySearch QueryFamily = "property-search"
	FamilyProperty       QueryFamily = "property"
	FamilyUserProperties QueryFamily = "user-properties"
	FamilyUserFavorites  QueryFamily = "user-favorites"
	FamilyUserStats      QueryFamily = "user-stats"
	FamilyCurrentUser    QueryFamily = "current-user"
)

// StaleTime - окно свежести семейства: внутри него кэш отвечает без сетевого запроса.
func (f QueryFamily) StaleTime() time.Duration {
	switch f {
	case FamilyProperties, FamilyUserStats, FamilyCurrentUser:
		return 5 * time.Minute
	default:
		return 2 * time.Minute
	}
}

// QueryKey - ключ кэша: семейство плюс каноническое представление параметров.
type QueryKey struct {
	Family QueryFamily
	Params string
}

func (k QueryKey) String() string {
	return string(k.Family) + ":" + k.Params
}

// PropertiesKey - ключ списка объявлений. url.Values.Encode сортирует ключи,
// поэтому одинаковые наборы фильтров дают одинаковый ключ.
func PropertiesKey(query url.Values) QueryKey {
	return QueryKey{Family: FamilyProperties, Params: query.Encode()}
}

func PropertySearchKey(q string) QueryKey {
	return QueryKey{Family: FamilyPropertySearch, Params: url.QueryEscape(strings.TrimSpace(q))}
}

func PropertyKey(id ID) QueryKey {
	return QueryKey{Family: FamilyProperty, Params: id.String()}
}

func UserPropertiesKey(userID ID) QueryKey {
	return QueryKey{Family: FamilyUserProperties, Params: userID.String()}
}

func UserFavoritesKey(userID ID) QueryKey {
	return QueryKey{Family: FamilyUserFavorites, Params: userID.String()}
}

func UserStatsKey(userID ID) QueryKey {
	return QueryKey{Family: FamilyUserStats, Params: userID.String()}
}

// CurrentUserKey кэширует профиль по токену; сам токен в ключ не попадает.
func CurrentUserKey(token string) QueryKey {
	sum := sha256.Sum256([]byte(token))
	return QueryKey{Family: FamilyCurrentUser, Params: hex.EncodeToString(sum[:16])}
}

// Mutation - операция записи, после успеха которой сбрасываются зависимые запросы.
type Mutation string

const (
	MutationCreateProperty Mutation = "create-property"
	MutationUpdateProperty Mutation = "update-property"
	MutationDeleteProperty Mutation = "delete-property"
	MutationToggleFavorite Mutation = "toggle-favorite"
	MutationUpdateProfile  Mutation = "update-profile"
)

// InvalidationTarget - что сбросить: все семейство или одну сущность семейства
// (идентификатор берется из результата мутации).
type InvalidationTarget struct {
	Family QueryFamily
	Entity bool
}

func family(f QueryFamily) InvalidationTarget { return InvalidationTarget{Family: f} }
func entity(f QueryFamily) InvalidationTarget { return InvalidationTarget{Family: f, Entity: true} }

var invalidationTable = map[Mutation][]InvalidationTarget{
	MutationCreateProperty: {
		family(FamilyProperties), family(FamilyPropertySearch),
		family(FamilyUserProperties), family(FamilyUserStats),
	},
	MutationUpdateProperty: {
		family(FamilyProperties), family(FamilyPropertySearch),
		entity(FamilyProperty), family(FamilyUserProperties),
	},
	MutationDeleteProperty: {
		family(FamilyProperties), family(FamilyPropertySearch),
		entity(FamilyProperty), family(FamilyUserProperties), family(FamilyUserStats),
	},
	MutationToggleFavorite: {
		family(FamilyProperties), family(FamilyPropertySearch),
		entity(FamilyProperty), family(FamilyUserFavorites),
	},
	MutationUpdateProfile: {
		family(FamilyUserProperties), family(FamilyUserFavorites),
		family(FamilyUserStats), family(FamilyCurrentUser),
	},
}

// Invalidates возвращает цели инвалидации для мутации.
func (m Mutation) Invalidates() []InvalidationTarget {
	return invalidationTable[m]
}

// Mutations - все известные мутации, в порядке объявления.
var Mutations = []Mutation{
	MutationCreateProperty, MutationUpdateProperty, MutationDeleteProperty,
	MutationToggleFavorite, MutationUpdateProfile,
}
