package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/mohitk58/apnadera-frontend/internal/core/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestListProperties_SendsFiltersWithPageAndLimit(t *testing.T) {
	api := &fakePropertyAPI{listPage: &domain.PropertyPage{
		Properties: []domain.Property{{ID: "p1"}},
		Pagination: domain.Pagination{CurrentPage: 1, TotalPages: 3, HasNextPage: true},
	}}
	cache := &fakeCache{}
	uc := NewListPropertiesUseCase(api, cache, 12)

	page, err := uc.Execute(context.Background(), &domain.Session{}, domain.Filters{domain.FilterCity: "Pune"})
	require.NoError(t, err)
	require.Len(t, page.Properties, 1)

	require.Len(t, api.listQueries, 1)
	q := api.listQueries[0]
	assert.Equal(t, "Pune", q.Get("city"))
	assert.Equal(t, "1", q.Get("page"))
	assert.Equal(t, "12", q.Get("limit"))

	require.Len(t, cache.fetched, 1)
	assert.Equal(t, domain.PropertiesKey(q), cache.fetched[0])
}

func TestFeaturedProperties_QueriesFeaturedFlag(t *testing.T) {
	api := &fakePropertyAPI{listPage: &domain.PropertyPage{Properties: []domain.Property{{ID: "f1", IsFeatured: true}}}}
	uc := NewFeaturedPropertiesUseCase(api, &fakeCache{})

	props, err := uc.Execute(context.Background(), nil)
	require.NoError(t, err)
	assert.Len(t, props, 1)

	q := api.listQueries[0]
	assert.Equal(t, "true", q.Get("isFeatured"))
	assert.Equal(t, "6", q.Get("limit"))
}

func TestGetProperty_NotFound(t *testing.T) {
	uc := NewGetPropertyUseCase(&fakePropertyAPI{err: &domain.APIError{StatusCode: 404, Message: "Property not found"}}, &fakeCache{})

	_, err := uc.Execute(context.Background(), nil, "missing")
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = uc.Execute(context.Background(), nil, "")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestSearchProperties_EmptyQueryMakesNoCall(t *testing.T) {
	api := &fakePropertyAPI{}
	cache := &fakeCache{}
	uc := NewSearchPropertiesUseCase(api, cache)

	results, err := uc.Execute(context.Background(), nil, "   ")
	require.NoError(t, err)
	assert.Empty(t, results)
	assert.Zero(t, api.searchCalls)
	assert.Empty(t, cache.fetched)

	results, err = uc.Execute(context.Background(), nil, " villa ")
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "villa", results[0].Title)
	assert.Equal(t, domain.PropertySearchKey("villa"), cache.fetched[0])
}

func TestUserQueries_RequireLogin(t *testing.T) {
	api := &fakeUserAPI{}
	cache := &fakeCache{}
	ctx := context.Background()

	_, err := NewUserPropertiesUseCase(api, cache).Execute(ctx, &domain.Session{})
	assert.ErrorIs(t, err, domain.ErrLoginRequired)
	_, err = NewUserFavoritesUseCase(api, cache).Execute(ctx, nil)
	assert.ErrorIs(t, err, domain.ErrLoginRequired)
	_, err = NewUserStatsUseCase(api, cache).Execute(ctx, &domain.Session{Token: "t"})
	assert.ErrorIs(t, err, domain.ErrLoginRequired)

	assert.Zero(t, api.calls)
}

func TestUserQueries_KeyedByUser(t *testing.T) {
	api := &fakeUserAPI{}
	cache := &fakeCache{}
	sess := signedInSession()

	_, err := NewUserFavoritesUseCase(api, cache).Execute(context.Background(), sess)
	require.NoError(t, err)
	stats, err := NewUserStatsUseCase(api, cache).Execute(context.Background(), sess)
	require.NoError(t, err)

	assert.Equal(t, 3, stats.TotalProperties)
	assert.Equal(t, []domain.QueryKey{domain.UserFavoritesKey("u1"), domain.UserStatsKey("u1")}, cache.fetched)
}

func TestToggleFavorite_UnauthenticatedMakesNoCall(t *testing.T) {
	api := &fakePropertyAPI{}
	cache := &fakeCache{}
	sess := &domain.Session{}

	_, err := NewToggleFavoriteUseCase(api, cache).Execute(context.Background(), sess, "p1")

	assert.ErrorIs(t, err, domain.ErrLoginRequired)
	assert.Empty(t, api.toggled)
	assert.Empty(t, cache.invalidations)
	assert.Equal(t, []string{"Please login to add favorites"}, noticeMessages(sess))
}

func TestToggleFavorite_InvalidatesWithServerID(t *testing.T) {
	api := &fakePropertyAPI{toggleResp: &domain.Property{ID: "canonical-1", Favorites: []domain.ID{"u1"}}}
	cache := &fakeCache{}
	sess := signedInSession()

	p, err := NewToggleFavoriteUseCase(api, cache).Execute(context.Background(), sess, "p1")
	require.NoError(t, err)

	assert.True(t, p.IsFavoritedBy("u1"))
	assert.Equal(t, []domain.ID{"p1"}, api.toggled)
	assert.Equal(t, []invalidation{{mutation: domain.MutationToggleFavorite, entityID: "canonical-1"}}, cache.invalidations)
	assert.Equal(t, []string{"Favorite updated successfully"}, noticeMessages(sess))
}

func TestToggleFavorite_Failure(t *testing.T) {
	api := &fakePropertyAPI{err: &domain.APIError{StatusCode: 500, Message: "boom"}}
	cache := &fakeCache{}
	sess := signedInSession()

	_, err := NewToggleFavoriteUseCase(api, cache).Execute(context.Background(), sess, "p1")

	require.Error(t, err)
	assert.Len(t, api.toggled, 1)
	assert.Empty(t, cache.invalidations)
	assert.Equal(t, []string{"Failed to update favorite"}, noticeMessages(sess))
}

func TestCreateProperty_ValidationBlocksRequest(t *testing.T) {
	api := &fakePropertyAPI{}
	cache := &fakeCache{}
	invalid := &domain.ValidationError{Fields: []domain.FieldError{{Field: "title", Message: "Title must be at least 5 characters"}}}
	uc := NewCreatePropertyUseCase(api, cache, stubValidator{err: invalid})

	_, err := uc.Execute(context.Background(), signedInSession(), domain.PropertyInput{Title: "abc"})

	assert.ErrorIs(t, err, domain.ErrValidation)
	assert.Equal(t, map[string]string{"title": "Title must be at least 5 characters"}, domain.FieldErrorMap(err))
	assert.Empty(t, api.created)
	assert.Empty(t, cache.invalidations)
}

func TestCreateProperty_Success(t *testing.T) {
	api := &fakePropertyAPI{}
	cache := &fakeCache{}
	sess := signedInSession()
	uc := NewCreatePropertyUseCase(api, cache, stubValidator{})

	p, err := uc.Execute(context.Background(), sess, domain.PropertyInput{Title: "Sea view flat"})
	require.NoError(t, err)

	assert.Equal(t, domain.ID("new-1"), p.ID)
	assert.Equal(t, []invalidation{{mutation: domain.MutationCreateProperty, entityID: "new-1"}}, cache.invalidations)
	assert.Equal(t, []string{"Property added successfully!"}, noticeMessages(sess))
}

func TestCreateProperty_ServerFieldErrorsBecomeNotices(t *testing.T) {
	api := &fakePropertyAPI{err: &domain.APIError{
		StatusCode: 400,
		Message:    "Validation failed",
		Fields:     []domain.FieldError{{Field: "price", Message: "Price must be positive"}},
	}}
	sess := signedInSession()
	uc := NewCreatePropertyUseCase(api, &fakeCache{}, stubValidator{})

	_, err := uc.Execute(context.Background(), sess, domain.PropertyInput{})

	assert.ErrorIs(t, err, domain.ErrValidation)
	assert.Equal(t, []string{"price: Price must be positive"}, noticeMessages(sess))
}

func TestDeleteProperty(t *testing.T) {
	api := &fakePropertyAPI{}
	cache := &fakeCache{}
	sess := signedInSession()

	require.NoError(t, NewDeletePropertyUseCase(api, cache).Execute(context.Background(), sess, "p7"))

	assert.Equal(t, []domain.ID{"p7"}, api.deleted)
	assert.Equal(t, []invalidation{{mutation: domain.MutationDeleteProperty, entityID: "p7"}}, cache.invalidations)
}

func TestUpdateProperty_UnauthorizedHasNoNotice(t *testing.T) {
	api := &fakePropertyAPI{err: &domain.APIError{StatusCode: 401, Message: "Token expired"}}
	sess := signedInSession()

	_, err := NewUpdatePropertyUseCase(api, &fakeCache{}, stubValidator{}).Execute(context.Background(), sess, "p1", domain.PropertyInput{})

	assert.True(t, errors.Is(err, domain.ErrUnauthorized))
	assert.Empty(t, sess.Notices())
}
