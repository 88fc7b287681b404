package usecase

import (
	"context"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/mohitk58/apnadera-frontend/internal/core/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func signedToken(t *testing.T, exp time.Time) string {
	t.Helper()
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"userId": "u1",
		"exp":    exp.Unix(),
	}).SignedString([]byte("test-secret"))
	require.NoError(t, err)
	return token
}

func TestBootstrap_NoToken(t *testing.T) {
	auth := &fakeAuthAPI{}
	sess, err := NewAuthContext(auth, &fakeCache{}).Bootstrap(context.Background(), &memTokenStore{})

	require.NoError(t, err)
	assert.False(t, sess.Loading)
	assert.False(t, sess.IsAuthenticated())
	assert.Zero(t, auth.meCalls)
}

func TestBootstrap_ExpiredTokenIsDiscardedLocally(t *testing.T) {
	auth := &fakeAuthAPI{}
	store := &memTokenStore{token: signedToken(t, time.Now().Add(-time.Hour))}

	sess, err := NewAuthContext(auth, &fakeCache{}).Bootstrap(context.Background(), store)

	require.NoError(t, err)
	assert.False(t, sess.IsAuthenticated())
	assert.True(t, store.cleared)
	assert.Zero(t, auth.meCalls)
}

func TestBootstrap_ValidTokenLoadsUser(t *testing.T) {
	token := signedToken(t, time.Now().Add(time.Hour))
	auth := &fakeAuthAPI{me: &domain.User{ID: "u1", Name: "Asha"}}
	cache := &fakeCache{}

	sess, err := NewAuthContext(auth, cache).Bootstrap(context.Background(), &memTokenStore{token: token})

	require.NoError(t, err)
	assert.True(t, sess.IsAuthenticated())
	assert.Equal(t, token, sess.Token)
	assert.Equal(t, domain.ID("u1"), sess.UserID())
	assert.Equal(t, []domain.QueryKey{domain.CurrentUserKey(token)}, cache.fetched)
}

func TestBootstrap_OpaqueTokenIsCheckedByServer(t *testing.T) {
	auth := &fakeAuthAPI{me: &domain.User{ID: "u1"}}

	sess, err := NewAuthContext(auth, &fakeCache{}).Bootstrap(context.Background(), &memTokenStore{token: "opaque"})

	require.NoError(t, err)
	assert.True(t, sess.IsAuthenticated())
	assert.Equal(t, 1, auth.meCalls)
}

func TestBootstrap_RejectedTokenClearsStore(t *testing.T) {
	auth := &fakeAuthAPI{err: &domain.APIError{StatusCode: 401, Message: "Invalid token"}}
	store := &memTokenStore{token: "opaque"}

	sess, err := NewAuthContext(auth, &fakeCache{}).Bootstrap(context.Background(), store)

	require.NoError(t, err)
	assert.False(t, sess.IsAuthenticated())
	assert.False(t, sess.Loading)
	assert.True(t, store.cleared)
}

func TestBootstrap_TransportFailureKeepsLoading(t *testing.T) {
	auth := &fakeAuthAPI{err: domain.ErrTransport}
	store := &memTokenStore{token: "opaque"}

	sess, err := NewAuthContext(auth, &fakeCache{}).Bootstrap(context.Background(), store)

	assert.ErrorIs(t, err, domain.ErrTransport)
	assert.True(t, sess.Loading)
	assert.False(t, sess.IsAuthenticated())
	assert.False(t, store.cleared)
}

func TestLogin_InvalidFormMakesNoCall(t *testing.T) {
	auth := &fakeAuthAPI{}
	sess := &domain.Session{}

	err := NewAuthContext(auth, &fakeCache{}).Login(context.Background(), sess, &memTokenStore{}, domain.Credentials{Email: "not-an-email"})

	assert.ErrorIs(t, err, domain.ErrValidation)
	assert.Equal(t, map[string]string{
		"email":    "Please enter a valid email address",
		"password": "Password is required",
	}, domain.FieldErrorMap(err))
	assert.Zero(t, auth.loginCalls)
}

func TestLogin_StoresToken(t *testing.T) {
	auth := &fakeAuthAPI{result: &domain.AuthResult{Token: "tok", User: domain.User{ID: "u1", Name: "Asha"}}}
	store := &memTokenStore{}
	sess := &domain.Session{}

	err := NewAuthContext(auth, &fakeCache{}).Login(context.Background(), sess, store, domain.Credentials{Email: "asha@example.com", Password: "secret"})

	require.NoError(t, err)
	assert.Equal(t, "tok", store.token)
	assert.True(t, sess.IsAuthenticated())
	assert.Equal(t, []string{"Login successful!"}, noticeMessages(sess))
}

func TestRegister_ShortPassword(t *testing.T) {
	auth := &fakeAuthAPI{}
	err := NewAuthContext(auth, &fakeCache{}).Register(context.Background(), &domain.Session{}, &memTokenStore{}, domain.Registration{
		Name: "Asha", Email: "asha@example.com", Password: "123",
	})

	assert.Equal(t, map[string]string{"password": "Password must be at least 6 characters"}, domain.FieldErrorMap(err))
	assert.Zero(t, auth.loginCalls)
}

func TestLogout_ClearsSessionAndForgetsUserQueries(t *testing.T) {
	cache := &fakeCache{}
	store := &memTokenStore{token: "token-1"}
	sess := signedInSession()

	require.NoError(t, NewAuthContext(&fakeAuthAPI{}, cache).Logout(context.Background(), sess, store))

	assert.False(t, sess.IsAuthenticated())
	assert.Empty(t, sess.Token)
	assert.Nil(t, sess.User)
	assert.True(t, store.cleared)
	assert.ElementsMatch(t, []domain.QueryKey{
		domain.CurrentUserKey("token-1"),
		domain.UserPropertiesKey("u1"),
		domain.UserFavoritesKey("u1"),
		domain.UserStatsKey("u1"),
	}, cache.forgotten)
}

func TestExpire_NotifiesUser(t *testing.T) {
	sess := signedInSession()
	store := &memTokenStore{token: "token-1"}

	require.NoError(t, NewAuthContext(&fakeAuthAPI{}, &fakeCache{}).Expire(context.Background(), sess, store))

	assert.False(t, sess.IsAuthenticated())
	assert.True(t, store.cleared)
	assert.Equal(t, []string{"Your session has expired. Please log in again."}, noticeMessages(sess))
}

func TestUpdateProfile_MergesAndInvalidates(t *testing.T) {
	auth := &fakeAuthAPI{profile: &domain.User{ID: "u1", Name: "Asha K", Email: "asha@example.com", Bio: "Pune broker"}}
	cache := &fakeCache{}
	sess := signedInSession()

	err := NewAuthContext(auth, cache).UpdateProfile(context.Background(), sess, domain.ProfileUpdate{
		Name: "Asha K", Email: "asha@example.com", Bio: "Pune broker",
	})

	require.NoError(t, err)
	assert.Equal(t, "Asha K", sess.User.Name)
	assert.Equal(t, "Pune broker", sess.User.Bio)
	assert.Equal(t, domain.RoleSeller, sess.User.Role, "role is kept when the response omits it")
	assert.Equal(t, []invalidation{{mutation: domain.MutationUpdateProfile, entityID: "u1"}}, cache.invalidations)
}

func TestUpdateProfile_BioTooLong(t *testing.T) {
	auth := &fakeAuthAPI{}
	long := make([]byte, 501)
	for i := range long {
		long[i] = 'a'
	}

	err := NewAuthContext(auth, &fakeCache{}).UpdateProfile(context.Background(), signedInSession(), domain.ProfileUpdate{
		Name: "Asha", Email: "asha@example.com", Bio: string(long),
	})

	assert.Equal(t, map[string]string{"bio": "Bio cannot exceed 500 characters"}, domain.FieldErrorMap(err))
	assert.Zero(t, auth.profileCalls)
}
