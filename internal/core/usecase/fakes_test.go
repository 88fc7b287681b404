package usecase

import (
	"context"
	"encoding/json"
	"net/url"
	"sync"

	"github.com/mohitk58/apnadera-frontend/internal/core/domain"
	"github.com/mohitk58/apnadera-frontend/internal/core/port"
)

type invalidation struct {
	mutation domain.Mutation
	entityID domain.ID
}

// fakeCache всегда вызывает fetch и запоминает ключи и инвалидации.
type fakeCache struct {
	mu            sync.Mutex
	fetched       []domain.QueryKey
	invalidations []invalidation
	forgotten     []domain.QueryKey
}

func (c *fakeCache) Fetch(ctx context.Context, key domain.QueryKey, fetch port.FetchFunc) ([]byte, error) {
	c.mu.Lock()
	c.fetched = append(c.fetched, key)
	c.mu.Unlock()
	v, err := fetch(ctx)
	if err != nil {
		return nil, err
	}
	return json.Marshal(v)
}

func (c *fakeCache) Invalidate(ctx context.Context, m domain.Mutation, entityID domain.ID) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.invalidations = append(c.invalidations, invalidation{mutation: m, entityID: entityID})
	return nil
}

func (c *fakeCache) Forget(ctx context.Context, keys ...domain.QueryKey) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.forgotten = append(c.forgotten, keys...)
	return nil
}

type fakePropertyAPI struct {
	listQueries []url.Values
	listPage    *domain.PropertyPage
	property    *domain.Property
	searchCalls int
	created     []domain.PropertyInput
	deleted     []domain.ID
	toggled     []domain.ID
	toggleResp  *domain.Property
	err         error
}

func (f *fakePropertyAPI) ListProperties(ctx context.Context, sess *domain.Session, query url.Values) (*domain.PropertyPage, error) {
	f.listQueries = append(f.listQueries, query)
	return f.listPage, f.err
}

func (f *fakePropertyAPI) GetProperty(ctx context.Context, sess *domain.Session, id domain.ID) (*domain.Property, error) {
	return f.property, f.err
}

func (f *fakePropertyAPI) SearchProperties(ctx context.Context, sess *domain.Session, q string) ([]domain.Property, error) {
	f.searchCalls++
	return []domain.Property{{ID: "p1", Title: q}}, f.err
}

func (f *fakePropertyAPI) CreateProperty(ctx context.Context, sess *domain.Session, in domain.PropertyInput) (*domain.Property, error) {
	f.created = append(f.created, in)
	if f.err != nil {
		return nil, f.err
	}
	return &domain.Property{ID: "new-1", Title: in.Title}, nil
}

func (f *fakePropertyAPI) UpdateProperty(ctx context.Context, sess *domain.Session, id domain.ID, in domain.PropertyInput) (*domain.Property, error) {
	if f.err != nil {
		return nil, f.err
	}
	return &domain.Property{ID: id, Title: in.Title}, nil
}

func (f *fakePropertyAPI) DeleteProperty(ctx context.Context, sess *domain.Session, id domain.ID) error {
	f.deleted = append(f.deleted, id)
	return f.err
}

func (f *fakePropertyAPI) ToggleFavorite(ctx context.Context, sess *domain.Session, id domain.ID) (*domain.Property, error) {
	f.toggled = append(f.toggled, id)
	if f.err != nil {
		return nil, f.err
	}
	return f.toggleResp, nil
}

type fakeUserAPI struct {
	calls int
}

func (f *fakeUserAPI) UserProperties(ctx context.Context, sess *domain.Session) ([]domain.Property, error) {
	f.calls++
	return []domain.Property{{ID: "mine-1"}}, nil
}

func (f *fakeUserAPI) UserFavorites(ctx context.Context, sess *domain.Session) ([]domain.Property, error) {
	f.calls++
	return []domain.Property{{ID: "fav-1"}}, nil
}

func (f *fakeUserAPI) UserStats(ctx context.Context, sess *domain.Session) (*domain.UserStats, error) {
	f.calls++
	return &domain.UserStats{TotalProperties: 3}, nil
}

type fakeAuthAPI struct {
	loginCalls   int
	meCalls      int
	profileCalls int
	result       *domain.AuthResult
	me           *domain.User
	profile      *domain.User
	err          error
}

func (f *fakeAuthAPI) Login(ctx context.Context, creds domain.Credentials) (*domain.AuthResult, error) {
	f.loginCalls++
	return f.result, f.err
}

func (f *fakeAuthAPI) Register(ctx context.Context, reg domain.Registration) (*domain.AuthResult, error) {
	f.loginCalls++
	return f.result, f.err
}

func (f *fakeAuthAPI) CurrentUser(ctx context.Context, sess *domain.Session) (*domain.User, error) {
	f.meCalls++
	return f.me, f.err
}

func (f *fakeAuthAPI) UpdateProfile(ctx context.Context, sess *domain.Session, upd domain.ProfileUpdate) (*domain.User, error) {
	f.profileCalls++
	return f.profile, f.err
}

type fakeContactAPI struct {
	sent []domain.Inquiry
	err  error
}

func (f *fakeContactAPI) SendInquiry(ctx context.Context, sess *domain.Session, inq domain.Inquiry) error {
	f.sent = append(f.sent, inq)
	return f.err
}

type memTokenStore struct {
	token   string
	cleared bool
}

func (s *memTokenStore) LoadToken(ctx context.Context) (string, error) { return s.token, nil }

func (s *memTokenStore) SaveToken(ctx context.Context, token string) error {
	s.token = token
	return nil
}

func (s *memTokenStore) ClearToken(ctx context.Context) error {
	s.token = ""
	s.cleared = true
	return nil
}

type stubValidator struct {
	err error
}

func (v stubValidator) ValidatePropertyInput(in domain.PropertyInput) error { return v.err }

func signedInSession() *domain.Session {
	sess := &domain.Session{}
	sess.SignIn("token-1", domain.User{ID: "u1", Name: "Asha", Email: "asha@example.com", Role: domain.RoleSeller})
	return sess
}

func noticeMessages(sess *domain.Session) []string {
	var out []string
	for _, n := range sess.Notices() {
		out = append(out, n.Message)
	}
	return out
}
