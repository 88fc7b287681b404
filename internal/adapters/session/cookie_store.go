package session

import (
	"context"
	"encoding/gob"
	"fmt"
	"net/http"
	"time"

	"github.com/gorilla/sessions"
	"github.com/mohitk58/apnadera-frontend/internal/core/domain"
	"github.com/mohitk58/apnadera-frontend/internal/core/port"
)

const (
	cookieName = "apnadera-session"
	tokenKey   = "token"
)

func init() {
	gob.Register(domain.Notice{})
}

type CookieConfig struct {
	Key    []byte
	Secure bool
	MaxAge time.Duration
}

// CookieStore - подписанная cookie браузерной сессии: токен и отложенные уведомления.
type CookieStore struct {
	store *sessions.CookieStore
}

func NewCookieStore(cfg CookieConfig) *CookieStore {
	store := sessions.NewCookieStore(cfg.Key)
	store.Options.Path = "/"
	store.Options.HttpOnly = true
	store.Options.Secure = cfg.Secure
	store.Options.SameSite = http.SameSiteLaxMode
	if cfg.MaxAge > 0 {
		store.Options.MaxAge = int(cfg.MaxAge.Seconds())
	}
	return &CookieStore{store: store}
}

// get не возвращает ошибку для поврежденной или чужой cookie: сессия просто начинается заново.
func (s *CookieStore) get(r *http.Request) *sessions.Session {
	sess, err := s.store.Get(r, cookieName)
	if err != nil {
		sess, _ = s.store.New(r, cookieName)
	}
	return sess
}

// TokenStore - хранилище токена для одного запроса. Изменения пишутся в заголовки w,
// поэтому вызывать их нужно до начала записи тела ответа.
func (s *CookieStore) TokenStore(w http.ResponseWriter, r *http.Request) port.TokenStorePort {
	return &requestTokenStore{store: s, w: w, r: r}
}

// PushNotices откладывает уведомления до следующей страницы (после редиректа).
func (s *CookieStore) PushNotices(w http.ResponseWriter, r *http.Request, notices []domain.Notice) error {
	if len(notices) == 0 {
		return nil
	}
	sess := s.get(r)
	for _, n := range notices {
		sess.AddFlash(n)
	}
	if err := sess.Save(r, w); err != nil {
		return fmt.Errorf("failed to save session: %w", err)
	}
	return nil
}

// PopNotices забирает отложенные уведомления.
func (s *CookieStore) PopNotices(w http.ResponseWriter, r *http.Request) []domain.Notice {
	sess := s.get(r)
	flashes := sess.Flashes()
	if len(flashes) == 0 {
		return nil
	}
	notices := make([]domain.Notice, 0, len(flashes))
	for _, f := range flashes {
		if n, ok := f.(domain.Notice); ok {
			notices = append(notices, n)
		}
	}
	_ = sess.Save(r, w)
	return notices
}

type requestTokenStore struct {
	store *CookieStore
	w     http.ResponseWriter
	r     *http.Request
}

func (s *requestTokenStore) LoadToken(_ context.Context) (string, error) {
	token, _ := s.store.get(s.r).Values[tokenKey].(string)
	return token, nil
}

func (s *requestTokenStore) SaveToken(_ context.Context, token string) error {
	sess := s.store.get(s.r)
	sess.Values[tokenKey] = token
	if err := sess.Save(s.r, s.w); err != nil {
		return fmt.Errorf("failed to save session: %w", err)
	}
	return nil
}

func (s *requestTokenStore) ClearToken(_ context.Context) error {
	sess := s.store.get(s.r)
	delete(sess.Values, tokenKey)
	if err := sess.Save(s.r, s.w); err != nil {
		return fmt.Errorf("failed to save session: %w", err)
	}
	return nil
}
