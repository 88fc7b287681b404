package web

import (
	"bytes"
	"errors"
	"html/template"
	"net/http"
	"net/url"

	"github.com/gorilla/csrf"
	"github.com/mohitk58/apnadera-frontend/internal/contextkeys"
	"github.com/mohitk58/apnadera-frontend/internal/core/domain"
	"github.com/mohitk58/apnadera-frontend/internal/core/port"
	"github.com/mohitk58/apnadera-frontend/internal/core/port/usecases_port"
)

// SessionStore - хранилище браузерной сессии (реализуется cookie-адаптером).
type SessionStore interface {
	TokenStore(w http.ResponseWriter, r *http.Request) port.TokenStorePort
	PushNotices(w http.ResponseWriter, r *http.Request, notices []domain.Notice) error
	PopNotices(w http.ResponseWriter, r *http.Request) []domain.Notice
}

// Handlers - обработчики страниц. Ответ 401 от API на любой странице обрабатывается
// в одном месте (handleError): сессия сбрасывается, пользователь уходит на /login.
type Handlers struct {
	uc        usecases_port.UseCases
	sessions  SessionStore
	templates *TemplateCache
	support   domain.Recipient
}

func NewHandlers(uc usecases_port.UseCases, sessions SessionStore, templates *TemplateCache, support domain.Recipient) *Handlers {
	support.Type = domain.RecipientSupport
	return &Handlers{
		uc:        uc,
		sessions:  sessions,
		templates: templates,
		support:   support,
	}
}

// pageData - общие данные layout плюс данные конкретной страницы в Data.
type pageData struct {
	Title         string
	Path          string
	URI           string
	User          *domain.User
	Authenticated bool
	Notices       []domain.Notice
	CSRFField     template.HTML
	Support       domain.Recipient
	Search        string
	// Current - фильтры списка, которые сохраняет поиск из шапки.
	Current string
	Data    any
}

type errorView struct {
	Message  string
	RetryURL string
}

func (h *Handlers) render(w http.ResponseWriter, r *http.Request, status int, page, title string, data any) {
	logger := contextkeys.LoggerFromContext(r.Context())
	sess := contextkeys.SessionFromContext(r.Context())

	tmpl := h.templates.Get(page)
	if tmpl == nil {
		logger.Error("Template not found", nil, port.Fields{"template": page})
		http.Error(w, "Template not found", http.StatusInternalServerError)
		return
	}

	pd := pageData{
		Title:         title,
		Path:          r.URL.Path,
		URI:           r.URL.RequestURI(),
		User:          sess.User,
		Authenticated: sess.IsAuthenticated(),
		Notices:       sess.DrainNotices(),
		CSRFField:     csrf.TemplateField(r),
		Support:       h.support,
		Search:        r.URL.Query().Get(string(domain.FilterSearch)),
		Data:          data,
	}
	if r.URL.Path == "/properties" {
		pd.Current = domain.ParseFilters(r.URL.Query()).Encode()
	}

	var buf bytes.Buffer
	if err := tmpl.ExecuteTemplate(&buf, "layout", pd); err != nil {
		logger.Error("Failed to render template", err, port.Fields{"template": page})
		http.Error(w, "Failed to render page", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = buf.WriteTo(w)
}

// redirect переносит накопленные уведомления в cookie, чтобы показать их на следующей странице.
func (h *Handlers) redirect(w http.ResponseWriter, r *http.Request, target string) {
	sess := contextkeys.SessionFromContext(r.Context())
	if err := h.sessions.PushNotices(w, r, sess.DrainNotices()); err != nil {
		contextkeys.LoggerFromContext(r.Context()).Warn("Failed to save notices", port.Fields{"error": err.Error()})
	}
	http.Redirect(w, r, target, http.StatusSeeOther)
}

// handleError - единая точка реакции на ошибки API для страниц.
func (h *Handlers) handleError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, domain.ErrUnauthorized):
		h.expireSession(w, r)
	case errors.Is(err, domain.ErrLoginRequired):
		h.redirect(w, r, "/login?next="+url.QueryEscape(r.URL.RequestURI()))
	case errors.Is(err, domain.ErrNotFound):
		h.NotFound(w, r)
	default:
		h.render(w, r, http.StatusBadGateway, "error.html", "Something went wrong", errorView{
			Message:  domain.UserMessage(err, domain.DefaultErrorMessage),
			RetryURL: r.URL.RequestURI(),
		})
	}
}

func (h *Handlers) expireSession(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	sess := contextkeys.SessionFromContext(ctx)
	if err := h.uc.Auth.Expire(ctx, sess, h.sessions.TokenStore(w, r)); err != nil {
		contextkeys.LoggerFromContext(ctx).Error("Failed to clear expired session", err, nil)
	}
	h.redirect(w, r, "/login")
}

// isUnauthorized - 401 от API во время отрисовки части страницы.
func isUnauthorized(err error) bool {
	return errors.Is(err, domain.ErrUnauthorized)
}

func (h *Handlers) NotFound(w http.ResponseWriter, r *http.Request) {
	h.render(w, r, http.StatusNotFound, "not_found.html", "Page Not Found", nil)
}

func (h *Handlers) Loading(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Retry-After", "2")
	h.render(w, r, http.StatusServiceUnavailable, "loading.html", "Loading...", nil)
}

func (h *Handlers) About(w http.ResponseWriter, r *http.Request) {
	h.render(w, r, http.StatusOK, "about.html", "About Us", nil)
}
