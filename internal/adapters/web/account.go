package web

import (
	"errors"
	"net/http"

	"github.com/mohitk58/apnadera-frontend/internal/contextkeys"
	"github.com/mohitk58/apnadera-frontend/internal/core/domain"
)

type authView struct {
	Name        string
	Email       string
	Phone       string
	Role        domain.Role
	Next        string
	FieldErrors map[string]string
}

// authFailureStatus - 422 для ошибок формы; 401 для неверных учетных данных.
// Здесь 401 не означает истекшую сессию, поэтому в handleError не уходит.
func authFailureStatus(err error) int {
	switch {
	case errors.Is(err, domain.ErrValidation):
		return http.StatusUnprocessableEntity
	case errors.Is(err, domain.ErrUnauthorized):
		return http.StatusUnauthorized
	default:
		return http.StatusBadGateway
	}
}

func (h *Handlers) LoginPage(w http.ResponseWriter, r *http.Request) {
	next := localPath(r.URL.Query().Get("next"), "")
	if contextkeys.SessionFromContext(r.Context()).IsAuthenticated() {
		h.redirect(w, r, localPath(next, "/dashboard"))
		return
	}
	h.render(w, r, http.StatusOK, "login.html", "Login", authView{Next: next})
}

func (h *Handlers) Login(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	sess := contextkeys.SessionFromContext(ctx)

	creds := domain.Credentials{
		Email:    r.FormValue("email"),
		Password: r.FormValue("password"),
	}
	next := localPath(r.FormValue("next"), "")

	err := h.uc.Auth.Login(ctx, sess, h.sessions.TokenStore(w, r), creds)
	if err != nil {
		h.render(w, r, authFailureStatus(err), "login.html", "Login", authView{
			Email:       creds.Email,
			Next:        next,
			FieldErrors: domain.FieldErrorMap(err),
		})
		return
	}
	h.redirect(w, r, localPath(next, "/dashboard"))
}

func (h *Handlers) RegisterPage(w http.ResponseWriter, r *http.Request) {
	if contextkeys.SessionFromContext(r.Context()).IsAuthenticated() {
		h.redirect(w, r, "/dashboard")
		return
	}
	h.render(w, r, http.StatusOK, "register.html", "Register", authView{Role: domain.RoleBuyer})
}

func (h *Handlers) Register(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	sess := contextkeys.SessionFromContext(ctx)

	reg := domain.Registration{
		Name:     r.FormValue("name"),
		Email:    r.FormValue("email"),
		Password: r.FormValue("password"),
		Phone:    r.FormValue("phone"),
		Role:     domain.Role(r.FormValue("role")),
	}

	if err := h.uc.Auth.Register(ctx, sess, h.sessions.TokenStore(w, r), reg); err != nil {
		h.render(w, r, authFailureStatus(err), "register.html", "Register", authView{
			Name:        reg.Name,
			Email:       reg.Email,
			Phone:       reg.Phone,
			Role:        reg.Role,
			FieldErrors: domain.FieldErrorMap(err),
		})
		return
	}
	h.redirect(w, r, "/dashboard")
}

func (h *Handlers) Logout(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	sess := contextkeys.SessionFromContext(ctx)
	if err := h.uc.Auth.Logout(ctx, sess, h.sessions.TokenStore(w, r)); err != nil {
		contextkeys.LoggerFromContext(ctx).Error("Failed to clear session on logout", err, nil)
	}
	h.redirect(w, r, "/")
}

type contactView struct {
	Form        domain.InquiryForm
	FieldErrors map[string]string
}

func (h *Handlers) ContactPage(w http.ResponseWriter, r *http.Request) {
	var view contactView
	if u := contextkeys.SessionFromContext(r.Context()).User; u != nil {
		view.Form.Name = u.Name
		view.Form.Email = u.Email
		view.Form.Phone = u.Phone
	}
	h.render(w, r, http.StatusOK, "contact.html", "Contact Us", view)
}

// SubmitContact - общий запрос в службу поддержки, без привязки к объявлению.
func (h *Handlers) SubmitContact(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	sess := contextkeys.SessionFromContext(ctx)

	form := inquiryFormFromRequest(r)
	err := h.uc.SendInquiry.Execute(ctx, sess, nil, &form)
	if err == nil {
		h.redirect(w, r, "/contact")
		return
	}
	if isUnauthorized(err) {
		h.expireSession(w, r)
		return
	}

	status := http.StatusBadGateway
	if errors.Is(err, domain.ErrValidation) {
		status = http.StatusUnprocessableEntity
	}
	h.render(w, r, status, "contact.html", "Contact Us", contactView{
		Form:        form,
		FieldErrors: domain.FieldErrorMap(err),
	})
}

const dashboardPreview = 3

type dashboardView struct {
	ShowStats       bool
	Stats           *domain.UserStats
	StatsError      string
	Properties      []domain.Property
	PropertiesError string
	Favorites       []domain.Property
	FavoritesError  string
	UserID          domain.ID
}

// Dashboard - каждая секция загружается независимо; ошибка одной не ломает страницу.
func (h *Handlers) Dashboard(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	sess := contextkeys.SessionFromContext(ctx)
	view := dashboardView{ShowStats: sess.User.ListsProperties(), UserID: sess.UserID()}

	if view.ShowStats {
		stats, err := h.uc.UserStats.Execute(ctx, sess)
		if isUnauthorized(err) {
			h.expireSession(w, r)
			return
		}
		view.Stats = stats
		view.StatsError = sectionError(err)

		props, err := h.uc.UserProperties.Execute(ctx, sess)
		if isUnauthorized(err) {
			h.expireSession(w, r)
			return
		}
		view.Properties = preview(props)
		view.PropertiesError = sectionError(err)
	}

	favs, err := h.uc.UserFavorites.Execute(ctx, sess)
	if isUnauthorized(err) {
		h.expireSession(w, r)
		return
	}
	view.Favorites = preview(favs)
	view.FavoritesError = sectionError(err)

	h.render(w, r, http.StatusOK, "dashboard.html", "Dashboard", view)
}

func sectionError(err error) string {
	if err == nil {
		return ""
	}
	return domain.UserMessage(err, domain.DefaultErrorMessage)
}

func preview(list []domain.Property) []domain.Property {
	if len(list) > dashboardPreview {
		return list[:dashboardPreview]
	}
	return list
}

type listView struct {
	Properties []domain.Property
	UserID     domain.ID
	Error      string
}

func (h *Handlers) UserProperties(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	sess := contextkeys.SessionFromContext(ctx)

	props, err := h.uc.UserProperties.Execute(ctx, sess)
	if err != nil {
		h.handleError(w, r, err)
		return
	}
	h.render(w, r, http.StatusOK, "user_properties.html", "My Properties", listView{Properties: props, UserID: sess.UserID()})
}

func (h *Handlers) UserFavorites(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	sess := contextkeys.SessionFromContext(ctx)

	favs, err := h.uc.UserFavorites.Execute(ctx, sess)
	if err != nil {
		h.handleError(w, r, err)
		return
	}
	h.render(w, r, http.StatusOK, "user_favorites.html", "My Favorites", listView{Properties: favs, UserID: sess.UserID()})
}

type profileView struct {
	Form        domain.ProfileUpdate
	FieldErrors map[string]string
}

func profileFromUser(u *domain.User) domain.ProfileUpdate {
	if u == nil {
		return domain.ProfileUpdate{}
	}
	return domain.ProfileUpdate{
		Name:     u.Name,
		Email:    u.Email,
		Phone:    u.Phone,
		Location: u.Location,
		Bio:      u.Bio,
		Avatar:   u.Avatar,
	}
}

func (h *Handlers) ProfilePage(w http.ResponseWriter, r *http.Request) {
	sess := contextkeys.SessionFromContext(r.Context())
	h.render(w, r, http.StatusOK, "profile.html", "Profile", profileView{Form: profileFromUser(sess.User)})
}

func (h *Handlers) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	sess := contextkeys.SessionFromContext(ctx)

	upd := domain.ProfileUpdate{
		Name:     r.FormValue("name"),
		Email:    r.FormValue("email"),
		Phone:    r.FormValue("phone"),
		Location: r.FormValue("location"),
		Bio:      r.FormValue("bio"),
		Avatar:   r.FormValue("avatar"),
	}

	err := h.uc.Auth.UpdateProfile(ctx, sess, upd)
	if err == nil {
		h.redirect(w, r, "/dashboard/profile")
		return
	}
	if isUnauthorized(err) {
		h.expireSession(w, r)
		return
	}

	status := http.StatusBadGateway
	if errors.Is(err, domain.ErrValidation) {
		status = http.StatusUnprocessableEntity
	}
	h.render(w, r, status, "profile.html", "Profile", profileView{Form: upd, FieldErrors: domain.FieldErrorMap(err)})
}
