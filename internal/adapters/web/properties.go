package web

import (
	"errors"
	"net/http"
	"net/url"

	"github.com/go-chi/chi/v5"
	"github.com/mohitk58/apnadera-frontend/internal/contextkeys"
	"github.com/mohitk58/apnadera-frontend/internal/core/domain"
)

type homeView struct {
	Featured []domain.Property
	Error    string
	UserID   domain.ID
	Types    []domain.PropertyType
}

func (h *Handlers) Home(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	sess := contextkeys.SessionFromContext(ctx)

	view := homeView{UserID: sess.UserID(), Types: domain.PropertyTypes}
	featured, err := h.uc.FeaturedProperties.Execute(ctx, sess)
	if err != nil {
		if isUnauthorized(err) {
			h.expireSession(w, r)
			return
		}
		view.Error = domain.UserMessage(err, domain.DefaultErrorMessage)
	}
	view.Featured = featured

	h.render(w, r, http.StatusOK, "home.html", "Find Your Dream Home", view)
}

type pageLink struct {
	Number  int
	URL     string
	Current bool
}

type propertiesView struct {
	Filters        domain.Filters
	Encoded        string
	HasActive      bool
	ClearSearchURL string
	Properties     []domain.Property
	Pagination     domain.Pagination
	Pages          []pageLink
	PrevURL        string
	NextURL        string
	Error          string
	RetryURL       string
	UserID         domain.ID
	Types          []domain.PropertyType
	Statuses       []domain.PropertyStatus
}

// Properties - список объявлений. Все состояние фильтров берется из query-параметров URL.
func (h *Handlers) Properties(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	sess := contextkeys.SessionFromContext(ctx)
	filters := domain.ParseFilters(r.URL.Query())

	view := propertiesView{
		Filters:   filters,
		Encoded:   filters.Encode(),
		HasActive: filters.HasActive(),
		UserID:    sess.UserID(),
		Types:     domain.PropertyTypes,
		Statuses:  domain.PropertyStatuses,
	}
	if filters.Get(domain.FilterSearch) != "" {
		view.ClearSearchURL = "/properties/filter?clear=search&current=" + url.QueryEscape(view.Encoded)
	}

	page, err := h.uc.ListProperties.Execute(ctx, sess, filters)
	if err != nil {
		if isUnauthorized(err) {
			h.expireSession(w, r)
			return
		}
		view.Error = domain.UserMessage(err, domain.DefaultErrorMessage)
		view.RetryURL = r.URL.RequestURI()
		h.render(w, r, http.StatusBadGateway, "properties.html", "Properties", view)
		return
	}

	view.Properties = page.Properties
	view.Pagination = page.Pagination
	for _, n := range page.Pagination.PageWindow(2) {
		next, err := domain.GoToPage(filters, n, page.Pagination)
		if err != nil {
			continue
		}
		view.Pages = append(view.Pages, pageLink{
			Number:  n,
			URL:     propertiesURL(next.Encode()),
			Current: n == page.Pagination.CurrentPage,
		})
	}
	if prev, err := domain.PrevPage(filters, page.Pagination); err == nil {
		view.PrevURL = propertiesURL(prev.Encode())
	}
	if next, err := domain.NextPage(filters, page.Pagination); err == nil {
		view.NextURL = propertiesURL(next.Encode())
	}

	h.render(w, r, http.StatusOK, "properties.html", "Properties", view)
}

// QuickSearch - строка поиска в шапке. Пустой ввод оставляет текущие фильтры.
func (h *Handlers) QuickSearch(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	current := domain.ParseFiltersQuery(q.Get("current"))
	next := domain.QuickSearch(current, q.Get("q"))
	h.redirect(w, r, propertiesURL(next.Encode()))
}

// ApplyFilters - отправка формы фильтров и кнопки сброса.
func (h *Handlers) ApplyFilters(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	var next domain.Filters
	switch q.Get("clear") {
	case "all":
		next = domain.ClearAll()
	case "search":
		next = domain.ClearSearch(domain.ParseFiltersQuery(q.Get("current")))
	default:
		next = domain.SubmitFilterForm(q)
	}
	h.redirect(w, r, propertiesURL(next.Encode()))
}

type detailView struct {
	Property    *domain.Property
	Favorited   bool
	CanEdit     bool
	Recipient   domain.Recipient
	Form        domain.InquiryForm
	FieldErrors map[string]string
	UserID      domain.ID
}

func (h *Handlers) newDetailView(sess *domain.Session, p *domain.Property) detailView {
	view := detailView{
		Property:  p,
		Favorited: p.IsFavoritedBy(sess.UserID()),
		CanEdit:   p.CanBeEditedBy(sess.User),
		Recipient: domain.ResolveRecipient(p, h.support),
		UserID:    sess.UserID(),
	}
	if sess.User != nil {
		view.Form.Name = sess.User.Name
		view.Form.Email = sess.User.Email
		view.Form.Phone = sess.User.Phone
	}
	return view
}

func (h *Handlers) PropertyDetail(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	sess := contextkeys.SessionFromContext(ctx)
	id := domain.ID(chi.URLParam(r, "id"))

	p, err := h.uc.GetProperty.Execute(ctx, sess, id)
	if err != nil {
		h.handleError(w, r, err)
		return
	}
	h.render(w, r, http.StatusOK, "property_detail.html", p.Title, h.newDetailView(sess, p))
}

// ToggleFavorite возвращает пользователя туда, откуда пришла форма.
func (h *Handlers) ToggleFavorite(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	sess := contextkeys.SessionFromContext(ctx)
	id := domain.ID(chi.URLParam(r, "id"))
	back := localPath(r.FormValue("return"), "/properties/"+url.PathEscape(id.String()))

	if _, err := h.uc.ToggleFavorite.Execute(ctx, sess, id); err != nil && isUnauthorized(err) {
		h.expireSession(w, r)
		return
	}
	h.redirect(w, r, back)
}

func (h *Handlers) SubmitInquiry(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	sess := contextkeys.SessionFromContext(ctx)
	id := domain.ID(chi.URLParam(r, "id"))

	p, err := h.uc.GetProperty.Execute(ctx, sess, id)
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	form := inquiryFormFromRequest(r)
	err = h.uc.SendInquiry.Execute(ctx, sess, p, &form)
	if err == nil {
		h.redirect(w, r, "/properties/"+url.PathEscape(id.String()))
		return
	}
	if isUnauthorized(err) {
		h.expireSession(w, r)
		return
	}

	view := h.newDetailView(sess, p)
	view.Form = form
	status := http.StatusBadGateway
	if errors.Is(err, domain.ErrValidation) {
		status = http.StatusUnprocessableEntity
		view.FieldErrors = domain.FieldErrorMap(err)
	}
	h.render(w, r, status, "property_detail.html", p.Title, view)
}

func inquiryFormFromRequest(r *http.Request) domain.InquiryForm {
	return domain.InquiryForm{
		Name:    r.FormValue("name"),
		Email:   r.FormValue("email"),
		Phone:   r.FormValue("phone"),
		Message: r.FormValue("message"),
	}
}
