package web

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/mohitk58/apnadera-frontend/internal/contextkeys"
	"github.com/mohitk58/apnadera-frontend/internal/core/domain"
)

const (
	maxUploadMemory = 32 << 20
	maxImageSize    = 10 << 20
	msgNotOwner     = "You can only edit your own properties"
)

type propertyFormView struct {
	Input          domain.PropertyInput
	Editing        bool
	Action         string
	PropertyID     domain.ID
	ExistingImages []domain.Image
	FieldErrors    map[string]string
	Types          []domain.PropertyType
	Statuses       []domain.PropertyStatus
	Amenities      []string
	MaxImages      int
}

func newPropertyFormView(in domain.PropertyInput) propertyFormView {
	return propertyFormView{
		Input:     in,
		Action:    "/properties/add",
		Types:     domain.PropertyTypes,
		Statuses:  domain.PropertyStatuses,
		Amenities: domain.Amenities,
		MaxImages: domain.MaxImages,
	}
}

func editFormView(p *domain.Property, in domain.PropertyInput) propertyFormView {
	view := newPropertyFormView(in)
	view.Editing = true
	view.PropertyID = p.ID
	view.Action = "/properties/edit/" + url.PathEscape(p.ID.String())
	view.ExistingImages = p.Images
	return view
}

func inputFromProperty(p *domain.Property) domain.PropertyInput {
	return domain.PropertyInput{
		Title:       p.Title,
		Description: p.Description,
		Type:        p.Type,
		Price:       p.Price,
		Status:      p.Status,
		Location:    p.Location,
		Details:     p.Details,
		Amenities:   append([]string(nil), p.Amenities...),
	}
}

// parsePropertyForm читает форму объявления. Имена полей совпадают с ключами ошибок
// валидации ("location.city", "details.sqft"), числа, которые не разобрались, остаются нулями.
func parsePropertyForm(r *http.Request) (domain.PropertyInput, error) {
	if err := r.ParseMultipartForm(maxUploadMemory); err != nil && !errors.Is(err, http.ErrNotMultipart) {
		return domain.PropertyInput{}, fmt.Errorf("failed to parse property form: %w", err)
	}

	in := domain.PropertyInput{
		Title:       strings.TrimSpace(r.FormValue("title")),
		Description: strings.TrimSpace(r.FormValue("description")),
		Type:        domain.PropertyType(r.FormValue("type")),
		Price:       formInt64(r, "price"),
		Status:      domain.PropertyStatus(r.FormValue("status")),
		Location: domain.Location{
			Address: strings.TrimSpace(r.FormValue("location.address")),
			City:    strings.TrimSpace(r.FormValue("location.city")),
			State:   strings.TrimSpace(r.FormValue("location.state")),
			ZipCode: strings.TrimSpace(r.FormValue("location.zipCode")),
			Country: strings.TrimSpace(r.FormValue("location.country")),
		},
		Details: domain.Details{
			Bedrooms:  int(formInt64(r, "details.bedrooms")),
			Bathrooms: int(formInt64(r, "details.bathrooms")),
			Sqft:      int(formInt64(r, "details.sqft")),
			YearBuilt: int(formInt64(r, "details.yearBuilt")),
		},
		Amenities: r.Form["amenities"],
	}

	if r.MultipartForm == nil {
		return in, nil
	}
	for _, fh := range r.MultipartForm.File["images"] {
		if fh.Size > maxImageSize {
			return in, &domain.ValidationError{Fields: []domain.FieldError{{
				Field:   "images",
				Message: fmt.Sprintf("%s is larger than 10MB", fh.Filename),
			}}}
		}
		f, err := fh.Open()
		if err != nil {
			return in, fmt.Errorf("failed to open upload %s: %w", fh.Filename, err)
		}
		data, err := io.ReadAll(f)
		f.Close()
		if err != nil {
			return in, fmt.Errorf("failed to read upload %s: %w", fh.Filename, err)
		}
		in.Images = append(in.Images, domain.ImageUpload{
			Filename:    fh.Filename,
			ContentType: fh.Header.Get("Content-Type"),
			Data:        data,
		})
	}
	return in, nil
}

func formInt64(r *http.Request, key string) int64 {
	v, err := strconv.ParseInt(strings.TrimSpace(r.FormValue(key)), 10, 64)
	if err != nil {
		return 0
	}
	return v
}

// formFailureStatus - статус повторной отрисовки формы после ошибки use case.
func formFailureStatus(err error) int {
	if errors.Is(err, domain.ErrValidation) {
		return http.StatusUnprocessableEntity
	}
	return http.StatusBadGateway
}

func (h *Handlers) AddPropertyPage(w http.ResponseWriter, r *http.Request) {
	in := domain.PropertyInput{
		Type:   domain.PropertyTypes[0],
		Status: domain.PropertyStatuses[0],
	}
	h.render(w, r, http.StatusOK, "property_form.html", "Add Property", newPropertyFormView(in))
}

func (h *Handlers) CreateProperty(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	sess := contextkeys.SessionFromContext(ctx)

	in, err := parsePropertyForm(r)
	if err == nil {
		var created *domain.Property
		created, err = h.uc.CreateProperty.Execute(ctx, sess, in)
		if err == nil {
			h.redirect(w, r, "/properties/"+url.PathEscape(created.ID.String()))
			return
		}
	}
	if isUnauthorized(err) {
		h.expireSession(w, r)
		return
	}

	view := newPropertyFormView(in)
	view.FieldErrors = domain.FieldErrorMap(err)
	h.render(w, r, formFailureStatus(err), "property_form.html", "Add Property", view)
}

// editableProperty загружает объявление и проверяет право на изменение.
// false - ответ уже отправлен.
func (h *Handlers) editableProperty(w http.ResponseWriter, r *http.Request) (*domain.Property, bool) {
	ctx := r.Context()
	sess := contextkeys.SessionFromContext(ctx)

	p, err := h.uc.GetProperty.Execute(ctx, sess, domain.ID(chi.URLParam(r, "id")))
	if err != nil {
		h.handleError(w, r, err)
		return nil, false
	}
	if !p.CanBeEditedBy(sess.User) {
		h.render(w, r, http.StatusForbidden, "error.html", "Forbidden", errorView{Message: msgNotOwner})
		return nil, false
	}
	return p, true
}

func (h *Handlers) EditPropertyPage(w http.ResponseWriter, r *http.Request) {
	p, ok := h.editableProperty(w, r)
	if !ok {
		return
	}
	h.render(w, r, http.StatusOK, "property_form.html", "Edit Property", editFormView(p, inputFromProperty(p)))
}

func (h *Handlers) UpdateProperty(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	sess := contextkeys.SessionFromContext(ctx)

	p, ok := h.editableProperty(w, r)
	if !ok {
		return
	}

	in, err := parsePropertyForm(r)
	if err == nil {
		_, err = h.uc.UpdateProperty.Execute(ctx, sess, p.ID, in)
		if err == nil {
			h.redirect(w, r, "/properties/"+url.PathEscape(p.ID.String()))
			return
		}
	}
	if isUnauthorized(err) {
		h.expireSession(w, r)
		return
	}

	view := editFormView(p, in)
	view.FieldErrors = domain.FieldErrorMap(err)
	h.render(w, r, formFailureStatus(err), "property_form.html", "Edit Property", view)
}

func (h *Handlers) DeleteProperty(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	sess := contextkeys.SessionFromContext(ctx)

	p, ok := h.editableProperty(w, r)
	if !ok {
		return
	}

	if err := h.uc.DeleteProperty.Execute(ctx, sess, p.ID); err != nil {
		if isUnauthorized(err) {
			h.expireSession(w, r)
			return
		}
		h.redirect(w, r, "/properties/"+url.PathEscape(p.ID.String()))
		return
	}
	h.redirect(w, r, "/dashboard/properties")
}
