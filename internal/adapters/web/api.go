package web

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/mohitk58/apnadera-frontend/internal/contextkeys"
	"github.com/mohitk58/apnadera-frontend/internal/core/domain"
	"github.com/mohitk58/apnadera-frontend/internal/core/format"
	"github.com/mohitk58/apnadera-frontend/internal/core/port"
)

type apiLocation struct {
	City  string `json:"city"`
	State string `json:"state"`
}

type apiDetails struct {
	Bedrooms  int `json:"bedrooms"`
	Bathrooms int `json:"bathrooms"`
	Sqft      int `json:"sqft"`
}

type apiProperty struct {
	ID             string      `json:"id"`
	Title          string      `json:"title"`
	Price          int64       `json:"price"`
	FormattedPrice string      `json:"formattedPrice"`
	Type           string      `json:"type"`
	Status         string      `json:"status"`
	Location       apiLocation `json:"location"`
	Details        apiDetails  `json:"details"`
	Image          string      `json:"image,omitempty"`
	IsFeatured     bool        `json:"isFeatured"`
	FavoritesCount int         `json:"favoritesCount"`
	CreatedAt      *time.Time  `json:"createdAt,omitempty"`
}

type apiPagination struct {
	CurrentPage     int  `json:"currentPage"`
	TotalPages      int  `json:"totalPages"`
	TotalProperties int  `json:"totalProperties"`
	HasNextPage     bool `json:"hasNextPage"`
	HasPrevPage     bool `json:"hasPrevPage"`
}

type apiPropertyList struct {
	Properties []apiProperty  `json:"properties"`
	Pagination *apiPagination `json:"pagination,omitempty"`
}

func toAPIProperties(list []domain.Property) []apiProperty {
	out := make([]apiProperty, 0, len(list))
	for i := range list {
		p := &list[i]
		item := apiProperty{
			ID:             p.ID.String(),
			Title:          p.Title,
			Price:          p.Price,
			FormattedPrice: format.FormatPrice(p.Price),
			Type:           string(p.Type),
			Status:         string(p.Status),
			Location:       apiLocation{City: p.Location.City, State: p.Location.State},
			Details: apiDetails{
				Bedrooms:  p.Details.Bedrooms,
				Bathrooms: p.Details.Bathrooms,
				Sqft:      p.Details.Sqft,
			},
			IsFeatured:     p.IsFeatured,
			FavoritesCount: len(p.Favorites),
		}
		if img := p.PrimaryImage(); img != nil {
			item.Image = img.URL
		}
		if !p.CreatedAt.IsZero() {
			createdAt := p.CreatedAt
			item.CreatedAt = &createdAt
		}
		out = append(out, item)
	}
	return out
}

// bearerSession - сессия JSON-эндпоинтов строится из заголовка Authorization, cookie не читаются.
func bearerSession(r *http.Request) *domain.Session {
	token, ok := strings.CutPrefix(r.Header.Get("Authorization"), "Bearer ")
	if !ok {
		return &domain.Session{}
	}
	return &domain.Session{Token: strings.TrimSpace(token)}
}

func writeAPIError(w http.ResponseWriter, r *http.Request, err error) {
	status := http.StatusBadGateway
	switch {
	case errors.Is(err, domain.ErrUnauthorized):
		status = http.StatusUnauthorized
	case errors.Is(err, domain.ErrNotFound):
		status = http.StatusNotFound
	case errors.Is(err, domain.ErrValidation):
		status = http.StatusBadRequest
	}
	contextkeys.LoggerFromContext(r.Context()).Warn("API request failed", port.Fields{
		"status_code": status,
		"error":       err.Error(),
	})
	WriteJSONError(w, status, domain.UserMessage(err, domain.DefaultErrorMessage))
}

// APIListProperties - GET /api/properties с теми же query-параметрами, что и страница списка.
func (h *Handlers) APIListProperties(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	filters := domain.ParseFilters(r.URL.Query())

	page, err := h.uc.ListProperties.Execute(ctx, bearerSession(r), filters)
	if err != nil {
		writeAPIError(w, r, err)
		return
	}

	RespondWithJSON(w, http.StatusOK, apiPropertyList{
		Properties: toAPIProperties(page.Properties),
		Pagination: &apiPagination{
			CurrentPage:     page.Pagination.CurrentPage,
			TotalPages:      page.Pagination.TotalPages,
			TotalProperties: page.Pagination.TotalProperties,
			HasNextPage:     page.Pagination.HasNextPage,
			HasPrevPage:     page.Pagination.HasPrevPage,
		},
	})
}

// APISearch - подсказки для строки поиска: GET /api/search?q=...
func (h *Handlers) APISearch(w http.ResponseWriter, r *http.Request) {
	results, err := h.uc.SearchProperties.Execute(r.Context(), bearerSession(r), r.URL.Query().Get("q"))
	if err != nil {
		writeAPIError(w, r, err)
		return
	}
	RespondWithJSON(w, http.StatusOK, apiPropertyList{Properties: toAPIProperties(results)})
}
