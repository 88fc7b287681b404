package web

import (
	"embed"
	"fmt"
	"html/template"
	"io/fs"
	"path"
	"strings"
	"sync"
	"time"

	"github.com/mohitk58/apnadera-frontend/internal/core/domain"
	"github.com/mohitk58/apnadera-frontend/internal/core/format"
)

//go:embed templates
var templatesFS embed.FS

const layoutFile = "templates/layout.html"

// TemplateCache - разобранные страницы; каждая страница собирается вместе с layout.
type TemplateCache struct {
	cache map[string]*template.Template
	mu    sync.RWMutex
	funcs template.FuncMap
}

func NewTemplateCache(now func() time.Time) *TemplateCache {
	return &TemplateCache{
		cache: make(map[string]*template.Template),
		funcs: templateFuncs(now),
	}
}

// Load разбирает все страницы из встроенной директории templates.
func (tc *TemplateCache) Load() error {
	tc.mu.Lock()
	defer tc.mu.Unlock()

	pages, err := fs.Glob(templatesFS, "templates/*.html")
	if err != nil {
		return err
	}
	for _, page := range pages {
		if page == layoutFile {
			continue
		}
		name := path.Base(page)
		tmpl, err := template.New(name).Funcs(tc.funcs).ParseFS(templatesFS, layoutFile, page)
		if err != nil {
			return fmt.Errorf("failed to parse template %s: %w", name, err)
		}
		tc.cache[name] = tmpl
	}
	return nil
}

func (tc *TemplateCache) Get(name string) *template.Template {
	tc.mu.RLock()
	defer tc.mu.RUnlock()
	return tc.cache[name]
}

func templateFuncs(now func() time.Time) template.FuncMap {
	return template.FuncMap{
		"price":          format.FormatPrice,
		"number":         func(n int) string { return format.FormatNumber(int64(n)) },
		"date":           format.FormatDate,
		"relativeDate":   func(t time.Time) string { return format.FormatRelativeDate(t, now()) },
		"phone":          format.FormatPhoneNumber,
		"truncate":       format.TruncateText,
		"capitalize":     format.CapitalizeFirst,
		"typeLabel":      format.TypeLabel,
		"statusLabel":    format.StatusLabel,
		"amenityLabel":   format.AmenityLabel,
		"recipientLabel": format.RecipientLabel,
		"primaryImage":   func(p domain.Property) *domain.Image { return p.PrimaryImage() },
		"favoritedBy":    func(p domain.Property, id domain.ID) bool { return p.IsFavoritedBy(id) },
		"hasAmenity": func(list []string, tag string) bool {
			for _, a := range list {
				if a == tag {
					return true
				}
			}
			return false
		},
		"lower": strings.ToLower,
		"card": func(p domain.Property, userID domain.ID, csrfField template.HTML, returnPath string) cardView {
			return cardView{
				Property:   p,
				Favorited:  p.IsFavoritedBy(userID),
				Signed:     !userID.IsZero(),
				CSRFField:  csrfField,
				ReturnPath: returnPath,
			}
		},
	}
}

// cardView - данные частичного шаблона "property_card".
type cardView struct {
	Property   domain.Property
	Favorited  bool
	Signed     bool
	CSRFField  template.HTML
	ReturnPath string
}
