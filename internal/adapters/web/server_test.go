package web

import (
	"encoding/json"
	"html"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"net/url"
	"regexp"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/mohitk58/apnadera-frontend/internal/adapters/api_client"
	logger_adapter "github.com/mohitk58/apnadera-frontend/internal/adapters/logger"
	"github.com/mohitk58/apnadera-frontend/internal/adapters/querycache"
	"github.com/mohitk58/apnadera-frontend/internal/adapters/session"
	"github.com/mohitk58/apnadera-frontend/internal/contracts"
	"github.com/mohitk58/apnadera-frontend/internal/core/domain"
	"github.com/mohitk58/apnadera-frontend/internal/core/format"
	"github.com/mohitk58/apnadera-frontend/internal/core/port/usecases_port"
	"github.com/mohitk58/apnadera-frontend/internal/core/usecase"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const propertyJSON = `{"_id":"p1","title":"Sea View Villa","description":"Villa by the sea","price":25000000,
"location":{"address":"1 Beach Rd","city":"Goa","state":"GA","zipCode":"403001","country":"India"},
"details":{"bedrooms":4,"bathrooms":3,"sqft":3200,"yearBuilt":2015},"type":"house","status":"available",
"amenities":["pool"],"images":[{"url":"https://img.example/p1.jpg","isPrimary":true}],
"owner":{"_id":"u2","name":"Ravi","email":"ravi@example.com"},"favorites":[],"isFeatured":true,
"createdAt":"2024-01-01T00:00:00Z"}`

const userJSON = `{"_id":"u1","name":"Asha","email":"asha@example.com","role":"seller"}`

// fakeRemote - удаленный REST API маркетплейса для тестов веб-слоя.
type fakeRemote struct {
	mu              sync.Mutex
	calls           map[string]int
	lastListQuery   url.Values
	meStatus        int
	listStatus      int
	favoritesStatus int
}

func newFakeRemote() *fakeRemote {
	return &fakeRemote{calls: make(map[string]int)}
}

func (f *fakeRemote) set(fn func(f *fakeRemote)) {
	f.mu.Lock()
	defer f.mu.Unlock()
	fn(f)
}

func (f *fakeRemote) count(call string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls[call]
}

func (f *fakeRemote) listQuery() url.Values {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.lastListQuery
}

func (f *fakeRemote) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	call := r.Method + " " + r.URL.Path
	f.mu.Lock()
	f.calls[call]++
	meStatus, listStatus, favoritesStatus := f.meStatus, f.listStatus, f.favoritesStatus
	if call == "GET /properties" {
		f.lastListQuery = r.URL.Query()
	}
	f.mu.Unlock()

	w.Header().Set("Content-Type", "application/json")
	fail := func(status int, msg string) {
		w.WriteHeader(status)
		_, _ = io.WriteString(w, `{"message":"`+msg+`"}`)
	}
	authorized := r.Header.Get("Authorization") == "Bearer tok-1"

	switch call {
	case "POST /auth/login":
		var body struct {
			Email    string `json:"email"`
			Password string `json:"password"`
		}
		_ = json.NewDecoder(r.Body).Decode(&body)
		if body.Password != "secret" {
			fail(http.StatusUnauthorized, "Invalid credentials")
			return
		}
		_, _ = io.WriteString(w, `{"token":"tok-1","user":`+userJSON+`}`)
	case "GET /auth/me":
		if !authorized {
			fail(http.StatusUnauthorized, "Token is not valid")
			return
		}
		if meStatus != 0 {
			fail(meStatus, "Service unavailable")
			return
		}
		_, _ = io.WriteString(w, `{"user":`+userJSON+`}`)
	case "GET /properties":
		if r.Header.Get("Authorization") == "Bearer bad" {
			fail(http.StatusUnauthorized, "Token is not valid")
			return
		}
		if listStatus != 0 {
			fail(listStatus, "Server error")
			return
		}
		_, _ = io.WriteString(w, `{"properties":[`+propertyJSON+`],"pagination":{"currentPage":1,"totalPages":3,"hasNextPage":true,"hasPrevPage":false,"totalProperties":30}}`)
	case "GET /properties/p1":
		_, _ = io.WriteString(w, propertyJSON)
	case "POST /properties/p1/favorite":
		if !authorized {
			fail(http.StatusUnauthorized, "Token is not valid")
			return
		}
		_, _ = io.WriteString(w, strings.Replace(propertyJSON, `"favorites":[]`, `"favorites":["u1"]`, 1))
	case "GET /users/properties":
		_, _ = io.WriteString(w, `[`+propertyJSON+`]`)
	case "GET /users/favorites":
		if favoritesStatus != 0 {
			fail(favoritesStatus, "Token expired")
			return
		}
		_, _ = io.WriteString(w, `{"favorites":[`+propertyJSON+`]}`)
	case "GET /users/stats":
		_, _ = io.WriteString(w, `{"totalProperties":3,"totalFavorites":5,"totalViews":1200,"totalValue":45000000}`)
	case "POST /contact/send":
		_, _ = io.WriteString(w, `{"success":true}`)
	default:
		fail(http.StatusNotFound, "Not found")
	}
}

type testApp struct {
	remote *fakeRemote
	server *httptest.Server
	client *http.Client
}

func newTestApp(t *testing.T, cfg ServerConfig) *testApp {
	t.Helper()

	remote := newFakeRemote()
	remoteSrv := httptest.NewServer(remote)
	t.Cleanup(remoteSrv.Close)

	api := api_client.NewClient(remoteSrv.URL, remoteSrv.Client())
	cache := querycache.New(querycache.NewMemoryStore())
	t.Cleanup(cache.Wait)
	validator := contracts.PropertyInputValidator{}
	support := domain.Recipient{Name: "ApnaDera Support", Email: "support@apnadera.com"}

	uc := usecases_port.UseCases{
		ListProperties:     usecase.NewListPropertiesUseCase(api, cache, domain.DefaultPageSize),
		FeaturedProperties: usecase.NewFeaturedPropertiesUseCase(api, cache),
		GetProperty:        usecase.NewGetPropertyUseCase(api, cache),
		SearchProperties:   usecase.NewSearchPropertiesUseCase(api, cache),
		UserProperties:     usecase.NewUserPropertiesUseCase(api, cache),
		UserFavorites:      usecase.NewUserFavoritesUseCase(api, cache),
		UserStats:          usecase.NewUserStatsUseCase(api, cache),
		CreateProperty:     usecase.NewCreatePropertyUseCase(api, cache, validator),
		UpdateProperty:     usecase.NewUpdatePropertyUseCase(api, cache, validator),
		DeleteProperty:     usecase.NewDeletePropertyUseCase(api, cache),
		ToggleFavorite:     usecase.NewToggleFavoriteUseCase(api, cache),
		SendInquiry:        usecase.NewSendInquiryUseCase(api, support),
		Auth:               usecase.NewAuthContext(api, cache),
	}

	templates := NewTemplateCache(time.Now)
	require.NoError(t, templates.Load())
	sessions := session.NewCookieStore(session.CookieConfig{Key: []byte("0123456789abcdef0123456789abcdef")})
	logger := logger_adapter.NewSlogAdapter(logger_adapter.SlogConfig{Writer: io.Discard})

	srv := httptest.NewServer(NewRouter(cfg, NewHandlers(uc, sessions, templates, support), logger))
	t.Cleanup(srv.Close)

	jar, err := cookiejar.New(nil)
	require.NoError(t, err)
	client := &http.Client{
		Jar: jar,
		CheckRedirect: func(*http.Request, []*http.Request) error {
			return http.ErrUseLastResponse
		},
	}
	return &testApp{remote: remote, server: srv, client: client}
}

type testResponse struct {
	status int
	header http.Header
	body   string
}

func (a *testApp) do(t *testing.T, req *http.Request) testResponse {
	t.Helper()
	resp, err := a.client.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return testResponse{status: resp.StatusCode, header: resp.Header, body: string(body)}
}

func (a *testApp) get(t *testing.T, path string) testResponse {
	t.Helper()
	req, err := http.NewRequest(http.MethodGet, a.server.URL+path, nil)
	require.NoError(t, err)
	return a.do(t, req)
}

func (a *testApp) post(t *testing.T, path string, form url.Values) testResponse {
	t.Helper()
	req, err := http.NewRequest(http.MethodPost, a.server.URL+path, strings.NewReader(form.Encode()))
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return a.do(t, req)
}

func (a *testApp) login(t *testing.T) {
	t.Helper()
	resp := a.post(t, "/login", url.Values{"email": {"asha@example.com"}, "password": {"secret"}})
	require.Equal(t, http.StatusSeeOther, resp.status)
}

func TestHome_ShowsFeaturedProperties(t *testing.T) {
	app := newTestApp(t, ServerConfig{})

	resp := app.get(t, "/")

	assert.Equal(t, http.StatusOK, resp.status)
	assert.Contains(t, resp.body, "Featured Properties")
	assert.Contains(t, resp.body, "Sea View Villa")
	assert.Equal(t, "true", app.remote.listQuery().Get("isFeatured"))
	assert.Equal(t, "6", app.remote.listQuery().Get("limit"))
}

func TestProperties_RendersPaginationFromServerEnvelope(t *testing.T) {
	app := newTestApp(t, ServerConfig{})

	resp := app.get(t, "/properties?city=Goa")

	require.Equal(t, http.StatusOK, resp.status)
	assert.Contains(t, resp.body, "30 properties found")
	assert.Contains(t, resp.body, `href="/properties?city=Goa&amp;page=2"`)
	assert.Contains(t, resp.body, `<span class="disabled">Previous</span>`)
	assert.Equal(t, "Goa", app.remote.listQuery().Get("city"))
	assert.Equal(t, "1", app.remote.listQuery().Get("page"))
	assert.Equal(t, "12", app.remote.listQuery().Get("limit"))
}

func TestProperties_RemoteFailureShowsRetry(t *testing.T) {
	app := newTestApp(t, ServerConfig{})
	app.remote.set(func(f *fakeRemote) { f.listStatus = http.StatusInternalServerError })

	resp := app.get(t, "/properties")

	assert.Equal(t, http.StatusBadGateway, resp.status)
	assert.Contains(t, resp.body, "Server error")
	assert.Contains(t, resp.body, "Try again")
}

func TestQuickSearch_KeepsFiltersAndResetsPage(t *testing.T) {
	app := newTestApp(t, ServerConfig{})

	resp := app.get(t, "/properties/quick-search?q=goa&current="+url.QueryEscape("type=house&page=3"))

	assert.Equal(t, http.StatusSeeOther, resp.status)
	assert.Equal(t, "/properties?page=1&search=goa&type=house", resp.header.Get("Location"))
}

var (
	quickSearchForm = regexp.MustCompile(`(?s)<form class="quick-search".*?</form>`)
	formInput       = regexp.MustCompile(`<input[^>]*>`)
	inputName       = regexp.MustCompile(`name="([^"]*)"`)
	inputValue      = regexp.MustCompile(`value="([^"]*)"`)
)

// quickSearchFields - поля, которые браузер отправит из формы поиска в шапке.
func quickSearchFields(t *testing.T, page string) url.Values {
	t.Helper()
	form := quickSearchForm.FindString(page)
	require.NotEmpty(t, form)

	fields := url.Values{}
	for _, input := range formInput.FindAllString(form, -1) {
		name := inputName.FindStringSubmatch(input)
		if name == nil {
			continue
		}
		value := ""
		if m := inputValue.FindStringSubmatch(input); m != nil {
			value = html.UnescapeString(m[1])
		}
		fields.Set(name[1], value)
	}
	return fields
}

func TestQuickSearchForm_CarriesListFilters(t *testing.T) {
	app := newTestApp(t, ServerConfig{})

	page := app.get(t, "/properties?type=house&page=2")
	require.Equal(t, http.StatusOK, page.status)

	fields := quickSearchFields(t, page.body)
	assert.Equal(t, "page=2&type=house", fields.Get("current"))

	fields.Set("q", "goa")
	resp := app.get(t, "/properties/quick-search?"+fields.Encode())

	assert.Equal(t, http.StatusSeeOther, resp.status)
	assert.Equal(t, "/properties?page=1&search=goa&type=house", resp.header.Get("Location"))
}

func TestQuickSearchForm_StartsFreshOutsideList(t *testing.T) {
	app := newTestApp(t, ServerConfig{})

	page := app.get(t, "/about")
	require.Equal(t, http.StatusOK, page.status)

	fields := quickSearchFields(t, page.body)
	_, hasCurrent := fields["current"]
	assert.False(t, hasCurrent)

	fields.Set("q", "goa")
	resp := app.get(t, "/properties/quick-search?"+fields.Encode())
	assert.Equal(t, "/properties?page=1&search=goa", resp.header.Get("Location"))
}

func TestApplyFilters(t *testing.T) {
	tests := []struct {
		name  string
		query string
		want  string
	}{
		{"form submit drops empty fields", "search=&type=house&minPrice=100", "/properties?minPrice=100&page=1&type=house"},
		{"clear all", "clear=all", "/properties"},
		{"clear search keeps the rest", "clear=search&current=" + url.QueryEscape("search=goa&type=condo"), "/properties?type=condo"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app := newTestApp(t, ServerConfig{})
			resp := app.get(t, "/properties/filter?"+tt.query)
			assert.Equal(t, http.StatusSeeOther, resp.status)
			assert.Equal(t, tt.want, resp.header.Get("Location"))
		})
	}
}

func TestPropertyDetail(t *testing.T) {
	app := newTestApp(t, ServerConfig{})

	resp := app.get(t, "/properties/p1")
	assert.Equal(t, http.StatusOK, resp.status)
	assert.Contains(t, resp.body, "Villa by the sea")
	assert.Contains(t, resp.body, "Contact Property Owner")

	resp = app.get(t, "/properties/missing")
	assert.Equal(t, http.StatusNotFound, resp.status)
	assert.Contains(t, resp.body, "does not exist")
}

func TestUnknownRoute_NotFoundPage(t *testing.T) {
	app := newTestApp(t, ServerConfig{})

	resp := app.get(t, "/no/such/page")

	assert.Equal(t, http.StatusNotFound, resp.status)
	assert.Contains(t, resp.body, "does not exist")
}

func TestRequireAuth_RedirectsAnonymousToLogin(t *testing.T) {
	app := newTestApp(t, ServerConfig{})

	resp := app.get(t, "/dashboard")

	assert.Equal(t, http.StatusSeeOther, resp.status)
	assert.Equal(t, "/login?next=%2Fdashboard", resp.header.Get("Location"))
}

func TestRequireAuth_ShowsLoadingWhileSessionCannotBeRestored(t *testing.T) {
	app := newTestApp(t, ServerConfig{})
	app.login(t)
	app.remote.set(func(f *fakeRemote) { f.meStatus = http.StatusServiceUnavailable })

	resp := app.get(t, "/dashboard")

	assert.Equal(t, http.StatusServiceUnavailable, resp.status)
	assert.Equal(t, "2", resp.header.Get("Retry-After"))
	assert.Contains(t, resp.body, "Loading...")
}

func TestLogin_RedirectsToNextAndRestoresSession(t *testing.T) {
	app := newTestApp(t, ServerConfig{})

	resp := app.post(t, "/login", url.Values{
		"email":    {"asha@example.com"},
		"password": {"secret"},
		"next":     {"/dashboard/favorites"},
	})
	assert.Equal(t, http.StatusSeeOther, resp.status)
	assert.Equal(t, "/dashboard/favorites", resp.header.Get("Location"))

	resp = app.get(t, "/dashboard")
	require.Equal(t, http.StatusOK, resp.status)
	assert.Contains(t, resp.body, "Login successful!")
	assert.Contains(t, resp.body, "Welcome back, Asha")
	assert.Contains(t, resp.body, "Total Properties")
}

func TestLogin_IgnoresExternalNext(t *testing.T) {
	app := newTestApp(t, ServerConfig{})

	resp := app.post(t, "/login", url.Values{
		"email":    {"asha@example.com"},
		"password": {"secret"},
		"next":     {"//evil.example/phish"},
	})

	assert.Equal(t, "/dashboard", resp.header.Get("Location"))
}

func TestLogin_Failures(t *testing.T) {
	app := newTestApp(t, ServerConfig{})

	resp := app.post(t, "/login", url.Values{"email": {"asha@example.com"}, "password": {"wrong"}})
	assert.Equal(t, http.StatusUnauthorized, resp.status)
	assert.Contains(t, resp.body, "Invalid credentials")

	resp = app.post(t, "/login", url.Values{"password": {"secret"}})
	assert.Equal(t, http.StatusUnprocessableEntity, resp.status)
	assert.Contains(t, resp.body, "Email is required")
	assert.Equal(t, 1, app.remote.count("POST /auth/login"))
}

func TestUnauthorizedResponse_ExpiresSession(t *testing.T) {
	app := newTestApp(t, ServerConfig{})
	app.login(t)
	app.remote.set(func(f *fakeRemote) { f.favoritesStatus = http.StatusUnauthorized })

	resp := app.get(t, "/dashboard/favorites")
	assert.Equal(t, http.StatusSeeOther, resp.status)
	assert.Equal(t, "/login", resp.header.Get("Location"))

	resp = app.get(t, "/login")
	assert.Equal(t, http.StatusOK, resp.status)
	assert.Contains(t, resp.body, "Your session has expired. Please log in again.")

	resp = app.get(t, "/dashboard")
	assert.Equal(t, http.StatusSeeOther, resp.status, "token was cleared")
}

func TestLogout(t *testing.T) {
	app := newTestApp(t, ServerConfig{})
	app.login(t)

	resp := app.post(t, "/logout", nil)
	assert.Equal(t, http.StatusSeeOther, resp.status)
	assert.Equal(t, "/", resp.header.Get("Location"))

	resp = app.get(t, "/about")
	assert.Contains(t, resp.body, "Logged out successfully")
	assert.Contains(t, resp.body, `href="/login"`)
}

func TestToggleFavorite_AnonymousGoesBackWithNotice(t *testing.T) {
	app := newTestApp(t, ServerConfig{})

	resp := app.post(t, "/properties/p1/favorite", url.Values{"return": {"/properties?page=2"}})
	assert.Equal(t, http.StatusSeeOther, resp.status)
	assert.Equal(t, "/properties?page=2", resp.header.Get("Location"))
	assert.Zero(t, app.remote.count("POST /properties/p1/favorite"))

	resp = app.get(t, "/about")
	assert.Contains(t, resp.body, "Please login to add favorites")
}

func TestToggleFavorite_SignedIn(t *testing.T) {
	app := newTestApp(t, ServerConfig{})
	app.login(t)

	resp := app.post(t, "/properties/p1/favorite", nil)
	assert.Equal(t, http.StatusSeeOther, resp.status)
	assert.Equal(t, "/properties/p1", resp.header.Get("Location"))
	assert.Equal(t, 1, app.remote.count("POST /properties/p1/favorite"))

	resp = app.get(t, "/about")
	assert.Contains(t, resp.body, "Favorite updated successfully")
}

func TestSubmitInquiry(t *testing.T) {
	app := newTestApp(t, ServerConfig{})

	resp := app.post(t, "/properties/p1/inquiry", url.Values{"name": {" "}, "message": {""}})
	assert.Equal(t, http.StatusUnprocessableEntity, resp.status)
	assert.Contains(t, resp.body, "Please fill in all required fields")
	assert.Contains(t, resp.body, "Name is required")
	assert.Zero(t, app.remote.count("POST /contact/send"))

	resp = app.post(t, "/properties/p1/inquiry", url.Values{
		"name":    {"Meera"},
		"email":   {"meera@example.com"},
		"message": {"Is it still available?"},
	})
	assert.Equal(t, http.StatusSeeOther, resp.status)
	assert.Equal(t, "/properties/p1", resp.header.Get("Location"))
	assert.Equal(t, 1, app.remote.count("POST /contact/send"))
}

func TestSubmitContact_GeneralInquiry(t *testing.T) {
	app := newTestApp(t, ServerConfig{})

	resp := app.post(t, "/contact", url.Values{
		"name":    {"Meera"},
		"email":   {"meera@example.com"},
		"message": {"Hello"},
	})
	assert.Equal(t, http.StatusSeeOther, resp.status)
	assert.Equal(t, "/contact", resp.header.Get("Location"))

	resp = app.get(t, "/contact")
	assert.Contains(t, resp.body, "Message sent successfully! We will get back to you soon.")
}

func TestAPIListProperties(t *testing.T) {
	app := newTestApp(t, ServerConfig{})

	resp := app.get(t, "/api/properties?city=Goa")
	require.Equal(t, http.StatusOK, resp.status)
	assert.Contains(t, resp.header.Get("Content-Type"), "application/json")

	var list struct {
		Properties []struct {
			ID             string `json:"id"`
			FormattedPrice string `json:"formattedPrice"`
			Image          string `json:"image"`
		} `json:"properties"`
		Pagination struct {
			TotalPages int `json:"totalPages"`
		} `json:"pagination"`
	}
	require.NoError(t, json.Unmarshal([]byte(resp.body), &list))
	require.Len(t, list.Properties, 1)
	assert.Equal(t, "p1", list.Properties[0].ID)
	assert.Equal(t, format.FormatPrice(25000000), list.Properties[0].FormattedPrice)
	assert.Equal(t, "https://img.example/p1.jpg", list.Properties[0].Image)
	assert.Equal(t, 3, list.Pagination.TotalPages)
}

func TestAPIListProperties_RejectedToken(t *testing.T) {
	app := newTestApp(t, ServerConfig{})

	req, err := http.NewRequest(http.MethodGet, app.server.URL+"/api/properties", nil)
	require.NoError(t, err)
	req.Header.Set("Authorization", "Bearer bad")
	resp := app.do(t, req)

	assert.Equal(t, http.StatusUnauthorized, resp.status)
	assert.JSONEq(t, `{"error":"Token is not valid"}`, resp.body)
}

func TestCSRFProtection(t *testing.T) {
	app := newTestApp(t, ServerConfig{Port: "8080", CSRFKey: []byte("abcdefghijklmnopqrstuvwxyz012345")})

	resp := app.get(t, "/contact")
	require.Equal(t, http.StatusOK, resp.status)
	assert.Contains(t, resp.body, `name="gorilla.csrf.Token"`)

	resp = app.post(t, "/contact", url.Values{"name": {"Meera"}, "email": {"meera@example.com"}, "message": {"Hi"}})
	assert.Equal(t, http.StatusForbidden, resp.status)
	assert.Zero(t, app.remote.count("POST /contact/send"))
}
