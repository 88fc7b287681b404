package web

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/gorilla/csrf"
	"github.com/mohitk58/apnadera-frontend/internal/core/port"
)

type ServerConfig struct {
	Port string
	// CSRFKey - 32 байта; пустой ключ отключает CSRF-защиту форм (локальная разработка).
	CSRFKey        []byte
	CookieSecure   bool
	AllowedOrigins []string
}

// Server - веб-фронтенд маркетплейса.
type Server struct {
	httpServer *http.Server
	logger     port.LoggerPort
}

func NewServer(cfg ServerConfig, h *Handlers, baseLogger port.LoggerPort) *Server {
	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           NewRouter(cfg, h, baseLogger),
		ReadHeaderTimeout: 10 * time.Second,
	}
	return &Server{
		httpServer: srv,
		logger:     baseLogger.WithFields(port.Fields{"component": "web_server"}),
	}
}

// NewRouter собирает маршруты. Вынесен отдельно, чтобы тесты работали без сети.
func NewRouter(cfg ServerConfig, h *Handlers, baseLogger port.LoggerPort) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RealIP)
	r.Use(LoggerMiddleware(baseLogger))
	r.Use(middleware.Recoverer)

	// JSON для внешних клиентов: CORS, без cookie-сессии и CSRF
	r.Route("/api", func(r chi.Router) {
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins: cfg.AllowedOrigins,
			AllowedMethods: []string{"GET", "OPTIONS"},
			AllowedHeaders: []string{"Accept", "Authorization", "Content-Type", "X-Trace-ID"},
			ExposedHeaders: []string{"X-Trace-ID"},
			MaxAge:         300,
		}))
		r.Get("/properties", h.APIListProperties)
		r.Get("/search", h.APISearch)
	})

	r.Group(func(r chi.Router) {
		if len(cfg.CSRFKey) > 0 {
			if !cfg.CookieSecure {
				r.Use(plaintextCSRF)
			}
			r.Use(csrf.Protect(
				cfg.CSRFKey,
				csrf.Secure(cfg.CookieSecure),
				csrf.Path("/"),
				csrf.TrustedOrigins([]string{"localhost:" + cfg.Port, "127.0.0.1:" + cfg.Port}),
			))
		}
		r.Use(SessionMiddleware(h.uc.Auth, h.sessions))

		r.Get("/", h.Home)
		r.Get("/about", h.About)
		r.Get("/contact", h.ContactPage)
		r.Post("/contact", h.SubmitContact)

		r.Get("/login", h.LoginPage)
		r.Post("/login", h.Login)
		r.Get("/register", h.RegisterPage)
		r.Post("/register", h.Register)
		r.Post("/logout", h.Logout)

		r.Get("/properties", h.Properties)
		r.Get("/properties/quick-search", h.QuickSearch)
		r.Get("/properties/filter", h.ApplyFilters)
		r.Get("/properties/{id}", h.PropertyDetail)
		r.Post("/properties/{id}/favorite", h.ToggleFavorite)
		r.Post("/properties/{id}/inquiry", h.SubmitInquiry)

		r.Group(func(r chi.Router) {
			r.Use(RequireAuth(http.HandlerFunc(h.Loading)))

			r.Get("/dashboard", h.Dashboard)
			r.Get("/dashboard/properties", h.UserProperties)
			r.Get("/dashboard/favorites", h.UserFavorites)
			r.Get("/dashboard/profile", h.ProfilePage)
			r.Post("/dashboard/profile", h.UpdateProfile)

			r.Get("/properties/add", h.AddPropertyPage)
			r.Post("/properties/add", h.CreateProperty)
			r.Get("/properties/edit/{id}", h.EditPropertyPage)
			r.Post("/properties/edit/{id}", h.UpdateProperty)
			r.Post("/properties/{id}/delete", h.DeleteProperty)
		})

		r.NotFound(h.NotFound)
	})

	return r
}

// plaintextCSRF помечает запросы без TLS: иначе csrf требует Referer с https.
func plaintextCSRF(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		next.ServeHTTP(w, csrf.PlaintextHTTPRequest(r))
	})
}

// Start запускает HTTP-сервер.
func (s *Server) Start() error {
	s.logger.Info("Starting web server", port.Fields{"address": s.httpServer.Addr})
	if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		s.logger.Error("Could not start server", err, nil)
		return fmt.Errorf("could not start server: %w", err)
	}
	return nil
}

// Stop корректно останавливает сервер.
func (s *Server) Stop(ctx context.Context) error {
	s.logger.Info("Stopping web server...", nil)
	return s.httpServer.Shutdown(ctx)
}
