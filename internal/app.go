package internal

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/mohitk58/apnadera-frontend/internal/adapters/session"
	"github.com/mohitk58/apnadera-frontend/internal/adapters/web"
	"github.com/mohitk58/apnadera-frontend/internal/configs"
	"github.com/mohitk58/apnadera-frontend/internal/core/port"
)

// App - веб-фронтенд маркетплейса
type App struct {
	server  *web.Server
	runtime *Runtime
	logger  port.LoggerPort
}

// NewApp создает и настраивает все компоненты приложения
func NewApp() (*App, error) {
	appConfig, err := configs.LoadConfig()
	if err != nil {
		return nil, fmt.Errorf("error loading application configuration: %w", err)
	}

	rt, err := NewRuntime(context.Background(), appConfig, RuntimeOptions{UseColor: true})
	if err != nil {
		return nil, fmt.Errorf("failed to initialize runtime: %w", err)
	}
	appLogger := rt.Logger.WithFields(port.Fields{"component": "app"})

	templates := web.NewTemplateCache(time.Now)
	if err := templates.Load(); err != nil {
		appLogger.Error("Failed to parse templates", err, nil)
		rt.Close()
		return nil, err
	}

	sessions := session.NewCookieStore(session.CookieConfig{
		Key:    []byte(appConfig.Session.Key),
		Secure: appConfig.Session.CookieSecure,
		MaxAge: appConfig.Session.MaxAge,
	})

	handlers := web.NewHandlers(rt.UseCases, sessions, templates, rt.Support)
	server := web.NewServer(web.ServerConfig{
		Port:           appConfig.Rest.PORT,
		CSRFKey:        []byte(appConfig.Session.CSRFKey),
		CookieSecure:   appConfig.Session.CookieSecure,
		AllowedOrigins: appConfig.CORSAllowedOrigins,
	}, handlers, rt.Logger)

	appLogger.Debug("Web frontend initialized", port.Fields{
		"api_base_url": appConfig.ApiClient.BaseURL,
		"csrf_enabled": appConfig.Session.CSRFKey != "",
	})

	return &App{
		server:  server,
		runtime: rt,
		logger:  appLogger,
	}, nil
}

// Run запускает приложение и управляет его жизненным циклом
func (a *App) Run() error {
	defer a.runtime.Close()

	serverErr := make(chan error, 1)
	go func() {
		serverErr <- a.server.Start()
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-serverErr:
		return err
	case sig := <-quit:
		a.logger.Debug("Web frontend is shutting down...", port.Fields{"signal": sig.String()})
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := a.server.Stop(ctx); err != nil {
		a.logger.Error("Web server shutdown failed", err, nil)
		return fmt.Errorf("web server shutdown failed: %w", err)
	}

	a.logger.Info("Application shut down gracefully.", nil)
	return nil
}
