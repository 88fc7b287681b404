package internal

import (
	"context"
	"fmt"
	"io"
	"net/http"

	"github.com/fluent/fluent-logger-golang/fluent"
	"github.com/mohitk58/apnadera-frontend/internal/adapters/api_client"
	logger_adapter "github.com/mohitk58/apnadera-frontend/internal/adapters/logger"
	"github.com/mohitk58/apnadera-frontend/internal/adapters/querycache"
	"github.com/mohitk58/apnadera-frontend/internal/configs"
	"github.com/mohitk58/apnadera-frontend/internal/contracts"
	"github.com/mohitk58/apnadera-frontend/internal/core/domain"
	"github.com/mohitk58/apnadera-frontend/internal/core/port"
	"github.com/mohitk58/apnadera-frontend/internal/core/port/usecases_port"
	"github.com/mohitk58/apnadera-frontend/internal/core/usecase"
	"github.com/redis/go-redis/v9"
)

// RuntimeOptions - то, чем веб-сервер и CLI отличаются при сборке зависимостей.
type RuntimeOptions struct {
	// LogWriter - куда пишет stdout-логгер (CLI пишет в stderr).
	LogWriter io.Writer
	// LogLevel переопределяет STDOUT_LOG_LEVEL, если не пустой.
	LogLevel string
	UseColor bool
}

// Runtime - общие зависимости обеих поверхностей: логгер, кэш запросов, клиент API и сценарии.
type Runtime struct {
	Config   *configs.AppConfig
	Logger   port.LoggerPort
	UseCases usecases_port.UseCases
	Support  domain.Recipient

	cache        *querycache.Cache
	redisClient  *redis.Client
	fluentClient *fluent.Fluent
}

func NewRuntime(ctx context.Context, cfg *configs.AppConfig, opts RuntimeOptions) (*Runtime, error) {
	rt := &Runtime{Config: cfg}

	baseLogger, fluentClient, err := newLogger(cfg, opts)
	if err != nil {
		return nil, err
	}
	rt.Logger = baseLogger
	rt.fluentClient = fluentClient
	appLogger := baseLogger.WithFields(port.Fields{"component": "runtime"})

	store, redisClient, err := newCacheStore(ctx, cfg.Cache)
	if err != nil {
		appLogger.Error("Failed to initialize query cache store", err, port.Fields{"backend": cfg.Cache.Backend})
		rt.Close()
		return nil, err
	}
	rt.redisClient = redisClient
	rt.cache = querycache.New(store)
	appLogger.Debug("Query cache initialized", port.Fields{"backend": cfg.Cache.Backend})

	api := api_client.NewClient(cfg.ApiClient.BaseURL, &http.Client{})
	appLogger.Debug("API client initialized", port.Fields{"target_url": cfg.ApiClient.BaseURL})

	rt.Support = domain.Recipient{Email: cfg.Support.Email, Name: cfg.Support.Name, Type: domain.RecipientSupport}
	validator := contracts.PropertyInputValidator{}

	rt.UseCases = usecases_port.UseCases{
		ListProperties:     usecase.NewListPropertiesUseCase(api, rt.cache, cfg.ApiClient.PageSize),
		FeaturedProperties: usecase.NewFeaturedPropertiesUseCase(api, rt.cache),
		GetProperty:        usecase.NewGetPropertyUseCase(api, rt.cache),
		SearchProperties:   usecase.NewSearchPropertiesUseCase(api, rt.cache),
		UserProperties:     usecase.NewUserPropertiesUseCase(api, rt.cache),
		UserFavorites:      usecase.NewUserFavoritesUseCase(api, rt.cache),
		UserStats:          usecase.NewUserStatsUseCase(api, rt.cache),
		CreateProperty:     usecase.NewCreatePropertyUseCase(api, rt.cache, validator),
		UpdateProperty:     usecase.NewUpdatePropertyUseCase(api, rt.cache, validator),
		DeleteProperty:     usecase.NewDeletePropertyUseCase(api, rt.cache),
		ToggleFavorite:     usecase.NewToggleFavoriteUseCase(api, rt.cache),
		SendInquiry:        usecase.NewSendInquiryUseCase(api, rt.Support),
		Auth:               usecase.NewAuthContext(api, rt.cache),
	}
	return rt, nil
}

// newLogger собирает stdout-логгер и, если включен, Fluent Bit в один multi-логгер.
func newLogger(cfg *configs.AppConfig, opts RuntimeOptions) (port.LoggerPort, *fluent.Fluent, error) {
	level := cfg.StdoutLogger.Level
	if opts.LogLevel != "" {
		level = opts.LogLevel
	}

	var activeLoggers []port.LoggerPort
	stdoutLogger := logger_adapter.NewSlogAdapter(logger_adapter.SlogConfig{
		Writer:   opts.LogWriter,
		Level:    logger_adapter.ParseLogLevel(level),
		UseColor: opts.UseColor,
	})
	activeLoggers = append(activeLoggers, stdoutLogger)

	var fluentClient *fluent.Fluent
	if cfg.FluentBit.Enabled {
		var err error
		fluentClient, err = logger_adapter.NewFluentClient(logger_adapter.FluentConfig{
			Host:      cfg.FluentBit.Host,
			Port:      cfg.FluentBit.Port,
			TagPrefix: cfg.AppName,
		})
		if err != nil {
			stdoutLogger.Error("Failed to create fluentbit client", err, nil)
			return nil, nil, fmt.Errorf("failed to create fluentbit client: %w", err)
		}

		fluentAdapter, err := logger_adapter.NewFluentLoggerAdapter(fluentClient, logger_adapter.ParseLogLevel(cfg.FluentBit.Level))
		if err != nil {
			stdoutLogger.Error("Failed to create fluentbit adapter", err, nil)
			fluentClient.Close()
			return nil, nil, err
		}
		activeLoggers = append(activeLoggers, fluentAdapter)
	}

	multiLogger, err := logger_adapter.NewMultiloggerAdapter(activeLoggers...)
	if err != nil {
		if fluentClient != nil {
			fluentClient.Close()
		}
		return nil, nil, fmt.Errorf("failed to create multi-logger: %w", err)
	}

	baseLogger := multiLogger.WithFields(port.Fields{"service_name": cfg.AppName})
	baseLogger.Debug("Logger system initialized", port.Fields{
		"active_loggers": len(activeLoggers), "fluent_enabled": cfg.FluentBit.Enabled,
	})
	return baseLogger, fluentClient, nil
}

// newCacheStore - memory по умолчанию; redis позволяет нескольким процессам делить кэш.
func newCacheStore(ctx context.Context, cfg configs.CacheConfig) (querycache.Store, *redis.Client, error) {
	switch cfg.Backend {
	case "", "memory":
		return querycache.NewMemoryStore(), nil, nil
	case "redis":
		client, err := querycache.NewRedisClient(ctx, querycache.RedisConfig{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		if err != nil {
			return nil, nil, err
		}
		return querycache.NewRedisStore(client), client, nil
	default:
		return nil, nil, fmt.Errorf("unknown cache backend %q", cfg.Backend)
	}
}

// Close дожидается фоновых обновлений кэша и закрывает внешние клиенты.
func (rt *Runtime) Close() {
	if rt.cache != nil {
		rt.cache.Wait()
	}
	if rt.redisClient != nil {
		if err := rt.redisClient.Close(); err != nil {
			rt.Logger.Error("Error closing redis client", err, nil)
		}
	}
	if rt.fluentClient != nil {
		if err := rt.fluentClient.Close(); err != nil {
			fmt.Printf("ERROR: Error closing fluent client: %v\n", err)
		}
	}
}
