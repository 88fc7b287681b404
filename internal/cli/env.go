package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/google/uuid"
	"github.com/mohitk58/apnadera-frontend/internal"
	"github.com/mohitk58/apnadera-frontend/internal/adapters/session"
	"github.com/mohitk58/apnadera-frontend/internal/configs"
	"github.com/mohitk58/apnadera-frontend/internal/contextkeys"
	"github.com/mohitk58/apnadera-frontend/internal/core/domain"
	"github.com/mohitk58/apnadera-frontend/internal/core/port"
	"github.com/mohitk58/apnadera-frontend/internal/core/port/usecases_port"
)

// GlobalOptions - флаги корневой команды.
type GlobalOptions struct {
	Verbose bool
	EnvFile string
}

// Env - зависимости одной команды.
type Env struct {
	UseCases usecases_port.UseCases
	Store    port.TokenStorePort
	Logger   port.LoggerPort
	Support  domain.Recipient
	close    func()
}

func (e *Env) Close() {
	if e.close != nil {
		e.close()
	}
}

// EnvFactory собирает Env перед запуском команды.
type EnvFactory func(ctx context.Context, opts GlobalOptions) (*Env, error)

// DefaultEnv читает конфигурацию из окружения (и .env) и собирает зависимости.
func DefaultEnv(ctx context.Context, opts GlobalOptions) (*Env, error) {
	var envFiles []string
	if opts.EnvFile != "" {
		envFiles = append(envFiles, opts.EnvFile)
	}
	cfg, err := configs.LoadConfig(envFiles...)
	if err != nil {
		return nil, fmt.Errorf("error loading configuration: %w", err)
	}
	return NewEnv(ctx, cfg, opts, os.Stderr)
}

// NewEnv - логи терминального клиента идут в stderr; без --verbose только предупреждения и ошибки.
func NewEnv(ctx context.Context, cfg *configs.AppConfig, opts GlobalOptions, logWriter io.Writer) (*Env, error) {
	level := "warn"
	if opts.Verbose {
		level = "debug"
	}
	rt, err := internal.NewRuntime(ctx, cfg, internal.RuntimeOptions{LogWriter: logWriter, LogLevel: level})
	if err != nil {
		return nil, err
	}
	return &Env{
		UseCases: rt.UseCases,
		Store:    session.NewFileTokenStore(cfg.Session.File),
		Logger:   rt.Logger.WithFields(port.Fields{"component": "cli"}),
		Support:  rt.Support,
		close:    rt.Close,
	}, nil
}

var errNotLoggedIn = errors.New("you are not logged in, run `apnadera login` first")

// inSession восстанавливает сессию из файла, выполняет действие и печатает уведомления.
// 401 от API удаляет сохраненный токен.
func inSession(ctx context.Context, env *Env, errOut io.Writer, action func(ctx context.Context, sess *domain.Session) error) error {
	return runSession(ctx, env, errOut, true, action)
}

// signingIn - то же для входа и регистрации: здесь 401 означает неверные учетные данные.
func signingIn(ctx context.Context, env *Env, errOut io.Writer, action func(ctx context.Context, sess *domain.Session) error) error {
	return runSession(ctx, env, errOut, false, action)
}

func runSession(ctx context.Context, env *Env, errOut io.Writer, expireOn401 bool, action func(ctx context.Context, sess *domain.Session) error) error {
	ctx = contextkeys.ContextWithLogger(ctx, env.Logger)
	ctx = contextkeys.ContextWithTraceID(ctx, uuid.New().String())

	sess, err := env.UseCases.Auth.Bootstrap(ctx, env.Store)
	if err != nil {
		return fmt.Errorf("could not restore session: %w", err)
	}

	err = action(ctx, sess)
	if expireOn401 && errors.Is(err, domain.ErrUnauthorized) {
		if expErr := env.UseCases.Auth.Expire(ctx, sess, env.Store); expErr != nil {
			env.Logger.Error("Failed to clear expired session", expErr, nil)
		}
	}
	printNotices(errOut, sess.DrainNotices())

	if errors.Is(err, domain.ErrLoginRequired) {
		return errNotLoggedIn
	}
	return err
}
