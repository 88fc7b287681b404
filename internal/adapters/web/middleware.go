package web

import (
	"net/http"
	"net/url"
	"time"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
	"github.com/mohitk58/apnadera-frontend/internal/contextkeys"
	"github.com/mohitk58/apnadera-frontend/internal/core/port"
	"github.com/mohitk58/apnadera-frontend/internal/core/port/usecases_port"
)

// LoggerMiddleware создает контекстный логгер для каждого запроса.
func LoggerMiddleware(logger port.LoggerPort) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			traceID := r.Header.Get("X-Trace-ID")
			if _, err := uuid.Parse(traceID); err != nil {
				traceID = uuid.New().String()
			}

			coreLogger := logger.WithFields(port.Fields{"trace_id": traceID})
			httpLogger := coreLogger.WithFields(port.Fields{
				"http_method": r.Method,
				"http_path":   r.URL.Path,
				"remote_addr": r.RemoteAddr,
			})

			ctx := r.Context()
			ctx = contextkeys.ContextWithLogger(ctx, coreLogger)
			ctx = contextkeys.ContextWithTraceID(ctx, traceID)

			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			startTime := time.Now()

			httpLogger.Debug("Request started", nil)

			next.ServeHTTP(ww, r.WithContext(ctx))

			httpLogger.Info("Request finished", port.Fields{
				"status_code":   ww.Status(),
				"bytes_written": ww.BytesWritten(),
				"duration_ms":   time.Since(startTime).Milliseconds(),
			})
		})
	}
}

// SessionMiddleware восстанавливает сессию из cookie и кладет ее в контекст запроса.
// Отложенные уведомления (flash) переносятся в сессию.
func SessionMiddleware(auth usecases_port.AuthContextPort, sessions SessionStore) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()

			sess, err := auth.Bootstrap(ctx, sessions.TokenStore(w, r))
			if err != nil {
				contextkeys.LoggerFromContext(ctx).Warn("Session bootstrap failed", port.Fields{"error": err.Error()})
			}
			for _, n := range sessions.PopNotices(w, r) {
				sess.Notify(n.Kind, n.Message)
			}

			// r.Context() берется заново: хранилище cookie кэширует сессию в контексте запроса,
			// и обработчик должен увидеть уже изменённое состояние
			next.ServeHTTP(w, r.WithContext(contextkeys.ContextWithSession(r.Context(), sess)))
		})
	}
}

// RequireAuth закрывает защищенные страницы: пока сессия загружается, отдается
// loading (503); без входа - редирект на /login с возвратом на исходную страницу.
func RequireAuth(loading http.Handler) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			sess := contextkeys.SessionFromContext(r.Context())
			if sess.Loading {
				loading.ServeHTTP(w, r)
				return
			}
			if !sess.IsAuthenticated() {
				http.Redirect(w, r, "/login?next="+url.QueryEscape(r.URL.RequestURI()), http.StatusSeeOther)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
