package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/mohitk58/apnadera-frontend/internal/contextkeys"
	"github.com/mohitk58/apnadera-frontend/internal/core/domain"
	"github.com/mohitk58/apnadera-frontend/internal/core/port"
)

const (
	msgLoggedIn           = "Login successful!"
	msgLoginFailed        = "Login failed"
	msgRegistered         = "Registration successful!"
	msgRegisterFailed     = "Registration failed"
	msgLoggedOut          = "Logged out successfully"
	msgSessionExpired     = "Your session has expired. Please log in again."
	msgProfileUpdated     = "Profile updated successfully!"
	msgProfileUpdateFails = "Failed to update profile"
)

// AuthContext управляет сессией: загрузка из хранилища токена, вход, выход, профиль.
type AuthContext struct {
	auth  port.AuthAPIPort
	cache port.QueryCachePort
	now   func() time.Time
}

func NewAuthContext(auth port.AuthAPIPort, cache port.QueryCachePort) *AuthContext {
	return &AuthContext{auth: auth, cache: cache, now: time.Now}
}

// Bootstrap восстанавливает сессию из хранилища.
// Просроченный JWT отбрасывается без сетевого запроса; 401 от /auth/me очищает хранилище.
// Если профиль не удалось получить по другой причине, сессия остается в состоянии загрузки
// и возвращается ошибка.
func (a *AuthContext) Bootstrap(ctx context.Context, store port.TokenStorePort) (*domain.Session, error) {
	ucLogger := contextkeys.LoggerFromContext(ctx).WithFields(port.Fields{"use_case": "BootstrapSession"})
	sess := &domain.Session{Loading: true}

	token, err := store.LoadToken(ctx)
	if err != nil {
		sess.Loading = false
		ucLogger.Warn("Failed to read stored token", port.Fields{"error": err.Error()})
		return sess, fmt.Errorf("failed to load token: %w", err)
	}
	if token == "" {
		sess.Loading = false
		return sess, nil
	}

	if tokenExpired(token, a.now()) {
		ucLogger.Info("Stored token has expired, discarding", nil)
		sess.Loading = false
		if err := store.ClearToken(ctx); err != nil {
			ucLogger.Warn("Failed to clear expired token", port.Fields{"error": err.Error()})
		}
		return sess, nil
	}

	candidate := &domain.Session{Token: token}
	user, err := cachedQuery(ctx, a.cache, domain.CurrentUserKey(token), func(ctx context.Context) (*domain.User, error) {
		return a.auth.CurrentUser(ctx, candidate)
	})
	if err != nil {
		if errors.Is(err, domain.ErrUnauthorized) {
			ucLogger.Info("Stored token rejected by API", nil)
			sess.Loading = false
			if err := store.ClearToken(ctx); err != nil {
				ucLogger.Warn("Failed to clear rejected token", port.Fields{"error": err.Error()})
			}
			return sess, nil
		}
		sess.Token = token
		ucLogger.Error("Failed to resolve current user", err, nil)
		return sess, err
	}
	if user == nil {
		sess.Loading = false
		return sess, fmt.Errorf("%w: empty current user response", domain.ErrTransport)
	}

	sess.SignIn(token, *user)
	ucLogger.Debug("Session restored", port.Fields{"user_id": user.ID.String()})
	return sess, nil
}

// tokenExpired читает exp без проверки подписи: ключа у клиента нет, подпись проверяет сервер.
// Непрозрачный (не JWT) токен считается действующим.
func tokenExpired(token string, now time.Time) bool {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return false
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return false
	}
	return !now.Before(exp.Time)
}

func (a *AuthContext) Login(ctx context.Context, sess *domain.Session, store port.TokenStorePort, creds domain.Credentials) error {
	ucLogger := contextkeys.LoggerFromContext(ctx).WithFields(port.Fields{"use_case": "Login"})

	if err := validateForm(creds); err != nil {
		return err
	}

	res, err := a.auth.Login(ctx, creds)
	if err != nil {
		ucLogger.Warn("Login rejected", port.Fields{"error": err.Error()})
		sess.Notify(domain.NoticeError, domain.UserMessage(err, msgLoginFailed))
		return err
	}
	if err := a.signIn(ctx, sess, store, res); err != nil {
		return err
	}

	sess.Notify(domain.NoticeSuccess, msgLoggedIn)
	ucLogger.Info("User logged in", port.Fields{"user_id": res.User.ID.String()})
	return nil
}

func (a *AuthContext) Register(ctx context.Context, sess *domain.Session, store port.TokenStorePort, reg domain.Registration) error {
	ucLogger := contextkeys.LoggerFromContext(ctx).WithFields(port.Fields{"use_case": "Register"})

	if reg.Role == "" {
		reg.Role = domain.RoleBuyer
	}
	if err := validateForm(reg); err != nil {
		return err
	}

	res, err := a.auth.Register(ctx, reg)
	if err != nil {
		ucLogger.Warn("Registration rejected", port.Fields{"error": err.Error()})
		if !errors.Is(err, domain.ErrValidation) {
			sess.Notify(domain.NoticeError, domain.UserMessage(err, msgRegisterFailed))
		}
		return err
	}
	if err := a.signIn(ctx, sess, store, res); err != nil {
		return err
	}

	sess.Notify(domain.NoticeSuccess, msgRegistered)
	ucLogger.Info("User registered", port.Fields{"user_id": res.User.ID.String()})
	return nil
}

func (a *AuthContext) signIn(ctx context.Context, sess *domain.Session, store port.TokenStorePort, res *domain.AuthResult) error {
	if err := store.SaveToken(ctx, res.Token); err != nil {
		return fmt.Errorf("failed to save token: %w", err)
	}
	sess.SignIn(res.Token, res.User)
	return nil
}

// Logout сбрасывает токен и пользователя одним действием и забывает запросы пользователя.
func (a *AuthContext) Logout(ctx context.Context, sess *domain.Session, store port.TokenStorePort) error {
	if err := a.dropSession(ctx, sess, store); err != nil {
		return err
	}
	sess.Notify(domain.NoticeSuccess, msgLoggedOut)
	return nil
}

func (a *AuthContext) Expire(ctx context.Context, sess *domain.Session, store port.TokenStorePort) error {
	contextkeys.LoggerFromContext(ctx).Info("Session rejected by API, signing out", port.Fields{
		"user_id": sess.UserID().String(),
	})
	if err := a.dropSession(ctx, sess, store); err != nil {
		return err
	}
	sess.Notify(domain.NoticeError, msgSessionExpired)
	return nil
}

func (a *AuthContext) dropSession(ctx context.Context, sess *domain.Session, store port.TokenStorePort) error {
	token, userID := sess.BearerToken(), sess.UserID()
	sess.Clear()

	if err := store.ClearToken(ctx); err != nil {
		return fmt.Errorf("failed to clear token: %w", err)
	}

	keys := []domain.QueryKey{domain.CurrentUserKey(token)}
	if !userID.IsZero() {
		keys = append(keys,
			domain.UserPropertiesKey(userID),
			domain.UserFavoritesKey(userID),
			domain.UserStatsKey(userID),
		)
	}
	if err := a.cache.Forget(ctx, keys...); err != nil {
		contextkeys.LoggerFromContext(ctx).Warn("Failed to drop cached user queries", port.Fields{"error": err.Error()})
	}
	return nil
}

// UpdateProfile отправляет изменения профиля и накладывает ответ на текущего пользователя.
func (a *AuthContext) UpdateProfile(ctx context.Context, sess *domain.Session, upd domain.ProfileUpdate) error {
	if !sess.IsAuthenticated() {
		return domain.ErrLoginRequired
	}
	ucLogger := contextkeys.LoggerFromContext(ctx).WithFields(port.Fields{
		"use_case": "UpdateProfile",
		"user_id":  sess.UserID().String(),
	})

	if err := validateForm(upd); err != nil {
		return err
	}

	updated, err := a.auth.UpdateProfile(ctx, sess, upd)
	if err != nil {
		ucLogger.Error("Failed to update profile", err, nil)
		notifyFailure(sess, err, msgProfileUpdateFails)
		return err
	}
	if updated != nil {
		sess.User.Merge(*updated)
	}

	invalidate(ctx, a.cache, domain.MutationUpdateProfile, sess.UserID(), ucLogger)
	sess.Notify(domain.NoticeSuccess, msgProfileUpdated)
	ucLogger.Info("Use case finished successfully", nil)
	return nil
}
