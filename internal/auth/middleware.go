package auth

import (
	"context"
	"errors"
	"net/http"
	"net/url"
	"strings"

	"go.uber.org/zap"

	"github.com/BuzzLyutic/todo-app/internal/model"
	"github.com/BuzzLyutic/todo-app/pkg/respond"
)

const CookieName = "session"

var ErrUnauthenticated = errors.New("unauthenticated")

// Resolver восстанавливает пользователя по токену из cookie.
// Любая причина отказа в доступе должна оборачивать ErrUnauthenticated.
type Resolver interface {
	Resolve(ctx context.Context, token string) (model.User, error)
}

// HandlerFunc получает пользователя явным параметром
type HandlerFunc func(w http.ResponseWriter, r *http.Request, user model.User)

type Middleware struct {
	resolver  Resolver
	logger    *zap.Logger
	loginPath string
}

func NewMiddleware(resolver Resolver, logger *zap.Logger, loginPath string) *Middleware {
	return &Middleware{
		resolver:  resolver,
		logger:    logger,
		loginPath: loginPath,
	}
}

// Require пускает только залогиненных, остальных отправляет на логин с ?next=
func (m *Middleware) Require(h HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user, err := m.identify(r)
		switch {
		case err == nil:
			h(w, r, user)
		case errors.Is(err, ErrUnauthenticated):
			http.Redirect(w, r, LoginURL(m.loginPath, r.URL.RequestURI()), http.StatusFound)
		default:
			m.logger.Error("failed to resolve session", zap.Error(err))
			http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		}
	}
}

// RequireAPI то же самое для JSON: 401 вместо редиректа
func (m *Middleware) RequireAPI(h HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user, err := m.identify(r)
		switch {
		case err == nil:
			h(w, r, user)
		case errors.Is(err, ErrUnauthenticated):
			respond.Error(w, r, http.StatusUnauthorized, "authentication required")
		default:
			m.logger.Error("failed to resolve session", zap.Error(err))
			respond.Error(w, r, http.StatusInternalServerError, "internal error")
		}
	}
}

func (m *Middleware) identify(r *http.Request) (model.User, error) {
	c, err := r.Cookie(CookieName)
	if err != nil || c.Value == "" {
		return model.User{}, ErrUnauthenticated
	}
	return m.resolver.Resolve(r.Context(), c.Value)
}

// LoginURL собирает адрес логина. Слэши в next не экранируются.
func LoginURL(loginPath, next string) string {
	if next == "" {
		return loginPath
	}
	return loginPath + "?next=" + strings.ReplaceAll(url.QueryEscape(next), "%2F", "/")
}

// SafeNext возвращает next, только если это локальный путь
func SafeNext(next string) string {
	if !strings.HasPrefix(next, "/") || strings.HasPrefix(next, "//") || strings.HasPrefix(next, "/\\") {
		return ""
	}
	u, err := url.Parse(next)
	if err != nil || u.Scheme != "" || u.Host != "" {
		return ""
	}
	return next
}
