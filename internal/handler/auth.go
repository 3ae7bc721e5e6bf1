package handler

import (
	"errors"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/BuzzLyutic/todo-app/internal/auth"
	"github.com/BuzzLyutic/todo-app/internal/serializer"
	"github.com/BuzzLyutic/todo-app/internal/service"
	"github.com/BuzzLyutic/todo-app/internal/view"
)

const (
	LoginPath = "/login/"

	msgBadCredentials = "Please enter a correct username and password. Note that both fields may be case-sensitive."
)

type AuthHandler struct {
	users        *service.UserService
	sessions     *service.SessionService
	renderer     Renderer
	logger       *zap.Logger
	cookieSecure bool
}

func NewAuthHandler(users *service.UserService, sessions *service.SessionService, renderer Renderer, logger *zap.Logger, cookieSecure bool) *AuthHandler {
	return &AuthHandler{
		users:        users,
		sessions:     sessions,
		renderer:     renderer,
		logger:       logger,
		cookieSecure: cookieSecure,
	}
}

func (h *AuthHandler) LoginForm(w http.ResponseWriter, r *http.Request) {
	h.render(w, view.Login, view.Data{"form": view.Form{}, "next": r.URL.Query().Get("next")})
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}

	username := r.PostForm.Get("username")
	next := r.PostForm.Get("next")
	if next == "" {
		next = r.URL.Query().Get("next")
	}

	user, err := h.users.Authenticate(r.Context(), username, r.PostForm.Get("password"))
	if errors.Is(err, service.ErrInvalidCredentials) {
		h.render(w, view.Login, view.Data{
			"form": view.Form{
				Values:         map[string]string{"username": username},
				NonFieldErrors: []string{msgBadCredentials},
			},
			"next": next,
		})
		return
	}
	if err != nil {
		h.internalError(w, err)
		return
	}

	token, expiresAt, err := h.sessions.Start(r.Context(), user)
	if err != nil {
		h.internalError(w, err)
		return
	}
	h.logger.Info("user logged in", zap.Int64("user_id", user.ID))

	http.SetCookie(w, h.cookie(token, expiresAt))

	target := auth.SafeNext(next)
	if target == "" {
		target = todoListPath
	}
	http.Redirect(w, r, target, http.StatusFound)
}

func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	if c, err := r.Cookie(auth.CookieName); err == nil {
		if err := h.sessions.End(r.Context(), c.Value); err != nil {
			h.logger.Warn("failed to end session", zap.Error(err))
		}
	}

	expired := h.cookie("", time.Unix(0, 0))
	expired.MaxAge = -1
	http.SetCookie(w, expired)
	http.Redirect(w, r, LoginPath, http.StatusFound)
}

func (h *AuthHandler) RegisterForm(w http.ResponseWriter, r *http.Request) {
	h.render(w, view.Register, view.Data{"form": view.Form{}})
}

func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}

	data := serializer.FromForm(r.PostForm)
	s := serializer.NewUserSerializer(data)
	user, err := s.Save(r.Context(), h.users)
	if errors.Is(err, serializer.ErrInvalid) {
		h.render(w, view.Register, view.Data{"form": view.Form{
			Values: map[string]string{"username": data.String("username"), "email": data.String("email")},
			Errors: s.Errors(),
		}})
		return
	}
	if err != nil {
		h.internalError(w, err)
		return
	}

	h.logger.Info("user registered", zap.Int64("user_id", user.ID), zap.String("username", user.Username))
	http.Redirect(w, r, LoginPath, http.StatusFound)
}

func (h *AuthHandler) cookie(value string, expires time.Time) *http.Cookie {
	return &http.Cookie{
		Name:     auth.CookieName,
		Value:    value,
		Path:     "/",
		Expires:  expires,
		HttpOnly: true,
		Secure:   h.cookieSecure,
		SameSite: http.SameSiteLaxMode,
	}
}

func (h *AuthHandler) render(w http.ResponseWriter, name string, data view.Data) {
	if err := h.renderer.Render(w, http.StatusOK, name, data); err != nil {
		h.internalError(w, err)
	}
}

func (h *AuthHandler) internalError(w http.ResponseWriter, err error) {
	h.logger.Error("internal error", zap.Error(err))
	http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
}
