package server

import (
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"github.com/BuzzLyutic/todo-app/internal/auth"
	"github.com/BuzzLyutic/todo-app/internal/config"
	"github.com/BuzzLyutic/todo-app/internal/handler"
	"github.com/BuzzLyutic/todo-app/internal/repo"
	"github.com/BuzzLyutic/todo-app/internal/service"
	"github.com/BuzzLyutic/todo-app/internal/view"
)

// NewRouter собирает зависимости и маршруты
func NewRouter(cfg config.Config, pool *pgxpool.Pool, logger *zap.Logger) (http.Handler, error) {
	renderer, err := view.New()
	if err != nil {
		return nil, fmt.Errorf("load templates: %w", err)
	}

	todoRepo := repo.NewTodoRepo(pool)
	userRepo := repo.NewUserRepo(pool)
	sessionRepo := repo.NewSessionRepo(pool)

	tokens := auth.NewTokenManager(cfg.JWTSecret, cfg.SessionTTL)
	todoService := service.NewTodoService(todoRepo)
	userService := service.NewUserService(userRepo)
	sessionService := service.NewSessionService(sessionRepo, userRepo, tokens)

	authMW := auth.NewMiddleware(sessionService, logger, handler.LoginPath)
	todoHandler := handler.NewTodoHandler(todoService, renderer, logger)
	authHandler := handler.NewAuthHandler(userService, sessionService, renderer, logger, cfg.CookieSecure)
	apiHandler := handler.NewAPIHandler(todoService, userService, logger)

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(handler.RequestLogger(logger))
	r.Use(middleware.Recoverer)
	r.Use(handler.SameOrigin(logger))
	r.Use(middleware.Timeout(cfg.RequestTimeout))

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		fmt.Fprintf(w, `{"status":"ok"}`)
	})

	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/todos/", http.StatusFound)
	})

	r.Get(handler.LoginPath, authHandler.LoginForm)
	r.Post(handler.LoginPath, authHandler.Login)
	r.Post("/logout/", authHandler.Logout)
	r.Get("/register/", authHandler.RegisterForm)
	r.Post("/register/", authHandler.Register)

	r.Route("/todos", func(r chi.Router) {
		r.Get("/", authMW.Require(todoHandler.List))
		r.Get("/create/", authMW.Require(todoHandler.CreateForm))
		r.Post("/create/", authMW.Require(todoHandler.Create))
		r.Get("/{id:[0-9]+}/", authMW.Require(todoHandler.Detail))
		r.Get("/{id:[0-9]+}/update/", authMW.Require(todoHandler.UpdateForm))
		r.Post("/{id:[0-9]+}/update/", authMW.Require(todoHandler.Update))
		r.Get("/{id:[0-9]+}/delete/", authMW.Require(todoHandler.DeleteConfirm))
		r.Post("/{id:[0-9]+}/delete/", authMW.Require(todoHandler.Delete))
	})

	r.Route("/api", func(r chi.Router) {
		r.Post("/users/", apiHandler.RegisterUser)
		r.Get("/todos/", authMW.RequireAPI(apiHandler.ListTodos))
		r.Post("/todos/", authMW.RequireAPI(apiHandler.CreateTodo))
		r.Get("/todos/{id:[0-9]+}/", authMW.RequireAPI(apiHandler.GetTodo))
		r.Put("/todos/{id:[0-9]+}/", authMW.RequireAPI(apiHandler.UpdateTodo))
		r.Delete("/todos/{id:[0-9]+}/", authMW.RequireAPI(apiHandler.DeleteTodo))
	})

	return r, nil
}

func New(cfg config.Config, h http.Handler) *http.Server {
	return &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      h,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: cfg.RequestTimeout + 5*time.Second,
	}
}
