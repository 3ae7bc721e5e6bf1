package handler

import (
	"errors"
	"fmt"
	"net/http"

	"go.uber.org/zap"

	"github.com/BuzzLyutic/todo-app/internal/model"
	"github.com/BuzzLyutic/todo-app/internal/repo"
	"github.com/BuzzLyutic/todo-app/internal/serializer"
	"github.com/BuzzLyutic/todo-app/internal/service"
	"github.com/BuzzLyutic/todo-app/pkg/respond"
)

// APIHandler - JSON-представления задач и регистрация
type APIHandler struct {
	todos  *service.TodoService
	users  *service.UserService
	logger *zap.Logger
}

func NewAPIHandler(todos *service.TodoService, users *service.UserService, logger *zap.Logger) *APIHandler {
	return &APIHandler{
		todos:  todos,
		users:  users,
		logger: logger,
	}
}

func (h *APIHandler) RegisterUser(w http.ResponseWriter, r *http.Request) {
	data, ok := h.decode(w, r)
	if !ok {
		return
	}

	s := serializer.NewUserSerializer(data)
	user, err := s.Save(r.Context(), h.users)
	if errors.Is(err, serializer.ErrInvalid) {
		respond.Invalid(w, r, s.Errors())
		return
	}
	if err != nil {
		h.handleErrors(w, r, err)
		return
	}

	respond.JSON(w, r, http.StatusCreated, serializer.UserToRepresentation(user))
}

func (h *APIHandler) ListTodos(w http.ResponseWriter, r *http.Request, user model.User) {
	todos, err := h.todos.List(r.Context(), user.ID)
	if err != nil {
		h.handleErrors(w, r, err)
		return
	}
	respond.JSON(w, r, http.StatusOK, serializer.TodosToRepresentation(todos))
}

func (h *APIHandler) CreateTodo(w http.ResponseWriter, r *http.Request, user model.User) {
	data, ok := h.decode(w, r)
	if !ok {
		return
	}

	s := serializer.NewTodoSerializer(data)
	if !s.IsValid() {
		respond.Invalid(w, r, s.Errors())
		return
	}

	todo, err := h.todos.Create(r.Context(), user.ID, s.Validated())
	if err != nil {
		h.handleErrors(w, r, err)
		return
	}

	w.Header().Set("Location", fmt.Sprintf("/api/todos/%d/", todo.ID))
	respond.JSON(w, r, http.StatusCreated, serializer.TodoToRepresentation(todo))
}

func (h *APIHandler) GetTodo(w http.ResponseWriter, r *http.Request, user model.User) {
	id, err := parseID(r)
	if err != nil {
		respond.Error(w, r, http.StatusNotFound, "not found")
		return
	}

	todo, err := h.todos.Get(r.Context(), user.ID, id)
	if err != nil {
		h.handleErrors(w, r, err)
		return
	}
	respond.JSON(w, r, http.StatusOK, serializer.TodoToRepresentation(todo))
}

func (h *APIHandler) UpdateTodo(w http.ResponseWriter, r *http.Request, user model.User) {
	id, err := parseID(r)
	if err != nil {
		respond.Error(w, r, http.StatusNotFound, "not found")
		return
	}

	data, ok := h.decode(w, r)
	if !ok {
		return
	}

	s := serializer.NewTodoSerializer(data)
	if !s.IsValid() {
		respond.Invalid(w, r, s.Errors())
		return
	}

	changed := s.Validated()
	changed.ID = id
	todo, err := h.todos.Update(r.Context(), user.ID, changed)
	if err != nil {
		h.handleErrors(w, r, err)
		return
	}
	respond.JSON(w, r, http.StatusOK, serializer.TodoToRepresentation(todo))
}

func (h *APIHandler) DeleteTodo(w http.ResponseWriter, r *http.Request, user model.User) {
	id, err := parseID(r)
	if err != nil {
		respond.Error(w, r, http.StatusNotFound, "not found")
		return
	}

	if err := h.todos.Delete(r.Context(), user.ID, id); err != nil {
		h.handleErrors(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *APIHandler) decode(w http.ResponseWriter, r *http.Request) (serializer.Data, bool) {
	if r.ContentLength == 0 {
		respond.Error(w, r, http.StatusBadRequest, "empty request body")
		return nil, false
	}

	data, err := serializer.FromJSON(r.Body)
	if err != nil {
		h.logger.Debug("failed to decode json", zap.Error(err))
		respond.Error(w, r, http.StatusBadRequest, fmt.Sprintf("invalid json: %v", err))
		return nil, false
	}
	return data, true
}

func (h *APIHandler) handleErrors(w http.ResponseWriter, r *http.Request, err error) {
	var verr *service.ValidationError
	switch {
	case errors.As(err, &verr):
		respond.Invalid(w, r, verr.Fields)
	case errors.Is(err, repo.ErrorNotFound):
		respond.Error(w, r, http.StatusNotFound, "not found")
	case errors.Is(err, repo.ErrorConflict):
		respond.Error(w, r, http.StatusConflict, "conflict")
	case errors.Is(err, service.ErrValidation):
		respond.Error(w, r, http.StatusBadRequest, "validation error")
	default:
		h.logger.Error("internal error", zap.Error(err))
		respond.Error(w, r, http.StatusInternalServerError, "internal error")
	}
}
