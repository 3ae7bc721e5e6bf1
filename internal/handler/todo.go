package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/BuzzLyutic/todo-app/internal/model"
	"github.com/BuzzLyutic/todo-app/internal/repo"
	"github.com/BuzzLyutic/todo-app/internal/serializer"
	"github.com/BuzzLyutic/todo-app/internal/service"
	"github.com/BuzzLyutic/todo-app/internal/view"
)

const todoListPath = "/todos/"

// Renderer рендерит html-шаблон по имени
type Renderer interface {
	Render(w http.ResponseWriter, status int, name string, data view.Data) error
}

type TodoHandler struct {
	service  *service.TodoService
	renderer Renderer
	logger   *zap.Logger
}

func NewTodoHandler(srv *service.TodoService, renderer Renderer, logger *zap.Logger) *TodoHandler {
	return &TodoHandler{
		service:  srv,
		renderer: renderer,
		logger:   logger,
	}
}

func (h *TodoHandler) List(w http.ResponseWriter, r *http.Request, user model.User) {
	todos, err := h.service.List(r.Context(), user.ID)
	if err != nil {
		h.handleErrors(w, r, err)
		return
	}
	h.render(w, http.StatusOK, view.ListTodo, view.Data{"user": user, "todos": todos})
}

func (h *TodoHandler) Detail(w http.ResponseWriter, r *http.Request, user model.User) {
	todo, ok := h.load(w, r, user)
	if !ok {
		return
	}
	h.render(w, http.StatusOK, view.TodoDetail, view.Data{"user": user, "object": todo})
}

func (h *TodoHandler) CreateForm(w http.ResponseWriter, r *http.Request, user model.User) {
	h.renderForm(w, user, nil, view.Form{})
}

func (h *TodoHandler) Create(w http.ResponseWriter, r *http.Request, user model.User) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}

	data := serializer.FromForm(r.PostForm)
	s := serializer.NewTodoSerializer(data)
	if !s.IsValid() {
		h.renderForm(w, user, nil, todoForm(data, s.Errors()))
		return
	}

	if _, err := h.service.Create(r.Context(), user.ID, s.Validated()); err != nil {
		var verr *service.ValidationError
		if errors.As(err, &verr) {
			h.renderForm(w, user, nil, todoForm(data, verr.Fields))
			return
		}
		h.handleErrors(w, r, err)
		return
	}

	http.Redirect(w, r, todoListPath, http.StatusFound)
}

func (h *TodoHandler) UpdateForm(w http.ResponseWriter, r *http.Request, user model.User) {
	todo, ok := h.load(w, r, user)
	if !ok {
		return
	}
	h.renderForm(w, user, &todo, view.Form{Values: todoValues(todo)})
}

func (h *TodoHandler) Update(w http.ResponseWriter, r *http.Request, user model.User) {
	todo, ok := h.load(w, r, user)
	if !ok {
		return
	}
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}

	data := serializer.FromForm(r.PostForm)
	s := serializer.NewTodoSerializer(data)
	if !s.IsValid() {
		h.renderForm(w, user, &todo, todoForm(data, s.Errors()))
		return
	}

	changed := s.Validated()
	changed.ID = todo.ID
	if _, err := h.service.Update(r.Context(), user.ID, changed); err != nil {
		var verr *service.ValidationError
		if errors.As(err, &verr) {
			h.renderForm(w, user, &todo, todoForm(data, verr.Fields))
			return
		}
		h.handleErrors(w, r, err)
		return
	}

	http.Redirect(w, r, todoListPath, http.StatusFound)
}

func (h *TodoHandler) DeleteConfirm(w http.ResponseWriter, r *http.Request, user model.User) {
	todo, ok := h.load(w, r, user)
	if !ok {
		return
	}
	h.render(w, http.StatusOK, view.TodoConfirmDelete, view.Data{"user": user, "object": todo})
}

func (h *TodoHandler) Delete(w http.ResponseWriter, r *http.Request, user model.User) {
	id, err := parseID(r)
	if err != nil {
		http.NotFound(w, r)
		return
	}

	if err := h.service.Delete(r.Context(), user.ID, id); err != nil {
		h.handleErrors(w, r, err)
		return
	}

	http.Redirect(w, r, todoListPath, http.StatusFound)
}

// load достает задачу из {id}, при ошибке ответ уже записан
func (h *TodoHandler) load(w http.ResponseWriter, r *http.Request, user model.User) (model.Todo, bool) {
	id, err := parseID(r)
	if err != nil {
		http.NotFound(w, r)
		return model.Todo{}, false
	}

	todo, err := h.service.Get(r.Context(), user.ID, id)
	if err != nil {
		h.handleErrors(w, r, err)
		return model.Todo{}, false
	}
	return todo, true
}

func (h *TodoHandler) renderForm(w http.ResponseWriter, user model.User, object *model.Todo, form view.Form) {
	data := view.Data{
		"user":       user,
		"form":       form,
		"statuses":   model.SuggestedStatuses,
		"priorities": model.SuggestedPriorities,
	}
	if object != nil {
		data["object"] = *object
	}
	h.render(w, http.StatusOK, view.TodoForm, data)
}

func (h *TodoHandler) render(w http.ResponseWriter, status int, name string, data view.Data) {
	if err := h.renderer.Render(w, status, name, data); err != nil {
		h.logger.Error("failed to render template", zap.String("template", name), zap.Error(err))
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
	}
}

func (h *TodoHandler) handleErrors(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, repo.ErrorNotFound):
		http.NotFound(w, r)
	default:
		h.logger.Error("internal error", zap.Error(err))
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
	}
}

func parseID(r *http.Request) (int64, error) {
	return strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
}

var todoFields = []string{"Task_name", "status", "priority", "remaining_days", "desc"}

func todoForm(data serializer.Data, errs map[string][]string) view.Form {
	values := make(map[string]string, len(todoFields))
	for _, f := range todoFields {
		values[f] = data.String(f)
	}
	return view.Form{Values: values, Errors: errs}
}

func todoValues(t model.Todo) map[string]string {
	return map[string]string{
		"Task_name":      t.TaskName,
		"status":         t.Status,
		"priority":       t.Priority,
		"remaining_days": strconv.Itoa(t.RemainingDays),
		"desc":           t.Desc,
	}
}
