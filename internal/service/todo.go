package service

import (
	"context"
	"errors"
	"sort"
	"strings"

	"github.com/BuzzLyutic/todo-app/internal/model"
	"github.com/BuzzLyutic/todo-app/internal/repo"
)

var (
	ErrValidation = errors.New("validation error")
)

const msgBlank = "This field may not be blank."

// ValidationError несет ошибки по полям, errors.Is(err, ErrValidation) == true
type ValidationError struct {
	Fields map[string][]string
}

func (e *ValidationError) Error() string {
	names := make([]string, 0, len(e.Fields))
	for name := range e.Fields {
		names = append(names, name)
	}
	sort.Strings(names)
	return "validation error: " + strings.Join(names, ", ")
}

func (e *ValidationError) Unwrap() error {
	return ErrValidation
}

func fieldError(field, msg string) *ValidationError {
	return &ValidationError{Fields: map[string][]string{field: {msg}}}
}

type TodoService struct {
	repo repo.TodoRepository
}

func NewTodoService(repo repo.TodoRepository) *TodoService {
	return &TodoService{repo: repo}
}

func (s *TodoService) List(ctx context.Context, ownerID int64) ([]model.Todo, error) {
	return s.repo.FindByOwner(ctx, ownerID)
}

// Get отдает задачу только владельцу, чужая выглядит как несуществующая
func (s *TodoService) Get(ctx context.Context, ownerID, id int64) (model.Todo, error) {
	t, err := s.repo.Find(ctx, id)
	if err != nil {
		return t, err
	}
	if t.OwnerID != ownerID {
		return model.Todo{}, repo.ErrorNotFound
	}
	return t, nil
}

func (s *TodoService) Create(ctx context.Context, ownerID int64, t model.Todo) (model.Todo, error) {
	if err := s.validate(t); err != nil {
		return t, err
	}

	t.ID = 0
	t.OwnerID = ownerID
	return s.repo.Save(ctx, t)
}

func (s *TodoService) Update(ctx context.Context, ownerID int64, t model.Todo) (model.Todo, error) {
	if err := s.validate(t); err != nil {
		return t, err
	}

	existing, err := s.Get(ctx, ownerID, t.ID)
	if err != nil {
		return t, err
	}

	// Владелец и created_at остаются прежними
	existing.TaskName = t.TaskName
	existing.Status = t.Status
	existing.Priority = t.Priority
	existing.RemainingDays = t.RemainingDays
	existing.Desc = t.Desc
	return s.repo.Save(ctx, existing)
}

func (s *TodoService) Delete(ctx context.Context, ownerID, id int64) error {
	if _, err := s.Get(ctx, ownerID, id); err != nil {
		return err
	}
	return s.repo.Delete(ctx, id)
}

func (s *TodoService) validate(t model.Todo) error {
	if strings.TrimSpace(t.TaskName) == "" {
		return fieldError("Task_name", msgBlank)
	}
	return nil
}
