package serializer

import (
	"time"

	"github.com/BuzzLyutic/todo-app/internal/model"
)

// TodoInput - поля, которые клиент может прислать.
// created_at и updated_at только для чтения и здесь не участвуют.
type TodoInput struct {
	TaskName      string `json:"Task_name" validate:"required"`
	Status        string `json:"status"`
	Priority      string `json:"priority"`
	RemainingDays int    `json:"remaining_days"`
	Desc          string `json:"desc"`
}

type TodoRepresentation struct {
	ID            int64     `json:"id"`
	TaskName      string    `json:"Task_name"`
	Status        string    `json:"status"`
	Priority      string    `json:"priority"`
	RemainingDays int       `json:"remaining_days"`
	Desc          string    `json:"desc"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

type TodoSerializer struct {
	data   Data
	input  TodoInput
	errors Errors
}

func NewTodoSerializer(data Data) *TodoSerializer {
	return &TodoSerializer{data: data}
}

func (s *TodoSerializer) IsValid() bool {
	if s.errors == nil {
		s.run()
	}
	return len(s.errors) == 0
}

func (s *TodoSerializer) Errors() Errors {
	s.IsValid()
	return s.errors
}

// Validated возвращает модель без id и владельца, их ставит сервис
func (s *TodoSerializer) Validated() model.Todo {
	return model.Todo{
		TaskName:      s.input.TaskName,
		Status:        s.input.Status,
		Priority:      s.input.Priority,
		RemainingDays: s.input.RemainingDays,
		Desc:          s.input.Desc,
	}
}

func (s *TodoSerializer) run() {
	errs := Errors{}
	s.input = TodoInput{
		TaskName:      s.data.str(errs, "Task_name", true),
		Status:        s.data.str(errs, "status", true),
		Priority:      s.data.str(errs, "priority", true),
		RemainingDays: s.data.integer(errs, "remaining_days"),
		Desc:          s.data.str(errs, "desc", true),
	}
	check(s.input, errs, func(field string) bool {
		v, ok := s.data[field]
		return ok && v != nil
	})
	s.errors = errs
}

func TodoToRepresentation(t model.Todo) TodoRepresentation {
	return TodoRepresentation{
		ID:            t.ID,
		TaskName:      t.TaskName,
		Status:        t.Status,
		Priority:      t.Priority,
		RemainingDays: t.RemainingDays,
		Desc:          t.Desc,
		CreatedAt:     t.CreatedAt,
		UpdatedAt:     t.UpdatedAt,
	}
}

func TodosToRepresentation(todos []model.Todo) []TodoRepresentation {
	out := make([]TodoRepresentation, 0, len(todos))
	for _, t := range todos {
		out = append(out, TodoToRepresentation(t))
	}
	return out
}
