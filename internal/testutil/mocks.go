package testutil

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/BuzzLyutic/todo-app/internal/model"
)

// MockTodoRepository - мок репозитория задач
type MockTodoRepository struct {
	mock.Mock
}

func (m *MockTodoRepository) Find(ctx context.Context, id int64) (model.Todo, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(model.Todo), args.Error(1)
}

func (m *MockTodoRepository) FindByOwner(ctx context.Context, ownerID int64) ([]model.Todo, error) {
	args := m.Called(ctx, ownerID)
	return args.Get(0).([]model.Todo), args.Error(1)
}

func (m *MockTodoRepository) Save(ctx context.Context, t model.Todo) (model.Todo, error) {
	args := m.Called(ctx, t)
	return args.Get(0).(model.Todo), args.Error(1)
}

func (m *MockTodoRepository) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockUserRepository - мок репозитория пользователей
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(ctx context.Context, u model.User) (model.User, error) {
	args := m.Called(ctx, u)
	return args.Get(0).(model.User), args.Error(1)
}

func (m *MockUserRepository) Get(ctx context.Context, id int64) (model.User, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(model.User), args.Error(1)
}

func (m *MockUserRepository) GetByUsername(ctx context.Context, username string) (model.User, error) {
	args := m.Called(ctx, username)
	return args.Get(0).(model.User), args.Error(1)
}

// MockSessionRepository - мок репозитория сессий
type MockSessionRepository struct {
	mock.Mock
}

func (m *MockSessionRepository) Create(ctx context.Context, s model.Session) (model.Session, error) {
	args := m.Called(ctx, s)
	return args.Get(0).(model.Session), args.Error(1)
}

func (m *MockSessionRepository) Get(ctx context.Context, id uuid.UUID) (model.Session, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(model.Session), args.Error(1)
}

func (m *MockSessionRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockSessionRepository) DeleteExpired(ctx context.Context, userID int64, now time.Time) (int64, error) {
	args := m.Called(ctx, userID, now)
	return args.Get(0).(int64), args.Error(1)
}
