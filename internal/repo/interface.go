package repo

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/BuzzLyutic/todo-app/internal/model"
)

// TodoRepository определяет интерфейс для работы с задачами
type TodoRepository interface {
	Find(ctx context.Context, id int64) (model.Todo, error)
	FindByOwner(ctx context.Context, ownerID int64) ([]model.Todo, error)
	// Save создает запись при ID == 0, иначе перезаписывает поля существующей.
	// Владелец при обновлении не меняется.
	Save(ctx context.Context, t model.Todo) (model.Todo, error)
	Delete(ctx context.Context, id int64) error
}

type UserRepository interface {
	Create(ctx context.Context, u model.User) (model.User, error)
	Get(ctx context.Context, id int64) (model.User, error)
	GetByUsername(ctx context.Context, username string) (model.User, error)
}

type SessionRepository interface {
	Create(ctx context.Context, s model.Session) (model.Session, error)
	Get(ctx context.Context, id uuid.UUID) (model.Session, error)
	Delete(ctx context.Context, id uuid.UUID) error
	DeleteExpired(ctx context.Context, userID int64, now time.Time) (int64, error)
}
