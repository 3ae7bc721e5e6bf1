package repo

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/BuzzLyutic/todo-app/internal/model"
)

var (
	ErrorNotFound = errors.New("not found")
	ErrorConflict = errors.New("conflict")
)

const todoColumns = `id, user_id, task_name, status, priority, remaining_days, description, created_at, updated_at`

type TodoRepo struct { // Репозиторий для работы непосредственно с БД
	pool *pgxpool.Pool
}

func NewTodoRepo(pool *pgxpool.Pool) *TodoRepo {
	return &TodoRepo{
		pool: pool,
	}
}

func (r *TodoRepo) Find(ctx context.Context, id int64) (model.Todo, error) {
	row := r.pool.QueryRow(ctx, `SELECT `+todoColumns+` FROM todos WHERE id = $1`, id)
	t, err := scanTodo(row)
	return t, mapError(err)
}

func (r *TodoRepo) FindByOwner(ctx context.Context, ownerID int64) ([]model.Todo, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+todoColumns+`
		FROM todos
		WHERE user_id = $1
		ORDER BY id
	`, ownerID)
	if err != nil {
		return nil, fmt.Errorf("query todos: %w", err)
	}
	defer rows.Close()

	todos := make([]model.Todo, 0)
	for rows.Next() {
		t, err := scanTodo(rows)
		if err != nil {
			return nil, err
		}
		todos = append(todos, t)
	}
	return todos, rows.Err()
}

func (r *TodoRepo) Save(ctx context.Context, t model.Todo) (model.Todo, error) {
	if t.ID == 0 {
		return r.insert(ctx, t)
	}

	row := r.pool.QueryRow(ctx, `
		UPDATE todos
		SET task_name = $2, status = $3, priority = $4, remaining_days = $5, description = $6, updated_at = now()
		WHERE id = $1
		RETURNING `+todoColumns,
		t.ID, t.TaskName, t.Status, t.Priority, t.RemainingDays, t.Desc,
	)
	saved, err := scanTodo(row)
	return saved, mapError(err)
}

func (r *TodoRepo) insert(ctx context.Context, t model.Todo) (model.Todo, error) {
	row := r.pool.QueryRow(ctx, `
		INSERT INTO todos (user_id, task_name, status, priority, remaining_days, description)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING `+todoColumns,
		t.OwnerID, t.TaskName, t.Status, t.Priority, t.RemainingDays, t.Desc,
	)
	saved, err := scanTodo(row)
	return saved, mapError(err)
}

func (r *TodoRepo) Delete(ctx context.Context, id int64) error {
	cmd, err := r.pool.Exec(ctx, "DELETE FROM todos WHERE id = $1", id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return ErrorNotFound
	}
	return nil
}

func scanTodo(row pgx.Row) (model.Todo, error) {
	var t model.Todo
	err := row.Scan(
		&t.ID, &t.OwnerID, &t.TaskName, &t.Status, &t.Priority, &t.RemainingDays, &t.Desc, &t.CreatedAt, &t.UpdatedAt,
	)
	return t, err
}

// mapError переводит ошибки pgx в ошибки репозитория
func mapError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, pgx.ErrNoRows) {
		return ErrorNotFound
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgerrcode.UniqueViolation:
			return ErrorConflict
		case pgerrcode.ForeignKeyViolation:
			return ErrorNotFound
		}
	}
	return err
}
