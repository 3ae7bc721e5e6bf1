package repo

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/BuzzLyutic/todo-app/internal/model"
)

type SessionRepo struct {
	pool *pgxpool.Pool
}

func NewSessionRepo(pool *pgxpool.Pool) *SessionRepo {
	return &SessionRepo{pool: pool}
}

func (r *SessionRepo) Create(ctx context.Context, s model.Session) (model.Session, error) {
	err := r.pool.QueryRow(ctx, `
		INSERT INTO sessions (id, user_id, expires_at)
		VALUES ($1, $2, $3)
		RETURNING id, user_id, created_at, expires_at
	`, s.ID, s.UserID, s.ExpiresAt).Scan(&s.ID, &s.UserID, &s.CreatedAt, &s.ExpiresAt)
	return s, mapError(err)
}

func (r *SessionRepo) Get(ctx context.Context, id uuid.UUID) (model.Session, error) {
	var s model.Session
	err := r.pool.QueryRow(ctx, `
		SELECT id, user_id, created_at, expires_at
		FROM sessions
		WHERE id = $1
	`, id).Scan(&s.ID, &s.UserID, &s.CreatedAt, &s.ExpiresAt)
	return s, mapError(err)
}

func (r *SessionRepo) Delete(ctx context.Context, id uuid.UUID) error {
	cmd, err := r.pool.Exec(ctx, "DELETE FROM sessions WHERE id = $1", id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return ErrorNotFound
	}
	return nil
}

// DeleteExpired чистит протухшие сессии пользователя, вызывается при логине
func (r *SessionRepo) DeleteExpired(ctx context.Context, userID int64, now time.Time) (int64, error) {
	cmd, err := r.pool.Exec(ctx, "DELETE FROM sessions WHERE user_id = $1 AND expires_at <= $2", userID, now)
	if err != nil {
		return 0, err
	}
	return cmd.RowsAffected(), nil
}
