package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/BuzzLyutic/todo-app/internal/auth"
	"github.com/BuzzLyutic/todo-app/internal/model"
	"github.com/BuzzLyutic/todo-app/internal/repo"
)

// SessionService связывает JWT в cookie с записью в sessions
type SessionService struct {
	sessions repo.SessionRepository
	users    repo.UserRepository
	tokens   *auth.TokenManager
	now      func() time.Time
}

func NewSessionService(sessions repo.SessionRepository, users repo.UserRepository, tokens *auth.TokenManager) *SessionService {
	return &SessionService{
		sessions: sessions,
		users:    users,
		tokens:   tokens,
		now:      time.Now,
	}
}

func (s *SessionService) Start(ctx context.Context, user model.User) (string, time.Time, error) {
	if _, err := s.sessions.DeleteExpired(ctx, user.ID, s.now()); err != nil {
		return "", time.Time{}, fmt.Errorf("delete expired sessions: %w", err)
	}

	id := uuid.New()
	token, expiresAt, err := s.tokens.Issue(user.ID, id)
	if err != nil {
		return "", time.Time{}, err
	}

	if _, err := s.sessions.Create(ctx, model.Session{ID: id, UserID: user.ID, ExpiresAt: expiresAt}); err != nil {
		return "", time.Time{}, fmt.Errorf("create session: %w", err)
	}
	return token, expiresAt, nil
}

func (s *SessionService) Resolve(ctx context.Context, token string) (model.User, error) {
	claims, err := s.tokens.Parse(token)
	if err != nil {
		return model.User{}, fmt.Errorf("%w: %v", auth.ErrUnauthenticated, err)
	}
	sessionID, _ := claims.SessionID()

	sess, err := s.sessions.Get(ctx, sessionID)
	if errors.Is(err, repo.ErrorNotFound) {
		return model.User{}, fmt.Errorf("%w: session is gone", auth.ErrUnauthenticated)
	}
	if err != nil {
		return model.User{}, err
	}
	if sess.Expired(s.now()) || sess.UserID != claims.UserID {
		return model.User{}, fmt.Errorf("%w: session expired", auth.ErrUnauthenticated)
	}

	user, err := s.users.Get(ctx, sess.UserID)
	if errors.Is(err, repo.ErrorNotFound) {
		return model.User{}, fmt.Errorf("%w: user is gone", auth.ErrUnauthenticated)
	}
	return user, err
}

// End удаляет сессию. Битый или уже удаленный токен не ошибка.
func (s *SessionService) End(ctx context.Context, token string) error {
	claims, err := s.tokens.Parse(token)
	if err != nil {
		return nil
	}
	sessionID, _ := claims.SessionID()

	if err := s.sessions.Delete(ctx, sessionID); err != nil && !errors.Is(err, repo.ErrorNotFound) {
		return err
	}
	return nil
}
