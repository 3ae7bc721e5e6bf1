package service

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/BuzzLyutic/todo-app/internal/auth"
	"github.com/BuzzLyutic/todo-app/internal/model"
	"github.com/BuzzLyutic/todo-app/internal/repo"
	"github.com/BuzzLyutic/todo-app/internal/testutil"
)

func TestSessionService_StartAndResolve(t *testing.T) {
	sessions := new(testutil.MockSessionRepository)
	users := new(testutil.MockUserRepository)
	tokens := auth.NewTokenManager("test-secret", time.Hour)
	service := NewSessionService(sessions, users, tokens)

	alice := model.User{ID: 1, Username: "alice"}

	var created model.Session
	sessions.On("DeleteExpired", mock.Anything, int64(1), mock.Anything).Return(int64(0), nil)
	sessions.On("Create", mock.Anything, mock.MatchedBy(func(s model.Session) bool {
		return s.UserID == 1 && s.ID != uuid.Nil
	})).Run(func(args mock.Arguments) {
		created = args.Get(1).(model.Session)
	}).Return(model.Session{}, nil)

	token, expiresAt, err := service.Start(context.Background(), alice)
	require.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.WithinDuration(t, time.Now().Add(time.Hour), expiresAt, 5*time.Second)

	sessions.On("Get", mock.Anything, created.ID).Return(created, nil)
	users.On("Get", mock.Anything, int64(1)).Return(alice, nil)

	user, err := service.Resolve(context.Background(), token)
	require.NoError(t, err)
	assert.Equal(t, alice, user)

	sessions.AssertExpectations(t)
	users.AssertExpectations(t)
}

func TestSessionService_Resolve_Rejects(t *testing.T) {
	tokens := auth.NewTokenManager("test-secret", time.Hour)
	sid := uuid.New()
	token, _, err := tokens.Issue(1, sid)
	require.NoError(t, err)

	tests := []struct {
		name  string
		token string
		setup func(*testutil.MockSessionRepository, *testutil.MockUserRepository)
	}{
		{
			name:  "garbage token",
			token: "not-a-jwt",
			setup: func(*testutil.MockSessionRepository, *testutil.MockUserRepository) {},
		},
		{
			name:  "session logged out",
			token: token,
			setup: func(s *testutil.MockSessionRepository, _ *testutil.MockUserRepository) {
				s.On("Get", mock.Anything, sid).Return(model.Session{}, repo.ErrorNotFound)
			},
		},
		{
			name:  "session expired",
			token: token,
			setup: func(s *testutil.MockSessionRepository, _ *testutil.MockUserRepository) {
				s.On("Get", mock.Anything, sid).Return(model.Session{ID: sid, UserID: 1, ExpiresAt: time.Now().Add(-time.Minute)}, nil)
			},
		},
		{
			name:  "session of another user",
			token: token,
			setup: func(s *testutil.MockSessionRepository, _ *testutil.MockUserRepository) {
				s.On("Get", mock.Anything, sid).Return(model.Session{ID: sid, UserID: 2, ExpiresAt: time.Now().Add(time.Hour)}, nil)
			},
		},
		{
			name:  "user deleted",
			token: token,
			setup: func(s *testutil.MockSessionRepository, u *testutil.MockUserRepository) {
				s.On("Get", mock.Anything, sid).Return(model.Session{ID: sid, UserID: 1, ExpiresAt: time.Now().Add(time.Hour)}, nil)
				u.On("Get", mock.Anything, int64(1)).Return(model.User{}, repo.ErrorNotFound)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sessions := new(testutil.MockSessionRepository)
			users := new(testutil.MockUserRepository)
			tt.setup(sessions, users)

			service := NewSessionService(sessions, users, tokens)
			_, err := service.Resolve(context.Background(), tt.token)

			assert.ErrorIs(t, err, auth.ErrUnauthenticated)
			sessions.AssertExpectations(t)
			users.AssertExpectations(t)
		})
	}
}

func TestSessionService_End(t *testing.T) {
	tokens := auth.NewTokenManager("test-secret", time.Hour)
	sid := uuid.New()
	token, _, err := tokens.Issue(1, sid)
	require.NoError(t, err)

	sessions := new(testutil.MockSessionRepository)
	sessions.On("Delete", mock.Anything, sid).Return(repo.ErrorNotFound)

	service := NewSessionService(sessions, new(testutil.MockUserRepository), tokens)
	assert.NoError(t, service.End(context.Background(), token))
	assert.NoError(t, service.End(context.Background(), "garbage"))
	sessions.AssertExpectations(t)
}
