package handler

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/BuzzLyutic/todo-app/internal/model"
	"github.com/BuzzLyutic/todo-app/internal/repo"
	"github.com/BuzzLyutic/todo-app/internal/serializer"
	"github.com/BuzzLyutic/todo-app/internal/service"
	"github.com/BuzzLyutic/todo-app/internal/testutil"
)

func setupAPIHandler() (*APIHandler, *testutil.MockTodoRepository, *testutil.MockUserRepository) {
	todos := new(testutil.MockTodoRepository)
	users := new(testutil.MockUserRepository)
	h := NewAPIHandler(service.NewTodoService(todos), service.NewUserService(users), zap.NewNop())
	return h, todos, users
}

func jsonRequest(method, target string, body interface{}) *http.Request {
	var buf []byte
	if body != nil {
		buf, _ = json.Marshal(body)
	}
	req := httptest.NewRequest(method, target, bytes.NewReader(buf))
	req.Header.Set("Content-Type", "application/json")
	return req
}

type invalidBody struct {
	Error  string              `json:"error"`
	Fields map[string][]string `json:"fields"`
}

func TestAPIHandler_RegisterUser(t *testing.T) {
	t.Run("created user has no password", func(t *testing.T) {
		h, _, users := setupAPIHandler()
		users.On("Create", mock.Anything, mock.Anything).
			Return(model.User{ID: 1, Username: "u", Email: "a@b.com", PasswordHash: "$2a$10$hash"}, nil)

		w := httptest.NewRecorder()
		h.RegisterUser(w, jsonRequest(http.MethodPost, "/api/users/", map[string]string{
			"email": "a@b.com", "username": "u", "password": "p",
		}))

		assert.Equal(t, http.StatusCreated, w.Code)
		body := w.Body.String()
		assert.NotContains(t, body, "password")
		assert.NotContains(t, body, "$2a$10$hash")

		var got serializer.UserRepresentation
		require.NoError(t, json.Unmarshal([]byte(body), &got))
		assert.Equal(t, "u", got.Username)
		assert.Equal(t, "a@b.com", got.Email)
	})

	t.Run("invalid email", func(t *testing.T) {
		h, _, users := setupAPIHandler()

		w := httptest.NewRecorder()
		h.RegisterUser(w, jsonRequest(http.MethodPost, "/api/users/", map[string]string{
			"email": "invalid_email", "username": "u", "password": "p",
		}))

		assert.Equal(t, http.StatusBadRequest, w.Code)
		var got invalidBody
		require.NoError(t, json.NewDecoder(w.Body).Decode(&got))
		assert.Contains(t, got.Fields, "email")
		users.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("empty body", func(t *testing.T) {
		h, _, _ := setupAPIHandler()

		w := httptest.NewRecorder()
		h.RegisterUser(w, jsonRequest(http.MethodPost, "/api/users/", nil))

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("broken json", func(t *testing.T) {
		h, _, _ := setupAPIHandler()

		req := httptest.NewRequest(http.MethodPost, "/api/users/", bytes.NewReader([]byte(`{"email":`)))
		w := httptest.NewRecorder()
		h.RegisterUser(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestAPIHandler_CreateTodo(t *testing.T) {
	tests := []struct {
		name      string
		body      interface{}
		setupMock func(*testutil.MockTodoRepository)
		wantCode  int
	}{
		{
			name: "successful creation",
			body: map[string]interface{}{
				"Task_name": "Task 1", "status": "Completed", "priority": "High", "remaining_days": 3,
				"desc": "Sample task description", "created_at": "2023-07-06T10:00:00Z",
			},
			setupMock: func(m *testutil.MockTodoRepository) {
				m.On("Save", mock.Anything, mock.MatchedBy(func(t model.Todo) bool {
					return t.OwnerID == 1 && t.TaskName == "Task 1" && t.RemainingDays == 3 && t.CreatedAt.IsZero()
				})).Return(model.Todo{ID: 12, OwnerID: 1, TaskName: "Task 1", RemainingDays: 3}, nil)
			},
			wantCode: http.StatusCreated,
		},
		{
			name:      "empty Task_name",
			body:      map[string]interface{}{"Task_name": "", "status": "Completed"},
			setupMock: func(*testutil.MockTodoRepository) {},
			wantCode:  http.StatusBadRequest,
		},
		{
			name:      "empty body",
			body:      nil,
			setupMock: func(*testutil.MockTodoRepository) {},
			wantCode:  http.StatusBadRequest,
		},
		{
			name:      "remaining_days out of int4 range",
			body:      map[string]interface{}{"Task_name": "Task 1", "remaining_days": 3000000000},
			setupMock: func(*testutil.MockTodoRepository) {},
			wantCode:  http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h, todos, _ := setupAPIHandler()
			tt.setupMock(todos)

			w := httptest.NewRecorder()
			h.CreateTodo(w, jsonRequest(http.MethodPost, "/api/todos/", tt.body), alice)

			assert.Equal(t, tt.wantCode, w.Code)
			if tt.wantCode == http.StatusCreated {
				assert.Equal(t, "/api/todos/12/", w.Header().Get("Location"))
				var got serializer.TodoRepresentation
				require.NoError(t, json.NewDecoder(w.Body).Decode(&got))
				assert.Equal(t, "Task 1", got.TaskName)
			}
			todos.AssertExpectations(t)
		})
	}
}

func TestAPIHandler_ListTodos(t *testing.T) {
	h, todos, _ := setupAPIHandler()
	todos.On("FindByOwner", mock.Anything, int64(1)).Return([]model.Todo{{ID: 1, TaskName: "a"}, {ID: 2, TaskName: "b"}}, nil)

	w := httptest.NewRecorder()
	h.ListTodos(w, httptest.NewRequest(http.MethodGet, "/api/todos/", nil), alice)

	assert.Equal(t, http.StatusOK, w.Code)
	var got []serializer.TodoRepresentation
	require.NoError(t, json.NewDecoder(w.Body).Decode(&got))
	assert.Len(t, got, 2)
	assert.NotContains(t, w.Body.String(), "OwnerID")
}

func TestAPIHandler_GetTodo(t *testing.T) {
	h, todos, _ := setupAPIHandler()
	todos.On("Find", mock.Anything, int64(5)).Return(model.Todo{ID: 5, OwnerID: 2}, nil)

	w := httptest.NewRecorder()
	h.GetTodo(w, withID(httptest.NewRequest(http.MethodGet, "/api/todos/5/", nil), "5"), alice)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestAPIHandler_UpdateTodo(t *testing.T) {
	h, todos, _ := setupAPIHandler()
	todos.On("Find", mock.Anything, int64(5)).Return(model.Todo{ID: 5, OwnerID: 1, TaskName: "old"}, nil)
	todos.On("Save", mock.Anything, mock.MatchedBy(func(t model.Todo) bool {
		return t.ID == 5 && t.OwnerID == 1 && t.TaskName == "new"
	})).Return(model.Todo{ID: 5, OwnerID: 1, TaskName: "new"}, nil)

	req := withID(jsonRequest(http.MethodPut, "/api/todos/5/", map[string]interface{}{"Task_name": "new"}), "5")
	w := httptest.NewRecorder()
	h.UpdateTodo(w, req, alice)

	assert.Equal(t, http.StatusOK, w.Code)
	var got serializer.TodoRepresentation
	require.NoError(t, json.NewDecoder(w.Body).Decode(&got))
	assert.Equal(t, "new", got.TaskName)
	todos.AssertExpectations(t)
}

func TestAPIHandler_DeleteTodo(t *testing.T) {
	t.Run("successful delete", func(t *testing.T) {
		h, todos, _ := setupAPIHandler()
		todos.On("Find", mock.Anything, int64(5)).Return(model.Todo{ID: 5, OwnerID: 1}, nil)
		todos.On("Delete", mock.Anything, int64(5)).Return(nil)

		w := httptest.NewRecorder()
		h.DeleteTodo(w, withID(httptest.NewRequest(http.MethodDelete, "/api/todos/5/", nil), "5"), alice)

		assert.Equal(t, http.StatusNoContent, w.Code)
	})

	t.Run("delete non-existing", func(t *testing.T) {
		h, todos, _ := setupAPIHandler()
		todos.On("Find", mock.Anything, int64(99999)).Return(model.Todo{}, repo.ErrorNotFound)

		w := httptest.NewRecorder()
		h.DeleteTodo(w, withID(httptest.NewRequest(http.MethodDelete, "/api/todos/99999/", nil), "99999"), alice)

		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}
