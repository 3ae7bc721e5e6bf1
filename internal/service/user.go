package service

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"github.com/BuzzLyutic/todo-app/internal/model"
	"github.com/BuzzLyutic/todo-app/internal/repo"
)

var ErrInvalidCredentials = errors.New("invalid credentials")

const msgUsernameTaken = "A user with that username already exists."

type UserService struct {
	repo repo.UserRepository
	cost int
}

func NewUserService(repo repo.UserRepository) *UserService {
	return &UserService{repo: repo, cost: bcrypt.DefaultCost}
}

// Register создает пользователя, пароль хранится только в виде bcrypt-хэша
func (s *UserService) Register(ctx context.Context, username, email, password string) (model.User, error) {
	if username == "" {
		return model.User{}, fieldError("username", msgBlank)
	}
	if password == "" {
		return model.User{}, fieldError("password", msgBlank)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.cost)
	if err != nil {
		if errors.Is(err, bcrypt.ErrPasswordTooLong) {
			return model.User{}, fieldError("password", "Ensure this field has no more than 72 bytes.")
		}
		return model.User{}, fmt.Errorf("hash password: %w", err)
	}

	user, err := s.repo.Create(ctx, model.User{
		Username:     username,
		Email:        email,
		PasswordHash: string(hash),
	})
	if errors.Is(err, repo.ErrorConflict) {
		return model.User{}, fieldError("username", msgUsernameTaken)
	}
	return user, err
}

func (s *UserService) Authenticate(ctx context.Context, username, password string) (model.User, error) {
	user, err := s.repo.GetByUsername(ctx, username)
	if errors.Is(err, repo.ErrorNotFound) {
		return model.User{}, ErrInvalidCredentials
	}
	if err != nil {
		return model.User{}, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return model.User{}, ErrInvalidCredentials
	}
	return user, nil
}

func (s *UserService) Get(ctx context.Context, id int64) (model.User, error) {
	return s.repo.Get(ctx, id)
}
