package serializer

import (
	"context"
	"errors"

	"github.com/BuzzLyutic/todo-app/internal/model"
	"github.com/BuzzLyutic/todo-app/internal/service"
)

var ErrInvalid = errors.New("serializer: data is not valid")

type UserInput struct {
	Email    string `json:"email" validate:"required,email"`
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// UserRepresentation - пароль сюда не попадает никогда
type UserRepresentation struct {
	ID       int64  `json:"id"`
	Email    string `json:"email"`
	Username string `json:"username"`
}

// UserCreator создает пользователя с хэшированием пароля
type UserCreator interface {
	Register(ctx context.Context, username, email, password string) (model.User, error)
}

type UserSerializer struct {
	data   Data
	input  UserInput
	errors Errors
}

func NewUserSerializer(data Data) *UserSerializer {
	return &UserSerializer{data: data}
}

func (s *UserSerializer) IsValid() bool {
	if s.errors == nil {
		s.run()
	}
	return len(s.errors) == 0
}

func (s *UserSerializer) Errors() Errors {
	s.IsValid()
	return s.errors
}

func (s *UserSerializer) run() {
	errs := Errors{}
	s.input = UserInput{
		Email:    s.data.str(errs, "email", true),
		Username: s.data.str(errs, "username", true),
		Password: s.data.str(errs, "password", false),
	}
	check(s.input, errs, func(field string) bool {
		v, ok := s.data[field]
		return ok && v != nil
	})
	s.errors = errs
}

// Save создает пользователя. Ошибки уровня хранилища (занятый username)
// попадают в Errors().
func (s *UserSerializer) Save(ctx context.Context, creator UserCreator) (model.User, error) {
	if !s.IsValid() {
		return model.User{}, ErrInvalid
	}

	user, err := creator.Register(ctx, s.input.Username, s.input.Email, s.input.Password)
	var verr *service.ValidationError
	if errors.As(err, &verr) {
		for field, msgs := range verr.Fields {
			for _, msg := range msgs {
				s.errors.add(field, msg)
			}
		}
		return model.User{}, ErrInvalid
	}
	return user, err
}

func UserToRepresentation(u model.User) UserRepresentation {
	return UserRepresentation{
		ID:       u.ID,
		Email:    u.Email,
		Username: u.Username,
	}
}
