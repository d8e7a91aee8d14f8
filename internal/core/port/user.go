package port

import (
	"context"

	"userapp/internal/core/domain"
	"userapp/internal/core/model/request"
)

type UserRepository interface {
	Create(ctx context.Context, user domain.User) (domain.User, error)
	GetByID(ctx context.Context, id int64) (domain.User, error)
	GetByName(ctx context.Context, name string) (domain.User, error)
	GetByEmail(ctx context.Context, email string) (domain.User, error)
	GetAll(ctx context.Context) ([]domain.User, error)
	UpdateFields(ctx context.Context, id int64, fields map[string]any) (domain.User, error)
	Delete(ctx context.Context, id int64) (bool, error)
}

type UserService interface {
	CreateUser(ctx context.Context, params request.UserCreateRequest) (domain.User, error)
	GetUserByID(ctx context.Context, id int64) (domain.User, error)
	GetAllUsers(ctx context.Context) ([]domain.User, error)
	UpdateUser(ctx context.Context, id int64, params request.UserUpdateRequest) (domain.User, error)
	DeleteUser(ctx context.Context, id int64) (bool, error)
	IsNameTaken(ctx context.Context, name string) (bool, error)
	IsEmailTaken(ctx context.Context, email string) (bool, error)
}
