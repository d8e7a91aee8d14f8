package service

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel/attribute"

	"userapp/internal/core/domain"
	"userapp/internal/core/model/request"
	"userapp/internal/core/port"
	"userapp/internal/core/telemetry"
	"userapp/internal/core/util"
)

// UserService implements the account business rules: pre-flight duplicate
// checks, password-change validation, and all-or-nothing partial updates.
type UserService struct {
	repo  port.UserRepository
	probe port.Telemetry
}

func NewUserService(repo port.UserRepository, probe port.Telemetry) *UserService {
	if probe == nil {
		probe = telemetry.NewNoOpProbe()
	}

	return &UserService{repo: repo, probe: probe}
}

func (us *UserService) CreateUser(ctx context.Context, params request.UserCreateRequest) (domain.User, error) {
	ctx, span := us.probe.StartServiceSpan(ctx, "user", "CreateUser", []attribute.KeyValue{
		attribute.String("user.name", params.Name),
	})

	defer span.End()

	hashed, err := util.HashPassword(params.Password)

	if err != nil {
		us.probe.RecordError(ctx, "CreateUser", err)
		return domain.User{}, err
	}

	now := time.Now()

	user, err := us.repo.Create(ctx, domain.User{
		Name:      params.Name,
		Email:     params.Email,
		Password:  hashed,
		CreatedAt: now,
		UpdatedAt: now,
	})

	if err != nil {
		slog.Error("Error creating user", "error", err, "name", params.Name)
		return domain.User{}, err
	}

	us.probe.RecordUserOperation(ctx, "create")

	return user, nil
}

func (us *UserService) GetUserByID(ctx context.Context, id int64) (domain.User, error) {
	user, err := us.repo.GetByID(ctx, id)

	if err != nil {
		return domain.User{}, err
	}

	return user, nil
}

func (us *UserService) GetAllUsers(ctx context.Context) ([]domain.User, error) {
	users, err := us.repo.GetAll(ctx)

	if err != nil {
		return nil, err
	}

	return users, nil
}

// UpdateUser applies a partial update. Fields absent from the payload stay
// untouched. A password change requires the current password and is verified
// before anything is written, so a failed check leaves every field unchanged.
func (us *UserService) UpdateUser(ctx context.Context, id int64, params request.UserUpdateRequest) (domain.User, error) {
	ctx, span := us.probe.StartServiceSpan(ctx, "user", "UpdateUser", []attribute.KeyValue{
		attribute.Int64("user.id", id),
	})

	defer span.End()

	current, err := us.repo.GetByID(ctx, id)

	if err != nil {
		return domain.User{}, err
	}

	fields := map[string]any{}

	if params.Name != nil {
		fields["name"] = *params.Name
	}

	if params.Email != nil {
		fields["email"] = *params.Email
	}

	if params.NewPassword != nil {
		if params.CurrentPassword == nil {
			return domain.User{}, domain.ErrCurrentPasswordRequired
		}

		if !util.VerifyPassword(*params.CurrentPassword, current.Password) {
			return domain.User{}, domain.ErrCurrentPasswordIncorrect
		}

		hashed, err := util.HashPassword(*params.NewPassword)

		if err != nil {
			us.probe.RecordError(ctx, "UpdateUser", err)
			return domain.User{}, err
		}

		fields["password"] = hashed
	}

	for column := range fields {
		if !domain.MutableColumns[column] {
			delete(fields, column)
		}
	}

	if len(fields) == 0 {
		return current, nil
	}

	updated, err := us.repo.UpdateFields(ctx, id, fields)

	if err != nil {
		slog.Error("Error updating user", "error", err, "id", id)
		return domain.User{}, err
	}

	us.probe.RecordUserOperation(ctx, "update")

	return updated, nil
}

func (us *UserService) DeleteUser(ctx context.Context, id int64) (bool, error) {
	deleted, err := us.repo.Delete(ctx, id)

	if err != nil {
		slog.Error("Error deleting user", "error", err, "id", id)
		return false, err
	}

	if deleted {
		us.probe.RecordUserOperation(ctx, "delete")
	}

	return deleted, nil
}

// IsNameTaken is a pre-flight check only. It is not atomic with a later
// insert; the unique constraint at the store stays authoritative.
func (us *UserService) IsNameTaken(ctx context.Context, name string) (bool, error) {
	_, err := us.repo.GetByName(ctx, name)

	if errors.Is(err, domain.ErrUserNotFound) {
		return false, nil
	}

	if err != nil {
		return false, err
	}

	return true, nil
}

func (us *UserService) IsEmailTaken(ctx context.Context, email string) (bool, error) {
	_, err := us.repo.GetByEmail(ctx, email)

	if errors.Is(err, domain.ErrUserNotFound) {
		return false, nil
	}

	if err != nil {
		return false, err
	}

	return true, nil
}
