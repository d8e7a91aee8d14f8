package service_test

import (
	"context"
	"testing"

	. "github.com/onsi/gomega"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"

	. "userapp/pkg/test"

	"userapp/internal/adapter/database/sqlite/repository"
	"userapp/internal/core/domain"
	"userapp/internal/core/model/request"
	"userapp/internal/core/service"
	"userapp/internal/core/telemetry"
	"userapp/internal/core/util"
)

type UserServiceTestSuite struct {
	suite.Suite
	svc *service.UserService
}

func (s *UserServiceTestSuite) SetupTest() {
	db := InitTestDB()
	probe := telemetry.NewNoOpProbe()
	repo := repository.NewUserRepository(db, probe)

	s.svc = service.NewUserService(repo, probe)
}

func TestUserServiceTestSuite(t *testing.T) {
	RegisterTestingT(t)
	suite.Run(t, new(UserServiceTestSuite))
}

func strPtr(s string) *string { return &s }

func (s *UserServiceTestSuite) createUser(name, email, password string) domain.User {
	user, err := s.svc.CreateUser(context.Background(), request.UserCreateRequest{
		Name:     name,
		Email:    email,
		Password: password,
	})

	assert.NoError(s.T(), err)

	return user
}

func (s *UserServiceTestSuite) TestService_CreateUser_HashesPassword() {
	user := s.createUser("Test User", "test@example.com", "secret-password")

	assert.NotZero(s.T(), user.ID)
	assert.NotEqual(s.T(), "secret-password", user.Password)
	Expect(util.VerifyPassword("secret-password", user.Password)).To(BeTrue())
}

func (s *UserServiceTestSuite) TestService_CreateUser_DuplicateConflict() {
	s.createUser("Test User", "first@example.com", "secret-password")

	_, err := s.svc.CreateUser(context.Background(), request.UserCreateRequest{
		Name:     "Test User",
		Email:    "second@example.com",
		Password: "secret-password",
	})

	assert.ErrorIs(s.T(), err, domain.ErrNameTaken)
	Expect(domain.IsConflict(err)).To(BeTrue())
}

func (s *UserServiceTestSuite) TestService_UpdateUser_NameOnly() {
	ctx := context.Background()
	created := s.createUser("Before Update", "before@example.com", "secret-password")

	updated, err := s.svc.UpdateUser(ctx, created.ID, request.UserUpdateRequest{
		Name: strPtr("After Update"),
	})

	assert.NoError(s.T(), err)
	assert.Equal(s.T(), "After Update", updated.Name)
	assert.Equal(s.T(), "before@example.com", updated.Email)
	assert.Equal(s.T(), created.Password, updated.Password)
}

func (s *UserServiceTestSuite) TestService_UpdateUser_EmptyPayloadIsNoOp() {
	ctx := context.Background()
	created := s.createUser("Unchanged User", "unchanged@example.com", "secret-password")

	updated, err := s.svc.UpdateUser(ctx, created.ID, request.UserUpdateRequest{})

	assert.NoError(s.T(), err)
	assert.Equal(s.T(), created, updated)
}

func (s *UserServiceTestSuite) TestService_UpdateUser_NotFound() {
	_, err := s.svc.UpdateUser(context.Background(), 9999, request.UserUpdateRequest{
		Name: strPtr("Ghost"),
	})

	assert.ErrorIs(s.T(), err, domain.ErrUserNotFound)
}

func (s *UserServiceTestSuite) TestService_UpdateUser_PasswordChangeRequiresCurrent() {
	ctx := context.Background()
	created := s.createUser("Test User", "test@example.com", "secret-password")

	_, err := s.svc.UpdateUser(ctx, created.ID, request.UserUpdateRequest{
		NewPassword: strPtr("new-password"),
	})

	assert.ErrorIs(s.T(), err, domain.ErrCurrentPasswordRequired)

	unchanged, err := s.svc.GetUserByID(ctx, created.ID)
	assert.NoError(s.T(), err)
	assert.Equal(s.T(), created.Password, unchanged.Password)
}

func (s *UserServiceTestSuite) TestService_UpdateUser_WrongCurrentPasswordChangesNothing() {
	ctx := context.Background()
	created := s.createUser("Test User", "test@example.com", "secret-password")

	_, err := s.svc.UpdateUser(ctx, created.ID, request.UserUpdateRequest{
		Name:            strPtr("Should Not Stick"),
		CurrentPassword: strPtr("wrong-password"),
		NewPassword:     strPtr("new-password"),
	})

	assert.ErrorIs(s.T(), err, domain.ErrCurrentPasswordIncorrect)

	unchanged, err := s.svc.GetUserByID(ctx, created.ID)
	assert.NoError(s.T(), err)
	assert.Equal(s.T(), "Test User", unchanged.Name)
	assert.Equal(s.T(), created.Password, unchanged.Password)
}

func (s *UserServiceTestSuite) TestService_UpdateUser_PasswordChangeSuccess() {
	ctx := context.Background()
	created := s.createUser("Test User", "test@example.com", "secret-password")

	updated, err := s.svc.UpdateUser(ctx, created.ID, request.UserUpdateRequest{
		CurrentPassword: strPtr("secret-password"),
		NewPassword:     strPtr("new-password"),
	})

	assert.NoError(s.T(), err)
	assert.NotEqual(s.T(), created.Password, updated.Password)
	Expect(util.VerifyPassword("new-password", updated.Password)).To(BeTrue())
	Expect(util.VerifyPassword("secret-password", updated.Password)).To(BeFalse())
}

func (s *UserServiceTestSuite) TestService_IsNameTaken() {
	ctx := context.Background()
	s.createUser("Taken Name", "taken@example.com", "secret-password")

	taken, err := s.svc.IsNameTaken(ctx, "Taken Name")
	assert.NoError(s.T(), err)
	assert.True(s.T(), taken)

	taken, err = s.svc.IsNameTaken(ctx, "Free Name")
	assert.NoError(s.T(), err)
	assert.False(s.T(), taken)
}

func (s *UserServiceTestSuite) TestService_IsEmailTaken() {
	ctx := context.Background()
	s.createUser("Taken Email", "taken@example.com", "secret-password")

	taken, err := s.svc.IsEmailTaken(ctx, "taken@example.com")
	assert.NoError(s.T(), err)
	assert.True(s.T(), taken)

	taken, err = s.svc.IsEmailTaken(ctx, "free@example.com")
	assert.NoError(s.T(), err)
	assert.False(s.T(), taken)
}

func (s *UserServiceTestSuite) TestService_DeleteUser() {
	ctx := context.Background()
	created := s.createUser("To Delete", "delete@example.com", "secret-password")

	deleted, err := s.svc.DeleteUser(ctx, created.ID)
	assert.NoError(s.T(), err)
	assert.True(s.T(), deleted)

	deleted, err = s.svc.DeleteUser(ctx, created.ID)
	assert.NoError(s.T(), err)
	assert.False(s.T(), deleted)

	_, err = s.svc.GetUserByID(ctx, created.ID)
	assert.ErrorIs(s.T(), err, domain.ErrUserNotFound)
}
