package service

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/niklvrr/EmToolBackend/internal/domain"
	"github.com/niklvrr/EmToolBackend/internal/infrastructure/repository"
	"github.com/niklvrr/EmToolBackend/internal/transport/dto/request"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// MockUserRepository мок репозитория для тестов
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) CreateUser(ctx context.Context, u *domain.User) (*domain.User, error) {
	args := m.Called(ctx, u)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepository) GetUserById(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepository) GetUserByUsername(ctx context.Context, username string) (*domain.User, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepository) ListUsers(ctx context.Context, username string) ([]*domain.User, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.User), args.Error(1)
}

func (m *MockUserRepository) UpdateUser(ctx context.Context, u *domain.User) (*domain.User, error) {
	args := m.Called(ctx, u)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepository) DeleteUser(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func newMockedUserService() (*UserService, *MockUserRepository, *MockRoleRepository) {
	users := new(MockUserRepository)
	roles := new(MockRoleRepository)
	service := NewUserService(users, roles, zap.NewNop())
	service.cost = bcrypt.MinCost
	return service, users, roles
}

func registerRequest() *request.RegisterUserRequest {
	return &request.RegisterUserRequest{
		FirstName: "Ann",
		LastName:  "Lee",
		Email:     "  Ann@Example.COM ",
		Username:  "ann",
		Password:  "secret-pass",
	}
}

func TestUserService_RegisterEmployee_Success(t *testing.T) {
	service, users, roles := newMockedUserService()
	roleId := uuid.New()

	roles.On("GetRoleByName", mock.Anything, domain.RoleEmployee).
		Return(&domain.Role{Id: roleId, Name: domain.RoleEmployee}, nil)
	users.On("CreateUser", mock.Anything, mock.MatchedBy(func(u *domain.User) bool {
		return u.Email == "ann@example.com" &&
			u.RoleId == roleId &&
			bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte("secret-pass")) == nil
	})).Return(&domain.User{Id: uuid.New(), Username: "ann", Email: "ann@example.com", RoleId: roleId, RoleName: domain.RoleEmployee}, nil)

	resp, err := service.RegisterEmployee(context.Background(), registerRequest())

	require.NoError(t, err)
	assert.Equal(t, "ann", resp.Username)
	assert.Equal(t, domain.RoleEmployee, resp.Role)
	users.AssertExpectations(t)
	roles.AssertExpectations(t)
}

func TestUserService_Register_Duplicate(t *testing.T) {
	service, users, roles := newMockedUserService()

	roles.On("GetRoleByName", mock.Anything, domain.RoleManager).
		Return(&domain.Role{Id: uuid.New(), Name: domain.RoleManager}, nil)
	users.On("CreateUser", mock.Anything, mock.Anything).Return(nil, repository.ErrAlreadyExists)

	_, err := service.RegisterManager(context.Background(), registerRequest())

	assertCode(t, err, CodeAlreadyExists)
}

func TestUserService_Register_InvalidInput(t *testing.T) {
	service, users, roles := newMockedUserService()

	req := registerRequest()
	req.Password = "short"
	_, err := service.RegisterEmployee(context.Background(), req)

	assertCode(t, err, CodeInvalidInput)
	assert.Contains(t, err.Error(), "password")
	users.AssertNotCalled(t, "CreateUser")
	roles.AssertNotCalled(t, "GetRoleByName")
}

func TestUserService_Register_RoleMissing(t *testing.T) {
	service, _, roles := newMockedUserService()

	roles.On("GetRoleByName", mock.Anything, domain.RoleEmployee).Return(nil, repository.ErrNotFound)

	_, err := service.RegisterEmployee(context.Background(), registerRequest())

	assert.ErrorIs(t, err, ErrRoleNotFound)
}

func TestUserService_GetUserById_NotFound(t *testing.T) {
	service, users, _ := newMockedUserService()

	users.On("GetUserById", mock.Anything, mock.Anything).Return(nil, repository.ErrNotFound)

	resp, err := service.GetUserById(context.Background(), uuid.NewString())

	assert.Nil(t, resp)
	assertCode(t, err, CodeNotFound)
}

func TestUserService_DeleteUser_InUse(t *testing.T) {
	service, users, _ := newMockedUserService()

	users.On("DeleteUser", mock.Anything, mock.Anything).Return(repository.ErrInUse)

	err := service.DeleteUser(context.Background(), uuid.NewString())

	assertCode(t, err, CodeInUse)
}

func TestUserService_DeleteUser_UnknownError(t *testing.T) {
	service, users, _ := newMockedUserService()

	dbErr := errors.New("db down")
	users.On("DeleteUser", mock.Anything, mock.Anything).Return(dbErr)

	err := service.DeleteUser(context.Background(), uuid.NewString())

	assert.ErrorIs(t, err, deleteUserError)
	assert.ErrorIs(t, err, dbErr)
}

func TestUserService_Authenticate(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	resp, err := f.users.Authenticate(ctx, &request.LoginRequest{Username: "alice", Password: "password-123"})
	require.NoError(t, err)
	assert.True(t, resp.Authenticated)
	assert.Equal(t, f.alice.Id, resp.User.Id)

	_, err = f.users.Authenticate(ctx, &request.LoginRequest{Username: "alice", Password: "wrong-password"})
	assertCode(t, err, CodeUnauthorized)

	_, err = f.users.Authenticate(ctx, &request.LoginRequest{Username: "ghost", Password: "password-123"})
	assertCode(t, err, CodeUnauthorized)
}

func TestUserService_UpdateUser_UniqueAgainstOthers(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.users.UpdateUser(ctx, &request.UpdateUserRequest{
		UserId:    f.alice.Id,
		FirstName: "Alice",
		LastName:  "Smith",
		Email:     "BOB@example.com",
		Username:  "alice",
	})
	assertCode(t, err, CodeAlreadyExists)

	updated, err := f.users.UpdateUser(ctx, &request.UpdateUserRequest{
		UserId:    f.alice.Id,
		FirstName: "Alice",
		LastName:  "Smith",
		Email:     "alice@example.com",
		Username:  "alice",
	})
	require.NoError(t, err)
	assert.Equal(t, "Smith", updated.LastName)
}

func TestUserService_GetUsersByUsername(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	all, err := f.users.GetAllUsers(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 4)

	found, err := f.users.GetUsersByUsername(ctx, "AL")
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.Equal(t, "alice", found[0].Username)

	none, err := f.users.GetUsersByUsername(ctx, "zzz")
	require.NoError(t, err)
	assert.NotNil(t, none)
	assert.Empty(t, none)
}

func TestUserService_Register_BlankFields(t *testing.T) {
	service, users, roles := newMockedUserService()

	req := registerRequest()
	req.Username = "   "
	_, err := service.RegisterEmployee(context.Background(), req)
	assertCode(t, err, CodeInvalidInput)
	assert.Contains(t, err.Error(), "username")

	req = registerRequest()
	req.FirstName = "\t "
	_, err = service.RegisterEmployee(context.Background(), req)
	assertCode(t, err, CodeInvalidInput)
	assert.Contains(t, err.Error(), "first_name")

	users.AssertNotCalled(t, "CreateUser")
	roles.AssertNotCalled(t, "GetRoleByName")
}

func TestUserService_Register_StoresTrimmedFields(t *testing.T) {
	f := newFixture(t)

	u, err := f.users.RegisterEmployee(context.Background(), &request.RegisterUserRequest{
		FirstName: "  Dan ",
		LastName:  " Brown",
		Email:     " Dan@Example.com ",
		Username:  " dan ",
		Password:  "password-123",
	})

	require.NoError(t, err)
	assert.Equal(t, "dan", u.Username)
	assert.Equal(t, "Dan", u.FirstName)
	assert.Equal(t, "dan@example.com", u.Email)
}

func TestUserService_UpdateUser_BlankUsername(t *testing.T) {
	f := newFixture(t)

	_, err := f.users.UpdateUser(context.Background(), &request.UpdateUserRequest{
		UserId:    f.alice.Id,
		FirstName: "Alice",
		LastName:  "Smith",
		Email:     " Alice@Example.com",
		Username:  "  ",
	})

	assertCode(t, err, CodeInvalidInput)
	assert.Contains(t, err.Error(), "username")
}
