package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/niklvrr/EmToolBackend/internal/domain"
	"github.com/niklvrr/EmToolBackend/internal/infrastructure/repository"
	"github.com/niklvrr/EmToolBackend/internal/transport/dto/request"
	"github.com/niklvrr/EmToolBackend/internal/transport/dto/response"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

var (
	registerUserError = errors.New("register user error")
	getUserError      = errors.New("get user error")
	updateUserError   = errors.New("update user error")
	deleteUserError   = errors.New("delete user error")
	authError         = errors.New("authenticate error")
)

type UserService struct {
	repo  UserRepository
	roles RoleReader
	log   *zap.Logger
	cost  int
}

func NewUserService(repo UserRepository, roles RoleReader, log *zap.Logger) *UserService {
	return &UserService{
		repo:  repo,
		roles: roles,
		log:   log,
		cost:  bcrypt.DefaultCost,
	}
}

func (s *UserService) RegisterManager(ctx context.Context, req *request.RegisterUserRequest) (*response.UserResponse, error) {
	return s.register(ctx, req, domain.RoleManager)
}

func (s *UserService) RegisterEmployee(ctx context.Context, req *request.RegisterUserRequest) (*response.UserResponse, error) {
	return s.register(ctx, req, domain.RoleEmployee)
}

func (s *UserService) register(ctx context.Context, req *request.RegisterUserRequest, roleName string) (*response.UserResponse, error) {
	s.log.Info("register request accepted",
		zap.String("username", req.Username),
		zap.String("role", roleName),
	)

	if err := request.Validate(req); err != nil {
		return nil, invalidInput(err)
	}

	// Роль должна быть заведена заранее
	role, err := s.roles.GetRoleByName(ctx, roleName)
	if err != nil {
		return nil, mapRepoError(err, registerUserError, ErrRoleNotFound, nil)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), s.cost)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", registerUserError, err)
	}

	user := &domain.User{
		Id:           uuid.New(),
		FirstName:    strings.TrimSpace(req.FirstName),
		LastName:     strings.TrimSpace(req.LastName),
		Email:        normalizeEmail(req.Email),
		Username:     strings.TrimSpace(req.Username),
		PasswordHash: string(hash),
		RoleId:       role.Id,
	}

	// Запрос в бд
	created, err := s.repo.CreateUser(ctx, user)
	if err != nil {
		s.log.Error("failed to register user",
			zap.String("username", user.Username),
			zap.Error(err),
		)
		return nil, mapRepoError(err, registerUserError, nil, ErrUserExists)
	}

	s.log.Info("user registered",
		zap.String("user_id", created.Id.String()),
		zap.String("role", created.RoleName),
	)

	// Ответ
	return response.NewUserResponse(created), nil
}

func (s *UserService) GetAllUsers(ctx context.Context) ([]*response.UserResponse, error) {
	return s.GetUsersByUsername(ctx, "")
}

// GetUsersByUsername ищет по подстроке без учета регистра, пустая строка возвращает всех.
func (s *UserService) GetUsersByUsername(ctx context.Context, username string) ([]*response.UserResponse, error) {
	s.log.Info("getUsers request accepted",
		zap.String("username", username),
	)

	users, err := s.repo.ListUsers(ctx, strings.TrimSpace(username))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", getUserError, err)
	}

	return response.NewUserResponses(users), nil
}

func (s *UserService) GetUserById(ctx context.Context, rawId string) (*response.UserResponse, error) {
	s.log.Info("getUserById request accepted",
		zap.String("user_id", rawId),
	)

	id, err := parseID(rawId, "user_id")
	if err != nil {
		return nil, err
	}

	user, err := loadUser(ctx, s.repo, id, getUserError)
	if err != nil {
		return nil, err
	}

	return response.NewUserResponse(user), nil
}

func (s *UserService) UpdateUser(ctx context.Context, req *request.UpdateUserRequest) (*response.UserResponse, error) {
	s.log.Info("updateUser request accepted",
		zap.String("user_id", req.UserId),
	)

	if err := request.Validate(req); err != nil {
		return nil, invalidInput(err)
	}
	id, err := parseID(req.UserId, "user_id")
	if err != nil {
		return nil, err
	}

	// Запрос в бд
	updated, err := s.repo.UpdateUser(ctx, &domain.User{
		Id:        id,
		FirstName: strings.TrimSpace(req.FirstName),
		LastName:  strings.TrimSpace(req.LastName),
		Email:     normalizeEmail(req.Email),
		Username:  strings.TrimSpace(req.Username),
	})
	if err != nil {
		s.log.Error("failed to update user",
			zap.String("user_id", req.UserId),
			zap.Error(err),
		)
		return nil, mapRepoError(err, updateUserError, ErrUserNotFound, ErrUserExists)
	}

	s.log.Info("user updated", zap.String("user_id", updated.Id.String()))

	return response.NewUserResponse(updated), nil
}

func (s *UserService) DeleteUser(ctx context.Context, rawId string) error {
	s.log.Info("deleteUser request accepted",
		zap.String("user_id", rawId),
	)

	id, err := parseID(rawId, "user_id")
	if err != nil {
		return err
	}

	if err := s.repo.DeleteUser(ctx, id); err != nil {
		s.log.Error("failed to delete user",
			zap.String("user_id", rawId),
			zap.Error(err),
		)
		return mapRepoError(err, deleteUserError, ErrUserNotFound, nil)
	}

	s.log.Info("user deleted", zap.String("user_id", rawId))
	return nil
}

// Authenticate сверяет пароль с bcrypt хешем. Неизвестный пользователь и неверный пароль неразличимы.
func (s *UserService) Authenticate(ctx context.Context, req *request.LoginRequest) (*response.LoginResponse, error) {
	s.log.Info("login request accepted",
		zap.String("username", req.Username),
	)

	if err := request.Validate(req); err != nil {
		return nil, invalidInput(err)
	}

	user, err := s.repo.GetUserByUsername(ctx, strings.TrimSpace(req.Username))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, WrapError(ErrInvalidCredentials, err)
		}
		return nil, fmt.Errorf("%w: %w", authError, err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		s.log.Warn("invalid password", zap.String("user_id", user.Id.String()))
		return nil, WrapError(ErrInvalidCredentials, err)
	}

	s.log.Info("user authenticated", zap.String("user_id", user.Id.String()))

	return &response.LoginResponse{
		Authenticated: true,
		User:          response.NewUserResponse(user),
	}, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
