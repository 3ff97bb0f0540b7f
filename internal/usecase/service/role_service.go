package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/niklvrr/EmToolBackend/internal/domain"
	"github.com/niklvrr/EmToolBackend/internal/infrastructure/repository"
	"github.com/niklvrr/EmToolBackend/internal/transport/dto/request"
	"github.com/niklvrr/EmToolBackend/internal/transport/dto/response"
	"go.uber.org/zap"
)

var (
	createRoleError = errors.New("create role error")
	getRoleError    = errors.New("get role error")
	seedRolesError  = errors.New("seed roles error")
)

type RoleService struct {
	repo RoleRepository
	log  *zap.Logger
}

func NewRoleService(repo RoleRepository, log *zap.Logger) *RoleService {
	return &RoleService{
		repo: repo,
		log:  log,
	}
}

func (s *RoleService) CreateRole(ctx context.Context, req *request.CreateRoleRequest) (*response.RoleResponse, error) {
	s.log.Info("createRole request accepted",
		zap.String("name", req.Name),
	)

	if err := request.Validate(req); err != nil {
		return nil, invalidInput(err)
	}

	name, err := domain.ParseRole(req.Name)
	if err != nil {
		return nil, invalidInput(err)
	}

	// Запрос в бд
	role, err := s.repo.CreateRole(ctx, &domain.Role{Id: uuid.New(), Name: name})
	if err != nil {
		s.log.Error("failed to create role",
			zap.String("name", name),
			zap.Error(err),
		)
		return nil, mapRepoError(err, createRoleError, nil, ErrRoleExists)
	}

	s.log.Info("role created",
		zap.String("role_id", role.Id.String()),
		zap.String("name", role.Name),
	)

	// Ответ
	return response.NewRoleResponse(role), nil
}

func (s *RoleService) GetRoleById(ctx context.Context, rawId string) (*response.RoleResponse, error) {
	s.log.Info("getRoleById request accepted",
		zap.String("role_id", rawId),
	)

	id, err := parseID(rawId, "role_id")
	if err != nil {
		return nil, err
	}

	// Запрос в бд
	role, err := s.repo.GetRoleById(ctx, id)
	if err != nil {
		return nil, mapRepoError(err, getRoleError, ErrRoleNotFound, nil)
	}

	return response.NewRoleResponse(role), nil
}

func (s *RoleService) GetRoleByName(ctx context.Context, rawName string) (*response.RoleResponse, error) {
	s.log.Info("getRoleByName request accepted",
		zap.String("name", rawName),
	)

	name, err := domain.ParseRole(rawName)
	if err != nil {
		return nil, WrapError(ErrRoleNotFound, err)
	}

	// Запрос в бд
	role, err := s.repo.GetRoleByName(ctx, name)
	if err != nil {
		return nil, mapRepoError(err, getRoleError, ErrRoleNotFound, nil)
	}

	return response.NewRoleResponse(role), nil
}

func (s *RoleService) ListRoles(ctx context.Context) ([]*response.RoleResponse, error) {
	s.log.Info("listRoles request accepted")

	roles, err := s.repo.ListRoles(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", getRoleError, err)
	}

	return response.NewRoleResponses(roles), nil
}

// EnsureDefaultRoles создает роли Manager и Employee, если их еще нет.
func (s *RoleService) EnsureDefaultRoles(ctx context.Context) error {
	for _, name := range []string{domain.RoleManager, domain.RoleEmployee} {
		_, err := s.repo.GetRoleByName(ctx, name)
		if err == nil {
			continue
		}
		if !errors.Is(err, repository.ErrNotFound) {
			return fmt.Errorf("%w: %w", seedRolesError, err)
		}

		_, err = s.repo.CreateRole(ctx, &domain.Role{Id: uuid.New(), Name: name})
		// Роль могли создать параллельно
		if err != nil && !errors.Is(err, repository.ErrAlreadyExists) {
			return fmt.Errorf("%w: %w", seedRolesError, err)
		}
		s.log.Info("default role created", zap.String("name", name))
	}
	return nil
}
