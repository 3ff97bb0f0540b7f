package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/niklvrr/EmToolBackend/internal/domain"
	"github.com/niklvrr/EmToolBackend/internal/transport/dto/request"
	"github.com/niklvrr/EmToolBackend/internal/transport/dto/response"
	"go.uber.org/zap"
)

var (
	createTeamError   = errors.New("create team error")
	getTeamError      = errors.New("get team error")
	updateTeamError   = errors.New("update team error")
	deleteTeamError   = errors.New("delete team error")
	addMemberError    = errors.New("add team member error")
	getMembersError   = errors.New("get team members error")
	deleteMemberError = errors.New("delete team member error")
)

type TeamService struct {
	repo  TeamRepository
	users UserReader
	log   *zap.Logger
}

func NewTeamService(repo TeamRepository, users UserReader, log *zap.Logger) *TeamService {
	return &TeamService{
		repo:  repo,
		users: users,
		log:   log,
	}
}

func (s *TeamService) CreateTeam(ctx context.Context, req *request.CreateTeamRequest) (*response.TeamResponse, error) {
	s.log.Info("createTeam request accepted",
		zap.String("name", req.Name),
		zap.String("manager_id", req.ManagerId),
	)

	if err := request.Validate(req); err != nil {
		return nil, invalidInput(err)
	}
	managerId, err := parseID(req.ManagerId, "manager_id")
	if err != nil {
		return nil, err
	}

	manager, err := loadUser(ctx, s.users, managerId, createTeamError)
	if err != nil {
		return nil, err
	}
	if !manager.IsManager() {
		return nil, ErrNotManager
	}

	// Запрос в бд
	team, err := s.repo.CreateTeam(ctx, &domain.Team{
		Id:        uuid.New(),
		Name:      strings.TrimSpace(req.Name),
		ManagerId: managerId,
	})
	if err != nil {
		s.log.Error("failed to create team",
			zap.String("name", req.Name),
			zap.Error(err),
		)
		return nil, mapRepoError(err, createTeamError, nil, ErrTeamExists)
	}

	s.log.Info("team created",
		zap.String("team_id", team.Id.String()),
		zap.String("name", team.Name),
	)

	return response.NewTeamResponse(team), nil
}

func (s *TeamService) GetTeamById(ctx context.Context, rawId string) (*response.TeamResponse, error) {
	s.log.Info("getTeam request accepted",
		zap.String("team_id", rawId),
	)

	id, err := parseID(rawId, "team_id")
	if err != nil {
		return nil, err
	}

	team, err := loadTeam(ctx, s.repo, id, getTeamError)
	if err != nil {
		return nil, err
	}

	return response.NewTeamResponse(team), nil
}

// GetTeamsByName сравнивает имя без учета регистра, пустое имя возвращает все команды.
func (s *TeamService) GetTeamsByName(ctx context.Context, name string) ([]*response.TeamResponse, error) {
	s.log.Info("getTeamsByName request accepted",
		zap.String("name", name),
	)

	teams, err := s.repo.ListTeamsByName(ctx, strings.TrimSpace(name))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", getTeamError, err)
	}

	return response.NewTeamResponses(teams), nil
}

func (s *TeamService) GetTeamsOfManager(ctx context.Context, rawManagerId string) ([]*response.TeamResponse, error) {
	s.log.Info("getTeamsOfManager request accepted",
		zap.String("manager_id", rawManagerId),
	)

	managerId, err := parseID(rawManagerId, "manager_id")
	if err != nil {
		return nil, err
	}
	if _, err := loadUser(ctx, s.users, managerId, getTeamError); err != nil {
		return nil, err
	}

	teams, err := s.repo.ListTeamsByManager(ctx, managerId)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", getTeamError, err)
	}

	return response.NewTeamResponses(teams), nil
}

// UpdateTeam переименовывает команду. Менять может только ее менеджер.
func (s *TeamService) UpdateTeam(ctx context.Context, req *request.UpdateTeamRequest) (*response.TeamResponse, error) {
	s.log.Info("updateTeam request accepted",
		zap.String("team_id", req.TeamId),
		zap.String("manager_id", req.ManagerId),
	)

	if err := request.Validate(req); err != nil {
		return nil, invalidInput(err)
	}
	teamId, err := parseID(req.TeamId, "team_id")
	if err != nil {
		return nil, err
	}
	managerId, err := parseID(req.ManagerId, "manager_id")
	if err != nil {
		return nil, err
	}

	team, err := loadTeam(ctx, s.repo, teamId, updateTeamError)
	if err != nil {
		return nil, err
	}
	manager, err := loadUser(ctx, s.users, managerId, updateTeamError)
	if err != nil {
		return nil, err
	}
	if !manager.IsManager() {
		return nil, ErrNotManager
	}
	if team.ManagerId != manager.Id {
		return nil, ErrNotTeamManager
	}

	team.Name = strings.TrimSpace(req.Name)

	// Запрос в бд
	updated, err := s.repo.UpdateTeam(ctx, team)
	if err != nil {
		s.log.Error("failed to update team",
			zap.String("team_id", req.TeamId),
			zap.Error(err),
		)
		return nil, mapRepoError(err, updateTeamError, ErrTeamNotFound, ErrTeamExists)
	}

	s.log.Info("team updated", zap.String("team_id", updated.Id.String()))

	return response.NewTeamResponse(updated), nil
}

func (s *TeamService) DeleteTeam(ctx context.Context, rawId string) error {
	s.log.Info("deleteTeam request accepted",
		zap.String("team_id", rawId),
	)

	id, err := parseID(rawId, "team_id")
	if err != nil {
		return err
	}

	if err := s.repo.DeleteTeam(ctx, id); err != nil {
		s.log.Error("failed to delete team",
			zap.String("team_id", rawId),
			zap.Error(err),
		)
		return mapRepoError(err, deleteTeamError, ErrTeamNotFound, nil)
	}

	s.log.Info("team deleted", zap.String("team_id", rawId))
	return nil
}

// AddTeamMember: добавлять может только менеджер этой команды.
func (s *TeamService) AddTeamMember(ctx context.Context, req *request.AddTeamMemberRequest) (*response.TeamMemberResponse, error) {
	s.log.Info("addTeamMember request accepted",
		zap.String("team_id", req.TeamId),
		zap.String("user_id", req.UserId),
		zap.String("added_by_id", req.AddedById),
	)

	if err := request.Validate(req); err != nil {
		return nil, invalidInput(err)
	}
	teamId, err := parseID(req.TeamId, "team_id")
	if err != nil {
		return nil, err
	}
	userId, err := parseID(req.UserId, "user_id")
	if err != nil {
		return nil, err
	}
	addedById, err := parseID(req.AddedById, "added_by_id")
	if err != nil {
		return nil, err
	}

	team, err := loadTeam(ctx, s.repo, teamId, addMemberError)
	if err != nil {
		return nil, err
	}
	if _, err := loadUser(ctx, s.users, userId, addMemberError); err != nil {
		return nil, err
	}
	addedBy, err := loadUser(ctx, s.users, addedById, addMemberError)
	if err != nil {
		return nil, err
	}
	if !addedBy.IsManager() {
		return nil, ErrNotManager
	}
	if team.ManagerId != addedBy.Id {
		return nil, ErrNotTeamManager
	}

	// Запрос в бд
	member, err := s.repo.AddTeamMember(ctx, &domain.TeamMember{
		Id:        uuid.New(),
		TeamId:    teamId,
		UserId:    userId,
		AddedById: addedById,
	})
	if err != nil {
		s.log.Error("failed to add team member",
			zap.String("team_id", req.TeamId),
			zap.String("user_id", req.UserId),
			zap.Error(err),
		)
		return nil, mapRepoError(err, addMemberError, nil, ErrMemberExists)
	}

	s.log.Info("team member added",
		zap.String("team_id", req.TeamId),
		zap.String("member_id", member.Id.String()),
	)

	return response.NewTeamMemberResponse(member), nil
}

func (s *TeamService) GetTeamMembers(ctx context.Context, rawTeamId string) ([]*response.TeamMemberResponse, error) {
	s.log.Info("getTeamMembers request accepted",
		zap.String("team_id", rawTeamId),
	)

	teamId, err := parseID(rawTeamId, "team_id")
	if err != nil {
		return nil, err
	}
	if _, err := loadTeam(ctx, s.repo, teamId, getMembersError); err != nil {
		return nil, err
	}

	members, err := s.repo.ListTeamMembers(ctx, teamId)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", getMembersError, err)
	}

	return response.NewTeamMemberResponses(members), nil
}

func (s *TeamService) DeleteTeamMember(ctx context.Context, rawMemberId string) error {
	s.log.Info("deleteTeamMember request accepted",
		zap.String("member_id", rawMemberId),
	)

	id, err := parseID(rawMemberId, "member_id")
	if err != nil {
		return err
	}

	if err := s.repo.DeleteTeamMember(ctx, id); err != nil {
		s.log.Error("failed to delete team member",
			zap.String("member_id", rawMemberId),
			zap.Error(err),
		)
		return mapRepoError(err, deleteMemberError, ErrMemberNotFound, nil)
	}

	s.log.Info("team member deleted", zap.String("member_id", rawMemberId))
	return nil
}
