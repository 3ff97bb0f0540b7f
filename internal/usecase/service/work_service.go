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
	createWorkError = errors.New("create task error")
	getWorkError    = errors.New("get task error")
	updateWorkError = errors.New("update task error")
	deleteWorkError = errors.New("delete task error")
)

type WorkService struct {
	repo     WorkRepository
	teams    TeamReader
	users    UserReader
	notifier Notifier
	log      *zap.Logger
}

func NewWorkService(repo WorkRepository, teams TeamReader, users UserReader, notifier Notifier, log *zap.Logger) *WorkService {
	return &WorkService{
		repo:     repo,
		teams:    teams,
		users:    users,
		notifier: notifier,
		log:      log,
	}
}

func (s *WorkService) CreateWork(ctx context.Context, req *request.CreateWorkRequest) (*response.WorkResponse, error) {
	s.log.Info("createWork request accepted",
		zap.String("title", req.Title),
		zap.String("team_id", req.TeamId),
		zap.String("assigned_to", req.AssignedTo),
	)

	if err := request.Validate(req); err != nil {
		return nil, invalidInput(err)
	}
	teamId, err := parseID(req.TeamId, "team_id")
	if err != nil {
		return nil, err
	}
	assignedBy, err := parseID(req.AssignedBy, "assigned_by")
	if err != nil {
		return nil, err
	}
	assignedTo, err := parseID(req.AssignedTo, "assigned_to")
	if err != nil {
		return nil, err
	}
	status, err := domain.ParseWorkStatus(req.Status)
	if err != nil {
		return nil, invalidInput(err)
	}

	team, err := loadTeam(ctx, s.teams, teamId, createWorkError)
	if err != nil {
		return nil, err
	}
	if err := s.checkTeamManager(ctx, team, assignedBy, createWorkError); err != nil {
		return nil, err
	}
	if err := s.checkAssignee(ctx, team, assignedTo, createWorkError); err != nil {
		return nil, err
	}

	// Запрос в бд
	work, err := s.repo.CreateWork(ctx, &domain.Work{
		Id:          uuid.New(),
		Title:       strings.TrimSpace(req.Title),
		Description: req.Description,
		AssignedBy:  assignedBy,
		AssignedTo:  assignedTo,
		TeamId:      teamId,
		Status:      status,
		Deadline:    req.Deadline.UTC(),
	})
	if err != nil {
		s.log.Error("failed to create task",
			zap.String("title", req.Title),
			zap.String("team_id", req.TeamId),
			zap.Error(err),
		)
		return nil, mapRepoError(err, createWorkError, nil, ErrWorkExists)
	}

	s.log.Info("task created",
		zap.String("task_id", work.Id.String()),
		zap.String("assigned_to", work.AssignedTo.String()),
	)

	s.notifyAssignee(ctx, work)

	return response.NewWorkResponse(work), nil
}

func (s *WorkService) GetWorkById(ctx context.Context, rawId string) (*response.WorkResponse, error) {
	s.log.Info("getWork request accepted",
		zap.String("task_id", rawId),
	)

	id, err := parseID(rawId, "task_id")
	if err != nil {
		return nil, err
	}

	work, err := loadWork(ctx, s.repo, id, getWorkError)
	if err != nil {
		return nil, err
	}

	return response.NewWorkResponse(work), nil
}

func (s *WorkService) GetEmployeeWorks(ctx context.Context, rawUserId string) ([]*response.WorkResponse, error) {
	s.log.Info("getEmployeeWorks request accepted",
		zap.String("user_id", rawUserId),
	)

	userId, err := parseID(rawUserId, "user_id")
	if err != nil {
		return nil, err
	}
	if _, err := loadUser(ctx, s.users, userId, getWorkError); err != nil {
		return nil, err
	}

	works, err := s.repo.ListWorksByAssignee(ctx, userId)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", getWorkError, err)
	}

	return response.NewWorkResponses(works), nil
}

func (s *WorkService) GetTeamWorks(ctx context.Context, rawTeamId string) ([]*response.WorkResponse, error) {
	s.log.Info("getTeamWorks request accepted",
		zap.String("team_id", rawTeamId),
	)

	teamId, err := parseID(rawTeamId, "team_id")
	if err != nil {
		return nil, err
	}
	if _, err := loadTeam(ctx, s.teams, teamId, getWorkError); err != nil {
		return nil, err
	}

	works, err := s.repo.ListWorksByTeam(ctx, teamId)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", getWorkError, err)
	}

	return response.NewWorkResponses(works), nil
}

// UpdateWork: менеджер команды меняет любые поля, исполнитель только статус своей задачи.
func (s *WorkService) UpdateWork(ctx context.Context, req *request.UpdateWorkRequest) (*response.WorkResponse, error) {
	s.log.Info("updateWork request accepted",
		zap.String("task_id", req.WorkId),
		zap.String("actor_id", req.ActorId),
	)

	if err := request.Validate(req); err != nil {
		return nil, invalidInput(err)
	}
	workId, err := parseID(req.WorkId, "task_id")
	if err != nil {
		return nil, err
	}
	actorId, err := parseID(req.ActorId, "actor_id")
	if err != nil {
		return nil, err
	}

	work, err := loadWork(ctx, s.repo, workId, updateWorkError)
	if err != nil {
		return nil, err
	}
	actor, err := loadUser(ctx, s.users, actorId, updateWorkError)
	if err != nil {
		return nil, err
	}
	team, err := loadTeam(ctx, s.teams, work.TeamId, updateWorkError)
	if err != nil {
		return nil, err
	}

	previousAssignee := work.AssignedTo

	switch {
	case actor.IsManager():
		if team.ManagerId != actor.Id {
			return nil, ErrNotTeamManager
		}
		if err := s.applyManagerPatch(ctx, team, work, req); err != nil {
			return nil, err
		}
	case actor.IsEmployee():
		if work.AssignedTo != actor.Id {
			return nil, ErrNotAssignee
		}
		if req.Title != nil || req.Description != nil || req.AssignedTo != nil || req.Deadline != nil {
			return nil, ErrStatusOnly
		}
		if req.Status != nil {
			if work.Status, err = domain.ParseWorkStatus(*req.Status); err != nil {
				return nil, invalidInput(err)
			}
		}
	default:
		return nil, ErrNotTeamManager
	}

	// Запрос в бд
	updated, err := s.repo.UpdateWork(ctx, work)
	if err != nil {
		s.log.Error("failed to update task",
			zap.String("task_id", req.WorkId),
			zap.Error(err),
		)
		return nil, mapRepoError(err, updateWorkError, ErrWorkNotFound, ErrWorkExists)
	}

	s.log.Info("task updated",
		zap.String("task_id", updated.Id.String()),
		zap.String("status", string(updated.Status)),
	)

	if updated.AssignedTo != previousAssignee {
		s.notifyAssignee(ctx, updated)
	}

	return response.NewWorkResponse(updated), nil
}

func (s *WorkService) applyManagerPatch(ctx context.Context, team *domain.Team, work *domain.Work, req *request.UpdateWorkRequest) error {
	if req.Title != nil {
		work.Title = strings.TrimSpace(*req.Title)
	}
	if req.Description != nil {
		work.Description = *req.Description
	}
	if req.Deadline != nil {
		work.Deadline = req.Deadline.UTC()
	}
	if req.Status != nil {
		status, err := domain.ParseWorkStatus(*req.Status)
		if err != nil {
			return invalidInput(err)
		}
		work.Status = status
	}
	if req.AssignedTo != nil {
		assignee, err := parseID(*req.AssignedTo, "assigned_to")
		if err != nil {
			return err
		}
		// Нового исполнителя проверяем так же, как при создании
		if err := s.checkAssignee(ctx, team, assignee, updateWorkError); err != nil {
			return err
		}
		work.AssignedTo = assignee
	}
	return nil
}

func (s *WorkService) DeleteWork(ctx context.Context, rawWorkId, rawActorId string) error {
	s.log.Info("deleteWork request accepted",
		zap.String("task_id", rawWorkId),
		zap.String("actor_id", rawActorId),
	)

	workId, err := parseID(rawWorkId, "task_id")
	if err != nil {
		return err
	}
	actorId, err := parseID(rawActorId, "actor_id")
	if err != nil {
		return err
	}

	work, err := loadWork(ctx, s.repo, workId, deleteWorkError)
	if err != nil {
		return err
	}
	team, err := loadTeam(ctx, s.teams, work.TeamId, deleteWorkError)
	if err != nil {
		return err
	}
	if err := s.checkTeamManager(ctx, team, actorId, deleteWorkError); err != nil {
		return err
	}

	if err := s.repo.DeleteWork(ctx, workId); err != nil {
		s.log.Error("failed to delete task",
			zap.String("task_id", rawWorkId),
			zap.Error(err),
		)
		return mapRepoError(err, deleteWorkError, ErrWorkNotFound, nil)
	}

	s.log.Info("task deleted", zap.String("task_id", rawWorkId))
	return nil
}

// checkTeamManager: пользователь существует, имеет роль Manager и управляет командой.
func (s *WorkService) checkTeamManager(ctx context.Context, team *domain.Team, userId uuid.UUID, opErr error) error {
	user, err := loadUser(ctx, s.users, userId, opErr)
	if err != nil {
		return err
	}
	if !user.IsManager() {
		return ErrNotManager
	}
	if team.ManagerId != user.Id {
		return ErrNotTeamManager
	}
	return nil
}

// checkAssignee: пользователь существует, имеет роль Employee и состоит в команде.
func (s *WorkService) checkAssignee(ctx context.Context, team *domain.Team, userId uuid.UUID, opErr error) error {
	user, err := loadUser(ctx, s.users, userId, opErr)
	if err != nil {
		return err
	}
	if !user.IsEmployee() {
		return ErrNotEmployee
	}
	member, err := isMember(ctx, s.teams, team.Id, userId)
	if err != nil {
		return fmt.Errorf("%w: %w", opErr, err)
	}
	if !member {
		return ErrNotTeamMember
	}
	return nil
}

func (s *WorkService) notifyAssignee(ctx context.Context, work *domain.Work) {
	if s.notifier == nil {
		return
	}
	msg := fmt.Sprintf("You have been assigned task %q", work.Title)
	if err := s.notifier.Notify(ctx, work.AssignedTo, NotifyTaskAssigned, msg); err != nil {
		s.log.Warn("failed to notify assignee",
			zap.String("task_id", work.Id.String()),
			zap.Error(err),
		)
	}
}
