package service

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/niklvrr/EmToolBackend/internal/domain"
	"github.com/niklvrr/EmToolBackend/internal/infrastructure/repository"
)

// Общие загрузки связанных сущностей. opErr используется для неизвестных ошибок.

func loadUser(ctx context.Context, users UserReader, id uuid.UUID, opErr error) (*domain.User, error) {
	u, err := users.GetUserById(ctx, id)
	if err != nil {
		return nil, mapRepoError(err, opErr, ErrUserNotFound, nil)
	}
	return u, nil
}

func loadTeam(ctx context.Context, teams TeamReader, id uuid.UUID, opErr error) (*domain.Team, error) {
	t, err := teams.GetTeamById(ctx, id)
	if err != nil {
		return nil, mapRepoError(err, opErr, ErrTeamNotFound, nil)
	}
	return t, nil
}

func loadWork(ctx context.Context, works WorkReader, id uuid.UUID, opErr error) (*domain.Work, error) {
	w, err := works.GetWorkById(ctx, id)
	if err != nil {
		return nil, mapRepoError(err, opErr, ErrWorkNotFound, nil)
	}
	return w, nil
}

// isMember проверяет только членство, менеджер команды не считается.
func isMember(ctx context.Context, teams TeamReader, teamId, userId uuid.UUID) (bool, error) {
	_, err := teams.GetTeamMember(ctx, teamId, userId)
	if err == nil {
		return true, nil
	}
	if errors.Is(err, repository.ErrNotFound) {
		return false, nil
	}
	return false, err
}

// isParticipant: член команды или ее менеджер.
func isParticipant(ctx context.Context, teams TeamReader, team *domain.Team, userId uuid.UUID) (bool, error) {
	if team.ManagerId == userId {
		return true, nil
	}
	return isMember(ctx, teams, team.Id, userId)
}
