package memory

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/niklvrr/EmToolBackend/internal/domain"
	"github.com/niklvrr/EmToolBackend/internal/infrastructure/repository"
)

func (s *Store) teamNameTaken(t *domain.Team) bool {
	for _, other := range s.teams {
		if other.Id != t.Id && other.ManagerId == t.ManagerId && other.Name == t.Name {
			return true
		}
	}
	return false
}

func (s *Store) CreateTeam(_ context.Context, t *domain.Team) (*domain.Team, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.users[t.ManagerId]; !ok {
		return nil, repository.ErrInvalidInput
	}
	if _, ok := s.teams[t.Id]; ok || s.teamNameTaken(t) {
		return nil, repository.ErrAlreadyExists
	}

	stored := clone(t)
	stored.CreatedAt = s.stamp(t.CreatedAt)
	s.teams[stored.Id] = stored
	return clone(stored), nil
}

func (s *Store) GetTeamById(_ context.Context, id uuid.UUID) (*domain.Team, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	t, ok := s.teams[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return clone(t), nil
}

func byTeamName(a, b *domain.Team) bool {
	if a.Name != b.Name {
		return a.Name < b.Name
	}
	return a.CreatedAt.Before(b.CreatedAt)
}

func (s *Store) ListTeamsByName(_ context.Context, name string) ([]*domain.Team, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return filter(s.teams,
		func(t *domain.Team) bool { return name == "" || strings.EqualFold(t.Name, name) },
		byTeamName,
	), nil
}

func (s *Store) ListTeamsByManager(_ context.Context, managerId uuid.UUID) ([]*domain.Team, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return filter(s.teams,
		func(t *domain.Team) bool { return t.ManagerId == managerId },
		byTeamName,
	), nil
}

func (s *Store) UpdateTeam(_ context.Context, t *domain.Team) (*domain.Team, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	stored, ok := s.teams[t.Id]
	if !ok {
		return nil, repository.ErrNotFound
	}

	probe := clone(stored)
	probe.Name = t.Name
	if s.teamNameTaken(probe) {
		return nil, repository.ErrAlreadyExists
	}

	stored.Name = t.Name
	return clone(stored), nil
}

func (s *Store) DeleteTeam(_ context.Context, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.teams[id]; !ok {
		return repository.ErrNotFound
	}
	for _, m := range s.members {
		if m.TeamId == id {
			return repository.ErrInUse
		}
	}
	for _, w := range s.works {
		if w.TeamId == id {
			return repository.ErrInUse
		}
	}
	for _, m := range s.meetings {
		if m.TeamId == id {
			return repository.ErrInUse
		}
	}

	delete(s.teams, id)
	return nil
}

func (s *Store) memberView(m *domain.TeamMember) *domain.TeamMember {
	c := clone(m)
	if u, ok := s.users[m.UserId]; ok {
		c.Username = u.Username
		if r, ok := s.roles[u.RoleId]; ok {
			c.RoleName = r.Name
		}
	}
	return c
}

func (s *Store) AddTeamMember(_ context.Context, m *domain.TeamMember) (*domain.TeamMember, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, teamOk := s.teams[m.TeamId]
	_, userOk := s.users[m.UserId]
	_, adderOk := s.users[m.AddedById]
	if !teamOk || !userOk || !adderOk {
		return nil, repository.ErrInvalidInput
	}
	for _, other := range s.members {
		if other.TeamId == m.TeamId && other.UserId == m.UserId {
			return nil, repository.ErrAlreadyExists
		}
	}

	stored := clone(m)
	stored.JoinedAt = s.stamp(m.JoinedAt)
	s.members[stored.Id] = stored
	return s.memberView(stored), nil
}

func (s *Store) GetTeamMember(_ context.Context, teamId, userId uuid.UUID) (*domain.TeamMember, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, m := range s.members {
		if m.TeamId == teamId && m.UserId == userId {
			return s.memberView(m), nil
		}
	}
	return nil, repository.ErrNotFound
}

func (s *Store) ListTeamMembers(_ context.Context, teamId uuid.UUID) ([]*domain.TeamMember, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	members := make([]*domain.TeamMember, 0)
	for _, m := range s.members {
		if m.TeamId == teamId {
			members = append(members, s.memberView(m))
		}
	}
	sortMembers(members)
	return members, nil
}

func (s *Store) DeleteTeamMember(_ context.Context, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.members[id]; !ok {
		return repository.ErrNotFound
	}
	delete(s.members, id)
	return nil
}
