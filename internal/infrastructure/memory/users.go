package memory

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/niklvrr/EmToolBackend/internal/domain"
	"github.com/niklvrr/EmToolBackend/internal/infrastructure/repository"
)

func (s *Store) CreateRole(_ context.Context, role *domain.Role) (*domain.Role, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, r := range s.roles {
		if r.Name == role.Name {
			return nil, repository.ErrAlreadyExists
		}
	}

	stored := clone(role)
	stored.CreatedAt = s.stamp(role.CreatedAt)
	s.roles[stored.Id] = stored
	return clone(stored), nil
}

func (s *Store) GetRoleById(_ context.Context, id uuid.UUID) (*domain.Role, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	r, ok := s.roles[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return clone(r), nil
}

func (s *Store) GetRoleByName(_ context.Context, name string) (*domain.Role, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, r := range s.roles {
		if r.Name == name {
			return clone(r), nil
		}
	}
	return nil, repository.ErrNotFound
}

func (s *Store) ListRoles(_ context.Context) ([]*domain.Role, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return filter(s.roles,
		func(*domain.Role) bool { return true },
		func(a, b *domain.Role) bool { return a.Name < b.Name },
	), nil
}

// userView подставляет имя роли, как JOIN в postgres.
func (s *Store) userView(u *domain.User) *domain.User {
	c := clone(u)
	if r, ok := s.roles[u.RoleId]; ok {
		c.RoleName = r.Name
	}
	return c
}

func (s *Store) userConflicts(u *domain.User) bool {
	for _, other := range s.users {
		if other.Id == u.Id {
			continue
		}
		if other.Username == u.Username || other.Email == u.Email {
			return true
		}
	}
	return false
}

func (s *Store) CreateUser(_ context.Context, u *domain.User) (*domain.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.roles[u.RoleId]; !ok {
		return nil, repository.ErrInvalidInput
	}
	if _, ok := s.users[u.Id]; ok || s.userConflicts(u) {
		return nil, repository.ErrAlreadyExists
	}

	stored := clone(u)
	stored.CreatedAt = s.stamp(u.CreatedAt)
	stored.UpdatedAt = stored.CreatedAt
	s.users[stored.Id] = stored
	return s.userView(stored), nil
}

func (s *Store) GetUserById(_ context.Context, id uuid.UUID) (*domain.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	u, ok := s.users[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return s.userView(u), nil
}

func (s *Store) GetUserByUsername(_ context.Context, username string) (*domain.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, u := range s.users {
		if u.Username == username {
			return s.userView(u), nil
		}
	}
	return nil, repository.ErrNotFound
}

func (s *Store) ListUsers(_ context.Context, username string) ([]*domain.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	needle := strings.ToLower(username)
	users := filter(s.users,
		func(u *domain.User) bool { return strings.Contains(strings.ToLower(u.Username), needle) },
		func(a, b *domain.User) bool { return a.Username < b.Username },
	)
	for i, u := range users {
		users[i] = s.userView(u)
	}
	return users, nil
}

func (s *Store) UpdateUser(_ context.Context, u *domain.User) (*domain.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	stored, ok := s.users[u.Id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	if s.userConflicts(u) {
		return nil, repository.ErrAlreadyExists
	}

	stored.FirstName = u.FirstName
	stored.LastName = u.LastName
	stored.Email = u.Email
	stored.Username = u.Username
	stored.UpdatedAt = s.now()
	return s.userView(stored), nil
}

// DeleteUser: членство в командах и уведомления удаляются каскадом, остальные ссылки запрещают удаление.
func (s *Store) DeleteUser(_ context.Context, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.users[id]; !ok {
		return repository.ErrNotFound
	}
	if s.userReferenced(id) {
		return repository.ErrInUse
	}

	for mid, m := range s.members {
		if m.UserId == id {
			delete(s.members, mid)
		}
	}
	for nid, n := range s.notifications {
		if n.UserId == id {
			delete(s.notifications, nid)
		}
	}
	delete(s.users, id)
	return nil
}

func (s *Store) userReferenced(id uuid.UUID) bool {
	for _, t := range s.teams {
		if t.ManagerId == id {
			return true
		}
	}
	for _, m := range s.members {
		if m.AddedById == id && m.UserId != id {
			return true
		}
	}
	for _, w := range s.works {
		if w.AssignedBy == id || w.AssignedTo == id {
			return true
		}
	}
	for _, c := range s.comments {
		if c.UserId == id {
			return true
		}
	}
	for _, a := range s.attachments {
		if a.UserId == id {
			return true
		}
	}
	for _, pr := range s.prs {
		if pr.CreatedById == id {
			return true
		}
	}
	for _, rv := range s.reviews {
		if rv.ReviewerId == id {
			return true
		}
	}
	for _, m := range s.meetings {
		if m.CreatedBy == id {
			return true
		}
		for _, inv := range m.InvitedUserIds {
			if inv == id {
				return true
			}
		}
	}
	for _, a := range s.attendance {
		if a.UserId == id {
			return true
		}
	}
	return false
}
