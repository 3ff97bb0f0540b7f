package memory

import (
	"context"

	"github.com/google/uuid"
	"github.com/niklvrr/EmToolBackend/internal/domain"
	"github.com/niklvrr/EmToolBackend/internal/infrastructure/repository"
)

func (s *Store) CreateNotification(_ context.Context, n *domain.Notification) (*domain.Notification, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.users[n.UserId]; !ok {
		return nil, repository.ErrInvalidInput
	}

	stored := clone(n)
	stored.IsRead = false
	stored.CreatedAt = s.stamp(n.CreatedAt)
	s.notifications[stored.Id] = stored
	return clone(stored), nil
}

func (s *Store) ListNotificationsByUser(_ context.Context, userId uuid.UUID) ([]*domain.Notification, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return filter(s.notifications,
		func(n *domain.Notification) bool { return n.UserId == userId },
		func(a, b *domain.Notification) bool { return a.CreatedAt.After(b.CreatedAt) },
	), nil
}

func (s *Store) CountUnread(_ context.Context, userId uuid.UUID) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	count := 0
	for _, n := range s.notifications {
		if n.UserId == userId && !n.IsRead {
			count++
		}
	}
	return count, nil
}

func (s *Store) MarkNotificationRead(_ context.Context, id uuid.UUID) (*domain.Notification, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	n, ok := s.notifications[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	n.IsRead = true
	return clone(n), nil
}

func (s *Store) DeleteNotification(_ context.Context, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.notifications[id]; !ok {
		return repository.ErrNotFound
	}
	delete(s.notifications, id)
	return nil
}

func (s *Store) DeleteUserNotifications(_ context.Context, userId uuid.UUID) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var deleted int64
	for id, n := range s.notifications {
		if n.UserId == userId {
			delete(s.notifications, id)
			deleted++
		}
	}
	return deleted, nil
}
