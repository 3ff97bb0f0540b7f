package memory

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/niklvrr/EmToolBackend/internal/domain"
	"github.com/niklvrr/EmToolBackend/internal/infrastructure/repository"
)

func (s *Store) workTitleTaken(w *domain.Work) bool {
	for _, other := range s.works {
		if other.Id != w.Id && other.TeamId == w.TeamId && other.Title == w.Title {
			return true
		}
	}
	return false
}

func byDeadline(a, b *domain.Work) bool {
	if !a.Deadline.Equal(b.Deadline) {
		return a.Deadline.Before(b.Deadline)
	}
	return a.CreatedAt.Before(b.CreatedAt)
}

func (s *Store) CreateWork(_ context.Context, w *domain.Work) (*domain.Work, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, teamOk := s.teams[w.TeamId]
	_, byOk := s.users[w.AssignedBy]
	_, toOk := s.users[w.AssignedTo]
	if !teamOk || !byOk || !toOk {
		return nil, repository.ErrInvalidInput
	}
	if _, ok := s.works[w.Id]; ok || s.workTitleTaken(w) {
		return nil, repository.ErrAlreadyExists
	}

	stored := clone(w)
	stored.CreatedAt = s.stamp(w.CreatedAt)
	stored.UpdatedAt = stored.CreatedAt
	s.works[stored.Id] = stored
	return clone(stored), nil
}

func (s *Store) GetWorkById(_ context.Context, id uuid.UUID) (*domain.Work, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	w, ok := s.works[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return clone(w), nil
}

func (s *Store) ListWorksByAssignee(_ context.Context, userId uuid.UUID) ([]*domain.Work, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return filter(s.works, func(w *domain.Work) bool { return w.AssignedTo == userId }, byDeadline), nil
}

func (s *Store) ListWorksByTeam(_ context.Context, teamId uuid.UUID) ([]*domain.Work, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return filter(s.works, func(w *domain.Work) bool { return w.TeamId == teamId }, byDeadline), nil
}

func (s *Store) UpdateWork(_ context.Context, w *domain.Work) (*domain.Work, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	stored, ok := s.works[w.Id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	if _, ok := s.users[w.AssignedTo]; !ok {
		return nil, repository.ErrInvalidInput
	}

	probe := clone(stored)
	probe.Title = w.Title
	if s.workTitleTaken(probe) {
		return nil, repository.ErrAlreadyExists
	}

	stored.Title = w.Title
	stored.Description = w.Description
	stored.AssignedTo = w.AssignedTo
	stored.Status = w.Status
	stored.Deadline = w.Deadline
	stored.UpdatedAt = s.now()
	return clone(stored), nil
}

// DeleteWork удаляет задачу вместе с комментариями, вложениями, PR и их ревью.
func (s *Store) DeleteWork(_ context.Context, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.works[id]; !ok {
		return repository.ErrNotFound
	}

	for cid, c := range s.comments {
		if c.WorkId == id {
			delete(s.comments, cid)
		}
	}
	for aid, a := range s.attachments {
		if a.WorkId == id {
			delete(s.attachments, aid)
		}
	}
	for pid, pr := range s.prs {
		if pr.WorkId == id {
			s.deletePrLocked(pid)
		}
	}
	delete(s.works, id)
	return nil
}

func (s *Store) CreateComment(_ context.Context, c *domain.WorkComment) (*domain.WorkComment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, workOk := s.works[c.WorkId]
	_, userOk := s.users[c.UserId]
	if !workOk || !userOk {
		return nil, repository.ErrInvalidInput
	}

	stored := clone(c)
	stored.CommentedOn = s.stamp(c.CommentedOn)
	s.comments[stored.Id] = stored
	return clone(stored), nil
}

func (s *Store) GetCommentById(_ context.Context, id uuid.UUID) (*domain.WorkComment, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	c, ok := s.comments[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return clone(c), nil
}

func (s *Store) ListComments(_ context.Context, workId uuid.UUID) ([]*domain.WorkComment, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return filter(s.comments,
		func(c *domain.WorkComment) bool { return c.WorkId == workId },
		func(a, b *domain.WorkComment) bool { return a.CommentedOn.Before(b.CommentedOn) },
	), nil
}

func (s *Store) UpdateComment(_ context.Context, c *domain.WorkComment) (*domain.WorkComment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	stored, ok := s.comments[c.Id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	stored.Comment = c.Comment
	return clone(stored), nil
}

func (s *Store) DeleteComment(_ context.Context, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.comments[id]; !ok {
		return repository.ErrNotFound
	}
	delete(s.comments, id)
	return nil
}

func byCreated(a, b *domain.WorkAttachment) bool {
	return a.CreatedAt.Before(b.CreatedAt)
}

func (s *Store) CreateAttachment(_ context.Context, a *domain.WorkAttachment) (*domain.WorkAttachment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, workOk := s.works[a.WorkId]
	_, userOk := s.users[a.UserId]
	if !workOk || !userOk {
		return nil, repository.ErrInvalidInput
	}

	stored := clone(a)
	stored.CreatedAt = s.stamp(a.CreatedAt)
	s.attachments[stored.Id] = stored
	return clone(stored), nil
}

func (s *Store) GetAttachmentById(_ context.Context, id uuid.UUID) (*domain.WorkAttachment, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	a, ok := s.attachments[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return clone(a), nil
}

func (s *Store) ListAttachmentsByWork(_ context.Context, workId uuid.UUID) ([]*domain.WorkAttachment, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return filter(s.attachments, func(a *domain.WorkAttachment) bool { return a.WorkId == workId }, byCreated), nil
}

func (s *Store) ListAttachmentsByUser(_ context.Context, userId uuid.UUID) ([]*domain.WorkAttachment, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return filter(s.attachments, func(a *domain.WorkAttachment) bool { return a.UserId == userId }, byCreated), nil
}

func (s *Store) SearchAttachments(_ context.Context, fileName string) ([]*domain.WorkAttachment, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	needle := strings.ToLower(fileName)
	return filter(s.attachments,
		func(a *domain.WorkAttachment) bool { return strings.Contains(strings.ToLower(a.FileName), needle) },
		func(a, b *domain.WorkAttachment) bool {
			if a.FileName != b.FileName {
				return a.FileName < b.FileName
			}
			return a.CreatedAt.Before(b.CreatedAt)
		},
	), nil
}

func (s *Store) UpdateAttachment(_ context.Context, a *domain.WorkAttachment) (*domain.WorkAttachment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	stored, ok := s.attachments[a.Id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	stored.FileName = a.FileName
	stored.FilePath = a.FilePath
	stored.FileType = a.FileType
	return clone(stored), nil
}

func (s *Store) DeleteAttachment(_ context.Context, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.attachments[id]; !ok {
		return repository.ErrNotFound
	}
	delete(s.attachments, id)
	return nil
}
