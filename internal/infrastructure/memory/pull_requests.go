package memory

import (
	"context"

	"github.com/google/uuid"
	"github.com/niklvrr/EmToolBackend/internal/domain"
	"github.com/niklvrr/EmToolBackend/internal/infrastructure/repository"
)

// prView подставляет команду из задачи.
func (s *Store) prView(pr *domain.PullRequest) *domain.PullRequest {
	c := clone(pr)
	if w, ok := s.works[pr.WorkId]; ok {
		c.TeamId = w.TeamId
	}
	return c
}

func (s *Store) listPrs(keep func(*domain.PullRequest) bool) []*domain.PullRequest {
	prs := filter(s.prs, keep, func(a, b *domain.PullRequest) bool { return a.CreatedAt.Before(b.CreatedAt) })
	for i, pr := range prs {
		prs[i] = s.prView(pr)
	}
	return prs
}

func (s *Store) CreatePr(_ context.Context, pr *domain.PullRequest) (*domain.PullRequest, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, workOk := s.works[pr.WorkId]
	_, userOk := s.users[pr.CreatedById]
	if !workOk || !userOk {
		return nil, repository.ErrInvalidInput
	}
	if _, ok := s.prs[pr.Id]; ok {
		return nil, repository.ErrAlreadyExists
	}
	// Не больше одного открытого PR на задачу
	if pr.Status == domain.PrPending {
		for _, other := range s.prs {
			if other.WorkId == pr.WorkId && other.Status == domain.PrPending {
				return nil, repository.ErrAlreadyExists
			}
		}
	}

	stored := clone(pr)
	stored.CreatedAt = s.stamp(pr.CreatedAt)
	stored.UpdatedAt = stored.CreatedAt
	s.prs[stored.Id] = stored
	return s.prView(stored), nil
}

func (s *Store) GetPrById(_ context.Context, id uuid.UUID) (*domain.PullRequest, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	pr, ok := s.prs[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return s.prView(pr), nil
}

func (s *Store) ListPrsByWork(_ context.Context, workId uuid.UUID) ([]*domain.PullRequest, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.listPrs(func(pr *domain.PullRequest) bool { return pr.WorkId == workId }), nil
}

func (s *Store) ListPrsByUser(_ context.Context, userId uuid.UUID) ([]*domain.PullRequest, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.listPrs(func(pr *domain.PullRequest) bool { return pr.CreatedById == userId }), nil
}

func (s *Store) ListPrsByTeam(_ context.Context, teamId uuid.UUID) ([]*domain.PullRequest, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.listPrs(func(pr *domain.PullRequest) bool {
		w, ok := s.works[pr.WorkId]
		return ok && w.TeamId == teamId
	}), nil
}

func (s *Store) UpdatePrStatus(_ context.Context, id uuid.UUID, from, to domain.PrStatus) (*domain.PullRequest, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	pr, ok := s.prs[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	if pr.Status != from {
		return nil, repository.ErrConflict
	}

	pr.Status = to
	pr.UpdatedAt = s.now()
	return s.prView(pr), nil
}

func (s *Store) SetPrReadiness(_ context.Context, id uuid.UUID, ready bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	pr, ok := s.prs[id]
	if !ok {
		return repository.ErrNotFound
	}
	pr.IsReadyForApproval = ready
	pr.UpdatedAt = s.now()
	return nil
}

func (s *Store) DeletePr(_ context.Context, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.prs[id]; !ok {
		return repository.ErrNotFound
	}
	s.deletePrLocked(id)
	return nil
}

func (s *Store) deletePrLocked(id uuid.UUID) {
	for rid, rv := range s.reviews {
		if rv.PullRequestId == id {
			delete(s.reviews, rid)
		}
	}
	delete(s.prs, id)
}

func byReviewedAt(a, b *domain.Review) bool {
	return a.ReviewedAt.Before(b.ReviewedAt)
}

func (s *Store) CreateReview(_ context.Context, rv *domain.Review) (*domain.Review, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, prOk := s.prs[rv.PullRequestId]
	_, userOk := s.users[rv.ReviewerId]
	if !prOk || !userOk {
		return nil, repository.ErrInvalidInput
	}
	for _, other := range s.reviews {
		if other.PullRequestId == rv.PullRequestId && other.ReviewerId == rv.ReviewerId {
			return nil, repository.ErrAlreadyExists
		}
	}

	stored := clone(rv)
	stored.ReviewedAt = s.stamp(rv.ReviewedAt)
	s.reviews[stored.Id] = stored
	return clone(stored), nil
}

func (s *Store) GetReviewById(_ context.Context, id uuid.UUID) (*domain.Review, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rv, ok := s.reviews[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return clone(rv), nil
}

func (s *Store) GetReviewByReviewer(_ context.Context, prId, reviewerId uuid.UUID) (*domain.Review, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, rv := range s.reviews {
		if rv.PullRequestId == prId && rv.ReviewerId == reviewerId {
			return clone(rv), nil
		}
	}
	return nil, repository.ErrNotFound
}

func (s *Store) ListReviewsByPr(_ context.Context, prId uuid.UUID) ([]*domain.Review, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return filter(s.reviews, func(rv *domain.Review) bool { return rv.PullRequestId == prId }, byReviewedAt), nil
}

func (s *Store) ListReviewsByUser(_ context.Context, userId uuid.UUID) ([]*domain.Review, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return filter(s.reviews, func(rv *domain.Review) bool { return rv.ReviewerId == userId }, byReviewedAt), nil
}

func (s *Store) UpdateReview(_ context.Context, rv *domain.Review) (*domain.Review, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	stored, ok := s.reviews[rv.Id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	stored.Status = rv.Status
	stored.Comments = rv.Comments
	stored.ReviewedAt = s.now()
	return clone(stored), nil
}

func (s *Store) DeleteReview(_ context.Context, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.reviews[id]; !ok {
		return repository.ErrNotFound
	}
	delete(s.reviews, id)
	return nil
}
