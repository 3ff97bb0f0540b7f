package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/niklvrr/EmToolBackend/internal/domain"
	"github.com/niklvrr/EmToolBackend/internal/transport/dto/request"
	"github.com/niklvrr/EmToolBackend/internal/transport/dto/response"
	"go.uber.org/zap"
)

var (
	addReviewError    = errors.New("add review error")
	getReviewError    = errors.New("get review error")
	editReviewError   = errors.New("edit review error")
	deleteReviewError = errors.New("delete review error")
	readinessError    = errors.New("refresh readiness error")
)

// ReviewService после каждого изменения ревью пересчитывает готовность PR к одобрению.
type ReviewService struct {
	repo  ReviewRepository
	prs   PrReadiness
	works WorkReader
	teams TeamReader
	users UserReader
	log   *zap.Logger
}

func NewReviewService(repo ReviewRepository, prs PrReadiness, works WorkReader, teams TeamReader, users UserReader, log *zap.Logger) *ReviewService {
	return &ReviewService{
		repo:  repo,
		prs:   prs,
		works: works,
		teams: teams,
		users: users,
		log:   log,
	}
}

func (s *ReviewService) AddReview(ctx context.Context, req *request.AddReviewRequest) (*response.ReviewResponse, error) {
	s.log.Info("addReview request accepted",
		zap.String("pr_id", req.PrId),
		zap.String("reviewer_id", req.ReviewerId),
		zap.String("status", req.Status),
	)

	if err := request.Validate(req); err != nil {
		return nil, invalidInput(err)
	}
	prId, err := parseID(req.PrId, "pr_id")
	if err != nil {
		return nil, err
	}
	reviewerId, err := parseID(req.ReviewerId, "reviewer_id")
	if err != nil {
		return nil, err
	}
	status, err := domain.ParseReviewStatus(req.Status)
	if err != nil {
		return nil, invalidInput(err)
	}

	pr, err := s.loadPendingPr(ctx, prId, addReviewError)
	if err != nil {
		return nil, err
	}
	if _, err := loadUser(ctx, s.users, reviewerId, addReviewError); err != nil {
		return nil, err
	}
	if pr.CreatedById == reviewerId {
		return nil, ErrSelfReview
	}

	// Ревьюер должен состоять в команде задачи
	work, err := loadWork(ctx, s.works, pr.WorkId, addReviewError)
	if err != nil {
		return nil, err
	}
	member, err := isMember(ctx, s.teams, work.TeamId, reviewerId)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", addReviewError, err)
	}
	if !member {
		return nil, ErrNotTeamMember
	}

	// Запрос в бд
	review, err := s.repo.CreateReview(ctx, &domain.Review{
		Id:            uuid.New(),
		PullRequestId: prId,
		ReviewerId:    reviewerId,
		Status:        status,
		Comments:      req.Comments,
	})
	if err != nil {
		s.log.Error("failed to add review",
			zap.String("pr_id", req.PrId),
			zap.String("reviewer_id", req.ReviewerId),
			zap.Error(err),
		)
		return nil, mapRepoError(err, addReviewError, nil, ErrReviewExists)
	}

	if err := s.refreshReadiness(ctx, prId); err != nil {
		return nil, err
	}

	s.log.Info("review added",
		zap.String("review_id", review.Id.String()),
		zap.String("status", string(review.Status)),
	)

	return response.NewReviewResponse(review), nil
}

func (s *ReviewService) GetReviewsOfPullRequest(ctx context.Context, rawPrId string) ([]*response.ReviewResponse, error) {
	s.log.Info("getReviewsOfPullRequest request accepted",
		zap.String("pr_id", rawPrId),
	)

	prId, err := parseID(rawPrId, "pr_id")
	if err != nil {
		return nil, err
	}
	if _, err := s.prs.GetPrById(ctx, prId); err != nil {
		return nil, mapRepoError(err, getReviewError, ErrPrNotFound, nil)
	}

	reviews, err := s.repo.ListReviewsByPr(ctx, prId)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", getReviewError, err)
	}

	return response.NewReviewResponses(reviews), nil
}

func (s *ReviewService) GetReviewsOfUser(ctx context.Context, rawUserId string) ([]*response.ReviewResponse, error) {
	s.log.Info("getReviewsOfUser request accepted",
		zap.String("user_id", rawUserId),
	)

	userId, err := parseID(rawUserId, "user_id")
	if err != nil {
		return nil, err
	}
	if _, err := loadUser(ctx, s.users, userId, getReviewError); err != nil {
		return nil, err
	}

	reviews, err := s.repo.ListReviewsByUser(ctx, userId)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", getReviewError, err)
	}

	return response.NewReviewResponses(reviews), nil
}

// EditReview меняет собственное ревью пользователя, пока PR в статусе Pending.
func (s *ReviewService) EditReview(ctx context.Context, req *request.EditReviewRequest) (*response.ReviewResponse, error) {
	s.log.Info("editReview request accepted",
		zap.String("pr_id", req.PrId),
		zap.String("reviewer_id", req.ReviewerId),
	)

	if err := request.Validate(req); err != nil {
		return nil, invalidInput(err)
	}
	prId, err := parseID(req.PrId, "pr_id")
	if err != nil {
		return nil, err
	}
	reviewerId, err := parseID(req.ReviewerId, "reviewer_id")
	if err != nil {
		return nil, err
	}
	status, err := domain.ParseReviewStatus(req.Status)
	if err != nil {
		return nil, invalidInput(err)
	}

	if _, err := s.loadPendingPr(ctx, prId, editReviewError); err != nil {
		return nil, err
	}
	review, err := s.repo.GetReviewByReviewer(ctx, prId, reviewerId)
	if err != nil {
		return nil, mapRepoError(err, editReviewError, ErrReviewNotFound, nil)
	}

	review.Status = status
	review.Comments = req.Comments

	// Запрос в бд
	updated, err := s.repo.UpdateReview(ctx, review)
	if err != nil {
		s.log.Error("failed to edit review",
			zap.String("review_id", review.Id.String()),
			zap.Error(err),
		)
		return nil, mapRepoError(err, editReviewError, ErrReviewNotFound, nil)
	}

	if err := s.refreshReadiness(ctx, prId); err != nil {
		return nil, err
	}

	return response.NewReviewResponse(updated), nil
}

func (s *ReviewService) DeleteReview(ctx context.Context, rawId string) error {
	s.log.Info("deleteReview request accepted",
		zap.String("review_id", rawId),
	)

	id, err := parseID(rawId, "review_id")
	if err != nil {
		return err
	}

	review, err := s.repo.GetReviewById(ctx, id)
	if err != nil {
		return mapRepoError(err, deleteReviewError, ErrReviewNotFound, nil)
	}
	if err := s.repo.DeleteReview(ctx, id); err != nil {
		return mapRepoError(err, deleteReviewError, ErrReviewNotFound, nil)
	}

	if err := s.refreshReadiness(ctx, review.PullRequestId); err != nil {
		return err
	}

	s.log.Info("review deleted", zap.String("review_id", rawId))
	return nil
}

func (s *ReviewService) loadPendingPr(ctx context.Context, prId uuid.UUID, opErr error) (*domain.PullRequest, error) {
	pr, err := s.prs.GetPrById(ctx, prId)
	if err != nil {
		return nil, mapRepoError(err, opErr, ErrPrNotFound, nil)
	}
	if pr.Status != domain.PrPending {
		return nil, ErrPrClosed
	}
	return pr, nil
}

// refreshReadiness пересчитывает флаг IsReadyForApproval. Закрытые PR не трогаем.
func (s *ReviewService) refreshReadiness(ctx context.Context, prId uuid.UUID) error {
	pr, err := s.prs.GetPrById(ctx, prId)
	if err != nil {
		return mapRepoError(err, readinessError, ErrPrNotFound, nil)
	}
	if pr.Status != domain.PrPending {
		return nil
	}

	reviews, err := s.repo.ListReviewsByPr(ctx, prId)
	if err != nil {
		return fmt.Errorf("%w: %w", readinessError, err)
	}
	summary := domain.SummarizeReviews(reviews)
	if summary.Eligible == pr.IsReadyForApproval {
		return nil
	}

	if err := s.prs.SetPrReadiness(ctx, prId, summary.Eligible); err != nil {
		return mapRepoError(err, readinessError, ErrPrNotFound, nil)
	}

	s.log.Debug("pull request readiness changed",
		zap.String("pr_id", prId.String()),
		zap.Bool("ready", summary.Eligible),
	)
	return nil
}
