package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/niklvrr/EmToolBackend/internal/domain"
	"github.com/niklvrr/EmToolBackend/internal/infrastructure/repository"
	"github.com/niklvrr/EmToolBackend/internal/transport/dto/request"
	"github.com/niklvrr/EmToolBackend/internal/transport/dto/response"
	"go.uber.org/zap"
)

var (
	createPrError  = errors.New("create pull request error")
	getPrError     = errors.New("get pull request error")
	approvalError  = errors.New("approval status error")
	updatePrError  = errors.New("update pull request status error")
	deletePrError  = errors.New("delete pull request error")
	errFinalStatus = errors.New("status must be Approved or Rejected")
)

type PrService struct {
	repo     PrRepository
	reviews  ReviewLister
	works    WorkReader
	teams    TeamReader
	users    UserReader
	notifier Notifier
	log      *zap.Logger
}

func NewPrService(repo PrRepository, reviews ReviewLister, works WorkReader, teams TeamReader, users UserReader, notifier Notifier, log *zap.Logger) *PrService {
	return &PrService{
		repo:     repo,
		reviews:  reviews,
		works:    works,
		teams:    teams,
		users:    users,
		notifier: notifier,
		log:      log,
	}
}

// CreatePullRequest: PR создает исполнитель задачи, на задачу допускается один Pending PR.
func (s *PrService) CreatePullRequest(ctx context.Context, req *request.CreatePrRequest) (*response.PullRequestResponse, error) {
	s.log.Info("createPullRequest request accepted",
		zap.String("task_id", req.WorkId),
		zap.String("created_by_id", req.CreatedById),
	)

	if err := request.Validate(req); err != nil {
		return nil, invalidInput(err)
	}
	workId, err := parseID(req.WorkId, "work_id")
	if err != nil {
		return nil, err
	}
	authorId, err := parseID(req.CreatedById, "created_by_id")
	if err != nil {
		return nil, err
	}

	work, err := loadWork(ctx, s.works, workId, createPrError)
	if err != nil {
		return nil, err
	}
	if _, err := loadUser(ctx, s.users, authorId, createPrError); err != nil {
		return nil, err
	}
	if work.AssignedTo != authorId {
		return nil, ErrNotAssignee
	}

	// Запрос в бд
	pr, err := s.repo.CreatePr(ctx, &domain.PullRequest{
		Id:             uuid.New(),
		WorkId:         workId,
		CreatedById:    authorId,
		Link:           strings.TrimSpace(req.Link),
		Description:    req.Description,
		AttachmentPath: req.AttachmentPath,
		Status:         domain.PrPending,
	})
	if err != nil {
		s.log.Error("failed to create pull request",
			zap.String("task_id", req.WorkId),
			zap.Error(err),
		)
		return nil, mapRepoError(err, createPrError, nil, ErrPendingPrExists)
	}

	s.log.Info("pull request created",
		zap.String("pr_id", pr.Id.String()),
		zap.String("task_id", pr.WorkId.String()),
	)

	return response.NewPullRequestResponse(pr), nil
}

func (s *PrService) GetPullRequestById(ctx context.Context, rawId string) (*response.PullRequestResponse, error) {
	s.log.Info("getPullRequest request accepted",
		zap.String("pr_id", rawId),
	)

	id, err := parseID(rawId, "pr_id")
	if err != nil {
		return nil, err
	}

	pr, err := s.loadPr(ctx, id, getPrError)
	if err != nil {
		return nil, err
	}

	return response.NewPullRequestResponse(pr), nil
}

func (s *PrService) GetPullRequestsOfWork(ctx context.Context, rawWorkId string) ([]*response.PullRequestResponse, error) {
	s.log.Info("getPullRequestsOfWork request accepted",
		zap.String("task_id", rawWorkId),
	)

	workId, err := parseID(rawWorkId, "task_id")
	if err != nil {
		return nil, err
	}
	if _, err := loadWork(ctx, s.works, workId, getPrError); err != nil {
		return nil, err
	}

	prs, err := s.repo.ListPrsByWork(ctx, workId)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", getPrError, err)
	}

	return response.NewPullRequestResponses(prs), nil
}

func (s *PrService) GetPullRequestsOfUser(ctx context.Context, rawUserId string) ([]*response.PullRequestResponse, error) {
	s.log.Info("getPullRequestsOfUser request accepted",
		zap.String("user_id", rawUserId),
	)

	userId, err := parseID(rawUserId, "user_id")
	if err != nil {
		return nil, err
	}
	if _, err := loadUser(ctx, s.users, userId, getPrError); err != nil {
		return nil, err
	}

	prs, err := s.repo.ListPrsByUser(ctx, userId)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", getPrError, err)
	}

	return response.NewPullRequestResponses(prs), nil
}

func (s *PrService) GetPullRequestsOfTeam(ctx context.Context, rawTeamId string) ([]*response.PullRequestResponse, error) {
	s.log.Info("getPullRequestsOfTeam request accepted",
		zap.String("team_id", rawTeamId),
	)

	teamId, err := parseID(rawTeamId, "team_id")
	if err != nil {
		return nil, err
	}
	if _, err := loadTeam(ctx, s.teams, teamId, getPrError); err != nil {
		return nil, err
	}

	prs, err := s.repo.ListPrsByTeam(ctx, teamId)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", getPrError, err)
	}

	return response.NewPullRequestResponses(prs), nil
}

// GetApprovalStatus считает одобрения и обновляет сохраненный флаг готовности, если он устарел.
func (s *PrService) GetApprovalStatus(ctx context.Context, rawId string) (*response.ApprovalStatusResponse, error) {
	s.log.Info("getApprovalStatus request accepted",
		zap.String("pr_id", rawId),
	)

	id, err := parseID(rawId, "pr_id")
	if err != nil {
		return nil, err
	}

	pr, err := s.loadPr(ctx, id, approvalError)
	if err != nil {
		return nil, err
	}
	summary, err := s.summarize(ctx, pr.Id)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", approvalError, err)
	}

	if pr.Status == domain.PrPending && pr.IsReadyForApproval != summary.Eligible {
		if err := s.repo.SetPrReadiness(ctx, pr.Id, summary.Eligible); err != nil {
			return nil, mapRepoError(err, approvalError, ErrPrNotFound, nil)
		}
		pr.IsReadyForApproval = summary.Eligible
	}

	s.log.Info("approval status calculated",
		zap.String("pr_id", rawId),
		zap.Int("approved", summary.Approved),
		zap.Int("total", summary.Total),
		zap.Bool("eligible", summary.Eligible),
	)

	return response.NewApprovalStatusResponse(pr, summary), nil
}

// UpdateStatus переводит Pending PR в Approved или Rejected. Решение принимает менеджер, назначивший задачу.
func (s *PrService) UpdateStatus(ctx context.Context, req *request.UpdatePrStatusRequest) (*response.PullRequestResponse, error) {
	s.log.Info("updatePrStatus request accepted",
		zap.String("pr_id", req.PrId),
		zap.String("manager_id", req.ManagerId),
		zap.String("status", req.Status),
	)

	if err := request.Validate(req); err != nil {
		return nil, invalidInput(err)
	}
	prId, err := parseID(req.PrId, "pr_id")
	if err != nil {
		return nil, err
	}
	managerId, err := parseID(req.ManagerId, "manager_id")
	if err != nil {
		return nil, err
	}
	status, err := domain.ParsePrStatus(req.Status)
	if err != nil {
		return nil, invalidInput(err)
	}
	if !status.IsFinal() {
		return nil, invalidInput(errFinalStatus)
	}

	manager, err := loadUser(ctx, s.users, managerId, updatePrError)
	if err != nil {
		return nil, err
	}
	if !manager.IsManager() {
		return nil, ErrNotManager
	}
	pr, err := s.loadPr(ctx, prId, updatePrError)
	if err != nil {
		return nil, err
	}
	work, err := loadWork(ctx, s.works, pr.WorkId, updatePrError)
	if err != nil {
		return nil, err
	}
	if work.AssignedBy != manager.Id {
		return nil, ErrNotAssigningMgr
	}
	if pr.Status.IsFinal() {
		return nil, ErrPrClosed
	}

	if status == domain.PrApproved {
		summary, err := s.summarize(ctx, pr.Id)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", updatePrError, err)
		}
		if !summary.Eligible {
			return nil, ErrPrNotEligible
		}
	}

	// Условное обновление: статус меняется, только если PR все еще Pending
	updated, err := s.repo.UpdatePrStatus(ctx, pr.Id, domain.PrPending, status)
	if err != nil {
		s.log.Error("failed to update pull request status",
			zap.String("pr_id", req.PrId),
			zap.Error(err),
		)
		if errors.Is(err, repository.ErrConflict) {
			return nil, WrapError(ErrPrClosed, err)
		}
		return nil, mapRepoError(err, updatePrError, ErrPrNotFound, nil)
	}

	s.log.Info("pull request status updated",
		zap.String("pr_id", updated.Id.String()),
		zap.String("status", string(updated.Status)),
	)

	if s.notifier != nil {
		msg := fmt.Sprintf("Your pull request for task %q was %s", work.Title, strings.ToLower(string(updated.Status)))
		if err := s.notifier.Notify(ctx, updated.CreatedById, NotifyPrStatus, msg); err != nil {
			s.log.Warn("failed to notify pull request author",
				zap.String("pr_id", updated.Id.String()),
				zap.Error(err),
			)
		}
	}

	return response.NewPullRequestResponse(updated), nil
}

func (s *PrService) DeletePullRequest(ctx context.Context, rawId string) error {
	s.log.Info("deletePullRequest request accepted",
		zap.String("pr_id", rawId),
	)

	id, err := parseID(rawId, "pr_id")
	if err != nil {
		return err
	}

	if err := s.repo.DeletePr(ctx, id); err != nil {
		return mapRepoError(err, deletePrError, ErrPrNotFound, nil)
	}

	s.log.Info("pull request deleted", zap.String("pr_id", rawId))
	return nil
}

func (s *PrService) loadPr(ctx context.Context, id uuid.UUID, opErr error) (*domain.PullRequest, error) {
	pr, err := s.repo.GetPrById(ctx, id)
	if err != nil {
		return nil, mapRepoError(err, opErr, ErrPrNotFound, nil)
	}
	return pr, nil
}

func (s *PrService) summarize(ctx context.Context, prId uuid.UUID) (domain.ApprovalSummary, error) {
	reviews, err := s.reviews.ListReviewsByPr(ctx, prId)
	if err != nil {
		return domain.ApprovalSummary{}, err
	}
	return domain.SummarizeReviews(reviews), nil
}
