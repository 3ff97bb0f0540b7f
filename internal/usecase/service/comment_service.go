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
	addCommentError    = errors.New("add comment error")
	getCommentError    = errors.New("get comment error")
	editCommentError   = errors.New("edit comment error")
	deleteCommentError = errors.New("delete comment error")
)

type CommentService struct {
	repo  CommentRepository
	works WorkReader
	teams TeamReader
	users UserReader
	log   *zap.Logger
}

func NewCommentService(repo CommentRepository, works WorkReader, teams TeamReader, users UserReader, log *zap.Logger) *CommentService {
	return &CommentService{
		repo:  repo,
		works: works,
		teams: teams,
		users: users,
		log:   log,
	}
}

// AddComment: комментировать могут участники команды задачи и ее менеджер.
func (s *CommentService) AddComment(ctx context.Context, req *request.AddCommentRequest) (*response.CommentResponse, error) {
	s.log.Info("addComment request accepted",
		zap.String("task_id", req.WorkId),
		zap.String("user_id", req.UserId),
	)

	if err := request.Validate(req); err != nil {
		return nil, invalidInput(err)
	}
	workId, err := parseID(req.WorkId, "task_id")
	if err != nil {
		return nil, err
	}
	userId, err := parseID(req.UserId, "user_id")
	if err != nil {
		return nil, err
	}

	work, err := loadWork(ctx, s.works, workId, addCommentError)
	if err != nil {
		return nil, err
	}
	if _, err := loadUser(ctx, s.users, userId, addCommentError); err != nil {
		return nil, err
	}
	team, err := loadTeam(ctx, s.teams, work.TeamId, addCommentError)
	if err != nil {
		return nil, err
	}
	ok, err := isParticipant(ctx, s.teams, team, userId)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", addCommentError, err)
	}
	if !ok {
		return nil, ErrNotTeamMember
	}

	// Запрос в бд
	comment, err := s.repo.CreateComment(ctx, &domain.WorkComment{
		Id:      uuid.New(),
		WorkId:  workId,
		UserId:  userId,
		Comment: req.Comment,
	})
	if err != nil {
		s.log.Error("failed to add comment",
			zap.String("task_id", req.WorkId),
			zap.Error(err),
		)
		return nil, mapRepoError(err, addCommentError, nil, nil)
	}

	s.log.Info("comment added", zap.String("comment_id", comment.Id.String()))

	return response.NewCommentResponse(comment), nil
}

func (s *CommentService) GetComments(ctx context.Context, rawWorkId string) ([]*response.CommentResponse, error) {
	s.log.Info("getComments request accepted",
		zap.String("task_id", rawWorkId),
	)

	workId, err := parseID(rawWorkId, "task_id")
	if err != nil {
		return nil, err
	}
	if _, err := loadWork(ctx, s.works, workId, getCommentError); err != nil {
		return nil, err
	}

	comments, err := s.repo.ListComments(ctx, workId)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", getCommentError, err)
	}

	return response.NewCommentResponses(comments), nil
}

func (s *CommentService) EditComment(ctx context.Context, req *request.EditCommentRequest) (*response.CommentResponse, error) {
	s.log.Info("editComment request accepted",
		zap.String("comment_id", req.CommentId),
		zap.String("user_id", req.UserId),
	)

	if err := request.Validate(req); err != nil {
		return nil, invalidInput(err)
	}
	commentId, err := parseID(req.CommentId, "comment_id")
	if err != nil {
		return nil, err
	}
	userId, err := parseID(req.UserId, "user_id")
	if err != nil {
		return nil, err
	}

	comment, err := s.repo.GetCommentById(ctx, commentId)
	if err != nil {
		return nil, mapRepoError(err, editCommentError, ErrCommentNotFound, nil)
	}
	if comment.UserId != userId {
		return nil, ErrNotAuthor
	}

	comment.Comment = req.Comment

	// Запрос в бд
	updated, err := s.repo.UpdateComment(ctx, comment)
	if err != nil {
		s.log.Error("failed to edit comment",
			zap.String("comment_id", req.CommentId),
			zap.Error(err),
		)
		return nil, mapRepoError(err, editCommentError, ErrCommentNotFound, nil)
	}

	return response.NewCommentResponse(updated), nil
}

// DeleteComment: удалить может автор или менеджер команды задачи.
func (s *CommentService) DeleteComment(ctx context.Context, rawCommentId, rawUserId string) error {
	s.log.Info("deleteComment request accepted",
		zap.String("comment_id", rawCommentId),
		zap.String("user_id", rawUserId),
	)

	commentId, err := parseID(rawCommentId, "comment_id")
	if err != nil {
		return err
	}
	userId, err := parseID(rawUserId, "user_id")
	if err != nil {
		return err
	}

	comment, err := s.repo.GetCommentById(ctx, commentId)
	if err != nil {
		return mapRepoError(err, deleteCommentError, ErrCommentNotFound, nil)
	}

	if comment.UserId != userId {
		work, err := loadWork(ctx, s.works, comment.WorkId, deleteCommentError)
		if err != nil {
			return err
		}
		team, err := loadTeam(ctx, s.teams, work.TeamId, deleteCommentError)
		if err != nil {
			return err
		}
		if team.ManagerId != userId {
			return ErrNotAuthor
		}
	}

	if err := s.repo.DeleteComment(ctx, commentId); err != nil {
		return mapRepoError(err, deleteCommentError, ErrCommentNotFound, nil)
	}

	s.log.Info("comment deleted", zap.String("comment_id", rawCommentId))
	return nil
}
