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
	uploadAttachmentError = errors.New("upload attachment error")
	getAttachmentError    = errors.New("get attachment error")
	editAttachmentError   = errors.New("edit attachment error")
	deleteAttachmentError = errors.New("delete attachment error")
)

// AttachmentService хранит только метаданные файлов, сами файлы лежат вне сервиса.
type AttachmentService struct {
	repo  AttachmentRepository
	works WorkReader
	users UserReader
	log   *zap.Logger
}

func NewAttachmentService(repo AttachmentRepository, works WorkReader, users UserReader, log *zap.Logger) *AttachmentService {
	return &AttachmentService{
		repo:  repo,
		works: works,
		users: users,
		log:   log,
	}
}

func (s *AttachmentService) UploadAttachment(ctx context.Context, req *request.UploadAttachmentRequest) (*response.AttachmentResponse, error) {
	s.log.Info("uploadAttachment request accepted",
		zap.String("task_id", req.WorkId),
		zap.String("user_id", req.UserId),
		zap.String("file_name", req.FileName),
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

	work, err := loadWork(ctx, s.works, workId, uploadAttachmentError)
	if err != nil {
		return nil, err
	}
	if _, err := loadUser(ctx, s.users, userId, uploadAttachmentError); err != nil {
		return nil, err
	}
	if work.AssignedTo != userId {
		return nil, ErrNotAssignee
	}

	// Запрос в бд
	att, err := s.repo.CreateAttachment(ctx, &domain.WorkAttachment{
		Id:       uuid.New(),
		WorkId:   workId,
		UserId:   userId,
		FileName: strings.TrimSpace(req.FileName),
		FilePath: req.FilePath,
		FileType: req.FileType,
	})
	if err != nil {
		s.log.Error("failed to upload attachment",
			zap.String("task_id", req.WorkId),
			zap.Error(err),
		)
		return nil, mapRepoError(err, uploadAttachmentError, nil, nil)
	}

	s.log.Info("attachment uploaded", zap.String("attachment_id", att.Id.String()))

	return response.NewAttachmentResponse(att), nil
}

// GetAttachmentsOfWork доступен только менеджерам.
func (s *AttachmentService) GetAttachmentsOfWork(ctx context.Context, rawWorkId, rawRequesterId string) ([]*response.AttachmentResponse, error) {
	s.log.Info("getAttachmentsOfWork request accepted",
		zap.String("task_id", rawWorkId),
		zap.String("requester_id", rawRequesterId),
	)

	workId, err := parseID(rawWorkId, "task_id")
	if err != nil {
		return nil, err
	}
	requesterId, err := parseID(rawRequesterId, "requester_id")
	if err != nil {
		return nil, err
	}

	requester, err := loadUser(ctx, s.users, requesterId, getAttachmentError)
	if err != nil {
		return nil, err
	}
	if !requester.IsManager() {
		return nil, ErrNotManager
	}
	if _, err := loadWork(ctx, s.works, workId, getAttachmentError); err != nil {
		return nil, err
	}

	items, err := s.repo.ListAttachmentsByWork(ctx, workId)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", getAttachmentError, err)
	}

	return response.NewAttachmentResponses(items), nil
}

func (s *AttachmentService) GetAttachmentsOfUser(ctx context.Context, rawUserId string) ([]*response.AttachmentResponse, error) {
	s.log.Info("getAttachmentsOfUser request accepted",
		zap.String("user_id", rawUserId),
	)

	userId, err := parseID(rawUserId, "user_id")
	if err != nil {
		return nil, err
	}
	if _, err := loadUser(ctx, s.users, userId, getAttachmentError); err != nil {
		return nil, err
	}

	items, err := s.repo.ListAttachmentsByUser(ctx, userId)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", getAttachmentError, err)
	}

	return response.NewAttachmentResponses(items), nil
}

// SearchAttachments ищет по подстроке имени файла без учета регистра.
func (s *AttachmentService) SearchAttachments(ctx context.Context, fileName string) ([]*response.AttachmentResponse, error) {
	s.log.Info("searchAttachments request accepted",
		zap.String("file_name", fileName),
	)

	fileName = strings.TrimSpace(fileName)
	if fileName == "" {
		return nil, invalidInput(errors.New("name must not be empty"))
	}

	items, err := s.repo.SearchAttachments(ctx, fileName)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", getAttachmentError, err)
	}

	return response.NewAttachmentResponses(items), nil
}

func (s *AttachmentService) EditAttachment(ctx context.Context, req *request.EditAttachmentRequest) (*response.AttachmentResponse, error) {
	s.log.Info("editAttachment request accepted",
		zap.String("attachment_id", req.AttachmentId),
		zap.String("user_id", req.UserId),
	)

	if err := request.Validate(req); err != nil {
		return nil, invalidInput(err)
	}
	id, err := parseID(req.AttachmentId, "attachment_id")
	if err != nil {
		return nil, err
	}
	userId, err := parseID(req.UserId, "user_id")
	if err != nil {
		return nil, err
	}

	att, err := s.repo.GetAttachmentById(ctx, id)
	if err != nil {
		return nil, mapRepoError(err, editAttachmentError, ErrAttachmentNotFound, nil)
	}
	if att.UserId != userId {
		return nil, ErrNotAuthor
	}

	att.FileName = strings.TrimSpace(req.FileName)
	att.FilePath = req.FilePath
	att.FileType = req.FileType

	// Запрос в бд
	updated, err := s.repo.UpdateAttachment(ctx, att)
	if err != nil {
		s.log.Error("failed to edit attachment",
			zap.String("attachment_id", req.AttachmentId),
			zap.Error(err),
		)
		return nil, mapRepoError(err, editAttachmentError, ErrAttachmentNotFound, nil)
	}

	return response.NewAttachmentResponse(updated), nil
}

func (s *AttachmentService) DeleteAttachment(ctx context.Context, rawId string) error {
	s.log.Info("deleteAttachment request accepted",
		zap.String("attachment_id", rawId),
	)

	id, err := parseID(rawId, "attachment_id")
	if err != nil {
		return err
	}

	if err := s.repo.DeleteAttachment(ctx, id); err != nil {
		return mapRepoError(err, deleteAttachmentError, ErrAttachmentNotFound, nil)
	}

	s.log.Info("attachment deleted", zap.String("attachment_id", rawId))
	return nil
}
