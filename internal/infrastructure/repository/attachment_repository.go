package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/niklvrr/EmToolBackend/internal/domain"
	"go.uber.org/zap"
)

const attachmentColumns = `
    id, work_id, user_id, file_name, file_path, file_type, created_at`

const (
	insertAttachmentQuery = `
INSERT INTO work_attachments (id, work_id, user_id, file_name, file_path, file_type)
VALUES ($1, $2, $3, $4, $5, $6)
RETURNING` + attachmentColumns + `;`

	selectAttachmentByIdQuery = `
SELECT` + attachmentColumns + `
FROM work_attachments
WHERE id = $1;`

	selectAttachmentsByWorkQuery = `
SELECT` + attachmentColumns + `
FROM work_attachments
WHERE work_id = $1
ORDER BY created_at;`

	selectAttachmentsByUserQuery = `
SELECT` + attachmentColumns + `
FROM work_attachments
WHERE user_id = $1
ORDER BY created_at;`

	searchAttachmentsQuery = `
SELECT` + attachmentColumns + `
FROM work_attachments
WHERE file_name ILIKE '%' || $1 || '%'
ORDER BY file_name, created_at;`

	updateAttachmentQuery = `
UPDATE work_attachments
SET file_name = $2,
    file_path = $3,
    file_type = $4
WHERE id = $1
RETURNING` + attachmentColumns + `;`

	deleteAttachmentQuery = `
DELETE FROM work_attachments
WHERE id = $1;`
)

type AttachmentRepository struct {
	db  *pgxpool.Pool
	log *zap.Logger
}

func NewAttachmentRepository(db *pgxpool.Pool, log *zap.Logger) *AttachmentRepository {
	return &AttachmentRepository{
		db:  db,
		log: log,
	}
}

func scanAttachment(row rowScanner) (*domain.WorkAttachment, error) {
	a := &domain.WorkAttachment{}
	err := row.Scan(
		&a.Id,
		&a.WorkId,
		&a.UserId,
		&a.FileName,
		&a.FilePath,
		&a.FileType,
		&a.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return a, nil
}

func (r *AttachmentRepository) CreateAttachment(ctx context.Context, a *domain.WorkAttachment) (*domain.WorkAttachment, error) {
	res, err := scanAttachment(r.db.QueryRow(ctx, insertAttachmentQuery,
		a.Id, a.WorkId, a.UserId, a.FileName, a.FilePath, a.FileType,
	))
	if err != nil {
		r.log.Error("failed to insert attachment",
			zap.String("work_id", a.WorkId.String()),
			zap.String("file_name", a.FileName),
			zap.Error(err),
		)
		return nil, handleDBError(err)
	}
	return res, nil
}

func (r *AttachmentRepository) GetAttachmentById(ctx context.Context, id uuid.UUID) (*domain.WorkAttachment, error) {
	res, err := scanAttachment(r.db.QueryRow(ctx, selectAttachmentByIdQuery, id))
	if err != nil {
		return nil, handleDBError(err)
	}
	return res, nil
}

func (r *AttachmentRepository) ListAttachmentsByWork(ctx context.Context, workId uuid.UUID) ([]*domain.WorkAttachment, error) {
	rows, err := r.db.Query(ctx, selectAttachmentsByWorkQuery, workId)
	if err != nil {
		return nil, handleDBError(err)
	}
	return collect(rows, scanAttachment)
}

func (r *AttachmentRepository) ListAttachmentsByUser(ctx context.Context, userId uuid.UUID) ([]*domain.WorkAttachment, error) {
	rows, err := r.db.Query(ctx, selectAttachmentsByUserQuery, userId)
	if err != nil {
		return nil, handleDBError(err)
	}
	return collect(rows, scanAttachment)
}

func (r *AttachmentRepository) SearchAttachments(ctx context.Context, fileName string) ([]*domain.WorkAttachment, error) {
	rows, err := r.db.Query(ctx, searchAttachmentsQuery, fileName)
	if err != nil {
		return nil, handleDBError(err)
	}
	return collect(rows, scanAttachment)
}

func (r *AttachmentRepository) UpdateAttachment(ctx context.Context, a *domain.WorkAttachment) (*domain.WorkAttachment, error) {
	res, err := scanAttachment(r.db.QueryRow(ctx, updateAttachmentQuery, a.Id, a.FileName, a.FilePath, a.FileType))
	if err != nil {
		return nil, handleDBError(err)
	}
	return res, nil
}

func (r *AttachmentRepository) DeleteAttachment(ctx context.Context, id uuid.UUID) error {
	tag, err := r.db.Exec(ctx, deleteAttachmentQuery, id)
	if err != nil {
		return handleDeleteError(err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
