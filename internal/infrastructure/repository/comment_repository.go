package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/niklvrr/EmToolBackend/internal/domain"
	"go.uber.org/zap"
)

const (
	insertCommentQuery = `
INSERT INTO work_comments (id, work_id, user_id, comment)
VALUES ($1, $2, $3, $4)
RETURNING id, work_id, user_id, comment, commented_on;`

	selectCommentByIdQuery = `
SELECT id, work_id, user_id, comment, commented_on FROM work_comments
WHERE id = $1;`

	selectCommentsQuery = `
SELECT id, work_id, user_id, comment, commented_on FROM work_comments
WHERE work_id = $1
ORDER BY commented_on;`

	updateCommentQuery = `
UPDATE work_comments
SET comment = $2
WHERE id = $1
RETURNING id, work_id, user_id, comment, commented_on;`

	deleteCommentQuery = `
DELETE FROM work_comments
WHERE id = $1;`
)

type CommentRepository struct {
	db  *pgxpool.Pool
	log *zap.Logger
}

func NewCommentRepository(db *pgxpool.Pool, log *zap.Logger) *CommentRepository {
	return &CommentRepository{
		db:  db,
		log: log,
	}
}

func scanComment(row rowScanner) (*domain.WorkComment, error) {
	c := &domain.WorkComment{}
	if err := row.Scan(&c.Id, &c.WorkId, &c.UserId, &c.Comment, &c.CommentedOn); err != nil {
		return nil, err
	}
	return c, nil
}

func (r *CommentRepository) CreateComment(ctx context.Context, c *domain.WorkComment) (*domain.WorkComment, error) {
	res, err := scanComment(r.db.QueryRow(ctx, insertCommentQuery, c.Id, c.WorkId, c.UserId, c.Comment))
	if err != nil {
		r.log.Error("failed to insert comment", zap.String("work_id", c.WorkId.String()), zap.Error(err))
		return nil, handleDBError(err)
	}
	return res, nil
}

func (r *CommentRepository) GetCommentById(ctx context.Context, id uuid.UUID) (*domain.WorkComment, error) {
	res, err := scanComment(r.db.QueryRow(ctx, selectCommentByIdQuery, id))
	if err != nil {
		return nil, handleDBError(err)
	}
	return res, nil
}

func (r *CommentRepository) ListComments(ctx context.Context, workId uuid.UUID) ([]*domain.WorkComment, error) {
	rows, err := r.db.Query(ctx, selectCommentsQuery, workId)
	if err != nil {
		return nil, handleDBError(err)
	}
	return collect(rows, scanComment)
}

func (r *CommentRepository) UpdateComment(ctx context.Context, c *domain.WorkComment) (*domain.WorkComment, error) {
	res, err := scanComment(r.db.QueryRow(ctx, updateCommentQuery, c.Id, c.Comment))
	if err != nil {
		return nil, handleDBError(err)
	}
	return res, nil
}

func (r *CommentRepository) DeleteComment(ctx context.Context, id uuid.UUID) error {
	tag, err := r.db.Exec(ctx, deleteCommentQuery, id)
	if err != nil {
		return handleDeleteError(err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
