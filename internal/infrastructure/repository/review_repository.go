package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/niklvrr/EmToolBackend/internal/domain"
	"go.uber.org/zap"
)

const reviewColumns = `
    id, pull_request_id, reviewer_id, status, comments, reviewed_at`

const (
	insertReviewQuery = `
INSERT INTO reviews (id, pull_request_id, reviewer_id, status, comments)
VALUES ($1, $2, $3, $4, $5)
RETURNING` + reviewColumns + `;`

	selectReviewByIdQuery = `
SELECT` + reviewColumns + `
FROM reviews
WHERE id = $1;`

	selectReviewByReviewerQuery = `
SELECT` + reviewColumns + `
FROM reviews
WHERE pull_request_id = $1 AND reviewer_id = $2;`

	selectReviewsByPrQuery = `
SELECT` + reviewColumns + `
FROM reviews
WHERE pull_request_id = $1
ORDER BY reviewed_at;`

	selectReviewsByUserQuery = `
SELECT` + reviewColumns + `
FROM reviews
WHERE reviewer_id = $1
ORDER BY reviewed_at;`

	updateReviewQuery = `
UPDATE reviews
SET status = $2,
    comments = $3,
    reviewed_at = now()
WHERE id = $1
RETURNING` + reviewColumns + `;`

	deleteReviewQuery = `
DELETE FROM reviews
WHERE id = $1;`
)

type ReviewRepository struct {
	db  *pgxpool.Pool
	log *zap.Logger
}

func NewReviewRepository(db *pgxpool.Pool, log *zap.Logger) *ReviewRepository {
	return &ReviewRepository{
		db:  db,
		log: log,
	}
}

func scanReview(row rowScanner) (*domain.Review, error) {
	rv := &domain.Review{}
	err := row.Scan(
		&rv.Id,
		&rv.PullRequestId,
		&rv.ReviewerId,
		&rv.Status,
		&rv.Comments,
		&rv.ReviewedAt,
	)
	if err != nil {
		return nil, err
	}
	return rv, nil
}

func (r *ReviewRepository) CreateReview(ctx context.Context, rv *domain.Review) (*domain.Review, error) {
	res, err := scanReview(r.db.QueryRow(ctx, insertReviewQuery,
		rv.Id, rv.PullRequestId, rv.ReviewerId, string(rv.Status), rv.Comments,
	))
	if err != nil {
		r.log.Error("failed to insert review",
			zap.String("pr_id", rv.PullRequestId.String()),
			zap.String("reviewer_id", rv.ReviewerId.String()),
			zap.Error(err),
		)
		return nil, handleDBError(err)
	}
	return res, nil
}

func (r *ReviewRepository) GetReviewById(ctx context.Context, id uuid.UUID) (*domain.Review, error) {
	res, err := scanReview(r.db.QueryRow(ctx, selectReviewByIdQuery, id))
	if err != nil {
		return nil, handleDBError(err)
	}
	return res, nil
}

func (r *ReviewRepository) GetReviewByReviewer(ctx context.Context, prId, reviewerId uuid.UUID) (*domain.Review, error) {
	res, err := scanReview(r.db.QueryRow(ctx, selectReviewByReviewerQuery, prId, reviewerId))
	if err != nil {
		return nil, handleDBError(err)
	}
	return res, nil
}

func (r *ReviewRepository) ListReviewsByPr(ctx context.Context, prId uuid.UUID) ([]*domain.Review, error) {
	rows, err := r.db.Query(ctx, selectReviewsByPrQuery, prId)
	if err != nil {
		return nil, handleDBError(err)
	}
	return collect(rows, scanReview)
}

func (r *ReviewRepository) ListReviewsByUser(ctx context.Context, userId uuid.UUID) ([]*domain.Review, error) {
	rows, err := r.db.Query(ctx, selectReviewsByUserQuery, userId)
	if err != nil {
		return nil, handleDBError(err)
	}
	return collect(rows, scanReview)
}

func (r *ReviewRepository) UpdateReview(ctx context.Context, rv *domain.Review) (*domain.Review, error) {
	res, err := scanReview(r.db.QueryRow(ctx, updateReviewQuery, rv.Id, string(rv.Status), rv.Comments))
	if err != nil {
		return nil, handleDBError(err)
	}
	return res, nil
}

func (r *ReviewRepository) DeleteReview(ctx context.Context, id uuid.UUID) error {
	tag, err := r.db.Exec(ctx, deleteReviewQuery, id)
	if err != nil {
		return handleDeleteError(err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
