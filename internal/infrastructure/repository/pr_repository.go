package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/niklvrr/EmToolBackend/internal/domain"
	"go.uber.org/zap"
)

const prColumns = `
    p.id, p.work_id, w.team_id, p.created_by, p.link, p.description, p.attachment_path,
    p.status, p.is_ready_for_approval, p.created_at, p.updated_at`

const (
	insertPrQuery = `
WITH inserted AS (
    INSERT INTO pull_requests (id, work_id, created_by, link, description, attachment_path, status)
    VALUES ($1, $2, $3, $4, $5, $6, $7)
    RETURNING *
)
SELECT` + prColumns + `
FROM inserted p
JOIN works w ON w.id = p.work_id;`

	selectPrByIdQuery = `
SELECT` + prColumns + `
FROM pull_requests p
JOIN works w ON w.id = p.work_id
WHERE p.id = $1;`

	selectPrsByWorkQuery = `
SELECT` + prColumns + `
FROM pull_requests p
JOIN works w ON w.id = p.work_id
WHERE p.work_id = $1
ORDER BY p.created_at;`

	selectPrsByUserQuery = `
SELECT` + prColumns + `
FROM pull_requests p
JOIN works w ON w.id = p.work_id
WHERE p.created_by = $1
ORDER BY p.created_at;`

	selectPrsByTeamQuery = `
SELECT` + prColumns + `
FROM pull_requests p
JOIN works w ON w.id = p.work_id
WHERE w.team_id = $1
ORDER BY p.created_at;`

	// Статус меняется только из ожидаемого состояния
	updatePrStatusQuery = `
WITH updated AS (
    UPDATE pull_requests
    SET status = $3,
        updated_at = now()
    WHERE id = $1 AND status = $2
    RETURNING *
)
SELECT` + prColumns + `
FROM updated p
JOIN works w ON w.id = p.work_id;`

	updatePrReadinessQuery = `
UPDATE pull_requests
SET is_ready_for_approval = $2,
    updated_at = now()
WHERE id = $1;`

	selectPrExistsQuery = `
SELECT EXISTS (SELECT 1 FROM pull_requests WHERE id = $1);`

	deletePrQuery = `
DELETE FROM pull_requests
WHERE id = $1;`
)

type PrRepository struct {
	db  *pgxpool.Pool
	log *zap.Logger
}

func NewPrRepository(db *pgxpool.Pool, log *zap.Logger) *PrRepository {
	return &PrRepository{
		db:  db,
		log: log,
	}
}

func scanPr(row rowScanner) (*domain.PullRequest, error) {
	pr := &domain.PullRequest{}
	err := row.Scan(
		&pr.Id,
		&pr.WorkId,
		&pr.TeamId,
		&pr.CreatedById,
		&pr.Link,
		&pr.Description,
		&pr.AttachmentPath,
		&pr.Status,
		&pr.IsReadyForApproval,
		&pr.CreatedAt,
		&pr.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return pr, nil
}

func (r *PrRepository) CreatePr(ctx context.Context, pr *domain.PullRequest) (*domain.PullRequest, error) {
	r.log.Info("create PR started",
		zap.String("work_id", pr.WorkId.String()),
		zap.String("author_id", pr.CreatedById.String()),
	)

	res, err := scanPr(r.db.QueryRow(ctx, insertPrQuery,
		pr.Id, pr.WorkId, pr.CreatedById, pr.Link, pr.Description, pr.AttachmentPath, string(pr.Status),
	))
	if err != nil {
		r.log.Error("failed to insert PR",
			zap.String("work_id", pr.WorkId.String()),
			zap.Error(err),
		)
		return nil, handleDBError(err)
	}
	return res, nil
}

func (r *PrRepository) GetPrById(ctx context.Context, id uuid.UUID) (*domain.PullRequest, error) {
	res, err := scanPr(r.db.QueryRow(ctx, selectPrByIdQuery, id))
	if err != nil {
		return nil, handleDBError(err)
	}
	return res, nil
}

func (r *PrRepository) ListPrsByWork(ctx context.Context, workId uuid.UUID) ([]*domain.PullRequest, error) {
	rows, err := r.db.Query(ctx, selectPrsByWorkQuery, workId)
	if err != nil {
		return nil, handleDBError(err)
	}
	return collect(rows, scanPr)
}

func (r *PrRepository) ListPrsByUser(ctx context.Context, userId uuid.UUID) ([]*domain.PullRequest, error) {
	rows, err := r.db.Query(ctx, selectPrsByUserQuery, userId)
	if err != nil {
		return nil, handleDBError(err)
	}
	return collect(rows, scanPr)
}

func (r *PrRepository) ListPrsByTeam(ctx context.Context, teamId uuid.UUID) ([]*domain.PullRequest, error) {
	rows, err := r.db.Query(ctx, selectPrsByTeamQuery, teamId)
	if err != nil {
		return nil, handleDBError(err)
	}
	return collect(rows, scanPr)
}

// UpdatePrStatus переводит PR из from в to. ErrConflict, если PR уже не в from.
func (r *PrRepository) UpdatePrStatus(ctx context.Context, id uuid.UUID, from, to domain.PrStatus) (*domain.PullRequest, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return nil, handleDBError(err)
	}
	defer tx.Rollback(ctx)

	res, err := scanPr(tx.QueryRow(ctx, updatePrStatusQuery, id, string(from), string(to)))
	if err != nil {
		if !errors.Is(err, pgx.ErrNoRows) {
			r.log.Error("failed to update PR status", zap.String("pr_id", id.String()), zap.Error(err))
			return nil, handleDBError(err)
		}

		// Отличаем отсутствующий PR от уже закрытого
		var exists bool
		if err := tx.QueryRow(ctx, selectPrExistsQuery, id).Scan(&exists); err != nil {
			return nil, handleDBError(err)
		}
		if !exists {
			return nil, ErrNotFound
		}
		return nil, ErrConflict
	}

	if err := tx.Commit(ctx); err != nil {
		r.log.Error("failed to commit PR status", zap.String("pr_id", id.String()), zap.Error(err))
		return nil, handleDBError(err)
	}

	r.log.Info("PR status changed",
		zap.String("pr_id", id.String()),
		zap.String("from", string(from)),
		zap.String("to", string(to)),
	)
	return res, nil
}

func (r *PrRepository) SetPrReadiness(ctx context.Context, id uuid.UUID, ready bool) error {
	tag, err := r.db.Exec(ctx, updatePrReadinessQuery, id, ready)
	if err != nil {
		return handleDBError(err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// DeletePr удаляет PR вместе с ревью.
func (r *PrRepository) DeletePr(ctx context.Context, id uuid.UUID) error {
	tag, err := r.db.Exec(ctx, deletePrQuery, id)
	if err != nil {
		r.log.Error("failed to delete PR", zap.String("pr_id", id.String()), zap.Error(err))
		return handleDeleteError(err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
