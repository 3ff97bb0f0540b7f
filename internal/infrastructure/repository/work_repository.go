package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/niklvrr/EmToolBackend/internal/domain"
	"go.uber.org/zap"
)

const workColumns = `
    id, title, description, assigned_by, assigned_to, team_id, status, deadline, created_at, updated_at`

const (
	insertWorkQuery = `
INSERT INTO works (id, title, description, assigned_by, assigned_to, team_id, status, deadline)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
RETURNING` + workColumns + `;`

	selectWorkByIdQuery = `
SELECT` + workColumns + `
FROM works
WHERE id = $1;`

	selectWorksByAssigneeQuery = `
SELECT` + workColumns + `
FROM works
WHERE assigned_to = $1
ORDER BY deadline, created_at;`

	selectWorksByTeamQuery = `
SELECT` + workColumns + `
FROM works
WHERE team_id = $1
ORDER BY deadline, created_at;`

	updateWorkQuery = `
UPDATE works
SET title = $2,
    description = $3,
    assigned_to = $4,
    status = $5,
    deadline = $6,
    updated_at = now()
WHERE id = $1
RETURNING` + workColumns + `;`

	deleteWorkQuery = `
DELETE FROM works
WHERE id = $1;`
)

type WorkRepository struct {
	db  *pgxpool.Pool
	log *zap.Logger
}

func NewWorkRepository(db *pgxpool.Pool, log *zap.Logger) *WorkRepository {
	return &WorkRepository{
		db:  db,
		log: log,
	}
}

func scanWork(row rowScanner) (*domain.Work, error) {
	w := &domain.Work{}
	err := row.Scan(
		&w.Id,
		&w.Title,
		&w.Description,
		&w.AssignedBy,
		&w.AssignedTo,
		&w.TeamId,
		&w.Status,
		&w.Deadline,
		&w.CreatedAt,
		&w.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return w, nil
}

func (r *WorkRepository) CreateWork(ctx context.Context, w *domain.Work) (*domain.Work, error) {
	res, err := scanWork(r.db.QueryRow(ctx, insertWorkQuery,
		w.Id, w.Title, w.Description, w.AssignedBy, w.AssignedTo, w.TeamId, string(w.Status), w.Deadline,
	))
	if err != nil {
		r.log.Error("failed to insert work",
			zap.String("title", w.Title),
			zap.String("team_id", w.TeamId.String()),
			zap.Error(err),
		)
		return nil, handleDBError(err)
	}
	return res, nil
}

func (r *WorkRepository) GetWorkById(ctx context.Context, id uuid.UUID) (*domain.Work, error) {
	res, err := scanWork(r.db.QueryRow(ctx, selectWorkByIdQuery, id))
	if err != nil {
		return nil, handleDBError(err)
	}
	return res, nil
}

func (r *WorkRepository) ListWorksByAssignee(ctx context.Context, userId uuid.UUID) ([]*domain.Work, error) {
	rows, err := r.db.Query(ctx, selectWorksByAssigneeQuery, userId)
	if err != nil {
		return nil, handleDBError(err)
	}
	return collect(rows, scanWork)
}

func (r *WorkRepository) ListWorksByTeam(ctx context.Context, teamId uuid.UUID) ([]*domain.Work, error) {
	rows, err := r.db.Query(ctx, selectWorksByTeamQuery, teamId)
	if err != nil {
		return nil, handleDBError(err)
	}
	return collect(rows, scanWork)
}

func (r *WorkRepository) UpdateWork(ctx context.Context, w *domain.Work) (*domain.Work, error) {
	res, err := scanWork(r.db.QueryRow(ctx, updateWorkQuery,
		w.Id, w.Title, w.Description, w.AssignedTo, string(w.Status), w.Deadline,
	))
	if err != nil {
		r.log.Error("failed to update work", zap.String("work_id", w.Id.String()), zap.Error(err))
		return nil, handleDBError(err)
	}
	return res, nil
}

// DeleteWork удаляет задачу; комментарии, вложения, PR и ревью уходят каскадом.
func (r *WorkRepository) DeleteWork(ctx context.Context, id uuid.UUID) error {
	tag, err := r.db.Exec(ctx, deleteWorkQuery, id)
	if err != nil {
		r.log.Error("failed to delete work", zap.String("work_id", id.String()), zap.Error(err))
		return handleDeleteError(err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
