package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/niklvrr/EmToolBackend/internal/domain"
	"go.uber.org/zap"
)

const (
	insertTeamQuery = `
INSERT INTO teams (id, name, manager_id)
VALUES ($1, $2, $3)
RETURNING id, name, manager_id, created_at;`

	selectTeamByIdQuery = `
SELECT id, name, manager_id, created_at FROM teams
WHERE id = $1;`

	selectTeamsByNameQuery = `
SELECT id, name, manager_id, created_at FROM teams
WHERE $1 = '' OR lower(name) = lower($1)
ORDER BY name, created_at;`

	selectTeamsByManagerQuery = `
SELECT id, name, manager_id, created_at FROM teams
WHERE manager_id = $1
ORDER BY name;`

	updateTeamQuery = `
UPDATE teams
SET name = $2
WHERE id = $1
RETURNING id, name, manager_id, created_at;`

	deleteTeamQuery = `
DELETE FROM teams
WHERE id = $1;`

	memberColumns = `
    tm.id, tm.team_id, tm.user_id, tm.added_by_id, u.username, r.name, tm.joined_at`

	insertTeamMemberQuery = `
WITH inserted AS (
    INSERT INTO team_members (id, team_id, user_id, added_by_id)
    VALUES ($1, $2, $3, $4)
    RETURNING *
)
SELECT` + memberColumns + `
FROM inserted tm
JOIN users u ON u.id = tm.user_id
JOIN roles r ON r.id = u.role_id;`

	selectTeamMemberQuery = `
SELECT` + memberColumns + `
FROM team_members tm
JOIN users u ON u.id = tm.user_id
JOIN roles r ON r.id = u.role_id
WHERE tm.team_id = $1 AND tm.user_id = $2;`

	selectTeamMembersQuery = `
SELECT` + memberColumns + `
FROM team_members tm
JOIN users u ON u.id = tm.user_id
JOIN roles r ON r.id = u.role_id
WHERE tm.team_id = $1
ORDER BY tm.joined_at, u.username;`

	deleteTeamMemberQuery = `
DELETE FROM team_members
WHERE id = $1;`
)

type TeamRepository struct {
	db  *pgxpool.Pool
	log *zap.Logger
}

func NewTeamRepository(db *pgxpool.Pool, log *zap.Logger) *TeamRepository {
	return &TeamRepository{
		db:  db,
		log: log,
	}
}

func scanTeam(row rowScanner) (*domain.Team, error) {
	t := &domain.Team{}
	if err := row.Scan(&t.Id, &t.Name, &t.ManagerId, &t.CreatedAt); err != nil {
		return nil, err
	}
	return t, nil
}

func scanTeamMember(row rowScanner) (*domain.TeamMember, error) {
	m := &domain.TeamMember{}
	err := row.Scan(
		&m.Id,
		&m.TeamId,
		&m.UserId,
		&m.AddedById,
		&m.Username,
		&m.RoleName,
		&m.JoinedAt,
	)
	if err != nil {
		return nil, err
	}
	return m, nil
}

func (r *TeamRepository) CreateTeam(ctx context.Context, t *domain.Team) (*domain.Team, error) {
	res, err := scanTeam(r.db.QueryRow(ctx, insertTeamQuery, t.Id, t.Name, t.ManagerId))
	if err != nil {
		r.log.Error("failed to insert team",
			zap.String("team_name", t.Name),
			zap.String("manager_id", t.ManagerId.String()),
			zap.Error(err),
		)
		return nil, handleDBError(err)
	}
	return res, nil
}

func (r *TeamRepository) GetTeamById(ctx context.Context, id uuid.UUID) (*domain.Team, error) {
	res, err := scanTeam(r.db.QueryRow(ctx, selectTeamByIdQuery, id))
	if err != nil {
		return nil, handleDBError(err)
	}
	return res, nil
}

func (r *TeamRepository) ListTeamsByName(ctx context.Context, name string) ([]*domain.Team, error) {
	rows, err := r.db.Query(ctx, selectTeamsByNameQuery, name)
	if err != nil {
		return nil, handleDBError(err)
	}
	return collect(rows, scanTeam)
}

func (r *TeamRepository) ListTeamsByManager(ctx context.Context, managerId uuid.UUID) ([]*domain.Team, error) {
	rows, err := r.db.Query(ctx, selectTeamsByManagerQuery, managerId)
	if err != nil {
		return nil, handleDBError(err)
	}
	return collect(rows, scanTeam)
}

func (r *TeamRepository) UpdateTeam(ctx context.Context, t *domain.Team) (*domain.Team, error) {
	res, err := scanTeam(r.db.QueryRow(ctx, updateTeamQuery, t.Id, t.Name))
	if err != nil {
		r.log.Error("failed to update team", zap.String("team_id", t.Id.String()), zap.Error(err))
		return nil, handleDBError(err)
	}
	return res, nil
}

func (r *TeamRepository) DeleteTeam(ctx context.Context, id uuid.UUID) error {
	tag, err := r.db.Exec(ctx, deleteTeamQuery, id)
	if err != nil {
		r.log.Error("failed to delete team", zap.String("team_id", id.String()), zap.Error(err))
		return handleDeleteError(err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *TeamRepository) AddTeamMember(ctx context.Context, m *domain.TeamMember) (*domain.TeamMember, error) {
	res, err := scanTeamMember(r.db.QueryRow(ctx, insertTeamMemberQuery, m.Id, m.TeamId, m.UserId, m.AddedById))
	if err != nil {
		r.log.Error("failed to insert team member",
			zap.String("team_id", m.TeamId.String()),
			zap.String("user_id", m.UserId.String()),
			zap.Error(err),
		)
		return nil, handleDBError(err)
	}
	return res, nil
}

func (r *TeamRepository) GetTeamMember(ctx context.Context, teamId, userId uuid.UUID) (*domain.TeamMember, error) {
	res, err := scanTeamMember(r.db.QueryRow(ctx, selectTeamMemberQuery, teamId, userId))
	if err != nil {
		return nil, handleDBError(err)
	}
	return res, nil
}

func (r *TeamRepository) ListTeamMembers(ctx context.Context, teamId uuid.UUID) ([]*domain.TeamMember, error) {
	rows, err := r.db.Query(ctx, selectTeamMembersQuery, teamId)
	if err != nil {
		return nil, handleDBError(err)
	}
	return collect(rows, scanTeamMember)
}

func (r *TeamRepository) DeleteTeamMember(ctx context.Context, id uuid.UUID) error {
	tag, err := r.db.Exec(ctx, deleteTeamMemberQuery, id)
	if err != nil {
		return handleDeleteError(err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
