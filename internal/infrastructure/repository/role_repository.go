package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/niklvrr/EmToolBackend/internal/domain"
	"go.uber.org/zap"
)

const (
	insertRoleQuery = `
INSERT INTO roles (id, name)
VALUES ($1, $2)
RETURNING id, name, created_at;`

	selectRoleByIdQuery = `
SELECT id, name, created_at FROM roles
WHERE id = $1;`

	selectRoleByNameQuery = `
SELECT id, name, created_at FROM roles
WHERE name = $1;`

	selectRolesQuery = `
SELECT id, name, created_at FROM roles
ORDER BY name;`
)

type RoleRepository struct {
	db  *pgxpool.Pool
	log *zap.Logger
}

func NewRoleRepository(db *pgxpool.Pool, log *zap.Logger) *RoleRepository {
	return &RoleRepository{
		db:  db,
		log: log,
	}
}

func scanRole(row rowScanner) (*domain.Role, error) {
	role := &domain.Role{}
	if err := row.Scan(&role.Id, &role.Name, &role.CreatedAt); err != nil {
		return nil, err
	}
	return role, nil
}

func (r *RoleRepository) CreateRole(ctx context.Context, role *domain.Role) (*domain.Role, error) {
	res, err := scanRole(r.db.QueryRow(ctx, insertRoleQuery, role.Id, role.Name))
	if err != nil {
		r.log.Error("failed to insert role", zap.String("name", role.Name), zap.Error(err))
		return nil, handleDBError(err)
	}
	return res, nil
}

func (r *RoleRepository) GetRoleById(ctx context.Context, id uuid.UUID) (*domain.Role, error) {
	res, err := scanRole(r.db.QueryRow(ctx, selectRoleByIdQuery, id))
	if err != nil {
		return nil, handleDBError(err)
	}
	return res, nil
}

func (r *RoleRepository) GetRoleByName(ctx context.Context, name string) (*domain.Role, error) {
	res, err := scanRole(r.db.QueryRow(ctx, selectRoleByNameQuery, name))
	if err != nil {
		return nil, handleDBError(err)
	}
	return res, nil
}

func (r *RoleRepository) ListRoles(ctx context.Context) ([]*domain.Role, error) {
	rows, err := r.db.Query(ctx, selectRolesQuery)
	if err != nil {
		return nil, handleDBError(err)
	}
	return collect(rows, scanRole)
}
