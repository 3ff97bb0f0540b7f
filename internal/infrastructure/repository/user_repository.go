package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/niklvrr/EmToolBackend/internal/domain"
	"go.uber.org/zap"
)

const userColumns = `
    u.id, u.first_name, u.last_name, u.email, u.username, u.password_hash,
    u.role_id, r.name, u.created_at, u.updated_at`

const (
	insertUserQuery = `
WITH inserted AS (
    INSERT INTO users (id, first_name, last_name, email, username, password_hash, role_id)
    VALUES ($1, $2, $3, $4, $5, $6, $7)
    RETURNING *
)
SELECT` + userColumns + `
FROM inserted u
JOIN roles r ON r.id = u.role_id;`

	selectUserByIdQuery = `
SELECT` + userColumns + `
FROM users u
JOIN roles r ON r.id = u.role_id
WHERE u.id = $1;`

	selectUserByUsernameQuery = `
SELECT` + userColumns + `
FROM users u
JOIN roles r ON r.id = u.role_id
WHERE u.username = $1;`

	selectUsersQuery = `
SELECT` + userColumns + `
FROM users u
JOIN roles r ON r.id = u.role_id
WHERE $1 = '' OR u.username ILIKE '%' || $1 || '%'
ORDER BY u.username;`

	updateUserQuery = `
WITH updated AS (
    UPDATE users
    SET first_name = $2,
        last_name = $3,
        email = $4,
        username = $5,
        updated_at = now()
    WHERE id = $1
    RETURNING *
)
SELECT` + userColumns + `
FROM updated u
JOIN roles r ON r.id = u.role_id;`

	deleteUserQuery = `
DELETE FROM users
WHERE id = $1;`
)

type UserRepository struct {
	db  *pgxpool.Pool
	log *zap.Logger
}

func NewUserRepository(db *pgxpool.Pool, log *zap.Logger) *UserRepository {
	return &UserRepository{
		db:  db,
		log: log,
	}
}

func scanUser(row rowScanner) (*domain.User, error) {
	u := &domain.User{}
	err := row.Scan(
		&u.Id,
		&u.FirstName,
		&u.LastName,
		&u.Email,
		&u.Username,
		&u.PasswordHash,
		&u.RoleId,
		&u.RoleName,
		&u.CreatedAt,
		&u.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return u, nil
}

func (r *UserRepository) CreateUser(ctx context.Context, u *domain.User) (*domain.User, error) {
	res, err := scanUser(r.db.QueryRow(ctx, insertUserQuery,
		u.Id, u.FirstName, u.LastName, u.Email, u.Username, u.PasswordHash, u.RoleId,
	))
	if err != nil {
		r.log.Error("failed to insert user",
			zap.String("username", u.Username),
			zap.Error(err),
		)
		return nil, handleDBError(err)
	}
	return res, nil
}

func (r *UserRepository) GetUserById(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	res, err := scanUser(r.db.QueryRow(ctx, selectUserByIdQuery, id))
	if err != nil {
		return nil, handleDBError(err)
	}
	return res, nil
}

func (r *UserRepository) GetUserByUsername(ctx context.Context, username string) (*domain.User, error) {
	res, err := scanUser(r.db.QueryRow(ctx, selectUserByUsernameQuery, username))
	if err != nil {
		return nil, handleDBError(err)
	}
	return res, nil
}

func (r *UserRepository) ListUsers(ctx context.Context, username string) ([]*domain.User, error) {
	rows, err := r.db.Query(ctx, selectUsersQuery, username)
	if err != nil {
		return nil, handleDBError(err)
	}
	return collect(rows, scanUser)
}

func (r *UserRepository) UpdateUser(ctx context.Context, u *domain.User) (*domain.User, error) {
	res, err := scanUser(r.db.QueryRow(ctx, updateUserQuery,
		u.Id, u.FirstName, u.LastName, u.Email, u.Username,
	))
	if err != nil {
		r.log.Error("failed to update user", zap.String("user_id", u.Id.String()), zap.Error(err))
		return nil, handleDBError(err)
	}
	return res, nil
}

func (r *UserRepository) DeleteUser(ctx context.Context, id uuid.UUID) error {
	tag, err := r.db.Exec(ctx, deleteUserQuery, id)
	if err != nil {
		r.log.Error("failed to delete user", zap.String("user_id", id.String()), zap.Error(err))
		return handleDeleteError(err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
