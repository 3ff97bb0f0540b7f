package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/niklvrr/EmToolBackend/internal/domain"
	"go.uber.org/zap"
)

const notificationColumns = `
    id, user_id, message, type, is_read, created_at`

const (
	insertNotificationQuery = `
INSERT INTO notifications (id, user_id, message, type)
VALUES ($1, $2, $3, $4)
RETURNING` + notificationColumns + `;`

	selectNotificationsByUserQuery = `
SELECT` + notificationColumns + `
FROM notifications
WHERE user_id = $1
ORDER BY created_at DESC;`

	countUnreadQuery = `
SELECT count(*) FROM notifications
WHERE user_id = $1 AND NOT is_read;`

	markNotificationReadQuery = `
UPDATE notifications
SET is_read = TRUE
WHERE id = $1
RETURNING` + notificationColumns + `;`

	deleteNotificationQuery = `
DELETE FROM notifications
WHERE id = $1;`

	deleteUserNotificationsQuery = `
DELETE FROM notifications
WHERE user_id = $1;`
)

type NotificationRepository struct {
	db  *pgxpool.Pool
	log *zap.Logger
}

func NewNotificationRepository(db *pgxpool.Pool, log *zap.Logger) *NotificationRepository {
	return &NotificationRepository{
		db:  db,
		log: log,
	}
}

func scanNotification(row rowScanner) (*domain.Notification, error) {
	n := &domain.Notification{}
	if err := row.Scan(&n.Id, &n.UserId, &n.Message, &n.Type, &n.IsRead, &n.CreatedAt); err != nil {
		return nil, err
	}
	return n, nil
}

func (r *NotificationRepository) CreateNotification(ctx context.Context, n *domain.Notification) (*domain.Notification, error) {
	res, err := scanNotification(r.db.QueryRow(ctx, insertNotificationQuery, n.Id, n.UserId, n.Message, n.Type))
	if err != nil {
		r.log.Error("failed to insert notification", zap.String("user_id", n.UserId.String()), zap.Error(err))
		return nil, handleDBError(err)
	}
	return res, nil
}

func (r *NotificationRepository) ListNotificationsByUser(ctx context.Context, userId uuid.UUID) ([]*domain.Notification, error) {
	rows, err := r.db.Query(ctx, selectNotificationsByUserQuery, userId)
	if err != nil {
		return nil, handleDBError(err)
	}
	return collect(rows, scanNotification)
}

func (r *NotificationRepository) CountUnread(ctx context.Context, userId uuid.UUID) (int, error) {
	var count int
	if err := r.db.QueryRow(ctx, countUnreadQuery, userId).Scan(&count); err != nil {
		return 0, handleDBError(err)
	}
	return count, nil
}

func (r *NotificationRepository) MarkNotificationRead(ctx context.Context, id uuid.UUID) (*domain.Notification, error) {
	res, err := scanNotification(r.db.QueryRow(ctx, markNotificationReadQuery, id))
	if err != nil {
		return nil, handleDBError(err)
	}
	return res, nil
}

func (r *NotificationRepository) DeleteNotification(ctx context.Context, id uuid.UUID) error {
	tag, err := r.db.Exec(ctx, deleteNotificationQuery, id)
	if err != nil {
		return handleDeleteError(err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// DeleteUserNotifications возвращает число удаленных уведомлений.
func (r *NotificationRepository) DeleteUserNotifications(ctx context.Context, userId uuid.UUID) (int64, error) {
	tag, err := r.db.Exec(ctx, deleteUserNotificationsQuery, userId)
	if err != nil {
		return 0, handleDBError(err)
	}
	return tag.RowsAffected(), nil
}
