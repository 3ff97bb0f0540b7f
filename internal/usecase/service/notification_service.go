package service

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/google/uuid"
	"github.com/niklvrr/EmToolBackend/internal/domain"
	"github.com/niklvrr/EmToolBackend/internal/transport/dto/request"
	"github.com/niklvrr/EmToolBackend/internal/transport/dto/response"
	"go.uber.org/multierr"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

var (
	createNotificationError = errors.New("create notification error")
	getNotificationError    = errors.New("get notification error")
	markReadError           = errors.New("mark notification read error")
	deleteNotificationError = errors.New("delete notification error")
)

const defaultBulkWorkers = 8

type NotificationService struct {
	repo    NotificationRepository
	users   UserReader
	log     *zap.Logger
	workers int
}

func NewNotificationService(repo NotificationRepository, users UserReader, log *zap.Logger) *NotificationService {
	return &NotificationService{
		repo:    repo,
		users:   users,
		log:     log,
		workers: defaultBulkWorkers,
	}
}

func (s *NotificationService) CreateNotification(ctx context.Context, req *request.CreateNotificationRequest) (*response.NotificationResponse, error) {
	s.log.Info("createNotification request accepted",
		zap.String("user_id", req.UserId),
		zap.String("type", req.Type),
	)

	if err := request.Validate(req); err != nil {
		return nil, invalidInput(err)
	}
	userId, err := parseID(req.UserId, "user_id")
	if err != nil {
		return nil, err
	}
	if _, err := loadUser(ctx, s.users, userId, createNotificationError); err != nil {
		return nil, err
	}

	n, err := s.create(ctx, userId, req.Type, req.Message)
	if err != nil {
		return nil, err
	}

	return response.NewNotificationResponse(n), nil
}

func (s *NotificationService) GetNotificationsOfUser(ctx context.Context, rawUserId string) ([]*response.NotificationResponse, error) {
	s.log.Info("getNotifications request accepted",
		zap.String("user_id", rawUserId),
	)

	userId, err := parseID(rawUserId, "user_id")
	if err != nil {
		return nil, err
	}
	if _, err := loadUser(ctx, s.users, userId, getNotificationError); err != nil {
		return nil, err
	}

	items, err := s.repo.ListNotificationsByUser(ctx, userId)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", getNotificationError, err)
	}

	return response.NewNotificationResponses(items), nil
}

func (s *NotificationService) GetUnreadCount(ctx context.Context, rawUserId string) (*response.UnreadCountResponse, error) {
	s.log.Info("getUnreadCount request accepted",
		zap.String("user_id", rawUserId),
	)

	userId, err := parseID(rawUserId, "user_id")
	if err != nil {
		return nil, err
	}
	if _, err := loadUser(ctx, s.users, userId, getNotificationError); err != nil {
		return nil, err
	}

	count, err := s.repo.CountUnread(ctx, userId)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", getNotificationError, err)
	}

	return &response.UnreadCountResponse{
		UserId: userId.String(),
		Unread: count,
	}, nil
}

func (s *NotificationService) MarkAsRead(ctx context.Context, rawId string) (*response.NotificationResponse, error) {
	s.log.Info("markAsRead request accepted",
		zap.String("notification_id", rawId),
	)

	id, err := parseID(rawId, "notification_id")
	if err != nil {
		return nil, err
	}

	n, err := s.repo.MarkNotificationRead(ctx, id)
	if err != nil {
		return nil, mapRepoError(err, markReadError, ErrNotificationNotFound, nil)
	}

	return response.NewNotificationResponse(n), nil
}

func (s *NotificationService) DeleteNotification(ctx context.Context, rawId string) error {
	s.log.Info("deleteNotification request accepted",
		zap.String("notification_id", rawId),
	)

	id, err := parseID(rawId, "notification_id")
	if err != nil {
		return err
	}

	if err := s.repo.DeleteNotification(ctx, id); err != nil {
		return mapRepoError(err, deleteNotificationError, ErrNotificationNotFound, nil)
	}
	return nil
}

// DeleteAllNotifications возвращает NOT_FOUND, если удалять нечего.
func (s *NotificationService) DeleteAllNotifications(ctx context.Context, rawUserId string) (*response.DeletedCountResponse, error) {
	s.log.Info("deleteAllNotifications request accepted",
		zap.String("user_id", rawUserId),
	)

	userId, err := parseID(rawUserId, "user_id")
	if err != nil {
		return nil, err
	}
	if _, err := loadUser(ctx, s.users, userId, deleteNotificationError); err != nil {
		return nil, err
	}

	deleted, err := s.repo.DeleteUserNotifications(ctx, userId)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", deleteNotificationError, err)
	}
	if deleted == 0 {
		return nil, ErrNotificationNotFound
	}

	s.log.Info("notifications deleted",
		zap.String("user_id", rawUserId),
		zap.Int64("deleted", deleted),
	)

	return &response.DeletedCountResponse{Deleted: deleted}, nil
}

// SendBulk рассылает уведомления параллельно. Ошибки отдельных элементов
// собираются в ответ и не прерывают остальные отправки.
func (s *NotificationService) SendBulk(ctx context.Context, req *request.SendBulkRequest) (*response.BulkSendResponse, error) {
	s.log.Info("sendBulk request accepted",
		zap.Int("count", len(req.Notifications)),
	)

	if err := request.Validate(req); err != nil {
		return nil, invalidInput(err)
	}

	items := req.Notifications
	sent, err := s.fanOut(ctx, len(items), func(ctx context.Context, i int) error {
		_, err := s.CreateNotification(ctx, &items[i])
		if err != nil {
			return fmt.Errorf("notification %d: %w", i, err)
		}
		return nil
	})

	errs := multierr.Errors(err)
	resp := &response.BulkSendResponse{
		Requested: len(items),
		Sent:      sent,
		Failed:    len(errs),
		Errors:    make([]string, 0, len(errs)),
	}
	for _, e := range errs {
		resp.Errors = append(resp.Errors, e.Error())
	}

	if err != nil {
		s.log.Warn("bulk send finished with errors",
			zap.Int("sent", sent),
			zap.Int("failed", len(errs)),
			zap.Error(err),
		)
	} else {
		s.log.Info("bulk send finished", zap.Int("sent", sent))
	}

	return resp, nil
}

// Notify используется другими сервисами, пользователь уже проверен вызывающим.
func (s *NotificationService) Notify(ctx context.Context, userId uuid.UUID, kind, message string) error {
	_, err := s.create(ctx, userId, kind, message)
	return err
}

func (s *NotificationService) NotifyAll(ctx context.Context, userIds []uuid.UUID, kind, message string) error {
	_, err := s.fanOut(ctx, len(userIds), func(ctx context.Context, i int) error {
		return s.Notify(ctx, userIds[i], kind, message)
	})
	return err
}

func (s *NotificationService) create(ctx context.Context, userId uuid.UUID, kind, message string) (*domain.Notification, error) {
	// Запрос в бд
	n, err := s.repo.CreateNotification(ctx, &domain.Notification{
		Id:      uuid.New(),
		UserId:  userId,
		Message: message,
		Type:    kind,
	})
	if err != nil {
		s.log.Error("failed to create notification",
			zap.String("user_id", userId.String()),
			zap.String("type", kind),
			zap.Error(err),
		)
		return nil, mapRepoError(err, createNotificationError, nil, nil)
	}
	return n, nil
}

// fanOut вызывает fn для каждого индекса не более чем в s.workers горутинах.
// Возвращает число успешных вызовов и объединенную ошибку.
func (s *NotificationService) fanOut(ctx context.Context, n int, fn func(ctx context.Context, i int) error) (int, error) {
	var (
		mu   sync.Mutex
		sent int
		errs error
	)

	// Ошибки копятся в errs через multierr, горутины всегда возвращают nil
	var g errgroup.Group
	g.SetLimit(s.workers)
	for i := 0; i < n; i++ {
		g.Go(func() error {
			err := fn(ctx, i)

			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				errs = multierr.Append(errs, err)
				return nil
			}
			sent++
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return sent, multierr.Append(errs, err)
	}

	return sent, errs
}
