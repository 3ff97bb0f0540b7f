package service

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/niklvrr/EmToolBackend/internal/transport/dto/request"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/multierr"
)

func TestNotificationService_CreateAndRead(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	n, err := f.notifications.CreateNotification(ctx, &request.CreateNotificationRequest{UserId: f.bob.Id, Message: "hello", Type: "info"})
	require.NoError(t, err)
	assert.False(t, n.IsRead)

	count, err := f.notifications.GetUnreadCount(ctx, f.bob.Id)
	require.NoError(t, err)
	assert.Equal(t, 1, count.Unread)

	read, err := f.notifications.MarkAsRead(ctx, n.Id)
	require.NoError(t, err)
	assert.True(t, read.IsRead)

	count, err = f.notifications.GetUnreadCount(ctx, f.bob.Id)
	require.NoError(t, err)
	assert.Zero(t, count.Unread)

	_, err = f.notifications.MarkAsRead(ctx, uuid.NewString())
	assert.ErrorIs(t, err, ErrNotificationNotFound)
}

func TestNotificationService_CreateNotification_UnknownUser(t *testing.T) {
	f := newFixture(t)

	_, err := f.notifications.CreateNotification(context.Background(), &request.CreateNotificationRequest{UserId: uuid.NewString(), Message: "m", Type: "info"})

	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestNotificationService_DeleteAll(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.notifications.DeleteAllNotifications(ctx, f.bob.Id)
	assert.ErrorIs(t, err, ErrNotificationNotFound)

	for i := 0; i < 3; i++ {
		_, err := f.notifications.CreateNotification(ctx, &request.CreateNotificationRequest{UserId: f.bob.Id, Message: "m", Type: "info"})
		require.NoError(t, err)
	}

	deleted, err := f.notifications.DeleteAllNotifications(ctx, f.bob.Id)
	require.NoError(t, err)
	assert.EqualValues(t, 3, deleted.Deleted)

	list, err := f.notifications.GetNotificationsOfUser(ctx, f.bob.Id)
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestNotificationService_SendBulk_PartialFailure(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	req := &request.SendBulkRequest{Notifications: []request.CreateNotificationRequest{
		{UserId: f.alice.Id, Message: "one", Type: "info"},
		{UserId: f.bob.Id, Message: "two", Type: "info"},
		{UserId: uuid.NewString(), Message: "ghost", Type: "info"},
		{UserId: "not-a-uuid", Message: "bad", Type: "info"},
		{UserId: f.carol.Id, Message: "", Type: "info"},
	}}

	resp, err := f.notifications.SendBulk(ctx, req)

	require.NoError(t, err)
	assert.Equal(t, 5, resp.Requested)
	assert.Equal(t, 2, resp.Sent)
	assert.Equal(t, 3, resp.Failed)
	assert.Len(t, resp.Errors, 3)

	count, err := f.notifications.GetUnreadCount(ctx, f.alice.Id)
	require.NoError(t, err)
	assert.Equal(t, 1, count.Unread)
}

func TestNotificationService_SendBulk_Empty(t *testing.T) {
	f := newFixture(t)

	_, err := f.notifications.SendBulk(context.Background(), &request.SendBulkRequest{})

	assertCode(t, err, CodeInvalidInput)
}

func TestNotificationService_FanOut_RespectsLimit(t *testing.T) {
	f := newFixture(t)
	f.notifications.workers = 2

	var (
		mu      sync.Mutex
		running int
		peak    int
	)
	release := make(chan struct{})
	go func() {
		for i := 0; i < 10; i++ {
			release <- struct{}{}
		}
	}()

	sent, err := f.notifications.fanOut(context.Background(), 10, func(_ context.Context, i int) error {
		mu.Lock()
		running++
		if running > peak {
			peak = running
		}
		mu.Unlock()

		<-release

		mu.Lock()
		running--
		mu.Unlock()
		if i%5 == 0 {
			return errors.New("fail")
		}
		return nil
	})

	assert.Equal(t, 8, sent)
	assert.Error(t, err)
	assert.LessOrEqual(t, peak, 2)
}

func TestNotificationService_NotifyAll(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	ids := []uuid.UUID{uuid.MustParse(f.alice.Id), uuid.MustParse(f.bob.Id), uuid.New()}

	err := f.notifications.NotifyAll(ctx, ids, NotifyMeetingInvite, "standup")

	assert.Error(t, err)
	for _, id := range []string{f.alice.Id, f.bob.Id} {
		count, err := f.notifications.GetUnreadCount(ctx, id)
		require.NoError(t, err)
		assert.Equal(t, 1, count.Unread)
	}
}

func TestNotificationService_FanOut_CollectsAllErrors(t *testing.T) {
	f := newFixture(t)
	f.notifications.workers = 3

	type ctxKey struct{}
	ctx := context.WithValue(context.Background(), ctxKey{}, "caller")

	var (
		mu   sync.Mutex
		seen int
	)
	sent, err := f.notifications.fanOut(ctx, 8, func(c context.Context, i int) error {
		mu.Lock()
		seen++
		mu.Unlock()

		assert.Equal(t, "caller", c.Value(ctxKey{}))
		assert.NoError(t, c.Err())
		if i%2 == 1 {
			return errors.New("odd item")
		}
		return nil
	})

	assert.Equal(t, 8, seen)
	assert.Equal(t, 4, sent)
	assert.Len(t, multierr.Errors(err), 4)
}
