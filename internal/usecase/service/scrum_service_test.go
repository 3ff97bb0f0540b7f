package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/niklvrr/EmToolBackend/internal/domain"
	"github.com/niklvrr/EmToolBackend/internal/transport/dto/request"
	"github.com/niklvrr/EmToolBackend/internal/transport/dto/response"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func meetingRequest(f *fixture, at time.Time, invitees ...string) *request.CreateScrumMeetingRequest {
	return &request.CreateScrumMeetingRequest{
		TeamId:         f.team.Id,
		ScheduledAt:    at,
		Agenda:         "daily",
		Link:           "https://meet.example.com/daily",
		CreatedBy:      f.manager.Id,
		InvitedUserIds: invitees,
	}
}

func (f *fixture) pastMeeting(t *testing.T) *response.ScrumMeetingResponse {
	t.Helper()
	m, err := f.scrum.CreateScrumMeeting(context.Background(), meetingRequest(f, time.Now().Add(-time.Hour), f.alice.Id, f.bob.Id))
	require.NoError(t, err)
	return m
}

func TestScrumService_CreateScrumMeeting(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	m, err := f.scrum.CreateScrumMeeting(ctx, meetingRequest(f, time.Now().Add(time.Hour), f.alice.Id, f.alice.Id, f.manager.Id))
	require.NoError(t, err)
	assert.Len(t, m.InvitedUserIds, 2)
	assert.Equal(t, "Manager", m.CreatedByRole)

	rows, err := f.scrum.GetAttendanceOfMeeting(ctx, m.Id)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	for _, r := range rows {
		assert.False(t, r.IsPresent)
		assert.Nil(t, r.MarkedAt)
	}

	count, err := f.notifications.GetUnreadCount(ctx, f.alice.Id)
	require.NoError(t, err)
	assert.Equal(t, 1, count.Unread)
}

func TestScrumService_CreateScrumMeeting_Rules(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	at := time.Now().Add(time.Hour)

	_, err := f.scrum.CreateScrumMeeting(ctx, meetingRequest(f, at, f.carol.Id))
	assert.ErrorIs(t, err, ErrNotTeamMember)

	_, err = f.scrum.CreateScrumMeeting(ctx, meetingRequest(f, at, uuid.NewString()))
	assert.ErrorIs(t, err, ErrUserNotFound)

	_, err = f.scrum.CreateScrumMeeting(ctx, meetingRequest(f, at))
	assertCode(t, err, CodeInvalidInput)

	req := meetingRequest(f, at, f.bob.Id)
	req.CreatedBy = f.carol.Id
	_, err = f.scrum.CreateScrumMeeting(ctx, req)
	assert.ErrorIs(t, err, ErrNotTeamMember)

	// участник команды тоже может назначить встречу
	req.CreatedBy = f.alice.Id
	m, err := f.scrum.CreateScrumMeeting(ctx, req)
	require.NoError(t, err)
	assert.Equal(t, "Employee", m.CreatedByRole)
}

func TestScrumService_UpdateScrumMeeting(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	m := f.pastMeeting(t)

	update := &request.UpdateScrumMeetingRequest{
		MeetingId:      m.Id,
		ActorId:        f.alice.Id,
		ScheduledAt:    time.Now().Add(2 * time.Hour),
		Agenda:         "retro",
		Link:           "https://meet.example.com/retro",
		InvitedUserIds: []string{f.bob.Id},
	}
	_, err := f.scrum.UpdateScrumMeeting(ctx, update)
	assert.ErrorIs(t, err, ErrNotMeetingAuthor)

	update.ActorId = f.manager.Id
	updated, err := f.scrum.UpdateScrumMeeting(ctx, update)
	require.NoError(t, err)
	assert.Equal(t, "retro", updated.Agenda)
	assert.Equal(t, []string{f.bob.Id}, updated.InvitedUserIds)

	rows, err := f.scrum.GetAttendanceOfMeeting(ctx, m.Id)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, f.bob.Id, rows[0].UserId)
}

func TestScrumService_UpdateScrumMeeting_EmployeeCreator(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	req := meetingRequest(f, time.Now().Add(time.Hour), f.bob.Id)
	req.CreatedBy = f.alice.Id
	m, err := f.scrum.CreateScrumMeeting(ctx, req)
	require.NoError(t, err)

	_, err = f.scrum.UpdateScrumMeeting(ctx, &request.UpdateScrumMeetingRequest{
		MeetingId:      m.Id,
		ActorId:        f.alice.Id,
		ScheduledAt:    time.Now().Add(time.Hour),
		Agenda:         "x",
		Link:           "https://meet.example.com/x",
		InvitedUserIds: []string{f.bob.Id},
	})
	assert.ErrorIs(t, err, ErrNotManager)
}

func TestScrumService_MarkAttendance(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	m := f.pastMeeting(t)

	row, err := f.scrum.MarkAttendance(ctx, &request.MarkAttendanceRequest{MeetingId: m.Id, UserId: f.alice.Id, IsPresent: true, Notes: "on time"})
	require.NoError(t, err)
	assert.True(t, row.IsPresent)
	assert.NotNil(t, row.MarkedAt)

	_, err = f.scrum.MarkAttendance(ctx, &request.MarkAttendanceRequest{MeetingId: m.Id, UserId: f.alice.Id, IsPresent: false})
	assert.ErrorIs(t, err, ErrAttendanceMarked)

	// менеджер не приглашен, но относится к команде: строка создается
	row, err = f.scrum.MarkAttendance(ctx, &request.MarkAttendanceRequest{MeetingId: m.Id, UserId: f.manager.Id, IsPresent: true})
	require.NoError(t, err)
	assert.Equal(t, f.manager.Id, row.UserId)

	_, err = f.scrum.MarkAttendance(ctx, &request.MarkAttendanceRequest{MeetingId: m.Id, UserId: f.carol.Id, IsPresent: true})
	assert.ErrorIs(t, err, ErrNotTeamMember)

	rows, err := f.scrum.GetAttendanceOfMeeting(ctx, m.Id)
	require.NoError(t, err)
	assert.Len(t, rows, 3)
}

func TestScrumService_MarkAttendance_FutureMeeting(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	m, err := f.scrum.CreateScrumMeeting(ctx, meetingRequest(f, time.Now().Add(time.Hour), f.alice.Id))
	require.NoError(t, err)

	_, err = f.scrum.MarkAttendance(ctx, &request.MarkAttendanceRequest{MeetingId: m.Id, UserId: f.alice.Id, IsPresent: true})
	assert.ErrorIs(t, err, ErrMeetingUpcoming)

	// через два часа встреча уже прошла
	f.scrum.now = func() time.Time { return time.Now().Add(2 * time.Hour) }
	_, err = f.scrum.MarkAttendance(ctx, &request.MarkAttendanceRequest{MeetingId: m.Id, UserId: f.alice.Id, IsPresent: true})
	assert.NoError(t, err)
}

func TestScrumService_UpdateAttendance(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	m := f.pastMeeting(t)

	rows, err := f.scrum.GetAttendanceOfMeeting(ctx, m.Id)
	require.NoError(t, err)
	require.NotEmpty(t, rows)

	updated, err := f.scrum.UpdateAttendance(ctx, &request.UpdateAttendanceRequest{AttendanceId: rows[0].Id, IsPresent: true, Notes: "late"})
	require.NoError(t, err)
	assert.True(t, updated.IsPresent)
	assert.Equal(t, "late", updated.Notes)

	got, err := f.scrum.GetAttendanceById(ctx, rows[0].Id)
	require.NoError(t, err)
	assert.NotNil(t, got.MarkedAt)

	_, err = f.scrum.UpdateAttendance(ctx, &request.UpdateAttendanceRequest{AttendanceId: uuid.NewString(), IsPresent: true})
	assert.ErrorIs(t, err, ErrAttendanceNotFound)
}

func TestScrumService_ListsAndDelete(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	m := f.pastMeeting(t)

	byTeam, err := f.scrum.GetScrumMeetingsOfTeam(ctx, f.team.Id)
	require.NoError(t, err)
	assert.Len(t, byTeam, 1)

	byUser, err := f.scrum.GetScrumMeetingsOfUser(ctx, f.manager.Id)
	require.NoError(t, err)
	assert.Len(t, byUser, 1)

	attendance, err := f.scrum.GetAttendanceOfUser(ctx, f.alice.Id)
	require.NoError(t, err)
	assert.Len(t, attendance, 1)

	require.NoError(t, f.scrum.DeleteScrumMeeting(ctx, m.Id))

	_, err = f.scrum.GetScrumMeetingById(ctx, m.Id)
	assert.ErrorIs(t, err, ErrMeetingNotFound)

	attendance, err = f.scrum.GetAttendanceOfUser(ctx, f.alice.Id)
	require.NoError(t, err)
	assert.Empty(t, attendance)
}

func TestScrumService_BlankAgenda(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	req := meetingRequest(f, time.Now().Add(-time.Hour), f.alice.Id)
	req.Agenda = "   "
	_, err := f.scrum.CreateScrumMeeting(ctx, req)
	assertCode(t, err, CodeInvalidInput)
	assert.Contains(t, err.Error(), "agenda")

	m := f.pastMeeting(t)
	_, err = f.scrum.UpdateScrumMeeting(ctx, &request.UpdateScrumMeetingRequest{
		MeetingId:      m.Id,
		ActorId:        f.manager.Id,
		ScheduledAt:    time.Now(),
		Agenda:         "\n",
		Link:           "https://meet.example.com/daily",
		InvitedUserIds: []string{f.alice.Id},
	})
	assertCode(t, err, CodeInvalidInput)

	// ссылка с пробелами обрезается до проверки url
	req = meetingRequest(f, time.Now().Add(-time.Hour), f.alice.Id)
	req.Link = "  https://meet.example.com/padded "
	created, err := f.scrum.CreateScrumMeeting(ctx, req)
	require.NoError(t, err)
	assert.Equal(t, "https://meet.example.com/padded", created.Link)
}

// brokenAttendanceRepo отдает ошибку хранилища при чтении строки посещаемости.
type brokenAttendanceRepo struct {
	ScrumRepository
	err error
}

func (r *brokenAttendanceRepo) GetAttendance(context.Context, uuid.UUID, uuid.UUID) (*domain.ScrumAttendance, error) {
	return nil, r.err
}

func TestScrumService_MarkAttendance_StorageError(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	m := f.pastMeeting(t)

	storageErr := errors.New("connection reset")
	svc := NewScrumService(&brokenAttendanceRepo{ScrumRepository: f.store, err: storageErr}, f.store, f.store, f.notifications, zap.NewNop())

	_, err := svc.MarkAttendance(ctx, &request.MarkAttendanceRequest{MeetingId: m.Id, UserId: f.alice.Id, IsPresent: true})
	assert.ErrorIs(t, err, storageErr)
	assert.ErrorIs(t, err, markAttendanceError)

	// строка приглашенного осталась неотмеченной
	rows, err := f.scrum.GetAttendanceOfMeeting(ctx, m.Id)
	require.NoError(t, err)
	for _, row := range rows {
		assert.Nil(t, row.MarkedAt)
	}
}
