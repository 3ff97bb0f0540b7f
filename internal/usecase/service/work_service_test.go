package service

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/niklvrr/EmToolBackend/internal/transport/dto/request"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func workRequest(f *fixture) *request.CreateWorkRequest {
	return &request.CreateWorkRequest{
		Title:       "build api",
		Description: "endpoints",
		AssignedBy:  f.manager.Id,
		AssignedTo:  f.alice.Id,
		TeamId:      f.team.Id,
		Status:      "todo",
		Deadline:    time.Now().Add(24 * time.Hour),
	}
}

func TestWorkService_CreateWork_Success(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	work, err := f.works.CreateWork(ctx, workRequest(f))

	require.NoError(t, err)
	assert.Equal(t, "ToDo", work.Status)
	assert.Equal(t, f.alice.Id, work.AssignedTo)

	// исполнитель получает уведомление
	notes, err := f.notifications.GetNotificationsOfUser(ctx, f.alice.Id)
	require.NoError(t, err)
	require.Len(t, notes, 1)
	assert.Equal(t, NotifyTaskAssigned, notes[0].Type)
}

func TestWorkService_CreateWork_Rules(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	other := f.register(t, "boss2", true)

	tests := []struct {
		name   string
		modify func(r *request.CreateWorkRequest)
		want   error
	}{
		{name: "assigner is employee", modify: func(r *request.CreateWorkRequest) { r.AssignedBy = f.bob.Id }, want: ErrNotManager},
		{name: "assigner manages another team", modify: func(r *request.CreateWorkRequest) { r.AssignedBy = other.Id }, want: ErrNotTeamManager},
		{name: "assignee is manager", modify: func(r *request.CreateWorkRequest) { r.AssignedTo = f.manager.Id }, want: ErrNotEmployee},
		{name: "assignee outside team", modify: func(r *request.CreateWorkRequest) { r.AssignedTo = f.carol.Id }, want: ErrNotTeamMember},
		{name: "unknown team", modify: func(r *request.CreateWorkRequest) { r.TeamId = uuid.NewString() }, want: ErrTeamNotFound},
		{name: "bad status", modify: func(r *request.CreateWorkRequest) { r.Status = "done" }, want: ErrInvalidInput},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := workRequest(f)
			tt.modify(req)

			_, err := f.works.CreateWork(ctx, req)

			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestWorkService_CreateWork_TitleUniqueInTeam(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.works.CreateWork(ctx, workRequest(f))
	require.NoError(t, err)

	_, err = f.works.CreateWork(ctx, workRequest(f))
	assert.ErrorIs(t, err, ErrWorkExists)
}

func TestWorkService_UpdateWork_EmployeeStatusOnly(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	work := f.createWork(t, "task")

	status := "InProgress"
	updated, err := f.works.UpdateWork(ctx, &request.UpdateWorkRequest{WorkId: work.Id, ActorId: f.alice.Id, Status: &status})
	require.NoError(t, err)
	assert.Equal(t, "InProgress", updated.Status)

	title := "renamed"
	_, err = f.works.UpdateWork(ctx, &request.UpdateWorkRequest{WorkId: work.Id, ActorId: f.alice.Id, Title: &title})
	assert.ErrorIs(t, err, ErrStatusOnly)

	// чужую задачу сотрудник не меняет
	_, err = f.works.UpdateWork(ctx, &request.UpdateWorkRequest{WorkId: work.Id, ActorId: f.bob.Id, Status: &status})
	assert.ErrorIs(t, err, ErrNotAssignee)
}

func TestWorkService_UpdateWork_ManagerReassigns(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	work := f.createWork(t, "task")

	title := "renamed"
	bob := f.bob.Id
	updated, err := f.works.UpdateWork(ctx, &request.UpdateWorkRequest{
		WorkId:     work.Id,
		ActorId:    f.manager.Id,
		Title:      &title,
		AssignedTo: &bob,
	})
	require.NoError(t, err)
	assert.Equal(t, "renamed", updated.Title)
	assert.Equal(t, f.bob.Id, updated.AssignedTo)

	count, err := f.notifications.GetUnreadCount(ctx, f.bob.Id)
	require.NoError(t, err)
	assert.Equal(t, 1, count.Unread)

	carol := f.carol.Id
	_, err = f.works.UpdateWork(ctx, &request.UpdateWorkRequest{WorkId: work.Id, ActorId: f.manager.Id, AssignedTo: &carol})
	assert.ErrorIs(t, err, ErrNotTeamMember)
}

func TestWorkService_DeleteWork_OnlyTeamManager(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	work := f.createWork(t, "task")

	err := f.works.DeleteWork(ctx, work.Id, f.alice.Id)
	assert.ErrorIs(t, err, ErrNotManager)

	require.NoError(t, f.works.DeleteWork(ctx, work.Id, f.manager.Id))

	_, err = f.works.GetWorkById(ctx, work.Id)
	assertCode(t, err, CodeNotFound)
}

func TestWorkService_Lists(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.createWork(t, "one")
	f.createWork(t, "two")

	byTeam, err := f.works.GetTeamWorks(ctx, f.team.Id)
	require.NoError(t, err)
	assert.Len(t, byTeam, 2)

	byUser, err := f.works.GetEmployeeWorks(ctx, f.alice.Id)
	require.NoError(t, err)
	assert.Len(t, byUser, 2)

	_, err = f.works.GetEmployeeWorks(ctx, uuid.NewString())
	assertCode(t, err, CodeNotFound)
}

func TestWorkService_BlankTitle(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.works.CreateWork(ctx, &request.CreateWorkRequest{
		Title:       "    ",
		Description: "do it",
		AssignedBy:  f.manager.Id,
		AssignedTo:  f.alice.Id,
		TeamId:      f.team.Id,
		Status:      "ToDo",
		Deadline:    time.Now().Add(time.Hour),
	})
	assertCode(t, err, CodeInvalidInput)
	assert.Contains(t, err.Error(), "title")

	work := f.createWork(t, "task")
	blank := "  "
	_, err = f.works.UpdateWork(ctx, &request.UpdateWorkRequest{WorkId: work.Id, ActorId: f.manager.Id, Title: &blank})
	assertCode(t, err, CodeInvalidInput)

	got, err := f.works.GetWorkById(ctx, work.Id)
	require.NoError(t, err)
	assert.Equal(t, "task", got.Title)
}
