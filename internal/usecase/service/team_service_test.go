package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/niklvrr/EmToolBackend/internal/transport/dto/request"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTeamService_CreateTeam_RequiresManager(t *testing.T) {
	f := newFixture(t)

	_, err := f.teams.CreateTeam(context.Background(), &request.CreateTeamRequest{Name: "rogue", ManagerId: f.alice.Id})

	assert.ErrorIs(t, err, ErrNotManager)
	assertCode(t, err, CodeForbidden)
}

func TestTeamService_CreateTeam_UniquePerManager(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.teams.CreateTeam(ctx, &request.CreateTeamRequest{Name: "core", ManagerId: f.manager.Id})
	assertCode(t, err, CodeAlreadyExists)

	other := f.register(t, "boss2", true)
	team, err := f.teams.CreateTeam(ctx, &request.CreateTeamRequest{Name: "core", ManagerId: other.Id})
	require.NoError(t, err)
	assert.Equal(t, other.Id, team.ManagerId)
}

func TestTeamService_CreateTeam_UnknownManager(t *testing.T) {
	f := newFixture(t)

	_, err := f.teams.CreateTeam(context.Background(), &request.CreateTeamRequest{Name: "x", ManagerId: uuid.NewString()})

	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestTeamService_UpdateTeam_OnlyOwnManager(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	other := f.register(t, "boss2", true)

	_, err := f.teams.UpdateTeam(ctx, &request.UpdateTeamRequest{TeamId: f.team.Id, Name: "renamed", ManagerId: other.Id})
	assert.ErrorIs(t, err, ErrNotTeamManager)

	updated, err := f.teams.UpdateTeam(ctx, &request.UpdateTeamRequest{TeamId: f.team.Id, Name: "renamed", ManagerId: f.manager.Id})
	require.NoError(t, err)
	assert.Equal(t, "renamed", updated.Name)
}

func TestTeamService_AddTeamMember_Rules(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	// сотрудник не может добавлять
	_, err := f.teams.AddTeamMember(ctx, &request.AddTeamMemberRequest{TeamId: f.team.Id, UserId: f.carol.Id, AddedById: f.alice.Id})
	assert.ErrorIs(t, err, ErrNotManager)

	// чужой менеджер тоже
	other := f.register(t, "boss2", true)
	_, err = f.teams.AddTeamMember(ctx, &request.AddTeamMemberRequest{TeamId: f.team.Id, UserId: f.carol.Id, AddedById: other.Id})
	assert.ErrorIs(t, err, ErrNotTeamManager)

	// повторное добавление
	_, err = f.teams.AddTeamMember(ctx, &request.AddTeamMemberRequest{TeamId: f.team.Id, UserId: f.alice.Id, AddedById: f.manager.Id})
	assert.ErrorIs(t, err, ErrMemberExists)

	member, err := f.teams.AddTeamMember(ctx, &request.AddTeamMemberRequest{TeamId: f.team.Id, UserId: f.carol.Id, AddedById: f.manager.Id})
	require.NoError(t, err)
	assert.Equal(t, f.carol.Id, member.UserId)

	members, err := f.teams.GetTeamMembers(ctx, f.team.Id)
	require.NoError(t, err)
	assert.Len(t, members, 3)
}

func TestTeamService_DeleteTeam_InUseUntilEmpty(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	err := f.teams.DeleteTeam(ctx, f.team.Id)
	assertCode(t, err, CodeInUse)

	members, err := f.teams.GetTeamMembers(ctx, f.team.Id)
	require.NoError(t, err)
	for _, m := range members {
		require.NoError(t, f.teams.DeleteTeamMember(ctx, m.Id))
	}

	require.NoError(t, f.teams.DeleteTeam(ctx, f.team.Id))

	_, err = f.teams.GetTeamById(ctx, f.team.Id)
	assertCode(t, err, CodeNotFound)
}

func TestTeamService_DeleteTeamMember_NotFound(t *testing.T) {
	f := newFixture(t)

	err := f.teams.DeleteTeamMember(context.Background(), uuid.NewString())

	assert.ErrorIs(t, err, ErrMemberNotFound)
}

func TestTeamService_GetTeams(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	byName, err := f.teams.GetTeamsByName(ctx, "CORE")
	require.NoError(t, err)
	require.Len(t, byName, 1)

	byManager, err := f.teams.GetTeamsOfManager(ctx, f.manager.Id)
	require.NoError(t, err)
	assert.Len(t, byManager, 1)

	empty, err := f.teams.GetTeamsOfManager(ctx, f.alice.Id)
	require.NoError(t, err)
	assert.Empty(t, empty)
}

func TestTeamService_BlankName(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.teams.CreateTeam(ctx, &request.CreateTeamRequest{Name: "   ", ManagerId: f.manager.Id})
	assertCode(t, err, CodeInvalidInput)

	_, err = f.teams.UpdateTeam(ctx, &request.UpdateTeamRequest{TeamId: f.team.Id, Name: " ", ManagerId: f.manager.Id})
	assertCode(t, err, CodeInvalidInput)
	assert.Contains(t, err.Error(), "name")
}
