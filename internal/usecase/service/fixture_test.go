package service

import (
	"context"
	"testing"
	"time"

	"github.com/niklvrr/EmToolBackend/internal/infrastructure/memory"
	"github.com/niklvrr/EmToolBackend/internal/transport/dto/request"
	"github.com/niklvrr/EmToolBackend/internal/transport/dto/response"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// fixture собирает все сервисы поверх одного in-memory хранилища:
// менеджер boss, его команда core и сотрудники alice и bob в ней.
// carol существует, но в команду не входит.
type fixture struct {
	store *memory.Store

	roles         *RoleService
	users         *UserService
	teams         *TeamService
	notifications *NotificationService
	works         *WorkService
	comments      *CommentService
	attachments   *AttachmentService
	prs           *PrService
	reviews       *ReviewService
	scrum         *ScrumService
	reports       *ReportService

	manager *response.UserResponse
	alice   *response.UserResponse
	bob     *response.UserResponse
	carol   *response.UserResponse
	team    *response.TeamResponse
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	ctx := context.Background()
	log := zap.NewNop()
	store := memory.NewStore(log)

	f := &fixture{store: store}
	f.roles = NewRoleService(store, log)
	f.users = NewUserService(store, store, log)
	f.users.cost = bcrypt.MinCost
	f.teams = NewTeamService(store, store, log)
	f.notifications = NewNotificationService(store, store, log)
	f.works = NewWorkService(store, store, store, f.notifications, log)
	f.comments = NewCommentService(store, store, store, store, log)
	f.attachments = NewAttachmentService(store, store, store, log)
	f.prs = NewPrService(store, store, store, store, store, f.notifications, log)
	f.reviews = NewReviewService(store, store, store, store, store, log)
	f.scrum = NewScrumService(store, store, store, f.notifications, log)
	f.reports = NewReportService(store, log)

	require.NoError(t, f.roles.EnsureDefaultRoles(ctx))

	f.manager = f.register(t, "boss", true)
	f.alice = f.register(t, "alice", false)
	f.bob = f.register(t, "bob", false)
	f.carol = f.register(t, "carol", false)

	team, err := f.teams.CreateTeam(ctx, &request.CreateTeamRequest{Name: "core", ManagerId: f.manager.Id})
	require.NoError(t, err)
	f.team = team

	for _, u := range []*response.UserResponse{f.alice, f.bob} {
		_, err := f.teams.AddTeamMember(ctx, &request.AddTeamMemberRequest{
			TeamId:    team.Id,
			UserId:    u.Id,
			AddedById: f.manager.Id,
		})
		require.NoError(t, err)
	}

	return f
}

func (f *fixture) register(t *testing.T, username string, manager bool) *response.UserResponse {
	t.Helper()
	req := &request.RegisterUserRequest{
		FirstName: username,
		LastName:  "Test",
		Email:     username + "@example.com",
		Username:  username,
		Password:  "password-123",
	}

	var (
		u   *response.UserResponse
		err error
	)
	if manager {
		u, err = f.users.RegisterManager(context.Background(), req)
	} else {
		u, err = f.users.RegisterEmployee(context.Background(), req)
	}
	require.NoError(t, err)
	return u
}

// createWork назначает задачу alice.
func (f *fixture) createWork(t *testing.T, title string) *response.WorkResponse {
	t.Helper()
	w, err := f.works.CreateWork(context.Background(), &request.CreateWorkRequest{
		Title:       title,
		Description: "do it",
		AssignedBy:  f.manager.Id,
		AssignedTo:  f.alice.Id,
		TeamId:      f.team.Id,
		Status:      "ToDo",
		Deadline:    time.Now().Add(48 * time.Hour),
	})
	require.NoError(t, err)
	return w
}

func (f *fixture) createPr(t *testing.T, workId string) *response.PullRequestResponse {
	t.Helper()
	pr, err := f.prs.CreatePullRequest(context.Background(), &request.CreatePrRequest{
		WorkId:      workId,
		CreatedById: f.alice.Id,
		Link:        "https://git.example.com/core/pull/1",
	})
	require.NoError(t, err)
	return pr
}

func assertCode(t *testing.T, err error, code string) {
	t.Helper()
	var domainErr *DomainError
	if assert.ErrorAs(t, err, &domainErr) {
		assert.Equal(t, code, domainErr.Code, err.Error())
	}
}
