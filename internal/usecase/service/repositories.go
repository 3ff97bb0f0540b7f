package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/niklvrr/EmToolBackend/internal/domain"
)

// Интерфейсы репозиториев. Их реализуют и postgres, и in-memory хранилище.

type RoleRepository interface {
	CreateRole(ctx context.Context, role *domain.Role) (*domain.Role, error)
	GetRoleById(ctx context.Context, id uuid.UUID) (*domain.Role, error)
	GetRoleByName(ctx context.Context, name string) (*domain.Role, error)
	ListRoles(ctx context.Context) ([]*domain.Role, error)
}

type RoleReader interface {
	GetRoleByName(ctx context.Context, name string) (*domain.Role, error)
}

type UserRepository interface {
	CreateUser(ctx context.Context, u *domain.User) (*domain.User, error)
	GetUserById(ctx context.Context, id uuid.UUID) (*domain.User, error)
	GetUserByUsername(ctx context.Context, username string) (*domain.User, error)
	ListUsers(ctx context.Context, username string) ([]*domain.User, error)
	UpdateUser(ctx context.Context, u *domain.User) (*domain.User, error)
	DeleteUser(ctx context.Context, id uuid.UUID) error
}

type UserReader interface {
	GetUserById(ctx context.Context, id uuid.UUID) (*domain.User, error)
}

type TeamRepository interface {
	CreateTeam(ctx context.Context, t *domain.Team) (*domain.Team, error)
	GetTeamById(ctx context.Context, id uuid.UUID) (*domain.Team, error)
	ListTeamsByName(ctx context.Context, name string) ([]*domain.Team, error)
	ListTeamsByManager(ctx context.Context, managerId uuid.UUID) ([]*domain.Team, error)
	UpdateTeam(ctx context.Context, t *domain.Team) (*domain.Team, error)
	DeleteTeam(ctx context.Context, id uuid.UUID) error
	AddTeamMember(ctx context.Context, m *domain.TeamMember) (*domain.TeamMember, error)
	GetTeamMember(ctx context.Context, teamId, userId uuid.UUID) (*domain.TeamMember, error)
	ListTeamMembers(ctx context.Context, teamId uuid.UUID) ([]*domain.TeamMember, error)
	DeleteTeamMember(ctx context.Context, id uuid.UUID) error
}

type TeamReader interface {
	GetTeamById(ctx context.Context, id uuid.UUID) (*domain.Team, error)
	GetTeamMember(ctx context.Context, teamId, userId uuid.UUID) (*domain.TeamMember, error)
}

type WorkRepository interface {
	CreateWork(ctx context.Context, w *domain.Work) (*domain.Work, error)
	GetWorkById(ctx context.Context, id uuid.UUID) (*domain.Work, error)
	ListWorksByAssignee(ctx context.Context, userId uuid.UUID) ([]*domain.Work, error)
	ListWorksByTeam(ctx context.Context, teamId uuid.UUID) ([]*domain.Work, error)
	UpdateWork(ctx context.Context, w *domain.Work) (*domain.Work, error)
	DeleteWork(ctx context.Context, id uuid.UUID) error
}

type WorkReader interface {
	GetWorkById(ctx context.Context, id uuid.UUID) (*domain.Work, error)
}

type CommentRepository interface {
	CreateComment(ctx context.Context, c *domain.WorkComment) (*domain.WorkComment, error)
	GetCommentById(ctx context.Context, id uuid.UUID) (*domain.WorkComment, error)
	ListComments(ctx context.Context, workId uuid.UUID) ([]*domain.WorkComment, error)
	UpdateComment(ctx context.Context, c *domain.WorkComment) (*domain.WorkComment, error)
	DeleteComment(ctx context.Context, id uuid.UUID) error
}

type AttachmentRepository interface {
	CreateAttachment(ctx context.Context, a *domain.WorkAttachment) (*domain.WorkAttachment, error)
	GetAttachmentById(ctx context.Context, id uuid.UUID) (*domain.WorkAttachment, error)
	ListAttachmentsByWork(ctx context.Context, workId uuid.UUID) ([]*domain.WorkAttachment, error)
	ListAttachmentsByUser(ctx context.Context, userId uuid.UUID) ([]*domain.WorkAttachment, error)
	SearchAttachments(ctx context.Context, fileName string) ([]*domain.WorkAttachment, error)
	UpdateAttachment(ctx context.Context, a *domain.WorkAttachment) (*domain.WorkAttachment, error)
	DeleteAttachment(ctx context.Context, id uuid.UUID) error
}

type PrRepository interface {
	CreatePr(ctx context.Context, pr *domain.PullRequest) (*domain.PullRequest, error)
	GetPrById(ctx context.Context, id uuid.UUID) (*domain.PullRequest, error)
	ListPrsByWork(ctx context.Context, workId uuid.UUID) ([]*domain.PullRequest, error)
	ListPrsByUser(ctx context.Context, userId uuid.UUID) ([]*domain.PullRequest, error)
	ListPrsByTeam(ctx context.Context, teamId uuid.UUID) ([]*domain.PullRequest, error)
	UpdatePrStatus(ctx context.Context, id uuid.UUID, from, to domain.PrStatus) (*domain.PullRequest, error)
	SetPrReadiness(ctx context.Context, id uuid.UUID, ready bool) error
	DeletePr(ctx context.Context, id uuid.UUID) error
}

// PrReadiness нужен ревью для пересчета флага готовности.
type PrReadiness interface {
	GetPrById(ctx context.Context, id uuid.UUID) (*domain.PullRequest, error)
	SetPrReadiness(ctx context.Context, id uuid.UUID, ready bool) error
}

type ReviewRepository interface {
	CreateReview(ctx context.Context, rv *domain.Review) (*domain.Review, error)
	GetReviewById(ctx context.Context, id uuid.UUID) (*domain.Review, error)
	GetReviewByReviewer(ctx context.Context, prId, reviewerId uuid.UUID) (*domain.Review, error)
	ListReviewsByPr(ctx context.Context, prId uuid.UUID) ([]*domain.Review, error)
	ListReviewsByUser(ctx context.Context, userId uuid.UUID) ([]*domain.Review, error)
	UpdateReview(ctx context.Context, rv *domain.Review) (*domain.Review, error)
	DeleteReview(ctx context.Context, id uuid.UUID) error
}

type ReviewLister interface {
	ListReviewsByPr(ctx context.Context, prId uuid.UUID) ([]*domain.Review, error)
}

type NotificationRepository interface {
	CreateNotification(ctx context.Context, n *domain.Notification) (*domain.Notification, error)
	ListNotificationsByUser(ctx context.Context, userId uuid.UUID) ([]*domain.Notification, error)
	CountUnread(ctx context.Context, userId uuid.UUID) (int, error)
	MarkNotificationRead(ctx context.Context, id uuid.UUID) (*domain.Notification, error)
	DeleteNotification(ctx context.Context, id uuid.UUID) error
	DeleteUserNotifications(ctx context.Context, userId uuid.UUID) (int64, error)
}

type ScrumRepository interface {
	CreateMeeting(ctx context.Context, m *domain.ScrumMeeting) (*domain.ScrumMeeting, error)
	GetMeetingById(ctx context.Context, id uuid.UUID) (*domain.ScrumMeeting, error)
	ListMeetingsByTeam(ctx context.Context, teamId uuid.UUID) ([]*domain.ScrumMeeting, error)
	ListMeetingsByCreator(ctx context.Context, userId uuid.UUID) ([]*domain.ScrumMeeting, error)
	UpdateMeeting(ctx context.Context, m *domain.ScrumMeeting) (*domain.ScrumMeeting, error)
	DeleteMeeting(ctx context.Context, id uuid.UUID) error
	GetAttendanceById(ctx context.Context, id uuid.UUID) (*domain.ScrumAttendance, error)
	GetAttendance(ctx context.Context, meetingId, userId uuid.UUID) (*domain.ScrumAttendance, error)
	CreateAttendance(ctx context.Context, a *domain.ScrumAttendance) (*domain.ScrumAttendance, error)
	UpdateAttendance(ctx context.Context, a *domain.ScrumAttendance) (*domain.ScrumAttendance, error)
	ListAttendanceByMeeting(ctx context.Context, meetingId uuid.UUID) ([]*domain.ScrumAttendance, error)
	ListAttendanceByUser(ctx context.Context, userId uuid.UUID) ([]*domain.ScrumAttendance, error)
	ListAttendanceByTeam(ctx context.Context, teamId uuid.UUID) ([]*domain.ScrumAttendance, error)
}

// ReportRepository выгрузка данных для отчетов.
type ReportRepository interface {
	GetTeamById(ctx context.Context, id uuid.UUID) (*domain.Team, error)
	ListTeamMembers(ctx context.Context, teamId uuid.UUID) ([]*domain.TeamMember, error)
	GetUserById(ctx context.Context, id uuid.UUID) (*domain.User, error)
	ListWorksByTeam(ctx context.Context, teamId uuid.UUID) ([]*domain.Work, error)
	ListWorksByAssignee(ctx context.Context, userId uuid.UUID) ([]*domain.Work, error)
	ListPrsByTeam(ctx context.Context, teamId uuid.UUID) ([]*domain.PullRequest, error)
	ListPrsByUser(ctx context.Context, userId uuid.UUID) ([]*domain.PullRequest, error)
	ListMeetingsByTeam(ctx context.Context, teamId uuid.UUID) ([]*domain.ScrumMeeting, error)
	ListAttendanceByTeam(ctx context.Context, teamId uuid.UUID) ([]*domain.ScrumAttendance, error)
	ListAttendanceByUser(ctx context.Context, userId uuid.UUID) ([]*domain.ScrumAttendance, error)
}

// Notifier отправляет уведомления из других сервисов. Ошибки только логируются вызывающим.
type Notifier interface {
	Notify(ctx context.Context, userId uuid.UUID, kind, message string) error
	NotifyAll(ctx context.Context, userIds []uuid.UUID, kind, message string) error
}

const (
	NotifyTaskAssigned  = "task_assigned"
	NotifyPrStatus      = "pr_status"
	NotifyMeetingInvite = "meeting_invite"
)
