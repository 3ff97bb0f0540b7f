package domain

import (
	"time"

	"github.com/google/uuid"
)

type Role struct {
	Id        uuid.UUID
	Name      string
	CreatedAt time.Time
}

type User struct {
	Id           uuid.UUID
	FirstName    string
	LastName     string
	Email        string
	Username     string
	PasswordHash string
	RoleId       uuid.UUID
	RoleName     string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

func (u *User) IsManager() bool {
	return u.RoleName == RoleManager
}

func (u *User) IsEmployee() bool {
	return u.RoleName == RoleEmployee
}

type Team struct {
	Id        uuid.UUID
	Name      string
	ManagerId uuid.UUID
	CreatedAt time.Time
}

// TeamMember хранит членство; Username и RoleName подтягиваются из users.
type TeamMember struct {
	Id        uuid.UUID
	TeamId    uuid.UUID
	UserId    uuid.UUID
	AddedById uuid.UUID
	Username  string
	RoleName  string
	JoinedAt  time.Time
}

type Work struct {
	Id          uuid.UUID
	Title       string
	Description string
	AssignedBy  uuid.UUID
	AssignedTo  uuid.UUID
	TeamId      uuid.UUID
	Status      WorkStatus
	Deadline    time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

type WorkComment struct {
	Id          uuid.UUID
	WorkId      uuid.UUID
	UserId      uuid.UUID
	Comment     string
	CommentedOn time.Time
}

type WorkAttachment struct {
	Id        uuid.UUID
	WorkId    uuid.UUID
	UserId    uuid.UUID
	FileName  string
	FilePath  string
	FileType  string
	CreatedAt time.Time
}

// PullRequest.TeamId берется из связанной задачи.
type PullRequest struct {
	Id                 uuid.UUID
	WorkId             uuid.UUID
	TeamId             uuid.UUID
	CreatedById        uuid.UUID
	Link               string
	Description        string
	AttachmentPath     string
	Status             PrStatus
	IsReadyForApproval bool
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

type Review struct {
	Id            uuid.UUID
	PullRequestId uuid.UUID
	ReviewerId    uuid.UUID
	Status        ReviewStatus
	Comments      string
	ReviewedAt    time.Time
}

type Notification struct {
	Id        uuid.UUID
	UserId    uuid.UUID
	Message   string
	Type      string
	IsRead    bool
	CreatedAt time.Time
}

type ScrumMeeting struct {
	Id             uuid.UUID
	TeamId         uuid.UUID
	ScheduledAt    time.Time
	Agenda         string
	Link           string
	CreatedBy      uuid.UUID
	CreatedByRole  string
	InvitedUserIds []uuid.UUID
	CreatedAt      time.Time
}

// ScrumAttendance.MarkedAt == nil, пока присутствие не отмечено.
// TeamId и ScheduledAt копируются из встречи.
type ScrumAttendance struct {
	Id          uuid.UUID
	MeetingId   uuid.UUID
	TeamId      uuid.UUID
	UserId      uuid.UUID
	IsPresent   bool
	Notes       string
	MarkedAt    *time.Time
	ScheduledAt time.Time
}

func (a *ScrumAttendance) IsMarked() bool {
	return a.MarkedAt != nil
}
