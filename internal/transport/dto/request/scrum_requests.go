package request

import "time"

type CreateScrumMeetingRequest struct {
	TeamId         string    `json:"team_id" validate:"required,uuid"`
	ScheduledAt    time.Time `json:"scheduled_at" validate:"required"`
	Agenda         string    `json:"agenda" validate:"required"`
	Link           string    `json:"link" validate:"required,http_url"`
	CreatedBy      string    `json:"created_by" validate:"required,uuid"`
	InvitedUserIds []string  `json:"invited_user_ids" validate:"required,min=1,dive,uuid"`
}

type UpdateScrumMeetingRequest struct {
	MeetingId      string    `json:"-" validate:"required,uuid"`
	ActorId        string    `json:"actor_id" validate:"required,uuid"`
	ScheduledAt    time.Time `json:"scheduled_at" validate:"required"`
	Agenda         string    `json:"agenda" validate:"required"`
	Link           string    `json:"link" validate:"required,http_url"`
	InvitedUserIds []string  `json:"invited_user_ids" validate:"required,min=1,dive,uuid"`
}

type MarkAttendanceRequest struct {
	MeetingId string `json:"-" validate:"required,uuid"`
	UserId    string `json:"user_id" validate:"required,uuid"`
	IsPresent bool   `json:"is_present"`
	Notes     string `json:"notes" validate:"max=1000"`
}

type UpdateAttendanceRequest struct {
	AttendanceId string `json:"-" validate:"required,uuid"`
	IsPresent    bool   `json:"is_present"`
	Notes        string `json:"notes" validate:"max=1000"`
}

type ReportRequest struct {
	Id   string    `validate:"required,uuid"`
	From time.Time `validate:"required"`
	To   time.Time `validate:"required"`
}
