package response

import (
	"time"

	"github.com/niklvrr/EmToolBackend/internal/domain"
)

type ScrumMeetingResponse struct {
	Id             string    `json:"id"`
	TeamId         string    `json:"team_id"`
	ScheduledAt    time.Time `json:"scheduled_at"`
	Agenda         string    `json:"agenda"`
	Link           string    `json:"link"`
	CreatedBy      string    `json:"created_by"`
	CreatedByRole  string    `json:"created_by_role"`
	InvitedUserIds []string  `json:"invited_user_ids"`
	CreatedAt      time.Time `json:"created_at"`
}

func NewScrumMeetingResponse(m *domain.ScrumMeeting) *ScrumMeetingResponse {
	invited := make([]string, 0, len(m.InvitedUserIds))
	for _, id := range m.InvitedUserIds {
		invited = append(invited, id.String())
	}
	return &ScrumMeetingResponse{
		Id:             m.Id.String(),
		TeamId:         m.TeamId.String(),
		ScheduledAt:    m.ScheduledAt,
		Agenda:         m.Agenda,
		Link:           m.Link,
		CreatedBy:      m.CreatedBy.String(),
		CreatedByRole:  m.CreatedByRole,
		InvitedUserIds: invited,
		CreatedAt:      m.CreatedAt,
	}
}

func NewScrumMeetingResponses(items []*domain.ScrumMeeting) []*ScrumMeetingResponse {
	return mapAll(items, NewScrumMeetingResponse)
}

type AttendanceResponse struct {
	Id          string     `json:"id"`
	MeetingId   string     `json:"meeting_id"`
	UserId      string     `json:"user_id"`
	IsPresent   bool       `json:"is_present"`
	Notes       string     `json:"notes"`
	MarkedAt    *time.Time `json:"marked_at"`
	ScheduledAt time.Time  `json:"scheduled_at"`
}

func NewAttendanceResponse(a *domain.ScrumAttendance) *AttendanceResponse {
	return &AttendanceResponse{
		Id:          a.Id.String(),
		MeetingId:   a.MeetingId.String(),
		UserId:      a.UserId.String(),
		IsPresent:   a.IsPresent,
		Notes:       a.Notes,
		MarkedAt:    a.MarkedAt,
		ScheduledAt: a.ScheduledAt,
	}
}

func NewAttendanceResponses(items []*domain.ScrumAttendance) []*AttendanceResponse {
	return mapAll(items, NewAttendanceResponse)
}
