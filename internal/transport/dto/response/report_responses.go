package response

import (
	"time"

	"github.com/niklvrr/EmToolBackend/internal/domain"
)

type TaskCountsResponse struct {
	Total     int            `json:"total"`
	Completed int            `json:"completed"`
	Pending   int            `json:"pending"`
	ByStatus  map[string]int `json:"by_status"`
}

type PrCountsResponse struct {
	Total    int `json:"total"`
	Pending  int `json:"pending"`
	Approved int `json:"approved"`
	Rejected int `json:"rejected"`
}

type PerformanceResponse struct {
	Rank             int    `json:"rank"`
	UserId           string `json:"user_id"`
	Username         string `json:"username"`
	TasksCompleted   int    `json:"tasks_completed"`
	PrsMerged        int    `json:"prs_merged"`
	MeetingsAttended int    `json:"meetings_attended"`
	Score            int    `json:"score"`
}

type TeamReportResponse struct {
	TeamId       string                 `json:"team_id"`
	TeamName     string                 `json:"team_name"`
	From         time.Time              `json:"from"`
	To           time.Time              `json:"to"`
	Tasks        TaskCountsResponse     `json:"tasks"`
	PullRequests PrCountsResponse       `json:"pull_requests"`
	MeetingsHeld int                    `json:"meetings_held"`
	Performers   []*PerformanceResponse `json:"top_performers"`
}

type EmployeeReportResponse struct {
	From        time.Time            `json:"from"`
	To          time.Time            `json:"to"`
	Performance *PerformanceResponse `json:"performance"`
}

func NewPerformanceResponse(p domain.Performance) *PerformanceResponse {
	return &PerformanceResponse{
		Rank:             p.Rank,
		UserId:           p.UserId.String(),
		Username:         p.Username,
		TasksCompleted:   p.TasksCompleted,
		PrsMerged:        p.PrsMerged,
		MeetingsAttended: p.MeetingsAttended,
		Score:            p.Score,
	}
}

func NewTeamReportResponse(r *domain.TeamReport) *TeamReportResponse {
	byStatus := make(map[string]int, len(r.Tasks.ByStatus))
	for st, n := range r.Tasks.ByStatus {
		byStatus[string(st)] = n
	}

	performers := make([]*PerformanceResponse, 0, len(r.Performers))
	for _, p := range r.Performers {
		performers = append(performers, NewPerformanceResponse(p))
	}

	return &TeamReportResponse{
		TeamId:   r.TeamId.String(),
		TeamName: r.TeamName,
		From:     r.Period.From,
		To:       r.Period.To,
		Tasks: TaskCountsResponse{
			Total:     r.Tasks.Total,
			Completed: r.Tasks.Completed,
			Pending:   r.Tasks.Pending,
			ByStatus:  byStatus,
		},
		PullRequests: PrCountsResponse{
			Total:    r.PullRequests.Total,
			Pending:  r.PullRequests.Pending,
			Approved: r.PullRequests.Approved,
			Rejected: r.PullRequests.Rejected,
		},
		MeetingsHeld: r.MeetingsHeld,
		Performers:   performers,
	}
}
