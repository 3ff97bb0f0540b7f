package domain

import (
	"sort"
	"time"

	"github.com/google/uuid"
)

type Period struct {
	From time.Time
	To   time.Time
}

// Contains включает обе границы.
func (p Period) Contains(t time.Time) bool {
	return !t.Before(p.From) && !t.After(p.To)
}

func (p Period) Valid() bool {
	return !p.To.Before(p.From)
}

type TaskCounts struct {
	Total     int
	Completed int
	Pending   int
	ByStatus  map[WorkStatus]int
}

type PrCounts struct {
	Total    int
	Pending  int
	Approved int
	Rejected int
}

type Performance struct {
	UserId           uuid.UUID
	Username         string
	TasksCompleted   int
	PrsMerged        int
	MeetingsAttended int
	Score            int
	Rank             int
}

type TeamReport struct {
	TeamId       uuid.UUID
	TeamName     string
	Period       Period
	Tasks        TaskCounts
	PullRequests PrCounts
	MeetingsHeld int
	Performers   []Performance
}

// ReportSource уже выгруженные из хранилища данные. Фильтрация по периоду
// делается в BuildTeamReport и BuildPerformance.
type ReportSource struct {
	Works      []*Work
	Prs        []*PullRequest
	Meetings   []*ScrumMeeting
	Attendance []*ScrumAttendance
}

func BuildTeamReport(team *Team, employees []*TeamMember, src ReportSource, period Period) *TeamReport {
	report := &TeamReport{
		TeamId:   team.Id,
		TeamName: team.Name,
		Period:   period,
		Tasks:    countTasks(src.Works, period),
	}
	report.PullRequests = countPrs(src.Prs, period)

	for _, m := range src.Meetings {
		if m.TeamId == team.Id && period.Contains(m.ScheduledAt) {
			report.MeetingsHeld++
		}
	}

	performers := make([]Performance, 0, len(employees))
	for _, e := range employees {
		performers = append(performers, BuildPerformance(e.UserId, e.Username, src, period))
	}
	report.Performers = RankPerformers(performers)

	return report
}

// BuildPerformance считает показатели одного сотрудника по всем записям src.
func BuildPerformance(userId uuid.UUID, username string, src ReportSource, period Period) Performance {
	p := Performance{
		UserId:   userId,
		Username: username,
	}

	for _, w := range src.Works {
		if w.AssignedTo == userId && w.Status == WorkCompleted && period.Contains(w.CreatedAt) {
			p.TasksCompleted++
		}
	}
	for _, pr := range src.Prs {
		if pr.CreatedById == userId && pr.Status == PrApproved && period.Contains(pr.CreatedAt) {
			p.PrsMerged++
		}
	}
	for _, a := range src.Attendance {
		if a.UserId == userId && a.IsPresent && period.Contains(a.ScheduledAt) {
			p.MeetingsAttended++
		}
	}

	p.Score = p.TasksCompleted + p.PrsMerged + p.MeetingsAttended
	return p
}

// RankPerformers сортирует по score по убыванию, при равенстве по username, и проставляет Rank с 1.
func RankPerformers(performers []Performance) []Performance {
	sort.SliceStable(performers, func(i, j int) bool {
		if performers[i].Score != performers[j].Score {
			return performers[i].Score > performers[j].Score
		}
		return performers[i].Username < performers[j].Username
	})
	for i := range performers {
		performers[i].Rank = i + 1
	}
	return performers
}

func countTasks(works []*Work, period Period) TaskCounts {
	c := TaskCounts{ByStatus: make(map[WorkStatus]int, len(workStatuses))}
	for _, st := range workStatuses {
		c.ByStatus[st] = 0
	}

	for _, w := range works {
		if !period.Contains(w.CreatedAt) {
			continue
		}
		c.Total++
		c.ByStatus[w.Status]++
		if w.Status == WorkCompleted {
			c.Completed++
		} else {
			c.Pending++
		}
	}
	return c
}

func countPrs(prs []*PullRequest, period Period) PrCounts {
	var c PrCounts
	for _, pr := range prs {
		if !period.Contains(pr.CreatedAt) {
			continue
		}
		c.Total++
		switch pr.Status {
		case PrApproved:
			c.Approved++
		case PrRejected:
			c.Rejected++
		default:
			c.Pending++
		}
	}
	return c
}
