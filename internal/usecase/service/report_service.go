package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/niklvrr/EmToolBackend/internal/domain"
	"github.com/niklvrr/EmToolBackend/internal/transport/dto/request"
	"github.com/niklvrr/EmToolBackend/internal/transport/dto/response"
	"go.uber.org/zap"
)

var (
	teamReportError     = errors.New("team report error")
	employeeReportError = errors.New("employee report error")
	errPeriod           = errors.New("to must not be before from")
)

// ReportService выгружает данные из хранилища и считает отчеты в domain.
type ReportService struct {
	repo ReportRepository
	log  *zap.Logger
}

func NewReportService(repo ReportRepository, log *zap.Logger) *ReportService {
	return &ReportService{
		repo: repo,
		log:  log,
	}
}

func (s *ReportService) GetTeamReport(ctx context.Context, req *request.ReportRequest) (*response.TeamReportResponse, error) {
	s.log.Info("teamReport request accepted",
		zap.String("team_id", req.Id),
		zap.Time("from", req.From),
		zap.Time("to", req.To),
	)

	period, err := reportPeriod(req)
	if err != nil {
		return nil, err
	}
	teamId, err := parseID(req.Id, "team_id")
	if err != nil {
		return nil, err
	}

	team, err := s.repo.GetTeamById(ctx, teamId)
	if err != nil {
		return nil, mapRepoError(err, teamReportError, ErrTeamNotFound, nil)
	}

	members, err := s.repo.ListTeamMembers(ctx, teamId)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", teamReportError, err)
	}
	employees := make([]*domain.TeamMember, 0, len(members))
	for _, m := range members {
		if m.RoleName == domain.RoleEmployee {
			employees = append(employees, m)
		}
	}

	var src domain.ReportSource
	if src.Works, err = s.repo.ListWorksByTeam(ctx, teamId); err != nil {
		return nil, fmt.Errorf("%w: %w", teamReportError, err)
	}
	if src.Prs, err = s.repo.ListPrsByTeam(ctx, teamId); err != nil {
		return nil, fmt.Errorf("%w: %w", teamReportError, err)
	}
	if src.Meetings, err = s.repo.ListMeetingsByTeam(ctx, teamId); err != nil {
		return nil, fmt.Errorf("%w: %w", teamReportError, err)
	}
	if src.Attendance, err = s.repo.ListAttendanceByTeam(ctx, teamId); err != nil {
		return nil, fmt.Errorf("%w: %w", teamReportError, err)
	}

	report := domain.BuildTeamReport(team, employees, src, period)

	s.log.Info("team report built",
		zap.String("team_id", req.Id),
		zap.Int("tasks", report.Tasks.Total),
		zap.Int("pull_requests", report.PullRequests.Total),
		zap.Int("meetings", report.MeetingsHeld),
	)

	return response.NewTeamReportResponse(report), nil
}

// GetEmployeeReport считает показатели сотрудника по всем его командам.
func (s *ReportService) GetEmployeeReport(ctx context.Context, req *request.ReportRequest) (*response.EmployeeReportResponse, error) {
	s.log.Info("employeeReport request accepted",
		zap.String("user_id", req.Id),
		zap.Time("from", req.From),
		zap.Time("to", req.To),
	)

	period, err := reportPeriod(req)
	if err != nil {
		return nil, err
	}
	userId, err := parseID(req.Id, "user_id")
	if err != nil {
		return nil, err
	}

	user, err := s.repo.GetUserById(ctx, userId)
	if err != nil {
		return nil, mapRepoError(err, employeeReportError, ErrUserNotFound, nil)
	}

	var src domain.ReportSource
	if src.Works, err = s.repo.ListWorksByAssignee(ctx, userId); err != nil {
		return nil, fmt.Errorf("%w: %w", employeeReportError, err)
	}
	if src.Prs, err = s.repo.ListPrsByUser(ctx, userId); err != nil {
		return nil, fmt.Errorf("%w: %w", employeeReportError, err)
	}
	if src.Attendance, err = s.repo.ListAttendanceByUser(ctx, userId); err != nil {
		return nil, fmt.Errorf("%w: %w", employeeReportError, err)
	}

	perf := domain.BuildPerformance(user.Id, user.Username, src, period)

	return &response.EmployeeReportResponse{
		From:        period.From,
		To:          period.To,
		Performance: response.NewPerformanceResponse(perf),
	}, nil
}

func reportPeriod(req *request.ReportRequest) (domain.Period, error) {
	if err := request.Validate(req); err != nil {
		return domain.Period{}, invalidInput(err)
	}
	period := domain.Period{From: req.From.UTC(), To: req.To.UTC()}
	if !period.Valid() {
		return domain.Period{}, invalidInput(errPeriod)
	}
	return period, nil
}
