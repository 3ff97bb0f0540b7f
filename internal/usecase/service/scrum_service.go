package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/niklvrr/EmToolBackend/internal/domain"
	"github.com/niklvrr/EmToolBackend/internal/infrastructure/repository"
	"github.com/niklvrr/EmToolBackend/internal/transport/dto/request"
	"github.com/niklvrr/EmToolBackend/internal/transport/dto/response"
	"go.uber.org/zap"
)

var (
	createMeetingError    = errors.New("create scrum meeting error")
	getMeetingError       = errors.New("get scrum meeting error")
	updateMeetingError    = errors.New("update scrum meeting error")
	deleteMeetingError    = errors.New("delete scrum meeting error")
	markAttendanceError   = errors.New("mark attendance error")
	getAttendanceError    = errors.New("get attendance error")
	updateAttendanceError = errors.New("update attendance error")
)

type ScrumService struct {
	repo     ScrumRepository
	teams    TeamReader
	users    UserReader
	notifier Notifier
	log      *zap.Logger
	now      func() time.Time
}

func NewScrumService(repo ScrumRepository, teams TeamReader, users UserReader, notifier Notifier, log *zap.Logger) *ScrumService {
	return &ScrumService{
		repo:     repo,
		teams:    teams,
		users:    users,
		notifier: notifier,
		log:      log,
		now:      utcNow,
	}
}

// CreateScrumMeeting: создатель и все приглашенные должны относиться к команде.
// Для каждого приглашенного заводится строка посещаемости.
func (s *ScrumService) CreateScrumMeeting(ctx context.Context, req *request.CreateScrumMeetingRequest) (*response.ScrumMeetingResponse, error) {
	s.log.Info("createScrumMeeting request accepted",
		zap.String("team_id", req.TeamId),
		zap.String("created_by", req.CreatedBy),
		zap.Int("invitees", len(req.InvitedUserIds)),
	)

	if err := request.Validate(req); err != nil {
		return nil, invalidInput(err)
	}
	teamId, err := parseID(req.TeamId, "team_id")
	if err != nil {
		return nil, err
	}
	creatorId, err := parseID(req.CreatedBy, "created_by")
	if err != nil {
		return nil, err
	}
	invitees, err := parseIDs(req.InvitedUserIds, "invited_user_ids")
	if err != nil {
		return nil, err
	}

	team, err := loadTeam(ctx, s.teams, teamId, createMeetingError)
	if err != nil {
		return nil, err
	}
	creator, err := loadUser(ctx, s.users, creatorId, createMeetingError)
	if err != nil {
		return nil, err
	}
	if err := s.checkParticipant(ctx, team, creatorId, createMeetingError); err != nil {
		return nil, err
	}
	invitees, err = s.checkInvitees(ctx, team, invitees, createMeetingError)
	if err != nil {
		return nil, err
	}

	// Запрос в бд
	meeting, err := s.repo.CreateMeeting(ctx, &domain.ScrumMeeting{
		Id:             uuid.New(),
		TeamId:         teamId,
		ScheduledAt:    req.ScheduledAt.UTC(),
		Agenda:         strings.TrimSpace(req.Agenda),
		Link:           strings.TrimSpace(req.Link),
		CreatedBy:      creatorId,
		CreatedByRole:  creator.RoleName,
		InvitedUserIds: invitees,
	})
	if err != nil {
		s.log.Error("failed to create scrum meeting",
			zap.String("team_id", req.TeamId),
			zap.Error(err),
		)
		return nil, mapRepoError(err, createMeetingError, nil, nil)
	}

	s.log.Info("scrum meeting created",
		zap.String("meeting_id", meeting.Id.String()),
		zap.Time("scheduled_at", meeting.ScheduledAt),
	)

	s.notifyInvitees(ctx, meeting)

	return response.NewScrumMeetingResponse(meeting), nil
}

func (s *ScrumService) GetScrumMeetingById(ctx context.Context, rawId string) (*response.ScrumMeetingResponse, error) {
	s.log.Info("getScrumMeeting request accepted",
		zap.String("meeting_id", rawId),
	)

	id, err := parseID(rawId, "meeting_id")
	if err != nil {
		return nil, err
	}

	meeting, err := s.loadMeeting(ctx, id, getMeetingError)
	if err != nil {
		return nil, err
	}

	return response.NewScrumMeetingResponse(meeting), nil
}

func (s *ScrumService) GetScrumMeetingsOfTeam(ctx context.Context, rawTeamId string) ([]*response.ScrumMeetingResponse, error) {
	s.log.Info("getScrumMeetingsOfTeam request accepted",
		zap.String("team_id", rawTeamId),
	)

	teamId, err := parseID(rawTeamId, "team_id")
	if err != nil {
		return nil, err
	}
	if _, err := loadTeam(ctx, s.teams, teamId, getMeetingError); err != nil {
		return nil, err
	}

	items, err := s.repo.ListMeetingsByTeam(ctx, teamId)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", getMeetingError, err)
	}

	return response.NewScrumMeetingResponses(items), nil
}

// GetScrumMeetingsOfUser возвращает встречи, созданные пользователем.
func (s *ScrumService) GetScrumMeetingsOfUser(ctx context.Context, rawUserId string) ([]*response.ScrumMeetingResponse, error) {
	s.log.Info("getScrumMeetingsOfUser request accepted",
		zap.String("user_id", rawUserId),
	)

	userId, err := parseID(rawUserId, "user_id")
	if err != nil {
		return nil, err
	}
	if _, err := loadUser(ctx, s.users, userId, getMeetingError); err != nil {
		return nil, err
	}

	items, err := s.repo.ListMeetingsByCreator(ctx, userId)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", getMeetingError, err)
	}

	return response.NewScrumMeetingResponses(items), nil
}

// UpdateScrumMeeting: менять встречу может только создавший ее менеджер. Команда не меняется.
func (s *ScrumService) UpdateScrumMeeting(ctx context.Context, req *request.UpdateScrumMeetingRequest) (*response.ScrumMeetingResponse, error) {
	s.log.Info("updateScrumMeeting request accepted",
		zap.String("meeting_id", req.MeetingId),
		zap.String("actor_id", req.ActorId),
	)

	if err := request.Validate(req); err != nil {
		return nil, invalidInput(err)
	}
	meetingId, err := parseID(req.MeetingId, "meeting_id")
	if err != nil {
		return nil, err
	}
	actorId, err := parseID(req.ActorId, "actor_id")
	if err != nil {
		return nil, err
	}
	invitees, err := parseIDs(req.InvitedUserIds, "invited_user_ids")
	if err != nil {
		return nil, err
	}

	meeting, err := s.loadMeeting(ctx, meetingId, updateMeetingError)
	if err != nil {
		return nil, err
	}
	if meeting.CreatedBy != actorId {
		return nil, ErrNotMeetingAuthor
	}
	actor, err := loadUser(ctx, s.users, actorId, updateMeetingError)
	if err != nil {
		return nil, err
	}
	if !actor.IsManager() {
		return nil, ErrNotManager
	}
	team, err := loadTeam(ctx, s.teams, meeting.TeamId, updateMeetingError)
	if err != nil {
		return nil, err
	}
	invitees, err = s.checkInvitees(ctx, team, invitees, updateMeetingError)
	if err != nil {
		return nil, err
	}

	meeting.ScheduledAt = req.ScheduledAt.UTC()
	meeting.Agenda = strings.TrimSpace(req.Agenda)
	meeting.Link = strings.TrimSpace(req.Link)
	meeting.InvitedUserIds = invitees

	// Запрос в бд, посещаемость синхронизируется со списком приглашенных
	updated, err := s.repo.UpdateMeeting(ctx, meeting)
	if err != nil {
		s.log.Error("failed to update scrum meeting",
			zap.String("meeting_id", req.MeetingId),
			zap.Error(err),
		)
		return nil, mapRepoError(err, updateMeetingError, ErrMeetingNotFound, nil)
	}

	s.log.Info("scrum meeting updated", zap.String("meeting_id", updated.Id.String()))

	return response.NewScrumMeetingResponse(updated), nil
}

func (s *ScrumService) DeleteScrumMeeting(ctx context.Context, rawId string) error {
	s.log.Info("deleteScrumMeeting request accepted",
		zap.String("meeting_id", rawId),
	)

	id, err := parseID(rawId, "meeting_id")
	if err != nil {
		return err
	}

	if err := s.repo.DeleteMeeting(ctx, id); err != nil {
		return mapRepoError(err, deleteMeetingError, ErrMeetingNotFound, nil)
	}

	s.log.Info("scrum meeting deleted", zap.String("meeting_id", rawId))
	return nil
}

// MarkAttendance отмечает присутствие на прошедшей встрече. Повторная отметка запрещена.
func (s *ScrumService) MarkAttendance(ctx context.Context, req *request.MarkAttendanceRequest) (*response.AttendanceResponse, error) {
	s.log.Info("markAttendance request accepted",
		zap.String("meeting_id", req.MeetingId),
		zap.String("user_id", req.UserId),
		zap.Bool("is_present", req.IsPresent),
	)

	if err := request.Validate(req); err != nil {
		return nil, invalidInput(err)
	}
	meetingId, err := parseID(req.MeetingId, "meeting_id")
	if err != nil {
		return nil, err
	}
	userId, err := parseID(req.UserId, "user_id")
	if err != nil {
		return nil, err
	}

	meeting, err := s.loadMeeting(ctx, meetingId, markAttendanceError)
	if err != nil {
		return nil, err
	}
	now := s.now()
	if meeting.ScheduledAt.After(now) {
		return nil, ErrMeetingUpcoming
	}
	if _, err := loadUser(ctx, s.users, userId, markAttendanceError); err != nil {
		return nil, err
	}
	team, err := loadTeam(ctx, s.teams, meeting.TeamId, markAttendanceError)
	if err != nil {
		return nil, err
	}
	if err := s.checkParticipant(ctx, team, userId, markAttendanceError); err != nil {
		return nil, err
	}

	row, err := s.repo.GetAttendance(ctx, meetingId, userId)
	switch {
	case err == nil:
		if row.IsMarked() {
			return nil, ErrAttendanceMarked
		}
		// Строка приглашенного уже есть, заполняем ее
		row.IsPresent = req.IsPresent
		row.Notes = req.Notes
		row.MarkedAt = &now
		row, err = s.repo.UpdateAttendance(ctx, row)
	case errors.Is(err, repository.ErrNotFound):
		row, err = s.repo.CreateAttendance(ctx, &domain.ScrumAttendance{
			Id:        uuid.New(),
			MeetingId: meetingId,
			UserId:    userId,
			IsPresent: req.IsPresent,
			Notes:     req.Notes,
			MarkedAt:  &now,
		})
	default:
		// ошибка хранилища обрабатывается ниже
	}
	if err != nil {
		s.log.Error("failed to mark attendance",
			zap.String("meeting_id", req.MeetingId),
			zap.String("user_id", req.UserId),
			zap.Error(err),
		)
		return nil, mapRepoError(err, markAttendanceError, ErrAttendanceNotFound, ErrAttendanceMarked)
	}

	s.log.Info("attendance marked",
		zap.String("attendance_id", row.Id.String()),
		zap.Bool("is_present", row.IsPresent),
	)

	return response.NewAttendanceResponse(row), nil
}

func (s *ScrumService) GetAttendanceById(ctx context.Context, rawId string) (*response.AttendanceResponse, error) {
	s.log.Info("getAttendance request accepted",
		zap.String("attendance_id", rawId),
	)

	id, err := parseID(rawId, "attendance_id")
	if err != nil {
		return nil, err
	}

	row, err := s.repo.GetAttendanceById(ctx, id)
	if err != nil {
		return nil, mapRepoError(err, getAttendanceError, ErrAttendanceNotFound, nil)
	}

	return response.NewAttendanceResponse(row), nil
}

func (s *ScrumService) GetAttendanceOfMeeting(ctx context.Context, rawMeetingId string) ([]*response.AttendanceResponse, error) {
	s.log.Info("getAttendanceOfMeeting request accepted",
		zap.String("meeting_id", rawMeetingId),
	)

	meetingId, err := parseID(rawMeetingId, "meeting_id")
	if err != nil {
		return nil, err
	}
	if _, err := s.loadMeeting(ctx, meetingId, getAttendanceError); err != nil {
		return nil, err
	}

	rows, err := s.repo.ListAttendanceByMeeting(ctx, meetingId)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", getAttendanceError, err)
	}

	return response.NewAttendanceResponses(rows), nil
}

func (s *ScrumService) GetAttendanceOfUser(ctx context.Context, rawUserId string) ([]*response.AttendanceResponse, error) {
	s.log.Info("getAttendanceOfUser request accepted",
		zap.String("user_id", rawUserId),
	)

	userId, err := parseID(rawUserId, "user_id")
	if err != nil {
		return nil, err
	}
	if _, err := loadUser(ctx, s.users, userId, getAttendanceError); err != nil {
		return nil, err
	}

	rows, err := s.repo.ListAttendanceByUser(ctx, userId)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", getAttendanceError, err)
	}

	return response.NewAttendanceResponses(rows), nil
}

func (s *ScrumService) UpdateAttendance(ctx context.Context, req *request.UpdateAttendanceRequest) (*response.AttendanceResponse, error) {
	s.log.Info("updateAttendance request accepted",
		zap.String("attendance_id", req.AttendanceId),
		zap.Bool("is_present", req.IsPresent),
	)

	if err := request.Validate(req); err != nil {
		return nil, invalidInput(err)
	}
	id, err := parseID(req.AttendanceId, "attendance_id")
	if err != nil {
		return nil, err
	}

	row, err := s.repo.GetAttendanceById(ctx, id)
	if err != nil {
		return nil, mapRepoError(err, updateAttendanceError, ErrAttendanceNotFound, nil)
	}

	now := s.now()
	row.IsPresent = req.IsPresent
	row.Notes = req.Notes
	row.MarkedAt = &now

	updated, err := s.repo.UpdateAttendance(ctx, row)
	if err != nil {
		return nil, mapRepoError(err, updateAttendanceError, ErrAttendanceNotFound, nil)
	}

	return response.NewAttendanceResponse(updated), nil
}

func (s *ScrumService) loadMeeting(ctx context.Context, id uuid.UUID, opErr error) (*domain.ScrumMeeting, error) {
	m, err := s.repo.GetMeetingById(ctx, id)
	if err != nil {
		return nil, mapRepoError(err, opErr, ErrMeetingNotFound, nil)
	}
	return m, nil
}

func (s *ScrumService) checkParticipant(ctx context.Context, team *domain.Team, userId uuid.UUID, opErr error) error {
	ok, err := isParticipant(ctx, s.teams, team, userId)
	if err != nil {
		return fmt.Errorf("%w: %w", opErr, err)
	}
	if !ok {
		return ErrNotTeamMember
	}
	return nil
}

// checkInvitees убирает дубликаты и проверяет, что каждый приглашенный существует и относится к команде.
func (s *ScrumService) checkInvitees(ctx context.Context, team *domain.Team, ids []uuid.UUID, opErr error) ([]uuid.UUID, error) {
	seen := make(map[uuid.UUID]struct{}, len(ids))
	unique := make([]uuid.UUID, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}

		if _, err := loadUser(ctx, s.users, id, opErr); err != nil {
			return nil, err
		}
		if err := s.checkParticipant(ctx, team, id, opErr); err != nil {
			return nil, err
		}
		unique = append(unique, id)
	}
	return unique, nil
}

func (s *ScrumService) notifyInvitees(ctx context.Context, m *domain.ScrumMeeting) {
	if s.notifier == nil {
		return
	}
	msg := fmt.Sprintf("You are invited to a scrum meeting at %s", m.ScheduledAt.Format(time.RFC3339))
	if err := s.notifier.NotifyAll(ctx, m.InvitedUserIds, NotifyMeetingInvite, msg); err != nil {
		s.log.Warn("failed to notify some invitees",
			zap.String("meeting_id", m.Id.String()),
			zap.Error(err),
		)
	}
}
