package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/niklvrr/EmToolBackend/internal/domain"
	"go.uber.org/zap"
)

const meetingSelect = `
SELECT
    m.id, m.team_id, m.scheduled_at, m.agenda, m.link, m.created_by, m.created_by_role, m.created_at,
    COALESCE(array_agg(i.user_id::text ORDER BY i.user_id) FILTER (WHERE i.user_id IS NOT NULL), '{}') AS invited
FROM scrum_meetings m
LEFT JOIN scrum_meeting_invitees i ON i.meeting_id = m.id`

const attendanceSelect = `
SELECT a.id, a.meeting_id, m.team_id, a.user_id, a.is_present, a.notes, a.marked_at, m.scheduled_at
FROM scrum_attendance a
JOIN scrum_meetings m ON m.id = a.meeting_id`

const (
	insertMeetingQuery = `
INSERT INTO scrum_meetings (id, team_id, scheduled_at, agenda, link, created_by, created_by_role)
VALUES ($1, $2, $3, $4, $5, $6, $7);`

	insertInviteeQuery = `
INSERT INTO scrum_meeting_invitees (meeting_id, user_id)
VALUES ($1, $2)
ON CONFLICT DO NOTHING;`

	deleteInviteesQuery = `
DELETE FROM scrum_meeting_invitees
WHERE meeting_id = $1;`

	insertInviteeAttendanceQuery = `
INSERT INTO scrum_attendance (id, meeting_id, user_id)
VALUES ($1, $2, $3)
ON CONFLICT (meeting_id, user_id) DO NOTHING;`

	selectMeetingByIdQuery = meetingSelect + `
WHERE m.id = $1
GROUP BY m.id;`

	selectMeetingsByTeamQuery = meetingSelect + `
WHERE m.team_id = $1
GROUP BY m.id
ORDER BY m.scheduled_at;`

	selectMeetingsByCreatorQuery = meetingSelect + `
WHERE m.created_by = $1
GROUP BY m.id
ORDER BY m.scheduled_at;`

	updateMeetingQuery = `
UPDATE scrum_meetings
SET scheduled_at = $2,
    agenda = $3,
    link = $4
WHERE id = $1;`

	deleteMeetingQuery = `
DELETE FROM scrum_meetings
WHERE id = $1;`

	selectAttendanceByIdQuery = attendanceSelect + `
WHERE a.id = $1;`

	selectAttendanceQuery = attendanceSelect + `
WHERE a.meeting_id = $1 AND a.user_id = $2;`

	selectAttendanceByMeetingQuery = attendanceSelect + `
WHERE a.meeting_id = $1
ORDER BY a.user_id;`

	selectAttendanceByUserQuery = attendanceSelect + `
WHERE a.user_id = $1
ORDER BY m.scheduled_at;`

	selectAttendanceByTeamQuery = attendanceSelect + `
WHERE m.team_id = $1
ORDER BY m.scheduled_at;`

	insertAttendanceQuery = `
INSERT INTO scrum_attendance (id, meeting_id, user_id, is_present, notes, marked_at)
VALUES ($1, $2, $3, $4, $5, $6);`

	updateAttendanceQuery = `
UPDATE scrum_attendance
SET is_present = $2,
    notes = $3,
    marked_at = $4
WHERE id = $1;`

	deleteAttendanceQuery = `
DELETE FROM scrum_attendance
WHERE id = $1;`
)

type ScrumRepository struct {
	db  *pgxpool.Pool
	log *zap.Logger
}

func NewScrumRepository(db *pgxpool.Pool, log *zap.Logger) *ScrumRepository {
	return &ScrumRepository{
		db:  db,
		log: log,
	}
}

func scanMeeting(row rowScanner) (*domain.ScrumMeeting, error) {
	m := &domain.ScrumMeeting{}
	var invited []string
	err := row.Scan(
		&m.Id,
		&m.TeamId,
		&m.ScheduledAt,
		&m.Agenda,
		&m.Link,
		&m.CreatedBy,
		&m.CreatedByRole,
		&m.CreatedAt,
		&invited,
	)
	if err != nil {
		return nil, err
	}

	m.InvitedUserIds = make([]uuid.UUID, 0, len(invited))
	for _, raw := range invited {
		id, err := uuid.Parse(raw)
		if err != nil {
			return nil, err
		}
		m.InvitedUserIds = append(m.InvitedUserIds, id)
	}
	return m, nil
}

func scanAttendance(row rowScanner) (*domain.ScrumAttendance, error) {
	a := &domain.ScrumAttendance{}
	err := row.Scan(
		&a.Id,
		&a.MeetingId,
		&a.TeamId,
		&a.UserId,
		&a.IsPresent,
		&a.Notes,
		&a.MarkedAt,
		&a.ScheduledAt,
	)
	if err != nil {
		return nil, err
	}
	return a, nil
}

// CreateMeeting сохраняет встречу, приглашенных и по строке посещаемости на каждого приглашенного.
func (r *ScrumRepository) CreateMeeting(ctx context.Context, m *domain.ScrumMeeting) (*domain.ScrumMeeting, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return nil, handleDBError(err)
	}
	defer tx.Rollback(ctx)

	_, err = tx.Exec(ctx, insertMeetingQuery,
		m.Id, m.TeamId, m.ScheduledAt, m.Agenda, m.Link, m.CreatedBy, m.CreatedByRole,
	)
	if err != nil {
		r.log.Error("failed to insert scrum meeting", zap.String("team_id", m.TeamId.String()), zap.Error(err))
		return nil, handleDBError(err)
	}

	if err := insertInvitees(ctx, tx, m.Id, m.InvitedUserIds); err != nil {
		r.log.Error("failed to insert meeting invitees", zap.String("meeting_id", m.Id.String()), zap.Error(err))
		return nil, handleDBError(err)
	}

	res, err := scanMeeting(tx.QueryRow(ctx, selectMeetingByIdQuery, m.Id))
	if err != nil {
		return nil, handleDBError(err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, handleDBError(err)
	}

	r.log.Info("scrum meeting created",
		zap.String("meeting_id", res.Id.String()),
		zap.Int("invited", len(res.InvitedUserIds)),
	)
	return res, nil
}

func insertInvitees(ctx context.Context, tx pgx.Tx, meetingId uuid.UUID, userIds []uuid.UUID) error {
	for _, userId := range userIds {
		if _, err := tx.Exec(ctx, insertInviteeQuery, meetingId, userId); err != nil {
			return err
		}
		if _, err := tx.Exec(ctx, insertInviteeAttendanceQuery, uuid.New(), meetingId, userId); err != nil {
			return err
		}
	}
	return nil
}

func (r *ScrumRepository) GetMeetingById(ctx context.Context, id uuid.UUID) (*domain.ScrumMeeting, error) {
	res, err := scanMeeting(r.db.QueryRow(ctx, selectMeetingByIdQuery, id))
	if err != nil {
		return nil, handleDBError(err)
	}
	return res, nil
}

func (r *ScrumRepository) ListMeetingsByTeam(ctx context.Context, teamId uuid.UUID) ([]*domain.ScrumMeeting, error) {
	rows, err := r.db.Query(ctx, selectMeetingsByTeamQuery, teamId)
	if err != nil {
		return nil, handleDBError(err)
	}
	return collect(rows, scanMeeting)
}

func (r *ScrumRepository) ListMeetingsByCreator(ctx context.Context, userId uuid.UUID) ([]*domain.ScrumMeeting, error) {
	rows, err := r.db.Query(ctx, selectMeetingsByCreatorQuery, userId)
	if err != nil {
		return nil, handleDBError(err)
	}
	return collect(rows, scanMeeting)
}

// UpdateMeeting обновляет поля встречи и синхронизирует приглашенных:
// строки посещаемости исключенных удаляются, новым приглашенным добавляются.
func (r *ScrumRepository) UpdateMeeting(ctx context.Context, m *domain.ScrumMeeting) (*domain.ScrumMeeting, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return nil, handleDBError(err)
	}
	defer tx.Rollback(ctx)

	tag, err := tx.Exec(ctx, updateMeetingQuery, m.Id, m.ScheduledAt, m.Agenda, m.Link)
	if err != nil {
		return nil, handleDBError(err)
	}
	if tag.RowsAffected() == 0 {
		return nil, ErrNotFound
	}

	rows, err := tx.Query(ctx, selectAttendanceByMeetingQuery, m.Id)
	if err != nil {
		return nil, handleDBError(err)
	}
	current, err := collect(rows, scanAttendance)
	if err != nil {
		return nil, err
	}

	invited := make(map[uuid.UUID]struct{}, len(m.InvitedUserIds))
	for _, id := range m.InvitedUserIds {
		invited[id] = struct{}{}
	}
	for _, a := range current {
		if _, ok := invited[a.UserId]; ok {
			continue
		}
		if _, err := tx.Exec(ctx, deleteAttendanceQuery, a.Id); err != nil {
			return nil, handleDBError(err)
		}
	}

	if _, err := tx.Exec(ctx, deleteInviteesQuery, m.Id); err != nil {
		return nil, handleDBError(err)
	}
	if err := insertInvitees(ctx, tx, m.Id, m.InvitedUserIds); err != nil {
		r.log.Error("failed to sync meeting invitees", zap.String("meeting_id", m.Id.String()), zap.Error(err))
		return nil, handleDBError(err)
	}

	res, err := scanMeeting(tx.QueryRow(ctx, selectMeetingByIdQuery, m.Id))
	if err != nil {
		return nil, handleDBError(err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, handleDBError(err)
	}
	return res, nil
}

// DeleteMeeting удаляет встречу вместе с приглашениями и посещаемостью.
func (r *ScrumRepository) DeleteMeeting(ctx context.Context, id uuid.UUID) error {
	tag, err := r.db.Exec(ctx, deleteMeetingQuery, id)
	if err != nil {
		return handleDeleteError(err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *ScrumRepository) GetAttendanceById(ctx context.Context, id uuid.UUID) (*domain.ScrumAttendance, error) {
	res, err := scanAttendance(r.db.QueryRow(ctx, selectAttendanceByIdQuery, id))
	if err != nil {
		return nil, handleDBError(err)
	}
	return res, nil
}

func (r *ScrumRepository) GetAttendance(ctx context.Context, meetingId, userId uuid.UUID) (*domain.ScrumAttendance, error) {
	res, err := scanAttendance(r.db.QueryRow(ctx, selectAttendanceQuery, meetingId, userId))
	if err != nil {
		return nil, handleDBError(err)
	}
	return res, nil
}

func (r *ScrumRepository) CreateAttendance(ctx context.Context, a *domain.ScrumAttendance) (*domain.ScrumAttendance, error) {
	_, err := r.db.Exec(ctx, insertAttendanceQuery, a.Id, a.MeetingId, a.UserId, a.IsPresent, a.Notes, a.MarkedAt)
	if err != nil {
		r.log.Error("failed to insert attendance",
			zap.String("meeting_id", a.MeetingId.String()),
			zap.String("user_id", a.UserId.String()),
			zap.Error(err),
		)
		return nil, handleDBError(err)
	}
	return r.GetAttendanceById(ctx, a.Id)
}

func (r *ScrumRepository) UpdateAttendance(ctx context.Context, a *domain.ScrumAttendance) (*domain.ScrumAttendance, error) {
	tag, err := r.db.Exec(ctx, updateAttendanceQuery, a.Id, a.IsPresent, a.Notes, a.MarkedAt)
	if err != nil {
		return nil, handleDBError(err)
	}
	if tag.RowsAffected() == 0 {
		return nil, ErrNotFound
	}
	return r.GetAttendanceById(ctx, a.Id)
}

func (r *ScrumRepository) ListAttendanceByMeeting(ctx context.Context, meetingId uuid.UUID) ([]*domain.ScrumAttendance, error) {
	rows, err := r.db.Query(ctx, selectAttendanceByMeetingQuery, meetingId)
	if err != nil {
		return nil, handleDBError(err)
	}
	return collect(rows, scanAttendance)
}

func (r *ScrumRepository) ListAttendanceByUser(ctx context.Context, userId uuid.UUID) ([]*domain.ScrumAttendance, error) {
	rows, err := r.db.Query(ctx, selectAttendanceByUserQuery, userId)
	if err != nil {
		return nil, handleDBError(err)
	}
	return collect(rows, scanAttendance)
}

func (r *ScrumRepository) ListAttendanceByTeam(ctx context.Context, teamId uuid.UUID) ([]*domain.ScrumAttendance, error) {
	rows, err := r.db.Query(ctx, selectAttendanceByTeamQuery, teamId)
	if err != nil {
		return nil, handleDBError(err)
	}
	return collect(rows, scanAttendance)
}
