package memory

import (
	"context"
	"sort"

	"github.com/google/uuid"
	"github.com/niklvrr/EmToolBackend/internal/domain"
	"github.com/niklvrr/EmToolBackend/internal/infrastructure/repository"
)

func (s *Store) meetingView(m *domain.ScrumMeeting) *domain.ScrumMeeting {
	c := clone(m)
	c.InvitedUserIds = append([]uuid.UUID{}, m.InvitedUserIds...)
	sort.Slice(c.InvitedUserIds, func(i, j int) bool {
		return c.InvitedUserIds[i].String() < c.InvitedUserIds[j].String()
	})
	return c
}

// attendanceView подставляет команду и дату встречи.
func (s *Store) attendanceView(a *domain.ScrumAttendance) *domain.ScrumAttendance {
	c := clone(a)
	if a.MarkedAt != nil {
		t := *a.MarkedAt
		c.MarkedAt = &t
	}
	if m, ok := s.meetings[a.MeetingId]; ok {
		c.TeamId = m.TeamId
		c.ScheduledAt = m.ScheduledAt
	}
	return c
}

func dedupe(ids []uuid.UUID) []uuid.UUID {
	seen := make(map[uuid.UUID]struct{}, len(ids))
	out := make([]uuid.UUID, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}

func (s *Store) usersExist(ids []uuid.UUID) bool {
	for _, id := range ids {
		if _, ok := s.users[id]; !ok {
			return false
		}
	}
	return true
}

func (s *Store) inviteLocked(meetingId uuid.UUID, userIds []uuid.UUID) {
	for _, userId := range userIds {
		if s.findAttendanceLocked(meetingId, userId) != nil {
			continue
		}
		row := &domain.ScrumAttendance{
			Id:        uuid.New(),
			MeetingId: meetingId,
			UserId:    userId,
		}
		s.attendance[row.Id] = row
	}
}

func (s *Store) findAttendanceLocked(meetingId, userId uuid.UUID) *domain.ScrumAttendance {
	for _, a := range s.attendance {
		if a.MeetingId == meetingId && a.UserId == userId {
			return a
		}
	}
	return nil
}

func (s *Store) CreateMeeting(_ context.Context, m *domain.ScrumMeeting) (*domain.ScrumMeeting, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.teams[m.TeamId]; !ok {
		return nil, repository.ErrInvalidInput
	}
	invited := dedupe(m.InvitedUserIds)
	if !s.usersExist(append([]uuid.UUID{m.CreatedBy}, invited...)) {
		return nil, repository.ErrInvalidInput
	}
	if _, ok := s.meetings[m.Id]; ok {
		return nil, repository.ErrAlreadyExists
	}

	stored := clone(m)
	stored.InvitedUserIds = invited
	stored.CreatedAt = s.stamp(m.CreatedAt)
	s.meetings[stored.Id] = stored
	s.inviteLocked(stored.Id, invited)

	s.log.Debug("scrum meeting stored in memory")
	return s.meetingView(stored), nil
}

func (s *Store) GetMeetingById(_ context.Context, id uuid.UUID) (*domain.ScrumMeeting, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	m, ok := s.meetings[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return s.meetingView(m), nil
}

func (s *Store) listMeetings(keep func(*domain.ScrumMeeting) bool) []*domain.ScrumMeeting {
	meetings := filter(s.meetings, keep, func(a, b *domain.ScrumMeeting) bool { return a.ScheduledAt.Before(b.ScheduledAt) })
	for i, m := range meetings {
		meetings[i] = s.meetingView(m)
	}
	return meetings
}

func (s *Store) ListMeetingsByTeam(_ context.Context, teamId uuid.UUID) ([]*domain.ScrumMeeting, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.listMeetings(func(m *domain.ScrumMeeting) bool { return m.TeamId == teamId }), nil
}

func (s *Store) ListMeetingsByCreator(_ context.Context, userId uuid.UUID) ([]*domain.ScrumMeeting, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.listMeetings(func(m *domain.ScrumMeeting) bool { return m.CreatedBy == userId }), nil
}

func (s *Store) UpdateMeeting(_ context.Context, m *domain.ScrumMeeting) (*domain.ScrumMeeting, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	stored, ok := s.meetings[m.Id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	invited := dedupe(m.InvitedUserIds)
	if !s.usersExist(invited) {
		return nil, repository.ErrInvalidInput
	}

	keep := make(map[uuid.UUID]struct{}, len(invited))
	for _, id := range invited {
		keep[id] = struct{}{}
	}
	for id, a := range s.attendance {
		if a.MeetingId != m.Id {
			continue
		}
		if _, ok := keep[a.UserId]; !ok {
			delete(s.attendance, id)
		}
	}

	stored.ScheduledAt = m.ScheduledAt
	stored.Agenda = m.Agenda
	stored.Link = m.Link
	stored.InvitedUserIds = invited
	s.inviteLocked(stored.Id, invited)
	return s.meetingView(stored), nil
}

func (s *Store) DeleteMeeting(_ context.Context, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.meetings[id]; !ok {
		return repository.ErrNotFound
	}
	for aid, a := range s.attendance {
		if a.MeetingId == id {
			delete(s.attendance, aid)
		}
	}
	delete(s.meetings, id)
	return nil
}

func (s *Store) GetAttendanceById(_ context.Context, id uuid.UUID) (*domain.ScrumAttendance, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	a, ok := s.attendance[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return s.attendanceView(a), nil
}

func (s *Store) GetAttendance(_ context.Context, meetingId, userId uuid.UUID) (*domain.ScrumAttendance, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	a := s.findAttendanceLocked(meetingId, userId)
	if a == nil {
		return nil, repository.ErrNotFound
	}
	return s.attendanceView(a), nil
}

func (s *Store) CreateAttendance(_ context.Context, a *domain.ScrumAttendance) (*domain.ScrumAttendance, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, meetingOk := s.meetings[a.MeetingId]
	_, userOk := s.users[a.UserId]
	if !meetingOk || !userOk {
		return nil, repository.ErrInvalidInput
	}
	if _, ok := s.attendance[a.Id]; ok || s.findAttendanceLocked(a.MeetingId, a.UserId) != nil {
		return nil, repository.ErrAlreadyExists
	}

	stored := s.attendanceView(a)
	s.attendance[stored.Id] = stored
	return s.attendanceView(stored), nil
}

func (s *Store) UpdateAttendance(_ context.Context, a *domain.ScrumAttendance) (*domain.ScrumAttendance, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	stored, ok := s.attendance[a.Id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	stored.IsPresent = a.IsPresent
	stored.Notes = a.Notes
	stored.MarkedAt = nil
	if a.MarkedAt != nil {
		t := *a.MarkedAt
		stored.MarkedAt = &t
	}
	return s.attendanceView(stored), nil
}

func (s *Store) listAttendance(keep func(*domain.ScrumAttendance) bool, byDate bool) []*domain.ScrumAttendance {
	rows := make([]*domain.ScrumAttendance, 0)
	for _, a := range s.attendance {
		view := s.attendanceView(a)
		if keep(view) {
			rows = append(rows, view)
		}
	}
	sortAttendance(rows, byDate)
	return rows
}

func (s *Store) ListAttendanceByMeeting(_ context.Context, meetingId uuid.UUID) ([]*domain.ScrumAttendance, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.listAttendance(func(a *domain.ScrumAttendance) bool { return a.MeetingId == meetingId }, false), nil
}

func (s *Store) ListAttendanceByUser(_ context.Context, userId uuid.UUID) ([]*domain.ScrumAttendance, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.listAttendance(func(a *domain.ScrumAttendance) bool { return a.UserId == userId }, true), nil
}

func (s *Store) ListAttendanceByTeam(_ context.Context, teamId uuid.UUID) ([]*domain.ScrumAttendance, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.listAttendance(func(a *domain.ScrumAttendance) bool { return a.TeamId == teamId }, true), nil
}
