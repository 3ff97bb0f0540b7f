// Package memory хранит все сущности в памяти процесса. Методы совпадают с
// репозиториями postgres, ограничения внешних ключей (restrict/cascade)
// воспроизводятся вручную.
package memory

import (
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/niklvrr/EmToolBackend/internal/domain"
	"go.uber.org/zap"
)

type Store struct {
	mu  sync.RWMutex
	log *zap.Logger
	now func() time.Time

	roles         map[uuid.UUID]*domain.Role
	users         map[uuid.UUID]*domain.User
	teams         map[uuid.UUID]*domain.Team
	members       map[uuid.UUID]*domain.TeamMember
	works         map[uuid.UUID]*domain.Work
	comments      map[uuid.UUID]*domain.WorkComment
	attachments   map[uuid.UUID]*domain.WorkAttachment
	prs           map[uuid.UUID]*domain.PullRequest
	reviews       map[uuid.UUID]*domain.Review
	notifications map[uuid.UUID]*domain.Notification
	meetings      map[uuid.UUID]*domain.ScrumMeeting
	attendance    map[uuid.UUID]*domain.ScrumAttendance
}

func NewStore(log *zap.Logger) *Store {
	return &Store{
		log:           log,
		now:           func() time.Time { return time.Now().UTC() },
		roles:         make(map[uuid.UUID]*domain.Role),
		users:         make(map[uuid.UUID]*domain.User),
		teams:         make(map[uuid.UUID]*domain.Team),
		members:       make(map[uuid.UUID]*domain.TeamMember),
		works:         make(map[uuid.UUID]*domain.Work),
		comments:      make(map[uuid.UUID]*domain.WorkComment),
		attachments:   make(map[uuid.UUID]*domain.WorkAttachment),
		prs:           make(map[uuid.UUID]*domain.PullRequest),
		reviews:       make(map[uuid.UUID]*domain.Review),
		notifications: make(map[uuid.UUID]*domain.Notification),
		meetings:      make(map[uuid.UUID]*domain.ScrumMeeting),
		attendance:    make(map[uuid.UUID]*domain.ScrumAttendance),
	}
}

// stamp возвращает t, если оно задано, иначе текущее время хранилища.
func (s *Store) stamp(t time.Time) time.Time {
	if t.IsZero() {
		return s.now()
	}
	return t
}

func clone[T any](v *T) *T {
	c := *v
	return &c
}

// filter копирует подходящие записи и сортирует их через less.
func filter[T any](items map[uuid.UUID]*T, keep func(*T) bool, less func(a, b *T) bool) []*T {
	out := make([]*T, 0)
	for _, item := range items {
		if keep(item) {
			out = append(out, clone(item))
		}
	}
	sort.Slice(out, func(i, j int) bool { return less(out[i], out[j]) })
	return out
}
