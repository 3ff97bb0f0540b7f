package memory

import (
	"sort"

	"github.com/niklvrr/EmToolBackend/internal/domain"
)

func sortMembers(members []*domain.TeamMember) {
	sort.Slice(members, func(i, j int) bool {
		if !members[i].JoinedAt.Equal(members[j].JoinedAt) {
			return members[i].JoinedAt.Before(members[j].JoinedAt)
		}
		return members[i].Username < members[j].Username
	})
}

func sortAttendance(rows []*domain.ScrumAttendance, byDate bool) {
	sort.Slice(rows, func(i, j int) bool {
		if byDate && !rows[i].ScheduledAt.Equal(rows[j].ScheduledAt) {
			return rows[i].ScheduledAt.Before(rows[j].ScheduledAt)
		}
		return rows[i].UserId.String() < rows[j].UserId.String()
	})
}
