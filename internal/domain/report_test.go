package domain

import (
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

var (
	teamId  = uuid.MustParse("00000000-0000-0000-0000-0000000000a1")
	alice   = uuid.MustParse("00000000-0000-0000-0000-000000000001")
	bob     = uuid.MustParse("00000000-0000-0000-0000-000000000002")
	carol   = uuid.MustParse("00000000-0000-0000-0000-000000000003")
	march   = time.Date(2025, time.March, 1, 0, 0, 0, 0, time.UTC)
	inMarch = func(day int) time.Time { return march.AddDate(0, 0, day-1) }
)

func fixture() ReportSource {
	return ReportSource{
		Works: []*Work{
			{TeamId: teamId, AssignedTo: alice, Status: WorkCompleted, CreatedAt: inMarch(2)},
			{TeamId: teamId, AssignedTo: alice, Status: WorkCompleted, CreatedAt: inMarch(10)},
			{TeamId: teamId, AssignedTo: bob, Status: WorkInProgress, CreatedAt: inMarch(3)},
			{TeamId: teamId, AssignedTo: bob, Status: WorkCompleted, CreatedAt: inMarch(4)},
			{TeamId: teamId, AssignedTo: carol, Status: WorkToDo, CreatedAt: inMarch(5)},
			// вне периода
			{TeamId: teamId, AssignedTo: carol, Status: WorkCompleted, CreatedAt: march.AddDate(0, 1, 0)},
		},
		Prs: []*PullRequest{
			{TeamId: teamId, CreatedById: alice, Status: PrApproved, CreatedAt: inMarch(3)},
			{TeamId: teamId, CreatedById: bob, Status: PrApproved, CreatedAt: inMarch(5)},
			{TeamId: teamId, CreatedById: bob, Status: PrRejected, CreatedAt: inMarch(6)},
			{TeamId: teamId, CreatedById: carol, Status: PrPending, CreatedAt: inMarch(7)},
			{TeamId: teamId, CreatedById: carol, Status: PrApproved, CreatedAt: march.AddDate(0, 0, -1)},
		},
		Meetings: []*ScrumMeeting{
			{TeamId: teamId, ScheduledAt: inMarch(1)},
			{TeamId: teamId, ScheduledAt: inMarch(8)},
			{TeamId: teamId, ScheduledAt: march.AddDate(0, 2, 0)},
		},
		Attendance: []*ScrumAttendance{
			{TeamId: teamId, UserId: alice, IsPresent: true, ScheduledAt: inMarch(1)},
			{TeamId: teamId, UserId: bob, IsPresent: true, ScheduledAt: inMarch(1)},
			{TeamId: teamId, UserId: bob, IsPresent: true, ScheduledAt: inMarch(8)},
			{TeamId: teamId, UserId: carol, IsPresent: false, ScheduledAt: inMarch(8)},
			{TeamId: teamId, UserId: carol, IsPresent: true, ScheduledAt: march.AddDate(0, 2, 0)},
		},
	}
}

func TestBuildTeamReport(t *testing.T) {
	team := &Team{Id: teamId, Name: "core"}
	employees := []*TeamMember{
		{UserId: carol, Username: "carol"},
		{UserId: bob, Username: "bob"},
		{UserId: alice, Username: "alice"},
	}
	period := Period{From: march, To: inMarch(31)}

	got := BuildTeamReport(team, employees, fixture(), period)

	want := &TeamReport{
		TeamId:   teamId,
		TeamName: "core",
		Period:   period,
		Tasks: TaskCounts{
			Total:     5,
			Completed: 3,
			Pending:   2,
			ByStatus: map[WorkStatus]int{
				WorkToDo:       1,
				WorkInProgress: 1,
				WorkInReview:   0,
				WorkCompleted:  3,
			},
		},
		PullRequests: PrCounts{Total: 4, Pending: 1, Approved: 2, Rejected: 1},
		MeetingsHeld: 2,
		Performers: []Performance{
			{UserId: alice, Username: "alice", TasksCompleted: 2, PrsMerged: 1, MeetingsAttended: 1, Score: 4, Rank: 1},
			{UserId: bob, Username: "bob", TasksCompleted: 1, PrsMerged: 1, MeetingsAttended: 2, Score: 4, Rank: 2},
			{UserId: carol, Username: "carol", Score: 0, Rank: 3},
		},
	}

	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("team report mismatch (-want +got):\n%s", diff)
	}
}

func TestBuildTeamReport_NoEmployees(t *testing.T) {
	team := &Team{Id: teamId, Name: "empty"}

	got := BuildTeamReport(team, nil, ReportSource{}, Period{From: march, To: inMarch(31)})

	assert.NotNil(t, got.Performers)
	assert.Empty(t, got.Performers)
	assert.Zero(t, got.Tasks.Total)
	assert.Zero(t, got.MeetingsHeld)
}

func TestPeriod(t *testing.T) {
	p := Period{From: march, To: inMarch(2)}

	assert.True(t, p.Valid())
	assert.True(t, p.Contains(march))
	assert.True(t, p.Contains(inMarch(2)))
	assert.False(t, p.Contains(inMarch(2).Add(time.Nanosecond)))
	assert.False(t, Period{From: inMarch(2), To: march}.Valid())
}

func TestRankPerformers_TieBreakByUsername(t *testing.T) {
	got := RankPerformers([]Performance{
		{Username: "zed", Score: 1},
		{Username: "amy", Score: 1},
		{Username: "max", Score: 3},
	})

	names := []string{got[0].Username, got[1].Username, got[2].Username}
	assert.Equal(t, []string{"max", "amy", "zed"}, names)
	assert.Equal(t, 3, got[2].Rank)
}
