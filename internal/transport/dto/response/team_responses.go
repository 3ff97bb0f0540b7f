package response

import (
	"time"

	"github.com/niklvrr/EmToolBackend/internal/domain"
)

type TeamResponse struct {
	Id        string    `json:"id"`
	Name      string    `json:"name"`
	ManagerId string    `json:"manager_id"`
	CreatedAt time.Time `json:"created_at"`
}

func NewTeamResponse(t *domain.Team) *TeamResponse {
	return &TeamResponse{
		Id:        t.Id.String(),
		Name:      t.Name,
		ManagerId: t.ManagerId.String(),
		CreatedAt: t.CreatedAt,
	}
}

func NewTeamResponses(teams []*domain.Team) []*TeamResponse {
	return mapAll(teams, NewTeamResponse)
}

type TeamMemberResponse struct {
	Id        string    `json:"id"`
	TeamId    string    `json:"team_id"`
	UserId    string    `json:"user_id"`
	Username  string    `json:"username"`
	Role      string    `json:"role"`
	AddedById string    `json:"added_by_id"`
	JoinedAt  time.Time `json:"joined_at"`
}

func NewTeamMemberResponse(m *domain.TeamMember) *TeamMemberResponse {
	return &TeamMemberResponse{
		Id:        m.Id.String(),
		TeamId:    m.TeamId.String(),
		UserId:    m.UserId.String(),
		Username:  m.Username,
		Role:      m.RoleName,
		AddedById: m.AddedById.String(),
		JoinedAt:  m.JoinedAt,
	}
}

func NewTeamMemberResponses(members []*domain.TeamMember) []*TeamMemberResponse {
	return mapAll(members, NewTeamMemberResponse)
}
