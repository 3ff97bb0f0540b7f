package request

type CreateTeamRequest struct {
	Name      string `json:"name" validate:"required,max=100"`
	ManagerId string `json:"manager_id" validate:"required,uuid"`
}

type UpdateTeamRequest struct {
	TeamId    string `json:"-" validate:"required,uuid"`
	Name      string `json:"name" validate:"required,max=100"`
	ManagerId string `json:"manager_id" validate:"required,uuid"`
}

type AddTeamMemberRequest struct {
	TeamId    string `json:"-" validate:"required,uuid"`
	UserId    string `json:"user_id" validate:"required,uuid"`
	AddedById string `json:"added_by_id" validate:"required,uuid"`
}
