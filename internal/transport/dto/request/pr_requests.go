package request

type CreatePrRequest struct {
	WorkId         string `json:"work_id" validate:"required,uuid"`
	CreatedById    string `json:"created_by_id" validate:"required,uuid"`
	Link           string `json:"link" validate:"required,http_url"`
	Description    string `json:"description" validate:"max=2000"`
	AttachmentPath string `json:"attachment_path"`
}

type UpdatePrStatusRequest struct {
	PrId      string `json:"-" validate:"required,uuid"`
	ManagerId string `json:"manager_id" validate:"required,uuid"`
	Status    string `json:"status" validate:"required,max=20"`
}

type AddReviewRequest struct {
	PrId       string `json:"-" validate:"required,uuid"`
	ReviewerId string `json:"reviewer_id" validate:"required,uuid"`
	Status     string `json:"status" validate:"required,max=20"`
	Comments   string `json:"comments" validate:"max=2000"`
}

type EditReviewRequest struct {
	PrId       string `json:"-" validate:"required,uuid"`
	ReviewerId string `json:"reviewer_id" validate:"required,uuid"`
	Status     string `json:"status" validate:"required,max=20"`
	Comments   string `json:"comments" validate:"max=2000"`
}
