package request

type CreateNotificationRequest struct {
	UserId  string `json:"user_id" validate:"required,uuid"`
	Message string `json:"message" validate:"required,max=500"`
	Type    string `json:"type" validate:"required,max=50"`
}

type SendBulkRequest struct {
	Notifications []CreateNotificationRequest `json:"notifications" validate:"required,min=1"`
}
