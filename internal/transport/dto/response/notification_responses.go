package response

import (
	"time"

	"github.com/niklvrr/EmToolBackend/internal/domain"
)

type NotificationResponse struct {
	Id        string    `json:"id"`
	UserId    string    `json:"user_id"`
	Message   string    `json:"message"`
	Type      string    `json:"type"`
	IsRead    bool      `json:"is_read"`
	CreatedAt time.Time `json:"created_at"`
}

func NewNotificationResponse(n *domain.Notification) *NotificationResponse {
	return &NotificationResponse{
		Id:        n.Id.String(),
		UserId:    n.UserId.String(),
		Message:   n.Message,
		Type:      n.Type,
		IsRead:    n.IsRead,
		CreatedAt: n.CreatedAt,
	}
}

func NewNotificationResponses(items []*domain.Notification) []*NotificationResponse {
	return mapAll(items, NewNotificationResponse)
}

type UnreadCountResponse struct {
	UserId string `json:"user_id"`
	Unread int    `json:"unread"`
}

type DeletedCountResponse struct {
	Deleted int64 `json:"deleted"`
}

type BulkSendResponse struct {
	Requested int      `json:"requested"`
	Sent      int      `json:"sent"`
	Failed    int      `json:"failed"`
	Errors    []string `json:"errors"`
}
