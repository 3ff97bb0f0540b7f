package handler

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/niklvrr/EmToolBackend/internal/transport/dto/request"
	"github.com/niklvrr/EmToolBackend/internal/transport/dto/response"
	"go.uber.org/zap"
)

type NotificationService interface {
	CreateNotification(ctx context.Context, req *request.CreateNotificationRequest) (*response.NotificationResponse, error)
	SendBulk(ctx context.Context, req *request.SendBulkRequest) (*response.BulkSendResponse, error)
	GetNotificationsOfUser(ctx context.Context, rawUserId string) ([]*response.NotificationResponse, error)
	GetUnreadCount(ctx context.Context, rawUserId string) (*response.UnreadCountResponse, error)
	MarkAsRead(ctx context.Context, rawId string) (*response.NotificationResponse, error)
	DeleteNotification(ctx context.Context, rawId string) error
	DeleteAllNotifications(ctx context.Context, rawUserId string) (*response.DeletedCountResponse, error)
}

type NotificationHandler struct {
	svc NotificationService
	log *zap.Logger
}

func NewNotificationHandler(svc NotificationService, log *zap.Logger) *NotificationHandler {
	return &NotificationHandler{
		svc: svc,
		log: log,
	}
}

func (h *NotificationHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req request.CreateNotificationRequest
	if err := decodeBody(r, &req); err != nil {
		respondError(w, err)
		return
	}

	resp, err := h.svc.CreateNotification(r.Context(), &req)
	if err != nil {
		h.log.Error("failed to create notification", zap.String("user_id", req.UserId), zap.Error(err))
		respondError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, resp)
}

// SendBulk отвечает 200 даже при частичных ошибках, детали в теле ответа
func (h *NotificationHandler) SendBulk(w http.ResponseWriter, r *http.Request) {
	var req request.SendBulkRequest
	if err := decodeBody(r, &req); err != nil {
		respondError(w, err)
		return
	}

	resp, err := h.svc.SendBulk(r.Context(), &req)
	if err != nil {
		respondError(w, err)
		return
	}

	h.log.Info("bulk notifications processed",
		zap.Int("requested", resp.Requested),
		zap.Int("sent", resp.Sent),
		zap.Int("failed", resp.Failed),
	)
	writeJSON(w, http.StatusOK, resp)
}

func (h *NotificationHandler) ListOfUser(w http.ResponseWriter, r *http.Request) {
	resp, err := h.svc.GetNotificationsOfUser(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, resp)
}

func (h *NotificationHandler) UnreadCount(w http.ResponseWriter, r *http.Request) {
	resp, err := h.svc.GetUnreadCount(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, resp)
}

func (h *NotificationHandler) MarkAsRead(w http.ResponseWriter, r *http.Request) {
	resp, err := h.svc.MarkAsRead(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, resp)
}

func (h *NotificationHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.DeleteNotification(r.Context(), chi.URLParam(r, "id")); err != nil {
		respondError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *NotificationHandler) DeleteAllOfUser(w http.ResponseWriter, r *http.Request) {
	resp, err := h.svc.DeleteAllNotifications(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, resp)
}
