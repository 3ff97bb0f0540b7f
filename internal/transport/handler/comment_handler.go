package handler

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/niklvrr/EmToolBackend/internal/transport/dto/request"
	"github.com/niklvrr/EmToolBackend/internal/transport/dto/response"
	"go.uber.org/zap"
)

type CommentService interface {
	AddComment(ctx context.Context, req *request.AddCommentRequest) (*response.CommentResponse, error)
	GetComments(ctx context.Context, rawWorkId string) ([]*response.CommentResponse, error)
	EditComment(ctx context.Context, req *request.EditCommentRequest) (*response.CommentResponse, error)
	DeleteComment(ctx context.Context, rawCommentId, rawUserId string) error
}

type CommentHandler struct {
	svc CommentService
	log *zap.Logger
}

func NewCommentHandler(svc CommentService, log *zap.Logger) *CommentHandler {
	return &CommentHandler{
		svc: svc,
		log: log,
	}
}

func (h *CommentHandler) AddComment(w http.ResponseWriter, r *http.Request) {
	var req request.AddCommentRequest
	if err := decodeBody(r, &req); err != nil {
		respondError(w, err)
		return
	}
	req.WorkId = chi.URLParam(r, "id")

	resp, err := h.svc.AddComment(r.Context(), &req)
	if err != nil {
		h.log.Error("failed to add comment",
			zap.String("task_id", req.WorkId),
			zap.String("user_id", req.UserId),
			zap.Error(err),
		)
		respondError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, resp)
}

func (h *CommentHandler) ListComments(w http.ResponseWriter, r *http.Request) {
	resp, err := h.svc.GetComments(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, resp)
}

func (h *CommentHandler) EditComment(w http.ResponseWriter, r *http.Request) {
	var req request.EditCommentRequest
	if err := decodeBody(r, &req); err != nil {
		respondError(w, err)
		return
	}
	req.CommentId = chi.URLParam(r, "id")

	resp, err := h.svc.EditComment(r.Context(), &req)
	if err != nil {
		respondError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, resp)
}

// DeleteComment ждет ?user_id= автора или менеджера команды
func (h *CommentHandler) DeleteComment(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := h.svc.DeleteComment(r.Context(), id, r.URL.Query().Get("user_id")); err != nil {
		h.log.Error("failed to delete comment", zap.String("comment_id", id), zap.Error(err))
		respondError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
