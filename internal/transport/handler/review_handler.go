package handler

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/niklvrr/EmToolBackend/internal/transport/dto/request"
	"github.com/niklvrr/EmToolBackend/internal/transport/dto/response"
	"go.uber.org/zap"
)

type ReviewService interface {
	AddReview(ctx context.Context, req *request.AddReviewRequest) (*response.ReviewResponse, error)
	GetReviewsOfPullRequest(ctx context.Context, rawPrId string) ([]*response.ReviewResponse, error)
	GetReviewsOfUser(ctx context.Context, rawUserId string) ([]*response.ReviewResponse, error)
	EditReview(ctx context.Context, req *request.EditReviewRequest) (*response.ReviewResponse, error)
	DeleteReview(ctx context.Context, rawId string) error
}

type ReviewHandler struct {
	svc ReviewService
	log *zap.Logger
}

func NewReviewHandler(svc ReviewService, log *zap.Logger) *ReviewHandler {
	return &ReviewHandler{
		svc: svc,
		log: log,
	}
}

func (h *ReviewHandler) AddReview(w http.ResponseWriter, r *http.Request) {
	var req request.AddReviewRequest
	if err := decodeBody(r, &req); err != nil {
		respondError(w, err)
		return
	}
	req.PrId = chi.URLParam(r, "id")

	resp, err := h.svc.AddReview(r.Context(), &req)
	if err != nil {
		h.log.Error("failed to add review",
			zap.String("pull_request_id", req.PrId),
			zap.String("reviewer_id", req.ReviewerId),
			zap.Error(err),
		)
		respondError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, resp)
}

func (h *ReviewHandler) ListOfPr(w http.ResponseWriter, r *http.Request) {
	resp, err := h.svc.GetReviewsOfPullRequest(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, resp)
}

func (h *ReviewHandler) ListOfUser(w http.ResponseWriter, r *http.Request) {
	resp, err := h.svc.GetReviewsOfUser(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, resp)
}

// EditReview меняет ревью reviewer_id на этот PR
func (h *ReviewHandler) EditReview(w http.ResponseWriter, r *http.Request) {
	var req request.EditReviewRequest
	if err := decodeBody(r, &req); err != nil {
		respondError(w, err)
		return
	}
	req.PrId = chi.URLParam(r, "id")

	resp, err := h.svc.EditReview(r.Context(), &req)
	if err != nil {
		respondError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, resp)
}

func (h *ReviewHandler) DeleteReview(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := h.svc.DeleteReview(r.Context(), id); err != nil {
		h.log.Error("failed to delete review", zap.String("review_id", id), zap.Error(err))
		respondError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
