package handler

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/niklvrr/EmToolBackend/internal/transport/dto/request"
	"github.com/niklvrr/EmToolBackend/internal/transport/dto/response"
	"go.uber.org/zap"
)

type PrService interface {
	CreatePullRequest(ctx context.Context, req *request.CreatePrRequest) (*response.PullRequestResponse, error)
	GetPullRequestById(ctx context.Context, rawId string) (*response.PullRequestResponse, error)
	GetPullRequestsOfWork(ctx context.Context, rawWorkId string) ([]*response.PullRequestResponse, error)
	GetPullRequestsOfUser(ctx context.Context, rawUserId string) ([]*response.PullRequestResponse, error)
	GetPullRequestsOfTeam(ctx context.Context, rawTeamId string) ([]*response.PullRequestResponse, error)
	GetApprovalStatus(ctx context.Context, rawId string) (*response.ApprovalStatusResponse, error)
	UpdateStatus(ctx context.Context, req *request.UpdatePrStatusRequest) (*response.PullRequestResponse, error)
	DeletePullRequest(ctx context.Context, rawId string) error
}

type PrHandler struct {
	svc PrService
	log *zap.Logger
}

func NewPrHandler(svc PrService, log *zap.Logger) *PrHandler {
	return &PrHandler{
		svc: svc,
		log: log,
	}
}

func (h *PrHandler) CreatePr(w http.ResponseWriter, r *http.Request) {
	h.log.Info("createPr request received",
		zap.String("method", r.Method),
		zap.String("path", r.URL.Path),
	)

	// Парсим json в модель CreatePrRequest
	var req request.CreatePrRequest
	if err := decodeBody(r, &req); err != nil {
		h.log.Warn("failed to decode request body", zap.Error(err))
		respondError(w, err)
		return
	}

	// Вызов сервиса
	resp, err := h.svc.CreatePullRequest(r.Context(), &req)
	if err != nil {
		h.log.Error("failed to create pull request",
			zap.String("task_id", req.WorkId),
			zap.String("created_by_id", req.CreatedById),
			zap.Error(err),
		)
		respondError(w, err)
		return
	}

	h.log.Info("pull request created",
		zap.String("pull_request_id", resp.Id),
		zap.String("status", resp.Status),
	)
	writeJSON(w, http.StatusCreated, resp)
}

func (h *PrHandler) GetPr(w http.ResponseWriter, r *http.Request) {
	resp, err := h.svc.GetPullRequestById(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, resp)
}

func (h *PrHandler) ListOfWork(w http.ResponseWriter, r *http.Request) {
	h.list(w, r, h.svc.GetPullRequestsOfWork)
}

func (h *PrHandler) ListOfUser(w http.ResponseWriter, r *http.Request) {
	h.list(w, r, h.svc.GetPullRequestsOfUser)
}

func (h *PrHandler) ListOfTeam(w http.ResponseWriter, r *http.Request) {
	h.list(w, r, h.svc.GetPullRequestsOfTeam)
}

func (h *PrHandler) list(
	w http.ResponseWriter,
	r *http.Request,
	load func(context.Context, string) ([]*response.PullRequestResponse, error),
) {
	resp, err := load(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, resp)
}

func (h *PrHandler) GetApproval(w http.ResponseWriter, r *http.Request) {
	resp, err := h.svc.GetApprovalStatus(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, resp)
}

func (h *PrHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	var req request.UpdatePrStatusRequest
	if err := decodeBody(r, &req); err != nil {
		respondError(w, err)
		return
	}
	req.PrId = chi.URLParam(r, "id")

	resp, err := h.svc.UpdateStatus(r.Context(), &req)
	if err != nil {
		h.log.Error("failed to update pull request status",
			zap.String("pull_request_id", req.PrId),
			zap.String("status", req.Status),
			zap.Error(err),
		)
		respondError(w, err)
		return
	}

	h.log.Info("pull request status updated",
		zap.String("pull_request_id", resp.Id),
		zap.String("status", resp.Status),
	)
	writeJSON(w, http.StatusOK, resp)
}

func (h *PrHandler) DeletePr(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := h.svc.DeletePullRequest(r.Context(), id); err != nil {
		respondError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
