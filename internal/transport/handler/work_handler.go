package handler

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/niklvrr/EmToolBackend/internal/transport/dto/request"
	"github.com/niklvrr/EmToolBackend/internal/transport/dto/response"
	"go.uber.org/zap"
)

type WorkService interface {
	CreateWork(ctx context.Context, req *request.CreateWorkRequest) (*response.WorkResponse, error)
	GetWorkById(ctx context.Context, rawId string) (*response.WorkResponse, error)
	GetEmployeeWorks(ctx context.Context, rawUserId string) ([]*response.WorkResponse, error)
	GetTeamWorks(ctx context.Context, rawTeamId string) ([]*response.WorkResponse, error)
	UpdateWork(ctx context.Context, req *request.UpdateWorkRequest) (*response.WorkResponse, error)
	DeleteWork(ctx context.Context, rawWorkId, rawActorId string) error
}

type WorkHandler struct {
	svc WorkService
	log *zap.Logger
}

func NewWorkHandler(svc WorkService, log *zap.Logger) *WorkHandler {
	return &WorkHandler{
		svc: svc,
		log: log,
	}
}

func (h *WorkHandler) CreateWork(w http.ResponseWriter, r *http.Request) {
	h.log.Info("createTask request received",
		zap.String("method", r.Method),
		zap.String("path", r.URL.Path),
	)

	var req request.CreateWorkRequest
	if err := decodeBody(r, &req); err != nil {
		h.log.Warn("failed to decode request body", zap.Error(err))
		respondError(w, err)
		return
	}

	resp, err := h.svc.CreateWork(r.Context(), &req)
	if err != nil {
		h.log.Error("failed to create task",
			zap.String("team_id", req.TeamId),
			zap.String("assigned_to", req.AssignedTo),
			zap.Error(err),
		)
		respondError(w, err)
		return
	}

	h.log.Info("task created",
		zap.String("task_id", resp.Id),
		zap.String("status", resp.Status),
	)
	writeJSON(w, http.StatusCreated, resp)
}

func (h *WorkHandler) GetWork(w http.ResponseWriter, r *http.Request) {
	resp, err := h.svc.GetWorkById(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, resp)
}

func (h *WorkHandler) ListOfUser(w http.ResponseWriter, r *http.Request) {
	resp, err := h.svc.GetEmployeeWorks(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, resp)
}

func (h *WorkHandler) ListOfTeam(w http.ResponseWriter, r *http.Request) {
	resp, err := h.svc.GetTeamWorks(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, resp)
}

func (h *WorkHandler) UpdateWork(w http.ResponseWriter, r *http.Request) {
	var req request.UpdateWorkRequest
	if err := decodeBody(r, &req); err != nil {
		respondError(w, err)
		return
	}
	req.WorkId = chi.URLParam(r, "id")

	resp, err := h.svc.UpdateWork(r.Context(), &req)
	if err != nil {
		h.log.Error("failed to update task",
			zap.String("task_id", req.WorkId),
			zap.String("actor_id", req.ActorId),
			zap.Error(err),
		)
		respondError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, resp)
}

// DeleteWork ждет ?actor_id= менеджера команды
func (h *WorkHandler) DeleteWork(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	actorId := r.URL.Query().Get("actor_id")

	if err := h.svc.DeleteWork(r.Context(), id, actorId); err != nil {
		h.log.Error("failed to delete task",
			zap.String("task_id", id),
			zap.String("actor_id", actorId),
			zap.Error(err),
		)
		respondError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
