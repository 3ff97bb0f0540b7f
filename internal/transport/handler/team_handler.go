package handler

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/niklvrr/EmToolBackend/internal/transport/dto/request"
	"github.com/niklvrr/EmToolBackend/internal/transport/dto/response"
	"go.uber.org/zap"
)

type TeamService interface {
	CreateTeam(ctx context.Context, req *request.CreateTeamRequest) (*response.TeamResponse, error)
	GetTeamById(ctx context.Context, rawId string) (*response.TeamResponse, error)
	GetTeamsByName(ctx context.Context, name string) ([]*response.TeamResponse, error)
	GetTeamsOfManager(ctx context.Context, rawManagerId string) ([]*response.TeamResponse, error)
	UpdateTeam(ctx context.Context, req *request.UpdateTeamRequest) (*response.TeamResponse, error)
	DeleteTeam(ctx context.Context, rawId string) error
	AddTeamMember(ctx context.Context, req *request.AddTeamMemberRequest) (*response.TeamMemberResponse, error)
	GetTeamMembers(ctx context.Context, rawTeamId string) ([]*response.TeamMemberResponse, error)
	DeleteTeamMember(ctx context.Context, rawMemberId string) error
}

type TeamHandler struct {
	svc TeamService
	log *zap.Logger
}

func NewTeamHandler(svc TeamService, log *zap.Logger) *TeamHandler {
	return &TeamHandler{
		svc: svc,
		log: log,
	}
}

func (h *TeamHandler) CreateTeam(w http.ResponseWriter, r *http.Request) {
	h.log.Info("createTeam request received",
		zap.String("method", r.Method),
		zap.String("path", r.URL.Path),
	)

	var req request.CreateTeamRequest
	if err := decodeBody(r, &req); err != nil {
		h.log.Warn("failed to decode request body", zap.Error(err))
		respondError(w, err)
		return
	}

	resp, err := h.svc.CreateTeam(r.Context(), &req)
	if err != nil {
		h.log.Error("failed to create team",
			zap.String("name", req.Name),
			zap.String("manager_id", req.ManagerId),
			zap.Error(err),
		)
		respondError(w, err)
		return
	}

	h.log.Info("team created", zap.String("team_id", resp.Id))
	writeJSON(w, http.StatusCreated, resp)
}

// ListTeams ищет команды по ?name= или по ?manager_id=
func (h *TeamHandler) ListTeams(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	var (
		resp []*response.TeamResponse
		err  error
	)
	if managerId := query.Get("manager_id"); managerId != "" {
		resp, err = h.svc.GetTeamsOfManager(r.Context(), managerId)
	} else {
		resp, err = h.svc.GetTeamsByName(r.Context(), query.Get("name"))
	}
	if err != nil {
		respondError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, resp)
}

func (h *TeamHandler) GetTeam(w http.ResponseWriter, r *http.Request) {
	resp, err := h.svc.GetTeamById(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, resp)
}

func (h *TeamHandler) UpdateTeam(w http.ResponseWriter, r *http.Request) {
	var req request.UpdateTeamRequest
	if err := decodeBody(r, &req); err != nil {
		respondError(w, err)
		return
	}
	req.TeamId = chi.URLParam(r, "id")

	resp, err := h.svc.UpdateTeam(r.Context(), &req)
	if err != nil {
		h.log.Error("failed to update team", zap.String("team_id", req.TeamId), zap.Error(err))
		respondError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, resp)
}

func (h *TeamHandler) DeleteTeam(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := h.svc.DeleteTeam(r.Context(), id); err != nil {
		h.log.Error("failed to delete team", zap.String("team_id", id), zap.Error(err))
		respondError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *TeamHandler) AddMember(w http.ResponseWriter, r *http.Request) {
	var req request.AddTeamMemberRequest
	if err := decodeBody(r, &req); err != nil {
		respondError(w, err)
		return
	}
	req.TeamId = chi.URLParam(r, "id")

	resp, err := h.svc.AddTeamMember(r.Context(), &req)
	if err != nil {
		h.log.Error("failed to add team member",
			zap.String("team_id", req.TeamId),
			zap.String("user_id", req.UserId),
			zap.Error(err),
		)
		respondError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, resp)
}

func (h *TeamHandler) ListMembers(w http.ResponseWriter, r *http.Request) {
	resp, err := h.svc.GetTeamMembers(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, resp)
}

func (h *TeamHandler) DeleteMember(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := h.svc.DeleteTeamMember(r.Context(), id); err != nil {
		respondError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
