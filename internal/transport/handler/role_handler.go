package handler

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/niklvrr/EmToolBackend/internal/transport/dto/request"
	"github.com/niklvrr/EmToolBackend/internal/transport/dto/response"
	"go.uber.org/zap"
)

type RoleService interface {
	CreateRole(ctx context.Context, req *request.CreateRoleRequest) (*response.RoleResponse, error)
	GetRoleById(ctx context.Context, rawId string) (*response.RoleResponse, error)
	GetRoleByName(ctx context.Context, rawName string) (*response.RoleResponse, error)
	ListRoles(ctx context.Context) ([]*response.RoleResponse, error)
}

type RoleHandler struct {
	svc RoleService
	log *zap.Logger
}

func NewRoleHandler(svc RoleService, log *zap.Logger) *RoleHandler {
	return &RoleHandler{
		svc: svc,
		log: log,
	}
}

func (h *RoleHandler) CreateRole(w http.ResponseWriter, r *http.Request) {
	var req request.CreateRoleRequest
	if err := decodeBody(r, &req); err != nil {
		h.log.Warn("failed to decode request body", zap.Error(err))
		respondError(w, err)
		return
	}

	resp, err := h.svc.CreateRole(r.Context(), &req)
	if err != nil {
		h.log.Error("failed to create role", zap.String("name", req.Name), zap.Error(err))
		respondError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, resp)
}

// ListRoles отдает все роли, а с ?name= одну роль по имени
func (h *RoleHandler) ListRoles(w http.ResponseWriter, r *http.Request) {
	if name := r.URL.Query().Get("name"); name != "" {
		resp, err := h.svc.GetRoleByName(r.Context(), name)
		if err != nil {
			respondError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, resp)
		return
	}

	resp, err := h.svc.ListRoles(r.Context())
	if err != nil {
		h.log.Error("failed to list roles", zap.Error(err))
		respondError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, resp)
}

func (h *RoleHandler) GetRole(w http.ResponseWriter, r *http.Request) {
	resp, err := h.svc.GetRoleById(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, resp)
}
