package handler

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/niklvrr/EmToolBackend/internal/transport/dto/request"
	"github.com/niklvrr/EmToolBackend/internal/transport/dto/response"
	"go.uber.org/zap"
)

type UserService interface {
	RegisterManager(ctx context.Context, req *request.RegisterUserRequest) (*response.UserResponse, error)
	RegisterEmployee(ctx context.Context, req *request.RegisterUserRequest) (*response.UserResponse, error)
	Authenticate(ctx context.Context, req *request.LoginRequest) (*response.LoginResponse, error)
	GetAllUsers(ctx context.Context) ([]*response.UserResponse, error)
	GetUsersByUsername(ctx context.Context, username string) ([]*response.UserResponse, error)
	GetUserById(ctx context.Context, rawId string) (*response.UserResponse, error)
	UpdateUser(ctx context.Context, req *request.UpdateUserRequest) (*response.UserResponse, error)
	DeleteUser(ctx context.Context, rawId string) error
}

type UserHandler struct {
	svc UserService
	log *zap.Logger
}

func NewUserHandler(svc UserService, log *zap.Logger) *UserHandler {
	return &UserHandler{
		svc: svc,
		log: log,
	}
}

func (h *UserHandler) RegisterManager(w http.ResponseWriter, r *http.Request) {
	h.register(w, r, h.svc.RegisterManager)
}

func (h *UserHandler) RegisterEmployee(w http.ResponseWriter, r *http.Request) {
	h.register(w, r, h.svc.RegisterEmployee)
}

func (h *UserHandler) register(
	w http.ResponseWriter,
	r *http.Request,
	create func(context.Context, *request.RegisterUserRequest) (*response.UserResponse, error),
) {
	h.log.Info("register request received",
		zap.String("method", r.Method),
		zap.String("path", r.URL.Path),
	)

	// Парсим json в модель RegisterUserRequest
	var req request.RegisterUserRequest
	if err := decodeBody(r, &req); err != nil {
		h.log.Warn("failed to decode request body", zap.Error(err))
		respondError(w, err)
		return
	}

	// Вызов сервиса
	resp, err := create(r.Context(), &req)
	if err != nil {
		h.log.Error("failed to register user",
			zap.String("username", req.Username),
			zap.Error(err),
		)
		respondError(w, err)
		return
	}

	h.log.Info("user registered",
		zap.String("user_id", resp.Id),
		zap.String("role", resp.Role),
	)

	writeJSON(w, http.StatusCreated, resp)
}

func (h *UserHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req request.LoginRequest
	if err := decodeBody(r, &req); err != nil {
		respondError(w, err)
		return
	}

	resp, err := h.svc.Authenticate(r.Context(), &req)
	if err != nil {
		// Пароль в лог не пишем
		h.log.Warn("login failed", zap.String("username", req.Username), zap.Error(err))
		respondError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, resp)
}

// ListUsers отдает всех пользователей или ищет по ?username=
func (h *UserHandler) ListUsers(w http.ResponseWriter, r *http.Request) {
	var (
		resp []*response.UserResponse
		err  error
	)
	if username := r.URL.Query().Get("username"); username != "" {
		resp, err = h.svc.GetUsersByUsername(r.Context(), username)
	} else {
		resp, err = h.svc.GetAllUsers(r.Context())
	}
	if err != nil {
		h.log.Error("failed to list users", zap.Error(err))
		respondError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, resp)
}

func (h *UserHandler) GetUser(w http.ResponseWriter, r *http.Request) {
	resp, err := h.svc.GetUserById(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, resp)
}

func (h *UserHandler) UpdateUser(w http.ResponseWriter, r *http.Request) {
	var req request.UpdateUserRequest
	if err := decodeBody(r, &req); err != nil {
		respondError(w, err)
		return
	}
	req.UserId = chi.URLParam(r, "id")

	resp, err := h.svc.UpdateUser(r.Context(), &req)
	if err != nil {
		h.log.Error("failed to update user", zap.String("user_id", req.UserId), zap.Error(err))
		respondError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, resp)
}

func (h *UserHandler) DeleteUser(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := h.svc.DeleteUser(r.Context(), id); err != nil {
		h.log.Error("failed to delete user", zap.String("user_id", id), zap.Error(err))
		respondError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
