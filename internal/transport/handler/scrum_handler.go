package handler

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/niklvrr/EmToolBackend/internal/transport/dto/request"
	"github.com/niklvrr/EmToolBackend/internal/transport/dto/response"
	"go.uber.org/zap"
)

type ScrumService interface {
	CreateScrumMeeting(ctx context.Context, req *request.CreateScrumMeetingRequest) (*response.ScrumMeetingResponse, error)
	GetScrumMeetingById(ctx context.Context, rawId string) (*response.ScrumMeetingResponse, error)
	GetScrumMeetingsOfTeam(ctx context.Context, rawTeamId string) ([]*response.ScrumMeetingResponse, error)
	GetScrumMeetingsOfUser(ctx context.Context, rawUserId string) ([]*response.ScrumMeetingResponse, error)
	UpdateScrumMeeting(ctx context.Context, req *request.UpdateScrumMeetingRequest) (*response.ScrumMeetingResponse, error)
	DeleteScrumMeeting(ctx context.Context, rawId string) error
	MarkAttendance(ctx context.Context, req *request.MarkAttendanceRequest) (*response.AttendanceResponse, error)
	GetAttendanceById(ctx context.Context, rawId string) (*response.AttendanceResponse, error)
	GetAttendanceOfMeeting(ctx context.Context, rawMeetingId string) ([]*response.AttendanceResponse, error)
	GetAttendanceOfUser(ctx context.Context, rawUserId string) ([]*response.AttendanceResponse, error)
	UpdateAttendance(ctx context.Context, req *request.UpdateAttendanceRequest) (*response.AttendanceResponse, error)
}

type ScrumHandler struct {
	svc ScrumService
	log *zap.Logger
}

func NewScrumHandler(svc ScrumService, log *zap.Logger) *ScrumHandler {
	return &ScrumHandler{
		svc: svc,
		log: log,
	}
}

func (h *ScrumHandler) CreateMeeting(w http.ResponseWriter, r *http.Request) {
	h.log.Info("createScrumMeeting request received",
		zap.String("method", r.Method),
		zap.String("path", r.URL.Path),
	)

	var req request.CreateScrumMeetingRequest
	if err := decodeBody(r, &req); err != nil {
		h.log.Warn("failed to decode request body", zap.Error(err))
		respondError(w, err)
		return
	}

	resp, err := h.svc.CreateScrumMeeting(r.Context(), &req)
	if err != nil {
		h.log.Error("failed to create scrum meeting",
			zap.String("team_id", req.TeamId),
			zap.String("created_by", req.CreatedBy),
			zap.Error(err),
		)
		respondError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, resp)
}

func (h *ScrumHandler) GetMeeting(w http.ResponseWriter, r *http.Request) {
	resp, err := h.svc.GetScrumMeetingById(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, resp)
}

func (h *ScrumHandler) ListOfTeam(w http.ResponseWriter, r *http.Request) {
	resp, err := h.svc.GetScrumMeetingsOfTeam(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, resp)
}

func (h *ScrumHandler) ListOfUser(w http.ResponseWriter, r *http.Request) {
	resp, err := h.svc.GetScrumMeetingsOfUser(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, resp)
}

func (h *ScrumHandler) UpdateMeeting(w http.ResponseWriter, r *http.Request) {
	var req request.UpdateScrumMeetingRequest
	if err := decodeBody(r, &req); err != nil {
		respondError(w, err)
		return
	}
	req.MeetingId = chi.URLParam(r, "id")

	resp, err := h.svc.UpdateScrumMeeting(r.Context(), &req)
	if err != nil {
		h.log.Error("failed to update scrum meeting", zap.String("meeting_id", req.MeetingId), zap.Error(err))
		respondError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, resp)
}

func (h *ScrumHandler) DeleteMeeting(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.DeleteScrumMeeting(r.Context(), chi.URLParam(r, "id")); err != nil {
		respondError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *ScrumHandler) MarkAttendance(w http.ResponseWriter, r *http.Request) {
	var req request.MarkAttendanceRequest
	if err := decodeBody(r, &req); err != nil {
		respondError(w, err)
		return
	}
	req.MeetingId = chi.URLParam(r, "id")

	resp, err := h.svc.MarkAttendance(r.Context(), &req)
	if err != nil {
		h.log.Error("failed to mark attendance",
			zap.String("meeting_id", req.MeetingId),
			zap.String("user_id", req.UserId),
			zap.Error(err),
		)
		respondError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, resp)
}

func (h *ScrumHandler) ListAttendanceOfMeeting(w http.ResponseWriter, r *http.Request) {
	resp, err := h.svc.GetAttendanceOfMeeting(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, resp)
}

func (h *ScrumHandler) ListAttendanceOfUser(w http.ResponseWriter, r *http.Request) {
	resp, err := h.svc.GetAttendanceOfUser(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, resp)
}

func (h *ScrumHandler) GetAttendance(w http.ResponseWriter, r *http.Request) {
	resp, err := h.svc.GetAttendanceById(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, resp)
}

func (h *ScrumHandler) UpdateAttendance(w http.ResponseWriter, r *http.Request) {
	var req request.UpdateAttendanceRequest
	if err := decodeBody(r, &req); err != nil {
		respondError(w, err)
		return
	}
	req.AttendanceId = chi.URLParam(r, "id")

	resp, err := h.svc.UpdateAttendance(r.Context(), &req)
	if err != nil {
		respondError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, resp)
}
