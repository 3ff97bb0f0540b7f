package handler

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/niklvrr/EmToolBackend/internal/transport/dto/request"
	"github.com/niklvrr/EmToolBackend/internal/transport/dto/response"
	"github.com/niklvrr/EmToolBackend/internal/usecase/service"
	"go.uber.org/zap"
)

const dateLayout = "2006-01-02"

var errMissingPeriod = errors.New("from and to query parameters are required")

type ReportService interface {
	GetTeamReport(ctx context.Context, req *request.ReportRequest) (*response.TeamReportResponse, error)
	GetEmployeeReport(ctx context.Context, req *request.ReportRequest) (*response.EmployeeReportResponse, error)
}

type ReportHandler struct {
	svc ReportService
	log *zap.Logger
}

func NewReportHandler(svc ReportService, log *zap.Logger) *ReportHandler {
	return &ReportHandler{
		svc: svc,
		log: log,
	}
}

func (h *ReportHandler) TeamReport(w http.ResponseWriter, r *http.Request) {
	req, err := parseReportRequest(r)
	if err != nil {
		respondError(w, err)
		return
	}

	resp, err := h.svc.GetTeamReport(r.Context(), req)
	if err != nil {
		h.log.Error("failed to build team report", zap.String("team_id", req.Id), zap.Error(err))
		respondError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, resp)
}

func (h *ReportHandler) EmployeeReport(w http.ResponseWriter, r *http.Request) {
	req, err := parseReportRequest(r)
	if err != nil {
		respondError(w, err)
		return
	}

	resp, err := h.svc.GetEmployeeReport(r.Context(), req)
	if err != nil {
		h.log.Error("failed to build employee report", zap.String("user_id", req.Id), zap.Error(err))
		respondError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, resp)
}

// parseReportRequest читает ?from= и ?to= в RFC3339 или YYYY-MM-DD.
// Дата без времени в to покрывает весь день.
func parseReportRequest(r *http.Request) (*request.ReportRequest, error) {
	query := r.URL.Query()
	rawFrom, rawTo := query.Get("from"), query.Get("to")
	if rawFrom == "" || rawTo == "" {
		return nil, service.WrapError(service.ErrInvalidInput, errMissingPeriod)
	}

	from, _, err := parseDate(rawFrom)
	if err != nil {
		return nil, service.WrapError(service.ErrInvalidInput, fmt.Errorf("from: %w", err))
	}
	to, dateOnly, err := parseDate(rawTo)
	if err != nil {
		return nil, service.WrapError(service.ErrInvalidInput, fmt.Errorf("to: %w", err))
	}
	if dateOnly {
		to = to.Add(24*time.Hour - time.Nanosecond)
	}

	return &request.ReportRequest{
		Id:   chi.URLParam(r, "id"),
		From: from,
		To:   to,
	}, nil
}

func parseDate(raw string) (time.Time, bool, error) {
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return t, false, nil
	}
	t, err := time.Parse(dateLayout, raw)
	if err != nil {
		return time.Time{}, false, err
	}
	return t, true, nil
}
