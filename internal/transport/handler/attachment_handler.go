package handler

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/niklvrr/EmToolBackend/internal/transport/dto/request"
	"github.com/niklvrr/EmToolBackend/internal/transport/dto/response"
	"go.uber.org/zap"
)

type AttachmentService interface {
	UploadAttachment(ctx context.Context, req *request.UploadAttachmentRequest) (*response.AttachmentResponse, error)
	GetAttachmentsOfWork(ctx context.Context, rawWorkId, rawRequesterId string) ([]*response.AttachmentResponse, error)
	GetAttachmentsOfUser(ctx context.Context, rawUserId string) ([]*response.AttachmentResponse, error)
	SearchAttachments(ctx context.Context, fileName string) ([]*response.AttachmentResponse, error)
	EditAttachment(ctx context.Context, req *request.EditAttachmentRequest) (*response.AttachmentResponse, error)
	DeleteAttachment(ctx context.Context, rawId string) error
}

type AttachmentHandler struct {
	svc AttachmentService
	log *zap.Logger
}

func NewAttachmentHandler(svc AttachmentService, log *zap.Logger) *AttachmentHandler {
	return &AttachmentHandler{
		svc: svc,
		log: log,
	}
}

func (h *AttachmentHandler) Upload(w http.ResponseWriter, r *http.Request) {
	var req request.UploadAttachmentRequest
	if err := decodeBody(r, &req); err != nil {
		respondError(w, err)
		return
	}
	req.WorkId = chi.URLParam(r, "id")

	resp, err := h.svc.UploadAttachment(r.Context(), &req)
	if err != nil {
		h.log.Error("failed to upload attachment",
			zap.String("task_id", req.WorkId),
			zap.String("file_name", req.FileName),
			zap.Error(err),
		)
		respondError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, resp)
}

// ListOfWork доступен только менеджеру, он передается в ?requester_id=
func (h *AttachmentHandler) ListOfWork(w http.ResponseWriter, r *http.Request) {
	resp, err := h.svc.GetAttachmentsOfWork(r.Context(), chi.URLParam(r, "id"), r.URL.Query().Get("requester_id"))
	if err != nil {
		respondError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, resp)
}

func (h *AttachmentHandler) ListOfUser(w http.ResponseWriter, r *http.Request) {
	resp, err := h.svc.GetAttachmentsOfUser(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, resp)
}

func (h *AttachmentHandler) Search(w http.ResponseWriter, r *http.Request) {
	resp, err := h.svc.SearchAttachments(r.Context(), r.URL.Query().Get("name"))
	if err != nil {
		respondError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, resp)
}

func (h *AttachmentHandler) Edit(w http.ResponseWriter, r *http.Request) {
	var req request.EditAttachmentRequest
	if err := decodeBody(r, &req); err != nil {
		respondError(w, err)
		return
	}
	req.AttachmentId = chi.URLParam(r, "id")

	resp, err := h.svc.EditAttachment(r.Context(), &req)
	if err != nil {
		respondError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, resp)
}

func (h *AttachmentHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := h.svc.DeleteAttachment(r.Context(), id); err != nil {
		h.log.Error("failed to delete attachment", zap.String("attachment_id", id), zap.Error(err))
		respondError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
