package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/niklvrr/EmToolBackend/internal/transport/dto/request"
	"github.com/niklvrr/EmToolBackend/internal/transport/dto/response"
	"github.com/niklvrr/EmToolBackend/internal/usecase/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"
)

type MockAttachmentService struct {
	mock.Mock
}

func (m *MockAttachmentService) UploadAttachment(ctx context.Context, req *request.UploadAttachmentRequest) (*response.AttachmentResponse, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*response.AttachmentResponse), args.Error(1)
}

func (m *MockAttachmentService) GetAttachmentsOfWork(ctx context.Context, rawWorkId, rawRequesterId string) ([]*response.AttachmentResponse, error) {
	args := m.Called(ctx, rawWorkId, rawRequesterId)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*response.AttachmentResponse), args.Error(1)
}

func (m *MockAttachmentService) GetAttachmentsOfUser(ctx context.Context, rawUserId string) ([]*response.AttachmentResponse, error) {
	args := m.Called(ctx, rawUserId)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*response.AttachmentResponse), args.Error(1)
}

func (m *MockAttachmentService) SearchAttachments(ctx context.Context, fileName string) ([]*response.AttachmentResponse, error) {
	args := m.Called(ctx, fileName)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*response.AttachmentResponse), args.Error(1)
}

func (m *MockAttachmentService) EditAttachment(ctx context.Context, req *request.EditAttachmentRequest) (*response.AttachmentResponse, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*response.AttachmentResponse), args.Error(1)
}

func (m *MockAttachmentService) DeleteAttachment(ctx context.Context, rawId string) error {
	args := m.Called(ctx, rawId)
	return args.Error(0)
}

func TestAttachmentHandler_Upload(t *testing.T) {
	mockService := new(MockAttachmentService)
	handler := NewAttachmentHandler(mockService, zap.NewNop())

	mockService.On("UploadAttachment", mock.Anything, mock.MatchedBy(func(req *request.UploadAttachmentRequest) bool {
		return req.WorkId == "w1" && req.UserId == "u1" && req.FileName == "spec.pdf"
	})).Return(&response.AttachmentResponse{Id: "a1", FileName: "spec.pdf"}, nil)

	w := httptest.NewRecorder()
	handler.Upload(w, newRequest(t, http.MethodPost, "/tasks/w1/attachments", map[string]string{
		"user_id":   "u1",
		"file_name": "spec.pdf",
		"file_path": "/files/spec.pdf",
		"file_type": "application/pdf",
	}, map[string]string{"id": "w1"}))

	assert.Equal(t, http.StatusCreated, w.Code)
	mockService.AssertExpectations(t)
}

func TestAttachmentHandler_Upload_NotAssignee(t *testing.T) {
	mockService := new(MockAttachmentService)
	handler := NewAttachmentHandler(mockService, zap.NewNop())

	mockService.On("UploadAttachment", mock.Anything, mock.Anything).Return(nil, service.ErrNotAssignee)

	w := httptest.NewRecorder()
	handler.Upload(w, newRequest(t, http.MethodPost, "/tasks/w1/attachments", map[string]string{"user_id": "u2"}, map[string]string{"id": "w1"}))

	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestAttachmentHandler_ListOfWork_RequesterFromQuery(t *testing.T) {
	mockService := new(MockAttachmentService)
	handler := NewAttachmentHandler(mockService, zap.NewNop())

	mockService.On("GetAttachmentsOfWork", mock.Anything, "w1", "m1").
		Return([]*response.AttachmentResponse{{Id: "a1"}}, nil)

	w := httptest.NewRecorder()
	handler.ListOfWork(w, newRequest(t, http.MethodGet, "/tasks/w1/attachments?requester_id=m1", nil, map[string]string{"id": "w1"}))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"id":"a1"`)
	mockService.AssertExpectations(t)
}

func TestAttachmentHandler_ListOfWork_NotManager(t *testing.T) {
	mockService := new(MockAttachmentService)
	handler := NewAttachmentHandler(mockService, zap.NewNop())

	mockService.On("GetAttachmentsOfWork", mock.Anything, "w1", "").Return(nil, service.ErrNotManager)

	w := httptest.NewRecorder()
	handler.ListOfWork(w, newRequest(t, http.MethodGet, "/tasks/w1/attachments", nil, map[string]string{"id": "w1"}))

	assert.Equal(t, http.StatusForbidden, w.Code)
	mockService.AssertExpectations(t)
}

func TestAttachmentHandler_Search(t *testing.T) {
	mockService := new(MockAttachmentService)
	handler := NewAttachmentHandler(mockService, zap.NewNop())

	mockService.On("SearchAttachments", mock.Anything, "SPEC").Return([]*response.AttachmentResponse{}, nil)

	w := httptest.NewRecorder()
	handler.Search(w, newRequest(t, http.MethodGet, "/attachments?name=SPEC", nil, nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `[]`, w.Body.String())
	mockService.AssertExpectations(t)
}

func TestAttachmentHandler_Search_BlankName(t *testing.T) {
	mockService := new(MockAttachmentService)
	handler := NewAttachmentHandler(mockService, zap.NewNop())

	mockService.On("SearchAttachments", mock.Anything, "").Return(nil, service.ErrInvalidInput)

	w := httptest.NewRecorder()
	handler.Search(w, newRequest(t, http.MethodGet, "/attachments", nil, nil))

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestAttachmentHandler_Edit(t *testing.T) {
	mockService := new(MockAttachmentService)
	handler := NewAttachmentHandler(mockService, zap.NewNop())

	mockService.On("EditAttachment", mock.Anything, mock.MatchedBy(func(req *request.EditAttachmentRequest) bool {
		return req.AttachmentId == "a1" && req.FileName == "b.txt"
	})).Return(&response.AttachmentResponse{Id: "a1", FileName: "b.txt"}, nil)

	w := httptest.NewRecorder()
	handler.Edit(w, newRequest(t, http.MethodPut, "/attachments/a1", map[string]string{
		"user_id":   "u1",
		"file_name": "b.txt",
		"file_path": "/files/b.txt",
		"file_type": "text/plain",
	}, map[string]string{"id": "a1"}))

	assert.Equal(t, http.StatusOK, w.Code)
	mockService.AssertExpectations(t)
}

func TestAttachmentHandler_Delete(t *testing.T) {
	mockService := new(MockAttachmentService)
	handler := NewAttachmentHandler(mockService, zap.NewNop())

	mockService.On("DeleteAttachment", mock.Anything, "a1").Return(nil)
	mockService.On("DeleteAttachment", mock.Anything, "a2").Return(service.ErrAttachmentNotFound)

	w := httptest.NewRecorder()
	handler.Delete(w, newRequest(t, http.MethodDelete, "/attachments/a1", nil, map[string]string{"id": "a1"}))
	assert.Equal(t, http.StatusNoContent, w.Code)

	w = httptest.NewRecorder()
	handler.Delete(w, newRequest(t, http.MethodDelete, "/attachments/a2", nil, map[string]string{"id": "a2"}))
	assert.Equal(t, http.StatusNotFound, w.Code)
}
