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

type MockScrumService struct {
	mock.Mock
}

func (m *MockScrumService) CreateScrumMeeting(ctx context.Context, req *request.CreateScrumMeetingRequest) (*response.ScrumMeetingResponse, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*response.ScrumMeetingResponse), args.Error(1)
}

func (m *MockScrumService) GetScrumMeetingById(ctx context.Context, rawId string) (*response.ScrumMeetingResponse, error) {
	args := m.Called(ctx, rawId)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*response.ScrumMeetingResponse), args.Error(1)
}

func (m *MockScrumService) GetScrumMeetingsOfTeam(ctx context.Context, rawTeamId string) ([]*response.ScrumMeetingResponse, error) {
	args := m.Called(ctx, rawTeamId)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*response.ScrumMeetingResponse), args.Error(1)
}

func (m *MockScrumService) GetScrumMeetingsOfUser(ctx context.Context, rawUserId string) ([]*response.ScrumMeetingResponse, error) {
	args := m.Called(ctx, rawUserId)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*response.ScrumMeetingResponse), args.Error(1)
}

func (m *MockScrumService) UpdateScrumMeeting(ctx context.Context, req *request.UpdateScrumMeetingRequest) (*response.ScrumMeetingResponse, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*response.ScrumMeetingResponse), args.Error(1)
}

func (m *MockScrumService) DeleteScrumMeeting(ctx context.Context, rawId string) error {
	args := m.Called(ctx, rawId)
	return args.Error(0)
}

func (m *MockScrumService) MarkAttendance(ctx context.Context, req *request.MarkAttendanceRequest) (*response.AttendanceResponse, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*response.AttendanceResponse), args.Error(1)
}

func (m *MockScrumService) GetAttendanceById(ctx context.Context, rawId string) (*response.AttendanceResponse, error) {
	args := m.Called(ctx, rawId)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*response.AttendanceResponse), args.Error(1)
}

func (m *MockScrumService) GetAttendanceOfMeeting(ctx context.Context, rawMeetingId string) ([]*response.AttendanceResponse, error) {
	args := m.Called(ctx, rawMeetingId)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*response.AttendanceResponse), args.Error(1)
}

func (m *MockScrumService) GetAttendanceOfUser(ctx context.Context, rawUserId string) ([]*response.AttendanceResponse, error) {
	args := m.Called(ctx, rawUserId)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*response.AttendanceResponse), args.Error(1)
}

func (m *MockScrumService) UpdateAttendance(ctx context.Context, req *request.UpdateAttendanceRequest) (*response.AttendanceResponse, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*response.AttendanceResponse), args.Error(1)
}

func TestScrumHandler_CreateMeeting(t *testing.T) {
	mockService := new(MockScrumService)
	handler := NewScrumHandler(mockService, zap.NewNop())

	mockService.On("CreateScrumMeeting", mock.Anything, mock.MatchedBy(func(req *request.CreateScrumMeetingRequest) bool {
		return req.TeamId == "t1" && len(req.InvitedUserIds) == 2 && !req.ScheduledAt.IsZero()
	})).Return(&response.ScrumMeetingResponse{Id: "s1", CreatedByRole: "Manager"}, nil)

	w := httptest.NewRecorder()
	handler.CreateMeeting(w, newRequest(t, http.MethodPost, "/scrum-meetings", map[string]any{
		"team_id":          "t1",
		"scheduled_at":     "2025-03-01T10:00:00Z",
		"agenda":           "daily",
		"link":             "https://meet.example.com/daily",
		"created_by":       "m1",
		"invited_user_ids": []string{"u1", "u2"},
	}, nil))

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Contains(t, w.Body.String(), `"created_by_role":"Manager"`)
	mockService.AssertExpectations(t)
}

func TestScrumHandler_CreateMeeting_BadTime(t *testing.T) {
	mockService := new(MockScrumService)
	handler := NewScrumHandler(mockService, zap.NewNop())

	w := httptest.NewRecorder()
	handler.CreateMeeting(w, newRequest(t, http.MethodPost, "/scrum-meetings", `{"scheduled_at":"tomorrow"}`, nil))

	assert.Equal(t, http.StatusBadRequest, w.Code)
	mockService.AssertNotCalled(t, "CreateScrumMeeting")
}

func TestScrumHandler_UpdateMeeting_NotAuthor(t *testing.T) {
	mockService := new(MockScrumService)
	handler := NewScrumHandler(mockService, zap.NewNop())

	mockService.On("UpdateScrumMeeting", mock.Anything, mock.MatchedBy(func(req *request.UpdateScrumMeetingRequest) bool {
		return req.MeetingId == "s1" && req.ActorId == "u1" && req.Agenda == "retro"
	})).Return(nil, service.ErrNotMeetingAuthor)

	w := httptest.NewRecorder()
	handler.UpdateMeeting(w, newRequest(t, http.MethodPut, "/scrum-meetings/s1", map[string]any{
		"actor_id":         "u1",
		"scheduled_at":     "2025-03-02T10:00:00Z",
		"agenda":           "retro",
		"link":             "https://meet.example.com/retro",
		"invited_user_ids": []string{"u2"},
	}, map[string]string{"id": "s1"}))

	assert.Equal(t, http.StatusForbidden, w.Code)
	mockService.AssertExpectations(t)
}

func TestScrumHandler_DeleteMeeting(t *testing.T) {
	mockService := new(MockScrumService)
	handler := NewScrumHandler(mockService, zap.NewNop())

	mockService.On("DeleteScrumMeeting", mock.Anything, "s1").Return(nil)

	w := httptest.NewRecorder()
	handler.DeleteMeeting(w, newRequest(t, http.MethodDelete, "/scrum-meetings/s1", nil, map[string]string{"id": "s1"}))

	assert.Equal(t, http.StatusNoContent, w.Code)
	mockService.AssertExpectations(t)
}

func TestScrumHandler_MarkAttendance(t *testing.T) {
	mockService := new(MockScrumService)
	handler := NewScrumHandler(mockService, zap.NewNop())

	mockService.On("MarkAttendance", mock.Anything, mock.MatchedBy(func(req *request.MarkAttendanceRequest) bool {
		return req.MeetingId == "s1" && req.UserId == "u1" && req.IsPresent
	})).Return(&response.AttendanceResponse{Id: "at1", IsPresent: true}, nil).Once()
	mockService.On("MarkAttendance", mock.Anything, mock.Anything).Return(nil, service.ErrAttendanceMarked)

	body := map[string]any{"user_id": "u1", "is_present": true}

	w := httptest.NewRecorder()
	handler.MarkAttendance(w, newRequest(t, http.MethodPost, "/scrum-meetings/s1/attendance", body, map[string]string{"id": "s1"}))
	assert.Equal(t, http.StatusCreated, w.Code)

	w = httptest.NewRecorder()
	handler.MarkAttendance(w, newRequest(t, http.MethodPost, "/scrum-meetings/s1/attendance", body, map[string]string{"id": "s1"}))
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, "ALREADY_EXISTS", decodeError(t, w).Error.Code)
}

func TestScrumHandler_MarkAttendance_Upcoming(t *testing.T) {
	mockService := new(MockScrumService)
	handler := NewScrumHandler(mockService, zap.NewNop())

	mockService.On("MarkAttendance", mock.Anything, mock.Anything).Return(nil, service.ErrMeetingUpcoming)

	w := httptest.NewRecorder()
	handler.MarkAttendance(w, newRequest(t, http.MethodPost, "/scrum-meetings/s1/attendance",
		map[string]any{"user_id": "u1", "is_present": true}, map[string]string{"id": "s1"}))

	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, "CONFLICT", decodeError(t, w).Error.Code)
}

func TestScrumHandler_UpdateAttendance(t *testing.T) {
	mockService := new(MockScrumService)
	handler := NewScrumHandler(mockService, zap.NewNop())

	mockService.On("UpdateAttendance", mock.Anything, mock.MatchedBy(func(req *request.UpdateAttendanceRequest) bool {
		return req.AttendanceId == "at1" && !req.IsPresent && req.Notes == "sick"
	})).Return(&response.AttendanceResponse{Id: "at1", Notes: "sick"}, nil)

	w := httptest.NewRecorder()
	handler.UpdateAttendance(w, newRequest(t, http.MethodPut, "/attendance/at1",
		map[string]any{"is_present": false, "notes": "sick"}, map[string]string{"id": "at1"}))

	assert.Equal(t, http.StatusOK, w.Code)
	mockService.AssertExpectations(t)
}

func TestScrumHandler_Lists(t *testing.T) {
	mockService := new(MockScrumService)
	handler := NewScrumHandler(mockService, zap.NewNop())

	mockService.On("GetScrumMeetingsOfTeam", mock.Anything, "t1").Return([]*response.ScrumMeetingResponse{}, nil)
	mockService.On("GetScrumMeetingsOfUser", mock.Anything, "m1").Return([]*response.ScrumMeetingResponse{{Id: "s1"}}, nil)
	mockService.On("GetAttendanceOfMeeting", mock.Anything, "s1").Return([]*response.AttendanceResponse{{Id: "at1"}}, nil)
	mockService.On("GetAttendanceOfUser", mock.Anything, "u1").Return([]*response.AttendanceResponse{}, nil)
	mockService.On("GetAttendanceById", mock.Anything, "at9").Return(nil, service.ErrAttendanceNotFound)
	mockService.On("GetScrumMeetingById", mock.Anything, "s1").Return(&response.ScrumMeetingResponse{Id: "s1"}, nil)

	cases := []struct {
		call   http.HandlerFunc
		id     string
		status int
	}{
		{handler.ListOfTeam, "t1", http.StatusOK},
		{handler.ListOfUser, "m1", http.StatusOK},
		{handler.ListAttendanceOfMeeting, "s1", http.StatusOK},
		{handler.ListAttendanceOfUser, "u1", http.StatusOK},
		{handler.GetAttendance, "at9", http.StatusNotFound},
		{handler.GetMeeting, "s1", http.StatusOK},
	}
	for _, tc := range cases {
		w := httptest.NewRecorder()
		tc.call(w, newRequest(t, http.MethodGet, "/", nil, map[string]string{"id": tc.id}))
		assert.Equal(t, tc.status, w.Code, tc.id)
	}

	mockService.AssertExpectations(t)
}
