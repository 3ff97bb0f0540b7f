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

type MockTeamService struct {
	mock.Mock
}

func (m *MockTeamService) CreateTeam(ctx context.Context, req *request.CreateTeamRequest) (*response.TeamResponse, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*response.TeamResponse), args.Error(1)
}

func (m *MockTeamService) GetTeamById(ctx context.Context, rawId string) (*response.TeamResponse, error) {
	args := m.Called(ctx, rawId)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*response.TeamResponse), args.Error(1)
}

func (m *MockTeamService) GetTeamsByName(ctx context.Context, name string) ([]*response.TeamResponse, error) {
	args := m.Called(ctx, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*response.TeamResponse), args.Error(1)
}

func (m *MockTeamService) GetTeamsOfManager(ctx context.Context, rawManagerId string) ([]*response.TeamResponse, error) {
	args := m.Called(ctx, rawManagerId)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*response.TeamResponse), args.Error(1)
}

func (m *MockTeamService) UpdateTeam(ctx context.Context, req *request.UpdateTeamRequest) (*response.TeamResponse, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*response.TeamResponse), args.Error(1)
}

func (m *MockTeamService) DeleteTeam(ctx context.Context, rawId string) error {
	args := m.Called(ctx, rawId)
	return args.Error(0)
}

func (m *MockTeamService) AddTeamMember(ctx context.Context, req *request.AddTeamMemberRequest) (*response.TeamMemberResponse, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*response.TeamMemberResponse), args.Error(1)
}

func (m *MockTeamService) GetTeamMembers(ctx context.Context, rawTeamId string) ([]*response.TeamMemberResponse, error) {
	args := m.Called(ctx, rawTeamId)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*response.TeamMemberResponse), args.Error(1)
}

func (m *MockTeamService) DeleteTeamMember(ctx context.Context, rawMemberId string) error {
	args := m.Called(ctx, rawMemberId)
	return args.Error(0)
}

func TestTeamHandler_CreateTeam_Success(t *testing.T) {
	mockService := new(MockTeamService)
	handler := NewTeamHandler(mockService, zap.NewNop())

	mockService.On("CreateTeam", mock.Anything, mock.MatchedBy(func(req *request.CreateTeamRequest) bool {
		return req.Name == "core" && req.ManagerId == "m1"
	})).Return(&response.TeamResponse{Id: "t1", Name: "core", ManagerId: "m1"}, nil)

	w := httptest.NewRecorder()
	handler.CreateTeam(w, newRequest(t, http.MethodPost, "/teams", map[string]string{"name": "core", "manager_id": "m1"}, nil))

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Contains(t, w.Body.String(), `"id":"t1"`)
	mockService.AssertExpectations(t)
}

func TestTeamHandler_CreateTeam_NotManager(t *testing.T) {
	mockService := new(MockTeamService)
	handler := NewTeamHandler(mockService, zap.NewNop())

	mockService.On("CreateTeam", mock.Anything, mock.Anything).Return(nil, service.ErrNotManager)

	w := httptest.NewRecorder()
	handler.CreateTeam(w, newRequest(t, http.MethodPost, "/teams", map[string]string{"name": "core", "manager_id": "u1"}, nil))

	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestTeamHandler_ListTeams_Query(t *testing.T) {
	mockService := new(MockTeamService)
	handler := NewTeamHandler(mockService, zap.NewNop())

	mockService.On("GetTeamsOfManager", mock.Anything, "m1").Return([]*response.TeamResponse{{Id: "t1"}}, nil)
	mockService.On("GetTeamsByName", mock.Anything, "co").Return([]*response.TeamResponse{}, nil)

	w := httptest.NewRecorder()
	handler.ListTeams(w, newRequest(t, http.MethodGet, "/teams?manager_id=m1&name=ignored", nil, nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"id":"t1"`)

	w = httptest.NewRecorder()
	handler.ListTeams(w, newRequest(t, http.MethodGet, "/teams?name=co", nil, nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `[]`, w.Body.String())

	mockService.AssertExpectations(t)
	mockService.AssertNotCalled(t, "GetTeamsByName", mock.Anything, "ignored")
}

func TestTeamHandler_UpdateTeam_IdFromPath(t *testing.T) {
	mockService := new(MockTeamService)
	handler := NewTeamHandler(mockService, zap.NewNop())

	mockService.On("UpdateTeam", mock.Anything, mock.MatchedBy(func(req *request.UpdateTeamRequest) bool {
		return req.TeamId == "t1" && req.Name == "platform"
	})).Return(nil, service.ErrNotTeamManager)

	w := httptest.NewRecorder()
	handler.UpdateTeam(w, newRequest(t, http.MethodPut, "/teams/t1",
		map[string]string{"name": "platform", "manager_id": "m2"}, map[string]string{"id": "t1"}))

	assert.Equal(t, http.StatusForbidden, w.Code)
	mockService.AssertExpectations(t)
}

func TestTeamHandler_DeleteTeam_InUse(t *testing.T) {
	mockService := new(MockTeamService)
	handler := NewTeamHandler(mockService, zap.NewNop())

	mockService.On("DeleteTeam", mock.Anything, "t1").Return(service.ErrInUse)

	w := httptest.NewRecorder()
	handler.DeleteTeam(w, newRequest(t, http.MethodDelete, "/teams/t1", nil, map[string]string{"id": "t1"}))

	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, "IN_USE", decodeError(t, w).Error.Code)
}

func TestTeamHandler_AddMember(t *testing.T) {
	mockService := new(MockTeamService)
	handler := NewTeamHandler(mockService, zap.NewNop())

	mockService.On("AddTeamMember", mock.Anything, mock.MatchedBy(func(req *request.AddTeamMemberRequest) bool {
		return req.TeamId == "t1" && req.UserId == "u1" && req.AddedById == "m1"
	})).Return(&response.TeamMemberResponse{Id: "tm1", TeamId: "t1", UserId: "u1"}, nil).Once()
	mockService.On("AddTeamMember", mock.Anything, mock.Anything).Return(nil, service.ErrMemberExists)

	body := map[string]string{"user_id": "u1", "added_by_id": "m1"}

	w := httptest.NewRecorder()
	handler.AddMember(w, newRequest(t, http.MethodPost, "/teams/t1/members", body, map[string]string{"id": "t1"}))
	assert.Equal(t, http.StatusCreated, w.Code)

	w = httptest.NewRecorder()
	handler.AddMember(w, newRequest(t, http.MethodPost, "/teams/t1/members", body, map[string]string{"id": "t1"}))
	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestTeamHandler_Members(t *testing.T) {
	mockService := new(MockTeamService)
	handler := NewTeamHandler(mockService, zap.NewNop())

	mockService.On("GetTeamMembers", mock.Anything, "t1").Return([]*response.TeamMemberResponse{{Id: "tm1"}}, nil)
	mockService.On("DeleteTeamMember", mock.Anything, "tm1").Return(nil)

	w := httptest.NewRecorder()
	handler.ListMembers(w, newRequest(t, http.MethodGet, "/teams/t1/members", nil, map[string]string{"id": "t1"}))
	assert.Equal(t, http.StatusOK, w.Code)

	w = httptest.NewRecorder()
	handler.DeleteMember(w, newRequest(t, http.MethodDelete, "/team-members/tm1", nil, map[string]string{"id": "tm1"}))
	assert.Equal(t, http.StatusNoContent, w.Code)

	mockService.AssertExpectations(t)
}
