package response

import (
	"time"

	"github.com/niklvrr/EmToolBackend/internal/domain"
)

type PullRequestResponse struct {
	Id                 string    `json:"id"`
	WorkId             string    `json:"work_id"`
	TeamId             string    `json:"team_id"`
	CreatedById        string    `json:"created_by_id"`
	Link               string    `json:"link"`
	Description        string    `json:"description"`
	AttachmentPath     string    `json:"attachment_path,omitempty"`
	Status             string    `json:"status"`
	IsReadyForApproval bool      `json:"is_ready_for_approval"`
	CreatedAt          time.Time `json:"created_at"`
	UpdatedAt          time.Time `json:"updated_at"`
}

func NewPullRequestResponse(pr *domain.PullRequest) *PullRequestResponse {
	return &PullRequestResponse{
		Id:                 pr.Id.String(),
		WorkId:             pr.WorkId.String(),
		TeamId:             pr.TeamId.String(),
		CreatedById:        pr.CreatedById.String(),
		Link:               pr.Link,
		Description:        pr.Description,
		AttachmentPath:     pr.AttachmentPath,
		Status:             string(pr.Status),
		IsReadyForApproval: pr.IsReadyForApproval,
		CreatedAt:          pr.CreatedAt,
		UpdatedAt:          pr.UpdatedAt,
	}
}

func NewPullRequestResponses(prs []*domain.PullRequest) []*PullRequestResponse {
	return mapAll(prs, NewPullRequestResponse)
}

type ApprovalStatusResponse struct {
	PullRequestId string  `json:"pull_request_id"`
	Status        string  `json:"status"`
	Approved      int     `json:"approved"`
	Rejected      int     `json:"rejected"`
	Total         int     `json:"total"`
	Ratio         float64 `json:"ratio"`
	Eligible      bool    `json:"eligible"`
}

func NewApprovalStatusResponse(pr *domain.PullRequest, s domain.ApprovalSummary) *ApprovalStatusResponse {
	return &ApprovalStatusResponse{
		PullRequestId: pr.Id.String(),
		Status:        string(pr.Status),
		Approved:      s.Approved,
		Rejected:      s.Rejected,
		Total:         s.Total,
		Ratio:         s.Ratio,
		Eligible:      s.Eligible,
	}
}

type ReviewResponse struct {
	Id            string    `json:"id"`
	PullRequestId string    `json:"pull_request_id"`
	ReviewerId    string    `json:"reviewer_id"`
	Status        string    `json:"status"`
	Comments      string    `json:"comments"`
	ReviewedAt    time.Time `json:"reviewed_at"`
}

func NewReviewResponse(rv *domain.Review) *ReviewResponse {
	return &ReviewResponse{
		Id:            rv.Id.String(),
		PullRequestId: rv.PullRequestId.String(),
		ReviewerId:    rv.ReviewerId.String(),
		Status:        string(rv.Status),
		Comments:      rv.Comments,
		ReviewedAt:    rv.ReviewedAt,
	}
}

func NewReviewResponses(reviews []*domain.Review) []*ReviewResponse {
	return mapAll(reviews, NewReviewResponse)
}
