package response

import (
	"time"

	"github.com/niklvrr/EmToolBackend/internal/domain"
)

type WorkResponse struct {
	Id          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	AssignedBy  string    `json:"assigned_by"`
	AssignedTo  string    `json:"assigned_to"`
	TeamId      string    `json:"team_id"`
	Status      string    `json:"status"`
	Deadline    time.Time `json:"deadline"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func NewWorkResponse(w *domain.Work) *WorkResponse {
	return &WorkResponse{
		Id:          w.Id.String(),
		Title:       w.Title,
		Description: w.Description,
		AssignedBy:  w.AssignedBy.String(),
		AssignedTo:  w.AssignedTo.String(),
		TeamId:      w.TeamId.String(),
		Status:      string(w.Status),
		Deadline:    w.Deadline,
		CreatedAt:   w.CreatedAt,
		UpdatedAt:   w.UpdatedAt,
	}
}

func NewWorkResponses(works []*domain.Work) []*WorkResponse {
	return mapAll(works, NewWorkResponse)
}

type CommentResponse struct {
	Id          string    `json:"id"`
	WorkId      string    `json:"work_id"`
	UserId      string    `json:"user_id"`
	Comment     string    `json:"comment"`
	CommentedOn time.Time `json:"commented_on"`
}

func NewCommentResponse(c *domain.WorkComment) *CommentResponse {
	return &CommentResponse{
		Id:          c.Id.String(),
		WorkId:      c.WorkId.String(),
		UserId:      c.UserId.String(),
		Comment:     c.Comment,
		CommentedOn: c.CommentedOn,
	}
}

func NewCommentResponses(comments []*domain.WorkComment) []*CommentResponse {
	return mapAll(comments, NewCommentResponse)
}

type AttachmentResponse struct {
	Id        string    `json:"id"`
	WorkId    string    `json:"work_id"`
	UserId    string    `json:"user_id"`
	FileName  string    `json:"file_name"`
	FilePath  string    `json:"file_path"`
	FileType  string    `json:"file_type"`
	CreatedAt time.Time `json:"created_at"`
}

func NewAttachmentResponse(a *domain.WorkAttachment) *AttachmentResponse {
	return &AttachmentResponse{
		Id:        a.Id.String(),
		WorkId:    a.WorkId.String(),
		UserId:    a.UserId.String(),
		FileName:  a.FileName,
		FilePath:  a.FilePath,
		FileType:  a.FileType,
		CreatedAt: a.CreatedAt,
	}
}

func NewAttachmentResponses(items []*domain.WorkAttachment) []*AttachmentResponse {
	return mapAll(items, NewAttachmentResponse)
}
