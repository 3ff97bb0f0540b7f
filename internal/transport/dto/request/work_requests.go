package request

import "time"

type CreateWorkRequest struct {
	Title       string    `json:"title" validate:"required,max=255"`
	Description string    `json:"description" validate:"required"`
	AssignedBy  string    `json:"assigned_by" validate:"required,uuid"`
	AssignedTo  string    `json:"assigned_to" validate:"required,uuid"`
	TeamId      string    `json:"team_id" validate:"required,uuid"`
	Status      string    `json:"status" validate:"required,max=20"`
	Deadline    time.Time `json:"deadline" validate:"required"`
}

// UpdateWorkRequest: nil поля не меняются.
type UpdateWorkRequest struct {
	WorkId      string     `json:"-" validate:"required,uuid"`
	ActorId     string     `json:"actor_id" validate:"required,uuid"`
	Title       *string    `json:"title,omitempty" validate:"omitempty,min=1,max=255"`
	Description *string    `json:"description,omitempty" validate:"omitempty,min=1"`
	AssignedTo  *string    `json:"assigned_to,omitempty" validate:"omitempty,uuid"`
	Status      *string    `json:"status,omitempty" validate:"omitempty,max=20"`
	Deadline    *time.Time `json:"deadline,omitempty"`
}

type AddCommentRequest struct {
	WorkId  string `json:"-" validate:"required,uuid"`
	UserId  string `json:"user_id" validate:"required,uuid"`
	Comment string `json:"comment" validate:"required,max=2000"`
}

type EditCommentRequest struct {
	CommentId string `json:"-" validate:"required,uuid"`
	UserId    string `json:"user_id" validate:"required,uuid"`
	Comment   string `json:"comment" validate:"required,max=2000"`
}

type UploadAttachmentRequest struct {
	WorkId   string `json:"-" validate:"required,uuid"`
	UserId   string `json:"user_id" validate:"required,uuid"`
	FileName string `json:"file_name" validate:"required,max=255"`
	FilePath string `json:"file_path" validate:"required"`
	FileType string `json:"file_type" validate:"required,max=100"`
}

type EditAttachmentRequest struct {
	AttachmentId string `json:"-" validate:"required,uuid"`
	UserId       string `json:"user_id" validate:"required,uuid"`
	FileName     string `json:"file_name" validate:"required,max=255"`
	FilePath     string `json:"file_path" validate:"required"`
	FileType     string `json:"file_type" validate:"required,max=100"`
}
