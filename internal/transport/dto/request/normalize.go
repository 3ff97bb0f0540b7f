package request

import "strings"

// normalizer приводит поля запроса к виду, в котором они сохраняются.
// Validate вызывает Normalize до проверки тегов.
type normalizer interface {
	Normalize()
}

func trim(fields ...*string) {
	for _, f := range fields {
		if f != nil {
			*f = strings.TrimSpace(*f)
		}
	}
}

func (r *CreateRoleRequest) Normalize() { trim(&r.Name) }

func (r *RegisterUserRequest) Normalize() {
	trim(&r.FirstName, &r.LastName, &r.Username)
	r.Email = strings.ToLower(strings.TrimSpace(r.Email))
}

func (r *UpdateUserRequest) Normalize() {
	trim(&r.UserId, &r.FirstName, &r.LastName, &r.Username)
	r.Email = strings.ToLower(strings.TrimSpace(r.Email))
}

func (r *LoginRequest) Normalize() { trim(&r.Username) }

func (r *CreateTeamRequest) Normalize() { trim(&r.Name, &r.ManagerId) }

func (r *UpdateTeamRequest) Normalize() { trim(&r.TeamId, &r.Name, &r.ManagerId) }

func (r *CreateWorkRequest) Normalize() {
	trim(&r.Title, &r.Description, &r.AssignedBy, &r.AssignedTo, &r.TeamId, &r.Status)
}

// Для UpdateWorkRequest пустая после обрезки строка не пропускается omitempty, т.к. указатель не nil
func (r *UpdateWorkRequest) Normalize() {
	trim(&r.WorkId, &r.ActorId, r.Title, r.Description, r.AssignedTo, r.Status)
}

func (r *AddCommentRequest) Normalize() { trim(&r.Comment) }

func (r *EditCommentRequest) Normalize() { trim(&r.Comment) }

func (r *UploadAttachmentRequest) Normalize() { trim(&r.FileName, &r.FilePath, &r.FileType) }

func (r *EditAttachmentRequest) Normalize() { trim(&r.FileName, &r.FilePath, &r.FileType) }

func (r *CreatePrRequest) Normalize() { trim(&r.Link) }

func (r *CreateScrumMeetingRequest) Normalize() { trim(&r.Agenda, &r.Link) }

func (r *UpdateScrumMeetingRequest) Normalize() { trim(&r.Agenda, &r.Link) }

func (r *CreateNotificationRequest) Normalize() { trim(&r.Message, &r.Type) }
