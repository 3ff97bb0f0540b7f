package service

import (
	"errors"
	"fmt"

	"github.com/niklvrr/EmToolBackend/internal/infrastructure/repository"
)

const (
	CodeNotFound      = "NOT_FOUND"
	CodeInvalidInput  = "INVALID_INPUT"
	CodeAlreadyExists = "ALREADY_EXISTS"
	CodeForbidden     = "FORBIDDEN"
	CodeConflict      = "CONFLICT"
	CodeInUse         = "IN_USE"
	CodeUnauthorized  = "UNAUTHORIZED"
)

type DomainError struct {
	Code    string
	Message string
	Err     error
}

func WrapError(domainError *DomainError, err error) error {
	return &DomainError{
		Code:    domainError.Code,
		Message: domainError.Message,
		Err:     err,
	}
}

func (e *DomainError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *DomainError) Unwrap() error {
	return e.Err
}

// Is сравнивает по коду и сообщению, поэтому errors.Is(err, ErrUserNotFound) работает и для обернутых ошибок.
func (e *DomainError) Is(target error) bool {
	t, ok := target.(*DomainError)
	if !ok {
		return false
	}
	return e.Code == t.Code && e.Message == t.Message
}

// invalidInput оборачивает причину, Error() вернет ее вместе с сообщением.
func invalidInput(err error) error {
	return WrapError(ErrInvalidInput, err)
}

// mapRepoError переводит ошибки репозитория в доменные. notFound и exists могут быть nil,
// тогда соответствующая ошибка считается неизвестной и оборачивается opErr.
func mapRepoError(err error, opErr error, notFound, exists *DomainError) error {
	switch {
	case errors.Is(err, repository.ErrNotFound) && notFound != nil:
		return WrapError(notFound, err)
	case errors.Is(err, repository.ErrAlreadyExists) && exists != nil:
		return WrapError(exists, err)
	case errors.Is(err, repository.ErrInvalidInput):
		return WrapError(ErrInvalidInput, err)
	case errors.Is(err, repository.ErrInUse):
		return WrapError(ErrInUse, err)
	}
	// Неизвестная ошибка
	return fmt.Errorf("%w: %w", opErr, err)
}

var (
	// NOT_FOUND
	ErrRoleNotFound         = &DomainError{Code: CodeNotFound, Message: "role not found"}
	ErrUserNotFound         = &DomainError{Code: CodeNotFound, Message: "user not found"}
	ErrTeamNotFound         = &DomainError{Code: CodeNotFound, Message: "team not found"}
	ErrMemberNotFound       = &DomainError{Code: CodeNotFound, Message: "team member not found"}
	ErrWorkNotFound         = &DomainError{Code: CodeNotFound, Message: "task not found"}
	ErrCommentNotFound      = &DomainError{Code: CodeNotFound, Message: "comment not found"}
	ErrAttachmentNotFound   = &DomainError{Code: CodeNotFound, Message: "attachment not found"}
	ErrPrNotFound           = &DomainError{Code: CodeNotFound, Message: "pull request not found"}
	ErrReviewNotFound       = &DomainError{Code: CodeNotFound, Message: "review not found"}
	ErrNotificationNotFound = &DomainError{Code: CodeNotFound, Message: "notification not found"}
	ErrMeetingNotFound      = &DomainError{Code: CodeNotFound, Message: "scrum meeting not found"}
	ErrAttendanceNotFound   = &DomainError{Code: CodeNotFound, Message: "attendance record not found"}

	// ALREADY_EXISTS
	ErrRoleExists       = &DomainError{Code: CodeAlreadyExists, Message: "role already exists"}
	ErrUserExists       = &DomainError{Code: CodeAlreadyExists, Message: "username or email already taken"}
	ErrTeamExists       = &DomainError{Code: CodeAlreadyExists, Message: "manager already has a team with this name"}
	ErrMemberExists     = &DomainError{Code: CodeAlreadyExists, Message: "user is already a member of the team"}
	ErrWorkExists       = &DomainError{Code: CodeAlreadyExists, Message: "task with this title already exists in the team"}
	ErrPendingPrExists  = &DomainError{Code: CodeAlreadyExists, Message: "task already has a pending pull request"}
	ErrReviewExists     = &DomainError{Code: CodeAlreadyExists, Message: "reviewer already reviewed this pull request"}
	ErrAttendanceMarked = &DomainError{Code: CodeAlreadyExists, Message: "attendance already marked"}

	// FORBIDDEN
	ErrNotManager       = &DomainError{Code: CodeForbidden, Message: "user is not a manager"}
	ErrNotEmployee      = &DomainError{Code: CodeForbidden, Message: "user is not an employee"}
	ErrNotTeamManager   = &DomainError{Code: CodeForbidden, Message: "only the team's manager can do this"}
	ErrNotTeamMember    = &DomainError{Code: CodeForbidden, Message: "user is not a member of the team"}
	ErrNotAssignee      = &DomainError{Code: CodeForbidden, Message: "only the task assignee can do this"}
	ErrNotAuthor        = &DomainError{Code: CodeForbidden, Message: "only the author can do this"}
	ErrStatusOnly       = &DomainError{Code: CodeForbidden, Message: "employees may only change the status of their own tasks"}
	ErrNotAssigningMgr  = &DomainError{Code: CodeForbidden, Message: "only the assigning manager can change pull request status"}
	ErrSelfReview       = &DomainError{Code: CodeForbidden, Message: "author cannot review own pull request"}
	ErrNotMeetingAuthor = &DomainError{Code: CodeForbidden, Message: "only the manager who created the meeting can update it"}

	// CONFLICT
	ErrPrClosed        = &DomainError{Code: CodeConflict, Message: "pull request is already approved or rejected"}
	ErrPrNotEligible   = &DomainError{Code: CodeConflict, Message: "pull request does not have enough approving reviews"}
	ErrMeetingUpcoming = &DomainError{Code: CodeConflict, Message: "cannot mark attendance for a future meeting"}

	// IN_USE
	ErrInUse = &DomainError{Code: CodeInUse, Message: "resource is referenced by other records"}

	// UNAUTHORIZED
	ErrInvalidCredentials = &DomainError{Code: CodeUnauthorized, Message: "invalid username or password"}

	// INVALID_INPUT
	ErrInvalidInput = &DomainError{Code: CodeInvalidInput, Message: "invalid input"}
)
