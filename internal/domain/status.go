package domain

import (
	"errors"
	"strings"
)

const (
	RoleManager  = "Manager"
	RoleEmployee = "Employee"
)

var (
	ErrUnknownRole         = errors.New("unknown role")
	ErrUnknownWorkStatus   = errors.New("unknown work status")
	ErrUnknownPrStatus     = errors.New("unknown pull request status")
	ErrUnknownReviewStatus = errors.New("unknown review status")
)

// ParseRole принимает имя роли в любом регистре и возвращает каноничное.
func ParseRole(s string) (string, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "manager":
		return RoleManager, nil
	case "employee":
		return RoleEmployee, nil
	}
	return "", ErrUnknownRole
}

type WorkStatus string

const (
	WorkToDo       WorkStatus = "ToDo"
	WorkInProgress WorkStatus = "InProgress"
	WorkInReview   WorkStatus = "InReview"
	WorkCompleted  WorkStatus = "Completed"
)

var workStatuses = []WorkStatus{WorkToDo, WorkInProgress, WorkInReview, WorkCompleted}

func ParseWorkStatus(s string) (WorkStatus, error) {
	s = strings.TrimSpace(s)
	for _, st := range workStatuses {
		if strings.EqualFold(string(st), s) {
			return st, nil
		}
	}
	return "", ErrUnknownWorkStatus
}

type PrStatus string

const (
	PrPending  PrStatus = "Pending"
	PrApproved PrStatus = "Approved"
	PrRejected PrStatus = "Rejected"
)

func ParsePrStatus(s string) (PrStatus, error) {
	s = strings.TrimSpace(s)
	for _, st := range []PrStatus{PrPending, PrApproved, PrRejected} {
		if strings.EqualFold(string(st), s) {
			return st, nil
		}
	}
	return "", ErrUnknownPrStatus
}

// IsFinal: из Approved и Rejected переходов нет.
func (s PrStatus) IsFinal() bool {
	return s == PrApproved || s == PrRejected
}

type ReviewStatus string

const (
	ReviewApproved ReviewStatus = "Approved"
	ReviewRejected ReviewStatus = "Rejected"
)

func ParseReviewStatus(s string) (ReviewStatus, error) {
	s = strings.TrimSpace(s)
	for _, st := range []ReviewStatus{ReviewApproved, ReviewRejected} {
		if strings.EqualFold(string(st), s) {
			return st, nil
		}
	}
	return "", ErrUnknownReviewStatus
}
