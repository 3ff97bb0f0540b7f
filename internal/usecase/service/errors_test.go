package service

import (
	"errors"
	"testing"

	"github.com/niklvrr/EmToolBackend/internal/infrastructure/repository"
	"github.com/stretchr/testify/assert"
)

func TestDomainError_IsAndUnwrap(t *testing.T) {
	cause := errors.New("boom")
	err := WrapError(ErrUserNotFound, cause)

	assert.ErrorIs(t, err, ErrUserNotFound)
	assert.ErrorIs(t, err, cause)
	assert.NotErrorIs(t, err, ErrTeamNotFound)
	assert.Equal(t, "user not found: boom", err.Error())
}

func TestMapRepoError(t *testing.T) {
	opErr := errors.New("op error")

	tests := []struct {
		name string
		err  error
		code string
	}{
		{name: "not found", err: repository.ErrNotFound, code: CodeNotFound},
		{name: "exists", err: repository.ErrAlreadyExists, code: CodeAlreadyExists},
		{name: "invalid", err: repository.ErrInvalidInput, code: CodeInvalidInput},
		{name: "in use", err: repository.ErrInUse, code: CodeInUse},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := mapRepoError(tt.err, opErr, ErrTeamNotFound, ErrTeamExists)
			assertCode(t, err, tt.code)
		})
	}
}

func TestMapRepoError_Unknown(t *testing.T) {
	opErr := errors.New("op error")
	cause := errors.New("connection reset")

	err := mapRepoError(cause, opErr, ErrTeamNotFound, nil)

	var domainErr *DomainError
	assert.False(t, errors.As(err, &domainErr))
	assert.ErrorIs(t, err, opErr)
	assert.ErrorIs(t, err, cause)
}

func TestMapRepoError_NotFoundWithoutMapping(t *testing.T) {
	opErr := errors.New("op error")

	err := mapRepoError(repository.ErrNotFound, opErr, nil, nil)

	assert.ErrorIs(t, err, opErr)
}

func TestInvalidInput_KeepsReason(t *testing.T) {
	err := invalidInput(errors.New("name: failed required"))

	assertCode(t, err, CodeInvalidInput)
	assert.Contains(t, err.Error(), "name: failed required")
}
