package repository

import (
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

var (
	ErrNotFound      = errors.New("resource not found")
	ErrAlreadyExists = errors.New("resource already exists")
	ErrInvalidInput  = errors.New("invalid input")
	// ErrInUse удаление запрещено ссылками из других таблиц (ON DELETE RESTRICT)
	ErrInUse = errors.New("resource is referenced by other records")
	// ErrConflict условное обновление не нашло строку в ожидаемом состоянии
	ErrConflict = errors.New("resource state changed")
)

const (
	uniqueViolation     = "23505"
	foreignKeyViolation = "23503"
	notNullViolation    = "23502"
	checkViolation      = "23514"
	restrictViolation   = "23001"
)

func handleDBError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, pgx.ErrNoRows) {
		return ErrNotFound
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case uniqueViolation:
			return ErrAlreadyExists
		case foreignKeyViolation, notNullViolation, checkViolation:
			return ErrInvalidInput
		case restrictViolation:
			return ErrInUse
		}
	}
	return err
}

// handleDeleteError: при DELETE нарушение внешнего ключа значит, что на строку еще ссылаются.
func handleDeleteError(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == foreignKeyViolation {
		return ErrInUse
	}
	return handleDBError(err)
}
