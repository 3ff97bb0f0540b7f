package repository

import (
	"github.com/jackc/pgx/v5"
)

type rowScanner interface {
	Scan(dest ...any) error
}

// collect читает все строки через scan и закрывает rows. Пустой результат это пустой слайс, не nil.
func collect[T any](rows pgx.Rows, scan func(rowScanner) (*T, error)) ([]*T, error) {
	defer rows.Close()

	out := make([]*T, 0)
	for rows.Next() {
		item, err := scan(rows)
		if err != nil {
			return nil, handleDBError(err)
		}
		out = append(out, item)
	}
	if err := rows.Err(); err != nil {
		return nil, handleDBError(err)
	}
	return out, nil
}
