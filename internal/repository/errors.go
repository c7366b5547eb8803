package repository

import (
	"database/sql"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

var (
	ErrJobNotFound         = errors.New("job not found")
	ErrCVNotFound          = errors.New("cv not found")
	ErrRequirementNotFound = errors.New("requirement not found")
	ErrDuplicateEmail      = errors.New("email already registered")
)

const (
	SortLatest = "latest"
	SortOldest = "oldest"
)

func isNoRows(err error) bool {
	return errors.Is(err, sql.ErrNoRows) || errors.Is(err, pgx.ErrNoRows)
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}

func orderBy(sort string) string {
	if sort == SortOldest {
		return "created_at ASC, id ASC"
	}
	return "created_at DESC, id DESC"
}

func clampPage(limit, offset, def, max int) (int, int) {
	if limit <= 0 {
		limit = def
	}
	if limit > max {
		limit = max
	}
	if offset < 0 {
		offset = 0
	}
	return limit, offset
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
