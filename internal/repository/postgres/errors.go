package postgres

import (
	"database/sql"
	"errors"

	"github.com/lib/pq"

	"boothly/internal/domain"
)

// Postgres SQLSTATE codes.
const (
	uniqueViolation           = "23505"
	invalidTextRepresentation = "22P02"
)

func hasCode(err error, code string) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && string(pqErr.Code) == code
}

// lookupErr maps a single-row lookup error. No row, and a key that is not a
// valid uuid, both mean ErrNotFound.
func lookupErr(err error) error {
	if errors.Is(err, sql.ErrNoRows) || hasCode(err, invalidTextRepresentation) {
		return domain.ErrNotFound
	}
	return err
}
