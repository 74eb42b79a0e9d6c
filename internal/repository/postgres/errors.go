package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5/pgconn"

	"jobly/internal/common"
)

const uniqueViolation = "23505"

// isUniqueViolation catches inserts that lose the race after a duplicate check.
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolation
}

// storeError wraps a driver fault. A request that ran out of time is
// reported as a timeout so it is not mistaken for a broken store.
func storeError(message string, err error) error {
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return common.NewError(common.CodeTimeout, message+": request timed out", err)
	}
	return common.NewError(common.CodeInternal, message, err)
}

type rowScanner interface {
	Scan(dest ...any) error
}
