package blog

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
)

func isMissingPostViolation(err error) bool {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return false
	}
	return pgErr.Code == "23503" &&
		pgErr.ConstraintName == "comments_post_id_fkey"
}
