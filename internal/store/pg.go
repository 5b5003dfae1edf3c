package store

import (
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

const (
	pgInvalidTextRepresentation = "22P02"
	pgUniqueViolation           = "23505"
)

// pgError maps driver errors onto the package sentinels. Malformed uuid text
// reads as ErrNotFound, same as the in-memory stores, where a string that
// cannot be a uuid simply keys nothing. Unique violations read as ErrConflict.
func pgError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, pgx.ErrNoRows) {
		return ErrNotFound
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgInvalidTextRepresentation:
			return ErrNotFound
		case pgUniqueViolation:
			return ErrConflict
		}
	}
	return err
}
