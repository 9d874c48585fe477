package database

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

var (
	ErrNotNullViolation    = errors.New("database: required field missing")
	ErrUniqueViolation     = errors.New("database: value already exists")
	ErrForeignKeyViolation = errors.New("database: referenced row does not exist")
)

// classify maps engine-specific constraint errors onto the package
// sentinels. Anything unrecognized is returned unchanged and treated by
// callers as a generic failure.
func classify(err error) error {
	if err == nil {
		return nil
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case "23502":
			return ErrNotNullViolation
		case "23505":
			return ErrUniqueViolation
		case "23503":
			return ErrForeignKeyViolation
		}
	}

	// gorm translates driver errors when TranslateError is enabled.
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return ErrUniqueViolation
	}
	if errors.Is(err, gorm.ErrForeignKeyViolated) {
		return ErrForeignKeyViolation
	}

	return err
}
