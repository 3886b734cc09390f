package database

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"

	"actualize-backend/internal/apperror"
)

// Postgres error codes the API distinguishes
const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
)

// TranslateError converts gorm and postgres errors into coded errors.
// notFound is the message used when the record does not exist.
func TranslateError(err error, notFound string) error {
	if err == nil {
		return nil
	}
	if _, ok := apperror.As(err); ok {
		return err
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return apperror.NotFound(notFound)
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return apperror.NewError(apperror.CodeInternal, "Database request timed out", err)
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgUniqueViolation:
			return apperror.NewError(apperror.CodeConflict, "Record already exists", err)
		case pgForeignKeyViolation:
			return apperror.NewError(apperror.CodeNotFound, "Referenced record not found", err)
		}
	}
	return apperror.NewError(apperror.CodeInternal, "Database error", err)
}
