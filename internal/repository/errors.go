package repository

import (
	"errors"
	"fmt"
	"strings"

	"folio/internal/models"
	"folio/internal/observability"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/mattn/go-sqlite3"
	"gorm.io/gorm"
)

// pgUniqueViolation is the Postgres SQLSTATE for unique_violation.
const pgUniqueViolation = "23505"

// isUniqueViolation recognizes duplicate key errors from Postgres, SQLite
// and GORM's translated form.
func isUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == pgUniqueViolation
	}

	var sqliteErr sqlite3.Error
	if errors.As(err, &sqliteErr) {
		return sqliteErr.ExtendedCode == sqlite3.ErrConstraintUnique ||
			sqliteErr.ExtendedCode == sqlite3.ErrConstraintPrimaryKey
	}

	msg := err.Error()
	return strings.Contains(msg, "UNIQUE constraint failed") ||
		strings.Contains(msg, "duplicate key value violates unique constraint")
}

// storageError maps a driver error to the application taxonomy. Unique
// violations become CONFLICT on field; everything else is INTERNAL_ERROR.
func storageError(operation, resource, field string, err error) error {
	if isUniqueViolation(err) {
		observability.StorageErrors.WithLabelValues(operation, "conflict").Inc()
		return models.NewConflictError(resource, field, err)
	}
	observability.StorageErrors.WithLabelValues(operation, "fault").Inc()
	return models.NewInternalError(fmt.Errorf("%s: %w", operation, err))
}
