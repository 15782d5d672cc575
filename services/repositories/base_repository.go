package repositories

import (
	"context"
	"errors"
	"strings"

	log "github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/prophesy-fun/prophesy_api/shared"
)

// BaseRepository provides common database functionality
type BaseRepository struct {
	db *gorm.DB
}

func NewBaseRepository(db *gorm.DB) BaseRepository {
	return BaseRepository{db: db}
}

// DB returns the underlying database connection
func (r *BaseRepository) DB() *gorm.DB {
	return r.db
}

// Transaction runs fn in a transaction bound to ctx. Errors from fn are
// returned as they are; errors from commit are translated.
func (r *BaseRepository) Transaction(ctx context.Context, fn func(tx *gorm.DB) error) error {
	err := r.db.WithContext(ctx).Transaction(fn)
	if err == nil {
		return nil
	}
	if _, ok := shared.GetAppError(err); ok {
		return err
	}
	return HandleError(err, "Database transaction failed")
}

// HandleError translates a gorm or driver error into an AppError. The
// message is what callers see for INTERNAL failures; the cause is only
// logged.
func HandleError(err error, message string) error {
	if err == nil {
		return nil
	}
	if _, ok := shared.GetAppError(err); ok {
		return err
	}

	var appErr *shared.AppError
	var errorType string

	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		errorType = "NOT_FOUND"
		appErr = shared.NewNotFoundError(err, "Record not found")
	case errors.Is(err, gorm.ErrDuplicatedKey):
		errorType = "CONFLICT"
		appErr = shared.NewConflictError(err, "Record already exists")
	case errors.Is(err, gorm.ErrForeignKeyViolated):
		errorType = "FOREIGN_KEY_VIOLATION"
		appErr = shared.NewBadRequestError(err, "Referenced record does not exist")
	case isUniqueViolation(err):
		errorType = "UNIQUE_CONSTRAINT"
		appErr = shared.NewConflictError(err, "Record already exists")
	default:
		errorType = "INTERNAL_ERROR"
		appErr = shared.NewInternalError(err, message)
	}

	logEntry := log.WithFields(log.Fields{
		"status_code": appErr.StatusCode,
		"error_type":  errorType,
		"error":       err.Error(),
	})

	switch {
	case appErr.StatusCode >= 500:
		logEntry.Error("Database error occurred")
	case appErr.Kind == shared.KindNotFound:
		logEntry.Debug("Record not found")
	default:
		logEntry.Warn("Database operation failed")
	}

	return appErr
}

// isUniqueViolation covers drivers that do not translate their errors.
func isUniqueViolation(err error) bool {
	msg := err.Error()
	return strings.Contains(msg, "duplicate key value violates unique constraint") ||
		strings.Contains(msg, "UNIQUE constraint failed")
}
