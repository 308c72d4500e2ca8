package repository

import (
	"context"
	"errors"
	"time"

	logger "github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"posapi/src/database"
	"posapi/src/model"
)

// ErrorLogRepository persists the full-detail error records that back
// client-facing correlation IDs.
type ErrorLogRepository struct {
	db *gorm.DB
}

// NewErrorLogRepository creates a new repository instance using the main database.
func NewErrorLogRepository() *ErrorLogRepository {
	logger.WithField("component", "ErrorLogRepository").
		Debug("Creating new ErrorLogRepository with MainDB")

	return &ErrorLogRepository{
		db: database.MainDB,
	}
}

// WithDB allows overriding the underlying *gorm.DB instance.
func (r *ErrorLogRepository) WithDB(db *gorm.DB) *ErrorLogRepository {
	return &ErrorLogRepository{db: db}
}

// Create inserts an error record.
func (r *ErrorLogRepository) Create(ctx context.Context, record *model.ErrorLog) error {
	if err := r.db.WithContext(ctx).Create(record).Error; err != nil {
		logger.WithFields(map[string]interface{}{
			"repo":     "ErrorLogRepository",
			"op":       "Create",
			"error_id": record.ErrorID,
		}).WithError(err).Error("Failed to persist error record")
		return err
	}
	return nil
}

// FindByErrorID fetches the record behind a correlation ID.
// Returns (nil, nil) if no record matches.
func (r *ErrorLogRepository) FindByErrorID(ctx context.Context, errorID string) (*model.ErrorLog, error) {
	var record model.ErrorLog
	err := r.db.WithContext(ctx).Where("error_id = ?", errorID).First(&record).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &record, nil
}

// DeleteOlderThan purges records created before the cutoff and returns
// how many rows were removed.
func (r *ErrorLogRepository) DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error) {
	result := r.db.WithContext(ctx).
		Where("created_at < ?", cutoff).
		Delete(&model.ErrorLog{})
	if result.Error != nil {
		logger.WithFields(map[string]interface{}{
			"repo": "ErrorLogRepository",
			"op":   "DeleteOlderThan",
		}).WithError(result.Error).Error("Failed to purge error records")
		return 0, result.Error
	}
	return result.RowsAffected, nil
}
