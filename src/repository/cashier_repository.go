package repository

import (
	"context"
	"errors"

	logger "github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"posapi/src/database"
	"posapi/src/model"
)

// CashierRepository handles lookups of terminal operators.
type CashierRepository struct {
	db *gorm.DB
}

// NewCashierRepository creates a new repository instance using the main database.
func NewCashierRepository() *CashierRepository {
	logger.WithField("component", "CashierRepository").
		Debug("Creating new CashierRepository with MainDB")

	return &CashierRepository{
		db: database.MainDB,
	}
}

// WithDB allows overriding the underlying *gorm.DB instance.
func (r *CashierRepository) WithDB(db *gorm.DB) *CashierRepository {
	return &CashierRepository{db: db}
}

// FindByUsername fetches a cashier by username.
// Returns (nil, nil) if no such cashier exists.
func (r *CashierRepository) FindByUsername(ctx context.Context, username string) (*model.Cashier, error) {
	var cashier model.Cashier
	err := r.db.WithContext(ctx).Where("username = ?", username).First(&cashier).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		logger.WithFields(map[string]interface{}{
			"repo": "CashierRepository",
			"op":   "FindByUsername",
		}).WithError(err).Error("Failed to find cashier")
		return nil, err
	}
	return &cashier, nil
}

// FindByID fetches a cashier by primary ID.
// Returns (nil, nil) if no such cashier exists.
func (r *CashierRepository) FindByID(ctx context.Context, id uint) (*model.Cashier, error) {
	var cashier model.Cashier
	err := r.db.WithContext(ctx).First(&cashier, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &cashier, nil
}

// Create inserts a new cashier.
func (r *CashierRepository) Create(ctx context.Context, cashier *model.Cashier) error {
	if err := r.db.WithContext(ctx).Create(cashier).Error; err != nil {
		logger.WithFields(map[string]interface{}{
			"repo": "CashierRepository",
			"op":   "Create",
		}).WithError(err).Error("Failed to create cashier")
		return err
	}
	return nil
}
