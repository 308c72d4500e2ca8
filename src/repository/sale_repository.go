package repository

import (
	"context"
	"errors"

	"github.com/shopspring/decimal"
	logger "github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"posapi/src/database"
	"posapi/src/model"
)

// ErrInsufficientStock is returned when a sale asks for more units than
// the product has. Handlers classify it as a business-rule violation;
// the available quantity is never surfaced to the client.
var ErrInsufficientStock = errors.New("insufficient stock for product")

// SaleRepository persists sales and adjusts stock atomically.
type SaleRepository struct {
	db *gorm.DB
}

// NewSaleRepository creates a new repository instance using the main database.
func NewSaleRepository() *SaleRepository {
	logger.WithField("component", "SaleRepository").
		Debug("Creating new SaleRepository with MainDB")

	return &SaleRepository{
		db: database.MainDB,
	}
}

// WithDB allows overriding the underlying *gorm.DB instance.
func (r *SaleRepository) WithDB(db *gorm.DB) *SaleRepository {
	return &SaleRepository{db: db}
}

// SaleLine is one requested line of a checkout.
type SaleLine struct {
	ProductID uint
	Quantity  int
}

// CreateSale checks stock, decrements it and writes the sale with its
// items in a single transaction. Returns ErrInsufficientStock when any
// line exceeds the available quantity and gorm.ErrRecordNotFound when a
// product does not exist.
func (r *SaleRepository) CreateSale(ctx context.Context, cashierID uint, lines []SaleLine) (*model.Sale, error) {
	if len(lines) == 0 {
		return nil, errors.New("sale requires at least one line")
	}

	var sale *model.Sale

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		total := decimal.Zero
		items := make([]model.SaleItem, 0, len(lines))

		for _, line := range lines {
			var product model.Product
			if err := tx.First(&product, line.ProductID).Error; err != nil {
				return err
			}

			// Conditional decrement: zero rows affected here means a
			// concurrent sale got the units first.
			result := tx.Model(&model.Product{}).
				Where("id = ? AND stock >= ?", line.ProductID, line.Quantity).
				UpdateColumn("stock", gorm.Expr("stock - ?", line.Quantity))
			if result.Error != nil {
				return result.Error
			}
			if result.RowsAffected == 0 {
				return ErrInsufficientStock
			}

			lineTotal := product.Price.Mul(decimal.NewFromInt(int64(line.Quantity)))
			total = total.Add(lineTotal)
			items = append(items, model.SaleItem{
				ProductID: line.ProductID,
				Quantity:  line.Quantity,
				UnitPrice: product.Price,
				LineTotal: lineTotal,
			})
		}

		created := &model.Sale{
			CashierID: cashierID,
			Total:     total,
			Status:    model.SaleStatusCompleted,
			Items:     items,
		}
		if err := tx.Create(created).Error; err != nil {
			return err
		}

		sale = created
		return nil
	})
	if err != nil {
		logger.WithFields(map[string]interface{}{
			"repo":       "SaleRepository",
			"op":         "CreateSale",
			"cashier_id": cashierID,
		}).WithError(err).Error("Failed to create sale")
		return nil, err
	}

	logger.WithFields(map[string]interface{}{
		"repo":    "SaleRepository",
		"op":      "CreateSale",
		"sale_id": sale.ID,
	}).Info("Sale created successfully")

	return sale, nil
}

// FindByID fetches a sale with its items.
// Returns (nil, nil) if the sale is not found.
func (r *SaleRepository) FindByID(ctx context.Context, id uint) (*model.Sale, error) {
	var sale model.Sale
	err := r.db.WithContext(ctx).Preload("Items").First(&sale, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &sale, nil
}
