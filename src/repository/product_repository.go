package repository

import (
	"context"
	"errors"

	logger "github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"posapi/src/database"
	"posapi/src/model"
)

// ProductRepository handles read/write operations for catalog products.
type ProductRepository struct {
	db *gorm.DB
}

// NewProductRepository creates a new repository instance using the main database.
func NewProductRepository() *ProductRepository {
	logger.WithField("component", "ProductRepository").
		Debug("Creating new ProductRepository with MainDB")

	return &ProductRepository{
		db: database.MainDB,
	}
}

// WithDB allows overriding the underlying *gorm.DB instance.
// Useful for tests or when using a specific session/transaction.
func (r *ProductRepository) WithDB(db *gorm.DB) *ProductRepository {
	return &ProductRepository{db: db}
}

// Create inserts a new product into the database.
func (r *ProductRepository) Create(ctx context.Context, product *model.Product) error {
	logger.WithFields(map[string]interface{}{
		"repo": "ProductRepository",
		"op":   "Create",
		"sku":  product.SKU,
	}).Debug("Creating new product")

	if err := r.db.WithContext(ctx).Create(product).Error; err != nil {
		logger.WithFields(map[string]interface{}{
			"repo": "ProductRepository",
			"op":   "Create",
		}).WithError(err).Error("Failed to create product")
		return err
	}

	return nil
}

// FindByID fetches a single product by its primary ID.
// Returns (nil, nil) if the product is not found.
func (r *ProductRepository) FindByID(ctx context.Context, id uint) (*model.Product, error) {
	var product model.Product
	err := r.db.WithContext(ctx).First(&product, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		logger.WithFields(map[string]interface{}{
			"repo":       "ProductRepository",
			"op":         "FindByID",
			"product_id": id,
		}).WithError(err).Error("Failed to find product")
		return nil, err
	}
	return &product, nil
}

// FindBySKU fetches a single product by SKU.
// Returns (nil, nil) if the product is not found.
func (r *ProductRepository) FindBySKU(ctx context.Context, sku string) (*model.Product, error) {
	var product model.Product
	err := r.db.WithContext(ctx).Where("sku = ?", sku).First(&product).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &product, nil
}

// ProductSearchOptions carries list filters and pagination.
type ProductSearchOptions struct {
	ActiveOnly bool
	Limit      int
	Offset     int
}

// Search lists products ordered by name.
func (r *ProductRepository) Search(ctx context.Context, options ProductSearchOptions) ([]model.Product, error) {
	query := r.db.WithContext(ctx).Model(&model.Product{})

	if options.ActiveOnly {
		query = query.Where("active = ?", true)
	}
	if options.Limit > 0 {
		query = query.Limit(options.Limit)
	}
	if options.Offset > 0 {
		query = query.Offset(options.Offset)
	}

	var products []model.Product
	if err := query.Order("name ASC, id ASC").Find(&products).Error; err != nil {
		logger.WithFields(map[string]interface{}{
			"repo": "ProductRepository",
			"op":   "Search",
		}).WithError(err).Error("Failed to search products")
		return nil, err
	}
	return products, nil
}

// UpdateStock sets the absolute stock level for a product.
func (r *ProductRepository) UpdateStock(ctx context.Context, id uint, stock int) error {
	result := r.db.WithContext(ctx).
		Model(&model.Product{}).
		Where("id = ?", id).
		UpdateColumn("stock", stock)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
