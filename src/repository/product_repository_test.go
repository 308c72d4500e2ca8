package repository

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/shopspring/decimal"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"posapi/src/model"
)

func TestProductRepositorySearch(t *testing.T) {
	mockDB, mock := newMockDB(t)
	repo := (&ProductRepository{}).WithDB(mockDB)

	createdAt := time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC)
	products := []model.Product{
		{ID: 1, SKU: "SKU-COFFEE-250", Name: "Coffee 250g", Price: decimal.RequireFromString("7.50"), Stock: 12, Active: true, CreatedAt: createdAt},
		{ID: 2, SKU: "SKU-TEA-100", Name: "Tea 100g", Price: decimal.RequireFromString("4.25"), Stock: 3, Active: true, CreatedAt: createdAt},
	}

	productRows := func(returned ...model.Product) *sqlmock.Rows {
		rows := sqlmock.NewRows([]string{"id", "sku", "name", "price", "stock", "active", "created_at", "updated_at"})
		for _, product := range returned {
			rows.AddRow(product.ID, product.SKU, product.Name, product.Price, product.Stock, product.Active, product.CreatedAt, product.CreatedAt)
		}
		return rows
	}

	t.Run("lists active products", func(t *testing.T) {
		mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "products" WHERE active = $1 ORDER BY name ASC, id ASC LIMIT $2`)).
			WithArgs(true, 20).
			WillReturnRows(productRows(products[0], products[1]))

		results, err := repo.Search(context.Background(), ProductSearchOptions{ActiveOnly: true, Limit: 20})
		if err != nil {
			t.Fatalf("unexpected error searching products: %v", err)
		}

		if len(results) != 2 {
			t.Fatalf("expected 2 products, got %d", len(results))
		}

		if results[0].SKU != "SKU-COFFEE-250" || results[1].SKU != "SKU-TEA-100" {
			t.Fatalf("products not returned in expected order: %+v", results)
		}
	})

	t.Run("paginates", func(t *testing.T) {
		mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "products" WHERE active = $1 ORDER BY name ASC, id ASC LIMIT $2 OFFSET $3`)).
			WithArgs(true, 1, 1).
			WillReturnRows(productRows(products[1]))

		results, err := repo.Search(context.Background(), ProductSearchOptions{ActiveOnly: true, Limit: 1, Offset: 1})
		if err != nil {
			t.Fatalf("unexpected error searching products: %v", err)
		}

		if len(results) != 1 || results[0].SKU != "SKU-TEA-100" {
			t.Fatalf("unexpected paginated result: %+v", results)
		}
	})

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet sqlmock expectations: %v", err)
	}
}

func TestProductRepositoryFindByID(t *testing.T) {
	mockDB, mock := newMockDB(t)
	repo := (&ProductRepository{}).WithDB(mockDB)

	row := sqlmock.NewRows([]string{"id", "sku", "name", "stock", "active"}).
		AddRow(1, "SKU-COFFEE-250", "Coffee 250g", 12, true)

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "products" WHERE "products"."id" = $1 ORDER BY "products"."id" LIMIT $2`)).
		WithArgs(1, 1).
		WillReturnRows(row)

	found, err := repo.FindByID(context.Background(), 1)
	if err != nil || found == nil {
		t.Fatalf("expected to find product by id, got %+v err=%v", found, err)
	}

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "products" WHERE "products"."id" = $1 ORDER BY "products"."id" LIMIT $2`)).
		WithArgs(99, 1).
		WillReturnError(gorm.ErrRecordNotFound)

	missing, err := repo.FindByID(context.Background(), 99)
	if err != nil {
		t.Fatalf("expected nil error for missing product, got %v", err)
	}
	if missing != nil {
		t.Fatalf("expected nil product for missing id, got %+v", missing)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet sqlmock expectations: %v", err)
	}
}

func TestProductRepositoryUpdateStock(t *testing.T) {
	mockDB, mock := newMockDB(t)
	repo := (&ProductRepository{}).WithDB(mockDB)

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta(`UPDATE "products" SET "stock"=$1 WHERE id = $2`)).
		WithArgs(25, 1).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	if err := repo.UpdateStock(context.Background(), 1, 25); err != nil {
		t.Fatalf("expected stock update to succeed, got %v", err)
	}

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta(`UPDATE "products" SET "stock"=$1 WHERE id = $2`)).
		WithArgs(25, 99).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectCommit()

	if err := repo.UpdateStock(context.Background(), 99, 25); err != gorm.ErrRecordNotFound {
		t.Fatalf("expected ErrRecordNotFound for missing product, got %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet sqlmock expectations: %v", err)
	}
}

func newMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()
	sqlDB, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to create sqlmock: %v", err)
	}

	dialector := postgres.New(postgres.Config{
		DSN:                  "sqlmock_db_0",
		Conn:                 sqlDB,
		PreferSimpleProtocol: true,
	})

	gdb, err := gorm.Open(dialector, &gorm.Config{})
	if err != nil {
		sqlDB.Close()
		t.Fatalf("failed to open gorm DB with sqlmock: %v", err)
	}

	return gdb, mock
}
