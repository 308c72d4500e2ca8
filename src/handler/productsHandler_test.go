package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"posapi/src/apperrors"
	"posapi/src/auth"
	"posapi/src/model"
	"posapi/src/repository"
)

type mockProductRepo struct {
	products []model.Product
	product  *model.Product
	err      error
	created  *model.Product
	options  repository.ProductSearchOptions
}

func (m *mockProductRepo) Search(ctx context.Context, options repository.ProductSearchOptions) ([]model.Product, error) {
	m.options = options
	return m.products, m.err
}

func (m *mockProductRepo) FindByID(ctx context.Context, id uint) (*model.Product, error) {
	return m.product, m.err
}

func (m *mockProductRepo) Create(ctx context.Context, product *model.Product) error {
	m.created = product
	return m.err
}

func TestSearchProductsHandler_InvalidPage(t *testing.T) {
	handler := SearchProductsHandler(&mockProductRepo{}, newTestMapper(false))

	rr := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/products?page=abc", nil)
	handler.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusBadRequest, rr.Code)

	var response apperrors.ErrorResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &response))
	assert.Equal(t, apperrors.CodeValidation, response.Error.Code)
}

func TestSearchProductsHandler_DefaultsPagination(t *testing.T) {
	repo := &mockProductRepo{products: []model.Product{{ID: 1, SKU: "SKU-COFFEE-250"}}}
	handler := SearchProductsHandler(repo, newTestMapper(false))

	rr := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/products", nil)
	handler.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, 20, repo.options.Limit)
	assert.Equal(t, 0, repo.options.Offset)
	assert.True(t, repo.options.ActiveOnly)
}

func TestGetProductHandler_NotFound(t *testing.T) {
	handler := GetProductHandler(&mockProductRepo{}, newTestMapper(false))

	r := chi.NewRouter()
	r.Get("/products/{id}", handler)

	rr := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/products/42", nil)
	r.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusNotFound, rr.Code)

	var response apperrors.ErrorResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &response))
	assert.Equal(t, apperrors.CodeNotFound, response.Error.Code)
	assert.Equal(t, apperrors.GenericMessage, response.Message)
}

func TestCreateProductHandler_RequiresManager(t *testing.T) {
	handler := CreateProductHandler(&mockProductRepo{}, newTestMapper(false))

	body := `{"sku":"SKU-TEA-100","name":"Tea 100g","price":"4.25","stock":10}`

	rr := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/products", strings.NewReader(body))
	staff := &model.Cashier{ID: 4, Role: model.CashierRoleStaff, Active: true}
	req = req.WithContext(auth.WithCashier(req.Context(), staff))
	handler.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusForbidden, rr.Code)

	var response apperrors.ErrorResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &response))
	assert.Equal(t, apperrors.CodeAuthz, response.Error.Code)
}

func TestCreateProductHandler_Success(t *testing.T) {
	repo := &mockProductRepo{}
	handler := CreateProductHandler(repo, newTestMapper(false))

	body := `{"sku":"SKU-TEA-100","name":"Tea 100g","price":"4.25","stock":10}`

	rr := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/products", strings.NewReader(body))
	manager := &model.Cashier{ID: 1, Role: model.CashierRoleManager, Active: true}
	req = req.WithContext(auth.WithCashier(req.Context(), manager))
	handler.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusCreated, rr.Code)
	require.NotNil(t, repo.created)
	assert.Equal(t, "SKU-TEA-100", repo.created.SKU)
	assert.True(t, repo.created.Price.Equal(decimal.RequireFromString("4.25")))
}

func TestCreateProductHandler_InvalidPrice(t *testing.T) {
	handler := CreateProductHandler(&mockProductRepo{}, newTestMapper(false))

	body := `{"sku":"SKU-TEA-100","name":"Tea 100g","price":"free","stock":10}`

	rr := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/products", strings.NewReader(body))
	manager := &model.Cashier{ID: 1, Role: model.CashierRoleManager, Active: true}
	req = req.WithContext(auth.WithCashier(req.Context(), manager))
	handler.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusBadRequest, rr.Code)
}
