package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"
	logger "github.com/sirupsen/logrus"

	"posapi/src/apperrors"
	"posapi/src/auth"
	"posapi/src/model"
	"posapi/src/repository"
)

type productSearcher interface {
	Search(ctx context.Context, options repository.ProductSearchOptions) ([]model.Product, error)
	FindByID(ctx context.Context, id uint) (*model.Product, error)
	Create(ctx context.Context, product *model.Product) error
}

// SearchProductsHandler lists catalog products with pagination.
func SearchProductsHandler(repo productSearcher, mapper *apperrors.Mapper) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		page := 1
		if pageParam := r.URL.Query().Get("page"); pageParam != "" {
			parsedPage, err := strconv.Atoi(pageParam)
			if err != nil || parsedPage <= 0 {
				mapper.WriteError(w, apperrors.Validation("invalid page"))
				return
			}
			page = parsedPage
		}

		pageSize := 20
		if sizeParam := r.URL.Query().Get("pageSize"); sizeParam != "" {
			parsedSize, err := strconv.Atoi(sizeParam)
			if err != nil || parsedSize <= 0 {
				mapper.WriteError(w, apperrors.Validation("invalid pageSize"))
				return
			}
			pageSize = parsedSize
		}

		products, err := repo.Search(r.Context(), repository.ProductSearchOptions{
			ActiveOnly: r.URL.Query().Get("includeInactive") == "",
			Limit:      pageSize,
			Offset:     (page - 1) * pageSize,
		})
		if err != nil {
			mapper.WriteError(w, apperrors.Database("failed to list products", err))
			return
		}

		writeJSON(w, products)
	}
}

// GetProductHandler fetches a single product by ID.
func GetProductHandler(repo productSearcher, mapper *apperrors.Mapper) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := strconv.ParseUint(chi.URLParam(r, "id"), 10, 64)
		if err != nil {
			mapper.WriteError(w, apperrors.Validation("invalid product id"))
			return
		}

		product, err := repo.FindByID(r.Context(), uint(id))
		if err != nil {
			mapper.WriteError(w, apperrors.Database("failed to load product", err))
			return
		}
		if product == nil {
			mapper.WriteError(w, apperrors.NotFound("product not found"))
			return
		}

		writeJSON(w, product)
	}
}

// CreateProductPayload is the product creation request body.
type CreateProductPayload struct {
	SKU         string `json:"sku"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Price       string `json:"price"`
	Stock       int    `json:"stock"`
}

// CreateProductHandler adds a catalog product. Manager role required.
func CreateProductHandler(repo productSearcher, mapper *apperrors.Mapper) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		cashier, ok := auth.GetCashierFromContext(r.Context())
		if !ok || cashier == nil {
			mapper.WriteError(w, apperrors.Authentication("cashier not authenticated"))
			return
		}
		if cashier.Role != model.CashierRoleManager {
			mapper.WriteError(w, apperrors.Authorization("manager role required"))
			return
		}

		var payload CreateProductPayload
		decoder := json.NewDecoder(r.Body)
		decoder.DisallowUnknownFields()
		if err := decoder.Decode(&payload); err != nil {
			mapper.WriteError(w, apperrors.Validation("invalid product payload"))
			return
		}

		if payload.SKU == "" || payload.Name == "" {
			mapper.WriteError(w, apperrors.Validation("sku and name are required"))
			return
		}

		price, err := parsePrice(payload.Price)
		if err != nil {
			mapper.WriteError(w, apperrors.Validation("invalid price"))
			return
		}
		if payload.Stock < 0 {
			mapper.WriteError(w, apperrors.Validation("stock must not be negative"))
			return
		}

		product := &model.Product{
			SKU:         payload.SKU,
			Name:        payload.Name,
			Description: payload.Description,
			Price:       price,
			Stock:       payload.Stock,
			Active:      true,
		}
		if err := repo.Create(r.Context(), product); err != nil {
			mapper.WriteErr(w, err)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		if err := json.NewEncoder(w).Encode(product); err != nil {
			logger.WithError(err).Error("failed to encode product response")
		}
	}
}

func parsePrice(raw string) (decimal.Decimal, error) {
	price, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Zero, err
	}
	if price.IsNegative() {
		return decimal.Zero, errors.New("price must not be negative")
	}
	return price, nil
}

func writeJSON(w http.ResponseWriter, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		logger.WithError(err).Error("failed to encode response")
	}
}
