package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	logger "github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"posapi/src/apperrors"
	"posapi/src/auth"
	"posapi/src/model"
	"posapi/src/repository"
)

type saleCreator interface {
	CreateSale(ctx context.Context, cashierID uint, lines []repository.SaleLine) (*model.Sale, error)
	FindByID(ctx context.Context, id uint) (*model.Sale, error)
}

// CreateSalePayload is the checkout request body.
type CreateSalePayload struct {
	Items []SaleLinePayload `json:"items"`
}

type SaleLinePayload struct {
	ProductID uint `json:"product_id"`
	Quantity  int  `json:"quantity"`
}

// CreateSaleHandler completes a checkout for the authenticated cashier.
// An inventory shortfall comes back as a business-rule error; the
// remaining quantity stays server-side.
func CreateSaleHandler(repo saleCreator, mapper *apperrors.Mapper) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		cashier, ok := auth.GetCashierFromContext(r.Context())
		if !ok || cashier == nil {
			mapper.WriteError(w, apperrors.Authentication("cashier not authenticated"))
			return
		}

		var payload CreateSalePayload
		decoder := json.NewDecoder(r.Body)
		decoder.DisallowUnknownFields()
		if err := decoder.Decode(&payload); err != nil {
			mapper.WriteError(w, apperrors.Validation("invalid sale payload"))
			return
		}

		if len(payload.Items) == 0 {
			mapper.WriteError(w, apperrors.Validation("sale requires at least one item"))
			return
		}

		lines := make([]repository.SaleLine, 0, len(payload.Items))
		for _, item := range payload.Items {
			if item.Quantity <= 0 {
				mapper.WriteError(w, apperrors.Validation("item quantity must be positive"))
				return
			}
			lines = append(lines, repository.SaleLine{
				ProductID: item.ProductID,
				Quantity:  item.Quantity,
			})
		}

		sale, err := repo.CreateSale(r.Context(), cashier.ID, lines)
		if err != nil {
			switch {
			case errors.Is(err, repository.ErrInsufficientStock):
				event := apperrors.BusinessRule("requested quantity is not available").
					WithContext("cashier_id", cashier.ID).
					WithContext("items", len(lines))
				mapper.WriteError(w, event)
			case errors.Is(err, gorm.ErrRecordNotFound):
				mapper.WriteError(w, apperrors.NotFound("product not found"))
			default:
				mapper.WriteError(w, apperrors.Database("failed to create sale", err))
			}
			return
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		if err := json.NewEncoder(w).Encode(sale); err != nil {
			logger.WithError(err).Error("failed to encode sale response")
		}
	}
}

// GetSaleHandler fetches a completed sale with its items.
func GetSaleHandler(repo saleCreator, mapper *apperrors.Mapper) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		cashier, ok := auth.GetCashierFromContext(r.Context())
		if !ok || cashier == nil {
			mapper.WriteError(w, apperrors.Authentication("cashier not authenticated"))
			return
		}

		id, err := strconv.ParseUint(chi.URLParam(r, "id"), 10, 64)
		if err != nil {
			mapper.WriteError(w, apperrors.Validation("invalid sale id"))
			return
		}

		sale, err := repo.FindByID(r.Context(), uint(id))
		if err != nil {
			mapper.WriteError(w, apperrors.Database("failed to load sale", err))
			return
		}
		if sale == nil {
			mapper.WriteError(w, apperrors.NotFound("sale not found"))
			return
		}

		writeJSON(w, sale)
	}
}
