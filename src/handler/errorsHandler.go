package handler

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	"posapi/src/apperrors"
	"posapi/src/auth"
	"posapi/src/model"
)

type errorRecordFinder interface {
	FindByErrorID(ctx context.Context, errorID string) (*model.ErrorLog, error)
}

// GetErrorRecordHandler lets support staff recover the full server-side
// detail behind a correlation ID a user reported. Manager role
// required; the record itself was redacted before it was persisted.
func GetErrorRecordHandler(repo errorRecordFinder, mapper *apperrors.Mapper) http.HandlerFunc {
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

		errorID := chi.URLParam(r, "errorId")
		if errorID == "" {
			mapper.WriteError(w, apperrors.Validation("errorId is required"))
			return
		}

		record, err := repo.FindByErrorID(r.Context(), errorID)
		if err != nil {
			mapper.WriteError(w, apperrors.Database("failed to load error record", err))
			return
		}
		if record == nil {
			mapper.WriteError(w, apperrors.NotFound("error record not found"))
			return
		}

		writeJSON(w, record)
	}
}
