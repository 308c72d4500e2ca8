package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	logger "github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"

	"posapi/src/apperrors"
	"posapi/src/model"
)

type cashierFinder interface {
	FindByUsername(ctx context.Context, username string) (*model.Cashier, error)
}

// LoginHandler verifies a cashier's PIN. A wrong username and a wrong
// PIN produce the same authentication failure so the response leaks
// nothing about which part was wrong.
func LoginHandler(repo cashierFinder, mapper *apperrors.Mapper) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload model.LoginPayload
		decoder := json.NewDecoder(r.Body)
		decoder.DisallowUnknownFields()
		if err := decoder.Decode(&payload); err != nil {
			mapper.WriteError(w, apperrors.Validation("invalid login payload"))
			return
		}

		payload.Username = strings.TrimSpace(payload.Username)
		if payload.Username == "" || payload.PIN == "" {
			mapper.WriteError(w, apperrors.Validation("username and pin are required"))
			return
		}

		cashier, err := repo.FindByUsername(r.Context(), payload.Username)
		if err != nil {
			mapper.WriteError(w, apperrors.Database("failed to load cashier", err))
			return
		}

		if cashier == nil || !cashier.Active {
			mapper.WriteError(w, apperrors.Authentication("unknown or inactive cashier").
				WithContext("username", payload.Username))
			return
		}

		if err := bcrypt.CompareHashAndPassword([]byte(cashier.PINHash), []byte(payload.PIN)); err != nil {
			mapper.WriteError(w, apperrors.Authentication("pin mismatch").
				WithContext("cashier_id", cashier.ID))
			return
		}

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(cashier.ToResponse()); err != nil {
			logger.WithError(err).Error("failed to encode login response")
		}
	}
}
