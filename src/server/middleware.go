package server

import (
	"context"
	"fmt"
	"net/http"
	"strconv"

	"posapi/src/apperrors"
	"posapi/src/auth"
	"posapi/src/model"
)

type cashierLoader interface {
	FindByID(ctx context.Context, id uint) (*model.Cashier, error)
}

// RecoverMiddleware converts panics into a mapped internal-error
// envelope. The panic value and stack go to the log record; the client
// only ever sees the generic message and a correlation ID.
func RecoverMiddleware(mapper *apperrors.Mapper) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if rec := recover(); rec != nil {
					event := apperrors.Internal("handler panic", fmt.Errorf("%+v", rec)).
						WithContext("path", r.URL.Path).
						WithContext("method", r.Method)
					mapper.WriteError(w, event)
				}
			}()
			next.ServeHTTP(w, r)
		})
	}
}

// CashierMiddleware resolves the calling cashier from the terminal
// session header and puts it on the request context. Handlers that
// need authentication check the context themselves, so unauthenticated
// requests still reach public routes untouched.
func CashierMiddleware(repo cashierLoader) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("X-Cashier-ID")
			if header == "" {
				next.ServeHTTP(w, r)
				return
			}

			id, err := strconv.ParseUint(header, 10, 64)
			if err != nil {
				next.ServeHTTP(w, r)
				return
			}

			cashier, err := repo.FindByID(r.Context(), uint(id))
			if err != nil || cashier == nil || !cashier.Active {
				next.ServeHTTP(w, r)
				return
			}

			next.ServeHTTP(w, r.WithContext(auth.WithCashier(r.Context(), cashier)))
		})
	}
}

// RequireManager rejects requests whose caller is not an active
// manager. Used for the admin surface (error lookup, live log tail).
func RequireManager(mapper *apperrors.Mapper) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			cashier, ok := auth.GetCashierFromContext(r.Context())
			if !ok || cashier == nil {
				mapper.WriteError(w, apperrors.Authentication("cashier not authenticated"))
				return
			}
			if cashier.Role != model.CashierRoleManager {
				mapper.WriteError(w, apperrors.Authorization("manager role required"))
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
