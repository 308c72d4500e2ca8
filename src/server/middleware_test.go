package server

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"posapi/src/apperrors"
	"posapi/src/auth"
	"posapi/src/model"
)

type mockCashierLoader struct {
	cashier *model.Cashier
	err     error
}

func (m *mockCashierLoader) FindByID(ctx context.Context, id uint) (*model.Cashier, error) {
	return m.cashier, m.err
}

func newTestMapper() *apperrors.Mapper {
	log, _ := test.NewNullLogger()
	return apperrors.NewMapper(false, log, nil)
}

func TestRecoverMiddlewareMapsPanics(t *testing.T) {
	handler := RecoverMiddleware(newTestMapper())(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("stock table corrupted at /var/lib/posapi")
	}))

	rr := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/products", nil)
	handler.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusInternalServerError, rr.Code)

	var response apperrors.ErrorResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &response))
	assert.Equal(t, apperrors.CodeInternal, response.Error.Code)
	assert.Equal(t, apperrors.GenericMessage, response.Message)
	assert.NotContains(t, rr.Body.String(), "stock table corrupted")
	assert.NotEmpty(t, response.Error.ErrorID)
}

func TestCashierMiddlewareInjectsContext(t *testing.T) {
	cashier := &model.Cashier{ID: 4, Username: "till-3", Role: model.CashierRoleStaff, Active: true}
	loader := &mockCashierLoader{cashier: cashier}

	var seen *model.Cashier
	handler := CashierMiddleware(loader)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen, _ = auth.GetCashierFromContext(r.Context())
	}))

	rr := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/sales", nil)
	req.Header.Set("X-Cashier-ID", "4")
	handler.ServeHTTP(rr, req)

	require.NotNil(t, seen)
	assert.Equal(t, uint(4), seen.ID)
}

func TestCashierMiddlewarePassesThroughWithoutHeader(t *testing.T) {
	loader := &mockCashierLoader{}

	called := false
	handler := CashierMiddleware(loader)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
		if _, ok := auth.GetCashierFromContext(r.Context()); ok {
			t.Fatal("unexpected cashier on context")
		}
	}))

	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/products", nil))

	assert.True(t, called)
}

func TestRequireManagerRejectsStaff(t *testing.T) {
	handler := RequireManager(newTestMapper())(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler must not be reached")
	}))

	staff := &model.Cashier{ID: 4, Role: model.CashierRoleStaff, Active: true}
	req := httptest.NewRequest(http.MethodGet, "/admin/errors/x", nil)
	req = req.WithContext(auth.WithCashier(req.Context(), staff))

	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusForbidden, rr.Code)
}
