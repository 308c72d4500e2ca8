package auth

import (
	"context"

	"posapi/src/model"
)

type contextKey string

const CashierKey contextKey = "cashier"

func GetCashierFromContext(ctx context.Context) (*model.Cashier, bool) {
	cashier, ok := ctx.Value(CashierKey).(*model.Cashier)
	return cashier, ok
}

func WithCashier(ctx context.Context, cashier *model.Cashier) context.Context {
	return context.WithValue(ctx, CashierKey, cashier)
}
