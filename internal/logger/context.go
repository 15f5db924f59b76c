package logger

import (
	"context"

	"go.uber.org/zap"
)

type ctxKey string

const productIDKey ctxKey = "product_id"

func WithProduct(ctx context.Context, productID int64) context.Context {
	return context.WithValue(ctx, productIDKey, productID)
}

func ProductIDFrom(ctx context.Context) int64 {
	if v := ctx.Value(productIDKey); v != nil {
		return v.(int64)
	}
	return 0
}

// FromCtx returns logger with product_id automatically added
func FromCtx(ctx context.Context) *zap.Logger {
	productID := ProductIDFrom(ctx)
	if productID == 0 {
		return L()
	}
	return L().With(zap.Int64("product_id", productID))
}
