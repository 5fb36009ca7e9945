// internal/util/ids.go
// Generator ID untuk request & snapshot dataset

package util

import (
	"context"

	"github.com/google/uuid"
)

func NewID() string {
	return uuid.New().String()
}

type ctxKey struct{}

// WithRequestID menyimpan X-Request-ID di context untuk log layer bawah.
func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, ctxKey{}, id)
}

func RequestID(ctx context.Context) string {
	id, _ := ctx.Value(ctxKey{}).(string)
	return id
}
