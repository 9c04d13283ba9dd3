package mocks

import (
	"context"
	"hotelbook/infras/otel"
)

type otelImpl struct{}

// NewOtel returns an Otel whose scopes record nothing.
func NewOtel() otel.Otel {
	return &otelImpl{}
}

func (o *otelImpl) NewScope(ctx context.Context, _, _ string) (context.Context, otel.Scope) {
	return ctx, NewScope()
}

func (o *otelImpl) Shutdown(context.Context) error {
	return nil
}
