//go:generate mockgen -source=contract.go -destination=./contract_mocks_test.go -package=pickup_expiry_test
package pickup_expiry

import (
	"context"

	"pickup/pkg/logger"
)

type taskLogger interface {
	Info(msg string, fields ...logger.Field)
	Warn(msg string, fields ...logger.Field)
	Error(msg string, fields ...logger.Field)
	With(fields ...logger.Field) logger.Logger
}

type Service interface {
	ExpireOverdue(ctx context.Context, batchSize int) (expired int, skipped int, err error)
}

type ExpiredObserver interface {
	ObserveExpired(n int)
}
