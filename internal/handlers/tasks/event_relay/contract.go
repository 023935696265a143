//go:generate mockgen -source=contract.go -destination=./contract_mocks_test.go -package=event_relay_test
package event_relay

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

type Relay interface {
	RelayAll(ctx context.Context, batchSize int) (int, error)
}
