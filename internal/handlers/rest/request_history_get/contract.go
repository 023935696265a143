//go:generate mockgen -source=contract.go -destination=./contract_mocks_test.go -package=request_history_get_test
package request_history_get

import (
	"context"

	"pickup/internal/entities"
	"pickup/pkg/logger"
)

type handlerLogger interface {
	Info(msg string, fields ...logger.Field)
	Warn(msg string, fields ...logger.Field)
	Error(msg string, fields ...logger.Field)
	With(fields ...logger.Field) logger.Logger
}

type Service interface {
	History(ctx context.Context, actor entities.Actor, id string) ([]entities.LifecycleEvent, error)
}
