//go:generate mockgen -source=contract.go -destination=./contract_mocks_test.go -package=request_complete_put_test
package request_complete_put

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
	Complete(ctx context.Context, id string, actor entities.Actor) (*entities.PickupRequest, error)
}
