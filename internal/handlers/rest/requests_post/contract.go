//go:generate mockgen -source=contract.go -destination=./contract_mocks_test.go -package=requests_post_test
package requests_post

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
	Create(ctx context.Context, actor entities.Actor, in entities.PickupRequestCreate) (*entities.PickupRequest, error)
}
