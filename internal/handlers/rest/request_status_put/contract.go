//go:generate mockgen -source=contract.go -destination=./contract_mocks_test.go -package=request_status_put_test
package request_status_put

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
	Transition(
		ctx context.Context,
		id string,
		actor entities.Actor,
		target entities.PickupStatus,
		payload entities.TransitionPayload,
	) (*entities.PickupRequest, error)
}
