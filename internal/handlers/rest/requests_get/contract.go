//go:generate mockgen -source=contract.go -destination=./contract_mocks_test.go -package=requests_get_test
package requests_get

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
	ListForCustomer(ctx context.Context, customerID int64, status string) ([]entities.PickupRequest, error)
	ListForPharmacy(ctx context.Context, pharmacyID int64, status string) ([]entities.PickupRequest, error)
}
