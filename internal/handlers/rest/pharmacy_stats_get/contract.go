//go:generate mockgen -source=contract.go -destination=./contract_mocks_test.go -package=pharmacy_stats_get_test
package pharmacy_stats_get

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
	PharmacyStats(ctx context.Context, pharmacyID int64) (*entities.PharmacyStats, error)
}
