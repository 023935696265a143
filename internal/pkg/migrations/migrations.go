package migrations

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/jackc/pgx/v5/stdlib" // драйвер "pgx" для database/sql
	"github.com/pressly/goose/v3"
	"pickup/internal/pkg/config"
	"pickup/internal/pkg/postgres"
	schema "pickup/migrations"
	"pickup/pkg/logger"
)

// Up накатывает встроенные миграции схемы до последней версии.
func Up(ctx context.Context, log logger.Logger, cfg *config.Database) error {
	db, err := sql.Open("pgx", postgres.DSN(cfg))
	if err != nil {
		return fmt.Errorf("open migrations connection: %w", err)
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Warn("failed to close migrations connection", logger.NewField("error", err))
		}
	}()

	provider, err := goose.NewProvider(goose.DialectPostgres, db, schema.FS)
	if err != nil {
		return fmt.Errorf("migrations provider: %w", err)
	}

	results, err := provider.Up(ctx)
	if err != nil {
		return fmt.Errorf("apply migrations: %w", err)
	}

	for _, res := range results {
		log.Info("migration applied",
			logger.NewField("version", res.Source.Version),
			logger.NewField("duration", res.Duration.String()),
		)
	}
	return nil
}
