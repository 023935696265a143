package integration_test

import (
	"context"
	"log"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/avito-tech/go-transaction-manager/pgxv5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/require"
	"pickup/internal/pkg/config"
	"pickup/internal/pkg/migrations"
	"pickup/internal/pkg/postgres"
	"pickup/pkg/logger/zap_adapter"
	"pickup/pkg/querier"
	"pickup/pkg/tx"
)

var (
	poolInstance    *pgxpool.Pool
	querierInstance *querier.Querier
	querierOnce     sync.Once
)

func setup() {
	// godotenv.Load(.env.test) не вызываем так как Makefile подгружает их
	cfg := &config.Database{
		Host:     os.Getenv("POSTGRES_HOST"),
		Port:     os.Getenv("POSTGRES_PORT"),
		User:     os.Getenv("POSTGRES_USER"),
		Password: os.Getenv("POSTGRES_PASSWORD"),
		DBName:   os.Getenv("POSTGRES_DB"),
		SSLMode:  os.Getenv("POSTGRES_SSLMODE"),
	}

	ctx := context.Background()

	zapLogger, err := zap_adapter.NewZapAdapter("warn")
	if err != nil {
		log.Fatalf("failed to initialize logger: %v", err)
	}
	defer func() {
		if err := zapLogger.Sync(); err != nil {
			log.Printf("failed to sync logger: %v", err)
		}
	}()

	if err := migrations.Up(ctx, zapLogger, cfg); err != nil {
		log.Fatalf("failed to apply migrations: %v", err)
	}

	poolInstance, err = postgres.NewConnPool(ctx, zapLogger, cfg)
	if err != nil {
		panic(err)
	}

	querierInstance = querier.New(poolInstance, pgxv5.DefaultCtxGetter)
}

func GetQuerier() *querier.Querier {
	querierOnce.Do(setup)
	return querierInstance
}

func GetTxManager() *tx.Manager {
	querierOnce.Do(setup)
	return tx.New(poolInstance)
}

func SetupDB(t *testing.T, setupSql string) {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	_, err := GetQuerier().Exec(ctx, setupSql)

	require.NoError(t, err)
}

func TeardownDB(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	_, err := GetQuerier().Exec(ctx, `
		TRUNCATE TABLE pickup_request_events, pickup_line_items, pickup_requests RESTART IDENTITY CASCADE;
	`)
	require.NoError(t, err)
}
