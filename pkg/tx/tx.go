package tx

import (
	"context"
	"errors"
	"fmt"

	"github.com/avito-tech/go-transaction-manager/pgxv5"
	"github.com/avito-tech/go-transaction-manager/trm/manager"
	"github.com/avito-tech/go-transaction-manager/trm/settings"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// ErrSerialization - транзакция проиграла конкурентной (40001 / 40P01),
// её можно повторить с перечитыванием данных.
var ErrSerialization = errors.New("transaction serialization failure")

const (
	pgErrSerializationFailure = "40001"
	pgErrDeadlockDetected     = "40P01"
)

// Manager инкапсулирует логику управления транзакциями.
type Manager struct {
	internal *manager.Manager
}

// New создаёт новый менеджер транзакций.
func New(db pgxv5.Transactional) *Manager {
	return &Manager{
		internal: manager.Must(pgxv5.NewDefaultFactory(db)),
	}
}

func (m *Manager) execWithIsoLevel(
	ctx context.Context,
	level pgx.TxIsoLevel,
	fn func(ctx context.Context) error,
) error {
	txSettings := pgxv5.MustSettings(
		settings.Must(),
		pgxv5.WithTxOptions(pgx.TxOptions{IsoLevel: level}),
	)
	err := m.internal.DoWithSettings(ctx, txSettings, fn)
	if isSerializationFailure(err) && !errors.Is(err, ErrSerialization) {
		return fmt.Errorf("%w: %w", ErrSerialization, err)
	}
	return err
}

func isSerializationFailure(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == pgErrSerializationFailure || pgErr.Code == pgErrDeadlockDetected
	}
	return false
}

// Do - переход статуса и запись события журнала. Serializable: конфликт
// двух параллельных переходов должен закончиться ошибкой одного из них.
func (m *Manager) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	return m.execWithIsoLevel(ctx, pgx.Serializable, fn)
}

// DoReadCommitted - для выборок с FOR UPDATE SKIP LOCKED (relay событий),
// где serializable даёт лишние 40001 между воркерами.
func (m *Manager) DoReadCommitted(ctx context.Context, fn func(ctx context.Context) error) error {
	return m.execWithIsoLevel(ctx, pgx.ReadCommitted, fn)
}
