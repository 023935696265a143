package querier

import (
	"context"

	"github.com/avito-tech/go-transaction-manager/pgxv5"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

const tracerName = "pickup/pkg/querier"

// Querier выполняет запросы в транзакции из контекста, если она есть, иначе на пуле.
// Каждый вызов оборачивается в client-спан; текст запроса в атрибуты не пишется,
// там могут быть персональные данные из позиций заявки.
type Querier struct {
	pool   *pgxpool.Pool
	getter *pgxv5.CtxGetter
	tracer trace.Tracer
}

func New(pool *pgxpool.Pool, getter *pgxv5.CtxGetter) *Querier {
	return &Querier{
		pool:   pool,
		getter: getter,
		tracer: otel.Tracer(tracerName),
	}
}

func (q *Querier) Exec(ctx context.Context, sql string, args ...interface{}) (pgconn.CommandTag, error) {
	ctx, span := q.start(ctx, "exec")
	defer span.End()

	tag, err := q.get(ctx).Exec(ctx, sql, args...)
	if err != nil {
		span.RecordError(err)
	}
	span.SetAttributes(attribute.Int64("db.rows_affected", tag.RowsAffected()))
	return tag, err
}

func (q *Querier) Query(ctx context.Context, sql string, args ...interface{}) (pgx.Rows, error) {
	ctx, span := q.start(ctx, "query")
	defer span.End()

	rows, err := q.get(ctx).Query(ctx, sql, args...)
	if err != nil {
		span.RecordError(err)
	}
	return rows, err
}

func (q *Querier) QueryRow(ctx context.Context, sql string, args ...interface{}) pgx.Row {
	ctx, span := q.start(ctx, "query_row")
	defer span.End()

	return q.get(ctx).QueryRow(ctx, sql, args...)
}

// SendBatch отправляет пачку запросов одним roundtrip'ом (позиции заявки).
func (q *Querier) SendBatch(ctx context.Context, b *pgx.Batch) pgx.BatchResults {
	ctx, span := q.start(ctx, "send_batch")
	defer span.End()
	span.SetAttributes(attribute.Int("db.batch_size", b.Len()))

	return q.get(ctx).SendBatch(ctx, b)
}

func (q *Querier) start(ctx context.Context, op string) (context.Context, trace.Span) {
	inTx := q.getter.DefaultTrOrDB(ctx, nil) != nil
	return q.tracer.Start(ctx, "postgres."+op,
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(
			attribute.String("db.system", "postgresql"),
			attribute.String("db.operation", op),
			attribute.Bool("db.in_transaction", inTx),
		),
	)
}

func (q *Querier) get(ctx context.Context) pgxv5.Tr {
	return q.getter.DefaultTrOrDB(ctx, q.pool)
}
