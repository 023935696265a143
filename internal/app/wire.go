//go:build wireinject
// +build wireinject

package app

import (
	"context"

	"github.com/IBM/sarama"
	"github.com/avito-tech/go-transaction-manager/pgxv5"
	"github.com/google/wire"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jonboulle/clockwork"
	lifecycleGateway "pickup/internal/gateway/kafka/lifecycle"
	"pickup/internal/handlers/rest/pharmacy_stats_get"
	"pickup/internal/handlers/rest/request_cancel_put"
	"pickup/internal/handlers/rest/request_complete_put"
	"pickup/internal/handlers/rest/request_get"
	"pickup/internal/handlers/rest/request_history_get"
	"pickup/internal/handlers/rest/request_status_put"
	"pickup/internal/handlers/rest/requests_get"
	"pickup/internal/handlers/rest/requests_post"
	"pickup/internal/handlers/tasks/event_relay"
	"pickup/internal/handlers/tasks/pickup_expiry"
	"pickup/internal/pkg/config"
	"pickup/internal/pkg/factory/autocancel_deadline"
	"pickup/internal/pkg/metrics"
	eventRepo "pickup/internal/repository/event"
	pickupRepo "pickup/internal/repository/pickup"
	outboxService "pickup/internal/service/outbox"
	pickupService "pickup/internal/service/pickup"
	statsService "pickup/internal/service/stats"
	"pickup/pkg/background"
	"pickup/pkg/logger"
	"pickup/pkg/querier"
	"pickup/pkg/tx"
)

type Application struct {
	ServicePickup ServicePickup
	ServiceStats  ServiceStats
}

type ServicePickup interface {
	requests_post.Service
	requests_get.Service
	request_get.Service
	request_history_get.Service
	request_status_put.Service
	request_cancel_put.Service
	request_complete_put.Service
}

type ServiceStats interface {
	pharmacy_stats_get.Service
}

// InitializeApplication для HTTP сервиса (cmd/service).
// cache может быть nil - тогда статистика считается на каждый запрос.
func InitializeApplication(
	ctx context.Context,
	log logger.Logger,
	pool *pgxpool.Pool,
	getter *pgxv5.CtxGetter,
	cache statsService.Cache,
	cfg *config.Config,
) (*Application, error) {
	wire.Build(
		provideTxManager,
		provideQuerier,
		provideClock,
		provideObserver,

		providePickupRepository,
		provideEventRepository,

		autocancel_deadline.New,
		provideServicePickup,
		provideServiceStats,

		wire.Struct(new(Application), "*"),

		wire.Bind(new(ServicePickup), new(*pickupService.Service)),
		wire.Bind(new(ServiceStats), new(*statsService.Service)),

		wire.Bind(new(pickupService.Repository), new(*pickupRepo.Repository)),
		wire.Bind(new(pickupService.EventRepository), new(*eventRepo.Repository)),
		wire.Bind(new(pickupService.DeadlineFactory), new(*autocancel_deadline.DeadlineFactory)),
		wire.Bind(new(pickupService.TxManager), new(*tx.Manager)),
		wire.Bind(new(pickupService.TransitionObserver), new(*metrics.Observer)),
		wire.Bind(new(statsService.Repository), new(*pickupRepo.Repository)),
	)
	return &Application{}, nil
}

type WorkerApp struct {
	BackgroundWorkers *background.Worker
}

// InitializeWorkerApp для фонового воркера (cmd/worker): автоотмена
// просроченных заявок и доставка событий журнала в kafka.
func InitializeWorkerApp(
	ctx context.Context,
	log logger.Logger,
	pool *pgxpool.Pool,
	getter *pgxv5.CtxGetter,
	producer sarama.SyncProducer,
	cfg *config.Config,
) (*WorkerApp, error) {
	wire.Build(
		provideTxManager,
		provideQuerier,
		provideClock,
		provideObserver,

		providePickupRepository,
		provideEventRepository,

		autocancel_deadline.New,
		provideServicePickup,

		provideLifecyclePublisher,
		provideOutboxRelay,

		providePickupExpiryTask,
		provideEventRelayTask,
		provideTaskList,
		provideBackgroundWorkers,

		wire.Struct(new(WorkerApp), "*"),

		wire.Bind(new(pickupService.Repository), new(*pickupRepo.Repository)),
		wire.Bind(new(pickupService.EventRepository), new(*eventRepo.Repository)),
		wire.Bind(new(pickupService.DeadlineFactory), new(*autocancel_deadline.DeadlineFactory)),
		wire.Bind(new(pickupService.TxManager), new(*tx.Manager)),
		wire.Bind(new(pickupService.TransitionObserver), new(*metrics.Observer)),

		wire.Bind(new(outboxService.EventRepository), new(*eventRepo.Repository)),
		wire.Bind(new(outboxService.Publisher), new(*lifecycleGateway.Publisher)),
		wire.Bind(new(outboxService.TxManager), new(*tx.Manager)),

		wire.Bind(new(pickup_expiry.Service), new(*pickupService.Service)),
		wire.Bind(new(pickup_expiry.ExpiredObserver), new(*metrics.Observer)),
		wire.Bind(new(event_relay.Relay), new(*outboxService.Relay)),
		wire.Bind(new(background.RunObserver), new(*metrics.Observer)),
	)
	return &WorkerApp{}, nil
}

func provideTxManager(pool *pgxpool.Pool) *tx.Manager {
	return tx.New(pool)
}

func provideQuerier(pool *pgxpool.Pool, getter *pgxv5.CtxGetter) *querier.Querier {
	return querier.New(pool, getter)
}

func provideClock() clockwork.Clock {
	return clockwork.NewRealClock()
}

func provideObserver() *metrics.Observer {
	return metrics.NewObserver()
}

func providePickupRepository(querier *querier.Querier) *pickupRepo.Repository {
	return pickupRepo.New(querier)
}

func provideEventRepository(querier *querier.Querier) *eventRepo.Repository {
	return eventRepo.New(querier)
}

func provideServicePickup(
	repository pickupService.Repository,
	events pickupService.EventRepository,
	deadlines pickupService.DeadlineFactory,
	txManager pickupService.TxManager,
	clock clockwork.Clock,
	observer pickupService.TransitionObserver,
) *pickupService.Service {
	return pickupService.New(repository, events, deadlines, txManager, clock, observer)
}

func provideServiceStats(
	log logger.Logger,
	repository statsService.Repository,
	cache statsService.Cache,
	clock clockwork.Clock,
	cfg *config.Config,
) *statsService.Service {
	return statsService.New(log.With(logger.NewField("service", "stats")), repository, cache, cfg.Stats.CacheTTL, cfg.Stats.Location, clock)
}

func provideLifecyclePublisher(producer sarama.SyncProducer, cfg *config.Config) *lifecycleGateway.Publisher {
	return lifecycleGateway.New(producer, cfg.Kafka.LifecycleTopic)
}

func provideOutboxRelay(
	events outboxService.EventRepository,
	publisher outboxService.Publisher,
	txManager outboxService.TxManager,
	clock clockwork.Clock,
) *outboxService.Relay {
	return outboxService.New(events, publisher, txManager, clock)
}

func providePickupExpiryTask(
	log logger.Logger,
	service pickup_expiry.Service,
	observer pickup_expiry.ExpiredObserver,
	cfg *config.Config,
) *pickup_expiry.PickupExpiry {
	return pickup_expiry.NewPickupExpiry(log, service, observer, cfg.Tasks.PickupExpiryInterval, cfg.Tasks.PickupExpiryBatch)
}

func provideEventRelayTask(
	log logger.Logger,
	relay event_relay.Relay,
	cfg *config.Config,
) *event_relay.EventRelay {
	return event_relay.NewEventRelay(log, relay, cfg.Tasks.EventRelayInterval, cfg.Tasks.EventRelayBatch)
}

func provideTaskList(
	pickupExpiryTask *pickup_expiry.PickupExpiry,
	eventRelayTask *event_relay.EventRelay,
) []background.Task {
	return []background.Task{
		pickupExpiryTask,
		eventRelayTask,
	}
}

func provideBackgroundWorkers(
	ctx context.Context,
	log logger.Logger,
	observer background.RunObserver,
	tasks []background.Task,
) (*background.Worker, error) {
	return background.New(ctx, log, observer, tasks)
}
