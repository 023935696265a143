package background

import (
	"context"
	"fmt"
	"runtime/debug"
	"sync"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/errgroup"
	"pickup/pkg/logger"
)

const tracerName = "pickup/pkg/background"

// Task определяет интерфейс для фоновых задач, которые могут выполняться периодически.
type Task interface {
	// TTL возвращает интервал между выполнениями задачи.
	TTL() time.Duration

	// Do выполняет логику задачи.
	Do(context.Context) error

	// Info возвращает читаемое описание задачи для логгирования и метрик.
	Info() string
}

type handlerLogger interface {
	Info(msg string, fields ...logger.Field)
	Warn(msg string, fields ...logger.Field)
	Error(msg string, fields ...logger.Field)
	With(fields ...logger.Field) logger.Logger
}

// RunObserver получает результат каждого запуска задачи. nil - не наблюдаем.
type RunObserver interface {
	ObserveRun(task string, duration time.Duration, err error)
}

// Worker управляет выполнением набора фоновых задач.
type Worker struct {
	log      handlerLogger
	observer RunObserver
	tasks    []Task
	wg       sync.WaitGroup
}

// New создает и запускает Worker.
//
//  1. Все задачи сначала выполняются один раз синхронно ("прогрев"),
//     ошибка или паника любой из них возвращается из New.
//  2. Затем каждая задача крутится в своей горутине по тикеру TTL
//     до отмены ctx. Ошибки периодических запусков только логируются.
func New(ctx context.Context, log handlerLogger, observer RunObserver, tasks []Task) (*Worker, error) {
	worker := &Worker{
		log:      log,
		observer: observer,
		tasks:    tasks,
	}
	if len(tasks) == 0 {
		return worker, nil
	}

	initGroup, initCtx := errgroup.WithContext(ctx)
	for i := 0; i < len(tasks); i++ {
		task := tasks[i]
		initGroup.Go(func() (err error) {
			defer func() {
				if r := recover(); r != nil {
					stack := debug.Stack()
					err = fmt.Errorf("init panic: %v\n%s", r, stack)
					log.Error("Task panic during init",
						logger.NewField("task", task.Info()),
						logger.NewField("recover", r),
						logger.NewField("stack", stack),
					)
				}
			}()
			log.Info("Initializing",
				logger.NewField("task", task.Info()),
			)
			return worker.observe(initCtx, task)
		})
	}

	if err := initGroup.Wait(); err != nil {
		return nil, fmt.Errorf("failed to initialize tasks: %w", err)
	}

	for i := 0; i < len(tasks); i++ {
		task := tasks[i]
		worker.wg.Add(1)
		go func() {
			defer worker.wg.Done()
			worker.runBackgroundTask(ctx, task)
		}()
	}

	return worker, nil
}

// Wait блокируется, пока все периодические задачи не остановятся.
// Возвращает управление только после отмены ctx, переданного в New.
func (w *Worker) Wait() {
	w.wg.Wait()
}

func (w *Worker) runBackgroundTask(ctx context.Context, task Task) {
	ttl := task.TTL()
	if ttl <= 0 {
		w.log.Warn("invalid TTL, skipping periodic execution",
			logger.NewField("task", task.Info()),
			logger.NewField("TTL", ttl),
		)
		return
	}
	w.log.Info("Starting periodic execution",
		logger.NewField("task", task.Info()),
		logger.NewField("TTL", ttl),
	)

	ticker := time.NewTicker(ttl)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			w.log.Warn("Stopping task (context cancelled)",
				logger.NewField("task", task.Info()),
			)
			return
		case <-ticker.C:
			w.executeTaskSafely(ctx, task)
		}
	}
}

func (w *Worker) executeTaskSafely(ctx context.Context, task Task) {
	defer func() {
		if r := recover(); r != nil {
			stack := debug.Stack()

			w.log.Error("Background task panic",
				logger.NewField("task", task.Info()),
				logger.NewField("recover", r),
				logger.NewField("stack", stack),
			)
		}
	}()

	if err := w.observe(ctx, task); err != nil {
		w.log.Error("Background task failed",
			logger.NewField("task", task.Info()),
			logger.NewField("error", err),
		)
	}
}

// observe выполняет один запуск задачи в отдельном спане.
func (w *Worker) observe(ctx context.Context, task Task) error {
	ctx, span := otel.Tracer(tracerName).Start(ctx, "background."+task.Info(),
		trace.WithSpanKind(trace.SpanKindInternal),
		trace.WithAttributes(attribute.String("task", task.Info())),
	)
	defer span.End()

	start := time.Now()
	err := task.Do(ctx)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	if w.observer != nil {
		w.observer.ObserveRun(task.Info(), time.Since(start), err)
	}
	return err
}
