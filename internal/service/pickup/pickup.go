package pickup

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"pickup/internal/entities"
)

const (
	AutoExpiredReason = "auto-expired"

	defaultExpiryBatch = 100
)

// Service - единственная точка, через которую меняется статус заявки.
type Service struct {
	repository Repository
	events     EventRepository
	deadlines  DeadlineFactory
	txManager  TxManager
	clock      Clock
	observer   TransitionObserver
}

func New(
	repository Repository,
	events EventRepository,
	deadlines DeadlineFactory,
	txManager TxManager,
	clock Clock,
	observer TransitionObserver,
) *Service {
	return &Service{
		repository: repository,
		events:     events,
		deadlines:  deadlines,
		txManager:  txManager,
		clock:      clock,
		observer:   observer,
	}
}

func (s *Service) Create(ctx context.Context, actor entities.Actor, in entities.PickupRequestCreate) (*entities.PickupRequest, error) {
	if err := validateActor(actor); err != nil {
		return nil, err
	}
	if actor.Role != entities.RoleCustomer || actor.ID != in.CustomerID {
		return nil, fmt.Errorf("%w: requests are created by the customer themselves", ErrForbidden)
	}
	if err := validateCreate(in); err != nil {
		return nil, err
	}

	requestedAt := s.now()
	deadline, err := s.deadlines.CalculateDeadline(in.EstimatedDays, requestedAt)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}

	items := make([]entities.PickupLineItem, len(in.LineItems))
	for i, item := range in.LineItems {
		item.Position = i + 1
		items[i] = item
	}

	request := entities.PickupRequest{
		ID:                 uuid.NewString(),
		CustomerID:         in.CustomerID,
		PharmacyID:         in.PharmacyID,
		Status:             entities.StatusRequested,
		Version:            1,
		LineItems:          items,
		CustomerMemo:       in.CustomerMemo,
		RequestedAt:        requestedAt,
		AutoCancelDeadline: deadline,
		UpdatedAt:          requestedAt,
	}

	event := entities.LifecycleEvent{
		RequestID:  request.ID,
		NewStatus:  entities.StatusRequested,
		ActorRole:  actor.Role,
		ActorID:    actor.ID,
		OccurredAt: requestedAt,
	}

	err = s.txManager.Do(ctx, func(ctx context.Context) error {
		if err := s.repository.Create(ctx, request); err != nil {
			return fmt.Errorf("insert request: %w", err)
		}
		if err := s.events.Append(ctx, event); err != nil {
			return fmt.Errorf("append event: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, storeError("create pickup request", err)
	}

	return &request, nil
}

func (s *Service) Get(ctx context.Context, actor entities.Actor, id string) (*entities.PickupRequest, error) {
	if err := validateActor(actor); err != nil {
		return nil, err
	}
	if !isValidRequestID(id) {
		return nil, fmt.Errorf("%w: malformed request id", ErrInvalidInput)
	}

	request, err := s.repository.GetByID(ctx, id)
	if err != nil {
		return nil, storeError("get pickup request", err)
	}

	if err := checkOwnership(request, actor); err != nil {
		return nil, err
	}

	return request, nil
}

// History возвращает журнал переходов заявки в порядке их применения.
func (s *Service) History(ctx context.Context, actor entities.Actor, id string) ([]entities.LifecycleEvent, error) {
	if _, err := s.Get(ctx, actor, id); err != nil {
		return nil, err
	}

	events, err := s.events.ListByRequestID(ctx, id)
	if err != nil {
		return nil, storeError("list lifecycle events", err)
	}
	return events, nil
}

func (s *Service) ListForCustomer(ctx context.Context, customerID int64, status string) ([]entities.PickupRequest, error) {
	if customerID <= 0 {
		return nil, fmt.Errorf("%w: customer id is required", ErrInvalidInput)
	}
	return s.list(ctx, entities.PickupRequestFilter{CustomerID: &customerID}, status)
}

func (s *Service) ListForPharmacy(ctx context.Context, pharmacyID int64, status string) ([]entities.PickupRequest, error) {
	if pharmacyID <= 0 {
		return nil, fmt.Errorf("%w: pharmacy id is required", ErrInvalidInput)
	}
	return s.list(ctx, entities.PickupRequestFilter{PharmacyID: &pharmacyID}, status)
}

func (s *Service) list(ctx context.Context, filter entities.PickupRequestFilter, status string) ([]entities.PickupRequest, error) {
	statusFilter, err := parseStatusFilter(status)
	if err != nil {
		return nil, err
	}
	filter.Status = statusFilter

	requests, err := s.repository.List(ctx, filter)
	if err != nil {
		return nil, storeError("list pickup requests", err)
	}
	return requests, nil
}

// Transition проверяет и атомарно применяет смену статуса.
// Если между чтением и записью заявку изменил кто-то другой, возвращается ErrConflict:
// вызывающий должен перечитать заявку и принять решение заново.
func (s *Service) Transition(
	ctx context.Context,
	id string,
	actor entities.Actor,
	target entities.PickupStatus,
	payload entities.TransitionPayload,
) (*entities.PickupRequest, error) {
	var from entities.PickupStatus
	updated, err := s.transition(ctx, id, actor, target, payload, &from)
	if s.observer != nil {
		s.observer.ObserveTransition(from, target, actor.Role, resultOf(err))
	}
	return updated, err
}

func (s *Service) Cancel(ctx context.Context, id string, actor entities.Actor, reason string) (*entities.PickupRequest, error) {
	role := actor.Role
	return s.Transition(ctx, id, actor, entities.StatusCanceled, entities.TransitionPayload{
		CancelReason: &reason,
		CanceledBy:   &role,
	})
}

func (s *Service) Complete(ctx context.Context, id string, actor entities.Actor) (*entities.PickupRequest, error) {
	return s.Transition(ctx, id, actor, entities.StatusCompleted, entities.TransitionPayload{})
}

func (s *Service) transition(
	ctx context.Context,
	id string,
	actor entities.Actor,
	target entities.PickupStatus,
	payload entities.TransitionPayload,
	from *entities.PickupStatus,
) (*entities.PickupRequest, error) {
	if err := validateActor(actor); err != nil {
		return nil, err
	}
	if !isValidRequestID(id) {
		return nil, fmt.Errorf("%w: malformed request id", ErrInvalidInput)
	}
	if _, ok := entities.ParsePickupStatus(target.String()); !ok {
		return nil, fmt.Errorf("%w: unknown target status %q", ErrInvalidInput, target)
	}

	current, err := s.repository.GetByID(ctx, id)
	if err != nil {
		return nil, storeError("get pickup request", err)
	}
	*from = current.Status

	if err := checkOwnership(current, actor); err != nil {
		return nil, err
	}
	if err := ValidateTransition(current.Status, target, actor.Role); err != nil {
		return nil, err
	}
	if err := ValidatePayload(current, target, actor, payload); err != nil {
		return nil, err
	}

	updated := applyTransition(current, target, payload, s.now())

	event := entities.LifecycleEvent{
		RequestID:      updated.ID,
		PreviousStatus: current.Status,
		NewStatus:      target,
		ActorRole:      actor.Role,
		ActorID:        actor.ID,
		OccurredAt:     updated.UpdatedAt,
	}

	err = s.txManager.Do(ctx, func(ctx context.Context) error {
		err := s.repository.ApplyTransition(ctx, *updated, current.Status, current.Version)
		if err != nil {
			return fmt.Errorf("write status: %w", err)
		}
		if err := s.events.Append(ctx, event); err != nil {
			return fmt.Errorf("append event: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, storeError(fmt.Sprintf("transition %s -> %s", current.Status, target), err)
	}

	return updated, nil
}

// ExpireOverdue отменяет от имени SYSTEM все заявки в REQUESTED/WAITING с истёкшим сроком ответа.
// Заявки, которые успели сдвинуться или были изменены параллельно, пропускаются:
// следующий запуск увидит их заново, если они всё ещё просрочены.
func (s *Service) ExpireOverdue(ctx context.Context, batchSize int) (expired int, skipped int, err error) {
	if batchSize <= 0 {
		batchSize = defaultExpiryBatch
	}

	now := s.now()
	var cursor *entities.ExpiryCandidate

	for {
		candidates, err := s.repository.ListExpired(ctx, now, cursor, uint64(batchSize))
		if err != nil {
			return expired, skipped, storeError("list expired requests", err)
		}

		for _, candidate := range candidates {
			if err := ctx.Err(); err != nil {
				return expired, skipped, err
			}

			_, err := s.Cancel(ctx, candidate.ID, entities.SystemActor, AutoExpiredReason)
			switch {
			case err == nil:
				expired++
			case errors.Is(err, ErrInvalidTransition),
				errors.Is(err, ErrConflict),
				errors.Is(err, ErrForbidden),
				errors.Is(err, ErrNotFound):
				skipped++
			default:
				return expired, skipped, fmt.Errorf("expire request %s: %w", candidate.ID, err)
			}
		}

		if len(candidates) < batchSize {
			return expired, skipped, nil
		}
		last := candidates[len(candidates)-1]
		cursor = &last
	}
}

func (s *Service) now() time.Time {
	return s.clock.Now().UTC()
}

// applyTransition строит новое состояние заявки, не трогая прочитанный снимок.
func applyTransition(current *entities.PickupRequest, target entities.PickupStatus, payload entities.TransitionPayload, now time.Time) *entities.PickupRequest {
	updated := current.Clone()

	// отметки не должны идти назад даже при скачке часов
	stamp := now
	if latest := current.LatestMilestone(); latest.After(stamp) {
		stamp = latest
	}

	updated.Status = target
	updated.Version = current.Version + 1
	updated.UpdatedAt = stamp

	if payload.PharmacyMemo != nil {
		updated.PharmacyMemo = payload.PharmacyMemo
	}

	switch target {
	case entities.StatusAccepted:
		updated.AcceptedAt = &stamp
		applyPricing(updated, payload)
	case entities.StatusPreparing:
		updated.PreparedAt = &stamp
	case entities.StatusReady:
		updated.ReadyAt = &stamp
	case entities.StatusCompleted:
		updated.CompletedAt = &stamp
	case entities.StatusRejected:
		updated.RejectedAt = &stamp
		updated.RejectionReason = payload.RejectionReason
	case entities.StatusCanceled:
		updated.CanceledAt = &stamp
		updated.CancelReason = payload.CancelReason
		updated.CanceledBy = payload.CanceledBy
	}

	return updated
}

func applyPricing(request *entities.PickupRequest, payload entities.TransitionPayload) {
	for _, price := range payload.ItemPrices {
		item := &request.LineItems[price.Position-1]
		if price.UnitPrice != nil {
			item.UnitPrice = price.UnitPrice
		}
		if price.TotalPrice != nil {
			item.TotalPrice = price.TotalPrice
		}
	}

	if payload.EstimatedPickupDate != nil {
		request.EstimatedPickupDate = payload.EstimatedPickupDate
	}

	if payload.TotalAmount != nil {
		request.TotalAmount = payload.TotalAmount
		return
	}

	// переполнение отсекает validatePricing
	sum, complete, err := lineItemsTotal(request.LineItems, nil)
	if err != nil || !complete {
		return
	}
	request.TotalAmount = &sum
}
