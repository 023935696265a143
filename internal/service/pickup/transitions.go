package pickup

import (
	"fmt"
	"math"
	"strings"

	"pickup/internal/entities"
)

// Transition - ребро графа статусов и роль, которой оно разрешено.
type Transition struct {
	From  entities.PickupStatus
	To    entities.PickupStatus
	Actor entities.ActorRole
}

// transitions - единственное описание графа статусов заявки.
var transitions = []Transition{
	{From: entities.StatusRequested, To: entities.StatusAccepted, Actor: entities.RolePharmacy},
	{From: entities.StatusRequested, To: entities.StatusRejected, Actor: entities.RolePharmacy},
	{From: entities.StatusRequested, To: entities.StatusWaiting, Actor: entities.RolePharmacy},
	{From: entities.StatusRequested, To: entities.StatusCanceled, Actor: entities.RoleCustomer},
	{From: entities.StatusRequested, To: entities.StatusCanceled, Actor: entities.RolePharmacy},
	{From: entities.StatusRequested, To: entities.StatusCanceled, Actor: entities.RoleSystem},

	{From: entities.StatusWaiting, To: entities.StatusAccepted, Actor: entities.RolePharmacy},
	{From: entities.StatusWaiting, To: entities.StatusCanceled, Actor: entities.RoleCustomer},
	{From: entities.StatusWaiting, To: entities.StatusCanceled, Actor: entities.RolePharmacy},
	{From: entities.StatusWaiting, To: entities.StatusCanceled, Actor: entities.RoleSystem},

	// после того как аптека взяла заявку в работу, автоотмена не применяется
	{From: entities.StatusAccepted, To: entities.StatusPreparing, Actor: entities.RolePharmacy},
	{From: entities.StatusAccepted, To: entities.StatusCanceled, Actor: entities.RoleCustomer},
	{From: entities.StatusAccepted, To: entities.StatusCanceled, Actor: entities.RolePharmacy},

	{From: entities.StatusPreparing, To: entities.StatusReady, Actor: entities.RolePharmacy},
	{From: entities.StatusPreparing, To: entities.StatusCanceled, Actor: entities.RoleCustomer},
	{From: entities.StatusPreparing, To: entities.StatusCanceled, Actor: entities.RolePharmacy},

	{From: entities.StatusReady, To: entities.StatusCompleted, Actor: entities.RolePharmacy},
	{From: entities.StatusReady, To: entities.StatusCanceled, Actor: entities.RoleCustomer},
	{From: entities.StatusReady, To: entities.StatusCanceled, Actor: entities.RolePharmacy},
}

type edge struct {
	From entities.PickupStatus
	To   entities.PickupStatus
}

var edgeRoles = func() map[edge]map[entities.ActorRole]bool {
	m := make(map[edge]map[entities.ActorRole]bool)
	for _, t := range transitions {
		key := edge{From: t.From, To: t.To}
		if m[key] == nil {
			m[key] = make(map[entities.ActorRole]bool)
		}
		m[key][t.Actor] = true
	}
	return m
}()

// Transitions возвращает копию графа (документация, тесты).
func Transitions() []Transition {
	out := make([]Transition, len(transitions))
	copy(out, transitions)
	return out
}

// NextStatuses - статусы, достижимые из from хоть какой-то ролью.
func NextStatuses(from entities.PickupStatus) []entities.PickupStatus {
	var next []entities.PickupStatus
	seen := make(map[entities.PickupStatus]bool)
	for _, t := range transitions {
		if t.From == from && !seen[t.To] {
			next = append(next, t.To)
			seen[t.To] = true
		}
	}
	return next
}

// ValidateTransition проверяет ребро и право роли на него.
// Ребра нет в графе - ErrInvalidTransition, ребро есть, но не для этой роли - ErrForbidden.
func ValidateTransition(current, target entities.PickupStatus, role entities.ActorRole) error {
	roles, ok := edgeRoles[edge{From: current, To: target}]
	if !ok {
		return fmt.Errorf("%w: %s -> %s (allowed: %s)",
			ErrInvalidTransition, current, target, describeNext(current))
	}
	if !roles[role] {
		return fmt.Errorf("%w: %s may not move request %s -> %s", ErrForbidden, role, current, target)
	}
	return nil
}

// ValidatePayload проверяет данные перехода для целевого статуса.
// Вызывается после ValidateTransition.
func ValidatePayload(request *entities.PickupRequest, target entities.PickupStatus, actor entities.Actor, payload entities.TransitionPayload) error {
	if payload.PharmacyMemo != nil && actor.Role != entities.RolePharmacy {
		return fmt.Errorf("%w: pharmacy memo is set by pharmacy only", ErrForbidden)
	}

	if target != entities.StatusRejected && payload.RejectionReason != nil {
		return fmt.Errorf("%w: rejection reason is only accepted for %s", ErrInvalidInput, entities.StatusRejected)
	}
	if target != entities.StatusCanceled && (payload.CancelReason != nil || payload.CanceledBy != nil) {
		return fmt.Errorf("%w: cancel reason is only accepted for %s", ErrInvalidInput, entities.StatusCanceled)
	}
	if target != entities.StatusAccepted && hasPricing(payload) {
		return fmt.Errorf("%w: pricing and pickup date are only accepted for %s", ErrInvalidInput, entities.StatusAccepted)
	}

	switch target {
	case entities.StatusRejected:
		if isBlank(payload.RejectionReason) {
			return fmt.Errorf("%w: rejection reason is required", ErrInvalidInput)
		}
	case entities.StatusCanceled:
		return validateCancel(actor, payload)
	case entities.StatusAccepted:
		return validatePricing(request, payload)
	}

	return nil
}

func validateCancel(actor entities.Actor, payload entities.TransitionPayload) error {
	if isBlank(payload.CancelReason) {
		return fmt.Errorf("%w: cancel reason is required", ErrInvalidInput)
	}
	if payload.CanceledBy == nil {
		return fmt.Errorf("%w: canceledBy is required", ErrInvalidInput)
	}
	if *payload.CanceledBy != actor.Role {
		return fmt.Errorf("%w: %s may not cancel on behalf of %s", ErrForbidden, actor.Role, *payload.CanceledBy)
	}
	return nil
}

func validatePricing(request *entities.PickupRequest, payload entities.TransitionPayload) error {
	if payload.TotalAmount != nil && *payload.TotalAmount < 0 {
		return fmt.Errorf("%w: total amount must not be negative", ErrInvalidInput)
	}

	seen := make(map[int]bool, len(payload.ItemPrices))
	for _, price := range payload.ItemPrices {
		if price.Position < 1 || price.Position > len(request.LineItems) {
			return fmt.Errorf("%w: no line item at position %d", ErrInvalidInput, price.Position)
		}
		if seen[price.Position] {
			return fmt.Errorf("%w: duplicate price for position %d", ErrInvalidInput, price.Position)
		}
		seen[price.Position] = true

		if !isValidPrice(price.UnitPrice) || !isValidPrice(price.TotalPrice) {
			return fmt.Errorf("%w: price for position %d must not be negative", ErrInvalidInput, price.Position)
		}
	}

	if payload.TotalAmount == nil {
		if _, _, err := lineItemsTotal(request.LineItems, payload.ItemPrices); err != nil {
			return err
		}
	}

	if payload.EstimatedPickupDate != nil && payload.EstimatedPickupDate.Before(startOfDay(request.RequestedAt)) {
		return fmt.Errorf("%w: estimated pickup date is before the request date", ErrInvalidInput)
	}

	return nil
}

// lineItemsTotal суммирует totalPrice позиций поверх новых цен из prices.
// complete=false, если хоть у одной позиции итоговой цены нет.
// Позиции в prices должны быть уже проверены.
func lineItemsTotal(items []entities.PickupLineItem, prices []entities.ItemPrice) (sum int64, complete bool, err error) {
	totals := make([]*int64, len(items))
	for i := range items {
		totals[i] = items[i].TotalPrice
	}
	for _, price := range prices {
		if price.TotalPrice != nil {
			totals[price.Position-1] = price.TotalPrice
		}
	}

	for _, total := range totals {
		if total == nil {
			return 0, false, nil
		}
		if *total > math.MaxInt64-sum {
			return 0, false, fmt.Errorf("%w: sum of line item prices overflows total amount", ErrInvalidInput)
		}
		sum += *total
	}

	return sum, true, nil
}

func hasPricing(payload entities.TransitionPayload) bool {
	return payload.TotalAmount != nil || payload.EstimatedPickupDate != nil || len(payload.ItemPrices) > 0
}

func describeNext(status entities.PickupStatus) string {
	next := NextStatuses(status)
	if len(next) == 0 {
		return "none, terminal state"
	}
	names := make([]string, len(next))
	for i, s := range next {
		names[i] = s.String()
	}
	return strings.Join(names, ", ")
}
