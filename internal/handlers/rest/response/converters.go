package response

import (
	"github.com/google/uuid"
	openapi_types "github.com/oapi-codegen/runtime/types"
	"pickup/internal/entities"
	"pickup/internal/generated/dto"
)

func PickupRequest(r *entities.PickupRequest) dto.PickupRequest {
	res := dto.PickupRequest{
		Id:                 parseID(r.ID),
		CustomerId:         r.CustomerID,
		PharmacyId:         r.PharmacyID,
		Status:             dto.PickupStatus(r.Status),
		Version:            r.Version,
		LineItems:          make([]dto.LineItem, len(r.LineItems)),
		CustomerMemo:       r.CustomerMemo,
		PharmacyMemo:       r.PharmacyMemo,
		RejectionReason:    r.RejectionReason,
		CancelReason:       r.CancelReason,
		TotalAmount:        r.TotalAmount,
		RequestedAt:        r.RequestedAt,
		AcceptedAt:         r.AcceptedAt,
		PreparedAt:         r.PreparedAt,
		ReadyAt:            r.ReadyAt,
		CompletedAt:        r.CompletedAt,
		RejectedAt:         r.RejectedAt,
		CanceledAt:         r.CanceledAt,
		AutoCancelDeadline: r.AutoCancelDeadline,
		UpdatedAt:          r.UpdatedAt,
	}

	if r.CanceledBy != nil {
		role := dto.ActorRole(*r.CanceledBy)
		res.CanceledBy = &role
	}
	if r.EstimatedPickupDate != nil {
		res.EstimatedPickupDate = &openapi_types.Date{Time: *r.EstimatedPickupDate}
	}

	for i, item := range r.LineItems {
		res.LineItems[i] = dto.LineItem{
			Position:     item.Position,
			CategoryId:   item.CategoryID,
			CategoryName: item.CategoryName,
			ProductName:  item.ProductName,
			Manufacturer: item.Manufacturer,
			Quantity:     item.Quantity,
			PetName:      item.PetName,
			PetType:      item.PetType,
			Note:         item.Note,
			UnitPrice:    item.UnitPrice,
			TotalPrice:   item.TotalPrice,
		}
	}
	return res
}

func PickupRequests(requests []entities.PickupRequest) []dto.PickupRequest {
	res := make([]dto.PickupRequest, len(requests))
	for i := range requests {
		res[i] = PickupRequest(&requests[i])
	}
	return res
}

func LifecycleEvents(events []entities.LifecycleEvent) []dto.LifecycleEvent {
	res := make([]dto.LifecycleEvent, len(events))
	for i, e := range events {
		res[i] = dto.LifecycleEvent{
			Id:         e.ID,
			RequestId:  parseID(e.RequestID),
			NewStatus:  dto.PickupStatus(e.NewStatus),
			ActorRole:  dto.ActorRole(e.ActorRole),
			ActorId:    e.ActorID,
			OccurredAt: e.OccurredAt,
		}
		// у события создания предыдущего статуса нет
		if e.PreviousStatus != "" {
			prev := dto.PickupStatus(e.PreviousStatus)
			res[i].PreviousStatus = &prev
		}
	}
	return res
}

func PharmacyStats(s *entities.PharmacyStats) dto.PharmacyStats {
	counts := make(map[string]int64, len(s.CountPerStatus))
	for status, n := range s.CountPerStatus {
		counts[status.String()] = n
	}

	return dto.PharmacyStats{
		PharmacyId:     s.PharmacyID,
		CountPerStatus: counts,
		TodayCompleted: s.TodayCompleted,
		WeekCompleted:  s.WeekCompleted,
		MonthCompleted: s.MonthCompleted,
		ComputedAt:     s.ComputedAt,
	}
}

// parseID: идентификаторы выдаёт сервис через uuid.New, поэтому разбор не падает.
func parseID(id string) openapi_types.UUID {
	parsed, err := uuid.Parse(id)
	if err != nil {
		return uuid.Nil
	}
	return parsed
}
