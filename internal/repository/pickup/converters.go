package pickup

import (
	"pickup/internal/entities"
)

func ToDomain(m *PickupRequestDB, items []LineItemDB) *entities.PickupRequest {
	if m == nil {
		return nil
	}

	request := &entities.PickupRequest{
		ID:                  m.ID,
		CustomerID:          m.CustomerID,
		PharmacyID:          m.PharmacyID,
		Status:              entities.PickupStatus(m.Status),
		Version:             m.Version,
		LineItems:           ToDomainLineItems(items),
		CustomerMemo:        m.CustomerMemo,
		PharmacyMemo:        m.PharmacyMemo,
		RejectionReason:     m.RejectionReason,
		CancelReason:        m.CancelReason,
		TotalAmount:         m.TotalAmount,
		EstimatedPickupDate: m.EstimatedPickupDate,
		RequestedAt:         m.RequestedAt,
		AcceptedAt:          m.AcceptedAt,
		PreparedAt:          m.PreparedAt,
		ReadyAt:             m.ReadyAt,
		CompletedAt:         m.CompletedAt,
		RejectedAt:          m.RejectedAt,
		CanceledAt:          m.CanceledAt,
		AutoCancelDeadline:  m.AutoCancelDeadline,
		UpdatedAt:           m.UpdatedAt,
	}
	if m.CanceledBy != nil {
		role := entities.ActorRole(*m.CanceledBy)
		request.CanceledBy = &role
	}
	return request
}

func FromDomain(r *entities.PickupRequest) *PickupRequestDB {
	if r == nil {
		return nil
	}

	m := &PickupRequestDB{
		ID:                  r.ID,
		CustomerID:          r.CustomerID,
		PharmacyID:          r.PharmacyID,
		Status:              r.Status.String(),
		Version:             r.Version,
		CustomerMemo:        r.CustomerMemo,
		PharmacyMemo:        r.PharmacyMemo,
		RejectionReason:     r.RejectionReason,
		CancelReason:        r.CancelReason,
		TotalAmount:         r.TotalAmount,
		EstimatedPickupDate: r.EstimatedPickupDate,
		RequestedAt:         r.RequestedAt,
		AcceptedAt:          r.AcceptedAt,
		PreparedAt:          r.PreparedAt,
		ReadyAt:             r.ReadyAt,
		CompletedAt:         r.CompletedAt,
		RejectedAt:          r.RejectedAt,
		CanceledAt:          r.CanceledAt,
		AutoCancelDeadline:  r.AutoCancelDeadline,
		UpdatedAt:           r.UpdatedAt,
	}
	if r.CanceledBy != nil {
		role := r.CanceledBy.String()
		m.CanceledBy = &role
	}
	return m
}

func ToDomainLineItems(items []LineItemDB) []entities.PickupLineItem {
	result := make([]entities.PickupLineItem, len(items))
	for i, item := range items {
		result[i] = entities.PickupLineItem{
			Position:     item.Position,
			CategoryID:   item.CategoryID,
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
	return result
}

func FromDomainLineItems(requestID string, items []entities.PickupLineItem) []LineItemDB {
	result := make([]LineItemDB, len(items))
	for i, item := range items {
		result[i] = LineItemDB{
			RequestID:    requestID,
			Position:     item.Position,
			CategoryID:   item.CategoryID,
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
	return result
}
