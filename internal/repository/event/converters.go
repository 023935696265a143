package event

import "pickup/internal/entities"

func ToDomain(m *EventDB) entities.LifecycleEvent {
	return entities.LifecycleEvent{
		ID:             m.ID,
		RequestID:      m.RequestID,
		PreviousStatus: entities.PickupStatus(m.PreviousStatus),
		NewStatus:      entities.PickupStatus(m.NewStatus),
		ActorRole:      entities.ActorRole(m.ActorRole),
		ActorID:        m.ActorID,
		OccurredAt:     m.OccurredAt,
		PublishedAt:    m.PublishedAt,
	}
}

func FromDomain(e *entities.LifecycleEvent) *EventDB {
	return &EventDB{
		ID:             e.ID,
		RequestID:      e.RequestID,
		PreviousStatus: e.PreviousStatus.String(),
		NewStatus:      e.NewStatus.String(),
		ActorRole:      e.ActorRole.String(),
		ActorID:        e.ActorID,
		OccurredAt:     e.OccurredAt,
		PublishedAt:    e.PublishedAt,
	}
}
