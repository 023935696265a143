package lifecycle

import (
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/IBM/sarama"
	"pickup/internal/entities"
)

const headerEventType = "event-type"

// EventMessage - формат значения сообщения в топике жизненного цикла.
type EventMessage struct {
	EventID        int64     `json:"eventId"`
	RequestID      string    `json:"requestId"`
	PreviousStatus *string   `json:"previousStatus"`
	NewStatus      string    `json:"newStatus"`
	ActorRole      string    `json:"actorRole"`
	ActorID        int64     `json:"actorId,omitempty"`
	OccurredAt     time.Time `json:"occurredAt"`
}

func toMessage(event entities.LifecycleEvent) EventMessage {
	msg := EventMessage{
		EventID:    event.ID,
		RequestID:  event.RequestID,
		NewStatus:  event.NewStatus.String(),
		ActorRole:  event.ActorRole.String(),
		ActorID:    event.ActorID,
		OccurredAt: event.OccurredAt.UTC(),
	}
	if event.PreviousStatus != "" {
		prev := event.PreviousStatus.String()
		msg.PreviousStatus = &prev
	}
	return msg
}

func toProducerMessages(topic string, events []entities.LifecycleEvent) ([]*sarama.ProducerMessage, error) {
	msgs := make([]*sarama.ProducerMessage, 0, len(events))
	for _, event := range events {
		value, err := json.Marshal(toMessage(event))
		if err != nil {
			return nil, fmt.Errorf("marshal event %d: %w", event.ID, err)
		}

		msgs = append(msgs, &sarama.ProducerMessage{
			Topic: topic,
			Key:   sarama.StringEncoder(event.RequestID),
			Value: sarama.ByteEncoder(value),
			Headers: []sarama.RecordHeader{
				{Key: []byte(headerEventType), Value: []byte("pickup." + event.NewStatus.String())},
				{Key: []byte("event-id"), Value: []byte(strconv.FormatInt(event.ID, 10))},
			},
		})
	}
	return msgs, nil
}
