package kafka

import (
	"strings"
	"time"
)

// EventDTO is a data transfer object for Event
type EventDTO struct {
	OrderID    string    `json:"order_id"`
	Status     string    `json:"status"`
	OccurredAt time.Time `json:"occurred_at"`
}

// ToDomain converts EventDTO to Event
func ToDomain(dto EventDTO) Event {
	return Event{
		OrderID:    strings.TrimSpace(dto.OrderID),
		Status:     strings.ToLower(strings.TrimSpace(dto.Status)),
		OccurredAt: dto.OccurredAt,
	}
}
