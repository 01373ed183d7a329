package broadcast

import (
	"time"

	"mogilev-express/internal/domain"
)

// Channel is the Redis pub/sub channel carrying freshly created orders.
const Channel = "orders:created"

// EventName is the SSE event name courier sessions subscribe to.
const EventName = "new_order"

type coordsDTO struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// OrderEvent is the wire payload every connected courier receives.
// All sessions get byte-identical content for the same order.
type OrderEvent struct {
	ID           string    `json:"id"`
	ClientPhone  string    `json:"clientPhone"`
	CourierPhone *string   `json:"courierPhone"`
	FromCoords   coordsDTO `json:"fromCoords"`
	ToCoords     coordsDTO `json:"toCoords"`
	Price        float64   `json:"price"`
	Distance     int64     `json:"distance"`
	Commission   float64   `json:"commission"`
	Status       string    `json:"status"`
	CreatedAt    time.Time `json:"createdAt"`
}

// NewOrderEvent maps a domain order onto the wire payload.
func NewOrderEvent(o domain.Order) OrderEvent {
	return OrderEvent{
		ID:           o.ID,
		ClientPhone:  o.ClientPhone,
		CourierPhone: o.CourierPhone,
		FromCoords:   coordsDTO{Lat: o.From.Lat, Lng: o.From.Lng},
		ToCoords:     coordsDTO{Lat: o.To.Lat, Lng: o.To.Lng},
		Price:        o.Price.InexactFloat64(),
		Distance:     o.DistanceMeters,
		Commission:   o.Commission.InexactFloat64(),
		Status:       string(o.Status),
		CreatedAt:    o.CreatedAt,
	}
}
