package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// OrderStatus represents the lifecycle state of an order.
type OrderStatus string

// List of possible order statuses
const (
	OrderPending   OrderStatus = "pending"
	OrderActive    OrderStatus = "active"
	OrderCompleted OrderStatus = "completed"
)

var allowedOrderStatuses = [...]OrderStatus{
	OrderPending, OrderActive, OrderCompleted,
}

// Valid checks if the OrderStatus is valid
func (s OrderStatus) Valid() bool {
	for _, v := range allowedOrderStatuses {
		if s == v {
			return true
		}
	}
	return false
}

// CanTransitionTo reports whether next is a legal forward transition.
// Orders move pending → active → completed and never backward.
func (s OrderStatus) CanTransitionTo(next OrderStatus) bool {
	switch s {
	case OrderPending:
		return next == OrderActive
	case OrderActive:
		return next == OrderCompleted
	default:
		return false
	}
}

// Coords is a geographic point on the city map.
type Coords struct {
	Lat float64
	Lng float64
}

// Valid checks that the point is within geographic bounds.
func (c Coords) Valid() bool {
	return c.Lat >= -90 && c.Lat <= 90 && c.Lng >= -180 && c.Lng <= 180
}

// Order represents a point-to-point delivery request.
// CourierPhone is nil until the order leaves the pending state.
type Order struct {
	ID             string
	ClientPhone    string
	CourierPhone   *string
	From           Coords
	To             Coords
	DistanceMeters int64
	Price          decimal.Decimal
	Commission     decimal.Decimal
	Status         OrderStatus
	CreatedAt      time.Time
}

// AcceptResult - struct representing the outcome of a successful acceptance.
type AcceptResult struct {
	OrderID      string
	CourierPhone string
	Commission   decimal.Decimal
}
