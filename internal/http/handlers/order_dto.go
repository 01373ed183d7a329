package handlers

import (
	"time"

	"mogilev-express/internal/domain"
)

type coordsDTO struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

type createOrderRequest struct {
	ClientPhone string    `json:"clientPhone"`
	From        coordsDTO `json:"from"`
	To          coordsDTO `json:"to"`
	Distance    int64     `json:"distance"`
}

type acceptOrderRequest struct {
	OrderID      string `json:"orderId"`
	CourierPhone string `json:"courierPhone"`
}

type acceptOrderResponse struct {
	Success    bool    `json:"success"`
	OrderID    string  `json:"orderId"`
	Commission float64 `json:"commission"`
}

type orderResponse struct {
	ID           string    `json:"id"`
	ClientPhone  string    `json:"clientPhone"`
	CourierPhone *string   `json:"courierPhone,omitempty"`
	FromCoords   coordsDTO `json:"fromCoords"`
	ToCoords     coordsDTO `json:"toCoords"`
	Price        float64   `json:"price"`
	Distance     int64     `json:"distance"`
	Commission   float64   `json:"commission"`
	Status       string    `json:"status"`
	CreatedAt    time.Time `json:"createdAt"`
}

func orderToResponse(o domain.Order) orderResponse {
	return orderResponse{
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

func ordersToResponse(list []domain.Order) []orderResponse {
	out := make([]orderResponse, 0, len(list))
	for _, o := range list {
		out = append(out, orderToResponse(o))
	}
	return out
}
