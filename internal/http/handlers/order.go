package handlers

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"mogilev-express/internal/apperr"
	"mogilev-express/internal/domain"
	"mogilev-express/internal/logx"
	"mogilev-express/internal/service/orders"
)

// OrderHandler handles HTTP requests for delivery orders.
type OrderHandler struct {
	orders  ordersUsecase
	accepts acceptUsecase
	logger  logx.Logger
}

// NewOrderHandler creates a new OrderHandler.
func NewOrderHandler(logger logx.Logger, ordersUC ordersUsecase, acceptUC acceptUsecase) *OrderHandler {
	return &OrderHandler{orders: ordersUC, accepts: acceptUC, logger: logger}
}

// Create handles POST /api/orders.
// @Summary Разместить заказ на доставку
// @Tags orders
// @Accept json
// @Produce json
// @Param request body createOrderRequest true "Order payload"
// @Success 201 {object} orderResponse
// @Failure 400 {object} ErrorResponse "invalid input"
// @Failure 500 {object} ErrorResponse "internal error"
// @Router /api/orders [post]
func (h *OrderHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req createOrderRequest
	if ok := decodeJSON(h.logger, w, r, &req); !ok {
		return
	}

	o, err := h.orders.Create(r.Context(), orders.CreateRequest{
		ClientPhone:    req.ClientPhone,
		From:           domain.Coords{Lat: req.From.Lat, Lng: req.From.Lng},
		To:             domain.Coords{Lat: req.To.Lat, Lng: req.To.Lng},
		DistanceMeters: req.Distance,
	})
	switch {
	case err == nil:
		writeJSON(h.logger, w, r, http.StatusCreated, orderToResponse(o))
	case errors.Is(err, apperr.ErrInvalid):
		writeError(h.logger, w, r, http.StatusBadRequest, "invalid input")
	default:
		writeError(h.logger, w, r, http.StatusInternalServerError, "internal error")
	}
}

// Get handles GET /api/orders/{id}.
func (h *OrderHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	o, err := h.orders.Get(r.Context(), id)
	switch {
	case err == nil:
		writeJSON(h.logger, w, r, http.StatusOK, orderToResponse(*o))
	case errors.Is(err, apperr.ErrInvalid):
		writeError(h.logger, w, r, http.StatusBadRequest, "invalid id")
	case errors.Is(err, apperr.ErrNotFound):
		writeError(h.logger, w, r, http.StatusNotFound, "order not found")
	default:
		writeError(h.logger, w, r, http.StatusInternalServerError, "internal error")
	}
}

// ListPending handles GET /api/orders/pending.
func (h *OrderHandler) ListPending(w http.ResponseWriter, r *http.Request) {
	list, err := h.orders.ListPending(r.Context())
	if err != nil {
		writeError(h.logger, w, r, http.StatusInternalServerError, "internal error")
		return
	}
	writeJSON(h.logger, w, r, http.StatusOK, ordersToResponse(list))
}

// Accept handles POST /api/orders/accept.
// @Summary Принять заказ курьером
// @Description Курьер забирает заказ, комиссия списывается с баланса
// @Tags orders
// @Accept json
// @Produce json
// @Param request body acceptOrderRequest true "Accept payload"
// @Success 200 {object} acceptOrderResponse
// @Failure 400 {object} ErrorResponse "invalid input"
// @Failure 402 {object} ErrorResponse "insufficient funds"
// @Failure 404 {object} ErrorResponse "order or courier not found"
// @Failure 409 {object} ErrorResponse "order already taken"
// @Failure 500 {object} ErrorResponse "internal error"
// @Router /api/orders/accept [post]
func (h *OrderHandler) Accept(w http.ResponseWriter, r *http.Request) {
	var req acceptOrderRequest
	if ok := decodeJSON(h.logger, w, r, &req); !ok {
		return
	}

	res, err := h.accepts.Accept(r.Context(), req.OrderID, req.CourierPhone)
	switch {
	case err == nil:
		writeJSON(h.logger, w, r, http.StatusOK, acceptOrderResponse{
			Success:    true,
			OrderID:    res.OrderID,
			Commission: res.Commission.InexactFloat64(),
		})
	case errors.Is(err, apperr.ErrInvalid):
		writeError(h.logger, w, r, http.StatusBadRequest, "invalid input")
	case errors.Is(err, apperr.ErrNotFound):
		writeError(h.logger, w, r, http.StatusNotFound, "order or courier not found")
	case errors.Is(err, apperr.ErrOrderTaken):
		writeError(h.logger, w, r, http.StatusConflict, "order already taken")
	case errors.Is(err, apperr.ErrInsufficientFunds):
		writeError(h.logger, w, r, http.StatusPaymentRequired, "insufficient funds")
	default:
		writeError(h.logger, w, r, http.StatusInternalServerError, "internal error")
	}
}
