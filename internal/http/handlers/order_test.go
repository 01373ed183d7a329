package handlers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mogilev-express/internal/apperr"
	"mogilev-express/internal/domain"
	"mogilev-express/internal/logx"
	"mogilev-express/internal/service/orders"
)

type stubOrdersUsecase struct {
	createFn func(ctx context.Context, req orders.CreateRequest) (domain.Order, error)
	getFn    func(ctx context.Context, id string) (*domain.Order, error)
	listFn   func(ctx context.Context) ([]domain.Order, error)
}

func (s *stubOrdersUsecase) Create(ctx context.Context, req orders.CreateRequest) (domain.Order, error) {
	if s.createFn == nil {
		panic("Create not expected in this test")
	}
	return s.createFn(ctx, req)
}

func (s *stubOrdersUsecase) Get(ctx context.Context, id string) (*domain.Order, error) {
	if s.getFn == nil {
		panic("Get not expected in this test")
	}
	return s.getFn(ctx, id)
}

func (s *stubOrdersUsecase) ListPending(ctx context.Context) ([]domain.Order, error) {
	if s.listFn == nil {
		panic("ListPending not expected in this test")
	}
	return s.listFn(ctx)
}

type stubAcceptUsecase struct {
	acceptFn func(ctx context.Context, orderID, courierPhone string) (domain.AcceptResult, error)
}

func (s *stubAcceptUsecase) Accept(ctx context.Context, orderID, courierPhone string) (domain.AcceptResult, error) {
	if s.acceptFn == nil {
		panic("Accept not expected in this test")
	}
	return s.acceptFn(ctx, orderID, courierPhone)
}

func sampleOrder() domain.Order {
	return domain.Order{
		ID:             "9f0c2c4e-9f9e-4f3a-8f6e-1a2b3c4d5e6f",
		ClientPhone:    "375291112233",
		From:           domain.Coords{Lat: 53.9006, Lng: 30.3313},
		To:             domain.Coords{Lat: 53.9139, Lng: 30.3364},
		DistanceMeters: 450,
		Price:          decimal.RequireFromString("2.90"),
		Commission:     decimal.RequireFromString("0.44"),
		Status:         domain.OrderPending,
		CreatedAt:      time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC),
	}
}

func TestOrderHandler_Create_OK(t *testing.T) {
	t.Parallel()

	// клиент шлет from/to, в ответе координаты уже как fromCoords/toCoords
	body := `{
        "clientPhone": "375291112233",
        "from": {"lat": 53.9006, "lng": 30.3313},
        "to": {"lat": 53.9139, "lng": 30.3364},
        "distance": 450
    }`
	req := httptest.NewRequest(http.MethodPost, "/api/orders", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rr := httptest.NewRecorder()

	uc := &stubOrdersUsecase{
		createFn: func(ctx context.Context, req orders.CreateRequest) (domain.Order, error) {
			require.Equal(t, "375291112233", req.ClientPhone)
			require.Equal(t, domain.Coords{Lat: 53.9006, Lng: 30.3313}, req.From)
			require.Equal(t, domain.Coords{Lat: 53.9139, Lng: 30.3364}, req.To)
			require.Equal(t, int64(450), req.DistanceMeters)
			return sampleOrder(), nil
		},
	}

	h := NewOrderHandler(logx.Nop(), uc, &stubAcceptUsecase{})
	h.Create(rr, req)

	assert.Equal(t, http.StatusCreated, rr.Code)

	expectedJSON := `{
        "id": "9f0c2c4e-9f9e-4f3a-8f6e-1a2b3c4d5e6f",
        "clientPhone": "375291112233",
        "fromCoords": {"lat": 53.9006, "lng": 30.3313},
        "toCoords": {"lat": 53.9139, "lng": 30.3364},
        "price": 2.9,
        "distance": 450,
        "commission": 0.44,
        "status": "pending",
        "createdAt": "2025-01-02T03:04:05Z"
    }`
	assert.JSONEq(t, expectedJSON, rr.Body.String())
}

func TestOrderHandler_Create_Invalid(t *testing.T) {
	t.Parallel()

	body := `{"clientPhone":"123","distance":-1,"from":{"lat":0,"lng":0},"to":{"lat":0,"lng":0}}`
	req := httptest.NewRequest(http.MethodPost, "/api/orders", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rr := httptest.NewRecorder()

	uc := &stubOrdersUsecase{
		createFn: func(ctx context.Context, req orders.CreateRequest) (domain.Order, error) {
			return domain.Order{}, apperr.ErrInvalid
		},
	}

	h := NewOrderHandler(logx.Nop(), uc, &stubAcceptUsecase{})
	h.Create(rr, req)

	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.JSONEq(t, `{"error": "invalid input"}`, rr.Body.String())
}

func TestOrderHandler_Create_BadJSON(t *testing.T) {
	t.Parallel()

	req := httptest.NewRequest(http.MethodPost, "/api/orders", strings.NewReader("{"))
	req.Header.Set("Content-Type", "application/json")
	rr := httptest.NewRecorder()

	h := NewOrderHandler(logx.Nop(), &stubOrdersUsecase{}, &stubAcceptUsecase{})
	h.Create(rr, req)

	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.JSONEq(t, `{"error": "invalid json"}`, rr.Body.String())
}

func getWithChiParam(t *testing.T, h http.HandlerFunc, param, value, target string) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest(http.MethodGet, target, nil)
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add(param, value)
	req = req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))

	rr := httptest.NewRecorder()
	h(rr, req)
	return rr
}

func TestOrderHandler_Get_OK(t *testing.T) {
	t.Parallel()

	o := sampleOrder()
	uc := &stubOrdersUsecase{
		getFn: func(ctx context.Context, id string) (*domain.Order, error) {
			require.Equal(t, o.ID, id)
			return &o, nil
		},
	}

	h := NewOrderHandler(logx.Nop(), uc, &stubAcceptUsecase{})
	rr := getWithChiParam(t, h.Get, "id", o.ID, "/api/orders/"+o.ID)

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), `"status":"pending"`)
}

func TestOrderHandler_Get_NotFound(t *testing.T) {
	t.Parallel()

	uc := &stubOrdersUsecase{
		getFn: func(ctx context.Context, id string) (*domain.Order, error) {
			return nil, apperr.ErrNotFound
		},
	}

	h := NewOrderHandler(logx.Nop(), uc, &stubAcceptUsecase{})
	rr := getWithChiParam(t, h.Get, "id", "missing", "/api/orders/missing")

	assert.Equal(t, http.StatusNotFound, rr.Code)
	assert.JSONEq(t, `{"error": "order not found"}`, rr.Body.String())
}

func TestOrderHandler_ListPending_OK(t *testing.T) {
	t.Parallel()

	uc := &stubOrdersUsecase{
		listFn: func(ctx context.Context) ([]domain.Order, error) {
			return []domain.Order{sampleOrder()}, nil
		},
	}

	h := NewOrderHandler(logx.Nop(), uc, &stubAcceptUsecase{})
	req := httptest.NewRequest(http.MethodGet, "/api/orders/pending", nil)
	rr := httptest.NewRecorder()
	h.ListPending(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), `"clientPhone":"375291112233"`)
}

func TestOrderHandler_ListPending_Empty(t *testing.T) {
	t.Parallel()

	uc := &stubOrdersUsecase{
		listFn: func(ctx context.Context) ([]domain.Order, error) {
			return nil, nil
		},
	}

	h := NewOrderHandler(logx.Nop(), uc, &stubAcceptUsecase{})
	req := httptest.NewRequest(http.MethodGet, "/api/orders/pending", nil)
	rr := httptest.NewRecorder()
	h.ListPending(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `[]`, rr.Body.String())
}

func acceptRequest(body string) *http.Request {
	req := httptest.NewRequest(http.MethodPost, "/api/orders/accept", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	return req
}

func TestOrderHandler_Accept_OK(t *testing.T) {
	t.Parallel()

	uc := &stubAcceptUsecase{
		acceptFn: func(ctx context.Context, orderID, courierPhone string) (domain.AcceptResult, error) {
			require.Equal(t, "order-1", orderID)
			require.Equal(t, "375299998877", courierPhone)
			return domain.AcceptResult{
				OrderID:      orderID,
				CourierPhone: courierPhone,
				Commission:   decimal.RequireFromString("0.44"),
			}, nil
		},
	}

	h := NewOrderHandler(logx.Nop(), &stubOrdersUsecase{}, uc)
	rr := httptest.NewRecorder()
	h.Accept(rr, acceptRequest(`{"orderId":"order-1","courierPhone":"375299998877"}`))

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `{"success": true, "orderId": "order-1", "commission": 0.44}`, rr.Body.String())
}

func TestOrderHandler_Accept_ErrorMapping(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name       string
		err        error
		wantStatus int
		wantBody   string
	}{
		{"invalid", apperr.ErrInvalid, http.StatusBadRequest, `{"error": "invalid input"}`},
		{"not found", apperr.ErrNotFound, http.StatusNotFound, `{"error": "order or courier not found"}`},
		{"taken", apperr.ErrOrderTaken, http.StatusConflict, `{"error": "order already taken"}`},
		{"no funds", apperr.ErrInsufficientFunds, http.StatusPaymentRequired, `{"error": "insufficient funds"}`},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			uc := &stubAcceptUsecase{
				acceptFn: func(ctx context.Context, orderID, courierPhone string) (domain.AcceptResult, error) {
					return domain.AcceptResult{}, tc.err
				},
			}

			h := NewOrderHandler(logx.Nop(), &stubOrdersUsecase{}, uc)
			rr := httptest.NewRecorder()
			h.Accept(rr, acceptRequest(`{"orderId":"order-1","courierPhone":"375299998877"}`))

			assert.Equal(t, tc.wantStatus, rr.Code)
			assert.JSONEq(t, tc.wantBody, rr.Body.String())
		})
	}
}
