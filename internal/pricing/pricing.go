package pricing

import (
	"github.com/shopspring/decimal"

	"mogilev-express/internal/apperr"
)

// Тариф Могилева: 2.5 BYN старт + 0.2 BYN за каждые начатые 100м свыше 300м.
const (
	freeDistanceMeters = 300
	stepMeters         = 100
)

var (
	basePrice      = decimal.RequireFromString("2.50")
	stepPrice      = decimal.RequireFromString("0.20")
	commissionRate = decimal.RequireFromString("0.15")
)

// Quote is a priced delivery: what the client pays and what the courier
// pre-pays as commission. Both values carry exactly two decimal places.
type Quote struct {
	Price      decimal.Decimal
	Commission decimal.Decimal
}

// ForDistance prices a delivery of the given length in meters.
//
// Commission is 15% of the price. All currency values are rounded
// half-up (half away from zero) to two decimal places.
func ForDistance(distanceMeters int64) (Quote, error) {
	if distanceMeters < 0 {
		return Quote{}, apperr.ErrInvalid
	}

	price := basePrice
	if distanceMeters > freeDistanceMeters {
		over := distanceMeters - freeDistanceMeters
		steps := (over + stepMeters - 1) / stepMeters // начатые, не полные
		price = price.Add(stepPrice.Mul(decimal.NewFromInt(steps)))
	}
	price = price.Round(2)

	return Quote{
		Price:      price,
		Commission: price.Mul(commissionRate).Round(2),
	}, nil
}
