package domain

import (
	"regexp"

	"github.com/shopspring/decimal"
)

// Role represents the role of an account.
type Role string

// List of possible account roles
const (
	RoleClient  Role = "client"
	RoleCourier Role = "courier"
)

var allowedRoles = [...]Role{RoleClient, RoleCourier}

// Valid checks if the Role is valid
func (r Role) Valid() bool {
	for _, v := range allowedRoles {
		if r == v {
			return true
		}
	}
	return false
}

// Fitness holds the step counters shown in the courier profile.
type Fitness struct {
	Steps int64
	Kcal  int64
}

// Account represents a client or courier identified by phone number.
// Balance is debited by the accept flow only and never goes negative.
type Account struct {
	Phone      string
	Role       Role
	Balance    decimal.Decimal
	Fitness    Fitness
	TelegramID int64
}

// rePhone matches Belarusian numbers without the leading plus, e.g. 375291234567.
var rePhone = regexp.MustCompile(`^375[0-9]{9}$`)

// ValidatePhone validates the phone number format
func ValidatePhone(s string) bool {
	return rePhone.MatchString(s)
}
