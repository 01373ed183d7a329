package apperr

import "errors"

// ErrInvalid is returned when the input fails domain validation.
var ErrInvalid = errors.New("invalid input")

// ErrNotFound indicates that the requested resource does not exist.
var ErrNotFound = errors.New("not found")

// ErrConflict indicates a uniqueness or state conflict (HTTP 409).
var ErrConflict = errors.New("conflict")

// ErrOrderTaken is returned when an order is no longer pending at acceptance time.
var ErrOrderTaken = errors.New("order already taken")

// ErrInsufficientFunds is returned when a courier balance does not cover the order commission.
var ErrInsufficientFunds = errors.New("insufficient funds")
