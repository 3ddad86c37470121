package errors

import (
	"errors"
	"fmt"
)

// Error classes. Handlers map them to transport status codes.
var (
	ErrValidation    = errors.New("validation failed")
	ErrNotFound      = errors.New("not found")
	ErrForbidden     = errors.New("forbidden")
	ErrUnauthorized  = errors.New("unauthorized")
	ErrAlreadyExists = errors.New("already exists")
)

// Business rule violations, all of class ErrValidation.
var (
	ErrEmptyCart            = fmt.Errorf("%w: order must contain at least one item", ErrValidation)
	ErrInvalidQuantity      = fmt.Errorf("%w: quantity must be at least 1", ErrValidation)
	ErrInsufficientStock    = fmt.Errorf("%w: insufficient stock", ErrValidation)
	ErrInvalidStatus        = fmt.Errorf("%w: invalid order status", ErrValidation)
	ErrInvalidPaymentStatus = fmt.Errorf("%w: invalid payment status", ErrValidation)
	ErrInvalidPaymentMethod = fmt.Errorf("%w: invalid payment method", ErrValidation)
	ErrIncompleteAddress    = fmt.Errorf("%w: shipping address, city, postal code and phone are required", ErrValidation)
	ErrOrderDelivered       = fmt.Errorf("%w: a delivered order cannot be cancelled", ErrValidation)
	ErrInvalidCredentials   = fmt.Errorf("%w: invalid credentials", ErrValidation)
	ErrAlreadyReviewed      = fmt.Errorf("%w: product already reviewed", ErrValidation)
	ErrInvalidRole          = fmt.Errorf("%w: invalid role", ErrValidation)
	ErrInvalidReviewStatus  = fmt.Errorf("%w: invalid review status", ErrValidation)
	ErrReviewApproved       = fmt.Errorf("%w: approved review cannot be edited", ErrValidation)
	ErrUserHasOrders        = fmt.Errorf("%w: user with orders cannot be deleted", ErrValidation)
	ErrSelfDelete           = fmt.Errorf("%w: own account cannot be deleted", ErrValidation)
)

// Validation wraps a free-form message into ErrValidation.
func Validation(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrValidation, fmt.Sprintf(format, args...))
}

// NotFound reports a missing entity of given kind and identifier.
func NotFound(kind string, id any) error {
	return fmt.Errorf("%w: %s %v", ErrNotFound, kind, id)
}
