package model

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"

	domainErrors "github.com/polkiloo/storefront/internal/domain/errors"
)

// OrderStatus describes fulfilment lifecycle.
type OrderStatus string

const (
	OrderStatusPending    OrderStatus = "pending"
	OrderStatusProcessing OrderStatus = "processing"
	OrderStatusDelivered  OrderStatus = "delivered"
	OrderStatusCancelled  OrderStatus = "cancelled"
)

// Valid reports whether status belongs to the allowed set.
func (s OrderStatus) Valid() bool {
	switch s {
	case OrderStatusPending, OrderStatusProcessing, OrderStatusDelivered, OrderStatusCancelled:
		return true
	}
	return false
}

// PaymentStatus describes payment lifecycle, independent of OrderStatus.
type PaymentStatus string

const (
	PaymentStatusPending   PaymentStatus = "pending"
	PaymentStatusCompleted PaymentStatus = "completed"
	PaymentStatusFailed    PaymentStatus = "failed"
)

// Valid reports whether status belongs to the allowed set.
func (s PaymentStatus) Valid() bool {
	switch s {
	case PaymentStatusPending, PaymentStatusCompleted, PaymentStatusFailed:
		return true
	}
	return false
}

// PaymentMethod is chosen at checkout and never changes.
type PaymentMethod string

const (
	PaymentMethodOnline PaymentMethod = "online"
	PaymentMethodCash   PaymentMethod = "cash"
)

// Valid reports whether method belongs to the allowed set.
func (m PaymentMethod) Valid() bool {
	return m == PaymentMethodOnline || m == PaymentMethodCash
}

// ShippingAddress is a value object; every field is required.
type ShippingAddress struct {
	Address    string
	City       string
	PostalCode string
	Phone      string
}

// Complete reports whether all fields carry non-blank values.
func (a ShippingAddress) Complete() bool {
	for _, v := range []string{a.Address, a.City, a.PostalCode, a.Phone} {
		if strings.TrimSpace(v) == "" {
			return false
		}
	}
	return true
}

// OrderItem is a line item with unit price captured at checkout.
type OrderItem struct {
	ProductID int64
	Title     string
	Quantity  int
	Price     decimal.Decimal
}

// Subtotal returns quantity multiplied by unit price.
func (i OrderItem) Subtotal() decimal.Decimal {
	return i.Price.Mul(decimal.NewFromInt(int64(i.Quantity)))
}

// Order describes a purchase placed by a user.
type Order struct {
	ID              int64
	UserID          int64
	Items           []OrderItem
	TotalPrice      decimal.Decimal
	Status          OrderStatus
	ShippingAddress ShippingAddress
	PaymentMethod   PaymentMethod
	PaymentStatus   PaymentStatus
	TrackingCode    string
	Notes           string
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// CalculateTotal sums item subtotals and stores the result in TotalPrice.
func (o *Order) CalculateTotal() decimal.Decimal {
	total := decimal.Zero
	for _, item := range o.Items {
		total = total.Add(item.Subtotal())
	}
	o.TotalPrice = total
	return total
}

// IsPaid reports whether payment completed.
func (o *Order) IsPaid() bool {
	return o.PaymentStatus == PaymentStatusCompleted
}

// IsDelivered reports whether order reached the customer.
func (o *Order) IsDelivered() bool {
	return o.Status == OrderStatusDelivered
}

// SetStatus moves order to status. Delivered orders cannot become cancelled.
func (o *Order) SetStatus(status OrderStatus) error {
	if !status.Valid() {
		return domainErrors.ErrInvalidStatus
	}
	if status == OrderStatusCancelled && o.IsDelivered() {
		return domainErrors.ErrOrderDelivered
	}
	o.Status = status
	return nil
}

// Cancel marks order cancelled unless it was delivered.
func (o *Order) Cancel() error {
	return o.SetStatus(OrderStatusCancelled)
}

// SetPaymentStatus records payment outcome.
func (o *Order) SetPaymentStatus(status PaymentStatus) error {
	if !status.Valid() {
		return domainErrors.ErrInvalidPaymentStatus
	}
	o.PaymentStatus = status
	return nil
}

// OrderFilter narrows order listings. Zero UserID and empty Status match everything.
type OrderFilter struct {
	UserID int64
	Status OrderStatus
	Page   Page
}

// OrderStats aggregates totals across all orders.
type OrderStats struct {
	Count   int
	Revenue decimal.Decimal
}
