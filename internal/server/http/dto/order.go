package dto

import "time"

// OrderItemRequest is a cart line. Price sent by clients is ignored.
type OrderItemRequest struct {
	Product  int64    `json:"product"`
	Quantity int      `json:"quantity"`
	Price    *float64 `json:"price,omitempty"`
}

// ShippingAddress describes delivery destination.
type ShippingAddress struct {
	Address    string `json:"address"`
	City       string `json:"city"`
	PostalCode string `json:"postalCode"`
	Phone      string `json:"phone"`
}

// CreateOrderRequest describes checkout payload.
type CreateOrderRequest struct {
	Items           []OrderItemRequest `json:"items"`
	ShippingAddress ShippingAddress    `json:"shippingAddress"`
	PaymentMethod   string             `json:"paymentMethod"`
	Notes           string             `json:"notes"`
}

// OrderItemResponse describes line item with captured unit price.
type OrderItemResponse struct {
	Product  int64   `json:"product"`
	Title    string  `json:"title"`
	Quantity int     `json:"quantity"`
	Price    float64 `json:"price"`
}

// OrderResponse describes order returned to clients.
type OrderResponse struct {
	ID              int64               `json:"id"`
	User            int64               `json:"user"`
	Items           []OrderItemResponse `json:"items"`
	TotalPrice      float64             `json:"totalPrice"`
	Status          string              `json:"status"`
	ShippingAddress ShippingAddress     `json:"shippingAddress"`
	PaymentMethod   string              `json:"paymentMethod"`
	PaymentStatus   string              `json:"paymentStatus"`
	TrackingCode    string              `json:"trackingCode,omitempty"`
	Notes           string              `json:"notes,omitempty"`
	CreatedAt       time.Time           `json:"createdAt"`
	UpdatedAt       time.Time           `json:"updatedAt"`
}

// OrderStatusRequest changes fulfilment status.
type OrderStatusRequest struct {
	Status       string  `json:"status"`
	TrackingCode *string `json:"trackingCode"`
}

// PaymentStatusRequest changes payment status.
type PaymentStatusRequest struct {
	PaymentStatus string `json:"paymentStatus"`
}
