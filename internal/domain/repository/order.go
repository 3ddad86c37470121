package repository

import (
	"context"

	"github.com/polkiloo/storefront/internal/domain/model"
)

// OrderMutation modifies a locked order. Returning an error aborts the update.
type OrderMutation func(order *model.Order) error

// OrderRepository describes persistence operations with orders.
type OrderRepository interface {
	// Place stores order and decrements stock of every item atomically.
	// It fails with ErrInsufficientStock without persisting anything when
	// any product cannot cover requested quantity.
	Place(ctx context.Context, order *model.Order) error
	GetByID(ctx context.Context, id int64) (*model.Order, error)
	List(ctx context.Context, filter model.OrderFilter) ([]model.Order, int, error)
	// Update applies fn to the order while holding a row lock and persists
	// status, payment status and tracking code.
	Update(ctx context.Context, id int64, fn OrderMutation) (*model.Order, error)
	Stats(ctx context.Context) (model.OrderStats, error)
	CountByUser(ctx context.Context, userID int64) (int, error)
}
