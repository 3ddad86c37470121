package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"go.uber.org/fx"

	domainErrors "github.com/polkiloo/storefront/internal/domain/errors"
	"github.com/polkiloo/storefront/internal/domain/model"
	"github.com/polkiloo/storefront/internal/domain/repository"
)

// OrderMetrics receives order lifecycle events.
type OrderMetrics interface {
	OrderPlaced()
	OrderPlacementFailed(reason string)
	OrderTransition(field, value string)
}

type noopOrderMetrics struct{}

func (noopOrderMetrics) OrderPlaced()                   {}
func (noopOrderMetrics) OrderPlacementFailed(string)    {}
func (noopOrderMetrics) OrderTransition(string, string) {}

// Placement failure reasons reported to metrics.
const (
	failureValidation        = "validation"
	failureProductNotFound   = "product_not_found"
	failureInsufficientStock = "insufficient_stock"
	failureStorage           = "storage"
)

// CartLine is one requested product with quantity.
type CartLine struct {
	ProductID int64
	Quantity  int
}

// PlaceOrderInput is a checkout request.
type PlaceOrderInput struct {
	Items           []CartLine
	ShippingAddress model.ShippingAddress
	PaymentMethod   model.PaymentMethod
	Notes           string
}

// OrderUseCase encapsulates order lifecycle logic.
type OrderUseCase struct {
	orders   repository.OrderRepository
	products repository.ProductRepository
	paging   Pagination
	metrics  OrderMetrics
	logger   *slog.Logger
}

// OrderUseCaseParams lists OrderUseCase dependencies.
type OrderUseCaseParams struct {
	fx.In

	Orders   repository.OrderRepository
	Products repository.ProductRepository
	Paging   Pagination
	Metrics  OrderMetrics `optional:"true"`
	Logger   *slog.Logger `optional:"true"`
}

// NewOrderUseCase constructs OrderUseCase.
func NewOrderUseCase(p OrderUseCaseParams) *OrderUseCase {
	uc := &OrderUseCase{
		orders:   p.Orders,
		products: p.Products,
		paging:   p.Paging,
		metrics:  p.Metrics,
		logger:   p.Logger,
	}
	if uc.metrics == nil {
		uc.metrics = noopOrderMetrics{}
	}
	if uc.logger == nil {
		uc.logger = slog.New(slog.DiscardHandler)
	}
	return uc
}

// Place validates cart against catalog, snapshots prices and stores order
// together with stock decrements. Nothing is written unless every line is
// acceptable.
func (u *OrderUseCase) Place(ctx context.Context, principal model.Principal, in PlaceOrderInput) (*model.Order, error) {
	lines, method, err := normalizeCheckout(in)
	if err != nil {
		u.metrics.OrderPlacementFailed(failureValidation)
		return nil, err
	}

	items := make([]model.OrderItem, 0, len(lines))
	for _, line := range lines {
		product, err := u.products.GetByID(ctx, line.ProductID)
		if err != nil {
			if errors.Is(err, domainErrors.ErrNotFound) {
				u.metrics.OrderPlacementFailed(failureProductNotFound)
				return nil, domainErrors.NotFound("product", line.ProductID)
			}
			u.metrics.OrderPlacementFailed(failureStorage)
			return nil, err
		}
		if product.Stock < line.Quantity {
			u.metrics.OrderPlacementFailed(failureInsufficientStock)
			return nil, fmt.Errorf("%w: %s", domainErrors.ErrInsufficientStock, product.Title)
		}
		items = append(items, model.OrderItem{
			ProductID: product.ID,
			Title:     product.Title,
			Quantity:  line.Quantity,
			Price:     product.Price,
		})
	}

	order := &model.Order{
		UserID:          principal.UserID,
		Items:           items,
		Status:          model.OrderStatusPending,
		ShippingAddress: in.ShippingAddress,
		PaymentMethod:   method,
		PaymentStatus:   model.PaymentStatusPending,
		Notes:           strings.TrimSpace(in.Notes),
	}
	order.CalculateTotal()

	if err := u.orders.Place(ctx, order); err != nil {
		if errors.Is(err, domainErrors.ErrInsufficientStock) {
			u.metrics.OrderPlacementFailed(failureInsufficientStock)
		} else {
			u.metrics.OrderPlacementFailed(failureStorage)
			u.logger.Error("place order", slog.Int64("user_id", principal.UserID), slog.String("error", err.Error()))
		}
		return nil, err
	}

	u.metrics.OrderPlaced()
	u.logger.Info("order placed",
		slog.Int64("order_id", order.ID),
		slog.Int64("user_id", order.UserID),
		slog.String("total", order.TotalPrice.StringFixed(2)),
		slog.Int("items", len(order.Items)),
	)
	return order, nil
}

// normalizeCheckout validates request and merges duplicate product lines,
// keeping first-seen order.
func normalizeCheckout(in PlaceOrderInput) ([]CartLine, model.PaymentMethod, error) {
	if len(in.Items) == 0 {
		return nil, "", domainErrors.ErrEmptyCart
	}
	if !in.ShippingAddress.Complete() {
		return nil, "", domainErrors.ErrIncompleteAddress
	}
	method := in.PaymentMethod
	if method == "" {
		method = model.PaymentMethodOnline
	}
	if !method.Valid() {
		return nil, "", domainErrors.ErrInvalidPaymentMethod
	}

	merged := make([]CartLine, 0, len(in.Items))
	index := make(map[int64]int, len(in.Items))
	for _, line := range in.Items {
		if line.ProductID <= 0 {
			return nil, "", domainErrors.Validation("product id is required")
		}
		if line.Quantity < 1 {
			return nil, "", domainErrors.ErrInvalidQuantity
		}
		if i, ok := index[line.ProductID]; ok {
			merged[i].Quantity += line.Quantity
			continue
		}
		index[line.ProductID] = len(merged)
		merged = append(merged, line)
	}
	return merged, method, nil
}

// Get returns order visible to principal.
func (u *OrderUseCase) Get(ctx context.Context, principal model.Principal, id int64) (*model.Order, error) {
	order, err := u.orders.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !principal.CanAccess(order.UserID) {
		return nil, domainErrors.ErrForbidden
	}
	return order, nil
}

// MyOrders lists principal orders, newest first.
func (u *OrderUseCase) MyOrders(ctx context.Context, principal model.Principal, page, limit int) (PageResult[model.Order], error) {
	return u.list(ctx, model.OrderFilter{UserID: principal.UserID, Page: u.paging.Page(page, limit)})
}

// List returns all orders, optionally narrowed by status.
func (u *OrderUseCase) List(ctx context.Context, page, limit int, status model.OrderStatus) (PageResult[model.Order], error) {
	if status != "" && !status.Valid() {
		return PageResult[model.Order]{}, domainErrors.ErrInvalidStatus
	}
	return u.list(ctx, model.OrderFilter{Status: status, Page: u.paging.Page(page, limit)})
}

func (u *OrderUseCase) list(ctx context.Context, filter model.OrderFilter) (PageResult[model.Order], error) {
	orders, total, err := u.orders.List(ctx, filter)
	if err != nil {
		return PageResult[model.Order]{}, err
	}
	return newPageResult(orders, filter.Page, total), nil
}

// UpdateStatus sets status and, when given, tracking code. A delivered
// order cannot be moved to cancelled. Missing order wins over invalid status.
func (u *OrderUseCase) UpdateStatus(ctx context.Context, id int64, status model.OrderStatus, trackingCode *string) (*model.Order, error) {
	var previous model.OrderStatus
	order, err := u.orders.Update(ctx, id, func(o *model.Order) error {
		previous = o.Status
		if err := o.SetStatus(status); err != nil {
			return err
		}
		if trackingCode != nil {
			o.TrackingCode = strings.TrimSpace(*trackingCode)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	u.metrics.OrderTransition("status", string(status))
	u.logger.Info("order status changed",
		slog.Int64("order_id", id),
		slog.String("from", string(previous)),
		slog.String("to", string(status)),
	)
	return order, nil
}

// UpdatePayment records payment status independently of fulfilment status.
func (u *OrderUseCase) UpdatePayment(ctx context.Context, id int64, status model.PaymentStatus) (*model.Order, error) {
	order, err := u.orders.Update(ctx, id, func(o *model.Order) error {
		return o.SetPaymentStatus(status)
	})
	if err != nil {
		return nil, err
	}

	u.metrics.OrderTransition("payment", string(status))
	u.logger.Info("order payment changed", slog.Int64("order_id", id), slog.String("payment_status", string(status)))
	return order, nil
}

// Cancel cancels order owned by principal, or any order for administrators.
// Stock is not restored.
func (u *OrderUseCase) Cancel(ctx context.Context, principal model.Principal, id int64) (*model.Order, error) {
	order, err := u.orders.Update(ctx, id, func(o *model.Order) error {
		if !principal.CanAccess(o.UserID) {
			return domainErrors.ErrForbidden
		}
		return o.Cancel()
	})
	if err != nil {
		return nil, err
	}

	u.metrics.OrderTransition("status", string(model.OrderStatusCancelled))
	u.logger.Info("order cancelled", slog.Int64("order_id", id), slog.Int64("by", principal.UserID))
	return order, nil
}
