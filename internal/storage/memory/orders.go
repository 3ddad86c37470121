package memory

import (
	"context"
	"fmt"
	"sort"

	"github.com/shopspring/decimal"

	domainErrors "github.com/polkiloo/storefront/internal/domain/errors"
	"github.com/polkiloo/storefront/internal/domain/model"
	"github.com/polkiloo/storefront/internal/domain/repository"
)

type orderRecord struct {
	order model.Order
}

func newOrderRecord(o model.Order) orderRecord {
	return orderRecord{order: orderRecord{order: o}.snapshot()}
}

func (r orderRecord) snapshot() model.Order {
	o := r.order
	o.Items = append([]model.OrderItem(nil), o.Items...)
	return o
}

type orderRepository struct {
	store *Store
}

func (r *orderRepository) Place(ctx context.Context, order *model.Order) error {
	s := r.store
	ids := make([]int64, 0, len(order.Items))
	requested := make(map[int64]int, len(order.Items))
	for _, item := range order.Items {
		ids = append(ids, item.ProductID)
		requested[item.ProductID] += item.Quantity
	}

	unlock := s.lockProducts(ids)
	defer unlock()

	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for _, item := range order.Items {
		rec, ok := s.products[item.ProductID]
		if !ok {
			return domainErrors.NotFound("product", item.ProductID)
		}
		if rec.product.Stock < requested[item.ProductID] {
			return fmt.Errorf("%w: %s", domainErrors.ErrInsufficientStock, item.Title)
		}
	}

	now := s.now()
	for id, qty := range requested {
		rec := s.products[id]
		rec.product.Stock -= qty
		rec.product.SalesCount += qty
		rec.product.UpdatedAt = now
		s.products[id] = rec
	}

	s.lastOrder++
	order.ID = s.lastOrder
	order.CreatedAt, order.UpdatedAt = now, now
	s.orders[order.ID] = newOrderRecord(*order)
	return nil
}

func (r *orderRepository) GetByID(_ context.Context, id int64) (*model.Order, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	rec, ok := s.orders[id]
	if !ok {
		return nil, domainErrors.NotFound("order", id)
	}
	o := rec.snapshot()
	return &o, nil
}

func (r *orderRepository) List(_ context.Context, f model.OrderFilter) ([]model.Order, int, error) {
	s := r.store
	s.mu.RLock()
	matched := make([]model.Order, 0, len(s.orders))
	for _, rec := range s.orders {
		if f.UserID != 0 && rec.order.UserID != f.UserID {
			continue
		}
		if f.Status != "" && rec.order.Status != f.Status {
			continue
		}
		matched = append(matched, rec.snapshot())
	}
	s.mu.RUnlock()

	sort.Slice(matched, func(i, j int) bool {
		if !matched[i].CreatedAt.Equal(matched[j].CreatedAt) {
			return matched[i].CreatedAt.After(matched[j].CreatedAt)
		}
		return matched[i].ID > matched[j].ID
	})

	return window(matched, f.Page), len(matched), nil
}

func (r *orderRepository) Update(_ context.Context, id int64, fn repository.OrderMutation) (*model.Order, error) {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	rec, ok := s.orders[id]
	if !ok {
		return nil, domainErrors.NotFound("order", id)
	}
	working := rec.snapshot()
	if err := fn(&working); err != nil {
		return nil, err
	}

	current := rec.order
	current.Status = working.Status
	current.PaymentStatus = working.PaymentStatus
	current.TrackingCode = working.TrackingCode
	current.UpdatedAt = s.now()
	s.orders[id] = newOrderRecord(current)

	out := s.orders[id].snapshot()
	return &out, nil
}

func (r *orderRepository) Stats(_ context.Context) (model.OrderStats, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	stats := model.OrderStats{Revenue: decimal.Zero}
	for _, rec := range s.orders {
		stats.Count++
		stats.Revenue = stats.Revenue.Add(rec.order.TotalPrice)
	}
	return stats, nil
}

func (r *orderRepository) CountByUser(_ context.Context, userID int64) (int, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	var n int
	for _, rec := range s.orders {
		if rec.order.UserID == userID {
			n++
		}
	}
	return n, nil
}
