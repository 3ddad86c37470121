package postgres

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/jackc/pgx/v5"

	domainErrors "github.com/polkiloo/storefront/internal/domain/errors"
	"github.com/polkiloo/storefront/internal/domain/model"
	"github.com/polkiloo/storefront/internal/domain/repository"
)

type orderRepository struct {
	storage *Storage
}

const orderColumns = `id, user_id, total_minor, status, shipping_address, shipping_city, shipping_postal_code,
       shipping_phone, payment_method, payment_status, tracking_code, notes, created_at, updated_at`

func scanOrder(row rowScanner) (*model.Order, error) {
	var (
		o          model.Order
		totalMinor int64
	)
	err := row.Scan(&o.ID, &o.UserID, &totalMinor, &o.Status,
		&o.ShippingAddress.Address, &o.ShippingAddress.City, &o.ShippingAddress.PostalCode, &o.ShippingAddress.Phone,
		&o.PaymentMethod, &o.PaymentStatus, &o.TrackingCode, &o.Notes, &o.CreatedAt, &o.UpdatedAt)
	if err != nil {
		return nil, err
	}
	o.TotalPrice = model.FromMinor(totalMinor)
	return &o, nil
}

// Place inserts order with its items and reserves stock in one transaction.
// Products are decremented in ascending id order so concurrent placements
// lock rows in the same sequence.
func (r *orderRepository) Place(ctx context.Context, order *model.Order) error {
	const insertOrder = `INSERT INTO orders (user_id, total_minor, status, shipping_address, shipping_city,
                         shipping_postal_code, shipping_phone, payment_method, payment_status, tracking_code, notes)
                         VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
                         RETURNING id, created_at, updated_at`
	const decrementStock = `UPDATE products SET stock = stock - $1, sales_count = sales_count + $1, updated_at=NOW()
                            WHERE id=$2 AND stock >= $1`
	const insertItem = `INSERT INTO order_items (order_id, position, product_id, title, quantity, price_minor)
                        VALUES ($1, $2, $3, $4, $5, $6)`

	return r.storage.WithinTransaction(ctx, func(tx pgx.Tx) error {
		addr := order.ShippingAddress
		err := tx.QueryRow(ctx, insertOrder,
			order.UserID, model.ToMinor(order.TotalPrice), order.Status,
			addr.Address, addr.City, addr.PostalCode, addr.Phone,
			order.PaymentMethod, order.PaymentStatus, order.TrackingCode, order.Notes,
		).Scan(&order.ID, &order.CreatedAt, &order.UpdatedAt)
		if err != nil {
			return err
		}

		lockOrder := make([]int, len(order.Items))
		for i := range lockOrder {
			lockOrder[i] = i
		}
		sort.SliceStable(lockOrder, func(a, b int) bool {
			return order.Items[lockOrder[a]].ProductID < order.Items[lockOrder[b]].ProductID
		})
		for _, idx := range lockOrder {
			item := order.Items[idx]
			tag, err := tx.Exec(ctx, decrementStock, item.Quantity, item.ProductID)
			if err != nil {
				return err
			}
			if tag.RowsAffected() == 0 {
				return fmt.Errorf("%w: %s", domainErrors.ErrInsufficientStock, item.Title)
			}
		}

		for i, item := range order.Items {
			if _, err := tx.Exec(ctx, insertItem, order.ID, i, item.ProductID, item.Title, item.Quantity, model.ToMinor(item.Price)); err != nil {
				return err
			}
		}
		return nil
	})
}

func (r *orderRepository) GetByID(ctx context.Context, id int64) (*model.Order, error) {
	query := `SELECT ` + orderColumns + ` FROM orders WHERE id=$1`
	order, err := scanOrder(r.storage.pool.QueryRow(ctx, query, id))
	if err != nil {
		return nil, notFound(err, "order", id)
	}
	if err := loadItems(ctx, r.storage.pool, []*model.Order{order}); err != nil {
		return nil, err
	}
	return order, nil
}

func orderWhere(filter model.OrderFilter) (string, []any) {
	var (
		conds []string
		args  []any
	)
	if filter.UserID != 0 {
		args = append(args, filter.UserID)
		conds = append(conds, fmt.Sprintf("user_id=$%d", len(args)))
	}
	if filter.Status != "" {
		args = append(args, filter.Status)
		conds = append(conds, fmt.Sprintf("status=$%d", len(args)))
	}
	if len(conds) == 0 {
		return "", args
	}
	return " WHERE " + strings.Join(conds, " AND "), args
}

func (r *orderRepository) List(ctx context.Context, filter model.OrderFilter) ([]model.Order, int, error) {
	where, args := orderWhere(filter)

	var total int
	if err := r.storage.pool.QueryRow(ctx, `SELECT COUNT(*) FROM orders`+where, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	args = append(args, filter.Page.Limit, filter.Page.Offset())
	query := fmt.Sprintf(`SELECT %s FROM orders%s ORDER BY created_at DESC, id DESC LIMIT $%d OFFSET $%d`,
		orderColumns, where, len(args)-1, len(args))
	rows, err := r.storage.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var orders []*model.Order
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, 0, err
		}
		orders = append(orders, o)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}
	rows.Close()

	if err := loadItems(ctx, r.storage.pool, orders); err != nil {
		return nil, 0, err
	}

	result := make([]model.Order, 0, len(orders))
	for _, o := range orders {
		result = append(result, *o)
	}
	return result, total, nil
}

func loadItems(ctx context.Context, q querier, orders []*model.Order) error {
	if len(orders) == 0 {
		return nil
	}
	ids := make([]int64, 0, len(orders))
	byID := make(map[int64]*model.Order, len(orders))
	for _, o := range orders {
		ids = append(ids, o.ID)
		byID[o.ID] = o
	}

	const query = `SELECT order_id, product_id, title, quantity, price_minor
                   FROM order_items WHERE order_id = ANY($1) ORDER BY order_id, position`
	rows, err := q.Query(ctx, query, ids)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var (
			orderID    int64
			item       model.OrderItem
			priceMinor int64
		)
		if err := rows.Scan(&orderID, &item.ProductID, &item.Title, &item.Quantity, &priceMinor); err != nil {
			return err
		}
		item.Price = model.FromMinor(priceMinor)
		if o, ok := byID[orderID]; ok {
			o.Items = append(o.Items, item)
		}
	}
	return rows.Err()
}

func (r *orderRepository) Update(ctx context.Context, id int64, fn repository.OrderMutation) (*model.Order, error) {
	const updateQuery = `UPDATE orders SET status=$1, payment_status=$2, tracking_code=$3, updated_at=NOW()
                         WHERE id=$4 RETURNING updated_at`

	var order *model.Order
	err := r.storage.WithinTransaction(ctx, func(tx pgx.Tx) error {
		locked, err := scanOrder(tx.QueryRow(ctx, `SELECT `+orderColumns+` FROM orders WHERE id=$1 FOR UPDATE`, id))
		if err != nil {
			return notFound(err, "order", id)
		}
		if err := loadItems(ctx, tx, []*model.Order{locked}); err != nil {
			return err
		}
		if err := fn(locked); err != nil {
			return err
		}
		if err := tx.QueryRow(ctx, updateQuery, locked.Status, locked.PaymentStatus, locked.TrackingCode, id).Scan(&locked.UpdatedAt); err != nil {
			return err
		}
		order = locked
		return nil
	})
	if err != nil {
		return nil, err
	}
	return order, nil
}

func (r *orderRepository) Stats(ctx context.Context) (model.OrderStats, error) {
	var (
		stats        model.OrderStats
		revenueMinor int64
	)
	err := r.storage.pool.QueryRow(ctx, `SELECT COUNT(*), COALESCE(SUM(total_minor), 0)::BIGINT FROM orders`).Scan(&stats.Count, &revenueMinor)
	if err != nil {
		return model.OrderStats{}, err
	}
	stats.Revenue = model.FromMinor(revenueMinor)
	return stats, nil
}

func (r *orderRepository) CountByUser(ctx context.Context, userID int64) (int, error) {
	var total int
	if err := r.storage.pool.QueryRow(ctx, `SELECT COUNT(*) FROM orders WHERE user_id=$1`, userID).Scan(&total); err != nil {
		return 0, err
	}
	return total, nil
}
